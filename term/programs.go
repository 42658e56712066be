package term

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/kballard/go-shellquote"
)

// Browsers that draw on the terminal and need it handed over.
var consoleBrowsers = []string{"w3m", "lynx", "links", "links2", "elinks", "www-browser", "browsh", "carbonyl"}

// OpenBrowser opens url in the configured browser, $BROWSER, or the
// platform opener. Console browsers run in the suspended terminal.
func (t *Terminal) OpenBrowser(url string) error {
	argv, err := browserCommand(t.opts.Browser, os.Getenv("BROWSER"), runtime.GOOS, url)
	if err != nil {
		return err
	}
	t.logger.Info("opening browser", "url", url, "cmd", argv[0])
	if slices.Contains(consoleBrowsers, filepath.Base(argv[0])) {
		err = t.runSuspended(argv)
	} else {
		err = t.Start(argv)
	}
	if err != nil {
		return fmt.Errorf("opening browser: %w", err)
	}
	return nil
}

func browserCommand(configured, env, goos, url string) ([]string, error) {
	command := configured
	if command == "" {
		// $BROWSER may list several programs separated by colons.
		command, _, _ = strings.Cut(env, ":")
	}
	if strings.TrimSpace(command) == "" {
		if goos == "darwin" {
			return []string{"open", url}, nil
		}
		return []string{"xdg-open", url}, nil
	}
	return withArgument(command, url)
}

// OpenEditor lets the user edit text in their editor and returns the result.
// The terminal is suspended while the editor runs.
func (t *Terminal) OpenEditor(text string) (string, error) {
	argv, err := editorCommand(t.opts.Editor, os.Getenv("VISUAL"), os.Getenv("EDITOR"))
	if err != nil {
		return "", err
	}

	f, err := os.CreateTemp("", "snoo_*.txt")
	if err != nil {
		return "", fmt.Errorf("creating edit file: %w", err)
	}
	path := f.Name()
	defer os.Remove(path)

	if _, err := f.WriteString(text); err != nil {
		f.Close()
		return "", fmt.Errorf("writing edit file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("writing edit file: %w", err)
	}

	t.logger.Info("opening editor", "cmd", argv[0], "file", path)
	if err := t.runSuspended(append(argv, path)); err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading edit file: %w", err)
	}
	return string(data), nil
}

// runSuspended hands the tty to argv until it exits.
func (t *Terminal) runSuspended(argv []string) error {
	if err := t.Suspend(); err != nil {
		return fmt.Errorf("suspending terminal: %w", err)
	}
	runErr := t.Run(argv)
	if err := t.Resume(); err != nil {
		return fmt.Errorf("resuming terminal: %w", err)
	}
	if runErr != nil {
		return fmt.Errorf("running %s: %w", argv[0], runErr)
	}
	return nil
}

func editorCommand(configured, visual, editor string) ([]string, error) {
	for _, command := range []string{configured, visual, editor, "nano"} {
		if strings.TrimSpace(command) == "" {
			continue
		}
		argv, err := shellquote.Split(command)
		if err != nil {
			return nil, fmt.Errorf("parsing editor command %q: %w", command, err)
		}
		return argv, nil
	}
	return nil, errors.New("no editor")
}

// withArgument splits command and puts arg in place of a "%s" argument, or
// appends it when there is none.
func withArgument(command, arg string) ([]string, error) {
	argv, err := shellquote.Split(command)
	if err != nil {
		return nil, fmt.Errorf("parsing command %q: %w", command, err)
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("empty command %q", command)
	}
	replaced := false
	for i, a := range argv {
		if strings.Contains(a, "%s") {
			argv[i] = strings.ReplaceAll(a, "%s", arg)
			replaced = true
		}
	}
	if !replaced {
		argv = append(argv, arg)
	}
	return argv, nil
}

func startDetached(argv []string) error {
	cmd := exec.Command(argv[0], argv[1:]...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go cmd.Wait()
	return nil
}

func runAttached(argv []string) error {
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
