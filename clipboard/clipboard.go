// Package clipboard copies permalinks and urls to the system clipboard.
package clipboard

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/kballard/go-shellquote"
)

// ErrEmptyCommand is returned for a command line with no program in it.
var ErrEmptyCommand = errors.New("empty clipboard command")

// Runner runs argv with text on its stdin.
type Runner func(argv []string, text string) error

// Copier writes to the clipboard through a configured command, or through
// the platform clipboard when none is set.
type Copier struct {
	Command string // e.g. "xclip -selection clipboard"
	Run     Runner
	Write   func(text string) error
}

// New returns a Copier for command, which may be empty.
func New(command string) *Copier {
	return &Copier{Command: command, Run: runCommand, Write: clipboard.WriteAll}
}

// Copy puts text on the clipboard.
func (c *Copier) Copy(text string) error {
	if strings.TrimSpace(c.Command) == "" {
		if err := c.Write(text); err != nil {
			return fmt.Errorf("writing clipboard: %w", err)
		}
		return nil
	}

	argv, err := shellquote.Split(c.Command)
	if err != nil {
		return fmt.Errorf("parsing clipboard command %q: %w", c.Command, err)
	}
	if len(argv) == 0 {
		return ErrEmptyCommand
	}
	if err := c.Run(argv, text); err != nil {
		return fmt.Errorf("running %s: %w", argv[0], err)
	}
	return nil
}

func runCommand(argv []string, text string) error {
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdin = strings.NewReader(text)
	return cmd.Run()
}
