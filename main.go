// Snoo is a terminal Reddit browser.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"regexp"
	"strings"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"

	"snoo/clipboard"
	"snoo/config"
	"snoo/history"
	"snoo/logging"
	"snoo/page"
	"snoo/reddit"
	"snoo/render"
	"snoo/term"
	"snoo/theme"
)

var version = "dev"

var commentsPath = regexp.MustCompile(`(^|/)comments/`)

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		var exitErr cli.ExitCoder
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "snoo: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:      "snoo",
		Usage:     "browse Reddit from the terminal",
		ArgsUsage: "[URL]",
		Version:   version,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "subreddit", Aliases: []string{"s"}, Usage: "open `NAME`, e.g. python or /r/python/top-week"},
			&cli.StringFlag{Name: "config", Usage: "load the config from `FILE`", Sources: cli.EnvVars("SNOO_CONFIG")},
			&cli.StringFlag{Name: "log", Usage: "write debug logs to `FILE`"},
			&cli.BoolFlag{Name: "ascii", Usage: "draw only ascii characters"},
			&cli.BoolFlag{Name: "monochrome", Usage: "disable colors"},
			&cli.StringFlag{Name: "theme", Usage: "use the theme `NAME`"},
			&cli.BoolFlag{Name: "list-themes", Usage: "list the available themes and exit"},
			&cli.BoolFlag{Name: "copy-config", Usage: "write the default config file and exit"},
			&cli.BoolFlag{Name: "no-flash", Usage: "do not flash the screen on invalid actions"},
			&cli.BoolFlag{Name: "non-persistent", Usage: "forget visited links when the program exits"},
		},
		Action: run,
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")
	if configPath == "" {
		configPath = config.ConfigPath()
	}
	if cmd.Bool("copy-config") {
		if err := config.WriteDefault(configPath, false); err != nil {
			return err
		}
		fmt.Printf("Copied the default config to %s\n", configPath)
		return nil
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	applyFlags(cmd, cfg)

	logger, closeLog, err := logging.New(logging.Options{App: "snoo", Level: cfg.Log.Level, File: cfg.Log.File})
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = closeLog() }()
	logger.Info("starting", "version", version, "config", configPath)

	if _, err := theme.LoadDir(config.ThemesDir()); err != nil {
		logger.Warn("loading themes", "dir", config.ThemesDir(), "err", err)
	}
	if cmd.Bool("list-themes") {
		listThemes(os.Stdout, cfg.Display.Theme)
		return nil
	}
	if !theme.Set(cfg.Display.Theme) {
		return fmt.Errorf("unknown theme %q, see --list-themes", cfg.Display.Theme)
	}

	keymap, err := config.NewKeymap(cfg.Keybindings)
	if err != nil {
		return fmt.Errorf("loading keybindings: %w", err)
	}

	hist, err := history.Load(config.HistoryPath())
	if err != nil {
		logger.Warn("loading history", "err", err)
		hist = history.New(config.HistoryPath())
	}
	defer func() {
		if err := finishHistory(hist, cfg.History); err != nil {
			logger.Warn("closing history", "err", err)
		}
	}()

	client := reddit.New(reddit.Options{
		UserAgent:   cfg.Reddit.UserAgent,
		AccessToken: cfg.Reddit.AccessToken,
		Timeout:     time.Duration(cfg.Reddit.TimeoutSeconds) * time.Second,
		Retries:     uint(max(cfg.Reddit.Retries, 0)),
		Logger:      logger,
	})

	name, submission := startPage(cmd.Args().First(), cmd.String("subreddit"))

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	return browse(ctx, cfg, logger, func(t *term.Terminal) error {
		if submission != "" {
			if err := t.OpenBrowser(submission); err != nil {
				logger.Warn("opening submission", "url", submission, "err", err)
			}
		}
		p, err := page.New(ctx, t, client, name, page.Options{
			Format:    cfg.Format(),
			Keymap:    keymap,
			History:   hist,
			Clipboard: clipboard.New(cfg.Programs.Clipboard),
			Logger:    logger,
		})
		if err != nil {
			return err
		}
		return p.Loop(ctx)
	})
}

// browse takes over the terminal for the duration of fn.
func browse(ctx context.Context, cfg *config.Config, logger *slog.Logger, fn func(*term.Terminal) error) error {
	tty, err := render.NewTerminal(os.Stdin)
	if err != nil {
		return fmt.Errorf("initializing terminal: %w", err)
	}

	render.EnterAltScreen(os.Stdout)
	if err := tty.EnterRawMode(); err != nil {
		render.ExitAltScreen(os.Stdout)
		return fmt.Errorf("entering raw mode: %w", err)
	}
	defer func() {
		tty.RestoreMode()
		render.ExitAltScreen(os.Stdout)
	}()

	t, err := term.New(tty.Input(), os.Stdout, render.TerminalSize, term.Options{
		ASCII:      cfg.Display.ASCII,
		Monochrome: cfg.Display.Monochrome,
		Flash:      cfg.Display.Flash,
		Browser:    cfg.Programs.Browser,
		Editor:     cfg.Programs.Editor,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("detecting terminal: %w", err)
	}
	t.Suspend = func() error {
		render.ExitAltScreen(os.Stdout)
		return tty.RestoreMode()
	}
	t.Resume = func() error {
		render.EnterAltScreen(os.Stdout)
		return tty.EnterRawMode()
	}

	resizeCh := make(chan os.Signal, 1)
	signal.Notify(resizeCh, syscall.SIGWINCH)
	defer signal.Stop(resizeCh)
	go func() {
		for range resizeCh {
			t.Resized()
		}
	}()

	err = fn(t)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	if err != nil {
		logger.Debug("screen at exit", "err", err, "screen", t.Canvas().PlainText())
	}
	return err
}

func applyFlags(cmd *cli.Command, cfg *config.Config) {
	if cmd.Bool("ascii") {
		cfg.Display.ASCII = true
	}
	if cmd.Bool("monochrome") {
		cfg.Display.Monochrome = true
	}
	if cmd.Bool("no-flash") {
		cfg.Display.Flash = false
	}
	if cmd.Bool("non-persistent") {
		cfg.History.Persistent = false
	}
	if name := cmd.String("theme"); name != "" {
		cfg.Display.Theme = name
	}
	if path := cmd.String("log"); path != "" {
		cfg.Log.File = path
		cfg.Log.Level = "debug"
	}
}

// finishHistory saves the visited links, or removes them from disk when the
// history is not persistent.
func finishHistory(hist *history.Store, cfg config.History) error {
	if !cfg.Persistent {
		return hist.Delete()
	}
	return hist.Save(cfg.Size)
}

// startPage picks the listing to open from the -s flag or the URL argument.
// A submission URL opens in the browser over the front page.
func startPage(arg, subreddit string) (name, submission string) {
	if subreddit != "" {
		return subreddit, ""
	}
	if arg == "" {
		return "/r/front", ""
	}

	path := arg
	if u, err := url.Parse(arg); err == nil && u.Host != "" {
		path = u.Path
	}
	if commentsPath.MatchString(path) {
		if path == arg {
			arg = reddit.PublicURL + "/" + strings.TrimLeft(path, "/")
		}
		return "/r/front", arg
	}
	return path, ""
}

func listThemes(w io.Writer, current string) {
	for _, t := range theme.All {
		marker := "  "
		if t.Name == current {
			marker = "* "
		}
		fmt.Fprintf(w, "%s%s\n", marker, t.Name)
	}
}
