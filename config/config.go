// Package config provides configuration loading for snoo using TOML.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// CompactFormat is the subreddit format used when look_and_feel is "compact".
const CompactFormat = "%t\n<%i|%s%v|%cC> %r%e %a %S %F"

// Display settings
type Display struct {
	LookAndFeel     string `toml:"look_and_feel"`    // "default" or "compact"
	SubredditFormat string `toml:"subreddit_format"` // overrides look_and_feel when set
	ASCII           bool   `toml:"ascii"`
	Monochrome      bool   `toml:"monochrome"`
	Theme           string `toml:"theme"`
	Flash           bool   `toml:"flash"`
	MaxCommentCols  int    `toml:"max_comment_cols"`
}

// History settings
type History struct {
	Size       int  `toml:"size"`       // number of visited URLs kept on disk
	Persistent bool `toml:"persistent"` // false deletes the history on exit
}

// Reddit API settings
type Reddit struct {
	UserAgent      string `toml:"user_agent"`
	AccessToken    string `toml:"access_token"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	Retries        int    `toml:"retries"`
}

// External programs. Empty means use the platform default.
type Programs struct {
	Clipboard string `toml:"clipboard_cmd"`
	Editor    string `toml:"editor"`
	Browser   string `toml:"browser"`
}

// Log settings
type Log struct {
	Level string `toml:"level"` // debug, info, warn, error
	File  string `toml:"file"`  // empty disables logging
}

// Config is the main configuration struct
type Config struct {
	Display     Display             `toml:"display"`
	History     History             `toml:"history"`
	Reddit      Reddit              `toml:"reddit"`
	Programs    Programs            `toml:"programs"`
	Log         Log                 `toml:"log"`
	Keybindings map[string][]string `toml:"keybindings"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Display: Display{
			LookAndFeel:    "default",
			Theme:          "default-dark",
			Flash:          true,
			MaxCommentCols: 120,
		},
		History: History{
			Size:       200,
			Persistent: true,
		},
		Reddit: Reddit{
			UserAgent:      "snoo/1.0 (terminal reddit browser)",
			TimeoutSeconds: 10,
			Retries:        3,
		},
		Keybindings: map[string][]string{},
	}
}

// Format returns the subreddit format template in effect, or "" for the
// default layout.
func (c *Config) Format() string {
	if c.Display.SubredditFormat != "" {
		return c.Display.SubredditFormat
	}
	if c.Display.LookAndFeel == "compact" {
		return CompactFormat
	}
	return ""
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}

// ConfigDir returns the configuration directory, honouring XDG_CONFIG_HOME.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "snoo")
	}
	return filepath.Join(homeDir(), ".config", "snoo")
}

// DataDir returns the data directory, honouring XDG_DATA_HOME.
func DataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "snoo")
	}
	return filepath.Join(homeDir(), ".local", "share", "snoo")
}

// ConfigPath returns the path to the user's config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// HistoryPath returns the path to the visited URL history.
func HistoryPath() string {
	return filepath.Join(DataDir(), "history.log")
}

// ThemesDir returns the directory holding user theme files.
func ThemesDir() string {
	return filepath.Join(ConfigDir(), "themes")
}

// Load loads configuration from path, layering it on top of defaults. An
// empty path means ConfigPath. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = ConfigPath()
	}

	userCfg, meta, err := loadFromTOML(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading config from %s: %w", path, err)
	}

	return merge(cfg, userCfg, meta), nil
}

// loadFromTOML loads a TOML config file and returns the config.
func loadFromTOML(path string) (*Config, toml.MetaData, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, meta, err
		}
		return nil, meta, fmt.Errorf("parsing config TOML: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, meta, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return &cfg, meta, nil
}

// merge layers user config on top of defaults. Strings and numbers override
// when non-zero; booleans override whenever the key is present in the file.
func merge(defaults, user *Config, meta toml.MetaData) *Config {
	result := *defaults

	// Display
	mergeString(&result.Display.LookAndFeel, user.Display.LookAndFeel)
	mergeString(&result.Display.SubredditFormat, user.Display.SubredditFormat)
	mergeString(&result.Display.Theme, user.Display.Theme)
	mergeBool(&result.Display.ASCII, user.Display.ASCII, meta, "display", "ascii")
	mergeBool(&result.Display.Monochrome, user.Display.Monochrome, meta, "display", "monochrome")
	mergeBool(&result.Display.Flash, user.Display.Flash, meta, "display", "flash")
	mergeInt(&result.Display.MaxCommentCols, user.Display.MaxCommentCols)

	// History
	mergeInt(&result.History.Size, user.History.Size)
	mergeBool(&result.History.Persistent, user.History.Persistent, meta, "history", "persistent")

	// Reddit
	mergeString(&result.Reddit.UserAgent, user.Reddit.UserAgent)
	mergeString(&result.Reddit.AccessToken, user.Reddit.AccessToken)
	mergeInt(&result.Reddit.TimeoutSeconds, user.Reddit.TimeoutSeconds)
	mergeInt(&result.Reddit.Retries, user.Reddit.Retries)

	// Programs
	mergeString(&result.Programs.Clipboard, user.Programs.Clipboard)
	mergeString(&result.Programs.Editor, user.Programs.Editor)
	mergeString(&result.Programs.Browser, user.Programs.Browser)

	// Log
	mergeString(&result.Log.Level, user.Log.Level)
	mergeString(&result.Log.File, user.Log.File)

	// Keybindings - override each command that is set
	result.Keybindings = make(map[string][]string, len(defaults.Keybindings)+len(user.Keybindings))
	for name, keys := range defaults.Keybindings {
		result.Keybindings[name] = keys
	}
	for name, keys := range user.Keybindings {
		result.Keybindings[name] = keys
	}

	return &result
}

func mergeString(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}

func mergeInt(dst *int, src int) {
	if src != 0 {
		*dst = src
	}
}

func mergeBool(dst *bool, src bool, meta toml.MetaData, key ...string) {
	if meta.IsDefined(key...) {
		*dst = src
	}
}

// WriteDefault writes DefaultTOML to path, creating parent directories. An
// existing file is left alone unless overwrite is set.
func WriteDefault(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(DefaultTOML()), 0o664); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// DefaultTOML returns the default configuration as a TOML string.
// Used for --copy-config to generate a user config file.
func DefaultTOML() string {
	return `# snoo configuration
# Save to ~/.config/snoo/config.toml and customize
# Only include settings you want to change from defaults

[display]
look_and_feel = "default"     # "default" or "compact"
# subreddit_format = "%t\n<%i|%s%v|%cC> %r%e %a %S %F"
ascii = false                 # Draw only ascii characters
monochrome = false            # Disable colors
theme = "default-dark"        # See --list-themes
flash = true                  # Flash the screen on invalid actions
max_comment_cols = 120

# Format specifiers:
#   %i index       %t title        %s score         %v vote arrow
#   %c comments    %r created      %R created date  %e edited
#   %E edit date   %a author       %S subreddit     %u url host
#   %U full url    %A [saved]      %h [hidden]      %T [stickied]
#   %g gold        %n NSFW         %f flair         %F flair and all badges
# Separators < > | \ are drawn with the Separator style.

[history]
size = 200                    # Visited URLs remembered between sessions
persistent = true             # false forgets visited URLs on exit

[reddit]
user_agent = "snoo/1.0 (terminal reddit browser)"
access_token = ""             # OAuth bearer token; enables voting, saving, posting
timeout_seconds = 10
retries = 3

[programs]
clipboard_cmd = ""            # e.g. "xclip -selection clipboard"
editor = ""                   # Defaults to $VISUAL, $EDITOR, then nano
browser = ""                  # Defaults to $BROWSER, then xdg-open / open

[log]
level = "info"
file = ""                     # e.g. "~/.local/share/snoo/snoo.log"

# Keybindings: command = [keys]. Keys are single characters, two key
# sequences like "gg", hex codes like "0x20", or names like "<KEY_UP>".
[keybindings]
` + defaultBindingsTOML()
}
