package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Command names an action that keys can be bound to.
type Command string

const (
	Exit                   Command = "EXIT"
	ForceExit              Command = "FORCE_EXIT"
	Help                   Command = "HELP"
	Sort1                  Command = "SORT_1"
	Sort2                  Command = "SORT_2"
	Sort3                  Command = "SORT_3"
	Sort4                  Command = "SORT_4"
	Sort5                  Command = "SORT_5"
	Sort6                  Command = "SORT_6"
	MoveUp                 Command = "MOVE_UP"
	MoveDown               Command = "MOVE_DOWN"
	PageUp                 Command = "PAGE_UP"
	PageDown               Command = "PAGE_DOWN"
	PageTop                Command = "PAGE_TOP"
	PageBottom             Command = "PAGE_BOTTOM"
	Upvote                 Command = "UPVOTE"
	Downvote               Command = "DOWNVOTE"
	Refresh                Command = "REFRESH"
	Prompt                 Command = "PROMPT"
	Save                   Command = "SAVE"
	CopyPermalink          Command = "COPY_PERMALINK"
	CopyURL                Command = "COPY_URL"
	PreviousTheme          Command = "PREVIOUS_THEME"
	NextTheme              Command = "NEXT_THEME"
	SubredditSearch        Command = "SUBREDDIT_SEARCH"
	SubredditPost          Command = "SUBREDDIT_POST"
	SubredditOpen          Command = "SUBREDDIT_OPEN"
	SubredditOpenInBrowser Command = "SUBREDDIT_OPEN_IN_BROWSER"
	SubredditFrontpage     Command = "SUBREDDIT_FRONTPAGE"
	SubredditHide          Command = "SUBREDDIT_HIDE"
)

// defaultBindings is ordered so DefaultTOML is stable.
var defaultBindings = []struct {
	cmd  Command
	keys []string
}{
	{Exit, []string{"q"}},
	{ForceExit, []string{"Q"}},
	{Help, []string{"?"}},
	{Sort1, []string{"1"}},
	{Sort2, []string{"2"}},
	{Sort3, []string{"3"}},
	{Sort4, []string{"4"}},
	{Sort5, []string{"5"}},
	{Sort6, []string{"6"}},
	{MoveUp, []string{"k", "<KEY_UP>"}},
	{MoveDown, []string{"j", "<KEY_DOWN>"}},
	{PageUp, []string{"m", "<KEY_PPAGE>", "<NUL>"}},
	{PageDown, []string{"n", "<KEY_NPAGE>"}},
	{PageTop, []string{"gg"}},
	{PageBottom, []string{"G"}},
	{Upvote, []string{"a"}},
	{Downvote, []string{"z"}},
	{Refresh, []string{"r", "<KEY_F5>"}},
	{Prompt, []string{"/"}},
	{Save, []string{"w"}},
	{CopyPermalink, []string{"y"}},
	{CopyURL, []string{"Y"}},
	{PreviousTheme, []string{"<KEY_F2>"}},
	{NextTheme, []string{"<KEY_F3>"}},
	{SubredditSearch, []string{"f"}},
	{SubredditPost, []string{"c"}},
	{SubredditOpen, []string{"l", "<KEY_RIGHT>"}},
	{SubredditOpenInBrowser, []string{"o", "<LF>", "<KEY_ENTER>"}},
	{SubredditFrontpage, []string{"p"}},
	{SubredditHide, []string{"0x20"}},
}

// Byte sequences sent by xterm compatible terminals for named keys.
var namedKeys = map[string]string{
	"<KEY_UP>":    "\x1b[A",
	"<KEY_DOWN>":  "\x1b[B",
	"<KEY_RIGHT>": "\x1b[C",
	"<KEY_LEFT>":  "\x1b[D",
	"<KEY_HOME>":  "\x1b[H",
	"<KEY_END>":   "\x1b[F",
	"<KEY_PPAGE>": "\x1b[5~",
	"<KEY_NPAGE>": "\x1b[6~",
	"<KEY_ENTER>": "\r",
	"<LF>":        "\n",
	"<NUL>":       "\x00",
	"<ESC>":       "\x1b",
	"<KEY_F1>":    "\x1bOP",
	"<KEY_F2>":    "\x1bOQ",
	"<KEY_F3>":    "\x1bOR",
	"<KEY_F4>":    "\x1bOS",
	"<KEY_F5>":    "\x1b[15~",
}

// ParseKey converts a key name from the config into the bytes the terminal
// sends for it.
func ParseKey(name string) (string, error) {
	if seq, ok := namedKeys[name]; ok {
		return seq, nil
	}
	if strings.HasPrefix(name, "0x") && len(name) > 2 {
		v, err := strconv.ParseUint(name[2:], 16, 8)
		if err != nil {
			return "", fmt.Errorf("invalid key code %q", name)
		}
		return string([]byte{byte(v)}), nil
	}
	runes := []rune(name)
	switch {
	case len(runes) == 1:
		return name, nil
	case len(runes) == 2 && isPrintable(runes[0]) && isPrintable(runes[1]):
		// Two key sequence such as "gg"
		return name, nil
	}
	return "", fmt.Errorf("invalid key %q", name)
}

func isPrintable(r rune) bool {
	return r > 0x20 && r != 0x7f && r < 0x80
}

// Keymap resolves key sequences to commands.
type Keymap struct {
	bindings map[string]Command   // key bytes → command
	names    map[Command][]string // command → configured key names
}

// NewKeymap builds a keymap from the defaults overlaid with overrides. An
// override replaces every default key for its command.
func NewKeymap(overrides map[string][]string) (*Keymap, error) {
	names := make(map[Command][]string, len(defaultBindings))
	known := make(map[Command]bool, len(defaultBindings))
	for _, b := range defaultBindings {
		names[b.cmd] = b.keys
		known[b.cmd] = true
	}
	for name, keys := range overrides {
		cmd := Command(strings.ToUpper(name))
		if !known[cmd] {
			return nil, fmt.Errorf("unknown command %q in keybindings", name)
		}
		names[cmd] = keys
	}

	km := &Keymap{bindings: make(map[string]Command), names: names}
	for _, b := range defaultBindings {
		for _, name := range names[b.cmd] {
			seq, err := ParseKey(name)
			if err != nil {
				return nil, fmt.Errorf("binding %s: %w", b.cmd, err)
			}
			if other, dup := km.bindings[seq]; dup && other != b.cmd {
				return nil, fmt.Errorf("key %q bound to both %s and %s", name, other, b.cmd)
			}
			km.bindings[seq] = b.cmd
		}
	}
	return km, nil
}

// DefaultKeymap returns the keymap with no overrides.
func DefaultKeymap() *Keymap {
	km, err := NewKeymap(nil)
	if err != nil {
		panic(err)
	}
	return km
}

// Keys returns the configured key names for a command.
func (km *Keymap) Keys(cmd Command) []string {
	return km.names[cmd]
}

// Lookup returns the command bound to an exact key sequence.
func (km *Keymap) Lookup(seq string) (Command, bool) {
	cmd, ok := km.bindings[seq]
	return cmd, ok
}

// isPrefix reports whether seq starts a longer binding.
func (km *Keymap) isPrefix(seq string) bool {
	for bound := range km.bindings {
		if len(bound) > len(seq) && strings.HasPrefix(bound, seq) {
			return true
		}
	}
	return false
}

// KeyMatcher accumulates keys for multi-key bindings like "gg".
type KeyMatcher struct {
	keymap  *Keymap
	pending string // Accumulated prefix (e.g., "g" waiting for second key)
}

// NewKeyMatcher creates a new key matcher.
func NewKeyMatcher(km *Keymap) *KeyMatcher {
	return &KeyMatcher{keymap: km}
}

// Feed consumes one key. It returns the command once a binding completes.
// A key that neither completes nor extends the pending prefix drops the
// prefix and is tried on its own.
func (m *KeyMatcher) Feed(key string) (Command, bool) {
	seq := m.pending + key
	if cmd, ok := m.keymap.Lookup(seq); ok {
		m.pending = ""
		return cmd, true
	}
	if m.keymap.isPrefix(seq) {
		m.pending = seq
		return "", false
	}
	if m.pending != "" {
		m.pending = ""
		return m.Feed(key)
	}
	return "", false
}

// ClearPending clears any pending prefix.
func (m *KeyMatcher) ClearPending() {
	m.pending = ""
}

// Pending returns the current pending prefix.
func (m *KeyMatcher) Pending() string {
	return m.pending
}

// IsPending returns true if there's a pending prefix.
func (m *KeyMatcher) IsPending() bool {
	return m.pending != ""
}

func defaultBindingsTOML() string {
	var sb strings.Builder
	for _, b := range defaultBindings {
		quoted := make([]string, len(b.keys))
		for i, k := range b.keys {
			quoted[i] = strconv.Quote(k)
		}
		fmt.Fprintf(&sb, "%s = [%s]\n", b.cmd, strings.Join(quoted, ", "))
	}
	return sb.String()
}
