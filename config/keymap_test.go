package config

import "testing"

func TestParseKey(t *testing.T) {
	tests := []struct {
		name     string
		expected string
		wantErr  bool
	}{
		{"q", "q", false},
		{"gg", "gg", false},
		{"0x20", " ", false},
		{"0x1b", "\x1b", false},
		{"<KEY_UP>", "\x1b[A", false},
		{"<KEY_F5>", "\x1b[15~", false},
		{"<NUL>", "\x00", false},
		{"<LF>", "\n", false},
		{"0xzz", "", true},
		{"abc", "", true},
		{"<KEY_NOPE>", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseKey(tt.name)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.expected {
				t.Errorf("got %q, expected %q", got, tt.expected)
			}
		})
	}
}

func TestDefaultKeymap(t *testing.T) {
	km := DefaultKeymap()

	tests := []struct {
		seq      string
		expected Command
	}{
		{"q", Exit},
		{"Q", ForceExit},
		{"k", MoveUp},
		{"\x1b[A", MoveUp},
		{"\x1b[6~", PageDown},
		{"\x00", PageUp},
		{"gg", PageTop},
		{"G", PageBottom},
		{" ", SubredditHide},
		{"\n", SubredditOpenInBrowser},
		{"\r", SubredditOpenInBrowser},
		{"\x1bOR", NextTheme},
		{"2", Sort2},
	}

	for _, tt := range tests {
		t.Run(string(tt.expected), func(t *testing.T) {
			got, ok := km.Lookup(tt.seq)
			if !ok || got != tt.expected {
				t.Errorf("Lookup(%q) = %q, %v; expected %q", tt.seq, got, ok, tt.expected)
			}
		})
	}
}

func TestNewKeymapOverrides(t *testing.T) {
	km, err := NewKeymap(map[string][]string{"move_up": {"K"}})
	if err != nil {
		t.Fatal(err)
	}
	if cmd, ok := km.Lookup("K"); !ok || cmd != MoveUp {
		t.Errorf("got %q, expected MOVE_UP", cmd)
	}
	if _, ok := km.Lookup("k"); ok {
		t.Error("override should replace the default keys")
	}
	if keys := km.Keys(MoveUp); len(keys) != 1 || keys[0] != "K" {
		t.Errorf("got %v", keys)
	}
}

func TestNewKeymapErrors(t *testing.T) {
	tests := []struct {
		name      string
		overrides map[string][]string
	}{
		{"unknown command", map[string][]string{"FLY": {"x"}}},
		{"bad key", map[string][]string{"EXIT": {"<KEY_NOPE>"}}},
		{"conflict", map[string][]string{"EXIT": {"j"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewKeymap(tt.overrides); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestKeyMatcher(t *testing.T) {
	m := NewKeyMatcher(DefaultKeymap())

	if cmd, ok := m.Feed("g"); ok {
		t.Fatalf("g alone should wait, got %q", cmd)
	}
	if !m.IsPending() || m.Pending() != "g" {
		t.Fatalf("expected pending g, got %q", m.Pending())
	}
	if cmd, ok := m.Feed("g"); !ok || cmd != PageTop {
		t.Errorf("got %q, expected PAGE_TOP", cmd)
	}
	if m.IsPending() {
		t.Error("pending should be cleared after a match")
	}

	// A non-continuing key drops the prefix and is matched on its own
	m.Feed("g")
	if cmd, ok := m.Feed("j"); !ok || cmd != MoveDown {
		t.Errorf("got %q, expected MOVE_DOWN", cmd)
	}

	if _, ok := m.Feed("x"); ok {
		t.Error("unbound key should not match")
	}

	m.Feed("g")
	m.ClearPending()
	if m.IsPending() {
		t.Error("ClearPending did not clear")
	}
}
