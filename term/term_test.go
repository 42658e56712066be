package term

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"reflect"
	"strconv"
	"strings"
	"testing"
	"time"

	"snoo/listing"
	"snoo/render"
	"snoo/theme"
)

// keys delivers one scripted key per read, then io.EOF.
type keys struct {
	seq []string
}

func (k *keys) Read(p []byte) (int, error) {
	if len(k.seq) == 0 {
		return 0, io.EOF
	}
	n := copy(p, k.seq[0])
	k.seq = k.seq[1:]
	return n, nil
}

func newTestTerminal(t *testing.T, rows, cols int, opts Options, input ...string) (*Terminal, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	size := func() (int, int, error) { return cols, rows, nil }
	term, err := New(&keys{seq: input}, out, size, opts)
	if err != nil {
		t.Fatal(err)
	}
	term.FlashDuration = 0
	term.LoaderDelay = 0
	term.NoticeTimeout = 0
	return term, out
}

func TestWindowAddLine(t *testing.T) {
	tests := []struct {
		name     string
		draw     func(w *Window)
		expected []string
	}{
		{
			name:     "reserves the last column",
			draw:     func(w *Window) { w.AddLine(0, 1, "hello world", theme.Normal) },
			expected: []string{" hello wo"},
		},
		{
			name: "continues after the cursor",
			draw: func(w *Window) {
				w.AddLine(0, 1, "ab", theme.Normal)
				w.AddSpace()
				w.AddLine(0, listing.Continue, "cd", theme.Normal)
			},
			expected: []string{" ab cd"},
		},
		{
			name: "rows outside are dropped",
			draw: func(w *Window) {
				w.AddLine(-1, 1, "above", theme.Normal)
				w.AddLine(1, 1, "inside", theme.Normal)
				w.AddLine(2, 1, "below", theme.Normal)
			},
			expected: []string{"", " inside"},
		},
		{
			name: "full row ignores further text",
			draw: func(w *Window) {
				w.AddLine(0, 0, "123456789", theme.Normal)
				w.AddSpace()
				w.AddLine(0, listing.Continue, "x", theme.Normal)
			},
			expected: []string{"123456789"},
		},
		{
			name:     "only the first line",
			draw:     func(w *Window) { w.AddLine(0, 0, "one\ntwo", theme.Normal) },
			expected: []string{"one"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			term, _ := newTestTerminal(t, 4, 20, Options{})
			win := term.Window(1, 2, 2, 10)
			tt.draw(win)

			c := term.Canvas()
			for i, line := range tt.expected {
				got := strings.TrimPrefix(c.Row(1+i), "  ")
				if got != line {
					t.Errorf("row %d: got %q, expected %q", i, got, line)
				}
			}
			if got := c.Row(0); got != "" {
				t.Errorf("drew above the window: %q", got)
			}
			if got := c.Row(3); got != "" {
				t.Errorf("drew below the window: %q", got)
			}
		})
	}
}

func TestWindowCursorBlock(t *testing.T) {
	term, _ := newTestTerminal(t, 2, 10, Options{})

	plain := term.Window(0, 0, 1, 10)
	plain.AddCh(0, 0, ' ', theme.CursorBlock)
	if term.Canvas().Get(0, 0).Style.Reverse {
		t.Error("cursor block drawn on an unselected item")
	}

	selected := term.Window(1, 0, 1, 10)
	selected.Select()
	selected.AddCh(0, 0, ' ', theme.CursorBlock)
	if !term.Canvas().Get(0, 1).Style.Reverse {
		t.Error("cursor block missing on the selected item")
	}
	bg := term.Style(theme.Selected)
	if got := term.Canvas().Get(5, 1).Style; got.BgRGB != bg.BgRGB {
		t.Errorf("selected background not painted: %+v", got)
	}
}

func TestClean(t *testing.T) {
	tests := []struct {
		name     string
		ascii    bool
		text     string
		width    int
		expected string
	}{
		{"plain", false, "hello", 10, "hello"},
		{"truncated", false, "hello world", 5, "hello"},
		{"wide runes", false, "日本語", 5, "日本"},
		{"first line", false, "a\nb", 10, "a"},
		{"controls dropped", false, "a\x1b[1mb\x07", 10, "a[1mb"},
		{"tabs", false, "a\tb", 10, "a b"},
		{"ascii", true, "▲ 10month", 20, "? 10month"},
		{"unicode kept", false, "▲", 5, "▲"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			term, _ := newTestTerminal(t, 1, 1, Options{ASCII: tt.ascii})
			if got := term.Clean(tt.text, tt.width); got != tt.expected {
				t.Errorf("got %q, expected %q", got, tt.expected)
			}
		})
	}
}

func TestGetKey(t *testing.T) {
	term, _ := newTestTerminal(t, 5, 10, Options{}, "j", "\x1b[A")
	ctx := context.Background()

	for _, want := range []string{"j", "\x1b[A"} {
		got, err := term.GetKey(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("got %q, expected %q", got, want)
		}
	}

	term.Resized()
	if got, _ := term.GetKey(ctx); got != KeyResize {
		t.Errorf("got %q, expected KeyResize", got)
	}
	if _, err := term.GetKey(ctx); !errors.Is(err, io.EOF) {
		t.Errorf("got %v, expected EOF", err)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := term.GetKey(cancelled); !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, expected context.Canceled", err)
	}
}

func TestResize(t *testing.T) {
	width, height := 10, 5
	term, err := New(&keys{}, io.Discard, func() (int, int, error) { return width, height, nil }, Options{})
	if err != nil {
		t.Fatal(err)
	}
	width, height = 30, 12
	term.Resized()
	if _, err := term.GetKey(context.Background()); err != nil {
		t.Fatal(err)
	}
	if rows, cols := term.Size(); rows != 12 || cols != 30 {
		t.Errorf("got %dx%d, expected 12x30", rows, cols)
	}
}

func TestPromptInput(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		text  string
		ok    bool
	}{
		{"submit", []string{"a", "b", "\x7f", "c", "\r"}, "ac", true},
		{"trimmed", []string{" ", "2", "0", " ", "\r"}, "20", true},
		{"paste", []string{"r/golang", "\r"}, "r/golang", true},
		{"cancel", []string{"a", "\x1b"}, "", false},
		{"resize is ignored", []string{"x", "\r"}, "x", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			term, _ := newTestTerminal(t, 5, 40, Options{}, tt.input...)
			if tt.name == "resize is ignored" {
				term.Resized()
			}
			text, ok, err := term.PromptInput(context.Background(), "Enter page: /")
			if err != nil {
				t.Fatal(err)
			}
			if text != tt.text || ok != tt.ok {
				t.Errorf("got %q %v, expected %q %v", text, ok, tt.text, tt.ok)
			}
		})
	}
}

func TestPromptInputDrawsPrompt(t *testing.T) {
	term, _ := newTestTerminal(t, 3, 40, Options{}, "g", "o")
	if _, _, err := term.PromptInput(context.Background(), "Search /r/golang: "); !errors.Is(err, io.EOF) {
		t.Fatalf("got %v, expected EOF once input ran out", err)
	}
	if got := term.Canvas().Row(2); got != "Search /r/golang: go" {
		t.Errorf("got %q", got)
	}
}

func TestShowNotification(t *testing.T) {
	term, out := newTestTerminal(t, 10, 40, Options{}, "3")
	key, err := term.ShowNotification(context.Background(), "Not logged in", theme.NoticeError)
	if err != nil {
		t.Fatal(err)
	}
	if key != "3" {
		t.Errorf("got key %q, expected %q", key, "3")
	}
	if !strings.Contains(term.Canvas().PlainText(), "Not logged in") {
		t.Error("message not drawn")
	}
	if out.Len() == 0 {
		t.Error("screen was not refreshed")
	}
}

func TestShowNotificationMultiline(t *testing.T) {
	term, _ := newTestTerminal(t, 10, 40, Options{}, "q")
	msg := "Sort by\n[1] hour\n[2] day"
	if _, err := term.ShowNotification(context.Background(), msg, theme.NoticeInfo); err != nil {
		t.Fatal(err)
	}
	text := term.Canvas().PlainText()
	for _, line := range strings.Split(msg, "\n") {
		if !strings.Contains(text, line) {
			t.Errorf("missing line %q", line)
		}
	}
}

func TestFlash(t *testing.T) {
	tests := []struct {
		enabled  bool
		expected string
	}{
		{true, render.FlashOn + render.FlashOff},
		{false, ""},
	}

	for _, tt := range tests {
		term, out := newTestTerminal(t, 2, 2, Options{Flash: tt.enabled})
		term.Flash()
		if got := out.String(); got != tt.expected {
			t.Errorf("flash=%v: got %q, expected %q", tt.enabled, got, tt.expected)
		}
	}
}

func TestLoading(t *testing.T) {
	term, _ := newTestTerminal(t, 10, 40, Options{})
	boom := errors.New("boom")

	err := term.Loading(context.Background(), "Loading", func(ctx context.Context) error {
		time.Sleep(120 * time.Millisecond)
		return boom
	})
	if !errors.Is(err, boom) {
		t.Errorf("got %v, expected %v", err, boom)
	}
	if !strings.Contains(term.Canvas().PlainText(), "Loading") {
		t.Error("spinner message not drawn")
	}

	if err := term.Loading(context.Background(), "Quick", func(context.Context) error { return nil }); err != nil {
		t.Errorf("got %v", err)
	}
}

func TestLoadingCancelsWork(t *testing.T) {
	term, _ := newTestTerminal(t, 10, 40, Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := term.Loading(ctx, "Loading", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, expected context.Canceled", err)
	}
}

func TestBrowserCommand(t *testing.T) {
	const url = "https://redd.it/99eh6b"

	tests := []struct {
		name       string
		configured string
		env        string
		goos       string
		expected   []string
	}{
		{"linux default", "", "", "linux", []string{"xdg-open", url}},
		{"darwin default", "", "", "darwin", []string{"open", url}},
		{"environment", "", "w3m:lynx", "linux", []string{"w3m", url}},
		{"configured wins", "firefox --new-tab", "w3m", "linux", []string{"firefox", "--new-tab", url}},
		{"placeholder", "chromium '--app=%s'", "", "linux", []string{"chromium", "--app=" + url}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := browserCommand(tt.configured, tt.env, tt.goos, url)
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("got %q, expected %q", got, tt.expected)
			}
		})
	}

	if _, err := browserCommand(`firefox "`, "", "linux", url); err == nil {
		t.Error("expected a parse error")
	}
}

func TestEditorCommand(t *testing.T) {
	tests := []struct {
		name                       string
		configured, visual, editor string
		expected                   []string
	}{
		{"fallback", "", "", "", []string{"nano"}},
		{"editor", "", "", "vi", []string{"vi"}},
		{"visual before editor", "", "code --wait", "vi", []string{"code", "--wait"}},
		{"configured", "emacs -nw", "code", "vi", []string{"emacs", "-nw"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := editorCommand(tt.configured, tt.visual, tt.editor)
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("got %q, expected %q", got, tt.expected)
			}
		})
	}
}

func TestOpenEditor(t *testing.T) {
	term, _ := newTestTerminal(t, 2, 2, Options{Editor: "fake-editor --flag"})

	var suspended, resumed int
	term.Suspend = func() error { suspended++; return nil }
	term.Resume = func() error { resumed++; return nil }

	var gotArgv []string
	term.Run = func(argv []string) error {
		gotArgv = argv
		path := argv[len(argv)-1]
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return os.WriteFile(path, append([]byte("My title\n"), data...), 0o600)
	}

	text, err := term.OpenEditor("<!-- instructions -->")
	if err != nil {
		t.Fatal(err)
	}
	if text != "My title\n<!-- instructions -->" {
		t.Errorf("got %q", text)
	}
	if len(gotArgv) != 3 || gotArgv[0] != "fake-editor" || gotArgv[1] != "--flag" {
		t.Errorf("got argv %q", gotArgv)
	}
	if suspended != 1 || resumed != 1 {
		t.Errorf("suspended %d resumed %d, expected 1 each", suspended, resumed)
	}
	if _, err := os.Stat(gotArgv[2]); !os.IsNotExist(err) {
		t.Error("edit file should be removed")
	}
}

func TestOpenEditorFailure(t *testing.T) {
	term, _ := newTestTerminal(t, 2, 2, Options{Editor: "fake"})
	resumed := false
	term.Resume = func() error { resumed = true; return nil }
	term.Run = func([]string) error { return errors.New("exit status 1") }

	if _, err := term.OpenEditor(""); err == nil {
		t.Error("expected an error")
	}
	if !resumed {
		t.Error("terminal must be resumed even when the editor fails")
	}
}

func TestOpenBrowser(t *testing.T) {
	tests := []struct {
		name     string
		browser  string
		attached bool
	}{
		{name: "graphical", browser: "mybrowser"},
		{name: "console", browser: "w3m", attached: true},
		{name: "console by path", browser: "/usr/bin/lynx -nopause", attached: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			term, _ := newTestTerminal(t, 2, 2, Options{Browser: tt.browser})
			var started, ran []string
			var suspended, resumed int
			term.Start = func(argv []string) error { started = argv; return nil }
			term.Run = func(argv []string) error { ran = argv; return nil }
			term.Suspend = func() error { suspended++; return nil }
			term.Resume = func() error { resumed++; return nil }

			if err := term.OpenBrowser("https://example.com"); err != nil {
				t.Fatal(err)
			}

			got := started
			if tt.attached {
				got = ran
				if started != nil {
					t.Errorf("console browser started detached: %q", started)
				}
				if suspended != 1 || resumed != 1 {
					t.Errorf("suspended %d resumed %d, expected 1 each", suspended, resumed)
				}
			} else if ran != nil || suspended != 0 {
				t.Errorf("graphical browser took over the terminal: %q", ran)
			}
			if len(got) == 0 || got[len(got)-1] != "https://example.com" {
				t.Errorf("got argv %q", got)
			}
		})
	}
}

func TestWindowRestyle(t *testing.T) {
	term, _ := newTestTerminal(t, 3, 20, Options{})
	win := term.Window(1, 2, 1, 10)
	win.AddLine(0, 0, "[1]hot [2]top", theme.OrderBar)
	win.Restyle(0, 7, 3, theme.OrderBarHighlight)
	win.Restyle(0, 8, 50, theme.OrderBarHighlight)
	win.Restyle(5, 0, 3, theme.OrderBarHighlight)

	canvas := term.Canvas()
	if got := canvas.Row(1); got != "  [1]hot [2" {
		t.Errorf("row = %q", got)
	}
	highlight := term.Style(theme.OrderBarHighlight)
	for x := 0; x < 20; x++ {
		want := x >= 9 && x < 12
		if got := canvas.Get(x, 1).Style == highlight; got != want {
			t.Errorf("column %d highlighted = %v, want %v", x, got, want)
		}
	}
	if canvas.Get(9, 1).Rune != '[' {
		t.Errorf("restyle changed the text: %q", canvas.Get(9, 1).Rune)
	}
}

func TestNotify(t *testing.T) {
	term, _ := newTestTerminal(t, 10, 40, Options{})
	if err := term.Notify(context.Background(), "Copied", theme.NoticeSuccess); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(term.Canvas().PlainText(), "Copied") {
		t.Error("message not drawn")
	}

	term.NoticeTimeout = time.Hour
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := term.Notify(ctx, "Copied", theme.NoticeSuccess); !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, expected context.Canceled", err)
	}
}

func TestPromptYesNo(t *testing.T) {
	tests := []struct {
		key      string
		expected bool
		flash    bool
	}{
		{key: "y", expected: true},
		{key: "Y", expected: true},
		{key: "n"},
		{key: "N"},
		{key: "\x1b"},
		{key: "x", flash: true},
	}

	for _, tt := range tests {
		t.Run(strconv.Quote(tt.key), func(t *testing.T) {
			term, out := newTestTerminal(t, 5, 40, Options{Flash: true}, tt.key)
			ok, err := term.PromptYesNo(context.Background(), "Quit? (y/n): ")
			if err != nil {
				t.Fatal(err)
			}
			if ok != tt.expected {
				t.Errorf("got %v, expected %v", ok, tt.expected)
			}
			if got := term.Canvas().Row(4); got != "Quit? (y/n):" {
				t.Errorf("prompt row = %q", got)
			}
			if got := bytes.Contains(out.Bytes(), []byte(render.FlashOn)); got != tt.flash {
				t.Errorf("flashed = %v, expected %v", got, tt.flash)
			}
		})
	}
}
