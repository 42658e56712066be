// Package term is the drawing surface and input source of the UI. It owns the
// canvas, maps theme attributes to styles and talks to the user through
// notifications, prompts and the loading spinner.
package term

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"
	"unicode"

	"github.com/muesli/termenv"

	"snoo/format"
	"snoo/lineedit"
	"snoo/render"
	"snoo/theme"
)

// KeyResize is returned by GetKey after the terminal changed size.
const KeyResize = "\x1b<resize>"

// Options configure a Terminal.
type Options struct {
	ASCII      bool // draw only ascii characters
	Monochrome bool
	Flash      bool   // flash the screen on invalid actions
	Browser    string // browser command, empty for $BROWSER or the platform opener
	Editor     string // editor command, empty for $VISUAL, $EDITOR, then nano
	Logger     *slog.Logger
}

// Terminal draws onto a canvas and flushes it to out. Keys are read from in,
// which in raw mode returns empty reads every 100ms.
type Terminal struct {
	mu     sync.Mutex
	canvas *render.Canvas
	in     io.Reader
	out    io.Writer
	size   func() (width, height int, err error)
	opts   Options
	glyphs format.Glyphs
	box    render.BoxStyle
	scheme *lineedit.EmacsScheme
	logger *slog.Logger

	resized atomic.Bool

	// Start launches a program detached from the terminal, Run one that
	// takes it over. Suspend and Resume hand the tty to Run and back.
	Start   func(argv []string) error
	Run     func(argv []string) error
	Suspend func() error
	Resume  func() error

	FlashDuration time.Duration
	LoaderDelay   time.Duration // the spinner only shows for slower work
	NoticeTimeout time.Duration // how long Notify keeps a message up
}

// New creates a terminal sized by size.
func New(in io.Reader, out io.Writer, size func() (int, int, error), opts Options) (*Terminal, error) {
	width, height, err := size()
	if err != nil {
		return nil, err
	}

	t := &Terminal{
		canvas:        render.NewCanvas(width, height),
		in:            in,
		out:           out,
		size:          size,
		opts:          opts,
		glyphs:        format.UnicodeGlyphs,
		box:           render.RoundedBox,
		scheme:        lineedit.NewEmacsScheme(),
		logger:        opts.Logger,
		Start:         startDetached,
		Run:           runAttached,
		Suspend:       func() error { return nil },
		Resume:        func() error { return nil },
		FlashDuration: 100 * time.Millisecond,
		LoaderDelay:   150 * time.Millisecond,
		NoticeTimeout: time.Second,
	}
	if t.logger == nil {
		t.logger = slog.New(slog.DiscardHandler)
	}
	if opts.ASCII {
		t.glyphs = format.ASCIIGlyphs
		t.box = render.ASCIIBox
	}
	if opts.Monochrome {
		t.canvas.SetProfile(termenv.Ascii)
	} else {
		t.canvas.SetProfile(termenv.EnvColorProfile())
	}
	return t, nil
}

// Size returns the screen size.
func (t *Terminal) Size() (rows, cols int) {
	return t.canvas.Height(), t.canvas.Width()
}

// Canvas exposes the screen buffer.
func (t *Terminal) Canvas() *render.Canvas {
	return t.canvas
}

// Glyphs returns the vote and gilding symbols for the active mode.
func (t *Terminal) Glyphs() format.Glyphs {
	return t.glyphs
}

// Style resolves attr against the current theme.
func (t *Terminal) Style(attr theme.Attr) render.Style {
	s := theme.Current.Style(attr)
	if t.opts.Monochrome {
		s = s.Plain()
	}
	return s
}

// Resized records a size change; the next GetKey picks it up. Safe to call
// from a signal handler goroutine.
func (t *Terminal) Resized() {
	t.resized.Store(true)
}

func (t *Terminal) applyResize() {
	width, height, err := t.size()
	if err != nil {
		t.logger.Warn("reading terminal size", "err", err)
		return
	}
	t.mu.Lock()
	t.canvas.Resize(width, height)
	t.mu.Unlock()
}

// Clear paints the whole screen with the normal style.
func (t *Terminal) Clear() {
	rows, cols := t.Size()
	t.canvas.Fill(0, 0, cols, rows, t.Style(theme.Normal))
}

// Refresh flushes the canvas to the terminal.
func (t *Terminal) Refresh() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.canvas.RenderTo(t.out)
}

// GetKey blocks until a key arrives, the terminal is resized or ctx is done.
func (t *Terminal) GetKey(ctx context.Context) (string, error) {
	buf := make([]byte, 64)
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if t.resized.Swap(false) {
			t.applyResize()
			return KeyResize, nil
		}
		n, err := t.in.Read(buf)
		if n > 0 {
			return string(buf[:n]), nil
		}
		if err != nil {
			return "", err
		}
	}
}

// Clean prepares text for a single row: only the first line is kept,
// control characters are dropped, non-ascii is replaced in ascii mode and the
// result is cut to width cells.
func (t *Terminal) Clean(text string, width int) string {
	text, _, _ = strings.Cut(text, "\n")
	text = strings.Map(func(r rune) rune {
		switch {
		case r == '\t':
			return ' '
		case unicode.IsControl(r):
			return -1
		case t.opts.ASCII && r > unicode.MaxASCII:
			return '?'
		}
		return r
	}, text)
	return render.TruncateToWidth(text, width)
}
