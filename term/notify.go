package term

import (
	"context"
	"strings"
	"time"

	"snoo/lineedit"
	"snoo/listing"
	"snoo/render"
	"snoo/theme"
)

// ShowNotification draws message in a centered box and waits for a key,
// which it returns. Lines that do not fit are cut.
func (t *Terminal) ShowNotification(ctx context.Context, message string, attr theme.Attr) (string, error) {
	t.drawNotification(message, attr)
	if err := t.Refresh(); err != nil {
		return "", err
	}
	return t.GetKey(ctx)
}

func (t *Terminal) drawNotification(message string, attr theme.Attr) {
	rows, cols := t.Size()
	lines := strings.Split(strings.TrimRight(message, "\n"), "\n")

	width := 0
	for _, line := range lines {
		width = max(width, render.StringWidth(line))
	}
	boxWidth := min(width+4, cols)
	boxHeight := min(len(lines)+2, rows)
	if boxWidth < 3 || boxHeight < 3 {
		return
	}
	if len(lines) > boxHeight-2 {
		lines = lines[:boxHeight-2]
	}

	x := (cols - boxWidth) / 2
	y := (rows - boxHeight) / 2
	style := t.Style(attr)
	t.canvas.Fill(x, y, boxWidth, boxHeight, style)
	t.canvas.DrawBox(x, y, boxWidth, boxHeight, t.box, style)
	for i, line := range lines {
		t.canvas.WriteString(x+2, y+1+i, t.Clean(line, boxWidth-4), style)
	}
}

// Flash flashes the screen when flashing is enabled.
func (t *Terminal) Flash() {
	if !t.opts.Flash {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.out.Write([]byte(render.FlashOn))
	time.Sleep(t.FlashDuration)
	t.out.Write([]byte(render.FlashOff))
}

// PromptInput reads a line on the bottom row. It returns false when the
// user cancels.
func (t *Terminal) PromptInput(ctx context.Context, prompt string) (string, bool, error) {
	editor := lineedit.New()
	t.scheme.ResetRecall()

	for {
		t.drawPrompt(prompt, editor)
		if err := t.Refresh(); err != nil {
			return "", false, err
		}

		key, err := t.GetKey(ctx)
		if err != nil {
			return "", false, err
		}
		if key == KeyResize {
			continue
		}

		ev := t.scheme.HandleKey(editor, []byte(key))
		switch {
		case ev.Submit:
			text := strings.TrimSpace(editor.Text())
			t.scheme.Remember(text)
			return text, true, nil
		case ev.Cancel:
			return "", false, nil
		}
	}
}

func (t *Terminal) drawPrompt(prompt string, editor *lineedit.Editor) {
	rows, cols := t.Size()
	if rows == 0 {
		return
	}
	win := t.Window(rows-1, 0, 1, cols)
	win.Fill(theme.Normal)
	win.AddLine(0, 0, prompt, theme.Prompt)
	win.AddLine(0, listing.Continue, editor.BeforeCursor(), theme.Normal)

	after := []rune(editor.AfterCursor())
	cursor := ' '
	if len(after) > 0 {
		cursor, after = after[0], after[1:]
	}
	if w := win.col; w < cols-1 {
		win.t.canvas.Set(win.x+w, win.y, cursor, t.Style(theme.CursorBlock))
		win.col += max(render.UnicodeWidth(cursor), 1)
	}
	win.AddLine(0, listing.Continue, string(after), theme.Normal)
}

// Loading runs fn while a spinner with message is drawn over the screen. It
// returns fn's error. The spinner appears only once fn has taken longer than
// LoaderDelay.
func (t *Terminal) Loading(ctx context.Context, message string, fn func(context.Context) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- fn(ctx) }()

	style := render.SpinnerBraille
	if t.opts.ASCII {
		style = render.SpinnerASCII
	}
	display := render.NewLoadingDisplay(style, message, t.box)

	start := time.Now()
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case err := <-done:
			return err
		case <-ticker.C:
			if time.Since(start) < t.LoaderDelay {
				continue
			}
			display.Tick()
			t.mu.Lock()
			display.Draw(t.canvas, "", t.Style(theme.NoticeLoading), t.Style(theme.Link))
			t.mu.Unlock()
			if err := t.Refresh(); err != nil {
				t.logger.Warn("drawing loader", "err", err)
			}
		}
	}
}

// Notify shows message for NoticeTimeout without waiting for a key.
func (t *Terminal) Notify(ctx context.Context, message string, attr theme.Attr) error {
	t.drawNotification(message, attr)
	if err := t.Refresh(); err != nil {
		return err
	}
	if t.NoticeTimeout <= 0 {
		return nil
	}
	timer := time.NewTimer(t.NoticeTimeout)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// PromptYesNo asks a yes or no question on the bottom row. Anything other
// than y or n flashes and counts as no.
func (t *Terminal) PromptYesNo(ctx context.Context, prompt string) (bool, error) {
	rows, cols := t.Size()
	if rows > 0 {
		win := t.Window(rows-1, 0, 1, cols)
		win.Fill(theme.Normal)
		win.AddLine(0, 0, prompt, theme.Prompt)
	}
	if err := t.Refresh(); err != nil {
		return false, err
	}

	key, err := t.GetKey(ctx)
	if err != nil {
		return false, err
	}
	switch key {
	case "y", "Y":
		return true, nil
	case "n", "N", "\x1b":
		return false, nil
	}
	t.Flash()
	return false, nil
}
