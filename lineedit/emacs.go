package lineedit

import "unicode/utf8"

// Event represents the result of handling a key press.
type Event struct {
	Consumed    bool // true if the scheme handled the key
	TextChanged bool // true if editor content was modified
	Submit      bool // true if user wants to submit (Enter)
	Cancel      bool // true if user wants to cancel/exit
}

// EmacsScheme implements emacs-style keybindings.
// Always in "insert mode" - all printable characters go to the editor.
// Up and Down walk through previously submitted lines.
type EmacsScheme struct {
	history []string
	recall  int    // index into history while browsing, len(history) when not
	draft   string // text being edited before browsing started
}

// NewEmacsScheme creates a new emacs keybinding scheme.
func NewEmacsScheme() *EmacsScheme {
	return &EmacsScheme{}
}

// Remember adds a submitted line to the recall history.
func (s *EmacsScheme) Remember(line string) {
	if line == "" {
		return
	}
	if n := len(s.history); n > 0 && s.history[n-1] == line {
		s.recall = len(s.history)
		return
	}
	s.history = append(s.history, line)
	s.recall = len(s.history)
}

// ResetRecall leaves history browsing; call it when a prompt opens.
func (s *EmacsScheme) ResetRecall() {
	s.recall = len(s.history)
	s.draft = ""
}

func (s *EmacsScheme) recallPrev(e *Editor) Event {
	if s.recall == 0 {
		return Event{Consumed: true}
	}
	if s.recall == len(s.history) {
		s.draft = e.Text()
	}
	s.recall--
	e.Set(s.history[s.recall])
	return Event{Consumed: true, TextChanged: true}
}

func (s *EmacsScheme) recallNext(e *Editor) Event {
	if s.recall >= len(s.history) {
		return Event{Consumed: true}
	}
	s.recall++
	if s.recall == len(s.history) {
		e.Set(s.draft)
	} else {
		e.Set(s.history[s.recall])
	}
	return Event{Consumed: true, TextChanged: true}
}

// HandleKey processes a key press using emacs keybindings. buf holds the
// bytes of one read from the terminal.
func (s *EmacsScheme) HandleKey(e *Editor, buf []byte) Event {
	n := len(buf)
	if n == 0 {
		return Event{}
	}

	// Check for escape sequences (Alt+key, arrow keys)
	if buf[0] == 27 && n >= 2 {
		switch {
		case buf[1] == 127: // Alt+Backspace
			e.SaveState()
			e.DeleteWordBackward()
			return Event{Consumed: true, TextChanged: true}
		case buf[1] == 'b' || buf[1] == 'B': // Alt+B
			e.WordLeft()
			return Event{Consumed: true}
		case buf[1] == 'f' || buf[1] == 'F': // Alt+F
			e.WordRight()
			return Event{Consumed: true}
		case buf[1] == 'd' || buf[1] == 'D': // Alt+D
			e.SaveState()
			e.DeleteWordForward()
			return Event{Consumed: true, TextChanged: true}
		case n >= 3 && buf[1] == '[': // Arrow keys
			switch buf[2] {
			case 'C': // Right
				e.Right()
				return Event{Consumed: true}
			case 'D': // Left
				e.Left()
				return Event{Consumed: true}
			case 'A':
				return s.recallPrev(e)
			case 'B':
				return s.recallNext(e)
			case 'H':
				e.Home()
				return Event{Consumed: true}
			case 'F':
				e.End()
				return Event{Consumed: true}
			case '3': // Delete
				e.SaveState()
				return Event{Consumed: true, TextChanged: e.DeleteForward()}
			}
		}
		return Event{Consumed: false}
	}

	switch {
	case n == 1 && buf[0] == 27: // Escape
		return Event{Consumed: true, Cancel: true}

	case buf[0] == 3 || buf[0] == 7: // Ctrl+C, Ctrl+G
		return Event{Consumed: true, Cancel: true}

	case buf[0] == 13 || buf[0] == 10: // Enter
		return Event{Consumed: true, Submit: true}

	case buf[0] == 1: // Ctrl+A
		e.Home()
		return Event{Consumed: true}

	case buf[0] == 5: // Ctrl+E
		e.End()
		return Event{Consumed: true}

	case buf[0] == 6: // Ctrl+F
		e.Right()
		return Event{Consumed: true}

	case buf[0] == 2: // Ctrl+B
		e.Left()
		return Event{Consumed: true}

	case buf[0] == 16: // Ctrl+P
		return s.recallPrev(e)

	case buf[0] == 14: // Ctrl+N
		return s.recallNext(e)

	case buf[0] == 4: // Ctrl+D
		e.SaveState()
		if e.DeleteForward() {
			return Event{Consumed: true, TextChanged: true}
		}
		return Event{Consumed: true}

	case buf[0] == 11: // Ctrl+K
		e.SaveState()
		e.KillToEnd()
		return Event{Consumed: true, TextChanged: true}

	case buf[0] == 21: // Ctrl+U
		e.SaveState()
		e.KillToStart()
		return Event{Consumed: true, TextChanged: true}

	case buf[0] == 23: // Ctrl+W
		e.SaveState()
		e.DeleteWordBackward()
		return Event{Consumed: true, TextChanged: true}

	case buf[0] == 20: // Ctrl+T
		e.SaveState()
		e.Transpose()
		return Event{Consumed: true, TextChanged: true}

	case buf[0] == 26 || buf[0] == 31: // Ctrl+Z or Ctrl+_ (undo)
		if e.Undo() {
			return Event{Consumed: true, TextChanged: true}
		}
		return Event{Consumed: true}

	case buf[0] == 127 || buf[0] == 8: // Backspace
		e.SaveState()
		if e.DeleteBackward() {
			return Event{Consumed: true, TextChanged: true}
		}
		return Event{Consumed: true}

	case buf[0] >= 32: // Printable, possibly several runes from a paste
		e.SaveState()
		changed := false
		for len(buf) > 0 {
			r, size := utf8.DecodeRune(buf)
			buf = buf[size:]
			if r == utf8.RuneError || r < 32 || r == 127 {
				continue
			}
			e.Insert(r)
			changed = true
		}
		return Event{Consumed: true, TextChanged: changed}
	}

	return Event{Consumed: false}
}
