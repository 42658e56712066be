package lineedit

import "testing"

func TestEmacsScheme(t *testing.T) {
	e := New()
	s := NewEmacsScheme()

	// Type "hello"
	for _, ch := range "hello" {
		ev := s.HandleKey(e, []byte{byte(ch)})
		if !ev.Consumed || !ev.TextChanged {
			t.Error("printable chars should be consumed and change text")
		}
	}
	if e.Text() != "hello" {
		t.Errorf("expected 'hello', got %q", e.Text())
	}

	// Ctrl+A goes home
	ev := s.HandleKey(e, []byte{1})
	if !ev.Consumed || e.cursor != 0 {
		t.Error("Ctrl+A should move to start")
	}

	// Ctrl+E goes to end
	ev = s.HandleKey(e, []byte{5})
	if !ev.Consumed || e.cursor != 5 {
		t.Error("Ctrl+E should move to end")
	}

	// Ctrl+W deletes word
	ev = s.HandleKey(e, []byte{23})
	if !ev.TextChanged || e.Text() != "" {
		t.Errorf("Ctrl+W should delete word, got %q", e.Text())
	}

	// Enter submits
	e.Set("test")
	ev = s.HandleKey(e, []byte{13})
	if !ev.Submit {
		t.Error("Enter should submit")
	}

	// Escape cancels
	ev = s.HandleKey(e, []byte{27})
	if !ev.Cancel {
		t.Error("Escape should cancel")
	}
}

func TestEmacsSchemeMultibyte(t *testing.T) {
	e := New()
	s := NewEmacsScheme()

	s.HandleKey(e, []byte("❤"))
	s.HandleKey(e, []byte("ab"))
	if e.Text() != "❤ab" {
		t.Errorf("expected '❤ab', got %q", e.Text())
	}

	s.HandleKey(e, []byte{127})
	if e.Text() != "❤a" {
		t.Errorf("backspace should remove one rune, got %q", e.Text())
	}
}

func TestEmacsSchemeArrows(t *testing.T) {
	e := New()
	s := NewEmacsScheme()
	e.Set("abc")

	s.HandleKey(e, []byte("\x1b[D"))
	if e.cursor != 2 {
		t.Errorf("left arrow: expected 2, got %d", e.cursor)
	}
	s.HandleKey(e, []byte("\x1b[H"))
	if e.cursor != 0 {
		t.Errorf("home: expected 0, got %d", e.cursor)
	}
	s.HandleKey(e, []byte("\x1b[3~"))
	if e.Text() != "bc" {
		t.Errorf("delete: expected 'bc', got %q", e.Text())
	}
	if ev := s.HandleKey(e, []byte("\x1b[Z")); ev.Consumed {
		t.Error("unknown sequence should not be consumed")
	}
}

func TestEmacsSchemeRecall(t *testing.T) {
	e := New()
	s := NewEmacsScheme()
	s.Remember("python")
	s.Remember("golang")
	s.Remember("golang")
	s.ResetRecall()

	e.Set("dra")
	s.HandleKey(e, []byte("\x1b[A"))
	if e.Text() != "golang" {
		t.Errorf("expected 'golang', got %q", e.Text())
	}
	s.HandleKey(e, []byte{16}) // Ctrl+P
	if e.Text() != "python" {
		t.Errorf("expected 'python', got %q", e.Text())
	}
	if ev := s.HandleKey(e, []byte("\x1b[A")); ev.TextChanged {
		t.Error("recall past the oldest entry should not change text")
	}
	s.HandleKey(e, []byte("\x1b[B"))
	s.HandleKey(e, []byte{14}) // Ctrl+N
	if e.Text() != "dra" {
		t.Errorf("expected draft 'dra' restored, got %q", e.Text())
	}
}
