package content

import "testing"

func validBelow(n int) func(int) bool {
	return func(i int) bool { return i >= 0 && i < n }
}

func TestNavigatorMove(t *testing.T) {
	nav := NewNavigator(validBelow(10))

	valid, redraw := nav.Move(1, 4)
	if !valid || redraw || nav.AbsoluteIndex() != 1 {
		t.Errorf("first move: valid=%v redraw=%v index=%d", valid, redraw, nav.AbsoluteIndex())
	}

	nav.Move(1, 4)
	// Reaching the last visible window flips the layout.
	valid, redraw = nav.Move(1, 4)
	if !valid || !redraw {
		t.Errorf("expected a redraw at the bottom window, valid=%v redraw=%v", valid, redraw)
	}
	if !nav.Inverted || nav.PageIndex != 3 || nav.CursorIndex != 0 {
		t.Errorf("got page=%d cursor=%d inverted=%v", nav.PageIndex, nav.CursorIndex, nav.Inverted)
	}
	if nav.AbsoluteIndex() != 3 {
		t.Errorf("got index %d, expected 3", nav.AbsoluteIndex())
	}

	// Moving down while inverted advances the page.
	valid, redraw = nav.Move(1, 4)
	if !valid || !redraw || nav.AbsoluteIndex() != 4 {
		t.Errorf("got valid=%v redraw=%v index=%d", valid, redraw, nav.AbsoluteIndex())
	}

	// Moving up while inverted moves the cursor within the page.
	valid, redraw = nav.Move(-1, 4)
	if !valid || redraw || nav.AbsoluteIndex() != 3 {
		t.Errorf("got valid=%v redraw=%v index=%d", valid, redraw, nav.AbsoluteIndex())
	}
}

func TestNavigatorBounds(t *testing.T) {
	nav := NewNavigator(validBelow(2))

	if valid, _ := nav.Move(-1, 5); valid {
		t.Error("moving above the first item should be invalid")
	}
	if nav.AbsoluteIndex() != 0 {
		t.Errorf("got %d, expected 0", nav.AbsoluteIndex())
	}

	nav.Move(1, 5)
	if valid, _ := nav.Move(1, 5); valid {
		t.Error("moving past the last item should be invalid")
	}
	if nav.AbsoluteIndex() != 1 {
		t.Errorf("got %d, expected 1", nav.AbsoluteIndex())
	}
}

func TestNavigatorMovePage(t *testing.T) {
	nav := NewNavigator(validBelow(10))

	valid, redraw := nav.MovePage(1, 4)
	if !valid || !redraw || nav.AbsoluteIndex() != 3 || nav.Inverted {
		t.Errorf("page down: valid=%v redraw=%v index=%d inverted=%v", valid, redraw, nav.AbsoluteIndex(), nav.Inverted)
	}

	nav.MovePage(1, 4)
	if nav.AbsoluteIndex() != 6 {
		t.Errorf("got %d, expected 6", nav.AbsoluteIndex())
	}

	// Near the end only the remaining items are skipped.
	nav.MovePage(1, 4)
	if nav.AbsoluteIndex() != 9 {
		t.Errorf("got %d, expected 9", nav.AbsoluteIndex())
	}
	if valid, _ := nav.MovePage(1, 4); valid {
		t.Error("paging past the end should be invalid")
	}

	// Paging up pins the old top item to the bottom.
	valid, redraw = nav.MovePage(-1, 4)
	if !valid || !redraw || !nav.Inverted || nav.AbsoluteIndex() != 9 {
		t.Errorf("page up: valid=%v redraw=%v index=%d inverted=%v", valid, redraw, nav.AbsoluteIndex(), nav.Inverted)
	}
	nav.MovePage(-1, 4)
	if nav.AbsoluteIndex() != 6 {
		t.Errorf("got %d, expected 6", nav.AbsoluteIndex())
	}
	nav.MovePage(-1, 4)
	nav.MovePage(-1, 4)
	nav.MovePage(-1, 4)
	if nav.AbsoluteIndex() != 0 || nav.Inverted {
		t.Errorf("got index %d inverted=%v, expected the top", nav.AbsoluteIndex(), nav.Inverted)
	}
	if valid, _ := nav.MovePage(-1, 4); valid {
		t.Error("paging above the top should be invalid")
	}
}

func TestNavigatorFlip(t *testing.T) {
	nav := NewNavigator(validBelow(10))
	nav.Flip(3)
	if !nav.Inverted || nav.PageIndex != 3 || nav.CursorIndex != 3 || nav.AbsoluteIndex() != 0 {
		t.Errorf("got page=%d cursor=%d inverted=%v", nav.PageIndex, nav.CursorIndex, nav.Inverted)
	}
	nav.Flip(3)
	if nav.Inverted || nav.PageIndex != 0 || nav.AbsoluteIndex() != 3 {
		t.Errorf("got page=%d cursor=%d inverted=%v", nav.PageIndex, nav.CursorIndex, nav.Inverted)
	}
}
