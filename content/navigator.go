package content

// Navigator tracks which submission is selected and how the page is laid
// out. When inverted, PageIndex is the bottom item and items are drawn
// upwards from the bottom of the screen.
type Navigator struct {
	PageIndex   int
	CursorIndex int
	Inverted    bool

	valid func(index int) bool
}

// NewNavigator returns a navigator at the top of the listing. valid reports
// whether an absolute index names a submission.
func NewNavigator(valid func(index int) bool) *Navigator {
	return &Navigator{valid: valid}
}

// Step is the direction items are laid out in.
func (n *Navigator) Step() int {
	if n.Inverted {
		return -1
	}
	return 1
}

// AbsoluteIndex is the listing index of the selected item.
func (n *Navigator) AbsoluteIndex() int {
	return n.PageIndex + n.Step()*n.CursorIndex
}

// Move moves the cursor one item in direction (1 down, -1 up) given the
// number of item windows on screen. It reports whether the move was possible
// and whether the page needs to be redrawn from a new origin.
func (n *Navigator) Move(direction, nWindows int) (valid, redraw bool) {
	valid = true
	forward := direction*n.Step() > 0

	if forward {
		if n.PageIndex < 0 {
			if n.valid(0) {
				n.PageIndex = 0
				n.CursorIndex = 0
				redraw = true
			} else {
				valid = false
			}
			return valid, redraw
		}
		n.CursorIndex++
		switch {
		case !n.valid(n.AbsoluteIndex()):
			n.CursorIndex--
			valid = false
		case n.CursorIndex >= nWindows-1:
			// Selected the last visible window: pin it to the far edge.
			n.Flip(n.CursorIndex)
			n.CursorIndex = 0
			redraw = true
		}
		return valid, redraw
	}

	if n.CursorIndex > 0 {
		n.CursorIndex--
		return valid, redraw
	}
	n.PageIndex -= n.Step()
	if n.valid(n.AbsoluteIndex()) {
		redraw = true
	} else {
		n.PageIndex += n.Step()
		valid = false
	}
	return valid, redraw
}

// MovePage moves a screen at a time: the last visible item becomes the first
// when paging down, and the first becomes the last when paging up.
func (n *Navigator) MovePage(direction, nWindows int) (valid, redraw bool) {
	if n.AbsoluteIndex() < 0 || nWindows <= 1 {
		return n.Move(direction, nWindows)
	}

	top := n.PageIndex
	if n.Inverted {
		top = n.PageIndex - (nWindows - 1)
	}
	if top < 0 {
		top = 0
	}

	if direction > 0 {
		for k := nWindows - 1; k > 0; k-- {
			if n.valid(top + k) {
				n.PageIndex = top + k
				n.CursorIndex = 0
				n.Inverted = false
				return true, true
			}
		}
		return false, false
	}

	if top == 0 {
		moved := n.AbsoluteIndex() != 0
		n.PageIndex, n.CursorIndex, n.Inverted = 0, 0, false
		return moved, moved
	}
	n.PageIndex = top
	n.CursorIndex = 0
	n.Inverted = true
	return true, true
}

// Flip reverses the layout direction, keeping the item nWindows away from
// the current origin selected.
func (n *Navigator) Flip(nWindows int) {
	n.PageIndex += n.Step() * nWindows
	n.CursorIndex = nWindows
	n.Inverted = !n.Inverted
}
