package term

import (
	"snoo/listing"
	"snoo/render"
	"snoo/theme"
)

var _ listing.Surface = (*Window)(nil)

// Window is a rectangle of the screen with its own coordinates and a cursor
// that advances as text is added. Writes outside it are dropped.
type Window struct {
	t          *Terminal
	y, x       int
	rows, cols int
	selected   bool

	row, col int
}

// Window returns the rectangle at (y, x) of rows by cols.
func (t *Terminal) Window(y, x, rows, cols int) *Window {
	return &Window{t: t, y: y, x: x, rows: rows, cols: cols}
}

// Size returns the window dimensions.
func (w *Window) Size() (rows, cols int) {
	return w.rows, w.cols
}

// Select paints the window with the selected background; everything drawn
// afterwards keeps it.
func (w *Window) Select() {
	w.selected = true
	w.Fill(theme.Selected)
}

// Fill paints the window with attr.
func (w *Window) Fill(attr theme.Attr) {
	w.t.canvas.Fill(w.x, w.y, w.cols, w.rows, w.t.Style(attr))
}

func (w *Window) style(attr theme.Attr) render.Style {
	if !w.selected {
		// The cursor block only shows on the selected item.
		if attr == theme.CursorBlock {
			attr = theme.Normal
		}
		return w.t.Style(attr)
	}
	return w.t.Style(attr).WithBackground(w.t.Style(theme.Selected))
}

// AddLine draws text at row, starting at col or after the cursor when col is
// listing.Continue. The last column is never written.
func (w *Window) AddLine(row, col int, text string, attr theme.Attr) {
	if col == listing.Continue {
		col = w.col
	}
	w.row, w.col = row, col
	if row < 0 || row >= w.rows || col < 0 {
		return
	}
	avail := w.cols - 1 - col
	if avail <= 0 {
		return
	}
	text = w.t.Clean(text, avail)
	w.col += w.t.canvas.WriteString(w.x+col, w.y+row, text, w.style(attr))
}

// AddSpace draws one blank after the cursor.
func (w *Window) AddSpace() {
	w.AddLine(w.row, listing.Continue, " ", theme.Normal)
}

// AddCh draws a single rune at (row, col), including the last column.
func (w *Window) AddCh(row, col int, ch rune, attr theme.Attr) {
	if row < 0 || row >= w.rows || col < 0 || col >= w.cols {
		return
	}
	w.t.canvas.Set(w.x+col, w.y+row, ch, w.style(attr))
}

// Restyle changes the style of n cells at (row, col) without touching the
// text.
func (w *Window) Restyle(row, col, n int, attr theme.Attr) {
	if row < 0 || row >= w.rows {
		return
	}
	style := w.style(attr)
	for x := max(col, 0); x < min(col+n, w.cols); x++ {
		cell := w.t.canvas.Get(w.x+x, w.y+row)
		w.t.canvas.Set(w.x+x, w.y+row, cell.Rune, style)
	}
}
