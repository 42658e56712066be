// Package lineedit provides the single-line editor behind the prompt bar.
package lineedit

import "unicode"

// editorState represents a snapshot of editor state for undo.
type editorState struct {
	text   []rune
	cursor int
}

// Editor is a simple single-line text editor with cursor tracking. Positions
// are rune offsets so multi-byte input edits as one character.
type Editor struct {
	text    []rune
	cursor  int
	history []editorState // Undo history stack
	maxHist int           // Maximum history size (0 = unlimited)
}

// New creates a new empty Editor.
func New() *Editor {
	return &Editor{maxHist: 100}
}

// Text returns the current text.
func (e *Editor) Text() string {
	return string(e.text)
}

// Len returns the length of the text in runes.
func (e *Editor) Len() int {
	return len(e.text)
}

// Clear resets the editor to empty state.
func (e *Editor) Clear() {
	e.text = e.text[:0]
	e.cursor = 0
}

// Set replaces the text and moves cursor to end.
func (e *Editor) Set(text string) {
	e.text = []rune(text)
	e.cursor = len(e.text)
}

// SaveState saves the current state to the undo history.
// Call this before making changes that should be undoable.
func (e *Editor) SaveState() {
	if len(e.history) > 0 {
		last := e.history[len(e.history)-1]
		if last.cursor == e.cursor && string(last.text) == string(e.text) {
			return
		}
	}

	textCopy := make([]rune, len(e.text))
	copy(textCopy, e.text)
	e.history = append(e.history, editorState{text: textCopy, cursor: e.cursor})

	if e.maxHist > 0 && len(e.history) > e.maxHist {
		e.history = e.history[1:]
	}
}

// Undo restores the previous state from the undo history.
// Returns true if undo was performed, false if history is empty.
func (e *Editor) Undo() bool {
	if len(e.history) == 0 {
		return false
	}
	last := e.history[len(e.history)-1]
	e.history = e.history[:len(e.history)-1]
	e.text = last.text
	e.cursor = last.cursor
	return true
}

// BeforeCursor returns text before the cursor.
func (e *Editor) BeforeCursor() string {
	return string(e.text[:e.cursor])
}

// AfterCursor returns text from the cursor to the end.
func (e *Editor) AfterCursor() string {
	return string(e.text[e.cursor:])
}

// Insert adds a character at the cursor position.
func (e *Editor) Insert(r rune) {
	e.text = append(e.text, 0)
	copy(e.text[e.cursor+1:], e.text[e.cursor:])
	e.text[e.cursor] = r
	e.cursor++
}

// DeleteBackward removes the character before the cursor (backspace).
// Returns true if a character was deleted.
func (e *Editor) DeleteBackward() bool {
	if e.cursor == 0 {
		return false
	}
	e.text = append(e.text[:e.cursor-1], e.text[e.cursor:]...)
	e.cursor--
	return true
}

// DeleteForward removes the character at the cursor (delete).
// Returns true if a character was deleted.
func (e *Editor) DeleteForward() bool {
	if e.cursor >= len(e.text) {
		return false
	}
	e.text = append(e.text[:e.cursor], e.text[e.cursor+1:]...)
	return true
}

// Left moves cursor one character left.
func (e *Editor) Left() bool {
	if e.cursor == 0 {
		return false
	}
	e.cursor--
	return true
}

// Right moves cursor one character right.
func (e *Editor) Right() bool {
	if e.cursor >= len(e.text) {
		return false
	}
	e.cursor++
	return true
}

// Home moves cursor to beginning of line.
func (e *Editor) Home() {
	e.cursor = 0
}

// End moves cursor to end of line.
func (e *Editor) End() {
	e.cursor = len(e.text)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

func (e *Editor) wordBoundaryLeft() int {
	pos := e.cursor
	for pos > 0 && !isWordRune(e.text[pos-1]) {
		pos--
	}
	for pos > 0 && isWordRune(e.text[pos-1]) {
		pos--
	}
	return pos
}

func (e *Editor) wordBoundaryRight() int {
	pos := e.cursor
	for pos < len(e.text) && !isWordRune(e.text[pos]) {
		pos++
	}
	for pos < len(e.text) && isWordRune(e.text[pos]) {
		pos++
	}
	return pos
}

// WordLeft moves to the start of the previous word.
func (e *Editor) WordLeft() {
	e.cursor = e.wordBoundaryLeft()
}

// WordRight moves past the end of the next word.
func (e *Editor) WordRight() {
	e.cursor = e.wordBoundaryRight()
}

// DeleteWordBackward deletes from the start of the previous word to the cursor.
func (e *Editor) DeleteWordBackward() {
	start := e.wordBoundaryLeft()
	e.text = append(e.text[:start], e.text[e.cursor:]...)
	e.cursor = start
}

// DeleteWordForward deletes from the cursor to the end of the next word.
func (e *Editor) DeleteWordForward() {
	end := e.wordBoundaryRight()
	e.text = append(e.text[:e.cursor], e.text[end:]...)
}

// KillToEnd deletes from the cursor to the end of the line.
func (e *Editor) KillToEnd() {
	e.text = e.text[:e.cursor]
}

// KillToStart deletes from the start of the line to the cursor.
func (e *Editor) KillToStart() {
	e.text = append([]rune{}, e.text[e.cursor:]...)
	e.cursor = 0
}

// Transpose swaps the two characters around the cursor, emacs style.
func (e *Editor) Transpose() {
	if len(e.text) < 2 || e.cursor == 0 {
		return
	}
	pos := e.cursor
	if pos == len(e.text) {
		pos--
	}
	e.text[pos-1], e.text[pos] = e.text[pos], e.text[pos-1]
	e.cursor = pos + 1
}
