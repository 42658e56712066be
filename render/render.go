// Package render provides the cell grid, styles and terminal primitives the
// listing pages are drawn onto.
package render

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Cell represents a single character cell in the terminal.
type Cell struct {
	Rune  rune
	Style Style
}

// Style represents text styling for a cell.
type Style struct {
	Bold      bool
	Dim       bool
	Underline bool
	Reverse   bool
	FgColor   int // ANSI foreground color code (0 = default, 32 = green, 33 = yellow, etc.)
	BgColor   int // ANSI background color code (0 = default, 40-47)

	FgRGB    [3]uint8
	UseFgRGB bool
	BgRGB    [3]uint8
	UseBgRGB bool
}

// WithBackground copies the background of bg onto s.
func (s Style) WithBackground(bg Style) Style {
	s.BgColor = bg.BgColor
	s.BgRGB = bg.BgRGB
	s.UseBgRGB = bg.UseBgRGB
	return s
}

// Plain strips all colors, keeping the text attributes.
func (s Style) Plain() Style {
	return Style{Bold: s.Bold, Dim: s.Dim, Underline: s.Underline, Reverse: s.Reverse}
}

// UnicodeWidth returns the display width of a rune in terminal cells.
func UnicodeWidth(r rune) int {
	if r < 0x20 || r == 0x7F {
		return 0
	}
	return runewidth.RuneWidth(r)
}

// StringWidth returns the display width of a string in terminal cells.
func StringWidth(s string) int {
	width := 0
	for _, r := range s {
		width += UnicodeWidth(r)
	}
	return width
}

// WrapText wraps text to fit within a given width in terminal cells.
func WrapText(text string, width int) []string {
	if width <= 0 {
		return nil
	}

	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}

		var currentLine strings.Builder
		currentWidth := 0

		for _, word := range words {
			wordWidth := StringWidth(word)

			switch {
			case currentWidth == 0 && wordWidth > width:
				lines = append(lines, breakWord(word, width)...)
			case currentWidth == 0:
				currentLine.WriteString(word)
				currentWidth = wordWidth
			case currentWidth+1+wordWidth <= width:
				currentLine.WriteByte(' ')
				currentLine.WriteString(word)
				currentWidth += 1 + wordWidth
			default:
				lines = append(lines, currentLine.String())
				currentLine.Reset()
				currentWidth = 0
				if wordWidth > width {
					lines = append(lines, breakWord(word, width)...)
				} else {
					currentLine.WriteString(word)
					currentWidth = wordWidth
				}
			}
		}

		if currentWidth > 0 {
			lines = append(lines, currentLine.String())
		}
	}

	return lines
}

func breakWord(word string, maxWidth int) []string {
	var result []string
	runes := []rune(word)

	for len(runes) > 0 {
		var line strings.Builder
		lineWidth := 0

		for len(runes) > 0 {
			w := UnicodeWidth(runes[0])
			if lineWidth+w > maxWidth {
				break
			}
			line.WriteRune(runes[0])
			lineWidth += w
			runes = runes[1:]
		}

		if line.Len() == 0 {
			// A single rune wider than the line still has to go somewhere.
			line.WriteRune(runes[0])
			runes = runes[1:]
		}
		result = append(result, line.String())
	}

	return result
}

// TruncateToWidth truncates a string to fit within the specified width.
func TruncateToWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}

	width := 0
	for i, r := range s {
		charWidth := UnicodeWidth(r)
		if width+charWidth > maxWidth {
			return s[:i]
		}
		width += charWidth
	}

	return s
}
