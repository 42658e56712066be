// Package listing draws one submission into a window, either from a compiled
// subreddit_format template or with the built in layout.
package listing

import (
	"strings"

	"snoo/content"
	"snoo/format"
	"snoo/theme"
)

// Continue as a column means "right after whatever was drawn last".
const Continue = -1

// Surface is the window an item is drawn into. Rows may be negative or past
// the bottom; the surface drops what it cannot show.
type Surface interface {
	Size() (rows, cols int)
	AddLine(row, col int, text string, attr theme.Attr)
	AddSpace()
	AddCh(row, col int, ch rune, attr theme.Attr)
}

// Renderer draws submissions. A nil Directives selects the default layout.
type Renderer struct {
	Directives []format.Directive
	Env        format.Env
}

// New compiles template into a renderer. An empty template gives the
// default layout.
func New(template string, env format.Env) (*Renderer, error) {
	directives, err := format.Compile(template)
	if err != nil {
		return nil, err
	}
	return &Renderer{Directives: directives, Env: env}, nil
}

// Rows returns how many rows sub needs, given its wrapped title.
func (r *Renderer) Rows(sub *content.Submission) int {
	if r.Directives != nil {
		return format.Lines(r.Directives)
	}
	return len(sub.SplitTitle) + 3
}

// Draw renders sub into win. When inverted the item is pinned to the bottom
// of the window so its last rows stay visible.
func (r *Renderer) Draw(win Surface, sub *content.Submission, inverted bool) {
	rows, _ := win.Size()

	offset := 0
	if inverted {
		offset = -(sub.Rows - rows)
	}

	if r.Directives != nil {
		r.drawTemplate(win, sub, offset)
	} else {
		r.drawDefault(win, sub, offset)
	}

	for y := 0; y < rows; y++ {
		win.AddCh(y, 0, ' ', theme.CursorBlock)
	}
}

func (r *Renderer) drawTemplate(win Surface, sub *content.Submission, offset int) {
	rows, _ := win.Size()
	row := offset
	lastAttr := theme.Normal
	// Line start counts as a space so a leading optional field can't indent
	// the row.
	lastSpace := true

	for _, d := range r.Directives {
		if d.Kind == format.Newline {
			row++
			lastSpace = true
			continue
		}

		segs := d.Eval(sub, r.Env)
		if len(segs) == 0 && d.LineStart {
			segs = []format.Segment{{}}
		}

		for i, seg := range segs {
			lineStart := d.LineStart && i == 0
			visible := row >= 0 && row < rows

			text, _, _ := strings.Cut(seg.Text, "\n")
			if text == "" && !lineStart {
				continue
			}

			attr := seg.Attr
			if attr == "" {
				attr = lastAttr
			}

			if text == " " {
				if lastSpace {
					// Still move the cursor to the row so the next
					// token lands on it.
					if lineStart && visible {
						win.AddLine(row, 1, "", attr)
					}
					continue
				}
				if visible {
					win.AddSpace()
				}
				lastSpace = true
				continue
			}

			if visible {
				col := Continue
				if lineStart {
					col = 1
				}
				win.AddLine(row, col, text, attr)
			}
			lastAttr = attr
			if text != "" {
				lastSpace = strings.HasSuffix(text, " ")
			}
		}
	}
}

func (r *Renderer) drawDefault(win Surface, sub *content.Submission, offset int) {
	rows, _ := win.Size()
	valid := func(row int) bool { return row >= 0 && row < rows }

	titleAttr, linkAttr := theme.SubmissionTitle, theme.Link
	if r.Env.History != nil && r.Env.History.Contains(sub.URLFull) {
		titleAttr, linkAttr = theme.SubmissionTitleSeen, theme.LinkSeen
	}

	for i, line := range sub.SplitTitle {
		if row := offset + i; valid(row) {
			win.AddLine(row, 1, line, titleAttr)
		}
	}

	nTitle := len(sub.SplitTitle)

	if row := offset + nTitle; valid(row) {
		win.AddLine(row, 1, sub.URL, linkAttr)
	}

	if row := offset + nTitle + 1; valid(row) {
		win.AddLine(row, 1, sub.Score, theme.Score)
		win.AddSpace()
		arrow, attr := r.Env.Glyphs.Arrow(sub.Likes)
		win.AddLine(row, Continue, arrow, attr)
		win.AddSpace()
		win.AddLine(row, Continue, sub.Created+sub.Edited, theme.Created)

		if sub.Comments != nil {
			win.AddSpace()
			win.AddLine(row, Continue, "-", theme.Separator)
			win.AddSpace()
			win.AddLine(row, Continue, *sub.Comments, theme.CommentCount)
		}

		badge := func(set bool, text string, attr theme.Attr) {
			if set {
				win.AddSpace()
				win.AddLine(row, Continue, text, attr)
			}
		}
		badge(sub.Saved, "[saved]", theme.Saved)
		badge(sub.Hidden, "[hidden]", theme.Hidden)
		badge(sub.Stickied, "[stickied]", theme.Stickied)
		badge(sub.Gold > 0, r.Env.Glyphs.Gold(sub.Gold), theme.Gold)
		badge(sub.NSFW, "NSFW", theme.NSFW)
	}

	if row := offset + nTitle + 2; valid(row) {
		win.AddLine(row, 1, sub.Author, theme.SubmissionAuthor)
		win.AddSpace()
		win.AddLine(row, Continue, "/r/"+sub.Subreddit, theme.SubmissionSubreddit)
		if sub.Flair != "" {
			win.AddSpace()
			win.AddLine(row, Continue, sub.Flair, theme.SubmissionFlair)
		}
	}
}
