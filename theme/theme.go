// Package theme provides color theming for the terminal Reddit browser.
package theme

import (
	"snoo/render"
)

// Color represents an RGB color that can render to ANSI.
type Color struct {
	R, G, B uint8
}

// Attr names one styled element of the interface. Pages ask for styles by
// name so themes can be swapped at runtime.
type Attr string

const (
	Normal            Attr = "Normal"
	Selected          Attr = "Selected"
	CursorBlock       Attr = "CursorBlock"
	TitleBar          Attr = "TitleBar"
	OrderBar          Attr = "OrderBar"
	OrderBarHighlight Attr = "OrderBarHighlight"
	HelpBar           Attr = "HelpBar"
	Prompt            Attr = "Prompt"
	NoticeInfo        Attr = "NoticeInfo"
	NoticeLoading     Attr = "NoticeLoading"
	NoticeError       Attr = "NoticeError"
	NoticeSuccess     Attr = "NoticeSuccess"

	Score               Attr = "Score"
	CommentCount        Attr = "CommentCount"
	Created             Attr = "Created"
	SubmissionAuthor    Attr = "SubmissionAuthor"
	SubmissionSubreddit Attr = "SubmissionSubreddit"
	SubmissionTitle     Attr = "SubmissionTitle"
	SubmissionTitleSeen Attr = "SubmissionTitleSeen"
	SubmissionFlair     Attr = "SubmissionFlair"
	Link                Attr = "Link"
	LinkSeen            Attr = "LinkSeen"
	Saved               Attr = "Saved"
	Hidden              Attr = "Hidden"
	Stickied            Attr = "Stickied"
	Gold                Attr = "Gold"
	NSFW                Attr = "NSFW"
	Separator           Attr = "Separator"
	Upvote              Attr = "Upvote"
	Downvote            Attr = "Downvote"
	NeutralVote         Attr = "NeutralVote"
)

// Theme defines the color palette for the browser. Each Attr is derived from
// the palette by Style.
type Theme struct {
	Name string
	Dark bool // true if this is a dark theme

	// Base colors
	Background    Color // terminal background (ignored if TransparentBg is true)
	TransparentBg bool  // if true, use terminal's native background
	Foreground    Color // default text
	Dim           Color // dimmed text, seen titles
	Surface       Color // selected item and bar backgrounds

	Highlight Color // order bar, subreddit names
	Positive  Color // authors, saved badges
	Accent    Color // links, spinner

	// Feedback
	Error   Color
	Warning Color
	Success Color
	Info    Color

	Gold Color // gilded badge
}

// Style creates a render.Style with the given foreground color.
func (c Color) Style() render.Style {
	return render.Style{
		FgRGB:    [3]uint8{c.R, c.G, c.B},
		UseFgRGB: true,
	}
}

// StyleFgBg creates a render.Style with foreground and background colors.
func StyleFgBg(fg, bg Color) render.Style {
	return render.Style{
		FgRGB:    [3]uint8{fg.R, fg.G, fg.B},
		UseFgRGB: true,
		BgRGB:    [3]uint8{bg.R, bg.G, bg.B},
		UseBgRGB: true,
	}
}

// BaseStyle returns the base render.Style for the theme.
// If TransparentBg is true, no colors are set (terminal defaults used).
func (t *Theme) BaseStyle() render.Style {
	if t.TransparentBg {
		return render.Style{}
	}
	return StyleFgBg(t.Foreground, t.Background)
}

// Style returns the style for an attribute. Unknown attributes fall back to
// the base style.
func (t *Theme) Style(a Attr) render.Style {
	base := t.BaseStyle()
	fg := func(c Color) render.Style {
		return c.Style().WithBackground(base)
	}
	bold := func(s render.Style) render.Style {
		s.Bold = true
		return s
	}

	switch a {
	case Selected:
		return t.SelectedStyle()
	case CursorBlock:
		return render.Style{Reverse: true}
	case TitleBar, HelpBar, Prompt:
		return bold(fg(t.Accent))
	case OrderBar:
		return bold(fg(t.Highlight))
	case OrderBarHighlight:
		s := bold(fg(t.Highlight))
		s.Reverse = true
		return s
	case NoticeInfo, NoticeLoading, Separator, NeutralVote:
		return bold(base)
	case NoticeError:
		return bold(fg(t.Error))
	case NoticeSuccess:
		return bold(fg(t.Success))
	case SubmissionAuthor:
		return bold(fg(t.Positive))
	case SubmissionSubreddit, Hidden:
		return fg(t.Highlight)
	case SubmissionTitle:
		return bold(base)
	case SubmissionTitleSeen:
		return fg(t.Dim)
	case SubmissionFlair:
		return bold(fg(t.Warning))
	case Link:
		s := fg(t.Info)
		s.Underline = true
		return s
	case LinkSeen:
		s := fg(t.Dim)
		s.Underline = true
		return s
	case Saved, Stickied:
		return fg(t.Positive)
	case Gold:
		return bold(fg(t.Gold))
	case NSFW, Downvote:
		return bold(fg(t.Error))
	case Upvote:
		return bold(fg(t.Success))
	default:
		return base
	}
}

// SelectedStyle is the background painted behind the item under the cursor.
func (t *Theme) SelectedStyle() render.Style {
	return StyleFgBg(t.Foreground, t.Surface)
}

// Hex creates a Color from a hex string like "#RRGGBB" or "RRGGBB".
func Hex(s string) Color {
	c, _ := ParseHex(s)
	return c
}

// ParseHex is Hex that reports whether s was a well formed color.
func ParseHex(s string) (Color, bool) {
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}
	if len(s) != 6 {
		return Color{}, false
	}
	var v [3]uint8
	for i := range v {
		b, ok := hexByte(s[i*2 : i*2+2])
		if !ok {
			return Color{}, false
		}
		v[i] = b
	}
	return Color{R: v[0], G: v[1], B: v[2]}, true
}

func hexByte(s string) (uint8, bool) {
	var v uint8
	for _, c := range s {
		v *= 16
		switch {
		case c >= '0' && c <= '9':
			v += uint8(c - '0')
		case c >= 'a' && c <= 'f':
			v += uint8(c - 'a' + 10)
		case c >= 'A' && c <= 'F':
			v += uint8(c - 'A' + 10)
		default:
			return 0, false
		}
	}
	return v, true
}
