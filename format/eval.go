package format

import (
	"net/url"
	"strconv"
	"strings"

	"snoo/content"
	"snoo/theme"
)

// History answers whether a URL has been visited.
type History interface {
	Contains(url string) bool
}

// Glyphs are the symbols that differ between unicode and ascii mode.
type Glyphs struct {
	Upvote   string
	Downvote string
	Neutral  string
	Gilded   string
}

// UnicodeGlyphs is the default symbol set.
var UnicodeGlyphs = Glyphs{Upvote: "▲", Downvote: "▼", Neutral: "•", Gilded: "✪"}

// ASCIIGlyphs is used when the terminal cannot draw unicode.
var ASCIIGlyphs = Glyphs{Upvote: "^", Downvote: "v", Neutral: "o", Gilded: "*"}

// Arrow returns the vote arrow and its style for a like state.
func (g Glyphs) Arrow(likes *bool) (string, theme.Attr) {
	switch {
	case likes == nil:
		return g.Neutral, theme.NeutralVote
	case *likes:
		return g.Upvote, theme.Upvote
	default:
		return g.Downvote, theme.Downvote
	}
}

// Gold returns "" for no gildings, the glyph for one, and the glyph with an
// "xN" count for more.
func (g Glyphs) Gold(count int) string {
	switch {
	case count <= 0:
		return ""
	case count == 1:
		return g.Gilded
	default:
		return g.Gilded + "x" + strconv.Itoa(count)
	}
}

// Env holds the collaborators directives read while evaluating.
type Env struct {
	History History
	Glyphs  Glyphs
}

func (e Env) seen(sub *content.Submission) bool {
	return e.History != nil && e.History.Contains(sub.URLFull)
}

// Segment is a piece of evaluated text. An empty Attr means the text takes
// the style of whatever was drawn before it.
type Segment struct {
	Text string
	Attr theme.Attr
}

// Eval resolves d against sub. Absent optional fields produce no segments
// or empty text, never an error. Newlines produce nothing.
func (d Directive) Eval(sub *content.Submission, env Env) []Segment {
	one := func(text string, attr theme.Attr) []Segment {
		return []Segment{{Text: text, Attr: attr}}
	}

	titleAttr, linkAttr := theme.SubmissionTitle, theme.Link
	if env.seen(sub) {
		titleAttr, linkAttr = theme.SubmissionTitleSeen, theme.LinkSeen
	}

	switch d.Kind {
	case Newline:
		return nil
	case Literal:
		return one(d.Text, "")
	case Separator:
		return one(d.Text, theme.Separator)
	case Index:
		return one(strconv.Itoa(sub.Index), titleAttr)
	case Title:
		return one(sub.Title, titleAttr)
	case Score:
		return one(number(sub.Score), theme.Score)
	case Vote:
		arrow, attr := env.Glyphs.Arrow(sub.Likes)
		return one(arrow, attr)
	case Comments:
		if sub.Comments == nil {
			return nil
		}
		return one(number(*sub.Comments), theme.CommentCount)
	case Created:
		return one(sub.Created, theme.Created)
	case CreatedExact:
		return one(sub.CreatedExact, theme.Created)
	case Edited:
		return one(sub.Edited, theme.Created)
	case EditedExact:
		return one(sub.EditedExact, theme.Created)
	case Author:
		return one(sub.Author, theme.SubmissionAuthor)
	case Subreddit:
		return one("/r/"+sub.Subreddit, theme.SubmissionSubreddit)
	case URL:
		return one(displayURL(sub), linkAttr)
	case URLFull:
		return one(sub.URL, linkAttr)
	case Saved:
		return one(flag(sub.Saved, "[saved]"), theme.Saved)
	case Hidden:
		return one(flag(sub.Hidden, "[hidden]"), theme.Hidden)
	case Stickied:
		return one(flag(sub.Stickied, "[stickied]"), theme.Stickied)
	case Gold:
		return one(env.Glyphs.Gold(sub.Gold), theme.Gold)
	case NSFW:
		return one(flag(sub.NSFW, "NSFW"), theme.NSFW)
	case Flair:
		return one(sub.Flair, theme.SubmissionFlair)
	case AllFlair:
		return badges(sub, env)
	}
	return nil
}

// badges joins the present badges with single spaces and no trailing space.
func badges(sub *content.Submission, env Env) []Segment {
	candidates := []Segment{
		{sub.Flair, theme.SubmissionFlair},
		{flag(sub.Saved, "[saved]"), theme.Saved},
		{flag(sub.Hidden, "[hidden]"), theme.Hidden},
		{flag(sub.Stickied, "[stickied]"), theme.Stickied},
		{env.Glyphs.Gold(sub.Gold), theme.Gold},
		{flag(sub.NSFW, "NSFW"), theme.NSFW},
	}

	var out []Segment
	for _, c := range candidates {
		if c.Text == "" {
			continue
		}
		if len(out) > 0 {
			out = append(out, Segment{Text: " "})
		}
		out = append(out, c)
	}
	return out
}

// number strips the unit from "144655 pts" or "26584 comments".
func number(s string) string {
	n, _, _ := strings.Cut(s, " ")
	return n
}

func flag(set bool, label string) string {
	if set {
		return label
	}
	return ""
}

// displayURL is the short url: the self/x-post label, or the link's host.
func displayURL(sub *content.Submission) string {
	switch sub.URLType {
	case content.SelfPost, content.XPostSubreddit, content.XPostSubmission:
		return sub.URL
	}
	u, err := url.Parse(sub.URLFull)
	if err != nil || u.Host == "" {
		return sub.URL
	}
	return u.Host
}
