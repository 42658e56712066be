package format

import (
	"reflect"
	"testing"

	"snoo/content"
	"snoo/theme"
)

type visited map[string]bool

func (v visited) Contains(url string) bool { return v[url] }

func testSubmission() *content.Submission {
	likes := true
	comments := "26584 comments"
	return &content.Submission{
		Index:        1,
		Title:        "Without saying what the category is, what are your top five?",
		Score:        "144655 pts",
		Likes:        &likes,
		Comments:     &comments,
		Created:      "10month",
		CreatedExact: "Tue Aug 21 15:40:00 2018",
		Edited:       "(edit 5month)",
		EditedExact:  "(edit Mon Jan  7 09:00:00 2019)",
		Author:       "reddit_user",
		Subreddit:    "AskReddit",
		URL:          "self.AskReddit",
		URLType:      content.SelfPost,
		URLFull:      "https://www.reddit.com/r/AskReddit/comments/99eh6b/without_saying_what_the_category_is_what_are_your/",
		Saved:        true,
		Hidden:       true,
		Stickied:     true,
		NSFW:         true,
		Flair:        "Serious Replies Only",
	}
}

func eval(t *testing.T, kind Kind, sub *content.Submission, env Env) []Segment {
	t.Helper()
	return Directive{Kind: kind}.Eval(sub, env)
}

func TestEvalFields(t *testing.T) {
	sub := testSubmission()
	env := Env{History: visited{}, Glyphs: UnicodeGlyphs}

	tests := []struct {
		kind Kind
		text string
		attr theme.Attr
	}{
		{Index, "1", theme.SubmissionTitle},
		{Title, "Without saying what the category is, what are your top five?", theme.SubmissionTitle},
		{Score, "144655", theme.Score},
		{Vote, "▲", theme.Upvote},
		{Comments, "26584", theme.CommentCount},
		{Created, "10month", theme.Created},
		{CreatedExact, "Tue Aug 21 15:40:00 2018", theme.Created},
		{Edited, "(edit 5month)", theme.Created},
		{EditedExact, "(edit Mon Jan  7 09:00:00 2019)", theme.Created},
		{Author, "reddit_user", theme.SubmissionAuthor},
		{Subreddit, "/r/AskReddit", theme.SubmissionSubreddit},
		{URL, "self.AskReddit", theme.Link},
		{URLFull, "self.AskReddit", theme.Link},
		{Saved, "[saved]", theme.Saved},
		{Hidden, "[hidden]", theme.Hidden},
		{Stickied, "[stickied]", theme.Stickied},
		{Gold, "", theme.Gold},
		{NSFW, "NSFW", theme.NSFW},
		{Flair, "Serious Replies Only", theme.SubmissionFlair},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			segs := eval(t, tt.kind, sub, env)
			if len(segs) != 1 {
				t.Fatalf("got %d segments, expected 1", len(segs))
			}
			if segs[0].Text != tt.text {
				t.Errorf("got %q, expected %q", segs[0].Text, tt.text)
			}
			if segs[0].Attr != tt.attr {
				t.Errorf("got attr %q, expected %q", segs[0].Attr, tt.attr)
			}
		})
	}
}

func TestEvalLiterals(t *testing.T) {
	sub := testSubmission()
	env := Env{Glyphs: UnicodeGlyphs}

	if got := (Directive{Kind: Literal, Text: "C> "}).Eval(sub, env); !reflect.DeepEqual(got, []Segment{{Text: "C> "}}) {
		t.Errorf("literal: got %+v", got)
	}
	if got := (Directive{Kind: Separator, Text: "|"}).Eval(sub, env); !reflect.DeepEqual(got, []Segment{{Text: "|", Attr: theme.Separator}}) {
		t.Errorf("separator: got %+v", got)
	}
	if got := (Directive{Kind: Newline, Text: "\n"}).Eval(sub, env); got != nil {
		t.Errorf("newline: got %+v", got)
	}
}

func TestEvalAbsentFields(t *testing.T) {
	env := Env{Glyphs: UnicodeGlyphs}
	sub := &content.Submission{}

	if got := eval(t, Comments, sub, env); got != nil {
		t.Errorf("nil comments: got %+v, expected nothing", got)
	}
	for _, kind := range []Kind{Saved, Hidden, Stickied, Gold, NSFW, Flair, Edited} {
		segs := eval(t, kind, sub, env)
		if len(segs) != 1 || segs[0].Text != "" {
			t.Errorf("kind %d: got %+v, expected one empty segment", kind, segs)
		}
	}
	if got := eval(t, AllFlair, sub, env); len(got) != 0 {
		t.Errorf("no badges: got %+v", got)
	}
}

func TestGold(t *testing.T) {
	tests := []struct {
		count    int
		expected string
	}{
		{0, ""},
		{1, "✪"},
		{2, "✪x2"},
		{12, "✪x12"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := UnicodeGlyphs.Gold(tt.count); got != tt.expected {
				t.Errorf("got %q, expected %q", got, tt.expected)
			}
		})
	}
	if got := ASCIIGlyphs.Gold(3); got != "*x3" {
		t.Errorf("got %q, expected %q", got, "*x3")
	}
}

func TestArrow(t *testing.T) {
	up, down := true, false

	tests := []struct {
		name   string
		likes  *bool
		glyphs Glyphs
		text   string
		attr   theme.Attr
	}{
		{"neutral", nil, UnicodeGlyphs, "•", theme.NeutralVote},
		{"up", &up, UnicodeGlyphs, "▲", theme.Upvote},
		{"down", &down, UnicodeGlyphs, "▼", theme.Downvote},
		{"ascii neutral", nil, ASCIIGlyphs, "o", theme.NeutralVote},
		{"ascii up", &up, ASCIIGlyphs, "^", theme.Upvote},
		{"ascii down", &down, ASCIIGlyphs, "v", theme.Downvote},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, attr := tt.glyphs.Arrow(tt.likes)
			if text != tt.text || attr != tt.attr {
				t.Errorf("got %q %q, expected %q %q", text, attr, tt.text, tt.attr)
			}
		})
	}
}

func TestAllFlair(t *testing.T) {
	env := Env{Glyphs: UnicodeGlyphs}

	t.Run("all present", func(t *testing.T) {
		sub := testSubmission()
		sub.Gold = 2
		expected := []Segment{
			{"Serious Replies Only", theme.SubmissionFlair},
			{" ", ""},
			{"[saved]", theme.Saved},
			{" ", ""},
			{"[hidden]", theme.Hidden},
			{" ", ""},
			{"[stickied]", theme.Stickied},
			{" ", ""},
			{"✪x2", theme.Gold},
			{" ", ""},
			{"NSFW", theme.NSFW},
		}
		if got := eval(t, AllFlair, sub, env); !reflect.DeepEqual(got, expected) {
			t.Errorf("got %+v\nexpected %+v", got, expected)
		}
	})

	t.Run("absent badges are omitted", func(t *testing.T) {
		sub := testSubmission()
		sub.NSFW = false
		sub.Hidden = false
		expected := []Segment{
			{"Serious Replies Only", theme.SubmissionFlair},
			{" ", ""},
			{"[saved]", theme.Saved},
			{" ", ""},
			{"[stickied]", theme.Stickied},
		}
		if got := eval(t, AllFlair, sub, env); !reflect.DeepEqual(got, expected) {
			t.Errorf("got %+v\nexpected %+v", got, expected)
		}
	})

	t.Run("gold without count", func(t *testing.T) {
		sub := &content.Submission{Gold: 1, NSFW: true}
		expected := []Segment{
			{"✪", theme.Gold},
			{" ", ""},
			{"NSFW", theme.NSFW},
		}
		if got := eval(t, AllFlair, sub, env); !reflect.DeepEqual(got, expected) {
			t.Errorf("got %+v\nexpected %+v", got, expected)
		}
	})
}

func TestSeenStyles(t *testing.T) {
	sub := testSubmission()
	unseen := Env{History: visited{}, Glyphs: UnicodeGlyphs}
	seen := Env{History: visited{sub.URLFull: true}, Glyphs: UnicodeGlyphs}

	tests := []struct {
		kind   Kind
		env    Env
		expect theme.Attr
	}{
		{Index, unseen, theme.SubmissionTitle},
		{Title, unseen, theme.SubmissionTitle},
		{URL, unseen, theme.Link},
		{URLFull, unseen, theme.Link},
		{Index, seen, theme.SubmissionTitleSeen},
		{Title, seen, theme.SubmissionTitleSeen},
		{URL, seen, theme.LinkSeen},
		{URLFull, seen, theme.LinkSeen},
	}

	for _, tt := range tests {
		t.Run(string(tt.expect), func(t *testing.T) {
			if got := eval(t, tt.kind, sub, tt.env)[0].Attr; got != tt.expect {
				t.Errorf("got %q, expected %q", got, tt.expect)
			}
		})
	}

	t.Run("nil history", func(t *testing.T) {
		if got := eval(t, Title, sub, Env{})[0].Attr; got != theme.SubmissionTitle {
			t.Errorf("got %q, expected %q", got, theme.SubmissionTitle)
		}
	})
}

func TestDisplayURL(t *testing.T) {
	tests := []struct {
		name     string
		urlType  content.URLType
		url      string
		urlFull  string
		expected string
	}{
		{"selfpost", content.SelfPost, "self.AskReddit", "https://www.reddit.com/r/AskReddit/comments/99eh6b/", "self.AskReddit"},
		{"x-post subreddit", content.XPostSubreddit, "self.AskReddit", "https://www.reddit.com/r/AskReddit/comments/99eh6b/", "self.AskReddit"},
		{"external", content.External, "self.AskReddit", "https://www.reddit.com/r/AskReddit/comments/99eh6b/", "www.reddit.com"},
		{"unparseable", content.External, "::bad", "::bad", "::bad"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := &content.Submission{URLType: tt.urlType, URL: tt.url, URLFull: tt.urlFull}
			if got := displayURL(sub); got != tt.expected {
				t.Errorf("got %q, expected %q", got, tt.expected)
			}
		})
	}
}
