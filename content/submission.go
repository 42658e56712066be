// Package content turns Reddit listings into the records the subreddit page
// draws, and tracks the paging cursor over them.
package content

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"golang.org/x/net/html"

	"snoo/reddit"
)

// URLType classifies where a submission's link points.
type URLType string

const (
	SelfPost        URLType = "selfpost"
	XPostSubreddit  URLType = "x-post subreddit"
	XPostSubmission URLType = "x-post submission"
	External        URLType = "external"
)

const redditHost = "https://www.reddit.com"

var redditLink = regexp.MustCompile(`^https?://(www\.)?(np\.)?redd(it\.com|\.it)/r/.*`)

// Submission is one listing entry with every field already formatted for
// display.
type Submission struct {
	FullName string // t3_...; used for votes, saves and hides

	Index        int
	Title        string
	SplitTitle   []string
	Score        string // "144655 pts", or "- pts" while the score is hidden
	Likes        *bool  // nil when the user has not voted
	Comments     *string
	Created      string // relative, e.g. "10month"
	CreatedExact string
	Edited       string // "(edit 5month)", empty if never edited
	EditedExact  string
	Author       string
	Subreddit    string
	URL          string // display url: "self.AskReddit" or the link itself
	URLFull      string
	URLType      URLType
	XPostSub     string
	Permalink    string
	Saved        bool
	Hidden       bool
	Stickied     bool
	NSFW         bool
	Gold         int
	Flair        string // "[Serious Replies Only]", empty without flair

	Rows int // visual rows the entry occupies in the active layout
}

// FromLink formats link relative to now.
func FromLink(link reddit.Link, now time.Time) *Submission {
	created := time.Unix(int64(link.CreatedUTC), 0)

	sub := &Submission{
		FullName:     link.Name,
		Title:        html.UnescapeString(link.Title),
		Likes:        link.Likes,
		Created:      Humanize(created, now),
		CreatedExact: created.Local().Format(time.ANSIC),
		Author:       link.Author,
		Subreddit:    link.Subreddit,
		URLFull:      link.URL,
		Permalink:    absolute(link.Permalink),
		Saved:        link.Saved,
		Hidden:       link.Hidden,
		Stickied:     link.Stickied,
		NSFW:         link.Over18,
		Gold:         link.Gilded,
	}

	if sub.Author == "" {
		sub.Author = "[deleted]"
	}
	if link.HideScore {
		sub.Score = "- pts"
	} else {
		sub.Score = fmt.Sprintf("%d pts", link.Score)
	}
	comments := fmt.Sprintf("%d comments", link.NumComments)
	sub.Comments = &comments

	if link.Edited > 0 {
		edited := time.Unix(int64(link.Edited), 0)
		sub.Edited = "(edit " + Humanize(edited, now) + ")"
		sub.EditedExact = "(edit " + edited.Local().Format(time.ANSIC) + ")"
	}
	if flair := strings.Trim(html.UnescapeString(link.Flair), " []"); flair != "" {
		sub.Flair = "[" + flair + "]"
	}

	sub.classify()
	return sub
}

func (s *Submission) classify() {
	switch {
	case afterLast(s.URLFull, "/r/") == afterLast(s.Permalink, "/r/"):
		s.URL = "self." + s.Subreddit
		s.URLType = SelfPost
	case redditLink.MatchString(s.URLFull):
		parts := strings.Split(s.URLFull, "/")
		s.XPostSub = parts[4]
		s.URL = "self." + parts[4]
		s.URLType = XPostSubreddit
		for _, p := range parts {
			if p == "comments" {
				s.URLType = XPostSubmission
				break
			}
		}
	default:
		s.URL = s.URLFull
		s.URLType = External
	}
}

func afterLast(s, sep string) string {
	if i := strings.LastIndex(s, sep); i >= 0 {
		return s[i+len(sep):]
	}
	return s
}

func absolute(permalink string) string {
	if strings.HasPrefix(permalink, "/") {
		return redditHost + permalink
	}
	return permalink
}

// Humanize renders the age of then as "0min", "5min", "3hr", "2day",
// "10month" or "1yr".
func Humanize(then, now time.Time) string {
	seconds := int(now.Sub(then).Seconds())
	if seconds < 60 {
		return "0min"
	}
	minutes := seconds / 60
	if minutes < 60 {
		return fmt.Sprintf("%dmin", minutes)
	}
	hours := minutes / 60
	if hours < 24 {
		return fmt.Sprintf("%dhr", hours)
	}
	days := hours / 24
	if days < 30 {
		return fmt.Sprintf("%dday", days)
	}
	months := int(float64(days) / 30.4)
	if months < 12 {
		return fmt.Sprintf("%dmonth", months)
	}
	return fmt.Sprintf("%dyr", months/12)
}
