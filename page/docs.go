package page

import (
	"fmt"
	"slices"
	"strings"
	"unicode"

	"snoo/config"
)

const (
	banner       = "[1]hot [2]top [3]rising [4]new [5]controversial [6]gilded"
	searchBanner = "[1]relevance [2]top [3]comments [4]new"
	footer       = "[?]Help [q]Quit [l]Open [o]Link [c]Post [a/z]Vote [f]Search [p]Frontpage"

	periodMenu = `Links from:
  [1] Past hour
  [2] Past 24 hours
  [3] Past week
  [4] Past month
  [5] Past year
  [6] All time`

	// The instructions are wrapped in a comment and removed again before
	// posting, so headings in the body are left alone.
	submissionFile = `

<!--
Posting to %s
The first line is the title, the following lines are the body.
An empty message cancels the submission.
-->
`
)

var periodChoices = map[string]string{
	"1": "hour",
	"2": "day",
	"3": "week",
	"4": "month",
	"5": "year",
	"6": "all",
}

var help = []struct {
	cmd  config.Command
	desc string
}{
	{config.MoveDown, "Move down"},
	{config.MoveUp, "Move up"},
	{config.PageDown, "Page down"},
	{config.PageUp, "Page up"},
	{config.PageTop, "Jump to the top"},
	{config.PageBottom, "Jump to the bottom"},
	{config.SubredditOpen, "Open the comments in the browser"},
	{config.SubredditOpenInBrowser, "Open the link"},
	{config.SubredditPost, "Post a self post"},
	{config.SubredditSearch, "Search the listing"},
	{config.SubredditFrontpage, "Toggle the front page"},
	{config.SubredditHide, "Hide or unhide"},
	{config.Upvote, "Upvote"},
	{config.Downvote, "Downvote"},
	{config.Save, "Save or unsave"},
	{config.CopyPermalink, "Copy the permalink"},
	{config.CopyURL, "Copy the link"},
	{config.Sort1, "Sort hot (relevance when searching)"},
	{config.Sort2, "Sort top"},
	{config.Sort3, "Sort rising (comments when searching)"},
	{config.Sort4, "Sort new"},
	{config.Sort5, "Sort controversial"},
	{config.Sort6, "Sort gilded"},
	{config.Prompt, "Open a page by name"},
	{config.Refresh, "Reload"},
	{config.PreviousTheme, "Previous theme"},
	{config.NextTheme, "Next theme"},
	{config.Exit, "Quit"},
	{config.ForceExit, "Quit without asking"},
}

var specialKeys = map[string]string{
	" ":        "space",
	"\n":       "enter",
	"\r":       "enter",
	"\x1b[A":   "up",
	"\x1b[B":   "down",
	"\x1b[C":   "right",
	"\x1b[D":   "left",
	"\x1b[H":   "home",
	"\x1b[F":   "end",
	"\x1b[5~":  "pgup",
	"\x1b[6~":  "pgdn",
	"\x1bOQ":   "F2",
	"\x1bOR":   "F3",
	"\x1b[15~": "F5",
}

// helpText lists the bound keys of each command. Keys without a printable
// form are left out.
func helpText(km *config.Keymap) string {
	var sb strings.Builder
	sb.WriteString("Keys\n")
	for _, h := range help {
		var names []string
		for _, key := range km.Keys(h.cmd) {
			if name, ok := keyName(key); ok && !slices.Contains(names, name) {
				names = append(names, name)
			}
		}
		if len(names) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "  %-8s %s\n", strings.Join(names, ","), h.desc)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func keyName(name string) (string, bool) {
	key, err := config.ParseKey(name)
	if err != nil {
		return "", false
	}
	if name, ok := specialKeys[key]; ok {
		return name, true
	}
	for _, r := range key {
		if !unicode.IsPrint(r) {
			return "", false
		}
	}
	return key, true
}

// stripInstructions removes the comment block added by submissionFile.
func stripInstructions(text string) string {
	if i := strings.LastIndex(text, "<!--"); i >= 0 {
		if j := strings.Index(text[i:], "-->"); j >= 0 {
			text = text[:i] + text[i+j+len("-->"):]
		}
	}
	return strings.TrimSpace(text)
}
