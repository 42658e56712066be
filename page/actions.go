package page

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"snoo/content"
	"snoo/theme"
)

// fromName makes refresh take the order given in the new name instead of
// keeping the current one.
const fromName = "ignore"

var submissionPath = regexp.MustCompile(`(^|/)comments/(?P<id>.+?)($|/)`)

// refresh reloads the listing. An empty name keeps the current listing and
// its search query; an empty order keeps the current order.
func (p *Subreddit) refresh(ctx context.Context, order, name string) error {
	query := ""
	if name == "" {
		name = p.content.Name.String()
		query = p.content.Name.Query
	}
	if order == "" {
		order = p.content.Name.Order
	}
	if order == fromName {
		order = ""
	}
	return p.term.Loading(ctx, "Refreshing page", func(ctx context.Context) error {
		return p.open(ctx, name, order, query)
	})
}

func (p *Subreddit) searching() bool {
	return p.content.Name.Query != ""
}

func (p *Subreddit) sortHot(ctx context.Context) error {
	if p.searching() {
		return p.refresh(ctx, "relevance", "")
	}
	return p.refresh(ctx, "hot", "")
}

func (p *Subreddit) sortRising(ctx context.Context) error {
	if p.searching() {
		return p.sortPeriod(ctx, "comments")
	}
	return p.refresh(ctx, "rising", "")
}

func (p *Subreddit) sortControversial(ctx context.Context) error {
	if p.searching() {
		p.term.Flash()
		return nil
	}
	return p.sortPeriod(ctx, "controversial")
}

func (p *Subreddit) sortGilded(ctx context.Context) error {
	if p.searching() {
		p.term.Flash()
		return nil
	}
	return p.refresh(ctx, "gilded", "")
}

// sortPeriod asks for a time period and reloads with order limited to it.
func (p *Subreddit) sortPeriod(ctx context.Context, order string) error {
	key, err := p.term.ShowNotification(ctx, periodMenu, theme.NoticeInfo)
	if err != nil {
		return err
	}
	switch key {
	case "\n", "\r":
	default:
		period, ok := periodChoices[key]
		if !ok {
			_, err := p.term.ShowNotification(ctx, "Invalid option", theme.NoticeInfo)
			return err
		}
		order += "-" + period
	}
	return p.refresh(ctx, order, "")
}

func (p *Subreddit) search(ctx context.Context) error {
	name := p.content.Name.String()
	query, ok, err := p.term.PromptInput(ctx, fmt.Sprintf("Search %s: ", name))
	if err != nil || !ok || query == "" {
		return err
	}
	return p.term.Loading(ctx, "Searching", func(ctx context.Context) error {
		return p.open(ctx, name, "", query)
	})
}

// frontpage goes to the front page, remembering where it came from, or back
// there when already on the front page.
func (p *Subreddit) frontpage(ctx context.Context) error {
	target := "/r/front"
	if p.content.Name.IsFront() {
		target = p.toggled
	} else {
		p.toggled = p.content.Name.String()
	}
	if target == "" {
		return nil
	}
	return p.refresh(ctx, fromName, target)
}

// prompt opens a page by name. Submission links open in the browser.
func (p *Subreddit) prompt(ctx context.Context) error {
	name, ok, err := p.term.PromptInput(ctx, "Enter page: /")
	if err != nil || !ok || name == "" {
		return err
	}
	if m := submissionPath.FindStringSubmatch(name); m != nil {
		id := m[submissionPath.SubexpIndex("id")]
		return p.term.OpenBrowser("https://www.reddit.com/comments/" + id)
	}
	return p.refresh(ctx, fromName, name)
}

// openSubmission shows the comments of the selected submission.
func (p *Subreddit) openSubmission(ctx context.Context) error {
	sub, err := p.selected(ctx)
	if err != nil {
		p.term.Flash()
		return nil
	}
	if sub.URLType == content.SelfPost {
		p.history.Add(sub.URLFull)
	}
	return p.term.OpenBrowser(sub.Permalink)
}

// openLink follows the selected submission's link: self posts show their
// comments, cross posts to a subreddit load it here, everything else goes
// to the browser.
func (p *Subreddit) openLink(ctx context.Context) error {
	sub, err := p.selected(ctx)
	if err != nil {
		p.term.Flash()
		return nil
	}
	switch sub.URLType {
	case content.SelfPost:
		return p.openSubmission(ctx)
	case content.XPostSubreddit:
		return p.refresh(ctx, fromName, sub.XPostSub)
	default:
		p.history.Add(sub.URLFull)
		return p.term.OpenBrowser(sub.URLFull)
	}
}

func (p *Subreddit) post(ctx context.Context) error {
	name := p.content.Name
	if !name.CanPost() {
		_, err := p.term.ShowNotification(ctx, fmt.Sprintf("Can't post to %s", name), theme.NoticeInfo)
		return err
	}

	edited, err := p.term.OpenEditor(p.draft + fmt.Sprintf(submissionFile, name))
	if err != nil {
		return err
	}
	text := stripInstructions(edited)
	if text == "" {
		p.draft = ""
		_, err := p.term.ShowNotification(ctx, "Canceled", theme.NoticeInfo)
		return err
	}
	title, body, ok := strings.Cut(text, "\n")
	if !ok {
		p.draft = text
		_, err := p.term.ShowNotification(ctx, "Missing body", theme.NoticeInfo)
		return err
	}

	var url string
	err = p.term.Loading(ctx, "Posting", func(ctx context.Context) error {
		var err error
		url, err = p.client.Submit(ctx, name.Resource, strings.TrimSpace(title), body)
		return err
	})
	if err != nil {
		// Keep the text for the next attempt.
		p.draft = text
		return err
	}
	p.draft = ""
	p.logger.Info("posted submission", "subreddit", name.Resource, "url", url)
	if url == "" {
		return p.refresh(ctx, "new", "")
	}
	return p.term.OpenBrowser(url)
}

func (p *Subreddit) hide(ctx context.Context) error {
	sub, err := p.selected(ctx)
	if err != nil {
		p.term.Flash()
		return nil
	}
	if sub.Hidden {
		return p.term.Loading(ctx, "Unhiding", func(ctx context.Context) error {
			if err := p.client.Unhide(ctx, sub.FullName); err != nil {
				return err
			}
			sub.Hidden = false
			return nil
		})
	}
	return p.term.Loading(ctx, "Hiding", func(ctx context.Context) error {
		if err := p.client.Hide(ctx, sub.FullName); err != nil {
			return err
		}
		sub.Hidden = true
		return nil
	})
}

func (p *Subreddit) upvote(ctx context.Context) error {
	sub, err := p.selected(ctx)
	if err != nil {
		p.term.Flash()
		return nil
	}
	if sub.Likes != nil && *sub.Likes {
		return p.vote(ctx, sub, "Clearing vote", 0, nil)
	}
	up := true
	return p.vote(ctx, sub, "Voting", 1, &up)
}

func (p *Subreddit) downvote(ctx context.Context) error {
	sub, err := p.selected(ctx)
	if err != nil {
		p.term.Flash()
		return nil
	}
	if sub.Likes != nil && !*sub.Likes {
		return p.vote(ctx, sub, "Clearing vote", 0, nil)
	}
	down := false
	return p.vote(ctx, sub, "Voting", -1, &down)
}

func (p *Subreddit) vote(ctx context.Context, sub *content.Submission, message string, dir int, likes *bool) error {
	return p.term.Loading(ctx, message, func(ctx context.Context) error {
		if err := p.client.Vote(ctx, sub.FullName, dir); err != nil {
			return err
		}
		sub.Likes = likes
		return nil
	})
}

func (p *Subreddit) save(ctx context.Context) error {
	sub, err := p.selected(ctx)
	if err != nil {
		p.term.Flash()
		return nil
	}
	if sub.Saved {
		return p.term.Loading(ctx, "Unsaving", func(ctx context.Context) error {
			if err := p.client.Unsave(ctx, sub.FullName); err != nil {
				return err
			}
			sub.Saved = false
			return nil
		})
	}
	return p.term.Loading(ctx, "Saving", func(ctx context.Context) error {
		if err := p.client.Save(ctx, sub.FullName); err != nil {
			return err
		}
		sub.Saved = true
		return nil
	})
}

func (p *Subreddit) copy(ctx context.Context, field func(*content.Submission) string) error {
	sub, err := p.selected(ctx)
	if err != nil || field(sub) == "" {
		p.term.Flash()
		return nil
	}
	text := field(sub)
	if err := p.copier.Copy(text); err != nil {
		p.logger.Warn("copying to clipboard", "err", err)
		_, err := p.term.ShowNotification(ctx, fmt.Sprintf("Failed to copy url: %v", err), theme.NoticeError)
		return err
	}
	return p.term.Notify(ctx, "Copied to clipboard:\n"+text, theme.NoticeSuccess)
}
