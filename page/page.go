// Package page implements the subreddit page: it lays submissions out on the
// terminal and maps commands to Reddit actions.
package page

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"snoo/config"
	"snoo/content"
	"snoo/format"
	"snoo/listing"
	"snoo/reddit"
	"snoo/term"
	"snoo/theme"
)

const (
	minHeight = 10
	minWidth  = 20

	escape = "\x1b" // drops a half typed binding such as the first g of gg
)

// Client is the part of the Reddit API the page uses.
type Client interface {
	content.Lister
	LoggedIn() bool
	Hide(ctx context.Context, fullname string) error
	Unhide(ctx context.Context, fullname string) error
	Vote(ctx context.Context, fullname string, dir int) error
	Save(ctx context.Context, fullname string) error
	Unsave(ctx context.Context, fullname string) error
	Submit(ctx context.Context, subreddit, title, text string) (string, error)
}

// History is the set of visited urls.
type History interface {
	Contains(url string) bool
	Add(url string)
}

// Copier puts text on the clipboard.
type Copier interface {
	Copy(text string) error
}

// Options configure a page.
type Options struct {
	Format    string // subreddit_format in effect; empty for the default layout
	Keymap    *config.Keymap
	History   History
	Clipboard Copier
	Logger    *slog.Logger
}

// Subreddit is the page listing the submissions of one subreddit, user page,
// domain or search.
type Subreddit struct {
	term     *term.Terminal
	client   Client
	history  History
	copier   Copier
	keymap   *config.Keymap
	matcher  *config.KeyMatcher
	renderer *listing.Renderer
	logger   *slog.Logger

	content *content.Subreddit
	nav     *content.Navigator

	// ctx is the context of Loop; the navigator fetches more submissions
	// with it when the cursor runs past the loaded ones.
	ctx context.Context

	toggled string // the page to return to from the front page
	draft   string // text of a submission that failed to post
	windows int    // item windows on screen after the last draw
	active  bool
}

// New compiles the listing format and loads name.
func New(ctx context.Context, t *term.Terminal, client Client, name string, opts Options) (*Subreddit, error) {
	if opts.Keymap == nil {
		opts.Keymap = config.DefaultKeymap()
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}

	renderer, err := listing.New(opts.Format, format.Env{History: opts.History, Glyphs: t.Glyphs()})
	if err != nil {
		return nil, fmt.Errorf("compiling subreddit_format: %w", err)
	}

	p := &Subreddit{
		term:     t,
		client:   client,
		history:  opts.History,
		copier:   opts.Clipboard,
		keymap:   opts.Keymap,
		matcher:  config.NewKeyMatcher(opts.Keymap),
		renderer: renderer,
		logger:   opts.Logger,
		ctx:      ctx,
		active:   true,
	}

	err = t.Loading(ctx, "Loading", func(ctx context.Context) error {
		return p.open(ctx, name, "", "")
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// open replaces the content with the listing name and resets the cursor.
func (p *Subreddit) open(ctx context.Context, name, order, query string) error {
	n, err := content.ParseName(name, order, query)
	if err != nil {
		return err
	}
	sub, err := content.NewSubreddit(ctx, p.client, n, p.renderer.Rows)
	if err != nil {
		return err
	}
	p.content = sub
	p.nav = content.NewNavigator(p.valid)
	p.logger.Info("opened listing", "name", n.String(), "order", n.Order, "query", n.Query)
	return nil
}

// Name is the listing on screen.
func (p *Subreddit) Name() content.Name {
	return p.content.Name
}

// Loop draws the page and handles keys until the user quits or ctx ends.
func (p *Subreddit) Loop(ctx context.Context) error {
	p.ctx = ctx
	for p.active {
		if err := p.Draw(); err != nil {
			return err
		}

		key, err := p.term.GetKey(ctx)
		if err != nil {
			return err
		}
		if key == term.KeyResize {
			continue
		}
		if key == escape && p.matcher.IsPending() {
			p.matcher.ClearPending()
			continue
		}

		cmd, ok := p.matcher.Feed(key)
		if !ok {
			continue
		}
		if err := p.Handle(ctx, cmd); err != nil {
			return err
		}
	}
	return nil
}

// Handle runs one command. Failed actions are reported on screen; only
// errors that should end the loop are returned.
func (p *Subreddit) Handle(ctx context.Context, cmd config.Command) error {
	p.ctx = ctx
	p.logger.Debug("command", "cmd", string(cmd))

	var err error
	switch cmd {
	case config.Exit:
		err = p.exit(ctx)
	case config.ForceExit:
		p.active = false
	case config.Help:
		_, err = p.term.ShowNotification(ctx, helpText(p.keymap), theme.NoticeInfo)
	case config.Sort1:
		err = p.sortHot(ctx)
	case config.Sort2:
		err = p.sortPeriod(ctx, "top")
	case config.Sort3:
		err = p.sortRising(ctx)
	case config.Sort4:
		err = p.refresh(ctx, "new", "")
	case config.Sort5:
		err = p.sortControversial(ctx)
	case config.Sort6:
		err = p.sortGilded(ctx)
	case config.MoveUp:
		p.move(-1)
	case config.MoveDown:
		p.move(1)
	case config.PageUp:
		p.movePage(-1)
	case config.PageDown:
		p.movePage(1)
	case config.PageTop:
		p.nav.PageIndex, p.nav.CursorIndex, p.nav.Inverted = 0, 0, false
	case config.PageBottom:
		p.nav.PageIndex, p.nav.CursorIndex, p.nav.Inverted = p.content.Len()-1, 0, true
	case config.Refresh:
		err = p.refresh(ctx, "", "")
	case config.Prompt:
		err = p.prompt(ctx)
	case config.SubredditSearch:
		err = p.search(ctx)
	case config.SubredditFrontpage:
		err = p.frontpage(ctx)
	case config.SubredditOpen:
		err = p.openSubmission(ctx)
	case config.SubredditOpenInBrowser:
		err = p.openLink(ctx)
	case config.SubredditPost:
		err = p.loggedIn(ctx, p.post)
	case config.SubredditHide:
		err = p.loggedIn(ctx, p.hide)
	case config.Upvote:
		err = p.loggedIn(ctx, p.upvote)
	case config.Downvote:
		err = p.loggedIn(ctx, p.downvote)
	case config.Save:
		err = p.loggedIn(ctx, p.save)
	case config.CopyPermalink:
		err = p.copy(ctx, func(s *content.Submission) string { return s.Permalink })
	case config.CopyURL:
		err = p.copy(ctx, func(s *content.Submission) string { return s.URLFull })
	case config.NextTheme:
		err = p.switchTheme(ctx, theme.Next())
	case config.PreviousTheme:
		err = p.switchTheme(ctx, theme.Prev())
	}

	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return p.showError(ctx, err)
}

// showError tells the user what went wrong. Only a failure to show the
// message is returned.
func (p *Subreddit) showError(ctx context.Context, err error) error {
	p.logger.Warn("action failed", "err", err)
	_, showErr := p.term.ShowNotification(ctx, errorMessage(err), theme.NoticeError)
	return showErr
}

func errorMessage(err error) string {
	var invalid *content.InvalidSubredditError
	var status *reddit.StatusError
	switch {
	case errors.As(err, &invalid):
		return "Invalid subreddit"
	case errors.Is(err, content.ErrNoSubmissions):
		return "No submissions"
	case errors.Is(err, reddit.ErrNotLoggedIn):
		return "Not logged in"
	case errors.As(err, &status):
		switch status.Code {
		case 403:
			return "Forbidden"
		case 404:
			return "Not Found"
		case 429:
			return "Rate limited, try again later"
		}
		return fmt.Sprintf("HTTP error %d", status.Code)
	}
	return err.Error()
}

// valid reports whether index names a submission, loading more of the
// listing when index is just past the loaded part.
func (p *Subreddit) valid(index int) bool {
	if index < 0 {
		return false
	}
	if index < p.content.Len() {
		return true
	}
	_, cols := p.term.Size()
	err := p.term.Loading(p.ctx, "Loading more submissions", func(ctx context.Context) error {
		_, err := p.content.Get(ctx, index, cols-2)
		return err
	})
	if err != nil && !errors.Is(err, content.ErrIndex) {
		p.logger.Warn("loading more submissions", "err", err)
	}
	return err == nil
}

func (p *Subreddit) selected(ctx context.Context) (*content.Submission, error) {
	_, cols := p.term.Size()
	return p.content.Get(ctx, p.nav.AbsoluteIndex(), cols-2)
}

func (p *Subreddit) loggedIn(ctx context.Context, fn func(context.Context) error) error {
	if !p.client.LoggedIn() {
		_, err := p.term.ShowNotification(ctx, "Not logged in", theme.NoticeError)
		return err
	}
	return fn(ctx)
}

func (p *Subreddit) exit(ctx context.Context) error {
	ok, err := p.term.PromptYesNo(ctx, "Do you really want to quit? (y/n): ")
	if err != nil {
		return err
	}
	if ok {
		p.active = false
	}
	return nil
}

func (p *Subreddit) move(direction int) {
	if valid, _ := p.nav.Move(direction, p.windows); !valid {
		p.term.Flash()
	}
}

func (p *Subreddit) movePage(direction int) {
	if valid, _ := p.nav.MovePage(direction, p.windows); !valid {
		p.term.Flash()
	}
}

func (p *Subreddit) switchTheme(ctx context.Context, t *theme.Theme) error {
	p.logger.Info("switched theme", "theme", t.Name)
	if err := p.Draw(); err != nil {
		return err
	}
	return p.term.Notify(ctx, t.Name, theme.NoticeInfo)
}
