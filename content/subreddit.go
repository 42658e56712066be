package content

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"snoo/reddit"
	"snoo/render"
)

var (
	// ErrIndex is returned for positions before the first or past the last
	// submission of a listing.
	ErrIndex = errors.New("index out of range")
	// ErrNoSubmissions is returned when a listing has no entries at all.
	ErrNoSubmissions = errors.New("no submissions")
)

// Lister fetches pages of links.
type Lister interface {
	List(ctx context.Context, path string, params url.Values, after string) (*reddit.Listing, error)
	Search(ctx context.Context, prefix, query string, params url.Values, after string) (*reddit.Listing, error)
}

// Subreddit lazily pages through a listing.
type Subreddit struct {
	Name Name

	// Rows computes the height of an entry; it defaults to the wrapped
	// title plus three lines of metadata.
	Rows func(*Submission) int
	Now  func() time.Time

	lister Lister
	items  []*Submission
	after  string
	done   bool
}

// NewSubreddit opens name and fetches its first page.
func NewSubreddit(ctx context.Context, lister Lister, name Name, rows func(*Submission) int) (*Subreddit, error) {
	s := &Subreddit{
		Name:   name,
		Rows:   rows,
		Now:    time.Now,
		lister: lister,
	}
	if _, err := s.Get(ctx, 0, 70); err != nil {
		if errors.Is(err, ErrIndex) {
			if name.Query != "" {
				return nil, fmt.Errorf("%w: no search results for %s", ErrNoSubmissions, name.Query)
			}
			return nil, fmt.Errorf("%w: %s", ErrNoSubmissions, name)
		}
		return nil, err
	}
	return s, nil
}

// Len returns the number of submissions fetched so far.
func (s *Subreddit) Len() int {
	return len(s.items)
}

// Get returns the submission at index with its title wrapped to width,
// fetching more pages as needed.
func (s *Subreddit) Get(ctx context.Context, index, width int) (*Submission, error) {
	if index < 0 {
		return nil, ErrIndex
	}
	for index >= len(s.items) {
		if s.done {
			return nil, ErrIndex
		}
		if err := s.fetch(ctx); err != nil {
			return nil, err
		}
	}

	sub := s.items[index]
	sub.SplitTitle = render.WrapText(sub.Title, width)
	if s.Rows != nil {
		sub.Rows = s.Rows(sub)
	} else {
		sub.Rows = len(sub.SplitTitle) + 3
	}
	return sub, nil
}

// Iterate calls fn with consecutive submissions starting at index and moving
// by step until fn returns false or the listing runs out.
func (s *Subreddit) Iterate(ctx context.Context, index, step, width int, fn func(*Submission) bool) error {
	for {
		if step < 0 && index < 0 {
			return nil
		}
		sub, err := s.Get(ctx, index, width)
		if errors.Is(err, ErrIndex) {
			return nil
		}
		if err != nil {
			return err
		}
		if !fn(sub) {
			return nil
		}
		index += step
	}
}

func (s *Subreddit) fetch(ctx context.Context) error {
	path, params := s.Name.Endpoint()

	var listing *reddit.Listing
	var err error
	if s.Name.Query != "" {
		listing, err = s.lister.Search(ctx, path, s.Name.Query, params, s.after)
	} else {
		listing, err = s.lister.List(ctx, path, params, s.after)
	}
	if err != nil {
		return fmt.Errorf("loading %s: %w", s.Name, err)
	}

	now := s.Now()
	for _, link := range listing.Links {
		sub := FromLink(link, now)
		sub.Index = len(s.items) + 1
		s.items = append(s.items, sub)
	}
	if listing.After == "" || listing.After == s.after {
		s.done = true
	}
	s.after = listing.After
	return nil
}
