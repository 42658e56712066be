package reddit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/codeGROOVE-dev/retry"
)

const (
	// PublicURL serves anonymous JSON listings.
	PublicURL = "https://www.reddit.com"
	// OAuthURL serves authenticated requests.
	OAuthURL = "https://oauth.reddit.com"
)

// ErrNotLoggedIn is returned by actions that need an access token.
var ErrNotLoggedIn = errors.New("not logged in")

// StatusError is a non-2xx response from Reddit.
type StatusError struct {
	Method string
	URL    string
	Code   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d %s: %s %s", e.Code, http.StatusText(e.Code), e.Method, e.URL)
}

// Temporary reports whether the request may succeed when repeated.
func (e *StatusError) Temporary() bool {
	return e.Code >= 500 || e.Code == http.StatusTooManyRequests
}

// Options configures a Client.
type Options struct {
	BaseURL     string // defaults to PublicURL, or OAuthURL with a token
	UserAgent   string
	AccessToken string
	Timeout     time.Duration
	Retries     uint
	RetryDelay  time.Duration
	HTTPClient  *http.Client
	Logger      *slog.Logger
}

// Client talks to Reddit.
type Client struct {
	base      string
	userAgent string
	token     string
	retries   uint
	delay     time.Duration
	http      *http.Client
	logger    *slog.Logger
	username  string
}

// New creates a client from opts.
func New(opts Options) *Client {
	c := &Client{
		base:      strings.TrimRight(opts.BaseURL, "/"),
		userAgent: opts.UserAgent,
		token:     opts.AccessToken,
		retries:   opts.Retries,
		delay:     opts.RetryDelay,
		http:      opts.HTTPClient,
		logger:    opts.Logger,
	}
	if c.base == "" {
		c.base = PublicURL
		if c.token != "" {
			c.base = OAuthURL
		}
	}
	if c.userAgent == "" {
		c.userAgent = "snoo/1.0"
	}
	if c.retries == 0 {
		c.retries = 1
	}
	if c.delay == 0 {
		c.delay = time.Second
	}
	if c.http == nil {
		timeout := opts.Timeout
		if timeout == 0 {
			timeout = 10 * time.Second
		}
		c.http = &http.Client{Timeout: timeout}
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}
	return c
}

// LoggedIn reports whether an access token is configured.
func (c *Client) LoggedIn() bool {
	return c.token != ""
}

// List fetches one page of the listing at path, e.g. "/r/python/top".
func (c *Client) List(ctx context.Context, path string, params url.Values, after string) (*Listing, error) {
	if strings.HasPrefix(path, "/user/me") {
		name, err := c.Me(ctx)
		if err != nil {
			return nil, err
		}
		path = "/user/" + name + strings.TrimPrefix(path, "/user/me")
	}

	q := url.Values{}
	for k, v := range params {
		q[k] = v
	}
	if after != "" {
		q.Set("after", after)
	}

	body, err := c.do(ctx, http.MethodGet, path, q, nil)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", path, err)
	}
	return decodeListing(body)
}

// Search fetches one page of search results. A prefix such as "/r/python"
// restricts the search to that subreddit; an empty prefix searches all of
// Reddit.
func (c *Client) Search(ctx context.Context, prefix, query string, params url.Values, after string) (*Listing, error) {
	q := url.Values{}
	for k, v := range params {
		q[k] = v
	}
	q.Set("q", query)
	if prefix != "" {
		q.Set("restrict_sr", "on")
	}
	return c.List(ctx, prefix+"/search", q, after)
}

// Me returns the name of the logged in account.
func (c *Client) Me(ctx context.Context) (string, error) {
	if !c.LoggedIn() {
		return "", ErrNotLoggedIn
	}
	if c.username != "" {
		return c.username, nil
	}
	body, err := c.do(ctx, http.MethodGet, "/api/v1/me", nil, nil)
	if err != nil {
		return "", fmt.Errorf("fetching identity: %w", err)
	}
	var me meResponse
	if err := decodeJSON(body, &me); err != nil {
		return "", fmt.Errorf("decoding identity: %w", err)
	}
	c.username = me.Name
	return me.Name, nil
}

// Hide hides the thing with the given fullname.
func (c *Client) Hide(ctx context.Context, fullname string) error {
	return c.action(ctx, "/api/hide", url.Values{"id": {fullname}})
}

// Unhide reverses Hide.
func (c *Client) Unhide(ctx context.Context, fullname string) error {
	return c.action(ctx, "/api/unhide", url.Values{"id": {fullname}})
}

// Vote casts a vote: 1 up, -1 down, 0 to clear.
func (c *Client) Vote(ctx context.Context, fullname string, dir int) error {
	if dir < -1 || dir > 1 {
		return fmt.Errorf("vote direction %d out of range", dir)
	}
	return c.action(ctx, "/api/vote", url.Values{"id": {fullname}, "dir": {fmt.Sprint(dir)}})
}

// Save saves the thing to the account.
func (c *Client) Save(ctx context.Context, fullname string) error {
	return c.action(ctx, "/api/save", url.Values{"id": {fullname}})
}

// Unsave reverses Save.
func (c *Client) Unsave(ctx context.Context, fullname string) error {
	return c.action(ctx, "/api/unsave", url.Values{"id": {fullname}})
}

// Submit posts a self post to subreddit and returns its URL.
func (c *Client) Submit(ctx context.Context, subreddit, title, text string) (string, error) {
	if !c.LoggedIn() {
		return "", ErrNotLoggedIn
	}
	form := url.Values{
		"api_type": {"json"},
		"kind":     {"self"},
		"sr":       {subreddit},
		"title":    {title},
		"text":     {text},
	}
	body, err := c.do(ctx, http.MethodPost, "/api/submit", nil, form)
	if err != nil {
		return "", fmt.Errorf("submitting to %s: %w", subreddit, err)
	}
	var resp submitResponse
	if err := decodeJSON(body, &resp); err != nil {
		return "", fmt.Errorf("decoding submit response: %w", err)
	}
	if len(resp.JSON.Errors) > 0 {
		return "", fmt.Errorf("submitting to %s: %v", subreddit, resp.JSON.Errors[0])
	}
	return resp.JSON.Data.URL, nil
}

func (c *Client) action(ctx context.Context, path string, form url.Values) error {
	if !c.LoggedIn() {
		return ErrNotLoggedIn
	}
	if _, err := c.do(ctx, http.MethodPost, path, nil, form); err != nil {
		return fmt.Errorf("%s: %w", strings.TrimPrefix(path, "/api/"), err)
	}
	return nil
}

func (c *Client) endpoint(path string, q url.Values) string {
	if c.token == "" && !strings.HasSuffix(path, ".json") {
		path += ".json"
	}
	u := c.base + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	return u
}

// do sends the request, retrying network errors and temporary statuses.
func (c *Client) do(ctx context.Context, method, path string, q, form url.Values) ([]byte, error) {
	target := c.endpoint(path, q)
	var body []byte
	var lastErr error

	err := retry.Do(
		func() error {
			var reqBody io.Reader = http.NoBody
			if form != nil {
				reqBody = strings.NewReader(form.Encode())
			}
			req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
			if err != nil {
				return retry.Unrecoverable(fmt.Errorf("create request: %w", err))
			}
			req.Header.Set("User-Agent", c.userAgent)
			if form != nil {
				req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			}
			if c.token != "" {
				req.Header.Set("Authorization", "bearer "+c.token)
			}

			start := time.Now()
			resp, err := c.http.Do(req)
			if err != nil {
				c.logger.Warn("request failed", "method", method, "url", target, "error", err)
				lastErr = err
				return err
			}
			defer func() {
				if closeErr := resp.Body.Close(); closeErr != nil {
					c.logger.Warn("closing response body", "error", closeErr)
				}
			}()

			c.logger.Debug("request completed",
				"method", method,
				"url", target,
				"status_code", resp.StatusCode,
				"duration_ms", time.Since(start).Milliseconds())

			if resp.StatusCode < 200 || resp.StatusCode > 299 {
				lastErr = &StatusError{Method: method, URL: target, Code: resp.StatusCode}
				return lastErr
			}

			body, err = io.ReadAll(resp.Body)
			if err != nil {
				lastErr = fmt.Errorf("read body: %w", err)
				return lastErr
			}
			return nil
		},
		retry.Attempts(c.retries),
		retry.Delay(c.delay),
		retry.MaxDelay(30*time.Second),
		retry.MaxJitter(c.delay),
		retry.Context(ctx),
		retry.OnRetry(func(n uint, err error) {
			c.logger.Info("retrying request", "attempt", n, "url", target, "error", err)
		}),
		retry.RetryIf(func(err error) bool {
			var se *StatusError
			if errors.As(err, &se) {
				return se.Temporary()
			}
			return true
		}),
	)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if lastErr != nil {
			return nil, lastErr
		}
		return nil, err
	}
	return body, nil
}
