package content

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
)

var (
	listingOrders = []string{"hot", "top", "rising", "new", "controversial", "gilded"}
	searchOrders  = []string{"relevance", "top", "comments", "new"}
	periods       = []string{"all", "day", "hour", "month", "week", "year"}

	listingPeriodOrders = []string{"top", "controversial"}
	searchPeriodOrders  = []string{"top", "comments"}

	userPaths = []string{"overview", "submitted", "comments", "gilded", "saved", "hidden", "upvoted", "downvoted"}
)

// InvalidSubredditError reports a page name that cannot be opened.
type InvalidSubredditError struct {
	Name   string
	Reason string
}

func (e *InvalidSubredditError) Error() string {
	return fmt.Sprintf("invalid page %q: %s", e.Name, e.Reason)
}

// Name identifies a listing: /r/python, /r/python/top-week, /u/me/saved,
// /domain/github.com, or /r/front for the front page.
type Name struct {
	Root     string // "r", "u" or "domain"
	Resource string // "python", "python+golang", "me/saved"
	Order    string // as displayed, e.g. "top-week"; empty for the default order
	Query    string // non-empty for search results
}

// ParseName parses a page name. An explicit order overrides one given in the
// name; query turns the listing into a search.
func ParseName(name, order, query string) (Name, error) {
	invalid := func(reason string) (Name, error) {
		return Name{}, &InvalidSubredditError{Name: name, Reason: reason}
	}

	var parts []string
	for _, seg := range strings.Split(strings.Trim(name, " /"), "/") {
		if seg != "" {
			parts = append(parts, seg)
		}
	}
	if len(parts) >= 3 && (parts[2] == "comments" || parts[2] == "duplicates") {
		return invalid("submission links are not listings")
	}

	root := "r"
	if len(parts) > 0 {
		switch parts[0] {
		case "r", "u", "user", "domain":
			root, parts = parts[0], parts[1:]
		}
	}
	if root == "user" {
		root = "u"
	}

	var resource, nameOrder string
	switch {
	case len(parts) == 1:
		resource = parts[0]
	case root == "u" && (len(parts) == 2 || len(parts) == 3) && slices.Contains(userPaths, parts[1]):
		resource = parts[0] + "/" + parts[1]
		if len(parts) == 3 {
			nameOrder = parts[2]
		}
	case len(parts) == 2:
		resource, nameOrder = parts[0], parts[1]
	case len(parts) == 0:
		return invalid("name cannot be empty")
	default:
		return invalid("unrecognized format")
	}

	if order == "" {
		order = nameOrder
	}

	n := Name{Root: root, Resource: resource, Order: order, Query: query}
	sort, period := n.Sort()

	orders, periodOrders := listingOrders, listingPeriodOrders
	if query != "" {
		orders, periodOrders = searchOrders, searchPeriodOrders
	}
	if sort != "" && !slices.Contains(orders, sort) {
		return invalid(fmt.Sprintf("invalid order %q", sort))
	}
	if period != "" && !slices.Contains(periods, period) {
		return invalid(fmt.Sprintf("invalid period %q", period))
	}
	if period != "" && !slices.Contains(periodOrders, sort) {
		return invalid(fmt.Sprintf("order %q does not allow sorting by period", sort))
	}
	return n, nil
}

// String returns the display name, e.g. "/r/python".
func (n Name) String() string {
	return "/" + n.Root + "/" + n.Resource
}

// Sort splits Order into the sort and its optional period.
func (n Name) Sort() (sort, period string) {
	sort, period, _ = strings.Cut(n.Order, "-")
	return sort, period
}

// IsFront reports whether the name is the front page.
func (n Name) IsFront() bool {
	return n.Root == "r" && n.Resource == "front"
}

// Header is the page title shown in the top bar.
func (n Name) Header() string {
	title := n.String()
	switch {
	case n.IsFront():
		title = "Front Page"
	case n.Root == "u" && (n.Resource == "me" || strings.HasPrefix(n.Resource, "me/")):
		switch strings.TrimPrefix(strings.TrimPrefix(n.Resource, "me"), "/") {
		case "", "overview":
			title = "My Overview"
		case "submitted":
			title = "My Submissions"
		case "comments":
			title = "My Comments"
		case "saved":
			title = "My Saved Content"
		case "hidden":
			title = "My Hidden Content"
		case "upvoted":
			title = "My Upvoted Content"
		case "downvoted":
			title = "My Downvoted Content"
		case "gilded":
			title = "My Gilded Content"
		}
	}
	if n.Query != "" {
		title = fmt.Sprintf("Searching %s: %s", title, n.Query)
	}
	return title
}

// CanPost reports whether a self post can be submitted to the listing.
func (n Name) CanPost() bool {
	if n.Root != "r" || strings.Contains(n.Resource, "+") {
		return false
	}
	switch n.String() {
	case "/r/all", "/r/front", "/r/me", "/u/saved":
		return false
	}
	return true
}

// Endpoint returns the API path and query parameters for a listing. When
// searching, path is the search prefix and may be empty.
func (n Name) Endpoint() (path string, params url.Values) {
	sort, period := n.Sort()
	params = url.Values{}
	if period != "" {
		params.Set("t", period)
	}

	if n.Query != "" {
		if sort != "" {
			params.Set("sort", sort)
		}
		if n.Root == "r" && !n.IsFront() {
			path = "/r/" + n.Resource
		}
		return path, params
	}

	switch n.Root {
	case "u":
		path = "/user/" + n.Resource
		if !strings.Contains(n.Resource, "/") {
			path += "/overview"
		}
		if sort != "" {
			params.Set("sort", sort)
		}
		return path, params
	case "domain":
		path = "/domain/" + n.Resource
	default:
		if !n.IsFront() {
			path = "/r/" + n.Resource
		}
	}
	if sort == "" {
		sort = "hot"
	}
	return path + "/" + sort, params
}
