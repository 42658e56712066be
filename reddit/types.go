// Package reddit is a small client for the Reddit JSON API: listings,
// search, voting, saving, hiding and self-post submission.
package reddit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Link is a submission as returned inside a listing (kind t3).
type Link struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"` // fullname, e.g. t3_99eh6b
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Subreddit   string  `json:"subreddit"`
	URL         string  `json:"url"`
	Permalink   string  `json:"permalink"`
	SelfText    string  `json:"selftext"`
	IsSelf      bool    `json:"is_self"`
	CreatedUTC  float64 `json:"created_utc"`
	Edited      Edited  `json:"edited"`
	Score       int     `json:"score"`
	HideScore   bool    `json:"hide_score"`
	NumComments int     `json:"num_comments"`
	Likes       *bool   `json:"likes"`
	Gilded      int     `json:"gilded"`
	Over18      bool    `json:"over_18"`
	Stickied    bool    `json:"stickied"`
	Hidden      bool    `json:"hidden"`
	Saved       bool    `json:"saved"`
	Flair       string  `json:"link_flair_text"`
}

// Edited holds the edit timestamp of a submission. Reddit sends false for
// submissions that were never edited and a unix time otherwise.
type Edited float64

// UnmarshalJSON accepts false, true, null or a number.
func (e *Edited) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch string(data) {
	case "false", "true", "null":
		*e = 0
		return nil
	}
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("edited: %w", err)
	}
	*e = Edited(v)
	return nil
}

// Listing is one page of links.
type Listing struct {
	Links []Link
	After string // empty on the last page
}

type thing struct {
	Kind string          `json:"kind"`
	Data json.RawMessage `json:"data"`
}

type listingResponse struct {
	Kind string `json:"kind"`
	Data struct {
		After    *string `json:"after"`
		Children []thing `json:"children"`
	} `json:"data"`
}

// decodeListing keeps only submissions; user overviews also carry comments.
func decodeListing(data []byte) (*Listing, error) {
	var resp listingResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("decoding listing: %w", err)
	}
	if resp.Kind != "Listing" {
		return nil, fmt.Errorf("decoding listing: unexpected kind %q", resp.Kind)
	}

	listing := &Listing{}
	if resp.Data.After != nil {
		listing.After = *resp.Data.After
	}
	for _, child := range resp.Data.Children {
		if child.Kind != "t3" {
			continue
		}
		var link Link
		if err := json.Unmarshal(child.Data, &link); err != nil {
			return nil, fmt.Errorf("decoding link: %w", err)
		}
		listing.Links = append(listing.Links, link)
	}
	return listing, nil
}

type submitResponse struct {
	JSON struct {
		Errors [][]any `json:"errors"`
		Data   struct {
			URL  string `json:"url"`
			Name string `json:"name"`
		} `json:"data"`
	} `json:"json"`
}

type meResponse struct {
	Name string `json:"name"`
}

func decodeJSON(data []byte, v any) error {
	return json.Unmarshal(data, v)
}
