// internal/space/space.go
//
// Client for the NASA Image and Video Library search API.
//
// Endpoint used:
//   GET {base}/search?q=<query> → {"collection": {"items": [{"data": [...], "links": [...]}]}}
//
// Each usable item becomes a Card. Items without data or links are skipped.

package space

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/robalobadob/breedquiz/apps/go-server/internal/remote"
)

// DefaultBaseURL is the public NASA images API root.
const DefaultBaseURL = "https://images-api.nasa.gov"

// ErrEmptyQuery is returned for a blank search; no request is made.
var ErrEmptyQuery = errors.New("space: empty query")

// Card is one search result ready for display.
type Card struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	Date        string `json:"date,omitempty"`
}

type searchResponse struct {
	Collection struct {
		Items []item `json:"items"`
	} `json:"collection"`
}

type item struct {
	Data []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		DateCreated string `json:"date_created"`
	} `json:"data"`
	Links []struct {
		Href string `json:"href"`
	} `json:"links"`
}

// Client searches the NASA image library.
type Client struct {
	base string
	http *http.Client
}

// New returns a Client rooted at base. An empty base uses DefaultBaseURL.
func New(base string, hc *http.Client) *Client {
	if base == "" {
		base = DefaultBaseURL
	}
	return &Client{base: strings.TrimRight(base, "/"), http: hc}
}

// Search runs one query and returns the displayable results.
func (c *Client) Search(ctx context.Context, query string) ([]Card, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	var res searchResponse
	u := c.base + "/search?q=" + url.QueryEscape(query)
	if err := remote.GetJSON(ctx, c.http, u, &res); err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}

	cards := make([]Card, 0, len(res.Collection.Items))
	for _, it := range res.Collection.Items {
		if len(it.Data) == 0 || len(it.Links) == 0 {
			continue
		}
		d := it.Data[0]
		cards = append(cards, Card{
			Title:       d.Title,
			Description: Summary(d.Description),
			ImageURL:    it.Links[0].Href,
			Date:        formatDate(d.DateCreated),
		})
	}
	return cards, nil
}

// formatDate renders an RFC3339 timestamp as YYYY-MM-DD; unparseable values pass through.
func formatDate(s string) string {
	if s == "" {
		return ""
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return s
	}
	return t.UTC().Format("2006-01-02")
}
