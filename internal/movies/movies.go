// internal/movies/movies.go
//
// Movie catalog backed by the japflix JSON feed.
// Responsibilities:
//   - Fetch the full catalog once (Client.Fetch / Catalog.Load).
//   - Free-text search over title, tagline, overview and genre names.
//   - Star ratings (vote_average out of 10 → 0..5 stars) and detail formatting.
//
// Notes:
//   - A failed load leaves the catalog empty; searches then find nothing.
//   - Catalog is safe for concurrent use.

package movies

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/robalobadob/breedquiz/apps/go-server/internal/remote"
)

// DefaultURL is the public japflix feed.
const DefaultURL = "https://japceibal.github.io/japflix_api/movies-data.json"

// Genre is one genre tag on a movie.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Movie mirrors one entry of the japflix feed.
type Movie struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Tagline     string  `json:"tagline"`
	Overview    string  `json:"overview"`
	Genres      []Genre `json:"genres"`
	VoteAverage float64 `json:"vote_average"`
	ReleaseDate string  `json:"release_date"`
	Runtime     int     `json:"runtime"`
	Budget      int64   `json:"budget"`
	Revenue     int64   `json:"revenue"`
}

// Client fetches the movie feed.
type Client struct {
	url  string
	http *http.Client
}

// NewClient returns a Client for url. An empty url uses DefaultURL.
func NewClient(url string, hc *http.Client) *Client {
	if url == "" {
		url = DefaultURL
	}
	return &Client{url: url, http: hc}
}

// Fetch downloads the whole catalog.
func (c *Client) Fetch(ctx context.Context) ([]Movie, error) {
	var out []Movie
	if err := remote.GetJSON(ctx, c.http, c.url, &out); err != nil {
		return nil, fmt.Errorf("fetch movies: %w", err)
	}
	return out, nil
}

// Fetcher is what Catalog loads from; *Client satisfies it.
type Fetcher interface {
	Fetch(ctx context.Context) ([]Movie, error)
}

// Catalog holds the loaded movies.
type Catalog struct {
	src Fetcher

	mu     sync.RWMutex
	movies []Movie
}

// NewCatalog returns an empty catalog that loads from src.
func NewCatalog(src Fetcher) *Catalog {
	return &Catalog{src: src}
}

// Load fetches the feed and replaces the catalog contents.
// On error the previous contents are kept.
func (c *Catalog) Load(ctx context.Context) (int, error) {
	ms, err := c.src.Fetch(ctx)
	if err != nil {
		return 0, err
	}
	c.mu.Lock()
	c.movies = ms
	c.mu.Unlock()
	return len(ms), nil
}

// Len reports how many movies are loaded.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.movies)
}

// Search returns movies whose title, tagline, overview or any genre name contains
// query, case-insensitively. A blank query matches nothing.
func (c *Catalog) Search(query string) []Movie {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []Movie
	for _, m := range c.movies {
		if m.matches(q) {
			out = append(out, m)
		}
	}
	return out
}

// Get looks up a movie by ID.
func (c *Catalog) Get(id int) (Movie, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, m := range c.movies {
		if m.ID == id {
			return m, true
		}
	}
	return Movie{}, false
}

// matches expects q already lower-cased.
func (m Movie) matches(q string) bool {
	if strings.Contains(strings.ToLower(m.Title), q) ||
		strings.Contains(strings.ToLower(m.Tagline), q) ||
		strings.Contains(strings.ToLower(m.Overview), q) {
		return true
	}
	for _, g := range m.Genres {
		if strings.Contains(strings.ToLower(g.Name), q) {
			return true
		}
	}
	return false
}
