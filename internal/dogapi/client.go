// internal/dogapi/client.go
//
// Client for the public dog.ceo API.
//
// Endpoints used:
//   - GET {base}/breeds/list/all     → {"message": {"<breed>": ["<sub>", ...]}, "status": "success"}
//   - GET {base}/breeds/image/random → {"message": "<image url>", "status": "success"}
//
// Only the breed keys of the list are used; sub-breeds are ignored.

package dogapi

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/robalobadob/breedquiz/apps/go-server/internal/remote"
)

// DefaultBaseURL is the public dog.ceo API root.
const DefaultBaseURL = "https://dog.ceo/api"

// Client talks to dog.ceo. The zero value is not usable; use New.
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

type listResponse struct {
	Message map[string][]string `json:"message"`
	Status  string              `json:"status"`
}

type imageResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

// ListBreeds returns the top-level breed keys, sorted.
func (c *Client) ListBreeds(ctx context.Context) ([]string, error) {
	var res listResponse
	if err := remote.GetJSON(ctx, c.http, c.base+"/breeds/list/all", &res); err != nil {
		return nil, fmt.Errorf("list breeds: %w", err)
	}
	if err := checkStatus(res.Status); err != nil {
		return nil, fmt.Errorf("list breeds: %w", err)
	}
	out := make([]string, 0, len(res.Message))
	for k := range res.Message {
		out = append(out, k)
	}
	sort.Strings(out)
	return out, nil
}

// RandomImage returns the URL of one random dog image.
func (c *Client) RandomImage(ctx context.Context) (string, error) {
	var res imageResponse
	if err := remote.GetJSON(ctx, c.http, c.base+"/breeds/image/random", &res); err != nil {
		return "", fmt.Errorf("random image: %w", err)
	}
	if err := checkStatus(res.Status); err != nil {
		return "", fmt.Errorf("random image: %w", err)
	}
	if strings.TrimSpace(res.Message) == "" {
		return "", fmt.Errorf("random image: empty message")
	}
	return res.Message, nil
}

// checkStatus accepts a missing status field; dog.ceo always sends one.
func checkStatus(s string) error {
	if s == "" || s == "success" {
		return nil
	}
	return fmt.Errorf("api status %q", s)
}
