// internal/remote/remote.go
//
// Shared helper for the public JSON APIs this server reads from
// (dog.ceo, japflix, NASA images).
//
// Notes:
//   - One GET per call. There is no retry; callers report the failure.
//   - Non-2xx responses are returned as *StatusError before any decoding.

package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// StatusError reports a non-2xx response from a remote API.
type StatusError struct {
	URL    string
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: HTTP %d: %s", e.URL, e.Code, e.Status)
}

// GetJSON fetches url and decodes the JSON body into out.
// A nil client falls back to http.DefaultClient.
func GetJSON(ctx context.Context, client *http.Client, url string, out any) error {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{URL: url, Code: resp.StatusCode, Status: resp.Status}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}
	return nil
}
