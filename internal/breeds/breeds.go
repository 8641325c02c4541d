// internal/breeds/breeds.go
//
// Breed name handling for the quiz.
//
// Responsibilities:
//   - Normalize raw dog.ceo breed tokens for display ("hound-afghan" → "hound afghan").
//   - Build a deduplicated catalog of display names from the breed list keys.
//   - Extract the breed from a random image URL.
//
// Image URL contract:
//   https://images.dog.ceo/breeds/<breed-token>/<file>.jpg
//   The breed token is the second-to-last path segment.

package breeds

import (
	"errors"
	"net/url"
	"strings"
)

// ErrNoBreedSegment is returned when an image URL has no usable breed segment.
var ErrNoBreedSegment = errors.New("breeds: image url has no breed segment")

// Normalize maps hyphens to spaces and trims surrounding whitespace.
func Normalize(name string) string {
	return strings.TrimSpace(strings.ReplaceAll(name, "-", " "))
}

// Distinct normalizes names and drops blanks and duplicates, keeping first-seen order.
func Distinct(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		b := Normalize(n)
		if b == "" {
			continue
		}
		if _, ok := seen[b]; ok {
			continue
		}
		seen[b] = struct{}{}
		out = append(out, b)
	}
	return out
}

// FromImageURL returns the normalized breed encoded in an image URL.
func FromImageURL(raw string) (string, error) {
	path := raw
	if u, err := url.Parse(raw); err == nil && u.Path != "" {
		path = u.Path
	}
	parts := strings.Split(path, "/")
	if len(parts) < 2 {
		return "", ErrNoBreedSegment
	}
	b := Normalize(parts[len(parts)-2])
	if b == "" {
		return "", ErrNoBreedSegment
	}
	return b, nil
}
