package quiz

import "github.com/robalobadob/breedquiz/apps/go-server/internal/breeds"

// BuildOptions returns OptionCount distinct breeds including correct, in random order.
//
// Random catalog entries (normalized) are drawn until the set is full, then the set is
// Fisher–Yates shuffled. The catalog must hold at least OptionCount distinct names,
// which guarantees the drawing loop can fill the set.
func BuildOptions(rng Intner, correct string, catalog []string) ([]string, error) {
	if len(breeds.Distinct(catalog)) < OptionCount {
		return nil, ErrInsufficientCatalog
	}

	correct = breeds.Normalize(correct)
	opts := make([]string, 0, OptionCount)
	seen := map[string]struct{}{correct: {}}
	opts = append(opts, correct)
	for len(opts) < OptionCount {
		b := breeds.Normalize(catalog[rng.Intn(len(catalog))])
		if b == "" {
			continue
		}
		if _, ok := seen[b]; ok {
			continue
		}
		seen[b] = struct{}{}
		opts = append(opts, b)
	}

	shuffle(rng, opts)
	return opts, nil
}

// shuffle is an in-place Fisher–Yates shuffle.
func shuffle(rng Intner, s []string) {
	for i := len(s) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}
