// internal/quiz/types.go
//
// Core type definitions for the breed quiz.
// Defines:
//   - State: controller lifecycle (uninitialized → catalog_loaded → round_active → round_complete).
//   - Mark: per-choice result shown after an answer (correct/incorrect).
//   - Choice, Round, View: round data and the snapshot handed to the UI.
//   - Collaborator interfaces the controller depends on.

package quiz

import (
	"context"
	"errors"
)

// HighScoreKey is the store slot holding the best streak.
const HighScoreKey = "dogBreedHighScore"

// OptionCount is the number of choices offered per round.
const OptionCount = 4

// State is the controller lifecycle state.
type State string

const (
	StateUninitialized State = "uninitialized"
	StateCatalogLoaded State = "catalog_loaded" // also "round pending" after an image failure
	StateRoundActive   State = "round_active"
	StateRoundComplete State = "round_complete"
)

// Mark represents how a choice is highlighted once the round is answered.
// Possible values:
//   - "":          not highlighted.
//   - "correct":   the chosen answer was right, or the revealed right answer.
//   - "incorrect": the chosen answer was wrong.
type Mark string

const (
	MarkNone      Mark = ""
	MarkCorrect   Mark = "correct"
	MarkIncorrect Mark = "incorrect"
)

var (
	ErrCatalogUnavailable  = errors.New("breed catalog unavailable")
	ErrImageUnavailable    = errors.New("dog image unavailable")
	ErrInsufficientCatalog = errors.New("breed catalog has fewer than 4 distinct names")
	ErrNotInitialized      = errors.New("quiz not initialized")
	ErrRoundInProgress     = errors.New("round in progress")
	ErrRoundNotComplete    = errors.New("round not complete")
	ErrAnswerLocked        = errors.New("no round accepting answers")
	ErrUnknownChoice       = errors.New("selection is not one of the offered choices")
)

// Choice is one selectable breed in a round.
type Choice struct {
	Label    string `json:"label"`
	Mark     Mark   `json:"mark,omitempty"`
	Disabled bool   `json:"disabled"`
}

// Round holds the state of a single question.
type Round struct {
	ImageURL     string   // Image being shown.
	CorrectBreed string   // Normalized breed parsed from ImageURL.
	Options      []string // Exactly OptionCount distinct breeds, CorrectBreed among them.
}

// View is what the rendering surface needs to draw the quiz.
type View struct {
	State      State    `json:"state"`
	ImageURL   string   `json:"imageUrl,omitempty"`
	Choices    []Choice `json:"choices"`
	Current    int      `json:"current"`
	Best       int      `json:"best"`
	CanAdvance bool     `json:"canAdvance"`
	Message    string   `json:"message,omitempty"`
}

// BreedLister returns the raw breed catalog.
type BreedLister interface {
	ListBreeds(ctx context.Context) ([]string, error)
}

// ImageFetcher returns one random dog image URL.
type ImageFetcher interface {
	RandomImage(ctx context.Context) (string, error)
}

// ScoreStore persists the high score as a string value.
type ScoreStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Intner is the randomness the controller needs; *math/rand.Rand satisfies it.
type Intner interface {
	Intn(n int) int
}
