// internal/quiz/controller.go
//
// Round controller for the dog breed quiz.
// Responsibilities:
//   - Load the persisted best streak and the breed catalog (Initialize).
//   - Fetch a random image, derive the right breed, build four choices (StartRound).
//   - Accept exactly one answer per round and update the streak (SubmitAnswer).
//   - Move on to a fresh round once the current one is answered (AdvanceRound).
//
// State transitions:
//   uninitialized → catalog_loaded → round_active → round_complete → round_active → ...
//   A failed image fetch leaves the controller in catalog_loaded (round pending);
//   the caller re-triggers StartRound. There is no automatic retry.
//
// Notes:
//   - Not safe for concurrent use; the HTTP layer serializes calls.
//   - Round state is only committed after both catalog and image were fetched.

package quiz

import (
	"context"
	"fmt"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/breedquiz/apps/go-server/internal/breeds"
)

const (
	msgCatalogUnavailable = "Could not load the breed list. Please try again later."
	msgImageUnavailable   = "Could not load a dog image. Please try again."
)

// Controller owns all quiz state for one player.
type Controller struct {
	breeds BreedLister
	images ImageFetcher
	scores ScoreStore
	rng    Intner

	state   State
	catalog []string
	round   *Round
	choices []Choice
	current int
	best    int
	message string

	// bestRead is false while the stored best could not be read; writes wait for a read.
	bestRead bool
}

// New constructs a Controller in the uninitialized state.
func New(bl BreedLister, img ImageFetcher, scores ScoreStore, rng Intner) *Controller {
	return &Controller{
		breeds:  bl,
		images:  img,
		scores:  scores,
		rng:     rng,
		state:   StateUninitialized,
		choices: []Choice{},
	}
}

// State reports the lifecycle state.
func (c *Controller) State() State { return c.state }

// Round returns the active or just-answered round, or nil while pending.
func (c *Controller) Round() *Round { return c.round }

// View returns a snapshot for rendering. The returned slices are copies.
func (c *Controller) View() View {
	v := View{
		State:      c.state,
		Choices:    append([]Choice{}, c.choices...),
		Current:    c.current,
		Best:       c.best,
		CanAdvance: c.state == StateRoundComplete,
		Message:    c.message,
	}
	if c.round != nil {
		v.ImageURL = c.round.ImageURL
	}
	return v
}

// Initialize loads the best score and the breed catalog, then starts the first round.
//
// Catalog failures leave the controller uninitialized with a user-visible message.
// An image failure after a successful catalog load returns ErrImageUnavailable with the
// controller in catalog_loaded. Calling it again once loaded retries a pending round and
// is a no-op otherwise.
func (c *Controller) Initialize(ctx context.Context) error {
	switch c.state {
	case StateCatalogLoaded:
		return c.StartRound(ctx)
	case StateRoundActive, StateRoundComplete:
		return nil
	}
	c.best, c.bestRead = c.loadBest(ctx)

	raw, err := c.breeds.ListBreeds(ctx)
	if err != nil {
		log.Error().Err(err).Msg("fetch breed list")
		c.message = msgCatalogUnavailable
		return fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}
	names := breeds.Distinct(raw)
	if len(names) == 0 {
		log.Error().Msg("breed list is empty")
		c.message = msgCatalogUnavailable
		return ErrCatalogUnavailable
	}
	if len(names) < OptionCount {
		log.Error().Int("breeds", len(names)).Msg("breed list too small")
		c.message = msgCatalogUnavailable
		return ErrInsufficientCatalog
	}

	c.catalog = raw
	c.state = StateCatalogLoaded
	c.message = ""
	log.Info().Int("breeds", len(names)).Int("best", c.best).Msg("breed catalog loaded")
	return c.StartRound(ctx)
}

// StartRound fetches a random image and presents a new round.
// Valid while a round is pending (catalog_loaded).
func (c *Controller) StartRound(ctx context.Context) error {
	switch c.state {
	case StateUninitialized:
		return ErrNotInitialized
	case StateRoundActive:
		return ErrRoundInProgress
	case StateRoundComplete:
		return ErrRoundNotComplete
	}

	url, err := c.images.RandomImage(ctx)
	if err != nil {
		log.Error().Err(err).Msg("fetch dog image")
		c.message = msgImageUnavailable
		return fmt.Errorf("%w: %v", ErrImageUnavailable, err)
	}
	correct, err := breeds.FromImageURL(url)
	if err != nil {
		log.Error().Err(err).Str("url", url).Msg("parse breed from image url")
		c.message = msgImageUnavailable
		return fmt.Errorf("%w: %v", ErrImageUnavailable, err)
	}
	opts, err := BuildOptions(c.rng, correct, c.catalog)
	if err != nil {
		return err
	}

	c.round = &Round{ImageURL: url, CorrectBreed: correct, Options: opts}
	c.choices = make([]Choice, len(opts))
	for i, o := range opts {
		c.choices[i] = Choice{Label: o}
	}
	c.state = StateRoundActive
	c.message = ""
	log.Debug().Str("image", url).Str("breed", correct).Msg("round started")
	return nil
}

// SubmitAnswer grades selected against the round's breed and locks the round.
//
// Returns ErrAnswerLocked (no state change) when no round is accepting answers, and
// ErrUnknownChoice (no state change) when selected is not one of the offered labels.
func (c *Controller) SubmitAnswer(ctx context.Context, selected string) (bool, error) {
	if c.state != StateRoundActive || c.round == nil {
		return false, ErrAnswerLocked
	}
	picked := -1
	for i, ch := range c.choices {
		if ch.Label == selected {
			picked = i
			break
		}
	}
	if picked < 0 {
		return false, ErrUnknownChoice
	}

	for i := range c.choices {
		c.choices[i].Disabled = true
	}

	correct := selected == c.round.CorrectBreed
	if correct {
		c.choices[picked].Mark = MarkCorrect
		c.current++
		if c.current > c.best {
			c.best = c.current
			c.saveBest(ctx)
		}
	} else {
		c.choices[picked].Mark = MarkIncorrect
		for i := range c.choices {
			if c.choices[i].Label == c.round.CorrectBreed {
				c.choices[i].Mark = MarkCorrect
			}
		}
		c.current = 0
	}
	c.state = StateRoundComplete
	return correct, nil
}

// AdvanceRound clears the answered round and starts the next one.
func (c *Controller) AdvanceRound(ctx context.Context) error {
	if c.state != StateRoundComplete {
		return ErrRoundNotComplete
	}
	c.round = nil
	c.choices = []Choice{}
	c.state = StateCatalogLoaded
	return c.StartRound(ctx)
}

// loadBest reads the persisted best streak; absent or malformed values count as 0.
// The second result is false when the store itself failed, in which case the real
// stored value is unknown.
func (c *Controller) loadBest(ctx context.Context) (int, bool) {
	if c.scores == nil {
		return 0, true
	}
	v, ok, err := c.scores.Get(ctx, HighScoreKey)
	if err != nil {
		log.Warn().Err(err).Msg("load high score")
		return 0, false
	}
	if !ok {
		return 0, true
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		log.Warn().Str("value", v).Msg("ignoring malformed high score")
		return 0, true
	}
	return n, true
}

// saveBest persists the best streak (best effort, non-fatal if it fails).
// If the stored value was never read it is read first and never overwritten by a
// smaller one.
func (c *Controller) saveBest(ctx context.Context) {
	if c.scores == nil {
		return
	}
	if !c.bestRead {
		stored, ok := c.loadBest(ctx)
		if !ok {
			log.Warn().Int("best", c.best).Msg("skip high score write, stored value unknown")
			return
		}
		c.bestRead = true
		if stored >= c.best {
			c.best = stored
			return
		}
	}
	if err := c.scores.Set(ctx, HighScoreKey, strconv.Itoa(c.best)); err != nil {
		log.Warn().Err(err).Int("best", c.best).Msg("persist high score")
	}
}
