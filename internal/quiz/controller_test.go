package quiz

import (
	"context"
	"errors"
	"math/rand"
	"testing"
)

type fakeBreeds struct {
	names []string
	err   error
}

func (f *fakeBreeds) ListBreeds(ctx context.Context) ([]string, error) {
	return f.names, f.err
}

type fakeImages struct {
	urls  []string
	err   error
	calls int
}

func (f *fakeImages) RandomImage(ctx context.Context) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.urls[(f.calls-1)%len(f.urls)], nil
}

type fakeScores struct {
	kv     map[string]string
	sets   int
	getErr error
	setErr error
}

func newFakeScores() *fakeScores { return &fakeScores{kv: map[string]string{}} }

func (f *fakeScores) Get(ctx context.Context, key string) (string, bool, error) {
	if f.getErr != nil {
		return "", false, f.getErr
	}
	v, ok := f.kv[key]
	return v, ok, nil
}

func (f *fakeScores) Set(ctx context.Context, key, value string) error {
	f.sets++
	if f.setErr != nil {
		return f.setErr
	}
	f.kv[key] = value
	return nil
}

var testCatalog = []string{"a", "b", "c", "d", "e"}

func newController(t *testing.T, img *fakeImages, scores *fakeScores) *Controller {
	t.Helper()
	return New(&fakeBreeds{names: testCatalog}, img, scores, rand.New(rand.NewSource(1)))
}

func startedController(t *testing.T, scores *fakeScores) *Controller {
	t.Helper()
	c := newController(t, &fakeImages{urls: []string{"https://images.dog.ceo/breeds/c/1.jpg"}}, scores)
	if err := c.Initialize(context.Background()); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	if c.State() != StateRoundActive {
		t.Fatalf("state = %s, want round_active", c.State())
	}
	return c
}

func wrongChoice(t *testing.T, c *Controller) string {
	t.Helper()
	for _, o := range c.Round().Options {
		if o != c.Round().CorrectBreed {
			return o
		}
	}
	t.Fatal("no wrong option in round")
	return ""
}

func TestInitializeStartsRound(t *testing.T) {
	c := startedController(t, newFakeScores())
	v := c.View()
	if v.ImageURL != "https://images.dog.ceo/breeds/c/1.jpg" {
		t.Fatalf("image = %q", v.ImageURL)
	}
	if len(v.Choices) != OptionCount {
		t.Fatalf("choices = %d", len(v.Choices))
	}
	if c.Round().CorrectBreed != "c" {
		t.Fatalf("correct = %q", c.Round().CorrectBreed)
	}
	if v.CanAdvance {
		t.Fatal("advance should be hidden during an active round")
	}
}

func TestInitializeCatalogUnavailable(t *testing.T) {
	img := &fakeImages{urls: []string{"https://images.dog.ceo/breeds/c/1.jpg"}}
	c := New(&fakeBreeds{err: errors.New("boom")}, img, newFakeScores(), rand.New(rand.NewSource(1)))

	err := c.Initialize(context.Background())
	if !errors.Is(err, ErrCatalogUnavailable) {
		t.Fatalf("err = %v, want ErrCatalogUnavailable", err)
	}
	if c.State() != StateUninitialized {
		t.Fatalf("state = %s", c.State())
	}
	if c.View().Message == "" {
		t.Fatal("expected a user-visible message")
	}
	if img.calls != 0 {
		t.Fatal("no round should start without a catalog")
	}
}

func TestInitializeEmptyCatalog(t *testing.T) {
	c := New(&fakeBreeds{names: []string{"", " "}}, &fakeImages{}, newFakeScores(), rand.New(rand.NewSource(1)))
	if err := c.Initialize(context.Background()); !errors.Is(err, ErrCatalogUnavailable) {
		t.Fatalf("err = %v, want ErrCatalogUnavailable", err)
	}
}

func TestInitializeInsufficientCatalog(t *testing.T) {
	c := New(&fakeBreeds{names: []string{"a", "b", "a"}}, &fakeImages{}, newFakeScores(), rand.New(rand.NewSource(1)))
	if err := c.Initialize(context.Background()); !errors.Is(err, ErrInsufficientCatalog) {
		t.Fatalf("err = %v, want ErrInsufficientCatalog", err)
	}
	if c.State() != StateUninitialized {
		t.Fatalf("state = %s", c.State())
	}
}

func TestInitializeLoadsBest(t *testing.T) {
	scores := newFakeScores()
	scores.kv[HighScoreKey] = "7"
	c := startedController(t, scores)
	if c.View().Best != 7 {
		t.Fatalf("best = %d, want 7", c.View().Best)
	}
}

func TestInitializeIgnoresMalformedBest(t *testing.T) {
	scores := newFakeScores()
	scores.kv[HighScoreKey] = "lots"
	c := startedController(t, scores)
	if c.View().Best != 0 {
		t.Fatalf("best = %d, want 0", c.View().Best)
	}
}

func TestImageUnavailableLeavesRoundPending(t *testing.T) {
	img := &fakeImages{err: errors.New("timeout")}
	c := newController(t, img, newFakeScores())

	err := c.Initialize(context.Background())
	if !errors.Is(err, ErrImageUnavailable) {
		t.Fatalf("err = %v, want ErrImageUnavailable", err)
	}
	if c.State() != StateCatalogLoaded {
		t.Fatalf("state = %s, want catalog_loaded", c.State())
	}
	if c.Round() != nil || len(c.View().Choices) != 0 {
		t.Fatal("no round state should be established")
	}
	if img.calls != 1 {
		t.Fatalf("image calls = %d, want 1 (no automatic retry)", img.calls)
	}

	img.err = nil
	img.urls = []string{"https://images.dog.ceo/breeds/b/2.jpg"}
	if err := c.StartRound(context.Background()); err != nil {
		t.Fatalf("manual retry: %v", err)
	}
	if c.State() != StateRoundActive || c.Round().CorrectBreed != "b" {
		t.Fatalf("state = %s round = %+v", c.State(), c.Round())
	}
}

func TestImageWithoutBreedSegment(t *testing.T) {
	c := newController(t, &fakeImages{urls: []string{"nope"}}, newFakeScores())
	if err := c.Initialize(context.Background()); !errors.Is(err, ErrImageUnavailable) {
		t.Fatalf("err = %v, want ErrImageUnavailable", err)
	}
}

func TestStartRoundGuards(t *testing.T) {
	c := newController(t, &fakeImages{urls: []string{"https://images.dog.ceo/breeds/c/1.jpg"}}, newFakeScores())
	if err := c.StartRound(context.Background()); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("err = %v, want ErrNotInitialized", err)
	}
	if err := c.Initialize(context.Background()); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	if err := c.StartRound(context.Background()); !errors.Is(err, ErrRoundInProgress) {
		t.Fatalf("err = %v, want ErrRoundInProgress", err)
	}
}

func TestCorrectAnswerIncrementsAndPersistsBest(t *testing.T) {
	scores := newFakeScores()
	c := startedController(t, scores)
	c.current, c.best = 3, 2

	ok, err := c.SubmitAnswer(context.Background(), "c")
	if err != nil || !ok {
		t.Fatalf("submit = %v, %v", ok, err)
	}
	v := c.View()
	if v.Current != 4 || v.Best != 4 {
		t.Fatalf("current=%d best=%d, want 4/4", v.Current, v.Best)
	}
	if scores.kv[HighScoreKey] != "4" {
		t.Fatalf("persisted = %q, want \"4\"", scores.kv[HighScoreKey])
	}
	if !v.CanAdvance {
		t.Fatal("advance should be offered after answering")
	}
	for _, ch := range v.Choices {
		if !ch.Disabled {
			t.Fatalf("choice %q still enabled", ch.Label)
		}
		if ch.Label == "c" && ch.Mark != MarkCorrect {
			t.Fatalf("correct choice mark = %q", ch.Mark)
		}
	}
}

func TestCorrectAnswerBelowBestDoesNotPersist(t *testing.T) {
	scores := newFakeScores()
	c := startedController(t, scores)
	c.current, c.best = 1, 5

	if _, err := c.SubmitAnswer(context.Background(), "c"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if c.View().Current != 2 || c.View().Best != 5 {
		t.Fatalf("view = %+v", c.View())
	}
	if scores.sets != 0 {
		t.Fatalf("store written %d times, want 0", scores.sets)
	}
}

func TestIncorrectAnswerResetsAndReveals(t *testing.T) {
	scores := newFakeScores()
	c := startedController(t, scores)
	c.current, c.best = 4, 4
	wrong := wrongChoice(t, c)

	ok, err := c.SubmitAnswer(context.Background(), wrong)
	if err != nil || ok {
		t.Fatalf("submit = %v, %v", ok, err)
	}
	v := c.View()
	if v.Current != 0 || v.Best != 4 {
		t.Fatalf("current=%d best=%d, want 0/4", v.Current, v.Best)
	}
	marks := map[string]Mark{}
	for _, ch := range v.Choices {
		marks[ch.Label] = ch.Mark
	}
	if marks[wrong] != MarkIncorrect {
		t.Fatalf("selected mark = %q", marks[wrong])
	}
	if marks["c"] != MarkCorrect {
		t.Fatalf("correct option not revealed: %q", marks["c"])
	}
	if scores.sets != 0 {
		t.Fatal("best must not be persisted on a wrong answer")
	}
}

func TestSecondSubmitIsNoOp(t *testing.T) {
	c := startedController(t, newFakeScores())
	if _, err := c.SubmitAnswer(context.Background(), "c"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	before := c.View()

	if _, err := c.SubmitAnswer(context.Background(), wrongChoice(t, c)); !errors.Is(err, ErrAnswerLocked) {
		t.Fatalf("err = %v, want ErrAnswerLocked", err)
	}
	after := c.View()
	if after.Current != before.Current || after.Best != before.Best || after.State != before.State {
		t.Fatalf("state changed: %+v -> %+v", before, after)
	}
}

func TestUnknownChoiceChangesNothing(t *testing.T) {
	c := startedController(t, newFakeScores())
	c.current = 2
	if _, err := c.SubmitAnswer(context.Background(), "zebra"); !errors.Is(err, ErrUnknownChoice) {
		t.Fatalf("err = %v, want ErrUnknownChoice", err)
	}
	if c.State() != StateRoundActive || c.View().Current != 2 {
		t.Fatalf("view = %+v", c.View())
	}
}

func TestAdvanceRound(t *testing.T) {
	img := &fakeImages{urls: []string{
		"https://images.dog.ceo/breeds/c/1.jpg",
		"https://images.dog.ceo/breeds/e/2.jpg",
	}}
	c := newController(t, img, newFakeScores())
	if err := c.Initialize(context.Background()); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	if err := c.AdvanceRound(context.Background()); !errors.Is(err, ErrRoundNotComplete) {
		t.Fatalf("err = %v, want ErrRoundNotComplete", err)
	}
	if _, err := c.SubmitAnswer(context.Background(), "c"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := c.AdvanceRound(context.Background()); err != nil {
		t.Fatalf("advance: %v", err)
	}
	v := c.View()
	if v.State != StateRoundActive || v.ImageURL != "https://images.dog.ceo/breeds/e/2.jpg" {
		t.Fatalf("view = %+v", v)
	}
	for _, ch := range v.Choices {
		if ch.Disabled || ch.Mark != MarkNone {
			t.Fatalf("stale selection state on %+v", ch)
		}
	}
	if v.Current != 1 {
		t.Fatalf("streak should carry over: %d", v.Current)
	}
}

func TestAdvanceRoundImageFailureClearsRound(t *testing.T) {
	img := &fakeImages{urls: []string{"https://images.dog.ceo/breeds/c/1.jpg"}}
	c := newController(t, img, newFakeScores())
	if err := c.Initialize(context.Background()); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	if _, err := c.SubmitAnswer(context.Background(), "c"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	img.err = errors.New("down")
	if err := c.AdvanceRound(context.Background()); !errors.Is(err, ErrImageUnavailable) {
		t.Fatalf("err = %v, want ErrImageUnavailable", err)
	}
	v := c.View()
	if v.State != StateCatalogLoaded || v.ImageURL != "" || len(v.Choices) != 0 {
		t.Fatalf("view = %+v", v)
	}
}

func TestBestNeverDecreases(t *testing.T) {
	scores := newFakeScores()
	c := startedController(t, scores)
	rng := rand.New(rand.NewSource(42))

	lastBest := 0
	for i := 0; i < 200; i++ {
		pick := c.Round().CorrectBreed
		if rng.Intn(3) == 0 {
			pick = wrongChoice(t, c)
		}
		if _, err := c.SubmitAnswer(context.Background(), pick); err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
		v := c.View()
		if v.Best < lastBest {
			t.Fatalf("best decreased from %d to %d", lastBest, v.Best)
		}
		if v.Current > v.Best {
			t.Fatalf("current %d exceeds best %d", v.Current, v.Best)
		}
		lastBest = v.Best
		if err := c.AdvanceRound(context.Background()); err != nil {
			t.Fatalf("advance %d: %v", i, err)
		}
	}
}

func TestSaveFailureStillUpdatesBest(t *testing.T) {
	scores := newFakeScores()
	scores.setErr = errors.New("disk full")
	c := startedController(t, scores)

	correct, err := c.SubmitAnswer(context.Background(), "c")
	if err != nil || !correct {
		t.Fatalf("submit = %v, %v; want true, nil", correct, err)
	}
	v := c.View()
	if v.Current != 1 || v.Best != 1 || v.State != StateRoundComplete {
		t.Fatalf("view = %+v", v)
	}
	if scores.sets != 1 {
		t.Fatalf("sets = %d, want 1", scores.sets)
	}
}

func TestUnreadableBestIsNotOverwritten(t *testing.T) {
	scores := newFakeScores()
	scores.kv[HighScoreKey] = "7"
	scores.getErr = errors.New("database is locked")
	c := startedController(t, scores)

	correct, err := c.SubmitAnswer(context.Background(), "c")
	if err != nil || !correct {
		t.Fatalf("submit = %v, %v; want true, nil", correct, err)
	}
	if scores.sets != 0 || scores.kv[HighScoreKey] != "7" {
		t.Fatalf("stored best = %q after %d sets, want 7 untouched", scores.kv[HighScoreKey], scores.sets)
	}
	if c.View().Current != 1 {
		t.Fatalf("current = %d, want 1", c.View().Current)
	}
}

func TestBestRereadBeforeWrite(t *testing.T) {
	scores := newFakeScores()
	scores.kv[HighScoreKey] = "7"
	scores.getErr = errors.New("database is locked")
	c := startedController(t, scores)
	if c.View().Best != 0 {
		t.Fatalf("best = %d, want 0 while unreadable", c.View().Best)
	}

	scores.getErr = nil
	if _, err := c.SubmitAnswer(context.Background(), "c"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if c.View().Best != 7 || scores.sets != 0 || scores.kv[HighScoreKey] != "7" {
		t.Fatalf("best = %d, stored %q, sets %d; want 7, 7, 0", c.View().Best, scores.kv[HighScoreKey], scores.sets)
	}
}

func TestBestRereadAllowsHigherWrite(t *testing.T) {
	scores := newFakeScores()
	scores.getErr = errors.New("database is locked")
	c := startedController(t, scores)

	scores.getErr = nil
	if _, err := c.SubmitAnswer(context.Background(), "c"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if scores.kv[HighScoreKey] != "1" || scores.sets != 1 {
		t.Fatalf("stored %q after %d sets, want 1 after 1", scores.kv[HighScoreKey], scores.sets)
	}
}
