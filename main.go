package main

import (
	"context"
	"net/http"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/breedquiz/apps/go-server/internal/config"
	"github.com/robalobadob/breedquiz/apps/go-server/internal/dogapi"
	"github.com/robalobadob/breedquiz/apps/go-server/internal/httpserver"
	"github.com/robalobadob/breedquiz/apps/go-server/internal/movies"
	"github.com/robalobadob/breedquiz/apps/go-server/internal/quiz"
	"github.com/robalobadob/breedquiz/apps/go-server/internal/random"
	"github.com/robalobadob/breedquiz/apps/go-server/internal/space"
	"github.com/robalobadob/breedquiz/apps/go-server/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	scores, closeScores, err := openScores(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open score store")
	}
	defer closeScores()

	rng, err := random.New()
	if err != nil {
		log.Fatal().Err(err).Msg("seed random source")
	}

	hc := &http.Client{Timeout: cfg.HTTPClientTimeout}
	dogs := dogapi.New(cfg.DogAPIBaseURL, hc)

	catalog := movies.NewCatalog(movies.NewClient(cfg.MoviesURL, hc))
	if n, err := catalog.Load(context.Background()); err != nil {
		log.Error().Err(err).Msg("load movie catalog")
	} else {
		log.Info().Int("movies", n).Msg("movie catalog loaded")
	}

	srv := httpserver.New(httpserver.Deps{
		Quiz:           quiz.New(dogs, dogs, scores, rng),
		Movies:         catalog,
		Formatter:      movies.NewFormatter(cfg.Tag()),
		Space:          space.New(cfg.NASAImagesBaseURL, hc),
		ClientOrigin:   cfg.ClientOrigin,
		RequestTimeout: cfg.RequestTimeout,
	})
	log.Info().Str("port", cfg.Port).Str("scores", cfg.ScoreStore).Msg("starting go-server")
	if err := srv.Start(":" + cfg.Port); err != nil {
		closeScores()
		log.Error().Err(err).Msg("server exited")
		os.Exit(1)
	}
}

// openScores returns the configured high score store and its closer.
func openScores(cfg config.Config) (store.Store, func(), error) {
	if cfg.ScoreStore == "memory" {
		return store.NewMemoryStore(), func() {}, nil
	}
	db, err := store.OpenSQLite(cfg.DBDriver, cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	return db, func() { _ = db.Close() }, nil
}
