// internal/config/config.go
//
// Environment-driven configuration for the server.
//
// Load order:
//   1. .env in the working directory, if present (development convenience).
//   2. Process environment, parsed into Config.
//
// Environment variables:
//   PORT, LOG_LEVEL, CLIENT_ORIGIN,
//   DOG_API_BASE_URL, MOVIES_URL, NASA_IMAGES_BASE_URL,
//   SCORE_STORE (memory|sqlite), DB_DRIVER (sqlite3|sqlite), DB_PATH,
//   HTTP_CLIENT_TIMEOUT (0 = no timeout), REQUEST_TIMEOUT, LOCALE.

package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"golang.org/x/text/language"
)

// Config holds all runtime settings.
type Config struct {
	Port         string `env:"PORT" envDefault:"5175"`
	LogLevel     string `env:"LOG_LEVEL" envDefault:"info"`
	ClientOrigin string `env:"CLIENT_ORIGIN" envDefault:"http://localhost:5173"`

	DogAPIBaseURL     string `env:"DOG_API_BASE_URL" envDefault:"https://dog.ceo/api"`
	MoviesURL         string `env:"MOVIES_URL" envDefault:"https://japceibal.github.io/japflix_api/movies-data.json"`
	NASAImagesBaseURL string `env:"NASA_IMAGES_BASE_URL" envDefault:"https://images-api.nasa.gov"`

	ScoreStore string `env:"SCORE_STORE" envDefault:"sqlite"`
	DBDriver   string `env:"DB_DRIVER" envDefault:"sqlite3"`
	DBPath     string `env:"DB_PATH" envDefault:"./data/app.db"`

	HTTPClientTimeout time.Duration `env:"HTTP_CLIENT_TIMEOUT" envDefault:"0s"`
	RequestTimeout    time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`

	Locale string `env:"LOCALE" envDefault:"en"`
}

// Load reads .env (if present) and parses the environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return Parse()
}

// Parse parses the process environment without touching .env files.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Tag returns the configured locale as a language tag.
func (c Config) Tag() language.Tag {
	return language.Make(c.Locale)
}

func (c Config) validate() error {
	switch c.ScoreStore {
	case "memory", "sqlite":
	default:
		return fmt.Errorf("SCORE_STORE must be memory or sqlite, got %q", c.ScoreStore)
	}
	switch c.DBDriver {
	case "sqlite3", "sqlite":
	default:
		return fmt.Errorf("DB_DRIVER must be sqlite3 or sqlite, got %q", c.DBDriver)
	}
	if c.HTTPClientTimeout < 0 || c.RequestTimeout < 0 {
		return fmt.Errorf("timeouts must not be negative")
	}
	if _, err := language.Parse(c.Locale); err != nil {
		return fmt.Errorf("LOCALE: %w", err)
	}
	return nil
}
