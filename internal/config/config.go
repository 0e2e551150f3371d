// Package config loads environment-sourced configuration. Credentials are
// read once here and passed into the gateway constructor, never from global
// process state inside business logic.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds everything the fetch sub-commands need from the environment.
// GithubToken is deliberately not tagged required: the caller decides how a
// missing token is reported, which keeps the error taxonomy out of here.
type Config struct {
	GithubToken string        `envconfig:"GITHUB_TOKEN"`
	PerPage     int           `envconfig:"GITHUB_PER_PAGE" default:"100" validate:"gt=0,lte=100"`
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s" validate:"gt=0"`
}

// Loader binds and validates a Config from the process environment.
type Loader struct {
	Validate *validator.Validate
}

// NewLoader creates a Loader with a fresh validator instance.
func NewLoader() *Loader {
	return &Loader{Validate: validator.New()}
}

// Load reads an optional .env file, binds the environment into a Config,
// and validates it. A missing .env file is not an error.
func (l *Loader) Load() (Config, error) {
	var cfg Config

	if fileExists(".env") {
		if err := godotenv.Load(".env"); err != nil {
			return cfg, fmt.Errorf("dotenv: %w", err)
		}
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, fmt.Errorf("env load: %w", err)
	}
	if err := l.Validate.Struct(cfg); err != nil {
		return cfg, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
