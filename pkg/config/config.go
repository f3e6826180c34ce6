// Package config loads application configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all runtime configuration. The GitHub webhook secret is
// supplied through the environment only; an empty secret disables
// signature verification.
type Config struct {
	HTTPAddr            string        `envconfig:"HTTP_ADDR" default:":8080"`
	DatabaseDSN         string        `envconfig:"DATABASE_DSN" default:"host=localhost user=postgres password=postgres dbname=pulseboard port=5432 sslmode=disable"`
	GitHubWebhookSecret string        `envconfig:"GITHUB_WEBHOOK_SECRET"`
	StoreTimeout        time.Duration `envconfig:"STORE_TIMEOUT" default:"5s"`
	LogLevel            string        `envconfig:"LOG_LEVEL" default:"info"`
	NotifierBuffer      int           `envconfig:"NOTIFIER_BUFFER" default:"16"`
}

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}
