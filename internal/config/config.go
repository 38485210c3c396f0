// Package config loads server settings from the environment and an optional
// .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// LoadDotEnv loads environment variables from a .env file if present.
// Existing environment variables are not overwritten.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return godotenv.Load(path)
}

type Config struct {
	Addr        string `env:"SPACE_ADDR" envDefault:":8080"`
	CatalogPath string `env:"SPACE_CATALOG" envDefault:"content/planets.yaml"`
	AssetsDir   string `env:"SPACE_ASSETS_DIR" envDefault:"assets"`

	// Zero applies the transition in the same request.
	StartDelay   time.Duration `env:"SPACE_START_DELAY" envDefault:"300ms"`
	SuccessDelay time.Duration `env:"SPACE_SUCCESS_DELAY" envDefault:"2s"`

	DefaultLocale string `env:"SPACE_DEFAULT_LOCALE" envDefault:"en-US"`
	SampleRate    int    `env:"SPACE_SAMPLE_RATE" envDefault:"22050"`
	SecureCookies bool   `env:"SPACE_SECURE_COOKIES"`
	Debug         bool   `env:"DEBUG"`

	// Tracing stays off unless an OTLP endpoint is set.
	OTelEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	ServiceName  string `env:"OTEL_SERVICE_NAME" envDefault:"spaceexplorer"`
}

var ErrNegativeDelay = errors.New("delays must not be negative")

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads the .env file at dotenvPath (if any) and parses the environment.
func Load(dotenvPath string) (Config, error) {
	if err := LoadDotEnv(dotenvPath); err != nil {
		return Config{}, fmt.Errorf("load %s: %w", dotenvPath, err)
	}
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.StartDelay < 0 || c.SuccessDelay < 0 {
		return ErrNegativeDelay
	}
	if c.CatalogPath == "" {
		return errors.New("catalog path is required")
	}
	return nil
}
