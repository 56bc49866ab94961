package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/randomtoy/planar-go/internal/domain"
)

// Catalog sources.
const (
	CatalogEmbedded = "embedded"
	CatalogFile     = "file"
	CatalogScryfall = "scryfall"
)

type Config struct {
	HTTPAddr          string                 `env:"HTTP_ADDR" envDefault:":8080"`
	LogLevel          slog.Level             `env:"LOG_LEVEL" envDefault:"info"`
	CatalogSource     string                 `env:"CATALOG_SOURCE" envDefault:"embedded"`
	CatalogPath       string                 `env:"CATALOG_PATH"`
	ScryfallBaseURL   string                 `env:"SCRYFALL_BASE_URL" envDefault:"https://api.scryfall.com"`
	ScryfallUserAgent string                 `env:"SCRYFALL_USER_AGENT" envDefault:"planard/1.0"`
	CatalogTimeout    time.Duration          `env:"CATALOG_TIMEOUT" envDefault:"10s"`
	StoragePath       string                 `env:"STORAGE_PATH"`
	SelectionPolicy   domain.SelectionPolicy `env:"SELECTION_POLICY" envDefault:"permissive"`
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	switch c.CatalogSource {
	case CatalogEmbedded, CatalogScryfall:
	case CatalogFile:
		if c.CatalogPath == "" {
			return Config{}, fmt.Errorf("CATALOG_PATH is required when CATALOG_SOURCE=file")
		}
	default:
		return Config{}, fmt.Errorf("invalid CATALOG_SOURCE %q", c.CatalogSource)
	}

	if c.CatalogTimeout <= 0 {
		return Config{}, fmt.Errorf("CATALOG_TIMEOUT must be positive")
	}

	return c, nil
}
