package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/randomtoy/planar-go/internal/adapters/catalog"
	"github.com/randomtoy/planar-go/internal/adapters/catalog/scryfall"
	"github.com/randomtoy/planar-go/internal/adapters/storage/memory"
	"github.com/randomtoy/planar-go/internal/adapters/storage/sqlite"
	"github.com/randomtoy/planar-go/internal/config"
	"github.com/randomtoy/planar-go/internal/ports"
)

var rootCmd = &cobra.Command{
	Use:   "planard",
	Short: "Planar deck service",
	Long: `planard builds shuffled planar decks and plays them forward one card at a time.
Configuration is read from the environment (see HTTP_ADDR, CATALOG_SOURCE, STORAGE_PATH).`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(catalogCmd)
}

// stdRNG delegates to math/rand/v2 (auto-seeded).
type stdRNG struct{}

func (stdRNG) Intn(n int) int { return rand.IntN(n) }

func newLogger(cfg config.Config) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
}

func newCatalog(cfg config.Config, logger *slog.Logger) ports.CardCatalog {
	switch cfg.CatalogSource {
	case config.CatalogFile:
		return catalog.NewFileStore(cfg.CatalogPath)
	case config.CatalogScryfall:
		return scryfall.NewClient(
			&http.Client{Timeout: cfg.CatalogTimeout},
			cfg.ScryfallBaseURL,
			cfg.ScryfallUserAgent,
			logger,
		)
	default:
		return catalog.NewEmbeddedStore()
	}
}

// openStore returns the configured deck store and a function releasing it.
func openStore(ctx context.Context, cfg config.Config) (ports.DeckStore, func() error, error) {
	if cfg.StoragePath == "" {
		return memory.NewDeckStore(), func() error { return nil }, nil
	}
	store, err := sqlite.Open(ctx, cfg.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("open deck store: %w", err)
	}
	return store, store.Close, nil
}
