package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/randomtoy/planar-go/internal/adapters/catalog"
	"github.com/randomtoy/planar-go/internal/config"
	"github.com/randomtoy/planar-go/internal/domain"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect planar card catalogs",
}

var catalogListCmd = &cobra.Command{
	Use:   "ls",
	Short: "List the cards of the configured catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))

		cards, err := newCatalog(cfg, logger).Cards(cmd.Context())
		if err != nil {
			return err
		}
		printCards(cmd.OutOrStdout(), cards, phenomenaOnly)
		return nil
	},
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate [catalog.toml]",
	Short: "Check a TOML catalog file for errors",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read catalog: %w", err)
		}
		cards, err := catalog.Parse(string(raw))
		if err != nil {
			color.New(color.FgRed).Fprintf(cmd.ErrOrStderr(), "✗ %s is invalid\n", args[0])
			return err
		}
		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ %s: %d cards\n", args[0], len(cards))
		return nil
	},
}

var phenomenaOnly bool

func init() {
	catalogListCmd.Flags().BoolVar(&phenomenaOnly, "phenomena", false, "only list phenomena")
	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogValidateCmd)
}

func printCards(w io.Writer, cards []domain.Card, onlyPhenomena bool) {
	planeColor := color.New(color.FgCyan)
	phenomenonColor := color.New(color.FgMagenta, color.Bold)

	var planes, phenomena int
	for _, c := range cards {
		if c.Type.IsPhenomenon() {
			phenomena++
			phenomenonColor.Fprintf(w, "%8d  %-36s %s\n", c.ID, c.Name, c.Type)
			continue
		}
		planes++
		if !onlyPhenomena {
			planeColor.Fprintf(w, "%8d  %-36s %s\n", c.ID, c.Name, c.Type)
		}
	}
	fmt.Fprintf(w, "\n%d planes, %d phenomena\n", planes, phenomena)
}
