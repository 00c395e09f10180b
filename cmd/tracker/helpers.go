package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"tracker/internal/cli"
	"tracker/internal/config"
	"tracker/internal/core"
	"tracker/internal/log"
)

var errBlankID = errors.New("id must not be empty")

// openApp loads configuration, applies the global flags and bootstraps the
// ledger. Callers must Close the returned app.
func openApp(cmd *cobra.Command) (*cli.App, error) {
	cli.LoadEnvFile()

	backend, _ := cmd.Flags().GetString("backend")
	dbPath, _ := cmd.Flags().GetString("db")
	level, _ := cmd.Flags().GetString("log-level")

	cfg, err := cli.LoadAndValidateConfig(func(c *config.Config) {
		if backend != "" {
			c.Backend = backend
		}
		if dbPath != "" {
			c.DBPath = dbPath
		}
		if level != "" {
			c.LogLevel = level
		}
	})
	if err != nil {
		return nil, err
	}

	logger, err := cli.SetupLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	app, err := cli.Bootstrap(cmd.Context(), cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	return app, nil
}

func closeApp(app *cli.App) {
	if err := app.Close(); err != nil {
		app.Logger.Error("failed to close storage", log.FieldError, err)
	}
}

func parseDay(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", s)
	}
	return t, nil
}

func parseAmount(s string) (core.Money, error) {
	cents, err := core.ParseDecimalToCents(s)
	if err != nil {
		return core.Money{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return core.Money{Cents: cents}, nil
}

func checkCategory(id string, kind core.TransactionType) error {
	if !core.IsKnownCategory(id) {
		return fmt.Errorf("unknown category %q (see 'tracker categories')", id)
	}
	if kind != "" && !core.LookupCategory(id).Accepts(kind) {
		return fmt.Errorf("category %q cannot be used for %s", id, kind)
	}
	return nil
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func categoryLabel(id string) string {
	c := core.LookupCategory(id)
	return c.Icon + " " + c.Name
}

func formatPercent(p float64) string {
	return fmt.Sprintf("%+.1f%%", p)
}
