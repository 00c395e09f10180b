// Package cli wires configuration, logging and storage together for the
// command line entry point.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"tracker/internal/backend"
	"tracker/internal/config"
	"tracker/internal/log"
	"tracker/internal/services"
	"tracker/internal/sheets"
	gsheet "tracker/internal/sheets/google"
	"tracker/internal/store"
)

// LoadEnvFile loads the .env file for local development.
// A missing file is not an error.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration from the environment, applies
// overrides (typically command line flags) and validates the result.
func LoadAndValidateConfig(overrides ...func(*config.Config)) (*config.Config, error) {
	cfg := config.Load()
	for _, override := range overrides {
		override(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SetupLogger builds the application logger from cfg and makes it the
// slog default.
func SetupLogger(cfg *config.Config, out io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logger := log.New(log.Config{
		Level:     level,
		Format:    cfg.LogFormat,
		Component: log.ComponentApp,
		Output:    out,
	})
	log.SetDefault(logger)
	return logger, nil
}

// SignalContext returns a context cancelled on SIGINT or SIGTERM.
func SignalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// App is a fully initialized ledger plus the resources it holds.
type App struct {
	Config   *config.Config
	Logger   *log.Logger
	Ledger   *services.Ledger
	Location *time.Location

	backend *backend.BackendResult
}

// Bootstrap opens the configured backend and the ledger on top of it.
func Bootstrap(ctx context.Context, cfg *config.Config, logger *log.Logger) (*App, error) {
	if logger == nil {
		logger = log.Discard()
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("load timezone: %w", err)
	}

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, err
	}
	result, err := backend.NewFactory(logger).CreateBackend(ctx, backendCfg)
	if err != nil {
		return nil, err
	}

	ledger, err := services.NewLedger(ctx, result.Backend, services.Config{
		CacheSize: cfg.StatsCacheSize,
		CacheTTL:  cfg.StatsCacheTTL,
	}, logger, store.WithLocale(cfg.LocaleTag()))
	if err != nil {
		if closeErr := result.Close(); closeErr != nil {
			logger.ErrorContext(ctx, "Failed to close backend", log.FieldError, closeErr)
		}
		return nil, err
	}

	return &App{
		Config:   cfg,
		Logger:   logger,
		Ledger:   ledger,
		Location: loc,
		backend:  result,
	}, nil
}

// Now returns the current time in the configured timezone.
func (a *App) Now() time.Time {
	return time.Now().In(a.Location)
}

// SheetsExporter connects to the configured spreadsheet.
func (a *App) SheetsExporter(ctx context.Context) (sheets.TransactionExporter, error) {
	if !a.Config.SheetsEnabled() {
		return nil, fmt.Errorf("sheets export is not configured (set GOOGLE_SPREADSHEET_ID)")
	}
	return gsheet.New(ctx, gsheet.Config{
		SpreadsheetID:   a.Config.GoogleSpreadsheetID,
		SheetName:       a.Config.GoogleExportSheetName,
		CredentialsJSON: a.Config.GoogleServiceAccountJSON,
		CredentialsFile: a.Config.GoogleServiceAccountFile,
		Logger:          a.Logger,
	})
}

// Close releases the ledger and then the backend.
func (a *App) Close() error {
	var errs []error
	if err := a.Ledger.Close(); err != nil {
		errs = append(errs, fmt.Errorf("ledger: %w", err))
	}
	if err := a.backend.Close(); err != nil {
		errs = append(errs, fmt.Errorf("backend: %w", err))
	}
	if len(errs) > 0 {
		return fmt.Errorf("close app: %v", errs)
	}
	return nil
}
