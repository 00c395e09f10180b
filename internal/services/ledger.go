// Package services composes the stores, the statistics engine and the
// outbound adapters into the operations the command line exposes.
package services

import (
	"context"
	"fmt"
	"io"
	"maps"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"tracker/internal/cache"
	"tracker/internal/core"
	"tracker/internal/importer"
	"tracker/internal/log"
	"tracker/internal/sheets"
	"tracker/internal/stats"
	"tracker/internal/store"
)

// Defaults for the summary cache.
const (
	DefaultCacheSize       = 32
	DefaultCacheTTL        = 10 * time.Minute
	DefaultCleanupInterval = 5 * time.Minute
)

// Config tunes the summary cache.
type Config struct {
	CacheSize       int
	CacheTTL        time.Duration
	CleanupInterval time.Duration
}

func (c Config) withDefaults() Config {
	if c.CacheSize <= 0 {
		c.CacheSize = DefaultCacheSize
	}
	if c.CacheTTL <= 0 {
		c.CacheTTL = DefaultCacheTTL
	}
	if c.CleanupInterval <= 0 {
		c.CleanupInterval = DefaultCleanupInterval
	}
	return c
}

// Ledger owns the three stores of one backend.
type Ledger struct {
	Transactions *store.TransactionStore
	Goals        *store.GoalStore
	Settings     *store.SettingsStore

	summaries *cache.LRUCache[stats.Summary]
	manager   *cache.Manager
	group     singleflight.Group
	logger    *log.Logger
	importLog *log.Logger
	exportLog *log.Logger
}

// NewLedger opens the stores on backend and starts the cache cleanup loop.
// Close must be called to stop it.
func NewLedger(ctx context.Context, backend store.Backend, cfg Config, logger *log.Logger, opts ...store.Option) (*Ledger, error) {
	if logger == nil {
		logger = log.Discard()
	}
	cfg = cfg.withDefaults()
	opts = append([]store.Option{store.WithLogger(logger)}, opts...)

	l := &Ledger{
		logger:    logger.WithComponent(log.ComponentStats),
		importLog: logger.WithComponent(log.ComponentImporter),
		exportLog: logger.WithComponent(log.ComponentExport),
	}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		l.Transactions, err = store.OpenTransactions(gctx, backend, opts...)
		return err
	})
	g.Go(func() (err error) {
		l.Goals, err = store.OpenGoals(gctx, backend, opts...)
		return err
	})
	g.Go(func() (err error) {
		l.Settings, err = store.OpenSettings(gctx, backend, opts...)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}

	l.summaries = cache.NewLRUCache[stats.Summary](cfg.CacheSize, cfg.CacheTTL)
	l.manager = cache.NewManager(logger)
	l.manager.Register(l.summaries)
	l.manager.StartCleanup(cfg.CleanupInterval)
	return l, nil
}

// Summary returns the dashboard aggregates for now. Results are cached per
// transaction version and calendar day, so any write invalidates them.
func (l *Ledger) Summary(ctx context.Context, now time.Time) stats.Summary {
	txns, version := l.Transactions.Snapshot()
	key := summaryKey(version, now)

	if s, ok := l.summaries.Get(key); ok {
		return cloneSummary(s)
	}

	v, _, shared := l.group.Do(key, func() (any, error) {
		s := stats.Compute(txns, now)
		l.summaries.Set(key, s)
		l.logger.DebugContext(ctx, "Summary computed",
			log.FieldOperation, log.OpCompute,
			log.FieldVersion, version,
			log.FieldCount, len(txns))
		return s, nil
	})
	if shared {
		l.logger.DebugContext(ctx, "Summary computation shared", log.FieldVersion, version)
	}
	return cloneSummary(v.(stats.Summary))
}

func summaryKey(version uint64, now time.Time) string {
	return fmt.Sprintf("%d|%s|%s", version, now.Format("2006-01-02"), now.Location())
}

// cloneSummary keeps callers from mutating the cached breakdown map.
func cloneSummary(s stats.Summary) stats.Summary {
	s.CategoryBreakdown = maps.Clone(s.CategoryBreakdown)
	return s
}

// Breakdown ranks the expense categories of the cached summary.
func (l *Ledger) Breakdown(ctx context.Context, now time.Time) []stats.CategoryShare {
	return stats.RankedBreakdown(l.Summary(ctx, now).CategoryBreakdown)
}

// Trend returns the monthly expense totals of the last months months.
func (l *Ledger) Trend(now time.Time, months int) []stats.MonthTotal {
	return stats.MonthlyTrend(l.Transactions.All(), now, months)
}

// GoalProgress measures every budget goal against its current period.
func (l *Ledger) GoalProgress(now time.Time) []stats.GoalStatus {
	return stats.GoalProgress(l.Goals.All(), l.Transactions.All(), now)
}

// ImportResult summarizes one CSV import.
type ImportResult struct {
	Imported []core.Transaction
	Skipped  []importer.RowError
}

// ImportCSV reads r and stores every valid row in a single write. Rows that
// cannot be parsed are skipped and reported.
func (l *Ledger) ImportCSV(ctx context.Context, r io.Reader, opts importer.Options) (ImportResult, error) {
	drafts, skipped, err := importer.ReadCSV(r, opts)
	if err != nil {
		return ImportResult{}, err
	}
	for _, rowErr := range skipped {
		l.importLog.WarnContext(ctx, "Import row skipped",
			"line", rowErr.Line,
			log.FieldError, rowErr.Err)
	}
	imported, err := l.Transactions.ImportBatch(ctx, drafts)
	if err != nil {
		log.NewStructuredLogger(l.importLog).LogError(ctx, "Import failed", err,
			log.ComponentImporter, log.OpImport, log.NewFields().WithSlot(store.TransactionsKey))
		return ImportResult{Skipped: skipped}, err
	}
	return ImportResult{Imported: imported, Skipped: skipped}, nil
}

// ExportToSheet pushes every transaction to exporter.
func (l *Ledger) ExportToSheet(ctx context.Context, exporter sheets.TransactionExporter) error {
	if exporter == nil {
		return fmt.Errorf("export to sheet: no exporter configured")
	}
	txns := l.Transactions.All()
	if err := exporter.ExportTransactions(ctx, txns); err != nil {
		log.NewStructuredLogger(l.exportLog).LogError(ctx, "Sheet export failed", err,
			log.ComponentExport, log.OpExport, nil)
		return fmt.Errorf("export to sheet: %w", err)
	}
	l.exportLog.InfoContext(ctx, "Transactions exported to sheet",
		log.FieldOperation, log.OpExport,
		log.FieldCount, len(txns))
	return nil
}

// Close stops the cache cleanup loop. It does not close the backend.
func (l *Ledger) Close() error {
	l.manager.Stop()
	l.summaries.Purge()
	return nil
}
