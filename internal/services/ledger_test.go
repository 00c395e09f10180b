package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tracker/internal/core"
	"tracker/internal/importer"
	"tracker/internal/storage/memory"
)

func newTestLedger(t *testing.T) *Ledger {
	t.Helper()
	l, err := NewLedger(context.Background(), memory.New(), Config{}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Close() })
	return l
}

func expense(cents int64, category string, date time.Time) core.Draft {
	return core.Draft{Type: core.Expense, Amount: core.Money{Cents: cents}, Category: category, Date: date}
}

func TestLedger_SummaryInvalidatedByWrites(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(t)
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

	_, err := l.Transactions.Add(ctx, expense(10000, "food", now))
	require.NoError(t, err)
	first := l.Summary(ctx, now)
	assert.Equal(t, int64(10000), first.TotalExpense.Cents)
	assert.Equal(t, 1, l.summaries.Size())

	added, err := l.Transactions.Add(ctx, expense(500, "food", now))
	require.NoError(t, err)
	assert.Equal(t, int64(10500), l.Summary(ctx, now).TotalExpense.Cents)

	require.NoError(t, l.Transactions.Delete(ctx, added.ID))
	assert.Equal(t, int64(10000), l.Summary(ctx, now).TotalExpense.Cents)
}

func TestLedger_SummaryIsCachedPerDay(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(t)
	morning := time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC)

	l.Summary(ctx, morning)
	l.Summary(ctx, morning.Add(4*time.Hour))
	assert.Equal(t, 1, l.summaries.Size())

	l.Summary(ctx, morning.Add(24*time.Hour))
	assert.Equal(t, 2, l.summaries.Size())
}

func TestLedger_SummaryReturnsPrivateCopies(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(t)
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	_, err := l.Transactions.Add(ctx, expense(100, "food", now))
	require.NoError(t, err)

	s := l.Summary(ctx, now)
	s.CategoryBreakdown["food"] = core.Money{Cents: 1}

	assert.Equal(t, int64(100), l.Summary(ctx, now).CategoryBreakdown["food"].Cents)
}

func TestLedger_ConcurrentSummaries(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(t)
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	_, err := l.Transactions.Add(ctx, expense(100, "food", now))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, int64(100), l.Summary(ctx, now).TotalExpense.Cents)
		}()
	}
	wg.Wait()
}

func TestLedger_BreakdownTrendAndGoals(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(t)
	now := time.Date(2024, 1, 18, 12, 0, 0, 0, time.UTC)

	_, err := l.Transactions.Add(ctx, expense(3000, "food", now))
	require.NoError(t, err)
	_, err = l.Transactions.Add(ctx, expense(1000, "bills", now.AddDate(0, -1, 0)))
	require.NoError(t, err)
	_, err = l.Goals.Add(ctx, core.GoalDraft{Category: "food", Limit: core.Money{Cents: 2000}, Period: core.Weekly})
	require.NoError(t, err)

	breakdown := l.Breakdown(ctx, now)
	require.Len(t, breakdown, 2)
	assert.Equal(t, "food", breakdown[0].Category.ID)

	trend := l.Trend(now, 2)
	require.Len(t, trend, 2)
	assert.Equal(t, int64(1000), trend[0].Expense.Cents)
	assert.Equal(t, int64(3000), trend[1].Expense.Cents)

	progress := l.GoalProgress(now)
	require.Len(t, progress, 1)
	assert.True(t, progress[0].Over)
}

func TestLedger_ImportCSV(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(t)
	input := "date,description,amount\n2024-01-10,Lunch,-120\nnot-a-date,Broken,5\n2024-01-05,Salary,50000\n"

	result, err := l.ImportCSV(ctx, strings.NewReader(input), importer.Options{})
	require.NoError(t, err)

	require.Len(t, result.Imported, 2)
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, 3, result.Skipped[0].Line)
	assert.Len(t, l.Transactions.All(), 2)
	assert.Equal(t, uint64(1), l.Transactions.Version())
}

type recordingExporter struct {
	got []core.Transaction
	err error
}

func (r *recordingExporter) ExportTransactions(_ context.Context, txns []core.Transaction) error {
	r.got = txns
	return r.err
}

func TestLedger_ExportToSheet(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(t)
	_, err := l.Transactions.Add(ctx, expense(100, "food", time.Now()))
	require.NoError(t, err)

	exporter := &recordingExporter{}
	require.NoError(t, l.ExportToSheet(ctx, exporter))
	assert.Len(t, exporter.got, 1)

	exporter.err = errors.New("quota exceeded")
	assert.ErrorContains(t, l.ExportToSheet(ctx, exporter), "quota exceeded")
	assert.Error(t, l.ExportToSheet(ctx, nil))
}
