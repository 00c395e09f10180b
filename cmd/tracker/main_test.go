package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tracker/internal/core"
	"tracker/internal/stats"
)

// setupEnv points every command at a fresh SQLite file.
func setupEnv(t *testing.T) {
	t.Helper()
	t.Setenv("TRACKER_BACKEND", "sqlite")
	t.Setenv("TRACKER_DB_PATH", filepath.Join(t.TempDir(), "tracker.db"))
	t.Setenv("TRACKER_TIMEZONE", "UTC")
	t.Setenv("TRACKER_LOCALE", "en-IN")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("GOOGLE_SPREADSHEET_ID", "")
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(t, args...)
	require.NoError(t, err, "tracker %s", strings.Join(args, " "))
	return out
}

func TestCLI_AddListDelete(t *testing.T) {
	setupEnv(t)

	out := mustRun(t, "add", "--amount", "120.50", "--category", "food", "--description", "Lunch", "--date", "2024-01-10")
	assert.Contains(t, out, "Added expense ₹120.5")
	mustRun(t, "add", "--type", "income", "--amount", "50000", "--category", "salary", "--date", "2024-01-05")

	out = mustRun(t, "list")
	assert.Contains(t, out, "Lunch")
	assert.Contains(t, out, "-₹120.5")
	assert.Contains(t, out, "+₹50,000")

	out = mustRun(t, "list", "--type", "income")
	assert.NotContains(t, out, "Lunch")

	var exported []core.Transaction
	require.NoError(t, json.Unmarshal([]byte(mustRun(t, "export", "--out", "-")), &exported))
	require.Len(t, exported, 2)

	mustRun(t, "delete", exported[0].ID[:8])
	out = mustRun(t, "list", "--search", "lunch")
	assert.Contains(t, out, "No transactions found")
}

func TestCLI_BlankIDMatchesNothing(t *testing.T) {
	setupEnv(t)

	mustRun(t, "add", "--amount", "10", "--category", "food")
	mustRun(t, "goals", "set", "--category", "food", "--limit", "100")

	_, err := run(t, "delete", "")
	assert.ErrorIs(t, err, errBlankID)
	_, err = run(t, "edit", " ", "--amount", "20")
	assert.ErrorIs(t, err, errBlankID)
	_, err = run(t, "goals", "delete", "")
	assert.ErrorIs(t, err, errBlankID)

	out := mustRun(t, "list")
	assert.Contains(t, out, "₹10")
	out = mustRun(t, "goals", "list")
	assert.Equal(t, 2, strings.Count(out, "\n"), "goal must survive")
}

func TestCLI_AddValidation(t *testing.T) {
	setupEnv(t)

	_, err := run(t, "add", "--amount=-5", "--category", "food")
	assert.Error(t, err)
	_, err = run(t, "add", "--amount", "5", "--category", "salary")
	assert.ErrorContains(t, err, "cannot be used for expense")
	_, err = run(t, "add", "--amount", "5", "--category", "pets")
	assert.ErrorContains(t, err, "unknown category")
	_, err = run(t, "add", "--category", "food")
	assert.Error(t, err, "amount is required")
}

func TestCLI_EditAndStats(t *testing.T) {
	setupEnv(t)

	mustRun(t, "add", "--amount", "100", "--category", "food")
	var exported []core.Transaction
	require.NoError(t, json.Unmarshal([]byte(mustRun(t, "export", "--out", "-")), &exported))
	require.Len(t, exported, 1)

	mustRun(t, "edit", exported[0].ID, "--amount", "250", "--category", "bills")

	var summary stats.Summary
	require.NoError(t, json.Unmarshal([]byte(mustRun(t, "stats", "--json")), &summary))
	assert.Equal(t, int64(25000), summary.TotalExpense.Cents)
	assert.Equal(t, int64(25000), summary.WeeklyExpense.Cents)
	assert.Equal(t, map[string]core.Money{"bills": {Cents: 25000}}, summary.CategoryBreakdown)

	out := mustRun(t, "stats")
	assert.Contains(t, out, "Bills")
	assert.Contains(t, out, "100.0%")

	out = mustRun(t, "trend", "--months", "3")
	assert.Equal(t, 3, strings.Count(out, "\n"))
}

func TestCLI_Goals(t *testing.T) {
	setupEnv(t)

	mustRun(t, "goals", "set", "--category", "food", "--limit", "2000", "--period", "weekly")
	mustRun(t, "goals", "set", "--category", "food", "--limit", "3000", "--period", "weekly")
	mustRun(t, "add", "--amount", "3500", "--category", "food")

	out := mustRun(t, "goals", "list")
	assert.Equal(t, 2, strings.Count(out, "\n"), "one header and one goal")
	assert.Contains(t, out, "over by ₹500")

	_, err := run(t, "goals", "set", "--category", "food", "--limit", "10", "--period", "yearly")
	assert.Error(t, err)
}

func TestCLI_ImportAndExportFile(t *testing.T) {
	setupEnv(t)

	csvPath := filepath.Join(t.TempDir(), "statement.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("date,description,amount\n2024-01-10,Lunch,-120\nbad,Row,1\n2024-01-05,Salary,50000\n"), 0600))

	out := mustRun(t, "import", csvPath)
	assert.Contains(t, out, "Imported 2 transactions, skipped 1 rows")
	assert.Contains(t, out, "line 3")

	exportPath := filepath.Join(t.TempDir(), "export.json")
	out = mustRun(t, "export", "--out", exportPath)
	assert.Contains(t, out, "Exported 2 transactions to "+exportPath)

	raw, err := os.ReadFile(exportPath)
	require.NoError(t, err)
	var exported []core.Transaction
	require.NoError(t, json.Unmarshal(raw, &exported))
	assert.Len(t, exported, 2)

	_, err = run(t, "import", csvPath, "--delimiter", ";;")
	assert.Error(t, err)
}

func TestCLI_SettingsAndCategories(t *testing.T) {
	setupEnv(t)

	out := mustRun(t, "settings")
	assert.Contains(t, out, "Name:     User")

	out = mustRun(t, "settings", "--name", "Asha", "--currency", "$")
	assert.Contains(t, out, "Currency: $")

	out = mustRun(t, "settings")
	assert.Contains(t, out, "Name:     Asha")

	out = mustRun(t, "categories")
	assert.Contains(t, out, "salary")
	assert.Contains(t, out, "other")
}

func TestCLI_SheetsExportNeedsConfiguration(t *testing.T) {
	setupEnv(t)

	_, err := run(t, "export", "--out", "-", "--sheets")
	assert.ErrorContains(t, err, "GOOGLE_SPREADSHEET_ID")
}
