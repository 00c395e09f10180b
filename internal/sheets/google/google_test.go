package google

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"tracker/internal/core"
)

func sampleTransactions() []core.Transaction {
	return []core.Transaction{{
		ID:          "t1",
		Type:        core.Expense,
		Amount:      core.Money{Cents: 12050},
		Category:    "food",
		Description: "Dinner",
		Date:        time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		CreatedAt:   time.Date(2024, 1, 10, 20, 15, 0, 0, time.UTC),
	}, {
		ID:       "t2",
		Type:     core.Income,
		Amount:   core.Money{Cents: 5000000},
		Category: "unknown-id",
		Date:     time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
	}}
}

func TestBuildRows(t *testing.T) {
	rows := buildRows(sampleTransactions())

	require.Len(t, rows, 3)
	assert.Equal(t, header, rows[0])
	assert.Equal(t, []any{"2024-01-10", "expense", "Food & Drink", "Dinner", 120.5, "t1", "2024-01-10T20:15:00Z"}, rows[1])
	assert.Equal(t, "Other", rows[2][2])
	assert.Equal(t, 50000.0, rows[2][4])
}

func TestBuildRows_Empty(t *testing.T) {
	assert.Equal(t, [][]any{header}, buildRows(nil))
}

func TestNew_MissingSpreadsheetID(t *testing.T) {
	_, err := New(context.Background(), Config{CredentialsJSON: "{}"})
	require.Error(t, err)
	assert.Equal(t, "missing GOOGLE_SPREADSHEET_ID", err.Error())
}

func TestNew_MissingCredentials(t *testing.T) {
	_, err := New(context.Background(), Config{SpreadsheetID: "sheet-id"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing service account credentials")
}

func TestNew_UnreadableCredentialsFile(t *testing.T) {
	_, err := New(context.Background(), Config{
		SpreadsheetID:   "sheet-id",
		CredentialsFile: t.TempDir() + "/missing.json",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read service account file")
}

func TestExportTransactions_NilService(t *testing.T) {
	c := &Client{spreadsheetID: "test", sheetName: DefaultSheetName}
	assert.Error(t, c.ExportTransactions(context.Background(), nil))
}

func TestExportTransactions_ClearsThenWrites(t *testing.T) {
	var (
		mu      sync.Mutex
		calls   []string
		written gsheet.ValueRange
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		switch {
		case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, ":clear"):
			calls = append(calls, "clear")
		case r.Method == http.MethodPut:
			calls = append(calls, "update")
			assert.Equal(t, "RAW", r.URL.Query().Get("valueInputOption"))
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&written))
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	ctx := context.Background()
	svc, err := gsheet.NewService(ctx,
		goption.WithEndpoint(srv.URL+"/"),
		goption.WithoutAuthentication(),
		goption.WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	c := NewWithService(svc, Config{SpreadsheetID: "sheet-id"})
	require.NoError(t, c.ExportTransactions(ctx, sampleTransactions()))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"clear", "update"}, calls)
	require.Len(t, written.Values, 3)
	assert.Equal(t, "Date", written.Values[0][0])
	assert.Equal(t, "Dinner", written.Values[1][3])
}
