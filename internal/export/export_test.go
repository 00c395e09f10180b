package export

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tracker/internal/core"
)

func TestWriteJSON(t *testing.T) {
	txns := []core.Transaction{{
		ID:          "t1",
		Type:        core.Expense,
		Amount:      core.Money{Cents: 12050},
		Category:    "food",
		Description: "Dinner",
		Date:        time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		CreatedAt:   time.Date(2024, 1, 10, 20, 0, 0, 0, time.UTC),
	}}

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, txns))

	assert.Contains(t, buf.String(), "\n  {\n    \"id\": \"t1\"")
	assert.Contains(t, buf.String(), `"amount": 120.5`)

	var decoded []core.Transaction
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, txns, decoded)
}

func TestWriteJSON_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestFileName(t *testing.T) {
	now := time.Date(2024, 3, 7, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "gpay-tracker-export-2024-03-07.json", FileName(now))
}
