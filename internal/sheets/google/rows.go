package google

import (
	"time"

	"tracker/internal/core"
)

var header = []any{"Date", "Type", "Category", "Description", "Amount", "ID", "Created At"}

// buildRows renders txns as sheet rows, header first. Amounts are numbers so
// the sheet can sum them; the category is shown by display name.
func buildRows(txns []core.Transaction) [][]any {
	rows := make([][]any, 0, len(txns)+1)
	rows = append(rows, header)
	for _, t := range txns {
		rows = append(rows, []any{
			t.Date.Format("2006-01-02"),
			string(t.Type),
			core.LookupCategory(t.Category).Name,
			t.Description,
			t.Amount.Amount(),
			t.ID,
			t.CreatedAt.Format(time.RFC3339),
		})
	}
	return rows
}
