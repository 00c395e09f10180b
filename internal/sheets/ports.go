// Package sheets declares the spreadsheet ports used for exporting data.
package sheets

import (
	"context"

	"tracker/internal/core"
)

// Ports for outbound adapters.
type (
	// TransactionExporter replaces the contents of an external sheet with
	// the given transactions.
	TransactionExporter interface {
		ExportTransactions(ctx context.Context, txns []core.Transaction) error
	}
)
