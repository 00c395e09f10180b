// Package export writes the transaction collection in its storage encoding.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"tracker/internal/core"
)

const fileNamePrefix = "gpay-tracker-export-"

// WriteJSON writes txns as an indented JSON array. An empty collection is
// written as [] rather than null.
func WriteJSON(w io.Writer, txns []core.Transaction) error {
	if txns == nil {
		txns = []core.Transaction{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(txns); err != nil {
		return fmt.Errorf("encode transactions: %w", err)
	}
	return nil
}

// FileName returns the conventional export file name for the day of now.
func FileName(now time.Time) string {
	return fileNamePrefix + now.Format("2006-01-02") + ".json"
}
