package store

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"tracker/internal/core"
	"tracker/internal/export"
	"tracker/internal/log"
)

// TransactionStore owns the transaction collection. New records are kept
// newest first.
type TransactionStore struct {
	items      *Collection[core.Transaction]
	opts       options
	structured *log.StructuredLogger
}

// OpenTransactions loads the transaction collection from backend.
func OpenTransactions(ctx context.Context, backend Backend, opts ...Option) (*TransactionStore, error) {
	o := buildOptions(opts)
	items, err := OpenCollection[core.Transaction](ctx, backend, TransactionsKey, o.logger)
	if err != nil {
		return nil, fmt.Errorf("open transactions: %w", err)
	}
	return &TransactionStore{
		items:      items,
		opts:       o,
		structured: log.NewStructuredLogger(o.logger),
	}, nil
}

// All returns every transaction, newest first.
func (s *TransactionStore) All() []core.Transaction {
	return s.items.All()
}

// Version changes after every persisted mutation.
func (s *TransactionStore) Version() uint64 {
	return s.items.Version()
}

// Snapshot returns All and the Version it corresponds to, read atomically.
func (s *TransactionStore) Snapshot() ([]core.Transaction, uint64) {
	return s.items.Snapshot()
}

func (s *TransactionStore) Get(id string) (core.Transaction, bool) {
	return s.items.Find(byTransactionID(id))
}

// Add stores a new transaction built from d and returns it.
func (s *TransactionStore) Add(ctx context.Context, d core.Draft) (core.Transaction, error) {
	if err := d.Validate(); err != nil {
		return core.Transaction{}, fmt.Errorf("add transaction: %w", err)
	}
	t := s.newRecord(d, s.opts.now())
	if err := s.items.Prepend(ctx, t); err != nil {
		return core.Transaction{}, fmt.Errorf("add transaction: %w", err)
	}
	s.structured.LogTransactionCreated(ctx, t.ID, string(t.Type), t.Amount.Cents, t.Category)
	return t, nil
}

// Update merges patch into the transaction with the given id. An unknown id
// is not an error and leaves the collection untouched.
func (s *TransactionStore) Update(ctx context.Context, id string, patch core.TransactionPatch) error {
	if err := patch.Validate(); err != nil {
		return fmt.Errorf("update transaction %s: %w", id, err)
	}
	_, found, err := s.items.ReplaceFirst(ctx, byTransactionID(id), patch.Apply)
	if err != nil {
		return fmt.Errorf("update transaction %s: %w", id, err)
	}
	if !found {
		s.opts.logger.DebugContext(ctx, "Update skipped, transaction not found", log.FieldTransactionID, id)
	}
	return nil
}

// Delete removes the transaction with the given id; unknown ids are ignored.
func (s *TransactionStore) Delete(ctx context.Context, id string) error {
	removed, err := s.items.RemoveWhere(ctx, byTransactionID(id))
	if err != nil {
		return fmt.Errorf("delete transaction %s: %w", id, err)
	}
	if removed {
		s.opts.logger.InfoContext(ctx, "Transaction deleted",
			log.FieldOperation, log.OpDelete,
			log.FieldTransactionID, id)
	}
	return nil
}

// ImportBatch normalizes and stores all drafts with a single durable write.
// The whole batch is rejected if any draft is invalid.
func (s *TransactionStore) ImportBatch(ctx context.Context, drafts []core.Draft) ([]core.Transaction, error) {
	if len(drafts) == 0 {
		return nil, nil
	}
	now := s.opts.now()
	records := make([]core.Transaction, 0, len(drafts))
	for i, d := range drafts {
		d = d.Normalize()
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("import draft %d: %w", i, err)
		}
		records = append(records, s.newRecord(d, now))
	}
	if err := s.items.Prepend(ctx, records...); err != nil {
		return nil, fmt.Errorf("import transactions: %w", err)
	}
	s.opts.logger.InfoContext(ctx, "Transactions imported",
		log.FieldOperation, log.OpImport,
		log.FieldCount, len(records))
	return records, nil
}

// Search filters by a case-insensitive substring of the description or the
// category id. An empty kind matches both types.
func (s *TransactionStore) Search(query string, kind core.TransactionType) []core.Transaction {
	q := strings.ToLower(strings.TrimSpace(query))
	all := s.items.All()
	out := make([]core.Transaction, 0, len(all))
	for _, t := range all {
		if kind != "" && t.Type != kind {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(t.Description), q) &&
			!strings.Contains(strings.ToLower(t.Category), q) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Export writes the whole collection to w in the storage encoding.
func (s *TransactionStore) Export(ctx context.Context, w io.Writer) error {
	items := s.items.All()
	if err := export.WriteJSON(w, items); err != nil {
		return fmt.Errorf("export transactions: %w", err)
	}
	s.opts.logger.InfoContext(ctx, "Transactions exported",
		log.FieldOperation, log.OpExport,
		log.FieldCount, len(items))
	return nil
}

func (s *TransactionStore) newRecord(d core.Draft, now time.Time) core.Transaction {
	return core.Transaction{
		ID:          s.opts.newID(),
		Type:        d.Type,
		Amount:      d.Amount,
		Category:    d.Category,
		Description: d.Description,
		Date:        d.Date,
		CreatedAt:   now.UTC(),
	}
}

func byTransactionID(id string) func(core.Transaction) bool {
	return func(t core.Transaction) bool { return t.ID == id }
}
