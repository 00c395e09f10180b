// Package store keeps typed collections in memory and writes every change
// through to a durable slot before the change becomes visible.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"

	"tracker/internal/log"
)

// Backend is a durable key-value slot table.
type Backend interface {
	// Get returns the stored value for key; ok is false when the key was never written.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	// Put replaces the value stored for key.
	Put(ctx context.Context, key string, value []byte) error
}

var (
	errSlotMissing = errors.New("slot not found")
	errSlotCorrupt = errors.New("slot corrupt")
)

// slot pairs one in-memory value with its durable copy. All mutations run
// under mu and publish the new value only after Put succeeded.
type slot[T any] struct {
	key        string
	backend    Backend
	logger     *log.Logger
	structured *log.StructuredLogger

	mu      sync.Mutex
	value   T
	version uint64
}

func openSlot[T any](ctx context.Context, backend Backend, key string, def T, logger *log.Logger) (*slot[T], error) {
	if backend == nil {
		return nil, errors.New("store: nil backend")
	}
	if logger == nil {
		logger = log.Discard()
	}
	s := &slot[T]{
		key:        key,
		backend:    backend,
		logger:     logger,
		structured: log.NewStructuredLogger(logger),
	}

	value, err := s.load(ctx)
	if err == nil {
		s.value = value
		s.logger.DebugContext(ctx, "Slot loaded", log.FieldSlotKey, key)
		return s, nil
	}
	switch {
	case errors.Is(err, errSlotCorrupt):
		s.structured.LogSlotRecovered(ctx, key, err)
	case !errors.Is(err, errSlotMissing):
		// Read failures must not overwrite the stored value.
		return nil, fmt.Errorf("read slot %s: %w", key, err)
	}

	// First write-through of the default value
	if err := s.persist(ctx, def); err != nil {
		return nil, fmt.Errorf("initialize slot %s: %w", key, err)
	}
	s.value = def
	return s, nil
}

func (s *slot[T]) load(ctx context.Context) (T, error) {
	var zero T
	data, ok, err := s.backend.Get(ctx, s.key)
	if err != nil {
		return zero, err
	}
	if !ok {
		return zero, errSlotMissing
	}
	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		return zero, fmt.Errorf("%w: decode %s: %w", errSlotCorrupt, s.key, err)
	}
	return value, nil
}

func (s *slot[T]) persist(ctx context.Context, value T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode slot %s: %w", s.key, err)
	}
	return s.backend.Put(ctx, s.key, data)
}

// mutate runs fn on the current value and writes its result through. fn
// reports changed=false to skip the write entirely.
func (s *slot[T]) mutate(ctx context.Context, fn func(current T) (next T, changed bool, err error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, changed, err := fn(s.value)
	if err != nil || !changed {
		return err
	}
	if err := s.persist(ctx, next); err != nil {
		return err
	}
	s.value = next
	s.version++
	return nil
}

func (s *slot[T]) read() (T, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value, s.version
}

// Collection is an ordered sequence of entities stored under one key.
type Collection[E any] struct {
	s *slot[[]E]
}

// OpenCollection loads the collection stored under key, starting empty when
// the slot is missing or corrupt.
func OpenCollection[E any](ctx context.Context, backend Backend, key string, logger *log.Logger) (*Collection[E], error) {
	s, err := openSlot(ctx, backend, key, []E{}, logger)
	if err != nil {
		return nil, err
	}
	return &Collection[E]{s: s}, nil
}

// All returns a copy of the current elements.
func (c *Collection[E]) All() []E {
	items, _ := c.s.read()
	out := make([]E, len(items))
	copy(out, items)
	return out
}

// Snapshot returns a copy of the elements together with the version they
// belong to.
func (c *Collection[E]) Snapshot() ([]E, uint64) {
	items, v := c.s.read()
	out := make([]E, len(items))
	copy(out, items)
	return out, v
}

// Len returns the number of elements.
func (c *Collection[E]) Len() int {
	items, _ := c.s.read()
	return len(items)
}

// Version increases by one after every persisted mutation.
func (c *Collection[E]) Version() uint64 {
	_, v := c.s.read()
	return v
}

// Find returns the first element matching match.
func (c *Collection[E]) Find(match func(E) bool) (E, bool) {
	items, _ := c.s.read()
	for _, it := range items {
		if match(it) {
			return it, true
		}
	}
	var zero E
	return zero, false
}

// Update replaces the whole collection with the result of fn. fn receives a
// private copy and may modify it freely.
func (c *Collection[E]) Update(ctx context.Context, fn func(items []E) ([]E, bool, error)) error {
	return c.s.mutate(ctx, func(current []E) ([]E, bool, error) {
		return fn(slices.Clone(current))
	})
}

// Prepend inserts items, in order, before the existing elements.
func (c *Collection[E]) Prepend(ctx context.Context, items ...E) error {
	if len(items) == 0 {
		return nil
	}
	return c.Update(ctx, func(current []E) ([]E, bool, error) {
		next := make([]E, 0, len(items)+len(current))
		next = append(next, items...)
		return append(next, current...), true, nil
	})
}

// ReplaceFirst rewrites the first element matching match. Nothing is written
// when no element matches.
func (c *Collection[E]) ReplaceFirst(ctx context.Context, match func(E) bool, fn func(E) E) (E, bool, error) {
	var (
		updated E
		found   bool
	)
	err := c.Update(ctx, func(items []E) ([]E, bool, error) {
		i := slices.IndexFunc(items, match)
		if i < 0 {
			return items, false, nil
		}
		items[i] = fn(items[i])
		updated, found = items[i], true
		return items, true, nil
	})
	if err != nil {
		var zero E
		return zero, false, err
	}
	return updated, found, nil
}

// RemoveWhere drops every element matching match and reports whether any was
// removed. Nothing is written when no element matches.
func (c *Collection[E]) RemoveWhere(ctx context.Context, match func(E) bool) (bool, error) {
	removed := false
	err := c.Update(ctx, func(items []E) ([]E, bool, error) {
		next := slices.DeleteFunc(items, match)
		removed = len(next) != len(items)
		return next, removed, nil
	})
	return removed && err == nil, err
}

// Record is a single value stored under one key.
type Record[T any] struct {
	s *slot[T]
}

// OpenRecord loads the record stored under key, falling back to def.
func OpenRecord[T any](ctx context.Context, backend Backend, key string, def T, logger *log.Logger) (*Record[T], error) {
	s, err := openSlot(ctx, backend, key, def, logger)
	if err != nil {
		return nil, err
	}
	return &Record[T]{s: s}, nil
}

// Get returns the current value.
func (r *Record[T]) Get() T {
	v, _ := r.s.read()
	return v
}

// Version increases by one after every persisted mutation.
func (r *Record[T]) Version() uint64 {
	_, v := r.s.read()
	return v
}

// Update replaces the value with fn's result and returns what was stored.
func (r *Record[T]) Update(ctx context.Context, fn func(T) (T, error)) (T, error) {
	var stored T
	err := r.s.mutate(ctx, func(current T) (T, bool, error) {
		next, err := fn(current)
		if err != nil {
			return current, false, err
		}
		stored = next
		return next, true, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return stored, nil
}
