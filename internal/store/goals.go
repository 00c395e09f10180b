package store

import (
	"context"
	"fmt"
	"slices"

	"tracker/internal/core"
	"tracker/internal/log"
)

// GoalStore owns the budget goal collection. At most one goal exists per
// category and period.
type GoalStore struct {
	items *Collection[core.BudgetGoal]
	opts  options
}

// OpenGoals loads the goal collection from backend.
func OpenGoals(ctx context.Context, backend Backend, opts ...Option) (*GoalStore, error) {
	o := buildOptions(opts)
	items, err := OpenCollection[core.BudgetGoal](ctx, backend, GoalsKey, o.logger)
	if err != nil {
		return nil, fmt.Errorf("open goals: %w", err)
	}
	return &GoalStore{items: items, opts: o}, nil
}

func (s *GoalStore) All() []core.BudgetGoal {
	return s.items.All()
}

func (s *GoalStore) Version() uint64 {
	return s.items.Version()
}

// FindByCategoryAndPeriod returns the goal for the given pair, if any.
func (s *GoalStore) FindByCategoryAndPeriod(category string, period core.Period) (core.BudgetGoal, bool) {
	return s.items.Find(byCategoryAndPeriod(category, period))
}

// Add upserts a goal: an existing goal with the same category and period
// gets the new limit, otherwise a new goal is appended. The stored record is
// returned in both cases.
func (s *GoalStore) Add(ctx context.Context, d core.GoalDraft) (core.BudgetGoal, error) {
	if err := d.Validate(); err != nil {
		return core.BudgetGoal{}, fmt.Errorf("add goal: %w", err)
	}

	var (
		stored core.BudgetGoal
		op     string
	)
	err := s.items.Update(ctx, func(items []core.BudgetGoal) ([]core.BudgetGoal, bool, error) {
		if i := slices.IndexFunc(items, byCategoryAndPeriod(d.Category, d.Period)); i >= 0 {
			items[i], op = s.updateLimit(items[i], d.Limit), log.OpUpdate
			stored = items[i]
			return items, true, nil
		}
		stored, op = s.create(d), log.OpCreate
		return append(items, stored), true, nil
	})
	if err != nil {
		return core.BudgetGoal{}, fmt.Errorf("add goal: %w", err)
	}

	fields := log.NewFields().
		WithGoal(stored.ID, stored.Category, string(stored.Period), stored.Limit.Cents).
		WithOperation(op)
	s.opts.logger.InfoContext(ctx, "Budget goal saved", fields.ToSlice()...)
	return stored, nil
}

func (s *GoalStore) create(d core.GoalDraft) core.BudgetGoal {
	return core.BudgetGoal{
		ID:       s.opts.newID(),
		Category: d.Category,
		Limit:    d.Limit,
		Period:   d.Period,
	}
}

func (s *GoalStore) updateLimit(g core.BudgetGoal, limit core.Money) core.BudgetGoal {
	g.Limit = limit
	return g
}

// Update merges patch into the goal with the given id; unknown ids are ignored.
// Moving a goal onto the category and period of another goal fails with
// core.ErrDuplicateGoal.
func (s *GoalStore) Update(ctx context.Context, id string, patch core.GoalPatch) error {
	if err := patch.Validate(); err != nil {
		return fmt.Errorf("update goal %s: %w", id, err)
	}
	err := s.items.Update(ctx, func(items []core.BudgetGoal) ([]core.BudgetGoal, bool, error) {
		i := slices.IndexFunc(items, byGoalID(id))
		if i < 0 {
			return items, false, nil
		}
		updated := patch.Apply(items[i])
		if j := slices.IndexFunc(items, byCategoryAndPeriod(updated.Category, updated.Period)); j >= 0 && j != i {
			return items, false, core.ErrDuplicateGoal
		}
		items[i] = updated
		return items, true, nil
	})
	if err != nil {
		return fmt.Errorf("update goal %s: %w", id, err)
	}
	return nil
}

// Delete removes the goal with the given id; unknown ids are ignored.
func (s *GoalStore) Delete(ctx context.Context, id string) error {
	removed, err := s.items.RemoveWhere(ctx, byGoalID(id))
	if err != nil {
		return fmt.Errorf("delete goal %s: %w", id, err)
	}
	if removed {
		s.opts.logger.InfoContext(ctx, "Budget goal deleted",
			log.FieldOperation, log.OpDelete,
			log.FieldGoalID, id)
	}
	return nil
}

func byGoalID(id string) func(core.BudgetGoal) bool {
	return func(g core.BudgetGoal) bool { return g.ID == id }
}

func byCategoryAndPeriod(category string, period core.Period) func(core.BudgetGoal) bool {
	return func(g core.BudgetGoal) bool { return g.Category == category && g.Period == period }
}
