package stats

import (
	"cmp"
	"slices"
	"time"

	"tracker/internal/core"
)

// MonthTotal is one bar of the monthly spending trend.
type MonthTotal struct {
	Month   time.Time  `json:"month"`
	Label   string     `json:"label"`
	Expense core.Money `json:"expense"`
	Current bool       `json:"current"`
}

// MonthlyTrend returns the expense total of each of the last months calendar
// months, oldest first. The last entry is the month containing now.
func MonthlyTrend(txns []core.Transaction, now time.Time, months int) []MonthTotal {
	if months <= 0 {
		return nil
	}
	out := make([]MonthTotal, 0, months)
	for offset := -(months - 1); offset <= 0; offset++ {
		w := MonthWindow(now, offset)
		out = append(out, MonthTotal{
			Month:   w.Start,
			Label:   w.Start.Format("Jan"),
			Expense: sumExpenses(txns, w, ""),
			Current: offset == 0,
		})
	}
	return out
}

// CategoryShare is one row of the ranked category breakdown.
type CategoryShare struct {
	Category core.Category `json:"category"`
	Amount   core.Money    `json:"amount"`
	Percent  float64       `json:"percent"`
}

// RankedBreakdown orders a category breakdown by amount, largest first, ties
// broken by category id. Percent is the share of the breakdown total.
func RankedBreakdown(breakdown map[string]core.Money) []CategoryShare {
	var total core.Money
	for _, m := range breakdown {
		total = total.Add(m)
	}

	out := make([]CategoryShare, 0, len(breakdown))
	for id, m := range breakdown {
		cat := core.LookupCategory(id)
		// Keep the stored id even when it is not in the registry
		cat.ID = id
		out = append(out, CategoryShare{
			Category: cat,
			Amount:   m,
			Percent:  Percent(m, total),
		})
	}
	slices.SortFunc(out, func(a, b CategoryShare) int {
		if c := cmp.Compare(b.Amount.Cents, a.Amount.Cents); c != 0 {
			return c
		}
		return cmp.Compare(a.Category.ID, b.Category.ID)
	})
	return out
}

// GoalStatus is the progress of one budget goal in its current period.
type GoalStatus struct {
	Goal      core.BudgetGoal `json:"goal"`
	Window    Window          `json:"window"`
	Spent     core.Money      `json:"spent"`
	Remaining core.Money      `json:"remaining"`
	Percent   float64         `json:"percent"`
	Over      bool            `json:"over"`
}

// GoalProgress measures each goal against the expenses of its category in
// the goal's current week or month. Percent is capped at 100 and Remaining
// is never negative. Goals with an unknown period are skipped.
func GoalProgress(goals []core.BudgetGoal, txns []core.Transaction, now time.Time) []GoalStatus {
	out := make([]GoalStatus, 0, len(goals))
	for _, g := range goals {
		w, err := WindowFor(g.Period, now)
		if err != nil {
			continue
		}
		spent := sumExpenses(txns, w, g.Category)
		remaining := g.Limit.Sub(spent)
		if remaining.Cents < 0 {
			remaining = core.Money{}
		}
		out = append(out, GoalStatus{
			Goal:      g,
			Window:    w,
			Spent:     spent,
			Remaining: remaining,
			Percent:   min(Percent(spent, g.Limit), 100),
			Over:      spent.Cents > g.Limit.Cents,
		})
	}
	return out
}

// sumExpenses totals expenses within w, restricted to category unless it is empty.
func sumExpenses(txns []core.Transaction, w Window, category string) core.Money {
	var total core.Money
	for _, t := range txns {
		if t.Type != core.Expense || !w.Contains(t.Date) {
			continue
		}
		if category != "" && t.Category != category {
			continue
		}
		total = total.Add(t.Amount)
	}
	return total
}
