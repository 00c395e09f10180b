// Package stats derives dashboard aggregates from a transaction collection.
// Every function is pure and safe for concurrent use.
package stats

import (
	"time"

	"tracker/internal/core"
)

// Summary is the set of aggregates shown on the dashboard.
type Summary struct {
	TotalIncome       core.Money            `json:"totalIncome"`
	TotalExpense      core.Money            `json:"totalExpense"`
	Balance           core.Money            `json:"balance"`
	WeeklyExpense     core.Money            `json:"weeklyExpense"`
	LastWeekExpense   core.Money            `json:"lastWeekExpense"`
	MonthlyExpense    core.Money            `json:"monthlyExpense"`
	LastMonthExpense  core.Money            `json:"lastMonthExpense"`
	MonthlyIncome     core.Money            `json:"monthlyIncome"`
	WeeklyChange      float64               `json:"weeklyChange"`
	MonthlyChange     float64               `json:"monthlyChange"`
	CategoryBreakdown map[string]core.Money `json:"categoryBreakdown"`
}

// Compute derives the Summary of txns relative to now. Windows are calendar
// weeks starting Monday and calendar months, both in now's location.
func Compute(txns []core.Transaction, now time.Time) Summary {
	week := WeekWindow(now, 0)
	lastWeek := WeekWindow(now, -1)
	month := MonthWindow(now, 0)
	lastMonth := MonthWindow(now, -1)

	s := Summary{CategoryBreakdown: make(map[string]core.Money)}
	for _, t := range txns {
		switch t.Type {
		case core.Income:
			s.TotalIncome = s.TotalIncome.Add(t.Amount)
			if month.Contains(t.Date) {
				s.MonthlyIncome = s.MonthlyIncome.Add(t.Amount)
			}
		case core.Expense:
			s.TotalExpense = s.TotalExpense.Add(t.Amount)
			if week.Contains(t.Date) {
				s.WeeklyExpense = s.WeeklyExpense.Add(t.Amount)
			}
			if lastWeek.Contains(t.Date) {
				s.LastWeekExpense = s.LastWeekExpense.Add(t.Amount)
			}
			if month.Contains(t.Date) {
				s.MonthlyExpense = s.MonthlyExpense.Add(t.Amount)
			}
			if lastMonth.Contains(t.Date) {
				s.LastMonthExpense = s.LastMonthExpense.Add(t.Amount)
			}
			s.CategoryBreakdown[t.Category] = s.CategoryBreakdown[t.Category].Add(t.Amount)
		}
	}

	// Zero-amount expenses must not create breakdown entries
	for id, m := range s.CategoryBreakdown {
		if m.IsZero() {
			delete(s.CategoryBreakdown, id)
		}
	}

	s.Balance = s.TotalIncome.Sub(s.TotalExpense)
	s.WeeklyChange = PercentChange(s.WeeklyExpense, s.LastWeekExpense)
	s.MonthlyChange = PercentChange(s.MonthlyExpense, s.LastMonthExpense)
	return s
}

// PercentChange returns the change from previous to current in percent, or
// 0 when previous is not positive.
func PercentChange(current, previous core.Money) float64 {
	if previous.Cents <= 0 {
		return 0
	}
	return float64(current.Cents-previous.Cents) / float64(previous.Cents) * 100
}

// Percent returns part as a percentage of whole, or 0 for a non-positive whole.
func Percent(part, whole core.Money) float64 {
	if whole.Cents <= 0 {
		return 0
	}
	return float64(part.Cents) / float64(whole.Cents) * 100
}
