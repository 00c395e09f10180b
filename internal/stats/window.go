package stats

import (
	"fmt"
	"time"

	"tracker/internal/core"
)

// Window is a calendar interval with inclusive bounds.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls within w, bounds included.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// WeekWindow returns the Monday-to-Sunday week containing now, shifted by
// offset weeks (-1 is the previous week), in now's location.
func WeekWindow(now time.Time, offset int) Window {
	sinceMonday := (int(now.Weekday()) + 6) % 7
	start := time.Date(now.Year(), now.Month(), now.Day()-sinceMonday+7*offset, 0, 0, 0, 0, now.Location())
	end := time.Date(start.Year(), start.Month(), start.Day()+7, 0, 0, 0, 0, now.Location())
	return Window{Start: start, End: end.Add(-time.Nanosecond)}
}

// MonthWindow returns the calendar month containing now, shifted by offset
// months, in now's location.
func MonthWindow(now time.Time, offset int) Window {
	start := time.Date(now.Year(), now.Month()+time.Month(offset), 1, 0, 0, 0, 0, now.Location())
	end := time.Date(start.Year(), start.Month()+1, 1, 0, 0, 0, 0, now.Location())
	return Window{Start: start, End: end.Add(-time.Nanosecond)}
}

// WindowStrategy resolves the window of a goal period relative to now.
type WindowStrategy interface {
	Window(now time.Time, offset int) Window
}

type weekly struct{}

func (weekly) Window(now time.Time, offset int) Window { return WeekWindow(now, offset) }

type monthly struct{}

func (monthly) Window(now time.Time, offset int) Window { return MonthWindow(now, offset) }

var windowStrategies = map[core.Period]WindowStrategy{
	core.Weekly:  weekly{},
	core.Monthly: monthly{},
}

// StrategyFor returns the window strategy registered for period.
func StrategyFor(period core.Period) (WindowStrategy, error) {
	s, ok := windowStrategies[period]
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrInvalidPeriod, period)
	}
	return s, nil
}

// WindowFor returns the current window of period.
func WindowFor(period core.Period, now time.Time) (Window, error) {
	s, err := StrategyFor(period)
	if err != nil {
		return Window{}, err
	}
	return s.Window(now, 0), nil
}
