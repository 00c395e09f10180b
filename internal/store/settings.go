package store

import (
	"context"
	"fmt"

	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"tracker/internal/core"
)

// SettingsStore owns the single user settings record.
type SettingsStore struct {
	record *Record[core.Settings]
	opts   options
}

// OpenSettings loads the settings record, falling back to core.DefaultSettings.
func OpenSettings(ctx context.Context, backend Backend, opts ...Option) (*SettingsStore, error) {
	o := buildOptions(opts)
	record, err := OpenRecord(ctx, backend, SettingsKey, core.DefaultSettings(), o.logger)
	if err != nil {
		return nil, fmt.Errorf("open settings: %w", err)
	}
	return &SettingsStore{
		record: record,
		opts:   o,
	}, nil
}

func (s *SettingsStore) Get() core.Settings {
	return s.record.Get()
}

// Update merges patch into the stored settings and returns the result.
func (s *SettingsStore) Update(ctx context.Context, patch core.SettingsPatch) (core.Settings, error) {
	updated, err := s.record.Update(ctx, func(current core.Settings) (core.Settings, error) {
		return patch.Apply(current), nil
	})
	if err != nil {
		return core.Settings{}, fmt.Errorf("update settings: %w", err)
	}
	s.opts.logger.InfoContext(ctx, "Settings updated", "name", updated.Name, "currency", updated.Currency)
	return updated, nil
}

// FormatAmount renders m with the configured currency symbol and locale
// grouping, using at most two fraction digits.
func (s *SettingsStore) FormatAmount(m core.Money) string {
	return s.Get().Currency + message.NewPrinter(s.opts.locale).Sprint(number.Decimal(m.Amount(), number.MaxFractionDigits(2)))
}
