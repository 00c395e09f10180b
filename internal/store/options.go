package store

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/language"

	"tracker/internal/log"
)

// Slot keys of the three durable collections.
const (
	TransactionsKey = "gpay-tracker-transactions"
	GoalsKey        = "gpay-tracker-goals"
	SettingsKey     = "gpay-tracker-settings"
)

// DefaultLocale drives amount formatting when no locale is configured.
var DefaultLocale = language.MustParse("en-IN")

type options struct {
	now    func() time.Time
	newID  func() string
	logger *log.Logger
	locale language.Tag
}

// Option customizes a store at construction time.
type Option func(*options)

// WithClock overrides the source of creation timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithIDGenerator overrides identifier generation.
func WithIDGenerator(newID func() string) Option {
	return func(o *options) { o.newID = newID }
}

func WithLogger(logger *log.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithLocale sets the locale used by SettingsStore.FormatAmount.
func WithLocale(tag language.Tag) Option {
	return func(o *options) { o.locale = tag }
}

func buildOptions(opts []Option) options {
	o := options{
		now:    time.Now,
		newID:  uuid.NewString,
		logger: log.Discard(),
		locale: DefaultLocale,
	}
	for _, opt := range opts {
		opt(&o)
	}
	o.logger = o.logger.WithComponent(log.ComponentStore)
	return o
}
