package log

import "context"

// StructuredLogger provides domain logging helpers on top of Logger
type StructuredLogger struct {
	logger *Logger
}

// NewStructuredLogger creates a new structured logger
func NewStructuredLogger(logger *Logger) *StructuredLogger {
	return &StructuredLogger{logger: logger}
}

// LogTransactionCreated logs a newly stored transaction
func (sl *StructuredLogger) LogTransactionCreated(ctx context.Context, id, kind string, amountCents int64, category string) {
	fields := NewFields().
		WithTransaction(id, kind, amountCents, category).
		WithOperation(OpCreate).
		WithComponent(ComponentStore)

	sl.logger.Logger.InfoContext(ctx, "Transaction created", fields.ToSlice()...)
}

// LogSlotRecovered logs a slot whose value could not be decoded and was reset to its default
func (sl *StructuredLogger) LogSlotRecovered(ctx context.Context, key string, err error) {
	fields := NewFields().
		WithSlot(key).
		WithError(err).
		WithOperation(OpLoad).
		WithComponent(ComponentStore)

	sl.logger.Logger.WarnContext(ctx, "Slot corrupt, using default value", fields.ToSlice()...)
}

// LogError logs an error with structured context
func (sl *StructuredLogger) LogError(ctx context.Context, msg string, err error, component string, operation string, fields LogFields) {
	if fields == nil {
		fields = NewFields()
	}
	allFields := fields.
		WithError(err).
		WithOperation(operation).
		WithComponent(component)

	sl.logger.Logger.ErrorContext(ctx, msg, allFields.ToSlice()...)
}
