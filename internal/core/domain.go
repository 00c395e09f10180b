package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

const (
	Weekly  Period = "weekly"
	Monthly Period = "monthly"
)

type (
	TransactionType string

	// Period is the span a budget goal applies to.
	Period string

	// Transaction is one recorded income or expense event. Amount is never
	// negative; the direction is carried by Type.
	Transaction struct {
		ID          string          `json:"id"`
		Type        TransactionType `json:"type"`
		Amount      Money           `json:"amount"`
		Category    string          `json:"category"`
		Description string          `json:"description"`
		Date        time.Time       `json:"date"`
		CreatedAt   time.Time       `json:"createdAt"`
	}

	// Draft is a transaction payload without the system-assigned ID and
	// CreatedAt fields.
	Draft struct {
		Type        TransactionType `json:"type"`
		Amount      Money           `json:"amount"`
		Category    string          `json:"category"`
		Description string          `json:"description"`
		Date        time.Time       `json:"date"`
	}

	// TransactionPatch carries the fields of a partial update. Nil fields are
	// left untouched.
	TransactionPatch struct {
		Type        *TransactionType
		Amount      *Money
		Category    *string
		Description *string
		Date        *time.Time
	}

	BudgetGoal struct {
		ID       string `json:"id"`
		Category string `json:"category"`
		Limit    Money  `json:"limit"`
		Period   Period `json:"period"`
	}

	GoalDraft struct {
		Category string `json:"category"`
		Limit    Money  `json:"limit"`
		Period   Period `json:"period"`
	}

	GoalPatch struct {
		Category *string
		Limit    *Money
		Period   *Period
	}

	Settings struct {
		Name     string `json:"name"`
		Currency string `json:"currency"`
	}

	SettingsPatch struct {
		Name     *string
		Currency *string
	}
)

const (
	DefaultUserName = "User"
	DefaultCurrency = "₹"
)

var (
	ErrInvalidAmount  = errors.New("invalid amount")
	ErrNegativeAmount = errors.New("amount must not be negative")
	ErrInvalidType    = errors.New("invalid transaction type")
	ErrInvalidPeriod  = errors.New("invalid goal period")
	ErrInvalidDate    = errors.New("invalid date")
	ErrEmptyCategory  = errors.New("empty category")
	ErrDuplicateGoal  = errors.New("a goal for this category and period already exists")
)

// Valid reports whether t is one of the known transaction types.
func (t TransactionType) Valid() bool {
	return t == Income || t == Expense
}

// ParseTransactionType accepts "income"/"expense" in any case.
func ParseTransactionType(s string) (TransactionType, error) {
	t := TransactionType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", ErrInvalidType
	}
	return t, nil
}

func (p Period) Valid() bool {
	return p == Weekly || p == Monthly
}

// ParsePeriod accepts "weekly"/"monthly" in any case.
func ParsePeriod(s string) (Period, error) {
	p := Period(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", ErrInvalidPeriod
	}
	return p, nil
}

// Validate checks the fields the stores rely on. Category compatibility with
// the type is intentionally not enforced here.
func (d Draft) Validate() error {
	if !d.Type.Valid() {
		return ErrInvalidType
	}
	if d.Amount.Cents < 0 {
		return ErrNegativeAmount
	}
	if strings.TrimSpace(d.Category) == "" {
		return ErrEmptyCategory
	}
	if d.Date.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// Normalize folds the sign of the amount into the type: a negative amount is
// an expense of the absolute value. Non-negative drafts are returned as is.
// It is the single place where signed input becomes a stored record.
func (d Draft) Normalize() Draft {
	if d.Amount.Cents < 0 {
		d.Type = Expense
		d.Amount = d.Amount.Abs()
	}
	return d
}

// Validate rejects patches that would break the stored invariants.
func (p TransactionPatch) Validate() error {
	if p.Type != nil && !p.Type.Valid() {
		return ErrInvalidType
	}
	if p.Amount != nil && p.Amount.Cents < 0 {
		return ErrNegativeAmount
	}
	if p.Category != nil && strings.TrimSpace(*p.Category) == "" {
		return ErrEmptyCategory
	}
	if p.Date != nil && p.Date.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// Apply merges the patch into t. ID and CreatedAt are never touched.
func (p TransactionPatch) Apply(t Transaction) Transaction {
	if p.Type != nil {
		t.Type = *p.Type
	}
	if p.Amount != nil {
		t.Amount = *p.Amount
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Date != nil {
		t.Date = *p.Date
	}
	return t
}

func (g GoalDraft) Validate() error {
	if strings.TrimSpace(g.Category) == "" {
		return ErrEmptyCategory
	}
	if g.Limit.Cents <= 0 {
		return ErrInvalidAmount
	}
	if !g.Period.Valid() {
		return ErrInvalidPeriod
	}
	return nil
}

func (p GoalPatch) Validate() error {
	if p.Category != nil && strings.TrimSpace(*p.Category) == "" {
		return ErrEmptyCategory
	}
	if p.Limit != nil && p.Limit.Cents <= 0 {
		return ErrInvalidAmount
	}
	if p.Period != nil && !p.Period.Valid() {
		return ErrInvalidPeriod
	}
	return nil
}

func (p GoalPatch) Apply(g BudgetGoal) BudgetGoal {
	if p.Category != nil {
		g.Category = *p.Category
	}
	if p.Limit != nil {
		g.Limit = *p.Limit
	}
	if p.Period != nil {
		g.Period = *p.Period
	}
	return g
}

// DefaultSettings returns the record used before the user changes anything.
func DefaultSettings() Settings {
	return Settings{Name: DefaultUserName, Currency: DefaultCurrency}
}

func (p SettingsPatch) Apply(s Settings) Settings {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.Currency != nil {
		s.Currency = *p.Currency
	}
	return s
}
