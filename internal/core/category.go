package core

const (
	KindIncome  CategoryKind = "income"
	KindExpense CategoryKind = "expense"
	KindBoth    CategoryKind = "both"
)

// OtherCategoryID is the fallback returned for unknown identifiers.
const OtherCategoryID = "other"

type (
	// CategoryKind tells which transaction types a category applies to.
	CategoryKind string

	Category struct {
		ID    string
		Name  string
		Icon  string
		Color string
		Kind  CategoryKind
	}
)

// registry is fixed at build time and never mutated; "other" must stay last.
var registry = []Category{
	{ID: "food", Name: "Food & Drink", Icon: "🍔", Color: "hsl(16, 85%, 60%)", Kind: KindExpense},
	{ID: "shopping", Name: "Shopping", Icon: "🛍️", Color: "hsl(270, 50%, 55%)", Kind: KindExpense},
	{ID: "transport", Name: "Transport", Icon: "🚗", Color: "hsl(200, 70%, 50%)", Kind: KindExpense},
	{ID: "bills", Name: "Bills", Icon: "📄", Color: "hsl(45, 80%, 50%)", Kind: KindExpense},
	{ID: "entertainment", Name: "Entertainment", Icon: "🎬", Color: "hsl(320, 70%, 55%)", Kind: KindExpense},
	{ID: "health", Name: "Health", Icon: "💊", Color: "hsl(0, 70%, 55%)", Kind: KindExpense},
	{ID: "education", Name: "Education", Icon: "📚", Color: "hsl(180, 60%, 45%)", Kind: KindExpense},
	{ID: "travel", Name: "Travel", Icon: "✈️", Color: "hsl(220, 70%, 55%)", Kind: KindExpense},
	{ID: "salary", Name: "Salary", Icon: "💰", Color: "hsl(142, 70%, 45%)", Kind: KindIncome},
	{ID: "freelance", Name: "Freelance", Icon: "💼", Color: "hsl(160, 60%, 45%)", Kind: KindIncome},
	{ID: "investment", Name: "Investment", Icon: "📈", Color: "hsl(100, 60%, 45%)", Kind: KindIncome},
	{ID: "gift", Name: "Gift", Icon: "🎁", Color: "hsl(340, 70%, 55%)", Kind: KindBoth},
	{ID: OtherCategoryID, Name: "Other", Icon: "📌", Color: "hsl(0, 0%, 50%)", Kind: KindBoth},
}

var registryIndex = func() map[string]int {
	idx := make(map[string]int, len(registry))
	for i, c := range registry {
		idx[c.ID] = i
	}
	return idx
}()

// Categories returns a copy of the full registry in display order.
func Categories() []Category {
	return append([]Category(nil), registry...)
}

// LookupCategory returns the category with the given id, or "other" when the
// id is unknown.
func LookupCategory(id string) Category {
	if i, ok := registryIndex[id]; ok {
		return registry[i]
	}
	return registry[registryIndex[OtherCategoryID]]
}

// IsKnownCategory reports whether id is part of the registry.
func IsKnownCategory(id string) bool {
	_, ok := registryIndex[id]
	return ok
}

// ExpenseCategories returns the categories usable for expenses.
func ExpenseCategories() []Category {
	return filterCategories(KindExpense)
}

// IncomeCategories returns the categories usable for income.
func IncomeCategories() []Category {
	return filterCategories(KindIncome)
}

// Accepts reports whether a transaction of type t may use this category.
func (c Category) Accepts(t TransactionType) bool {
	switch c.Kind {
	case KindBoth:
		return true
	case KindIncome:
		return t == Income
	case KindExpense:
		return t == Expense
	default:
		return false
	}
}

func filterCategories(kind CategoryKind) []Category {
	out := make([]Category, 0, len(registry))
	for _, c := range registry {
		if c.Kind == kind || c.Kind == KindBoth {
			out = append(out, c)
		}
	}
	return out
}
