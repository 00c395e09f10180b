package core

import "testing"

func TestRegistryIsTotal(t *testing.T) {
	all := Categories()
	if len(all) != 13 {
		t.Fatalf("expected 13 categories, got %d", len(all))
	}
	seen := map[string]bool{}
	for _, c := range all {
		if seen[c.ID] {
			t.Fatalf("duplicate category %q", c.ID)
		}
		seen[c.ID] = true
		if got := LookupCategory(c.ID); got != c {
			t.Fatalf("lookup %q returned %+v", c.ID, got)
		}
	}
}

func TestLookupFallsBackToOther(t *testing.T) {
	if got := LookupCategory("crypto"); got.ID != OtherCategoryID {
		t.Fatalf("expected fallback to other, got %q", got.ID)
	}
	if IsKnownCategory("crypto") {
		t.Fatalf("crypto should not be known")
	}
}

func TestKindFilters(t *testing.T) {
	ids := func(cs []Category) []string {
		out := make([]string, len(cs))
		for i, c := range cs {
			out[i] = c.ID
		}
		return out
	}

	exp := ids(ExpenseCategories())
	wantExp := []string{"food", "shopping", "transport", "bills", "entertainment", "health", "education", "travel", "gift", "other"}
	if len(exp) != len(wantExp) {
		t.Fatalf("expense categories: %v", exp)
	}
	for i := range wantExp {
		if exp[i] != wantExp[i] {
			t.Fatalf("expense order mismatch at %d: %v", i, exp)
		}
	}

	inc := ids(IncomeCategories())
	wantInc := []string{"salary", "freelance", "investment", "gift", "other"}
	if len(inc) != len(wantInc) {
		t.Fatalf("income categories: %v", inc)
	}
	for i := range wantInc {
		if inc[i] != wantInc[i] {
			t.Fatalf("income order mismatch at %d: %v", i, inc)
		}
	}
}

func TestCategoryAccepts(t *testing.T) {
	if LookupCategory("salary").Accepts(Expense) {
		t.Fatalf("salary must not accept expenses")
	}
	if !LookupCategory("gift").Accepts(Expense) || !LookupCategory("gift").Accepts(Income) {
		t.Fatalf("gift accepts both")
	}
}
