package domain

import (
	"math"
	"testing"
	"time"
)

func TestNewRecordPopulatesExactlyOneSide(t *testing.T) {
	date := time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC)

	income, err := NewRecord(42, date, CategorySalary, KindIncome, 1000, "Received 1000 from salary")
	if err != nil {
		t.Fatalf("NewRecord income: %v", err)
	}
	if income.Income != 1000 || income.Expenditure != 0 {
		t.Errorf("income record has income=%v expenditure=%v, want 1000/0", income.Income, income.Expenditure)
	}
	if income.Kind() != KindIncome || income.Amount() != 1000 {
		t.Errorf("income record Kind=%v Amount=%v", income.Kind(), income.Amount())
	}

	expense, err := NewRecord(42, date, CategoryClothes, KindExpense, 200, "Spent 200 on clothes")
	if err != nil {
		t.Fatalf("NewRecord expense: %v", err)
	}
	if expense.Expenditure != 200 || expense.Income != 0 {
		t.Errorf("expense record has income=%v expenditure=%v, want 0/200", expense.Income, expense.Expenditure)
	}
	if expense.ID == income.ID {
		t.Error("records share an ID")
	}
}

func TestNewRecordRejectsUnusableAmounts(t *testing.T) {
	date := time.Now()
	for _, amount := range []float64{0, -5, math.NaN(), math.Inf(1)} {
		if _, err := NewRecord(1, date, CategoryOther, KindExpense, amount, "x"); err == nil {
			t.Errorf("NewRecord accepted amount %v", amount)
		}
	}
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in   string
		want Category
	}{
		{"Home", CategoryHome},
		{" salary ", CategorySalary},
		{"FREELANCE", CategoryFreelance},
		{"Groceries", CategoryOther},
		{"", CategoryOther},
	}
	for _, tt := range tests {
		if got := ParseCategory(tt.in); got != tt.want {
			t.Errorf("ParseCategory(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseIntentFallsBackToGeneralInquiry(t *testing.T) {
	for _, it := range Intents {
		if got := ParseIntent(string(it)); got != it {
			t.Errorf("ParseIntent(%q) = %v", it, got)
		}
	}
	// Quoted output from the model still resolves.
	if got := ParseIntent("\"get_balance\"\n"); got != IntentGetBalance {
		t.Errorf("ParseIntent quoted = %v", got)
	}
	for _, s := range []string{"", "buy_stocks", "Add Transaction", "get balance", "I think the intent is add_transaction"} {
		if got := ParseIntent(s); got != IntentGeneralInquiry {
			t.Errorf("ParseIntent(%q) = %v, want general_inquiry", s, got)
		}
	}
}

func TestParseKind(t *testing.T) {
	if ParseKind("income") != KindIncome {
		t.Error("income not recognized")
	}
	for _, s := range []string{"Expense", "", "refund"} {
		if ParseKind(s) != KindExpense {
			t.Errorf("ParseKind(%q) != expense", s)
		}
	}
}
