package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/dvloznov/budgetbuddy/internal/domain"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func insert(t *testing.T, s *Store, owner int64, date string, cat domain.Category, kind domain.Kind, amount float64) {
	t.Helper()
	d, err := time.Parse(domain.DateLayout, date)
	if err != nil {
		t.Fatal(err)
	}
	rec, err := domain.NewRecord(owner, d, cat, kind, amount, "test remark")
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Insert(context.Background(), rec); err != nil {
		t.Fatalf("insert: %v", err)
	}
}

func TestInsertAndList(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	insert(t, s, 1, "2024-01-26", domain.CategoryHome, domain.KindExpense, 2000)
	insert(t, s, 1, "2024-01-25", domain.CategorySalary, domain.KindIncome, 25000)
	insert(t, s, 2, "2024-01-25", domain.CategoryTrips, domain.KindExpense, 300)

	recs, err := s.List(ctx, 1, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d records, want 2", len(recs))
	}
	if recs[0].Date.After(recs[1].Date) {
		t.Error("records not ordered by date")
	}
	if recs[0].Category != domain.CategorySalary || recs[0].Income != 25000 {
		t.Errorf("first record = %+v", recs[0])
	}
	if recs[0].Remarks != "test remark" {
		t.Errorf("remarks round trip = %q", recs[0].Remarks)
	}
}

func TestTotalsWithDatePrefix(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	insert(t, s, 7, "2024-01-25", domain.CategoryHome, domain.KindExpense, 5000)
	insert(t, s, 7, "2024-01-25", domain.CategoryClothes, domain.KindExpense, 2000)
	insert(t, s, 7, "2024-01-26", domain.CategoryHome, domain.KindExpense, 2000)
	insert(t, s, 7, "2024-02-01", domain.CategorySalary, domain.KindIncome, 30000)

	day, err := s.Totals(ctx, 7, "2024-01-25")
	if err != nil {
		t.Fatal(err)
	}
	if day.Expenditure != 7000 {
		t.Errorf("day expenditure = %v, want 7000", day.Expenditure)
	}

	month, err := s.Totals(ctx, 7, "2024-01")
	if err != nil {
		t.Fatal(err)
	}
	if month.Expenditure != 9000 || month.Income != 0 {
		t.Errorf("month totals = %+v", month)
	}

	all, err := s.Totals(ctx, 7, "")
	if err != nil {
		t.Fatal(err)
	}
	if all.Balance() != 30000-9000 {
		t.Errorf("balance = %v", all.Balance())
	}
}

func TestTotalsEmptyIsZero(t *testing.T) {
	s := openTestStore(t)

	totals, err := s.Totals(context.Background(), 99, "")
	if err != nil {
		t.Fatal(err)
	}
	if totals.Income != 0 || totals.Expenditure != 0 {
		t.Errorf("totals = %+v, want zeros", totals)
	}
}
