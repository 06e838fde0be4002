package memory

import (
	"context"
	"testing"
	"time"

	"github.com/dvloznov/budgetbuddy/internal/domain"
)

func mustRecord(t *testing.T, owner int64, date string, cat domain.Category, kind domain.Kind, amount float64) *domain.Record {
	t.Helper()
	d, err := time.Parse(domain.DateLayout, date)
	if err != nil {
		t.Fatal(err)
	}
	rec, err := domain.NewRecord(owner, d, cat, kind, amount, "test")
	if err != nil {
		t.Fatal(err)
	}
	return rec
}

func TestTotalsEmptyHistoryIsZero(t *testing.T) {
	s := New()
	totals, err := s.Totals(context.Background(), 1, "")
	if err != nil {
		t.Fatal(err)
	}
	if totals.Balance() != 0 {
		t.Errorf("empty history balance = %v, want 0", totals.Balance())
	}
}

func TestTotalsBalanceIdentity(t *testing.T) {
	ctx := context.Background()
	s := New()

	for _, rec := range []*domain.Record{
		mustRecord(t, 1, "2024-01-25", domain.CategorySalary, domain.KindIncome, 25000),
		mustRecord(t, 1, "2024-01-25", domain.CategoryHome, domain.KindExpense, 10000),
		mustRecord(t, 2, "2024-01-25", domain.CategoryHome, domain.KindExpense, 999),
	} {
		if err := s.Insert(ctx, rec); err != nil {
			t.Fatal(err)
		}
	}

	totals, err := s.Totals(ctx, 1, "")
	if err != nil {
		t.Fatal(err)
	}
	if totals.Income != 25000 || totals.Expenditure != 10000 {
		t.Errorf("totals = %+v", totals)
	}
	if totals.Balance() != 15000 {
		t.Errorf("balance = %v, want 15000", totals.Balance())
	}
}

func TestTotalsDateFilter(t *testing.T) {
	ctx := context.Background()
	s := New()

	for _, rec := range []*domain.Record{
		mustRecord(t, 7, "2024-01-25", domain.CategoryHome, domain.KindExpense, 5000),
		mustRecord(t, 7, "2024-01-25", domain.CategoryTrips, domain.KindExpense, 2000),
		mustRecord(t, 7, "2024-01-26", domain.CategoryHome, domain.KindExpense, 2000),
	} {
		if err := s.Insert(ctx, rec); err != nil {
			t.Fatal(err)
		}
	}

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
	if month.Expenditure != 9000 {
		t.Errorf("month expenditure = %v, want 9000", month.Expenditure)
	}
}

func TestListOrdersByDateAndScopesByOwner(t *testing.T) {
	ctx := context.Background()
	s := New()

	for _, rec := range []*domain.Record{
		mustRecord(t, 7, "2024-03-10", domain.CategoryHome, domain.KindExpense, 30),
		mustRecord(t, 7, "2024-03-01", domain.CategorySalary, domain.KindIncome, 1000),
		mustRecord(t, 8, "2024-03-05", domain.CategoryHome, domain.KindExpense, 50),
	} {
		if err := s.Insert(ctx, rec); err != nil {
			t.Fatal(err)
		}
	}

	recs, err := s.List(ctx, 7, "2024-03")
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d records, want 2", len(recs))
	}
	if !recs[0].Date.Before(recs[1].Date) {
		t.Error("records not ordered by date")
	}
	for _, rec := range recs {
		if rec.Owner != 7 {
			t.Errorf("record for owner %d leaked into owner 7's list", rec.Owner)
		}
	}
}
