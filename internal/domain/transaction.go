package domain

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DateLayout is the wire format for record dates.
const DateLayout = "2006-01-02"

// Category is the fixed spending/income category a record belongs to.
// The oracle is instructed to pick from this closed set; anything it
// returns outside the set collapses to CategoryOther.
type Category string

const (
	CategoryHome      Category = "Home"
	CategoryClothes   Category = "Clothes"
	CategoryTrips     Category = "Trips"
	CategoryLabor     Category = "Labor"
	CategoryEMIs      Category = "EMIs"
	CategorySalary    Category = "Salary"
	CategoryFreelance Category = "Freelance"
	CategoryOther     Category = "Other"
)

// Categories lists every valid category, in prompt order.
var Categories = []Category{
	CategoryHome,
	CategoryClothes,
	CategoryTrips,
	CategoryLabor,
	CategoryEMIs,
	CategorySalary,
	CategoryFreelance,
	CategoryOther,
}

// ParseCategory resolves a free-form category name against the fixed set.
// Unresolvable values default to CategoryOther.
func ParseCategory(s string) Category {
	trimmed := strings.TrimSpace(s)
	for _, c := range Categories {
		if strings.EqualFold(trimmed, string(c)) {
			return c
		}
	}
	return CategoryOther
}

// Kind says which side of the ledger a record lands on.
type Kind string

const (
	KindIncome  Kind = "Income"
	KindExpense Kind = "Expense"
)

// ParseKind resolves a free-form transaction type. Anything that is not
// recognizably income is treated as an expense.
func ParseKind(s string) Kind {
	if strings.EqualFold(strings.TrimSpace(s), string(KindIncome)) {
		return KindIncome
	}
	return KindExpense
}

// Record is one persisted transaction. Records are append-only: once
// written they are never updated or deleted.
type Record struct {
	ID          string    // uuid
	Owner       int64     // chat user id, the sole partition key for reads
	Date        time.Time // calendar date of the transaction
	Category    Category
	Income      float64 // non-zero only for KindIncome records
	Expenditure float64 // non-zero only for KindExpense records
	Remarks     string  // the raw user utterance, verbatim
	CreatedAt   time.Time
}

// NewRecord builds a record from extracted fields, enforcing that exactly
// one of income/expenditure is populated and that the amount is a usable
// positive number. A record that fails these checks is never created.
func NewRecord(owner int64, date time.Time, category Category, kind Kind, amount float64, remarks string) (*Record, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return nil, fmt.Errorf("NewRecord: amount is not a number")
	}
	if amount <= 0 {
		return nil, fmt.Errorf("NewRecord: amount %v is not positive", amount)
	}

	rec := &Record{
		ID:        uuid.NewString(),
		Owner:     owner,
		Date:      date,
		Category:  category,
		Remarks:   remarks,
		CreatedAt: time.Now(),
	}
	switch kind {
	case KindIncome:
		rec.Income = amount
	default:
		rec.Expenditure = amount
	}
	return rec, nil
}

// Kind reports which side of the ledger the record is on.
func (r *Record) Kind() Kind {
	if r.Income != 0 {
		return KindIncome
	}
	return KindExpense
}

// Amount returns the populated amount, whichever side it is on.
func (r *Record) Amount() float64 {
	if r.Income != 0 {
		return r.Income
	}
	return r.Expenditure
}

// Intent is the transient classification of one user utterance. It is
// never persisted.
type Intent string

const (
	IntentAddTransaction Intent = "add_transaction"
	IntentGetBalance     Intent = "get_balance"
	IntentGetStatement   Intent = "get_statement"
	IntentGeneralInquiry Intent = "general_inquiry"
)

// Intents is the closed set of supported intents.
var Intents = []Intent{
	IntentAddTransaction,
	IntentGetBalance,
	IntentGetStatement,
	IntentGeneralInquiry,
}

// ParseIntent maps oracle output onto the closed intent set. Any value
// outside the set collapses to IntentGeneralInquiry, so callers always
// have a valid branch to take.
func ParseIntent(s string) Intent {
	trimmed := strings.Trim(strings.TrimSpace(s), `"`)
	for _, it := range Intents {
		if trimmed == string(it) {
			return it
		}
	}
	return IntentGeneralInquiry
}
