package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dvloznov/budgetbuddy/internal/domain"
	"github.com/dvloznov/budgetbuddy/internal/oracle"
)

// ErrMalformedOutput signals that the oracle's text could not be decoded
// into the expected shape. It is distinct from a decodable draft that is
// merely missing fields.
var ErrMalformedOutput = errors.New("malformed oracle output")

// Draft is a structurally valid but possibly incomplete transaction
// extracted from one utterance. A draft with no amount is not a
// transaction and must never be persisted.
type Draft struct {
	Amount   *float64
	Category domain.Category // defaults to Other when unresolvable
	Kind     domain.Kind     // defaults to Expense
	Date     *time.Time      // nil when the oracle could not determine one
}

// ExtractTransaction asks the oracle for the four-key JSON shape and
// decodes it defensively. JSON that cannot be decoded wraps
// ErrMalformedOutput; absent fields produce an incomplete draft instead.
func ExtractTransaction(ctx context.Context, c oracle.Completer, text string) (*Draft, error) {
	raw, err := c.Complete(ctx, buildExtractionPrompt(text))
	if err != nil {
		return nil, fmt.Errorf("ExtractTransaction: %w", err)
	}

	clean := oracle.Clean(raw)

	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(clean), &obj); err != nil {
		return nil, fmt.Errorf("ExtractTransaction: decode %q: %w", clean, ErrMalformedOutput)
	}

	draft := &Draft{
		Category: domain.CategoryOther,
		Kind:     domain.KindExpense,
	}

	amount, err := getOptionalNumberField(obj, "amount")
	if err != nil {
		return nil, fmt.Errorf("ExtractTransaction: %w", err)
	}
	draft.Amount = amount

	account, err := getOptionalStringField(obj, "account")
	if err != nil {
		return nil, fmt.Errorf("ExtractTransaction: %w", err)
	}
	if account != nil {
		draft.Category = domain.ParseCategory(*account)
	}

	kind, err := getOptionalStringField(obj, "transaction_type")
	if err != nil {
		return nil, fmt.Errorf("ExtractTransaction: %w", err)
	}
	if kind != nil {
		draft.Kind = domain.ParseKind(*kind)
	}

	dateStr, err := getOptionalStringField(obj, "date")
	if err != nil {
		return nil, fmt.Errorf("ExtractTransaction: %w", err)
	}
	if dateStr != nil {
		date, err := time.Parse(domain.DateLayout, *dateStr)
		if err != nil {
			// An undecipherable date degrades to "no date" rather than
			// rejecting an otherwise usable draft.
			draft.Date = nil
		} else {
			draft.Date = &date
		}
	}

	return draft, nil
}

func getOptionalStringField(m map[string]interface{}, key string) (*string, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return nil, nil
	}
	s, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("field %q has type %T, want string or null: %w", key, v, ErrMalformedOutput)
	}
	return &s, nil
}

func getOptionalNumberField(m map[string]interface{}, key string) (*float64, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return nil, nil
	}
	switch val := v.(type) {
	case float64:
		f := val
		return &f, nil
	case string:
		// Models occasionally quote the number; tolerate that.
		var f float64
		if _, err := fmt.Sscanf(val, "%g", &f); err != nil {
			return nil, fmt.Errorf("field %q is %q, want number or null: %w", key, val, ErrMalformedOutput)
		}
		return &f, nil
	default:
		return nil, fmt.Errorf("field %q has type %T, want number or null: %w", key, v, ErrMalformedOutput)
	}
}
