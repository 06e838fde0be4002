package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dvloznov/budgetbuddy/internal/domain"
	"github.com/dvloznov/budgetbuddy/internal/oracle"
)

// promptRecord is the shape a record takes inside the summary prompt.
// The owner key is stripped before prompting.
type promptRecord struct {
	Date        string  `json:"date"`
	Category    string  `json:"category"`
	Income      float64 `json:"income"`
	Expenditure float64 `json:"expenditure"`
	Remarks     string  `json:"remarks"`
}

// SummarizeHistory answers a free-text question over the user's full
// transaction history. The oracle does the arithmetic under the prompt's
// rules; the returned answer is already phrased for the user and must not
// be humanized again. An empty history is valid input.
func SummarizeHistory(ctx context.Context, c oracle.Completer, records []domain.Record, query string) (string, error) {
	prompted := make([]promptRecord, 0, len(records))
	for _, r := range records {
		prompted = append(prompted, promptRecord{
			Date:        r.Date.Format(domain.DateLayout),
			Category:    string(r.Category),
			Income:      r.Income,
			Expenditure: r.Expenditure,
			Remarks:     r.Remarks,
		})
	}

	historyJSON, err := json.Marshal(prompted)
	if err != nil {
		return "", fmt.Errorf("SummarizeHistory: marshal history: %w", err)
	}

	answer, err := c.Complete(ctx, buildSummaryPrompt(string(historyJSON), query))
	if err != nil {
		return "", fmt.Errorf("SummarizeHistory: %w", err)
	}
	return strings.TrimSpace(answer), nil
}
