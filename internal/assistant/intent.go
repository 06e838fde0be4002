// Package assistant holds the four LLM-backed components of the
// conversation pipeline: intent classification, transaction extraction,
// history summarization and response humanization. Every oracle response
// is untrusted text and is parsed defensively before use.
package assistant

import (
	"context"
	"fmt"

	"github.com/dvloznov/budgetbuddy/internal/domain"
	"github.com/dvloznov/budgetbuddy/internal/oracle"
)

// ClassifyIntent maps a raw user utterance onto the closed intent set.
// Unrecognized oracle output collapses to general_inquiry; only an oracle
// failure surfaces as an error.
func ClassifyIntent(ctx context.Context, c oracle.Completer, text string) (domain.Intent, error) {
	raw, err := c.Complete(ctx, buildIntentPrompt(text))
	if err != nil {
		return "", fmt.Errorf("ClassifyIntent: %w", err)
	}
	return domain.ParseIntent(raw), nil
}
