package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/dvloznov/budgetbuddy/internal/oracle"
)

// Humanize rewrites a terse system message into a friendly reply in the
// same language, applying the balance tone policy through the prompt. On
// failure the caller should fall back to the raw system message.
func Humanize(ctx context.Context, c oracle.Completer, systemMessage string) (string, error) {
	out, err := c.Complete(ctx, buildHumanizePrompt(systemMessage))
	if err != nil {
		return "", fmt.Errorf("Humanize: %w", err)
	}
	return strings.TrimSpace(out), nil
}
