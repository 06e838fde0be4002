// Package oracle wraps the external text-completion service behind a
// narrow interface so the LLM-backed components can be driven by a
// deterministic stub in tests.
package oracle

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// Completer completes a prompt. Implementations must not interpret or
// validate the returned text; parsing is the caller's responsibility.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// GeminiClient is the concrete Completer backed by the Gemini API.
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient creates a Gemini-backed completer. The client is created
// once at process start and reused for the process lifetime.
func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("NewGeminiClient: create genai client: %w", err)
	}
	return &GeminiClient{client: client, model: model}, nil
}

// Complete sends the prompt to the model and returns the raw completion
// text. Transport and service errors surface unmodified; an empty
// completion is reported as an error.
func (c *GeminiClient) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("Complete: generate content: %w", err)
	}

	rawText := resp.Text()
	if rawText == "" {
		return "", fmt.Errorf("Complete: empty response from model")
	}
	return rawText, nil
}

// Clean strips Markdown fences and surrounding junk from a near-JSON
// completion. The model is instructed to return raw JSON, but this is the
// robustness boundary for when it does not.
func Clean(raw string) string {
	s := strings.TrimSpace(raw)

	// Handle ```json ... ``` or ``` ... ``` wrappers.
	if strings.HasPrefix(s, "```") {
		// Drop the first line (``` or ```json).
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			return s
		}
		s = strings.TrimSpace(s)
	}

	// Remove trailing ``` if present.
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}

	s = strings.TrimSpace(s)

	// If there is still junk around the JSON value, keep only the
	// outermost object or array, whichever opens first.
	objStart := strings.Index(s, "{")
	arrStart := strings.Index(s, "[")
	switch {
	case objStart != -1 && (arrStart == -1 || objStart < arrStart):
		s = sliceBetween(s, objStart, "}")
	case arrStart != -1:
		s = sliceBetween(s, arrStart, "]")
	}

	return s
}

func sliceBetween(s string, start int, closing string) string {
	end := strings.LastIndex(s, closing)
	if end <= start {
		return s
	}
	return strings.TrimSpace(s[start : end+1])
}
