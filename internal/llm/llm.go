package llm

import (
	"context"
	"encoding/json"
	"errors"
)

// Client abstracts LLM providers for resume scoring.
type Client interface {
	ScoreResume(ctx context.Context, input ScoreInput) (json.RawMessage, error)
}

// ScoreInput captures the inputs needed for a scoring request.
type ScoreInput struct {
	ResumeJSON string
	JobTitle   string
	Seniority  string
	Industry   string
}

// ErrNotConfigured is returned by the placeholder client.
var ErrNotConfigured = errors.New("llm not configured")

// PlaceholderClient is the stand-in when no provider is configured; callers
// fall back to the rule-based scorer.
type PlaceholderClient struct{}

// ScoreResume returns ErrNotConfigured.
func (PlaceholderClient) ScoreResume(ctx context.Context, input ScoreInput) (json.RawMessage, error) {
	_ = ctx
	_ = input
	return nil, ErrNotConfigured
}
