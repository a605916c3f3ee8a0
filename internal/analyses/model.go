package analyses

import "time"

const (
	StatusQueued     = "queued"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// Source records which path produced the stored report.
const (
	SourceLLM      = "llm"
	SourceFallback = "fallback"
)

// Analysis represents one resume scoring job against a target role.
type Analysis struct {
	ID             string         `json:"id"`
	DocumentID     string         `json:"documentId"`
	UserID         string         `json:"userId"`
	JobTitle       string         `json:"jobTitle"`
	Seniority      string         `json:"seniority,omitempty"`
	Industry       string         `json:"industry,omitempty"`
	Status         string         `json:"status"`
	Source         string         `json:"source,omitempty"`
	Provider       string         `json:"provider,omitempty"`
	Model          string         `json:"model,omitempty"`
	ScoringVersion string         `json:"scoringVersion,omitempty"`
	Result         map[string]any `json:"result,omitempty"`
	ErrorMessage   string         `json:"error,omitempty"`
	StartedAt      *time.Time     `json:"startedAt,omitempty"`
	CompletedAt    *time.Time     `json:"completedAt,omitempty"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}
