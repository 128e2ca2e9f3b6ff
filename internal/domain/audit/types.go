package audit

import "time"

// Outcome represents the result of a handled prompt.
type Outcome string

const (
	OutcomeSuccess      Outcome = "success"
	OutcomeError        Outcome = "error"
	OutcomeUnconfigured Outcome = "unconfigured"
)

// UsageEvent is one row of the usage log. Immutable once written.
// Prompt and reply text are never stored.
type UsageEvent struct {
	ID         string    `json:"id"`
	Provider   string    `json:"provider"`
	Model      string    `json:"model"`
	Outcome    Outcome   `json:"outcome"`
	StatusCode int       `json:"statusCode"`
	DurationMs int64     `json:"durationMs"`
	Subject    *string   `json:"subject,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

const (
	DefaultListLimit = 25
	MaxListLimit     = 100
)
