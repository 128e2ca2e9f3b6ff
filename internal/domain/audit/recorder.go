package audit

import (
	"context"
	"log"

	"github.com/matiasleandrokruk/promptrelay/internal/domain/assistant"
	"github.com/matiasleandrokruk/promptrelay/internal/infra/eventbus"
)

// UsageLogger is the write side of UsageService.
type UsageLogger interface {
	Log(ctx context.Context, event *UsageEvent) error
}

// Recorder persists assistant completion events published on the event bus.
type Recorder struct {
	logger UsageLogger
}

// NewRecorder creates a Recorder writing through logger.
func NewRecorder(logger UsageLogger) *Recorder {
	return &Recorder{logger: logger}
}

// Start consumes assistant.TopicCompletion until ctx is cancelled, then unsubscribes.
// Blocks; run it in its own goroutine. Write failures are logged and skipped.
func (r *Recorder) Start(ctx context.Context, bus eventbus.EventBus) {
	ch := bus.Subscribe(assistant.TopicCompletion)
	defer bus.Unsubscribe(assistant.TopicCompletion, ch)

	for {
		select {
		case <-ctx.Done():
			return
		case evt, ok := <-ch:
			if !ok {
				return
			}
			completion, isCompletion := evt.Payload.(assistant.CompletionEvent)
			if !isCompletion {
				continue
			}
			if err := r.logger.Log(ctx, FromCompletion(completion)); err != nil {
				log.Printf("audit: record usage event: %v", err)
			}
		}
	}
}

// FromCompletion maps a completion event to a usage row.
func FromCompletion(c assistant.CompletionEvent) *UsageEvent {
	e := &UsageEvent{
		Provider:   c.Provider,
		Model:      c.Model,
		Outcome:    Outcome(c.Outcome),
		StatusCode: c.StatusCode,
		DurationMs: c.Duration.Milliseconds(),
		CreatedAt:  c.At,
	}
	if c.Subject != "" {
		subject := c.Subject
		e.Subject = &subject
	}
	return e
}
