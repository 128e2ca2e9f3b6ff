// Package assistant answers a single prompt through the configured LLM provider.
//
// Flow: validate → route → one ChatCompletion call → reply text.
// A missing provider key is a configuration gap, not a failure: Reply returns
// PlaceholderReply without any network call.
package assistant

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/matiasleandrokruk/promptrelay/internal/infra/llm"
)

const (
	// MaxReplyTokens caps every completion.
	MaxReplyTokens = 500

	// PlaceholderReply is returned when no provider credential is configured.
	PlaceholderReply = "AI key not configured."

	// NoReply is returned when the provider answered without any content.
	NoReply = "No reply"

	// TopicCompletion is the event bus topic carrying CompletionEvent payloads.
	TopicCompletion = "assistant.completion"
)

// ErrMissingPrompt is returned before any network call when the prompt is empty.
var ErrMissingPrompt = errors.New("assistant: missing prompt")

// ProviderRouter picks the provider for a request. *llm.Router satisfies it.
type ProviderRouter interface {
	Route(ctx context.Context) (llm.LLMProvider, error)
}

// EventPublisher is the minimal contract used to report completions.
// *eventbus.Bus satisfies it.
type EventPublisher interface {
	Publish(topic string, payload any)
}

// Outcome classifies a handled prompt.
type Outcome string

const (
	OutcomeSuccess      Outcome = "success"
	OutcomeError        Outcome = "error"
	OutcomeUnconfigured Outcome = "unconfigured"
)

// ReplyInput is one prompt request.
type ReplyInput struct {
	Prompt  string
	Model   string // optional model override
	Subject string // authenticated caller, empty when auth is disabled
}

// CompletionEvent describes one handled prompt. It never carries prompt or reply text.
type CompletionEvent struct {
	Provider   string
	Model      string
	Outcome    Outcome
	StatusCode int
	Duration   time.Duration
	Subject    string
	At         time.Time
}

// Service answers prompts.
type Service struct {
	router ProviderRouter
	events EventPublisher
	now    func() time.Time
}

// NewService creates a Service. events may be nil.
func NewService(router ProviderRouter, events EventPublisher) *Service {
	return &Service{router: router, events: events, now: time.Now}
}

// Reply validates the input and returns the provider's reply text.
// Errors: ErrMissingPrompt, or *llm.ProviderError for upstream failures.
func (s *Service) Reply(ctx context.Context, in ReplyInput) (string, error) {
	if strings.TrimSpace(in.Prompt) == "" {
		return "", ErrMissingPrompt
	}

	start := s.now()
	provider, err := s.router.Route(ctx)
	if errors.Is(err, llm.ErrNotConfigured) {
		s.publish(CompletionEvent{Model: in.Model, Outcome: OutcomeUnconfigured, Subject: in.Subject, At: start})
		return PlaceholderReply, nil
	}
	if err != nil {
		return "", err
	}

	meta := provider.ModelInfo()
	model := in.Model
	if model == "" {
		model = meta.ID
	}

	resp, err := provider.ChatCompletion(ctx, llm.ChatRequest{
		Model:     model,
		Messages:  []llm.Message{{Role: llm.RoleUser, Content: in.Prompt}},
		MaxTokens: MaxReplyTokens,
	})
	evt := CompletionEvent{
		Provider: meta.Provider,
		Model:    model,
		Subject:  in.Subject,
		At:       start,
		Duration: s.now().Sub(start),
	}
	if err != nil {
		evt.Outcome = OutcomeError
		var perr *llm.ProviderError
		if errors.As(err, &perr) {
			evt.StatusCode = perr.StatusCode
		}
		s.publish(evt)
		return "", err
	}

	evt.Outcome = OutcomeSuccess
	evt.StatusCode = 200
	s.publish(evt)

	if resp.Content == "" {
		return NoReply, nil
	}
	return resp.Content, nil
}

func (s *Service) publish(evt CompletionEvent) {
	if s.events == nil {
		return
	}
	s.events.Publish(TopicCompletion, evt)
}
