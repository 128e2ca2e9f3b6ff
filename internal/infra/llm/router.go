// Package llm: provider router.
// Router picks the LLMProvider that answers a prompt. Precedence is fixed at
// construction time (openai, then groq); requests can override the model but
// never the provider.
package llm

import (
	"context"
	"time"
)

// Router selects a LLMProvider for each request.
type Router struct {
	providers map[string]LLMProvider
	order     []string
}

// RouterOptions carries the non-secret provider settings.
type RouterOptions struct {
	OpenAIBaseURL string
	OpenAIModel   string
	GroqBaseURL   string
	GroqModel     string
	Timeout       time.Duration
}

// NewRouter creates a Router with an initial set of providers consulted in order.
// Keys in order that have no provider are skipped.
func NewRouter(providers map[string]LLMProvider, order []string) *Router {
	// copy so the caller cannot mutate the internal state.
	ps := make(map[string]LLMProvider, len(providers))
	for k, v := range providers {
		ps[k] = v
	}
	return &Router{providers: ps, order: append([]string(nil), order...)}
}

// NewRouterFromCredentials builds a provider for every configured key and orders
// them by Credentials.Preference.
func NewRouterFromCredentials(creds Credentials, opts RouterOptions) *Router {
	providers := make(map[string]LLMProvider, 2)
	if creds.OpenAIKey != "" {
		providers[ProviderOpenAI] = NewOpenAIProvider(ProviderConfig{
			APIKey:  creds.OpenAIKey,
			BaseURL: opts.OpenAIBaseURL,
			Model:   opts.OpenAIModel,
			Timeout: opts.Timeout,
		})
	}
	if creds.GroqKey != "" {
		providers[ProviderGroq] = NewGroqProvider(ProviderConfig{
			APIKey:  creds.GroqKey,
			BaseURL: opts.GroqBaseURL,
			Model:   opts.GroqModel,
			Timeout: opts.Timeout,
		})
	}
	return NewRouter(providers, creds.Preference())
}

// Route returns the provider for the current request, or ErrNotConfigured.
func (r *Router) Route(_ context.Context) (LLMProvider, error) {
	for _, key := range r.order {
		if p, ok := r.providers[key]; ok {
			return p, nil
		}
	}
	return nil, ErrNotConfigured
}

// Providers returns the registered provider names in precedence order.
func (r *Router) Providers() []string {
	out := make([]string, 0, len(r.order))
	for _, key := range r.order {
		if _, ok := r.providers[key]; ok {
			out = append(out, key)
		}
	}
	return out
}
