// Package llm: OpenAI-compatible chat completion adapter.
// OpenAI and Groq both speak the OpenAI Chat Completions wire format, so a single
// adapter built on github.com/sashabaranov/go-openai serves both; only the base URL,
// the key and the default model differ.
package llm

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const (
	ProviderOpenAI = "openai"
	ProviderGroq   = "groq"

	DefaultOpenAIBaseURL = "https://api.openai.com/v1"
	DefaultGroqBaseURL   = "https://api.groq.com/openai/v1"
	DefaultOpenAIModel   = "gpt-4o-mini"
	DefaultGroqModel     = "gemma2-9b-it"

	defaultProviderTimeout = 30 * time.Second
)

// ProviderConfig configures one OpenAI-compatible provider.
// Empty BaseURL/Model and a zero Timeout fall back to the provider defaults.
type ProviderConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// CompatProvider implements LLMProvider against an OpenAI-compatible API.
type CompatProvider struct {
	name   string
	model  string
	client *openai.Client
}

// NewOpenAIProvider creates a provider for api.openai.com.
func NewOpenAIProvider(cfg ProviderConfig) *CompatProvider {
	return newCompatProvider(ProviderOpenAI, cfg, DefaultOpenAIBaseURL, DefaultOpenAIModel)
}

// NewGroqProvider creates a provider for Groq's OpenAI-compatible endpoint.
func NewGroqProvider(cfg ProviderConfig) *CompatProvider {
	return newCompatProvider(ProviderGroq, cfg, DefaultGroqBaseURL, DefaultGroqModel)
}

func newCompatProvider(name string, cfg ProviderConfig, baseURL, model string) *CompatProvider {
	if cfg.BaseURL != "" {
		baseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	if cfg.Model != "" {
		model = cfg.Model
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultProviderTimeout
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	clientCfg.BaseURL = baseURL
	clientCfg.HTTPClient = &http.Client{Timeout: timeout}

	return &CompatProvider{
		name:   name,
		model:  model,
		client: openai.NewClientWithConfig(clientCfg),
	}
}

// ChatCompletion performs one non-streaming chat completion. No retries.
func (p *CompatProvider) ChatCompletion(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	model := req.Model
	if model == "" {
		model = p.model
	}

	msgs := make([]openai.ChatCompletionMessage, len(req.Messages))
	for i, m := range req.Messages {
		msgs[i] = openai.ChatCompletionMessage{Role: m.Role, Content: m.Content}
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     model,
		Messages:  msgs,
		MaxTokens: req.MaxTokens,
	})
	if err != nil {
		return nil, p.wrapError(err)
	}

	out := &ChatResponse{Model: resp.Model, Tokens: resp.Usage.TotalTokens}
	if len(resp.Choices) > 0 {
		out.Content = resp.Choices[0].Message.Content
		out.StopReason = string(resp.Choices[0].FinishReason)
	}
	return out, nil
}

// ModelInfo returns static metadata for this provider/model.
func (p *CompatProvider) ModelInfo() ModelMeta {
	return ModelMeta{ID: p.model, Provider: p.name}
}

// HealthCheck lists models; it fails on a bad key or an unreachable host.
func (p *CompatProvider) HealthCheck(ctx context.Context) error {
	if _, err := p.client.ListModels(ctx); err != nil {
		return p.wrapError(err)
	}
	return nil
}

// wrapError converts go-openai errors into *ProviderError, keeping status and body.
func (p *CompatProvider) wrapError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &ProviderError{Provider: p.name, StatusCode: apiErr.HTTPStatusCode, Body: apiErr.Message, Err: err}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &ProviderError{
			Provider:   p.name,
			StatusCode: reqErr.HTTPStatusCode,
			Body:       strings.TrimSpace(string(reqErr.Body)),
			Err:        err,
		}
	}
	return &ProviderError{Provider: p.name, Err: err}
}
