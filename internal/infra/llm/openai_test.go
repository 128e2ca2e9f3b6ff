// Unit tests for CompatProvider.
// Uses httptest.NewServer to mock the OpenAI HTTP API: no real key needed.
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

type capturedChat struct {
	Model     string `json:"model"`
	MaxTokens int    `json:"max_tokens"`
	Messages  []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func chatCompletionBody(content string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-1",
		"object":  "chat.completion",
		"created": 1700000000,
		"model":   "gpt-4o-mini",
		"choices": []any{map[string]any{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": content},
			"finish_reason": "stop",
		}},
		"usage": map[string]any{"prompt_tokens": 3, "completion_tokens": 2, "total_tokens": 5},
	}
}

func newTestProvider(t *testing.T, h http.HandlerFunc) *CompatProvider {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewOpenAIProvider(ProviderConfig{APIKey: "sk-test", BaseURL: srv.URL + "/v1"})
}

// ============================================================================
// ChatCompletion tests
// ============================================================================

func TestCompatProvider_ChatCompletion_Success(t *testing.T) {
	t.Parallel()

	var got capturedChat
	var auth string
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" || r.Method != http.MethodPost {
			http.Error(w, "unexpected path", http.StatusNotFound)
			return
		}
		auth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&got) //nolint:errcheck
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chatCompletionBody("Hello from OpenAI")) //nolint:errcheck
	})

	resp, err := p.ChatCompletion(context.Background(), ChatRequest{
		Messages:  []Message{{Role: RoleUser, Content: "hi"}},
		MaxTokens: 500,
	})
	if err != nil {
		t.Fatalf("ChatCompletion failed: %v", err)
	}
	if resp.Content != "Hello from OpenAI" {
		t.Errorf("expected 'Hello from OpenAI', got %q", resp.Content)
	}
	if resp.StopReason != "stop" || resp.Tokens != 5 {
		t.Errorf("unexpected metadata %+v", resp)
	}
	if auth != "Bearer sk-test" {
		t.Errorf("expected bearer auth header, got %q", auth)
	}
	if got.Model != DefaultOpenAIModel {
		t.Errorf("expected default model %q, got %q", DefaultOpenAIModel, got.Model)
	}
	if got.MaxTokens != 500 {
		t.Errorf("expected max_tokens 500, got %d", got.MaxTokens)
	}
	if len(got.Messages) != 1 || got.Messages[0].Role != "user" || got.Messages[0].Content != "hi" {
		t.Errorf("expected a single user message, got %+v", got.Messages)
	}
}

func TestCompatProvider_ChatCompletion_ModelOverride(t *testing.T) {
	t.Parallel()

	var got capturedChat
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got) //nolint:errcheck
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chatCompletionBody("ok")) //nolint:errcheck
	})

	if _, err := p.ChatCompletion(context.Background(), ChatRequest{
		Model:    "gpt-4o",
		Messages: []Message{{Role: RoleUser, Content: "hi"}},
	}); err != nil {
		t.Fatalf("ChatCompletion failed: %v", err)
	}
	if got.Model != "gpt-4o" {
		t.Errorf("expected model override 'gpt-4o', got %q", got.Model)
	}
}

func TestCompatProvider_ChatCompletion_NoChoices_EmptyContent(t *testing.T) {
	t.Parallel()

	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"x","object":"chat.completion","choices":[]}`)) //nolint:errcheck
	})

	resp, err := p.ChatCompletion(context.Background(), ChatRequest{Messages: []Message{{Role: RoleUser, Content: "hi"}}})
	if err != nil {
		t.Fatalf("expected no error for empty choices, got %v", err)
	}
	if resp.Content != "" {
		t.Errorf("expected empty content, got %q", resp.Content)
	}
}

func TestCompatProvider_ChatCompletion_APIError_CarriesStatusAndBody(t *testing.T) {
	t.Parallel()

	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"Incorrect API key provided","type":"invalid_request_error"}}`)) //nolint:errcheck
	})

	_, err := p.ChatCompletion(context.Background(), ChatRequest{Messages: []Message{{Role: RoleUser, Content: "hi"}}})
	var perr *ProviderError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ProviderError, got %T (%v)", err, err)
	}
	if perr.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", perr.StatusCode)
	}
	if perr.Provider != ProviderOpenAI {
		t.Errorf("expected provider openai, got %q", perr.Provider)
	}
	if !strings.Contains(perr.Error(), "Incorrect API key provided") {
		t.Errorf("expected body in error text, got %q", perr.Error())
	}
}

func TestCompatProvider_ChatCompletion_PlainTextError_CarriesBody(t *testing.T) {
	t.Parallel()

	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	})

	_, err := p.ChatCompletion(context.Background(), ChatRequest{Messages: []Message{{Role: RoleUser, Content: "hi"}}})
	var perr *ProviderError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ProviderError, got %T (%v)", err, err)
	}
	if perr.StatusCode != http.StatusBadGateway {
		t.Errorf("expected status 502, got %d", perr.StatusCode)
	}
	if !strings.Contains(perr.Body, "upstream exploded") {
		t.Errorf("expected body to be kept, got %q", perr.Body)
	}
}

func TestCompatProvider_ChatCompletion_ServerDown_StatusZero(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // closed before the call.

	p := NewGroqProvider(ProviderConfig{APIKey: "gsk-test", BaseURL: srv.URL})
	_, err := p.ChatCompletion(context.Background(), ChatRequest{Messages: []Message{{Role: RoleUser, Content: "hi"}}})
	var perr *ProviderError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ProviderError, got %T (%v)", err, err)
	}
	if perr.StatusCode != 0 {
		t.Errorf("expected status 0 for transport failure, got %d", perr.StatusCode)
	}
	if perr.Provider != ProviderGroq {
		t.Errorf("expected provider groq, got %q", perr.Provider)
	}
}

func TestCompatProvider_ChatCompletion_TimeoutIsEnforced(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})

	p := NewOpenAIProvider(ProviderConfig{APIKey: "sk", BaseURL: srv.URL, Timeout: 50 * time.Millisecond})
	start := time.Now()
	_, err := p.ChatCompletion(context.Background(), ChatRequest{Messages: []Message{{Role: RoleUser, Content: "hi"}}})
	if err == nil {
		t.Fatal("expected timeout error, got nil")
	}
	if time.Since(start) > 5*time.Second {
		t.Errorf("timeout not enforced, call took %v", time.Since(start))
	}
}

// ============================================================================
// HealthCheck / ModelInfo tests
// ============================================================================

func TestCompatProvider_HealthCheck(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.URL.Path != "/v1/models" {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"object":"list","data":[]}`)) //nolint:errcheck
	})

	if err := p.HealthCheck(context.Background()); err != nil {
		t.Errorf("expected healthy, got error: %v", err)
	}
	if calls.Load() != 1 {
		t.Errorf("expected 1 call, got %d", calls.Load())
	}
}

func TestCompatProvider_ModelInfo(t *testing.T) {
	t.Parallel()

	meta := NewGroqProvider(ProviderConfig{APIKey: "gsk"}).ModelInfo()
	if meta.ID != DefaultGroqModel || meta.Provider != ProviderGroq {
		t.Errorf("unexpected meta %+v", meta)
	}
}

func TestProviderError_Error(t *testing.T) {
	t.Parallel()

	cases := []struct {
		err  *ProviderError
		want string
	}{
		{&ProviderError{Provider: "openai", StatusCode: 429, Body: "rate limited"}, "openai: status 429: rate limited"},
		{&ProviderError{Provider: "groq", StatusCode: 500}, "groq: status 500"},
		{&ProviderError{Provider: "groq", Err: errors.New("dial tcp: refused")}, "groq: dial tcp: refused"},
		{&ProviderError{Provider: "openai"}, "openai: request failed"},
	}
	for _, tc := range cases {
		if got := tc.err.Error(); got != tc.want {
			t.Errorf("Error() = %q; want %q", got, tc.want)
		}
	}
}
