// Package llm: LLMProvider interface.
// Adapters (OpenAI, Groq) implement this interface so the reply service
// is never coupled to a specific vendor.
package llm

import "context"

// LLMProvider is the model-agnostic interface for chat completions.
type LLMProvider interface {
	// ChatCompletion performs exactly one non-streaming chat completion call.
	ChatCompletion(ctx context.Context, req ChatRequest) (*ChatResponse, error)

	// ModelInfo returns static metadata about the provider/model.
	ModelInfo() ModelMeta

	// HealthCheck returns nil if the provider is reachable and accepts the key.
	HealthCheck(ctx context.Context) error
}
