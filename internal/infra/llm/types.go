// Package llm defines the provider-agnostic chat completion abstraction.
// All types here are shared between the provider interface, the router and adapters.
package llm

// Message represents a single turn in a conversation (role + content).
type Message struct {
	Role    string // "system" | "user" | "assistant"
	Content string
}

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatRequest is the input for a non-streaming chat completion.
type ChatRequest struct {
	// Model overrides the provider default when non-empty.
	Model     string
	Messages  []Message
	MaxTokens int
}

// ChatResponse is the output from a non-streaming chat completion.
// Content is empty when the provider returned no choices.
type ChatResponse struct {
	Content    string
	Model      string // model that actually served the request
	StopReason string // "stop" | "length" | ...
	Tokens     int    // prompt + completion
}

// ModelMeta describes the model / provider identity.
type ModelMeta struct {
	ID       string // e.g. "gpt-4o-mini", "gemma2-9b-it"
	Provider string // e.g. "openai", "groq"
}
