package llm

// ProviderNone is returned by Credentials.Select when no key is configured.
const ProviderNone = ""

// Credentials is the process-wide provider key set. It is built once at startup
// and passed by value; nothing mutates it afterwards.
type Credentials struct {
	OpenAIKey string
	GroqKey   string
}

// Preference returns the configured providers in fixed precedence order:
// openai first, then groq. Providers without a key are omitted.
func (c Credentials) Preference() []string {
	out := make([]string, 0, 2)
	if c.OpenAIKey != "" {
		out = append(out, ProviderOpenAI)
	}
	if c.GroqKey != "" {
		out = append(out, ProviderGroq)
	}
	return out
}

// Select returns the provider that answers prompts, or ProviderNone.
func (c Credentials) Select() string {
	if pref := c.Preference(); len(pref) > 0 {
		return pref[0]
	}
	return ProviderNone
}

// Configured reports whether at least one provider key is set.
func (c Credentials) Configured() bool { return c.Select() != ProviderNone }
