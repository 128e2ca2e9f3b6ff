package llm

import (
	"errors"
	"fmt"
)

// ErrNotConfigured is returned by Router.Route when no provider credential is set.
// It is a configuration gap, not a failure: callers degrade to a placeholder reply.
var ErrNotConfigured = errors.New("llm: no provider configured")

// ProviderError reports a failed upstream call.
// StatusCode is 0 when the request never produced an HTTP response.
type ProviderError struct {
	Provider   string
	StatusCode int
	Body       string
	Err        error
}

func (e *ProviderError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Body != "":
		return fmt.Sprintf("%s: status %d: %s", e.Provider, e.StatusCode, e.Body)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: status %d", e.Provider, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Provider, e.Err)
	default:
		return e.Provider + ": request failed"
	}
}

func (e *ProviderError) Unwrap() error { return e.Err }
