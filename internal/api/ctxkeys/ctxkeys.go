// Package ctxkeys holds the shared context keys for the API layer.
// Leaf package to avoid import cycles between api, middleware and handlers.
package ctxkeys

import "context"

// Key is the named type for all API context keys.
// context.Value compares both type and value, so string keys from other
// packages cannot collide with these.
type Key string

const (
	// Subject is the authenticated caller, injected by middleware.Auth from the JWT "sub" claim.
	Subject Key = "subject"
)

// WithValue adds a ctxkeys.Key value to the context.
func WithValue(ctx context.Context, key Key, value string) context.Context {
	return context.WithValue(ctx, key, value)
}

// String returns the string stored under key, or "" when absent.
func String(ctx context.Context, key Key) string {
	v, _ := ctx.Value(key).(string)
	return v
}
