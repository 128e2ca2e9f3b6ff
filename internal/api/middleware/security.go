package middleware

import (
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// securityHeaders are set on every response.
var securityHeaders = [][2]string{
	{"X-Content-Type-Options", "nosniff"},
	{"X-Frame-Options", "SAMEORIGIN"},
	{"Referrer-Policy", "no-referrer"},
	{"X-DNS-Prefetch-Control", "off"},
	{"Cross-Origin-Opener-Policy", "same-origin"},
	{"X-Permitted-Cross-Domain-Policies", "none"},
}

// SecureHeaders sets a conservative set of browser security headers.
func SecureHeaders(next http.Handler) http.Handler {
	h := next
	for i := len(securityHeaders) - 1; i >= 0; i-- {
		h = chimw.SetHeader(securityHeaders[i][0], securityHeaders[i][1])(h)
	}
	return h
}
