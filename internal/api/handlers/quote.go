package handlers

import "net/http"

// QuotePicker returns one quote per call. *quote.Pool satisfies it.
type QuotePicker interface {
	Random() string
}

// QuoteHandler serves GET /api/quote.
type QuoteHandler struct {
	pool QuotePicker
}

// NewQuoteHandler creates a new QuoteHandler.
func NewQuoteHandler(pool QuotePicker) *QuoteHandler {
	return &QuoteHandler{pool: pool}
}

// Random handles GET /api/quote.
func (h *QuoteHandler) Random(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"quote": h.pool.Random()})
}
