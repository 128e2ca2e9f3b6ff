package handlers

import (
	"context"
	"net/http"

	"github.com/matiasleandrokruk/promptrelay/internal/domain/audit"
)

// UsageLister reads the usage log. *audit.UsageService satisfies it.
type UsageLister interface {
	ListRecent(ctx context.Context, limit int) ([]*audit.UsageEvent, error)
}

// UsageHandler serves GET /api/usage.
type UsageHandler struct {
	usage UsageLister
}

// NewUsageHandler creates a new UsageHandler.
func NewUsageHandler(usage UsageLister) *UsageHandler {
	return &UsageHandler{usage: usage}
}

// ListUsageResponse is the response body for GET /api/usage.
type ListUsageResponse struct {
	Data []*audit.UsageEvent `json:"data"`
	Meta UsageMeta           `json:"meta"`
}

// UsageMeta echoes the effective page size.
type UsageMeta struct {
	Limit int `json:"limit"`
}

// List handles GET /api/usage?limit=N (newest first).
func (h *UsageHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseLimit(r)
	events, err := h.usage.ListRecent(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list usage")
		return
	}
	writeJSON(w, http.StatusOK, ListUsageResponse{Data: events, Meta: UsageMeta{Limit: limit}})
}
