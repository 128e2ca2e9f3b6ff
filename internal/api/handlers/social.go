package handlers

import (
	"errors"
	"net/http"

	"github.com/matiasleandrokruk/promptrelay/internal/domain/share"
)

// ShareRequest is the request body for POST /api/social.
type ShareRequest struct {
	Platform string `json:"platform"`
	Text     string `json:"text,omitempty"`
	URL      string `json:"url,omitempty"`
}

// ShareResponse is the success body for POST /api/social.
type ShareResponse struct {
	ShareURL string `json:"shareUrl"`
}

// Share handles POST /api/social. It is stateless.
func Share(w http.ResponseWriter, r *http.Request) {
	var req ShareRequest
	if err := decodeJSON(w, r, &req); err != nil && !errors.Is(err, errEmptyBody) {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	shareURL, err := share.BuildURL(req.Platform, req.Text, req.URL)
	if errors.Is(err, share.ErrMissingPlatform) {
		writeError(w, http.StatusBadRequest, "Missing platform")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "share failed")
		return
	}
	writeJSON(w, http.StatusOK, ShareResponse{ShareURL: shareURL})
}
