package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/matiasleandrokruk/promptrelay/internal/api/ctxkeys"
	"github.com/matiasleandrokruk/promptrelay/internal/domain/assistant"
)

// ReplyService answers one prompt. *assistant.Service satisfies it.
type ReplyService interface {
	Reply(ctx context.Context, in assistant.ReplyInput) (string, error)
}

// AIHandler serves POST /api/ai.
type AIHandler struct {
	replies ReplyService
}

// NewAIHandler creates a new AIHandler.
func NewAIHandler(replies ReplyService) *AIHandler {
	return &AIHandler{replies: replies}
}

// AskRequest is the request body for POST /api/ai.
type AskRequest struct {
	Prompt string `json:"prompt"`
	Model  string `json:"model,omitempty"`
}

// AskResponse is the success body for POST /api/ai.
type AskResponse struct {
	Reply string `json:"reply"`
}

// AIErrorResponse is the failure body for POST /api/ai.
type AIErrorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail"`
}

const (
	msgMissingPrompt = "Missing prompt"
	msgAIError       = "AI Error"
)

// Ask handles POST /api/ai.
// A body that is not a JSON object carries no prompt and gets the same 400.
// The request context is passed through so a client disconnect aborts the upstream call.
func (h *AIHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req AskRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgMissingPrompt)
		return
	}

	reply, err := h.replies.Reply(r.Context(), assistant.ReplyInput{
		Prompt:  req.Prompt,
		Model:   req.Model,
		Subject: ctxkeys.String(r.Context(), ctxkeys.Subject),
	})
	switch {
	case errors.Is(err, assistant.ErrMissingPrompt):
		writeError(w, http.StatusBadRequest, msgMissingPrompt)
	case err != nil:
		writeJSON(w, http.StatusInternalServerError, AIErrorResponse{Error: msgAIError, Detail: err.Error()})
	default:
		writeJSON(w, http.StatusOK, AskResponse{Reply: reply})
	}
}
