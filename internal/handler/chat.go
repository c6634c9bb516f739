package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/newsdesk/newsdesk/internal/handler/dto"
)

// ChatRouter produces a reply for a chat message.
type ChatRouter interface {
	Route(ctx context.Context, userID int64, message string) (string, error)
}

// ChatHandler handles chat messages.
type ChatHandler struct {
	router ChatRouter
	logger *slog.Logger
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(router ChatRouter, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{
		router: router,
		logger: logger,
	}
}

// Chat handles POST /chat.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req dto.ChatRequest
	if err := decodeJSON(r, &req); err != nil || !req.Valid() {
		writeError(w, http.StatusUnprocessableEntity, msgInvalidBody)
		return
	}

	reply, err := h.router.Route(r.Context(), *req.UserID, *req.Message)
	if err != nil {
		h.logger.Error("chat routing failed", "user_id", *req.UserID, "error", err)
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}

	writeJSON(w, http.StatusOK, dto.ChatResponse{Reply: reply})
}
