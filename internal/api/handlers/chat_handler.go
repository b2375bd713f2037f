package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/hwigle/reactStudy/internal/services"
	"github.com/rs/zerolog/log"
)

// ChatHandler serves chat room history over REST.
type ChatHandler struct {
	service services.ChatServiceProvider
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(service services.ChatServiceProvider) *ChatHandler {
	return &ChatHandler{service: service}
}

// History returns the recent messages of a room in chronological order.
func (h *ChatHandler) History(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "roomId")

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 50
	}

	messages, err := h.service.History(roomID, limit)
	if err != nil {
		log.Error().Err(err).Str("room", roomID).Msg("Failed to retrieve chat history")
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messages)
}
