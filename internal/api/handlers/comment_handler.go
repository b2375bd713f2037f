package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/hwigle/reactStudy/internal/auth"
	"github.com/hwigle/reactStudy/internal/services"
	"github.com/rs/zerolog/log"
)

// CommentHandler handles HTTP requests for comments.
type CommentHandler struct {
	service services.CommentServiceProvider
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(service services.CommentServiceProvider) *CommentHandler {
	return &CommentHandler{service: service}
}

// CommentPayload defines the structure for comment creation requests.
type CommentPayload struct {
	Content string `json:"content"`
}

// GetForBoard handles listing all comments of a board post.
func (h *CommentHandler) GetForBoard(w http.ResponseWriter, r *http.Request) {
	id, err := boardID(r)
	if err != nil {
		http.Error(w, "Invalid board id", http.StatusBadRequest)
		return
	}

	comments, err := h.service.ListForBoard(id)
	if err != nil {
		log.Error().Err(err).Int64("board_id", id).Msg("Failed to list comments")
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, comments)
}

// Create handles attaching a new comment to a board post.
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	id, err := boardID(r)
	if err != nil {
		http.Error(w, "Invalid board id", http.StatusBadRequest)
		return
	}

	var payload CommentPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if payload.Content == "" {
		http.Error(w, "Content is required", http.StatusBadRequest)
		return
	}

	comment, err := h.service.Create(auth.PrincipalFrom(r.Context()), id, payload.Content)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, comment)
}

// Delete handles deleting a comment; only the owner may do so.
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "commentId"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid comment id", http.StatusBadRequest)
		return
	}

	if err := h.service.Delete(auth.PrincipalFrom(r.Context()), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
