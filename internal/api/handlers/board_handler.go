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

// BoardHandler handles HTTP requests for board posts.
type BoardHandler struct {
	service services.BoardServiceProvider
}

// NewBoardHandler creates a new BoardHandler.
func NewBoardHandler(service services.BoardServiceProvider) *BoardHandler {
	return &BoardHandler{service: service}
}

// BoardPayload defines the structure for create and update requests.
type BoardPayload struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func boardID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "boardId"), 10, 64)
}

// GetAll handles the paginated board listing.
func (h *BoardHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	size, _ := strconv.Atoi(r.URL.Query().Get("size"))

	result, err := h.service.List(page, size)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list board posts")
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Get handles retrieving a single board post.
func (h *BoardHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := boardID(r)
	if err != nil {
		http.Error(w, "Invalid board id", http.StatusBadRequest)
		return
	}

	board, err := h.service.Get(id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, board)
}

// Create handles creating a new board post owned by the caller.
func (h *BoardHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload BoardPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if payload.Title == "" {
		http.Error(w, "Title is required", http.StatusBadRequest)
		return
	}

	board, err := h.service.Create(auth.PrincipalFrom(r.Context()), payload.Title, payload.Content)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create board post")
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, board)
}

// Update handles updating a board post; only the owner may do so.
func (h *BoardHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := boardID(r)
	if err != nil {
		http.Error(w, "Invalid board id", http.StatusBadRequest)
		return
	}

	var payload BoardPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	board, err := h.service.Update(auth.PrincipalFrom(r.Context()), id, payload.Title, payload.Content)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, board)
}

// Delete handles deleting a board post; only the owner may do so.
func (h *BoardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := boardID(r)
	if err != nil {
		http.Error(w, "Invalid board id", http.StatusBadRequest)
		return
	}

	if err := h.service.Delete(auth.PrincipalFrom(r.Context()), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
