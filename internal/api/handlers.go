package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"hashnotes/internal/middleware"
	"hashnotes/internal/models"
	"hashnotes/internal/store"
	"hashnotes/internal/token"

	"github.com/go-chi/chi/v5"
)

const userNotFound = "User not found"

// Handlers serves the notes API on top of a Store.
type Handlers struct {
	store    store.Store
	logger   *slog.Logger
	newToken func() (string, error)
}

func NewHandlers(s store.Store, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{
		store:    s,
		logger:   logger,
		newToken: token.New,
	}
}

func (h *Handlers) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Warn("write response", "request_id", middleware.GetRequestID(r.Context()), "error", err)
	}
}

func (h *Handlers) writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	h.writeJSON(w, r, status, models.ErrorResponse{Error: msg})
}

// storeError logs err and maps it to a 404 or 500 response.
func (h *Handlers) storeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	reqID := middleware.GetRequestID(r.Context())
	if errors.Is(err, store.ErrNotFound) {
		h.logger.Info(op+": user not found", "request_id", reqID)
		h.writeError(w, r, http.StatusNotFound, userNotFound)
		return
	}
	h.logger.Error(op+" failed", "request_id", reqID, "error", err)
	h.writeError(w, r, http.StatusInternalServerError, err.Error())
}

// NewUserNoteHandler creates an account with its first note and returns the
// new hash.
func (h *Handlers) NewUserNoteHandler(w http.ResponseWriter, r *http.Request) {
	var req models.NewUserNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	hash, err := h.newToken()
	if err != nil {
		h.storeError(w, r, "new user note", err)
		return
	}

	id, err := h.store.CreateAccount(r.Context(), hash, req.Title, req.Text)
	if err != nil {
		h.storeError(w, r, "new user note", err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, models.NewUserNoteResponse{ID: id, Hash: hash})
}

func (h *Handlers) AddNoteHandler(w http.ResponseWriter, r *http.Request) {
	var req models.AddNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	id, err := h.store.AddNote(r.Context(), req.Hash, req.Title, req.Text)
	if err != nil {
		h.storeError(w, r, "add note", err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, models.AddNoteResponse{ID: id})
}

func (h *Handlers) GetNotesHandler(w http.ResponseWriter, r *http.Request) {
	hash := chi.URLParam(r, "hash")
	// chi routes on RawPath when it is set, leaving the param still escaped.
	if r.URL.RawPath != "" {
		unescaped, err := url.PathUnescape(hash)
		if err != nil {
			h.writeError(w, r, http.StatusNotFound, userNotFound)
			return
		}
		hash = unescaped
	}

	notes, err := h.store.GetNotes(r.Context(), hash)
	if err != nil {
		h.storeError(w, r, "get notes", err)
		return
	}
	if notes == nil {
		notes = []models.Note{}
	}

	h.writeJSON(w, r, http.StatusOK, models.NotesResponse{Notes: notes})
}

func (h *Handlers) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		h.logger.Error("health check failed", "error", err)
		h.writeError(w, r, http.StatusServiceUnavailable, err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
