package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/snipnote/snipnote/internal/models"
	"github.com/snipnote/snipnote/internal/storage"
)

// ListNotesHandler returns every note of the authenticated user.
func (s *Server) ListNotesHandler(w http.ResponseWriter, r *http.Request) {
	userID := userFrom(r.Context())

	notes, err := s.store.ListByUser(r.Context(), userID)
	if err != nil {
		s.logger.Error("Failed to list notes", zap.Error(err), zap.String("user_id", userID))
		http.Error(w, "Failed to list notes", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, notes)
}

// CreateNoteHandler creates a note owned by the authenticated user. Content
// is sanitized before it is persisted.
func (s *Server) CreateNoteHandler(w http.ResponseWriter, r *http.Request) {
	userID := userFrom(r.Context())

	var req struct {
		Title    string          `json:"title"`
		Content  string          `json:"content"`
		ListType models.ListType `json:"listType"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	note := models.Note{
		UserID:   userID,
		Title:    req.Title,
		Content:  s.sanitizer.Sanitize(req.Content),
		ListType: req.ListType,
	}

	created, err := s.store.Create(r.Context(), note)
	if err != nil {
		s.logger.Error("Failed to create note", zap.Error(err), zap.String("user_id", userID))
		http.Error(w, "Failed to create note", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// UpdateNoteHandler replaces the editable fields of an owned note.
func (s *Server) UpdateNoteHandler(w http.ResponseWriter, r *http.Request) {
	userID := userFrom(r.Context())
	id := chi.URLParam(r, "id")

	var req struct {
		Title        string          `json:"title"`
		Content      string          `json:"content"`
		ListType     models.ListType `json:"listType"`
		OneClickCopy *bool           `json:"oneClickCopy"`
		CreatedAt    *time.Time      `json:"createdAt"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	existing, ok := s.ownedNote(w, r, id, userID)
	if !ok {
		return
	}

	existing.Title = req.Title
	existing.Content = s.sanitizer.Sanitize(req.Content)
	if req.ListType != "" {
		existing.ListType = req.ListType
	}
	if req.OneClickCopy != nil {
		existing.OneClickCopy = *req.OneClickCopy
	}

	updated, err := s.store.Update(r.Context(), existing)
	if err != nil {
		s.logger.Error("Failed to update note", zap.Error(err), zap.String("note_id", id))
		http.Error(w, "Failed to update note", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// UpdateNoteFlagHandler toggles a single recognized boolean flag on an owned
// note. Unknown flag names are a 400.
func (s *Server) UpdateNoteFlagHandler(w http.ResponseWriter, r *http.Request) {
	userID := userFrom(r.Context())
	id := chi.URLParam(r, "id")
	flag := models.ToggleFlag(chi.URLParam(r, "flagName"))

	if !flag.Valid() {
		http.Error(w, "Invalid flag name", http.StatusBadRequest)
		return
	}

	var req struct {
		Value *bool `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Value == nil {
		http.Error(w, "Invalid flag value", http.StatusBadRequest)
		return
	}

	existing, ok := s.ownedNote(w, r, id, userID)
	if !ok {
		return
	}

	flagged, err := existing.WithFlag(flag, *req.Value)
	if err != nil {
		http.Error(w, "Invalid flag name", http.StatusBadRequest)
		return
	}

	updated, err := s.store.Update(r.Context(), flagged)
	if err != nil {
		s.logger.Error("Failed to update note flag",
			zap.Error(err),
			zap.String("note_id", id),
			zap.String("flag", string(flag)))
		http.Error(w, "Failed to update note flag", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// DeleteNoteHandler deletes an owned note.
func (s *Server) DeleteNoteHandler(w http.ResponseWriter, r *http.Request) {
	userID := userFrom(r.Context())
	id := chi.URLParam(r, "id")

	if _, ok := s.ownedNote(w, r, id, userID); !ok {
		return
	}

	if err := s.store.Delete(r.Context(), id); err != nil {
		s.logger.Error("Failed to delete note", zap.Error(err), zap.String("note_id", id))
		http.Error(w, "Failed to delete note", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ownedNote loads the note and enforces ownership, writing the error response
// itself when the note is missing or foreign. Foreign notes read as 404 so
// ids are not probeable.
func (s *Server) ownedNote(w http.ResponseWriter, r *http.Request, id, userID string) (models.Note, bool) {
	note, err := s.store.Get(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) || (err == nil && note.UserID != userID) {
		http.Error(w, "Note not found", http.StatusNotFound)
		return models.Note{}, false
	}
	if err != nil {
		s.logger.Error("Failed to load note", zap.Error(err), zap.String("note_id", id))
		http.Error(w, "Failed to load note", http.StatusInternalServerError)
		return models.Note{}, false
	}
	return note, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
