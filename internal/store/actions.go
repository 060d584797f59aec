package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/snipnote/snipnote/internal/clipboard"
	"github.com/snipnote/snipnote/internal/models"
	"github.com/snipnote/snipnote/internal/policy"
)

// FetchNotes replaces the collection with the backend's full note set for the
// current user and focuses the first note of the freshly derived view.
func (s *Store) FetchNotes(ctx context.Context) error {
	s.mu.Lock()
	if s.user == nil || s.user.ID == "" {
		s.mu.Unlock()
		s.notifier.Error("User not found. Cannot fetch notes.")
		return ErrUnauthenticated
	}
	userID := s.user.ID
	s.isLoading = true
	s.publishLocked()
	s.mu.Unlock()

	fetched, err := s.svc.List(ctx, userID)

	s.mu.Lock()
	s.isLoading = false
	if err != nil {
		s.publishLocked()
		s.mu.Unlock()
		s.logger.Error("Failed to fetch notes", zap.Error(err), zap.String("user_id", userID))
		s.notifier.Error("Failed to load notes. Please try again.")
		return fmt.Errorf("failed to fetch notes: %w", err)
	}

	s.notes = make(map[string]models.Note, len(fetched))
	s.order = s.order[:0]
	for _, n := range fetched {
		if n.ID == "" {
			continue
		}
		if _, seen := s.notes[n.ID]; !seen {
			s.order = append(s.order, n.ID)
		}
		s.notes[n.ID] = n
	}
	s.selected = make(map[string]struct{})
	s.rev++

	view := s.filteredLocked()
	if len(view) > 0 {
		first := view[0]
		s.currentNote = &first
	} else {
		s.currentNote = nil
	}
	s.publishLocked()
	s.mu.Unlock()
	return nil
}

// CreateNote persists a draft and, once the backend acknowledges it, inserts
// the authoritative record and focuses it.
func (s *Store) CreateNote(ctx context.Context, draft models.Note) (models.Note, error) {
	s.mu.Lock()
	userID := ""
	if s.user != nil {
		userID = s.user.ID
	}
	s.mu.Unlock()

	created, err := s.svc.Create(ctx, draft, userID)
	if err != nil {
		s.logger.Error("Failed to create note", zap.Error(err), zap.String("user_id", userID))
		s.notifier.Error("Failed to create note.")
		return models.Note{}, err
	}

	s.mu.Lock()
	s.insertLocked(created)
	current := created
	s.currentNote = &current
	s.publishLocked()
	s.mu.Unlock()

	s.notifier.Success("New Note Created!")
	return created, nil
}

// UpdateNote saves the note. A note without an id is an unsaved placeholder
// and is promoted through CreateNote; anything else must already be in the
// collection. The store entry and, when focused, the current note are
// replaced with the backend's authoritative response.
func (s *Store) UpdateNote(ctx context.Context, note models.Note) (models.Note, error) {
	if !note.Saved() {
		return s.CreateNote(ctx, note)
	}

	s.mu.Lock()
	if _, exists := s.notes[note.ID]; !exists {
		s.mu.Unlock()
		return models.Note{}, fmt.Errorf("cannot update note %s: %w", note.ID, ErrNoteNotFound)
	}
	s.mu.Unlock()

	saved, err := s.svc.Update(ctx, note)
	if err != nil {
		s.logger.Error("Failed to update note", zap.Error(err), zap.String("note_id", note.ID))
		s.notifier.Error("Failed to update note.")
		return models.Note{}, err
	}

	s.applySaved(saved)
	s.notifier.Success("Note Updated!")
	return saved, nil
}

// ToggleFlag flips the named flag. The toggled value is computed from the
// local copy, but the value stored afterwards always comes from the backend
// response, so two racing toggles resolve to last response wins.
func (s *Store) ToggleFlag(ctx context.Context, noteID string, flag models.ToggleFlag) error {
	s.mu.Lock()
	note, exists := s.notes[noteID]
	if !exists {
		s.mu.Unlock()
		return fmt.Errorf("cannot update flag of note %s: %w", noteID, ErrNoteNotFound)
	}
	current, err := note.Flag(flag)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()

	saved, err := s.svc.UpdateFlag(ctx, noteID, flag, !current)
	if err != nil {
		s.logger.Error("Failed to update note flag",
			zap.Error(err),
			zap.String("note_id", noteID),
			zap.String("flag", string(flag)))
		s.notifier.Error("Failed to update note flag.")
		return err
	}

	s.applySaved(saved)

	state := "Disabled"
	if v, ferr := saved.Flag(flag); ferr == nil && v {
		state = "Enabled"
	}
	s.notifier.Success(fmt.Sprintf("%s %s!", flag, state))
	return nil
}

// applySaved reconciles a backend response into the collection and, when the
// focused note matches, into the focus.
func (s *Store) applySaved(saved models.Note) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.insertLocked(saved)
	if s.currentNote != nil && s.currentNote.ID == saved.ID {
		current := saved
		s.currentNote = &current
	}
	s.publishLocked()
}

// DeleteNote removes the focused note. Deleting is only defined relative to
// the focus: a missing or mismatched current note is a desynchronization bug
// and fails before any network call. An unsaved focused note is discarded
// locally without calling the backend.
func (s *Store) DeleteNote(ctx context.Context, noteID string) error {
	s.mu.Lock()
	if s.currentNote == nil {
		s.mu.Unlock()
		return ErrNoCurrentNote
	}
	if !s.currentNote.Saved() {
		s.currentNote = nil
		s.publishLocked()
		s.mu.Unlock()
		s.notifier.Info("Note deleted!")
		return nil
	}
	if s.currentNote.ID != noteID {
		s.mu.Unlock()
		return fmt.Errorf("cannot delete note %s: %w", noteID, ErrCurrentNoteMismatch)
	}
	s.mu.Unlock()

	if err := s.svc.Delete(ctx, noteID); err != nil {
		s.logger.Error("Failed to delete note", zap.Error(err), zap.String("note_id", noteID))
		s.notifier.Error("Failed to delete note.")
		return err
	}

	s.mu.Lock()
	s.removeLocked(noteID)
	if s.currentNote != nil && s.currentNote.ID == noteID {
		s.currentNote = nil
	}
	s.publishLocked()
	s.mu.Unlock()

	s.notifier.Info("Note deleted!")
	return nil
}

// SetSearchQuery changes the search query and re-derives the view. Focus is
// kept unless the focused note dropped out of the view.
func (s *Store) SetSearchQuery(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.searchQuery == query {
		return
	}
	s.searchQuery = query
	s.rev++
	s.reanchorLocked()
	s.publishLocked()
}

// SortBy changes the sort key and re-derives the view. Focus follows the
// same policy as SetSearchQuery.
func (s *Store) SortBy(key policy.SortKey) error {
	if !key.Valid() {
		return fmt.Errorf("unknown sort key %q", key)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sortKey == key {
		return nil
	}
	s.sortKey = key
	s.rev++
	s.reanchorLocked()
	s.publishLocked()
	return nil
}

// NewNote focuses a fresh unsaved placeholder. The placeholder joins the
// authoritative collection only after its first save.
func (s *Store) NewNote() models.Note {
	draft := models.NewDraft()
	s.mu.Lock()
	current := draft
	s.currentNote = &current
	s.publishLocked()
	s.mu.Unlock()
	return draft
}

// OpenNote is the list-selection interaction: a note with one-click copy
// enabled is copied to the clipboard instead of being focused for editing.
func (s *Store) OpenNote(id string) error {
	s.mu.Lock()
	note, exists := s.notes[id]
	if !exists {
		s.mu.Unlock()
		return fmt.Errorf("cannot open note %s: %w", id, ErrNoteNotFound)
	}
	if note.OneClickCopy && s.copier != nil {
		s.mu.Unlock()
		if err := s.copier.Copy(clipboard.PlainText(note.Content)); err != nil {
			s.logger.Error("Failed to copy note", zap.Error(err), zap.String("note_id", id))
			s.notifier.Error("Failed to copy note.")
			return err
		}
		s.notifier.Success("Copied to clipboard!")
		return nil
	}
	current := note
	s.currentNote = &current
	s.publishLocked()
	s.mu.Unlock()
	return nil
}

// Select adds the note to the bulk-operation selection. Only notes present
// in the collection can be selected; the call is idempotent.
func (s *Store) Select(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.notes[id]; !exists {
		return fmt.Errorf("cannot select note %s: %w", id, ErrNoteNotFound)
	}
	s.selected[id] = struct{}{}
	s.publishLocked()
	return nil
}

// Deselect removes the note from the selection. Idempotent.
func (s *Store) Deselect(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.selected, id)
	s.publishLocked()
}

// IsSelected reports selection membership.
func (s *Store) IsSelected(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.selected[id]
	return ok
}

// SelectedIDs returns the selected ids in deterministic order.
func (s *Store) SelectedIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.selected))
	for id := range s.selected {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ClearSelection empties the selection.
func (s *Store) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.selected) == 0 {
		return
	}
	s.selected = make(map[string]struct{})
	s.publishLocked()
}

// DeleteSelected deletes every selected note with one concurrent backend call
// per id. Partial failure applies eagerly: ids whose delete succeeded are
// removed from the collection and the selection, failed ones stay, and the
// whole operation surfaces as a single aggregated error.
func (s *Store) DeleteSelected(ctx context.Context) error {
	s.mu.Lock()
	if len(s.selected) == 0 {
		s.mu.Unlock()
		s.notifier.Error("No notes selected.")
		return ErrEmptySelection
	}
	ids := make([]string, 0, len(s.selected))
	for id := range s.selected {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	s.mu.Unlock()

	results := make([]error, len(ids))
	var wg sync.WaitGroup
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			results[i] = s.svc.Delete(ctx, id)
		}(i, id)
	}
	wg.Wait()

	var failed error
	s.mu.Lock()
	for i, id := range ids {
		if results[i] != nil {
			failed = multierr.Append(failed, fmt.Errorf("delete note %s: %w", id, results[i]))
			continue
		}
		s.removeLocked(id)
		if s.currentNote != nil && s.currentNote.ID == id {
			s.currentNote = nil
		}
	}
	s.publishLocked()
	s.mu.Unlock()

	if failed != nil {
		s.logger.Error("Failed to delete selected notes",
			zap.Error(failed),
			zap.Int("selected", len(ids)))
		s.notifier.Error("Failed to delete selected notes.")
		return failed
	}
	s.notifier.Info(fmt.Sprintf("%d notes deleted!", len(ids)))
	return nil
}
