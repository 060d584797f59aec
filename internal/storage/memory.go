package storage

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/snipnote/snipnote/internal/models"
)

// MemoryStorage keeps notes in a map. Used by tests and local development.
type MemoryStorage struct {
	mu    sync.RWMutex
	notes map[string]models.Note
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		notes: make(map[string]models.Note),
	}
}

func (s *MemoryStorage) ListByUser(ctx context.Context, userID string) ([]models.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	notes := make([]models.Note, 0)
	for _, note := range s.notes {
		if note.UserID == userID {
			notes = append(notes, note)
		}
	}
	return notes, nil
}

func (s *MemoryStorage) Get(ctx context.Context, id string) (models.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if note, exists := s.notes[id]; exists {
		return note, nil
	}
	return models.Note{}, ErrNotFound
}

func (s *MemoryStorage) Create(ctx context.Context, note models.Note) (models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	note.ID = uuid.New().String()
	note.CreatedAt = now
	note.UpdatedAt = now
	if note.ListType == "" {
		note.ListType = models.ListTypeDefault
	}
	s.notes[note.ID] = note
	return note, nil
}

func (s *MemoryStorage) Update(ctx context.Context, note models.Note) (models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.notes[note.ID]
	if !exists {
		return models.Note{}, ErrNotFound
	}

	note.UserID = existing.UserID
	note.CreatedAt = existing.CreatedAt
	note.UpdatedAt = time.Now().UTC()
	s.notes[note.ID] = note
	return note, nil
}

func (s *MemoryStorage) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.notes[id]; !exists {
		return ErrNotFound
	}
	delete(s.notes, id)
	return nil
}

func (s *MemoryStorage) Close() error {
	// Nothing to close for in-memory storage
	return nil
}
