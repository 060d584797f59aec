package storage

import (
	"context"
	"errors"

	"github.com/snipnote/snipnote/internal/models"
)

// ErrNotFound is returned when a note id does not exist or belongs to a
// different user.
var ErrNotFound = errors.New("note not found")

// NoteStorage is the persistence contract of the reference backend. Create
// assigns the id and both timestamps; Update bumps UpdatedAt.
type NoteStorage interface {
	ListByUser(ctx context.Context, userID string) ([]models.Note, error)
	Get(ctx context.Context, id string) (models.Note, error)
	Create(ctx context.Context, note models.Note) (models.Note, error)
	Update(ctx context.Context, note models.Note) (models.Note, error)
	Delete(ctx context.Context, id string) error
	Close() error
}
