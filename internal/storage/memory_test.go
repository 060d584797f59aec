package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snipnote/snipnote/internal/models"
)

func TestMemoryStorage_CreateAssignsIDAndTimestamps(t *testing.T) {
	s := NewMemoryStorage()
	defer s.Close()

	created, err := s.Create(context.Background(), models.Note{
		UserID:  "user-1",
		Title:   "A",
		Content: "<p>a</p>",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)
	assert.Equal(t, models.ListTypeDefault, created.ListType)
}

func TestMemoryStorage_ListByUserScopes(t *testing.T) {
	s := NewMemoryStorage()
	defer s.Close()
	ctx := context.Background()

	_, err := s.Create(ctx, models.Note{UserID: "user-1", Title: "mine"})
	require.NoError(t, err)
	_, err = s.Create(ctx, models.Note{UserID: "user-2", Title: "theirs"})
	require.NoError(t, err)

	notes, err := s.ListByUser(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "mine", notes[0].Title)
}

func TestMemoryStorage_UpdatePreservesOwnerAndCreatedAt(t *testing.T) {
	s := NewMemoryStorage()
	defer s.Close()
	ctx := context.Background()

	created, err := s.Create(ctx, models.Note{UserID: "user-1", Title: "before"})
	require.NoError(t, err)

	edited := created
	edited.Title = "after"
	edited.UserID = "intruder"

	updated, err := s.Update(ctx, edited)
	require.NoError(t, err)
	assert.Equal(t, "after", updated.Title)
	assert.Equal(t, "user-1", updated.UserID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.False(t, updated.UpdatedAt.Before(created.UpdatedAt))
}

func TestMemoryStorage_NotFound(t *testing.T) {
	s := NewMemoryStorage()
	defer s.Close()
	ctx := context.Background()

	_, err := s.Get(ctx, "ghost")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.Update(ctx, models.Note{ID: "ghost"})
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, s.Delete(ctx, "ghost"), ErrNotFound)
}

func TestMemoryStorage_Delete(t *testing.T) {
	s := NewMemoryStorage()
	defer s.Close()
	ctx := context.Background()

	created, err := s.Create(ctx, models.Note{UserID: "user-1"})
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, created.ID))
	_, err = s.Get(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
