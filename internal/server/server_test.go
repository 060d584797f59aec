package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/snipnote/snipnote/internal/models"
	"github.com/snipnote/snipnote/internal/storage"
)

func newTestServer(t *testing.T) (*httptest.Server, *storage.MemoryStorage) {
	t.Helper()
	store := storage.NewMemoryStorage()
	auth := NewTokenAuth(map[string]string{
		"alice-token": "alice",
		"bob-token":   "bob",
	})
	srv := New(":0", store, auth, zap.NewNop())
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts, store
}

func doRequest(t *testing.T, method, url, token string, body any) *http.Response {
	t.Helper()
	var payload *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		payload = bytes.NewReader(data)
	} else {
		payload = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, url, payload)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeNote(t *testing.T, resp *http.Response) models.Note {
	t.Helper()
	defer resp.Body.Close()
	var note models.Note
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&note))
	return note
}

func TestAuthRequired(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := doRequest(t, http.MethodGet, ts.URL+"/notes", "", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = doRequest(t, http.MethodGet, ts.URL+"/notes", "wrong-token", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCreateNote_SanitizesContent(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := doRequest(t, http.MethodPost, ts.URL+"/notes", "alice-token", map[string]any{
		"title":    "New Note",
		"content":  `<p>hello</p><script>alert("x")</script>`,
		"listType": "default",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	note := decodeNote(t, resp)

	assert.NotEmpty(t, note.ID)
	assert.Equal(t, "alice", note.UserID)
	assert.Contains(t, note.Content, "<p>hello</p>")
	assert.NotContains(t, note.Content, "<script>")
	assert.False(t, note.CreatedAt.IsZero())
}

func TestListNotes_ScopedToAuthenticatedUser(t *testing.T) {
	ts, store := newTestServer(t)
	ctx := context.Background()
	_, err := store.Create(ctx, models.Note{UserID: "alice", Title: "mine"})
	require.NoError(t, err)
	_, err = store.Create(ctx, models.Note{UserID: "bob", Title: "theirs"})
	require.NoError(t, err)

	resp := doRequest(t, http.MethodGet, ts.URL+"/notes", "alice-token", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()

	var notes []models.Note
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&notes))
	require.Len(t, notes, 1)
	assert.Equal(t, "mine", notes[0].Title)
}

func TestUpdateNote(t *testing.T) {
	ts, store := newTestServer(t)
	created, err := store.Create(context.Background(), models.Note{UserID: "alice", Title: "before"})
	require.NoError(t, err)

	resp := doRequest(t, http.MethodPut, ts.URL+"/notes/"+created.ID, "alice-token", map[string]any{
		"title":    "after",
		"content":  "<p>edited</p>",
		"listType": "default",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	note := decodeNote(t, resp)

	assert.Equal(t, "after", note.Title)
	assert.Equal(t, created.CreatedAt, note.CreatedAt)
}

func TestUpdateNote_ForeignNoteReads404(t *testing.T) {
	ts, store := newTestServer(t)
	created, err := store.Create(context.Background(), models.Note{UserID: "bob", Title: "theirs"})
	require.NoError(t, err)

	resp := doRequest(t, http.MethodPut, ts.URL+"/notes/"+created.ID, "alice-token", map[string]any{
		"title": "stolen",
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUpdateNoteFlag(t *testing.T) {
	ts, store := newTestServer(t)
	created, err := store.Create(context.Background(), models.Note{UserID: "alice", Title: "A"})
	require.NoError(t, err)

	resp := doRequest(t, http.MethodPut, ts.URL+"/notes/"+created.ID+"/oneClickCopy", "alice-token",
		map[string]any{"value": true})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	note := decodeNote(t, resp)
	assert.True(t, note.OneClickCopy)
}

func TestUpdateNoteFlag_UnknownFlagIs400(t *testing.T) {
	ts, store := newTestServer(t)
	created, err := store.Create(context.Background(), models.Note{UserID: "alice", Title: "A"})
	require.NoError(t, err)

	resp := doRequest(t, http.MethodPut, ts.URL+"/notes/"+created.ID+"/pinned", "alice-token",
		map[string]any{"value": true})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUpdateNoteFlag_MissingValueIs400(t *testing.T) {
	ts, store := newTestServer(t)
	created, err := store.Create(context.Background(), models.Note{UserID: "alice", Title: "A"})
	require.NoError(t, err)

	resp := doRequest(t, http.MethodPut, ts.URL+"/notes/"+created.ID+"/oneClickCopy", "alice-token",
		map[string]any{})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDeleteNote(t *testing.T) {
	ts, store := newTestServer(t)
	ctx := context.Background()
	created, err := store.Create(ctx, models.Note{UserID: "alice", Title: "doomed"})
	require.NoError(t, err)

	resp := doRequest(t, http.MethodDelete, ts.URL+"/notes/"+created.ID, "alice-token", nil)
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	_, err = store.Get(ctx, created.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDeleteNote_Missing(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := doRequest(t, http.MethodDelete, ts.URL+"/notes/ghost", "alice-token", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
