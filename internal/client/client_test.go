package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/snipnote/snipnote/internal/models"
)

type recordedRequest struct {
	method string
	path   string
	query  string
	auth   string
	body   map[string]any
}

func newTestClient(t *testing.T, status int, response any) (*Client, *recordedRequest) {
	t.Helper()
	rec := &recordedRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.method = r.Method
		rec.path = r.URL.Path
		rec.query = r.URL.RawQuery
		rec.auth = r.Header.Get("Authorization")
		if r.Body != nil {
			json.NewDecoder(r.Body).Decode(&rec.body)
		}
		w.WriteHeader(status)
		if response != nil {
			json.NewEncoder(w).Encode(response)
		}
	}))
	t.Cleanup(srv.Close)
	return New(srv.URL, zap.NewNop(), WithToken("secret")), rec
}

func TestList(t *testing.T) {
	want := []models.Note{{ID: "1", Title: "A"}, {ID: "2", Title: "B"}}
	c, rec := newTestClient(t, http.StatusOK, want)

	notes, err := c.List(context.Background(), "user-1")

	require.NoError(t, err)
	assert.Equal(t, "GET", rec.method)
	assert.Equal(t, "/notes", rec.path)
	assert.Equal(t, "userId=user-1", rec.query)
	assert.Equal(t, "Bearer secret", rec.auth)
	require.Len(t, notes, 2)
	assert.Equal(t, "1", notes[0].ID)
}

func TestCreate(t *testing.T) {
	created := models.Note{ID: "new-id", Title: "New Note", UserID: "user-1"}
	c, rec := newTestClient(t, http.StatusCreated, created)

	draft := models.NewDraft()
	draft.Content = "<p>hi</p>"
	got, err := c.Create(context.Background(), draft, "user-1")

	require.NoError(t, err)
	assert.Equal(t, "POST", rec.method)
	assert.Equal(t, "/notes", rec.path)
	assert.Equal(t, map[string]any{
		"title":    "New Note",
		"content":  "<p>hi</p>",
		"listType": "default",
		"userId":   "user-1",
	}, rec.body)
	assert.Equal(t, "new-id", got.ID)
}

func TestUpdate(t *testing.T) {
	note := models.Note{ID: "abc", Title: "Edited", ListType: models.ListTypeDefault}
	c, rec := newTestClient(t, http.StatusOK, note)

	got, err := c.Update(context.Background(), note)

	require.NoError(t, err)
	assert.Equal(t, "PUT", rec.method)
	assert.Equal(t, "/notes/abc", rec.path)
	assert.Equal(t, "Edited", rec.body["title"])
	assert.Equal(t, "Edited", got.Title)
}

func TestUpdateFlag(t *testing.T) {
	note := models.Note{ID: "abc", OneClickCopy: true}
	c, rec := newTestClient(t, http.StatusOK, note)

	got, err := c.UpdateFlag(context.Background(), "abc", models.FlagOneClickCopy, true)

	require.NoError(t, err)
	assert.Equal(t, "PUT", rec.method)
	assert.Equal(t, "/notes/abc/oneClickCopy", rec.path)
	assert.Equal(t, map[string]any{"value": true}, rec.body)
	assert.True(t, got.OneClickCopy)
}

func TestDelete(t *testing.T) {
	c, rec := newTestClient(t, http.StatusNoContent, nil)

	err := c.Delete(context.Background(), "abc")

	require.NoError(t, err)
	assert.Equal(t, "DELETE", rec.method)
	assert.Equal(t, "/notes/abc", rec.path)
}

func TestNonSuccessStatusBecomesStatusError(t *testing.T) {
	c, _ := newTestClient(t, http.StatusInternalServerError, map[string]string{"error": "boom"})

	_, err := c.List(context.Background(), "user-1")

	require.Error(t, err)
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusInternalServerError, statusErr.Code)
	assert.Contains(t, statusErr.Body, "boom")
}

func TestContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()
	c := New(srv.URL, zap.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := c.List(ctx, "user-1")
	require.Error(t, err)
}
