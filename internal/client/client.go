// Package client is the HTTP client for the notes backend. It wraps the five
// REST operations the store depends on and translates non-2xx responses into
// errors; it performs no retries and holds no state beyond the connection.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/snipnote/snipnote/internal/models"
)

// StatusError reports a non-2xx response from the backend.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend returned status %d: %s", e.Code, e.Body)
}

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *zap.Logger
}

type Option func(*Client)

// WithHTTPClient overrides the underlying http.Client, mainly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithToken sets the bearer token attached to every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

func New(baseURL string, logger *zap.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// List returns every note belonging to the user.
func (c *Client) List(ctx context.Context, userID string) ([]models.Note, error) {
	endpoint := fmt.Sprintf("%s/notes?userId=%s", c.baseURL, url.QueryEscape(userID))
	var notes []models.Note
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &notes); err != nil {
		return nil, fmt.Errorf("failed to fetch notes: %w", err)
	}
	return notes, nil
}

// Create persists a draft for the given user and returns the authoritative
// record, with backend-assigned id and timestamps.
func (c *Client) Create(ctx context.Context, draft models.Note, userID string) (models.Note, error) {
	payload := map[string]any{
		"title":    draft.Title,
		"content":  draft.Content,
		"listType": draft.ListType,
		"userId":   userID,
	}
	var created models.Note
	if err := c.do(ctx, http.MethodPost, c.baseURL+"/notes", payload, &created); err != nil {
		return models.Note{}, fmt.Errorf("failed to create note: %w", err)
	}
	return created, nil
}

// Update replaces the persisted note and returns the backend's copy.
func (c *Client) Update(ctx context.Context, note models.Note) (models.Note, error) {
	endpoint := fmt.Sprintf("%s/notes/%s", c.baseURL, url.PathEscape(note.ID))
	var updated models.Note
	if err := c.do(ctx, http.MethodPut, endpoint, note, &updated); err != nil {
		return models.Note{}, fmt.Errorf("failed to update note: %w", err)
	}
	return updated, nil
}

// UpdateFlag sets a single toggle flag on the note through the dedicated
// endpoint and returns the backend's copy.
func (c *Client) UpdateFlag(ctx context.Context, noteID string, flag models.ToggleFlag, value bool) (models.Note, error) {
	endpoint := fmt.Sprintf("%s/notes/%s/%s", c.baseURL, url.PathEscape(noteID), url.PathEscape(string(flag)))
	payload := map[string]bool{"value": value}
	var updated models.Note
	if err := c.do(ctx, http.MethodPut, endpoint, payload, &updated); err != nil {
		return models.Note{}, fmt.Errorf("failed to update note flag: %w", err)
	}
	return updated, nil
}

// Delete removes the persisted note.
func (c *Client) Delete(ctx context.Context, noteID string) error {
	endpoint := fmt.Sprintf("%s/notes/%s", c.baseURL, url.PathEscape(noteID))
	if err := c.do(ctx, http.MethodDelete, endpoint, nil, nil); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Request failed",
			zap.Error(err),
			zap.String("method", method),
			zap.String("endpoint", endpoint))
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Warn("Backend rejected request",
			zap.Int("status", resp.StatusCode),
			zap.String("method", method),
			zap.String("endpoint", endpoint))
		return &StatusError{Code: resp.StatusCode, Body: string(bytes.TrimSpace(data))}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
