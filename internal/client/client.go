// Package client talks to the notes HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"hashnotes/internal/models"
)

// ErrNotFound is returned when the server does not know the hash.
var ErrNotFound = errors.New("user not found")

// NetworkError wraps a transport failure between client and server.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string { return "network error: " + e.Err.Error() }
func (e *NetworkError) Unwrap() error { return e.Err }

// APIError is a non-success response other than 404.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d", e.StatusCode)
	}
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CreateFirstNote creates an account with its first note.
func (c *Client) CreateFirstNote(ctx context.Context, title, text string) (*models.NewUserNoteResponse, error) {
	var resp models.NewUserNoteResponse
	if err := c.do(ctx, http.MethodPost, "/new-user-note", models.NewUserNoteRequest{Title: title, Text: text}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) GetNotes(ctx context.Context, hash string) ([]models.Note, error) {
	var resp models.NotesResponse
	if err := c.do(ctx, http.MethodGet, "/notes/"+url.PathEscape(hash), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Notes, nil
}

// AddNote stores a note under hash and returns its server-assigned ID.
func (c *Client) AddNote(ctx context.Context, hash, title, text string) (int64, error) {
	var resp models.AddNoteResponse
	if err := c.do(ctx, http.MethodPost, "/notes", models.AddNoteRequest{Title: title, Text: text, Hash: hash}, &resp); err != nil {
		return 0, err
	}
	return resp.ID, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e models.ErrorResponse
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		if json.Unmarshal(data, &e) != nil || e.Error == "" {
			e.Error = strings.TrimSpace(string(data))
		}
		return &APIError{StatusCode: resp.StatusCode, Message: e.Error}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
