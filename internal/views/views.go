// Package views holds the client's three screens: landing, first note, and
// the notes list. Views keep their state in memory; the only thing that
// outlives a view is the hash.
package views

import (
	"context"
	"errors"
	"strings"

	"hashnotes/internal/models"
)

var (
	// ErrEmptyHash is returned by Landing when nothing usable was entered.
	ErrEmptyHash = errors.New("enter your unique hash")
	// ErrNoHash means the server accepted the first note but sent no hash back.
	ErrNoHash = errors.New("no hash returned from the server")
)

// API is the subset of the HTTP client the views call.
type API interface {
	CreateFirstNote(ctx context.Context, title, text string) (*models.NewUserNoteResponse, error)
	GetNotes(ctx context.Context, hash string) ([]models.Note, error)
	AddNote(ctx context.Context, hash, title, text string) (int64, error)
}

// HashSaver is the durable client-side storage for the last created hash.
type HashSaver interface {
	SaveHash(hash string) error
}

// Landing validates what the user typed and returns the hash to open the
// notes view with. The server is not consulted.
func Landing(input string) (string, error) {
	if strings.TrimSpace(input) == "" {
		return "", ErrEmptyHash
	}
	return input, nil
}

// FirstNoteResult is what the first-note view shows the user.
type FirstNoteResult struct {
	NoteID int64
	Hash   string
	// SaveErr is set when the hash could not be written to local storage.
	// The hash is still valid and must still be shown.
	SaveErr error
}

// FirstNote creates an account with its first note and stores the returned hash.
func FirstNote(ctx context.Context, api API, saver HashSaver, title, text string) (*FirstNoteResult, error) {
	resp, err := api.CreateFirstNote(ctx, title, text)
	if err != nil {
		return nil, err
	}
	if resp == nil || resp.Hash == "" {
		return nil, ErrNoHash
	}

	res := &FirstNoteResult{NoteID: resp.ID, Hash: resp.Hash}
	if saver != nil {
		res.SaveErr = saver.SaveHash(resp.Hash)
	}
	return res, nil
}

// Notes is the notes list for one hash plus its add-note form.
type Notes struct {
	api   API
	hash  string
	notes []models.Note
}

// OpenNotes loads the notes view for hash.
func OpenNotes(ctx context.Context, api API, hash string) (*Notes, error) {
	notes, err := api.GetNotes(ctx, hash)
	if err != nil {
		return nil, err
	}
	return &Notes{api: api, hash: hash, notes: notes}, nil
}

func (v *Notes) Hash() string { return v.hash }

// List returns the notes currently rendered by the view.
func (v *Notes) List() []models.Note {
	out := make([]models.Note, len(v.notes))
	copy(out, v.notes)
	return out
}

// Add submits a note and appends it to the local list using the submitted
// title and text with the server-assigned ID. The list is not re-fetched.
func (v *Notes) Add(ctx context.Context, title, text string) (models.Note, error) {
	id, err := v.api.AddNote(ctx, v.hash, title, text)
	if err != nil {
		return models.Note{}, err
	}
	n := models.Note{ID: id, Title: title, Text: text}
	v.notes = append(v.notes, n)
	return n, nil
}
