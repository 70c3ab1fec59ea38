package store

import (
	"context"
	"errors"

	"hashnotes/internal/models"
)

// ErrNotFound is returned when no account matches a hash.
var ErrNotFound = errors.New("user not found")

// Store defines the interface for all database operations
type Store interface {
	// CreateAccount inserts an account for hash together with its first
	// note and returns the note ID.
	CreateAccount(ctx context.Context, hash, title, text string) (int64, error)

	// GetNotes returns every note owned by the account for hash, in
	// insertion order.
	GetNotes(ctx context.Context, hash string) ([]models.Note, error)

	// AddNote appends a note to the account for hash and returns its ID.
	AddNote(ctx context.Context, hash, title, text string) (int64, error)

	Ping(ctx context.Context) error
	Close() error
}
