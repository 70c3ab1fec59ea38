package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"hashnotes/internal/models"
	"hashnotes/internal/store"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// DBType represents the type of database
type DBType string

const (
	SQLite   DBType = "sqlite3"
	Postgres DBType = "postgres"
)

// busyTimeoutMillis bounds how long SQLite waits on a lock held by another process.
const busyTimeoutMillis = 5000

// SQLStore implements the Store interface for SQL databases
type SQLStore struct {
	db     *sql.DB
	dbType DBType
}

var _ store.Store = (*SQLStore)(nil)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// New creates a new SQLStore with the given driver and connection string
func New(driver, connStr string) (*SQLStore, error) {
	dbType := DBType(driver)
	switch dbType {
	case SQLite:
		if err := ensureDir(connStr); err != nil {
			return nil, err
		}
	case Postgres:
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	dsn := connStr
	if dbType == SQLite {
		dsn = sqliteDSN(connStr)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}

	s := &SQLStore{
		db:     db,
		dbType: dbType,
	}

	if dbType == SQLite {
		// A single connection serializes every statement, and keeps
		// ":memory:" databases alive for the life of the store.
		db.SetMaxOpenConns(1)
	}

	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	if err := s.initSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// sqliteDSN sets the driver's busy timeout on every connection it opens,
// unless the caller already chose one (_busy_timeout or its _timeout alias).
func sqliteDSN(connStr string) string {
	if strings.Contains(connStr, "_timeout=") {
		return connStr
	}
	sep := "?"
	if strings.Contains(connStr, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%s_busy_timeout=%d", connStr, sep, busyTimeoutMillis)
}

// ensureDir creates the parent directory of a plain SQLite file path.
func ensureDir(connStr string) error {
	path, _, _ := strings.Cut(connStr, "?")
	if path == ":memory:" || strings.HasPrefix(path, "file:") {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create database directory: %w", err)
	}
	return nil
}

// rebind converts ? placeholders to $1, $2, etc. for PostgreSQL
func (s *SQLStore) rebind(query string) string {
	if s.dbType == SQLite {
		return query
	}
	var result strings.Builder
	argNum := 1
	for _, c := range query {
		if c == '?' {
			result.WriteString(fmt.Sprintf("$%d", argNum))
			argNum++
		} else {
			result.WriteRune(c)
		}
	}
	return result.String()
}

func (s *SQLStore) initSchema(ctx context.Context) error {
	var createUsersTable, createNotesTable string

	if s.dbType == Postgres {
		createUsersTable = `
		CREATE TABLE IF NOT EXISTS users (
			user_id SERIAL PRIMARY KEY,
			hash TEXT UNIQUE
		);`

		createNotesTable = `
		CREATE TABLE IF NOT EXISTS notes (
			id SERIAL PRIMARY KEY,
			user_id INTEGER REFERENCES users(user_id),
			title TEXT,
			text TEXT
		);`
	} else {
		createUsersTable = `
		CREATE TABLE IF NOT EXISTS users (
			user_id INTEGER PRIMARY KEY AUTOINCREMENT,
			hash TEXT UNIQUE
		);`

		createNotesTable = `
		CREATE TABLE IF NOT EXISTS notes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER,
			title TEXT,
			text TEXT,
			FOREIGN KEY(user_id) REFERENCES users(user_id)
		);`
	}

	for _, stmt := range []string{createUsersTable, createNotesTable} {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}

func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

// insert runs an INSERT and returns the generated key in column idCol.
func (s *SQLStore) insert(ctx context.Context, q querier, query, idCol string, args ...any) (int64, error) {
	if s.dbType == Postgres {
		var id int64
		err := q.QueryRowContext(ctx, s.rebind(query+" RETURNING "+idCol), args...).Scan(&id)
		return id, err
	}
	result, err := q.ExecContext(ctx, s.rebind(query), args...)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

func (s *SQLStore) account(ctx context.Context, q querier, hash string) (models.Account, error) {
	acct := models.Account{Hash: hash}
	err := q.QueryRowContext(ctx, s.rebind("SELECT user_id FROM users WHERE hash = ?"), hash).Scan(&acct.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return acct, store.ErrNotFound
	}
	if err != nil {
		return acct, fmt.Errorf("look up user: %w", err)
	}
	return acct, nil
}

// withTx runs fn inside a transaction, committing only if fn succeeds.
func (s *SQLStore) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Account functions
func (s *SQLStore) CreateAccount(ctx context.Context, hash, title, text string) (int64, error) {
	var noteID int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		userID, err := s.insert(ctx, tx, "INSERT INTO users (hash) VALUES (?)", "user_id", hash)
		if err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		noteID, err = s.insert(ctx, tx, "INSERT INTO notes (user_id, title, text) VALUES (?, ?, ?)", "id", userID, title, text)
		if err != nil {
			return fmt.Errorf("create note: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return noteID, nil
}

// Note functions
func (s *SQLStore) GetNotes(ctx context.Context, hash string) ([]models.Note, error) {
	acct, err := s.account(ctx, s.db, hash)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, s.rebind("SELECT id, COALESCE(title, ''), COALESCE(text, '') FROM notes WHERE user_id = ? ORDER BY id ASC"), acct.ID)
	if err != nil {
		return nil, fmt.Errorf("fetch notes: %w", err)
	}
	defer rows.Close()

	notes := []models.Note{}
	for rows.Next() {
		var n models.Note
		if err := rows.Scan(&n.ID, &n.Title, &n.Text); err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("fetch notes: %w", err)
	}
	return notes, nil
}

func (s *SQLStore) AddNote(ctx context.Context, hash, title, text string) (int64, error) {
	var noteID int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		acct, err := s.account(ctx, tx, hash)
		if err != nil {
			return err
		}
		noteID, err = s.insert(ctx, tx, "INSERT INTO notes (user_id, title, text) VALUES (?, ?, ?)", "id", acct.ID, title, text)
		if err != nil {
			return fmt.Errorf("add note: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return noteID, nil
}
