package usernames

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // registers the sqlite driver

	"github.com/KirkDiggler/cobblemon-transporter/internal/errors"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS usernames (
	uuid TEXT PRIMARY KEY,
	name TEXT NOT NULL
);`

// SQLiteStore keeps the table in a sqlite database file
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates the database at path
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, errors.InvalidArgument("database path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, errors.Wrap(err, "failed to create database directory")
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)")
	if err != nil {
		return nil, errors.Wrap(err, "failed to open username database").WithMeta("path", path)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "failed to migrate username database").WithMeta("path", path)
	}
	return &SQLiteStore{db: db}, nil
}

// Ensure SQLiteStore implements Store
var _ Store = (*SQLiteStore)(nil)

// Close releases the database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Load reads every row
func (s *SQLiteStore) Load(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT uuid, name FROM usernames`)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query usernames")
	}
	defer func() { _ = rows.Close() }()

	entries := map[string]string{}
	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, errors.Wrap(err, "failed to scan username")
		}
		entries[id] = name
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read usernames")
	}
	return entries, nil
}

// Save upserts every entry in one transaction
func (s *SQLiteStore) Save(ctx context.Context, entries map[string]string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin username transaction")
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO usernames (uuid, name) VALUES (?, ?)
		 ON CONFLICT(uuid) DO UPDATE SET name = excluded.name`)
	if err != nil {
		return errors.Wrap(err, "failed to prepare username upsert")
	}
	defer func() { _ = stmt.Close() }()

	for id, name := range entries {
		if _, err := stmt.ExecContext(ctx, id, name); err != nil {
			return errors.Wrap(err, "failed to save username").WithMeta("uuid", id)
		}
	}
	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "failed to commit usernames")
	}
	return nil
}
