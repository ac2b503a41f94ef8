// Package storage persists user subscriptions. Each user owns one
// independently replaceable record; tags are the only state that
// outlives a digest request.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/deusflow/newsbot/internal/model"
)

type SubscriptionStore struct {
	db *sql.DB
}

// NewSubscriptionStore opens (or creates) the SQLite database at path
// and initializes the schema.
func NewSubscriptionStore(path string) (*SubscriptionStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Serialized writes keep concurrent per-user updates safe with
	// the pure-Go driver.
	db.SetMaxOpenConns(1)

	store := &SubscriptionStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return store, nil
}

func (s *SubscriptionStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		user_id INTEGER PRIMARY KEY,
		tags TEXT NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// GetTags returns the user's subscribed tags in stored order, empty
// when the user never subscribed.
func (s *SubscriptionStore) GetTags(ctx context.Context, userID int64) ([]string, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT tags FROM users WHERE user_id = ?`, userID).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get tags for user %d: %w", userID, err)
	}

	return model.ParseTags(raw), nil
}

// SetTags replaces the user's whole tag set. Tags are stored
// normalized; an empty set removes the record.
func (s *SubscriptionStore) SetTags(ctx context.Context, userID int64, tags []string) error {
	if len(tags) == 0 {
		_, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE user_id = ?`, userID)
		if err != nil {
			return fmt.Errorf("clear tags for user %d: %w", userID, err)
		}
		return nil
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (user_id, tags) VALUES (?, ?)
		ON CONFLICT(user_id) DO UPDATE SET tags = excluded.tags`,
		userID, strings.Join(tags, ","))
	if err != nil {
		return fmt.Errorf("set tags for user %d: %w", userID, err)
	}
	return nil
}

func (s *SubscriptionStore) Close() error {
	return s.db.Close()
}
