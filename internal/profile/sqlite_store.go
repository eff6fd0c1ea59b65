// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package profile

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ManuGH/metronome/internal/persistence/sqlite"
)

var profileMigrations = []string{
	`CREATE TABLE IF NOT EXISTS profiles (
		user_id TEXT PRIMARY KEY,
		data TEXT NOT NULL,
		updated_at_ms INTEGER NOT NULL
	)`,
}

// SqliteStore keeps one JSON document per user in the profiles table.
type SqliteStore struct {
	DB *sql.DB
}

func OpenSqliteStore(ctx context.Context, dbPath string) (*SqliteStore, error) {
	db, err := sqlite.Open(ctx, dbPath, sqlite.DefaultConfig())
	if err != nil {
		return nil, err
	}
	if _, err := sqlite.Migrate(ctx, db, profileMigrations); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("profile store: migration failed: %w", err)
	}
	return &SqliteStore{DB: db}, nil
}

func (s *SqliteStore) Load(ctx context.Context, userID string) (Profile, error) {
	var data string
	err := s.DB.QueryRowContext(ctx, `SELECT data FROM profiles WHERE user_id = ?`, userID).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return Profile{}, nil
	}
	if err != nil {
		return Profile{}, fmt.Errorf("load profile: %w", err)
	}
	var p Profile
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return Profile{}, fmt.Errorf("decode profile: %w", err)
	}
	return p, nil
}

func (s *SqliteStore) Save(ctx context.Context, userID string, p Profile) error {
	buf, err := json.Marshal(p)
	if err != nil {
		return err
	}
	_, err = s.DB.ExecContext(ctx, `
		INSERT INTO profiles (user_id, data, updated_at_ms) VALUES (?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET data = excluded.data, updated_at_ms = excluded.updated_at_ms`,
		userID, string(buf), time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

// Ping runs a quick integrity check.
func (s *SqliteStore) Ping(ctx context.Context) error {
	issues, err := sqlite.VerifyIntegrity(ctx, s.DB, "quick")
	if err != nil {
		return err
	}
	if len(issues) > 0 {
		return fmt.Errorf("profile database integrity: %v", issues)
	}
	return nil
}

func (s *SqliteStore) Close() error { return s.DB.Close() }
