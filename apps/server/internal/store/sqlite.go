package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"idlerpg-lite/engine"
)

const defaultLocalDBName = "idlerpg_local.db"

type sqliteService struct {
	db *sql.DB
}

func NewSQLiteServiceFromEnv() (Service, error) {
	dbPath := strings.TrimSpace(os.Getenv("STORE_SQLITE_PATH"))
	if dbPath == "" {
		dbPath = filepath.Join("data", defaultLocalDBName)
	}
	return NewSQLiteService(dbPath)
}

func NewSQLiteService(dbPath string) (Service, error) {
	dbPath = strings.TrimSpace(dbPath)
	if dbPath == "" {
		return nil, fmt.Errorf("empty sqlite database path")
	}
	if dbPath != ":memory:" {
		parent := filepath.Dir(dbPath)
		if parent != "" && parent != "." {
			if err := os.MkdirAll(parent, 0o755); err != nil {
				return nil, err
			}
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := db.ExecContext(ctx, `PRAGMA busy_timeout = 5000;`); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, `PRAGMA journal_mode = WAL;`); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := ensureSQLiteSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &sqliteService{db: db}, nil
}

func ensureSQLiteSchema(ctx context.Context, db *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS character_modifiers (
	character_id TEXT NOT NULL,
	code         TEXT NOT NULL,
	label        TEXT NOT NULL DEFAULT '',
	multiplier   REAL NOT NULL,
	expires_at   INTEGER,
	PRIMARY KEY (character_id, code)
);
CREATE TABLE IF NOT EXISTS character_profiles (
	character_id TEXT PRIMARY KEY,
	profile_code TEXT NOT NULL
);`
	_, err := db.ExecContext(ctx, schema)
	return err
}

func (s *sqliteService) ListModifiers(ctx context.Context, characterID string) ([]engine.Modifier, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT code, label, multiplier, expires_at FROM character_modifiers WHERE character_id = ? ORDER BY code`,
		characterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []engine.Modifier
	for rows.Next() {
		var m engine.Modifier
		var expires sql.NullInt64
		if err := rows.Scan(&m.Code, &m.Label, &m.Multiplier, &expires); err != nil {
			return nil, err
		}
		if expires.Valid {
			t := time.UnixMilli(expires.Int64)
			m.ExpiresAt = &t
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *sqliteService) UpsertModifier(ctx context.Context, characterID string, m engine.Modifier) error {
	var expires sql.NullInt64
	if m.ExpiresAt != nil {
		expires = sql.NullInt64{Int64: m.ExpiresAt.UnixMilli(), Valid: true}
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO character_modifiers (character_id, code, label, multiplier, expires_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT (character_id, code) DO UPDATE SET
	label = excluded.label,
	multiplier = excluded.multiplier,
	expires_at = excluded.expires_at`,
		characterID, m.Code, m.Label, m.Multiplier, expires)
	return err
}

func (s *sqliteService) DeleteModifier(ctx context.Context, characterID, code string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM character_modifiers WHERE character_id = ? AND code = ?`,
		characterID, code)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *sqliteService) ProfileCode(ctx context.Context, characterID string) (string, error) {
	var code string
	err := s.db.QueryRowContext(ctx,
		`SELECT profile_code FROM character_profiles WHERE character_id = ?`,
		characterID).Scan(&code)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return code, nil
}

func (s *sqliteService) SetProfileCode(ctx context.Context, characterID, code string) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO character_profiles (character_id, profile_code)
VALUES (?, ?)
ON CONFLICT (character_id) DO UPDATE SET profile_code = excluded.profile_code`,
		characterID, code)
	return err
}

func (s *sqliteService) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
