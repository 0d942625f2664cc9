package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"idlerpg-lite/engine"
)

type postgresService struct {
	db *sql.DB
}

func NewPostgresServiceFromEnv() (Service, error) {
	dsn := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if dsn == "" {
		return nil, fmt.Errorf("DATABASE_URL is required for the postgres store")
	}
	return NewPostgresService(dsn)
}

func NewPostgresService(dsn string) (Service, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(8)
	db.SetMaxIdleConns(4)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := ensurePostgresSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &postgresService{db: db}, nil
}

func ensurePostgresSchema(ctx context.Context, db *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS character_modifiers (
	character_id TEXT NOT NULL,
	code         TEXT NOT NULL,
	label        TEXT NOT NULL DEFAULT '',
	multiplier   DOUBLE PRECISION NOT NULL,
	expires_at   TIMESTAMPTZ,
	PRIMARY KEY (character_id, code)
);
CREATE TABLE IF NOT EXISTS character_profiles (
	character_id TEXT PRIMARY KEY,
	profile_code TEXT NOT NULL
);`
	_, err := db.ExecContext(ctx, schema)
	return err
}

func (s *postgresService) ListModifiers(ctx context.Context, characterID string) ([]engine.Modifier, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT code, label, multiplier, expires_at FROM character_modifiers WHERE character_id = $1 ORDER BY code`,
		characterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []engine.Modifier
	for rows.Next() {
		var m engine.Modifier
		var expires sql.NullTime
		if err := rows.Scan(&m.Code, &m.Label, &m.Multiplier, &expires); err != nil {
			return nil, err
		}
		if expires.Valid {
			t := expires.Time
			m.ExpiresAt = &t
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *postgresService) UpsertModifier(ctx context.Context, characterID string, m engine.Modifier) error {
	var expires sql.NullTime
	if m.ExpiresAt != nil {
		expires = sql.NullTime{Time: *m.ExpiresAt, Valid: true}
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO character_modifiers (character_id, code, label, multiplier, expires_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (character_id, code) DO UPDATE SET
	label = excluded.label,
	multiplier = excluded.multiplier,
	expires_at = excluded.expires_at`,
		characterID, m.Code, m.Label, m.Multiplier, expires)
	return err
}

func (s *postgresService) DeleteModifier(ctx context.Context, characterID, code string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM character_modifiers WHERE character_id = $1 AND code = $2`,
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

func (s *postgresService) ProfileCode(ctx context.Context, characterID string) (string, error) {
	var code string
	err := s.db.QueryRowContext(ctx,
		`SELECT profile_code FROM character_profiles WHERE character_id = $1`,
		characterID).Scan(&code)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return code, nil
}

func (s *postgresService) SetProfileCode(ctx context.Context, characterID, code string) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO character_profiles (character_id, profile_code)
VALUES ($1, $2)
ON CONFLICT (character_id) DO UPDATE SET profile_code = excluded.profile_code`,
		characterID, code)
	return err
}

func (s *postgresService) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
