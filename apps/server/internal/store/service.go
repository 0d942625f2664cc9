// Package store persists per-character diagnostics state: score
// modifiers and the active behavior profile code. Character snapshots
// themselves are the caller's responsibility.
package store

import (
	"context"
	"errors"

	"idlerpg-lite/engine"
)

var ErrNotFound = errors.New("store: not found")

type Service interface {
	// ListModifiers returns every stored modifier for a character,
	// expired entries included; the engine prunes lazily.
	ListModifiers(ctx context.Context, characterID string) ([]engine.Modifier, error)
	UpsertModifier(ctx context.Context, characterID string, m engine.Modifier) error
	// DeleteModifier returns ErrNotFound when no entry matches.
	DeleteModifier(ctx context.Context, characterID, code string) error

	// ProfileCode returns "" when the character has no stored code.
	ProfileCode(ctx context.Context, characterID string) (string, error)
	SetProfileCode(ctx context.Context, characterID, code string) error

	Close() error
}
