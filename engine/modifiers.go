package engine

import (
	"sort"
	"strings"
	"sync"
	"time"
)

// Modifier is a named fractional score bonus for one character, e.g. a
// Multiplier of 0.2 reads as +20%. A nil ExpiresAt never expires.
type Modifier struct {
	Code       string     `json:"code"`
	Label      string     `json:"label"`
	Multiplier float64    `json:"multiplier"`
	ExpiresAt  *time.Time `json:"expiresAt,omitempty"`
}

func (m Modifier) active(now time.Time) bool {
	return m.ExpiresAt == nil || m.ExpiresAt.After(now)
}

// ModifierStore keys modifiers by character id with upsert-by-code
// semantics. Expired entries are inert and pruned lazily on read.
// Upsert and delete are atomic per (characterID, code) pair; diagnostics
// may read concurrently with a tick writing.
type ModifierStore struct {
	mu          sync.RWMutex
	byCharacter map[string]map[string]Modifier
}

func NewModifierStore() *ModifierStore {
	return &ModifierStore{byCharacter: make(map[string]map[string]Modifier)}
}

// Set inserts or replaces the modifier with m.Code for characterID.
func (s *ModifierStore) Set(characterID string, m Modifier) error {
	if strings.TrimSpace(characterID) == "" {
		return errValidation("missing_character_id", "character id is required")
	}
	if strings.TrimSpace(m.Code) == "" {
		return errValidation("missing_modifier_code", "modifier code is required")
	}
	if m.Multiplier < -1 {
		return errValidation("invalid_multiplier", "modifier multiplier must be >= -1")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := s.byCharacter[characterID]
	if entries == nil {
		entries = make(map[string]Modifier)
		s.byCharacter[characterID] = entries
	}
	entries[m.Code] = m
	return nil
}

// Get returns the modifier with code, if present and not expired.
func (s *ModifierStore) Get(characterID, code string, now time.Time) (Modifier, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.byCharacter[characterID][code]
	if !ok || !m.active(now) {
		return Modifier{}, false
	}
	return m, true
}

// Delete removes the modifier with code. It returns ErrModifierNotFound
// when no entry exists.
func (s *ModifierStore) Delete(characterID, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := s.byCharacter[characterID]
	if _, ok := entries[code]; !ok {
		return ErrModifierNotFound
	}
	delete(entries, code)
	return nil
}

// Active prunes expired entries for characterID and returns the rest,
// ordered by code for stable output.
func (s *ModifierStore) Active(characterID string, now time.Time) []Modifier {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := s.byCharacter[characterID]
	out := make([]Modifier, 0, len(entries))
	for code, m := range entries {
		if !m.active(now) {
			delete(entries, code)
			continue
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// Multiplier composes the character's active entries into one factor.
func (s *ModifierStore) Multiplier(characterID string, now time.Time) float64 {
	return ComposeModifierMultiplier(s.Active(characterID, now), now)
}

// ComposeModifierMultiplier returns 1 + the sum of active multipliers:
// bonuses are additive fractions, so two +20% entries yield +40%. The
// result never goes below zero.
func ComposeModifierMultiplier(entries []Modifier, now time.Time) float64 {
	total := 1.0
	for _, m := range entries {
		if m.active(now) {
			total += m.Multiplier
		}
	}
	if total < 0 {
		return 0
	}
	return total
}
