package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// BehaviorProfile is a named behavior preset: per-category bias
// multipliers folded into the profile component of a score.
type BehaviorProfile struct {
	Code         string             `json:"code"`
	Label        string             `json:"label"`
	CategoryBias map[string]float64 `json:"categoryBias"`
}

// Bias returns the multiplier for a category, 1.0 when unset.
func (p *BehaviorProfile) Bias(category ActionCategory) float64 {
	if p == nil || p.CategoryBias == nil {
		return 1.0
	}
	if b, ok := p.CategoryBias[category.String()]; ok && b >= 0 {
		return b
	}
	return 1.0
}

// DefaultProfileCode is the preset applied when none was chosen.
const DefaultProfileCode = "balanced"

// ProfileRegistry holds behavior profile definitions plus the active
// code per character.
type ProfileRegistry struct {
	mu       sync.RWMutex
	profiles map[string]*BehaviorProfile
	active   map[string]string // characterID -> code
}

// NewProfileRegistry creates a registry seeded with the built-in presets.
func NewProfileRegistry() *ProfileRegistry {
	r := &ProfileRegistry{
		profiles: make(map[string]*BehaviorProfile),
		active:   make(map[string]string),
	}
	for _, p := range builtinProfiles() {
		r.profiles[p.Code] = p
	}
	return r
}

func builtinProfiles() []*BehaviorProfile {
	return []*BehaviorProfile{
		{Code: DefaultProfileCode, Label: "Balanced"},
		{Code: "aggressive", Label: "Aggressive", CategoryBias: map[string]float64{
			"combat": 1.6, "quest": 1.2, "rest": 0.7,
		}},
		{Code: "cautious", Label: "Cautious", CategoryBias: map[string]float64{
			"combat": 0.5, "rest": 1.5, "travel": 0.8,
		}},
		{Code: "mercantile", Label: "Mercantile", CategoryBias: map[string]float64{
			"trading": 1.8, "delivery": 1.5, "gather": 1.3,
		}},
	}
}

// LoadFromFile loads profile definitions from a JSON file.
func (r *ProfileRegistry) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read profiles file: %w", err)
	}
	return r.LoadFromJSON(data)
}

// LoadFromJSON loads profile definitions from raw JSON bytes.
func (r *ProfileRegistry) LoadFromJSON(data []byte) error {
	var list []*BehaviorProfile
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("parse profiles JSON: %w", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range list {
		if p.Code == "" {
			continue
		}
		r.profiles[p.Code] = p
	}
	return nil
}

// Get returns a profile by code, or nil.
func (r *ProfileRegistry) Get(code string) *BehaviorProfile {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.profiles[code]
}

// All returns a snapshot of all profiles.
func (r *ProfileRegistry) All() []*BehaviorProfile {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*BehaviorProfile, 0, len(r.profiles))
	for _, p := range r.profiles {
		out = append(out, p)
	}
	return out
}

// SetActive assigns the active profile code for a character. Unknown
// codes are rejected.
func (r *ProfileRegistry) SetActive(characterID, code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.profiles[code]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownProfile, code)
	}
	r.active[characterID] = code
	return nil
}

// ActiveCode returns the character's active profile code, defaulting to
// balanced.
func (r *ProfileRegistry) ActiveCode(characterID string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if code, ok := r.active[characterID]; ok {
		return code
	}
	return DefaultProfileCode
}
