// Package engine implements the action decision and tick-simulation
// core: per-tick action scoring and selection, the personality, goal and
// modifier subsystems feeding it, and the state machine that advances
// one character by one time step.
//
// A tick is a pure, synchronous state transition over one character
// snapshot. The engine never spawns background work; callers must
// guarantee at most one in-flight tick per character id (ticks for
// different characters are independent).
package engine

import (
	"math/rand"
	"sync"
	"time"

	"idlerpg-lite/gamedata"
)

// RegenFunc applies passive regeneration for an elapsed wall-clock gap.
// Supplied by the caller; DefaultRegen covers the common case.
type RegenFunc func(c Character, w WorldState, elapsed time.Duration, cfg RegenConfig) Character

// Deps are the external collaborators a tick calls into.
type Deps struct {
	Catalog ActionCatalog
	World   WorldBuilder
	Regen   RegenFunc // nil => DefaultRegen
}

type Engine struct {
	cfg   Config
	rules []PriorityRule

	catalog ActionCatalog
	world   WorldBuilder
	regen   RegenFunc

	modifiers *ModifierStore
	profiles  *ProfileRegistry
	traces    *TraceCache

	mu  sync.Mutex // guards rng across parallel per-character ticks
	rng *rand.Rand

	now func() time.Time
}

func NewEngine(cfg Config, deps Deps) (*Engine, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if deps.Catalog == nil {
		return nil, errValidation("missing_catalog", "action catalog is required")
	}
	if deps.World == nil {
		return nil, errValidation("missing_world", "world state builder is required")
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	traces, err := NewTraceCache(cfg.TraceCacheSize)
	if err != nil {
		return nil, err
	}
	regen := deps.Regen
	if regen == nil {
		regen = DefaultRegen
	}
	now := cfg.Clock
	if now == nil {
		now = time.Now
	}
	return &Engine{
		cfg:       cfg,
		rules:     DefaultRules(),
		catalog:   deps.Catalog,
		world:     deps.World,
		regen:     regen,
		modifiers: NewModifierStore(),
		profiles:  NewProfileRegistry(),
		traces:    traces,
		rng:       rand.New(rand.NewSource(seed)),
		now:       now,
	}, nil
}

// Modifiers exposes the per-character modifier store for diagnostics.
func (e *Engine) Modifiers() *ModifierStore { return e.modifiers }

// Profiles exposes the behavior profile registry.
func (e *Engine) Profiles() *ProfileRegistry { return e.profiles }

// Config returns the engine configuration.
func (e *Engine) Config() Config { return e.cfg }

// Now returns the engine clock reading.
func (e *Engine) Now() time.Time { return e.now() }

// LastDecisionTrace returns the cached trace from the most recent
// scoring pass for a character.
func (e *Engine) LastDecisionTrace(characterID string) (DecisionTrace, bool) {
	return e.traces.Last(characterID)
}

// DecisionTraceFor returns the cached trace for c, recomputing (and
// caching) on demand when none is present.
func (e *Engine) DecisionTraceFor(c Character, gd *gamedata.Tables) DecisionTrace {
	if trace, ok := e.traces.Last(c.ID); ok {
		return trace
	}
	w := e.world.BuildWorldState(c, gd)
	candidates := e.catalog.ListPossibleActions(c, gd)
	scores := e.ComputeActionScores(c, candidates, w, gd, e.profiles.ActiveCode(c.ID))
	trace := DecisionTrace{CharacterID: c.ID, Timestamp: e.now(), Entries: scores}
	e.traces.Record(trace)
	return trace
}

// DefaultRegen restores health, magicka and stamina at the configured
// per-second rates, scaled by the world's regen factor. Current values
// never exceed their max.
func DefaultRegen(c Character, w WorldState, elapsed time.Duration, cfg RegenConfig) Character {
	if elapsed <= 0 {
		return c
	}
	scale := w.RegenScale
	if scale <= 0 {
		scale = 1
	}
	secs := elapsed.Seconds()
	c.Stats.Health = c.Stats.Health.add(cfg.HealthPerSecond * scale * secs)
	c.Stats.Magicka = c.Stats.Magicka.add(cfg.MagickaPerSecond * scale * secs)
	c.Stats.Stamina = c.Stats.Stamina.add(cfg.StaminaPerSecond * scale * secs)
	return c
}
