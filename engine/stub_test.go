package engine

import (
	"errors"
	"testing"
	"time"

	"idlerpg-lite/gamedata"
)

// stubAction is a minimal candidate for engine tests.
type stubAction struct {
	name       string
	category   ActionCategory
	disabled   bool
	performErr error
	goldDelta  int64
}

func (a stubAction) Name() string { return a.name }

func (a stubAction) Category() ActionCategory { return a.category }

func (a stubAction) CanPerform(Character, WorldState, *gamedata.Tables) bool {
	return !a.disabled
}

func (a stubAction) Perform(c Character, w WorldState, gd *gamedata.Tables) (Character, []LogLine, error) {
	if a.performErr != nil {
		return c, nil, a.performErr
	}
	c.Inventory.Gold += a.goldDelta
	return c, []LogLine{{Stream: LogAdventure, Text: c.Name + " does " + a.name}}, nil
}

var errStubPerform = errors.New("stub perform failure")

// testClock is a manual clock for deterministic ticks.
type testClock struct {
	t time.Time
}

func newTestClock() *testClock {
	return &testClock{t: time.Unix(1_700_000_000, 0)}
}

func (c *testClock) Now() time.Time { return c.t }

func (c *testClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func fixedCatalog(actions ...Action) ActionCatalog {
	return ActionCatalogFunc(func(Character, *gamedata.Tables) []Action {
		return actions
	})
}

func safeWorld() WorldBuilder {
	return WorldBuilderFunc(func(c Character, gd *gamedata.Tables) WorldState {
		return WorldState{Weather: "clear", TimeOfDay: "day", LocationID: c.LocationID, Safe: true, RegenScale: 1}
	})
}

// newTestEngine builds an engine with a fixed seed and manual clock.
func newTestEngine(t *testing.T, catalog ActionCatalog, clock *testClock, seed int64) *Engine {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Seed = seed
	cfg.Clock = clock.Now
	eng, err := NewEngine(cfg, Deps{Catalog: catalog, World: safeWorld()})
	if err != nil {
		t.Fatalf("NewEngine err: %v", err)
	}
	return eng
}

// settledCharacter has no active goals: full stats, gold, a weapon and
// divine favor, so scoring tests see a neutral goal boost.
func settledCharacter(id string, now time.Time) Character {
	c := NewCharacter(id, "Testa", "soldier", 20, now)
	c.Inventory.Gold = 500
	c.Equipment.WeaponID = "iron_sword"
	c.DivineFavor = 80
	return c
}
