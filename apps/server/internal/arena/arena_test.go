package arena

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"idlerpg-lite/engine"
	"idlerpg-lite/gamedata"
	"idlerpg-lite/sim"

	"idlerpg-lite/apps/server/internal/store"
)

type capturePublisher struct {
	mu     sync.Mutex
	traces []engine.DecisionTrace
}

func (p *capturePublisher) PublishTrace(trace engine.DecisionTrace) {
	p.mu.Lock()
	p.traces = append(p.traces, trace)
	p.mu.Unlock()
}

func (p *capturePublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.traces)
}

func newTestArena(t *testing.T, st store.Service, pub TracePublisher) *Arena {
	t.Helper()
	cfg := engine.DefaultConfig()
	cfg.Seed = 1
	eng, err := engine.NewEngine(cfg, engine.Deps{Catalog: sim.DemoCatalog(), World: sim.DemoWorld()})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	// A long interval keeps the background loop quiet; tests drive
	// ticks directly.
	a := New(eng, gamedata.Demo(), st, pub, time.Hour)
	t.Cleanup(a.Close)
	return a
}

func TestRegisterHydratesStoredState(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryService()
	if err := st.UpsertModifier(ctx, "hero", engine.Modifier{Code: "blessing", Multiplier: 0.3}); err != nil {
		t.Fatalf("seed store: %v", err)
	}
	if err := st.SetProfileCode(ctx, "hero", "aggressive"); err != nil {
		t.Fatalf("seed profile: %v", err)
	}

	a := newTestArena(t, st, nil)
	if err := a.Register(ctx, sim.DemoCharacter("hero", "Hero", time.Now())); err != nil {
		t.Fatalf("Register: %v", err)
	}

	mods := a.Modifiers("hero")
	if len(mods) != 1 || mods[0].Code != "blessing" {
		t.Fatalf("hydrated modifiers = %+v, want the stored blessing", mods)
	}
	if got := a.ProfileCode("hero"); got != "aggressive" {
		t.Fatalf("hydrated profile = %q, want aggressive", got)
	}
}

func TestRegisterToleratesUnknownStoredProfile(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryService()
	if err := st.SetProfileCode(ctx, "hero", "retired-preset"); err != nil {
		t.Fatalf("seed profile: %v", err)
	}

	a := newTestArena(t, st, nil)
	if err := a.Register(ctx, sim.DemoCharacter("hero", "Hero", time.Now())); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if got := a.ProfileCode("hero"); got != engine.DefaultProfileCode {
		t.Fatalf("profile = %q, want default after unknown stored code", got)
	}
}

func TestTickOnceAdvancesAndPublishes(t *testing.T) {
	ctx := context.Background()
	pub := &capturePublisher{}
	a := newTestArena(t, store.NewMemoryService(), pub)
	if err := a.Register(ctx, sim.DemoCharacter("hero", "Hero", time.Now())); err != nil {
		t.Fatalf("Register: %v", err)
	}

	a.tickOnce("hero")
	c, ok := a.Character("hero")
	if !ok {
		t.Fatalf("character missing after tick")
	}
	if c.Analytics.TicksProcessed != 1 {
		t.Fatalf("ticks processed = %d, want 1", c.Analytics.TicksProcessed)
	}
	if pub.count() == 0 {
		t.Fatalf("no trace published")
	}

	trace, ok := a.Trace("hero")
	if !ok || trace.CharacterID != "hero" {
		t.Fatalf("trace = %+v ok=%v", trace, ok)
	}
	if len(trace.Entries) == 0 {
		t.Fatalf("trace has no scored entries")
	}
}

func TestSetModifierWritesThrough(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryService()
	a := newTestArena(t, st, nil)
	if err := a.Register(ctx, sim.DemoCharacter("hero", "Hero", time.Now())); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if err := a.SetModifier(ctx, "hero", engine.Modifier{Code: "haste", Multiplier: 0.2}); err != nil {
		t.Fatalf("SetModifier: %v", err)
	}
	stored, err := st.ListModifiers(ctx, "hero")
	if err != nil {
		t.Fatalf("ListModifiers: %v", err)
	}
	if len(stored) != 1 || stored[0].Code != "haste" {
		t.Fatalf("store = %+v, want persisted haste", stored)
	}

	if err := a.SetModifier(ctx, "hero", engine.Modifier{Code: "bad", Multiplier: -3}); err == nil {
		t.Fatalf("invalid modifier accepted")
	}
	stored, _ = st.ListModifiers(ctx, "hero")
	if len(stored) != 1 {
		t.Fatalf("rejected modifier reached the store: %+v", stored)
	}
}

func TestDeleteModifierRuntimeOnly(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryService()
	a := newTestArena(t, st, nil)
	if err := a.Register(ctx, sim.DemoCharacter("hero", "Hero", time.Now())); err != nil {
		t.Fatalf("Register: %v", err)
	}

	// Present in the runtime store only; delete should still succeed.
	if err := a.eng.Modifiers().Set("hero", engine.Modifier{Code: "ephemeral", Multiplier: 0.1}); err != nil {
		t.Fatalf("runtime set: %v", err)
	}
	if err := a.DeleteModifier(ctx, "hero", "ephemeral"); err != nil {
		t.Fatalf("DeleteModifier: %v", err)
	}
	if err := a.DeleteModifier(ctx, "hero", "ephemeral"); !errors.Is(err, engine.ErrModifierNotFound) {
		t.Fatalf("second delete = %v, want ErrModifierNotFound", err)
	}
}

func TestRegisterRejectsDeadCharacter(t *testing.T) {
	a := newTestArena(t, store.NewMemoryService(), nil)

	c := sim.DemoCharacter("ghost", "Ghost", time.Now())
	c.Status = engine.StatusDead
	if err := a.Register(context.Background(), c); !errors.Is(err, engine.ErrCharacterDead) {
		t.Fatalf("Register = %v, want ErrCharacterDead", err)
	}
	if _, ok := a.Character("ghost"); ok {
		t.Fatalf("dead character was registered anyway")
	}
}
