// Package arena owns the live characters and drives their tick loops.
// One goroutine per character id is the serialization discipline the
// engine requires: a snapshot is read, ticked and written back by a
// single writer, so ticks for one character never overlap. Ticks for
// different characters run in parallel.
package arena

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"idlerpg-lite/engine"
	"idlerpg-lite/gamedata"

	"idlerpg-lite/apps/server/internal/store"
)

// TracePublisher receives each tick's decision trace, e.g. the
// websocket gateway.
type TracePublisher interface {
	PublishTrace(trace engine.DecisionTrace)
}

type Arena struct {
	eng      *engine.Engine
	gd       *gamedata.Tables
	store    store.Service
	pub      TracePublisher
	interval time.Duration

	mu         sync.RWMutex
	characters map[string]engine.Character

	quit chan struct{}
	wg   sync.WaitGroup
}

func New(eng *engine.Engine, gd *gamedata.Tables, st store.Service, pub TracePublisher, interval time.Duration) *Arena {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return &Arena{
		eng:        eng,
		gd:         gd,
		store:      st,
		pub:        pub,
		interval:   interval,
		characters: make(map[string]engine.Character),
		quit:       make(chan struct{}),
	}
}

// Register hydrates persisted diagnostics state for the character and
// starts its tick loop. Dead characters never tick again, so they are
// refused.
func (a *Arena) Register(ctx context.Context, c engine.Character) error {
	if c.Status == engine.StatusDead {
		return engine.ErrCharacterDead
	}
	mods, err := a.store.ListModifiers(ctx, c.ID)
	if err != nil {
		return err
	}
	for _, m := range mods {
		if err := a.eng.Modifiers().Set(c.ID, m); err != nil {
			return err
		}
	}
	code, err := a.store.ProfileCode(ctx, c.ID)
	if err != nil {
		return err
	}
	if code != "" {
		if err := a.eng.Profiles().SetActive(c.ID, code); err != nil {
			log.Printf("[Arena] character %s: stored profile %q unknown, keeping default", c.ID, code)
		}
	}

	a.mu.Lock()
	if _, exists := a.characters[c.ID]; exists {
		a.mu.Unlock()
		return nil
	}
	a.characters[c.ID] = c
	a.mu.Unlock()

	a.wg.Add(1)
	go a.run(c.ID)
	log.Printf("[Arena] registered character %s (%s)", c.ID, c.Name)
	return nil
}

// run is the single writer for one character id.
func (a *Arena) run(id string) {
	defer a.wg.Done()
	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()
	for {
		select {
		case <-a.quit:
			return
		case <-ticker.C:
			a.tickOnce(id)
		}
	}
}

func (a *Arena) tickOnce(id string) {
	a.mu.RLock()
	c, ok := a.characters[id]
	a.mu.RUnlock()
	if !ok {
		return
	}

	res, err := a.eng.ProcessGameTick(c, a.gd)
	if err != nil {
		log.Printf("[Arena] character %s: tick failed: %v", id, err)
		return
	}

	a.mu.Lock()
	a.characters[id] = res.Character
	a.mu.Unlock()

	for _, line := range res.AdventureLog {
		log.Printf("[Adventure] %s", line)
	}
	for _, line := range res.CombatLog {
		log.Printf("[Combat] %s", line)
	}
	if a.pub != nil {
		if trace, ok := a.eng.LastDecisionTrace(id); ok {
			a.pub.PublishTrace(trace)
		}
	}
}

// Character returns the latest snapshot for id.
func (a *Arena) Character(id string) (engine.Character, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	c, ok := a.characters[id]
	return c, ok
}

// Trace returns the latest decision trace, recomputing when the cache
// has no entry yet.
func (a *Arena) Trace(id string) (engine.DecisionTrace, bool) {
	c, ok := a.Character(id)
	if !ok {
		return engine.DecisionTrace{}, false
	}
	return a.eng.DecisionTraceFor(c, a.gd), true
}

// SetModifier writes through: runtime store first, then persistence.
func (a *Arena) SetModifier(ctx context.Context, characterID string, m engine.Modifier) error {
	if err := a.eng.Modifiers().Set(characterID, m); err != nil {
		return err
	}
	return a.store.UpsertModifier(ctx, characterID, m)
}

// Modifiers lists the character's active modifiers.
func (a *Arena) Modifiers(characterID string) []engine.Modifier {
	return a.eng.Modifiers().Active(characterID, a.eng.Now())
}

// DeleteModifier removes from both the runtime store and persistence.
// It returns engine.ErrModifierNotFound when neither side had an entry.
func (a *Arena) DeleteModifier(ctx context.Context, characterID, code string) error {
	runtimeErr := a.eng.Modifiers().Delete(characterID, code)
	err := a.store.DeleteModifier(ctx, characterID, code)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNotFound):
		if runtimeErr == nil {
			return nil
		}
		return engine.ErrModifierNotFound
	default:
		return err
	}
}

// ProfileCode returns the character's active behavior profile code.
func (a *Arena) ProfileCode(characterID string) string {
	return a.eng.Profiles().ActiveCode(characterID)
}

// SetProfileCode validates against the registry, then persists.
func (a *Arena) SetProfileCode(ctx context.Context, characterID, code string) error {
	if err := a.eng.Profiles().SetActive(characterID, code); err != nil {
		return err
	}
	return a.store.SetProfileCode(ctx, characterID, code)
}

// Close stops every tick loop and waits for them to drain.
func (a *Arena) Close() {
	close(a.quit)
	a.wg.Wait()
}
