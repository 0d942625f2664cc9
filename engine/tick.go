package engine

import (
	"fmt"
	"log"
	"strings"
	"time"

	"idlerpg-lite/gamedata"
)

// TickResult is the outcome of advancing one character by one tick.
type TickResult struct {
	Character    Character     `json:"character"`
	AdventureLog []string      `json:"adventureLog"`
	CombatLog    []string      `json:"combatLog"`
	Scores       []ActionScore `json:"scores"`
	Acted        bool          `json:"acted"`
	ActionName   string        `json:"actionName,omitempty"`
}

// blockingStatuses hold the character until their own timer elapses;
// ticks are cheap no-ops while blocked.
var blockingStatuses = map[Status]bool{
	StatusSleeping:       true,
	StatusSovngarde:      true,
	StatusJailed:         true,
	StatusSovngardeQuest: true,
}

// ProcessGameTick advances a character snapshot by one tick: passive
// regen and effect expiry, then the per-status state machine, then
// scoring, selection and execution of the next action. The input value
// is never mutated.
func (e *Engine) ProcessGameTick(c Character, gd *gamedata.Tables) (TickResult, error) {
	if strings.TrimSpace(c.ID) == "" {
		return TickResult{}, errValidation("missing_character_id", "character id is required")
	}
	if gd == nil {
		return TickResult{}, errValidation("missing_game_data", "game data tables are required")
	}

	now := e.now()
	next := c.Clone()

	// Dead is absorbing: no regen, no selection.
	if next.Status == StatusDead {
		return TickResult{Character: next}, nil
	}

	w := e.world.BuildWorldState(next, gd)

	// 1. Passive regen scaled by elapsed time, then effect expiry.
	var elapsed time.Duration
	if !next.UpdatedAt.IsZero() {
		elapsed = now.Sub(next.UpdatedAt)
	}
	next = e.regen(next, w, elapsed, e.cfg.Regen)
	next.Effects = expireEffects(next.Effects, now)
	next.UpdatedAt = now
	next.Analytics.TicksProcessed++

	// 2. Timed blocking states.
	if blockingStatuses[next.Status] {
		if next.StatusUntil == nil || now.Before(*next.StatusUntil) {
			return TickResult{Character: next}, nil
		}
		next.Status = StatusIdle
		next.StatusUntil = nil
	}

	// 3/4. In-progress action: wait it out, or clear it on completion
	// (its terminal effects were applied by Perform when it started).
	if next.CurrentAction != nil {
		if now.Sub(next.CurrentAction.StartedAt) < next.CurrentAction.Duration {
			return TickResult{Character: next}, nil
		}
		next.CurrentAction = nil
	}

	// 5. Score, select, perform.
	candidates := e.catalog.ListPossibleActions(next, gd)
	scores := e.ComputeActionScores(next, candidates, w, gd, e.profiles.ActiveCode(next.ID))
	e.traces.Record(DecisionTrace{CharacterID: next.ID, Timestamp: now, Entries: scores})

	winner := e.sampleScores(scores, candidates)
	if winner == nil {
		winner = NewWanderAction()
	}

	performed, lines, err := performSafe(winner, next, w, gd)
	if err != nil {
		// The candidate is unavailable this tick; substitute the
		// fallback against the untouched snapshot.
		log.Printf("[Engine] character %s: action %q failed: %v", next.ID, winner.Name(), err)
		next.Analytics.ActionsFailed++
		winner = NewWanderAction()
		performed, lines, _ = winner.Perform(next, w, gd)
	}
	next = performed
	next.History = next.History.Append(HistoryEntry{
		Category:  winner.Category(),
		Name:      winner.Name(),
		Timestamp: now,
	})
	next.Personality = EvolvePersonality(next.Personality, winner.Category(), now)
	next.Analytics.ActionsPerformed++

	result := TickResult{
		Character:  next,
		Scores:     scores,
		Acted:      true,
		ActionName: winner.Name(),
	}
	for _, line := range lines {
		switch line.Stream {
		case LogCombat:
			result.CombatLog = append(result.CombatLog, line.Text)
		default:
			result.AdventureLog = append(result.AdventureLog, line.Text)
		}
	}
	return result, nil
}

func expireEffects(effects []ActiveEffect, now time.Time) []ActiveEffect {
	out := effects[:0]
	for _, eff := range effects {
		if eff.ExpiresAt.After(now) {
			out = append(out, eff)
		}
	}
	return out
}

// performSafe shields the tick loop from a panicking action
// implementation; a panic reads as "unavailable this tick".
func performSafe(a Action, c Character, w WorldState, gd *gamedata.Tables) (next Character, lines []LogLine, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("action %q panicked: %v", a.Name(), r)
		}
	}()
	return a.Perform(c, w, gd)
}
