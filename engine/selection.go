package engine

import (
	"math/rand"

	"idlerpg-lite/gamedata"
)

// WeightedCandidate pairs an action with an effective sampling weight.
type WeightedCandidate struct {
	Action Action
	Weight float64
}

// ApplyVarietyBoost recomputes each candidate's weight with the
// anti-repetition step function over the last recentWindow history
// entries. Used on paths that sample raw base weights without the full
// scoring pipeline.
func ApplyVarietyBoost(items []WeightedCandidate, c Character, recentWindow int) []WeightedCandidate {
	out := make([]WeightedCandidate, len(items))
	for i, it := range items {
		out[i] = WeightedCandidate{
			Action: it.Action,
			Weight: it.Weight * FatigueModifier(c.History.CountRecent(it.Action.Category(), recentWindow)),
		}
	}
	return out
}

// WeightedSample is roulette-wheel selection: draw uniform over the
// cumulative weight sum and return the first candidate whose cumulative
// weight reaches the draw. Returns false only when the list is empty or
// all weights are <= 0.
func WeightedSample(rng *rand.Rand, items []WeightedCandidate) (Action, bool) {
	total := 0.0
	for _, it := range items {
		if it.Weight > 0 {
			total += it.Weight
		}
	}
	if total <= 0 {
		return nil, false
	}
	draw := rng.Float64() * total
	cum := 0.0
	for _, it := range items {
		if it.Weight <= 0 {
			continue
		}
		cum += it.Weight
		if cum >= draw {
			return it.Action, true
		}
	}
	// Floating-point slack: the draw landed past the last bucket.
	for i := len(items) - 1; i >= 0; i-- {
		if items[i].Weight > 0 {
			return items[i].Action, true
		}
	}
	return nil, false
}

// sampleScores samples over full scoring totals using the engine RNG.
func (e *Engine) sampleScores(scores []ActionScore, candidates []Action) Action {
	byID := make(map[string]Action, len(candidates))
	for _, a := range candidates {
		byID[ActionID(a.Name())] = a
	}
	items := make([]WeightedCandidate, 0, len(scores))
	for _, s := range scores {
		if a, ok := byID[s.ActionID]; ok {
			items = append(items, WeightedCandidate{Action: a, Weight: s.Breakdown.Total})
		}
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	a, ok := WeightedSample(e.rng, items)
	if !ok {
		return nil
	}
	return a
}

// SelectActionSimple picks a candidate from category base weights plus
// the variety boost, granting the system category a constant floor so
// housekeeping actions occasionally fire. It never fails: when every
// candidate is filtered out it returns the wander fallback.
func (e *Engine) SelectActionSimple(candidates []Action, c Character, w WorldState, gd *gamedata.Tables) Action {
	items := make([]WeightedCandidate, 0, len(candidates))
	for _, a := range candidates {
		if !a.CanPerform(c, w, gd) {
			continue
		}
		items = append(items, WeightedCandidate{Action: a, Weight: e.cfg.CategoryBaseWeight(a.Category())})
	}
	items = ApplyVarietyBoost(items, c, e.cfg.FatigueWindow)
	for i := range items {
		if items[i].Action.Category() == CategorySystem && items[i].Weight < e.cfg.SystemFloorWeight {
			items[i].Weight = e.cfg.SystemFloorWeight
		}
	}
	e.mu.Lock()
	a, ok := WeightedSample(e.rng, items)
	e.mu.Unlock()
	if !ok {
		return NewWanderAction()
	}
	return a
}
