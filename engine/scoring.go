package engine

import (
	"sort"

	"idlerpg-lite/gamedata"
)

// FatigueModifier is the anti-repetition step function over the count of
// recent same-category actions. Deliberately sharp, not linear, so
// degenerate loops break quickly.
func FatigueModifier(repetitions int) float64 {
	switch {
	case repetitions <= 3:
		return 1.0
	case repetitions == 4:
		return 0.5
	default:
		return 0.2
	}
}

// ComputeActionScores scores every performable candidate and returns the
// full breakdowns sorted descending by total. The breakdown, not just
// the total, is the audit trail diagnostics depend on.
func (e *Engine) ComputeActionScores(c Character, candidates []Action, w WorldState, gd *gamedata.Tables, profileCode string) []ActionScore {
	now := e.now()
	ctx := BuildContext(c, w, gd)
	goal := SelectTopGoal(GenerateGoals(c, w, now))
	profile := e.profiles.Get(profileCode)
	modifierFactor := e.modifiers.Multiplier(c.ID, now)

	scores := make([]ActionScore, 0, len(candidates))
	for _, a := range candidates {
		if !a.CanPerform(c, w, gd) {
			continue
		}
		name := a.Name()
		category := a.Category()

		base := e.baseWeight(a, c, w, gd)
		ruleBoost := RuleBoost(e.rules, ctx, name, category)
		prof := PersonalityModifier(c.Personality, category) *
			GoalBoost(goal, name, category) *
			profile.Bias(category)
		fatigue := FatigueModifier(c.History.CountRecent(category, e.cfg.FatigueWindow))

		total := base * ruleBoost * prof * fatigue * modifierFactor
		if total < 0 {
			total = 0
		}
		scores = append(scores, ActionScore{
			ActionID: ActionID(name),
			Name:     name,
			Category: category,
			Breakdown: ScoreBreakdown{
				Base:      base,
				RuleBoost: ruleBoost,
				Profile:   prof,
				Fatigue:   fatigue,
				Modifiers: modifierFactor,
				Total:     total,
			},
		})
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Breakdown.Total > scores[j].Breakdown.Total
	})
	return scores
}

// baseWeight resolves a candidate's starting weight: an explicit
// priority label wins, then a candidate-supplied weight, then the
// category table.
func (e *Engine) baseWeight(a Action, c Character, w WorldState, gd *gamedata.Tables) float64 {
	if pa, ok := a.(PrioritizedAction); ok {
		return PriorityToBaseWeight(pa.Priority())
	}
	if wa, ok := a.(WeightedAction); ok {
		bw := wa.BaseWeight(c, w, gd)
		if bw < 0 {
			return 0
		}
		return bw
	}
	return e.cfg.CategoryBaseWeight(a.Category())
}
