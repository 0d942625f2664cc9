package engine

import "time"

// Traits are the five evolving personality axes, each in [0,100].
type Traits struct {
	Aggression  int `json:"aggression"`
	Greed       int `json:"greed"`
	Curiosity   int `json:"curiosity"`
	Piety       int `json:"piety"`
	Sociability int `json:"sociability"`
}

func (t Traits) get(trait Trait) int {
	switch trait {
	case TraitAggression:
		return t.Aggression
	case TraitGreed:
		return t.Greed
	case TraitCuriosity:
		return t.Curiosity
	case TraitPiety:
		return t.Piety
	case TraitSociability:
		return t.Sociability
	}
	return 0
}

func (t Traits) set(trait Trait, value int) Traits {
	switch trait {
	case TraitAggression:
		t.Aggression = value
	case TraitGreed:
		t.Greed = value
	case TraitCuriosity:
		t.Curiosity = value
	case TraitPiety:
		t.Piety = value
	case TraitSociability:
		t.Sociability = value
	}
	return t
}

// Evolution tracks how often each category has been performed.
type Evolution struct {
	ActionCounts map[ActionCategory]int `json:"actionCounts"`
	LastUpdate   time.Time              `json:"lastUpdate"`
}

// PersonalityProfile is a character's archetype plus trait vector.
type PersonalityProfile struct {
	Archetype string    `json:"archetype"`
	Traits    Traits    `json:"traits"`
	Evolution Evolution `json:"evolution"`
}

func (p PersonalityProfile) clone() PersonalityProfile {
	counts := make(map[ActionCategory]int, len(p.Evolution.ActionCounts))
	for k, v := range p.Evolution.ActionCounts {
		counts[k] = v
	}
	p.Evolution.ActionCounts = counts
	return p
}

// categoryTrait maps action categories onto the trait they train. Only
// five categories influence evolution; the rest are deliberate no-ops.
var categoryTrait = map[ActionCategory]Trait{
	CategoryCombat:  TraitAggression,
	CategoryTrading: TraitGreed,
	CategoryExplore: TraitCuriosity,
	CategoryQuest:   TraitPiety,
	CategorySocial:  TraitSociability,
}

type archetypeBias struct {
	trait Trait
	bonus int
}

var backstoryArchetype = map[string]string{
	"soldier":    "warrior",
	"mercenary":  "warrior",
	"caravan":    "merchant",
	"shopkeep":   "merchant",
	"apprentice": "scholar",
	"scribe":     "scholar",
	"acolyte":    "priest",
	"pilgrim":    "priest",
	"minstrel":   "bard",
	"orphan":     "drifter",
}

var archetypeBiases = map[string]archetypeBias{
	"warrior":  {TraitAggression, 20},
	"merchant": {TraitGreed, 20},
	"scholar":  {TraitCuriosity, 15},
	"priest":   {TraitPiety, 20},
	"bard":     {TraitSociability, 15},
	"drifter":  {TraitCuriosity, 15},
}

const (
	traitBaseline    = 50
	traitMin         = 0
	traitMax         = 100
	evolveEvery      = 10
	evolveGain       = 2
	evolveGainCap    = 80
	evolveDecay      = 1
	evolveDecayFloor = 20
)

// InitPersonality seeds all traits at 50 and applies the fixed archetype
// bias looked up from the backstory tag. Unknown backstories fall back to
// the drifter archetype.
func InitPersonality(backstory string) PersonalityProfile {
	archetype, ok := backstoryArchetype[backstory]
	if !ok {
		archetype = "drifter"
	}
	traits := Traits{
		Aggression:  traitBaseline,
		Greed:       traitBaseline,
		Curiosity:   traitBaseline,
		Piety:       traitBaseline,
		Sociability: traitBaseline,
	}
	if bias, ok := archetypeBiases[archetype]; ok {
		traits = traits.set(bias.trait, clampTrait(traits.get(bias.trait)+bias.bonus, traitMin, traitMax))
	}
	return PersonalityProfile{
		Archetype: archetype,
		Traits:    traits,
		Evolution: Evolution{ActionCounts: make(map[ActionCategory]int)},
	}
}

// EvolvePersonality is a pure transformation: the returned profile has
// the category count incremented, and on every 10th occurrence of a
// mapped category its trait gains +2 (capped at 80) while every other
// trait decays by 1 (floored at 20). Unmapped categories only count.
func EvolvePersonality(p PersonalityProfile, category ActionCategory, now time.Time) PersonalityProfile {
	next := p.clone()
	if next.Evolution.ActionCounts == nil {
		next.Evolution.ActionCounts = make(map[ActionCategory]int)
	}
	next.Evolution.ActionCounts[category]++
	next.Evolution.LastUpdate = now

	trained, mapped := categoryTrait[category]
	if !mapped || next.Evolution.ActionCounts[category]%evolveEvery != 0 {
		return next
	}

	for _, trait := range []Trait{TraitAggression, TraitGreed, TraitCuriosity, TraitPiety, TraitSociability} {
		v := next.Traits.get(trait)
		if trait == trained {
			if v < evolveGainCap {
				v = clampTrait(v+evolveGain, traitMin, evolveGainCap)
			}
		} else {
			if v > evolveDecayFloor {
				v = clampTrait(v-evolveDecay, evolveDecayFloor, traitMax)
			}
		}
		next.Traits = next.Traits.set(trait, v)
	}
	return next
}

// PersonalityModifier maps the trained trait's value linearly onto
// [0.8, 1.4]. Categories without a mapped trait are neutral.
func PersonalityModifier(p PersonalityProfile, category ActionCategory) float64 {
	trait, mapped := categoryTrait[category]
	if !mapped {
		return 1.0
	}
	return 0.8 + float64(p.Traits.get(trait))/float64(traitMax)*0.6
}

func clampTrait(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
