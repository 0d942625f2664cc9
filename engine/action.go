package engine

import (
	"strings"

	"idlerpg-lite/gamedata"
)

// Action is the capability interface every candidate implements.
// Perform must be all-or-nothing: it receives a snapshot copy and
// returns the next snapshot, so a failed action leaves no partial state.
type Action interface {
	Name() string
	Category() ActionCategory
	CanPerform(c Character, w WorldState, gd *gamedata.Tables) bool
	Perform(c Character, w WorldState, gd *gamedata.Tables) (Character, []LogLine, error)
}

// WeightedAction lets a candidate supply its own base weight instead of
// the category table.
type WeightedAction interface {
	Action
	BaseWeight(c Character, w WorldState, gd *gamedata.Tables) float64
}

// PrioritizedAction lets a candidate supply a coarse priority label,
// converted to a base weight via PriorityToBaseWeight.
type PrioritizedAction interface {
	Action
	Priority() GoalPriority
}

// ActionID derives a stable identifier from an action name.
func ActionID(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
}

// wanderAction is the guaranteed zero-cost fallback: always performable,
// mutates nothing but the history, and keeps the tick loop alive when
// every real candidate is filtered out or fails.
type wanderAction struct{}

// WanderActionName identifies the fallback in traces and logs.
const WanderActionName = "Wander Around"

func NewWanderAction() Action { return wanderAction{} }

func (wanderAction) Name() string             { return WanderActionName }
func (wanderAction) Category() ActionCategory { return CategoryExplore }

func (wanderAction) CanPerform(Character, WorldState, *gamedata.Tables) bool { return true }

func (wanderAction) Perform(c Character, w WorldState, gd *gamedata.Tables) (Character, []LogLine, error) {
	return c, []LogLine{{Stream: LogAdventure, Text: c.Name + " wanders around, taking in the surroundings."}}, nil
}
