package engine

import "idlerpg-lite/gamedata"

// WorldState is the read-only derived context for one tick.
type WorldState struct {
	Weather    string  `json:"weather"`
	Season     string  `json:"season"`
	TimeOfDay  string  `json:"timeOfDay"`
	LocationID string  `json:"locationId"`
	Safe       bool    `json:"safe"`
	RegenScale float64 `json:"regenScale"` // weather/time-of-day regen factor
}

// WorldBuilder derives the world state for a character. Supplied by the
// caller; the engine treats it as an external collaborator.
type WorldBuilder interface {
	BuildWorldState(c Character, gd *gamedata.Tables) WorldState
}

// ActionCatalog supplies the per-tick candidate set. The engine imposes
// no size limit and assumes the listing is cheap.
type ActionCatalog interface {
	ListPossibleActions(c Character, gd *gamedata.Tables) []Action
}

// WorldBuilderFunc adapts a function to the WorldBuilder interface.
type WorldBuilderFunc func(c Character, gd *gamedata.Tables) WorldState

func (f WorldBuilderFunc) BuildWorldState(c Character, gd *gamedata.Tables) WorldState {
	return f(c, gd)
}

// ActionCatalogFunc adapts a function to the ActionCatalog interface.
type ActionCatalogFunc func(c Character, gd *gamedata.Tables) []Action

func (f ActionCatalogFunc) ListPossibleActions(c Character, gd *gamedata.Tables) []Action {
	return f(c, gd)
}
