package engine

import "time"

// Stat is a regenerating resource. Current never exceeds Max.
type Stat struct {
	Current float64 `json:"current"`
	Max     float64 `json:"max"`
}

// Fraction returns Current/Max in [0,1]. A zero Max reads as empty.
func (s Stat) Fraction() float64 {
	if s.Max <= 0 {
		return 0
	}
	f := s.Current / s.Max
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

func (s Stat) add(delta float64) Stat {
	s.Current += delta
	if s.Current > s.Max {
		s.Current = s.Max
	}
	if s.Current < 0 {
		s.Current = 0
	}
	return s
}

type Stats struct {
	Health  Stat `json:"health"`
	Magicka Stat `json:"magicka"`
	Stamina Stat `json:"stamina"`
}

// CurrentAction is an in-progress action occupying the character.
type CurrentAction struct {
	Name             string         `json:"name"`
	Category         ActionCategory `json:"category"`
	Duration         time.Duration  `json:"duration"`
	OriginalDuration time.Duration  `json:"originalDuration"`
	StartedAt        time.Time      `json:"startedAt"`
	QuestID          string         `json:"questId,omitempty"`
}

// GeneratedQuest is the multi-step quest state the goal manager keys on.
type GeneratedQuest struct {
	ID    string `json:"id"`
	Step  int    `json:"step"`
	Steps int    `json:"steps"`
}

// ItemRef is an inventory stack; item metadata lives in gamedata.
type ItemRef struct {
	ItemID string `json:"itemId"`
	Count  int    `json:"count"`
}

// Inventory and Equipment belong to the wider game domain; the engine
// only reads them (carry weight, healing potions, equipped weapon).
type Inventory struct {
	Gold           int64     `json:"gold"`
	CarryWeight    float64   `json:"carryWeight"`
	MaxCarryWeight float64   `json:"maxCarryWeight"`
	Items          []ItemRef `json:"items"`
}

type Equipment struct {
	WeaponID string `json:"weaponId,omitempty"`
	ArmorID  string `json:"armorId,omitempty"`
}

// Analytics counters, maintained by the tick machine.
type Analytics struct {
	TicksProcessed   uint64 `json:"ticksProcessed"`
	ActionsPerformed uint64 `json:"actionsPerformed"`
	ActionsFailed    uint64 `json:"actionsFailed"`
}

// Character is the full character snapshot. The engine receives and
// returns whole values and never retains a reference; Clone guards the
// shared slices and maps so an input snapshot stays untouched.
type Character struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Level       int        `json:"level"`
	Mood        float64    `json:"mood"` // 0..100
	Status      Status     `json:"status"`
	StatusUntil *time.Time `json:"statusUntil,omitempty"`
	Stats       Stats      `json:"stats"`
	LocationID  string     `json:"locationId"`

	CurrentAction  *CurrentAction  `json:"currentAction,omitempty"`
	CryptQuestID   string          `json:"cryptQuestId,omitempty"`
	GeneratedQuest *GeneratedQuest `json:"generatedQuest,omitempty"`

	Effects     []ActiveEffect     `json:"effects"`
	History     ActionHistory      `json:"actionHistory"`
	Personality PersonalityProfile `json:"personality"`
	DivineFavor float64            `json:"divineFavor"`
	Inventory   Inventory          `json:"inventory"`
	Equipment   Equipment          `json:"equipment"`
	Analytics   Analytics          `json:"analytics"`

	// UpdatedAt is the last tick time; regen scales by the elapsed gap.
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewCharacter seeds a fresh character with full stats and a personality
// derived from the backstory tag.
func NewCharacter(id, name, backstory string, historyCapacity int, now time.Time) Character {
	return Character{
		ID:     id,
		Name:   name,
		Level:  1,
		Mood:   60,
		Status: StatusIdle,
		Stats: Stats{
			Health:  Stat{Current: 100, Max: 100},
			Magicka: Stat{Current: 100, Max: 100},
			Stamina: Stat{Current: 100, Max: 100},
		},
		LocationID:  "riverwatch",
		History:     NewActionHistory(historyCapacity),
		Personality: InitPersonality(backstory),
		DivineFavor: 50,
		Inventory: Inventory{
			Gold:           50,
			MaxCarryWeight: 150,
		},
		UpdatedAt: now,
	}
}

// Clone returns a deep copy safe to mutate independently.
func (c Character) Clone() Character {
	out := c
	if c.StatusUntil != nil {
		t := *c.StatusUntil
		out.StatusUntil = &t
	}
	if c.CurrentAction != nil {
		a := *c.CurrentAction
		out.CurrentAction = &a
	}
	if c.GeneratedQuest != nil {
		q := *c.GeneratedQuest
		out.GeneratedQuest = &q
	}
	out.Effects = append([]ActiveEffect(nil), c.Effects...)
	out.Inventory.Items = append([]ItemRef(nil), c.Inventory.Items...)
	out.Personality = c.Personality.clone()
	// History already copies on append; share the backing array here.
	return out
}

// HasItem reports whether the inventory holds at least one of itemID.
func (c Character) HasItem(itemID string) bool {
	for _, it := range c.Inventory.Items {
		if it.ItemID == itemID && it.Count > 0 {
			return true
		}
	}
	return false
}

// AddItem returns the character with count of itemID added (or removed,
// for a negative count; stacks never go below zero).
func (c Character) AddItem(itemID string, count int) Character {
	items := append([]ItemRef(nil), c.Inventory.Items...)
	for i := range items {
		if items[i].ItemID == itemID {
			items[i].Count += count
			if items[i].Count < 0 {
				items[i].Count = 0
			}
			c.Inventory.Items = items
			return c
		}
	}
	if count > 0 {
		items = append(items, ItemRef{ItemID: itemID, Count: count})
	}
	c.Inventory.Items = items
	return c
}
