package sim

import (
	"errors"
	"fmt"
	"time"

	"idlerpg-lite/engine"
	"idlerpg-lite/gamedata"
)

// demoAction is a self-contained candidate used by the demo catalog.
type demoAction struct {
	name     string
	category engine.ActionCategory
	can      func(engine.Character, engine.WorldState, *gamedata.Tables) bool
	run      func(engine.Character, engine.WorldState, *gamedata.Tables) (engine.Character, []engine.LogLine, error)
}

func (a demoAction) Name() string                    { return a.name }
func (a demoAction) Category() engine.ActionCategory { return a.category }

func (a demoAction) CanPerform(c engine.Character, w engine.WorldState, gd *gamedata.Tables) bool {
	if a.can == nil {
		return true
	}
	return a.can(c, w, gd)
}

func (a demoAction) Perform(c engine.Character, w engine.WorldState, gd *gamedata.Tables) (engine.Character, []engine.LogLine, error) {
	return a.run(c, w, gd)
}

func adventure(text string) []engine.LogLine {
	return []engine.LogLine{{Stream: engine.LogAdventure, Text: text}}
}

func combat(text string) []engine.LogLine {
	return []engine.LogLine{{Stream: engine.LogCombat, Text: text}}
}

func addStat(s engine.Stat, delta float64) engine.Stat {
	s.Current += delta
	if s.Current > s.Max {
		s.Current = s.Max
	}
	if s.Current < 0 {
		s.Current = 0
	}
	return s
}

// DemoCatalog returns a fixed candidate set covering most categories,
// enough to exercise scoring, fatigue and goal boosts end to end.
func DemoCatalog() engine.ActionCatalog {
	actions := []engine.Action{
		demoAction{
			name: "Rest at Camp", category: engine.CategoryRest,
			run: func(c engine.Character, w engine.WorldState, gd *gamedata.Tables) (engine.Character, []engine.LogLine, error) {
				c.Stats.Health = addStat(c.Stats.Health, 15)
				c.Stats.Stamina = addStat(c.Stats.Stamina, 25)
				return c, adventure(c.Name + " rests by the campfire."), nil
			},
		},
		demoAction{
			name: "Hunt Game", category: engine.CategoryCombat,
			can: func(c engine.Character, w engine.WorldState, gd *gamedata.Tables) bool {
				return c.Equipment.WeaponID != "" && c.Stats.Stamina.Fraction() > 0.2
			},
			run: func(c engine.Character, w engine.WorldState, gd *gamedata.Tables) (engine.Character, []engine.LogLine, error) {
				c.Stats.Stamina = addStat(c.Stats.Stamina, -15)
				c = c.AddItem("pelt", 1)
				c.Inventory.CarryWeight += 2
				return c, combat(c.Name + " brings down a wolf after a short chase."), nil
			},
		},
		demoAction{
			name: "Explore the Wilds", category: engine.CategoryExplore,
			can: func(c engine.Character, w engine.WorldState, gd *gamedata.Tables) bool {
				return c.Stats.Stamina.Fraction() > 0.1
			},
			run: func(c engine.Character, w engine.WorldState, gd *gamedata.Tables) (engine.Character, []engine.LogLine, error) {
				c.Stats.Stamina = addStat(c.Stats.Stamina, -10)
				c.Mood = clampMood(c.Mood + 2)
				return c, adventure(c.Name + " scouts an unfamiliar ridge."), nil
			},
		},
		demoAction{
			name: "Travel the Road", category: engine.CategoryTravel,
			run: func(c engine.Character, w engine.WorldState, gd *gamedata.Tables) (engine.Character, []engine.LogLine, error) {
				if c.LocationID == "riverwatch" {
					c.LocationID = "pinewood"
				} else {
					c.LocationID = "riverwatch"
				}
				c.Stats.Stamina = addStat(c.Stats.Stamina, -8)
				loc, _ := gd.Location(c.LocationID)
				return c, adventure(fmt.Sprintf("%s takes the road to %s.", c.Name, loc.Name)), nil
			},
		},
		demoAction{
			name: "Sell Loot", category: engine.CategoryTrading,
			can: func(c engine.Character, w engine.WorldState, gd *gamedata.Tables) bool {
				loc, ok := gd.Location(c.LocationID)
				return ok && loc.HasShop && (c.HasItem("pelt") || c.HasItem("herbs"))
			},
			run: func(c engine.Character, w engine.WorldState, gd *gamedata.Tables) (engine.Character, []engine.LogLine, error) {
				for _, id := range []string{"pelt", "herbs"} {
					for c.HasItem(id) {
						item, _ := gd.Item(id)
						c = c.AddItem(id, -1)
						c.Inventory.Gold += item.Value
						c.Inventory.CarryWeight -= item.Weight
					}
				}
				if c.Inventory.CarryWeight < 0 {
					c.Inventory.CarryWeight = 0
				}
				return c, adventure(c.Name + " haggles the shopkeeper into a fair price."), nil
			},
		},
		demoAction{
			name: "Take a Bounty", category: engine.CategoryQuest,
			can: func(c engine.Character, w engine.WorldState, gd *gamedata.Tables) bool {
				return w.Safe && c.GeneratedQuest == nil
			},
			run: func(c engine.Character, w engine.WorldState, gd *gamedata.Tables) (engine.Character, []engine.LogLine, error) {
				c.GeneratedQuest = &engine.GeneratedQuest{ID: "bounty_wolves", Steps: 3}
				return c, adventure(c.Name + " accepts a bounty posted at the notice board."), nil
			},
		},
		demoAction{
			name: "Work the Bounty", category: engine.CategoryQuest,
			can: func(c engine.Character, w engine.WorldState, gd *gamedata.Tables) bool {
				return c.GeneratedQuest != nil
			},
			run: func(c engine.Character, w engine.WorldState, gd *gamedata.Tables) (engine.Character, []engine.LogLine, error) {
				q := *c.GeneratedQuest
				q.Step++
				if q.Step >= q.Steps {
					quest, _ := gd.Quest(q.ID)
					c.GeneratedQuest = nil
					c.Inventory.Gold += quest.Reward
					return c, adventure(fmt.Sprintf("%s collects %d gold for the finished bounty.", c.Name, quest.Reward)), nil
				}
				c.GeneratedQuest = &q
				return c, combat(c.Name + " tracks the bounty deeper into the pines."), nil
			},
		},
		demoAction{
			name: "Swap Stories at the Inn", category: engine.CategorySocial,
			can: func(c engine.Character, w engine.WorldState, gd *gamedata.Tables) bool {
				loc, ok := gd.Location(c.LocationID)
				return ok && loc.HasInn
			},
			run: func(c engine.Character, w engine.WorldState, gd *gamedata.Tables) (engine.Character, []engine.LogLine, error) {
				c.Mood = clampMood(c.Mood + 5)
				return c, adventure(c.Name + " trades road stories over a mug of mead."), nil
			},
		},
		demoAction{
			name: "Practice Swordplay", category: engine.CategoryLearn,
			run: func(c engine.Character, w engine.WorldState, gd *gamedata.Tables) (engine.Character, []engine.LogLine, error) {
				c.Stats.Stamina = addStat(c.Stats.Stamina, -12)
				return c, adventure(c.Name + " drills forms until the arms burn."), nil
			},
		},
		demoAction{
			name: "Gather Herbs", category: engine.CategoryGather,
			run: func(c engine.Character, w engine.WorldState, gd *gamedata.Tables) (engine.Character, []engine.LogLine, error) {
				c = c.AddItem("herbs", 2)
				c.Inventory.CarryWeight += 0.2
				return c, adventure(c.Name + " fills a pouch with mountain herbs."), nil
			},
		},
		demoAction{
			name: "Pray at the Shrine", category: engine.CategoryMisc,
			can: func(c engine.Character, w engine.WorldState, gd *gamedata.Tables) bool {
				loc, ok := gd.Location(c.LocationID)
				return ok && loc.HasShrine
			},
			run: func(c engine.Character, w engine.WorldState, gd *gamedata.Tables) (engine.Character, []engine.LogLine, error) {
				c.DivineFavor = clampMood(c.DivineFavor + 10)
				return c, adventure(c.Name + " kneels at the shrine and feels lighter for it."), nil
			},
		},
		demoAction{
			name: "Re-equip Better Gear", category: engine.CategorySystem,
			can: func(c engine.Character, w engine.WorldState, gd *gamedata.Tables) bool {
				return bestCarriedWeapon(c, gd) != c.Equipment.WeaponID
			},
			run: func(c engine.Character, w engine.WorldState, gd *gamedata.Tables) (engine.Character, []engine.LogLine, error) {
				best := bestCarriedWeapon(c, gd)
				if best == c.Equipment.WeaponID {
					return c, nil, errors.New("no better gear to equip")
				}
				c.Equipment.WeaponID = best
				item, _ := gd.Item(best)
				return c, adventure(c.Name + " straps on the " + item.Name + "."), nil
			},
		},
		demoAction{
			name: "Deliver a Parcel", category: engine.CategoryDelivery,
			can: func(c engine.Character, w engine.WorldState, gd *gamedata.Tables) bool {
				loc, ok := gd.Location(c.LocationID)
				return ok && loc.HasShop
			},
			run: func(c engine.Character, w engine.WorldState, gd *gamedata.Tables) (engine.Character, []engine.LogLine, error) {
				c.Inventory.Gold += 8
				return c, adventure(c.Name + " runs a parcel across town for a few coins."), nil
			},
		},
	}
	return engine.ActionCatalogFunc(func(engine.Character, *gamedata.Tables) []engine.Action {
		return actions
	})
}

// DemoWorld derives weather and time-of-day from the character's last
// tick time, keeping batch runs deterministic.
func DemoWorld() engine.WorldBuilder {
	return engine.WorldBuilderFunc(func(c engine.Character, gd *gamedata.Tables) engine.WorldState {
		w := engine.WorldState{
			Weather:    "clear",
			Season:     "lastseed",
			LocationID: c.LocationID,
			RegenScale: 1.0,
		}
		hour := c.UpdatedAt.Hour()
		switch {
		case hour >= 6 && hour < 20:
			w.TimeOfDay = "day"
		default:
			w.TimeOfDay = "night"
			w.RegenScale = 0.8
		}
		if loc, ok := gd.Location(c.LocationID); ok {
			w.Safe = loc.Safe
		}
		return w
	})
}

// DemoCharacter seeds a character that can reach every demo action:
// an unequipped sword for the system action, potions for the rules.
func DemoCharacter(id, name string, now time.Time) engine.Character {
	c := engine.NewCharacter(id, name, "soldier", 50, now)
	c = c.AddItem("healing_potion", 2)
	c = c.AddItem("iron_sword", 1)
	c.Inventory.CarryWeight = 10
	return c
}

// bestCarriedWeapon returns the highest-damage weapon between the
// equipped one and the inventory.
func bestCarriedWeapon(c engine.Character, gd *gamedata.Tables) string {
	best, bestDamage := c.Equipment.WeaponID, 0
	if cur, ok := gd.Item(best); ok {
		bestDamage = cur.Damage
	}
	for _, it := range c.Inventory.Items {
		if it.Count <= 0 {
			continue
		}
		if item, ok := gd.Item(it.ItemID); ok && item.Weapon && item.Damage > bestDamage {
			best, bestDamage = item.ID, item.Damage
		}
	}
	return best
}

func clampMood(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
