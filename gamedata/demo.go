package gamedata

// Demo returns a small self-contained content set used by the CLI, the
// diagnostics server and the simulator tests.
func Demo() *Tables {
	locations := []Location{
		{ID: "riverwatch", Name: "Riverwatch", Safe: true, HasShop: true, HasInn: true, HasShrine: true},
		{ID: "pinewood", Name: "Pinewood Wilds", Safe: false},
		{ID: "old_crypt", Name: "Old Crypt", Safe: false},
	}
	items := []Item{
		{ID: "healing_potion", Name: "Healing Potion", Weight: 0.5, Value: 35, Healing: true},
		{ID: "iron_sword", Name: "Iron Sword", Weight: 9, Value: 25, Weapon: true, Damage: 7},
		{ID: "steel_sword", Name: "Steel Sword", Weight: 10, Value: 45, Weapon: true, Damage: 10},
		{ID: "pelt", Name: "Wolf Pelt", Weight: 2, Value: 10},
		{ID: "herbs", Name: "Mountain Herbs", Weight: 0.1, Value: 4},
	}
	enemies := []Enemy{
		{ID: "wolf", Name: "Wolf", Level: 2},
		{ID: "bandit", Name: "Bandit", Level: 5},
		{ID: "draugr", Name: "Draugr", Level: 8},
	}
	quests := []Quest{
		{ID: "bounty_wolves", Name: "Wolf Bounty", LocationID: "pinewood", Reward: 60},
		{ID: "crypt_delve", Name: "Clear the Old Crypt", LocationID: "old_crypt", Reward: 150},
	}
	spells := []Spell{
		{ID: "healing", Name: "Healing", Cost: 12},
		{ID: "flames", Name: "Flames", Cost: 8},
	}
	shouts := []Shout{
		{ID: "unrelenting_force", Name: "Unrelenting Force"},
	}
	return New(locations, items, enemies, quests, spells, shouts)
}
