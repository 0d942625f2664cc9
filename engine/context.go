package engine

import "idlerpg-lite/gamedata"

// Context is the flattened situational view the priority rules match
// against. Derived once per scoring pass.
type Context struct {
	HealthFraction   float64 `json:"healthFraction"`
	StaminaFraction  float64 `json:"staminaFraction"`
	MagickaFraction  float64 `json:"magickaFraction"`
	IsInCombat       bool    `json:"isInCombat"`
	IsLocationSafe   bool    `json:"isLocationSafe"`
	HasHealingPotion bool    `json:"hasHealingPotion"`
	IsOverencumbered bool    `json:"isOverencumbered"`
	CanTakeQuest     bool    `json:"canTakeQuest"`
	HasWeapon        bool    `json:"hasWeapon"`
	LowGold          bool    `json:"lowGold"`
	Mood             float64 `json:"mood"`
	DivineFavor      float64 `json:"divineFavor"`
}

// BuildContext flattens character and world state into rule inputs.
func BuildContext(c Character, w WorldState, gd *gamedata.Tables) Context {
	ctx := Context{
		HealthFraction:  c.Stats.Health.Fraction(),
		StaminaFraction: c.Stats.Stamina.Fraction(),
		MagickaFraction: c.Stats.Magicka.Fraction(),
		IsInCombat:      c.Status == StatusInCombat,
		IsLocationSafe:  w.Safe,
		HasWeapon:       c.Equipment.WeaponID != "",
		LowGold:         c.Inventory.Gold < lowGoldThreshold,
		Mood:            c.Mood,
		DivineFavor:     c.DivineFavor,
	}
	if c.Inventory.MaxCarryWeight > 0 {
		ctx.IsOverencumbered = c.Inventory.CarryWeight > c.Inventory.MaxCarryWeight
	}
	for _, it := range c.Inventory.Items {
		if it.Count <= 0 {
			continue
		}
		if item, ok := gd.Item(it.ItemID); ok && item.Healing {
			ctx.HasHealingPotion = true
			break
		}
	}
	// A quest is takeable when the character is free of long-running
	// quest state and the content tables offer one.
	if c.GeneratedQuest == nil && c.CryptQuestID == "" && len(gd.Quests()) > 0 {
		ctx.CanTakeQuest = true
	}
	return ctx
}
