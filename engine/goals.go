package engine

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

type GoalType string

const (
	GoalEarnGold    GoalType = "earn_gold"
	GoalHeal        GoalType = "heal"
	GoalDivineFavor GoalType = "divine_favor"
	GoalEquipBetter GoalType = "equip_better"
)

// Goal is a prioritized behavioral objective derived from character and
// world state. The current (top) goal biases scoring via GoalBoost.
type Goal struct {
	ID          string       `json:"id"`
	Type        GoalType     `json:"type"`
	Description string       `json:"description"`
	Priority    GoalPriority `json:"priority"`
	Target      string       `json:"target,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
	ExpiresAt   *time.Time   `json:"expiresAt,omitempty"`
}

const (
	lowGoldThreshold  = 100
	lowHealthFraction = 0.5
	lowDivineFavor    = 30
)

// GenerateGoals evaluates a fixed ordered condition set and returns all
// matching goals sorted descending by priority. The sort is stable, so
// equal priorities keep insertion order.
func GenerateGoals(c Character, w WorldState, now time.Time) []Goal {
	var goals []Goal
	add := func(t GoalType, p GoalPriority, desc, target string) {
		goals = append(goals, Goal{
			ID:          fmt.Sprintf("%s_%d", t, len(goals)),
			Type:        t,
			Description: desc,
			Priority:    p,
			Target:      target,
			CreatedAt:   now,
		})
	}

	if c.Inventory.Gold < lowGoldThreshold {
		add(GoalEarnGold, PriorityHigh, "coin purse is running low", "")
	}
	if c.Stats.Health.Fraction() < lowHealthFraction {
		add(GoalHeal, PriorityUrgent, "wounds need tending", "")
	}
	if c.DivineFavor < lowDivineFavor {
		add(GoalDivineFavor, PriorityMedium, "the gods feel distant", "")
	}
	if c.Equipment.WeaponID == "" {
		add(GoalEquipBetter, PriorityMedium, "no weapon equipped", "")
	}
	if c.GeneratedQuest != nil {
		add(GoalEarnGold, PriorityHigh, "an open contract awaits", c.GeneratedQuest.ID)
	}

	sort.SliceStable(goals, func(i, j int) bool {
		return goals[i].Priority > goals[j].Priority
	})
	return goals
}

// SelectTopGoal returns the highest-priority goal or nil.
func SelectTopGoal(goals []Goal) *Goal {
	if len(goals) == 0 {
		return nil
	}
	g := goals[0]
	return &g
}

type goalBoostRule struct {
	nameContains string
	category     ActionCategory
	hasCategory  bool
	boost        float64
}

var goalBoosts = map[GoalType][]goalBoostRule{
	GoalEarnGold: {
		{category: CategoryTrading, hasCategory: true, boost: 1.5},
		{category: CategoryDelivery, hasCategory: true, boost: 1.5},
		{category: CategoryQuest, hasCategory: true, boost: 1.4},
	},
	GoalHeal: {
		{category: CategoryRest, hasCategory: true, boost: 2.0},
		{nameContains: "potion", boost: 2.5},
	},
	GoalDivineFavor: {
		{nameContains: "pray", boost: 1.8},
		{nameContains: "shrine", boost: 1.8},
	},
	GoalEquipBetter: {
		{category: CategorySystem, hasCategory: true, boost: 1.5},
		{nameContains: "equip", boost: 1.5},
	},
}

// GoalBoost returns the multiplier the current goal applies to an action,
// 1.0 when no pattern matches or no goal is active. Multiple matching
// patterns compound.
func GoalBoost(goal *Goal, actionName string, category ActionCategory) float64 {
	if goal == nil {
		return 1.0
	}
	boost := 1.0
	lower := strings.ToLower(actionName)
	for _, rule := range goalBoosts[goal.Type] {
		if rule.nameContains != "" && strings.Contains(lower, rule.nameContains) {
			boost *= rule.boost
			continue
		}
		if rule.hasCategory && rule.category == category {
			boost *= rule.boost
		}
	}
	return boost
}
