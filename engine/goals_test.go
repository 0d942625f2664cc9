package engine

import (
	"math"
	"testing"
	"time"
)

func TestGenerateGoalsConditions(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	w := WorldState{Safe: true}

	c := settledCharacter("goals", now)
	if goals := GenerateGoals(c, w, now); len(goals) != 0 {
		t.Fatalf("settled character should have no goals, got %d", len(goals))
	}

	c.Inventory.Gold = 40
	c.Stats.Health.Current = 30
	c.DivineFavor = 10
	c.Equipment.WeaponID = ""
	goals := GenerateGoals(c, w, now)
	if len(goals) != 4 {
		t.Fatalf("expected 4 goals, got %d", len(goals))
	}
	if goals[0].Type != GoalHeal || goals[0].Priority != PriorityUrgent {
		t.Fatalf("top goal = %s/%d, want urgent heal", goals[0].Type, goals[0].Priority)
	}
	for i := 1; i < len(goals); i++ {
		if goals[i].Priority > goals[i-1].Priority {
			t.Fatalf("goals not sorted by priority: %d before %d", goals[i-1].Priority, goals[i].Priority)
		}
	}
}

func TestGenerateGoalsQuestContract(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	c := settledCharacter("quest-goal", now)
	c.GeneratedQuest = &GeneratedQuest{ID: "bounty_wolves", Step: 1, Steps: 3}

	goals := GenerateGoals(c, WorldState{}, now)
	if len(goals) != 1 {
		t.Fatalf("expected 1 goal, got %d", len(goals))
	}
	if goals[0].Type != GoalEarnGold || goals[0].Target != "bounty_wolves" {
		t.Fatalf("quest goal = %s target %q, want earn_gold targeting the quest", goals[0].Type, goals[0].Target)
	}
}

func TestSelectTopGoal(t *testing.T) {
	if SelectTopGoal(nil) != nil {
		t.Fatalf("empty goal list should select nil")
	}
	goals := []Goal{
		{Type: GoalHeal, Priority: PriorityUrgent},
		{Type: GoalEarnGold, Priority: PriorityHigh},
	}
	top := SelectTopGoal(goals)
	if top == nil || top.Type != GoalHeal {
		t.Fatalf("top goal = %+v, want heal", top)
	}
}

func TestGoalBoost(t *testing.T) {
	heal := &Goal{Type: GoalHeal}
	cases := []struct {
		goal     *Goal
		name     string
		category ActionCategory
		want     float64
	}{
		{nil, "Rest at Camp", CategoryRest, 1.0},
		{heal, "Rest at Camp", CategoryRest, 2.0},
		{heal, "Drink Healing Potion", CategoryMisc, 2.5},
		{heal, "Hunt Game", CategoryCombat, 1.0},
		{&Goal{Type: GoalEarnGold}, "Sell Loot", CategoryTrading, 1.5},
		{&Goal{Type: GoalEarnGold}, "Work the Bounty", CategoryQuest, 1.4},
		{&Goal{Type: GoalDivineFavor}, "Pray at the Shrine", CategoryMisc, 1.8 * 1.8},
		{&Goal{Type: GoalEquipBetter}, "Re-equip Better Gear", CategorySystem, 1.5 * 1.5},
	}
	for _, tc := range cases {
		got := GoalBoost(tc.goal, tc.name, tc.category)
		if math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("GoalBoost(%v, %q, %s) = %v, want %v", tc.goal, tc.name, tc.category, got, tc.want)
		}
	}
}
