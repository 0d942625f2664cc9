package engine

// PriorityRule pairs a situational predicate with a boost applied to the
// actions it targets. Rules are independent; matching boosts multiply.
type PriorityRule struct {
	Name      string
	Matches   func(Context) bool
	AppliesTo func(actionName string, category ActionCategory) bool
	Boost     float64
}

func appliesToCategories(categories ...ActionCategory) func(string, ActionCategory) bool {
	set := make(map[ActionCategory]bool, len(categories))
	for _, c := range categories {
		set[c] = true
	}
	return func(_ string, category ActionCategory) bool { return set[category] }
}

// DefaultRules returns the fixed rule set. Boundaries are exclusive:
// healthCritical fires below 0.3, never at it.
func DefaultRules() []PriorityRule {
	return []PriorityRule{
		{
			Name: "healthCritical",
			Matches: func(ctx Context) bool {
				return ctx.HealthFraction < 0.3 && !ctx.HasHealingPotion
			},
			AppliesTo: appliesToCategories(CategoryRest, CategoryTravel),
			Boost:     5.0,
		},
		{
			Name: "drinkPotion",
			Matches: func(ctx Context) bool {
				return ctx.HealthFraction < 0.3 && ctx.HasHealingPotion
			},
			AppliesTo: func(name string, _ ActionCategory) bool {
				return ActionID(name) == "drink_healing_potion"
			},
			Boost: 8.0,
		},
		{
			Name: "overencumbered",
			Matches: func(ctx Context) bool {
				return ctx.IsOverencumbered
			},
			AppliesTo: appliesToCategories(CategoryTrading, CategorySystem),
			Boost:     3.0,
		},
		{
			Name: "takeQuest",
			Matches: func(ctx Context) bool {
				return ctx.IsLocationSafe && ctx.CanTakeQuest
			},
			AppliesTo: appliesToCategories(CategoryQuest),
			Boost:     2.0,
		},
		{
			Name: "staminaLow",
			Matches: func(ctx Context) bool {
				return ctx.StaminaFraction < 0.2
			},
			AppliesTo: appliesToCategories(CategoryRest),
			Boost:     2.5,
		},
		{
			Name: "combatUnarmed",
			Matches: func(ctx Context) bool {
				return !ctx.HasWeapon
			},
			AppliesTo: appliesToCategories(CategorySystem),
			Boost:     2.0,
		},
	}
}

// RuleBoost multiplies the boosts of every rule whose predicate matches
// ctx and whose target set includes the action.
func RuleBoost(rules []PriorityRule, ctx Context, actionName string, category ActionCategory) float64 {
	boost := 1.0
	for _, r := range rules {
		if r.Matches != nil && r.Matches(ctx) && (r.AppliesTo == nil || r.AppliesTo(actionName, category)) {
			boost *= r.Boost
		}
	}
	return boost
}

// PriorityToBaseWeight converts a coarse priority label into a numeric
// base weight, strictly increasing with priority.
func PriorityToBaseWeight(p GoalPriority) float64 {
	if p < 0 {
		return 0
	}
	return float64(p)
}
