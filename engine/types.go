package engine

import "time"

// ActionCategory 动作类别（封闭枚举，用于加权与防重复）
type ActionCategory byte

const (
	CategoryCombat   ActionCategory = 0
	CategoryQuest    ActionCategory = 1
	CategoryExplore  ActionCategory = 2
	CategoryTravel   ActionCategory = 3
	CategoryRest     ActionCategory = 4
	CategoryLearn    ActionCategory = 5
	CategorySocial   ActionCategory = 6
	CategoryMisc     ActionCategory = 7
	CategorySystem   ActionCategory = 8
	CategoryTrading  ActionCategory = 9
	CategoryGather   ActionCategory = 10
	CategoryDelivery ActionCategory = 11
)

var ActionCategoryDictionary = map[ActionCategory]string{
	CategoryCombat:   "combat",
	CategoryQuest:    "quest",
	CategoryExplore:  "explore",
	CategoryTravel:   "travel",
	CategoryRest:     "rest",
	CategoryLearn:    "learn",
	CategorySocial:   "social",
	CategoryMisc:     "misc",
	CategorySystem:   "system",
	CategoryTrading:  "trading",
	CategoryGather:   "gather",
	CategoryDelivery: "delivery",
}

func (c ActionCategory) String() string {
	if s, ok := ActionCategoryDictionary[c]; ok {
		return s
	}
	return "unknown"
}

// AllCategories lists every category in declaration order.
var AllCategories = []ActionCategory{
	CategoryCombat, CategoryQuest, CategoryExplore, CategoryTravel,
	CategoryRest, CategoryLearn, CategorySocial, CategoryMisc,
	CategorySystem, CategoryTrading, CategoryGather, CategoryDelivery,
}

// Status 角色状态
type Status byte

const (
	StatusIdle           Status = 0
	StatusInCombat       Status = 1
	StatusResting        Status = 2
	StatusSleeping       Status = 3
	StatusTraveling      Status = 4
	StatusDead           Status = 5
	StatusSovngarde      Status = 6
	StatusJailed         Status = 7
	StatusSovngardeQuest Status = 8
)

var StatusDictionary = map[Status]string{
	StatusIdle:           "idle",
	StatusInCombat:       "in-combat",
	StatusResting:        "resting",
	StatusSleeping:       "sleeping",
	StatusTraveling:      "traveling",
	StatusDead:           "dead",
	StatusSovngarde:      "sovngarde",
	StatusJailed:         "jailed",
	StatusSovngardeQuest: "sovngarde-quest",
}

func (s Status) String() string {
	if v, ok := StatusDictionary[s]; ok {
		return v
	}
	return "unknown"
}

// GoalPriority doubles as the numeric base weight for priority-driven
// candidates, so the constants carry their weight values directly.
type GoalPriority int

const (
	PriorityDisabled GoalPriority = 0
	PriorityLow      GoalPriority = 5
	PriorityMedium   GoalPriority = 20
	PriorityHigh     GoalPriority = 50
	PriorityUrgent   GoalPriority = 100
)

// Trait 人格特质（封闭枚举）
type Trait byte

const (
	TraitAggression  Trait = 0
	TraitGreed       Trait = 1
	TraitCuriosity   Trait = 2
	TraitPiety       Trait = 3
	TraitSociability Trait = 4
)

var TraitDictionary = map[Trait]string{
	TraitAggression:  "aggression",
	TraitGreed:       "greed",
	TraitCuriosity:   "curiosity",
	TraitPiety:       "piety",
	TraitSociability: "sociability",
}

func (t Trait) String() string {
	if v, ok := TraitDictionary[t]; ok {
		return v
	}
	return "unknown"
}

// EffectKind buff/debuff
type EffectKind byte

const (
	EffectBuff   EffectKind = 0
	EffectDebuff EffectKind = 1
)

// ActiveEffect is a timed buff or debuff on a character.
type ActiveEffect struct {
	ID        string     `json:"id"`
	Kind      EffectKind `json:"kind"`
	ExpiresAt time.Time  `json:"expiresAt"`
}

// LogStream routes a produced log line to the adventure or combat feed.
type LogStream byte

const (
	LogAdventure LogStream = 0
	LogCombat    LogStream = 1
)

// LogLine is one narration line emitted by an action's Perform.
type LogLine struct {
	Stream LogStream
	Text   string
}
