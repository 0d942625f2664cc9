package engine

import (
	"fmt"
	"time"
)

// RegenConfig holds per-second passive regeneration rates, scaled at
// tick time by the world's RegenScale.
type RegenConfig struct {
	HealthPerSecond  float64
	MagickaPerSecond float64
	StaminaPerSecond float64
}

type Config struct {
	// History
	HistoryCapacity int
	// FatigueWindow is W: how many recent history entries the
	// anti-repetition step function looks at.
	FatigueWindow int

	// SystemFloorWeight is the constant floor granted to the system
	// category during simple selection so housekeeping occasionally fires.
	SystemFloorWeight float64

	// MaxSimulationTicks caps a batch run.
	MaxSimulationTicks int

	// TraceCacheSize bounds the decision-trace cache (entries, one per
	// character).
	TraceCacheSize int

	// CategoryWeights overrides the base weight table (nil => defaults).
	CategoryWeights map[ActionCategory]float64

	Regen RegenConfig

	// RNG seed (0 => time-based)
	Seed int64

	// Clock overrides time.Now, mainly for deterministic simulation.
	Clock func() time.Time
}

// defaultCategoryWeights is the static category base-weight table.
// social and trading sit at parity on purpose.
var defaultCategoryWeights = map[ActionCategory]float64{
	CategoryCombat:   30,
	CategoryQuest:    40,
	CategoryExplore:  25,
	CategoryTravel:   20,
	CategoryRest:     15,
	CategoryLearn:    15,
	CategorySocial:   18,
	CategoryMisc:     10,
	CategorySystem:   8,
	CategoryTrading:  18,
	CategoryGather:   15,
	CategoryDelivery: 15,
}

func DefaultConfig() Config {
	return Config{
		HistoryCapacity:    50,
		FatigueWindow:      10,
		SystemFloorWeight:  3,
		MaxSimulationTicks: 10000,
		TraceCacheSize:     1024,
		Regen: RegenConfig{
			HealthPerSecond:  0.5,
			MagickaPerSecond: 0.8,
			StaminaPerSecond: 1.2,
		},
	}
}

func (c Config) validate() error {
	if c.HistoryCapacity <= 0 {
		return fmt.Errorf("HistoryCapacity must be > 0")
	}
	if c.FatigueWindow <= 0 {
		return fmt.Errorf("FatigueWindow must be > 0")
	}
	if c.FatigueWindow > c.HistoryCapacity {
		return fmt.Errorf("FatigueWindow must be <= HistoryCapacity")
	}
	if c.SystemFloorWeight < 0 {
		return fmt.Errorf("SystemFloorWeight must be >= 0")
	}
	if c.MaxSimulationTicks <= 0 {
		return fmt.Errorf("MaxSimulationTicks must be > 0")
	}
	if c.TraceCacheSize <= 0 {
		return fmt.Errorf("TraceCacheSize must be > 0")
	}
	for cat, w := range c.CategoryWeights {
		if w < 0 {
			return fmt.Errorf("category weight for %s must be >= 0", cat)
		}
	}
	return nil
}

// CategoryBaseWeight resolves the configured base weight for a category.
func (c Config) CategoryBaseWeight(cat ActionCategory) float64 {
	if c.CategoryWeights != nil {
		if w, ok := c.CategoryWeights[cat]; ok {
			return w
		}
	}
	return defaultCategoryWeights[cat]
}
