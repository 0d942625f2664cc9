// Package sim runs batch tick simulations against a private working copy
// of a character and extracts behavioral metrics: action distribution,
// idle ratio, degenerate-loop detection and log samples.
package sim

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"idlerpg-lite/engine"
	"idlerpg-lite/gamedata"
)

// Options tune one batch run.
type Options struct {
	Ticks int
	// TickInterval is the simulated wall-clock gap between ticks
	// (default 30s). The run drives its own clock so in-progress
	// actions and regen behave as they would in real time.
	TickInterval time.Duration
	// Seed fixes the engine RNG; same seed, same run.
	Seed int64
	// Start anchors the simulated clock (default: current time).
	Start time.Time
	// LogSample bounds the first/last log excerpts (default 5).
	LogSample int
}

// CategoryRun is the longest consecutive run of one category.
type CategoryRun struct {
	Category string `json:"category"`
	Length   int    `json:"length"`
}

// Report is the aggregate outcome of a batch run.
type Report struct {
	RunID          string           `json:"runId"`
	CharacterID    string           `json:"characterId"`
	Ticks          int              `json:"ticks"`
	IdleTicks      int              `json:"idleTicks"`
	IdlePercent    float64          `json:"idlePercent"`
	CategoryCounts map[string]int   `json:"categoryCounts"`
	ActionCounts   map[string]int   `json:"actionCounts"`
	LongestRun     CategoryRun      `json:"longestRun"`
	Cycle          []string         `json:"cycle,omitempty"`
	FirstLog       []string         `json:"firstLog"`
	LastLog        []string         `json:"lastLog"`
	Final          engine.Character `json:"final"`
}

// steppingClock advances by a fixed interval per tick so a batch run is
// reproducible and independent of the host clock.
type steppingClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *steppingClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *steppingClock) advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

// Run executes opts.Ticks sequential ticks over a working copy of c.
// The tick count is clamped to cfg.MaxSimulationTicks.
func Run(cfg engine.Config, deps engine.Deps, c engine.Character, gd *gamedata.Tables, opts Options) (Report, error) {
	ticks := opts.Ticks
	if ticks < 0 {
		ticks = 0
	}
	if ticks > cfg.MaxSimulationTicks {
		ticks = cfg.MaxSimulationTicks
	}
	interval := opts.TickInterval
	if interval <= 0 {
		interval = 30 * time.Second
	}
	sample := opts.LogSample
	if sample <= 0 {
		sample = 5
	}
	start := opts.Start
	if start.IsZero() {
		start = time.Now()
	}

	clock := &steppingClock{t: start}
	cfg.Clock = clock.Now
	cfg.Seed = opts.Seed
	eng, err := engine.NewEngine(cfg, deps)
	if err != nil {
		return Report{}, err
	}

	report := Report{
		RunID:          uuid.NewString(),
		CharacterID:    c.ID,
		CategoryCounts: make(map[string]int),
		ActionCounts:   make(map[string]int),
	}

	cur := c.Clone()
	cur.UpdatedAt = start
	var logLines []string
	var categories []string
	runLength, runCategory := 0, ""

	for i := 0; i < ticks; i++ {
		clock.advance(interval)
		res, err := eng.ProcessGameTick(cur, gd)
		if err != nil {
			return Report{}, err
		}
		cur = res.Character
		report.Ticks++

		if !res.Acted {
			report.IdleTicks++
			runLength, runCategory = 0, ""
			continue
		}

		cat := categoryOf(res)
		categories = append(categories, cat)
		report.CategoryCounts[cat]++
		report.ActionCounts[res.ActionName]++
		logLines = append(logLines, res.AdventureLog...)
		logLines = append(logLines, res.CombatLog...)

		if cat == runCategory {
			runLength++
		} else {
			runCategory, runLength = cat, 1
		}
		if runLength > report.LongestRun.Length {
			report.LongestRun = CategoryRun{Category: runCategory, Length: runLength}
		}
	}

	if report.Ticks > 0 {
		report.IdlePercent = float64(report.IdleTicks) / float64(report.Ticks) * 100
	}
	report.Cycle = DetectCycle(categories)
	report.FirstLog = head(logLines, sample)
	report.LastLog = tail(logLines, sample)
	report.Final = cur
	return report, nil
}

func categoryOf(res engine.TickResult) string {
	for _, s := range res.Scores {
		if s.Name == res.ActionName {
			return s.Category.String()
		}
	}
	// Fallback actions do not appear in the scored list; read the
	// category off the history instead.
	recent := res.Character.History.Recent(1)
	if len(recent) > 0 {
		return recent[0].Category.String()
	}
	return engine.CategoryMisc.String()
}

func head(lines []string, n int) []string {
	if len(lines) < n {
		n = len(lines)
	}
	return append([]string(nil), lines[:n]...)
}

func tail(lines []string, n int) []string {
	if len(lines) < n {
		n = len(lines)
	}
	return append([]string(nil), lines[len(lines)-n:]...)
}
