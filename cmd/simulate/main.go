// Command simulate runs a batch tick simulation against the demo
// content set and prints the behavioral report.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"time"

	"idlerpg-lite/engine"
	"idlerpg-lite/gamedata"
	"idlerpg-lite/sim"
)

func main() {
	name := flag.String("name", "Hrogar", "character name")
	backstory := flag.String("backstory", "soldier", "backstory tag (drives the personality archetype)")
	ticks := flag.Int("ticks", 200, "number of ticks to simulate")
	seed := flag.Int64("seed", 1, "RNG seed (same seed, same run)")
	interval := flag.Duration("interval", 30*time.Second, "simulated time between ticks")
	asJSON := flag.Bool("json", false, "print the full report as JSON")
	flag.Parse()

	gd := gamedata.Demo()
	cfg := engine.DefaultConfig()
	deps := engine.Deps{Catalog: sim.DemoCatalog(), World: sim.DemoWorld()}

	c := sim.DemoCharacter("demo", *name, time.Now())
	c.Personality = engine.InitPersonality(*backstory)

	report, err := sim.Run(cfg, deps, c, gd, sim.Options{
		Ticks:        *ticks,
		Seed:         *seed,
		TickInterval: *interval,
	})
	if err != nil {
		log.Fatalf("[Simulate] run failed: %v", err)
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			log.Fatalf("[Simulate] encode report: %v", err)
		}
		return
	}

	fmt.Printf("run %s: %d ticks, %.1f%% idle\n", report.RunID, report.Ticks, report.IdlePercent)
	fmt.Printf("longest run: %s x%d\n", report.LongestRun.Category, report.LongestRun.Length)
	if len(report.Cycle) > 0 {
		fmt.Printf("detected cycle: %v\n", report.Cycle)
	}
	fmt.Println("category distribution:")
	for _, line := range sortedCounts(report.CategoryCounts) {
		fmt.Println("  " + line)
	}
	fmt.Println("action distribution:")
	for _, line := range sortedCounts(report.ActionCounts) {
		fmt.Println("  " + line)
	}
	fmt.Println("log tail:")
	for _, l := range report.LastLog {
		fmt.Println("  " + l)
	}
}

func sortedCounts(counts map[string]int) []string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, fmt.Sprintf("%-28s %d", k, counts[k]))
	}
	return out
}
