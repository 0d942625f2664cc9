package engine

import (
	"math"
	"testing"
	"time"
)

func TestInitPersonalityArchetypes(t *testing.T) {
	cases := []struct {
		backstory string
		archetype string
		check     func(Traits) int
		want      int
	}{
		{"soldier", "warrior", func(tr Traits) int { return tr.Aggression }, 70},
		{"mercenary", "warrior", func(tr Traits) int { return tr.Aggression }, 70},
		{"caravan", "merchant", func(tr Traits) int { return tr.Greed }, 70},
		{"apprentice", "scholar", func(tr Traits) int { return tr.Curiosity }, 65},
		{"acolyte", "priest", func(tr Traits) int { return tr.Piety }, 70},
		{"minstrel", "bard", func(tr Traits) int { return tr.Sociability }, 65},
		{"orphan", "drifter", func(tr Traits) int { return tr.Curiosity }, 65},
		{"unheard-of", "drifter", func(tr Traits) int { return tr.Curiosity }, 65},
	}
	for _, tc := range cases {
		p := InitPersonality(tc.backstory)
		if p.Archetype != tc.archetype {
			t.Fatalf("backstory %q: archetype = %q, want %q", tc.backstory, p.Archetype, tc.archetype)
		}
		if got := tc.check(p.Traits); got != tc.want {
			t.Fatalf("backstory %q: biased trait = %d, want %d", tc.backstory, got, tc.want)
		}
	}
}

func TestEvolvePersonalityTenthOccurrence(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	p := InitPersonality("orphan") // all 50 except curiosity 65

	for i := 0; i < 9; i++ {
		p = EvolvePersonality(p, CategoryCombat, now)
		if p.Traits.Aggression != 50 {
			t.Fatalf("aggression moved on occurrence %d, want evolution only on the 10th", i+1)
		}
	}
	p = EvolvePersonality(p, CategoryCombat, now)
	if p.Traits.Aggression != 52 {
		t.Fatalf("aggression after 10th combat = %d, want 52", p.Traits.Aggression)
	}
	if p.Traits.Greed != 49 || p.Traits.Piety != 49 || p.Traits.Sociability != 49 {
		t.Fatalf("untrained traits should decay by 1, got greed=%d piety=%d sociability=%d",
			p.Traits.Greed, p.Traits.Piety, p.Traits.Sociability)
	}
	if p.Traits.Curiosity != 64 {
		t.Fatalf("curiosity = %d, want 64", p.Traits.Curiosity)
	}
	if p.Evolution.ActionCounts[CategoryCombat] != 10 {
		t.Fatalf("combat count = %d, want 10", p.Evolution.ActionCounts[CategoryCombat])
	}
}

func TestEvolvePersonalityBounds(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	p := InitPersonality("soldier")
	p.Traits.Aggression = 80 // already at the gain cap
	p.Traits.Greed = 20      // already at the decay floor
	p.Evolution.ActionCounts[CategoryCombat] = 9

	p = EvolvePersonality(p, CategoryCombat, now)
	if p.Traits.Aggression != 80 {
		t.Fatalf("aggression exceeded cap: %d", p.Traits.Aggression)
	}
	if p.Traits.Greed != 20 {
		t.Fatalf("greed fell through floor: %d", p.Traits.Greed)
	}
}

func TestEvolvePersonalityUnmappedCategoryOnlyCounts(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	p := InitPersonality("soldier")
	before := p.Traits
	for i := 0; i < 20; i++ {
		p = EvolvePersonality(p, CategoryTravel, now)
	}
	if p.Traits != before {
		t.Fatalf("traits moved for an unmapped category: %+v", p.Traits)
	}
	if p.Evolution.ActionCounts[CategoryTravel] != 20 {
		t.Fatalf("travel count = %d, want 20", p.Evolution.ActionCounts[CategoryTravel])
	}
}

func TestEvolvePersonalityPure(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	p := InitPersonality("soldier")
	p.Evolution.ActionCounts[CategoryCombat] = 9

	next := EvolvePersonality(p, CategoryCombat, now)
	if p.Evolution.ActionCounts[CategoryCombat] != 9 {
		t.Fatalf("input profile mutated: count = %d", p.Evolution.ActionCounts[CategoryCombat])
	}
	if p.Traits.Aggression != 70 {
		t.Fatalf("input traits mutated: aggression = %d", p.Traits.Aggression)
	}
	if next.Traits.Aggression != 72 {
		t.Fatalf("returned aggression = %d, want 72", next.Traits.Aggression)
	}
}

func TestPersonalityModifierRange(t *testing.T) {
	p := InitPersonality("soldier")

	p.Traits.Aggression = 0
	if got := PersonalityModifier(p, CategoryCombat); math.Abs(got-0.8) > 1e-9 {
		t.Fatalf("modifier at trait 0 = %v, want 0.8", got)
	}
	p.Traits.Aggression = 100
	if got := PersonalityModifier(p, CategoryCombat); math.Abs(got-1.4) > 1e-9 {
		t.Fatalf("modifier at trait 100 = %v, want 1.4", got)
	}
	p.Traits.Aggression = 50
	if got := PersonalityModifier(p, CategoryCombat); math.Abs(got-1.1) > 1e-9 {
		t.Fatalf("modifier at trait 50 = %v, want 1.1", got)
	}
	if got := PersonalityModifier(p, CategoryTravel); got != 1.0 {
		t.Fatalf("unmapped category modifier = %v, want 1.0", got)
	}
}
