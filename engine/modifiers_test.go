package engine

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestModifierStoreSetValidation(t *testing.T) {
	s := NewModifierStore()
	cases := []struct {
		name        string
		characterID string
		m           Modifier
	}{
		{"missing character id", "", Modifier{Code: "x", Multiplier: 0.1}},
		{"missing code", "c1", Modifier{Multiplier: 0.1}},
		{"multiplier below -1", "c1", Modifier{Code: "x", Multiplier: -1.5}},
	}
	for _, tc := range cases {
		err := s.Set(tc.characterID, tc.m)
		if err == nil {
			t.Fatalf("%s: expected validation error", tc.name)
		}
		if !IsValidation(err) {
			t.Fatalf("%s: expected ValidationError, got %T", tc.name, err)
		}
	}
}

func TestModifierStoreUpsert(t *testing.T) {
	s := NewModifierStore()
	now := time.Unix(1_700_000_000, 0)

	if err := s.Set("c1", Modifier{Code: "blessing", Multiplier: 0.2}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Set("c1", Modifier{Code: "blessing", Multiplier: 0.4}); err != nil {
		t.Fatalf("Set replace: %v", err)
	}

	m, ok := s.Get("c1", "blessing", now)
	if !ok || m.Multiplier != 0.4 {
		t.Fatalf("Get after upsert = %+v ok=%v, want multiplier 0.4", m, ok)
	}
	if got := len(s.Active("c1", now)); got != 1 {
		t.Fatalf("active count = %d, want 1 after upsert by code", got)
	}
}

func TestModifierStoreExpiry(t *testing.T) {
	s := NewModifierStore()
	now := time.Unix(1_700_000_000, 0)
	past := now.Add(-time.Minute)
	future := now.Add(time.Minute)

	s.Set("c1", Modifier{Code: "stale", Multiplier: 0.5, ExpiresAt: &past})
	s.Set("c1", Modifier{Code: "fresh", Multiplier: 0.2, ExpiresAt: &future})

	if _, ok := s.Get("c1", "stale", now); ok {
		t.Fatalf("expired modifier should not be returned")
	}
	active := s.Active("c1", now)
	if len(active) != 1 || active[0].Code != "fresh" {
		t.Fatalf("active = %+v, want only fresh", active)
	}
	if got := s.Multiplier("c1", now); math.Abs(got-1.2) > 1e-9 {
		t.Fatalf("composed multiplier = %v, want 1.2 (expired entry inert)", got)
	}
}

func TestModifierStoreDelete(t *testing.T) {
	s := NewModifierStore()
	s.Set("c1", Modifier{Code: "blessing", Multiplier: 0.2})
	if err := s.Delete("c1", "blessing"); err != nil {
		t.Fatalf("delete of existing modifier: %v", err)
	}
	if err := s.Delete("c1", "blessing"); !errors.Is(err, ErrModifierNotFound) {
		t.Fatalf("delete of missing modifier = %v, want ErrModifierNotFound", err)
	}
}

func TestModifierStoreActiveSorted(t *testing.T) {
	s := NewModifierStore()
	now := time.Unix(1_700_000_000, 0)
	s.Set("c1", Modifier{Code: "zeal", Multiplier: 0.1})
	s.Set("c1", Modifier{Code: "blessing", Multiplier: 0.2})
	s.Set("c1", Modifier{Code: "haste", Multiplier: 0.3})

	active := s.Active("c1", now)
	want := []string{"blessing", "haste", "zeal"}
	for i, code := range want {
		if active[i].Code != code {
			t.Fatalf("active[%d] = %s, want %s", i, active[i].Code, code)
		}
	}
}

func TestComposeModifierMultiplier(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)

	got := ComposeModifierMultiplier([]Modifier{
		{Code: "a", Multiplier: 0.2},
		{Code: "b", Multiplier: 0.1},
	}, now)
	if math.Abs(got-1.3) > 1e-9 {
		t.Fatalf("compose(+0.2, +0.1) = %v, want 1.3", got)
	}

	got = ComposeModifierMultiplier([]Modifier{
		{Code: "a", Multiplier: -0.9},
		{Code: "b", Multiplier: -0.9},
	}, now)
	if got != 0 {
		t.Fatalf("compose should clamp at zero, got %v", got)
	}

	if got := ComposeModifierMultiplier(nil, now); got != 1.0 {
		t.Fatalf("compose of no entries = %v, want 1.0", got)
	}
}
