package engine

import (
	"errors"
	"testing"
)

func TestProfileRegistryBuiltins(t *testing.T) {
	r := NewProfileRegistry()
	for _, code := range []string{"balanced", "aggressive", "cautious", "mercantile"} {
		if r.Get(code) == nil {
			t.Fatalf("builtin profile %q missing", code)
		}
	}
	if r.Get("nonexistent") != nil {
		t.Fatalf("unknown code should return nil")
	}
}

func TestBehaviorProfileBias(t *testing.T) {
	r := NewProfileRegistry()
	aggressive := r.Get("aggressive")
	if got := aggressive.Bias(CategoryCombat); got != 1.6 {
		t.Fatalf("aggressive combat bias = %v, want 1.6", got)
	}
	if got := aggressive.Bias(CategoryTrading); got != 1.0 {
		t.Fatalf("unset category bias = %v, want 1.0", got)
	}
	balanced := r.Get("balanced")
	if got := balanced.Bias(CategoryCombat); got != 1.0 {
		t.Fatalf("balanced bias = %v, want 1.0", got)
	}
	var nilProfile *BehaviorProfile
	if got := nilProfile.Bias(CategoryCombat); got != 1.0 {
		t.Fatalf("nil profile bias = %v, want 1.0", got)
	}
}

func TestProfileRegistrySetActive(t *testing.T) {
	r := NewProfileRegistry()
	if got := r.ActiveCode("c1"); got != DefaultProfileCode {
		t.Fatalf("default active code = %q, want %q", got, DefaultProfileCode)
	}
	if err := r.SetActive("c1", "aggressive"); err != nil {
		t.Fatalf("SetActive: %v", err)
	}
	if got := r.ActiveCode("c1"); got != "aggressive" {
		t.Fatalf("active code = %q, want aggressive", got)
	}
	err := r.SetActive("c1", "bogus")
	if !errors.Is(err, ErrUnknownProfile) {
		t.Fatalf("SetActive with unknown code: err = %v, want ErrUnknownProfile", err)
	}
	if got := r.ActiveCode("c1"); got != "aggressive" {
		t.Fatalf("failed SetActive changed the active code to %q", got)
	}
}

func TestProfileRegistryLoadFromJSON(t *testing.T) {
	r := NewProfileRegistry()
	payload := []byte(`[
		{"code": "pious", "label": "Pious", "categoryBias": {"quest": 1.3}},
		{"code": "aggressive", "label": "Berserk", "categoryBias": {"combat": 2.0}},
		{"code": "", "label": "Dropped"}
	]`)
	if err := r.LoadFromJSON(payload); err != nil {
		t.Fatalf("LoadFromJSON: %v", err)
	}
	p := r.Get("pious")
	if p == nil || p.Bias(CategoryQuest) != 1.3 {
		t.Fatalf("loaded profile missing or wrong bias: %+v", p)
	}
	if got := r.Get("aggressive").Label; got != "Berserk" {
		t.Fatalf("existing profile not overridden: label = %q", got)
	}
	if err := r.LoadFromJSON([]byte(`{not json`)); err == nil {
		t.Fatalf("malformed JSON should error")
	}
}
