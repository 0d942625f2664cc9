package store

import (
	"context"
	"sync"

	"idlerpg-lite/engine"
)

// memoryService is the non-persistent backend for local runs and tests.
type memoryService struct {
	mu        sync.RWMutex
	modifiers map[string]map[string]engine.Modifier
	profiles  map[string]string
}

func NewMemoryService() Service {
	return &memoryService{
		modifiers: make(map[string]map[string]engine.Modifier),
		profiles:  make(map[string]string),
	}
}

func (s *memoryService) ListModifiers(_ context.Context, characterID string) ([]engine.Modifier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := s.modifiers[characterID]
	out := make([]engine.Modifier, 0, len(entries))
	for _, m := range entries {
		out = append(out, m)
	}
	return out, nil
}

func (s *memoryService) UpsertModifier(_ context.Context, characterID string, m engine.Modifier) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := s.modifiers[characterID]
	if entries == nil {
		entries = make(map[string]engine.Modifier)
		s.modifiers[characterID] = entries
	}
	entries[m.Code] = m
	return nil
}

func (s *memoryService) DeleteModifier(_ context.Context, characterID, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := s.modifiers[characterID]
	if _, ok := entries[code]; !ok {
		return ErrNotFound
	}
	delete(entries, code)
	return nil
}

func (s *memoryService) ProfileCode(_ context.Context, characterID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profiles[characterID], nil
}

func (s *memoryService) SetProfileCode(_ context.Context, characterID, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[characterID] = code
	return nil
}

func (s *memoryService) Close() error { return nil }
