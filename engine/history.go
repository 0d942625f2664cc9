package engine

import (
	"encoding/json"
	"time"
)

// HistoryEntry records one performed action.
type HistoryEntry struct {
	Category  ActionCategory `json:"category"`
	Name      string         `json:"name"`
	Timestamp time.Time      `json:"timestamp"`
}

// ActionHistory is a bounded circular buffer of performed actions. Once
// warm, its length stays constant: appending evicts the oldest entry.
// Append copies the backing storage, so histories behave as values and an
// older character snapshot is never affected by a newer tick.
type ActionHistory struct {
	entries []HistoryEntry
	head    int // next write position
	size    int
}

// NewActionHistory creates an empty history with a fixed capacity.
func NewActionHistory(capacity int) ActionHistory {
	if capacity <= 0 {
		capacity = 1
	}
	return ActionHistory{entries: make([]HistoryEntry, capacity)}
}

func (h ActionHistory) Len() int      { return h.size }
func (h ActionHistory) Capacity() int { return len(h.entries) }

// Append returns a new history with e added, evicting the oldest entry
// when full.
func (h ActionHistory) Append(e HistoryEntry) ActionHistory {
	if len(h.entries) == 0 {
		h = NewActionHistory(1)
	}
	next := ActionHistory{
		entries: append([]HistoryEntry(nil), h.entries...),
		head:    h.head,
		size:    h.size,
	}
	next.entries[next.head] = e
	next.head = (next.head + 1) % len(next.entries)
	if next.size < len(next.entries) {
		next.size++
	}
	return next
}

// Recent returns up to n entries, newest first.
func (h ActionHistory) Recent(n int) []HistoryEntry {
	if n > h.size {
		n = h.size
	}
	out := make([]HistoryEntry, 0, n)
	for i := 1; i <= n; i++ {
		idx := (h.head - i + len(h.entries)) % len(h.entries)
		out = append(out, h.entries[idx])
	}
	return out
}

// CountRecent counts how many of the last window entries share category.
func (h ActionHistory) CountRecent(category ActionCategory, window int) int {
	count := 0
	for _, e := range h.Recent(window) {
		if e.Category == category {
			count++
		}
	}
	return count
}

type historyWire struct {
	Capacity int            `json:"capacity"`
	Entries  []HistoryEntry `json:"entries"` // oldest first
}

func (h ActionHistory) MarshalJSON() ([]byte, error) {
	oldest := h.Recent(h.size)
	// reverse to oldest-first
	for i, j := 0, len(oldest)-1; i < j; i, j = i+1, j-1 {
		oldest[i], oldest[j] = oldest[j], oldest[i]
	}
	return json.Marshal(historyWire{Capacity: h.Capacity(), Entries: oldest})
}

func (h *ActionHistory) UnmarshalJSON(data []byte) error {
	var w historyWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	next := NewActionHistory(w.Capacity)
	for _, e := range w.Entries {
		next = next.Append(e)
	}
	*h = next
	return nil
}
