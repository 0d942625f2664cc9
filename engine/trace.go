package engine

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// ScoreBreakdown is the per-factor audit trail of one candidate's score.
type ScoreBreakdown struct {
	Base      float64 `json:"base"`
	RuleBoost float64 `json:"ruleBoost"`
	Profile   float64 `json:"profile"`
	Fatigue   float64 `json:"fatigue"`
	Modifiers float64 `json:"modifiers"`
	Total     float64 `json:"total"`
}

// ActionScore is one scored candidate.
type ActionScore struct {
	ActionID  string         `json:"actionId"`
	Name      string         `json:"name"`
	Category  ActionCategory `json:"category"`
	Breakdown ScoreBreakdown `json:"breakdown"`
}

// DecisionTrace is the most recent scored candidate list for a
// character. Overwritten every tick; it is a latest snapshot, not a log.
type DecisionTrace struct {
	CharacterID string        `json:"characterId"`
	Timestamp   time.Time     `json:"timestamp"`
	Entries     []ActionScore `json:"entries"`
}

// TraceCache keeps the latest decision trace per character id. Bounded
// LRU so abandoned characters age out; the newest write wins.
type TraceCache struct {
	cache *lru.Cache[string, DecisionTrace]
}

func NewTraceCache(size int) (*TraceCache, error) {
	cache, err := lru.New[string, DecisionTrace](size)
	if err != nil {
		return nil, err
	}
	return &TraceCache{cache: cache}, nil
}

// Record overwrites the cached trace for trace.CharacterID.
func (tc *TraceCache) Record(trace DecisionTrace) {
	tc.cache.Add(trace.CharacterID, trace)
}

// Last returns the cached trace for a character, if any.
func (tc *TraceCache) Last(characterID string) (DecisionTrace, bool) {
	return tc.cache.Get(characterID)
}
