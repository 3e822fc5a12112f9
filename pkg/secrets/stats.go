package secrets

import "sync/atomic"

// Stats holds the engine's instrumentation counters. All fields are
// atomic so the engine can be driven from concurrent workers without
// coordination; the counters are for caller-side logging only and have no
// effect on detection.
type Stats struct {
	calls       atomic.Int64
	keywordHits atomic.Int64
	rulesRun    atomic.Int64
	matches     atomic.Int64
}

// StatsSnapshot is a point-in-time copy of the engine counters.
type StatsSnapshot struct {
	Calls       int64 // Detect invocations (including via SanitizeString)
	KeywordHits int64 // calls where the keyword prefilter fired
	RulesRun    int64 // rule patterns actually executed
	Matches     int64 // matches surviving heuristics and dedup
}

// Stats returns a snapshot of the engine counters.
func (e *Engine) Stats() StatsSnapshot {
	return StatsSnapshot{
		Calls:       e.stats.calls.Load(),
		KeywordHits: e.stats.keywordHits.Load(),
		RulesRun:    e.stats.rulesRun.Load(),
		Matches:     e.stats.matches.Load(),
	}
}

// ResetStats zeroes the engine counters.
func (e *Engine) ResetStats() {
	e.stats.calls.Store(0)
	e.stats.keywordHits.Store(0)
	e.stats.rulesRun.Store(0)
	e.stats.matches.Store(0)
}
