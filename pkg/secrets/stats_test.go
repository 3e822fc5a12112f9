package secrets

import (
	"sync"
	"testing"
)

// TestStatsCounting tests that the instrumentation counters track calls,
// prefilter hits, and surviving matches
func TestStatsCounting(t *testing.T) {
	engine := NewDefaultEngine()

	engine.Detect("nothing interesting in this ordinary sentence at all")
	engine.Detect("token = " + testGitHubPAT)
	engine.Detect("hi") // below minimum length, still a call

	stats := engine.Stats()
	if stats.Calls != 3 {
		t.Errorf("Calls = %d, want 3", stats.Calls)
	}
	if stats.KeywordHits != 1 {
		t.Errorf("KeywordHits = %d, want 1", stats.KeywordHits)
	}
	if stats.Matches != 1 {
		t.Errorf("Matches = %d, want 1", stats.Matches)
	}
	if stats.RulesRun == 0 {
		t.Error("Expected RulesRun to be non-zero")
	}
}

// TestStatsReset tests that ResetStats zeroes every counter
func TestStatsReset(t *testing.T) {
	engine := NewDefaultEngine()

	engine.Detect("token = " + testGitHubPAT)
	engine.ResetStats()

	stats := engine.Stats()
	if stats.Calls != 0 || stats.KeywordHits != 0 || stats.RulesRun != 0 || stats.Matches != 0 {
		t.Errorf("Expected zeroed counters after reset, got %+v", stats)
	}
}

// TestStatsConcurrentCallers tests that the counters stay consistent when
// the engine is driven from multiple goroutines
func TestStatsConcurrentCallers(t *testing.T) {
	engine := NewDefaultEngine()

	const workers = 8
	const callsPerWorker = 50

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < callsPerWorker; j++ {
				engine.Detect("token = " + testGitHubPAT)
				engine.SanitizeString("plain text with nothing sensitive in it")
			}
		}()
	}
	wg.Wait()

	stats := engine.Stats()
	if want := int64(workers * callsPerWorker * 2); stats.Calls != want {
		t.Errorf("Calls = %d, want %d", stats.Calls, want)
	}
	if want := int64(workers * callsPerWorker); stats.Matches != want {
		t.Errorf("Matches = %d, want %d", stats.Matches, want)
	}
}
