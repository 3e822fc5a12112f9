package db

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/scrublog/scrublog/pkg/types"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	database, err := OpenPath(filepath.Join(t.TempDir(), "scrublog.db"))
	if err != nil {
		t.Fatalf("OpenPath failed: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

func testRun(runID, sessionID string, ts time.Time) *types.ScrubRun {
	return &types.ScrubRun{
		RunID:      runID,
		SessionID:  sessionID,
		SourcePath: "/tmp/" + sessionID + ".jsonl",
		OutputPath: "/tmp/" + sessionID + ".scrubbed.jsonl",
		Timestamp:  ts,
		Lines:      42,
		Redactions: 3,
		SizeBytes:  1024,
	}
}

func TestInsertAndRecentRuns(t *testing.T) {
	database := openTestDB(t)

	now := time.Now()
	run := testRun("run-1", "session-a", now)
	byRule := map[string]int{"github-pat": 2, "aws-access-token": 1}

	if err := database.InsertRun(run, byRule); err != nil {
		t.Fatalf("InsertRun failed: %v", err)
	}

	runs, err := database.GetRecentRuns(10)
	if err != nil {
		t.Fatalf("GetRecentRuns failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("got %d runs, want 1", len(runs))
	}
	got := runs[0]
	if got.RunID != "run-1" || got.SessionID != "session-a" {
		t.Errorf("unexpected run: %+v", got)
	}
	if got.Lines != 42 || got.Redactions != 3 || got.SizeBytes != 1024 {
		t.Errorf("unexpected counters: %+v", got)
	}
}

func TestRecentRunsOrderAndLimit(t *testing.T) {
	database := openTestDB(t)

	base := time.Now().Add(-time.Hour)
	for i, id := range []string{"run-old", "run-mid", "run-new"} {
		run := testRun(id, "session-a", base.Add(time.Duration(i)*time.Minute))
		if err := database.InsertRun(run, nil); err != nil {
			t.Fatalf("InsertRun failed: %v", err)
		}
	}

	runs, err := database.GetRecentRuns(2)
	if err != nil {
		t.Fatalf("GetRecentRuns failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}
	if runs[0].RunID != "run-new" || runs[1].RunID != "run-mid" {
		t.Errorf("wrong order: %s, %s", runs[0].RunID, runs[1].RunID)
	}
}

func TestGetRunRedactions(t *testing.T) {
	database := openTestDB(t)

	run := testRun("run-1", "session-a", time.Now())
	byRule := map[string]int{"github-pat": 2, "generic-secret": 5}
	if err := database.InsertRun(run, byRule); err != nil {
		t.Fatalf("InsertRun failed: %v", err)
	}

	counts, err := database.GetRunRedactions("run-1")
	if err != nil {
		t.Fatalf("GetRunRedactions failed: %v", err)
	}
	if counts["github-pat"] != 2 || counts["generic-secret"] != 5 {
		t.Errorf("unexpected counts: %v", counts)
	}
}

func TestDuplicateRunIDRejected(t *testing.T) {
	database := openTestDB(t)

	run := testRun("run-1", "session-a", time.Now())
	if err := database.InsertRun(run, nil); err != nil {
		t.Fatalf("InsertRun failed: %v", err)
	}
	if err := database.InsertRun(run, nil); err == nil {
		t.Error("expected error inserting duplicate run_id")
	}
}

func TestTotals(t *testing.T) {
	database := openTestDB(t)

	for i, id := range []string{"run-1", "run-2"} {
		run := testRun(id, "session-a", time.Now().Add(time.Duration(i)*time.Second))
		if err := database.InsertRun(run, nil); err != nil {
			t.Fatalf("InsertRun failed: %v", err)
		}
	}

	count, err := database.GetRunCount()
	if err != nil {
		t.Fatalf("GetRunCount failed: %v", err)
	}
	if count != 2 {
		t.Errorf("run count = %d, want 2", count)
	}

	total, err := database.GetTotalRedactions()
	if err != nil {
		t.Fatalf("GetTotalRedactions failed: %v", err)
	}
	if total != 6 {
		t.Errorf("total redactions = %d, want 6", total)
	}
}
