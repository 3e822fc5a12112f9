package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/scrublog/scrublog/pkg/config"
	"github.com/scrublog/scrublog/pkg/types"
)

const dbFileName = "scrublog.db"

// DB wraps the SQLite database connection
type DB struct {
	conn *sql.DB
	path string
}

// Open opens or creates the scrublog database under the scrublog directory
func Open() (*DB, error) {
	dir, err := config.GetScrublogDir()
	if err != nil {
		return nil, err
	}
	return OpenPath(filepath.Join(dir, dbFileName))
}

// OpenPath opens or creates a database at an explicit path
func OpenPath(dbPath string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create db directory: %w", err)
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db := &DB{
		conn: conn,
		path: dbPath,
	}

	if err := db.initSchema(); err != nil {
		conn.Close()
		return nil, err
	}

	return db, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// Path returns the database file path
func (db *DB) Path() string {
	return db.path
}

// initSchema creates tables if they don't exist
func (db *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		run_id TEXT PRIMARY KEY,
		session_id TEXT NOT NULL,
		source_path TEXT NOT NULL,
		output_path TEXT NOT NULL,
		timestamp DATETIME NOT NULL,
		lines INTEGER NOT NULL,
		redactions INTEGER NOT NULL,
		size_bytes INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS redactions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		rule_id TEXT NOT NULL,
		count INTEGER NOT NULL,
		FOREIGN KEY (run_id) REFERENCES runs(run_id)
	);

	CREATE INDEX IF NOT EXISTS idx_runs_timestamp ON runs(timestamp);
	CREATE INDEX IF NOT EXISTS idx_runs_session ON runs(session_id);
	CREATE INDEX IF NOT EXISTS idx_redactions_run ON redactions(run_id);
	`

	if _, err := db.conn.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	return nil
}

// InsertRun stores a scrub run and its per-rule redaction counts
func (db *DB) InsertRun(run *types.ScrubRun, byRule map[string]int) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	runSQL := `
		INSERT INTO runs (run_id, session_id, source_path, output_path, timestamp, lines, redactions, size_bytes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = tx.Exec(runSQL,
		run.RunID,
		run.SessionID,
		run.SourcePath,
		run.OutputPath,
		run.Timestamp,
		run.Lines,
		run.Redactions,
		run.SizeBytes,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	ruleSQL := `
		INSERT INTO redactions (run_id, rule_id, count)
		VALUES (?, ?, ?)
	`
	for ruleID, count := range byRule {
		if _, err := tx.Exec(ruleSQL, run.RunID, ruleID, count); err != nil {
			return fmt.Errorf("failed to insert redaction count: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetRecentRuns returns the N most recent scrub runs
func (db *DB) GetRecentRuns(limit int) ([]types.ScrubRun, error) {
	query := `
		SELECT run_id, session_id, source_path, output_path, timestamp, lines, redactions, size_bytes
		FROM runs
		ORDER BY timestamp DESC
		LIMIT ?
	`

	rows, err := db.conn.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []types.ScrubRun
	for rows.Next() {
		var r types.ScrubRun
		if err := rows.Scan(
			&r.RunID,
			&r.SessionID,
			&r.SourcePath,
			&r.OutputPath,
			&r.Timestamp,
			&r.Lines,
			&r.Redactions,
			&r.SizeBytes,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}

	return runs, nil
}

// GetRunRedactions returns the per-rule redaction counts for a run
func (db *DB) GetRunRedactions(runID string) (map[string]int, error) {
	rows, err := db.conn.Query("SELECT rule_id, count FROM redactions WHERE run_id = ?", runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query redactions: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var ruleID string
		var count int
		if err := rows.Scan(&ruleID, &count); err != nil {
			return nil, fmt.Errorf("failed to scan redaction: %w", err)
		}
		counts[ruleID] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating redactions: %w", err)
	}

	return counts, nil
}

// GetRunCount returns the total number of scrub runs
func (db *DB) GetRunCount() (int, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(*) FROM runs").Scan(&count)
	return count, err
}

// GetTotalRedactions returns the sum of redactions across all runs
func (db *DB) GetTotalRedactions() (int, error) {
	var total int
	err := db.conn.QueryRow("SELECT COALESCE(SUM(redactions), 0) FROM runs").Scan(&total)
	return total, err
}
