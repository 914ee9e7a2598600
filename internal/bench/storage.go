package bench

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Storage persists scenario run history for trend tracking across
// `senars -bench` invocations. This is evaluation metadata, not
// reasoner memory — the kernel itself never persists across restarts.
//
// Grounded on benchmarks/storage.go's schema-on-open, transactional
// insert, query-latest-by-name shape, narrowed from scored benchmark
// problems to pass/fail scenario results.
type Storage struct {
	db *sql.DB
}

// Open creates (or attaches to) a sqlite-backed run history at dbPath.
func Open(dbPath string) (*Storage, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS bench_runs (
		run_id TEXT PRIMARY KEY,
		timestamp INTEGER NOT NULL,
		total_scenarios INTEGER NOT NULL,
		passed_scenarios INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS bench_results (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		scenario_name TEXT NOT NULL,
		passed INTEGER NOT NULL,
		detail TEXT,
		cycles_run INTEGER NOT NULL,
		FOREIGN KEY (run_id) REFERENCES bench_runs(run_id)
	);

	CREATE INDEX IF NOT EXISTS idx_runs_timestamp ON bench_runs(timestamp DESC);
	CREATE INDEX IF NOT EXISTS idx_results_run ON bench_results(run_id);
	`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Storage{db: db}, nil
}

// RunRecord is one persisted bench run.
type RunRecord struct {
	RunID     string
	Timestamp time.Time
	Results   []Result
}

// Save writes a full run (its scenario results) transactionally.
func (s *Storage) Save(run RunRecord) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	passed := 0
	for _, r := range run.Results {
		if r.Passed {
			passed++
		}
	}

	if _, err := tx.Exec(
		`INSERT INTO bench_runs (run_id, timestamp, total_scenarios, passed_scenarios) VALUES (?, ?, ?, ?)`,
		run.RunID, run.Timestamp.Unix(), len(run.Results), passed,
	); err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	for _, r := range run.Results {
		if _, err := tx.Exec(
			`INSERT INTO bench_results (run_id, scenario_name, passed, detail, cycles_run) VALUES (?, ?, ?, ?, ?)`,
			run.RunID, r.ScenarioName, boolToInt(r.Passed), r.Detail, r.CyclesRun,
		); err != nil {
			return fmt.Errorf("failed to insert result for %s: %w", r.ScenarioName, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Latest retrieves the most recently saved run, or nil if none exists.
func (s *Storage) Latest() (*RunRecord, error) {
	var runID string
	var timestamp int64
	err := s.db.QueryRow(
		`SELECT run_id, timestamp FROM bench_runs ORDER BY timestamp DESC LIMIT 1`,
	).Scan(&runID, &timestamp)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query latest run: %w", err)
	}

	rows, err := s.db.Query(
		`SELECT scenario_name, passed, detail, cycles_run FROM bench_results WHERE run_id = ?`, runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query results for %s: %w", runID, err)
	}
	defer rows.Close()

	record := &RunRecord{RunID: runID, Timestamp: time.Unix(timestamp, 0).UTC()}
	for rows.Next() {
		var r Result
		var passedInt int
		if err := rows.Scan(&r.ScenarioName, &passedInt, &r.Detail, &r.CyclesRun); err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		r.Passed = passedInt != 0
		record.Results = append(record.Results, r)
	}
	return record, rows.Err()
}

// Close closes the underlying database handle.
func (s *Storage) Close() error {
	return s.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
