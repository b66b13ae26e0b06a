package harness

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Journal keeps outcomes of past harness runs in SQLite, so results can be
// compared across tool releases.
type Journal struct {
	db *sql.DB
}

// RunRecord is one recorded harness run.
type RunRecord struct {
	ID        int64
	StartedAt time.Time
	GOOS      string
	Versions  map[string]string
	Total     int
	Passed    int
}

// OutcomeRecord is one recorded outcome.
type OutcomeRecord struct {
	Scenario     string
	Tool         string
	Strategy     string
	ExpectedCode int
	ActualCode   int
	Passed       bool
	Error        string
}

// OpenJournal opens or creates the journal database at path.
func OpenJournal(path string) (*Journal, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create journal directory %s: %w", dir, err)
		}
	}
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open journal at %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping journal at %s: %w", path, err)
	}
	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Journal{db: db}, nil
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			started_at INTEGER NOT NULL DEFAULT (unixepoch()),
			goos TEXT NOT NULL,
			versions TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS outcomes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id INTEGER NOT NULL REFERENCES runs(id),
			scenario TEXT NOT NULL,
			tool TEXT NOT NULL,
			strategy TEXT NOT NULL,
			expected_code INTEGER NOT NULL,
			actual_code INTEGER NOT NULL,
			passed INTEGER NOT NULL,
			error TEXT,
			output BLOB,
			duration_ms INTEGER NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_outcomes_run_id ON outcomes(run_id);
	`)
	if err != nil {
		return fmt.Errorf("failed to init journal schema: %w", err)
	}
	return nil
}

// BeginRun records the start of a run and returns its id.
func (j *Journal) BeginRun(goos string, versions map[string]string) (int64, error) {
	if versions == nil {
		versions = map[string]string{}
	}
	v, err := json.Marshal(versions)
	if err != nil {
		return 0, fmt.Errorf("marshal versions: %w", err)
	}
	res, err := j.db.Exec(`INSERT INTO runs (goos, versions) VALUES (?, ?)`, goos, string(v))
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	return res.LastInsertId()
}

// Record stores one outcome of run.
func (j *Journal) Record(run int64, o Outcome) error {
	var errText sql.NullString
	if o.Err != nil {
		errText = sql.NullString{String: o.Err.Error(), Valid: true}
	}
	_, err := j.db.Exec(`
		INSERT INTO outcomes (run_id, scenario, tool, strategy, expected_code, actual_code, passed, error, output, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run, o.Scenario.Name(), o.Scenario.Tool, o.Strategy, o.Scenario.ExpectedCode, o.Code,
		o.Passed(), errText, o.Output, o.Duration.Milliseconds())
	if err != nil {
		return fmt.Errorf("insert outcome: %w", err)
	}
	return nil
}

// Runs returns the most recent runs, newest first.
func (j *Journal) Runs(limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := j.db.Query(`
		SELECT r.id, r.started_at, r.goos, r.versions,
			COUNT(o.id), COALESCE(SUM(o.passed), 0)
		FROM runs r LEFT JOIN outcomes o ON o.run_id = r.id
		GROUP BY r.id
		ORDER BY r.id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		var r RunRecord
		var started int64
		var versions string
		if err := rows.Scan(&r.ID, &started, &r.GOOS, &versions, &r.Total, &r.Passed); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.StartedAt = time.Unix(started, 0)
		if err := json.Unmarshal([]byte(versions), &r.Versions); err != nil {
			return nil, fmt.Errorf("decode versions of run %d: %w", r.ID, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Failures returns the failed outcomes of run.
func (j *Journal) Failures(run int64) ([]OutcomeRecord, error) {
	rows, err := j.db.Query(`
		SELECT scenario, tool, strategy, expected_code, actual_code, passed, error
		FROM outcomes WHERE run_id = ? AND passed = 0 ORDER BY id`, run)
	if err != nil {
		return nil, fmt.Errorf("query failures: %w", err)
	}
	defer rows.Close()

	var out []OutcomeRecord
	for rows.Next() {
		var r OutcomeRecord
		var errText sql.NullString
		if err := rows.Scan(&r.Scenario, &r.Tool, &r.Strategy, &r.ExpectedCode, &r.ActualCode, &r.Passed, &errText); err != nil {
			return nil, fmt.Errorf("scan outcome: %w", err)
		}
		r.Error = errText.String
		out = append(out, r)
	}
	return out, rows.Err()
}

// ErrNoRuns is returned by Latest on an empty journal.
var ErrNoRuns = errors.New("harness: journal has no runs")

// Latest returns the newest run.
func (j *Journal) Latest() (RunRecord, error) {
	runs, err := j.Runs(1)
	if err != nil {
		return RunRecord{}, err
	}
	if len(runs) == 0 {
		return RunRecord{}, ErrNoRuns
	}
	return runs[0], nil
}

// Close closes the database.
func (j *Journal) Close() error {
	return j.db.Close()
}
