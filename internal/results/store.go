// Package results persists experiment histories in SQLite, the run output
// being the sole artifact consumed by downstream reporting.
package results

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/danielpatrickdp/review-bandits/internal/simulation"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS experiments (
	experiment_id TEXT PRIMARY KEY,
	synchronized  INTEGER NOT NULL DEFAULT 0,
	num_steps     INTEGER NOT NULL,
	created_at    TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS run_steps (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	experiment_id TEXT NOT NULL,
	policy        TEXT NOT NULL,
	step          INTEGER NOT NULL,
	choice        TEXT NOT NULL,
	score         REAL NOT NULL,
	FOREIGN KEY (experiment_id) REFERENCES experiments(experiment_id)
);

CREATE INDEX IF NOT EXISTS idx_run_steps_lookup
ON run_steps(experiment_id, policy, step);
`

// #endregion schema

// #region store-struct
// Store manages experiment results in SQLite.
type Store struct {
	db *sql.DB
}

// #endregion store-struct

// #region constructor
// NewStore opens a SQLite database and runs migrations.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return nil, fmt.Errorf("pragma fk: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// #endregion constructor

// #region close
// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// #endregion close

// #region create-experiment
// CreateExperiment registers a new experiment and returns its ID.
func (s *Store) CreateExperiment(synchronized bool, numSteps int) (string, error) {
	id := uuid.New().String()
	sync := 0
	if synchronized {
		sync = 1
	}
	_, err := s.db.Exec(
		`INSERT INTO experiments (experiment_id, synchronized, num_steps, created_at)
		 VALUES (?, ?, ?, ?)`,
		id, sync, numSteps, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return "", fmt.Errorf("insert experiment: %w", err)
	}
	return id, nil
}

// #endregion create-experiment

// #region record-run
// RecordRun persists one policy's complete history atomically.
func (s *Store) RecordRun(experimentID, policy string, history []simulation.StepRecord) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		`INSERT INTO run_steps (experiment_id, policy, step, choice, score)
		 VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range history {
		if _, err := stmt.Exec(experimentID, policy, rec.Step, rec.Choice, rec.Score); err != nil {
			return fmt.Errorf("insert step %d: %w", rec.Step, err)
		}
	}
	return tx.Commit()
}

// #endregion record-run

// #region list-experiments
// ListExperiments returns the most recent experiments.
func (s *Store) ListExperiments(limit int) ([]ExperimentInfo, error) {
	rows, err := s.db.Query(
		`SELECT experiment_id, synchronized, num_steps, created_at
		 FROM experiments ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list experiments: %w", err)
	}
	defer rows.Close()

	var infos []ExperimentInfo
	for rows.Next() {
		var info ExperimentInfo
		var sync int
		var createdStr string
		if err := rows.Scan(&info.ID, &sync, &info.NumSteps, &createdStr); err != nil {
			return nil, fmt.Errorf("scan experiment: %w", err)
		}
		info.Synchronized = sync != 0
		info.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

// #endregion list-experiments

// #region summaries
// Summaries aggregates each policy's run within an experiment.
func (s *Store) Summaries(experimentID string) ([]PolicySummary, error) {
	rows, err := s.db.Query(
		`SELECT policy, COUNT(*), SUM(score), AVG(score)
		 FROM run_steps WHERE experiment_id = ?
		 GROUP BY policy ORDER BY AVG(score) DESC`, experimentID)
	if err != nil {
		return nil, fmt.Errorf("summaries: %w", err)
	}
	defer rows.Close()

	var out []PolicySummary
	for rows.Next() {
		var ps PolicySummary
		if err := rows.Scan(&ps.Policy, &ps.Steps, &ps.TotalScore, &ps.MeanScore); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		out = append(out, ps)
	}
	return out, rows.Err()
}

// #endregion summaries

// #region choice-counts
// ChoiceCounts returns how often a policy chose each arm within an experiment.
func (s *Store) ChoiceCounts(experimentID, policy string) ([]ChoiceCount, error) {
	rows, err := s.db.Query(
		`SELECT choice, COUNT(*) FROM run_steps
		 WHERE experiment_id = ? AND policy = ?
		 GROUP BY choice ORDER BY COUNT(*) DESC, choice`, experimentID, policy)
	if err != nil {
		return nil, fmt.Errorf("choice counts: %w", err)
	}
	defer rows.Close()

	var out []ChoiceCount
	for rows.Next() {
		var cc ChoiceCount
		if err := rows.Scan(&cc.Choice, &cc.Count); err != nil {
			return nil, fmt.Errorf("scan choice count: %w", err)
		}
		out = append(out, cc)
	}
	return out, rows.Err()
}

// #endregion choice-counts

// #region history
// History returns one policy's stored run in step order.
func (s *Store) History(experimentID, policy string) ([]simulation.StepRecord, error) {
	rows, err := s.db.Query(
		`SELECT step, choice, score FROM run_steps
		 WHERE experiment_id = ? AND policy = ?
		 ORDER BY step`, experimentID, policy)
	if err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}
	defer rows.Close()

	var out []simulation.StepRecord
	for rows.Next() {
		var rec simulation.StepRecord
		if err := rows.Scan(&rec.Step, &rec.Choice, &rec.Score); err != nil {
			return nil, fmt.Errorf("scan step: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// #endregion history
