// Package store persists the compactor run history in a local SQLite
// database. History is best-effort operational bookkeeping: failures here
// are reported to the caller but must never block crafting.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"compactor/internal/compact"
)

const historySchema = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	started_at  INTEGER NOT NULL,
	task_count  INTEGER NOT NULL,
	slots_saved INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS run_tasks (
	run_id      TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	name        TEXT NOT NULL,
	damage      INTEGER NOT NULL,
	label       TEXT NOT NULL,
	quantity    INTEGER NOT NULL,
	slots_saved INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_run_tasks_run ON run_tasks(run_id);
`

// History records completed craft runs.
type History struct {
	db *sql.DB
}

// Run is one recorded craft run.
type Run struct {
	ID         string
	StartedAt  time.Time
	TaskCount  int
	SlotsSaved int
}

// Open opens the history database at path, creating it and its parent
// directory as needed.
func Open(path string) (*History, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	if _, err := db.Exec(historySchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize history schema: %w", err)
	}
	return &History{db: db}, nil
}

// Close closes the underlying database.
func (h *History) Close() error {
	return h.db.Close()
}

// Record stores a completed run and its tasks in one transaction.
func (h *History) Record(id string, startedAt time.Time, tasks []compact.Task, slotsSaved int) error {
	tx, err := h.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`INSERT INTO runs (id, started_at, task_count, slots_saved) VALUES (?, ?, ?, ?)`,
		id, startedAt.Unix(), len(tasks), slotsSaved,
	); err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	for _, t := range tasks {
		if _, err := tx.Exec(
			`INSERT INTO run_tasks (run_id, name, damage, label, quantity, slots_saved)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			id, t.Info.Name, t.Info.Damage, t.Info.Label, t.Quantity, t.SlotsSaved,
		); err != nil {
			return fmt.Errorf("failed to insert run task: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}
	return nil
}

// Recent returns the most recent n runs, newest first.
func (h *History) Recent(n int) ([]Run, error) {
	rows, err := h.db.Query(
		`SELECT id, started_at, task_count, slots_saved FROM runs
		 ORDER BY started_at DESC, id LIMIT ?`, n,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var started int64
		if err := rows.Scan(&r.ID, &started, &r.TaskCount, &r.SlotsSaved); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		r.StartedAt = time.Unix(started, 0)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Tasks returns the tasks recorded for one run, in submission order.
func (h *History) Tasks(runID string) ([]compact.Task, error) {
	rows, err := h.db.Query(
		`SELECT name, damage, label, quantity, slots_saved FROM run_tasks
		 WHERE run_id = ? ORDER BY rowid`, runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query run tasks: %w", err)
	}
	defer rows.Close()

	var tasks []compact.Task
	for rows.Next() {
		var t compact.Task
		if err := rows.Scan(&t.Info.Name, &t.Info.Damage, &t.Info.Label, &t.Quantity, &t.SlotsSaved); err != nil {
			return nil, fmt.Errorf("failed to scan run task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// Prune keeps only the newest keep runs, deleting older ones and their
// tasks. Zero or negative keep disables pruning.
func (h *History) Prune(keep int) error {
	if keep <= 0 {
		return nil
	}
	_, err := h.db.Exec(
		`DELETE FROM runs WHERE id NOT IN (
			SELECT id FROM runs ORDER BY started_at DESC, id LIMIT ?
		)`, keep,
	)
	if err != nil {
		return fmt.Errorf("failed to prune runs: %w", err)
	}
	_, err = h.db.Exec(`DELETE FROM run_tasks WHERE run_id NOT IN (SELECT id FROM runs)`)
	if err != nil {
		return fmt.Errorf("failed to prune run tasks: %w", err)
	}
	return nil
}
