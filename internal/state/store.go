// Package state records the history of statements executed through the
// CLI in a local SQLite database.
package state

import "time"

// RunStatus is the lifecycle state of one recorded statement execution.
type RunStatus string

// Run statuses.
const (
	RunStatusRunning RunStatus = "running"
	RunStatusSuccess RunStatus = "success"
	RunStatusError   RunStatus = "error"
)

// Run is one recorded statement execution.
type Run struct {
	ID         string
	Query      string
	Status     RunStatus
	StartedAt  time.Time
	FinishedAt *time.Time
	RowCount   int64
	Error      string
}

// Store persists run history.
type Store interface {
	// Open opens the store at path (":memory:" for in-memory).
	Open(path string) error

	// Close closes the store.
	Close() error

	// Migrate applies pending schema migrations.
	Migrate() error

	// StartRun records the start of a statement execution.
	StartRun(query string) (*Run, error)

	// FinishRun records the outcome of a run.
	FinishRun(id string, status RunStatus, rowCount int64, runErr error) error

	// ListRuns returns up to limit runs, most recent first.
	ListRuns(limit int) ([]*Run, error)
}
