package logging

import "time"

// #region event-kind
// Event kinds written to run_events.
const (
	EventRunCompleted  = "run_completed"
	EventRunFailed     = "run_failed"
	EventCSVExported   = "csv_exported"
	EventPlotsRendered = "plots_rendered"
	EventCheckFailed   = "check_failed"
	EventCheckPassed   = "check_passed"
)

// #endregion event-kind

// #region event-entry
// EventEntry is a single row in the run_events table.
type EventEntry struct {
	ID        int64
	RunID     string // empty for runs that never produced a table
	Variant   string
	Event     string
	Detail    string
	CreatedAt time.Time
}

// #endregion event-entry
