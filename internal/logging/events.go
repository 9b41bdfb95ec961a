package logging

import (
	"database/sql"
	"fmt"
	"time"
)

// #region log-event
// LogEvent writes an entry to the run_events table.
func LogEvent(db *sql.DB, entry EventEntry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	_, err := db.Exec(
		`INSERT INTO run_events (run_id, variant, event, detail, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		nullIfEmpty(entry.RunID),
		entry.Variant,
		entry.Event,
		nullIfEmpty(entry.Detail),
		entry.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("log event: %w", err)
	}
	return nil
}

// #endregion log-event

// #region list-events
// ListEvents returns the most recent events, newest first.
func ListEvents(db *sql.DB, limit int) ([]EventEntry, error) {
	rows, err := db.Query(
		`SELECT id, run_id, variant, event, detail, created_at
		 FROM run_events ORDER BY id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var out []EventEntry
	for rows.Next() {
		var e EventEntry
		var runID, detail sql.NullString
		var createdStr string
		if err := rows.Scan(&e.ID, &runID, &e.Variant, &e.Event, &detail, &createdStr); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		e.RunID = runID.String
		e.Detail = detail.String
		e.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		out = append(out, e)
	}
	return out, rows.Err()
}

// #endregion list-events

// #region helpers
func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// #endregion helpers
