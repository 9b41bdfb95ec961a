package store

import (
	"time"

	"github.com/edwinlock/resource-allocation-tool/internal/pipeline"
)

// #region run-record
// RunRecord describes one persisted table.
type RunRecord struct {
	RunID     string
	Variant   string
	Config    pipeline.Config
	RowCount  int
	CreatedAt time.Time
}

// #endregion run-record

// #region stored-run
// StoredRun pairs a run record with its rows.
type StoredRun struct {
	RunRecord
	Table pipeline.Table
}

// #endregion stored-run
