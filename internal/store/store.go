package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/edwinlock/resource-allocation-tool/internal/grid"
	"github.com/edwinlock/resource-allocation-tool/internal/logging"
	"github.com/edwinlock/resource-allocation-tool/internal/pipeline"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id       TEXT PRIMARY KEY,
	variant      TEXT NOT NULL,
	gamma        REAL NOT NULL,
	sessions     REAL NOT NULL,
	reference_x  REAL NOT NULL,
	row_count    INTEGER NOT NULL,
	created_at   TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS run_rows (
	run_id       TEXT NOT NULL,
	row_index    INTEGER NOT NULL,
	a_high       REAL NOT NULL,
	a_low        REAL NOT NULL,
	a_gap        TEXT NOT NULL,
	x_high       INTEGER NOT NULL,
	x_low        INTEGER NOT NULL,
	sigma        REAL NOT NULL,
	theta        INTEGER NOT NULL,
	scenario     TEXT NOT NULL,
	alpha        REAL NOT NULL,
	h_high       REAL NOT NULL,
	h_low        REAL NOT NULL,
	e_high       REAL NOT NULL,
	e_low        REAL NOT NULL,
	e1_rounded   INTEGER NOT NULL,
	e2_rounded   INTEGER NOT NULL,
	e_tot        INTEGER NOT NULL,
	PRIMARY KEY (run_id, row_index),
	FOREIGN KEY (run_id) REFERENCES runs(run_id)
);

CREATE TABLE IF NOT EXISTS run_events (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id       TEXT,
	variant      TEXT NOT NULL,
	event        TEXT NOT NULL,
	detail       TEXT,
	created_at   TEXT NOT NULL
);
`

// #endregion schema

// #region store-struct
// Store persists derived tables in SQLite.
type Store struct {
	db  *sql.DB
	log *zap.Logger
}

// #endregion store-struct

// #region constructor
// NewStore opens a SQLite database and runs migrations. A nil logger
// discards output.
func NewStore(dbPath string, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma fk: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db, log: log}, nil
}

// #endregion constructor

// #region close
// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for use by other packages (e.g. logging).
func (s *Store) DB() *sql.DB {
	return s.db
}

// #endregion close

// #region save-run
// SaveRun stores a table under a new run ID in one transaction.
func (s *Store) SaveRun(t pipeline.Table) (RunRecord, error) {
	rec := RunRecord{
		RunID:     uuid.New().String(),
		Variant:   t.Variant,
		Config:    t.Config,
		RowCount:  len(t.Rows),
		CreatedAt: time.Now().UTC(),
	}

	tx, err := s.db.Begin()
	if err != nil {
		return RunRecord{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO runs (run_id, variant, gamma, sessions, reference_x, row_count, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.RunID, rec.Variant, rec.Config.Gamma, rec.Config.Sessions, rec.Config.ReferenceX,
		rec.RowCount, rec.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return RunRecord{}, fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO run_rows (run_id, row_index, a_high, a_low, a_gap, x_high, x_low, sigma, theta, scenario,
		 alpha, h_high, h_low, e_high, e_low, e1_rounded, e2_rounded, e_tot)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return RunRecord{}, fmt.Errorf("prepare rows: %w", err)
	}
	defer stmt.Close()

	for i, r := range t.Rows {
		_, err := stmt.Exec(
			rec.RunID, i,
			r.Capability.AHigh, r.Capability.ALow, string(r.Capability.Gap),
			r.Endowment.XHigh, r.Endowment.XLow,
			r.Scenario.Sigma, r.Scenario.Theta, r.Scenario.Label,
			r.Alpha, r.HHigh, r.HLow, r.EHigh, r.ELow,
			r.E1Rounded, r.E2Rounded, r.ETot,
		)
		if err != nil {
			return RunRecord{}, fmt.Errorf("insert row %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return RunRecord{}, fmt.Errorf("commit: %w", err)
	}

	s.log.Debug("run saved", zap.String("run_id", rec.RunID), zap.String("variant", rec.Variant), zap.Int("rows", rec.RowCount))
	return rec, nil
}

// #endregion save-run

// #region get-run
// GetRun loads a run and its rows in table order.
func (s *Store) GetRun(id string) (StoredRun, error) {
	rec, err := scanRun(s.db.QueryRow(
		`SELECT run_id, variant, gamma, sessions, reference_x, row_count, created_at
		 FROM runs WHERE run_id = ?`, id,
	))
	if err != nil {
		return StoredRun{}, fmt.Errorf("get run %s: %w", id, err)
	}

	rows, err := s.db.Query(
		`SELECT a_high, a_low, a_gap, x_high, x_low, sigma, theta, scenario,
		 alpha, h_high, h_low, e_high, e_low, e1_rounded, e2_rounded, e_tot
		 FROM run_rows WHERE run_id = ? ORDER BY row_index ASC`, id,
	)
	if err != nil {
		return StoredRun{}, fmt.Errorf("get rows %s: %w", id, err)
	}
	defer rows.Close()

	out := make([]pipeline.Row, 0, rec.RowCount)
	for rows.Next() {
		var r pipeline.Row
		var gap string
		if err := rows.Scan(
			&r.Capability.AHigh, &r.Capability.ALow, &gap,
			&r.Endowment.XHigh, &r.Endowment.XLow,
			&r.Scenario.Sigma, &r.Scenario.Theta, &r.Scenario.Label,
			&r.Alpha, &r.HHigh, &r.HLow, &r.EHigh, &r.ELow,
			&r.E1Rounded, &r.E2Rounded, &r.ETot,
		); err != nil {
			return StoredRun{}, fmt.Errorf("scan row: %w", err)
		}
		r.Capability.Gap = grid.GapLabel(gap)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return StoredRun{}, fmt.Errorf("iterate rows: %w", err)
	}

	return StoredRun{
		RunRecord: rec,
		Table:     pipeline.Table{Variant: rec.Variant, Config: rec.Config, Rows: out},
	}, nil
}

// #endregion get-run

// #region list-runs
// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(limit int) ([]RunRecord, error) {
	rows, err := s.db.Query(
		`SELECT run_id, variant, gamma, sessions, reference_x, row_count, created_at
		 FROM runs ORDER BY created_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		rec, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// LatestRun returns the newest run of a variant.
func (s *Store) LatestRun(variant string) (RunRecord, error) {
	rec, err := scanRun(s.db.QueryRow(
		`SELECT run_id, variant, gamma, sessions, reference_x, row_count, created_at
		 FROM runs WHERE variant = ? ORDER BY created_at DESC LIMIT 1`, variant,
	))
	if err != nil {
		return RunRecord{}, fmt.Errorf("latest run %s: %w", variant, err)
	}
	return rec, nil
}

// #endregion list-runs

// #region events
// LogEvent records a run event in this store's database.
func (s *Store) LogEvent(entry logging.EventEntry) error {
	return logging.LogEvent(s.db, entry)
}

// #endregion events

// #region helpers
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (RunRecord, error) {
	var rec RunRecord
	var createdStr string
	if err := sc.Scan(&rec.RunID, &rec.Variant, &rec.Config.Gamma, &rec.Config.Sessions,
		&rec.Config.ReferenceX, &rec.RowCount, &createdStr); err != nil {
		return RunRecord{}, err
	}
	rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
	return rec, nil
}

// #endregion helpers
