package tracing

import (
	"database/sql"
	"fmt"
	"os"

	// Registers the sqlite3 driver with database/sql.
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/xid"
	"github.com/tebeka/atexit"

	"github.com/rw1nkler/vtr-verilog-to-routing/anneal"
)

// SQLiteStatusRecorder records one row per periodic status line into a
// SQLite database, using a fixed known schema rather than the corpus's
// reflection-based table-per-struct recorder: the status-line shape never
// varies across runs, so there is nothing for reflection to buy here.
type SQLiteStatusRecorder struct {
	db        *sql.DB
	stmt      *sql.Stmt
	dbPath    string
	batchSize int

	buffered []anneal.StatusLine
}

var _ anneal.Hook = (*SQLiteStatusRecorder)(nil)

// NewSQLiteStatusRecorder opens (creating) a SQLite database at path. An
// empty path generates a run-unique name via rs/xid, matching the
// grounding corpus's default-naming convention for data recordings.
func NewSQLiteStatusRecorder(path string) (*SQLiteStatusRecorder, error) {
	if path == "" {
		path = "fpgaplace_run_" + xid.New().String() + ".sqlite3"
	}
	if _, err := os.Stat(path); err == nil {
		return nil, fmt.Errorf("tracing: database file %s already exists", path)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	const createTableSQL = `CREATE TABLE status_line (
		temp_num INTEGER,
		elapsed REAL,
		temp REAL,
		avg_cost REAL,
		avg_bb_cost REAL,
		avg_td_cost REAL,
		cpd REAL,
		stns REAL,
		swns REAL,
		accept_rate REAL,
		std_dev REAL,
		rlim REAL,
		crit_exp REAL,
		total_moves INTEGER,
		alpha REAL
	);`
	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, err
	}

	r := &SQLiteStatusRecorder{db: db, dbPath: path, batchSize: 100}
	atexit.Register(func() { r.Flush() })
	return r, nil
}

// Func implements anneal.Hook: it only reacts to HookPosStatusLine events.
func (r *SQLiteStatusRecorder) Func(ctx anneal.HookCtx) {
	if ctx.Pos != anneal.HookPosStatusLine || ctx.Status == nil {
		return
	}
	r.buffered = append(r.buffered, *ctx.Status)
	if len(r.buffered) >= r.batchSize {
		r.Flush()
	}
}

// Flush inserts every buffered status line in a single transaction.
func (r *SQLiteStatusRecorder) Flush() {
	if len(r.buffered) == 0 {
		return
	}

	tx, err := r.db.Begin()
	if err != nil {
		return
	}

	stmt, err := tx.Prepare(`INSERT INTO status_line VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		tx.Rollback()
		return
	}
	defer stmt.Close()

	for _, s := range r.buffered {
		_, err := stmt.Exec(
			s.TempNum, s.Elapsed, s.Temp,
			s.AvgCost, s.AvgBBCost, s.AvgTDCost,
			s.CPD, s.STNS, s.SWNS,
			s.AcceptRate, s.StdDev,
			s.Rlim, s.CritExp,
			s.TotalMoves, s.Alpha,
		)
		if err != nil {
			tx.Rollback()
			return
		}
	}

	if err := tx.Commit(); err != nil {
		return
	}
	r.buffered = nil
}

// Close flushes any buffered rows and closes the underlying database.
func (r *SQLiteStatusRecorder) Close() error {
	r.Flush()
	return r.db.Close()
}
