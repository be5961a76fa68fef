package main

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

func InitDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		started_at     DATETIME NOT NULL,
		pickup_events  INTEGER NOT NULL DEFAULT 0,
		calloff_events INTEGER NOT NULL DEFAULT 0,
		cancelled      INTEGER NOT NULL DEFAULT 0,
		created_at     DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS ledger_entries (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id        INTEGER NOT NULL,
		employee      TEXT NOT NULL,
		employee_key  TEXT NOT NULL,
		shift_date    DATETIME NOT NULL,
		time_range    TEXT DEFAULT '',
		code          TEXT NOT NULL,
		points        INTEGER NOT NULL,
		cancelled     INTEGER NOT NULL DEFAULT 0,
		comment       TEXT DEFAULT '',
		requested_at  DATETIME,
		created_at    DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_ledger_shift_date ON ledger_entries(shift_date);
	CREATE INDEX IF NOT EXISTS idx_ledger_employee_key ON ledger_entries(employee_key);
	`
	if _, err = db.Exec(schema); err != nil {
		return nil, err
	}
	return db, nil
}

func InsertRun(db *sql.DB, startedAt time.Time, result RunResult) (int64, error) {
	res, err := db.Exec(
		`INSERT INTO runs (started_at, pickup_events, calloff_events, cancelled) VALUES (?, ?, ?, ?)`,
		startedAt, result.PickupEvents, result.CallOffEvents, result.Cancelled,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// EntryExists reports whether a ledger row for the same employee, shift
// date, and code is already stored, so re-pasting the same page does not
// double-count.
func EntryExists(db *sql.DB, key string, shiftDate time.Time, code string) (bool, error) {
	var count int
	err := db.QueryRow(
		`SELECT COUNT(*) FROM ledger_entries WHERE employee_key = ? AND shift_date = ? AND code = ?`,
		key, shiftDate, code,
	).Scan(&count)
	return count > 0, err
}

// InsertLedgerEntries stores the entries of one run, skipping duplicates
// already present from a prior run. Returns how many rows were inserted.
func InsertLedgerEntries(db *sql.DB, runID int64, entries []LedgerEntry) (int, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		`INSERT INTO ledger_entries
		 (run_id, employee, employee_key, shift_date, time_range, code, points, cancelled, comment, requested_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	inserted := 0
	for _, e := range entries {
		key := MatchKey(e.Event.EmployeeName)
		var count int
		if err := tx.QueryRow(
			`SELECT COUNT(*) FROM ledger_entries WHERE employee_key = ? AND shift_date = ? AND code = ?`,
			key, e.Event.ShiftDate, e.Class.Code,
		).Scan(&count); err != nil {
			return inserted, err
		}
		if count > 0 {
			continue
		}
		var requestedAt interface{}
		if !e.Event.RequestedAt.IsZero() {
			requestedAt = e.Event.RequestedAt
		}
		if _, err := stmt.Exec(
			runID, e.Event.EmployeeName, key, e.Event.ShiftDate, e.Event.ShiftTimeRange,
			e.Class.Code, e.Class.Points, e.Cancelled, e.Event.Comment, requestedAt,
		); err != nil {
			return inserted, err
		}
		inserted++
	}
	return inserted, tx.Commit()
}

// StoredEntry is one persisted ledger row, the shape handed to the
// external CSV/spreadsheet collaborators.
type StoredEntry struct {
	ID        int64
	Employee  string
	Key       string
	ShiftDate time.Time
	TimeRange string
	Code      string
	Points    int
	Cancelled bool
	Comment   string
}

func GetEntriesByDateRange(db *sql.DB, from, to time.Time) ([]StoredEntry, error) {
	rows, err := db.Query(
		`SELECT id, employee, employee_key, shift_date, time_range, code, points, cancelled, comment
		 FROM ledger_entries WHERE shift_date >= ? AND shift_date < ?
		 ORDER BY shift_date, employee_key, id`,
		from, to,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []StoredEntry
	for rows.Next() {
		var e StoredEntry
		if err := rows.Scan(
			&e.ID, &e.Employee, &e.Key, &e.ShiftDate, &e.TimeRange,
			&e.Code, &e.Points, &e.Cancelled, &e.Comment,
		); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func GetEntriesByEmployee(db *sql.DB, key string) ([]StoredEntry, error) {
	rows, err := db.Query(
		`SELECT id, employee, employee_key, shift_date, time_range, code, points, cancelled, comment
		 FROM ledger_entries WHERE employee_key = ?
		 ORDER BY shift_date, id`,
		key,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []StoredEntry
	for rows.Next() {
		var e StoredEntry
		if err := rows.Scan(
			&e.ID, &e.Employee, &e.Key, &e.ShiftDate, &e.TimeRange,
			&e.Code, &e.Points, &e.Cancelled, &e.Comment,
		); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
