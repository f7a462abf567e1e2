package database

import (
	"context"
	"database/sql"

	"github.com/sixphrase/slot-reservation/internal/model"
	"github.com/sixphrase/slot-reservation/internal/timetable"
)

// Department lists for the two year groups.  SeedDepartments inserts them
// on first run; names are stable identifiers the allocation rounds reuse
// every term.
var (
	secondYearDepartments = []string{
		"CSE GEN A", "CSE GEN B", "CSE STAR A", "CSE STAR B", "CSE STAR C",
		"CTIS & CTMA", "AI", "BCT & CPS", "IOT", "SE", "Cyber security",
		"AIML A", "AIML B", "AIML C", "AIML D", "Data Science", "AIDE",
		"CSBS", "ISE", "AI Dev ops",
	}
	thirdYearDepartments = []string{
		"CSE GEN A", "CSE GEN B", "CSE STAR A", "CSE STAR B", "CSE STAR C",
		"CTIS & CTMA", "AI", "IOT", "SE", "Cyber security",
		"AIML A", "AIML B", "AIML C", "AIML D", "Data Science", "AIDE",
		"CSBS", "ISE",
	}
)

// SeedSlots inserts the 18 canonical ledger rows with the given capacity.
// INSERT IGNORE keeps the call idempotent: existing rows, including their
// filled counters, are left untouched.
func SeedSlots(ctx context.Context, db *sql.DB, capacity int) error {
	const q = `INSERT IGNORE INTO slots (id, day, slot_number, time_range, capacity, filled)
	           VALUES (?, ?, ?, ?, ?, 0)`
	for _, id := range timetable.AllSlotIDs() {
		if _, err := db.ExecContext(ctx, q,
			id.String(), id.Day.String(), int(id.Number), id.Number.TimeRange(), capacity); err != nil {
			return err
		}
	}
	return nil
}

// SeedSettings ensures the singleton system_settings row exists, unlocked.
func SeedSettings(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx,
		`INSERT IGNORE INTO system_settings (id, is_system_locked, lock_message) VALUES (?, 0, '')`,
		"main")
	return err
}

// SeedDepartments inserts both year groups' department lists.  Idempotent
// via the (name, year) unique key.
func SeedDepartments(ctx context.Context, db *sql.DB) error {
	const q = `INSERT IGNORE INTO departments (name, year) VALUES (?, ?)`
	for _, name := range secondYearDepartments {
		if _, err := db.ExecContext(ctx, q, name, model.YearSecond); err != nil {
			return err
		}
	}
	for _, name := range thirdYearDepartments {
		if _, err := db.ExecContext(ctx, q, name, model.YearThird); err != nil {
			return err
		}
	}
	return nil
}
