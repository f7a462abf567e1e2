package repository

import (
	"context"
	"database/sql"

	"github.com/sixphrase/slot-reservation/internal/model"
	"github.com/sixphrase/slot-reservation/internal/timetable"
)

// SlotRepo provides access to the capacity ledger (the `slots` table).
// There is exactly one row per canonical slot id; rows are seeded once and
// never deleted during normal operation.  The filled counter is mutated
// only inside SubmissionRepo transactions (increment on create, reversal on
// delete and clear) or by ResetAllFilled.
type SlotRepo struct {
	db *sql.DB
}

// NewSlotRepo returns a SlotRepo bound to the given database.
func NewSlotRepo(db *sql.DB) *SlotRepo { return &SlotRepo{db: db} }

// List returns all 18 ledger rows ordered by day then period so the grid
// renders deterministically.
func (r *SlotRepo) List(ctx context.Context) ([]model.Slot, error) {
	const q = `SELECT id, day, slot_number, time_range, capacity, filled
	           FROM slots
	           ORDER BY FIELD(day,'Monday','Tuesday','Wednesday','Thursday','Friday','Saturday'), slot_number`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	slots := make([]model.Slot, 0, timetable.NumDays*timetable.NumSlots)
	for rows.Next() {
		var s model.Slot
		if err := rows.Scan(&s.ID, &s.Day, &s.Number, &s.TimeRange, &s.Capacity, &s.Filled); err != nil {
			return nil, err
		}
		slots = append(slots, s)
	}
	return slots, rows.Err()
}

// Get returns a single ledger row.  ErrSlotNotFound is returned when the id
// has no row.
func (r *SlotRepo) Get(ctx context.Context, id string) (model.Slot, error) {
	const q = `SELECT id, day, slot_number, time_range, capacity, filled FROM slots WHERE id = ?`
	var s model.Slot
	err := r.db.QueryRowContext(ctx, q, id).Scan(&s.ID, &s.Day, &s.Number, &s.TimeRange, &s.Capacity, &s.Filled)
	if err == sql.ErrNoRows {
		return model.Slot{}, ErrSlotNotFound
	}
	return s, err
}

// lockSlotTx loads a ledger row under an exclusive row lock within tx.
// Callers must lock slots in sorted id order so concurrent transactions
// cannot deadlock against each other.
func lockSlotTx(ctx context.Context, tx *sql.Tx, id string) (model.Slot, error) {
	const q = `SELECT id, day, slot_number, time_range, capacity, filled FROM slots WHERE id = ? FOR UPDATE`
	var s model.Slot
	err := tx.QueryRowContext(ctx, q, id).Scan(&s.ID, &s.Day, &s.Number, &s.TimeRange, &s.Capacity, &s.Filled)
	if err == sql.ErrNoRows {
		return model.Slot{}, ErrSlotNotFound
	}
	return s, err
}

// incrementFilledTx raises the filled counter of each given slot by one.
// It must only run inside a submission transaction after the rows were
// locked and their capacity verified.
func incrementFilledTx(ctx context.Context, tx *sql.Tx, ids []string) error {
	for _, id := range ids {
		if _, err := tx.ExecContext(ctx, `UPDATE slots SET filled = filled + 1 WHERE id = ?`, id); err != nil {
			return err
		}
	}
	return nil
}

// decrementFilledTx lowers the filled counter of each given slot by one,
// clamped at zero.  Used when a delete reverses a submission's increments
// within the same transaction.
func decrementFilledTx(ctx context.Context, tx *sql.Tx, ids []string) error {
	for _, id := range ids {
		if _, err := tx.ExecContext(ctx, `UPDATE slots SET filled = GREATEST(filled - 1, 0) WHERE id = ?`, id); err != nil {
			return err
		}
	}
	return nil
}

// ResetAllFilled sets every slot's filled counter back to zero.  This is a
// recovery operation independent of the submissions table.
func (r *SlotRepo) ResetAllFilled(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `UPDATE slots SET filled = 0`)
	return err
}
