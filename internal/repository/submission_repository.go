package repository

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"time"

	"github.com/sixphrase/slot-reservation/internal/model"
)

// SubmissionRepo provides CRUD operations for submissions and owns the
// atomic booking transaction.  Create runs the whole check-then-act region
// (uniqueness pre-check, capacity check, insert, counter increments) inside
// one transaction with the three slot rows locked, so two submissions
// racing for the last place in a shared slot can never both commit.  The
// UNIQUE KEY on (department_id, section_id) is an independent second net:
// even if two transactions for the same section interleave, at most one
// insert succeeds.
type SubmissionRepo struct {
	db *sql.DB
}

// NewSubmissionRepo returns a SubmissionRepo bound to the given database.
func NewSubmissionRepo(db *sql.DB) *SubmissionRepo { return &SubmissionRepo{db: db} }

// HasForSection reports whether a submission already exists for the
// (department, section) pair.  This is the cheap pre-transaction check;
// Create repeats it under row locks.
func (r *SubmissionRepo) HasForSection(ctx context.Context, departmentID, sectionID uint64) (bool, error) {
	var id uint64
	err := r.db.QueryRowContext(ctx,
		`SELECT id FROM submissions WHERE department_id = ? AND section_id = ? LIMIT 1`,
		departmentID, sectionID).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// GetForSection returns the submission for a (department, section) pair,
// or ErrSubmissionNotFound.
func (r *SubmissionRepo) GetForSection(ctx context.Context, departmentID, sectionID uint64) (model.Submission, error) {
	const q = `SELECT id, department_id, section_id, slot1_id, slot2_id, slot3_id, submitted_at, is_locked
	           FROM submissions WHERE department_id = ? AND section_id = ?`
	var s model.Submission
	err := r.db.QueryRowContext(ctx, q, departmentID, sectionID).Scan(
		&s.ID, &s.DepartmentID, &s.SectionID, &s.Slot1ID, &s.Slot2ID, &s.Slot3ID, &s.SubmittedAt, &s.IsLocked)
	if err == sql.ErrNoRows {
		return model.Submission{}, ErrSubmissionNotFound
	}
	return s, err
}

// Create commits a validated submission atomically.  On entry the triple is
// assumed to have passed rule validation; this method only enforces the
// storage invariants: at most one submission per (department, section) and
// filled <= capacity for every slot.  All checks and writes happen inside
// one transaction:
//
//  1. lock any existing submission row for the pair (ErrAlreadySubmitted),
//  2. lock the three slot rows in sorted id order and verify remaining
//     capacity (ErrSlotNotFound / SlotFullError),
//  3. insert the submission (1062 on the unique key -> ErrAlreadySubmitted),
//  4. increment the three filled counters.
//
// Any failure rolls the transaction back, so a rejected submission leaves
// no partial effect.  Deadlock and lock-wait-timeout conditions surface as
// ErrConflict and ErrTimeout respectively.  On success the generated id and
// commit timestamp are populated on sub.
func (r *SubmissionRepo) Create(ctx context.Context, sub *model.Submission) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// Re-check uniqueness under lock; the unique key still backs this up.
	var existing uint64
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM submissions WHERE department_id = ? AND section_id = ? FOR UPDATE`,
		sub.DepartmentID, sub.SectionID).Scan(&existing)
	if err == nil {
		return ErrAlreadySubmitted
	}
	if err != sql.ErrNoRows {
		return classifyTxError(err)
	}

	// Deterministic lock order across all submissions prevents deadlocks
	// between transactions sharing any of the three slots.
	ids := []string{sub.Slot1ID, sub.Slot2ID, sub.Slot3ID}
	ordered := append([]string(nil), ids...)
	sort.Strings(ordered)
	for _, id := range ordered {
		slot, err := lockSlotTx(ctx, tx, id)
		if err != nil {
			if err == ErrSlotNotFound {
				return err
			}
			return classifyTxError(err)
		}
		if slot.Remaining() <= 0 {
			return &SlotFullError{SlotID: id}
		}
	}

	now := time.Now().UTC()
	res, err := tx.ExecContext(ctx,
		`INSERT INTO submissions (department_id, section_id, slot1_id, slot2_id, slot3_id, submitted_at, is_locked)
		 VALUES (?, ?, ?, ?, ?, ?, TRUE)`,
		sub.DepartmentID, sub.SectionID, sub.Slot1ID, sub.Slot2ID, sub.Slot3ID, now)
	if err != nil {
		return classifyTxError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}

	if err := incrementFilledTx(ctx, tx, ids); err != nil {
		return classifyTxError(err)
	}

	if err := tx.Commit(); err != nil {
		return classifyTxError(err)
	}
	committed = true
	sub.ID = uint64(id)
	sub.SubmittedAt = now
	sub.IsLocked = true
	return nil
}

// SubmissionDetail pairs a submission with its department and section
// names for administrative listings.
type SubmissionDetail struct {
	model.Submission
	DepartmentName string `json:"department_name"`
	DepartmentYear string `json:"department_year"`
	SectionName    string `json:"section_name"`
}

// ListAll returns every submission joined with department and section
// names, newest first.
func (r *SubmissionRepo) ListAll(ctx context.Context) ([]SubmissionDetail, error) {
	const q = `SELECT s.id, s.department_id, s.section_id, s.slot1_id, s.slot2_id, s.slot3_id,
	                  s.submitted_at, s.is_locked, d.name, d.year, sec.name
	           FROM submissions s
	           JOIN departments d ON d.id = s.department_id
	           JOIN sections sec ON sec.id = s.section_id
	           ORDER BY s.submitted_at DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	details := make([]SubmissionDetail, 0)
	for rows.Next() {
		var d SubmissionDetail
		if err := rows.Scan(&d.ID, &d.DepartmentID, &d.SectionID, &d.Slot1ID, &d.Slot2ID, &d.Slot3ID,
			&d.SubmittedAt, &d.IsLocked, &d.DepartmentName, &d.DepartmentYear, &d.SectionName); err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

// Delete removes one submission and reverses its three filled increments
// inside a single transaction.  ErrSubmissionNotFound is returned when the
// id does not exist.
func (r *SubmissionRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var s1, s2, s3 string
	err = tx.QueryRowContext(ctx,
		`SELECT slot1_id, slot2_id, slot3_id FROM submissions WHERE id = ? FOR UPDATE`,
		id).Scan(&s1, &s2, &s3)
	if err == sql.ErrNoRows {
		return ErrSubmissionNotFound
	}
	if err != nil {
		return classifyTxError(err)
	}

	ids := []string{s1, s2, s3}
	sort.Strings(ids)
	for _, sid := range ids {
		if _, err := lockSlotTx(ctx, tx, sid); err != nil && err != ErrSlotNotFound {
			return classifyTxError(err)
		}
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM submissions WHERE id = ?`, id); err != nil {
		return classifyTxError(err)
	}
	if err := decrementFilledTx(ctx, tx, ids); err != nil {
		return classifyTxError(err)
	}
	if err := tx.Commit(); err != nil {
		return classifyTxError(err)
	}
	committed = true
	return nil
}

// ClearAll deletes every submission and zeroes every filled counter in one
// transaction, so a concurrent submit either commits fully before the clear
// or observes the cleared state.
func (r *SubmissionRepo) ClearAll(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if _, err := tx.ExecContext(ctx, `DELETE FROM submissions`); err != nil {
		return classifyTxError(err)
	}
	if _, err := tx.ExecContext(ctx, `UPDATE slots SET filled = 0`); err != nil {
		return classifyTxError(err)
	}
	if err := tx.Commit(); err != nil {
		return classifyTxError(err)
	}
	committed = true
	return nil
}

// classifyTxError maps MySQL failure modes onto the repository's sentinel
// errors.  1062 is a duplicate-key violation, 1213 a deadlock rollback and
// 1205 a lock wait timeout; everything else passes through unchanged.
// Context cancellation and deadline errors also pass through so callers
// can distinguish their own timeout from the store's.
func classifyTxError(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "1062"):
		return ErrAlreadySubmitted
	case strings.Contains(msg, "1213"):
		return ErrConflict
	case strings.Contains(msg, "1205"):
		return ErrTimeout
	}
	return err
}
