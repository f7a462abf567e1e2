package model

import "time"

// Submission records the three slots a department section committed to.
// At most one submission exists per (department, section) pair; the pair
// carries a UNIQUE KEY in the database so concurrent submits can never
// create duplicates.  A submission is immutable after creation and is
// removed only by an administrative delete, which reverses the three
// filled increments in the same transaction.
//
// Fields:
//  ID           – primary key identifier (submissions.id).
//  DepartmentID – owning department (submissions.department_id).
//  SectionID    – owning section (submissions.section_id).
//  Slot1ID      – first chosen slot, canonical id (submissions.slot1_id).
//  Slot2ID      – second chosen slot (submissions.slot2_id).
//  Slot3ID      – derived third slot (submissions.slot3_id).
//  SubmittedAt  – commit timestamp (submissions.submitted_at).
//  IsLocked     – always true once committed (submissions.is_locked).
type Submission struct {
	ID           uint64    `json:"id"`
	DepartmentID uint64    `json:"department_id"`
	SectionID    uint64    `json:"section_id"`
	Slot1ID      string    `json:"slot1_id"`
	Slot2ID      string    `json:"slot2_id"`
	Slot3ID      string    `json:"slot3_id"`
	SubmittedAt  time.Time `json:"submitted_at"`
	IsLocked     bool      `json:"is_locked"`
}

// SlotIDs returns the three booked slot ids in selection order.
func (s Submission) SlotIDs() [3]string {
	return [3]string{s.Slot1ID, s.Slot2ID, s.Slot3ID}
}
