// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as the
// booking service and handlers to distinguish between failure scenarios
// without inspecting driver-specific errors. For example,
// ErrAlreadySubmitted signals that the uniqueness constraint on
// (department_id, section_id) would be violated, while ErrConflict
// signals that a transaction lost a race (deadlock) and may be retried.
package repository

import (
	"errors"
	"fmt"
)

// ErrConflict is returned when a transaction was chosen as a deadlock
// victim or otherwise lost a race with a concurrent writer. The
// operation had no effect and may be safely retried.
var ErrConflict = errors.New("conflict")

// ErrTimeout is returned when row locks could not be acquired within the
// store's lock wait timeout. The operation had no effect.
var ErrTimeout = errors.New("timeout")

// ErrAlreadySubmitted is returned when a submission already exists for the
// requested (department, section) pair, whether detected by the pre-check
// under row locks or by the unique key at insert time.
var ErrAlreadySubmitted = errors.New("already submitted")

// ErrSlotNotFound is returned when a referenced slot id has no ledger row.
var ErrSlotNotFound = errors.New("slot not found")

// ErrSubmissionNotFound is returned when a submission id does not exist.
var ErrSubmissionNotFound = errors.New("submission not found")

// SlotFullError reports that one of the requested slots had no remaining
// capacity at commit time. The offending slot id is carried so callers can
// surface it.
type SlotFullError struct {
	SlotID string
}

func (e *SlotFullError) Error() string {
	return fmt.Sprintf("slot %s is full", e.SlotID)
}
