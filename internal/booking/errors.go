package booking

import (
	"errors"
	"fmt"

	"github.com/sixphrase/slot-reservation/internal/timetable"
)

// The submission error taxonomy.  Every value here is an expected,
// recoverable outcome returned to the caller as data; only ErrUnavailable
// marks an infrastructure fault.  Handlers surface the messages verbatim.
var (
	// ErrAlreadySubmitted: the (department, section) pair already holds a
	// locked submission.  The existing submission stands unmodified, which
	// makes client retries after ambiguous network failures safe.
	ErrAlreadySubmitted = errors.New("a submission already exists for this section")

	// ErrTimeout: the atomic region could not complete within its bounded
	// time.  No side effects occurred; the caller may retry.
	ErrTimeout = errors.New("submission timed out with no effect, please retry")

	// ErrConflict: the transaction lost a race with a concurrent
	// submission.  No side effects occurred; the caller may retry.
	ErrConflict = errors.New("submission conflicted with a concurrent request, please retry")

	// ErrUnavailable: the data store could not be reached or failed in an
	// unexpected way.  Details are logged server-side, never surfaced.
	ErrUnavailable = errors.New("service temporarily unavailable")
)

// LockedError is returned while the system lock gate is set.  Message
// carries the administrator's lock message when one was provided.
type LockedError struct {
	Message string
}

func (e *LockedError) Error() string {
	if e.Message != "" {
		return "submissions are locked: " + e.Message
	}
	return "submissions are locked"
}

// SlotFullError reports that one of the three requested slots had no
// remaining capacity at commit time.
type SlotFullError struct {
	SlotID timetable.SlotID
}

func (e *SlotFullError) Error() string {
	return fmt.Sprintf("slot %s is full", e.SlotID)
}
