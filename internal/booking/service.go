// Package booking implements the submission transaction manager: the one
// path through which a section commits to a slot triple.  The service
// re-runs the dependency-rule validation server-side, consults the system
// lock gate, and delegates the atomic check-then-act commit to the store.
// It never trusts client-side filtering.
package booking

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/sixphrase/slot-reservation/internal/model"
	"github.com/sixphrase/slot-reservation/internal/repository"
	"github.com/sixphrase/slot-reservation/internal/timetable"
)

// Gate exposes the system lock state.  Implemented by
// repository.SettingsRepo.
type Gate interface {
	Settings(ctx context.Context) (model.SystemSettings, error)
}

// Store persists submissions.  Create must be atomic: it either commits the
// submission together with all three counter increments or leaves no trace,
// even under concurrent calls touching the same slots or the same
// (department, section) pair.  Implemented by repository.SubmissionRepo.
type Store interface {
	HasForSection(ctx context.Context, departmentID, sectionID uint64) (bool, error)
	Create(ctx context.Context, sub *model.Submission) error
}

// Service coordinates a submission attempt end to end.  All dependencies
// are injected at construction time; the service holds no mutable state of
// its own, so one instance serves concurrent requests.
type Service struct {
	gate    Gate
	store   Store
	timeout time.Duration
}

// defaultTimeout bounds the atomic region when the caller's context carries
// no earlier deadline.
const defaultTimeout = 5 * time.Second

// NewService constructs a Service.  A non-positive timeout falls back to
// the default bound.
func NewService(gate Gate, store Store, timeout time.Duration) *Service {
	if gate == nil || store == nil {
		panic("nil dependency passed to booking.NewService")
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Service{gate: gate, store: store, timeout: timeout}
}

// Request is a proposed submission as received from the outer layer.  Slot
// ids arrive in canonical string form and are parsed and re-validated here
// regardless of what the client already checked.
type Request struct {
	DepartmentID uint64
	SectionID    uint64
	Slot1ID      string
	Slot2ID      string
	Slot3ID      string
}

// Submit runs the full submission protocol:
//
//  1. reject immediately while the lock gate is set (nothing else is
//     checked, nothing is touched),
//  2. reject when the pair already submitted,
//  3. parse and re-validate the triple against the dependency rule,
//  4. commit atomically via the store, which re-checks uniqueness and
//     capacity under row locks.
//
// Checks 2 and 4 overlap on purpose: the early check gives a fast answer
// without opening a transaction, and the store repeats it inside the
// serializable region where it is authoritative.  On success the committed
// submission is returned; every failure maps onto the package's error
// taxonomy with zero side effects.
func (s *Service) Submit(ctx context.Context, req Request) (*model.Submission, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	settings, err := s.gate.Settings(ctx)
	if err != nil {
		log.Printf("booking: read lock gate failed: %v", err)
		return nil, ErrUnavailable
	}
	if settings.IsSystemLocked {
		return nil, &LockedError{Message: settings.LockMessage}
	}

	exists, err := s.store.HasForSection(ctx, req.DepartmentID, req.SectionID)
	if err != nil {
		log.Printf("booking: uniqueness pre-check failed: %v", err)
		return nil, ErrUnavailable
	}
	if exists {
		return nil, ErrAlreadySubmitted
	}

	slot1, err := timetable.ParseSlotID(req.Slot1ID)
	if err != nil {
		return nil, err
	}
	slot2, err := timetable.ParseSlotID(req.Slot2ID)
	if err != nil {
		return nil, err
	}
	slot3, err := timetable.ParseSlotID(req.Slot3ID)
	if err != nil {
		return nil, err
	}
	if err := timetable.ValidateTriple(slot1, slot2, slot3); err != nil {
		return nil, err
	}

	sub := &model.Submission{
		DepartmentID: req.DepartmentID,
		SectionID:    req.SectionID,
		Slot1ID:      slot1.String(),
		Slot2ID:      slot2.String(),
		Slot3ID:      slot3.String(),
	}
	if err := s.store.Create(ctx, sub); err != nil {
		return nil, s.mapStoreError(err)
	}
	return sub, nil
}

// mapStoreError translates repository sentinels and context errors into the
// booking taxonomy.  Unknown errors are logged and collapsed to
// ErrUnavailable so internal detail never reaches the caller.
func (s *Service) mapStoreError(err error) error {
	switch {
	case errors.Is(err, repository.ErrAlreadySubmitted):
		return ErrAlreadySubmitted
	case errors.Is(err, repository.ErrConflict):
		return ErrConflict
	case errors.Is(err, repository.ErrTimeout),
		errors.Is(err, context.DeadlineExceeded):
		return ErrTimeout
	case errors.Is(err, context.Canceled):
		return err
	case errors.Is(err, repository.ErrSlotNotFound):
		// Validation passed, so the ledger is missing a canonical row;
		// treat as infrastructure rather than caller error.
		log.Printf("booking: ledger missing canonical slot row: %v", err)
		return ErrUnavailable
	}
	var full *repository.SlotFullError
	if errors.As(err, &full) {
		id, perr := timetable.ParseSlotID(full.SlotID)
		if perr != nil {
			log.Printf("booking: store reported full slot with bad id %q", full.SlotID)
			return ErrUnavailable
		}
		return &SlotFullError{SlotID: id}
	}
	log.Printf("booking: store error: %v", err)
	return ErrUnavailable
}
