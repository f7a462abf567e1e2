package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sixphrase/slot-reservation/internal/model"
	"github.com/sixphrase/slot-reservation/internal/repository"
	"github.com/sixphrase/slot-reservation/internal/timetable"
)

// ── test doubles ──

// stubGate is shared by concurrent submits in the race tests, so it must
// stay read-only once a test starts.
type stubGate struct {
	settings model.SystemSettings
	err      error
}

func (g *stubGate) Settings(ctx context.Context) (model.SystemSettings, error) {
	return g.settings, g.err
}

// memStore is an in-memory Store whose Create enforces the same invariants
// as the SQL implementation under a single mutex, which makes it a faithful
// stand-in for the serializable transaction in concurrency tests.
type memStore struct {
	mu        sync.Mutex
	capacity  map[string]int
	filled    map[string]int
	subs      map[[2]uint64]model.Submission
	nextID    uint64
	createErr error // injected failure for error-mapping tests
}

func newMemStore(capacity int) *memStore {
	s := &memStore{
		capacity: make(map[string]int),
		filled:   make(map[string]int),
		subs:     make(map[[2]uint64]model.Submission),
	}
	for _, id := range timetable.AllSlotIDs() {
		s.capacity[id.String()] = capacity
	}
	return s
}

func (s *memStore) HasForSection(ctx context.Context, departmentID, sectionID uint64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.subs[[2]uint64{departmentID, sectionID}]
	return ok, nil
}

func (s *memStore) Create(ctx context.Context, sub *model.Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return s.createErr
	}
	key := [2]uint64{sub.DepartmentID, sub.SectionID}
	if _, ok := s.subs[key]; ok {
		return repository.ErrAlreadySubmitted
	}
	ids := sub.SlotIDs()
	for _, id := range ids {
		capacity, ok := s.capacity[id]
		if !ok {
			return repository.ErrSlotNotFound
		}
		if s.filled[id] >= capacity {
			return &repository.SlotFullError{SlotID: id}
		}
	}
	for _, id := range ids {
		s.filled[id]++
	}
	s.nextID++
	sub.ID = s.nextID
	sub.SubmittedAt = time.Now().UTC()
	sub.IsLocked = true
	s.subs[key] = *sub
	return nil
}

func newTestService(store Store) (*Service, *stubGate) {
	gate := &stubGate{}
	return NewService(gate, store, time.Second), gate
}

func validRequest(dept, section uint64) Request {
	return Request{
		DepartmentID: dept,
		SectionID:    section,
		Slot1ID:      "Monday-1",
		Slot2ID:      "Wednesday-2",
		Slot3ID:      "Friday-3",
	}
}

// ── Submit ──

func TestSubmitSuccess(t *testing.T) {
	store := newMemStore(7)
	svc, _ := newTestService(store)

	sub, err := svc.Submit(context.Background(), validRequest(1, 1))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if sub.ID == 0 || !sub.IsLocked || sub.SubmittedAt.IsZero() {
		t.Errorf("committed submission not fully populated: %+v", sub)
	}
	for _, id := range []string{"Monday-1", "Wednesday-2", "Friday-3"} {
		if store.filled[id] != 1 {
			t.Errorf("slot %s filled = %d, want 1", id, store.filled[id])
		}
	}
}

func TestSubmitRejectsWhileLocked(t *testing.T) {
	store := newMemStore(7)
	svc, gate := newTestService(store)
	gate.settings = model.SystemSettings{IsSystemLocked: true, LockMessage: "allocation window closed"}

	_, err := svc.Submit(context.Background(), validRequest(1, 1))
	var locked *LockedError
	if !errors.As(err, &locked) {
		t.Fatalf("expected LockedError, got %v", err)
	}
	if locked.Message != "allocation window closed" {
		t.Errorf("lock message not carried: %q", locked.Message)
	}
	if len(store.subs) != 0 || store.filled["Monday-1"] != 0 {
		t.Error("locked submit must not touch the store")
	}
}

func TestSubmitAlreadySubmittedIsIdempotent(t *testing.T) {
	store := newMemStore(7)
	svc, _ := newTestService(store)

	if _, err := svc.Submit(context.Background(), validRequest(1, 1)); err != nil {
		t.Fatalf("first Submit: %v", err)
	}
	before := store.filled["Monday-1"]

	_, err := svc.Submit(context.Background(), validRequest(1, 1))
	if !errors.Is(err, ErrAlreadySubmitted) {
		t.Fatalf("second Submit: got %v, want ErrAlreadySubmitted", err)
	}
	if store.filled["Monday-1"] != before {
		t.Error("repeat submit changed the ledger")
	}
}

func TestSubmitRejectsMalformedSlotID(t *testing.T) {
	store := newMemStore(7)
	svc, _ := newTestService(store)

	req := validRequest(1, 1)
	req.Slot2ID = "Wednesday-9"
	_, err := svc.Submit(context.Background(), req)
	if !errors.Is(err, timetable.ErrInvalidSlotID) {
		t.Fatalf("expected ErrInvalidSlotID, got %v", err)
	}
	if len(store.subs) != 0 {
		t.Error("invalid id must be rejected before any mutation")
	}
}

func TestSubmitRejectsRuleViolation(t *testing.T) {
	store := newMemStore(7)
	svc, _ := newTestService(store)

	req := validRequest(1, 1)
	req.Slot3ID = "Friday-2" // rule mandates Friday-3
	_, err := svc.Submit(context.Background(), req)
	var verr *timetable.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(store.subs) != 0 {
		t.Error("invalid triple must be rejected before any mutation")
	}
}

func TestSubmitSlotFull(t *testing.T) {
	store := newMemStore(1)
	svc, _ := newTestService(store)

	if _, err := svc.Submit(context.Background(), validRequest(1, 1)); err != nil {
		t.Fatalf("first Submit: %v", err)
	}
	// Different section, same triple: every slot is now at capacity.
	_, err := svc.Submit(context.Background(), validRequest(2, 2))
	var full *SlotFullError
	if !errors.As(err, &full) {
		t.Fatalf("expected SlotFullError, got %v", err)
	}
	if store.filled[full.SlotID.String()] != store.capacity[full.SlotID.String()] {
		t.Errorf("reported slot %s is not actually full", full.SlotID)
	}
}

// Two sections racing for a slot with one remaining place: exactly one
// commit, and filled never exceeds capacity.
func TestSubmitRaceForLastPlace(t *testing.T) {
	store := newMemStore(1)
	svc, _ := newTestService(store)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Submit(context.Background(), validRequest(uint64(i+1), uint64(i+1)))
		}(i)
	}
	wg.Wait()

	var committed, rejected int
	for _, err := range errs {
		switch {
		case err == nil:
			committed++
		default:
			var full *SlotFullError
			if !errors.As(err, &full) {
				t.Fatalf("unexpected race outcome: %v", err)
			}
			rejected++
		}
	}
	if committed != 1 || rejected != 1 {
		t.Fatalf("race outcome committed=%d rejected=%d, want 1/1", committed, rejected)
	}
	for id, capacity := range store.capacity {
		if store.filled[id] > capacity {
			t.Fatalf("slot %s overbooked: filled=%d capacity=%d", id, store.filled[id], capacity)
		}
	}
}

// Concurrent duplicate submits for the same section: at most one wins even
// when both pass the pre-check simultaneously.
func TestSubmitConcurrentDuplicates(t *testing.T) {
	store := newMemStore(7)
	svc, _ := newTestService(store)

	const attempts = 8
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Submit(context.Background(), validRequest(1, 1))
		}(i)
	}
	wg.Wait()

	var committed int
	for _, err := range errs {
		if err == nil {
			committed++
		} else if !errors.Is(err, ErrAlreadySubmitted) {
			t.Fatalf("unexpected duplicate outcome: %v", err)
		}
	}
	if committed != 1 {
		t.Fatalf("%d commits for one section, want exactly 1", committed)
	}
	if store.filled["Monday-1"] != 1 {
		t.Errorf("ledger incremented %d times, want 1", store.filled["Monday-1"])
	}
}

func TestSubmitMapsStoreFailures(t *testing.T) {
	cases := []struct {
		name    string
		inject  error
		want    error
	}{
		{"deadlock", repository.ErrConflict, ErrConflict},
		{"lock wait", repository.ErrTimeout, ErrTimeout},
		{"missing ledger row", repository.ErrSlotNotFound, ErrUnavailable},
		{"unknown", errors.New("driver: bad connection"), ErrUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := newMemStore(7)
			store.createErr = tc.inject
			svc, _ := newTestService(store)
			_, err := svc.Submit(context.Background(), validRequest(1, 1))
			if !errors.Is(err, tc.want) {
				t.Errorf("got %v, want %v", err, tc.want)
			}
		})
	}
}

func TestSubmitGateFailureIsUnavailable(t *testing.T) {
	store := newMemStore(7)
	svc, gate := newTestService(store)
	gate.err = errors.New("connection refused")

	_, err := svc.Submit(context.Background(), validRequest(1, 1))
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("got %v, want ErrUnavailable", err)
	}
	if len(store.subs) != 0 {
		t.Error("gate failure must not reach the store")
	}
}
