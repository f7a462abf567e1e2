package timetable

import (
	"errors"
	"fmt"
)

// The dependency rule is fully algorithmic: given a first slot, the second
// slot falls exactly two teaching days later in one of the two periods the
// first slot does not occupy, and the third slot falls two days after the
// second in the single remaining period.  Because day arithmetic wraps
// around the week and there are exactly three periods, the rule is total
// over all 18 slots: every first choice has exactly two legal second
// choices, and every legal pair has exactly one third slot.
//
// Earlier iterations of this system also shipped a hand-entered lookup
// table of per-slot rules.  That table drifted from the derived rule and
// required manual data entry for every slot, so it was retired; the cyclic
// derivation below is the only rule strategy.

// dayGap is the cyclic distance in teaching days between consecutive slots
// of a selection.
const dayGap = 2

// ErrInvalidSlot2Selection reports a second slot outside the two options
// allowed by the first slot.
var ErrInvalidSlot2Selection = errors.New("invalid slot 2 selection")

// AllowedSlot2Options derives the two legal second slots for the given
// first slot.  It fails with ErrInvalidSlotID when slot1 is not one of the
// 18 canonical slots.
func AllowedSlot2Options(slot1 SlotID) ([]SlotID, error) {
	if !slot1.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSlotID, slot1.String())
	}
	day := slot1.Day.Add(dayGap)
	return []SlotID{
		{Day: day, Number: SlotNumberFromIndex(int(slot1.Number) + 1)},
		{Day: day, Number: SlotNumberFromIndex(int(slot1.Number) + 2)},
	}, nil
}

// MandatorySlot3 derives the single third slot mandated by a (slot1, slot2)
// pair.  slot2 must be one of AllowedSlot2Options(slot1); otherwise
// ErrInvalidSlot2Selection is returned with the legal options named.
func MandatorySlot3(slot1, slot2 SlotID) (SlotID, error) {
	opts, err := AllowedSlot2Options(slot1)
	if err != nil {
		return SlotID{}, err
	}
	if slot2 != opts[0] && slot2 != opts[1] {
		return SlotID{}, fmt.Errorf("%w: for %s, slot 2 must be one of: %s, %s",
			ErrInvalidSlot2Selection, slot1, opts[0], opts[1])
	}
	return SlotID{
		Day:    slot2.Day.Add(dayGap),
		Number: remainingNumber(slot1.Number, slot2.Number),
	}, nil
}

// remainingNumber returns the one period in {1,2,3} not equal to a or b.
// The three period numbers sum to 6, so the remainder is 6-a-b.
func remainingNumber(a, b SlotNumber) SlotNumber {
	return SlotNumber(6) - a - b
}

// ValidationError describes why a proposed triple violates the dependency
// rule.  The reason is safe to surface to callers verbatim.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// ValidateTriple re-derives the dependency rule for a complete proposed
// selection and checks every invariant independently, never trusting values
// a client computed.  It returns nil when the triple is legal and a
// *ValidationError naming the first violated invariant otherwise.
//
// The slot-2 and slot-3 checks run before the final pairwise-distinct
// period check so that a wrong third slot is reported against the slot the
// rule actually mandates rather than as a generic distinctness failure.
func ValidateTriple(slot1, slot2, slot3 SlotID) error {
	for _, s := range [3]SlotID{slot1, slot2, slot3} {
		if !s.Valid() {
			return &ValidationError{Reason: fmt.Sprintf("invalid slot id: %q", s.String())}
		}
	}
	if slot1.Day == slot2.Day || slot1.Day == slot3.Day || slot2.Day == slot3.Day {
		return &ValidationError{Reason: "slot days must be pairwise distinct"}
	}
	if slot2.Day != slot1.Day.Add(dayGap) {
		return &ValidationError{Reason: fmt.Sprintf(
			"invalid slot 2 day: for %s, slot 2 must fall on %s", slot1, slot1.Day.Add(dayGap))}
	}
	opts, err := AllowedSlot2Options(slot1)
	if err != nil {
		return &ValidationError{Reason: err.Error()}
	}
	if slot2 != opts[0] && slot2 != opts[1] {
		return &ValidationError{Reason: fmt.Sprintf(
			"invalid slot 2 selection: for %s, slot 2 must be one of: %s, %s", slot1, opts[0], opts[1])}
	}
	if slot3.Day != slot2.Day.Add(dayGap) {
		return &ValidationError{Reason: fmt.Sprintf(
			"invalid slot 3 day: for slot 2 %s, slot 3 must fall on %s", slot2, slot2.Day.Add(dayGap))}
	}
	want := SlotID{Day: slot2.Day.Add(dayGap), Number: remainingNumber(slot1.Number, slot2.Number)}
	if slot3 != want {
		return &ValidationError{Reason: fmt.Sprintf(
			"invalid slot 3 selection: for %s and %s, slot 3 must be %s", slot1, slot2, want)}
	}
	if slot1.Number == slot2.Number || slot1.Number == slot3.Number || slot2.Number == slot3.Number {
		return &ValidationError{Reason: "slot periods must be pairwise distinct"}
	}
	return nil
}
