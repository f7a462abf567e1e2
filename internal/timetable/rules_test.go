package timetable

import (
	"errors"
	"strings"
	"testing"
)

func mustParse(t *testing.T, s string) SlotID {
	t.Helper()
	id, err := ParseSlotID(s)
	if err != nil {
		t.Fatalf("ParseSlotID(%q): %v", s, err)
	}
	return id
}

func TestAllowedSlot2OptionsMonday1(t *testing.T) {
	opts, err := AllowedSlot2Options(mustParse(t, "Monday-1"))
	if err != nil {
		t.Fatalf("AllowedSlot2Options: %v", err)
	}
	got := map[string]bool{}
	for _, o := range opts {
		got[o.String()] = true
	}
	if len(opts) != 2 || !got["Wednesday-2"] || !got["Wednesday-3"] {
		t.Errorf("options for Monday-1 = %v, want Wednesday-2 and Wednesday-3", opts)
	}
}

// Every first slot must yield exactly two options, both two days later and
// in the two periods the first slot does not occupy.
func TestAllowedSlot2OptionsTotal(t *testing.T) {
	for _, slot1 := range AllSlotIDs() {
		opts, err := AllowedSlot2Options(slot1)
		if err != nil {
			t.Fatalf("AllowedSlot2Options(%s): %v", slot1, err)
		}
		if len(opts) != 2 {
			t.Fatalf("AllowedSlot2Options(%s) returned %d options", slot1, len(opts))
		}
		if opts[0] == opts[1] {
			t.Errorf("options for %s are not distinct: %v", slot1, opts)
		}
		for _, o := range opts {
			if o.Day != slot1.Day.Add(2) {
				t.Errorf("option %s for %s is not two days later", o, slot1)
			}
			if o.Number == slot1.Number {
				t.Errorf("option %s for %s reuses the first slot's period", o, slot1)
			}
		}
	}
}

func TestAllowedSlot2OptionsInvalidSlot1(t *testing.T) {
	_, err := AllowedSlot2Options(SlotID{Day: 9, Number: 1})
	if !errors.Is(err, ErrInvalidSlotID) {
		t.Errorf("expected ErrInvalidSlotID, got %v", err)
	}
}

func TestMandatorySlot3(t *testing.T) {
	cases := []struct {
		slot1, slot2, want string
	}{
		{"Monday-1", "Wednesday-2", "Friday-3"},
		{"Monday-1", "Wednesday-3", "Friday-2"},
		{"Friday-1", "Monday-2", "Wednesday-3"},
		{"Saturday-3", "Tuesday-1", "Thursday-2"},
	}
	for _, tc := range cases {
		got, err := MandatorySlot3(mustParse(t, tc.slot1), mustParse(t, tc.slot2))
		if err != nil {
			t.Errorf("MandatorySlot3(%s, %s): %v", tc.slot1, tc.slot2, err)
			continue
		}
		if got.String() != tc.want {
			t.Errorf("MandatorySlot3(%s, %s) = %s, want %s", tc.slot1, tc.slot2, got, tc.want)
		}
	}
}

func TestMandatorySlot3RejectsIllegalSlot2(t *testing.T) {
	_, err := MandatorySlot3(mustParse(t, "Monday-1"), mustParse(t, "Wednesday-1"))
	if !errors.Is(err, ErrInvalidSlot2Selection) {
		t.Errorf("expected ErrInvalidSlot2Selection, got %v", err)
	}
	_, err = MandatorySlot3(mustParse(t, "Monday-1"), mustParse(t, "Thursday-2"))
	if !errors.Is(err, ErrInvalidSlot2Selection) {
		t.Errorf("expected ErrInvalidSlot2Selection for wrong day, got %v", err)
	}
}

// For every legal (slot1, slot2) pair the third slot is unique, lands on a
// third distinct day and occupies the one remaining period.
func TestMandatorySlot3Total(t *testing.T) {
	for _, slot1 := range AllSlotIDs() {
		opts, err := AllowedSlot2Options(slot1)
		if err != nil {
			t.Fatal(err)
		}
		for _, slot2 := range opts {
			slot3, err := MandatorySlot3(slot1, slot2)
			if err != nil {
				t.Fatalf("MandatorySlot3(%s, %s): %v", slot1, slot2, err)
			}
			if !slot3.Valid() {
				t.Fatalf("MandatorySlot3(%s, %s) = %s, out of domain", slot1, slot2, slot3)
			}
			if slot3.Day == slot1.Day || slot3.Day == slot2.Day {
				t.Errorf("slot 3 %s repeats a day of (%s, %s)", slot3, slot1, slot2)
			}
			sum := slot1.Number + slot2.Number + slot3.Number
			if sum != 6 {
				t.Errorf("periods of (%s, %s, %s) are not a permutation of 1..3", slot1, slot2, slot3)
			}
			// The derived triple must validate.
			if err := ValidateTriple(slot1, slot2, slot3); err != nil {
				t.Errorf("ValidateTriple(%s, %s, %s): %v", slot1, slot2, slot3, err)
			}
		}
	}
}

func TestValidateTripleAccepts(t *testing.T) {
	err := ValidateTriple(mustParse(t, "Monday-1"), mustParse(t, "Wednesday-2"), mustParse(t, "Friday-3"))
	if err != nil {
		t.Errorf("expected valid triple, got %v", err)
	}
}

func TestValidateTripleRejections(t *testing.T) {
	cases := []struct {
		name                  string
		slot1, slot2, slot3   string
		wantReasonContains    string
	}{
		{
			name:  "wrong slot3 period",
			slot1: "Monday-1", slot2: "Wednesday-2", slot3: "Friday-2",
			wantReasonContains: "Friday-3",
		},
		{
			name:  "wrong slot3 day",
			slot1: "Monday-1", slot2: "Wednesday-2", slot3: "Saturday-3",
			wantReasonContains: "slot 3 must fall on Friday",
		},
		{
			name:  "slot2 wrong day",
			slot1: "Monday-1", slot2: "Thursday-2", slot3: "Saturday-3",
			wantReasonContains: "slot 2 must fall on Wednesday",
		},
		{
			name:  "slot2 reuses slot1 period",
			slot1: "Monday-1", slot2: "Wednesday-1", slot3: "Friday-2",
			wantReasonContains: "slot 2 must be one of",
		},
		{
			name:  "repeated day",
			slot1: "Monday-1", slot2: "Monday-2", slot3: "Friday-3",
			wantReasonContains: "pairwise distinct",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateTriple(mustParse(t, tc.slot1), mustParse(t, tc.slot2), mustParse(t, tc.slot3))
			if err == nil {
				t.Fatalf("triple (%s, %s, %s) validated, want rejection", tc.slot1, tc.slot2, tc.slot3)
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %T", err)
			}
			if !strings.Contains(verr.Reason, tc.wantReasonContains) {
				t.Errorf("reason %q does not mention %q", verr.Reason, tc.wantReasonContains)
			}
		})
	}
}

func TestValidateTripleRejectsOutOfDomain(t *testing.T) {
	err := ValidateTriple(SlotID{Day: 7, Number: 1}, mustParse(t, "Wednesday-2"), mustParse(t, "Friday-3"))
	var verr *ValidationError
	if !errors.As(err, &verr) || !strings.Contains(verr.Reason, "invalid slot id") {
		t.Errorf("expected invalid slot id reason, got %v", err)
	}
}
