package model

import "testing"

func TestSlotStatusThresholds(t *testing.T) {
	cases := []struct {
		filled int
		want   string
	}{
		{0, SlotAvailable},
		{4, SlotAvailable},
		{5, SlotLimited}, // remaining 2
		{6, SlotLimited}, // remaining 1
		{7, SlotFull},
	}
	for _, tc := range cases {
		s := Slot{Capacity: 7, Filled: tc.filled}
		if got := s.Status(); got != tc.want {
			t.Errorf("filled=%d: status %q, want %q", tc.filled, got, tc.want)
		}
		if s.Remaining() != 7-tc.filled {
			t.Errorf("filled=%d: remaining %d", tc.filled, s.Remaining())
		}
	}
}
