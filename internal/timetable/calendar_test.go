package timetable

import "testing"

func TestDayFromIndexWraps(t *testing.T) {
	cases := []struct {
		in   int
		want Day
	}{
		{0, Monday},
		{5, Saturday},
		{6, Monday},
		{7, Tuesday},
		{-1, Saturday},
		{-6, Monday},
		{13, Tuesday},
	}
	for _, tc := range cases {
		if got := DayFromIndex(tc.in); got != tc.want {
			t.Errorf("DayFromIndex(%d) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestDayAdd(t *testing.T) {
	if got := Friday.Add(2); got != Monday {
		t.Errorf("Friday.Add(2) = %s, want Monday", got)
	}
	if got := Saturday.Add(2); got != Tuesday {
		t.Errorf("Saturday.Add(2) = %s, want Tuesday", got)
	}
	if got := Monday.Add(-2); got != Friday {
		t.Errorf("Monday.Add(-2) = %s, want Friday", got)
	}
}

func TestSlotNumberFromIndex(t *testing.T) {
	cases := []struct {
		in   int
		want SlotNumber
	}{
		{1, 1}, {2, 2}, {3, 3},
		{4, 1}, {5, 2}, {6, 3},
		{0, 3}, {-1, 2},
	}
	for _, tc := range cases {
		if got := SlotNumberFromIndex(tc.in); got != tc.want {
			t.Errorf("SlotNumberFromIndex(%d) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestParseSlotIDRoundTrip(t *testing.T) {
	ids := AllSlotIDs()
	if len(ids) != 18 {
		t.Fatalf("AllSlotIDs returned %d ids, want 18", len(ids))
	}
	for _, id := range ids {
		parsed, err := ParseSlotID(id.String())
		if err != nil {
			t.Errorf("ParseSlotID(%q) failed: %v", id.String(), err)
			continue
		}
		if parsed != id {
			t.Errorf("round trip of %q gave %q", id.String(), parsed.String())
		}
	}
}

func TestParseSlotIDRejectsBadInput(t *testing.T) {
	bad := []string{
		"", "Monday", "Monday-", "Monday-0", "Monday-4", "Sunday-1",
		"monday1", "Monday-1-2 extra", "Funday-2", "-1", "Monday--1",
	}
	for _, s := range bad {
		if _, err := ParseSlotID(s); err == nil {
			t.Errorf("ParseSlotID(%q) succeeded, want error", s)
		}
	}
	// Lowercase day names are accepted; parsing is case-insensitive.
	if id, err := ParseSlotID("monday-1"); err != nil || id != (SlotID{Monday, 1}) {
		t.Errorf("ParseSlotID(\"monday-1\") = %v, %v", id, err)
	}
}

func TestSlotNumberTimeRange(t *testing.T) {
	if got := SlotNumber(1).TimeRange(); got != "8:45 AM – 10:00 AM" {
		t.Errorf("TimeRange(1) = %q", got)
	}
	if got := SlotNumber(4).TimeRange(); got != "" {
		t.Errorf("TimeRange(4) = %q, want empty", got)
	}
}
