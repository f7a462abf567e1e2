// Package timetable defines the fixed weekly calendar used for slot
// allocation and the dependency rule that constrains which three slots a
// section may book together.  The universe is fixed: six teaching days
// (Monday through Saturday) with three numbered periods per day, giving 18
// slots in total.  All arithmetic over days and periods is cyclic so that
// derived slots always land back inside the universe.
package timetable

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Day is one of the six teaching days.  The zero value is Monday and the
// integer values 0..5 are stable; they are used for cyclic arithmetic and
// never persisted directly (slots are stored by their canonical string id).
type Day int

const (
	Monday Day = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

// NumDays is the size of the teaching week.
const NumDays = 6

var dayNames = [NumDays]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// String returns the English day name, e.g. "Wednesday".
func (d Day) String() string {
	if d < 0 || d >= NumDays {
		return "Day(" + strconv.Itoa(int(d)) + ")"
	}
	return dayNames[d]
}

// Valid reports whether d is one of the six teaching days.
func (d Day) Valid() bool { return d >= 0 && d < NumDays }

// Index returns the stable integer index of the day (Monday=0 .. Saturday=5).
func (d Day) Index() int { return int(d) }

// DayFromIndex maps an arbitrary integer onto a teaching day using modulo-6
// arithmetic.  Indices wrap in both directions, so 7 maps to Tuesday and -1
// maps to Saturday.
func DayFromIndex(n int) Day {
	return Day(((n % NumDays) + NumDays) % NumDays)
}

// Add returns the day k teaching days after d, wrapping around the week.
func (d Day) Add(k int) Day { return DayFromIndex(int(d) + k) }

// ParseDay converts an English day name into its Day value.  The comparison
// is case-insensitive.  It returns false when the name is not one of the six
// teaching days.
func ParseDay(s string) (Day, bool) {
	for i, name := range dayNames {
		if strings.EqualFold(s, name) {
			return Day(i), true
		}
	}
	return 0, false
}

// SlotNumber identifies one of the three daily periods.  Valid values are
// 1, 2 and 3; each is bound to a fixed wall-clock range.
type SlotNumber int

// NumSlots is the number of periods per day.
const NumSlots = 3

var slotTimes = [NumSlots + 1]string{
	0: "",
	1: "8:45 AM – 10:00 AM",
	2: "11:00 AM – 1:00 PM",
	3: "2:00 PM – 3:45 PM",
}

// Valid reports whether n is one of the three periods.
func (n SlotNumber) Valid() bool { return n >= 1 && n <= NumSlots }

// TimeRange returns the wall-clock range bound to the period, or the empty
// string for an invalid period.
func (n SlotNumber) TimeRange() string {
	if !n.Valid() {
		return ""
	}
	return slotTimes[n]
}

// SlotNumberFromIndex maps an arbitrary integer onto {1,2,3} using modulo-3
// arithmetic shifted so that 4 maps to 1 and 0 maps to 3.
func SlotNumberFromIndex(n int) SlotNumber {
	return SlotNumber(((n-1)%NumSlots+NumSlots)%NumSlots + 1)
}

// SlotID is the composite key of a bookable slot: a teaching day plus a
// period number.  There are exactly 18 valid values.
type SlotID struct {
	Day    Day
	Number SlotNumber
}

// Valid reports whether the id denotes one of the 18 canonical slots.
func (s SlotID) Valid() bool { return s.Day.Valid() && s.Number.Valid() }

// String returns the canonical form "<Day>-<Number>", e.g. "Monday-1".
// This is the form used on the wire and as the primary key in the slots
// table; ParseSlotID round-trips it exactly.
func (s SlotID) String() string {
	return s.Day.String() + "-" + strconv.Itoa(int(s.Number))
}

// ErrInvalidSlotID reports a malformed or out-of-domain slot identifier.
var ErrInvalidSlotID = errors.New("invalid slot id")

// ParseSlotID parses the canonical "<Day>-<Number>" form.  Any string that
// does not name one of the 18 slots yields ErrInvalidSlotID (wrapped with
// the offending input).
func ParseSlotID(s string) (SlotID, error) {
	dayPart, numPart, ok := strings.Cut(s, "-")
	if !ok {
		return SlotID{}, fmt.Errorf("%w: %q", ErrInvalidSlotID, s)
	}
	day, ok := ParseDay(dayPart)
	if !ok {
		return SlotID{}, fmt.Errorf("%w: %q", ErrInvalidSlotID, s)
	}
	n, err := strconv.Atoi(numPart)
	if err != nil || !SlotNumber(n).Valid() {
		return SlotID{}, fmt.Errorf("%w: %q", ErrInvalidSlotID, s)
	}
	return SlotID{Day: day, Number: SlotNumber(n)}, nil
}

// AllSlotIDs returns the 18 canonical slot ids ordered by day then period.
func AllSlotIDs() []SlotID {
	ids := make([]SlotID, 0, NumDays*NumSlots)
	for d := Day(0); d < NumDays; d++ {
		for n := SlotNumber(1); n <= NumSlots; n++ {
			ids = append(ids, SlotID{Day: d, Number: n})
		}
	}
	return ids
}
