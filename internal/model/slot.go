package model

// Slot is one row of the capacity ledger: a weekly time slot with a fixed
// capacity and a filled counter.  One row exists per canonical slot id and
// rows are created exactly once at system initialization.  The filled
// counter moves only inside the submission transaction (increment), an
// administrative reversal (decrement) or a bulk reset.
//
// Fields:
//  ID        – canonical slot id, e.g. "Monday-1" (slots.id).
//  Day       – English day name (slots.day).
//  Number    – period number 1..3 (slots.slot_number).
//  TimeRange – wall-clock range of the period (slots.time_range).
//  Capacity  – fixed number of sections the slot can take (slots.capacity).
//  Filled    – sections currently booked into the slot (slots.filled).
type Slot struct {
	ID        string `json:"id"`
	Day       string `json:"day"`
	Number    int    `json:"slot_number"`
	TimeRange string `json:"time_range"`
	Capacity  int    `json:"capacity"`
	Filled    int    `json:"filled"`
}

// Slot statuses derived from remaining capacity.
const (
	SlotAvailable = "available"
	SlotLimited   = "limited"
	SlotFull      = "full"
)

// limitedThreshold is the remaining-capacity level at or below which a slot
// is flagged as limited.
const limitedThreshold = 2

// Remaining returns capacity minus filled.
func (s Slot) Remaining() int { return s.Capacity - s.Filled }

// Status derives the availability status from the remaining capacity.
func (s Slot) Status() string {
	switch r := s.Remaining(); {
	case r <= 0:
		return SlotFull
	case r <= limitedThreshold:
		return SlotLimited
	default:
		return SlotAvailable
	}
}
