package doctor

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

const slotTimeLayout = "15:04"

// Slot is a time-of-day window a doctor can be booked in, e.g. "09:00-10:00".
// Conflict detection compares the canonical rendering of two slots, not their
// intervals: a booked hour only blocks the template slot whose string form
// matches it exactly.
type Slot struct {
	raw     string
	start   time.Time
	hasTime bool
}

// ParseSlot builds a Slot from its "HH:mm-HH:mm" rendering. Windows whose
// start cannot be parsed are still carried (the raw string is preserved) but
// sort after every parseable slot and never match a booked window.
func ParseSlot(raw string) Slot {
	s := Slot{raw: raw}
	before, _, found := strings.Cut(raw, "-")
	if !found {
		return s
	}
	start, err := time.Parse(slotTimeLayout, strings.TrimSpace(before))
	if err != nil {
		return s
	}
	s.start = start
	s.hasTime = true
	return s
}

// SlotForTime renders the one-hour window starting at t's time of day.
// Booked appointments are mapped into slot space with this function.
func SlotForTime(t time.Time) Slot {
	raw := t.Format(slotTimeLayout) + "-" + t.Add(time.Hour).Format(slotTimeLayout)
	return Slot{raw: raw, start: mustClock(t), hasTime: true}
}

func mustClock(t time.Time) time.Time {
	clock, _ := time.Parse(slotTimeLayout, t.Format(slotTimeLayout))
	return clock
}

func (s Slot) String() string { return s.raw }

// StartMinute returns the slot's start as minutes since midnight.
// ok is false for unparseable windows.
func (s Slot) StartMinute() (int, bool) {
	if !s.hasTime {
		return 0, false
	}
	return s.start.Hour()*60 + s.start.Minute(), true
}

// StartsAtClock reports whether the slot begins at t's time of day,
// at minute precision.
func (s Slot) StartsAtClock(t time.Time) bool {
	m, ok := s.StartMinute()
	if !ok {
		return false
	}
	return m == t.Hour()*60+t.Minute()
}

// IsMorning reports whether the slot starts before noon. 12:00 and later
// count as afternoon.
func (s Slot) IsMorning() bool {
	m, ok := s.StartMinute()
	return ok && m < 12*60
}

// SortSlots orders slots ascending by start time. Unparseable slots sort last
// in their original relative order.
func SortSlots(slots []Slot) {
	sort.SliceStable(slots, func(i, j int) bool {
		mi, oki := slots[i].StartMinute()
		mj, okj := slots[j].StartMinute()
		if oki != okj {
			return oki
		}
		return mi < mj
	})
}

// ParseSlots converts a doctor's raw template windows into Slots,
// preserving order.
func ParseSlots(raw []string) []Slot {
	slots := make([]Slot, 0, len(raw))
	for _, r := range raw {
		slots = append(slots, ParseSlot(r))
	}
	return slots
}

// ValidateTemplate checks that every window parses and that no two windows in
// the template overlap. Ends at or before a later start are allowed to touch.
func ValidateTemplate(raw []string) error {
	type window struct {
		start, end int
	}
	windows := make([]window, 0, len(raw))
	for _, r := range raw {
		before, after, found := strings.Cut(r, "-")
		if !found {
			return fmt.Errorf("%w: %q", ErrInvalidSlot, r)
		}
		start, err := time.Parse(slotTimeLayout, strings.TrimSpace(before))
		if err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidSlot, r)
		}
		end, err := time.Parse(slotTimeLayout, strings.TrimSpace(after))
		if err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidSlot, r)
		}
		sm := start.Hour()*60 + start.Minute()
		em := end.Hour()*60 + end.Minute()
		if em <= sm {
			return fmt.Errorf("%w: %q ends before it starts", ErrInvalidSlot, r)
		}
		windows = append(windows, window{start: sm, end: em})
	}

	sort.Slice(windows, func(i, j int) bool { return windows[i].start < windows[j].start })
	for i := 1; i < len(windows); i++ {
		if windows[i].start < windows[i-1].end {
			return fmt.Errorf("%w: template windows overlap", ErrInvalidSlot)
		}
	}
	return nil
}
