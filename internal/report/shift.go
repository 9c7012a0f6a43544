package report

import (
	"fmt"
	"time"
)

// Shift identifies which operating window a payment belongs to. The business
// runs two fixed 12-hour shifts per calendar day.
type Shift int

const (
	ShiftNone Shift = iota
	Shift1          // [08:00, 20:00)
	Shift2          // [20:00, next day 08:00)
)

const (
	shift1StartHour = 8
	shift2StartHour = 20
)

func (s Shift) String() string {
	switch s {
	case Shift1:
		return "Shift 1"
	case Shift2:
		return "Shift 2"
	}
	return "none"
}

// ShiftSelection picks which detail sections a report carries.
type ShiftSelection string

const (
	SelectAll    ShiftSelection = "all"
	SelectShift1 ShiftSelection = "shift1"
	SelectShift2 ShiftSelection = "shift2"
)

// ParseShiftSelection maps a query value onto a selection mode. The empty
// string means all shifts.
func ParseShiftSelection(s string) (ShiftSelection, error) {
	switch ShiftSelection(s) {
	case "":
		return SelectAll, nil
	case SelectAll, SelectShift1, SelectShift2:
		return ShiftSelection(s), nil
	}
	return "", fmt.Errorf("unknown shift selection %q", s)
}

// DateRange is a whole-day reporting window, inclusive on both ends. A zero
// bound leaves that side of the range open.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Validate enforces the assembler's contract: both bounds present and start
// not after end. Wraps ErrInvalidRange on failure.
func (r DateRange) Validate() error {
	if r.Start.IsZero() || r.End.IsZero() {
		return fmt.Errorf("%w: both start and end dates are required", ErrInvalidRange)
	}
	if r.Start.After(r.End) {
		return fmt.Errorf("%w: start %s is after end %s",
			ErrInvalidRange, r.Start.Format(time.DateOnly), r.End.Format(time.DateOnly))
	}
	return nil
}

// Contains reports whether t falls between the start of the range's first day
// and the end of its last day, evaluated in loc. Open bounds match everything
// on their side.
func (r DateRange) Contains(t time.Time, loc *time.Location) bool {
	t = t.In(loc)
	if !r.Start.IsZero() && t.Before(startOfDay(r.Start, loc)) {
		return false
	}
	if !r.End.IsZero() && !t.Before(startOfDay(r.End, loc).AddDate(0, 0, 1)) {
		return false
	}
	return true
}

// ClassifyShift assigns t to the shift of its own calendar day in loc. The
// first shift is the half-open window [08:00, 20:00); everything else is the
// second shift, so 00:00-08:00 belongs to the previous day's second shift.
func ClassifyShift(t time.Time, loc *time.Location) Shift {
	h := t.In(loc).Hour()
	if h >= shift1StartHour && h < shift2StartHour {
		return Shift1
	}
	return Shift2
}

// PartitionShift classifies t within a reporting range, returning ShiftNone
// for timestamps outside the range.
func PartitionShift(t time.Time, rng DateRange, loc *time.Location) Shift {
	if !rng.Contains(t, loc) {
		return ShiftNone
	}
	return ClassifyShift(t, loc)
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
