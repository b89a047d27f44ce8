/*
rotation.go - Shifts and the repeating rotation cycle

PURPOSE:
  A rotation is a fixed-length ordered sequence of shift slots that
  repeats forever: the 6-on/2-off variant is 24 slots (6 Morning, 2 Off,
  6 Night, 2 Off, 6 Afternoon, 2 Off), the 2x2 variant is 6 slots.
  The cycle is pure data - domain packages build Rotations, this file
  only defines the vocabulary and the slot container.

DESIGN:
  Shift is a small closed enum. An empty rotation is invalid; every
  other slot arrangement is legal, which is what lets the 2x2 variant
  live as configuration instead of a code fork.

SEE ALSO:
  - cycle.go: Mapping absolute dates to slot indexes
  - rotation/ (package): Built-in rotation profiles
*/
package schedule

import "fmt"

// =============================================================================
// SHIFT - Vocabulary of cycle slots
// =============================================================================

type Shift string

const (
	ShiftMorning   Shift = "morning"
	ShiftAfternoon Shift = "afternoon"
	ShiftNight     Shift = "night"
	ShiftOff       Shift = "off"
)

// ParseShift maps a persisted label to a Shift.
func ParseShift(s string) (Shift, error) {
	switch Shift(s) {
	case ShiftMorning, ShiftAfternoon, ShiftNight, ShiftOff:
		return Shift(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownShift, s)
}

// IsWorking reports whether the slot is a worked shift (anything but a
// franco).
func (s Shift) IsWorking() bool { return s != ShiftOff && s != "" }

// Label returns the display form of the shift.
func (s Shift) Label() string {
	switch s {
	case ShiftMorning:
		return "Morning"
	case ShiftAfternoon:
		return "Afternoon"
	case ShiftNight:
		return "Night"
	case ShiftOff:
		return "Off"
	}
	return string(s)
}

// =============================================================================
// ROTATION - Fixed repeating sequence of slots
// =============================================================================

type Rotation struct {
	Name  string
	Slots []Shift
}

func (r Rotation) Len() int { return len(r.Slots) }

// At returns the slot at index i, normalized into the cycle.
func (r Rotation) At(i int) Shift {
	n := r.Len()
	if n == 0 {
		return ShiftOff
	}
	return r.Slots[((i%n)+n)%n]
}

// BaseOffset returns the cycle index of the first slot carrying the
// given shift. For the 24-slot cycle that is Morning=0, Night=8,
// Afternoon=16; shorter cycles scale the same way. Unknown shifts
// anchor at 0.
func (r Rotation) BaseOffset(initial Shift) int {
	for i, s := range r.Slots {
		if s == initial {
			return i
		}
	}
	return 0
}

func (r Rotation) Validate() error {
	if len(r.Slots) == 0 {
		return ErrEmptyRotation
	}
	for _, s := range r.Slots {
		if _, err := ParseShift(string(s)); err != nil {
			return err
		}
	}
	return nil
}
