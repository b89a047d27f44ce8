/*
Package rotation provides the built-in rotation variants for the
shift-payroll engine.

PURPOSE:
  The schedule package is variant-agnostic: it runs any rotation cycle
  with any pay table. This package binds the concrete variants that
  exist in the field:

  SixByTwo: The 24-day 6-on/2-off rotation (6 Morning, 2 Off, 6 Night,
            2 Off, 6 Afternoon, 2 Off) with the full differential pay
            table and a flat technician bonus. This is the default and
            the most complete variant.
  TwoByTwo: The 6-day 2x2 rotation (2 Morning, 2 Afternoon, 2 Off) with
            the same differential table and a per-base-hour technician
            bonus. Kept as a distinct profile, not reconciled into the
            6x2 rules.

PAY TABLE (6x2, authoritative):
  Mon-Fri  Morning/Afternoon  8 real ->  8 equivalent
  Mon-Fri  Night              8 real -> 12 equivalent
  Sat      Morning            8 real ->  9 equivalent
  Sat      Afternoon          9 real -> 12 equivalent
  Sat      Night              8 real -> 16 equivalent
  Sun      Morning/Afternoon  8 real -> 24 equivalent
  Sun      Night              8 real -> 28 equivalent
  Holiday worked: flat 8 real -> 32 equivalent (replaces the table)
  Holiday on franco: 0 real -> 8 equivalent
  Overtime: x1.5, uniform across day types

SEE ALSO:
  - schedule/: The engine these profiles parameterize
  - factory/: JSON to Profile conversion
*/
package rotation

import (
	"github.com/shopspring/decimal"
	"github.com/warp/shift-payroll/schedule"
)

// =============================================================================
// PROFILE - A rotation variant wired to its pay rules
// =============================================================================

type Profile struct {
	ID   string
	Name string

	Rotation  schedule.Rotation
	PayTable  schedule.PayTable
	Bonus     schedule.BonusRule
	PaydayLag int
}

// Calculator returns a ready-to-run calculator for the profile.
func (p Profile) Calculator() schedule.Calculator {
	return schedule.Calculator{
		Rotation:  p.Rotation,
		PayTable:  p.PayTable,
		Bonus:     p.Bonus,
		PaydayLag: p.PaydayLag,
	}
}

// Profile IDs for the built-in variants.
const (
	SixByTwoID = "six-by-two"
	TwoByTwoID = "two-by-two"
)

// Builtin returns a built-in profile by ID.
func Builtin(id string) (Profile, bool) {
	switch id {
	case SixByTwoID, "":
		return SixByTwo(), true
	case TwoByTwoID:
		return TwoByTwo(), true
	}
	return Profile{}, false
}

// BuiltinIDs lists the available profile IDs, default first.
func BuiltinIDs() []string { return []string{SixByTwoID, TwoByTwoID} }

// =============================================================================
// SIX-BY-TWO - 24-day rotation, flat bonus (default)
// =============================================================================

func SixByTwo() Profile {
	return Profile{
		ID:   SixByTwoID,
		Name: "6x2 Rotation",
		Rotation: schedule.Rotation{
			Name: "6x2",
			Slots: repeatSlots(
				run(schedule.ShiftMorning, 6), run(schedule.ShiftOff, 2),
				run(schedule.ShiftNight, 6), run(schedule.ShiftOff, 2),
				run(schedule.ShiftAfternoon, 6), run(schedule.ShiftOff, 2),
			),
		},
		PayTable:  standardPayTable(),
		Bonus:     schedule.BonusRule{Mode: schedule.BonusFlat},
		PaydayLag: schedule.DefaultPaydayLag,
	}
}

// =============================================================================
// TWO-BY-TWO - 6-day rotation, per-base-hour bonus
// =============================================================================

func TwoByTwo() Profile {
	return Profile{
		ID:   TwoByTwoID,
		Name: "2x2 Rotation",
		Rotation: schedule.Rotation{
			Name: "2x2",
			Slots: repeatSlots(
				run(schedule.ShiftMorning, 2),
				run(schedule.ShiftAfternoon, 2),
				run(schedule.ShiftOff, 2),
			),
		},
		PayTable:  standardPayTable(),
		Bonus:     schedule.BonusRule{Mode: schedule.BonusPerBaseHour},
		PaydayLag: schedule.DefaultPaydayLag,
	}
}

// =============================================================================
// SHARED PAY TABLE
// =============================================================================

func standardPayTable() schedule.PayTable {
	return schedule.PayTable{
		Weekday: map[schedule.Shift]schedule.HourPair{
			schedule.ShiftMorning:   schedule.Hours(8, 8),
			schedule.ShiftAfternoon: schedule.Hours(8, 8),
			schedule.ShiftNight:     schedule.Hours(8, 12),
		},
		Saturday: map[schedule.Shift]schedule.HourPair{
			schedule.ShiftMorning:   schedule.Hours(8, 9),
			schedule.ShiftAfternoon: schedule.Hours(9, 12),
			schedule.ShiftNight:     schedule.Hours(8, 16),
		},
		Sunday: map[schedule.Shift]schedule.HourPair{
			schedule.ShiftMorning:   schedule.Hours(8, 24),
			schedule.ShiftAfternoon: schedule.Hours(8, 24),
			schedule.ShiftNight:     schedule.Hours(8, 28),
		},
		HolidayWorkedReal:       decimal.NewFromInt(8),
		HolidayWorkedEquivalent: decimal.NewFromInt(32),
		HolidayOffEquivalent:    decimal.NewFromInt(8),
		OvertimeMultiplier:      decimal.NewFromFloat(1.5),
	}
}

// =============================================================================
// SLOT HELPERS
// =============================================================================

type slotRun struct {
	shift schedule.Shift
	count int
}

func run(shift schedule.Shift, count int) slotRun { return slotRun{shift: shift, count: count} }

func repeatSlots(runs ...slotRun) []schedule.Shift {
	var slots []schedule.Shift
	for _, r := range runs {
		for i := 0; i < r.count; i++ {
			slots = append(slots, r.shift)
		}
	}
	return slots
}
