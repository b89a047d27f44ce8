/*
payrules.go - Per-day pay evaluation

PURPOSE:
  Turns (weekday, rotation slot, manual holiday flag) into the day's real
  clock hours, equivalent pay hours, and display label. Equivalent hours
  carry the night/weekend differentials; grossing up to currency happens
  later with the hourly rate.

RULE LAYERING:
  1. Franco, no holiday:      0 real, 0 equivalent.
  2. Franco + holiday:        0 real, HolidayOffEquivalent (flat).
  3. Worked day + holiday:    HolidayWorkedReal real,
                              HolidayWorkedEquivalent (flat) - the
                              holiday figure REPLACES the weekday/shift
                              table, it does not stack on it.
  4. Worked day, no holiday:  weekday-band table lookup.

  Overtime is not handled here: it is uniform across day types and is
  applied by the calculator on top of whatever this evaluator returns.

LABELS:
  Holidays prefix the slot label ("Holiday - Morning", "Holiday - Off").
  Non-holiday Sundays read "Sunday Morning" etc., mirroring how the
  printed schedule calls out the dominical differential.

SEE ALSO:
  - rotation/ (package): Concrete pay tables per rotation variant
  - calc.go: Overtime stacking and grossing up
*/
package schedule

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// PAY TABLE - Weekday-band hour equivalences plus holiday constants
// =============================================================================

// HourPair is one cell of the pay table: real clock hours worked and the
// equivalent hours they pay as.
type HourPair struct {
	Real       decimal.Decimal
	Equivalent decimal.Decimal
}

// Hours builds an HourPair from whole-hour figures.
func Hours(real, equivalent int) HourPair {
	return HourPair{
		Real:       decimal.NewFromInt(int64(real)),
		Equivalent: decimal.NewFromInt(int64(equivalent)),
	}
}

// PayTable holds the per-band shift equivalences and the flat holiday
// constants for one rotation variant.
type PayTable struct {
	Weekday  map[Shift]HourPair // Monday-Friday
	Saturday map[Shift]HourPair
	Sunday   map[Shift]HourPair

	HolidayWorkedReal       decimal.Decimal
	HolidayWorkedEquivalent decimal.Decimal
	HolidayOffEquivalent    decimal.Decimal

	OvertimeMultiplier decimal.Decimal
}

// DayPay is the evaluator output for a single day, before overtime.
type DayPay struct {
	RealHours       decimal.Decimal
	EquivalentHours decimal.Decimal
	Label           string
}

// =============================================================================
// EVALUATION
// =============================================================================

// Evaluate applies the layered pay rules for one day.
func (t PayTable) Evaluate(weekday time.Weekday, shift Shift, holiday bool) DayPay {
	if !shift.IsWorking() {
		if holiday {
			return DayPay{
				RealHours:       decimal.Zero,
				EquivalentHours: t.HolidayOffEquivalent,
				Label:           "Holiday - " + ShiftOff.Label(),
			}
		}
		return DayPay{RealHours: decimal.Zero, EquivalentHours: decimal.Zero, Label: ShiftOff.Label()}
	}

	if holiday {
		// Flat holiday pay replaces the table value entirely.
		return DayPay{
			RealHours:       t.HolidayWorkedReal,
			EquivalentHours: t.HolidayWorkedEquivalent,
			Label:           "Holiday - " + shift.Label(),
		}
	}

	pair := t.bandFor(weekday)[shift]
	if pair.Real.IsZero() && pair.Equivalent.IsZero() {
		// Shift missing from the band: pay as a plain 8-for-8 day rather
		// than silently zeroing a worked slot.
		pair = Hours(8, 8)
	}

	label := shift.Label()
	if weekday == time.Sunday {
		label = "Sunday " + label
	}
	return DayPay{RealHours: pair.Real, EquivalentHours: pair.Equivalent, Label: label}
}

func (t PayTable) bandFor(weekday time.Weekday) map[Shift]HourPair {
	switch weekday {
	case time.Saturday:
		return t.Saturday
	case time.Sunday:
		return t.Sunday
	default:
		return t.Weekday
	}
}

// OvertimeEquivalent converts manually entered real overtime hours into
// equivalent hours. Uniform across day types, including francos and
// holidays.
func (t PayTable) OvertimeEquivalent(realHours decimal.Decimal) decimal.Decimal {
	return realHours.Mul(t.OvertimeMultiplier)
}
