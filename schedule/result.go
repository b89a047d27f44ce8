/*
result.go - Calculation output types

PURPOSE:
  The engine's entire output for one run. Produced fresh on every
  invocation and never patched in place: callers re-run Calculate when
  inputs change and swap the whole Result.

STRUCTURE:
  DayResult:       One row per calendar day of the target month
  QuincenaSummary: One per half-month pay period, with cutoff + payday
  Totals:          Monthly figures, defined as the sum of the quincenas
  Result:          The assembled whole

  Days is always non-nil - downstream rendering iterates it without a
  nil check, including for the zero Result of a not-ready config.

SEE ALSO:
  - calc.go: Assembly
  - totals.go: Quincena aggregation
*/
package schedule

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// DAY RESULT - One calendar day
// =============================================================================

type DayResult struct {
	Date    Date
	Weekday time.Weekday

	// Shift is the raw rotation slot; Label is the display form with
	// holiday/Sunday prefixes applied.
	Shift     Shift
	Label     string
	IsHoliday bool

	RealHours               decimal.Decimal
	BaseEquivalentHours     decimal.Decimal
	OvertimeRealHours       decimal.Decimal
	OvertimeEquivalentHours decimal.Decimal
	FinalEquivalentHours    decimal.Decimal
	GrossPay                decimal.Decimal

	// Quincena is 1 for days 1-15, 2 otherwise.
	Quincena int
}

// =============================================================================
// QUINCENA SUMMARY - Half-month pay period
// =============================================================================

type QuincenaSummary struct {
	Gross    decimal.Decimal
	Withheld decimal.Decimal
	Net      decimal.Decimal

	CutoffDate      Date
	EstimatedPayday Date

	// BonusApplied is the technician bonus included in Gross, zero when
	// no bonus applies. Bonuses land on quincena 2 only.
	BonusApplied decimal.Decimal
}

// =============================================================================
// TOTALS - Monthly figures
// =============================================================================

type Totals struct {
	EquivalentHours   decimal.Decimal
	OvertimeRealHours decimal.Decimal

	// Gross/Withheld/Net are the sums of the two quincenas, not an
	// independent recomputation.
	Gross    decimal.Decimal
	Withheld decimal.Decimal
	Net      decimal.Decimal

	// DiscountPercent is the withholding rate as a percentage, for
	// display.
	DiscountPercent decimal.Decimal
}

// =============================================================================
// RESULT - Full run output
// =============================================================================

type Result struct {
	Days []DayResult

	// OffDays lists the francos of the month in calendar order, holiday
	// francos included.
	OffDays []Date

	Totals    Totals
	Quincena1 QuincenaSummary
	Quincena2 QuincenaSummary
}

// emptyResult is the well-formed zero output for a not-ready config.
func emptyResult() Result {
	return Result{Days: []DayResult{}}
}
