/*
calc.go - The calculation orchestrator

PURPOSE:
  Calculate is the single entry point of the engine: given a Config, the
  month's Overrides, and an optional WorkerProfile, it deterministically
  produces the full month - one DayResult per calendar day, quincena
  summaries with payday estimates, and monthly totals.

PURITY:
  No I/O, no shared state, no clock reads. The same inputs always
  produce the same Result, so callers simply re-run Calculate on every
  edit; concurrent runs are safe because each is independent.

MISSING INPUT:
  A config without a reference franco or a positive hourly rate yields a
  zero Result with an empty (non-nil) day list. Never an error, never a
  nil - downstream rendering iterates unconditionally.

PASS STRUCTURE:
  1. Walk the rotation across the month (running index, equivalent to
     the per-day offset formula).
  2. Evaluate pay rules per day, stack overtime, gross up.
  3. Partition into quincenas, apply the technician bonus, estimate
     paydays, sum monthly totals from the quincenas.

SEE ALSO:
  - cycle.go, payrules.go, totals.go, payday.go: The stages
  - rotation/ (package): Pre-wired calculators per rotation variant
*/
package schedule

// =============================================================================
// CALCULATOR - One rotation variant, ready to run
// =============================================================================

type Calculator struct {
	Rotation Rotation
	PayTable PayTable
	Bonus    BonusRule

	// PaydayLag is the business-day lag from cutoff to payday.
	// Zero means DefaultPaydayLag.
	PaydayLag int
}

func (c Calculator) paydayLag() int {
	if c.PaydayLag <= 0 {
		return DefaultPaydayLag
	}
	return c.PaydayLag
}

// =============================================================================
// CALCULATE - Full monthly run
// =============================================================================

// Calculate produces a fresh Result for the config's month. overrides
// and profile may be nil.
func (c Calculator) Calculate(cfg Config, overrides *Overrides, profile *WorkerProfile) Result {
	if !cfg.Ready() || c.Rotation.Len() == 0 {
		return emptyResult()
	}

	period := cfg.MonthPeriod()
	walker := c.Rotation.WalkFrom(*cfg.ReferenceOffDate, cfg.InitialShift, period.Start)

	days := make([]DayResult, 0, DaysInMonth(cfg.Year, cfg.Month))
	var offDays []Date

	for _, date := range period.Days() {
		shift := walker.Next()
		holiday := overrides.IsHoliday(date)

		pay := c.PayTable.Evaluate(date.Weekday(), shift, holiday)

		otReal := overrides.OvertimeFor(date)
		otEquiv := c.PayTable.OvertimeEquivalent(otReal)
		final := pay.EquivalentHours.Add(otEquiv)

		day := DayResult{
			Date:                    date,
			Weekday:                 date.Weekday(),
			Shift:                   shift,
			Label:                   pay.Label,
			IsHoliday:               holiday,
			RealHours:               pay.RealHours,
			BaseEquivalentHours:     pay.EquivalentHours,
			OvertimeRealHours:       otReal,
			OvertimeEquivalentHours: otEquiv,
			FinalEquivalentHours:    final,
			GrossPay:                final.Mul(cfg.HourlyRate),
			Quincena:                quincenaOf(date),
		}
		days = append(days, day)

		if !shift.IsWorking() {
			offDays = append(offDays, date)
		}
	}

	totals, q1, q2 := c.aggregate(cfg, profile, days)

	return Result{
		Days:      days,
		OffDays:   offDays,
		Totals:    totals,
		Quincena1: q1,
		Quincena2: q2,
	}
}

// quincenaOf partitions by day-of-month: 1-15 is the first quincena,
// the rest of the month the second.
func quincenaOf(d Date) int {
	if d.Day() <= 15 {
		return 1
	}
	return 2
}
