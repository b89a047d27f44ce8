/*
config.go - Calculation inputs

PURPOSE:
  Config is everything fixed for one calculation run: the target month,
  the rotation anchor (last confirmed franco + the shift that follows
  it), the hourly rate, and the withholding fraction. WorkerProfile is
  the cross-month, rarely-changing part: job category and technician
  certification.

VALIDATION:
  Validate is the persistence-boundary check: it rejects structurally
  bad records (month out of range, negative rate, discount outside
  [0,1]) before they ever reach the engine. Ready is the softer runtime
  question - "is there enough data to compute anything yet?" - and a
  not-ready config produces a zero Result, never an error.

SEE ALSO:
  - calc.go: Consumes Config and WorkerProfile
  - store.go: Persistence contracts, including partial merge patches
*/
package schedule

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// CONFIG - Per-run inputs
// =============================================================================

type Config struct {
	Year  int
	Month time.Month

	// ReferenceOffDate is the last confirmed franco before the stretch
	// being projected. Nil until the user sets it.
	ReferenceOffDate *Date

	// InitialShift is the shift active the day after ReferenceOffDate.
	InitialShift Shift

	// HourlyRate is currency units per equivalent hour.
	HourlyRate decimal.Decimal

	// DiscountRate is the withheld fraction of gross, in [0, 1].
	DiscountRate decimal.Decimal
}

// Ready reports whether the config carries enough data for a real
// calculation. A not-ready config is the expected "no data yet" state.
func (c Config) Ready() bool {
	return c.ReferenceOffDate != nil && !c.ReferenceOffDate.IsZero() && c.HourlyRate.IsPositive()
}

// MonthPeriod returns the target month as a day range.
func (c Config) MonthPeriod() Period { return MonthOf(c.Year, c.Month) }

// Validate rejects structurally malformed configs at the boundary.
// A missing reference date or zero rate is NOT an error here; those are
// handled by Ready.
func (c Config) Validate() error {
	if c.Month < time.January || c.Month > time.December {
		return fmt.Errorf("%w: %d", ErrInvalidMonth, c.Month)
	}
	if c.HourlyRate.IsNegative() {
		return fmt.Errorf("%w: %s", ErrNegativeRate, c.HourlyRate)
	}
	if c.DiscountRate.IsNegative() || c.DiscountRate.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("%w: %s", ErrDiscountOutOfRange, c.DiscountRate)
	}
	if c.InitialShift != "" {
		if _, err := ParseShift(string(c.InitialShift)); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// WORKER PROFILE - Cross-month data
// =============================================================================

type WorkerProfile struct {
	Category            string
	TechnicianCertified bool
	CertificationBonus  decimal.Decimal
}
