/*
errors.go - Centralized error types for the schedule engine

PURPOSE:
  All sentinel errors in one place. The engine itself never raises for
  expected "no data yet" states: a missing reference off-date or a
  non-positive hourly rate yields a zero-valued Result from Calculate,
  not an error. These sentinels exist for the boundaries - parsing
  persisted records, validating user edits - where malformed input is a
  caller bug that must fail fast instead of being silently clamped.

USAGE:
  if errors.Is(err, schedule.ErrInvalidDate) { ... }

SEE ALSO:
  - config.go: Config.Validate uses these
  - overrides.go: Overrides.SetOvertime uses these
*/
package schedule

import "errors"

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidDate is returned when a persisted or user-supplied date
	// string does not parse. Never treated as "today".
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidMonth is returned when a month is outside 1-12.
	ErrInvalidMonth = errors.New("month out of range")

	// ErrNegativeRate is returned when an hourly rate is negative.
	// A zero rate is the valid "not configured yet" state; a negative
	// one is a caller bug.
	ErrNegativeRate = errors.New("negative hourly rate")

	// ErrDiscountOutOfRange is returned when a discount rate falls
	// outside [0, 1].
	ErrDiscountOutOfRange = errors.New("discount rate out of range")

	// ErrNegativeOvertime is returned when a manual overtime entry is
	// negative. Rejected at the boundary rather than clamped.
	ErrNegativeOvertime = errors.New("negative overtime hours")

	// ErrUnknownShift is returned when a shift label is not part of the
	// rotation vocabulary.
	ErrUnknownShift = errors.New("unknown shift")

	// ErrEmptyRotation is returned when a rotation has no slots.
	ErrEmptyRotation = errors.New("rotation has no slots")
)

// IsClientError returns true if the error is due to invalid caller input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrInvalidMonth) ||
		errors.Is(err, ErrNegativeRate) ||
		errors.Is(err, ErrDiscountOutOfRange) ||
		errors.Is(err, ErrNegativeOvertime) ||
		errors.Is(err, ErrUnknownShift)
}
