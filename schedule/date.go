/*
date.go - Day-granular calendar primitives

PURPOSE:
  Everything in this engine happens at day granularity: shift slots,
  holiday flags, overtime entries, quincena cutoffs. Date wraps time.Time
  normalized to midnight UTC so that comparisons and day arithmetic never
  pick up clock or timezone noise.

KEY TYPES:
  Date:   A single calendar day (midnight UTC)
  Period: An inclusive [Start, End] day range with iteration support

DATE KEYS:
  Persisted records and override maps are keyed by Date.Key(), the
  ISO "2006-01-02" form. ParseDate is the only way a string becomes a
  Date; malformed input fails fast with ErrInvalidDate instead of being
  silently treated as some default day.

SEE ALSO:
  - cycle.go: Rotation offset arithmetic built on DaysBetween
  - payday.go: Business-day stepping for payday estimation
*/
package schedule

import (
	"fmt"
	"time"
)

// =============================================================================
// DATE - A single calendar day
// =============================================================================

type Date struct {
	Time time.Time
}

const dateLayout = "2006-01-02"

// NewDate builds a Date at midnight UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses the ISO "2006-01-02" form.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return NewDate(t.Year(), t.Month(), t.Day()), nil
}

// MustDate is ParseDate for literals known to be valid (tests, presets).
// Panics on malformed input.
func MustDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Date) normalize() time.Time {
	return time.Date(d.Time.Year(), d.Time.Month(), d.Time.Day(), 0, 0, 0, 0, time.UTC)
}

// Comparison
func (d Date) Before(other Date) bool      { return d.normalize().Before(other.normalize()) }
func (d Date) After(other Date) bool       { return d.normalize().After(other.normalize()) }
func (d Date) Equal(other Date) bool       { return d.normalize().Equal(other.normalize()) }
func (d Date) BeforeOrEqual(o Date) bool   { return d.Before(o) || d.Equal(o) }
func (d Date) AfterOrEqual(o Date) bool    { return d.After(o) || d.Equal(o) }

// Arithmetic
func (d Date) AddDays(n int) Date { return Date{Time: d.normalize().AddDate(0, 0, n)} }

// DaysBetween returns the signed whole-day distance from 'from' to 'to'.
// Negative when 'to' precedes 'from'.
func DaysBetween(from, to Date) int {
	return int(to.normalize().Sub(from.normalize()).Hours() / 24)
}

// Properties
func (d Date) Year() int             { return d.Time.Year() }
func (d Date) Month() time.Month     { return d.Time.Month() }
func (d Date) Day() int              { return d.Time.Day() }
func (d Date) Weekday() time.Weekday { return d.normalize().Weekday() }
func (d Date) IsZero() bool          { return d.Time.IsZero() }

func (d Date) IsWeekend() bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// IsBusinessDay counts Monday through Friday. Holidays are out of scope
// for payday estimation; only weekends halt the count.
func (d Date) IsBusinessDay() bool { return !d.IsWeekend() }

// Key returns the persisted/map form of the date.
func (d Date) Key() string    { return d.normalize().Format(dateLayout) }
func (d Date) String() string { return d.Key() }

// =============================================================================
// PERIOD - Inclusive day range
// =============================================================================

type Period struct {
	Start Date
	End   Date
}

// Contains returns true if the day is within [Start, End].
func (p Period) Contains(d Date) bool {
	return d.AfterOrEqual(p.Start) && d.BeforeOrEqual(p.End)
}

// Days returns every day of the period in calendar order.
func (p Period) Days() []Date {
	var days []Date
	for current := p.Start; current.BeforeOrEqual(p.End); current = current.AddDays(1) {
		days = append(days, current)
	}
	return days
}

func (p Period) String() string {
	return "[" + p.Start.String() + ", " + p.End.String() + "]"
}

// MonthOf returns the full calendar month as a period.
func MonthOf(year int, month time.Month) Period {
	start := NewDate(year, month, 1)
	end := Date{Time: time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)}
	return Period{Start: start, End: end}
}

// DaysInMonth returns the number of calendar days in the month.
func DaysInMonth(year int, month time.Month) int {
	p := MonthOf(year, month)
	return DaysBetween(p.Start, p.End) + 1
}
