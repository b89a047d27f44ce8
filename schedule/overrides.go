/*
overrides.go - Sparse per-day user edits

PURPOSE:
  The user can flag any calendar day a holiday and enter manual overtime
  hours on any day. Overrides is that sparse, month-scoped record: empty
  at month creation, mutated on every edit, persisted on every change.

KEYING:
  Entries are keyed by Date.Key() ("2006-01-02") so the record survives
  JSON/SQL round trips without a custom codec.

VALIDATION:
  SetOvertime rejects negative hours with ErrNegativeOvertime instead of
  clamping; a clamped negative has historically hidden caller bugs.
  A nil *Overrides is a valid empty record for every read path.

SEE ALSO:
  - calc.go: Reads overrides during the monthly pass
  - store.go: OverrideStore persistence contract
*/
package schedule

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// OVERRIDES - Manual holiday flags and overtime entries
// =============================================================================

type Overrides struct {
	// Overtime maps Date.Key() to manually entered real overtime hours.
	Overtime map[string]decimal.Decimal

	// Holidays maps Date.Key() to the manual holiday flag. Absence
	// means not a holiday.
	Holidays map[string]bool
}

// NewOverrides returns an empty month record.
func NewOverrides() *Overrides {
	return &Overrides{
		Overtime: make(map[string]decimal.Decimal),
		Holidays: make(map[string]bool),
	}
}

// SetOvertime records manual overtime for a day. Zero removes the entry.
func (o *Overrides) SetOvertime(d Date, hours decimal.Decimal) error {
	if hours.IsNegative() {
		return fmt.Errorf("%w: %s on %s", ErrNegativeOvertime, hours, d)
	}
	if o.Overtime == nil {
		o.Overtime = make(map[string]decimal.Decimal)
	}
	if hours.IsZero() {
		delete(o.Overtime, d.Key())
		return nil
	}
	o.Overtime[d.Key()] = hours
	return nil
}

// MarkHoliday sets or clears the manual holiday flag for a day.
func (o *Overrides) MarkHoliday(d Date, holiday bool) {
	if o.Holidays == nil {
		o.Holidays = make(map[string]bool)
	}
	if !holiday {
		delete(o.Holidays, d.Key())
		return
	}
	o.Holidays[d.Key()] = true
}

// OvertimeFor returns the manual overtime for a day, zero when absent.
func (o *Overrides) OvertimeFor(d Date) decimal.Decimal {
	if o == nil || o.Overtime == nil {
		return decimal.Zero
	}
	return o.Overtime[d.Key()]
}

// IsHoliday returns the manual holiday flag for a day.
func (o *Overrides) IsHoliday(d Date) bool {
	if o == nil || o.Holidays == nil {
		return false
	}
	return o.Holidays[d.Key()]
}

// IsEmpty reports whether the record carries any edits.
func (o *Overrides) IsEmpty() bool {
	return o == nil || (len(o.Overtime) == 0 && len(o.Holidays) == 0)
}
