package schedule_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/shift-payroll/schedule"
)

func TestOverrides_NegativeOvertimeRejected(t *testing.T) {
	ov := schedule.NewOverrides()
	err := ov.SetOvertime(date(2024, time.February, 5), decimal.NewFromInt(-1))
	if !errors.Is(err, schedule.ErrNegativeOvertime) {
		t.Errorf("error = %v, want ErrNegativeOvertime", err)
	}
	if !ov.IsEmpty() {
		t.Error("a rejected entry must not be stored")
	}
}

func TestOverrides_ZeroOvertimeRemovesEntry(t *testing.T) {
	ov := schedule.NewOverrides()
	d := date(2024, time.February, 5)

	if err := ov.SetOvertime(d, decimal.NewFromInt(2)); err != nil {
		t.Fatal(err)
	}
	if ov.OvertimeFor(d).IsZero() {
		t.Fatal("entry should exist after set")
	}
	if err := ov.SetOvertime(d, decimal.Zero); err != nil {
		t.Fatal(err)
	}
	if _, present := ov.Overtime[d.Key()]; present {
		t.Error("zero hours must remove the entry, not store a zero")
	}
}

func TestOverrides_NilReceiverReadsAreSafe(t *testing.T) {
	var ov *schedule.Overrides
	d := date(2024, time.February, 5)

	if !ov.OvertimeFor(d).IsZero() {
		t.Error("nil overrides must read as zero overtime")
	}
	if ov.IsHoliday(d) {
		t.Error("nil overrides must read as no holiday")
	}
}

func TestOverrides_UnmarkHolidayClearsFlag(t *testing.T) {
	ov := schedule.NewOverrides()
	d := date(2024, time.February, 12)

	ov.MarkHoliday(d, true)
	if !ov.IsHoliday(d) {
		t.Fatal("flag should be set")
	}
	ov.MarkHoliday(d, false)
	if ov.IsHoliday(d) {
		t.Error("flag should be cleared")
	}
}
