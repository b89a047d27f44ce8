package schedule_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/shift-payroll/schedule"
)

// standardTable mirrors the differential table used in the field.
func standardTable() schedule.PayTable {
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

func assertPay(t *testing.T, got schedule.DayPay, real, equivalent int64, label string) {
	t.Helper()
	if !got.RealHours.Equal(decimal.NewFromInt(real)) {
		t.Errorf("real hours = %s, want %d", got.RealHours, real)
	}
	if !got.EquivalentHours.Equal(decimal.NewFromInt(equivalent)) {
		t.Errorf("equivalent hours = %s, want %d", got.EquivalentHours, equivalent)
	}
	if got.Label != label {
		t.Errorf("label = %q, want %q", got.Label, label)
	}
}

// =============================================================================
// BAND TESTS
// =============================================================================

func TestEvaluate_WeekdayBands(t *testing.T) {
	// GIVEN: The standard differential table
	// WHEN: Evaluating worked shifts across the three bands
	// THEN: Each band yields its own equivalence

	table := standardTable()

	assertPay(t, table.Evaluate(time.Tuesday, schedule.ShiftMorning, false), 8, 8, "Morning")
	assertPay(t, table.Evaluate(time.Tuesday, schedule.ShiftNight, false), 8, 12, "Night")
	assertPay(t, table.Evaluate(time.Saturday, schedule.ShiftAfternoon, false), 9, 12, "Afternoon")
	assertPay(t, table.Evaluate(time.Saturday, schedule.ShiftNight, false), 8, 16, "Night")
	assertPay(t, table.Evaluate(time.Sunday, schedule.ShiftNight, false), 8, 28, "Sunday Night")
}

func TestEvaluate_SundayLabelPrefix(t *testing.T) {
	table := standardTable()
	got := table.Evaluate(time.Sunday, schedule.ShiftMorning, false)
	assertPay(t, got, 8, 24, "Sunday Morning")
}

func TestEvaluate_FrancoPaysNothing(t *testing.T) {
	table := standardTable()
	assertPay(t, table.Evaluate(time.Wednesday, schedule.ShiftOff, false), 0, 0, "Off")
}

// =============================================================================
// HOLIDAY TESTS
// =============================================================================

func TestEvaluate_HolidayReplacesBandValue(t *testing.T) {
	// GIVEN: A Sunday night shift (28 equivalent on its own)
	// WHEN: The day is flagged as a holiday
	// THEN: The flat holiday figure replaces the band value, it does
	//       not stack on top of it

	table := standardTable()
	got := table.Evaluate(time.Sunday, schedule.ShiftNight, true)
	assertPay(t, got, 8, 32, "Holiday - Night")
}

func TestEvaluate_HolidayOnFranco_PaysFlatEquivalent(t *testing.T) {
	// GIVEN: A franco
	// WHEN: The day is flagged as a holiday
	// THEN: Zero real hours, the flat franco-holiday equivalent

	table := standardTable()
	got := table.Evaluate(time.Monday, schedule.ShiftOff, true)
	assertPay(t, got, 0, 8, "Holiday - Off")
}

// =============================================================================
// FALLBACK AND OVERTIME
// =============================================================================

func TestEvaluate_MissingShiftFallsBackToPlainDay(t *testing.T) {
	// GIVEN: A table whose Saturday band lacks the night shift
	// WHEN: Evaluating a Saturday night
	// THEN: It pays as a plain 8-for-8 day instead of zero

	table := standardTable()
	delete(table.Saturday, schedule.ShiftNight)

	got := table.Evaluate(time.Saturday, schedule.ShiftNight, false)
	assertPay(t, got, 8, 8, "Night")
}

func TestOvertimeEquivalent_AppliesMultiplier(t *testing.T) {
	table := standardTable()

	got := table.OvertimeEquivalent(decimal.NewFromInt(2))
	if !got.Equal(decimal.NewFromInt(3)) {
		t.Errorf("overtime equivalent = %s, want 3", got)
	}
	if !table.OvertimeEquivalent(decimal.Zero).IsZero() {
		t.Errorf("zero overtime should stay zero")
	}
}
