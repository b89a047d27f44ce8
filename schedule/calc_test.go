package schedule_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/shift-payroll/rotation"
	"github.com/warp/shift-payroll/schedule"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func stdCalc() schedule.Calculator {
	return rotation.SixByTwo().Calculator()
}

// febConfig is February 2024 (a 29-day month): last franco on Jan 31,
// cycle resuming on mornings, 10/hour, 10% withholding.
func febConfig() schedule.Config {
	ref := date(2024, time.January, 31)
	return schedule.Config{
		Year:             2024,
		Month:            time.February,
		ReferenceOffDate: &ref,
		InitialShift:     schedule.ShiftMorning,
		HourlyRate:       decimal.NewFromInt(10),
		DiscountRate:     decimal.NewFromFloat(0.10),
	}
}

func dayFor(t *testing.T, result schedule.Result, day int) schedule.DayResult {
	t.Helper()
	for _, d := range result.Days {
		if d.Date.Day() == day {
			return d
		}
	}
	t.Fatalf("day %d not found in result", day)
	return schedule.DayResult{}
}

func wantDecimal(t *testing.T, name string, got decimal.Decimal, want int64) {
	t.Helper()
	if !got.Equal(decimal.NewFromInt(want)) {
		t.Errorf("%s = %s, want %d", name, got, want)
	}
}

// =============================================================================
// MISSING INPUT
// =============================================================================

func TestCalculate_MissingReferenceDate_ReturnsEmptyResult(t *testing.T) {
	// GIVEN: A config with no reference franco
	// WHEN: Calculating
	// THEN: A zero result with a non-nil empty day list, never an error

	cfg := febConfig()
	cfg.ReferenceOffDate = nil

	result := stdCalc().Calculate(cfg, nil, nil)

	if result.Days == nil {
		t.Fatal("Days must be non-nil for a not-ready config")
	}
	if len(result.Days) != 0 {
		t.Errorf("Days length = %d, want 0", len(result.Days))
	}
	if !result.Totals.Gross.IsZero() {
		t.Errorf("gross = %s, want 0", result.Totals.Gross)
	}
}

func TestCalculate_ZeroRate_ReturnsEmptyResult(t *testing.T) {
	cfg := febConfig()
	cfg.HourlyRate = decimal.Zero

	result := stdCalc().Calculate(cfg, nil, nil)
	if len(result.Days) != 0 || result.Days == nil {
		t.Errorf("zero-rate result should be empty and non-nil, got %d days", len(result.Days))
	}
}

func TestCalculate_EmptyRotation_ReturnsEmptyResult(t *testing.T) {
	calc := schedule.Calculator{PayTable: stdCalc().PayTable}
	result := calc.Calculate(febConfig(), nil, nil)
	if len(result.Days) != 0 || result.Days == nil {
		t.Errorf("empty-rotation result should be empty and non-nil")
	}
}

// =============================================================================
// FULL MONTH
// =============================================================================

func TestCalculate_LeapFebruary_FullSchedule(t *testing.T) {
	// GIVEN: February 2024 anchored on the Jan 31 franco, mornings first
	// WHEN: Calculating the month with no edits
	// THEN: 29 day rows, six francos, and the known block boundaries

	result := stdCalc().Calculate(febConfig(), nil, nil)

	if len(result.Days) != 29 {
		t.Fatalf("day count = %d, want 29", len(result.Days))
	}

	// Block boundaries of the 6x2 cycle.
	if got := dayFor(t, result, 1).Shift; got != schedule.ShiftMorning {
		t.Errorf("Feb 1 shift = %s, want morning", got)
	}
	if got := dayFor(t, result, 7).Shift; got != schedule.ShiftOff {
		t.Errorf("Feb 7 shift = %s, want off", got)
	}
	if got := dayFor(t, result, 9).Shift; got != schedule.ShiftNight {
		t.Errorf("Feb 9 shift = %s, want night", got)
	}
	if got := dayFor(t, result, 17).Shift; got != schedule.ShiftAfternoon {
		t.Errorf("Feb 17 shift = %s, want afternoon", got)
	}
	// The cycle wraps: Feb 25 starts mornings again.
	if got := dayFor(t, result, 25).Shift; got != schedule.ShiftMorning {
		t.Errorf("Feb 25 shift = %s, want morning", got)
	}

	wantFrancos := []int{7, 8, 15, 16, 23, 24}
	if len(result.OffDays) != len(wantFrancos) {
		t.Fatalf("franco count = %d, want %d", len(result.OffDays), len(wantFrancos))
	}
	for i, day := range wantFrancos {
		if result.OffDays[i].Day() != day {
			t.Errorf("franco %d = %s, want day %d", i, result.OffDays[i], day)
		}
	}
}

func TestCalculate_LeapFebruary_KnownTotals(t *testing.T) {
	// GIVEN: The same February 2024 setup
	// WHEN: Calculating with no edits
	// THEN: The equivalent-hour and money figures match the hand-worked
	//       month exactly

	result := stdCalc().Calculate(febConfig(), nil, nil)

	wantDecimal(t, "total equivalent hours", result.Totals.EquivalentHours, 281)
	wantDecimal(t, "q1 gross", result.Quincena1.Gross, 1570)
	wantDecimal(t, "q1 withheld", result.Quincena1.Withheld, 157)
	wantDecimal(t, "q1 net", result.Quincena1.Net, 1413)
	wantDecimal(t, "q2 gross", result.Quincena2.Gross, 1240)
	wantDecimal(t, "month gross", result.Totals.Gross, 2810)
	wantDecimal(t, "month net", result.Totals.Net, 2529)
	wantDecimal(t, "discount percent", result.Totals.DiscountPercent, 10)

	// Sunday differential: Feb 4 is a Sunday morning.
	feb4 := dayFor(t, result, 4)
	wantDecimal(t, "Feb 4 equivalent", feb4.BaseEquivalentHours, 24)
	if feb4.Label != "Sunday Morning" {
		t.Errorf("Feb 4 label = %q, want %q", feb4.Label, "Sunday Morning")
	}
}

func TestCalculate_QuincenaBoundaryAndPaydays(t *testing.T) {
	// GIVEN: February 2024
	// WHEN: Calculating
	// THEN: Day 15 belongs to quincena 1, day 16 to quincena 2, and the
	//       paydays land 4 business days after each cutoff

	result := stdCalc().Calculate(febConfig(), nil, nil)

	if got := dayFor(t, result, 15).Quincena; got != 1 {
		t.Errorf("day 15 quincena = %d, want 1", got)
	}
	if got := dayFor(t, result, 16).Quincena; got != 2 {
		t.Errorf("day 16 quincena = %d, want 2", got)
	}

	if want := date(2024, time.February, 15); !result.Quincena1.CutoffDate.Equal(want) {
		t.Errorf("q1 cutoff = %s, want %s", result.Quincena1.CutoffDate, want)
	}
	if want := date(2024, time.February, 21); !result.Quincena1.EstimatedPayday.Equal(want) {
		t.Errorf("q1 payday = %s, want %s", result.Quincena1.EstimatedPayday, want)
	}
	if want := date(2024, time.February, 29); !result.Quincena2.CutoffDate.Equal(want) {
		t.Errorf("q2 cutoff = %s, want %s", result.Quincena2.CutoffDate, want)
	}
	if want := date(2024, time.March, 6); !result.Quincena2.EstimatedPayday.Equal(want) {
		t.Errorf("q2 payday = %s, want %s", result.Quincena2.EstimatedPayday, want)
	}
}

// =============================================================================
// OVERRIDES
// =============================================================================

func TestCalculate_OvertimeUniformAcrossDayTypes(t *testing.T) {
	// GIVEN: 2h of overtime on a worked day, a franco, and a worked
	//        holiday
	// WHEN: Calculating
	// THEN: Every one of them gains exactly 3 equivalent hours

	ov := schedule.NewOverrides()
	two := decimal.NewFromInt(2)
	if err := ov.SetOvertime(date(2024, time.February, 5), two); err != nil {
		t.Fatal(err)
	}
	if err := ov.SetOvertime(date(2024, time.February, 7), two); err != nil {
		t.Fatal(err)
	}
	if err := ov.SetOvertime(date(2024, time.February, 12), two); err != nil {
		t.Fatal(err)
	}
	ov.MarkHoliday(date(2024, time.February, 12), true)

	result := stdCalc().Calculate(febConfig(), ov, nil)

	worked := dayFor(t, result, 5) // Monday morning
	wantDecimal(t, "worked-day OT equivalent", worked.OvertimeEquivalentHours, 3)
	wantDecimal(t, "worked-day final", worked.FinalEquivalentHours, 11)

	franco := dayFor(t, result, 7)
	wantDecimal(t, "franco OT equivalent", franco.OvertimeEquivalentHours, 3)
	wantDecimal(t, "franco final", franco.FinalEquivalentHours, 3)

	holiday := dayFor(t, result, 12) // worked holiday: flat 32, plus OT
	wantDecimal(t, "holiday OT equivalent", holiday.OvertimeEquivalentHours, 3)
	wantDecimal(t, "holiday final", holiday.FinalEquivalentHours, 35)

	wantDecimal(t, "total OT real hours", result.Totals.OvertimeRealHours, 6)
}

func TestCalculate_HolidayOnFranco(t *testing.T) {
	// GIVEN: Feb 7 is a franco and gets flagged as a holiday
	// WHEN: Calculating
	// THEN: It pays the flat franco-holiday equivalent and stays listed
	//       among the francos

	ov := schedule.NewOverrides()
	ov.MarkHoliday(date(2024, time.February, 7), true)

	result := stdCalc().Calculate(febConfig(), ov, nil)

	day := dayFor(t, result, 7)
	wantDecimal(t, "franco-holiday equivalent", day.BaseEquivalentHours, 8)
	wantDecimal(t, "franco-holiday real", day.RealHours, 0)
	if day.Label != "Holiday - Off" {
		t.Errorf("label = %q, want %q", day.Label, "Holiday - Off")
	}

	found := false
	for _, f := range result.OffDays {
		if f.Day() == 7 {
			found = true
		}
	}
	if !found {
		t.Error("a holiday franco must remain a franco")
	}
}

func TestCalculate_HolidayOnWorkedDay_ReplacesBandValue(t *testing.T) {
	// GIVEN: Feb 11 is a Sunday night (28 equivalent) flagged holiday
	// WHEN: Calculating
	// THEN: The day pays the flat 32, not 28, not 28+32

	ov := schedule.NewOverrides()
	ov.MarkHoliday(date(2024, time.February, 11), true)

	result := stdCalc().Calculate(febConfig(), ov, nil)

	day := dayFor(t, result, 11)
	wantDecimal(t, "holiday equivalent", day.BaseEquivalentHours, 32)
	if day.Label != "Holiday - Night" {
		t.Errorf("label = %q, want %q", day.Label, "Holiday - Night")
	}
}

// =============================================================================
// TOTALS CONSISTENCY
// =============================================================================

func TestCalculate_TotalsAreSumOfQuincenas(t *testing.T) {
	// GIVEN: A month with edits and a bonus in play
	// WHEN: Calculating
	// THEN: The monthly money figures equal the quincena sums exactly

	ov := schedule.NewOverrides()
	ov.MarkHoliday(date(2024, time.February, 12), true)
	if err := ov.SetOvertime(date(2024, time.February, 20), decimal.NewFromFloat(1.5)); err != nil {
		t.Fatal(err)
	}
	profile := &schedule.WorkerProfile{
		TechnicianCertified: true,
		CertificationBonus:  decimal.NewFromInt(150),
	}

	result := stdCalc().Calculate(febConfig(), ov, profile)

	if !result.Totals.Gross.Equal(result.Quincena1.Gross.Add(result.Quincena2.Gross)) {
		t.Errorf("month gross %s != q1+q2 %s",
			result.Totals.Gross, result.Quincena1.Gross.Add(result.Quincena2.Gross))
	}
	if !result.Totals.Withheld.Equal(result.Quincena1.Withheld.Add(result.Quincena2.Withheld)) {
		t.Error("month withheld must be the sum of the quincenas")
	}
	if !result.Totals.Net.Equal(result.Quincena1.Net.Add(result.Quincena2.Net)) {
		t.Error("month net must be the sum of the quincenas")
	}

	// Gross also reconciles against the day rows plus the bonus.
	var dayGross decimal.Decimal
	for _, d := range result.Days {
		dayGross = dayGross.Add(d.GrossPay)
	}
	if !result.Totals.Gross.Equal(dayGross.Add(result.Quincena2.BonusApplied)) {
		t.Errorf("month gross %s != day rows %s + bonus %s",
			result.Totals.Gross, dayGross, result.Quincena2.BonusApplied)
	}
}

func TestCalculate_Deterministic(t *testing.T) {
	ov := schedule.NewOverrides()
	ov.MarkHoliday(date(2024, time.February, 12), true)

	a := stdCalc().Calculate(febConfig(), ov, nil)
	b := stdCalc().Calculate(febConfig(), ov, nil)

	if !a.Totals.Gross.Equal(b.Totals.Gross) || len(a.Days) != len(b.Days) {
		t.Error("identical inputs must produce identical results")
	}
}

// =============================================================================
// TECHNICIAN BONUS
// =============================================================================

func TestCalculate_FlatBonus_SecondQuincenaOnly(t *testing.T) {
	// GIVEN: A certified technician with a flat 150 bonus
	// WHEN: Calculating February 2024
	// THEN: Quincena 1 is untouched; quincena 2 gross gains 150 and the
	//       withholding applies to the bonus like any other gross

	profile := &schedule.WorkerProfile{
		Category:            "technician",
		TechnicianCertified: true,
		CertificationBonus:  decimal.NewFromInt(150),
	}

	result := stdCalc().Calculate(febConfig(), nil, profile)

	wantDecimal(t, "q1 gross", result.Quincena1.Gross, 1570)
	if !result.Quincena1.BonusApplied.IsZero() {
		t.Errorf("q1 bonus = %s, want 0", result.Quincena1.BonusApplied)
	}
	wantDecimal(t, "q2 gross", result.Quincena2.Gross, 1390)
	wantDecimal(t, "q2 bonus applied", result.Quincena2.BonusApplied, 150)
	wantDecimal(t, "q2 withheld", result.Quincena2.Withheld, 139)
}

func TestCalculate_UncertifiedWorker_NoBonus(t *testing.T) {
	profile := &schedule.WorkerProfile{
		Category:           "technician",
		CertificationBonus: decimal.NewFromInt(150),
	}

	result := stdCalc().Calculate(febConfig(), nil, profile)
	if !result.Quincena2.BonusApplied.IsZero() {
		t.Errorf("uncertified bonus = %s, want 0", result.Quincena2.BonusApplied)
	}
}

func TestCalculate_PerBaseHourBonus(t *testing.T) {
	// GIVEN: The 2x2 rotation, whose bonus reads the certification
	//        figure as a fraction of the rate per quincena-2 base hour
	// WHEN: Calculating
	// THEN: BonusApplied = fraction x rate x quincena-2 base hours

	profile := &schedule.WorkerProfile{
		TechnicianCertified: true,
		CertificationBonus:  decimal.NewFromFloat(0.02),
	}
	cfg := febConfig()

	result := rotation.TwoByTwo().Calculator().Calculate(cfg, nil, profile)

	var q2Base decimal.Decimal
	for _, d := range result.Days {
		if d.Quincena == 2 {
			q2Base = q2Base.Add(d.BaseEquivalentHours)
		}
	}
	want := decimal.NewFromFloat(0.02).Mul(cfg.HourlyRate).Mul(q2Base)
	if !result.Quincena2.BonusApplied.Equal(want) {
		t.Errorf("per-base-hour bonus = %s, want %s", result.Quincena2.BonusApplied, want)
	}
	if result.Quincena2.BonusApplied.IsZero() {
		t.Error("expected a non-zero bonus for a certified worker")
	}
}
