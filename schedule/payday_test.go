package schedule_test

import (
	"testing"
	"time"

	"github.com/warp/shift-payroll/schedule"
)

func TestPaydayAfter_MidweekCutoff(t *testing.T) {
	// GIVEN: A Thursday cutoff (Feb 15, 2024)
	// WHEN: Stepping 4 business days forward
	// THEN: Friday counts as 1, the weekend is skipped, payday lands
	//       on Wednesday Feb 21

	cutoff := date(2024, time.February, 15)
	got := schedule.PaydayAfter(cutoff, 4)
	if want := date(2024, time.February, 21); !got.Equal(want) {
		t.Errorf("payday = %s, want %s", got, want)
	}
}

func TestPaydayAfter_FridayCutoffLandsOnThursday(t *testing.T) {
	// GIVEN: A Friday cutoff (Mar 15, 2024)
	// WHEN: Stepping 4 business days forward
	// THEN: Saturday and Sunday are skipped without counting, payday
	//       lands on the following Thursday

	cutoff := date(2024, time.March, 15)
	got := schedule.PaydayAfter(cutoff, 4)
	if want := date(2024, time.March, 21); !got.Equal(want) {
		t.Errorf("payday = %s, want %s", got, want)
	}
}

func TestPaydayAfter_MonthEndCutoffCrossesMonths(t *testing.T) {
	// GIVEN: The Feb 29, 2024 cutoff (a Thursday)
	// WHEN: Stepping 4 business days forward
	// THEN: Payday lands in March

	cutoff := date(2024, time.February, 29)
	got := schedule.PaydayAfter(cutoff, 4)
	if want := date(2024, time.March, 6); !got.Equal(want) {
		t.Errorf("payday = %s, want %s", got, want)
	}
}

func TestPaydayAfter_NonPositiveLagReturnsCutoff(t *testing.T) {
	cutoff := date(2024, time.February, 15)
	if got := schedule.PaydayAfter(cutoff, 0); !got.Equal(cutoff) {
		t.Errorf("zero lag payday = %s, want the cutoff", got)
	}
}
