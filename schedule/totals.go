/*
totals.go - Quincena aggregation and monthly totals

PURPOSE:
  Folds the per-day results into the two half-month pay periods and the
  monthly totals. The ordering is deliberate: quincenas are computed
  first and the monthly figures are their sums, so the two views can
  never drift apart. Computing the month independently from the day
  rows must agree exactly - that equivalence is pinned by tests.

BONUS:
  The technician bonus is added once to the quincena-2 gross before
  withholding, so the discount applies to it like to any other gross.

SEE ALSO:
  - bonus.go: Bonus modes
  - payday.go: Cutoff-to-payday stepping
*/
package schedule

import "github.com/shopspring/decimal"

var oneHundred = decimal.NewFromInt(100)

// aggregate builds both quincena summaries and the monthly totals from
// the finished day rows.
func (c Calculator) aggregate(cfg Config, profile *WorkerProfile, days []DayResult) (Totals, QuincenaSummary, QuincenaSummary) {
	var (
		q1Gross, q2Gross  decimal.Decimal
		q2BaseEquiv       decimal.Decimal
		totalEquiv        decimal.Decimal
		totalOvertimeReal decimal.Decimal
	)

	for _, d := range days {
		totalEquiv = totalEquiv.Add(d.FinalEquivalentHours)
		totalOvertimeReal = totalOvertimeReal.Add(d.OvertimeRealHours)
		if d.Quincena == 1 {
			q1Gross = q1Gross.Add(d.GrossPay)
		} else {
			q2Gross = q2Gross.Add(d.GrossPay)
			q2BaseEquiv = q2BaseEquiv.Add(d.BaseEquivalentHours)
		}
	}

	bonus := c.Bonus.Amount(profile, cfg.HourlyRate, q2BaseEquiv)
	q2Gross = q2Gross.Add(bonus)

	period := cfg.MonthPeriod()
	lag := c.paydayLag()

	q1 := summarize(q1Gross, cfg.DiscountRate, NewDate(cfg.Year, cfg.Month, 15), lag, decimal.Zero)
	q2 := summarize(q2Gross, cfg.DiscountRate, period.End, lag, bonus)

	totals := Totals{
		EquivalentHours:   totalEquiv,
		OvertimeRealHours: totalOvertimeReal,
		Gross:             q1.Gross.Add(q2.Gross),
		Withheld:          q1.Withheld.Add(q2.Withheld),
		Net:               q1.Net.Add(q2.Net),
		DiscountPercent:   cfg.DiscountRate.Mul(oneHundred),
	}
	return totals, q1, q2
}

func summarize(gross, discountRate decimal.Decimal, cutoff Date, lag int, bonus decimal.Decimal) QuincenaSummary {
	withheld := gross.Mul(discountRate)
	return QuincenaSummary{
		Gross:           gross,
		Withheld:        withheld,
		Net:             gross.Sub(withheld),
		CutoffDate:      cutoff,
		EstimatedPayday: PaydayAfter(cutoff, lag),
		BonusApplied:    bonus,
	}
}
