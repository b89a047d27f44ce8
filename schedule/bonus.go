/*
bonus.go - Technician certification bonus rules

PURPOSE:
  Certified technicians receive a bonus on the second quincena only,
  never prorated across days. Two historical formulas exist and are kept
  as distinct modes rather than reconciled:

  BonusFlat:        The profile's bonus amount is added once to the
                    quincena-2 gross. The 6x2 rotation uses this.
  BonusPerBaseHour: The profile's bonus amount is read as a fraction of
                    the hourly rate, granted per base equivalent hour of
                    quincena 2 (bonus = fraction x rate x q2 base
                    hours). The 2x2 rotation uses this.

SEE ALSO:
  - totals.go: Applies the rule during aggregation
  - rotation/ (package): Binds modes to rotation variants
*/
package schedule

import "github.com/shopspring/decimal"

// =============================================================================
// BONUS RULE
// =============================================================================

type BonusMode string

const (
	BonusFlat        BonusMode = "flat"
	BonusPerBaseHour BonusMode = "per_base_hour"
)

type BonusRule struct {
	Mode BonusMode
}

// Amount returns the quincena-2 bonus for the profile, zero when the
// worker is not certified or no profile is present.
func (b BonusRule) Amount(profile *WorkerProfile, hourlyRate, q2BaseEquivalentHours decimal.Decimal) decimal.Decimal {
	if profile == nil || !profile.TechnicianCertified {
		return decimal.Zero
	}
	switch b.Mode {
	case BonusPerBaseHour:
		return profile.CertificationBonus.Mul(hourlyRate).Mul(q2BaseEquivalentHours)
	default:
		return profile.CertificationBonus
	}
}
