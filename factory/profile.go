/*
Package factory provides JSON to Go rotation-profile conversion.

PURPOSE:
  Converts JSON profile definitions into rotation.Profile values. This
  keeps rotation variants configuration, not code: a new plant schedule
  (different cycle length, different differentials) is a JSON document,
  parsed here into a ready-to-run calculator.

JSON SCHEMA:
  {
    "id": "six-by-two",
    "name": "6x2 Rotation",
    "cycle": ["morning", "morning", ..., "off"],
    "pay_table": {
      "weekday":  {"morning": {"real": 8, "equivalent": 8}, ...},
      "saturday": {...},
      "sunday":   {...}
    },
    "holiday": {"worked_real": 8, "worked_equivalent": 32, "off_equivalent": 8},
    "overtime_multiplier": 1.5,
    "bonus": {"mode": "flat"},
    "payday_lag": 4
  }

DEFAULTS:
  overtime_multiplier 1.5, payday_lag 4, bonus mode "flat".

USAGE:
  profile, err := factory.ParseProfile(rotation.SixByTwoJSON())
  result := profile.Calculator().Calculate(cfg, overrides, worker)

SEE ALSO:
  - rotation/presets.go: JSON forms of the built-in profiles
  - schedule/payrules.go: PayTable semantics
*/
package factory

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/warp/shift-payroll/rotation"
	"github.com/warp/shift-payroll/schedule"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// ProfileJSON is the JSON representation of a rotation profile.
type ProfileJSON struct {
	ID                 string       `json:"id"`
	Name               string       `json:"name"`
	Cycle              []string     `json:"cycle"`
	PayTable           PayTableJSON `json:"pay_table"`
	Holiday            HolidayJSON  `json:"holiday"`
	OvertimeMultiplier float64      `json:"overtime_multiplier,omitempty"`
	Bonus              *BonusJSON   `json:"bonus,omitempty"`
	PaydayLag          int          `json:"payday_lag,omitempty"`
}

// PayTableJSON holds the three weekday bands.
type PayTableJSON struct {
	Weekday  map[string]HourPairJSON `json:"weekday"`
	Saturday map[string]HourPairJSON `json:"saturday"`
	Sunday   map[string]HourPairJSON `json:"sunday"`
}

// HourPairJSON is one pay-table cell.
type HourPairJSON struct {
	Real       float64 `json:"real"`
	Equivalent float64 `json:"equivalent"`
}

// HolidayJSON holds the flat holiday constants.
type HolidayJSON struct {
	WorkedReal       float64 `json:"worked_real"`
	WorkedEquivalent float64 `json:"worked_equivalent"`
	OffEquivalent    float64 `json:"off_equivalent"`
}

// BonusJSON selects the technician bonus formula.
type BonusJSON struct {
	Mode string `json:"mode"` // flat, per_base_hour
}

// =============================================================================
// PARSING
// =============================================================================

// ParseProfile parses a JSON string into a rotation.Profile.
func ParseProfile(jsonStr string) (rotation.Profile, error) {
	var pj ProfileJSON
	if err := json.Unmarshal([]byte(jsonStr), &pj); err != nil {
		return rotation.Profile{}, fmt.Errorf("failed to parse profile JSON: %w", err)
	}
	return FromJSON(pj)
}

// FromJSON converts a ProfileJSON into a rotation.Profile, applying
// defaults and validating the cycle.
func FromJSON(pj ProfileJSON) (rotation.Profile, error) {
	slots := make([]schedule.Shift, 0, len(pj.Cycle))
	for _, s := range pj.Cycle {
		shift, err := schedule.ParseShift(s)
		if err != nil {
			return rotation.Profile{}, fmt.Errorf("profile %q: %w", pj.ID, err)
		}
		slots = append(slots, shift)
	}

	rot := schedule.Rotation{Name: pj.Name, Slots: slots}
	if err := rot.Validate(); err != nil {
		return rotation.Profile{}, fmt.Errorf("profile %q: %w", pj.ID, err)
	}

	multiplier := pj.OvertimeMultiplier
	if multiplier == 0 {
		multiplier = 1.5
	}
	lag := pj.PaydayLag
	if lag == 0 {
		lag = schedule.DefaultPaydayLag
	}

	table := schedule.PayTable{
		Weekday:                 bandFromJSON(pj.PayTable.Weekday),
		Saturday:                bandFromJSON(pj.PayTable.Saturday),
		Sunday:                  bandFromJSON(pj.PayTable.Sunday),
		HolidayWorkedReal:       decimal.NewFromFloat(pj.Holiday.WorkedReal),
		HolidayWorkedEquivalent: decimal.NewFromFloat(pj.Holiday.WorkedEquivalent),
		HolidayOffEquivalent:    decimal.NewFromFloat(pj.Holiday.OffEquivalent),
		OvertimeMultiplier:      decimal.NewFromFloat(multiplier),
	}

	bonus := schedule.BonusRule{Mode: schedule.BonusFlat}
	if pj.Bonus != nil && pj.Bonus.Mode == string(schedule.BonusPerBaseHour) {
		bonus = schedule.BonusRule{Mode: schedule.BonusPerBaseHour}
	}

	return rotation.Profile{
		ID:        pj.ID,
		Name:      pj.Name,
		Rotation:  rot,
		PayTable:  table,
		Bonus:     bonus,
		PaydayLag: lag,
	}, nil
}

func bandFromJSON(band map[string]HourPairJSON) map[schedule.Shift]schedule.HourPair {
	out := make(map[schedule.Shift]schedule.HourPair, len(band))
	for name, pair := range band {
		shift, err := schedule.ParseShift(name)
		if err != nil {
			continue // unknown shift names are dropped, not guessed at
		}
		out[shift] = schedule.HourPair{
			Real:       decimal.NewFromFloat(pair.Real),
			Equivalent: decimal.NewFromFloat(pair.Equivalent),
		}
	}
	return out
}
