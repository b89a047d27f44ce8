/*
presets.go - JSON forms of the built-in rotation profiles

These helpers emit the JSON profile definitions consumed by the factory
package. They construct JSON directly to avoid import cycles with the
factory package.

USAGE:
  jsonStr := rotation.SixByTwoJSON()
  profile, err := factory.ParseProfile(jsonStr)
*/
package rotation

import "encoding/json"

// SixByTwoJSON returns the JSON definition of the default 6x2 profile.
func SixByTwoJSON() string { return profileJSON(SixByTwo(), "flat") }

// TwoByTwoJSON returns the JSON definition of the 2x2 profile.
func TwoByTwoJSON() string { return profileJSON(TwoByTwo(), "per_base_hour") }

func profileJSON(p Profile, bonusMode string) string {
	slots := make([]string, len(p.Rotation.Slots))
	for i, s := range p.Rotation.Slots {
		slots[i] = string(s)
	}

	row := func(real, equivalent int) map[string]interface{} {
		return map[string]interface{}{"real": real, "equivalent": equivalent}
	}

	pj := map[string]interface{}{
		"id":    p.ID,
		"name":  p.Name,
		"cycle": slots,
		"pay_table": map[string]interface{}{
			"weekday": map[string]interface{}{
				"morning":   row(8, 8),
				"afternoon": row(8, 8),
				"night":     row(8, 12),
			},
			"saturday": map[string]interface{}{
				"morning":   row(8, 9),
				"afternoon": row(9, 12),
				"night":     row(8, 16),
			},
			"sunday": map[string]interface{}{
				"morning":   row(8, 24),
				"afternoon": row(8, 24),
				"night":     row(8, 28),
			},
		},
		"holiday": map[string]interface{}{
			"worked_real":       8,
			"worked_equivalent": 32,
			"off_equivalent":    8,
		},
		"overtime_multiplier": 1.5,
		"bonus":               map[string]interface{}{"mode": bonusMode},
		"payday_lag":          p.PaydayLag,
	}
	b, _ := json.MarshalIndent(pj, "", "  ")
	return string(b)
}
