/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types
  decouple the engine's decimal/Date types from the wire: dates travel
  as "2006-01-02" strings, money and hours as float64. Precision lives
  in the engine; the wire is a display format.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data
  carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - schedule/result.go: The engine-side shapes
*/
package api

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/shift-payroll/schedule"
)

// =============================================================================
// CONFIG
// =============================================================================

// ConfigDTO represents a month configuration in API responses.
type ConfigDTO struct {
	Year             int     `json:"year"`
	Month            int     `json:"month"`
	ReferenceOffDate string  `json:"reference_off_date,omitempty"`
	InitialShift     string  `json:"initial_shift,omitempty"`
	HourlyRate       float64 `json:"hourly_rate"`
	DiscountRate     float64 `json:"discount_rate"`

	// Inherited is true when the month had no stored config and the
	// values were carried over from the most recent earlier month.
	Inherited bool `json:"inherited,omitempty"`
}

// UpdateConfigRequest is a partial config update. Absent fields are
// left untouched (merge-on-write).
type UpdateConfigRequest struct {
	ReferenceOffDate *string  `json:"reference_off_date,omitempty"`
	InitialShift     *string  `json:"initial_shift,omitempty"`
	HourlyRate       *float64 `json:"hourly_rate,omitempty"`
	DiscountRate     *float64 `json:"discount_rate,omitempty"`
}

// =============================================================================
// OVERRIDES
// =============================================================================

// OverridesDTO is the month's sparse edit record.
type OverridesDTO struct {
	Overtime map[string]float64 `json:"overtime"`
	Holidays []string           `json:"holidays"`
}

// UpdateDayRequest edits a single day. Absent fields are untouched.
type UpdateDayRequest struct {
	OvertimeHours *float64 `json:"overtime_hours,omitempty"`
	IsHoliday     *bool    `json:"is_holiday,omitempty"`
}

// =============================================================================
// PROFILE
// =============================================================================

// ProfileDTO represents the cross-month worker profile.
type ProfileDTO struct {
	Category            string  `json:"category"`
	TechnicianCertified bool    `json:"technician_certified"`
	CertificationBonus  float64 `json:"certification_bonus"`
}

// =============================================================================
// CALCULATION RESULT
// =============================================================================

// DayResultDTO is one calendar day of the computed schedule.
type DayResultDTO struct {
	Date                    string  `json:"date"`
	Weekday                 int     `json:"weekday"` // 0=Sunday .. 6=Saturday
	WeekdayName             string  `json:"weekday_name"`
	Shift                   string  `json:"shift"`
	Label                   string  `json:"label"`
	IsHoliday               bool    `json:"is_holiday"`
	RealHours               float64 `json:"real_hours"`
	BaseEquivalentHours     float64 `json:"base_equivalent_hours"`
	OvertimeRealHours       float64 `json:"overtime_real_hours"`
	OvertimeEquivalentHours float64 `json:"overtime_equivalent_hours"`
	FinalEquivalentHours    float64 `json:"final_equivalent_hours"`
	GrossPay                float64 `json:"gross_pay"`
	Quincena                int     `json:"quincena"`
}

// QuincenaDTO is one half-month pay period.
type QuincenaDTO struct {
	Gross           float64 `json:"gross"`
	Withheld        float64 `json:"withheld"`
	Net             float64 `json:"net"`
	CutoffDate      string  `json:"cutoff_date,omitempty"`
	EstimatedPayday string  `json:"estimated_payday,omitempty"`
	BonusApplied    float64 `json:"bonus_applied,omitempty"`
}

// TotalsDTO is the monthly aggregate.
type TotalsDTO struct {
	EquivalentHours   float64 `json:"equivalent_hours"`
	OvertimeRealHours float64 `json:"overtime_real_hours"`
	Gross             float64 `json:"gross"`
	Withheld          float64 `json:"withheld"`
	Net               float64 `json:"net"`
	DiscountPercent   float64 `json:"discount_percent"`
}

// ResultDTO is the full calculation output.
type ResultDTO struct {
	Days      []DayResultDTO `json:"days"`
	OffDays   []string       `json:"off_days"`
	Totals    TotalsDTO      `json:"totals"`
	Quincena1 QuincenaDTO    `json:"quincena1"`
	Quincena2 QuincenaDTO    `json:"quincena2"`

	// Ready is false when the month lacks a reference off-date or a
	// positive hourly rate. Days is then empty but present.
	Ready bool `json:"ready"`
}

// =============================================================================
// HISTORY
// =============================================================================

// HistoryEntryDTO is one persisted run summary.
type HistoryEntryDTO struct {
	ID           string    `json:"id"`
	Year         int       `json:"year"`
	Month        int       `json:"month"`
	Totals       TotalsDTO `json:"totals"`
	Quincena1Net float64   `json:"quincena1_net"`
	Quincena2Net float64   `json:"quincena2_net"`
	CreatedAt    string    `json:"created_at"`
}

// =============================================================================
// ROTATIONS / SCENARIOS
// =============================================================================

// RotationDTO describes an available rotation variant.
type RotationDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	CycleLength int    `json:"cycle_length"`
}

// ScenarioDTO describes a loadable demo scenario.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// LoadScenarioRequest selects the scenario to load.
type LoadScenarioRequest struct {
	ScenarioID string `json:"scenario_id"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func configToDTO(cfg schedule.Config, inherited bool) ConfigDTO {
	dto := ConfigDTO{
		Year:         cfg.Year,
		Month:        int(cfg.Month),
		InitialShift: string(cfg.InitialShift),
		HourlyRate:   cfg.HourlyRate.InexactFloat64(),
		DiscountRate: cfg.DiscountRate.InexactFloat64(),
		Inherited:    inherited,
	}
	if cfg.ReferenceOffDate != nil && !cfg.ReferenceOffDate.IsZero() {
		dto.ReferenceOffDate = cfg.ReferenceOffDate.Key()
	}
	return dto
}

func overridesToDTO(ov *schedule.Overrides) OverridesDTO {
	dto := OverridesDTO{Overtime: map[string]float64{}, Holidays: []string{}}
	if ov == nil {
		return dto
	}
	for k, v := range ov.Overtime {
		dto.Overtime[k] = v.InexactFloat64()
	}
	for k, flagged := range ov.Holidays {
		if flagged {
			dto.Holidays = append(dto.Holidays, k)
		}
	}
	sort.Strings(dto.Holidays)
	return dto
}

func resultToDTO(result schedule.Result, ready bool) ResultDTO {
	days := make([]DayResultDTO, len(result.Days))
	for i, d := range result.Days {
		days[i] = DayResultDTO{
			Date:                    d.Date.Key(),
			Weekday:                 int(d.Weekday),
			WeekdayName:             d.Weekday.String(),
			Shift:                   string(d.Shift),
			Label:                   d.Label,
			IsHoliday:               d.IsHoliday,
			RealHours:               d.RealHours.InexactFloat64(),
			BaseEquivalentHours:     d.BaseEquivalentHours.InexactFloat64(),
			OvertimeRealHours:       d.OvertimeRealHours.InexactFloat64(),
			OvertimeEquivalentHours: d.OvertimeEquivalentHours.InexactFloat64(),
			FinalEquivalentHours:    d.FinalEquivalentHours.InexactFloat64(),
			GrossPay:                d.GrossPay.InexactFloat64(),
			Quincena:                d.Quincena,
		}
	}

	offDays := make([]string, len(result.OffDays))
	for i, d := range result.OffDays {
		offDays[i] = d.Key()
	}

	return ResultDTO{
		Days:      days,
		OffDays:   offDays,
		Totals:    totalsToDTO(result.Totals),
		Quincena1: quincenaToDTO(result.Quincena1),
		Quincena2: quincenaToDTO(result.Quincena2),
		Ready:     ready,
	}
}

func totalsToDTO(t schedule.Totals) TotalsDTO {
	return TotalsDTO{
		EquivalentHours:   t.EquivalentHours.InexactFloat64(),
		OvertimeRealHours: t.OvertimeRealHours.InexactFloat64(),
		Gross:             t.Gross.InexactFloat64(),
		Withheld:          t.Withheld.InexactFloat64(),
		Net:               t.Net.InexactFloat64(),
		DiscountPercent:   t.DiscountPercent.InexactFloat64(),
	}
}

func quincenaToDTO(q schedule.QuincenaSummary) QuincenaDTO {
	dto := QuincenaDTO{
		Gross:        q.Gross.InexactFloat64(),
		Withheld:     q.Withheld.InexactFloat64(),
		Net:          q.Net.InexactFloat64(),
		BonusApplied: q.BonusApplied.InexactFloat64(),
	}
	if !q.CutoffDate.IsZero() {
		dto.CutoffDate = q.CutoffDate.Key()
	}
	if !q.EstimatedPayday.IsZero() {
		dto.EstimatedPayday = q.EstimatedPayday.Key()
	}
	return dto
}

func historyToDTO(e schedule.HistoryEntry) HistoryEntryDTO {
	return HistoryEntryDTO{
		ID:           e.ID,
		Year:         e.Year,
		Month:        int(e.Month),
		Totals:       totalsToDTO(e.Totals),
		Quincena1Net: e.Quincena1Net.InexactFloat64(),
		Quincena2Net: e.Quincena2Net.InexactFloat64(),
		CreatedAt:    e.CreatedAt.Format(time.RFC3339),
	}
}

func decimalPtr(f float64) *decimal.Decimal {
	d := decimal.NewFromFloat(f)
	return &d
}

func decimalFromFloat(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

func sortRotations(dtos []RotationDTO) {
	sort.Slice(dtos, func(i, j int) bool { return dtos[i].ID < dtos[j].ID })
}
