/*
scenarios.go - Demo scenario loaders for testing and demonstrations

PURPOSE:

	Provides pre-built scenarios that populate the store with realistic
	data for testing and demos. Each scenario seeds a month config,
	per-day edits, and a worker profile that demonstrate specific
	features of the engine.

AVAILABLE SCENARIOS:

	sample-month:  February 2024 with the standard 6x2 cycle, a manual
	               holiday and some overtime
	night-start:   Same month starting on the night block, technician
	               certified worker (bonus on quincena 2)
	two-by-two:    Short 2x2 cycle for the compressed-rotation variant

HOW SCENARIOS WORK:
 1. Reset the store (clear all data)
 2. Save the month config (merge-on-write creates it)
 3. Mark holidays and overtime via single-day upserts
 4. Save the worker profile

USAGE VIA API:

	POST /api/scenarios/load
	{"scenario_id": "sample-month"}

ADDING NEW SCENARIOS:
 1. Add to 'scenarios' slice with ID, name, description
 2. Create loader function: loadXxxScenario(ctx, h)
 3. Add case to LoadScenario handler

NOTE:

	Scenarios reset the store. Only use in development/demo environments.

SEE ALSO:
  - handlers.go: LoadScenario, ListScenarios handlers
  - rotation/rotation.go: The built-in cycle variants
*/
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/shift-payroll/rotation"
	"github.com/warp/shift-payroll/schedule"
)

// DemoUserID is the user every scenario seeds.
const DemoUserID = "demo"

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

var scenarios = []ScenarioDTO{
	{
		ID:          "sample-month",
		Name:        "Sample Month",
		Description: "February 2024 on the standard 6x2 cycle with a holiday and overtime",
	},
	{
		ID:          "night-start",
		Name:        "Night Start",
		Description: "Cycle resumed mid-block on nights, technician bonus on the second quincena",
	},
	{
		ID:          "two-by-two",
		Name:        "Two By Two",
		Description: "Compressed 2x2 rotation with the per-hour certification bonus",
	},
}

// ListScenarios returns available scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// GetCurrentScenario returns the currently loaded scenario, if any.
func (h *Handler) GetCurrentScenario(w http.ResponseWriter, r *http.Request) {
	if h.currentScenario == "" {
		writeJSON(w, http.StatusOK, nil)
		return
	}

	for _, s := range scenarios {
		if s.ID == h.currentScenario {
			writeJSON(w, http.StatusOK, s)
			return
		}
	}

	// Scenario ID exists but not in list (shouldn't happen)
	writeJSON(w, http.StatusOK, ScenarioDTO{
		ID:   h.currentScenario,
		Name: h.currentScenario,
	})
}

// LoadScenario loads a predefined scenario.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req LoadScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	ctx := r.Context()

	// Reset first
	if err := h.Store.Reset(ctx); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset store", err)
		return
	}
	h.Recalculator.Flush()
	h.currentScenario = ""

	var err error
	switch req.ScenarioID {
	case "sample-month":
		err = h.loadSampleMonthScenario(ctx)
	case "night-start":
		err = h.loadNightStartScenario(ctx)
	case "two-by-two":
		err = h.loadTwoByTwoScenario(ctx)
	default:
		writeError(w, http.StatusNotFound, "Unknown scenario", nil)
		return
	}

	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load scenario", err)
		return
	}

	h.currentScenario = req.ScenarioID
	writeJSON(w, http.StatusOK, map[string]string{
		"status":   "loaded",
		"scenario": req.ScenarioID,
		"rotation": rotationForScenario(req.ScenarioID),
	})
}

// ResetStore clears all data without loading anything.
func (h *Handler) ResetStore(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Reset(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset store", err)
		return
	}
	h.Recalculator.Flush()
	h.currentScenario = ""
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

// =============================================================================
// SCENARIO LOADERS
// =============================================================================

// loadSampleMonthScenario seeds February 2024: last franco on January
// 31st, cycle resuming on mornings, one manual holiday and two days
// with overtime.
func (h *Handler) loadSampleMonthScenario(ctx context.Context) error {
	key := schedule.MonthKey{UserID: DemoUserID, Year: 2024, Month: time.February}

	if err := h.seedConfig(ctx, key, "2024-01-31", schedule.ShiftMorning, 12.5, 0.17); err != nil {
		return err
	}

	// Carnival Monday, worked as a holiday
	if err := h.Store.SetHoliday(ctx, key, schedule.MustDate("2024-02-12"), true); err != nil {
		return err
	}
	if err := h.Store.SetOvertime(ctx, key, schedule.MustDate("2024-02-05"), decimal.NewFromInt(2)); err != nil {
		return err
	}
	if err := h.Store.SetOvertime(ctx, key, schedule.MustDate("2024-02-20"), decimal.NewFromFloat(1.5)); err != nil {
		return err
	}

	return h.Store.SaveProfile(ctx, DemoUserID, schedule.WorkerProfile{
		Category: "operator",
	})
}

// loadNightStartScenario seeds the same month but resuming on the
// night block, with a certified technician drawing the flat bonus.
func (h *Handler) loadNightStartScenario(ctx context.Context) error {
	key := schedule.MonthKey{UserID: DemoUserID, Year: 2024, Month: time.February}

	if err := h.seedConfig(ctx, key, "2024-01-28", schedule.ShiftNight, 14, 0.17); err != nil {
		return err
	}
	if err := h.Store.SetOvertime(ctx, key, schedule.MustDate("2024-02-18"), decimal.NewFromInt(3)); err != nil {
		return err
	}

	return h.Store.SaveProfile(ctx, DemoUserID, schedule.WorkerProfile{
		Category:            "technician",
		TechnicianCertified: true,
		CertificationBonus:  decimal.NewFromInt(150),
	})
}

// loadTwoByTwoScenario seeds March 2024 for the compressed rotation.
// Calculations against this seed should pass ?rotation=two-by-two.
func (h *Handler) loadTwoByTwoScenario(ctx context.Context) error {
	key := schedule.MonthKey{UserID: DemoUserID, Year: 2024, Month: time.March}

	if err := h.seedConfig(ctx, key, "2024-02-29", schedule.ShiftMorning, 16, 0.17); err != nil {
		return err
	}

	return h.Store.SaveProfile(ctx, DemoUserID, schedule.WorkerProfile{
		Category:            "technician",
		TechnicianCertified: true,
		CertificationBonus:  decimal.NewFromFloat(0.02),
	})
}

func (h *Handler) seedConfig(ctx context.Context, key schedule.MonthKey, referenceOff string, initial schedule.Shift, rate, discount float64) error {
	ref := schedule.MustDate(referenceOff)
	hourly := decimal.NewFromFloat(rate)
	disc := decimal.NewFromFloat(discount)

	return h.Store.SaveConfig(ctx, key, schedule.ConfigPatch{
		ReferenceOffDate: &ref,
		InitialShift:     &initial,
		HourlyRate:       &hourly,
		DiscountRate:     &disc,
	})
}

// rotationForScenario maps a scenario to the variant its seed assumes.
func rotationForScenario(id string) string {
	if id == "two-by-two" {
		return rotation.TwoByTwoID
	}
	return rotation.SixByTwoID
}
