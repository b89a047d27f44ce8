/*
handlers.go - HTTP API handlers for the shift payroll calculator

PURPOSE:
  Exposes the payroll engine via REST API. Handles HTTP
  request/response, JSON serialization, and delegates to the engine.
  Every calculation is computed fresh from stored inputs; nothing in
  the HTTP layer caches results (the background recalculator keeps its
  own cache, see recalc.go).

ENDPOINTS:
  Rotations:
    GET    /api/rotations                     List rotation variants
    POST   /api/rotations                     Register a custom variant (JSON)

  Per user:
    GET    /api/users/{id}/profile            Worker profile
    PUT    /api/users/{id}/profile
    GET    /api/users/{id}/history            Past run summaries, newest first

  Per month (/api/users/{id}/months/{year}/{month}):
    GET    .../config                         Stored config, inheriting the
                                              previous month when unset
    PUT    .../config                         Partial update (merge-on-write)
    GET    .../overrides                      Sparse holiday/overtime edits
    PUT    .../overrides                      Replace the month's edits
    PUT    .../overrides/{date}               Edit a single day
    POST   .../calculate                      Run the engine, append history
    GET    .../result                         Warm result from the recalculator
                                              cache (computed on a miss)
    GET    .../report                         Monthly report as PDF

  Scenarios:
    GET    /api/scenarios                     List demo scenarios
    POST   /api/scenarios/load                Load one (resets the store)
    POST   /api/scenarios/reset               Reset without loading

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Unknown rotation or scenario
  - 500: Storage errors

SECURITY NOTE:
  No authentication. Identity arrives as the {id} path segment and is
  trusted; this server sits behind whatever fronts it.

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Demo scenario loaders
  - recalc.go: Background recalculation
  - server.go: Router setup and middleware
*/
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/warp/shift-payroll/export"
	"github.com/warp/shift-payroll/factory"
	"github.com/warp/shift-payroll/rotation"
	"github.com/warp/shift-payroll/schedule"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Store is the persistence surface the handlers need: the engine's
// stores plus a scenario-loader reset.
type Store interface {
	schedule.Store
	Reset(ctx context.Context) error
}

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store        Store
	Recalculator *Recalculator

	// Registered rotation variants, keyed by ID. Seeded with the
	// builtins; custom variants land here via POST /api/rotations.
	mu        sync.RWMutex
	rotations map[string]rotation.Profile

	// Track currently loaded scenario
	currentScenario string
}

// NewHandler creates a new handler with the given store.
func NewHandler(store Store) *Handler {
	h := &Handler{
		Store:     store,
		rotations: make(map[string]rotation.Profile),
	}
	for _, id := range rotation.BuiltinIDs() {
		p, _ := rotation.Builtin(id)
		h.rotations[p.ID] = p
	}
	h.Recalculator = NewRecalculator(store, h.rotationByID)
	return h
}

func (h *Handler) rotationByID(id string) (rotation.Profile, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if id == "" {
		id = rotation.SixByTwoID
	}
	p, ok := h.rotations[id]
	return p, ok
}

// =============================================================================
// ROTATION HANDLERS
// =============================================================================

// ListRotations returns the registered rotation variants.
func (h *Handler) ListRotations(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	dtos := make([]RotationDTO, 0, len(h.rotations))
	for _, p := range h.rotations {
		dtos = append(dtos, RotationDTO{
			ID:          p.ID,
			Name:        p.Name,
			CycleLength: p.Rotation.Len(),
		})
	}
	sortRotations(dtos)
	writeJSON(w, http.StatusOK, dtos)
}

// CreateRotation registers a custom rotation variant from its JSON
// definition. Variants live in memory; they do not survive a restart.
func (h *Handler) CreateRotation(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to read request body", err)
		return
	}

	p, err := factory.ParseProfile(string(body))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid rotation definition", err)
		return
	}
	if p.ID == "" {
		writeError(w, http.StatusBadRequest, "Rotation id is required", nil)
		return
	}

	h.mu.Lock()
	h.rotations[p.ID] = p
	h.mu.Unlock()

	writeJSON(w, http.StatusCreated, RotationDTO{
		ID:          p.ID,
		Name:        p.Name,
		CycleLength: p.Rotation.Len(),
	})
}

// =============================================================================
// CONFIG HANDLERS
// =============================================================================

// GetConfig returns the month's configuration. A month that was never
// configured inherits the most recent earlier month's settings, marked
// Inherited in the response.
func (h *Handler) GetConfig(w http.ResponseWriter, r *http.Request) {
	key, ok := monthKey(w, r)
	if !ok {
		return
	}

	cfg, inherited, err := effectiveConfig(r.Context(), h.Store, key)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load config", err)
		return
	}

	writeJSON(w, http.StatusOK, configToDTO(cfg, inherited))
}

// UpdateConfig merges a partial config update into the stored record.
func (h *Handler) UpdateConfig(w http.ResponseWriter, r *http.Request) {
	key, ok := monthKey(w, r)
	if !ok {
		return
	}

	var req UpdateConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	patch, err := patchFromRequest(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid config values", err)
		return
	}

	if err := h.Store.SaveConfig(r.Context(), key, patch); err != nil {
		if schedule.IsClientError(err) {
			writeError(w, http.StatusBadRequest, "Invalid config values", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to save config", err)
		return
	}

	h.Recalculator.Enqueue(key)

	cfg, err := h.Store.LoadConfig(r.Context(), key)
	if err != nil || cfg == nil {
		writeError(w, http.StatusInternalServerError, "Failed to reload config", err)
		return
	}
	writeJSON(w, http.StatusOK, configToDTO(*cfg, false))
}

func patchFromRequest(req UpdateConfigRequest) (schedule.ConfigPatch, error) {
	var patch schedule.ConfigPatch

	if req.ReferenceOffDate != nil {
		d, err := schedule.ParseDate(*req.ReferenceOffDate)
		if err != nil {
			return patch, err
		}
		patch.ReferenceOffDate = &d
	}
	if req.InitialShift != nil {
		s, err := schedule.ParseShift(*req.InitialShift)
		if err != nil {
			return patch, err
		}
		patch.InitialShift = &s
	}
	if req.HourlyRate != nil {
		patch.HourlyRate = decimalPtr(*req.HourlyRate)
	}
	if req.DiscountRate != nil {
		patch.DiscountRate = decimalPtr(*req.DiscountRate)
	}
	return patch, nil
}

// effectiveConfig loads the month's config, falling back to the most
// recent earlier month re-keyed to the target month. A user with no
// configs at all gets a bare not-ready config. Shared with the
// background recalculator so both compute from the same inputs.
func effectiveConfig(ctx context.Context, st schedule.Store, key schedule.MonthKey) (schedule.Config, bool, error) {
	cfg, err := st.LoadConfig(ctx, key)
	if err != nil {
		return schedule.Config{}, false, err
	}
	if cfg != nil {
		return *cfg, false, nil
	}

	prev, err := st.LoadPreviousConfig(ctx, key)
	if err != nil {
		return schedule.Config{}, false, err
	}
	if prev != nil {
		inherited := *prev
		inherited.Year = key.Year
		inherited.Month = key.Month
		return inherited, true, nil
	}

	return schedule.Config{Year: key.Year, Month: key.Month}, false, nil
}

// =============================================================================
// OVERRIDE HANDLERS
// =============================================================================

// GetOverrides returns the month's sparse edit record.
func (h *Handler) GetOverrides(w http.ResponseWriter, r *http.Request) {
	key, ok := monthKey(w, r)
	if !ok {
		return
	}

	ov, err := h.Store.LoadOverrides(r.Context(), key)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load overrides", err)
		return
	}
	writeJSON(w, http.StatusOK, overridesToDTO(ov))
}

// UpdateOverrides replaces the month's edit record wholesale.
func (h *Handler) UpdateOverrides(w http.ResponseWriter, r *http.Request) {
	key, ok := monthKey(w, r)
	if !ok {
		return
	}

	var req OverridesDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	ov := schedule.NewOverrides()
	for dateStr, hours := range req.Overtime {
		d, err := schedule.ParseDate(dateStr)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid overtime date", err)
			return
		}
		if err := ov.SetOvertime(d, decimalFromFloat(hours)); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid overtime hours", err)
			return
		}
	}
	for _, dateStr := range req.Holidays {
		d, err := schedule.ParseDate(dateStr)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid holiday date", err)
			return
		}
		ov.MarkHoliday(d, true)
	}

	if err := h.Store.SaveOverrides(r.Context(), key, ov); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save overrides", err)
		return
	}

	h.Recalculator.Enqueue(key)
	writeJSON(w, http.StatusOK, overridesToDTO(ov))
}

// UpdateDay edits one day's overtime hours and/or holiday flag.
func (h *Handler) UpdateDay(w http.ResponseWriter, r *http.Request) {
	key, ok := monthKey(w, r)
	if !ok {
		return
	}

	date, err := schedule.ParseDate(chi.URLParam(r, "date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date (use YYYY-MM-DD)", err)
		return
	}
	if !key.Period().Contains(date) {
		writeError(w, http.StatusBadRequest, "Date is outside the month", nil)
		return
	}

	var req UpdateDayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	ctx := r.Context()
	if req.OvertimeHours != nil {
		err := h.Store.SetOvertime(ctx, key, date, decimalFromFloat(*req.OvertimeHours))
		if err != nil {
			if schedule.IsClientError(err) {
				writeError(w, http.StatusBadRequest, "Invalid overtime hours", err)
				return
			}
			writeError(w, http.StatusInternalServerError, "Failed to save overtime", err)
			return
		}
	}
	if req.IsHoliday != nil {
		if err := h.Store.SetHoliday(ctx, key, date, *req.IsHoliday); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to save holiday flag", err)
			return
		}
	}

	h.Recalculator.Enqueue(key)

	ov, err := h.Store.LoadOverrides(ctx, key)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reload overrides", err)
		return
	}
	writeJSON(w, http.StatusOK, overridesToDTO(ov))
}

// =============================================================================
// WORKER PROFILE HANDLERS
// =============================================================================

// GetProfile returns the user's worker profile. An unset profile reads
// as the zero profile rather than 404; the distinction carries no
// meaning downstream.
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	p, err := h.Store.LoadProfile(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load profile", err)
		return
	}
	if p == nil {
		p = &schedule.WorkerProfile{}
	}

	writeJSON(w, http.StatusOK, ProfileDTO{
		Category:            p.Category,
		TechnicianCertified: p.TechnicianCertified,
		CertificationBonus:  p.CertificationBonus.InexactFloat64(),
	})
}

// UpdateProfile replaces the user's worker profile.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	var req ProfileDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	profile := schedule.WorkerProfile{
		Category:            req.Category,
		TechnicianCertified: req.TechnicianCertified,
		CertificationBonus:  decimalFromFloat(req.CertificationBonus),
	}
	if err := h.Store.SaveProfile(r.Context(), userID, profile); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save profile", err)
		return
	}

	writeJSON(w, http.StatusOK, req)
}

// =============================================================================
// CALCULATION HANDLERS
// =============================================================================

// Calculate runs the engine for the month and appends a history entry.
// The rotation variant is selected with ?rotation=; it defaults to the
// standard 6x2 cycle. A month with no usable config still succeeds and
// returns the empty, not-ready result without touching history.
func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	key, ok := monthKey(w, r)
	if !ok {
		return
	}

	prof, ok := h.rotationByID(r.URL.Query().Get("rotation"))
	if !ok {
		writeError(w, http.StatusNotFound, "Unknown rotation", nil)
		return
	}

	ctx := r.Context()
	cfg, _, err := effectiveConfig(ctx, h.Store, key)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load config", err)
		return
	}

	ov, err := h.Store.LoadOverrides(ctx, key)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load overrides", err)
		return
	}

	worker, err := h.Store.LoadProfile(ctx, key.UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load profile", err)
		return
	}

	result := prof.Calculator().Calculate(cfg, ov, worker)
	h.Recalculator.Prime(key, prof.ID, result, cfg.Ready())

	if cfg.Ready() {
		entry := schedule.HistoryEntry{
			ID:           uuid.NewString(),
			UserID:       key.UserID,
			Year:         key.Year,
			Month:        key.Month,
			Totals:       result.Totals,
			Quincena1Net: result.Quincena1.Net,
			Quincena2Net: result.Quincena2.Net,
			CreatedAt:    time.Now().UTC(),
		}
		if err := h.Store.AppendHistory(ctx, entry); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to record history", err)
			return
		}
	}

	writeJSON(w, http.StatusOK, resultToDTO(result, cfg.Ready()))
}

// GetHistory returns the user's run summaries, newest first.
func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	entries, err := h.Store.ListHistory(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load history", err)
		return
	}

	dtos := make([]HistoryEntryDTO, len(entries))
	for i, e := range entries {
		dtos[i] = historyToDTO(e)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetResult serves the recalculator's warm copy of the month. On a
// cache miss, or when ?rotation= pins a variant other than the cached
// one, it computes synchronously, primes the cache, and serves that.
// Unlike Calculate it never appends history; this is the endpoint for
// dashboards polling many months.
func (h *Handler) GetResult(w http.ResponseWriter, r *http.Request) {
	key, ok := monthKey(w, r)
	if !ok {
		return
	}

	rotationID := r.URL.Query().Get("rotation")
	prof, ok := h.rotationByID(rotationID)
	if !ok {
		writeError(w, http.StatusNotFound, "Unknown rotation", nil)
		return
	}

	if cached, ok := h.Recalculator.Latest(key); ok {
		if rotationID == "" || cached.RotationID == prof.ID {
			writeJSON(w, http.StatusOK, resultToDTO(cached.Result, cached.Ready))
			return
		}
	}

	ctx := r.Context()
	cfg, _, err := effectiveConfig(ctx, h.Store, key)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load config", err)
		return
	}
	ov, err := h.Store.LoadOverrides(ctx, key)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load overrides", err)
		return
	}
	worker, err := h.Store.LoadProfile(ctx, key.UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load profile", err)
		return
	}

	result := prof.Calculator().Calculate(cfg, ov, worker)
	h.Recalculator.Prime(key, prof.ID, result, cfg.Ready())
	writeJSON(w, http.StatusOK, resultToDTO(result, cfg.Ready()))
}

// GetReport renders the month as a PDF. The calculation runs fresh;
// reports never come from history.
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	key, ok := monthKey(w, r)
	if !ok {
		return
	}

	prof, ok := h.rotationByID(r.URL.Query().Get("rotation"))
	if !ok {
		writeError(w, http.StatusNotFound, "Unknown rotation", nil)
		return
	}

	ctx := r.Context()
	cfg, _, err := effectiveConfig(ctx, h.Store, key)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load config", err)
		return
	}
	ov, err := h.Store.LoadOverrides(ctx, key)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load overrides", err)
		return
	}
	worker, err := h.Store.LoadProfile(ctx, key.UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load profile", err)
		return
	}

	result := prof.Calculator().Calculate(cfg, ov, worker)

	// Render to a buffer first so a rendering failure can still
	// produce a JSON error instead of a truncated PDF.
	var buf bytes.Buffer
	if err := export.WriteReport(&buf, cfg, worker, result); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to render report", err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		`attachment; filename="payroll-`+strconv.Itoa(key.Year)+`-`+pad2(int(key.Month))+`.pdf"`)
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}

// =============================================================================
// HELPERS
// =============================================================================

// monthKey extracts and validates the {id}/{year}/{month} route params,
// writing a 400 itself when they are malformed.
func monthKey(w http.ResponseWriter, r *http.Request) (schedule.MonthKey, bool) {
	userID := chi.URLParam(r, "id")

	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil || year < 1 {
		writeError(w, http.StatusBadRequest, "Invalid year", err)
		return schedule.MonthKey{}, false
	}
	month, err := strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil || month < 1 || month > 12 {
		writeError(w, http.StatusBadRequest, "Invalid month (1-12)", err)
		return schedule.MonthKey{}, false
	}

	return schedule.MonthKey{UserID: userID, Year: year, Month: time.Month(month)}, true
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

func pad2(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
