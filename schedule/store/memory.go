// Package store provides in-memory implementations of the schedule
// persistence contracts, for tests and development.
package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/warp/shift-payroll/schedule"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu        sync.RWMutex
	configs   map[schedule.MonthKey]schedule.Config
	overrides map[schedule.MonthKey]*schedule.Overrides
	profiles  map[string]schedule.WorkerProfile
	history   []schedule.HistoryEntry
}

var _ schedule.Store = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{
		configs:   make(map[schedule.MonthKey]schedule.Config),
		overrides: make(map[schedule.MonthKey]*schedule.Overrides),
		profiles:  make(map[string]schedule.WorkerProfile),
	}
}

// Reset drops all stored records. Scenario loaders call this before
// seeding.
func (m *Memory) Reset(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.configs = make(map[schedule.MonthKey]schedule.Config)
	m.overrides = make(map[schedule.MonthKey]*schedule.Overrides)
	m.profiles = make(map[string]schedule.WorkerProfile)
	m.history = nil
	return nil
}

// =============================================================================
// CONFIG STORE
// =============================================================================

func (m *Memory) LoadConfig(_ context.Context, key schedule.MonthKey) (*schedule.Config, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cfg, ok := m.configs[key]
	if !ok {
		return nil, nil
	}
	out := cfg
	return &out, nil
}

func (m *Memory) SaveConfig(_ context.Context, key schedule.MonthKey, patch schedule.ConfigPatch) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cfg, ok := m.configs[key]
	if !ok {
		cfg = schedule.Config{Year: key.Year, Month: key.Month}
	}
	applyPatch(&cfg, patch)
	if err := cfg.Validate(); err != nil {
		return err
	}
	m.configs[key] = cfg
	return nil
}

func (m *Memory) LoadPreviousConfig(_ context.Context, key schedule.MonthKey) (*schedule.Config, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var best *schedule.Config
	var bestKey schedule.MonthKey
	for k, cfg := range m.configs {
		if k.UserID != key.UserID || !beforeMonth(k, key) {
			continue
		}
		if best == nil || beforeMonth(bestKey, k) {
			c := cfg
			best, bestKey = &c, k
		}
	}
	return best, nil
}

func applyPatch(cfg *schedule.Config, patch schedule.ConfigPatch) {
	if patch.ReferenceOffDate != nil {
		d := *patch.ReferenceOffDate
		cfg.ReferenceOffDate = &d
	}
	if patch.InitialShift != nil {
		cfg.InitialShift = *patch.InitialShift
	}
	if patch.HourlyRate != nil {
		cfg.HourlyRate = *patch.HourlyRate
	}
	if patch.DiscountRate != nil {
		cfg.DiscountRate = *patch.DiscountRate
	}
}

func beforeMonth(a, b schedule.MonthKey) bool {
	if a.Year != b.Year {
		return a.Year < b.Year
	}
	return a.Month < b.Month
}

// =============================================================================
// OVERRIDE STORE
// =============================================================================

func (m *Memory) LoadOverrides(_ context.Context, key schedule.MonthKey) (*schedule.Overrides, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stored, ok := m.overrides[key]
	if !ok {
		return schedule.NewOverrides(), nil
	}
	return copyOverrides(stored), nil
}

func (m *Memory) SaveOverrides(_ context.Context, key schedule.MonthKey, overrides *schedule.Overrides) error {
	if overrides != nil {
		for dateKey, hours := range overrides.Overtime {
			if hours.IsNegative() {
				return fmt.Errorf("%w: %s on %s", schedule.ErrNegativeOvertime, hours, dateKey)
			}
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.overrides[key] = copyOverrides(overrides)
	return nil
}

func (m *Memory) SetOvertime(_ context.Context, key schedule.MonthKey, date schedule.Date, hours decimal.Decimal) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ov, ok := m.overrides[key]
	if !ok {
		ov = schedule.NewOverrides()
		m.overrides[key] = ov
	}
	return ov.SetOvertime(date, hours)
}

func (m *Memory) SetHoliday(_ context.Context, key schedule.MonthKey, date schedule.Date, holiday bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ov, ok := m.overrides[key]
	if !ok {
		ov = schedule.NewOverrides()
		m.overrides[key] = ov
	}
	ov.MarkHoliday(date, holiday)
	return nil
}

func copyOverrides(src *schedule.Overrides) *schedule.Overrides {
	dst := schedule.NewOverrides()
	if src == nil {
		return dst
	}
	for k, v := range src.Overtime {
		dst.Overtime[k] = v
	}
	for k, v := range src.Holidays {
		dst.Holidays[k] = v
	}
	return dst
}

// =============================================================================
// PROFILE STORE
// =============================================================================

func (m *Memory) LoadProfile(_ context.Context, userID string) (*schedule.WorkerProfile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.profiles[userID]
	if !ok {
		return nil, nil
	}
	out := p
	return &out, nil
}

func (m *Memory) SaveProfile(_ context.Context, userID string, profile schedule.WorkerProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.profiles[userID] = profile
	return nil
}

// =============================================================================
// HISTORY STORE - Append-only
// =============================================================================

func (m *Memory) AppendHistory(_ context.Context, entry schedule.HistoryEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.history = append(m.history, entry)
	return nil
}

func (m *Memory) ListHistory(_ context.Context, userID string) ([]schedule.HistoryEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []schedule.HistoryEntry
	for _, e := range m.history {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
