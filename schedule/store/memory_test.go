package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/shift-payroll/schedule"
	"github.com/warp/shift-payroll/schedule/store"
)

func febKey(user string) schedule.MonthKey {
	return schedule.MonthKey{UserID: user, Year: 2024, Month: time.February}
}

func refDate() schedule.Date {
	return schedule.NewDate(2024, time.January, 31)
}

// =============================================================================
// CONFIG TESTS
// =============================================================================

func TestMemory_LoadConfig_AbsentReturnsNil(t *testing.T) {
	m := store.NewMemory()
	cfg, err := m.LoadConfig(context.Background(), febKey("u1"))
	require.NoError(t, err)
	assert.Nil(t, cfg)
}

func TestMemory_SaveConfig_MergesPartialPatches(t *testing.T) {
	// Two partial writes; the second must not clobber the first's fields.
	m := store.NewMemory()
	ctx := context.Background()
	key := febKey("u1")

	ref := refDate()
	shift := schedule.ShiftMorning
	require.NoError(t, m.SaveConfig(ctx, key, schedule.ConfigPatch{
		ReferenceOffDate: &ref,
		InitialShift:     &shift,
	}))

	rate := decimal.NewFromInt(12)
	require.NoError(t, m.SaveConfig(ctx, key, schedule.ConfigPatch{
		HourlyRate: &rate,
	}))

	cfg, err := m.LoadConfig(ctx, key)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, 2024, cfg.Year)
	assert.Equal(t, time.February, cfg.Month)
	require.NotNil(t, cfg.ReferenceOffDate)
	assert.True(t, cfg.ReferenceOffDate.Equal(ref))
	assert.Equal(t, schedule.ShiftMorning, cfg.InitialShift)
	assert.True(t, cfg.HourlyRate.Equal(rate))
}

func TestMemory_SaveConfig_RejectsInvalidValues(t *testing.T) {
	// The merged record is validated before storing, same as the sqlite
	// store; a rejected patch must leave nothing behind.
	m := store.NewMemory()
	ctx := context.Background()
	key := febKey("u1")

	negative := decimal.NewFromInt(-5)
	err := m.SaveConfig(ctx, key, schedule.ConfigPatch{HourlyRate: &negative})
	assert.ErrorIs(t, err, schedule.ErrNegativeRate)

	tooHigh := decimal.NewFromFloat(1.5)
	err = m.SaveConfig(ctx, key, schedule.ConfigPatch{DiscountRate: &tooHigh})
	assert.ErrorIs(t, err, schedule.ErrDiscountOutOfRange)

	cfg, loadErr := m.LoadConfig(ctx, key)
	require.NoError(t, loadErr)
	assert.Nil(t, cfg, "rejected patches must not persist")
}

func TestMemory_SaveConfig_RejectsInvalidMerge(t *testing.T) {
	// A valid stored config patched into an invalid state stays valid.
	m := store.NewMemory()
	ctx := context.Background()
	key := febKey("u1")

	rate := decimal.NewFromInt(10)
	require.NoError(t, m.SaveConfig(ctx, key, schedule.ConfigPatch{HourlyRate: &rate}))

	negative := decimal.NewFromInt(-1)
	err := m.SaveConfig(ctx, key, schedule.ConfigPatch{HourlyRate: &negative})
	assert.ErrorIs(t, err, schedule.ErrNegativeRate)

	cfg, loadErr := m.LoadConfig(ctx, key)
	require.NoError(t, loadErr)
	require.NotNil(t, cfg)
	assert.True(t, cfg.HourlyRate.Equal(rate))
}

func TestMemory_LoadPreviousConfig_PicksMostRecentEarlierMonth(t *testing.T) {
	m := store.NewMemory()
	ctx := context.Background()

	rate := decimal.NewFromInt(10)
	for _, month := range []time.Month{time.November, time.December} {
		key := schedule.MonthKey{UserID: "u1", Year: 2023, Month: month}
		monthRate := rate.Add(decimal.NewFromInt(int64(month)))
		require.NoError(t, m.SaveConfig(ctx, key, schedule.ConfigPatch{HourlyRate: &monthRate}))
	}
	// Another user's config must not leak in.
	otherRate := decimal.NewFromInt(99)
	require.NoError(t, m.SaveConfig(ctx,
		schedule.MonthKey{UserID: "u2", Year: 2024, Month: time.January},
		schedule.ConfigPatch{HourlyRate: &otherRate}))

	prev, err := m.LoadPreviousConfig(ctx, febKey("u1"))
	require.NoError(t, err)
	require.NotNil(t, prev)
	assert.Equal(t, time.December, prev.Month)

	none, err := m.LoadPreviousConfig(ctx,
		schedule.MonthKey{UserID: "u1", Year: 2023, Month: time.November})
	require.NoError(t, err)
	assert.Nil(t, none)
}

// =============================================================================
// OVERRIDE TESTS
// =============================================================================

func TestMemory_LoadOverrides_AbsentReturnsEmptyNonNil(t *testing.T) {
	m := store.NewMemory()
	ov, err := m.LoadOverrides(context.Background(), febKey("u1"))
	require.NoError(t, err)
	require.NotNil(t, ov)
	assert.True(t, ov.IsEmpty())
}

func TestMemory_SetOvertimeAndHoliday_SingleDayUpserts(t *testing.T) {
	m := store.NewMemory()
	ctx := context.Background()
	key := febKey("u1")
	d := schedule.NewDate(2024, time.February, 5)

	require.NoError(t, m.SetOvertime(ctx, key, d, decimal.NewFromInt(2)))
	require.NoError(t, m.SetHoliday(ctx, key, d, true))

	ov, err := m.LoadOverrides(ctx, key)
	require.NoError(t, err)
	assert.True(t, ov.OvertimeFor(d).Equal(decimal.NewFromInt(2)))
	assert.True(t, ov.IsHoliday(d))
}

func TestMemory_SetOvertime_RejectsNegative(t *testing.T) {
	m := store.NewMemory()
	err := m.SetOvertime(context.Background(), febKey("u1"),
		schedule.NewDate(2024, time.February, 5), decimal.NewFromInt(-3))
	assert.ErrorIs(t, err, schedule.ErrNegativeOvertime)
}

func TestMemory_SaveOverrides_RejectsNegativeOvertime(t *testing.T) {
	// Wholesale replacement goes through the same guard as SetOvertime.
	m := store.NewMemory()
	ctx := context.Background()
	key := febKey("u1")
	d := schedule.NewDate(2024, time.February, 5)

	require.NoError(t, m.SetOvertime(ctx, key, d, decimal.NewFromInt(2)))

	bad := schedule.NewOverrides()
	bad.Overtime[d.Key()] = decimal.NewFromInt(-4)
	err := m.SaveOverrides(ctx, key, bad)
	assert.ErrorIs(t, err, schedule.ErrNegativeOvertime)

	ov, loadErr := m.LoadOverrides(ctx, key)
	require.NoError(t, loadErr)
	assert.True(t, ov.OvertimeFor(d).Equal(decimal.NewFromInt(2)),
		"stored record must be untouched by the rejected write")
}

func TestMemory_LoadOverrides_ReturnsACopy(t *testing.T) {
	// Mutating a loaded record must not write through to the store.
	m := store.NewMemory()
	ctx := context.Background()
	key := febKey("u1")
	d := schedule.NewDate(2024, time.February, 5)

	require.NoError(t, m.SetHoliday(ctx, key, d, true))

	loaded, err := m.LoadOverrides(ctx, key)
	require.NoError(t, err)
	loaded.MarkHoliday(d, false)

	again, err := m.LoadOverrides(ctx, key)
	require.NoError(t, err)
	assert.True(t, again.IsHoliday(d), "store copy must be unaffected")
}

// =============================================================================
// PROFILE AND HISTORY TESTS
// =============================================================================

func TestMemory_ProfileRoundTrip(t *testing.T) {
	m := store.NewMemory()
	ctx := context.Background()

	missing, err := m.LoadProfile(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, missing)

	profile := schedule.WorkerProfile{
		Category:            "technician",
		TechnicianCertified: true,
		CertificationBonus:  decimal.NewFromInt(150),
	}
	require.NoError(t, m.SaveProfile(ctx, "u1", profile))

	got, err := m.LoadProfile(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "technician", got.Category)
	assert.True(t, got.TechnicianCertified)
	assert.True(t, got.CertificationBonus.Equal(decimal.NewFromInt(150)))
}

func TestMemory_History_NewestFirstPerUser(t *testing.T) {
	m := store.NewMemory()
	ctx := context.Background()

	base := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	for i, user := range []string{"u1", "u1", "u2"} {
		require.NoError(t, m.AppendHistory(ctx, schedule.HistoryEntry{
			ID:        string(rune('a' + i)),
			UserID:    user,
			Year:      2024,
			Month:     time.February,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	entries, err := m.ListHistory(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "b", entries[0].ID, "newest entry first")
	assert.Equal(t, "a", entries[1].ID)
}

// =============================================================================
// RESET
// =============================================================================

func TestMemory_Reset_DropsEverything(t *testing.T) {
	m := store.NewMemory()
	ctx := context.Background()
	key := febKey("u1")

	rate := decimal.NewFromInt(10)
	require.NoError(t, m.SaveConfig(ctx, key, schedule.ConfigPatch{HourlyRate: &rate}))
	require.NoError(t, m.SetHoliday(ctx, key, schedule.NewDate(2024, time.February, 5), true))
	require.NoError(t, m.SaveProfile(ctx, "u1", schedule.WorkerProfile{Category: "operator"}))
	require.NoError(t, m.AppendHistory(ctx, schedule.HistoryEntry{ID: "x", UserID: "u1"}))

	require.NoError(t, m.Reset(ctx))

	cfg, _ := m.LoadConfig(ctx, key)
	assert.Nil(t, cfg)
	ov, _ := m.LoadOverrides(ctx, key)
	assert.True(t, ov.IsEmpty())
	profile, _ := m.LoadProfile(ctx, "u1")
	assert.Nil(t, profile)
	history, _ := m.ListHistory(ctx, "u1")
	assert.Empty(t, history)
}
