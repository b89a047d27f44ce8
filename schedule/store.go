/*
store.go - Persistence contracts for the calculator's collaborators

PURPOSE:
  The engine is pure; these interfaces are the durable collaborators
  around it. Records are keyed by (user, year, month) - the calculator
  is single-user per key, and last-write-wins is acceptable because the
  engine itself carries no cross-invocation ordering requirement.

CONTRACTS:
  ConfigStore:   Month configs with partial-field merge-on-write, plus
                 lookup of the most recent earlier month (new months
                 inherit the previous month's settings).
  OverrideStore: Sparse per-day holiday/overtime edits, with single-day
                 upsert for cell-level UI edits.
  ProfileStore:  The cross-month worker profile.
  HistoryStore:  APPEND-ONLY run summaries for trend display. The engine
                 writes and never reads its own history; there is no
                 update or delete.

IMPLEMENTATIONS:
  - store/memory.go (this package's subdirectory): In-memory, for tests
  - store/sqlite (top level): Production SQLite

SEE ALSO:
  - calc.go: The pure function these stores feed
*/
package schedule

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// KEYS
// =============================================================================

// MonthKey identifies one user's records for one calendar month.
type MonthKey struct {
	UserID string
	Year   int
	Month  time.Month
}

// Period returns the key's month as a day range.
func (k MonthKey) Period() Period { return MonthOf(k.Year, k.Month) }

// =============================================================================
// CONFIG STORE
// =============================================================================

// ConfigPatch is a partial config update. Nil fields are left untouched
// by SaveConfig (merge-on-write).
type ConfigPatch struct {
	ReferenceOffDate *Date
	InitialShift     *Shift
	HourlyRate       *decimal.Decimal
	DiscountRate     *decimal.Decimal
}

type ConfigStore interface {
	// LoadConfig returns the stored config for the key, or nil when the
	// month has never been configured.
	LoadConfig(ctx context.Context, key MonthKey) (*Config, error)

	// SaveConfig merges the patch into the stored config, creating the
	// record if absent.
	SaveConfig(ctx context.Context, key MonthKey, patch ConfigPatch) error

	// LoadPreviousConfig returns the most recent config strictly before
	// the key's month, or nil when none exists.
	LoadPreviousConfig(ctx context.Context, key MonthKey) (*Config, error)
}

// =============================================================================
// OVERRIDE STORE
// =============================================================================

type OverrideStore interface {
	// LoadOverrides returns the month's override record. A month with
	// no edits yields an empty, non-nil record.
	LoadOverrides(ctx context.Context, key MonthKey) (*Overrides, error)

	// SaveOverrides replaces the month's override record.
	SaveOverrides(ctx context.Context, key MonthKey, overrides *Overrides) error

	// SetOvertime upserts a single day's overtime entry.
	SetOvertime(ctx context.Context, key MonthKey, date Date, hours decimal.Decimal) error

	// SetHoliday upserts a single day's manual holiday flag.
	SetHoliday(ctx context.Context, key MonthKey, date Date, holiday bool) error
}

// =============================================================================
// PROFILE STORE
// =============================================================================

type ProfileStore interface {
	// LoadProfile returns the user's worker profile, or nil when unset.
	LoadProfile(ctx context.Context, userID string) (*WorkerProfile, error)

	SaveProfile(ctx context.Context, userID string, profile WorkerProfile) error
}

// =============================================================================
// HISTORY STORE - Append-only run summaries
// =============================================================================

// HistoryEntry is one persisted calculation summary.
type HistoryEntry struct {
	ID     string
	UserID string
	Year   int
	Month  time.Month

	Totals       Totals
	Quincena1Net decimal.Decimal
	Quincena2Net decimal.Decimal

	CreatedAt time.Time
}

// HistoryStore is APPEND-ONLY. No update, no delete. Ever.
type HistoryStore interface {
	AppendHistory(ctx context.Context, entry HistoryEntry) error

	// ListHistory returns the user's entries, newest first.
	ListHistory(ctx context.Context, userID string) ([]HistoryEntry, error)
}

// =============================================================================
// COMBINED STORE
// =============================================================================

// Store is the full persistence surface the HTTP layer depends on.
type Store interface {
	ConfigStore
	OverrideStore
	ProfileStore
	HistoryStore
}
