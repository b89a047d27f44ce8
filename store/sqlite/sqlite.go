/*
Package sqlite provides the SQLite-backed implementation of the schedule
persistence contracts.

PURPOSE:
  Implements schedule.Store (config, overrides, profile, history) on a
  single SQLite file. In production the same patterns apply to any
  document or relational store - only dialect details differ.

KEY TABLES:
  month_configs:   One row per (user, year, month); merge-on-write
  day_overrides:   One row per (user, date); sparse holiday/overtime edits
  worker_profiles: One row per user
  run_history:     APPEND-ONLY calculation summaries

APPEND-ONLY ENFORCEMENT:
  run_history has no UPDATE and no DELETE path in this package. Trend
  data is a log, not a document.

MERGE-ON-WRITE:
  SaveConfig reads the existing row, applies only the patch's non-nil
  fields, and upserts. Concurrent writers are serialized by the store
  mutex; last write wins, which matches the single-user calculator's
  contract.

DECIMALS:
  Money and hour figures are stored as TEXT in decimal string form,
  never as REAL - the engine's arithmetic is exact and the store must
  not launder it through float64.

WAL MODE:
  SQLite is opened with WAL for better concurrency and crash recovery.

USAGE:
  store, err := sqlite.New("./data/payroll.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

SEE ALSO:
  - schedule/store.go: Interface definitions
  - schedule/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"github.com/warp/shift-payroll/schedule"
)

// Store implements schedule.Store using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

var _ schedule.Store = (*Store)(nil)

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schemaSQL := `
	-- Month configuration (merge-on-write)
	CREATE TABLE IF NOT EXISTS month_configs (
		user_id TEXT NOT NULL,
		year INTEGER NOT NULL,
		month INTEGER NOT NULL,
		reference_off_date TEXT,
		initial_shift TEXT,
		hourly_rate TEXT,
		discount_rate TEXT,
		updated_at TEXT NOT NULL,
		PRIMARY KEY (user_id, year, month)
	);

	-- Sparse per-day user edits (manual holidays, overtime)
	CREATE TABLE IF NOT EXISTS day_overrides (
		user_id TEXT NOT NULL,
		date TEXT NOT NULL,
		year INTEGER NOT NULL,
		month INTEGER NOT NULL,
		overtime_hours TEXT NOT NULL DEFAULT '0',
		is_holiday BOOLEAN NOT NULL DEFAULT FALSE,
		updated_at TEXT NOT NULL,
		PRIMARY KEY (user_id, date)
	);

	CREATE INDEX IF NOT EXISTS idx_day_overrides_month
		ON day_overrides(user_id, year, month);

	-- Cross-month worker profile
	CREATE TABLE IF NOT EXISTS worker_profiles (
		user_id TEXT PRIMARY KEY,
		category TEXT,
		technician_certified BOOLEAN NOT NULL DEFAULT FALSE,
		certification_bonus TEXT NOT NULL DEFAULT '0',
		updated_at TEXT NOT NULL
	);

	-- Calculation history (append-only log)
	CREATE TABLE IF NOT EXISTS run_history (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		year INTEGER NOT NULL,
		month INTEGER NOT NULL,
		summary_json TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_run_history_user
		ON run_history(user_id, year, month);
	CREATE INDEX IF NOT EXISTS idx_run_history_created
		ON run_history(user_id, created_at DESC);
	`

	_, err := s.db.Exec(schemaSQL)
	return err
}

// Reset clears all data. For demo scenarios and tests only.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, table := range []string{"month_configs", "day_overrides", "worker_profiles", "run_history"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to reset %s: %w", table, err)
		}
	}
	return nil
}

// =============================================================================
// CONFIG STORE (schedule.ConfigStore interface)
// =============================================================================

func (s *Store) LoadConfig(ctx context.Context, key schedule.MonthKey) (*schedule.Config, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT year, month, reference_off_date, initial_shift, hourly_rate, discount_rate
		FROM month_configs
		WHERE user_id = ? AND year = ? AND month = ?
	`, key.UserID, key.Year, int(key.Month))

	return scanConfig(row)
}

func (s *Store) LoadPreviousConfig(ctx context.Context, key schedule.MonthKey) (*schedule.Config, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT year, month, reference_off_date, initial_shift, hourly_rate, discount_rate
		FROM month_configs
		WHERE user_id = ? AND (year < ? OR (year = ? AND month < ?))
		ORDER BY year DESC, month DESC
		LIMIT 1
	`, key.UserID, key.Year, key.Year, int(key.Month))

	return scanConfig(row)
}

func scanConfig(row *sql.Row) (*schedule.Config, error) {
	var (
		year, month                    int
		refDate, shift, rate, discount sql.NullString
	)
	err := row.Scan(&year, &month, &refDate, &shift, &rate, &discount)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	cfg := schedule.Config{Year: year, Month: time.Month(month)}

	if refDate.Valid && refDate.String != "" {
		d, err := schedule.ParseDate(refDate.String)
		if err != nil {
			return nil, fmt.Errorf("stored reference date: %w", err)
		}
		cfg.ReferenceOffDate = &d
	}
	if shift.Valid && shift.String != "" {
		sh, err := schedule.ParseShift(shift.String)
		if err != nil {
			return nil, fmt.Errorf("stored initial shift: %w", err)
		}
		cfg.InitialShift = sh
	}
	if cfg.HourlyRate, err = parseStoredDecimal(rate); err != nil {
		return nil, fmt.Errorf("stored hourly rate: %w", err)
	}
	if cfg.DiscountRate, err = parseStoredDecimal(discount); err != nil {
		return nil, fmt.Errorf("stored discount rate: %w", err)
	}
	return &cfg, nil
}

func (s *Store) SaveConfig(ctx context.Context, key schedule.MonthKey, patch schedule.ConfigPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Read-modify-write under the store mutex: merge the patch into the
	// existing row, then upsert the whole record.
	row := s.db.QueryRowContext(ctx, `
		SELECT year, month, reference_off_date, initial_shift, hourly_rate, discount_rate
		FROM month_configs
		WHERE user_id = ? AND year = ? AND month = ?
	`, key.UserID, key.Year, int(key.Month))

	existing, err := scanConfig(row)
	if err != nil {
		return err
	}
	cfg := schedule.Config{Year: key.Year, Month: key.Month}
	if existing != nil {
		cfg = *existing
	}

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

	if err := cfg.Validate(); err != nil {
		return err
	}

	var refDate string
	if cfg.ReferenceOffDate != nil {
		refDate = cfg.ReferenceOffDate.Key()
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO month_configs
		(user_id, year, month, reference_off_date, initial_shift, hourly_rate, discount_rate, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, year, month) DO UPDATE SET
			reference_off_date = excluded.reference_off_date,
			initial_shift = excluded.initial_shift,
			hourly_rate = excluded.hourly_rate,
			discount_rate = excluded.discount_rate,
			updated_at = excluded.updated_at
	`, key.UserID, key.Year, int(key.Month),
		refDate, string(cfg.InitialShift), cfg.HourlyRate.String(), cfg.DiscountRate.String(),
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}

// =============================================================================
// OVERRIDE STORE (schedule.OverrideStore interface)
// =============================================================================

func (s *Store) LoadOverrides(ctx context.Context, key schedule.MonthKey) (*schedule.Overrides, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT date, overtime_hours, is_holiday
		FROM day_overrides
		WHERE user_id = ? AND year = ? AND month = ?
	`, key.UserID, key.Year, int(key.Month))
	if err != nil {
		return nil, fmt.Errorf("failed to load overrides: %w", err)
	}
	defer rows.Close()

	overrides := schedule.NewOverrides()
	for rows.Next() {
		var (
			dateStr, hoursStr string
			holiday           bool
		)
		if err := rows.Scan(&dateStr, &hoursStr, &holiday); err != nil {
			return nil, fmt.Errorf("failed to scan override: %w", err)
		}
		date, err := schedule.ParseDate(dateStr)
		if err != nil {
			return nil, fmt.Errorf("stored override date: %w", err)
		}
		hours, err := decimal.NewFromString(hoursStr)
		if err != nil {
			return nil, fmt.Errorf("stored overtime hours: %w", err)
		}
		if err := overrides.SetOvertime(date, hours); err != nil {
			return nil, err
		}
		overrides.MarkHoliday(date, holiday)
	}
	return overrides, rows.Err()
}

func (s *Store) SaveOverrides(ctx context.Context, key schedule.MonthKey, overrides *schedule.Overrides) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin override save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM day_overrides WHERE user_id = ? AND year = ? AND month = ?
	`, key.UserID, key.Year, int(key.Month)); err != nil {
		return fmt.Errorf("failed to clear overrides: %w", err)
	}

	dates := make(map[string]struct{})
	if overrides != nil {
		for k := range overrides.Overtime {
			dates[k] = struct{}{}
		}
		for k := range overrides.Holidays {
			dates[k] = struct{}{}
		}
	}

	now := time.Now().UTC().Format(time.RFC3339)
	for dateKey := range dates {
		date, err := schedule.ParseDate(dateKey)
		if err != nil {
			return fmt.Errorf("override date: %w", err)
		}
		hours := overrides.OvertimeFor(date)
		if hours.IsNegative() {
			return fmt.Errorf("%w: %s on %s", schedule.ErrNegativeOvertime, hours, dateKey)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO day_overrides
			(user_id, date, year, month, overtime_hours, is_holiday, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, key.UserID, dateKey, date.Year(), int(date.Month()), hours.String(), overrides.IsHoliday(date), now); err != nil {
			return fmt.Errorf("failed to save override: %w", err)
		}
	}

	return tx.Commit()
}

func (s *Store) SetOvertime(ctx context.Context, key schedule.MonthKey, date schedule.Date, hours decimal.Decimal) error {
	if hours.IsNegative() {
		return fmt.Errorf("%w: %s on %s", schedule.ErrNegativeOvertime, hours, date)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO day_overrides
		(user_id, date, year, month, overtime_hours, is_holiday, updated_at)
		VALUES (?, ?, ?, ?, ?, FALSE, ?)
		ON CONFLICT(user_id, date) DO UPDATE SET
			overtime_hours = excluded.overtime_hours,
			updated_at = excluded.updated_at
	`, key.UserID, date.Key(), date.Year(), int(date.Month()), hours.String(),
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to set overtime: %w", err)
	}
	return nil
}

func (s *Store) SetHoliday(ctx context.Context, key schedule.MonthKey, date schedule.Date, holiday bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO day_overrides
		(user_id, date, year, month, overtime_hours, is_holiday, updated_at)
		VALUES (?, ?, ?, ?, '0', ?, ?)
		ON CONFLICT(user_id, date) DO UPDATE SET
			is_holiday = excluded.is_holiday,
			updated_at = excluded.updated_at
	`, key.UserID, date.Key(), date.Year(), int(date.Month()), holiday,
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to set holiday: %w", err)
	}
	return nil
}

// =============================================================================
// PROFILE STORE (schedule.ProfileStore interface)
// =============================================================================

func (s *Store) LoadProfile(ctx context.Context, userID string) (*schedule.WorkerProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		category  sql.NullString
		certified bool
		bonusStr  sql.NullString
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT category, technician_certified, certification_bonus
		FROM worker_profiles
		WHERE user_id = ?
	`, userID).Scan(&category, &certified, &bonusStr)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	bonus, err := parseStoredDecimal(bonusStr)
	if err != nil {
		return nil, fmt.Errorf("stored certification bonus: %w", err)
	}
	return &schedule.WorkerProfile{
		Category:            category.String,
		TechnicianCertified: certified,
		CertificationBonus:  bonus,
	}, nil
}

func (s *Store) SaveProfile(ctx context.Context, userID string, profile schedule.WorkerProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO worker_profiles
		(user_id, category, technician_certified, certification_bonus, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			category = excluded.category,
			technician_certified = excluded.technician_certified,
			certification_bonus = excluded.certification_bonus,
			updated_at = excluded.updated_at
	`, userID, profile.Category, profile.TechnicianCertified,
		profile.CertificationBonus.String(), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

// =============================================================================
// HISTORY STORE (schedule.HistoryStore interface) - append-only
// =============================================================================

// historySummary is the persisted JSON shape of a run summary.
type historySummary struct {
	Totals       schedule.Totals `json:"totals"`
	Quincena1Net decimal.Decimal `json:"quincena1_net"`
	Quincena2Net decimal.Decimal `json:"quincena2_net"`
}

func (s *Store) AppendHistory(ctx context.Context, entry schedule.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	summaryJSON, err := json.Marshal(historySummary{
		Totals:       entry.Totals,
		Quincena1Net: entry.Quincena1Net,
		Quincena2Net: entry.Quincena2Net,
	})
	if err != nil {
		return fmt.Errorf("failed to encode history summary: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO run_history (id, user_id, year, month, summary_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, entry.ID, entry.UserID, entry.Year, int(entry.Month),
		string(summaryJSON), entry.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to append history: %w", err)
	}
	return nil
}

func (s *Store) ListHistory(ctx context.Context, userID string) ([]schedule.HistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, year, month, summary_json, created_at
		FROM run_history
		WHERE user_id = ?
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	defer rows.Close()

	var entries []schedule.HistoryEntry
	for rows.Next() {
		var (
			entry                schedule.HistoryEntry
			month                int
			summaryJSON, created string
		)
		if err := rows.Scan(&entry.ID, &entry.UserID, &entry.Year, &month, &summaryJSON, &created); err != nil {
			return nil, fmt.Errorf("failed to scan history: %w", err)
		}
		entry.Month = time.Month(month)

		var summary historySummary
		if err := json.Unmarshal([]byte(summaryJSON), &summary); err != nil {
			return nil, fmt.Errorf("stored history summary: %w", err)
		}
		entry.Totals = summary.Totals
		entry.Quincena1Net = summary.Quincena1Net
		entry.Quincena2Net = summary.Quincena2Net

		if entry.CreatedAt, err = time.Parse(time.RFC3339, created); err != nil {
			return nil, fmt.Errorf("stored history timestamp: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// =============================================================================
// HELPERS
// =============================================================================

func parseStoredDecimal(v sql.NullString) (decimal.Decimal, error) {
	if !v.Valid || v.String == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(v.String)
}
