/*
recalc.go - Background recalculation worker

PURPOSE:
  Keeps a warm copy of the latest calculation for every month that was
  edited recently. Handlers enqueue a month key after each config or
  override write; the worker drains the dirty set on a timer, recomputes
  each month from stored inputs, and caches the result. GET .../result
  serves the cache (handlers.go), computing and priming it on a miss.

DESIGN:
  - Runs a background goroutine with a configurable sweep interval
  - Edits between sweeps coalesce: a month is recomputed once per sweep
    no matter how many writes touched it
  - Each cache entry remembers the rotation variant it was computed
    with; a sweep recomputes the month with that same variant. Months
    never calculated before fall back to the default variant.
  - Recomputation is read-only against the store; history is never
    appended here (only an explicit POST /calculate records history)
  - Flush drops the whole cache. Scenario loads and store resets call
    it so stale months cannot outlive their inputs.

CONFIGURATION:
  - SweepInterval: How often to drain the dirty set (default: 2s)

USAGE:
  rc := NewRecalculator(store, resolve)
  rc.Start()
  // ... later
  rc.Stop()

SEE ALSO:
  - handlers.go: Enqueue/Prime/Latest call sites (GetResult, Calculate)
*/
package api

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/warp/shift-payroll/rotation"
	"github.com/warp/shift-payroll/schedule"
)

// RotationResolver maps a rotation variant ID to its profile. An empty
// ID resolves to the default variant.
type RotationResolver func(id string) (rotation.Profile, bool)

// CachedResult is one warm entry in the recalculator's cache.
type CachedResult struct {
	Result schedule.Result

	// Ready mirrors Config.Ready at computation time; a not-ready
	// month caches the well-formed empty result.
	Ready bool

	// RotationID is the variant the result was computed with. Sweeps
	// reuse it so an edited two-by-two month is not recomputed on the
	// default cycle.
	RotationID string
}

// Recalculator recomputes edited months in the background.
type Recalculator struct {
	Store         schedule.Store
	Resolve       RotationResolver
	SweepInterval time.Duration

	mu    sync.Mutex
	dirty map[schedule.MonthKey]struct{}
	cache map[schedule.MonthKey]CachedResult

	ticker *time.Ticker
	stop   chan struct{}
	wg     sync.WaitGroup
}

// NewRecalculator creates a stopped recalculator.
func NewRecalculator(store schedule.Store, resolve RotationResolver) *Recalculator {
	return &Recalculator{
		Store:         store,
		Resolve:       resolve,
		SweepInterval: 2 * time.Second,
		dirty:         make(map[schedule.MonthKey]struct{}),
		cache:         make(map[schedule.MonthKey]CachedResult),
	}
}

// Start begins the sweep loop. Safe to skip in tests; Enqueue and
// Latest work without a running loop, the dirty set just never drains
// on its own (SweepNow drains it by hand).
func (rc *Recalculator) Start() {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	if rc.ticker != nil {
		return
	}
	rc.ticker = time.NewTicker(rc.SweepInterval)
	rc.stop = make(chan struct{})
	rc.wg.Add(1)

	go rc.run()

	log.Printf("[Recalc] Started with sweep interval: %v", rc.SweepInterval)
}

// Stop halts the sweep loop and waits for an in-flight sweep.
func (rc *Recalculator) Stop() {
	rc.mu.Lock()
	ticker := rc.ticker
	rc.ticker = nil
	rc.mu.Unlock()

	if ticker != nil {
		ticker.Stop()
		close(rc.stop)
		rc.wg.Wait()
		log.Println("[Recalc] Stopped")
	}
}

// Enqueue marks a month dirty. Multiple calls before the next sweep
// collapse into one recomputation.
func (rc *Recalculator) Enqueue(key schedule.MonthKey) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.dirty[key] = struct{}{}
}

// Prime records a freshly computed result and the variant it used,
// and clears the month's dirty mark. Handlers call this after every
// synchronous calculation so the cache never lags a served response.
func (rc *Recalculator) Prime(key schedule.MonthKey, rotationID string, result schedule.Result, ready bool) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.cache[key] = CachedResult{Result: result, Ready: ready, RotationID: rotationID}
	delete(rc.dirty, key)
}

// Latest returns the cached entry for a month, if one exists.
func (rc *Recalculator) Latest(key schedule.MonthKey) (CachedResult, bool) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	entry, ok := rc.cache[key]
	return entry, ok
}

// Flush drops the cache and the dirty set. Called when the store is
// reset underneath the recalculator.
func (rc *Recalculator) Flush() {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.dirty = make(map[schedule.MonthKey]struct{})
	rc.cache = make(map[schedule.MonthKey]CachedResult)
}

// SweepNow drains the dirty set immediately (for tests/admin).
func (rc *Recalculator) SweepNow() {
	rc.sweep()
}

func (rc *Recalculator) run() {
	defer rc.wg.Done()

	for {
		select {
		case <-rc.ticker.C:
			rc.sweep()
		case <-rc.stop:
			return
		}
	}
}

func (rc *Recalculator) sweep() {
	rc.mu.Lock()
	keys := make([]schedule.MonthKey, 0, len(rc.dirty))
	for k := range rc.dirty {
		keys = append(keys, k)
	}
	rc.dirty = make(map[schedule.MonthKey]struct{})
	rc.mu.Unlock()

	if len(keys) == 0 {
		return
	}

	ctx := context.Background()
	recomputed := 0
	for _, key := range keys {
		entry, err := rc.recompute(ctx, key)
		if err != nil {
			log.Printf("[Recalc] Error recomputing %s %d-%02d: %v",
				key.UserID, key.Year, int(key.Month), err)
			continue
		}
		rc.mu.Lock()
		rc.cache[key] = entry
		rc.mu.Unlock()
		recomputed++
	}

	if recomputed > 0 {
		log.Printf("[Recalc] Completed: %d month(s) recomputed", recomputed)
	}
}

func (rc *Recalculator) recompute(ctx context.Context, key schedule.MonthKey) (CachedResult, error) {
	rc.mu.Lock()
	rotationID := rc.cache[key].RotationID
	rc.mu.Unlock()

	prof, ok := rc.Resolve(rotationID)
	if !ok {
		// A custom variant dropped since the last run; the default
		// cycle is the only honest fallback left.
		prof, _ = rc.Resolve("")
	}

	cfg, _, err := effectiveConfig(ctx, rc.Store, key)
	if err != nil {
		return CachedResult{}, err
	}

	ov, err := rc.Store.LoadOverrides(ctx, key)
	if err != nil {
		return CachedResult{}, err
	}

	worker, err := rc.Store.LoadProfile(ctx, key.UserID)
	if err != nil {
		return CachedResult{}, err
	}

	return CachedResult{
		Result:     prof.Calculator().Calculate(cfg, ov, worker),
		Ready:      cfg.Ready(),
		RotationID: prof.ID,
	}, nil
}
