/*
cycle.go - Mapping absolute dates to rotation slots

PURPOSE:
  Resolves which slot of the repeating rotation a calendar day lands on,
  anchored at the last confirmed franco before the projected stretch.

ALGORITHM:
  1. baseOffset = cycle index of the shift active the day after the
     reference franco (Rotation.BaseOffset of the initial shift).
  2. diffDays   = signed day distance from (reference + 1) to the target.
  3. index      = ((baseOffset + diffDays) mod N + N) mod N.

  The double mod is load-bearing: Go's % keeps the sign of the dividend,
  so a target before the reference produces a negative remainder that a
  single mod would hand straight to the slot lookup.

ITERATION:
  Resolving a whole month day by day only needs the formula once; after
  that the index advances by 1 mod N per day. CycleWalker does exactly
  that and is equivalent to calling IndexFor per day (tested both ways).
  A walker can also continue from a previous month's last known index,
  which agrees with the direct formula by construction.

SEE ALSO:
  - rotation.go: Rotation and BaseOffset
  - calc.go: Consumes CycleWalker for the monthly pass
*/
package schedule

// =============================================================================
// DIRECT RESOLUTION - Per-day offset formula
// =============================================================================

// IndexFor returns the cycle index for the target day, given the last
// confirmed franco and the shift that starts the day after it.
func (r Rotation) IndexFor(referenceOff Date, initial Shift, target Date) int {
	n := r.Len()
	if n == 0 {
		return 0
	}
	base := r.BaseOffset(initial)
	dayAfter := referenceOff.AddDays(1)
	diff := DaysBetween(dayAfter, target)
	return ((base+diff)%n + n) % n
}

// ShiftFor returns the slot the target day lands on.
func (r Rotation) ShiftFor(referenceOff Date, initial Shift, target Date) Shift {
	return r.At(r.IndexFor(referenceOff, initial, target))
}

// =============================================================================
// CYCLE WALKER - Running index for consecutive days
// =============================================================================

// CycleWalker yields rotation slots for consecutive days without
// re-deriving the offset formula per day.
type CycleWalker struct {
	rotation Rotation
	index    int
}

// WalkFrom positions a walker on the given start day.
func (r Rotation) WalkFrom(referenceOff Date, initial Shift, start Date) *CycleWalker {
	return &CycleWalker{
		rotation: r,
		index:    r.IndexFor(referenceOff, initial, start),
	}
}

// ContinueFrom positions a walker one slot past a known index, for
// continuing a rotation from a previous month's last resolved day.
func (r Rotation) ContinueFrom(lastIndex int) *CycleWalker {
	n := r.Len()
	if n == 0 {
		return &CycleWalker{rotation: r}
	}
	return &CycleWalker{rotation: r, index: ((lastIndex+1)%n + n) % n}
}

// Index returns the walker's current cycle index.
func (w *CycleWalker) Index() int { return w.index }

// Next returns the current day's slot and advances to the next day.
func (w *CycleWalker) Next() Shift {
	s := w.rotation.At(w.index)
	if n := w.rotation.Len(); n > 0 {
		w.index = (w.index + 1) % n
	}
	return s
}
