/*
recur.go - Shift recurrence: series expansion and cascading edit/delete

PURPOSE:
  Expands a base shift plus an interval into concrete occurrences, and
  applies edits and deletes across a series. All functions here are pure:
  they take the flat shift collection and return a new collection, leaving
  the input untouched. Persistence is the orchestrator's problem.

SERIES MODEL:
  A series is a root shift (Recurring == true, ParentID == nil) plus the
  children generated from it, each carrying ParentID = root id. Linkage is
  by id over the flat collection - the arena+index pattern - so there is
  no cyclic ownership to manage.

EXPANSION:
  - daily +1d, weekly +7d, biweekly +14d, monthly +1 calendar month
  - stops once the candidate date passes the end date; without an end
    date generation caps at MaxGeneratedOccurrences
  - every occurrence keeps the base's time-of-day and span, gets a fresh
    identity, and points back at the base

EDIT SCOPES:
  EditThisOnly      mutate exactly the targeted shift
  EditThisAndFuture mutate the target and every series sibling with
                    date >= the target's date
  EditAll           mutate every shift in the series, but only the fields
                    that make sense series-wide (job, break, type, rate
                    override, notes); dates and times stay per-occurrence

  A cascading edit that also moves the target's own date is rejected with
  ErrCascadeDateChange: reordering a series mid-cascade has no sane answer,
  so the two changes must be made separately.
*/
package track

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaxGeneratedOccurrences caps open-ended series at creation time.
const MaxGeneratedOccurrences = 51

// =============================================================================
// EXPANSION
// =============================================================================

// Expand generates the child occurrences for a base shift. The base itself
// is not returned. endDate == nil means "no end": generation caps at max
// (or MaxGeneratedOccurrences when max <= 0). An end date before the base
// date yields an empty expansion, and RecurNone is a no-op.
func Expand(base WorkShift, interval RecurrenceInterval, endDate *Day, max int, nextID func() ShiftID) []WorkShift {
	if interval == RecurNone || !interval.Valid() {
		return nil
	}
	if max <= 0 {
		max = MaxGeneratedOccurrences
	}

	spanned := base.End.Sub(base.Start)
	var children []WorkShift

	for step := 1; ; step++ {
		date := advance(base.Date, interval, step)
		if endDate != nil && date.After(*endDate) {
			break
		}
		if endDate == nil && len(children) >= max {
			break
		}

		start := timeOfDayOn(base.Start, date)
		child := base
		child.ID = nextID()
		child.Date = date
		child.Start = start
		child.End = start.Add(spanned)
		child.Recurring = false
		child.Recurrence = RecurNone
		child.RecurrenceEnd = nil
		parent := base.ID
		child.ParentID = &parent
		children = append(children, child)
	}
	return children
}

// advance steps the base date forward by n intervals. Monthly steps are
// calendar months anchored on the base date, not a fixed day count.
func advance(base Day, interval RecurrenceInterval, n int) Day {
	if interval == RecurMonthly {
		return base.AddMonths(n)
	}
	return base.AddDays(stepDays[interval] * n)
}

// timeOfDayOn re-anchors a timestamp's clock time on a new date, so every
// occurrence keeps the base's time-of-day regardless of month length.
func timeOfDayOn(t time.Time, d Day) time.Time {
	return time.Date(d.Time.Year(), d.Time.Month(), d.Time.Day(),
		t.Hour(), t.Minute(), t.Second(), 0, t.Location())
}

// =============================================================================
// SERIES INDEX
// =============================================================================

// ShiftIndex resolves shifts by id over the flat collection.
type ShiftIndex map[ShiftID]WorkShift

func NewShiftIndex(shifts []WorkShift) ShiftIndex {
	idx := make(ShiftIndex, len(shifts))
	for _, s := range shifts {
		idx[s.ID] = s
	}
	return idx
}

// SeriesRoot returns the id of the series the shift belongs to: its
// parent when it is a child, itself otherwise.
func (s WorkShift) SeriesRoot() ShiftID {
	if s.ParentID != nil {
		return *s.ParentID
	}
	return s.ID
}

// seriesMembers reports whether a shift belongs to the series rooted at root.
func inSeries(s WorkShift, root ShiftID) bool {
	return s.ID == root || (s.ParentID != nil && *s.ParentID == root)
}

// =============================================================================
// EDIT PROPAGATION
// =============================================================================

type EditScope string

const (
	EditThisOnly      EditScope = "this_only"
	EditThisAndFuture EditScope = "this_and_future"
	EditAll           EditScope = "all"
)

func (s EditScope) Valid() bool {
	switch s {
	case EditThisOnly, EditThisAndFuture, EditAll:
		return true
	}
	return false
}

// ShiftPatch is a partial update. Nil fields are left alone. Clearing the
// rate override is distinct from not touching it, hence the extra flag.
type ShiftPatch struct {
	JobID         *JobID
	Date          *Day
	Start         *time.Time
	End           *time.Time
	BreakHours    *decimal.Decimal
	Type          *ShiftType
	Notes         *string
	Paid          *bool
	RateOverride  *decimal.Decimal
	ClearOverride bool
}

func (p ShiftPatch) movesSchedule() bool {
	return p.Date != nil || p.Start != nil || p.End != nil
}

// apply mutates a copy of the shift with the patch. When seriesWide is
// true only the series-safe fields are applied; scheduling fields are
// preserved per-occurrence.
func (p ShiftPatch) apply(s WorkShift, seriesWide bool) WorkShift {
	if p.JobID != nil {
		s.JobID = *p.JobID
	}
	if p.BreakHours != nil {
		s.BreakHours = *p.BreakHours
	}
	if p.Type != nil {
		s.Type = *p.Type
	}
	if p.Notes != nil {
		s.Notes = *p.Notes
	}
	if p.Paid != nil {
		s.Paid = *p.Paid
	}
	if p.ClearOverride {
		s.RateOverride = nil
	} else if p.RateOverride != nil {
		v := *p.RateOverride
		s.RateOverride = &v
	}
	if seriesWide {
		return s
	}
	if p.Date != nil {
		s.Date = *p.Date
		s.Start = timeOfDayOn(s.Start, s.Date)
		s.End = timeOfDayOn(s.End, s.Date)
	}
	if p.Start != nil {
		s.Start = *p.Start
	}
	if p.End != nil {
		s.End = *p.End
	}
	s.NormalizeTimes()
	return s
}

// ApplyEdit applies a patch to the target shift under the given scope and
// returns the updated collection. The input slice is never modified.
func ApplyEdit(shifts []WorkShift, target ShiftID, scope EditScope, patch ShiftPatch) ([]WorkShift, error) {
	if !scope.Valid() {
		return nil, &ValidationError{Field: "scope", Reason: "unknown edit scope", Err: ErrInvalidInput}
	}
	idx := NewShiftIndex(shifts)
	t, ok := idx[target]
	if !ok {
		return nil, ErrShiftNotFound
	}
	if scope != EditThisOnly && patch.movesSchedule() {
		return nil, ErrCascadeDateChange
	}

	root := t.SeriesRoot()
	out := make([]WorkShift, len(shifts))
	for i, s := range shifts {
		edited := false
		switch {
		case s.ID == target:
			out[i] = patch.apply(s, scope == EditAll)
			edited = true
		case scope == EditThisAndFuture && inSeries(s, root) && s.Date.AfterOrEqual(t.Date):
			out[i] = patch.apply(s, true)
			edited = true
		case scope == EditAll && inSeries(s, root):
			out[i] = patch.apply(s, true)
			edited = true
		default:
			out[i] = s
		}
		// Every rewritten shift must hold the invariants, not just the
		// target: a series-wide break increase can push a shortened
		// sibling to a non-positive duration. One bad sibling rejects
		// the whole edit.
		if edited {
			if err := out[i].Validate(); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

// =============================================================================
// DELETION
// =============================================================================

// DeleteShift removes the targeted shift. With deleteFutureSeries set on a
// series root, the root and every child go with it; on any other shift the
// flag is ignored and only the target is removed.
func DeleteShift(shifts []WorkShift, target ShiftID, deleteFutureSeries bool) ([]WorkShift, error) {
	idx := NewShiftIndex(shifts)
	t, ok := idx[target]
	if !ok {
		return nil, ErrShiftNotFound
	}

	wipeSeries := deleteFutureSeries && t.IsSeriesRoot()
	out := make([]WorkShift, 0, len(shifts))
	for _, s := range shifts {
		if s.ID == target {
			continue
		}
		if wipeSeries && s.ParentID != nil && *s.ParentID == target {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}
