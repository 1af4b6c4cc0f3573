package tracker

import (
	"context"
	"io"
	"time"

	"github.com/tomsp05/worktracker/track"
)

// =============================================================================
// REPORTS - Pure reads over the in-memory collections
// =============================================================================

// Summary answers "hours and earnings for this day/week/month/year",
// offset 0 being the current window and negative offsets the past.
func (t *Tracker) Summary(w track.Window, offset int) track.WindowSummary {
	t.mu.Lock()
	defer t.mu.Unlock()
	return track.SummarizeWindow(t.shifts, track.NewJobIndex(t.jobs), w, offset, t.now())
}

// EarningsByJob breaks a window down per job, highest earner first.
func (t *Tracker) EarningsByJob(w track.Window, offset int) []track.JobEarnings {
	t.mu.Lock()
	defer t.mu.Unlock()
	from, to := track.ResolveWindow(w, offset, t.now())
	return track.EarningsByJob(t.shifts, track.NewJobIndex(t.jobs), from, to)
}

// ChartBuckets splits a window into n equal sub-ranges with proportional
// earnings attribution, for charting.
func (t *Tracker) ChartBuckets(w track.Window, offset, n int) []track.Bucket {
	t.mu.Lock()
	defer t.mu.Unlock()
	from, to := track.ResolveWindow(w, offset, t.now())
	return track.SplitIntoBuckets(t.shifts, track.NewJobIndex(t.jobs), from, to, n)
}

// UnpaidSummary lists what each job still owes.
func (t *Tracker) UnpaidSummary() []track.JobEarnings {
	t.mu.Lock()
	defer t.mu.Unlock()
	return track.UnpaidByJob(t.shifts, track.NewJobIndex(t.jobs))
}

// ShiftsInRange returns shifts dated inside the inclusive range, all jobs.
func (t *Tracker) ShiftsInRange(r track.DateRange) []track.WorkShift {
	t.mu.Lock()
	defer t.mu.Unlock()
	return track.ShiftsInDateRange(t.shifts, r, "")
}

// NextShift returns the next shift starting after the given instant.
func (t *Tracker) NextShift(after time.Time) (track.WorkShift, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var next track.WorkShift
	found := false
	for _, s := range t.shifts {
		if !s.Start.After(after) {
			continue
		}
		if !found || s.Start.Before(next.Start) {
			next = s
			found = true
		}
	}
	return next, found
}

// =============================================================================
// EXPORT / IMPORT
// =============================================================================

// Export writes the full jobs+shifts data set as a textual backup.
func (t *Tracker) Export(w io.Writer) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return track.WriteExport(w, t.jobs, t.shifts, t.now())
}

// Import replaces the jobs and shifts collections wholesale from a
// backup document and persists immediately. A document that fails to
// parse leaves current state untouched.
func (t *Tracker) Import(ctx context.Context, r io.Reader) error {
	doc, err := track.ReadExport(r)
	if err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.store.SaveJobs(ctx, doc.Jobs); err != nil {
		return err
	}
	if err := t.store.SaveShifts(ctx, doc.Shifts); err != nil {
		return err
	}
	t.jobs = doc.Jobs
	t.shifts = doc.Shifts
	return nil
}
