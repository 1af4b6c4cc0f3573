/*
earnings.go - Rate resolution, multipliers, and aggregation

RATE RESOLUTION ORDER:
  shift override -> job hourly rate -> zero when the job is missing.
  An orphaned job reference is not an error; the shift stays valid and
  simply earns nothing until the reference is repaired.

BOUNDARY CONVENTIONS:
  Instant-based aggregation (windows, chart buckets) is half-open
  [start, end) over the shift's start time, so a partition of a range
  into sub-ranges never double counts. Day-based queries (pay periods,
  reconciliation) are inclusive over the shift's date, matching how
  payslips state their periods.
*/
package track

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// JOB INDEX
// =============================================================================

// JobIndex resolves jobs by id for rate lookups.
type JobIndex map[JobID]Job

func NewJobIndex(jobs []Job) JobIndex {
	idx := make(JobIndex, len(jobs))
	for _, j := range jobs {
		idx[j.ID] = j
	}
	return idx
}

// =============================================================================
// PER-SHIFT EARNINGS
// =============================================================================

// EffectiveRate prefers the shift's own override, then the job's hourly
// rate, and degrades to zero for a dangling job reference.
func EffectiveRate(s WorkShift, jobs JobIndex) decimal.Decimal {
	if s.RateOverride != nil {
		return *s.RateOverride
	}
	if j, ok := jobs[s.JobID]; ok {
		return j.HourlyRate
	}
	return decimal.Zero
}

// Earnings is duration x rate x type multiplier for a single shift.
// Duration is assumed pre-validated positive by the caller.
func Earnings(s WorkShift, jobs JobIndex) decimal.Decimal {
	return s.DurationHours().Mul(EffectiveRate(s, jobs)).Mul(s.Type.Multiplier())
}

// =============================================================================
// AGGREGATION
// =============================================================================

// inInstantRange applies the half-open [from, to) convention over the
// shift's start time.
func inInstantRange(s WorkShift, from, to time.Time) bool {
	return !s.Start.Before(from) && s.Start.Before(to)
}

// TotalEarnings sums earnings for shifts starting in [from, to).
func TotalEarnings(shifts []WorkShift, jobs JobIndex, from, to time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, s := range shifts {
		if inInstantRange(s, from, to) {
			total = total.Add(Earnings(s, jobs))
		}
	}
	return total
}

// TotalHours sums payable hours for shifts starting in [from, to).
func TotalHours(shifts []WorkShift, from, to time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, s := range shifts {
		if inInstantRange(s, from, to) {
			total = total.Add(s.DurationHours())
		}
	}
	return total
}

// JobEarnings is one job's share of a reporting range.
type JobEarnings struct {
	JobID    JobID           `json:"jobId"`
	JobName  string          `json:"jobName"`
	Hours    decimal.Decimal `json:"hours"`
	Earnings decimal.Decimal `json:"earnings"`
}

// EarningsByJob groups shifts starting in [from, to) by job, drops jobs
// with zero hours, and sorts descending by earnings. A dangling job id
// still groups, under an empty name.
func EarningsByJob(shifts []WorkShift, jobs JobIndex, from, to time.Time) []JobEarnings {
	byJob := make(map[JobID]*JobEarnings)
	for _, s := range shifts {
		if !inInstantRange(s, from, to) {
			continue
		}
		e, ok := byJob[s.JobID]
		if !ok {
			e = &JobEarnings{JobID: s.JobID, Hours: decimal.Zero, Earnings: decimal.Zero}
			if j, found := jobs[s.JobID]; found {
				e.JobName = j.Name
			}
			byJob[s.JobID] = e
		}
		e.Hours = e.Hours.Add(s.DurationHours())
		e.Earnings = e.Earnings.Add(Earnings(s, jobs))
	}

	out := make([]JobEarnings, 0, len(byJob))
	for _, e := range byJob {
		if e.Hours.IsZero() {
			continue
		}
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Earnings.Equal(out[j].Earnings) {
			return out[i].Earnings.GreaterThan(out[j].Earnings)
		}
		return out[i].JobID < out[j].JobID
	})
	return out
}

// =============================================================================
// PROPORTIONAL OVERLAP - Sub-range attribution for charting
// =============================================================================

// OverlapHours is the raw overlap between a shift's span and a bucket:
// max(0, min(shiftEnd, bucketEnd) - max(shiftStart, bucketStart)).
func OverlapHours(s WorkShift, bucketStart, bucketEnd time.Time) decimal.Decimal {
	lo := s.Start
	if bucketStart.After(lo) {
		lo = bucketStart
	}
	hi := s.End
	if bucketEnd.Before(hi) {
		hi = bucketEnd
	}
	if !hi.After(lo) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(hi.Sub(lo).Minutes()).Div(decimal.NewFromInt(60))
}

// ProportionalEarnings attributes a share of a shift's full earnings to a
// bucket, proportional to the overlapped span. A zero-span shift
// contributes nothing anywhere.
func ProportionalEarnings(s WorkShift, jobs JobIndex, bucketStart, bucketEnd time.Time) decimal.Decimal {
	span := s.SpanHours()
	if !span.IsPositive() {
		return decimal.Zero
	}
	overlap := OverlapHours(s, bucketStart, bucketEnd)
	if overlap.IsZero() {
		return decimal.Zero
	}
	return Earnings(s, jobs).Mul(overlap).Div(span)
}

// Bucket is one sub-range of a charted window with its attributed totals.
type Bucket struct {
	Start    time.Time       `json:"start"`
	End      time.Time       `json:"end"`
	Hours    decimal.Decimal `json:"hours"`
	Earnings decimal.Decimal `json:"earnings"`
}

// SplitIntoBuckets cuts [from, to) into equal-length sub-ranges and
// attributes each shift proportionally across them.
func SplitIntoBuckets(shifts []WorkShift, jobs JobIndex, from, to time.Time, n int) []Bucket {
	if n < 1 || !to.After(from) {
		return nil
	}
	width := to.Sub(from) / time.Duration(n)
	buckets := make([]Bucket, n)
	for i := range buckets {
		start := from.Add(time.Duration(i) * width)
		end := start.Add(width)
		if i == n-1 {
			end = to
		}
		hours := decimal.Zero
		earnings := decimal.Zero
		for _, s := range shifts {
			hours = hours.Add(OverlapHours(s, start, end))
			earnings = earnings.Add(ProportionalEarnings(s, jobs, start, end))
		}
		buckets[i] = Bucket{Start: start, End: end, Hours: hours, Earnings: earnings}
	}
	return buckets
}

// =============================================================================
// WINDOW QUERIES
// =============================================================================

// WindowSummary is the hours/earnings answer for one semantic window.
type WindowSummary struct {
	Window   Window          `json:"window"`
	Offset   int             `json:"offset"`
	Start    time.Time       `json:"start"`
	End      time.Time       `json:"end"`
	Hours    decimal.Decimal `json:"hours"`
	Earnings decimal.Decimal `json:"earnings"`
}

// SummarizeWindow resolves (window, offset) against ref and aggregates
// the shifts that start inside it.
func SummarizeWindow(shifts []WorkShift, jobs JobIndex, w Window, offset int, ref time.Time) WindowSummary {
	start, end := ResolveWindow(w, offset, ref)
	return WindowSummary{
		Window:   w,
		Offset:   offset,
		Start:    start,
		End:      end,
		Hours:    TotalHours(shifts, start, end),
		Earnings: TotalEarnings(shifts, jobs, start, end),
	}
}

// =============================================================================
// DAY-BASED FILTERS (pay periods, reconciliation)
// =============================================================================

// ShiftsInDateRange returns shifts whose date falls inside the inclusive
// range, optionally restricted to one job (empty JobID matches all).
func ShiftsInDateRange(shifts []WorkShift, r DateRange, jobID JobID) []WorkShift {
	var out []WorkShift
	for _, s := range shifts {
		if jobID != "" && s.JobID != jobID {
			continue
		}
		if r.Contains(s.Date) {
			out = append(out, s)
		}
	}
	return out
}

// UnpaidByJob aggregates hours and earnings of unpaid shifts per job,
// sorted descending by owed earnings.
func UnpaidByJob(shifts []WorkShift, jobs JobIndex) []JobEarnings {
	var unpaid []WorkShift
	for _, s := range shifts {
		if !s.Paid {
			unpaid = append(unpaid, s)
		}
	}
	// The half-open filter is a no-op over all of time.
	var lo, hi time.Time
	if len(unpaid) > 0 {
		lo = unpaid[0].Start
		hi = unpaid[0].Start
		for _, s := range unpaid {
			if s.Start.Before(lo) {
				lo = s.Start
			}
			if s.Start.After(hi) {
				hi = s.Start
			}
		}
		hi = hi.Add(time.Second)
	}
	return EarningsByJob(unpaid, jobs, lo, hi)
}
