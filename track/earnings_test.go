package track_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomsp05/worktracker/track"
)

func cafeJobs() track.JobIndex {
	return track.NewJobIndex([]track.Job{
		{ID: "job-1", Name: "Cafe", HourlyRate: dec("12.50"), Active: true},
		{ID: "job-2", Name: "Bar", HourlyRate: dec("10"), Active: true},
	})
}

func shiftOn(day track.Day, startHour, endHour int, jobID track.JobID, typ track.ShiftType) track.WorkShift {
	return track.WorkShift{
		ID:         track.ShiftID(day.String() + "/" + string(jobID)),
		JobID:      jobID,
		Date:       day,
		Start:      time.Date(day.Time.Year(), day.Time.Month(), day.Time.Day(), startHour, 0, 0, 0, time.UTC),
		End:        time.Date(day.Time.Year(), day.Time.Month(), day.Time.Day(), endHour, 0, 0, 0, time.UTC),
		BreakHours: dec("0"),
		Type:       typ,
		Recurrence: track.RecurNone,
	}
}

// =============================================================================
// RATE RESOLUTION & PER-SHIFT EARNINGS
// =============================================================================

func TestEarnings_WorkedExample(t *testing.T) {
	// 9:00-17:00 with a 0.5h break at 12.50/h: 7.5h -> 93.75 regular,
	// 140.625 at the overtime multiplier.
	s := baseShift()
	jobs := cafeJobs()

	assert.True(t, track.Earnings(s, jobs).Equal(dec("93.75")), "got %s", track.Earnings(s, jobs))

	s.Type = track.ShiftOvertime
	assert.True(t, track.Earnings(s, jobs).Equal(dec("140.625")), "got %s", track.Earnings(s, jobs))

	s.Type = track.ShiftHoliday
	assert.True(t, track.Earnings(s, jobs).Equal(dec("187.5")))
}

func TestEffectiveRate_OverrideBeatsJobRate(t *testing.T) {
	s := baseShift()
	jobs := cafeJobs()
	override := dec("20")
	s.RateOverride = &override

	assert.True(t, track.EffectiveRate(s, jobs).Equal(dec("20")))
	assert.True(t, track.Earnings(s, jobs).Equal(dec("150"))) // 7.5 x 20
}

func TestEffectiveRate_MissingJobDegradesToZero(t *testing.T) {
	s := baseShift()
	s.JobID = "gone"

	assert.True(t, track.EffectiveRate(s, cafeJobs()).IsZero())
	assert.True(t, track.Earnings(s, cafeJobs()).IsZero())
}

// =============================================================================
// AGGREGATION & PARTITION PROPERTY
// =============================================================================

func TestTotalEarnings_PartitionDoesNotDoubleCount(t *testing.T) {
	jobs := cafeJobs()
	shifts := []track.WorkShift{
		shiftOn(track.NewDay(2025, time.March, 3), 9, 17, "job-1", track.ShiftRegular),
		shiftOn(track.NewDay(2025, time.March, 5), 9, 17, "job-1", track.ShiftRegular),
		shiftOn(track.NewDay(2025, time.March, 7), 18, 23, "job-2", track.ShiftRegular),
	}

	from := time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)
	mid := time.Date(2025, time.March, 5, 12, 0, 0, 0, time.UTC)
	to := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)

	whole := track.TotalEarnings(shifts, jobs, from, to)
	parts := track.TotalEarnings(shifts, jobs, from, mid).Add(track.TotalEarnings(shifts, jobs, mid, to))
	assert.True(t, whole.Equal(parts), "whole %s != parts %s", whole, parts)

	wholeHours := track.TotalHours(shifts, from, to)
	partHours := track.TotalHours(shifts, from, mid).Add(track.TotalHours(shifts, mid, to))
	assert.True(t, wholeHours.Equal(partHours))
}

func TestEarningsByJob_SortsAndDropsZeroHours(t *testing.T) {
	jobs := cafeJobs()
	shifts := []track.WorkShift{
		shiftOn(track.NewDay(2025, time.March, 3), 9, 17, "job-1", track.ShiftRegular),  // 100
		shiftOn(track.NewDay(2025, time.March, 4), 18, 22, "job-2", track.ShiftRegular), // 40
	}

	from := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)

	byJob := track.EarningsByJob(shifts, jobs, from, to)
	require.Len(t, byJob, 2)
	assert.Equal(t, track.JobID("job-1"), byJob[0].JobID)
	assert.Equal(t, "Cafe", byJob[0].JobName)
	assert.True(t, byJob[0].Earnings.Equal(dec("100")))
	assert.Equal(t, track.JobID("job-2"), byJob[1].JobID)

	// Nothing in an empty range.
	assert.Empty(t, track.EarningsByJob(shifts, jobs, to, to.AddDate(0, 1, 0)))
}

// =============================================================================
// PROPORTIONAL OVERLAP
// =============================================================================

func TestProportionalEarnings_FullyInsideOneBucket(t *testing.T) {
	jobs := cafeJobs()
	s := shiftOn(track.NewDay(2025, time.March, 3), 9, 17, "job-1", track.ShiftRegular)

	inside := time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)
	next := inside.AddDate(0, 0, 1)

	full := track.Earnings(s, jobs)
	assert.True(t, track.ProportionalEarnings(s, jobs, inside, next).Equal(full))
	assert.True(t, track.ProportionalEarnings(s, jobs, next, next.AddDate(0, 0, 1)).IsZero())
}

func TestProportionalEarnings_SplitExactlyInHalf(t *testing.T) {
	jobs := cafeJobs()
	// 22:00 - 02:00 overnight: two hours either side of midnight.
	s := shiftOn(track.NewDay(2025, time.March, 3), 22, 23, "job-1", track.ShiftRegular)
	s.End = time.Date(2025, time.March, 4, 2, 0, 0, 0, time.UTC)

	day1 := time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)
	day3 := day2.AddDate(0, 0, 1)

	full := track.Earnings(s, jobs)
	half := full.Div(dec("2"))
	assert.True(t, track.ProportionalEarnings(s, jobs, day1, day2).Equal(half))
	assert.True(t, track.ProportionalEarnings(s, jobs, day2, day3).Equal(half))
}

func TestSplitIntoBuckets_ConservesTotals(t *testing.T) {
	jobs := cafeJobs()
	shifts := []track.WorkShift{
		shiftOn(track.NewDay(2025, time.March, 3), 9, 17, "job-1", track.ShiftRegular),
		shiftOn(track.NewDay(2025, time.March, 6), 10, 14, "job-2", track.ShiftRegular),
	}
	from := time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 7)

	buckets := track.SplitIntoBuckets(shifts, jobs, from, to, 7)
	require.Len(t, buckets, 7)

	sum := dec("0")
	for _, b := range buckets {
		sum = sum.Add(b.Earnings)
	}
	assert.True(t, sum.Equal(track.TotalEarnings(shifts, jobs, from, to)), "buckets sum %s", sum)
}

// =============================================================================
// WINDOW SUMMARIES
// =============================================================================

func TestSummarizeWindow_WeekIsMondayAligned(t *testing.T) {
	jobs := cafeJobs()
	shifts := []track.WorkShift{
		shiftOn(track.NewDay(2025, time.January, 6), 9, 17, "job-1", track.ShiftRegular),  // Mon
		shiftOn(track.NewDay(2025, time.January, 12), 9, 13, "job-1", track.ShiftRegular), // Sun same week
		shiftOn(track.NewDay(2025, time.January, 13), 9, 17, "job-1", track.ShiftRegular), // next Mon
	}
	// Reference: Wednesday Jan 8.
	ref := time.Date(2025, time.January, 8, 15, 30, 0, 0, time.UTC)

	cur := track.SummarizeWindow(shifts, jobs, track.WindowWeek, 0, ref)
	assert.True(t, cur.Hours.Equal(dec("12")), "got %s", cur.Hours)

	next := track.SummarizeWindow(shifts, jobs, track.WindowWeek, 1, ref)
	assert.True(t, next.Hours.Equal(dec("8")))

	prev := track.SummarizeWindow(shifts, jobs, track.WindowWeek, -1, ref)
	assert.True(t, prev.Hours.IsZero())
}

func TestUnpaidByJob(t *testing.T) {
	jobs := cafeJobs()
	paid := shiftOn(track.NewDay(2025, time.March, 3), 9, 17, "job-1", track.ShiftRegular)
	paid.Paid = true
	owed := shiftOn(track.NewDay(2025, time.March, 4), 9, 13, "job-1", track.ShiftRegular)

	out := track.UnpaidByJob([]track.WorkShift{paid, owed}, jobs)
	require.Len(t, out, 1)
	assert.True(t, out[0].Earnings.Equal(dec("50")))

	assert.Empty(t, track.UnpaidByJob([]track.WorkShift{paid}, jobs))
}
