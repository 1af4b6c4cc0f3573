package track_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomsp05/worktracker/track"
)

func biweeklySchedule() track.PaySchedule {
	return track.PaySchedule{
		ID:        "sched-1",
		JobID:     "job-1",
		Frequency: track.FreqBiweekly,
		StartDate: track.NewDay(2025, time.January, 1),
		Active:    true,
	}
}

func TestPeriodsInRange_BiweeklyAcrossFebruary(t *testing.T) {
	// Anchor 2025-01-01, queried Feb 1 - Feb 28: the periods starting
	// Feb 12 and Feb 26 fall inside; the one starting Jan 29 does not.
	periods, err := track.PeriodsInRange(biweeklySchedule(),
		track.NewDay(2025, time.February, 1), track.NewDay(2025, time.February, 28))
	require.NoError(t, err)
	require.Len(t, periods, 2)

	assert.True(t, periods[0].Start.Equal(track.NewDay(2025, time.February, 12)))
	assert.True(t, periods[0].End.Equal(track.NewDay(2025, time.February, 25)))
	assert.True(t, periods[1].Start.Equal(track.NewDay(2025, time.February, 26)))
	assert.True(t, periods[1].End.Equal(track.NewDay(2025, time.March, 11)))

	// Default policy pays on the period's last day.
	assert.True(t, periods[0].PayDate.Equal(periods[0].End))
}

func TestPeriodsInRange_Deterministic(t *testing.T) {
	from := track.NewDay(2025, time.February, 1)
	to := track.NewDay(2025, time.April, 30)

	first, err := track.PeriodsInRange(biweeklySchedule(), from, to)
	require.NoError(t, err)
	second, err := track.PeriodsInRange(biweeklySchedule(), from, to)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestPeriodsInRange_NeverOverlap(t *testing.T) {
	periods, err := track.PeriodsInRange(biweeklySchedule(),
		track.NewDay(2025, time.January, 1), track.NewDay(2025, time.December, 31))
	require.NoError(t, err)
	require.NotEmpty(t, periods)

	for i := 1; i < len(periods); i++ {
		prev, cur := periods[i-1], periods[i]
		assert.True(t, prev.End.AddDays(1).Equal(cur.Start),
			"gap or overlap between %s and %s", prev.End, cur.Start)
		assert.False(t, prev.Range().Overlaps(cur.Range()))
	}
}

func TestPeriodsInRange_AncientAnchorFastForwards(t *testing.T) {
	s := biweeklySchedule()
	s.StartDate = track.NewDay(2015, time.January, 7)

	periods, err := track.PeriodsInRange(s,
		track.NewDay(2025, time.June, 1), track.NewDay(2025, time.June, 30))
	require.NoError(t, err)
	require.NotEmpty(t, periods)

	// Every period start stays phase-locked to the anchor.
	for _, p := range periods {
		assert.Zero(t, track.DaysBetween(s.StartDate, p.Start)%14, "period %s off-phase", p.Start)
		assert.True(t, p.Start.AfterOrEqual(track.NewDay(2025, time.June, 1)))
	}
}

func TestPeriodsInRange_Monthly(t *testing.T) {
	s := track.PaySchedule{
		ID:        "sched-m",
		JobID:     "job-1",
		Frequency: track.FreqMonthly,
		StartDate: track.NewDay(2025, time.January, 15),
		Active:    true,
	}

	periods, err := track.PeriodsInRange(s,
		track.NewDay(2025, time.January, 1), track.NewDay(2025, time.March, 31))
	require.NoError(t, err)
	require.Len(t, periods, 3)

	assert.True(t, periods[0].Start.Equal(track.NewDay(2025, time.January, 15)))
	assert.True(t, periods[0].End.Equal(track.NewDay(2025, time.February, 14)))
	assert.True(t, periods[1].Start.Equal(track.NewDay(2025, time.February, 15)))
	assert.True(t, periods[1].End.Equal(track.NewDay(2025, time.March, 14)))
	assert.True(t, periods[2].Start.Equal(track.NewDay(2025, time.March, 15)))
	assert.True(t, periods[2].End.Equal(track.NewDay(2025, time.April, 14)))
}

func TestPeriodsInRange_CustomInterval(t *testing.T) {
	s := track.PaySchedule{
		ID:         "sched-c",
		JobID:      "job-1",
		Frequency:  track.FreqCustom,
		StartDate:  track.NewDay(2025, time.January, 1),
		CustomDays: 10,
		Active:     true,
	}

	periods, err := track.PeriodsInRange(s,
		track.NewDay(2025, time.January, 1), track.NewDay(2025, time.January, 31))
	require.NoError(t, err)
	require.Len(t, periods, 4)
	assert.True(t, periods[0].End.Equal(track.NewDay(2025, time.January, 10)))
	assert.True(t, periods[3].Start.Equal(track.NewDay(2025, time.January, 31)))
}

func TestPeriodsInRange_InvalidInputs(t *testing.T) {
	bad := biweeklySchedule()
	bad.Frequency = track.FreqCustom
	bad.CustomDays = 0
	_, err := track.PeriodsInRange(bad, track.NewDay(2025, time.January, 1), track.NewDay(2025, time.June, 1))
	assert.ErrorIs(t, err, track.ErrInvalidInterval)

	_, err = track.PeriodsInRange(biweeklySchedule(),
		track.NewDay(2025, time.June, 1), track.NewDay(2025, time.January, 1))
	assert.ErrorIs(t, err, track.ErrInvalidPeriodRange)
}

func TestPeriodsInRange_CustomPayDatePolicy(t *testing.T) {
	// Paid three days after the period closes.
	policy := func(_, end track.Day) track.Day { return end.AddDays(3) }

	periods, err := track.PeriodsInRangeWithPolicy(biweeklySchedule(),
		track.NewDay(2025, time.January, 1), track.NewDay(2025, time.January, 31), policy)
	require.NoError(t, err)
	require.NotEmpty(t, periods)
	for _, p := range periods {
		assert.True(t, p.PayDate.Equal(p.End.AddDays(3)))
	}
}

func TestPeriodsInRange_EmptyWhenNoneStartInRange(t *testing.T) {
	// Monthly anchored on the 15th, queried over the first week of a month.
	s := track.PaySchedule{
		ID:        "sched-m",
		JobID:     "job-1",
		Frequency: track.FreqMonthly,
		StartDate: track.NewDay(2025, time.January, 15),
		Active:    true,
	}
	periods, err := track.PeriodsInRange(s,
		track.NewDay(2025, time.March, 1), track.NewDay(2025, time.March, 7))
	require.NoError(t, err)
	assert.Empty(t, periods)
}
