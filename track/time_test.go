package track_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomsp05/worktracker/track"
)

// =============================================================================
// DAY
// =============================================================================

func TestDay_JSONRoundTrip(t *testing.T) {
	d := track.NewDay(2025, time.January, 6)

	raw, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2025-01-06"`, string(raw))

	var back track.Day
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.True(t, back.Equal(d))
}

func TestParseDay(t *testing.T) {
	d, err := track.ParseDay("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, time.February, d.Time.Month())
	assert.Equal(t, 29, d.Time.Day())

	_, err = track.ParseDay("not-a-date")
	assert.Error(t, err)

	_, err = track.ParseDay("2023-02-29")
	assert.Error(t, err, "Feb 29 outside a leap year")
}

func TestDay_AddMonthsNormalizes(t *testing.T) {
	// Jan 31 + 1 month lands on Mar 3 (2025 is not a leap year).
	got := track.NewDay(2025, time.January, 31).AddMonths(1)
	assert.True(t, got.Equal(track.NewDay(2025, time.March, 3)))

	// In a leap year the same hop lands on Mar 2.
	got = track.NewDay(2024, time.January, 31).AddMonths(1)
	assert.True(t, got.Equal(track.NewDay(2024, time.March, 2)))
}

func TestDaysBetween(t *testing.T) {
	a := track.NewDay(2025, time.January, 6)
	b := track.NewDay(2025, time.January, 20)
	assert.Equal(t, 14, track.DaysBetween(a, b))
	assert.Equal(t, -14, track.DaysBetween(b, a))
	assert.Equal(t, 0, track.DaysBetween(a, a))
}

func TestDateRange(t *testing.T) {
	r := track.DateRange{
		Start: track.NewDay(2025, time.February, 1),
		End:   track.NewDay(2025, time.February, 28),
	}
	assert.True(t, r.Valid())
	assert.True(t, r.Contains(track.NewDay(2025, time.February, 1)), "start inclusive")
	assert.True(t, r.Contains(track.NewDay(2025, time.February, 28)), "end inclusive")
	assert.False(t, r.Contains(track.NewDay(2025, time.March, 1)))

	inverted := track.DateRange{Start: r.End, End: r.Start}
	assert.False(t, inverted.Valid())

	march := track.DateRange{
		Start: track.NewDay(2025, time.February, 28),
		End:   track.NewDay(2025, time.March, 31),
	}
	assert.True(t, r.Overlaps(march), "shared boundary day overlaps")
}

// =============================================================================
// WINDOW RESOLUTION
// =============================================================================

func TestResolveWindow_WeekStartsMonday(t *testing.T) {
	// Wednesday 2025-01-08.
	ref := time.Date(2025, time.January, 8, 14, 45, 0, 0, time.UTC)

	start, end := track.ResolveWindow(track.WindowWeek, 0, ref)
	assert.Equal(t, time.Date(2025, time.January, 6, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, time.January, 13, 0, 0, 0, 0, time.UTC), end)

	// A Sunday belongs to the week of the preceding Monday.
	sunday := time.Date(2025, time.January, 12, 23, 0, 0, 0, time.UTC)
	start, _ = track.ResolveWindow(track.WindowWeek, 0, sunday)
	assert.Equal(t, time.Date(2025, time.January, 6, 0, 0, 0, 0, time.UTC), start)

	// A Monday starts its own week.
	monday := time.Date(2025, time.January, 6, 0, 0, 0, 0, time.UTC)
	start, _ = track.ResolveWindow(track.WindowWeek, 0, monday)
	assert.Equal(t, monday, start)
}

func TestResolveWindow_Offsets(t *testing.T) {
	ref := time.Date(2025, time.January, 8, 9, 0, 0, 0, time.UTC)

	start, end := track.ResolveWindow(track.WindowWeek, -1, ref)
	assert.Equal(t, time.Date(2024, time.December, 30, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, time.January, 6, 0, 0, 0, 0, time.UTC), end)

	start, end = track.ResolveWindow(track.WindowDay, 1, ref)
	assert.Equal(t, time.Date(2025, time.January, 9, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC), end)
}

func TestResolveWindow_MonthHandlesLeapFebruary(t *testing.T) {
	ref := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

	start, end := track.ResolveWindow(track.WindowMonth, -1, ref)
	assert.Equal(t, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), end)
	assert.Equal(t, 29.0, end.Sub(start).Hours()/24)
}

func TestResolveWindow_Year(t *testing.T) {
	ref := time.Date(2025, time.July, 4, 0, 0, 0, 0, time.UTC)
	start, end := track.ResolveWindow(track.WindowYear, 0, ref)
	assert.Equal(t, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), end)
}

func TestResolveWindow_AdjacentWindowsTile(t *testing.T) {
	ref := time.Date(2025, time.January, 8, 9, 0, 0, 0, time.UTC)
	for _, w := range []track.Window{track.WindowDay, track.WindowWeek, track.WindowMonth, track.WindowYear} {
		_, prevEnd := track.ResolveWindow(w, -1, ref)
		curStart, _ := track.ResolveWindow(w, 0, ref)
		assert.Equal(t, prevEnd, curStart, "window %s", w)
	}
}

func TestWindow_Valid(t *testing.T) {
	assert.True(t, track.WindowWeek.Valid())
	assert.False(t, track.Window("fortnight").Valid())
}
