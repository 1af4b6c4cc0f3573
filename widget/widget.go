/*
Package widget is the read-only reporting surface.

It answers the handful of glanceable questions a home-screen widget or
external snapshot view needs - today's and this week's numbers, today's
shifts, the next shift coming up - from its own independently loaded
snapshot of the persisted store. It never shares live memory with the
tracker: Load pulls fresh collections every time, so a widget process
over the same database file stays consistent with whatever the tracker
last wrote through.
*/
package widget

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tomsp05/worktracker/track"
)

// Snapshot is one self-contained evaluation of the widget queries.
type Snapshot struct {
	GeneratedAt time.Time `json:"generatedAt"`

	TodayHours    decimal.Decimal `json:"todayHours"`
	TodayEarnings decimal.Decimal `json:"todayEarnings"`
	WeekHours     decimal.Decimal `json:"weekHours"`
	WeekEarnings  decimal.Decimal `json:"weekEarnings"`
	MonthHours    decimal.Decimal `json:"monthHours"`
	MonthEarnings decimal.Decimal `json:"monthEarnings"`

	TodayShifts []track.WorkShift `json:"todayShifts"`
	NextShift   *track.WorkShift  `json:"nextShift,omitempty"`
}

// Load reads jobs and shifts from the store and computes the snapshot
// as of now.
func Load(ctx context.Context, store track.Store, now time.Time) (Snapshot, error) {
	jobs, err := store.LoadJobs(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	shifts, err := store.LoadShifts(ctx)
	if err != nil {
		return Snapshot{}, err
	}

	idx := track.NewJobIndex(jobs)
	day := track.SummarizeWindow(shifts, idx, track.WindowDay, 0, now)
	week := track.SummarizeWindow(shifts, idx, track.WindowWeek, 0, now)
	month := track.SummarizeWindow(shifts, idx, track.WindowMonth, 0, now)

	snap := Snapshot{
		GeneratedAt:   now,
		TodayHours:    day.Hours,
		TodayEarnings: day.Earnings,
		WeekHours:     week.Hours,
		WeekEarnings:  week.Earnings,
		MonthHours:    month.Hours,
		MonthEarnings: month.Earnings,
	}

	today := track.DayOf(now)
	for _, s := range shifts {
		if s.Date.Equal(today) {
			snap.TodayShifts = append(snap.TodayShifts, s)
		}
	}

	var next *track.WorkShift
	for i := range shifts {
		s := shifts[i]
		if !s.Start.After(now) {
			continue
		}
		if next == nil || s.Start.Before(next.Start) {
			next = &shifts[i]
		}
	}
	if next != nil {
		n := *next
		snap.NextShift = &n
	}
	return snap, nil
}
