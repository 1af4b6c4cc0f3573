/*
demo.go - Demo data seeding

Loads a small, realistic data set through the normal mutation path so
every invariant (eager series expansion, write-through, one active
schedule per job) holds for the seeded data too.
*/
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tomsp05/worktracker/track"
)

// SeedDemo loads the demo data set. Safe to call more than once; each
// call adds a fresh copy, which is fine for a dev database.
func (h *Handler) SeedDemo(w http.ResponseWriter, r *http.Request) {
	if err := h.seedDemo(r.Context()); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) seedDemo(ctx context.Context) error {
	rate := decimal.RequireFromString("12.50")
	cafe, err := h.Tracker.AddJob(ctx, track.Job{
		Name:       "Riverside Cafe",
		HourlyRate: rate,
		Color:      "#2f9e44",
		Presets: []track.PresetShift{{
			Name:       "Day shift",
			Start:      track.ClockTime{Hour: 9},
			End:        track.ClockTime{Hour: 17},
			BreakHours: decimal.RequireFromString("0.5"),
		}},
	})
	if err != nil {
		return err
	}

	// A weekly series of four Monday day-shifts.
	monday := nextWeekday(timeNow(), time.Monday)
	end := track.DayOf(monday).AddDays(21)
	_, err = h.Tracker.AddShift(ctx, track.WorkShift{
		JobID:         cafe.ID,
		Date:          track.DayOf(monday),
		Start:         time.Date(monday.Year(), monday.Month(), monday.Day(), 9, 0, 0, 0, time.UTC),
		End:           time.Date(monday.Year(), monday.Month(), monday.Day(), 17, 0, 0, 0, time.UTC),
		BreakHours:    decimal.RequireFromString("0.5"),
		Type:          track.ShiftRegular,
		Recurring:     true,
		Recurrence:    track.RecurWeekly,
		RecurrenceEnd: &end,
	})
	if err != nil {
		return err
	}

	_, err = h.Tracker.AddSchedule(ctx, track.PaySchedule{
		JobID:     cafe.ID,
		Frequency: track.FreqBiweekly,
		StartDate: track.DayOf(monday),
	})
	return err
}

func nextWeekday(from time.Time, wd time.Weekday) time.Time {
	d := from
	for d.Weekday() != wd {
		d = d.AddDate(0, 0, 1)
	}
	return d
}
