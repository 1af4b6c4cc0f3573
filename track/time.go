package track

import (
	"encoding/json"
	"time"
)

// =============================================================================
// DAY - Calendar date with day granularity (host-calendar semantics, UTC)
// =============================================================================

// Day is a calendar date. Shifts are keyed by Day; their start/end remain
// full timestamps.
type Day struct {
	Time time.Time
}

const dayLayout = "2006-01-02"

func NewDay(year int, month time.Month, day int) Day {
	return Day{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DayOf truncates a timestamp to its calendar date.
func DayOf(t time.Time) Day {
	return NewDay(t.Year(), t.Month(), t.Day())
}

// ParseDay parses a "YYYY-MM-DD" string.
func ParseDay(s string) (Day, error) {
	t, err := time.Parse(dayLayout, s)
	if err != nil {
		return Day{}, err
	}
	return Day{Time: t.UTC()}, nil
}

// Comparison
func (d Day) Before(other Day) bool        { return d.Time.Before(other.Time) }
func (d Day) After(other Day) bool         { return d.Time.After(other.Time) }
func (d Day) Equal(other Day) bool         { return d.Time.Equal(other.Time) }
func (d Day) BeforeOrEqual(other Day) bool { return !d.After(other) }
func (d Day) AfterOrEqual(other Day) bool  { return !d.Before(other) }
func (d Day) IsZero() bool                 { return d.Time.IsZero() }

// Arithmetic. AddMonths is calendar-correct via time.AddDate, so
// Jan 31 + 1 month normalizes the way the host calendar does.
func (d Day) AddDays(n int) Day   { return Day{Time: d.Time.AddDate(0, 0, n)} }
func (d Day) AddMonths(n int) Day { return Day{Time: d.Time.AddDate(0, n, 0)} }
func (d Day) AddYears(n int) Day  { return Day{Time: d.Time.AddDate(n, 0, 0)} }

func (d Day) Weekday() time.Weekday { return d.Time.Weekday() }
func (d Day) String() string        { return d.Time.Format(dayLayout) }

// DaysBetween returns the whole days from a to b (negative if b is earlier).
func DaysBetween(a, b Day) int {
	return int(b.Time.Sub(a.Time).Hours() / 24)
}

// Day serializes as "YYYY-MM-DD" so persisted collections and exports stay
// human-readable and round-trippable.
func (d Day) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Day) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	t, err := time.Parse(dayLayout, s)
	if err != nil {
		return err
	}
	d.Time = t.UTC()
	return nil
}

// =============================================================================
// DATE RANGE - Inclusive [Start, End] range of days
// =============================================================================

type DateRange struct {
	Start Day `json:"start"`
	End   Day `json:"end"`
}

func (r DateRange) Contains(d Day) bool {
	return d.AfterOrEqual(r.Start) && d.BeforeOrEqual(r.End)
}

func (r DateRange) Overlaps(other DateRange) bool {
	return r.Start.BeforeOrEqual(other.End) && other.Start.BeforeOrEqual(r.End)
}

func (r DateRange) Valid() bool {
	return !r.Start.IsZero() && !r.End.IsZero() && r.Start.BeforeOrEqual(r.End)
}

func (r DateRange) String() string {
	return "[" + r.Start.String() + ", " + r.End.String() + "]"
}

// =============================================================================
// SEMANTIC WINDOWS - day/week/month/year with an integer offset
// =============================================================================

// Window names a calendar-aligned reporting span. Offset 0 is the current
// window, negative offsets reach into the past. Windows resolve to
// half-open [start, end) instants so adjacent windows never double count.
type Window string

const (
	WindowDay   Window = "day"
	WindowWeek  Window = "week"
	WindowMonth Window = "month"
	WindowYear  Window = "year"
)

func (w Window) Valid() bool {
	switch w {
	case WindowDay, WindowWeek, WindowMonth, WindowYear:
		return true
	}
	return false
}

// ResolveWindow maps (window, offset) to a concrete half-open [start, end)
// interval relative to ref. Weeks start on Monday. Month and year boundaries
// use calendar-correct arithmetic (variable month lengths, leap years).
func ResolveWindow(w Window, offset int, ref time.Time) (start, end time.Time) {
	day := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, ref.Location())

	switch w {
	case WindowDay:
		start = day.AddDate(0, 0, offset)
		end = start.AddDate(0, 0, 1)

	case WindowWeek:
		// Monday-start week. Go's Weekday has Sunday == 0.
		sinceMonday := (int(day.Weekday()) + 6) % 7
		monday := day.AddDate(0, 0, -sinceMonday)
		start = monday.AddDate(0, 0, offset*7)
		end = start.AddDate(0, 0, 7)

	case WindowMonth:
		first := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
		start = first.AddDate(0, offset, 0)
		end = start.AddDate(0, 1, 0)

	case WindowYear:
		first := time.Date(day.Year(), time.January, 1, 0, 0, 0, 0, day.Location())
		start = first.AddDate(offset, 0, 0)
		end = start.AddDate(1, 0, 0)

	default:
		// Unknown windows resolve to the reference day.
		start = day
		end = start.AddDate(0, 0, 1)
	}
	return start, end
}
