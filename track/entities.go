/*
entities.go - The entity model: Job, WorkShift, PresetShift, PaySchedule,
Payslip, PayPeriod.

OWNERSHIP:
  Jobs own their preset templates. WorkShifts reference their Job by id
  only; deleting a Job while shifts still reference it deactivates the
  job rather than removing it. A recurring series is linked through
  ParentID back-references resolved via an index over the flat shift
  collection - there are no object pointers between shifts.

INVARIANTS:
  - WorkShift duration (end - start - break) must be positive at creation
  - End at or before Start is resolved by rolling End forward one day,
    never surfaced as an error
  - Only a series root (ParentID == nil, Recurring == true) drives
    series-wide edits
  - Payslip net ~= gross - deductions is a soft invariant: flagged via
    NetConsistent, never enforced
*/
package track

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// JOB
// =============================================================================

type Job struct {
	ID         JobID           `json:"id"`
	Name       string          `json:"name"`
	HourlyRate decimal.Decimal `json:"hourlyRate"`
	Color      string          `json:"color"`
	Active     bool            `json:"isActive"`
	Presets    []PresetShift   `json:"presetShifts,omitempty"`
}

// Validate checks the creation invariants for a job.
func (j Job) Validate() error {
	if j.Name == "" {
		return &ValidationError{Field: "name", Reason: "job name is required", Err: ErrInvalidInput}
	}
	if !j.HourlyRate.IsPositive() {
		return &ValidationError{Field: "hourlyRate", Reason: "hourly rate must be positive", Err: ErrInvalidRate}
	}
	return nil
}

// Preset returns the named preset template, if present.
func (j Job) Preset(id string) (PresetShift, bool) {
	for _, p := range j.Presets {
		if p.ID == id {
			return p, true
		}
	}
	return PresetShift{}, false
}

// =============================================================================
// CLOCK TIME - Time of day for preset templates
// =============================================================================

type ClockTime struct {
	Hour   int
	Minute int
}

const clockLayout = "15:04"

// At anchors the time-of-day on a calendar date.
func (c ClockTime) At(d Day) time.Time {
	return time.Date(d.Time.Year(), d.Time.Month(), d.Time.Day(), c.Hour, c.Minute, 0, 0, time.UTC)
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

func (c ClockTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *ClockTime) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return err
	}
	c.Hour, c.Minute = t.Hour(), t.Minute()
	return nil
}

// =============================================================================
// PRESET SHIFT - A template, not a persisted occurrence
// =============================================================================

type PresetShift struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Start      ClockTime       `json:"startTime"`
	End        ClockTime       `json:"endTime"`
	BreakHours decimal.Decimal `json:"breakHours"`
}

// Materialize produces an unsaved shift for the given job and date.
// A template whose end is at or before its start spans midnight; the
// end rolls forward to the next day.
func (p PresetShift) Materialize(jobID JobID, date Day) WorkShift {
	s := WorkShift{
		JobID:      jobID,
		Date:       date,
		Start:      p.Start.At(date),
		End:        p.End.At(date),
		BreakHours: p.BreakHours,
		Type:       ShiftRegular,
		Recurrence: RecurNone,
	}
	s.NormalizeTimes()
	return s
}

// =============================================================================
// WORK SHIFT
// =============================================================================

type WorkShift struct {
	ID            ShiftID            `json:"id"`
	JobID         JobID              `json:"jobId"`
	Date          Day                `json:"date"`
	Start         time.Time          `json:"startTime"`
	End           time.Time          `json:"endTime"`
	BreakHours    decimal.Decimal    `json:"breakHours"`
	Type          ShiftType          `json:"shiftType"`
	Notes         string             `json:"notes,omitempty"`
	Paid          bool               `json:"isPaid"`
	RateOverride  *decimal.Decimal   `json:"hourlyRateOverride,omitempty"`
	Recurring     bool               `json:"isRecurring"`
	Recurrence    RecurrenceInterval `json:"recurrenceInterval"`
	RecurrenceEnd *Day               `json:"recurrenceEndDate,omitempty"`
	ParentID      *ShiftID           `json:"parentShiftId,omitempty"`
}

// NormalizeTimes resolves an end time at or before the start time by
// advancing it one day (an overnight shift), deterministically.
func (s *WorkShift) NormalizeTimes() {
	if !s.End.After(s.Start) {
		s.End = s.End.AddDate(0, 0, 1)
	}
}

// SpanHours is the raw worked span (end - start) before the break is taken
// out. Used as the denominator for proportional bucket attribution.
func (s WorkShift) SpanHours() decimal.Decimal {
	minutes := s.End.Sub(s.Start).Minutes()
	return decimal.NewFromFloat(minutes).Div(decimal.NewFromInt(60))
}

// DurationHours is the payable duration: (end - start) - break.
func (s WorkShift) DurationHours() decimal.Decimal {
	return s.SpanHours().Sub(s.BreakHours)
}

// IsSeriesRoot reports whether this shift drives series-wide edits.
func (s WorkShift) IsSeriesRoot() bool {
	return s.ParentID == nil && s.Recurring
}

// Validate checks the creation invariants. Times must already be
// normalized; duration must come out positive.
func (s WorkShift) Validate() error {
	if s.JobID == "" {
		return &ValidationError{Field: "jobId", Reason: "no job selected", Err: ErrNoJob}
	}
	if !s.DurationHours().IsPositive() {
		return &ValidationError{Field: "duration", Reason: "shift duration must be positive after breaks", Err: ErrInvalidDuration}
	}
	if !s.Type.Valid() {
		return &ValidationError{Field: "shiftType", Reason: fmt.Sprintf("unknown shift type %q", s.Type), Err: ErrInvalidInput}
	}
	if s.RateOverride != nil && !s.RateOverride.IsPositive() {
		return &ValidationError{Field: "hourlyRateOverride", Reason: "override rate must be positive when set", Err: ErrInvalidRate}
	}
	if !s.Recurrence.Valid() {
		return &ValidationError{Field: "recurrenceInterval", Reason: fmt.Sprintf("unknown interval %q", s.Recurrence), Err: ErrInvalidInput}
	}
	return nil
}

// =============================================================================
// PAY SCHEDULE & PAY PERIOD
// =============================================================================

type PayFrequency string

const (
	FreqWeekly   PayFrequency = "weekly"
	FreqBiweekly PayFrequency = "biweekly"
	FreqMonthly  PayFrequency = "monthly"
	FreqCustom   PayFrequency = "custom"
)

func (f PayFrequency) Valid() bool {
	switch f {
	case FreqWeekly, FreqBiweekly, FreqMonthly, FreqCustom:
		return true
	}
	return false
}

type PaySchedule struct {
	ID         ScheduleID   `json:"id"`
	JobID      JobID        `json:"jobId"`
	Frequency  PayFrequency `json:"frequency"`
	StartDate  Day          `json:"startDate"`
	CustomDays int          `json:"customIntervalDays,omitempty"`
	Active     bool         `json:"isActive"`
}

func (s PaySchedule) Validate() error {
	if s.JobID == "" {
		return &ValidationError{Field: "jobId", Reason: "no job selected", Err: ErrNoJob}
	}
	if !s.Frequency.Valid() {
		return &ValidationError{Field: "frequency", Reason: fmt.Sprintf("unknown frequency %q", s.Frequency), Err: ErrInvalidInput}
	}
	if s.Frequency == FreqCustom && s.CustomDays < 1 {
		return &ValidationError{Field: "customIntervalDays", Reason: "custom interval must be at least one day", Err: ErrInvalidInterval}
	}
	if s.StartDate.IsZero() {
		return &ValidationError{Field: "startDate", Reason: "start date is required", Err: ErrInvalidInput}
	}
	return nil
}

// PayPeriod is a derived value: generated on demand, never persisted.
type PayPeriod struct {
	Start   Day `json:"start"`
	End     Day `json:"end"`
	PayDate Day `json:"payDate"`
}

func (p PayPeriod) Range() DateRange {
	return DateRange{Start: p.Start, End: p.End}
}

// =============================================================================
// PAYSLIP
// =============================================================================

type Payslip struct {
	ID          PayslipID `json:"id"`
	JobID       JobID     `json:"jobId"`
	PayDate     Day       `json:"payDate"`
	PeriodStart Day       `json:"periodStart"`
	PeriodEnd   Day       `json:"periodEnd"`

	RegularHours  decimal.Decimal `json:"regularHours"`
	OvertimeHours decimal.Decimal `json:"overtimeHours"`
	HolidayHours  decimal.Decimal `json:"holidayHours"`
	RegularPay    decimal.Decimal `json:"regularPay"`
	OvertimePay   decimal.Decimal `json:"overtimePay"`
	HolidayPay    decimal.Decimal `json:"holidayPay"`

	Bonuses       decimal.Decimal `json:"bonuses"`
	OtherEarnings decimal.Decimal `json:"otherEarnings"`

	Tax             decimal.Decimal `json:"taxDeduction"`
	Insurance       decimal.Decimal `json:"insuranceDeduction"`
	Retirement      decimal.Decimal `json:"retirementDeduction"`
	OtherDeductions decimal.Decimal `json:"otherDeductions"`

	NetPay decimal.Decimal `json:"netPay"`
	Notes  string          `json:"notes,omitempty"`
}

func (p Payslip) Period() DateRange {
	return DateRange{Start: p.PeriodStart, End: p.PeriodEnd}
}

// TypedPay is the pay earned from worked hours, the comparable basis
// against logged shifts. Bonuses and other earnings sit on top.
func (p Payslip) TypedPay() decimal.Decimal {
	return p.RegularPay.Add(p.OvertimePay).Add(p.HolidayPay)
}

func (p Payslip) TotalHours() decimal.Decimal {
	return p.RegularHours.Add(p.OvertimeHours).Add(p.HolidayHours)
}

func (p Payslip) GrossPay() decimal.Decimal {
	return p.TypedPay().Add(p.Bonuses).Add(p.OtherEarnings)
}

func (p Payslip) TotalDeductions() decimal.Decimal {
	return p.Tax.Add(p.Insurance).Add(p.Retirement).Add(p.OtherDeductions)
}

// netTolerance allows for rounding differences on real payslips.
var netTolerance = decimal.RequireFromString("0.01")

// NetConsistent flags whether netPay ~= grossPay - totalDeductions.
// A false result is informational only, never an error.
func (p Payslip) NetConsistent() bool {
	expected := p.GrossPay().Sub(p.TotalDeductions())
	return p.NetPay.Sub(expected).Abs().LessThanOrEqual(netTolerance)
}

func (p Payslip) Validate() error {
	if p.JobID == "" {
		return &ValidationError{Field: "jobId", Reason: "no job selected", Err: ErrNoJob}
	}
	if p.PeriodEnd.Before(p.PeriodStart) {
		return &ValidationError{Field: "period", Reason: "period end before period start", Err: ErrInvalidPeriodRange}
	}
	return nil
}
