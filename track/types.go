/*
Package track provides the core work-hours and earnings engine.

PURPOSE:
  This package contains the pure domain types and calculations for a
  personal work tracker: jobs, shifts, recurring series, pay schedules,
  payslips, and the arithmetic that turns logged hours into money.

KEY CONCEPTS IN THIS FILE (types.go):
  - JobID / ShiftID / ScheduleID / PayslipID: type-safe identifiers
  - ShiftType: regular / overtime / holiday, each with a fixed pay multiplier
  - RecurrenceInterval: how a shift series repeats (none/daily/weekly/...)
  - Settings: the single scalar settings value held alongside collections

DESIGN PRINCIPLES:
  1. Precision: all money and fractional-hour math uses decimal.Decimal
  2. Purity: every calculation is a function over in-memory collections;
     repeated invocation after any state change yields fresh results
  3. Closed variants: shift types and intervals are fixed enumerations
     backed by pure lookup tables, no dynamic dispatch
  4. No panics: orphan references and malformed input degrade to zero
     values or structured rejections, never crashes

SEE ALSO:
  - entities.go: Job, WorkShift, PresetShift, PaySchedule, Payslip
  - recur.go:    series expansion and cascading edit/delete
  - earnings.go: rate resolution, multipliers, aggregation
*/
package track

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

type JobID string
type ShiftID string
type ScheduleID string
type PayslipID string

// =============================================================================
// SHIFT TYPE - Closed variant with a fixed pay multiplier
// =============================================================================

type ShiftType string

const (
	ShiftRegular  ShiftType = "regular"
	ShiftOvertime ShiftType = "overtime"
	ShiftHoliday  ShiftType = "holiday"
)

// multipliers is the fixed rate-multiplier table. Not per-job configurable.
var multipliers = map[ShiftType]decimal.Decimal{
	ShiftRegular:  decimal.NewFromInt(1),
	ShiftOvertime: decimal.RequireFromString("1.5"),
	ShiftHoliday:  decimal.NewFromInt(2),
}

// Multiplier returns the pay multiplier for the shift type.
// Unknown types fall back to the regular multiplier.
func (t ShiftType) Multiplier() decimal.Decimal {
	if m, ok := multipliers[t]; ok {
		return m
	}
	return multipliers[ShiftRegular]
}

// Valid reports whether t is one of the known shift types.
func (t ShiftType) Valid() bool {
	_, ok := multipliers[t]
	return ok
}

// ShiftTypes lists all known types in presentation order.
func ShiftTypes() []ShiftType {
	return []ShiftType{ShiftRegular, ShiftOvertime, ShiftHoliday}
}

// =============================================================================
// RECURRENCE INTERVAL - How a shift series repeats
// =============================================================================

type RecurrenceInterval string

const (
	RecurNone     RecurrenceInterval = "none"
	RecurDaily    RecurrenceInterval = "daily"
	RecurWeekly   RecurrenceInterval = "weekly"
	RecurBiweekly RecurrenceInterval = "biweekly"
	RecurMonthly  RecurrenceInterval = "monthly"
)

// stepDays maps fixed-length intervals to their day step.
// Monthly is calendar-correct and handled separately.
var stepDays = map[RecurrenceInterval]int{
	RecurDaily:    1,
	RecurWeekly:   7,
	RecurBiweekly: 14,
}

// Valid reports whether i is a known interval.
func (i RecurrenceInterval) Valid() bool {
	switch i {
	case RecurNone, RecurDaily, RecurWeekly, RecurBiweekly, RecurMonthly:
		return true
	}
	return false
}

// =============================================================================
// SETTINGS - Scalar settings value persisted alongside collections
// =============================================================================

type Settings struct {
	Currency string `json:"currency"`
	Version  int    `json:"version"`
}

// DefaultSettings is used when the persisted settings value is absent
// or fails to decode.
func DefaultSettings() Settings {
	return Settings{Currency: "GBP", Version: 1}
}
