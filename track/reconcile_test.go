package track_test

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomsp05/worktracker/track"
)

// payslipFor builds a payslip matching two regular 7.5h shifts at 12.50/h.
func payslipFor() track.Payslip {
	return track.Payslip{
		ID:          "slip-1",
		JobID:       "job-1",
		PayDate:     track.NewDay(2025, time.January, 31),
		PeriodStart: track.NewDay(2025, time.January, 6),
		PeriodEnd:   track.NewDay(2025, time.January, 19),

		RegularHours: dec("15"),
		RegularPay:   dec("187.50"),
		NetPay:       dec("187.50"),
	}
}

func periodShifts() []track.WorkShift {
	a := baseShift()
	a.Recurring = false
	a.Recurrence = track.RecurNone
	b := a
	b.ID = "second"
	b.Date = a.Date.AddDays(7)
	b.Start = a.Start.AddDate(0, 0, 7)
	b.End = a.End.AddDate(0, 0, 7)
	return []track.WorkShift{a, b}
}

func TestCompare_ExactMatchScoresHundred(t *testing.T) {
	c := track.Compare(payslipFor(), periodShifts(), dec("12.50"))

	assert.True(t, c.ExpectedHours.Equal(dec("15")))
	assert.True(t, c.ExpectedPay.Equal(dec("187.50")))
	assert.True(t, c.HoursDiff.IsZero())
	assert.True(t, c.PayDiff.IsZero())
	assert.True(t, c.HoursAccuracy.Equal(dec("100")))
	assert.True(t, c.PayAccuracy.Equal(dec("100")))
	assert.Equal(t, 2, c.Shifts)

	require.NotEmpty(t, c.Insights)
	assert.Contains(t, c.Insights[0], "matches")
}

func TestCompare_AccuracyFallsWithDiscrepancy(t *testing.T) {
	shifts := periodShifts()
	exact := track.Compare(payslipFor(), shifts, dec("12.50"))

	under := payslipFor()
	under.RegularPay = dec("170")
	small := track.Compare(under, shifts, dec("12.50"))

	worse := payslipFor()
	worse.RegularPay = dec("100")
	big := track.Compare(worse, shifts, dec("12.50"))

	assert.True(t, small.PayAccuracy.LessThan(exact.PayAccuracy))
	assert.True(t, big.PayAccuracy.LessThan(small.PayAccuracy))
	assert.True(t, big.PayAccuracy.GreaterThanOrEqual(decimal.Zero))

	assert.True(t, small.PayDiff.IsNegative(), "signed diff is actual minus expected")
	assert.Contains(t, small.Insights[0], "less")
}

func TestCompare_NoShiftsAgainstPaidSlip(t *testing.T) {
	// Expected is zero; any actual pay scores zero, not an error.
	c := track.Compare(payslipFor(), nil, dec("12.50"))

	assert.True(t, c.ExpectedPay.IsZero())
	assert.True(t, c.PayAccuracy.IsZero())
	assert.True(t, c.PayDiff.Equal(dec("187.50")))
	assert.Contains(t, c.Insights[0], "more")
}

func TestCompare_GroupsByShiftType(t *testing.T) {
	shifts := periodShifts()
	shifts[1].Type = track.ShiftOvertime

	slip := payslipFor()
	slip.RegularHours = dec("7.5")
	slip.RegularPay = dec("93.75")
	slip.OvertimeHours = dec("7.5")
	slip.OvertimePay = dec("140.625")
	slip.NetPay = dec("234.375")

	c := track.Compare(slip, shifts, dec("12.50"))

	assert.True(t, c.Expected[track.ShiftRegular].Hours.Equal(dec("7.5")))
	assert.True(t, c.Expected[track.ShiftRegular].Pay.Equal(dec("93.75")))
	assert.True(t, c.Expected[track.ShiftOvertime].Pay.Equal(dec("140.625")))
	assert.True(t, c.Expected[track.ShiftHoliday].Pay.IsZero())
	assert.True(t, c.PayDiff.IsZero())
	assert.True(t, c.PayAccuracy.Equal(dec("100")))
}

func TestCompare_RateOverrideBeatsJobRate(t *testing.T) {
	shifts := periodShifts()
	override := dec("20")
	shifts[0].RateOverride = &override

	c := track.Compare(payslipFor(), shifts, dec("12.50"))
	// 7.5 x 20 + 7.5 x 12.50 = 243.75
	assert.True(t, c.ExpectedPay.Equal(dec("243.75")))
}

func TestCompare_BonusesStayOutOfComparableBasis(t *testing.T) {
	slip := payslipFor()
	slip.Bonuses = dec("50")
	slip.NetPay = dec("237.50")

	c := track.Compare(slip, periodShifts(), dec("12.50"))

	// Typed pay unchanged, so the comparison still matches exactly.
	assert.True(t, c.PayDiff.IsZero())
	assert.True(t, c.PayAccuracy.Equal(dec("100")))

	var mentioned bool
	for _, line := range c.Insights {
		if strings.Contains(line, "bonuses") {
			mentioned = true
		}
	}
	assert.True(t, mentioned, "bonuses should be surfaced in insights: %v", c.Insights)
}

func TestCompare_FlagsNetInconsistency(t *testing.T) {
	slip := payslipFor()
	slip.Tax = dec("30")
	// NetPay left at 187.50, but gross minus deductions is 157.50.

	c := track.Compare(slip, periodShifts(), dec("12.50"))
	assert.False(t, slip.NetConsistent())

	var flagged bool
	for _, line := range c.Insights {
		if strings.Contains(line, "reconcile") {
			flagged = true
		}
	}
	assert.True(t, flagged, "insights: %v", c.Insights)
}
