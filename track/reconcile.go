/*
reconcile.go - Payslip reconciliation against logged shifts

Compares what a payslip says was paid with what the logged shifts say
should have been paid, per shift type and in total. The comparable basis
on the payslip side is its typed pay (regular + overtime + holiday);
bonuses and other earnings have no counterpart in logged shifts and are
only mentioned in the insight text.

Accuracy is 100 x (1 - |actual - expected| / max(expected, epsilon)),
clamped to [0, 100]. The epsilon keeps a zero expectation from dividing
by zero: an actual figure against a zero expectation scores zero, and an
exact match scores one hundred.
*/
package track

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// accuracyEpsilon guards the divide when the expected figure is zero.
var accuracyEpsilon = decimal.RequireFromString("0.01")

var hundred = decimal.NewFromInt(100)

// TypeTotals is the expected hours and pay for one shift type.
type TypeTotals struct {
	Hours decimal.Decimal `json:"hours"`
	Pay   decimal.Decimal `json:"pay"`
}

// PayComparison is the ephemeral result of reconciling one payslip.
type PayComparison struct {
	Payslip Payslip         `json:"payslip"`
	JobRate decimal.Decimal `json:"jobRate"`
	Shifts  int             `json:"shiftCount"`

	Expected map[ShiftType]TypeTotals `json:"expectedByType"`

	ExpectedHours decimal.Decimal `json:"expectedHours"`
	ExpectedPay   decimal.Decimal `json:"expectedPay"`
	ActualHours   decimal.Decimal `json:"actualHours"`
	ActualPay     decimal.Decimal `json:"actualPay"`

	// Signed actual - expected.
	HoursDiff decimal.Decimal `json:"hoursDifference"`
	PayDiff   decimal.Decimal `json:"payDifference"`

	// Percentages in [0, 100].
	HoursAccuracy decimal.Decimal `json:"hoursAccuracy"`
	PayAccuracy   decimal.Decimal `json:"payAccuracy"`

	Insights []string `json:"insights"`
}

// Compare reconciles a payslip against its matching shifts. The caller
// pre-filters: shifts with a date in the payslip's period and the same
// job. jobRate is the fallback when a shift carries no override.
func Compare(p Payslip, relevantShifts []WorkShift, jobRate decimal.Decimal) PayComparison {
	expected := make(map[ShiftType]TypeTotals, 3)
	for _, t := range ShiftTypes() {
		expected[t] = TypeTotals{Hours: decimal.Zero, Pay: decimal.Zero}
	}

	expectedHours := decimal.Zero
	expectedPay := decimal.Zero
	for _, s := range relevantShifts {
		rate := jobRate
		if s.RateOverride != nil {
			rate = *s.RateOverride
		}
		hours := s.DurationHours()
		pay := hours.Mul(rate).Mul(s.Type.Multiplier())

		tt := expected[s.Type]
		tt.Hours = tt.Hours.Add(hours)
		tt.Pay = tt.Pay.Add(pay)
		expected[s.Type] = tt

		expectedHours = expectedHours.Add(hours)
		expectedPay = expectedPay.Add(pay)
	}

	actualHours := p.TotalHours()
	actualPay := p.TypedPay()

	c := PayComparison{
		Payslip:       p,
		JobRate:       jobRate,
		Shifts:        len(relevantShifts),
		Expected:      expected,
		ExpectedHours: expectedHours,
		ExpectedPay:   expectedPay,
		ActualHours:   actualHours,
		ActualPay:     actualPay,
		HoursDiff:     actualHours.Sub(expectedHours),
		PayDiff:       actualPay.Sub(expectedPay),
		HoursAccuracy: accuracy(actualHours, expectedHours),
		PayAccuracy:   accuracy(actualPay, expectedPay),
	}
	c.Insights = insights(c)
	return c
}

// accuracy clamps 100 x (1 - |actual - expected| / max(expected, eps))
// to [0, 100].
func accuracy(actual, expected decimal.Decimal) decimal.Decimal {
	denom := expected
	if denom.LessThan(accuracyEpsilon) {
		denom = accuracyEpsilon
	}
	score := hundred.Mul(decimal.NewFromInt(1).Sub(actual.Sub(expected).Abs().Div(denom)))
	if score.IsNegative() {
		return decimal.Zero
	}
	if score.GreaterThan(hundred) {
		return hundred
	}
	return score
}

// insights turns the signed deltas into short human-readable lines.
func insights(c PayComparison) []string {
	var out []string

	switch {
	case c.PayDiff.IsZero() && c.HoursDiff.IsZero():
		out = append(out, "Payslip matches logged shifts exactly.")
	case c.PayDiff.IsPositive():
		out = append(out, fmt.Sprintf("Paid %s more than logged shifts suggest.", c.PayDiff.StringFixed(2)))
	case c.PayDiff.IsNegative():
		out = append(out, fmt.Sprintf("Paid %s less than logged shifts suggest.", c.PayDiff.Abs().StringFixed(2)))
	}

	if !c.HoursDiff.IsZero() {
		verb := "more"
		if c.HoursDiff.IsNegative() {
			verb = "fewer"
		}
		out = append(out, fmt.Sprintf("Payslip reports %s %s hours than logged (%s vs %s).",
			c.HoursDiff.Abs().StringFixed(2), verb, c.ActualHours.StringFixed(2), c.ExpectedHours.StringFixed(2)))
	}

	if c.Payslip.Bonuses.IsPositive() || c.Payslip.OtherEarnings.IsPositive() {
		extra := c.Payslip.Bonuses.Add(c.Payslip.OtherEarnings)
		out = append(out, fmt.Sprintf("Includes %s of bonuses/other earnings outside logged shifts.", extra.StringFixed(2)))
	}

	if !c.Payslip.NetConsistent() {
		out = append(out, "Net pay does not reconcile with gross minus deductions.")
	}
	return out
}
