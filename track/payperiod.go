/*
payperiod.go - Pay period generation from a schedule

Periods step from the schedule's anchor start date: weekly and biweekly
are fixed 7/14-day blocks, custom is a caller-supplied N-day block, and
monthly runs anchor-day to anchor-day by calendar month. A period is
returned when its start date falls inside the queried range. Generation
is deterministic and periods from one schedule never overlap.

The pay date defaults to the period's end date. That is an unconfirmed
convention, so it lives behind PayDatePolicy rather than being baked in.
*/
package track

// PayDatePolicy decides a period's pay date from its boundaries.
type PayDatePolicy func(start, end Day) Day

// PayOnPeriodEnd is the default policy: paid on the period's last day.
func PayOnPeriodEnd(_, end Day) Day { return end }

// PeriodsInRange enumerates the schedule's periods overlapping the
// inclusive [rangeStart, rangeEnd] using the default pay-date policy.
func PeriodsInRange(s PaySchedule, rangeStart, rangeEnd Day) ([]PayPeriod, error) {
	return PeriodsInRangeWithPolicy(s, rangeStart, rangeEnd, PayOnPeriodEnd)
}

// PeriodsInRangeWithPolicy is PeriodsInRange with a caller-supplied
// pay-date policy.
func PeriodsInRangeWithPolicy(s PaySchedule, rangeStart, rangeEnd Day, payDate PayDatePolicy) ([]PayPeriod, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if rangeEnd.Before(rangeStart) {
		return nil, ErrInvalidPeriodRange
	}
	if payDate == nil {
		payDate = PayOnPeriodEnd
	}

	if s.Frequency == FreqMonthly {
		return monthlyPeriods(s, rangeStart, rangeEnd, payDate), nil
	}

	length := periodDays(s)
	// Fast-forward near the range start so ancient anchor dates don't
	// cost a long walk.
	cur := s.StartDate
	if gap := DaysBetween(cur, rangeStart); gap > length {
		cur = cur.AddDays((gap / length) * length)
	}

	var periods []PayPeriod
	for cur.BeforeOrEqual(rangeEnd) {
		if cur.AfterOrEqual(rangeStart) {
			end := cur.AddDays(length - 1)
			periods = append(periods, PayPeriod{Start: cur, End: end, PayDate: payDate(cur, end)})
		}
		cur = cur.AddDays(length)
	}
	return periods, nil
}

func periodDays(s PaySchedule) int {
	switch s.Frequency {
	case FreqWeekly:
		return 7
	case FreqBiweekly:
		return 14
	default:
		return s.CustomDays
	}
}

// monthlyPeriods walks calendar months from the anchor date. Each period
// runs from one anchor to the day before the next, so month lengths vary
// the way the calendar does.
func monthlyPeriods(s PaySchedule, rangeStart, rangeEnd Day, payDate PayDatePolicy) []PayPeriod {
	var periods []PayPeriod
	for n := 0; ; n++ {
		start := s.StartDate.AddMonths(n)
		if start.After(rangeEnd) {
			break
		}
		if start.Before(rangeStart) {
			continue
		}
		end := s.StartDate.AddMonths(n + 1).AddDays(-1)
		periods = append(periods, PayPeriod{Start: start, End: end, PayDate: payDate(start, end)})
	}
	return periods
}
