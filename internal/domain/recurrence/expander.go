package recurrence

import "time"

// Expand computes the ordered occurrence dates of rule anchored at anchor
// that fall within [windowStart, windowEnd], inclusive on both ends.
//
// The anchor date itself is occurrence #1. Occurrence k is the anchor
// advanced by (k-1) periods, computed from the anchor rather than from the
// previous occurrence so that month and year steps stay pinned to the
// anchor's day of month, clamping to the last valid day when the target
// month is shorter (Jan 31 -> Feb 28 -> Mar 31).
//
// The series stops at the rule's end condition (after-count limit or
// until-date) and at windowEnd. Occurrences before windowStart are skipped
// arithmetically, so the cost is linear in the number of dates emitted, not
// in the length of the series before the window.
func Expand(rule Rule, anchor, windowStart, windowEnd time.Time) ([]time.Time, error) {
	if err := rule.Validate(); err != nil {
		return nil, err
	}

	anchor = dateOnly(anchor)
	windowStart = dateOnly(windowStart)
	windowEnd = dateOnly(windowEnd)

	if windowEnd.Before(windowStart) {
		return nil, ErrInvalidWindow
	}

	until := time.Time{}
	if rule.End == EndUntilDate {
		until = dateOnly(rule.UntilDate)
	}

	if rule.Type == TypeNone {
		if inWindow(anchor, windowStart, windowEnd) && (until.IsZero() || !anchor.After(until)) {
			return []time.Time{anchor}, nil
		}
		return nil, nil
	}

	stepDays, stepMonths := rule.step()

	var dates []time.Time
	for k := firstCandidate(anchor, windowStart, stepDays, stepMonths); ; k++ {
		if rule.End == EndAfterCount && k >= rule.Count {
			break
		}

		date := occurrenceAt(anchor, k, stepDays, stepMonths)
		if date.After(windowEnd) {
			break
		}
		if !until.IsZero() && date.After(until) {
			break
		}
		if date.Before(windowStart) {
			continue
		}

		dates = append(dates, date)
	}

	return dates, nil
}

// firstCandidate returns the zero-based index of an occurrence at or shortly
// before windowStart, so that expansion never walks the part of the series
// that ends before the window. Stepping back one period absorbs day clamping
// for month-based steps.
func firstCandidate(anchor, windowStart time.Time, stepDays, stepMonths int) int {
	if !anchor.Before(windowStart) {
		return 0
	}

	var k int
	if stepDays > 0 {
		gap := int(windowStart.Sub(anchor).Hours() / 24)
		k = gap / stepDays
	} else {
		gap := monthsBetween(anchor, windowStart)
		k = gap / stepMonths
	}

	if k > 0 {
		k--
	}
	return k
}

// occurrenceAt returns the date of the zero-based k-th occurrence.
func occurrenceAt(anchor time.Time, k, stepDays, stepMonths int) time.Time {
	if stepDays > 0 {
		return anchor.AddDate(0, 0, k*stepDays)
	}
	return addMonthsClamped(anchor, k*stepMonths)
}

// addMonthsClamped advances t by the given number of calendar months,
// clamping the day of month to the last valid day of the target month.
// time.Time.AddDate is unsuitable here: it normalizes Jan 31 + 1 month to
// Mar 3 instead of Feb 28.
func addMonthsClamped(t time.Time, months int) time.Time {
	total := int(t.Month()) - 1 + months
	year := t.Year() + total/12
	month := time.Month(total%12 + 1)

	day := t.Day()
	if last := daysInMonth(year, month); day > last {
		day = last
	}

	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// daysInMonth returns the number of days in the given month.
func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// monthsBetween returns the number of whole calendar months from a to b.
func monthsBetween(a, b time.Time) int {
	return (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
}

func inWindow(d, start, end time.Time) bool {
	return !d.Before(start) && !d.After(end)
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
