package roster

import "time"

// OffBlock is a Saturday+Sunday pair where both dates are non-working.
// The block is granted whole to one person as a fairness reward.
type OffBlock struct {
	Saturday time.Time
	Sunday   time.Time
}

// Calendar is the result of classifying a date range against a holiday
// set: which dates are off days, and which Saturdays anchor an off block.
type Calendar struct {
	offDays map[time.Time]bool

	// Blocks in chronological order
	Blocks []OffBlock
}

// IsOffDay reports whether the given date is a weekend day or a holiday
func (c *Calendar) IsOffDay(date time.Time) bool {
	return c.offDays[dayOf(date)]
}

// Classify walks the inclusive date range and marks each date as an off
// day if its weekday is Saturday or Sunday or it appears in holidays.
// An off block is formed for every Saturday whose following Sunday is
// also an off day and still inside the range. Holiday-adjacent weekdays
// are never merged into blocks; only the Saturday/Sunday pairing exists.
func Classify(start, end time.Time, holidays []time.Time) *Calendar {
	holidaySet := make(map[time.Time]bool, len(holidays))
	for _, h := range holidays {
		holidaySet[dayOf(h)] = true
	}

	cal := &Calendar{offDays: make(map[time.Time]bool)}

	first := dayOf(start)
	last := dayOf(end)

	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday || holidaySet[d] {
			cal.offDays[d] = true
		}
	}

	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		if d.Weekday() != time.Saturday || !cal.offDays[d] {
			continue
		}
		next := d.AddDate(0, 0, 1)
		if next.After(last) || !cal.offDays[next] {
			continue
		}
		cal.Blocks = append(cal.Blocks, OffBlock{Saturday: d, Sunday: next})
	}

	return cal
}
