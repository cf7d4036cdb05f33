package roster

import "time"

// Role identifies one of the two daily duty roles
type Role string

const (
	// RoleCover is the 24-hour duty role
	RoleCover Role = "Cover"

	// RoleLate is the 12-hour duty role
	RoleLate Role = "Late"
)

// Hours returns the duty hours credited for one assignment of this role
func (r Role) Hours() int {
	if r == RoleCover {
		return 24
	}
	return 12
}

// LeaveRank records which ranked choice produced a leave assignment
type LeaveRank string

const (
	LeaveRankFirst    LeaveRank = "first"
	LeaveRankSecond   LeaveRank = "second"
	LeaveRankAssigned LeaveRank = "assigned"
	LeaveRankNone     LeaveRank = "none"
)

// Counters holds the per-person fairness totals used as the tie-break
// signal for greedy assignment. They only ever increase during a run.
type Counters struct {
	Cover      int
	Late       int
	FreeBlocks int
}

// LeavePreference is one person's ranked list of candidate leave weeks.
// Choices[0] is the first choice, Choices[1] the second. Input-only.
type LeavePreference struct {
	Person  string
	Choices []time.Time
}

// LeaveAssignment is a resolved absence interval for one person.
// Created once by the leave resolver (or supplied explicitly by the
// caller) before any role allocation runs; immutable afterward.
type LeaveAssignment struct {
	Person string
	Start  time.Time
	Length int
	Rank   LeaveRank
}

// End returns the last date of the leave interval (inclusive)
func (la LeaveAssignment) End() time.Time {
	return la.Start.AddDate(0, 0, la.Length-1)
}

// Covers reports whether the given date falls inside the leave interval
func (la LeaveAssignment) Covers(date time.Time) bool {
	d := dayOf(date)
	return !d.Before(la.Start) && !d.After(la.End())
}

// Entry holds the two role holders for a single date. Fields are filled
// lazily, one at a time; an empty string means the slot is still open.
type Entry struct {
	Cover string
	Late  string
}

// Day is one fully resolved row of the output roster table
type Day struct {
	Date  time.Time
	Cover string
	Late  string
}

// PersonSummary is one row of the fairness summary. The counter fields
// are round-trip compatible with the Prior input of the next run.
type PersonSummary struct {
	Person      string
	Counters    Counters
	TotalHours  int
	LeaveChoice LeaveRank
}

// Input carries everything the engine needs for one run. The engine
// never mutates it; each run builds its own private state.
type Input struct {
	// People in declared order. Order matters: all greedy tie-breaks
	// resolve to the earliest-listed person.
	People []string

	// Start and End bound the inclusive date range
	Start time.Time
	End   time.Time

	// Holidays are dates treated as non-working regardless of weekday
	Holidays []time.Time

	// Prior seeds the fairness counters from a previous run's summary.
	// People missing from the map start at zero.
	Prior map[string]Counters

	// Preferences are ranked leave-week choices, resolved internally
	Preferences []LeavePreference

	// FixedLeave maps a person to an explicit leave-week start date.
	// People listed here bypass preference resolution entirely.
	FixedLeave map[string]time.Time

	// LeaveLength is the leave interval length in days: 5 or 7
	LeaveLength int

	// Seed drives the off-block shuffle. Same seed, same output.
	Seed int64
}

// Result is the complete output of one engine run
type Result struct {
	Days    []Day
	Summary []PersonSummary
	Leave   []LeaveAssignment
}

// dayOf normalizes a time to its calendar date at UTC midnight so dates
// can be used directly as map keys
func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// mondayOf returns the Monday of the week containing the given date
func mondayOf(t time.Time) time.Time {
	d := dayOf(t)
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}
