// Package roster implements the duty rota engine: a deterministic
// greedy allocator that assigns the daily Cover and Late roles across a
// date range, grants weekend off blocks as fairness rewards, resolves
// ranked leave-week preferences, and carries fairness counters forward
// between periods.
//
// The engine is pure: given the same Input (including the seed) it
// produces the same Result. Each run owns its state, so concurrent runs
// are safe as long as they do not share an Input's maps.
package roster

import (
	"fmt"
	"sort"
	"time"
)

// DefaultLeaveLength is the leave interval length used when the input
// does not specify one
const DefaultLeaveLength = 7

// Generate runs the four allocation phases in sequence: calendar
// classification, leave resolution, off-block allocation, then daily
// role allocation, and rolls the outcome into a summary.
//
// It returns an error before any allocation if the input is malformed
// (empty roster, end before start, bad leave length, duplicate names),
// or an UnfilledSlotError if some date has no eligible person left.
func Generate(in Input) (*Result, error) {
	if len(in.People) == 0 {
		return nil, ErrEmptyRoster
	}

	start := dayOf(in.Start)
	end := dayOf(in.End)
	if end.Before(start) {
		return nil, &InvalidRangeError{Start: start, End: end}
	}

	seen := make(map[string]bool, len(in.People))
	for _, person := range in.People {
		if person == "" {
			return nil, fmt.Errorf("person names must be non-empty")
		}
		if seen[person] {
			return nil, fmt.Errorf("duplicate person name %q", person)
		}
		seen[person] = true
	}

	leaveLength := in.LeaveLength
	if leaveLength == 0 {
		leaveLength = DefaultLeaveLength
	}
	if leaveLength != 5 && leaveLength != 7 {
		return nil, fmt.Errorf("leave length must be 5 or 7 days, got %d", leaveLength)
	}

	cal := Classify(start, end, in.Holidays)
	leave := resolveAllLeave(in, start, end, leaveLength)

	st := newRunState(in.People, start, end, in.Prior, leave)
	allocateOffBlocks(st, cal.Blocks, in.Seed)
	if err := allocateDaily(st); err != nil {
		return nil, err
	}

	days := make([]Day, len(st.dates))
	for i, date := range st.dates {
		e := st.entries[date]
		days[i] = Day{Date: date, Cover: e.Cover, Late: e.Late}
	}

	return &Result{
		Days:    days,
		Summary: summarize(st),
		Leave:   leave,
	}, nil
}

// resolveAllLeave combines the two leave input shapes. People with an
// explicit FixedLeave week take it as-is, tagged "assigned"; everyone
// else goes through preference resolution, which treats the fixed
// weeks as already consumed. The combined schedule is ordered
// chronologically by week start.
func resolveAllLeave(in Input, start, end time.Time, leaveLength int) []LeaveAssignment {
	var assignments []LeaveAssignment
	taken := make(map[time.Time]bool, len(in.FixedLeave))

	remaining := make([]string, 0, len(in.People))
	for _, person := range in.People {
		if week, ok := in.FixedLeave[person]; ok {
			assignments = append(assignments, LeaveAssignment{
				Person: person,
				Start:  dayOf(week),
				Length: leaveLength,
				Rank:   LeaveRankAssigned,
			})
			taken[mondayOf(week)] = true
			continue
		}
		remaining = append(remaining, person)
	}

	// No preference input at all means no leave for the remaining
	// people; the forced fallback only applies when resolution runs.
	if len(remaining) > 0 && len(in.Preferences) > 0 {
		resolved := resolveLeave(remaining, in.Preferences, start, end, leaveLength, taken)
		assignments = append(assignments, resolved...)
	}

	sort.SliceStable(assignments, func(i, j int) bool {
		return assignments[i].Start.Before(assignments[j].Start)
	})

	return assignments
}
