package roster

import "sort"

// summarize rolls the final counters into one row per person, sorted
// ascending by name. TotalHours is derived from the daily role counts;
// off-block duty does not add hours because blocks are tracked by their
// own counter.
func summarize(st *runState) []PersonSummary {
	names := make([]string, len(st.people))
	copy(names, st.people)
	sort.Strings(names)

	summary := make([]PersonSummary, 0, len(names))
	for _, person := range names {
		c := st.counters[person]

		choice := LeaveRankNone
		if la, ok := st.leave[person]; ok {
			choice = la.Rank
		}

		summary = append(summary, PersonSummary{
			Person:      person,
			Counters:    *c,
			TotalHours:  c.Cover*RoleCover.Hours() + c.Late*RoleLate.Hours(),
			LeaveChoice: choice,
		})
	}

	return summary
}
