package roster

import "time"

// ResolveLeave assigns at most one leave week per person across the
// date range, honouring ranked preferences where possible.
//
// Candidate week starts are every Monday in the range that leaves at
// least 5 trailing days inside it. For each week start, in order:
//
//  1. The first person (in input order) whose first choice falls in
//     that week wins it, tagged "first". Choices are normalized to the
//     Monday of their week before matching.
//  2. Failing that, the first person whose second choice matches wins,
//     tagged "second".
//  3. Failing that, the week is forced onto the first person (in input
//     order) who has no leave yet, tagged "assigned" - their stated
//     preferences are ignored.
//
// Resolution stops once every person has a week or the weeks run out.
// People left over simply receive no leave; there is no failure mode.
func ResolveLeave(people []string, prefs []LeavePreference, start, end time.Time, leaveLength int) []LeaveAssignment {
	return resolveLeave(people, prefs, start, end, leaveLength, nil)
}

// resolveLeave is ResolveLeave with an extra set of week starts that
// are already consumed (by explicit fixed-leave input) and must not be
// handed out again.
func resolveLeave(people []string, prefs []LeavePreference, start, end time.Time, leaveLength int, taken map[time.Time]bool) []LeaveAssignment {
	assigned := make(map[string]bool, len(people))
	var assignments []LeaveAssignment

	// Normalized choice lookup: person -> rank -> week start
	choices := make(map[string][]time.Time, len(prefs))
	for _, pref := range prefs {
		normalized := make([]time.Time, len(pref.Choices))
		for i, c := range pref.Choices {
			normalized[i] = mondayOf(c)
		}
		choices[pref.Person] = normalized
	}

	maxRank := 0
	for _, c := range choices {
		if len(c) > maxRank {
			maxRank = len(c)
		}
	}

	for _, week := range candidateWeekStarts(start, end) {
		if len(assignments) == len(people) {
			break
		}
		if taken[week] {
			continue
		}

		winner := ""
		rank := LeaveRankAssigned

		// Preference matches first, lower ranks before higher
		for r := 0; r < maxRank && winner == ""; r++ {
			for _, person := range people {
				if assigned[person] {
					continue
				}
				personChoices := choices[person]
				if r < len(personChoices) && personChoices[r].Equal(week) {
					winner = person
					rank = rankLabel(r)
					break
				}
			}
		}

		// Forced fallback: the week goes to the first person still
		// without leave, whatever their preferences said
		if winner == "" {
			for _, person := range people {
				if !assigned[person] {
					winner = person
					break
				}
			}
		}

		if winner == "" {
			break
		}

		assigned[winner] = true
		assignments = append(assignments, LeaveAssignment{
			Person: winner,
			Start:  week,
			Length: leaveLength,
			Rank:   rank,
		})
	}

	return assignments
}

// candidateWeekStarts returns every Monday in the range with at least
// 5 trailing days inside it, in chronological order
func candidateWeekStarts(start, end time.Time) []time.Time {
	var weeks []time.Time
	first := dayOf(start)
	last := dayOf(end)

	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		if d.Weekday() != time.Monday {
			continue
		}
		if d.AddDate(0, 0, 4).After(last) {
			continue
		}
		weeks = append(weeks, d)
	}

	return weeks
}

func rankLabel(rank int) LeaveRank {
	switch rank {
	case 0:
		return LeaveRankFirst
	default:
		return LeaveRankSecond
	}
}
