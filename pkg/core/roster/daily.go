package roster

import "time"

// allocateDaily fills every still-open role slot, one date at a time in
// chronological order. Cover is assigned before Late, and availability
// is recomputed between the two so the fresh Cover holder can never
// also take Late on the same date.
//
// An empty availability set when a slot needs filling is a hard
// scheduling failure: the engine surfaces it as an UnfilledSlotError
// naming the date and role rather than leaving the slot empty.
func allocateDaily(st *runState) error {
	for _, date := range st.dates {
		e := st.entry(date)

		if e.Cover == "" {
			person, ok := st.pickAvailable(date, RoleCover)
			if !ok {
				return &UnfilledSlotError{Date: date, Role: RoleCover}
			}
			e.Cover = person
			st.counters[person].Cover++
		}

		if e.Late == "" {
			person, ok := st.pickAvailable(date, RoleLate)
			if !ok {
				return &UnfilledSlotError{Date: date, Role: RoleLate}
			}
			e.Late = person
			st.counters[person].Late++
		}
	}

	return nil
}

// pickAvailable returns the available person with the lowest counter
// for the given role. Available means not on leave that date and not
// already holding any role that date. Ties resolve to the person listed
// earliest in the roster.
func (st *runState) pickAvailable(date time.Time, role Role) (string, bool) {
	chosen := ""
	for _, person := range st.people {
		if st.onLeave(person, date) || st.holdsRole(person, date) {
			continue
		}
		if chosen == "" || st.roleCount(person, role) < st.roleCount(chosen, role) {
			chosen = person
		}
	}
	return chosen, chosen != ""
}

func (st *runState) roleCount(person string, role Role) int {
	if role == RoleCover {
		return st.counters[person].Cover
	}
	return st.counters[person].Late
}
