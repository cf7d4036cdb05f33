package roster

import "time"

// runState is the mutable working state of a single engine run. Each
// run builds its own; nothing here is shared across invocations.
type runState struct {
	people   []string
	dates    []time.Time
	entries  map[time.Time]*Entry
	counters map[string]*Counters
	leave    map[string]LeaveAssignment
}

func newRunState(people []string, start, end time.Time, prior map[string]Counters, leave []LeaveAssignment) *runState {
	st := &runState{
		people:   people,
		entries:  make(map[time.Time]*Entry),
		counters: make(map[string]*Counters, len(people)),
		leave:    make(map[string]LeaveAssignment, len(leave)),
	}

	for d := dayOf(start); !d.After(dayOf(end)); d = d.AddDate(0, 0, 1) {
		st.dates = append(st.dates, d)
	}

	// Seed counters from the prior summary; anyone missing starts at zero
	for _, person := range people {
		c := prior[person]
		st.counters[person] = &Counters{Cover: c.Cover, Late: c.Late, FreeBlocks: c.FreeBlocks}
	}

	for _, la := range leave {
		st.leave[la.Person] = la
	}

	return st
}

// entry returns the roster entry for a date, creating it lazily
func (st *runState) entry(date time.Time) *Entry {
	d := dayOf(date)
	e, ok := st.entries[d]
	if !ok {
		e = &Entry{}
		st.entries[d] = e
	}
	return e
}

// holdsRole reports whether the person already holds either role on the date
func (st *runState) holdsRole(person string, date time.Time) bool {
	e, ok := st.entries[dayOf(date)]
	if !ok {
		return false
	}
	return e.Cover == person || e.Late == person
}

// onLeave reports whether the date falls inside the person's leave interval
func (st *runState) onLeave(person string, date time.Time) bool {
	la, ok := st.leave[person]
	if !ok {
		return false
	}
	return la.Covers(date)
}
