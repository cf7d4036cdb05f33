package roster

import "math/rand"

// allocateOffBlocks grants each Saturday+Sunday off block to one person,
// filling both roles on both dates and incrementing that person's
// FreeBlocks counter once per block.
//
// Blocks are processed in a shuffled order driven by the run seed, not
// chronologically. Chronological order would hand the first block of
// every run to the current lowest-count person; shuffling spreads which
// block each person receives while staying reproducible for a fixed seed.
//
// A block with no eligible person is skipped, not failed: the daily
// allocator fills those dates one role at a time. The pairing is a soft
// optimization, never a requirement.
func allocateOffBlocks(st *runState, blocks []OffBlock, seed int64) {
	shuffled := make([]OffBlock, len(blocks))
	copy(shuffled, blocks)

	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	for _, block := range shuffled {
		chosen := ""
		for _, person := range st.people {
			if st.holdsRole(person, block.Saturday) || st.holdsRole(person, block.Sunday) {
				continue
			}
			if st.onLeave(person, block.Saturday) || st.onLeave(person, block.Sunday) {
				continue
			}
			// Minimum FreeBlocks wins; ties go to the earliest-listed person
			if chosen == "" || st.counters[person].FreeBlocks < st.counters[chosen].FreeBlocks {
				chosen = person
			}
		}

		if chosen == "" {
			continue
		}

		sat := st.entry(block.Saturday)
		sat.Cover, sat.Late = chosen, chosen
		sun := st.entry(block.Sunday)
		sun.Cover, sun.Late = chosen, chosen

		// One increment per block, even though four role slots are filled
		st.counters[chosen].FreeBlocks++
	}
}
