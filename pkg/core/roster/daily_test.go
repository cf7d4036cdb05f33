package roster

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocateDaily_NoDoubleBooking(t *testing.T) {
	st := newRunState([]string{"Amara", "Ben"}, date(2026, 3, 2), date(2026, 3, 6), nil, nil)

	err := allocateDaily(st)
	require.NoError(t, err)

	for _, d := range st.dates {
		e := st.entry(d)
		require.NotEmpty(t, e.Cover)
		require.NotEmpty(t, e.Late)
		assert.NotEqual(t, e.Cover, e.Late, "one person must not hold both roles on %s", d.Format("2006-01-02"))
	}
}

func TestAllocateDaily_MinimumCountWins(t *testing.T) {
	prior := map[string]Counters{
		"Amara": {Cover: 3, Late: 0},
		"Ben":   {Cover: 0, Late: 3},
	}
	st := newRunState([]string{"Amara", "Ben"}, date(2026, 3, 2), date(2026, 3, 2), prior, nil)

	err := allocateDaily(st)
	require.NoError(t, err)

	e := st.entry(date(2026, 3, 2))
	assert.Equal(t, "Ben", e.Cover, "lowest CoverCount takes Cover")
	assert.Equal(t, "Amara", e.Late, "lowest LateCount among the rest takes Late")
	assert.Equal(t, 1, st.counters["Ben"].Cover)
	assert.Equal(t, 1, st.counters["Amara"].Late)
}

func TestAllocateDaily_TieBrokenByInputOrder(t *testing.T) {
	st := newRunState([]string{"Caleb", "Amara", "Ben"}, date(2026, 3, 2), date(2026, 3, 2), nil, nil)

	err := allocateDaily(st)
	require.NoError(t, err)

	e := st.entry(date(2026, 3, 2))
	assert.Equal(t, "Caleb", e.Cover)
	assert.Equal(t, "Amara", e.Late)
}

func TestAllocateDaily_SkipsPrefilledSlots(t *testing.T) {
	st := newRunState([]string{"Amara", "Ben"}, date(2026, 3, 2), date(2026, 3, 2), nil, nil)

	// Simulate an off-block allocation having filled this date
	e := st.entry(date(2026, 3, 2))
	e.Cover, e.Late = "Ben", "Ben"

	err := allocateDaily(st)
	require.NoError(t, err)

	assert.Equal(t, "Ben", e.Cover)
	assert.Equal(t, "Ben", e.Late)
	assert.Equal(t, 0, st.counters["Ben"].Cover, "prefilled slots do not touch the daily counters")
	assert.Equal(t, 0, st.counters["Ben"].Late)
}

func TestAllocateDaily_SinglePersonCannotFillLate(t *testing.T) {
	st := newRunState([]string{"Amara"}, date(2026, 3, 2), date(2026, 3, 2), nil, nil)

	err := allocateDaily(st)
	require.Error(t, err)

	var slotErr *UnfilledSlotError
	require.True(t, errors.As(err, &slotErr))
	assert.Equal(t, RoleLate, slotErr.Role)
	assert.Equal(t, date(2026, 3, 2), slotErr.Date)
}

func TestAllocateDaily_EveryoneOnLeave(t *testing.T) {
	leave := []LeaveAssignment{
		{Person: "Amara", Start: date(2026, 3, 2), Length: 7, Rank: LeaveRankAssigned},
		{Person: "Ben", Start: date(2026, 3, 2), Length: 7, Rank: LeaveRankAssigned},
	}
	st := newRunState([]string{"Amara", "Ben"}, date(2026, 3, 4), date(2026, 3, 4), nil, leave)

	err := allocateDaily(st)
	require.Error(t, err)

	var slotErr *UnfilledSlotError
	require.True(t, errors.As(err, &slotErr))
	assert.Equal(t, RoleCover, slotErr.Role, "the Cover slot fails first")
}

func TestAllocateDaily_CountersMonotonic(t *testing.T) {
	st := newRunState([]string{"Amara", "Ben", "Caleb"}, date(2026, 3, 2), date(2026, 3, 13), nil, nil)

	err := allocateDaily(st)
	require.NoError(t, err)

	totalCover, totalLate := 0, 0
	for _, c := range st.counters {
		assert.GreaterOrEqual(t, c.Cover, 0)
		assert.GreaterOrEqual(t, c.Late, 0)
		totalCover += c.Cover
		totalLate += c.Late
	}

	// Exactly one increment per assignment event
	assert.Equal(t, len(st.dates), totalCover)
	assert.Equal(t, len(st.dates), totalLate)
}
