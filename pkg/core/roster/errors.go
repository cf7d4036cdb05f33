package roster

import (
	"errors"
	"fmt"
	"time"
)

// ErrEmptyRoster is returned when no people are supplied
var ErrEmptyRoster = errors.New("no people supplied: the roster needs at least one person")

// InvalidRangeError reports a date range whose end precedes its start.
// No allocation runs when this is returned.
type InvalidRangeError struct {
	Start time.Time
	End   time.Time
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid date range: end %s is before start %s",
		e.End.Format("2006-01-02"), e.Start.Format("2006-01-02"))
}

// UnfilledSlotError reports a hard scheduling failure: a role slot had
// no eligible person because everyone was on leave or already assigned
// that day. The caller can recover by re-running with fewer leave
// constraints or a larger roster.
type UnfilledSlotError struct {
	Date time.Time
	Role Role
}

func (e *UnfilledSlotError) Error() string {
	return fmt.Sprintf("no eligible person for %s on %s", e.Role, e.Date.Format("2006-01-02"))
}
