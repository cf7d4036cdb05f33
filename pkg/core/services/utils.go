package services

import (
	"time"

	"github.com/dylancreed/ward-rota/pkg/db"
)

// findLatestRun finds the run with the most recent start date
func findLatestRun(runs []db.Run) *db.Run {
	if len(runs) == 0 {
		return nil
	}

	latest := &runs[0]
	latestDate, err := time.Parse("2006-01-02", latest.Start)
	if err != nil {
		return latest
	}

	for i := 1; i < len(runs); i++ {
		currentDate, err := time.Parse("2006-01-02", runs[i].Start)
		if err != nil {
			continue
		}

		if currentDate.After(latestDate) {
			latest = &runs[i]
			latestDate = currentDate
		}
	}

	return latest
}

// findOverlappingRun returns the first saved run whose inclusive date
// range intersects [start, end]. Returns nil when there is none.
func findOverlappingRun(runs []db.Run, start, end time.Time) *db.Run {
	for i := range runs {
		run := &runs[i]
		runStart, err := time.Parse("2006-01-02", run.Start)
		if err != nil {
			continue
		}
		runEnd, err := time.Parse("2006-01-02", run.End)
		if err != nil {
			continue
		}

		if !runStart.After(end) && !runEnd.Before(start) {
			return run
		}
	}

	return nil
}

// findPreviousRun finds the most recent run that started strictly
// before the given date. Returns nil when there is none.
func findPreviousRun(runs []db.Run, before time.Time) *db.Run {
	var previous *db.Run
	var previousDate time.Time

	for i := range runs {
		run := &runs[i]
		runDate, err := time.Parse("2006-01-02", run.Start)
		if err != nil {
			continue
		}

		if !runDate.Before(before) {
			continue
		}

		if previous == nil || runDate.After(previousDate) {
			previous = run
			previousDate = runDate
		}
	}

	return previous
}
