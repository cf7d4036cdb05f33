package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/dylancreed/ward-rota/pkg/core/roster"
	"github.com/dylancreed/ward-rota/pkg/db"
)

// RosterRow is one date of the day-indexed roster table
type RosterRow struct {
	Date  string
	Cover string
	Late  string
}

// RosterViewResult contains one run's full roster table and its
// resolved leave schedule
type RosterViewResult struct {
	Run   *db.Run
	Rows  []RosterRow
	Leave []db.LeaveRecord
}

// RosterViewStore defines the database operations needed for viewing a
// run's roster table
type RosterViewStore interface {
	GetRuns(ctx context.Context) ([]db.Run, error)
	GetAssignments(ctx context.Context, runID string) ([]db.Assignment, error)
	GetLeaveRecords(ctx context.Context, runID string) ([]db.LeaveRecord, error)
}

// ViewRoster fetches the day-by-day roster for the given run, or for
// the latest run when runID is empty
func ViewRoster(ctx context.Context, database RosterViewStore, logger *zap.Logger, runID string) (*RosterViewResult, error) {
	run, err := resolveRun(ctx, database, runID)
	if err != nil {
		return nil, err
	}

	logger.Debug("Fetching assignments", zap.String("run_id", run.ID))
	assignments, err := database.GetAssignments(ctx, run.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assignments: %w", err)
	}

	leave, err := database.GetLeaveRecords(ctx, run.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch leave records: %w", err)
	}

	rows := groupByDate(assignments)

	logger.Info("Roster fetched",
		zap.String("run_id", run.ID),
		zap.Int("days", len(rows)),
		zap.Int("leave_records", len(leave)))

	return &RosterViewResult{Run: run, Rows: rows, Leave: leave}, nil
}

// groupByDate folds the flat assignment records into one row per date.
// Assignments arrive ordered by date, so row order follows the range.
func groupByDate(assignments []db.Assignment) []RosterRow {
	var rows []RosterRow
	index := make(map[string]int)

	for _, a := range assignments {
		i, ok := index[a.Date]
		if !ok {
			i = len(rows)
			index[a.Date] = i
			rows = append(rows, RosterRow{Date: a.Date})
		}

		switch a.Role {
		case string(roster.RoleCover):
			rows[i].Cover = a.Person
		case string(roster.RoleLate):
			rows[i].Late = a.Person
		}
	}

	return rows
}
