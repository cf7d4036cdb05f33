package db

import "context"

// RunStore defines the interface for run database operations
type RunStore interface {
	GetRuns(ctx context.Context) ([]Run, error)
	InsertRun(run *Run) error
}

// Database defines the interface for all database operations the
// services need. postgres.DB implements this interface.
type Database interface {
	GetRuns(ctx context.Context) ([]Run, error)
	InsertRun(run *Run) error
	GetAssignments(ctx context.Context, runID string) ([]Assignment, error)
	InsertAssignments(assignments []Assignment) error
	GetLeaveRecords(ctx context.Context, runID string) ([]LeaveRecord, error)
	InsertLeaveRecords(records []LeaveRecord) error
	GetSummaries(ctx context.Context, runID string) ([]SummaryRow, error)
	InsertSummaries(rows []SummaryRow) error
}
