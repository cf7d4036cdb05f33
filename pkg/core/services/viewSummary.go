package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/dylancreed/ward-rota/pkg/db"
)

// SummaryResult contains one run's fairness summary
type SummaryResult struct {
	Run  *db.Run
	Rows []db.SummaryRow
}

// SummaryStore defines the database operations needed for viewing a
// run's summary
type SummaryStore interface {
	GetRuns(ctx context.Context) ([]db.Run, error)
	GetSummaries(ctx context.Context, runID string) ([]db.SummaryRow, error)
}

// ViewSummary fetches the per-person summary for the given run, or for
// the latest run when runID is empty
func ViewSummary(ctx context.Context, database SummaryStore, logger *zap.Logger, runID string) (*SummaryResult, error) {
	run, err := resolveRun(ctx, database, runID)
	if err != nil {
		return nil, err
	}

	logger.Debug("Fetching summaries", zap.String("run_id", run.ID))
	rows, err := database.GetSummaries(ctx, run.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch summaries: %w", err)
	}

	logger.Info("Summary fetched",
		zap.String("run_id", run.ID),
		zap.Int("people", len(rows)))

	return &SummaryResult{Run: run, Rows: rows}, nil
}

// runLister is the smallest store surface needed to resolve a run ID
type runLister interface {
	GetRuns(ctx context.Context) ([]db.Run, error)
}

// resolveRun looks up the run by ID, or falls back to the latest run
func resolveRun(ctx context.Context, database runLister, runID string) (*db.Run, error) {
	runs, err := database.GetRuns(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch runs: %w", err)
	}

	if len(runs) == 0 {
		return nil, fmt.Errorf("no runs found - generate a roster first")
	}

	if runID == "" {
		return findLatestRun(runs), nil
	}

	for i := range runs {
		if runs[i].ID == runID {
			return &runs[i], nil
		}
	}

	return nil, fmt.Errorf("run %s not found", runID)
}
