package services

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/dylancreed/ward-rota/pkg/db"
)

// ListRuns returns all roster runs, most recent first
func ListRuns(ctx context.Context, database runLister, logger *zap.Logger) ([]db.Run, error) {
	runs, err := database.GetRuns(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch runs: %w", err)
	}

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Start > runs[j].Start
	})

	logger.Info("Runs fetched", zap.Int("count", len(runs)))
	return runs, nil
}
