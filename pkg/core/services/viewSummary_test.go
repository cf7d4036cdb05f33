package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dylancreed/ward-rota/pkg/db"
)

func TestViewSummary_ReturnsRowsForRun(t *testing.T) {
	mock := &mockStore{
		runs: []db.Run{{ID: "run-1", Start: "2026-03-02", End: "2026-03-15", Seed: 42}},
		summaries: map[string][]db.SummaryRow{
			"run-1": {
				{RunID: "run-1", Person: "Amara", CoverCount: 5, LateCount: 5, TotalHours: 180},
				{RunID: "run-1", Person: "Ben", CoverCount: 5, LateCount: 4, TotalHours: 168},
			},
		},
	}

	result, err := ViewSummary(context.Background(), mock, zap.NewNop(), "run-1")
	require.NoError(t, err)

	assert.Equal(t, "run-1", result.Run.ID)
	require.Len(t, result.Rows, 2)
	assert.Equal(t, "Amara", result.Rows[0].Person)
}

func TestViewSummary_LatestRunWhenIDOmitted(t *testing.T) {
	mock := &mockStore{
		runs: []db.Run{
			{ID: "run-old", Start: "2026-02-16", End: "2026-03-01"},
			{ID: "run-new", Start: "2026-03-02", End: "2026-03-15"},
		},
		summaries: map[string][]db.SummaryRow{
			"run-new": {{RunID: "run-new", Person: "Amara"}},
		},
	}

	result, err := ViewSummary(context.Background(), mock, zap.NewNop(), "")
	require.NoError(t, err)
	assert.Equal(t, "run-new", result.Run.ID)
	assert.Len(t, result.Rows, 1)
}

func TestListRuns_StoreError(t *testing.T) {
	mock := &mockStore{getRunsErr: errors.New("connection refused")}

	_, err := ListRuns(context.Background(), mock, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch runs")
}

func TestListRuns_MostRecentFirst(t *testing.T) {
	mock := &mockStore{
		runs: []db.Run{
			{ID: "run-1", Start: "2026-02-16"},
			{ID: "run-3", Start: "2026-03-16"},
			{ID: "run-2", Start: "2026-03-02"},
		},
	}

	runs, err := ListRuns(context.Background(), mock, zap.NewNop())
	require.NoError(t, err)

	require.Len(t, runs, 3)
	assert.Equal(t, "run-3", runs[0].ID)
	assert.Equal(t, "run-2", runs[1].ID)
	assert.Equal(t, "run-1", runs[2].ID)
}
