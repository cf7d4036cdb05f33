package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dylancreed/ward-rota/internal/config"
	"github.com/dylancreed/ward-rota/pkg/db"
)

// mockStore implements a test double for the service store interfaces
type mockStore struct {
	runs         []db.Run
	summaries    map[string][]db.SummaryRow
	assignments  map[string][]db.Assignment
	leaveRecords map[string][]db.LeaveRecord

	insertedRuns        []*db.Run
	insertedAssignments []db.Assignment
	insertedLeave       []db.LeaveRecord
	insertedSummaries   []db.SummaryRow

	getRunsErr error
}

func (m *mockStore) GetRuns(ctx context.Context) ([]db.Run, error) {
	if m.getRunsErr != nil {
		return nil, m.getRunsErr
	}
	return m.runs, nil
}

func (m *mockStore) GetSummaries(ctx context.Context, runID string) ([]db.SummaryRow, error) {
	return m.summaries[runID], nil
}

func (m *mockStore) InsertRun(run *db.Run) error {
	m.insertedRuns = append(m.insertedRuns, run)
	return nil
}

func (m *mockStore) InsertAssignments(assignments []db.Assignment) error {
	m.insertedAssignments = append(m.insertedAssignments, assignments...)
	return nil
}

func (m *mockStore) InsertLeaveRecords(records []db.LeaveRecord) error {
	m.insertedLeave = append(m.insertedLeave, records...)
	return nil
}

func (m *mockStore) InsertSummaries(rows []db.SummaryRow) error {
	m.insertedSummaries = append(m.insertedSummaries, rows...)
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		DatabaseURL: "postgres://localhost/ward_rota_test",
		LeaveLength: 7,
		People: []config.PersonConfig{
			{Name: "Amara"},
			{Name: "Ben"},
			{Name: "Caleb"},
		},
	}
}

func TestGenerateRoster_SavesEverything(t *testing.T) {
	mock := &mockStore{}
	logger := zap.NewNop()

	// Mon 2026-03-02 .. Sun 2026-03-15
	result, err := GenerateRoster(context.Background(), mock, testConfig(), logger, "2026-03-02", "2026-03-15", 42, false, false)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.True(t, result.Saved)
	assert.Empty(t, result.PriorRunID)
	require.Len(t, mock.insertedRuns, 1)
	assert.Equal(t, result.Run.ID, mock.insertedRuns[0].ID)
	assert.Equal(t, int64(42), mock.insertedRuns[0].Seed)

	// Two role rows per day
	assert.Len(t, mock.insertedAssignments, 28)
	assert.Len(t, mock.insertedSummaries, 3)
	assert.Empty(t, mock.insertedLeave, "no leave input configured")
}

func TestGenerateRoster_DryRunSavesNothing(t *testing.T) {
	mock := &mockStore{}

	result, err := GenerateRoster(context.Background(), mock, testConfig(), zap.NewNop(), "2026-03-02", "2026-03-08", 42, true, false)
	require.NoError(t, err)

	assert.False(t, result.Saved)
	assert.NotNil(t, result.Outcome)
	assert.Empty(t, mock.insertedRuns)
	assert.Empty(t, mock.insertedAssignments)
	assert.Empty(t, mock.insertedSummaries)
}

func TestGenerateRoster_CarriesOverPriorSummary(t *testing.T) {
	mock := &mockStore{
		runs: []db.Run{
			{ID: "run-1", Start: "2026-02-16", End: "2026-03-01", Seed: 42},
		},
		summaries: map[string][]db.SummaryRow{
			"run-1": {
				{RunID: "run-1", Person: "Amara", CoverCount: 9, LateCount: 4, FreeBlockCount: 1},
				{RunID: "run-1", Person: "Ben", CoverCount: 2, LateCount: 4, FreeBlockCount: 1},
			},
		},
	}

	result, err := GenerateRoster(context.Background(), mock, testConfig(), zap.NewNop(), "2026-03-02", "2026-03-08", 42, true, false)
	require.NoError(t, err)
	assert.Equal(t, "run-1", result.PriorRunID)

	// Amara carries a heavy Cover count, so Caleb and Ben absorb the
	// new Cover shifts before she gets another one
	for _, day := range result.Outcome.Days {
		if day.Date.Weekday() != time.Saturday && day.Date.Weekday() != time.Sunday {
			assert.NotEqual(t, "Amara", day.Cover)
		}
	}

	// Counters in the new summary include the prior values
	for _, row := range result.Outcome.Summary {
		if row.Person == "Amara" {
			assert.GreaterOrEqual(t, row.Counters.Cover, 9)
		}
	}
}

func TestGenerateRoster_MalformedPriorDefaultsToZero(t *testing.T) {
	mock := &mockStore{
		runs: []db.Run{{ID: "run-1", Start: "2026-02-16", End: "2026-03-01", Seed: 42}},
		summaries: map[string][]db.SummaryRow{
			"run-1": {
				{RunID: "run-1", Person: "Amara", CoverCount: -3, LateCount: 1},
				// Ben and Caleb missing entirely
			},
		},
	}

	result, err := GenerateRoster(context.Background(), mock, testConfig(), zap.NewNop(), "2026-03-02", "2026-03-08", 42, true, false)
	require.NoError(t, err)

	for _, row := range result.Outcome.Summary {
		assert.GreaterOrEqual(t, row.Counters.Cover, 0)
	}
}

func TestGenerateRoster_IgnoresLaterRuns(t *testing.T) {
	mock := &mockStore{
		runs: []db.Run{
			{ID: "run-future", Start: "2026-06-01", End: "2026-06-14", Seed: 42},
		},
	}

	result, err := GenerateRoster(context.Background(), mock, testConfig(), zap.NewNop(), "2026-03-02", "2026-03-08", 42, true, false)
	require.NoError(t, err)
	assert.Empty(t, result.PriorRunID, "runs starting after the new range are not prior periods")
}

func TestGenerateRoster_BadDates(t *testing.T) {
	mock := &mockStore{}

	_, err := GenerateRoster(context.Background(), mock, testConfig(), zap.NewNop(), "02/03/2026", "2026-03-08", 42, true, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse start date")

	_, err = GenerateRoster(context.Background(), mock, testConfig(), zap.NewNop(), "2026-03-08", "2026-03-02", 42, true, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "roster generation failed")
}

func TestGenerateRoster_LeaveFromConfig(t *testing.T) {
	cfg := testConfig()
	cfg.People[0].FirstChoice = "2026-03-02"
	cfg.People[1].LeaveWeek = "2026-03-09"

	result, err := GenerateRoster(context.Background(), &mockStore{}, cfg, zap.NewNop(), "2026-03-02", "2026-03-15", 42, false, false)
	require.NoError(t, err)

	require.Len(t, result.Outcome.Leave, 2)
	assert.Equal(t, "Amara", result.Outcome.Leave[0].Person)
	assert.Equal(t, "Ben", result.Outcome.Leave[1].Person)

	// Saved leave rows mirror the resolved schedule
	require.Len(t, mockLeave(t, result), 2)
}

func mockLeave(t *testing.T, result *GenerateRosterResult) []db.LeaveRecord {
	t.Helper()
	records := toDBLeaveRecords(result.Run.ID, result.Outcome.Leave)
	require.Equal(t, "first", records[0].Rank)
	require.Equal(t, "assigned", records[1].Rank)
	return records
}

func TestGenerateRoster_OverlapBlocksSave(t *testing.T) {
	mock := &mockStore{
		runs: []db.Run{{ID: "run-1", Start: "2026-03-09", End: "2026-03-22", Seed: 42}},
	}

	result, err := GenerateRoster(context.Background(), mock, testConfig(), zap.NewNop(), "2026-03-02", "2026-03-15", 42, false, false)
	require.NoError(t, err)

	assert.False(t, result.Saved)
	assert.Equal(t, "run-1", result.OverlapRunID)
	assert.NotNil(t, result.Outcome, "the roster is still generated for inspection")
	assert.Empty(t, mock.insertedRuns)
}

func TestGenerateRoster_ForceCommitSavesDespiteOverlap(t *testing.T) {
	mock := &mockStore{
		runs: []db.Run{{ID: "run-1", Start: "2026-03-09", End: "2026-03-22", Seed: 42}},
	}

	result, err := GenerateRoster(context.Background(), mock, testConfig(), zap.NewNop(), "2026-03-02", "2026-03-15", 42, false, true)
	require.NoError(t, err)

	assert.True(t, result.Saved)
	assert.Equal(t, "run-1", result.OverlapRunID)
	require.Len(t, mock.insertedRuns, 1)
}

func TestExpandHolidays(t *testing.T) {
	hc := config.HolidayConfig{
		Dates:  []string{"2026-03-10"},
		RRules: []string{"FREQ=WEEKLY;BYDAY=FR"},
	}

	holidays, err := expandHolidays(hc, testDate(2026, 3, 2), testDate(2026, 3, 15))
	require.NoError(t, err)

	// One explicit date plus the two Fridays in range
	assert.Len(t, holidays, 3)
}

func testDate(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
