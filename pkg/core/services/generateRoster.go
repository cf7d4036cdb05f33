package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/teambition/rrule-go"
	"go.uber.org/zap"

	"github.com/dylancreed/ward-rota/internal/config"
	"github.com/dylancreed/ward-rota/pkg/core/roster"
	"github.com/dylancreed/ward-rota/pkg/db"
)

// GenerateRosterResult contains the outcome of one roster generation
type GenerateRosterResult struct {
	Run        *db.Run
	Outcome    *roster.Result
	PriorRunID string

	// OverlapRunID names an existing run whose range overlaps the new
	// one. Set whether or not the roster was saved.
	OverlapRunID string
	Saved        bool
}

// GenerateRosterStore defines the database operations needed for
// generating and persisting a roster
type GenerateRosterStore interface {
	GetRuns(ctx context.Context) ([]db.Run, error)
	GetSummaries(ctx context.Context, runID string) ([]db.SummaryRow, error)
	InsertRun(run *db.Run) error
	InsertAssignments(assignments []db.Assignment) error
	InsertLeaveRecords(records []db.LeaveRecord) error
	InsertSummaries(rows []db.SummaryRow) error
}

// GenerateRoster runs the duty rota engine over the given date range.
// Fairness counters are seeded from the most recent run that started
// before the new range, so back-to-back periods carry over. If dryRun
// is true, nothing is saved to the database. A range that overlaps an
// already-saved run is not saved either, unless forceCommit is set.
func GenerateRoster(
	ctx context.Context,
	database GenerateRosterStore,
	cfg *config.Config,
	logger *zap.Logger,
	startStr, endStr string,
	seed int64,
	dryRun bool,
	forceCommit bool,
) (*GenerateRosterResult, error) {
	logger.Debug("Starting generateRoster",
		zap.String("start", startStr),
		zap.String("end", endStr),
		zap.Int64("seed", seed),
		zap.Bool("dry_run", dryRun),
		zap.Bool("force_commit", forceCommit))

	start, err := time.Parse("2006-01-02", startStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse start date: %w", err)
	}
	end, err := time.Parse("2006-01-02", endStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse end date: %w", err)
	}

	// Seed counters from the previous period, if there is one
	logger.Debug("Fetching existing runs")
	runs, err := database.GetRuns(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch runs: %w", err)
	}
	logger.Debug("Found runs", zap.Int("count", len(runs)))

	prior := make(map[string]roster.Counters)
	priorRunID := ""
	if priorRun := findPreviousRun(runs, start); priorRun != nil {
		priorRunID = priorRun.ID
		logger.Info("Carrying counters over from previous run",
			zap.String("run_id", priorRun.ID),
			zap.String("run_start", priorRun.Start))

		summaries, err := database.GetSummaries(ctx, priorRun.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch prior summaries: %w", err)
		}
		prior = priorCounters(summaries)
	} else {
		logger.Info("No previous run found, counters start at zero")
	}

	holidays, err := expandHolidays(cfg.Holidays, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to expand holidays: %w", err)
	}
	logger.Debug("Expanded holiday set", zap.Int("count", len(holidays)))

	input := roster.Input{
		People:      peopleNames(cfg.People),
		Start:       start,
		End:         end,
		Holidays:    holidays,
		Prior:       prior,
		Preferences: leavePreferences(cfg.People),
		FixedLeave:  fixedLeave(cfg.People),
		LeaveLength: cfg.LeaveLength,
		Seed:        seed,
	}

	logger.Info("Running rota engine",
		zap.Int("people", len(input.People)),
		zap.String("start", startStr),
		zap.String("end", endStr))

	outcome, err := roster.Generate(input)
	if err != nil {
		return nil, fmt.Errorf("roster generation failed: %w", err)
	}

	logger.Info("Generation completed",
		zap.Int("days", len(outcome.Days)),
		zap.Int("leave_assignments", len(outcome.Leave)))

	run := &db.Run{
		ID:    uuid.New().String(),
		Start: startStr,
		End:   endStr,
		Seed:  seed,
	}

	result := &GenerateRosterResult{
		Run:        run,
		Outcome:    outcome,
		PriorRunID: priorRunID,
	}

	if overlap := findOverlappingRun(runs, start, end); overlap != nil {
		result.OverlapRunID = overlap.ID
		if !forceCommit && !dryRun {
			logger.Warn("Range overlaps an existing run - not saving (use forceCommit to save anyway)",
				zap.String("run_id", overlap.ID),
				zap.String("run_start", overlap.Start),
				zap.String("run_end", overlap.End))
			return result, nil
		}
	}

	if dryRun {
		logger.Info("Dry run mode - roster not saved")
		return result, nil
	}

	logger.Info("Saving roster to database", zap.String("run_id", run.ID))
	if err := database.InsertRun(run); err != nil {
		return nil, fmt.Errorf("failed to save run: %w", err)
	}
	if err := database.InsertAssignments(toDBAssignments(run.ID, outcome.Days)); err != nil {
		return nil, fmt.Errorf("failed to save assignments: %w", err)
	}
	if err := database.InsertLeaveRecords(toDBLeaveRecords(run.ID, outcome.Leave)); err != nil {
		return nil, fmt.Errorf("failed to save leave records: %w", err)
	}
	if err := database.InsertSummaries(toDBSummaries(run.ID, outcome.Summary)); err != nil {
		return nil, fmt.Errorf("failed to save summaries: %w", err)
	}

	result.Saved = true
	logger.Info("Roster saved", zap.String("run_id", run.ID))

	return result, nil
}

// priorCounters converts summary rows into the engine's counter seed.
// Rows with missing or negative values degrade cleanly to zero rather
// than failing the run.
func priorCounters(summaries []db.SummaryRow) map[string]roster.Counters {
	prior := make(map[string]roster.Counters, len(summaries))
	for _, row := range summaries {
		prior[row.Person] = roster.Counters{
			Cover:      clampNonNegative(row.CoverCount),
			Late:       clampNonNegative(row.LateCount),
			FreeBlocks: clampNonNegative(row.FreeBlockCount),
		}
	}
	return prior
}

func clampNonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// expandHolidays builds the holiday set for a roster range from the
// configured one-off dates and recurrence rules
func expandHolidays(hc config.HolidayConfig, start, end time.Time) ([]time.Time, error) {
	var holidays []time.Time

	for i, dateStr := range hc.Dates {
		d, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse holidays.dates[%d]: %w", i, err)
		}
		holidays = append(holidays, d)
	}

	for i, ruleStr := range hc.RRules {
		rule, err := rrule.StrToRRule(ruleStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse holidays.rrules[%d]: %w", i, err)
		}
		rule.DTStart(start)
		holidays = append(holidays, rule.Between(start, end, true)...)
	}

	return holidays, nil
}

func peopleNames(people []config.PersonConfig) []string {
	names := make([]string, len(people))
	for i, p := range people {
		names[i] = p.Name
	}
	return names
}

// leavePreferences collects the ranked choices of people without an
// explicit leave week. Config dates are validated on load, so parse
// errors cannot happen here; bad values are simply skipped.
func leavePreferences(people []config.PersonConfig) []roster.LeavePreference {
	var prefs []roster.LeavePreference
	for _, p := range people {
		if p.LeaveWeek != "" {
			continue
		}

		var choices []time.Time
		for _, choice := range []string{p.FirstChoice, p.SecondChoice} {
			if choice == "" {
				continue
			}
			if d, err := time.Parse("2006-01-02", choice); err == nil {
				choices = append(choices, d)
			}
		}
		if len(choices) > 0 {
			prefs = append(prefs, roster.LeavePreference{Person: p.Name, Choices: choices})
		}
	}
	return prefs
}

func fixedLeave(people []config.PersonConfig) map[string]time.Time {
	fixed := make(map[string]time.Time)
	for _, p := range people {
		if p.LeaveWeek == "" {
			continue
		}
		if d, err := time.Parse("2006-01-02", p.LeaveWeek); err == nil {
			fixed[p.Name] = d
		}
	}
	return fixed
}

func toDBAssignments(runID string, days []roster.Day) []db.Assignment {
	assignments := make([]db.Assignment, 0, len(days)*2)
	for _, day := range days {
		dateStr := day.Date.Format("2006-01-02")
		assignments = append(assignments,
			db.Assignment{
				ID:     uuid.New().String(),
				RunID:  runID,
				Date:   dateStr,
				Role:   string(roster.RoleCover),
				Person: day.Cover,
			},
			db.Assignment{
				ID:     uuid.New().String(),
				RunID:  runID,
				Date:   dateStr,
				Role:   string(roster.RoleLate),
				Person: day.Late,
			},
		)
	}
	return assignments
}

func toDBLeaveRecords(runID string, leave []roster.LeaveAssignment) []db.LeaveRecord {
	records := make([]db.LeaveRecord, len(leave))
	for i, la := range leave {
		records[i] = db.LeaveRecord{
			ID:     uuid.New().String(),
			RunID:  runID,
			Person: la.Person,
			Start:  la.Start.Format("2006-01-02"),
			End:    la.End().Format("2006-01-02"),
			Rank:   string(la.Rank),
		}
	}
	return records
}

func toDBSummaries(runID string, summary []roster.PersonSummary) []db.SummaryRow {
	rows := make([]db.SummaryRow, len(summary))
	for i, s := range summary {
		rows[i] = db.SummaryRow{
			ID:             uuid.New().String(),
			RunID:          runID,
			Person:         s.Person,
			CoverCount:     s.Counters.Cover,
			LateCount:      s.Counters.Late,
			FreeBlockCount: s.Counters.FreeBlocks,
			TotalHours:     s.TotalHours,
			LeaveChoice:    string(s.LeaveChoice),
		}
	}
	return rows
}
