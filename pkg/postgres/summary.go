package postgres

import (
	"context"
	"fmt"

	"github.com/dylancreed/ward-rota/pkg/db"
)

// GetSummaries retrieves the per-person summary rows for a run,
// ordered by person name
func (d *DB) GetSummaries(ctx context.Context, runID string) ([]db.SummaryRow, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, run_id, person, cover_count, late_count, free_block_count, total_hours, leave_choice
		FROM summary_row
		WHERE run_id = $1
		ORDER BY person
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query summaries: %w", err)
	}
	defer rows.Close()

	var summaries []db.SummaryRow
	for rows.Next() {
		var s db.SummaryRow
		if err := rows.Scan(&s.ID, &s.RunID, &s.Person, &s.CoverCount, &s.LateCount,
			&s.FreeBlockCount, &s.TotalHours, &s.LeaveChoice); err != nil {
			return nil, fmt.Errorf("failed to scan summary row: %w", err)
		}
		summaries = append(summaries, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating summaries: %w", err)
	}

	return summaries, nil
}

// InsertSummaries inserts summary rows in one transaction
func (d *DB) InsertSummaries(rows []db.SummaryRow) error {
	if len(rows) == 0 {
		return nil
	}

	ctx := context.Background()
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, s := range rows {
		_, err := tx.Exec(ctx, `
			INSERT INTO summary_row (id, run_id, person, cover_count, late_count, free_block_count, total_hours, leave_choice)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, s.ID, s.RunID, s.Person, s.CoverCount, s.LateCount, s.FreeBlockCount, s.TotalHours, s.LeaveChoice)
		if err != nil {
			return fmt.Errorf("failed to insert summary row: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
