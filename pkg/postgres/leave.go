package postgres

import (
	"context"
	"fmt"

	"github.com/dylancreed/ward-rota/pkg/db"
)

// GetLeaveRecords retrieves the resolved leave schedule for a run,
// ordered chronologically
func (d *DB) GetLeaveRecords(ctx context.Context, runID string) ([]db.LeaveRecord, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, run_id, person, start_date, end_date, rank
		FROM leave_record
		WHERE run_id = $1
		ORDER BY start_date
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query leave records: %w", err)
	}
	defer rows.Close()

	var records []db.LeaveRecord
	for rows.Next() {
		var lr db.LeaveRecord
		if err := rows.Scan(&lr.ID, &lr.RunID, &lr.Person, &lr.Start, &lr.End, &lr.Rank); err != nil {
			return nil, fmt.Errorf("failed to scan leave record: %w", err)
		}
		records = append(records, lr)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating leave records: %w", err)
	}

	return records, nil
}

// InsertLeaveRecords inserts leave records in one transaction
func (d *DB) InsertLeaveRecords(records []db.LeaveRecord) error {
	if len(records) == 0 {
		return nil
	}

	ctx := context.Background()
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, lr := range records {
		_, err := tx.Exec(ctx, `
			INSERT INTO leave_record (id, run_id, person, start_date, end_date, rank)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, lr.ID, lr.RunID, lr.Person, lr.Start, lr.End, lr.Rank)
		if err != nil {
			return fmt.Errorf("failed to insert leave record: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
