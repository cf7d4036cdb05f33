package postgres

import (
	"context"
	"fmt"

	"github.com/dylancreed/ward-rota/pkg/db"
)

// GetRuns retrieves all roster runs
func (d *DB) GetRuns(ctx context.Context) ([]db.Run, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, start_date, end_date, seed
		FROM run
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []db.Run
	for rows.Next() {
		var r db.Run
		if err := rows.Scan(&r.ID, &r.Start, &r.End, &r.Seed); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}

	return runs, nil
}

// InsertRun inserts a new run record
func (d *DB) InsertRun(run *db.Run) error {
	_, err := d.pool.Exec(context.Background(), `
		INSERT INTO run (id, start_date, end_date, seed)
		VALUES ($1, $2, $3, $4)
	`, run.ID, run.Start, run.End, run.Seed)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}
	return nil
}
