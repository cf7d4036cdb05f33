package postgres

import (
	"context"
	"fmt"

	"github.com/dylancreed/ward-rota/pkg/db"
)

// GetAssignments retrieves the day-by-day role assignments for a run,
// ordered by date then role
func (d *DB) GetAssignments(ctx context.Context, runID string) ([]db.Assignment, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, run_id, duty_date, role, person
		FROM assignment
		WHERE run_id = $1
		ORDER BY duty_date, role
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}
	defer rows.Close()

	var assignments []db.Assignment
	for rows.Next() {
		var a db.Assignment
		if err := rows.Scan(&a.ID, &a.RunID, &a.Date, &a.Role, &a.Person); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		assignments = append(assignments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assignments: %w", err)
	}

	return assignments, nil
}

// InsertAssignments inserts assignment records in one transaction
func (d *DB) InsertAssignments(assignments []db.Assignment) error {
	if len(assignments) == 0 {
		return nil
	}

	ctx := context.Background()
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, a := range assignments {
		_, err := tx.Exec(ctx, `
			INSERT INTO assignment (id, run_id, duty_date, role, person)
			VALUES ($1, $2, $3, $4, $5)
		`, a.ID, a.RunID, a.Date, a.Role, a.Person)
		if err != nil {
			return fmt.Errorf("failed to insert assignment: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
