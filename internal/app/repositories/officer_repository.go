package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ejmancilla/sigms/internal/app/models"
	"github.com/ejmancilla/sigms/internal/db"
	"github.com/ejmancilla/sigms/internal/pkg/apperrors"
)

// OfficerRepository handles database operations for group officers
type OfficerRepository struct {
	db *db.PostgresDB
}

// NewOfficerRepository creates a new officer repository
func NewOfficerRepository(database *db.PostgresDB) *OfficerRepository {
	return &OfficerRepository{db: database}
}

// ListByGroup retrieves the officers of a group in insertion order.
func (r *OfficerRepository) ListByGroup(ctx context.Context, group string) ([]*models.Officer, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT id, name, position, sig FROM officers WHERE sig = $1 ORDER BY id`, group)
	if err != nil {
		return nil, fmt.Errorf("error listing officers: %w", err)
	}
	defer rows.Close()

	var officers []*models.Officer
	for rows.Next() {
		var officer models.Officer
		if err := rows.Scan(&officer.ID, &officer.Name, &officer.Position, &officer.Group); err != nil {
			return nil, err
		}
		officers = append(officers, &officer)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return officers, nil
}

// CountByGroup counts the officers of a group.
func (r *OfficerRepository) CountByGroup(ctx context.Context, group string) (int, error) {
	var count int
	var err error
	if group == "" {
		err = r.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM officers`).Scan(&count)
	} else {
		err = r.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM officers WHERE sig = $1`, group).Scan(&count)
	}
	if err != nil {
		return 0, fmt.Errorf("error counting officers: %w", err)
	}
	return count, nil
}

// Replace atomically discards all officers of a group and inserts the
// provided list verbatim. Either every row commits or none does.
func (r *OfficerRepository) Replace(ctx context.Context, group string, officers []*models.Officer) error {
	err := r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM officers WHERE sig = $1`, group); err != nil {
			return fmt.Errorf("error clearing officers: %w", err)
		}

		for _, officer := range officers {
			err := tx.QueryRow(ctx,
				`INSERT INTO officers (name, position, sig) VALUES ($1, $2, $3) RETURNING id`,
				officer.Name, officer.Position, group).Scan(&officer.ID)
			if err != nil {
				return fmt.Errorf("error inserting officer: %w", err)
			}
			officer.Group = group
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrStoreFailure, err)
	}
	return nil
}
