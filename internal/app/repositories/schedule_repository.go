package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ejmancilla/sigms/internal/app/models"
	"github.com/ejmancilla/sigms/internal/pkg/apperrors"
	"github.com/ejmancilla/sigms/internal/pkg/dberrors"
)

const scheduleColumns = `id, title, description, date, time, room, sig, kind, status, created_by, feedback, created_at`

// ScheduleRepository handles database operations for schedule requests
type ScheduleRepository struct {
	db *pgxpool.Pool
}

// NewScheduleRepository creates a new schedule repository
func NewScheduleRepository(db *pgxpool.Pool) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

func scanRequest(row pgx.Row) (*models.ScheduleRequest, error) {
	var req models.ScheduleRequest
	err := row.Scan(
		&req.ID,
		&req.Title,
		&req.Description,
		&req.Date,
		&req.Time,
		&req.Room,
		&req.Group,
		&req.Kind,
		&req.Status,
		&req.CreatedBy,
		&req.Feedback,
		&req.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// Create inserts a new request and fills in its ID.
func (r *ScheduleRepository) Create(ctx context.Context, req *models.ScheduleRequest) error {
	query := `
		INSERT INTO schedule_requests (title, description, date, time, room, sig, kind, status, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		req.Title,
		req.Description,
		req.Date,
		req.Time,
		req.Room,
		req.Group,
		req.Kind,
		req.Status,
		req.CreatedBy,
	).Scan(&req.ID, &req.CreatedAt)

	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrStoreFailure, err)
	}
	return nil
}

// GetByID retrieves a request by ID
func (r *ScheduleRepository) GetByID(ctx context.Context, id int64) (*models.ScheduleRequest, error) {
	query := `SELECT ` + scheduleColumns + ` FROM schedule_requests WHERE id = $1`

	req, err := scanRequest(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error retrieving schedule request: %w", err)
	}
	return req, nil
}

// ApprovedEventExistsOnDate checks for an approved event on the given date
// across all groups. The date is a global exclusive resource for events.
func (r *ScheduleRepository) ApprovedEventExistsOnDate(ctx context.Context, date string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM schedule_requests
			WHERE kind = 'event' AND status = 'approved' AND date = $1::date
		)`, date).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking event date conflict: %w", err)
	}
	return exists, nil
}

// ApprovedSlotExistsAt checks for any approved request with identical
// date, time and room, regardless of kind or group. Approved events that
// carry a time and room occupy the slot just like meetings.
func (r *ScheduleRepository) ApprovedSlotExistsAt(ctx context.Context, date, timeOfDay, room string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM schedule_requests
			WHERE status = 'approved'
			AND date = $1::date AND time = $2 AND room = $3
		)`, date, timeOfDay, room).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking slot conflict: %w", err)
	}
	return exists, nil
}

// UpdateDecision sets the status and feedback of a pending request. The
// partial unique indexes on approved rows may reject the update when a
// competing request was approved first; that surfaces as the matching
// conflict error.
func (r *ScheduleRepository) UpdateDecision(ctx context.Context, id int64, status models.RequestStatus, feedback string) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE schedule_requests SET status = $1, feedback = $2 WHERE id = $3`,
		status, feedback, id)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "schedule_requests_approved_event_date_key") {
			return apperrors.ErrDateConflict
		}
		if dberrors.IsDuplicateConstraintError(err, "schedule_requests_approved_slot_key") {
			return apperrors.ErrSlotConflict
		}
		return fmt.Errorf("%w: %v", apperrors.ErrStoreFailure, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// RequestFilter narrows request listings. Zero values mean "no filter".
type RequestFilter struct {
	Group    string
	Statuses []models.RequestStatus
}

// List retrieves requests matching the filter, ordered by date.
func (r *ScheduleRepository) List(ctx context.Context, filter RequestFilter) ([]*models.ScheduleRequest, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + scheduleColumns + ` FROM schedule_requests WHERE 1=1`)

	var args []interface{}
	if filter.Group != "" {
		args = append(args, filter.Group)
		sb.WriteString(fmt.Sprintf(` AND sig = $%d`, len(args)))
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, 0, len(filter.Statuses))
		for _, s := range filter.Statuses {
			args = append(args, string(s))
			placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)))
		}
		sb.WriteString(` AND status IN (` + strings.Join(placeholders, ", ") + `)`)
	}
	sb.WriteString(` ORDER BY date, id`)

	rows, err := r.db.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("error listing schedule requests: %w", err)
	}
	defer rows.Close()

	var requests []*models.ScheduleRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return requests, nil
}

// CountByGroupAndStatus counts requests for a group, optionally by status.
func (r *ScheduleRepository) CountByGroupAndStatus(ctx context.Context, group string, status models.RequestStatus) (int, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT COUNT(*) FROM schedule_requests WHERE 1=1`)

	var args []interface{}
	if group != "" {
		args = append(args, group)
		sb.WriteString(fmt.Sprintf(` AND sig = $%d`, len(args)))
	}
	if status != "" {
		args = append(args, string(status))
		sb.WriteString(fmt.Sprintf(` AND status = $%d`, len(args)))
	}

	var count int
	if err := r.db.QueryRow(ctx, sb.String(), args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting schedule requests: %w", err)
	}
	return count, nil
}
