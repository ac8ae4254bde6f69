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

const accountColumns = `id, username, password, role, name, email,
		COALESCE(sig, ''), COALESCE(position, ''),
		student_number, year, section, major, status,
		created_at, updated_at`

// UserRepository handles database operations for accounts
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

func scanAccount(row pgx.Row) (*models.Account, error) {
	var a models.Account
	var status *string
	err := row.Scan(
		&a.ID,
		&a.Username,
		&a.Password,
		&a.Role,
		&a.Name,
		&a.Email,
		&a.Group,
		&a.Position,
		&a.StudentNumber,
		&a.Year,
		&a.Section,
		&a.Major,
		&status,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if status != nil {
		s := models.MembershipStatus(*status)
		a.Status = &s
	}
	return &a, nil
}

// Create inserts a new account and fills in its ID. Unique violations on
// username or student number surface as ErrDuplicateKey.
func (r *UserRepository) Create(ctx context.Context, account *models.Account) error {
	query := `
		INSERT INTO users (username, password, role, name, email, sig, position,
			student_number, year, section, major, status)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''), $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at
	`

	var status *string
	if account.Status != nil {
		s := string(*account.Status)
		status = &s
	}

	err := r.db.QueryRow(ctx, query,
		account.Username,
		account.Password,
		account.Role,
		account.Name,
		account.Email,
		account.Group,
		account.Position,
		account.StudentNumber,
		account.Year,
		account.Section,
		account.Major,
		status,
	).Scan(&account.ID, &account.CreatedAt, &account.UpdatedAt)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_username_key") {
			return fmt.Errorf("%w: username already exists", apperrors.ErrDuplicateKey)
		}
		if dberrors.IsDuplicateConstraintError(err, "users_student_number_key") {
			return fmt.Errorf("%w: student number already exists", apperrors.ErrDuplicateKey)
		}
		return fmt.Errorf("error creating account: %w", err)
	}

	return nil
}

// GetByID retrieves an account by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM users WHERE id = $1`

	account, err := scanAccount(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error retrieving account: %w", err)
	}
	return account, nil
}

// GetByUsernameAndRole retrieves an account by its login identity. The role
// is part of the lookup: the same username can never serve two roles, but
// the claimed role must match what is stored.
func (r *UserRepository) GetByUsernameAndRole(ctx context.Context, username string, role models.RoleType) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM users WHERE username = $1 AND role = $2`

	account, err := scanAccount(r.db.QueryRow(ctx, query, username, role))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error retrieving account by username: %w", err)
	}
	return account, nil
}

// UsernameExists checks whether any account already uses the username.
func (r *UserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`, username).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking username existence: %w", err)
	}
	return exists, nil
}

// StudentNumberExists checks whether a student already uses the number.
func (r *UserRepository) StudentNumberExists(ctx context.Context, studentNumber string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE student_number = $1 AND role = 'student')`,
		studentNumber).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking student number existence: %w", err)
	}
	return exists, nil
}

// UpdateStatus sets the membership status of an account.
func (r *UserRepository) UpdateStatus(ctx context.Context, id int64, status models.MembershipStatus) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE users SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrStoreFailure, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Delete removes an account row.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrStoreFailure, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// StudentFilter narrows student listings. Zero values mean "no filter".
type StudentFilter struct {
	Group        string
	Statuses     []models.MembershipStatus
	Year         int
	Section      string
	Major        string
	NumberSearch string // substring match on student_number

	// OrderByIDDesc orders review queues newest-first; the default is
	// name ascending for member listings.
	OrderByIDDesc bool
}

// ListStudents retrieves student accounts matching the filter.
func (r *UserRepository) ListStudents(ctx context.Context, filter StudentFilter) ([]*models.Account, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + accountColumns + ` FROM users WHERE role = 'student'`)

	var args []interface{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Group != "" {
		sb.WriteString(` AND sig = ` + arg(filter.Group))
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, 0, len(filter.Statuses))
		for _, s := range filter.Statuses {
			placeholders = append(placeholders, arg(string(s)))
		}
		sb.WriteString(` AND status IN (` + strings.Join(placeholders, ", ") + `)`)
	}
	if filter.Year > 0 {
		sb.WriteString(` AND year = ` + arg(filter.Year))
	}
	if filter.Section != "" {
		sb.WriteString(` AND section = ` + arg(filter.Section))
	}
	if filter.Major != "" {
		sb.WriteString(` AND major = ` + arg(filter.Major))
	}
	if filter.NumberSearch != "" {
		sb.WriteString(` AND student_number LIKE ` + arg("%"+filter.NumberSearch+"%"))
	}

	if filter.OrderByIDDesc {
		sb.WriteString(` ORDER BY id DESC`)
	} else {
		sb.WriteString(` ORDER BY name ASC`)
	}

	rows, err := r.db.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("error listing students: %w", err)
	}
	defer rows.Close()

	var accounts []*models.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return accounts, nil
}

// CountStudents counts students matching a group and optional status.
func (r *UserRepository) CountStudents(ctx context.Context, group string, status models.MembershipStatus) (int, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT COUNT(*) FROM users WHERE role = 'student'`)

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
		return 0, fmt.Errorf("error counting students: %w", err)
	}
	return count, nil
}

// CountByRole counts accounts with a given role.
func (r *UserRepository) CountByRole(ctx context.Context, role models.RoleType) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE role = $1`, role).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting accounts: %w", err)
	}
	return count, nil
}

// ProfileUpdate carries the self-service editable fields. Student-only
// pointers stay nil for admin and superadmin accounts.
type ProfileUpdate struct {
	Name    string
	Email   string
	Year    *int
	Section *string
	Major   *string
	Group   *string
}

// UpdateProfile applies a self-service profile edit.
func (r *UserRepository) UpdateProfile(ctx context.Context, id int64, update ProfileUpdate) error {
	query := `
		UPDATE users SET
			name = $1,
			email = $2,
			year = COALESCE($3, year),
			section = COALESCE($4, section),
			major = COALESCE($5, major),
			sig = COALESCE($6, sig),
			updated_at = NOW()
		WHERE id = $7
	`

	cmdTag, err := r.db.Exec(ctx, query,
		update.Name, update.Email, update.Year, update.Section, update.Major, update.Group, id)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrStoreFailure, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdatePassword replaces the stored password hash.
func (r *UserRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE users SET password = $1, updated_at = NOW() WHERE id = $2`, passwordHash, id)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrStoreFailure, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// MemberFilterOptions holds the distinct values member listings can filter
// on, for the search form dropdowns.
type MemberFilterOptions struct {
	Years    []int    `json:"years"`
	Sections []string `json:"sections"`
	Majors   []string `json:"majors"`
	Groups   []string `json:"groups"`
}

// FilterOptions collects the distinct filter values across all students.
func (r *UserRepository) FilterOptions(ctx context.Context) (*MemberFilterOptions, error) {
	options := &MemberFilterOptions{}

	rows, err := r.db.Query(ctx,
		`SELECT DISTINCT year FROM users WHERE role = 'student' AND year IS NOT NULL ORDER BY year`)
	if err != nil {
		return nil, fmt.Errorf("error listing years: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var year int
		if err := rows.Scan(&year); err != nil {
			return nil, err
		}
		options.Years = append(options.Years, year)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	stringColumn := func(query string, dest *[]string) error {
		rows, err := r.db.Query(ctx, query)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var v string
			if err := rows.Scan(&v); err != nil {
				return err
			}
			*dest = append(*dest, v)
		}
		return rows.Err()
	}

	if err := stringColumn(
		`SELECT DISTINCT section FROM users WHERE role = 'student' AND section IS NOT NULL ORDER BY section`,
		&options.Sections); err != nil {
		return nil, fmt.Errorf("error listing sections: %w", err)
	}
	if err := stringColumn(
		`SELECT DISTINCT major FROM users WHERE role = 'student' AND major IS NOT NULL AND major <> '' ORDER BY major`,
		&options.Majors); err != nil {
		return nil, fmt.Errorf("error listing majors: %w", err)
	}
	if err := stringColumn(
		`SELECT DISTINCT sig FROM users WHERE role = 'student' AND sig IS NOT NULL ORDER BY sig`,
		&options.Groups); err != nil {
		return nil, fmt.Errorf("error listing groups: %w", err)
	}

	return options, nil
}
