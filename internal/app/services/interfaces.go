package services

import (
	"context"

	"github.com/ejmancilla/sigms/internal/app/models"
	"github.com/ejmancilla/sigms/internal/app/repositories"
)

// AccountStore is the persistence surface the services need for accounts.
// *repositories.UserRepository satisfies it.
type AccountStore interface {
	Create(ctx context.Context, account *models.Account) error
	GetByID(ctx context.Context, id int64) (*models.Account, error)
	GetByUsernameAndRole(ctx context.Context, username string, role models.RoleType) (*models.Account, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	StudentNumberExists(ctx context.Context, studentNumber string) (bool, error)
	UpdateStatus(ctx context.Context, id int64, status models.MembershipStatus) error
	Delete(ctx context.Context, id int64) error
	ListStudents(ctx context.Context, filter repositories.StudentFilter) ([]*models.Account, error)
	CountStudents(ctx context.Context, group string, status models.MembershipStatus) (int, error)
	CountByRole(ctx context.Context, role models.RoleType) (int, error)
	UpdateProfile(ctx context.Context, id int64, update repositories.ProfileUpdate) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	FilterOptions(ctx context.Context) (*repositories.MemberFilterOptions, error)
}

// ScheduleStore is the persistence surface for event and meeting requests.
// *repositories.ScheduleRepository satisfies it.
type ScheduleStore interface {
	Create(ctx context.Context, req *models.ScheduleRequest) error
	GetByID(ctx context.Context, id int64) (*models.ScheduleRequest, error)
	ApprovedEventExistsOnDate(ctx context.Context, date string) (bool, error)
	ApprovedSlotExistsAt(ctx context.Context, date, timeOfDay, room string) (bool, error)
	UpdateDecision(ctx context.Context, id int64, status models.RequestStatus, feedback string) error
	List(ctx context.Context, filter repositories.RequestFilter) ([]*models.ScheduleRequest, error)
	CountByGroupAndStatus(ctx context.Context, group string, status models.RequestStatus) (int, error)
}

// OfficerStore is the persistence surface for officer rosters.
// *repositories.OfficerRepository satisfies it.
type OfficerStore interface {
	ListByGroup(ctx context.Context, group string) ([]*models.Officer, error)
	CountByGroup(ctx context.Context, group string) (int, error)
	Replace(ctx context.Context, group string, officers []*models.Officer) error
}
