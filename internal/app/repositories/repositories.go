package repositories

import (
	"github.com/ejmancilla/sigms/internal/db"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository     *UserRepository
	ScheduleRepository *ScheduleRepository
	OfficerRepository  *OfficerRepository
}

// NewRepositories initializes all repositories
func NewRepositories(database *db.PostgresDB) *Repositories {
	return &Repositories{
		UserRepository:     NewUserRepository(database.Pool),
		ScheduleRepository: NewScheduleRepository(database.Pool),
		OfficerRepository:  NewOfficerRepository(database),
	}
}
