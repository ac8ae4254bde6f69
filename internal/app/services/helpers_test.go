package services

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/ejmancilla/sigms/internal/app/groups"
	"github.com/ejmancilla/sigms/internal/app/models"
)

func testCatalog(t *testing.T) *groups.Catalog {
	t.Helper()
	catalog, err := groups.NewCatalog(groups.DefaultNames())
	require.NoError(t, err)
	return catalog
}

func nopLogger() zerolog.Logger {
	return zerolog.Nop()
}

func studentAccount(id int64, group string, status models.MembershipStatus) *models.Account {
	number := "2021-00001"
	year := 3
	section := "A"
	s := status
	return &models.Account{
		ID:            id,
		Username:      number,
		Role:          models.RoleStudent,
		Name:          "Student",
		Email:         "student@sigms.local",
		Group:         group,
		StudentNumber: &number,
		Year:          &year,
		Section:       &section,
		Status:        &s,
	}
}

func adminAccount(id int64, group string) *models.Account {
	return &models.Account{
		ID:       id,
		Username: groups.Slug(group) + "director",
		Role:     models.RoleAdmin,
		Name:     group + " director",
		Email:    "admin@sigms.local",
		Group:    group,
		Position: "director",
	}
}

func superadminAccount(id int64) *models.Account {
	return &models.Account{
		ID:       id,
		Username: "superadmin",
		Role:     models.RoleSuperadmin,
		Name:     "Super Admin",
		Email:    "superadmin@sigms.local",
	}
}
