package services

import (
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ejmancilla/sigms/internal/app/models"
	"github.com/ejmancilla/sigms/internal/app/models/dto"
	"github.com/ejmancilla/sigms/internal/app/reports"
	"github.com/ejmancilla/sigms/internal/pkg/apperrors"
)

type reportFixture struct {
	svc       *ReportService
	accounts  *fakeAccountStore
	schedules *fakeScheduleStore
	officers  *fakeOfficerStore
}

func newReportFixture(t *testing.T) *reportFixture {
	t.Helper()
	accounts := newFakeAccountStore()
	schedules := newFakeScheduleStore()
	officers := newFakeOfficerStore()
	return &reportFixture{
		svc:       NewReportService(accounts, schedules, officers, testCatalog(t), nopLogger()),
		accounts:  accounts,
		schedules: schedules,
		officers:  officers,
	}
}

func (f *reportFixture) seedStudent(t *testing.T, group string, status models.MembershipStatus, year int, major string) {
	t.Helper()
	account := studentAccount(0, group, status)
	number := "2021-" + strconv.FormatInt(f.accounts.nextID, 10)
	account.Username = number
	account.StudentNumber = &number
	account.Year = &year
	account.Major = &major
	require.NoError(t, f.accounts.Create(context.Background(), account))
}

func findTable(t *testing.T, bundle *reports.Bundle, name string) reports.Table {
	t.Helper()
	for _, table := range bundle.Tables {
		if table.Name == name {
			return table
		}
	}
	t.Fatalf("table %q not found in bundle %q", name, bundle.Title)
	return reports.Table{}
}

func TestMemberList_RequiresAdmin(t *testing.T) {
	f := newReportFixture(t)

	_, err := f.svc.MemberList(context.Background(), studentAccount(1, "CodEx", models.StatusApproved), &dto.MemberListQuery{})
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestMemberList_OnlyApprovedOwnGroup(t *testing.T) {
	f := newReportFixture(t)
	f.seedStudent(t, "CodEx", models.StatusApproved, 2, "SE")
	f.seedStudent(t, "CodEx", models.StatusPending, 3, "SE")
	f.seedStudent(t, "Netac", models.StatusApproved, 2, "IT")

	bundle, err := f.svc.MemberList(context.Background(), adminAccount(10, "CodEx"), &dto.MemberListQuery{})
	require.NoError(t, err)

	table := findTable(t, bundle, "Members")
	assert.Equal(t, []string{"No.", "Student Number", "Name", "Year", "Section", "Major"}, table.Headers)
	assert.Len(t, table.Rows, 1)
	assert.Equal(t, "Total Members", bundle.Summary[0].Label)
	assert.Equal(t, "1", bundle.Summary[0].Value)
}

func TestStatisticsReport_PercentagesSumToHundred(t *testing.T) {
	f := newReportFixture(t)
	f.seedStudent(t, "CodEx", models.StatusApproved, 1, "SE")
	f.seedStudent(t, "CodEx", models.StatusApproved, 1, "SE")
	f.seedStudent(t, "CodEx", models.StatusApproved, 2, "IT")
	f.seedStudent(t, "CodEx", models.StatusApproved, 3, "IT")

	bundle, err := f.svc.StatisticsReport(context.Background(), adminAccount(10, "CodEx"))
	require.NoError(t, err)

	years := findTable(t, bundle, "Year Distribution")
	var sum float64
	for _, row := range years.Rows {
		value, err := strconv.ParseFloat(strings.TrimSuffix(row[2], "%"), 64)
		require.NoError(t, err)
		sum += value
	}
	assert.InDelta(t, 100.0, sum, 0.2)

	majors := findTable(t, bundle, "Major Distribution")
	assert.Len(t, majors.Rows, 2)
}

func TestStatisticsReport_ZeroMembersNoFault(t *testing.T) {
	f := newReportFixture(t)

	bundle, err := f.svc.StatisticsReport(context.Background(), adminAccount(10, "CodEx"))
	require.NoError(t, err)

	years := findTable(t, bundle, "Year Distribution")
	assert.Empty(t, years.Rows)
	assert.Equal(t, "0", bundle.Summary[0].Value)
}

func TestEventsReport_StatusSummary(t *testing.T) {
	f := newReportFixture(t)
	ctx := context.Background()
	scheduling := NewSchedulingService(f.schedules, nopLogger())

	first, err := scheduling.Submit(ctx, adminAccount(10, "CodEx"), eventRequest("2024-05-01"))
	require.NoError(t, err)
	require.NoError(t, scheduling.Decide(ctx, superadminAccount(1), first.ID, "approve", ""))
	_, err = scheduling.Submit(ctx, adminAccount(10, "CodEx"), meetingRequest("2024-05-02", "14:00", "A1"))
	require.NoError(t, err)

	bundle, err := f.svc.EventsReport(ctx, adminAccount(10, "CodEx"))
	require.NoError(t, err)

	byLabel := map[string]string{}
	for _, item := range bundle.Summary {
		byLabel[item.Label] = item.Value
	}
	assert.Equal(t, "1", byLabel["Pending"])
	assert.Equal(t, "1", byLabel["Approved"])
	assert.Equal(t, "0", byLabel["Rejected"])
}

func TestComparativeStatistics_TotalRow(t *testing.T) {
	f := newReportFixture(t)
	f.seedStudent(t, "CodEx", models.StatusApproved, 1, "SE")
	f.seedStudent(t, "Netac", models.StatusApproved, 2, "IT")
	f.seedStudent(t, "Netac", models.StatusPending, 2, "IT")

	bundle, err := f.svc.ComparativeStatistics(context.Background(), superadminAccount(1))
	require.NoError(t, err)

	table := findTable(t, bundle, "SIG Comparison")
	require.Len(t, table.Rows, 6, "five groups plus TOTAL")

	total := table.Rows[len(table.Rows)-1]
	assert.Equal(t, "TOTAL", total[0])
	assert.Equal(t, "2", total[1])
	assert.Equal(t, "1", total[2])
}

func TestComparativeStatistics_SuperadminOnly(t *testing.T) {
	f := newReportFixture(t)

	_, err := f.svc.ComparativeStatistics(context.Background(), adminAccount(10, "CodEx"))
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestSystemReport_Summary(t *testing.T) {
	f := newReportFixture(t)
	ctx := context.Background()
	f.seedStudent(t, "CodEx", models.StatusApproved, 1, "SE")
	f.seedStudent(t, "CodEx", models.StatusPending, 2, "SE")
	require.NoError(t, f.accounts.Create(ctx, adminAccount(0, "CodEx")))

	bundle, err := f.svc.SystemReport(ctx, superadminAccount(1))
	require.NoError(t, err)

	byLabel := map[string]string{}
	for _, item := range bundle.Summary {
		byLabel[item.Label] = item.Value
	}
	assert.Equal(t, "2", byLabel["Registered Students"])
	assert.Equal(t, "1", byLabel["Approved Members"])
	assert.Equal(t, "1", byLabel["Admins"])

	breakdown := findTable(t, bundle, "SIG Breakdown")
	assert.Len(t, breakdown.Rows, 5)
}

func TestCompleteMemberDatabase_PerGroupCounts(t *testing.T) {
	f := newReportFixture(t)
	f.seedStudent(t, "CodEx", models.StatusApproved, 1, "SE")
	f.seedStudent(t, "CodEx", models.StatusApproved, 2, "SE")
	f.seedStudent(t, "Netac", models.StatusApproved, 2, "IT")

	bundle, err := f.svc.CompleteMemberDatabase(context.Background(), superadminAccount(1))
	require.NoError(t, err)

	table := findTable(t, bundle, "All Members")
	assert.Len(t, table.Rows, 3)

	byLabel := map[string]string{}
	for _, item := range bundle.Summary {
		byLabel[item.Label] = item.Value
	}
	assert.Equal(t, "3", byLabel["Total Members"])
	assert.Equal(t, "2", byLabel["CodEx"])
	assert.Equal(t, "1", byLabel["Netac"])
	assert.Equal(t, "0", byLabel["Robotix"])
}
