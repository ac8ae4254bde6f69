package services

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/ejmancilla/sigms/internal/app/access"
	"github.com/ejmancilla/sigms/internal/app/groups"
	"github.com/ejmancilla/sigms/internal/app/models"
	"github.com/ejmancilla/sigms/internal/app/models/dto"
	"github.com/ejmancilla/sigms/internal/app/reports"
	"github.com/ejmancilla/sigms/internal/app/repositories"
	"github.com/ejmancilla/sigms/internal/metrics"
)

// ReportService precomputes report bundles from read-only registry
// queries. Renderers consume a finished bundle and never reach back into
// the stores.
type ReportService struct {
	accounts  AccountStore
	schedules ScheduleStore
	officers  OfficerStore
	catalog   *groups.Catalog
	logger    zerolog.Logger
}

// NewReportService creates a new ReportService
func NewReportService(accounts AccountStore, schedules ScheduleStore, officers OfficerStore, catalog *groups.Catalog, logger zerolog.Logger) *ReportService {
	return &ReportService{
		accounts:  accounts,
		schedules: schedules,
		officers:  officers,
		catalog:   catalog,
		logger:    logger,
	}
}

// MemberList builds the filterable member listing for the actor's group.
func (s *ReportService) MemberList(ctx context.Context, actor *models.Account, query *dto.MemberListQuery) (*reports.Bundle, error) {
	if err := access.RequireAdmin(actor); err != nil {
		return nil, err
	}

	filter := repositories.StudentFilter{
		Group:        actor.Group,
		Statuses:     []models.MembershipStatus{models.StatusApproved},
		Section:      query.Section,
		Major:        query.Major,
		NumberSearch: query.NumberSearch,
	}
	if query.Year != nil {
		filter.Year = *query.Year
	}

	members, err := s.accounts.ListStudents(ctx, filter)
	if err != nil {
		return nil, err
	}

	table := reports.Table{
		Name:    "Members",
		Headers: []string{"No.", "Student Number", "Name", "Year", "Section", "Major"},
	}
	for i, m := range members {
		table.Rows = append(table.Rows, []string{
			strconv.Itoa(i + 1),
			strPtr(m.StudentNumber),
			m.Name,
			intPtr(m.Year),
			strPtr(m.Section),
			strPtr(m.Major),
		})
	}

	metrics.ReportsGeneratedTotal.WithLabelValues("member_list").Inc()
	return &reports.Bundle{
		Title:       fmt.Sprintf("%s Member List", actor.Group),
		GeneratedAt: time.Now(),
		Summary: []reports.SummaryItem{
			{Label: "Total Members", Value: strconv.Itoa(len(members))},
		},
		Tables: []reports.Table{table},
	}, nil
}

// OfficersList builds the officer roster report for the actor's group.
func (s *ReportService) OfficersList(ctx context.Context, actor *models.Account) (*reports.Bundle, error) {
	if err := access.RequireAdmin(actor); err != nil {
		return nil, err
	}

	officers, err := s.officers.ListByGroup(ctx, actor.Group)
	if err != nil {
		return nil, err
	}

	table := reports.Table{
		Name:    "Officers",
		Headers: []string{"No.", "Position", "Name"},
	}
	for i, o := range officers {
		table.Rows = append(table.Rows, []string{strconv.Itoa(i + 1), o.Position, o.Name})
	}

	metrics.ReportsGeneratedTotal.WithLabelValues("officers_list").Inc()
	return &reports.Bundle{
		Title:       fmt.Sprintf("%s Officers", actor.Group),
		GeneratedAt: time.Now(),
		Summary: []reports.SummaryItem{
			{Label: "Total Officers", Value: strconv.Itoa(len(officers))},
		},
		Tables: []reports.Table{table},
	}, nil
}

// EventsReport builds the schedule report for the actor's group with a
// status-count summary.
func (s *ReportService) EventsReport(ctx context.Context, actor *models.Account) (*reports.Bundle, error) {
	if err := access.RequireAdmin(actor); err != nil {
		return nil, err
	}

	requests, err := s.schedules.List(ctx, repositories.RequestFilter{Group: actor.Group})
	if err != nil {
		return nil, err
	}

	metrics.ReportsGeneratedTotal.WithLabelValues("events_report").Inc()
	return &reports.Bundle{
		Title:       fmt.Sprintf("%s Events Report", actor.Group),
		GeneratedAt: time.Now(),
		Summary:     requestStatusSummary(requests),
		Tables:      []reports.Table{requestTable("Events", requests, false)},
	}, nil
}

// StatisticsReport builds year-level and major distributions over the
// approved members of the actor's group. Every percentage is 0 when the
// group has no approved members.
func (s *ReportService) StatisticsReport(ctx context.Context, actor *models.Account) (*reports.Bundle, error) {
	if err := access.RequireAdmin(actor); err != nil {
		return nil, err
	}

	members, err := s.accounts.ListStudents(ctx, repositories.StudentFilter{
		Group:    actor.Group,
		Statuses: []models.MembershipStatus{models.StatusApproved},
	})
	if err != nil {
		return nil, err
	}

	metrics.ReportsGeneratedTotal.WithLabelValues("statistics_report").Inc()
	return &reports.Bundle{
		Title:       fmt.Sprintf("%s Statistics Report", actor.Group),
		GeneratedAt: time.Now(),
		Summary: []reports.SummaryItem{
			{Label: "Approved Members", Value: strconv.Itoa(len(members))},
		},
		Tables: []reports.Table{
			yearDistributionTable(members),
			majorDistributionTable(members),
		},
	}, nil
}

// CompleteMemberDatabase builds the system-wide member listing with
// per-group counts.
func (s *ReportService) CompleteMemberDatabase(ctx context.Context, actor *models.Account) (*reports.Bundle, error) {
	if err := access.RequireSuperadmin(actor); err != nil {
		return nil, err
	}

	members, err := s.accounts.ListStudents(ctx, repositories.StudentFilter{
		Statuses: []models.MembershipStatus{models.StatusApproved},
	})
	if err != nil {
		return nil, err
	}

	table := reports.Table{
		Name:    "All Members",
		Headers: []string{"No.", "Group", "Student Number", "Name", "Year", "Section", "Major"},
	}
	perGroup := make(map[string]int)
	for i, m := range members {
		perGroup[m.Group]++
		table.Rows = append(table.Rows, []string{
			strconv.Itoa(i + 1),
			m.Group,
			strPtr(m.StudentNumber),
			m.Name,
			intPtr(m.Year),
			strPtr(m.Section),
			strPtr(m.Major),
		})
	}

	summary := []reports.SummaryItem{
		{Label: "Total Members", Value: strconv.Itoa(len(members))},
	}
	for _, group := range s.catalog.All() {
		summary = append(summary, reports.SummaryItem{
			Label: group,
			Value: strconv.Itoa(perGroup[group]),
		})
	}

	metrics.ReportsGeneratedTotal.WithLabelValues("member_database").Inc()
	return &reports.Bundle{
		Title:       "Complete Member Database",
		GeneratedAt: time.Now(),
		Summary:     summary,
		Tables:      []reports.Table{table},
	}, nil
}

// AllEvents builds the system-wide schedule report.
func (s *ReportService) AllEvents(ctx context.Context, actor *models.Account) (*reports.Bundle, error) {
	if err := access.RequireSuperadmin(actor); err != nil {
		return nil, err
	}

	requests, err := s.schedules.List(ctx, repositories.RequestFilter{})
	if err != nil {
		return nil, err
	}

	metrics.ReportsGeneratedTotal.WithLabelValues("all_events").Inc()
	return &reports.Bundle{
		Title:       "All Events and Meetings",
		GeneratedAt: time.Now(),
		Summary:     requestStatusSummary(requests),
		Tables:      []reports.Table{requestTable("All Events", requests, true)},
	}, nil
}

// ComparativeStatistics builds the per-group comparison table with a TOTAL
// row.
func (s *ReportService) ComparativeStatistics(ctx context.Context, actor *models.Account) (*reports.Bundle, error) {
	if err := access.RequireSuperadmin(actor); err != nil {
		return nil, err
	}

	table := reports.Table{
		Name:    "SIG Comparison",
		Headers: []string{"SIG", "Approved Members", "Pending Applications", "Approved Events", "Officers"},
	}
	var totalMembers, totalPending, totalEvents, totalOfficers int
	for _, group := range s.catalog.All() {
		approved, err := s.accounts.CountStudents(ctx, group, models.StatusApproved)
		if err != nil {
			return nil, err
		}
		pending, err := s.accounts.CountStudents(ctx, group, models.StatusPending)
		if err != nil {
			return nil, err
		}
		events, err := s.schedules.CountByGroupAndStatus(ctx, group, models.RequestApproved)
		if err != nil {
			return nil, err
		}
		officers, err := s.officers.CountByGroup(ctx, group)
		if err != nil {
			return nil, err
		}

		totalMembers += approved
		totalPending += pending
		totalEvents += events
		totalOfficers += officers
		table.Rows = append(table.Rows, []string{
			group,
			strconv.Itoa(approved),
			strconv.Itoa(pending),
			strconv.Itoa(events),
			strconv.Itoa(officers),
		})
	}
	table.Rows = append(table.Rows, []string{
		"TOTAL",
		strconv.Itoa(totalMembers),
		strconv.Itoa(totalPending),
		strconv.Itoa(totalEvents),
		strconv.Itoa(totalOfficers),
	})

	metrics.ReportsGeneratedTotal.WithLabelValues("comparative_statistics").Inc()
	return &reports.Bundle{
		Title:       "SIG Comparative Statistics",
		GeneratedAt: time.Now(),
		Tables:      []reports.Table{table},
	}, nil
}

// SystemReport builds the executive overview: totals, SIG breakdown,
// schedule status summary and the system-wide year distribution.
func (s *ReportService) SystemReport(ctx context.Context, actor *models.Account) (*reports.Bundle, error) {
	if err := access.RequireSuperadmin(actor); err != nil {
		return nil, err
	}

	members, err := s.accounts.ListStudents(ctx, repositories.StudentFilter{
		Statuses: []models.MembershipStatus{models.StatusApproved},
	})
	if err != nil {
		return nil, err
	}
	totalStudents, err := s.accounts.CountByRole(ctx, models.RoleStudent)
	if err != nil {
		return nil, err
	}
	totalAdmins, err := s.accounts.CountByRole(ctx, models.RoleAdmin)
	if err != nil {
		return nil, err
	}
	requests, err := s.schedules.List(ctx, repositories.RequestFilter{})
	if err != nil {
		return nil, err
	}

	breakdown := reports.Table{
		Name:    "SIG Breakdown",
		Headers: []string{"SIG", "Approved Members", "Officers"},
	}
	perGroup := make(map[string]int)
	for _, m := range members {
		perGroup[m.Group]++
	}
	for _, group := range s.catalog.All() {
		officers, err := s.officers.CountByGroup(ctx, group)
		if err != nil {
			return nil, err
		}
		breakdown.Rows = append(breakdown.Rows, []string{
			group,
			strconv.Itoa(perGroup[group]),
			strconv.Itoa(officers),
		})
	}

	summary := []reports.SummaryItem{
		{Label: "Registered Students", Value: strconv.Itoa(totalStudents)},
		{Label: "Approved Members", Value: strconv.Itoa(len(members))},
		{Label: "Admins", Value: strconv.Itoa(totalAdmins)},
		{Label: "Schedule Requests", Value: strconv.Itoa(len(requests))},
	}
	summary = append(summary, requestStatusSummary(requests)...)

	metrics.ReportsGeneratedTotal.WithLabelValues("system_report").Inc()
	return &reports.Bundle{
		Title:       "System Report",
		GeneratedAt: time.Now(),
		Summary:     summary,
		Tables: []reports.Table{
			breakdown,
			yearDistributionTable(members),
		},
	}, nil
}

// requestTable lays schedule requests out as report rows, optionally with
// a group column for system-wide reports.
func requestTable(name string, requests []*models.ScheduleRequest, withGroup bool) reports.Table {
	table := reports.Table{Name: name}
	if withGroup {
		table.Headers = []string{"No.", "Group", "Title", "Date", "Type", "Status", "Room"}
	} else {
		table.Headers = []string{"No.", "Title", "Date", "Type", "Status", "Room"}
	}
	for i, r := range requests {
		row := []string{strconv.Itoa(i + 1)}
		if withGroup {
			row = append(row, r.Group)
		}
		row = append(row, r.Title, r.DateOnly(), string(r.Kind), string(r.Status), strPtr(r.Room))
		table.Rows = append(table.Rows, row)
	}
	return table
}

func requestStatusSummary(requests []*models.ScheduleRequest) []reports.SummaryItem {
	counts := map[models.RequestStatus]int{}
	for _, r := range requests {
		counts[r.Status]++
	}
	return []reports.SummaryItem{
		{Label: "Pending", Value: strconv.Itoa(counts[models.RequestPending])},
		{Label: "Approved", Value: strconv.Itoa(counts[models.RequestApproved])},
		{Label: "Rejected", Value: strconv.Itoa(counts[models.RequestRejected])},
	}
}

// yearDistributionTable buckets approved members by year level. All
// percentages are 0 when members is empty.
func yearDistributionTable(members []*models.Account) reports.Table {
	counts := map[int]int{}
	for _, m := range members {
		if m.Year != nil {
			counts[*m.Year]++
		}
	}
	years := make([]int, 0, len(counts))
	for y := range counts {
		years = append(years, y)
	}
	sort.Ints(years)

	table := reports.Table{
		Name:    "Year Distribution",
		Headers: []string{"Year Level", "Count", "Percentage"},
	}
	for _, y := range years {
		table.Rows = append(table.Rows, []string{
			strconv.Itoa(y),
			strconv.Itoa(counts[y]),
			percentage(counts[y], len(members)),
		})
	}
	return table
}

func majorDistributionTable(members []*models.Account) reports.Table {
	counts := map[string]int{}
	for _, m := range members {
		counts[strPtr(m.Major)]++
	}
	majors := make([]string, 0, len(counts))
	for major := range counts {
		majors = append(majors, major)
	}
	sort.Strings(majors)

	table := reports.Table{
		Name:    "Major Distribution",
		Headers: []string{"Major", "Count", "Percentage"},
	}
	for _, major := range majors {
		table.Rows = append(table.Rows, []string{
			major,
			strconv.Itoa(counts[major]),
			percentage(counts[major], len(members)),
		})
	}
	return table
}

// percentage formats count/total, reporting 0% without fault when total
// is zero.
func percentage(count, total int) string {
	if total == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(count)*100/float64(total))
}

func strPtr(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func intPtr(p *int) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(*p)
}
