package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/ejmancilla/sigms/internal/app/models"
	"github.com/ejmancilla/sigms/internal/app/repositories"
	"github.com/ejmancilla/sigms/internal/pkg/apperrors"
)

// fakeAccountStore is an in-memory AccountStore mirroring the SQL
// repository's filtering and uniqueness behavior.
type fakeAccountStore struct {
	accounts map[int64]*models.Account
	nextID   int64
}

func newFakeAccountStore() *fakeAccountStore {
	return &fakeAccountStore{accounts: make(map[int64]*models.Account), nextID: 1}
}

func (f *fakeAccountStore) Create(_ context.Context, account *models.Account) error {
	for _, existing := range f.accounts {
		if existing.Username == account.Username {
			return fmt.Errorf("%w: username", apperrors.ErrDuplicateKey)
		}
		if account.StudentNumber != nil && existing.StudentNumber != nil &&
			*existing.StudentNumber == *account.StudentNumber {
			return fmt.Errorf("%w: student number", apperrors.ErrDuplicateKey)
		}
	}
	account.ID = f.nextID
	f.nextID++
	copied := *account
	f.accounts[account.ID] = &copied
	return nil
}

func (f *fakeAccountStore) GetByID(_ context.Context, id int64) (*models.Account, error) {
	account, ok := f.accounts[id]
	if !ok {
		return nil, fmt.Errorf("%w: account %d", apperrors.ErrNotFound, id)
	}
	copied := *account
	return &copied, nil
}

func (f *fakeAccountStore) GetByUsernameAndRole(_ context.Context, username string, role models.RoleType) (*models.Account, error) {
	for _, account := range f.accounts {
		if account.Username == username && account.Role == role {
			copied := *account
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", apperrors.ErrNotFound, username)
}

func (f *fakeAccountStore) UsernameExists(_ context.Context, username string) (bool, error) {
	for _, account := range f.accounts {
		if account.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAccountStore) StudentNumberExists(_ context.Context, studentNumber string) (bool, error) {
	for _, account := range f.accounts {
		if account.StudentNumber != nil && *account.StudentNumber == studentNumber {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAccountStore) UpdateStatus(_ context.Context, id int64, status models.MembershipStatus) error {
	account, ok := f.accounts[id]
	if !ok {
		return fmt.Errorf("%w: account %d", apperrors.ErrNotFound, id)
	}
	s := status
	account.Status = &s
	return nil
}

func (f *fakeAccountStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.accounts[id]; !ok {
		return fmt.Errorf("%w: account %d", apperrors.ErrNotFound, id)
	}
	delete(f.accounts, id)
	return nil
}

func (f *fakeAccountStore) ListStudents(_ context.Context, filter repositories.StudentFilter) ([]*models.Account, error) {
	var out []*models.Account
	for _, account := range f.accounts {
		if account.Role != models.RoleStudent {
			continue
		}
		if filter.Group != "" && account.Group != filter.Group {
			continue
		}
		if len(filter.Statuses) > 0 {
			match := false
			for _, status := range filter.Statuses {
				if account.MembershipStatusOrDefault() == status {
					match = true
					break
				}
			}
			if !match {
				continue
			}
		}
		if filter.Year != 0 && (account.Year == nil || *account.Year != filter.Year) {
			continue
		}
		if filter.Section != "" && (account.Section == nil || *account.Section != filter.Section) {
			continue
		}
		if filter.Major != "" && (account.Major == nil || *account.Major != filter.Major) {
			continue
		}
		if filter.NumberSearch != "" &&
			(account.StudentNumber == nil || !strings.Contains(*account.StudentNumber, filter.NumberSearch)) {
			continue
		}
		copied := *account
		out = append(out, &copied)
	}
	if filter.OrderByIDDesc {
		sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	} else {
		sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	}
	return out, nil
}

func (f *fakeAccountStore) CountStudents(ctx context.Context, group string, status models.MembershipStatus) (int, error) {
	filter := repositories.StudentFilter{Group: group}
	if status != "" {
		filter.Statuses = []models.MembershipStatus{status}
	}
	students, err := f.ListStudents(ctx, filter)
	if err != nil {
		return 0, err
	}
	return len(students), nil
}

func (f *fakeAccountStore) CountByRole(_ context.Context, role models.RoleType) (int, error) {
	count := 0
	for _, account := range f.accounts {
		if account.Role == role {
			count++
		}
	}
	return count, nil
}

func (f *fakeAccountStore) UpdateProfile(_ context.Context, id int64, update repositories.ProfileUpdate) error {
	account, ok := f.accounts[id]
	if !ok {
		return fmt.Errorf("%w: account %d", apperrors.ErrNotFound, id)
	}
	account.Name = update.Name
	account.Email = update.Email
	if update.Year != nil {
		account.Year = update.Year
	}
	if update.Section != nil {
		account.Section = update.Section
	}
	if update.Major != nil {
		account.Major = update.Major
	}
	if update.Group != nil {
		account.Group = *update.Group
	}
	return nil
}

func (f *fakeAccountStore) UpdatePassword(_ context.Context, id int64, passwordHash string) error {
	account, ok := f.accounts[id]
	if !ok {
		return fmt.Errorf("%w: account %d", apperrors.ErrNotFound, id)
	}
	account.Password = passwordHash
	return nil
}

func (f *fakeAccountStore) FilterOptions(_ context.Context) (*repositories.MemberFilterOptions, error) {
	options := &repositories.MemberFilterOptions{}
	seenYears := map[int]bool{}
	seenSections := map[string]bool{}
	seenMajors := map[string]bool{}
	seenGroups := map[string]bool{}
	for _, account := range f.accounts {
		if account.Role != models.RoleStudent {
			continue
		}
		if account.Year != nil && !seenYears[*account.Year] {
			seenYears[*account.Year] = true
			options.Years = append(options.Years, *account.Year)
		}
		if account.Section != nil && !seenSections[*account.Section] {
			seenSections[*account.Section] = true
			options.Sections = append(options.Sections, *account.Section)
		}
		if account.Major != nil && !seenMajors[*account.Major] {
			seenMajors[*account.Major] = true
			options.Majors = append(options.Majors, *account.Major)
		}
		if !seenGroups[account.Group] {
			seenGroups[account.Group] = true
			options.Groups = append(options.Groups, account.Group)
		}
	}
	sort.Ints(options.Years)
	sort.Strings(options.Sections)
	sort.Strings(options.Majors)
	sort.Strings(options.Groups)
	return options, nil
}

// fakeScheduleStore is an in-memory ScheduleStore. UpdateDecision enforces
// the approved-slot uniqueness the partial indexes provide in Postgres.
type fakeScheduleStore struct {
	requests map[int64]*models.ScheduleRequest
	nextID   int64
}

func newFakeScheduleStore() *fakeScheduleStore {
	return &fakeScheduleStore{requests: make(map[int64]*models.ScheduleRequest), nextID: 1}
}

func (f *fakeScheduleStore) Create(_ context.Context, req *models.ScheduleRequest) error {
	req.ID = f.nextID
	f.nextID++
	copied := *req
	f.requests[req.ID] = &copied
	return nil
}

func (f *fakeScheduleStore) GetByID(_ context.Context, id int64) (*models.ScheduleRequest, error) {
	req, ok := f.requests[id]
	if !ok {
		return nil, fmt.Errorf("%w: request %d", apperrors.ErrNotFound, id)
	}
	copied := *req
	return &copied, nil
}

func (f *fakeScheduleStore) ApprovedEventExistsOnDate(_ context.Context, date string) (bool, error) {
	for _, req := range f.requests {
		if req.Kind == models.KindEvent && req.Status == models.RequestApproved && req.DateOnly() == date {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeScheduleStore) ApprovedSlotExistsAt(_ context.Context, date, timeOfDay, room string) (bool, error) {
	for _, req := range f.requests {
		if req.Status == models.RequestApproved &&
			req.DateOnly() == date && req.Time != nil && *req.Time == timeOfDay &&
			req.Room != nil && *req.Room == room {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeScheduleStore) UpdateDecision(ctx context.Context, id int64, status models.RequestStatus, feedback string) error {
	req, ok := f.requests[id]
	if !ok {
		return fmt.Errorf("%w: request %d", apperrors.ErrNotFound, id)
	}
	if status == models.RequestApproved {
		if req.Kind == models.KindEvent {
			taken, _ := f.ApprovedEventExistsOnDate(ctx, req.DateOnly())
			if taken {
				return fmt.Errorf("%w: %s", apperrors.ErrDateConflict, req.DateOnly())
			}
		}
		if req.Time != nil && req.Room != nil {
			taken, _ := f.ApprovedSlotExistsAt(ctx, req.DateOnly(), *req.Time, *req.Room)
			if taken {
				return fmt.Errorf("%w: %s", apperrors.ErrSlotConflict, req.DateOnly())
			}
		}
	}
	req.Status = status
	fb := feedback
	req.Feedback = &fb
	return nil
}

func (f *fakeScheduleStore) List(_ context.Context, filter repositories.RequestFilter) ([]*models.ScheduleRequest, error) {
	var out []*models.ScheduleRequest
	for _, req := range f.requests {
		if filter.Group != "" && req.Group != filter.Group {
			continue
		}
		if len(filter.Statuses) > 0 {
			match := false
			for _, status := range filter.Statuses {
				if req.Status == status {
					match = true
					break
				}
			}
			if !match {
				continue
			}
		}
		copied := *req
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (f *fakeScheduleStore) CountByGroupAndStatus(ctx context.Context, group string, status models.RequestStatus) (int, error) {
	requests, err := f.List(ctx, repositories.RequestFilter{
		Group:    group,
		Statuses: []models.RequestStatus{status},
	})
	if err != nil {
		return 0, err
	}
	return len(requests), nil
}

// fakeOfficerStore is an in-memory OfficerStore with whole-roster replace.
type fakeOfficerStore struct {
	byGroup map[string][]*models.Officer
	nextID  int64
}

func newFakeOfficerStore() *fakeOfficerStore {
	return &fakeOfficerStore{byGroup: make(map[string][]*models.Officer), nextID: 1}
}

func (f *fakeOfficerStore) ListByGroup(_ context.Context, group string) ([]*models.Officer, error) {
	out := make([]*models.Officer, 0, len(f.byGroup[group]))
	for _, officer := range f.byGroup[group] {
		copied := *officer
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeOfficerStore) CountByGroup(_ context.Context, group string) (int, error) {
	if group == "" {
		total := 0
		for _, officers := range f.byGroup {
			total += len(officers)
		}
		return total, nil
	}
	return len(f.byGroup[group]), nil
}

func (f *fakeOfficerStore) Replace(_ context.Context, group string, officers []*models.Officer) error {
	replacement := make([]*models.Officer, 0, len(officers))
	for _, officer := range officers {
		copied := *officer
		copied.ID = f.nextID
		f.nextID++
		replacement = append(replacement, &copied)
	}
	f.byGroup[group] = replacement
	return nil
}
