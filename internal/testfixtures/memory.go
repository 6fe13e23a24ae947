// Package testfixtures holds in-memory implementations of the repository
// interfaces for use in tests.
package testfixtures

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/workforce-scheduler/internal/audit"
	"github.com/BruksfildServices01/workforce-scheduler/internal/domain/account"
	"github.com/BruksfildServices01/workforce-scheduler/internal/domain/business"
	"github.com/BruksfildServices01/workforce-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/workforce-scheduler/internal/domain/staff"
	"github.com/BruksfildServices01/workforce-scheduler/internal/models"
)

// ======================================================
// Accounts
// ======================================================

type Accounts struct {
	mu   sync.Mutex
	byID map[uuid.UUID]models.Account
}

func NewAccounts() *Accounts {
	return &Accounts{byID: map[uuid.UUID]models.Account{}}
}

func (r *Accounts) Create(_ context.Context, a *models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.byID {
		if existing.Email == a.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	stamp(&a.CreatedAt, &a.UpdatedAt)
	r.byID[a.ID] = cloneAccount(*a)
	return nil
}

func (r *Accounts) GetByID(_ context.Context, id uuid.UUID) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	c := cloneAccount(a)
	return &c, nil
}

func (r *Accounts) GetByEmail(_ context.Context, email string) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range r.byID {
		if a.Email == email {
			c := cloneAccount(a)
			return &c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *Accounts) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	return err == nil, nil
}

func (r *Accounts) Update(_ context.Context, a *models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[a.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	a.UpdatedAt = time.Now()
	r.byID[a.ID] = cloneAccount(*a)
	return nil
}

func (r *Accounts) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}

func cloneAccount(a models.Account) models.Account {
	a.RefreshTokens = append([]models.RefreshToken(nil), a.RefreshTokens...)
	return a
}

// ======================================================
// Businesses
// ======================================================

type Businesses struct {
	mu   sync.Mutex
	byID map[uuid.UUID]models.Business
}

func NewBusinesses() *Businesses {
	return &Businesses{byID: map[uuid.UUID]models.Business{}}
}

func (r *Businesses) Create(_ context.Context, b *models.Business) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stamp(&b.CreatedAt, &b.UpdatedAt)
	r.byID[b.ID] = cloneBusiness(*b)
	return nil
}

func (r *Businesses) GetByID(_ context.Context, id uuid.UUID) (*models.Business, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	c := cloneBusiness(b)
	return &c, nil
}

func (r *Businesses) Update(_ context.Context, b *models.Business) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[b.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	b.UpdatedAt = time.Now()
	r.byID[b.ID] = cloneBusiness(*b)
	return nil
}

func (r *Businesses) List(_ context.Context, f business.ListFilter, offset, limit int) ([]models.Business, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var all []models.Business
	for _, b := range r.byID {
		if f.Search != "" && !strings.Contains(strings.ToLower(b.Name), strings.ToLower(f.Search)) {
			continue
		}
		if f.Active != nil && b.IsActive != *f.Active {
			continue
		}
		all = append(all, cloneBusiness(b))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return page(all, offset, limit), int64(len(all)), nil
}

func cloneBusiness(b models.Business) models.Business {
	b.Roles = append([]models.Role(nil), b.Roles...)
	return b
}

// ======================================================
// Staff
// ======================================================

type Staff struct {
	mu   sync.Mutex
	byID map[uuid.UUID]models.Staff
}

func NewStaff() *Staff {
	return &Staff{byID: map[uuid.UUID]models.Staff{}}
}

func (r *Staff) Create(_ context.Context, s *models.Staff) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.byID {
		if existing.BusinessID == s.BusinessID && existing.Phone == s.Phone {
			return gorm.ErrDuplicatedKey
		}
	}
	stamp(&s.CreatedAt, &s.UpdatedAt)
	r.byID[s.ID] = cloneStaff(*s)
	return nil
}

func (r *Staff) GetByID(_ context.Context, id uuid.UUID) (*models.Staff, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	c := cloneStaff(s)
	return &c, nil
}

func (r *Staff) GetByAccountID(_ context.Context, accountID uuid.UUID) (*models.Staff, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range r.byID {
		if s.AccountID != nil && *s.AccountID == accountID && s.IsActive {
			c := cloneStaff(s)
			return &c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *Staff) Update(_ context.Context, s *models.Staff) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[s.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	s.UpdatedAt = time.Now()
	r.byID[s.ID] = cloneStaff(*s)
	return nil
}

func (r *Staff) List(_ context.Context, f staff.ListFilter, offset, limit int) ([]models.Staff, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var all []models.Staff
	for _, s := range r.byID {
		if s.BusinessID != f.BusinessID {
			continue
		}
		if f.Active != nil && s.IsActive != *f.Active {
			continue
		}
		if f.Role != "" && !contains(s.Roles, f.Role) {
			continue
		}
		if f.Search != "" {
			q := strings.ToLower(f.Search)
			if !strings.Contains(strings.ToLower(s.Name), q) && !strings.Contains(strings.ToLower(s.Email), q) {
				continue
			}
		}
		all = append(all, cloneStaff(s))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return page(all, offset, limit), int64(len(all)), nil
}

func (r *Staff) ListActive(ctx context.Context, businessID uuid.UUID) ([]models.Staff, error) {
	active := true
	out, _, err := r.List(ctx, staff.ListFilter{BusinessID: businessID, Active: &active}, 0, 0)
	return out, err
}

func (r *Staff) CountActive(ctx context.Context, businessID uuid.UUID) (int64, error) {
	out, err := r.ListActive(ctx, businessID)
	return int64(len(out)), err
}

func (r *Staff) PhoneInUse(_ context.Context, businessID uuid.UUID, phone string, exclude uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range r.byID {
		if s.BusinessID == businessID && s.Phone == phone && s.ID != exclude {
			return true, nil
		}
	}
	return false, nil
}

func cloneStaff(s models.Staff) models.Staff {
	s.Roles = append([]string(nil), s.Roles...)
	s.TimeOffRequests = append([]models.TimeOffRequest(nil), s.TimeOffRequests...)
	return s
}

// ======================================================
// Schedules
// ======================================================

type Schedules struct {
	mu   sync.Mutex
	byID map[uuid.UUID]models.Schedule
}

func NewSchedules() *Schedules {
	return &Schedules{byID: map[uuid.UUID]models.Schedule{}}
}

func (r *Schedules) Create(_ context.Context, s *models.Schedule) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	schedule.Recalculate(s)
	stamp(&s.CreatedAt, &s.UpdatedAt)
	r.byID[s.ID] = cloneSchedule(*s)
	return nil
}

func (r *Schedules) GetByID(_ context.Context, id uuid.UUID) (*models.Schedule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	c := cloneSchedule(s)
	return &c, nil
}

func (r *Schedules) Update(_ context.Context, s *models.Schedule) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[s.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	schedule.Recalculate(s)
	s.UpdatedAt = time.Now()
	r.byID[s.ID] = cloneSchedule(*s)
	return nil
}

func (r *Schedules) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *Schedules) List(_ context.Context, f schedule.ListFilter, offset, limit int) ([]models.Schedule, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var all []models.Schedule
	for _, s := range r.byID {
		if s.BusinessID != f.BusinessID {
			continue
		}
		if f.Status != "" && s.Status != f.Status {
			continue
		}
		if f.From != nil && s.WeekStartDate.Before(*f.From) {
			continue
		}
		if f.To != nil && s.WeekStartDate.After(*f.To) {
			continue
		}
		all = append(all, cloneSchedule(s))
	}
	sortByWeekDesc(all)
	return page(all, offset, limit), int64(len(all)), nil
}

func (r *Schedules) CountCreatedBetween(_ context.Context, businessID uuid.UUID, from, to time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for _, s := range r.byID {
		if s.BusinessID == businessID && !s.CreatedAt.Before(from) && s.CreatedAt.Before(to) {
			n++
		}
	}
	return n, nil
}

func (r *Schedules) ListForStaff(_ context.Context, f schedule.StaffFilter, offset, limit int) ([]models.Schedule, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var all []models.Schedule
	for _, s := range r.byID {
		if !contains(f.Statuses, s.Status) {
			continue
		}
		if f.From != nil && s.WeekStartDate.Before(*f.From) {
			continue
		}
		if f.To != nil && s.WeekStartDate.After(*f.To) {
			continue
		}
		for _, sh := range s.Shifts {
			if sh.StaffID == f.StaffID {
				all = append(all, cloneSchedule(s))
				break
			}
		}
	}
	sortByWeekDesc(all)
	return page(all, offset, limit), int64(len(all)), nil
}

// Put stores s as-is, bypassing Create. Useful to seed CreatedAt.
func (r *Schedules) Put(s models.Schedule) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[s.ID] = cloneSchedule(s)
}

func (r *Schedules) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}

func cloneSchedule(s models.Schedule) models.Schedule {
	s.Shifts = append([]models.Shift(nil), s.Shifts...)
	s.Modifications = append([]models.Modification(nil), s.Modifications...)
	s.AIRecommendations = append([]string(nil), s.AIRecommendations...)
	return s
}

func sortByWeekDesc(all []models.Schedule) {
	sort.Slice(all, func(i, j int) bool { return all[i].WeekStartDate.After(all[j].WeekStartDate) })
}

// ======================================================
// Audit
// ======================================================

type AuditLogs struct {
	mu      sync.Mutex
	entries []models.AuditLog
}

func NewAuditLogs() *AuditLogs {
	return &AuditLogs{}
}

func (r *AuditLogs) Save(_ context.Context, entry *models.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stamp(&entry.CreatedAt, nil)
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *AuditLogs) List(_ context.Context, f audit.Filter, offset, limit int) ([]models.AuditLog, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var all []models.AuditLog
	for i := len(r.entries) - 1; i >= 0; i-- {
		e := r.entries[i]
		if e.BusinessID == nil || *e.BusinessID != f.BusinessID {
			continue
		}
		if f.Action != "" && e.Action != f.Action {
			continue
		}
		if f.Entity != "" && e.Entity != f.Entity {
			continue
		}
		all = append(all, e)
	}
	return page(all, offset, limit), int64(len(all)), nil
}

// ======================================================
// Helpers
// ======================================================

func stamp(created, updated *time.Time) {
	now := time.Now()
	if created != nil && created.IsZero() {
		*created = now
	}
	if updated != nil {
		*updated = now
	}
}

// page applies offset/limit; limit 0 means everything.
func page[T any](all []T, offset, limit int) []T {
	if offset >= len(all) {
		return []T{}
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// Compile-time checks
var (
	_ account.Repository  = (*Accounts)(nil)
	_ business.Repository = (*Businesses)(nil)
	_ staff.Repository    = (*Staff)(nil)
	_ schedule.Repository = (*Schedules)(nil)
	_ audit.Store         = (*AuditLogs)(nil)
	_ audit.Reader        = (*AuditLogs)(nil)
)
