package staff

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/workforce-scheduler/internal/audit"
	"github.com/BruksfildServices01/workforce-scheduler/internal/domain/account"
	"github.com/BruksfildServices01/workforce-scheduler/internal/domain/business"
	domain "github.com/BruksfildServices01/workforce-scheduler/internal/domain/staff"
	"github.com/BruksfildServices01/workforce-scheduler/internal/httperr"
	"github.com/BruksfildServices01/workforce-scheduler/internal/models"
)

var (
	ErrAccountNotStaff  = httperr.ErrBusiness("account_not_staff", "Linked account must have the staff role")
	ErrAccountElsewhere = httperr.ErrBusiness("account_linked_elsewhere", "Linked account belongs to another business")
	ErrNotOwnRecord     = httperr.Forbidden("forbidden", "Staff can only request time off for themselves")
)

type Service struct {
	staff      domain.Repository
	businesses business.Repository
	accounts   account.Repository
	audit      *audit.Dispatcher
	now        func() time.Time
}

func NewService(
	staffRepo domain.Repository,
	businesses business.Repository,
	accounts account.Repository,
	audit *audit.Dispatcher,
) *Service {
	return &Service{
		staff:      staffRepo,
		businesses: businesses,
		accounts:   accounts,
		audit:      audit,
		now:        time.Now,
	}
}

// Input is the allow-listed set of staff fields. Nil keeps the current value on update.
type Input struct {
	Name             *string
	Email            *string
	Phone            *string
	AccountID        *uuid.UUID
	Roles            []string
	HourlyRate       *float64
	Availability     *models.Week[models.DayAvailability]
	Preferences      *models.StaffPreferences
	EmergencyContact *models.EmergencyContact
	HireDate         *time.Time
	IsActive         *bool
}

// ======================================================
// Create / Read
// ======================================================

func (s *Service) Create(ctx context.Context, businessID uuid.UUID, in Input, actor uuid.UUID) (*models.Staff, error) {
	biz, err := s.businesses.GetByID(ctx, businessID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, business.ErrNotFound
		}
		return nil, err
	}

	if err := s.checkCapacity(ctx, biz); err != nil {
		return nil, err
	}

	st := &models.Staff{
		ID:              uuid.New(),
		BusinessID:      businessID,
		HourlyRate:      domain.DefaultHourlyRate,
		Availability:    datatypes.NewJSONType(models.Week[models.DayAvailability]{}),
		Preferences:     datatypes.NewJSONType(domain.DefaultPreferences()),
		HireDate:        s.now(),
		IsActive:        true,
		TimeOffRequests: []models.TimeOffRequest{},
	}
	in.IsActive = nil
	apply(st, in)

	if err := s.checkPhone(ctx, st); err != nil {
		return nil, err
	}
	linked, err := s.linkableAccount(ctx, st)
	if err != nil {
		return nil, err
	}

	if err := s.staff.Create(ctx, st); err != nil {
		if httperr.IsDuplicateKey(err) {
			return nil, domain.ErrDuplicatePhone
		}
		return nil, err
	}
	if err := s.link(ctx, linked, st); err != nil {
		return nil, err
	}

	s.audit.Dispatch(audit.Event{
		BusinessID: &businessID,
		AccountID:  &actor,
		Action:     "staff_created",
		Entity:     "staff",
		EntityID:   &st.ID,
	})

	return st, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Staff, error) {
	st, err := s.staff.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return st, nil
}

// ForAccount returns the active staff record linked to the account.
func (s *Service) ForAccount(ctx context.Context, accountID uuid.UUID) (*models.Staff, error) {
	st, err := s.staff.GetByAccountID(ctx, accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return st, nil
}

func (s *Service) List(ctx context.Context, f domain.ListFilter, offset, limit int) ([]models.Staff, int64, error) {
	return s.staff.List(ctx, f, offset, limit)
}

// ======================================================
// Update
// ======================================================

func (s *Service) Update(ctx context.Context, id uuid.UUID, in Input) (*models.Staff, error) {
	st, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	reactivating := in.IsActive != nil && *in.IsActive && !st.IsActive
	if reactivating {
		biz, err := s.businesses.GetByID(ctx, st.BusinessID)
		if err != nil {
			return nil, err
		}
		if err := s.checkCapacity(ctx, biz); err != nil {
			return nil, err
		}
	}

	phoneChanged := in.Phone != nil && strings.TrimSpace(*in.Phone) != st.Phone
	accountChanged := in.AccountID != nil && (st.AccountID == nil || *st.AccountID != *in.AccountID)

	apply(st, in)

	if phoneChanged {
		if err := s.checkPhone(ctx, st); err != nil {
			return nil, err
		}
	}
	var linked *models.Account
	if accountChanged {
		if linked, err = s.linkableAccount(ctx, st); err != nil {
			return nil, err
		}
	}

	if err := s.staff.Update(ctx, st); err != nil {
		if httperr.IsDuplicateKey(err) {
			return nil, domain.ErrDuplicatePhone
		}
		return nil, err
	}
	if err := s.link(ctx, linked, st); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *Service) UpdateAvailability(ctx context.Context, id uuid.UUID, week models.Week[models.DayAvailability]) (*models.Staff, error) {
	return s.Update(ctx, id, Input{Availability: &week})
}

// Deactivate is a soft delete.
func (s *Service) Deactivate(ctx context.Context, id uuid.UUID, actor uuid.UUID) error {
	st, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	st.IsActive = false
	if err := s.staff.Update(ctx, st); err != nil {
		return err
	}

	s.audit.Dispatch(audit.Event{
		BusinessID: &st.BusinessID,
		AccountID:  &actor,
		Action:     "staff_deactivated",
		Entity:     "staff",
		EntityID:   &st.ID,
	})
	return nil
}

// ======================================================
// Time off
// ======================================================

type TimeOffInput struct {
	StartDate time.Time
	EndDate   time.Time
	Reason    string
}

// RequestTimeOff files a pending request. Staff accounts may only file for their own record.
func (s *Service) RequestTimeOff(ctx context.Context, id uuid.UUID, actor *models.Account, in TimeOffInput) (*models.TimeOffRequest, error) {
	st, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.Role == models.RoleStaff && (st.AccountID == nil || *st.AccountID != actor.ID) {
		return nil, ErrNotOwnRecord
	}

	req, err := domain.RequestTimeOff(st, in.StartDate, in.EndDate, strings.TrimSpace(in.Reason), s.now())
	if err != nil {
		return nil, err
	}
	created := *req

	if err := s.staff.Update(ctx, st); err != nil {
		return nil, err
	}

	s.audit.Dispatch(audit.Event{
		BusinessID: &st.BusinessID,
		AccountID:  &actor.ID,
		Action:     "time_off_requested",
		Entity:     "staff",
		EntityID:   &st.ID,
		Metadata:   map[string]any{"requestId": created.ID},
	})
	return &created, nil
}

func (s *Service) DecideTimeOff(ctx context.Context, staffID, requestID uuid.UUID, status string, reviewer uuid.UUID) (*models.TimeOffRequest, error) {
	st, err := s.Get(ctx, staffID)
	if err != nil {
		return nil, err
	}

	req, err := domain.DecideTimeOff(st, requestID, status, reviewer, s.now())
	if err != nil {
		return nil, err
	}
	decided := *req

	if err := s.staff.Update(ctx, st); err != nil {
		return nil, err
	}

	s.audit.Dispatch(audit.Event{
		BusinessID: &st.BusinessID,
		AccountID:  &reviewer,
		Action:     "time_off_" + status,
		Entity:     "staff",
		EntityID:   &st.ID,
		Metadata:   map[string]any{"requestId": requestID},
	})
	return &decided, nil
}

// ======================================================
// Helpers
// ======================================================

func (s *Service) checkCapacity(ctx context.Context, biz *models.Business) error {
	active, err := s.staff.CountActive(ctx, biz.ID)
	if err != nil {
		return err
	}
	if active >= int64(biz.Subscription.MaxStaff) {
		return domain.ErrLimitReached
	}
	return nil
}

func (s *Service) checkPhone(ctx context.Context, st *models.Staff) error {
	taken, err := s.staff.PhoneInUse(ctx, st.BusinessID, st.Phone, st.ID)
	if err != nil {
		return err
	}
	if taken {
		return domain.ErrDuplicatePhone
	}
	return nil
}

// linkableAccount loads and checks the account st points at. It returns nil
// when st has no account.
func (s *Service) linkableAccount(ctx context.Context, st *models.Staff) (*models.Account, error) {
	if st.AccountID == nil {
		return nil, nil
	}

	a, err := s.accounts.GetByID(ctx, *st.AccountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.NotFound("account_not_found", "Linked account not found")
		}
		return nil, err
	}
	if a.Role != models.RoleStaff {
		return nil, ErrAccountNotStaff
	}
	if a.BusinessID != nil && *a.BusinessID != st.BusinessID {
		return nil, ErrAccountElsewhere
	}
	return a, nil
}

// link points the account at the staff member's business. Call it only
// once the staff row is stored.
func (s *Service) link(ctx context.Context, a *models.Account, st *models.Staff) error {
	if a == nil {
		return nil
	}
	a.BusinessID = &st.BusinessID
	return s.accounts.Update(ctx, a)
}

func apply(st *models.Staff, in Input) {
	if in.Name != nil {
		st.Name = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil {
		st.Email = strings.ToLower(strings.TrimSpace(*in.Email))
	}
	if in.Phone != nil {
		st.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.AccountID != nil {
		id := *in.AccountID
		st.AccountID = &id
	}
	if in.Roles != nil {
		st.Roles = in.Roles
	}
	if in.HourlyRate != nil {
		st.HourlyRate = *in.HourlyRate
	}
	if in.Availability != nil {
		st.Availability = datatypes.NewJSONType(*in.Availability)
	}
	if in.Preferences != nil {
		st.Preferences = datatypes.NewJSONType(*in.Preferences)
	}
	if in.EmergencyContact != nil {
		st.EmergencyContact = *in.EmergencyContact
	}
	if in.HireDate != nil {
		st.HireDate = *in.HireDate
	}
	if in.IsActive != nil {
		st.IsActive = *in.IsActive
	}
}
