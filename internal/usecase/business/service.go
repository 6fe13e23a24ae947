package business

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/workforce-scheduler/internal/audit"
	"github.com/BruksfildServices01/workforce-scheduler/internal/domain/account"
	domain "github.com/BruksfildServices01/workforce-scheduler/internal/domain/business"
	"github.com/BruksfildServices01/workforce-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/workforce-scheduler/internal/domain/staff"
	"github.com/BruksfildServices01/workforce-scheduler/internal/httperr"
	"github.com/BruksfildServices01/workforce-scheduler/internal/models"
	"github.com/BruksfildServices01/workforce-scheduler/internal/timezone"
)

var (
	ErrAlreadyOwnsBusiness = httperr.ErrBusiness("business_exists", "This account already owns a business")
	ErrNoBusiness          = httperr.NotFound("business_not_found", "No business linked to this account")
)

type Service struct {
	businesses domain.Repository
	accounts   account.Repository
	staff      staff.Repository
	schedules  schedule.Repository
	gateway    domain.Gateway
	audit      *audit.Dispatcher
	log        zerolog.Logger
}

// NewService wires the business use cases. gateway may be nil when billing is off.
func NewService(
	businesses domain.Repository,
	accounts account.Repository,
	staffRepo staff.Repository,
	schedules schedule.Repository,
	gateway domain.Gateway,
	audit *audit.Dispatcher,
	log zerolog.Logger,
) *Service {
	return &Service{
		businesses: businesses,
		accounts:   accounts,
		staff:      staffRepo,
		schedules:  schedules,
		gateway:    gateway,
		audit:      audit,
		log:        log,
	}
}

// Input carries every field an owner may set. Nil pointers keep the current value on update.
type Input struct {
	Name          *string
	Description   *string
	Address       *models.Address
	Phone         *string
	Email         *string
	BusinessHours *models.Week[models.DayHours]
	Roles         []models.Role
	Constraints   *models.Constraints
	Timezone      *string
	Currency      *string
}

// ======================================================
// CRUD
// ======================================================

func (s *Service) Create(ctx context.Context, owner *models.Account, in Input) (*models.Business, error) {
	admin := owner.Role == models.RoleAdmin
	if owner.BusinessID != nil && !admin {
		if _, err := s.businesses.GetByID(ctx, *owner.BusinessID); err == nil {
			return nil, ErrAlreadyOwnsBusiness
		}
	}

	b := &models.Business{
		ID:            uuid.New(),
		OwnerID:       owner.ID,
		BusinessHours: datatypes.NewJSONType(domain.DefaultHours()),
		Roles:         []models.Role{},
		Constraints:   domain.DefaultConstraints(),
		Timezone:      timezone.DefaultTimezone,
		Currency:      "USD",
		IsActive:      true,
	}
	if err := domain.ApplyPlan(b, models.PlanFree); err != nil {
		return nil, err
	}

	if err := apply(b, in); err != nil {
		return nil, err
	}
	for _, r := range in.Roles {
		if _, err := domain.AddRole(b, r); err != nil {
			return nil, err
		}
	}

	if err := s.businesses.Create(ctx, b); err != nil {
		return nil, err
	}

	// The owner's account points back at the new business. Admin accounts stay unbound.
	if !admin {
		a, err := s.accounts.GetByID(ctx, owner.ID)
		if err != nil {
			return nil, err
		}
		a.BusinessID = &b.ID
		if err := s.accounts.Update(ctx, a); err != nil {
			return nil, err
		}
	}

	s.audit.Dispatch(audit.Event{
		BusinessID: &b.ID,
		AccountID:  &owner.ID,
		Action:     "business_created",
		Entity:     "business",
		EntityID:   &b.ID,
	})

	return b, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Business, error) {
	b, err := s.businesses.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return b, nil
}

// Mine returns the business the account owns or works for.
func (s *Service) Mine(ctx context.Context, a *models.Account) (*models.Business, error) {
	if a.BusinessID == nil {
		return nil, ErrNoBusiness
	}
	return s.Get(ctx, *a.BusinessID)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, in Input) (*models.Business, error) {
	b, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := apply(b, in); err != nil {
		return nil, err
	}
	if err := s.businesses.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Service) List(ctx context.Context, f domain.ListFilter, offset, limit int) ([]models.Business, int64, error) {
	return s.businesses.List(ctx, f, offset, limit)
}

// apply copies the allow-listed fields. Roles are managed through their own endpoints.
func apply(b *models.Business, in Input) error {
	if in.Name != nil {
		b.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		b.Description = strings.TrimSpace(*in.Description)
	}
	if in.Address != nil {
		b.Address = *in.Address
	}
	if in.Phone != nil {
		b.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Email != nil {
		b.Email = strings.ToLower(strings.TrimSpace(*in.Email))
	}
	if in.BusinessHours != nil {
		b.BusinessHours = datatypes.NewJSONType(*in.BusinessHours)
	}
	if in.Constraints != nil {
		b.Constraints = *in.Constraints
	}
	if in.Timezone != nil {
		if !timezone.IsValid(*in.Timezone) {
			return httperr.Validation([]httperr.FieldError{{Field: "timezone", Message: "Unknown timezone"}})
		}
		b.Timezone = *in.Timezone
	}
	if in.Currency != nil {
		b.Currency = *in.Currency
	}
	return nil
}

// ======================================================
// Roles
// ======================================================

func (s *Service) AddRole(ctx context.Context, id uuid.UUID, r models.Role) (*models.Business, error) {
	return s.mutateRoles(ctx, id, func(b *models.Business) error {
		_, err := domain.AddRole(b, r)
		return err
	})
}

func (s *Service) UpdateRole(ctx context.Context, id, roleID uuid.UUID, r models.Role) (*models.Business, error) {
	return s.mutateRoles(ctx, id, func(b *models.Business) error {
		_, err := domain.UpdateRole(b, roleID, r)
		return err
	})
}

func (s *Service) RemoveRole(ctx context.Context, id, roleID uuid.UUID) (*models.Business, error) {
	return s.mutateRoles(ctx, id, func(b *models.Business) error {
		return domain.RemoveRole(b, roleID)
	})
}

func (s *Service) mutateRoles(ctx context.Context, id uuid.UUID, fn func(*models.Business) error) (*models.Business, error) {
	b, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(b); err != nil {
		return nil, err
	}
	if err := s.businesses.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// ======================================================
// Stats
// ======================================================

type Stats struct {
	ActiveStaff        int64  `json:"activeStaff"`
	MaxStaff           int    `json:"maxStaff"`
	RemainingStaff     int64  `json:"remainingStaff"`
	SchedulesThisMonth int64  `json:"schedulesThisMonth"`
	MaxSchedules       int    `json:"maxSchedulesPerMonth"`
	RemainingSchedules int64  `json:"remainingSchedules"`
	PendingTimeOff     int    `json:"pendingTimeOff"`
	Plan               string `json:"plan"`
}

func (s *Service) Stats(ctx context.Context, id uuid.UUID) (*Stats, error) {
	b, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	active, err := s.staff.ListActive(ctx, id)
	if err != nil {
		return nil, err
	}

	from, to := timezone.MonthBounds(time.Now(), b.Timezone)
	monthly, err := s.schedules.CountCreatedBetween(ctx, id, from, to)
	if err != nil {
		return nil, err
	}

	pending := 0
	for i := range active {
		pending += staff.PendingTimeOff(&active[i])
	}

	return &Stats{
		ActiveStaff:        int64(len(active)),
		MaxStaff:           b.Subscription.MaxStaff,
		RemainingStaff:     max(int64(b.Subscription.MaxStaff)-int64(len(active)), 0),
		SchedulesThisMonth: monthly,
		MaxSchedules:       b.Subscription.MaxSchedulesPerMonth,
		RemainingSchedules: max(int64(b.Subscription.MaxSchedulesPerMonth)-monthly, 0),
		PendingTimeOff:     pending,
		Plan:               b.Subscription.Plan,
	}, nil
}

// ======================================================
// Subscription
// ======================================================

func (s *Service) Checkout(ctx context.Context, id uuid.UUID, plan string, payer *models.Account) (*domain.Checkout, error) {
	if s.gateway == nil {
		return nil, domain.ErrBillingDisabled
	}
	p, ok := domain.LookupPlan(plan)
	if !ok {
		return nil, domain.ErrUnknownPlan
	}
	if p.MonthlyPrice <= 0 {
		return nil, domain.ErrFreeCheckout
	}
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	checkout, err := s.gateway.CreateCheckout(ctx, domain.CheckoutRequest{
		BusinessID: id,
		Plan:       p,
		PayerEmail: payer.Email,
	})
	if err != nil {
		return nil, err
	}

	s.audit.Dispatch(audit.Event{
		BusinessID: &id,
		AccountID:  &payer.ID,
		Action:     "checkout_created",
		Entity:     "business",
		EntityID:   &id,
		Metadata:   map[string]any{"plan": p.Name, "preferenceId": checkout.PreferenceID},
	})
	return checkout, nil
}

// HandlePayment applies the plan of an approved payment. Other statuses are ignored.
func (s *Service) HandlePayment(ctx context.Context, paymentID int) error {
	if s.gateway == nil {
		return domain.ErrBillingDisabled
	}

	p, err := s.gateway.GetPayment(ctx, paymentID)
	if err != nil {
		return err
	}
	if !p.Approved() {
		s.log.Info().Int("payment_id", paymentID).Str("status", p.Status).Msg("payment not approved, ignoring")
		return nil
	}

	bizID, plan, err := domain.ParseExternalReference(p.ExternalReference)
	if err != nil {
		return httperr.BadRequest("invalid_reference", err.Error())
	}

	_, err = s.SetPlan(ctx, bizID, plan)
	return err
}

func (s *Service) SetPlan(ctx context.Context, id uuid.UUID, plan string) (*models.Business, error) {
	b, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	previous := b.Subscription.Plan
	if err := domain.ApplyPlan(b, plan); err != nil {
		return nil, err
	}
	if err := s.businesses.Update(ctx, b); err != nil {
		return nil, err
	}

	s.audit.Dispatch(audit.Event{
		BusinessID: &b.ID,
		Action:     "plan_changed",
		Entity:     "business",
		EntityID:   &b.ID,
		Metadata:   map[string]any{"from": previous, "to": plan},
	})
	return b, nil
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}
