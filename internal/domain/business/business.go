package business

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/workforce-scheduler/internal/httperr"
	"github.com/BruksfildServices01/workforce-scheduler/internal/models"
)

var (
	ErrNotFound     = httperr.NotFound("business_not_found", "Business not found")
	ErrRoleNotFound = httperr.NotFound("role_not_found", "Role not found")
	ErrRoleExists   = httperr.ErrBusiness("role_exists", "A role with this name already exists")
	ErrRoleBounds   = httperr.ErrBusiness("invalid_role_bounds", "maxStaffRequired must not be lower than minStaffRequired")
	ErrUnknownPlan  = httperr.ErrBusiness("unknown_plan", "Unknown subscription plan")
)

var Currencies = []string{"USD", "EUR", "GBP", "CAD", "AUD"}

type ListFilter struct {
	Search string
	Active *bool
}

type Repository interface {
	Create(ctx context.Context, b *models.Business) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Business, error)
	Update(ctx context.Context, b *models.Business) error
	List(ctx context.Context, f ListFilter, offset, limit int) ([]models.Business, int64, error)
}

// ===============================
// Defaults
// ===============================

func DefaultConstraints() models.Constraints {
	return models.Constraints{
		MaxHoursPerDay:    8,
		MaxHoursPerWeek:   40,
		MinBreakTime:      30,
		OvertimeThreshold: 8,
	}
}

// DefaultHours opens monday to friday 09:00-17:00.
func DefaultHours() models.Week[models.DayHours] {
	open := models.DayHours{Start: "09:00", End: "17:00", IsOpen: true}
	closed := models.DayHours{Start: "09:00", End: "17:00", IsOpen: false}
	return models.Week[models.DayHours]{
		Monday:    open,
		Tuesday:   open,
		Wednesday: open,
		Thursday:  open,
		Friday:    open,
		Saturday:  closed,
		Sunday:    closed,
	}
}

// ===============================
// Embedded roles
// ===============================

func FindRole(b *models.Business, id uuid.UUID) (*models.Role, error) {
	i, ok := roleIndex(b.Roles)[id]
	if !ok {
		return nil, ErrRoleNotFound
	}
	return &b.Roles[i], nil
}

func AddRole(b *models.Business, r models.Role) (*models.Role, error) {
	if err := checkRole(b, r, uuid.Nil); err != nil {
		return nil, err
	}
	r.ID = uuid.New()
	b.Roles = append(b.Roles, r)
	return &b.Roles[len(b.Roles)-1], nil
}

// UpdateRole replaces the role's fields, keeping its id and position.
func UpdateRole(b *models.Business, id uuid.UUID, r models.Role) (*models.Role, error) {
	current, err := FindRole(b, id)
	if err != nil {
		return nil, err
	}
	if err := checkRole(b, r, id); err != nil {
		return nil, err
	}
	r.ID = id
	*current = r
	return current, nil
}

func RemoveRole(b *models.Business, id uuid.UUID) error {
	i, ok := roleIndex(b.Roles)[id]
	if !ok {
		return ErrRoleNotFound
	}
	b.Roles = append(b.Roles[:i], b.Roles[i+1:]...)
	return nil
}

func roleIndex(roles []models.Role) map[uuid.UUID]int {
	idx := make(map[uuid.UUID]int, len(roles))
	for i, r := range roles {
		idx[r.ID] = i
	}
	return idx
}

func checkRole(b *models.Business, r models.Role, self uuid.UUID) error {
	if r.MaxStaffRequired < r.MinStaffRequired {
		return ErrRoleBounds
	}
	for _, existing := range b.Roles {
		if existing.ID != self && existing.Name == r.Name {
			return ErrRoleExists
		}
	}
	return nil
}
