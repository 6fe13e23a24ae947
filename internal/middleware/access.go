package middleware

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/workforce-scheduler/internal/httperr"
	"github.com/BruksfildServices01/workforce-scheduler/internal/models"
	"github.com/BruksfildServices01/workforce-scheduler/internal/validators"
)

var errBusinessAccess = httperr.Forbidden("forbidden", "Not authorized to access this business")

// Authorize lets through accounts whose role is listed.
func Authorize(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		a := CurrentAccount(c)
		if a == nil {
			httperr.Write(c, errNotAuthorized)
			return
		}
		if !slices.Contains(roles, a.Role) {
			httperr.Write(c, httperr.Forbidden("forbidden",
				fmt.Sprintf("User role %s is not authorized to access this route", a.Role)))
			return
		}
		c.Next()
	}
}

// BusinessResolver finds the business a request targets.
type BusinessResolver func(c *gin.Context) (uuid.UUID, error)

// FromParam reads the business id straight from a path parameter.
func FromParam(name string) BusinessResolver {
	return func(c *gin.Context) (uuid.UUID, error) {
		return validators.ParseID(c, name)
	}
}

type StaffLoader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Staff, error)
}

// FromStaff loads the staff member named by the parameter and uses its business.
func FromStaff(repo StaffLoader, param string) BusinessResolver {
	return func(c *gin.Context) (uuid.UUID, error) {
		id, err := validators.ParseID(c, param)
		if err != nil {
			return uuid.Nil, err
		}
		st, err := repo.GetByID(c.Request.Context(), id)
		if err != nil {
			return uuid.Nil, notFound(err, "staff_not_found", "Staff member not found")
		}
		return st.BusinessID, nil
	}
}

type ScheduleLoader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Schedule, error)
}

// FromSchedule loads the schedule named by the parameter and uses its business.
func FromSchedule(repo ScheduleLoader, param string) BusinessResolver {
	return func(c *gin.Context) (uuid.UUID, error) {
		id, err := validators.ParseID(c, param)
		if err != nil {
			return uuid.Nil, err
		}
		s, err := repo.GetByID(c.Request.Context(), id)
		if err != nil {
			return uuid.Nil, notFound(err, "schedule_not_found", "Schedule not found")
		}
		return s.BusinessID, nil
	}
}

// AuthorizeBusinessOwner admits admins and the owner of the resolved business.
func AuthorizeBusinessOwner(resolve BusinessResolver) gin.HandlerFunc {
	return authorizeBusiness(resolve, models.RoleOwner)
}

// AuthorizeStaffAccess admits admins plus owners and staff of the resolved business.
func AuthorizeStaffAccess(resolve BusinessResolver) gin.HandlerFunc {
	return authorizeBusiness(resolve, models.RoleOwner, models.RoleStaff)
}

func authorizeBusiness(resolve BusinessResolver, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		a := CurrentAccount(c)
		if a == nil {
			httperr.Write(c, errNotAuthorized)
			return
		}

		businessID, err := resolve(c)
		if err != nil {
			httperr.Write(c, httperr.FromError(err))
			return
		}

		if a.Role == models.RoleAdmin {
			c.Next()
			return
		}

		if slices.Contains(roles, a.Role) && a.BusinessID != nil && *a.BusinessID == businessID {
			c.Next()
			return
		}

		httperr.Write(c, errBusinessAccess)
	}
}

func notFound(err error, code, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.NotFound(code, message)
	}
	return err
}
