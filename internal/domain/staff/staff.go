package staff

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/workforce-scheduler/internal/httperr"
	"github.com/BruksfildServices01/workforce-scheduler/internal/models"
)

const DefaultHourlyRate = 15.0

var ShiftPeriods = []string{"morning", "afternoon", "evening", "night"}

var (
	ErrNotFound        = httperr.NotFound("staff_not_found", "Staff member not found")
	ErrTimeOffNotFound = httperr.NotFound("time_off_not_found", "Time-off request not found")
	ErrLimitReached    = httperr.ErrBusiness("staff_limit_reached", "Staff limit reached for current subscription plan")
	ErrDuplicatePhone  = httperr.ErrBusiness("duplicate_phone", "Staff member with this phone number already exists")
	ErrInvalidPeriod   = httperr.ErrBusiness("invalid_period", "End date must not be before start date")
	ErrInvalidDecision = httperr.ErrBusiness("invalid_status", "Status must be approved or rejected")
)

type ListFilter struct {
	BusinessID uuid.UUID
	Role       string
	Active     *bool
	Search     string
}

type Repository interface {
	Create(ctx context.Context, s *models.Staff) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Staff, error)
	GetByAccountID(ctx context.Context, accountID uuid.UUID) (*models.Staff, error)
	Update(ctx context.Context, s *models.Staff) error
	List(ctx context.Context, f ListFilter, offset, limit int) ([]models.Staff, int64, error)
	ListActive(ctx context.Context, businessID uuid.UUID) ([]models.Staff, error)
	CountActive(ctx context.Context, businessID uuid.UUID) (int64, error)
	PhoneInUse(ctx context.Context, businessID uuid.UUID, phone string, exclude uuid.UUID) (bool, error)
}

func DefaultPreferences() models.StaffPreferences {
	return models.StaffPreferences{
		MaxHoursPerWeek: 40,
		MaxHoursPerDay:  8,
		PreferredShifts: []string{},
		MaxShiftsPerDay: 1,
	}
}

// ===============================
// Time off
// ===============================

func RequestTimeOff(s *models.Staff, start, end time.Time, reason string, now time.Time) (*models.TimeOffRequest, error) {
	if end.Before(start) {
		return nil, ErrInvalidPeriod
	}

	s.TimeOffRequests = append(s.TimeOffRequests, models.TimeOffRequest{
		ID:          uuid.New(),
		StartDate:   start,
		EndDate:     end,
		Reason:      reason,
		Status:      models.TimeOffPending,
		RequestedAt: now,
	})
	return &s.TimeOffRequests[len(s.TimeOffRequests)-1], nil
}

// DecideTimeOff records the reviewer's decision on one request.
func DecideTimeOff(s *models.Staff, requestID uuid.UUID, status string, reviewer uuid.UUID, now time.Time) (*models.TimeOffRequest, error) {
	if status != models.TimeOffApproved && status != models.TimeOffRejected {
		return nil, ErrInvalidDecision
	}

	byID := make(map[uuid.UUID]*models.TimeOffRequest, len(s.TimeOffRequests))
	for i := range s.TimeOffRequests {
		byID[s.TimeOffRequests[i].ID] = &s.TimeOffRequests[i]
	}

	req, ok := byID[requestID]
	if !ok {
		return nil, ErrTimeOffNotFound
	}

	req.Status = status
	req.ReviewedBy = &reviewer
	req.ReviewedAt = &now
	return req, nil
}

func PendingTimeOff(s *models.Staff) int {
	n := 0
	for _, r := range s.TimeOffRequests {
		if r.Status == models.TimeOffPending {
			n++
		}
	}
	return n
}

// IsOff reports whether an approved request covers day.
func IsOff(s *models.Staff, day time.Time) bool {
	d := truncateDay(day)
	for _, r := range s.TimeOffRequests {
		if r.Status != models.TimeOffApproved {
			continue
		}
		if !d.Before(truncateDay(r.StartDate)) && !d.After(truncateDay(r.EndDate)) {
			return true
		}
	}
	return false
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
