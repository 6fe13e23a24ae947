package schedule

import (
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/workforce-scheduler/internal/httperr"
	"github.com/BruksfildServices01/workforce-scheduler/internal/models"
)

// ===============================
// Schedule Status
// ===============================

type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusCompleted Status = "completed"
	StatusArchived  Status = "archived"
)

// ===============================
// Shift Status
// ===============================

const (
	ShiftScheduled = "scheduled"
	ShiftConfirmed = "confirmed"
	ShiftCompleted = "completed"
	ShiftCancelled = "cancelled"
	ShiftNoShow    = "no_show"
)

var (
	ErrNotFound         = httperr.NotFound("schedule_not_found", "Schedule not found")
	ErrAlreadyPublished = httperr.ErrBusiness("already_published", "Schedule is already published")
	ErrDeletePublished  = httperr.ErrBusiness("cannot_delete_published", "Cannot delete published schedule")
	ErrInvalidWeek      = httperr.ErrBusiness("invalid_week", "Week end date must be after week start date")
	ErrInvalidStatus    = httperr.ErrBusiness("invalid_status", "Unknown schedule status")
)

func IsValidStatus(s string) bool {
	switch Status(s) {
	case StatusDraft, StatusPublished, StatusCompleted, StatusArchived:
		return true
	}
	return false
}

func InitialStatus() Status {
	return StatusDraft
}

// ===============================
// Domain Actions
// ===============================

// CanDelete blocks deletion of anything that has been published.
func CanDelete(s *models.Schedule) error {
	if Status(s.Status) == StatusPublished || s.PublishedAt != nil {
		return ErrDeletePublished
	}
	return nil
}

func Publish(s *models.Schedule, by uuid.UUID, now time.Time) error {
	if Status(s.Status) == StatusPublished {
		return ErrAlreadyPublished
	}
	s.Status = string(StatusPublished)
	s.PublishedAt = &now
	s.PublishedBy = &by
	return nil
}

func ValidateWeek(start, end time.Time) error {
	if !end.After(start) {
		return ErrInvalidWeek
	}
	return nil
}
