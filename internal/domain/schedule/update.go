package schedule

import (
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/workforce-scheduler/internal/models"
)

// Update lists the fields a client may change. Nil means untouched.
type Update struct {
	Title         *string
	Description   *string
	WeekStartDate *time.Time
	WeekEndDate   *time.Time
	Shifts        *[]models.Shift
	Status        *string
}

// ApplyUpdate mutates s and appends one modification entry describing what changed.
// It returns the changes; none means the log is left alone.
func ApplyUpdate(s *models.Schedule, u Update, by uuid.UUID, reason string, now time.Time) ([]models.FieldChange, error) {
	start, end := s.WeekStartDate, s.WeekEndDate
	if u.WeekStartDate != nil {
		start = *u.WeekStartDate
	}
	if u.WeekEndDate != nil {
		end = *u.WeekEndDate
	}
	if err := ValidateWeek(start, end); err != nil {
		return nil, err
	}
	if u.Status != nil && !IsValidStatus(*u.Status) {
		return nil, ErrInvalidStatus
	}

	var changes []models.FieldChange
	record := func(field string, oldValue, newValue any) {
		changes = append(changes, models.FieldChange{Field: field, OldValue: oldValue, NewValue: newValue})
	}

	if u.Title != nil && *u.Title != s.Title {
		record("title", s.Title, *u.Title)
		s.Title = *u.Title
	}
	if u.Description != nil && *u.Description != s.Description {
		record("description", s.Description, *u.Description)
		s.Description = *u.Description
	}
	if !start.Equal(s.WeekStartDate) {
		record("weekStartDate", s.WeekStartDate, start)
		s.WeekStartDate = start
	}
	if !end.Equal(s.WeekEndDate) {
		record("weekEndDate", s.WeekEndDate, end)
		s.WeekEndDate = end
	}
	if u.Shifts != nil {
		next := assignShiftIDs(*u.Shifts)
		if !sameShifts(s.Shifts, next) {
			record("shifts", []models.Shift(s.Shifts), next)
			s.Shifts = next
		}
	}
	if u.Status != nil && *u.Status != s.Status {
		record("status", s.Status, *u.Status)
		s.Status = *u.Status
		if Status(s.Status) == StatusPublished && s.PublishedAt == nil {
			s.PublishedAt = &now
			s.PublishedBy = &by
		}
	}

	if len(changes) > 0 {
		s.Modifications = append(s.Modifications, models.Modification{
			ModifiedBy: by,
			ModifiedAt: now,
			Reason:     reason,
			Changes:    changes,
		})
	}
	return changes, nil
}

func assignShiftIDs(in []models.Shift) []models.Shift {
	out := make([]models.Shift, len(in))
	copy(out, in)
	for i := range out {
		if out[i].ID == uuid.Nil {
			out[i].ID = uuid.New()
		}
	}
	return out
}

// sameShifts compares the client-controlled fields; derived pay is ignored.
func sameShifts(a, b []models.Shift) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		x, y := a[i], b[i]
		if x.ID != y.ID ||
			x.StaffID != y.StaffID ||
			x.Role != y.Role ||
			!x.Date.Equal(y.Date) ||
			x.StartTime != y.StartTime ||
			x.EndTime != y.EndTime ||
			x.Duration != y.Duration ||
			x.BreakTime != y.BreakTime ||
			x.HourlyRate != y.HourlyRate ||
			x.Notes != y.Notes ||
			x.Status != y.Status ||
			x.IsOvertime != y.IsOvertime {
			return false
		}
	}
	return true
}
