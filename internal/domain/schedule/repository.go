package schedule

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/workforce-scheduler/internal/models"
)

type ListFilter struct {
	BusinessID uuid.UUID
	Status     string
	From       *time.Time
	To         *time.Time
}

// StaffFilter selects the schedules a staff member has shifts in.
// From and To bound weekStartDate.
type StaffFilter struct {
	StaffID  uuid.UUID
	Statuses []string
	From     *time.Time
	To       *time.Time
}

// Repository persists schedules. Implementations call Recalculate before every write.
type Repository interface {
	Create(ctx context.Context, s *models.Schedule) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Schedule, error)
	Update(ctx context.Context, s *models.Schedule) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, f ListFilter, offset, limit int) ([]models.Schedule, int64, error)
	CountCreatedBetween(ctx context.Context, businessID uuid.UUID, from, to time.Time) (int64, error)
	ListForStaff(ctx context.Context, f StaffFilter, offset, limit int) ([]models.Schedule, int64, error)
}

// Archiver keeps a copy of a published schedule outside the database.
type Archiver interface {
	Archive(ctx context.Context, s *models.Schedule) (string, error)
}

// OnlyStaff keeps the shifts of one staff member.
func OnlyStaff(s *models.Schedule, staffID uuid.UUID) {
	kept := make([]models.Shift, 0, len(s.Shifts))
	for _, sh := range s.Shifts {
		if sh.StaffID == staffID {
			kept = append(kept, sh)
		}
	}
	s.Shifts = kept
}
