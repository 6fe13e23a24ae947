package schedule

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/workforce-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/workforce-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/workforce-scheduler/internal/models"
)

type UpdateSchedule struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewUpdateSchedule(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateSchedule {
	return &UpdateSchedule{
		repo:  repo,
		audit: audit,
		now:   time.Now,
	}
}

func (uc *UpdateSchedule) Execute(
	ctx context.Context,
	id uuid.UUID,
	u domain.Update,
	by uuid.UUID,
	reason string,
) (*models.Schedule, error) {

	s, err := load(ctx, uc.repo, id)
	if err != nil {
		return nil, err
	}

	changes, err := domain.ApplyUpdate(s, u, by, reason, uc.now())
	if err != nil {
		return nil, err
	}
	if len(changes) == 0 {
		return s, nil
	}

	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, err
	}

	fields := make([]string, 0, len(changes))
	for _, c := range changes {
		fields = append(fields, c.Field)
	}
	uc.audit.Dispatch(audit.Event{
		BusinessID: &s.BusinessID,
		AccountID:  &by,
		Action:     "schedule_updated",
		Entity:     "schedule",
		EntityID:   &s.ID,
		Metadata:   map[string]any{"fields": fields, "reason": reason},
	})

	return s, nil
}
