package schedule

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/workforce-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/workforce-scheduler/internal/domain/schedule"
)

type DeleteSchedule struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteSchedule(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeleteSchedule {
	return &DeleteSchedule{
		repo:  repo,
		audit: audit,
	}
}

func (uc *DeleteSchedule) Execute(
	ctx context.Context,
	id uuid.UUID,
	by uuid.UUID,
) error {

	s, err := load(ctx, uc.repo, id)
	if err != nil {
		return err
	}

	if err := domain.CanDelete(s); err != nil {
		return err
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		BusinessID: &s.BusinessID,
		AccountID:  &by,
		Action:     "schedule_deleted",
		Entity:     "schedule",
		EntityID:   &s.ID,
	})

	return nil
}
