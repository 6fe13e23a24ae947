package schedule

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/workforce-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/workforce-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/workforce-scheduler/internal/models"
)

type PublishSchedule struct {
	repo     domain.Repository
	archiver domain.Archiver
	audit    *audit.Dispatcher
	log      zerolog.Logger
	now      func() time.Time
}

// NewPublishSchedule takes an optional archiver; nil skips the snapshot.
func NewPublishSchedule(
	repo domain.Repository,
	archiver domain.Archiver,
	audit *audit.Dispatcher,
	log zerolog.Logger,
) *PublishSchedule {
	return &PublishSchedule{
		repo:     repo,
		archiver: archiver,
		audit:    audit,
		log:      log,
		now:      time.Now,
	}
}

func (uc *PublishSchedule) Execute(
	ctx context.Context,
	id uuid.UUID,
	by uuid.UUID,
) (*models.Schedule, error) {

	s, err := load(ctx, uc.repo, id)
	if err != nil {
		return nil, err
	}

	if err := domain.Publish(s, by, uc.now()); err != nil {
		return nil, err
	}

	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, err
	}

	meta := map[string]any{}
	if uc.archiver != nil {
		key, err := uc.archiver.Archive(ctx, s)
		if err != nil {
			uc.log.Error().Err(err).Str("schedule_id", s.ID.String()).Msg("schedule snapshot upload failed")
		} else {
			meta["snapshot"] = key
		}
	}

	uc.audit.Dispatch(audit.Event{
		BusinessID: &s.BusinessID,
		AccountID:  &by,
		Action:     "schedule_published",
		Entity:     "schedule",
		EntityID:   &s.ID,
		Metadata:   meta,
	})

	return s, nil
}
