package schedule

import (
	"context"

	domain "github.com/BruksfildServices01/workforce-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/workforce-scheduler/internal/models"
)

type ListSchedules struct {
	repo domain.Repository
}

func NewListSchedules(repo domain.Repository) *ListSchedules {
	return &ListSchedules{repo: repo}
}

func (uc *ListSchedules) Execute(
	ctx context.Context,
	f domain.ListFilter,
	offset int,
	limit int,
) ([]models.Schedule, int64, error) {

	if f.Status != "" && !domain.IsValidStatus(f.Status) {
		return nil, 0, domain.ErrInvalidStatus
	}
	return uc.repo.List(ctx, f, offset, limit)
}

// ListStaffSchedules shows a staff member the published and completed
// schedules they work in, with everyone else's shifts removed.
type ListStaffSchedules struct {
	repo domain.Repository
}

func NewListStaffSchedules(repo domain.Repository) *ListStaffSchedules {
	return &ListStaffSchedules{repo: repo}
}

var visibleToStaff = []string{
	string(domain.StatusPublished),
	string(domain.StatusCompleted),
}

func (uc *ListStaffSchedules) Execute(
	ctx context.Context,
	f domain.StaffFilter,
	offset int,
	limit int,
) ([]models.Schedule, int64, error) {

	f.Statuses = visibleToStaff
	items, total, err := uc.repo.ListForStaff(ctx, f, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	for i := range items {
		domain.OnlyStaff(&items[i], f.StaffID)
	}
	return items, total, nil
}
