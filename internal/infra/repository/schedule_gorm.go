package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/workforce-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/workforce-scheduler/internal/models"
)

type ScheduleGormRepository struct {
	db *gorm.DB
}

func NewScheduleGormRepository(db *gorm.DB) *ScheduleGormRepository {
	return &ScheduleGormRepository{db: db}
}

// --------------------------------------------------
// Writes (totals are derived before every persist)
// --------------------------------------------------

func (r *ScheduleGormRepository) Create(
	ctx context.Context,
	s *models.Schedule,
) error {
	domain.Recalculate(s)
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *ScheduleGormRepository) Update(
	ctx context.Context,
	s *models.Schedule,
) error {
	domain.Recalculate(s)
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *ScheduleGormRepository) Delete(
	ctx context.Context,
	id uuid.UUID,
) error {

	res := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Schedule{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// --------------------------------------------------
// Reads
// --------------------------------------------------

func (r *ScheduleGormRepository) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*models.Schedule, error) {

	var s models.Schedule
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *ScheduleGormRepository) List(
	ctx context.Context,
	f domain.ListFilter,
	offset int,
	limit int,
) ([]models.Schedule, int64, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Schedule{}).
		Where("business_id = ?", f.BusinessID)

	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.From != nil {
		q = q.Where("week_start_date >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("week_start_date <= ?", *f.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []models.Schedule
	if err := q.
		Order("week_start_date DESC").
		Offset(offset).
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, 0, err
	}

	return out, total, nil
}

func (r *ScheduleGormRepository) CountCreatedBetween(
	ctx context.Context,
	businessID uuid.UUID,
	from time.Time,
	to time.Time,
) (int64, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Schedule{}).
		Where("business_id = ? AND created_at >= ? AND created_at < ?", businessID, from, to).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ScheduleGormRepository) ListForStaff(
	ctx context.Context,
	f domain.StaffFilter,
	offset int,
	limit int,
) ([]models.Schedule, int64, error) {

	contains, err := json.Marshal([]map[string]string{{"staffId": f.StaffID.String()}})
	if err != nil {
		return nil, 0, err
	}

	q := r.db.WithContext(ctx).
		Model(&models.Schedule{}).
		Where("status IN ? AND shifts @> ?::jsonb", f.Statuses, string(contains))

	if f.From != nil {
		q = q.Where("week_start_date >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("week_start_date <= ?", *f.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []models.Schedule
	if err := q.
		Order("week_start_date DESC").
		Offset(offset).
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, 0, err
	}

	return out, total, nil
}

// Compile-time check
var _ domain.Repository = (*ScheduleGormRepository)(nil)
