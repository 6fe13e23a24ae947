package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/workforce-scheduler/internal/domain/business"
	"github.com/BruksfildServices01/workforce-scheduler/internal/models"
)

type BusinessGormRepository struct {
	db *gorm.DB
}

func NewBusinessGormRepository(db *gorm.DB) *BusinessGormRepository {
	return &BusinessGormRepository{db: db}
}

func (r *BusinessGormRepository) Create(
	ctx context.Context,
	b *models.Business,
) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BusinessGormRepository) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*models.Business, error) {

	var b models.Business
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BusinessGormRepository) Update(
	ctx context.Context,
	b *models.Business,
) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *BusinessGormRepository) List(
	ctx context.Context,
	f domain.ListFilter,
	offset int,
	limit int,
) ([]models.Business, int64, error) {

	q := r.db.WithContext(ctx).Model(&models.Business{})

	if f.Search != "" {
		q = q.Where("name ILIKE ?", "%"+f.Search+"%")
	}
	if f.Active != nil {
		q = q.Where("is_active = ?", *f.Active)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []models.Business
	if err := q.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, 0, err
	}

	return out, total, nil
}

// Compile-time check
var _ domain.Repository = (*BusinessGormRepository)(nil)
