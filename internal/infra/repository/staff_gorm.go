package repository

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/workforce-scheduler/internal/domain/staff"
	"github.com/BruksfildServices01/workforce-scheduler/internal/models"
)

type StaffGormRepository struct {
	db *gorm.DB
}

func NewStaffGormRepository(db *gorm.DB) *StaffGormRepository {
	return &StaffGormRepository{db: db}
}

// --------------------------------------------------
// Single record
// --------------------------------------------------

func (r *StaffGormRepository) Create(
	ctx context.Context,
	s *models.Staff,
) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *StaffGormRepository) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*models.Staff, error) {

	var s models.Staff
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *StaffGormRepository) GetByAccountID(
	ctx context.Context,
	accountID uuid.UUID,
) (*models.Staff, error) {

	var s models.Staff
	if err := r.db.WithContext(ctx).
		Where("account_id = ? AND is_active = ?", accountID, true).
		First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *StaffGormRepository) Update(
	ctx context.Context,
	s *models.Staff,
) error {
	return r.db.WithContext(ctx).Save(s).Error
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

func (r *StaffGormRepository) List(
	ctx context.Context,
	f domain.ListFilter,
	offset int,
	limit int,
) ([]models.Staff, int64, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Staff{}).
		Where("business_id = ?", f.BusinessID)

	if f.Active != nil {
		q = q.Where("is_active = ?", *f.Active)
	}
	if f.Role != "" {
		role, err := json.Marshal([]string{f.Role})
		if err != nil {
			return nil, 0, err
		}
		q = q.Where("roles @> ?::jsonb", string(role))
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("(name ILIKE ? OR email ILIKE ?)", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []models.Staff
	if err := q.
		Order("name ASC").
		Offset(offset).
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, 0, err
	}

	return out, total, nil
}

func (r *StaffGormRepository) ListActive(
	ctx context.Context,
	businessID uuid.UUID,
) ([]models.Staff, error) {

	var out []models.Staff
	if err := r.db.WithContext(ctx).
		Where("business_id = ? AND is_active = ?", businessID, true).
		Order("name ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// --------------------------------------------------
// Rules
// --------------------------------------------------

func (r *StaffGormRepository) CountActive(
	ctx context.Context,
	businessID uuid.UUID,
) (int64, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Staff{}).
		Where("business_id = ? AND is_active = ?", businessID, true).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *StaffGormRepository) PhoneInUse(
	ctx context.Context,
	businessID uuid.UUID,
	phone string,
	exclude uuid.UUID,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Staff{}).
		Where("business_id = ? AND phone = ? AND id <> ?", businessID, phone, exclude).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Compile-time check
var _ domain.Repository = (*StaffGormRepository)(nil)
