package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/workforce-scheduler/internal/domain/account"
	"github.com/BruksfildServices01/workforce-scheduler/internal/models"
)

type AccountGormRepository struct {
	db *gorm.DB
}

func NewAccountGormRepository(db *gorm.DB) *AccountGormRepository {
	return &AccountGormRepository{db: db}
}

func (r *AccountGormRepository) Create(
	ctx context.Context,
	a *models.Account,
) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *AccountGormRepository) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*models.Account, error) {

	var a models.Account
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AccountGormRepository) GetByEmail(
	ctx context.Context,
	email string,
) (*models.Account, error) {

	var a models.Account
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AccountGormRepository) ExistsByEmail(
	ctx context.Context,
	email string,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Account{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *AccountGormRepository) Update(
	ctx context.Context,
	a *models.Account,
) error {
	return r.db.WithContext(ctx).Save(a).Error
}

// Compile-time check
var _ domain.Repository = (*AccountGormRepository)(nil)
