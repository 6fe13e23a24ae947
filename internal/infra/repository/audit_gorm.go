package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/workforce-scheduler/internal/audit"
	"github.com/BruksfildServices01/workforce-scheduler/internal/models"
)

type AuditGormRepository struct {
	db *gorm.DB
}

func NewAuditGormRepository(db *gorm.DB) *AuditGormRepository {
	return &AuditGormRepository{db: db}
}

func (r *AuditGormRepository) Save(
	ctx context.Context,
	entry *models.AuditLog,
) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *AuditGormRepository) List(
	ctx context.Context,
	f audit.Filter,
	offset int,
	limit int,
) ([]models.AuditLog, int64, error) {

	// --------------------------------------------------
	// Base query (always scoped to one business)
	// --------------------------------------------------
	q := r.db.WithContext(ctx).
		Model(&models.AuditLog{}).
		Where("business_id = ?", f.BusinessID)

	if f.Action != "" {
		q = q.Where("action = ?", f.Action)
	}
	if f.Entity != "" {
		q = q.Where("entity = ?", f.Entity)
	}
	if f.From != nil {
		q = q.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("created_at < ?", f.To.Add(24*time.Hour))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error; err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}

// Compile-time checks
var (
	_ audit.Store  = (*AuditGormRepository)(nil)
	_ audit.Reader = (*AuditGormRepository)(nil)
)
