package db

import (
	"context"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/BruksfildServices01/workforce-scheduler/internal/config"
	"github.com/BruksfildServices01/workforce-scheduler/internal/models"
)

// NewDB opens the connection pool and migrates the schema.
// The returned pool lives for the whole process; release it with Close.
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	logLevel := gormlogger.Warn
	if cfg.IsProduction() {
		logLevel = gormlogger.Error
	}

	db, err := gorm.Open(postgres.Open(cfg.Database.URL), &gorm.Config{
		PrepareStmt: true,
		Logger:      gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Account{},
		&models.Business{},
		&models.Staff{},
		&models.Schedule{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	// Shift lookups by staff id use jsonb containment.
	if err := db.Exec(
		`CREATE INDEX IF NOT EXISTS idx_schedules_shifts ON schedules USING GIN (shifts jsonb_path_ops)`,
	).Error; err != nil {
		return fmt.Errorf("migrate: shifts index: %w", err)
	}

	// Phone numbers are unique among the staff of one business.
	if err := db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_staff_business_phone ON staff (business_id, phone)`,
	).Error; err != nil {
		return fmt.Errorf("migrate: staff phone index: %w", err)
	}

	return nil
}

func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
