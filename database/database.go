package database

import (
	"context"
	"fmt"
	"time"

	config "github.com/anjiri1684/tutor_orm/configs"
	"github.com/anjiri1684/tutor_orm/logger"
	"github.com/anjiri1684/tutor_orm/models"
	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// ConnectDB opens the Postgres connection pool described by settings.
func ConnectDB(settings config.Settings) (*gorm.DB, error) {
	gormLog := logger.NewGormLogger(logger.Get(), logger.GormLevel(settings.QueryLog), settings.SlowQuery)
	db, err := gorm.Open(postgres.Open(settings.DatabaseURL), &gorm.Config{
		SkipDefaultTransaction:   true,
		DisableNestedTransaction: true,
		Logger:                   gormLog,
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	DB = db
	logger.Info().Msg("✅ Database connected successfully")
	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
		return fmt.Errorf("enable pgcrypto: %w", err)
	}
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	logger.Info().Msg("✅ Database migration successful")
	return nil
}

// SeedRooms gives a fresh organization its default rooms.
func SeedRooms(ctx context.Context, db *gorm.DB, orgID uuid.UUID) error {
	var count int64
	if err := db.WithContext(ctx).Model(&models.Room{}).Where("org_id = ?", orgID).Count(&count).Error; err != nil {
		return fmt.Errorf("count rooms: %w", err)
	}
	if count > 0 {
		logger.Info().Str("org", orgID.String()).Msg("Rooms already seeded.")
		return nil
	}
	rooms := []models.Room{
		{OrgID: orgID, Name: "Room A", Capacity: 8, IsActive: true},
		{OrgID: orgID, Name: "Room B", Capacity: 8, IsActive: true},
		{OrgID: orgID, Name: "Online", Capacity: 20, IsActive: true},
	}
	if err := db.WithContext(ctx).Create(&rooms).Error; err != nil {
		return fmt.Errorf("seed rooms: %w", err)
	}
	logger.Info().Str("org", orgID.String()).Int("rooms", len(rooms)).Msg("✅ Rooms seeded successfully")
	return nil
}
