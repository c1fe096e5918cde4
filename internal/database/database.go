package database

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"page-builder-backend/internal/config"
	"page-builder-backend/internal/models"
	"page-builder-backend/pkg/logger"
)

// Open connects to the database selected by cfg.DBDriver. Unique violations are
// translated to gorm.ErrDuplicatedKey for both drivers.
func Open(cfg *config.Config) (*gorm.DB, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	gormConfig := &gorm.Config{
		Logger:         logger.NewGormLogger(),
		TranslateError: true,
	}

	var dialector gorm.Dialector
	if cfg.UsesSQLite() {
		logger.Info("Connecting to database", map[string]interface{}{"driver": "sqlite", "path": cfg.SQLitePath})
		dialector = sqlite.Open(cfg.SQLitePath)
	} else {
		logger.Info("Connecting to database", map[string]interface{}{"driver": "postgres", "host": cfg.DBHost})
		dialector = postgres.Open(cfg.DatabaseURL)
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	if cfg.UsesSQLite() {
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	return db, nil
}

// OpenInMemory opens a private in-memory sqlite database, migrated and ready.
// name must be unique per database.
func OpenInMemory(name string) (*gorm.DB, error) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("database connection is not initialized")
	}

	logger.Debug("Running database migrations", nil)

	if err := db.AutoMigrate(
		&models.Category{},
		&models.Page{},
		&models.Section{},
		&models.MediaItem{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) {
	if db == nil {
		return
	}
	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error(err, "Failed to close database", nil)
		}
	}
}
