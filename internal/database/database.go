package database

import (
	"fmt"
	"time"

	"github.com/sgavril/condoflow-api/internal/config"
	"github.com/sgavril/condoflow-api/internal/models"
	pkgLogger "github.com/sgavril/condoflow-api/pkg/logger"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect establishes a connection to the PostgreSQL database
func Connect(cfg *config.Config) (*gorm.DB, error) {
	// Configure GORM logger
	logLevel := logger.Silent
	if cfg.Environment != "production" {
		logLevel = logger.Info
	}

	gormLogger := pkgLogger.NewGormLogger(
		logLevel,
		time.Duration(cfg.SlowQueryMs)*time.Millisecond,
	)

	// Open database connection
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger:      gormLogger,
		PrepareStmt: true, // Cache prepared statements
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL database
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(time.Hour)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	// Verify connection
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// Migrate creates or updates the schema for all billing tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Building{},
		&models.Apartment{},
		&models.Expense{},
		&models.Transaction{},
		&models.Payment{},
		&models.MonthlyBalance{},
		&models.ReserveFundConfig{},
		&models.MeterReading{},
	)
}
