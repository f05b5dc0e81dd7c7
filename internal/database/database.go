package database

import (
	"fmt"
	"os"
	"time"

	pkgLogger "github.com/rvmoura/pagamentos-api/pkg/logger"

	"github.com/rvmoura/pagamentos-api/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect establishes a connection to the PostgreSQL database
func Connect(databaseURL string) (*gorm.DB, error) {
	logLevel := logger.Silent
	if os.Getenv("ENVIRONMENT") != "production" {
		logLevel = logger.Info
	}

	gormLogger := pkgLogger.NewGormLogger(logLevel, 200*time.Millisecond)

	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
		// Normalize driver-specific uniqueness violations into
		// gorm.ErrDuplicatedKey; bulk reconciliation depends on it.
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(time.Hour)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// Migrate creates or updates the schema for every ledger table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Creditor{},
		&models.ProductService{},
		&models.ContractItem{},
		&models.Contract{},
		&models.Amendment{},
		&models.NotaFiscal{},
		&models.Recibo{},
		&models.Fatura{},
		&models.Boleto{},
		&models.Payment{},
		&models.ImportBatch{},
		&models.AuditLog{},
	)
}
