package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rvmoura/pagamentos-api/internal/database"
	"github.com/rvmoura/pagamentos-api/internal/models"
	"github.com/rvmoura/pagamentos-api/internal/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database with the full schema.
// A single connection keeps the shared-cache memory database alive and
// serializes access, which the per-key service locks rely on anyway.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// seedCreditor inserts a creditor and returns its doc.
func seedCreditor(t *testing.T, db *gorm.DB) string {
	t.Helper()
	creditor := &models.Creditor{Doc: "11222333000144", Name: "Fornecedora Alfa Ltda"}
	require.NoError(t, db.Create(creditor).Error)
	return creditor.Doc
}

// seedContract inserts a contract for the creditor with the given window and
// total value.
func seedContract(t *testing.T, db *gorm.DB, doc string, start, end time.Time, total models.Centavos) *models.Contract {
	t.Helper()
	contract := &models.Contract{
		Number:      "CT-2025-001",
		CreditorDoc: doc,
		StartDate:   start,
		EndDate:     end,
		TotalValue:  total,
	}
	require.NoError(t, db.Create(contract).Error)
	return contract
}

func newTestServices(t *testing.T, db *gorm.DB) (*repository.Repositories, *PaymentService, *ContractService) {
	t.Helper()
	repos := repository.NewRepositories(db)
	auditSvc := NewAuditService(db)
	paymentSvc := NewPaymentService(repos.Payment, repos.Contract, repos.Amendment, repos.Creditor, auditSvc)
	contractSvc := NewContractService(repos.Contract, repos.Amendment, repos.Creditor, repos.Payment, auditSvc)
	return repos, paymentSvc, contractSvc
}
