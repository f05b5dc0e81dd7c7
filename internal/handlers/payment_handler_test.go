package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rvmoura/pagamentos-api/internal/database"
	"github.com/rvmoura/pagamentos-api/internal/models"
	"github.com/rvmoura/pagamentos-api/internal/repository"
	"github.com/rvmoura/pagamentos-api/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newPaymentRouter wires the payment routes against an in-memory database
// seeded with one creditor and one contract.
func newPaymentRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

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

	require.NoError(t, db.Create(&models.Creditor{Doc: "11222333000144", Name: "Fornecedora Alfa"}).Error)
	require.NoError(t, db.Create(&models.Contract{
		Number:      "CT-2025-009",
		CreditorDoc: "11222333000144",
		StartDate:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
		TotalValue:  500_000,
	}).Error)

	repos := repository.NewRepositories(db)
	auditSvc := services.NewAuditService(db)
	paymentSvc := services.NewPaymentService(repos.Payment, repos.Contract, repos.Amendment, repos.Creditor, auditSvc)
	handler := NewPaymentHandler(paymentSvc)

	router := gin.New()
	router.POST("/api/v1/payments", handler.Create)
	router.GET("/api/v1/payments", handler.Index)
	router.DELETE("/api/v1/payments/:payment_id", handler.Delete)
	return router, db
}

func postPayment(t *testing.T, router *gin.Engine, payload map[string]interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/payments", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestPaymentCreate_WithNotaFiscal(t *testing.T) {
	router, db := newPaymentRouter(t)

	w := postPayment(t, router, map[string]interface{}{
		"payment": map[string]interface{}{
			"date":            "2025-03-10",
			"period":          "2025-03",
			"value":           "1500,00",
			"creditor_doc":    "11222333000144",
			"contract_number": "CT-2025-009",
			"document": map[string]interface{}{
				"kind":   "nota_fiscal",
				"number": "NF-777",
				"date":   "2025-03-09",
			},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Payment models.PaymentResponse `json:"payment"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "1500.00", resp.Payment.Value)
	assert.Equal(t, "Nota Fiscal", resp.Payment.DocumentKind)

	var nfCount int64
	require.NoError(t, db.Model(&models.NotaFiscal{}).Count(&nfCount).Error)
	assert.EqualValues(t, 1, nfCount)
}

func TestPaymentCreate_RejectsOutsideValidity(t *testing.T) {
	router, db := newPaymentRouter(t)

	w := postPayment(t, router, map[string]interface{}{
		"date":            "2026-01-05",
		"period":          "2026-01",
		"value":           "100.00",
		"creditor_doc":    "11222333000144",
		"contract_number": "CT-2025-009",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())

	var count int64
	require.NoError(t, db.Model(&models.Payment{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestPaymentCreate_UnknownCreditorIs404(t *testing.T) {
	router, _ := newPaymentRouter(t)

	w := postPayment(t, router, map[string]interface{}{
		"date":         "2025-03-10",
		"period":       "2025-03",
		"value":        "100.00",
		"creditor_doc": "00000000000000",
	})
	assert.Equal(t, http.StatusNotFound, w.Code, w.Body.String())
}

func TestPaymentCreate_BadValueIs400(t *testing.T) {
	router, _ := newPaymentRouter(t)

	w := postPayment(t, router, map[string]interface{}{
		"date":         "2025-03-10",
		"period":       "2025-03",
		"value":        "cem reais",
		"creditor_doc": "11222333000144",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
}

func TestPaymentDelete_Refused(t *testing.T) {
	router, _ := newPaymentRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("DELETE", "/api/v1/payments/1", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestPaymentIndex_SortByValueDescending(t *testing.T) {
	router, _ := newPaymentRouter(t)

	for _, p := range []struct{ date, value string }{
		{"2025-03-01", "100.00"},
		{"2025-03-02", "300.00"},
		{"2025-03-03", "200.00"},
	} {
		w := postPayment(t, router, map[string]interface{}{
			"date":         p.date,
			"period":       "2025-03",
			"value":        p.value,
			"creditor_doc": "11222333000144",
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/payments?sort=value-desc", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Payments []models.PaymentResponse `json:"payments"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Payments, 3)
	assert.Equal(t, "300.00", resp.Payments[0].Value)
	assert.Equal(t, "200.00", resp.Payments[1].Value)
	assert.Equal(t, "100.00", resp.Payments[2].Value)
}

func TestPaymentIndex_UnknownSortColumnFallsBackToDate(t *testing.T) {
	router, _ := newPaymentRouter(t)

	for _, p := range []struct{ date, value string }{
		{"2025-03-02", "300.00"},
		{"2025-03-01", "100.00"},
	} {
		w := postPayment(t, router, map[string]interface{}{
			"date":         p.date,
			"period":       "2025-03",
			"value":        p.value,
			"creditor_doc": "11222333000144",
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/payments?sort=coluna_qualquer-asc", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Payments []models.PaymentResponse `json:"payments"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Payments, 2)
	assert.Equal(t, "100.00", resp.Payments[0].Value)
	assert.Equal(t, "300.00", resp.Payments[1].Value)
}
