package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"

	"github.com/rvmoura/pagamentos-api/internal/models"
	"github.com/rvmoura/pagamentos-api/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Mock PaymentRepository (embedding so only List needs an implementation)
type mockPaymentRepository struct {
	repository.PaymentRepository
	mockList func(ctx context.Context, query *repository.ListQuery) ([]models.Payment, int64, error)
}

func (m *mockPaymentRepository) List(ctx context.Context, query *repository.ListQuery) ([]models.Payment, int64, error) {
	if m.mockList != nil {
		return m.mockList(ctx, query)
	}
	return nil, 0, nil
}

func reportFixture() []models.Payment {
	contract := "CT-9"
	qty := 3
	nf := "NF-1"
	reciboID := uint(7)
	return []models.Payment{
		{
			ID:               1,
			Date:             date(2025, 4, 1),
			Period:           "2025-04",
			Value:            150_000,
			CreditorDoc:      "111",
			ContractNumber:   &contract,
			Quantity:         &qty,
			NotaFiscalNumber: &nf,
			Creditor:         models.Creditor{Doc: "111", Name: "Alfa Ltda"},
			ProductService:   &models.ProductService{ID: 5, Description: "Limpeza"},
		},
		{
			ID:          2,
			Date:        date(2025, 4, 15),
			Period:      "2025-04",
			Value:       25_050,
			CreditorDoc: "222",
			ReciboID:    &reciboID,
			Creditor:    models.Creditor{Doc: "222", Name: "Beta SA"},
		},
		{
			ID:          3,
			Date:        date(2025, 4, 20),
			Period:      "2025-04",
			Value:       1_000,
			CreditorDoc: "333",
		},
	}
}

func TestPaymentReport(t *testing.T) {
	mockRepo := &mockPaymentRepository{}
	mockRepo.mockList = func(ctx context.Context, query *repository.ListQuery) ([]models.Payment, int64, error) {
		return reportFixture(), 3, nil
	}
	service := NewReportService(mockRepo)

	rows, total, err := service.PaymentReport(context.Background(), repository.NewListQuery())
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, rows, 3)

	assert.Equal(t, "2025-04-01", rows[0].Date)
	assert.Equal(t, "Alfa Ltda", rows[0].CreditorName)
	assert.Equal(t, "CT-9", rows[0].ContractNumber)
	assert.Equal(t, "Limpeza", rows[0].Product)
	assert.Equal(t, 3, rows[0].Quantity)
	assert.Equal(t, "1500.00", rows[0].ValueText)
	assert.Equal(t, "Nota Fiscal", rows[0].DocumentKind)

	assert.Equal(t, "Recibo", rows[1].DocumentKind)
	// Payment with no document resolves to the fallback label
	assert.Equal(t, NoneDocumentLabel, rows[2].DocumentKind)
	assert.Equal(t, "Outro", rows[2].DocumentKind)

	assert.EqualValues(t, 176_050, Totals(rows))
}

func TestExportCSV(t *testing.T) {
	mockRepo := &mockPaymentRepository{}
	mockRepo.mockList = func(ctx context.Context, query *repository.ListQuery) ([]models.Payment, int64, error) {
		return reportFixture(), 3, nil
	}
	reportSvc := NewReportService(mockRepo)
	exportSvc := NewExportService(reportSvc)

	rows, _, err := reportSvc.PaymentReport(context.Background(), repository.NewListQuery())
	require.NoError(t, err)

	data, filename, err := exportSvc.ExportCSV(context.Background(), rows)
	require.NoError(t, err)
	assert.Contains(t, filename, ".csv")

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = ';'
	records, err := reader.ReadAll()
	require.NoError(t, err)

	// Header, three rows and a total line
	require.Len(t, records, 5)
	assert.Equal(t, reportHeader, records[0])
	assert.Equal(t, "1500.00", records[1][7])
	totalLine := records[4]
	assert.Equal(t, "1760.50", totalLine[7])
	assert.Equal(t, "Total", totalLine[8])
}

func TestExportXLSXAndPDFProduceFiles(t *testing.T) {
	reportSvc := NewReportService(&mockPaymentRepository{})
	exportSvc := NewExportService(reportSvc)

	rows := []PaymentReportRow{{
		PaymentID: 1, Date: "2025-04-01", Period: "2025-04",
		CreditorDoc: "111", CreditorName: "Alfa", Value: 1000, ValueText: "10.00",
		DocumentKind: "Recibo",
	}}

	xlsx, name, err := exportSvc.ExportXLSX(context.Background(), rows)
	require.NoError(t, err)
	assert.Contains(t, name, ".xlsx")
	assert.NotEmpty(t, xlsx)

	pdf, name, err := exportSvc.ExportPDF(context.Background(), rows)
	require.NoError(t, err)
	assert.Contains(t, name, ".pdf")
	// PDF files start with the %PDF magic
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}
