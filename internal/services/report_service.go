package services

import (
	"context"

	"github.com/rvmoura/pagamentos-api/internal/models"
	"github.com/rvmoura/pagamentos-api/internal/repository"
)

// NoneDocumentLabel marks payments that carry no supporting document.
var NoneDocumentLabel = models.DocumentKindNone.Label()

// PaymentReportRow is one line of the payments report: the payment joined
// with creditor and product names and the resolved document-kind label.
type PaymentReportRow struct {
	PaymentID      uint            `json:"payment_id"`
	Date           string          `json:"date"`
	Period         string          `json:"period"`
	CreditorDoc    string          `json:"creditor_doc"`
	CreditorName   string          `json:"creditor_name"`
	ContractNumber string          `json:"contract_number"`
	Product        string          `json:"product"`
	Quantity       int             `json:"quantity"`
	Value          models.Centavos `json:"-"`
	ValueText      string          `json:"value"`
	DocumentKind   string          `json:"document_kind"`
}

// ReportService produces read-only payment reports. It has no write access
// to the ledger.
type ReportService struct {
	paymentRepo repository.PaymentRepository
}

// NewReportService creates a new report service
func NewReportService(paymentRepo repository.PaymentRepository) *ReportService {
	return &ReportService{paymentRepo: paymentRepo}
}

// PaymentReport lists payments filtered by date range, period, creditor and
// contract, with names and document labels resolved.
func (s *ReportService) PaymentReport(ctx context.Context, query *repository.ListQuery) ([]PaymentReportRow, int64, error) {
	payments, total, err := s.paymentRepo.List(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	rows := make([]PaymentReportRow, 0, len(payments))
	for _, p := range payments {
		row := PaymentReportRow{
			PaymentID:    p.ID,
			Date:         p.Date.Format("2006-01-02"),
			Period:       p.Period,
			CreditorDoc:  p.CreditorDoc,
			Value:        p.Value,
			ValueText:    p.Value.String(),
			DocumentKind: p.DocumentKind().Label(),
		}
		if p.Creditor.Doc != "" {
			row.CreditorName = p.Creditor.Name
		}
		if p.ContractNumber != nil {
			row.ContractNumber = *p.ContractNumber
		}
		if p.ProductService != nil {
			row.Product = p.ProductService.Description
		}
		if p.Quantity != nil {
			row.Quantity = *p.Quantity
		}
		rows = append(rows, row)
	}
	return rows, total, nil
}

// Totals sums the values of the given report rows.
func Totals(rows []PaymentReportRow) models.Centavos {
	var total models.Centavos
	for _, r := range rows {
		total += r.Value
	}
	return total
}
