package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/rvmoura/pagamentos-api/internal/models"
	"gorm.io/gorm"
)

// PaymentRepository defines the interface for payment data access
type PaymentRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Payment, error)
	FindByContract(ctx context.Context, contractNumber string) ([]models.Payment, error)
	List(ctx context.Context, query *ListQuery) ([]models.Payment, int64, error)
	// CreateWithDocument persists the supporting document (when present) and
	// the payment as one transaction: either both rows land or neither does.
	// The document is created first so the payment's reference is always
	// resolvable.
	CreateWithDocument(ctx context.Context, payment *models.Payment, document any) error
	// SumByContract is the full-scan aggregate over every payment recorded
	// against the contract, excluding no rows.
	SumByContract(ctx context.Context, contractNumber string) (models.Centavos, error)
}

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) FindByID(ctx context.Context, id uint) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.WithContext(ctx).
		Preload("Creditor").
		Preload("ProductService").
		First(&payment, id).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) FindByContract(ctx context.Context, contractNumber string) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.WithContext(ctx).
		Where("contract_number = ?", contractNumber).
		Order("date ASC").
		Find(&payments).Error
	return payments, err
}

func (r *paymentRepository) List(ctx context.Context, query *ListQuery) ([]models.Payment, int64, error) {
	var payments []models.Payment
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Payment{})

	if val := query.Filters["start_date"]; val != "" {
		db = db.Where("payments.date >= ?", val)
	}
	if val := query.Filters["end_date"]; val != "" {
		db = db.Where("payments.date <= ?", val)
	}
	if val := query.Filters["period"]; val != "" {
		db = db.Where("payments.period = ?", val)
	}
	if val := query.Filters["creditor_doc"]; val != "" {
		db = db.Where("payments.creditor_doc = ?", val)
	}
	if val := query.Filters["contract_number"]; val != "" {
		db = db.Where("payments.contract_number = ?", val)
	}

	countDB := db.Session(&gorm.Session{})
	if err := countDB.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Only whitelisted columns are sortable; anything else falls back to
	// the chronological default.
	sortBy := "date"
	switch query.SortBy {
	case "date", "value", "period", "creditor_doc", "contract_number":
		sortBy = query.SortBy
	}
	sortDir := "ASC"
	if strings.EqualFold(query.SortDir, "desc") {
		sortDir = "DESC"
	}
	db = db.Order(fmt.Sprintf("payments.%s %s, payments.id ASC", sortBy, sortDir))
	if query.PerPage > 0 {
		db = db.Offset((query.Page - 1) * query.PerPage).Limit(query.PerPage)
	}

	err := db.
		Preload("Creditor").
		Preload("ProductService").
		Find(&payments).Error
	return payments, total, err
}

func (r *paymentRepository) CreateWithDocument(ctx context.Context, payment *models.Payment, document any) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		switch doc := document.(type) {
		case nil:
			// unconstrained payment, no supporting document
		case *models.NotaFiscal:
			if err := tx.Create(doc).Error; err != nil {
				return err
			}
			payment.NotaFiscalNumber = &doc.Number
		case *models.Recibo:
			if err := tx.Create(doc).Error; err != nil {
				return err
			}
			payment.ReciboID = &doc.ID
		case *models.Fatura:
			if err := tx.Create(doc).Error; err != nil {
				return err
			}
			payment.FaturaID = &doc.ID
		case *models.Boleto:
			if err := tx.Create(doc).Error; err != nil {
				return err
			}
			payment.BoletoID = &doc.ID
		default:
			return fmt.Errorf("unsupported document type %T", document)
		}
		return tx.Create(payment).Error
	})
}

func (r *paymentRepository) SumByContract(ctx context.Context, contractNumber string) (models.Centavos, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Select("COALESCE(SUM(value), 0)").
		Where("contract_number = ?", contractNumber).
		Scan(&total).Error
	return models.Centavos(total), err
}
