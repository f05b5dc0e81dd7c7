package repository

import (
	"context"

	"github.com/rvmoura/pagamentos-api/internal/models"
	"gorm.io/gorm"
)

// ContractRepository defines the interface for contract data access
type ContractRepository interface {
	FindByNumber(ctx context.Context, number string) (*models.Contract, error)
	FindByNumberWithDetails(ctx context.Context, number string) (*models.Contract, error)
	List(ctx context.Context, query *ListQuery) ([]models.Contract, int64, error)
	Create(ctx context.Context, contract *models.Contract) error
}

type contractRepository struct {
	db *gorm.DB
}

// NewContractRepository creates a new contract repository
func NewContractRepository(db *gorm.DB) ContractRepository {
	return &contractRepository{db: db}
}

func (r *contractRepository) FindByNumber(ctx context.Context, number string) (*models.Contract, error) {
	var contract models.Contract
	err := r.db.WithContext(ctx).Where("number = ?", number).First(&contract).Error
	if err != nil {
		return nil, err
	}
	return &contract, nil
}

func (r *contractRepository) FindByNumberWithDetails(ctx context.Context, number string) (*models.Contract, error) {
	var contract models.Contract
	err := r.db.WithContext(ctx).
		Preload("Creditor").
		Preload("Amendments").
		Preload("Payments", func(db *gorm.DB) *gorm.DB {
			return db.Order("date ASC")
		}).
		Where("number = ?", number).
		First(&contract).Error
	if err != nil {
		return nil, err
	}
	return &contract, nil
}

func (r *contractRepository) List(ctx context.Context, query *ListQuery) ([]models.Contract, int64, error) {
	var contracts []models.Contract
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Contract{})

	if doc := query.Filters["creditor_doc"]; doc != "" {
		db = db.Where("contracts.creditor_doc = ?", doc)
	}
	if query.Search != "" {
		search := "%" + query.Search + "%"
		db = db.Joins("LEFT JOIN creditors ON creditors.doc = contracts.creditor_doc").
			Where("contracts.number LIKE ? OR creditors.name LIKE ?", search, search)
	}

	countDB := db.Session(&gorm.Session{})
	if err := countDB.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	db = db.Order("contracts.start_date DESC")
	if query.PerPage > 0 {
		db = db.Offset((query.Page - 1) * query.PerPage).Limit(query.PerPage)
	}

	err := db.Preload("Creditor").Find(&contracts).Error
	return contracts, total, err
}

func (r *contractRepository) Create(ctx context.Context, contract *models.Contract) error {
	return r.db.WithContext(ctx).Create(contract).Error
}

// AmendmentRepository defines the interface for contract amendment data access
type AmendmentRepository interface {
	FindByContract(ctx context.Context, contractNumber string) ([]models.Amendment, error)
	Create(ctx context.Context, amendment *models.Amendment) error
	SumByContract(ctx context.Context, contractNumber string) (models.Centavos, error)
}

type amendmentRepository struct {
	db *gorm.DB
}

// NewAmendmentRepository creates a new amendment repository
func NewAmendmentRepository(db *gorm.DB) AmendmentRepository {
	return &amendmentRepository{db: db}
}

func (r *amendmentRepository) FindByContract(ctx context.Context, contractNumber string) ([]models.Amendment, error) {
	var amendments []models.Amendment
	err := r.db.WithContext(ctx).
		Where("contract_number = ?", contractNumber).
		Order("created_at ASC").
		Find(&amendments).Error
	return amendments, err
}

func (r *amendmentRepository) Create(ctx context.Context, amendment *models.Amendment) error {
	return r.db.WithContext(ctx).Create(amendment).Error
}

// SumByContract aggregates the value adjustments of every amendment held
// against a contract.
func (r *amendmentRepository) SumByContract(ctx context.Context, contractNumber string) (models.Centavos, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.Amendment{}).
		Select("COALESCE(SUM(value), 0)").
		Where("contract_number = ?", contractNumber).
		Scan(&total).Error
	return models.Centavos(total), err
}
