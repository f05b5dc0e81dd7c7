package repository

import (
	"context"

	"github.com/rvmoura/pagamentos-api/internal/models"
	"gorm.io/gorm"
)

// CreditorRepository defines the interface for creditor data access.
// Deletion is deliberately absent: creditors are referenced by contracts,
// payments and documents and are never removed.
type CreditorRepository interface {
	FindByDoc(ctx context.Context, doc string) (*models.Creditor, error)
	List(ctx context.Context, query *ListQuery) ([]models.Creditor, int64, error)
	Create(ctx context.Context, creditor *models.Creditor) error
	UpdateName(ctx context.Context, doc, name string) error
}

type creditorRepository struct {
	db *gorm.DB
}

// NewCreditorRepository creates a new creditor repository
func NewCreditorRepository(db *gorm.DB) CreditorRepository {
	return &creditorRepository{db: db}
}

func (r *creditorRepository) FindByDoc(ctx context.Context, doc string) (*models.Creditor, error) {
	var creditor models.Creditor
	err := r.db.WithContext(ctx).Where("doc = ?", doc).First(&creditor).Error
	if err != nil {
		return nil, err
	}
	return &creditor, nil
}

func (r *creditorRepository) List(ctx context.Context, query *ListQuery) ([]models.Creditor, int64, error) {
	var creditors []models.Creditor
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Creditor{})
	if query.Search != "" {
		search := "%" + query.Search + "%"
		db = db.Where("name LIKE ? OR doc LIKE ?", search, search)
	}

	countDB := db.Session(&gorm.Session{})
	if err := countDB.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	db = db.Order("name ASC")
	if query.PerPage > 0 {
		db = db.Offset((query.Page - 1) * query.PerPage).Limit(query.PerPage)
	}

	err := db.Find(&creditors).Error
	return creditors, total, err
}

func (r *creditorRepository) Create(ctx context.Context, creditor *models.Creditor) error {
	return r.db.WithContext(ctx).Create(creditor).Error
}

// UpdateName changes the mutable name field only. The doc key never changes.
func (r *creditorRepository) UpdateName(ctx context.Context, doc, name string) error {
	res := r.db.WithContext(ctx).Model(&models.Creditor{}).
		Where("doc = ?", doc).
		Update("name", name)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
