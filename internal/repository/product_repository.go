package repository

import (
	"context"

	"github.com/rvmoura/pagamentos-api/internal/models"
	"gorm.io/gorm"
)

// ProductServiceRepository defines the interface for product/service data access
type ProductServiceRepository interface {
	FindByID(ctx context.Context, id uint) (*models.ProductService, error)
	List(ctx context.Context, query *ListQuery) ([]models.ProductService, int64, error)
	Create(ctx context.Context, ps *models.ProductService) error
	UpdateDescription(ctx context.Context, id uint, description string) error
}

type productServiceRepository struct {
	db *gorm.DB
}

// NewProductServiceRepository creates a new product/service repository
func NewProductServiceRepository(db *gorm.DB) ProductServiceRepository {
	return &productServiceRepository{db: db}
}

func (r *productServiceRepository) FindByID(ctx context.Context, id uint) (*models.ProductService, error) {
	var ps models.ProductService
	err := r.db.WithContext(ctx).First(&ps, id).Error
	if err != nil {
		return nil, err
	}
	return &ps, nil
}

func (r *productServiceRepository) List(ctx context.Context, query *ListQuery) ([]models.ProductService, int64, error) {
	var products []models.ProductService
	var total int64

	db := r.db.WithContext(ctx).Model(&models.ProductService{})
	if query.Search != "" {
		db = db.Where("description LIKE ?", "%"+query.Search+"%")
	}

	countDB := db.Session(&gorm.Session{})
	if err := countDB.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	db = db.Order("description ASC")
	if query.PerPage > 0 {
		db = db.Offset((query.Page - 1) * query.PerPage).Limit(query.PerPage)
	}

	err := db.Find(&products).Error
	return products, total, err
}

func (r *productServiceRepository) Create(ctx context.Context, ps *models.ProductService) error {
	return r.db.WithContext(ctx).Create(ps).Error
}

// UpdateDescription changes the mutable description field only.
func (r *productServiceRepository) UpdateDescription(ctx context.Context, id uint, description string) error {
	res := r.db.WithContext(ctx).Model(&models.ProductService{}).
		Where("id = ?", id).
		Update("description", description)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
