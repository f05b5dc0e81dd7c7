package repository

import (
	"context"
	"time"

	"github.com/rvmoura/pagamentos-api/internal/models"
	"gorm.io/gorm"
)

// ImportBatchRepository defines the interface for import batch data access
type ImportBatchRepository interface {
	FindByGUID(ctx context.Context, guid string) (*models.ImportBatch, error)
	Create(ctx context.Context, batch *models.ImportBatch) error
	Update(ctx context.Context, batch *models.ImportBatch) error
	List(ctx context.Context, query *ListQuery) ([]models.ImportBatch, int64, error)
	// MarkStaleFailed flags processing batches last touched before the cutoff
	// as failed and returns how many were flagged. Catches batches orphaned
	// by a process restart mid-run.
	MarkStaleFailed(ctx context.Context, cutoff time.Time) (int64, error)
}

type importBatchRepository struct {
	db *gorm.DB
}

// NewImportBatchRepository creates a new import batch repository
func NewImportBatchRepository(db *gorm.DB) ImportBatchRepository {
	return &importBatchRepository{db: db}
}

func (r *importBatchRepository) FindByGUID(ctx context.Context, guid string) (*models.ImportBatch, error) {
	var batch models.ImportBatch
	err := r.db.WithContext(ctx).Where("guid = ?", guid).First(&batch).Error
	if err != nil {
		return nil, err
	}
	return &batch, nil
}

func (r *importBatchRepository) Create(ctx context.Context, batch *models.ImportBatch) error {
	return r.db.WithContext(ctx).Create(batch).Error
}

func (r *importBatchRepository) Update(ctx context.Context, batch *models.ImportBatch) error {
	return r.db.WithContext(ctx).Save(batch).Error
}

func (r *importBatchRepository) List(ctx context.Context, query *ListQuery) ([]models.ImportBatch, int64, error) {
	var batches []models.ImportBatch
	var total int64

	db := r.db.WithContext(ctx).Model(&models.ImportBatch{})
	if status := query.Filters["status"]; status != "" {
		db = db.Where("status = ?", status)
	}

	countDB := db.Session(&gorm.Session{})
	if err := countDB.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	db = db.Order("created_at DESC")
	if query.PerPage > 0 {
		db = db.Offset((query.Page - 1) * query.PerPage).Limit(query.PerPage)
	}

	err := db.Find(&batches).Error
	return batches, total, err
}

func (r *importBatchRepository) MarkStaleFailed(ctx context.Context, cutoff time.Time) (int64, error) {
	msg := "processamento interrompido"
	res := r.db.WithContext(ctx).
		Model(&models.ImportBatch{}).
		Where("status = ? AND updated_at < ?", models.ImportStatusProcessing, cutoff).
		Updates(map[string]interface{}{"status": models.ImportStatusFailed, "error": msg})
	return res.RowsAffected, res.Error
}
