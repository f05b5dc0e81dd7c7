package services

import (
	"context"
	"fmt"

	"github.com/rvmoura/pagamentos-api/internal/models"
	"github.com/rvmoura/pagamentos-api/internal/repository"
)

// CreditorService manages the creditor registry. Records are append-only
// aside from corrections to the display name; nothing is ever deleted.
type CreditorService struct {
	repo     repository.CreditorRepository
	auditSvc *AuditService
}

// NewCreditorService creates a new creditor service
func NewCreditorService(repo repository.CreditorRepository, auditSvc *AuditService) *CreditorService {
	return &CreditorService{repo: repo, auditSvc: auditSvc}
}

// FindByDoc gets a creditor by fiscal document number
func (s *CreditorService) FindByDoc(ctx context.Context, doc string) (*models.Creditor, error) {
	creditor, err := s.repo.FindByDoc(ctx, doc)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrCreditorNotFound
		}
		return nil, err
	}
	return creditor, nil
}

// List retrieves creditors with pagination and search
func (s *CreditorService) List(ctx context.Context, query *repository.ListQuery) ([]models.Creditor, int64, error) {
	return s.repo.List(ctx, query)
}

// Create registers a new creditor keyed by its fiscal document number.
func (s *CreditorService) Create(ctx context.Context, creditor *models.Creditor) error {
	if creditor.Doc == "" || creditor.Name == "" {
		return fmt.Errorf("%w: doc e nome são obrigatórios", ErrInvalidValue)
	}
	if err := s.repo.Create(ctx, creditor); err != nil {
		if repository.IsDuplicateKey(err) {
			return ErrDuplicateKey
		}
		return err
	}
	s.auditSvc.Log(ctx, "CREATE", "Creditor", creditor.Doc, "Credor "+creditor.Name)
	return nil
}

// UpdateName corrects a creditor's display name.
func (s *CreditorService) UpdateName(ctx context.Context, doc, name string) error {
	if name == "" {
		return fmt.Errorf("%w: nome é obrigatório", ErrInvalidValue)
	}
	if err := s.repo.UpdateName(ctx, doc, name); err != nil {
		if repository.IsNotFound(err) {
			return ErrCreditorNotFound
		}
		return err
	}
	s.auditSvc.Log(ctx, "UPDATE", "Creditor", doc, "Nome alterado para "+name)
	return nil
}

// CatalogService manages the product and service catalog.
type CatalogService struct {
	repo     repository.ProductServiceRepository
	auditSvc *AuditService
}

// NewCatalogService creates a new catalog service
func NewCatalogService(repo repository.ProductServiceRepository, auditSvc *AuditService) *CatalogService {
	return &CatalogService{repo: repo, auditSvc: auditSvc}
}

// FindByID gets a catalog entry by ID
func (s *CatalogService) FindByID(ctx context.Context, id uint) (*models.ProductService, error) {
	return s.repo.FindByID(ctx, id)
}

// List retrieves catalog entries with pagination and search
func (s *CatalogService) List(ctx context.Context, query *repository.ListQuery) ([]models.ProductService, int64, error) {
	return s.repo.List(ctx, query)
}

// Create adds a catalog entry.
func (s *CatalogService) Create(ctx context.Context, ps *models.ProductService) error {
	if ps.Description == "" {
		return fmt.Errorf("%w: descrição é obrigatória", ErrInvalidValue)
	}
	if ps.UnitValue <= 0 {
		return ErrInvalidValue
	}
	if err := s.repo.Create(ctx, ps); err != nil {
		if repository.IsDuplicateKey(err) {
			return ErrDuplicateKey
		}
		return err
	}
	s.auditSvc.Log(ctx, "CREATE", "ProductService", fmt.Sprintf("%d", ps.ID), ps.Description)
	return nil
}

// UpdateDescription corrects a catalog entry's description.
func (s *CatalogService) UpdateDescription(ctx context.Context, id uint, description string) error {
	if description == "" {
		return fmt.Errorf("%w: descrição é obrigatória", ErrInvalidValue)
	}
	if err := s.repo.UpdateDescription(ctx, id, description); err != nil {
		return err
	}
	s.auditSvc.Log(ctx, "UPDATE", "ProductService", fmt.Sprintf("%d", id), description)
	return nil
}
