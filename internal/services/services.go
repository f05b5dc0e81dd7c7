package services

import (
	"github.com/rvmoura/pagamentos-api/internal/jobs"
	"github.com/rvmoura/pagamentos-api/internal/repository"
	"github.com/rvmoura/pagamentos-api/internal/storage"
	"gorm.io/gorm"
)

// Services holds all service instances
type Services struct {
	Creditor  *CreditorService
	Catalog   *CatalogService
	Contract  *ContractService
	Payment   *PaymentService
	Reconcile *ReconcileService
	Import    *ImportService
	Report    *ReportService
	Export    *ExportService
	Audit     *AuditService
}

// NewServices creates all service instances
func NewServices(repos *repository.Repositories, worker *jobs.Worker, store *storage.LocalStorage, db *gorm.DB) *Services {
	auditSvc := NewAuditService(db)
	reconcileSvc := NewReconcileService(db)
	reportSvc := NewReportService(repos.Payment)

	return &Services{
		Creditor:  NewCreditorService(repos.Creditor, auditSvc),
		Catalog:   NewCatalogService(repos.ProductService, auditSvc),
		Contract:  NewContractService(repos.Contract, repos.Amendment, repos.Creditor, repos.Payment, auditSvc),
		Payment:   NewPaymentService(repos.Payment, repos.Contract, repos.Amendment, repos.Creditor, auditSvc),
		Reconcile: reconcileSvc,
		Import:    NewImportService(repos.ImportBatch, reconcileSvc, store, worker, auditSvc),
		Report:    reportSvc,
		Export:    NewExportService(reportSvc),
		Audit:     auditSvc,
	}
}
