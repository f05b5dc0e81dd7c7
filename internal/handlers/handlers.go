package handlers

import (
	"github.com/rvmoura/pagamentos-api/internal/services"
	"github.com/rvmoura/pagamentos-api/internal/storage"
)

// Handlers holds all handler instances
type Handlers struct {
	Health   *HealthHandler
	Creditor *CreditorHandler
	Catalog  *CatalogHandler
	Contract *ContractHandler
	Payment  *PaymentHandler
	Import   *ImportHandler
	Report   *ReportHandler
	Audit    *AuditHandler
}

// NewHandlers creates all handler instances
func NewHandlers(svcs *services.Services, store *storage.LocalStorage, uploadMaxBytes int64) *Handlers {
	return &Handlers{
		Health:   NewHealthHandler(),
		Creditor: NewCreditorHandler(svcs.Creditor),
		Catalog:  NewCatalogHandler(svcs.Catalog),
		Contract: NewContractHandler(svcs.Contract),
		Payment:  NewPaymentHandler(svcs.Payment),
		Import:   NewImportHandler(svcs.Import, svcs.Reconcile, store, uploadMaxBytes),
		Report:   NewReportHandler(svcs.Report, svcs.Export),
		Audit:    NewAuditHandler(svcs.Audit),
	}
}
