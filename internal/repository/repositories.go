package repository

import (
	"gorm.io/gorm"
)

// Repositories holds all repository instances
type Repositories struct {
	Creditor       CreditorRepository
	ProductService ProductServiceRepository
	Contract       ContractRepository
	Amendment      AmendmentRepository
	Payment        PaymentRepository
	ImportBatch    ImportBatchRepository
}

// NewRepositories creates all repository instances
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Creditor:       NewCreditorRepository(db),
		ProductService: NewProductServiceRepository(db),
		Contract:       NewContractRepository(db),
		Amendment:      NewAmendmentRepository(db),
		Payment:        NewPaymentRepository(db),
		ImportBatch:    NewImportBatchRepository(db),
	}
}
