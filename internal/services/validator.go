package services

import (
	"time"

	"github.com/rvmoura/pagamentos-api/internal/models"
)

// The consistency validator: pure functions over snapshots the caller already
// loaded. Nothing here touches the store.

// ValidateContractDates enforces end >= start.
func ValidateContractDates(start, end time.Time) error {
	if end.Before(start) {
		return ErrInvalidDateRange
	}
	return nil
}

// ValidatePaymentAgainstContract checks a candidate payment against the
// contract's validity window and remaining balance. alreadyPaid is the
// aggregate of payments previously recorded for this contract and
// amendmentSum the total of its amendment value adjustments. Both bounds are
// inclusive: a payment on the start or end date passes, and a payment that
// exactly exhausts the remaining balance is accepted.
func ValidatePaymentAgainstContract(contract *models.Contract, date time.Time, value models.Centavos, alreadyPaid, amendmentSum models.Centavos) error {
	if !contract.CoversDate(date) {
		return ErrPaymentOutsideValidity
	}
	remaining := contract.CommittedValue(amendmentSum) - alreadyPaid
	if value > remaining {
		return ErrPaymentExceedsBalance
	}
	return nil
}

// DocumentFields carries the intake fields a supporting document may need.
type DocumentFields struct {
	Number         string
	Date           *time.Time
	ContractNumber string
}

// ValidateDocumentFields checks that every field the document kind requires
// is present. A payment with no document (DocumentKindNone) needs nothing.
func ValidateDocumentFields(kind models.DocumentKind, fields DocumentFields) error {
	var missing []string
	for _, required := range kind.RequiredFields() {
		switch required {
		case models.DocumentFieldNumber:
			if fields.Number == "" {
				missing = append(missing, required)
			}
		case models.DocumentFieldDate:
			if fields.Date == nil || fields.Date.IsZero() {
				missing = append(missing, required)
			}
		case models.DocumentFieldContract:
			if fields.ContractNumber == "" {
				missing = append(missing, required)
			}
		}
	}
	if len(missing) > 0 {
		return &MissingDocumentFieldError{Kind: kind, Fields: missing}
	}
	return nil
}
