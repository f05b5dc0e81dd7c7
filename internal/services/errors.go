package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rvmoura/pagamentos-api/internal/models"
)

// Validation and storage error taxonomy. Every failure is reported to the
// caller synchronously; the core never retries.
var (
	ErrDuplicateKey           = errors.New("registro já existe com esta chave")
	ErrContractNotFound       = errors.New("contrato não encontrado")
	ErrCreditorNotFound       = errors.New("credor não encontrado")
	ErrInvalidDateRange       = errors.New("data de término anterior à data de início")
	ErrPaymentOutsideValidity = errors.New("data do pagamento fora da vigência do contrato")
	ErrPaymentExceedsBalance  = errors.New("valor do pagamento excede o saldo disponível do contrato")
	ErrUnknownEntityKind      = errors.New("tabela desconhecida")
	ErrDeleteNotAllowed       = errors.New("exclusão de registros não é permitida")
	ErrInvalidValue           = errors.New("valor deve ser maior que zero")
)

// MissingDocumentFieldError reports which required intake fields are absent
// for a supporting document kind.
type MissingDocumentFieldError struct {
	Kind   models.DocumentKind
	Fields []string
}

func (e *MissingDocumentFieldError) Error() string {
	return fmt.Sprintf("documento %s exige campos ausentes: %s",
		e.Kind.Label(), strings.Join(e.Fields, ", "))
}

// IsValidationError reports whether err belongs to the business-rule
// taxonomy, as opposed to a storage failure that should surface as 5xx.
func IsValidationError(err error) bool {
	var missing *MissingDocumentFieldError
	return errors.Is(err, ErrContractNotFound) ||
		errors.Is(err, ErrCreditorNotFound) ||
		errors.Is(err, ErrInvalidDateRange) ||
		errors.Is(err, ErrPaymentOutsideValidity) ||
		errors.Is(err, ErrPaymentExceedsBalance) ||
		errors.Is(err, ErrDuplicateKey) ||
		errors.Is(err, ErrUnknownEntityKind) ||
		errors.Is(err, ErrDeleteNotAllowed) ||
		errors.Is(err, ErrInvalidValue) ||
		errors.As(err, &missing)
}
