package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rvmoura/pagamentos-api/internal/models"
	"github.com/rvmoura/pagamentos-api/internal/repository"
)

// PaymentDraft is the intake shape for recording a payment, as supplied by
// forms or the CLI.
type PaymentDraft struct {
	Date             time.Time
	Period           string
	Value            models.Centavos
	CreditorDoc      string
	ContractNumber   *string
	ProductServiceID *uint
	Quantity         *int
	Group            *int

	// Optional supporting document.
	DocumentKind   models.DocumentKind
	DocumentNumber string
	DocumentDate   *time.Time
}

// PaymentService is the payment recorder: it orchestrates validation and the
// atomic creation of a payment plus its optional supporting document.
type PaymentService struct {
	paymentRepo   repository.PaymentRepository
	contractRepo  repository.ContractRepository
	amendmentRepo repository.AmendmentRepository
	creditorRepo  repository.CreditorRepository
	auditSvc      *AuditService

	// contractLocks serializes record attempts per contract so two
	// concurrent payments cannot both pass the balance check when only one
	// payment's worth of balance remains.
	contractLocks *keyedMutex
}

// NewPaymentService creates a new payment service
func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	contractRepo repository.ContractRepository,
	amendmentRepo repository.AmendmentRepository,
	creditorRepo repository.CreditorRepository,
	auditSvc *AuditService,
) *PaymentService {
	return &PaymentService{
		paymentRepo:   paymentRepo,
		contractRepo:  contractRepo,
		amendmentRepo: amendmentRepo,
		creditorRepo:  creditorRepo,
		auditSvc:      auditSvc,
		contractLocks: newKeyedMutex(),
	}
}

// FindByID gets a payment by ID
func (s *PaymentService) FindByID(ctx context.Context, id uint) (*models.Payment, error) {
	return s.paymentRepo.FindByID(ctx, id)
}

// List retrieves payments with filters
func (s *PaymentService) List(ctx context.Context, query *repository.ListQuery) ([]models.Payment, int64, error) {
	return s.paymentRepo.List(ctx, query)
}

// RecordPayment validates the draft against the ledger and persists the
// payment together with its supporting document as one logical transaction.
// No side effects happen until every validation has passed.
func (s *PaymentService) RecordPayment(ctx context.Context, draft PaymentDraft) (*models.Payment, error) {
	if draft.Value <= 0 {
		return nil, ErrInvalidValue
	}
	if !draft.DocumentKind.Valid() {
		return nil, fmt.Errorf("%w: tipo de documento %q", ErrUnknownEntityKind, draft.DocumentKind)
	}

	if _, err := s.creditorRepo.FindByDoc(ctx, draft.CreditorDoc); err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrCreditorNotFound
		}
		return nil, fmt.Errorf("loading creditor: %w", err)
	}

	if draft.ContractNumber != nil && *draft.ContractNumber != "" {
		unlock := s.contractLocks.Lock(*draft.ContractNumber)
		defer unlock()
		return s.recordLocked(ctx, draft)
	}

	if err := validateDraftDocument(draft); err != nil {
		return nil, err
	}

	// Unconstrained cash payment: no contract, no balance or validity check.
	// Deliberate policy, not an oversight.
	return s.persist(ctx, draft)
}

// validateDraftDocument checks the supporting-document fields of a draft.
// Runs only after the contract, when referenced, has been resolved.
func validateDraftDocument(draft PaymentDraft) error {
	docContract := ""
	if draft.ContractNumber != nil {
		docContract = *draft.ContractNumber
	}
	return ValidateDocumentFields(draft.DocumentKind, DocumentFields{
		Number:         draft.DocumentNumber,
		Date:           draft.DocumentDate,
		ContractNumber: docContract,
	})
}

// recordLocked runs the check-then-act sequence while holding the contract
// lock: load contract, aggregate paid and amendment sums, validate, persist.
func (s *PaymentService) recordLocked(ctx context.Context, draft PaymentDraft) (*models.Payment, error) {
	number := *draft.ContractNumber

	contract, err := s.contractRepo.FindByNumber(ctx, number)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrContractNotFound
		}
		return nil, fmt.Errorf("loading contract: %w", err)
	}

	alreadyPaid, err := s.paymentRepo.SumByContract(ctx, number)
	if err != nil {
		return nil, fmt.Errorf("aggregating payments: %w", err)
	}
	amendmentSum, err := s.amendmentRepo.SumByContract(ctx, number)
	if err != nil {
		return nil, fmt.Errorf("aggregating amendments: %w", err)
	}

	if err := ValidatePaymentAgainstContract(contract, draft.Date, draft.Value, alreadyPaid, amendmentSum); err != nil {
		return nil, err
	}
	if err := validateDraftDocument(draft); err != nil {
		return nil, err
	}

	return s.persist(ctx, draft)
}

func (s *PaymentService) persist(ctx context.Context, draft PaymentDraft) (*models.Payment, error) {
	payment := &models.Payment{
		Date:             draft.Date,
		Period:           draft.Period,
		Value:            draft.Value,
		CreditorDoc:      draft.CreditorDoc,
		ContractNumber:   draft.ContractNumber,
		ProductServiceID: draft.ProductServiceID,
		Quantity:         draft.Quantity,
		Group:            draft.Group,
	}

	document := s.buildDocument(draft)
	if err := s.paymentRepo.CreateWithDocument(ctx, payment, document); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, ErrDuplicateKey
		}
		return nil, fmt.Errorf("persisting payment: %w", err)
	}

	if s.auditSvc != nil {
		s.auditSvc.Log(ctx, "CREATE", "Payment", fmt.Sprintf("%d", payment.ID),
			fmt.Sprintf("Pagamento de %s para o credor %s", payment.Value, payment.CreditorDoc))
	}

	return payment, nil
}

// buildDocument materializes the supporting document record for the draft.
// Field presence was already validated; nil means no document.
func (s *PaymentService) buildDocument(draft PaymentDraft) any {
	var date time.Time
	if draft.DocumentDate != nil {
		date = *draft.DocumentDate
	}

	switch draft.DocumentKind {
	case models.DocumentKindNotaFiscal:
		return &models.NotaFiscal{
			Number:         draft.DocumentNumber,
			CreditorDoc:    draft.CreditorDoc,
			ContractNumber: draft.ContractNumber,
			Date:           date,
		}
	case models.DocumentKindRecibo:
		return &models.Recibo{
			CreditorDoc: draft.CreditorDoc,
			Date:        date,
		}
	case models.DocumentKindFatura:
		return &models.Fatura{
			ContractNumber: *draft.ContractNumber,
			CreditorDoc:    draft.CreditorDoc,
			Date:           date,
		}
	case models.DocumentKindBoleto:
		return &models.Boleto{
			ContractNumber: draft.ContractNumber,
			CreditorDoc:    draft.CreditorDoc,
			Date:           date,
		}
	default:
		return nil
	}
}
