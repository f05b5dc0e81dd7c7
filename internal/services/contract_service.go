package services

import (
	"context"
	"fmt"

	"github.com/rvmoura/pagamentos-api/internal/models"
	"github.com/rvmoura/pagamentos-api/internal/repository"
)

// ContractService creates and reads contracts and their amendments.
type ContractService struct {
	repo          repository.ContractRepository
	amendmentRepo repository.AmendmentRepository
	creditorRepo  repository.CreditorRepository
	paymentRepo   repository.PaymentRepository
	auditSvc      *AuditService
}

// NewContractService creates a new contract service
func NewContractService(
	repo repository.ContractRepository,
	amendmentRepo repository.AmendmentRepository,
	creditorRepo repository.CreditorRepository,
	paymentRepo repository.PaymentRepository,
	auditSvc *AuditService,
) *ContractService {
	return &ContractService{
		repo:          repo,
		amendmentRepo: amendmentRepo,
		creditorRepo:  creditorRepo,
		paymentRepo:   paymentRepo,
		auditSvc:      auditSvc,
	}
}

// FindByNumber gets a contract by its number
func (s *ContractService) FindByNumber(ctx context.Context, number string) (*models.Contract, error) {
	contract, err := s.repo.FindByNumberWithDetails(ctx, number)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrContractNotFound
		}
		return nil, err
	}
	return contract, nil
}

// List retrieves contracts with filters
func (s *ContractService) List(ctx context.Context, query *repository.ListQuery) ([]models.Contract, int64, error) {
	return s.repo.List(ctx, query)
}

// Create validates and persists a new contract.
func (s *ContractService) Create(ctx context.Context, contract *models.Contract) error {
	if err := ValidateContractDates(contract.StartDate, contract.EndDate); err != nil {
		return err
	}
	if contract.TotalValue <= 0 {
		return ErrInvalidValue
	}
	if _, err := s.creditorRepo.FindByDoc(ctx, contract.CreditorDoc); err != nil {
		if repository.IsNotFound(err) {
			return ErrCreditorNotFound
		}
		return err
	}

	if err := s.repo.Create(ctx, contract); err != nil {
		if repository.IsDuplicateKey(err) {
			return ErrDuplicateKey
		}
		return err
	}

	s.auditSvc.Log(ctx, "CREATE", "Contract", contract.Number,
		fmt.Sprintf("Contrato de %s com o credor %s", contract.TotalValue, contract.CreditorDoc))
	return nil
}

// AddAmendment appends an amendment to an existing contract. When both dates
// are present they must form a valid range.
func (s *ContractService) AddAmendment(ctx context.Context, amendment *models.Amendment) error {
	if _, err := s.repo.FindByNumber(ctx, amendment.ContractNumber); err != nil {
		if repository.IsNotFound(err) {
			return ErrContractNotFound
		}
		return err
	}
	if amendment.StartDate != nil && amendment.EndDate != nil {
		if err := ValidateContractDates(*amendment.StartDate, *amendment.EndDate); err != nil {
			return err
		}
	}

	if err := s.amendmentRepo.Create(ctx, amendment); err != nil {
		if repository.IsDuplicateKey(err) {
			return ErrDuplicateKey
		}
		return err
	}

	s.auditSvc.Log(ctx, "CREATE", "Amendment", amendment.ContractNumber,
		fmt.Sprintf("Aditivo de %s no contrato %s", amendment.Value, amendment.ContractNumber))
	return nil
}

// Balance reports a contract's committed value, paid sum and remaining
// balance. Amendment values fold into the committed total.
type Balance struct {
	ContractNumber string          `json:"contract_number"`
	TotalValue     models.Centavos `json:"total_value"`
	AmendmentSum   models.Centavos `json:"amendment_sum"`
	PaidSum        models.Centavos `json:"paid_sum"`
	Remaining      models.Centavos `json:"remaining"`
}

// GetBalance computes the remaining balance of a contract from the store
// aggregates. Reads are cache-free; callers needing caching do it themselves.
func (s *ContractService) GetBalance(ctx context.Context, number string) (*Balance, error) {
	contract, err := s.repo.FindByNumber(ctx, number)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrContractNotFound
		}
		return nil, err
	}

	paid, err := s.paymentRepo.SumByContract(ctx, number)
	if err != nil {
		return nil, err
	}
	amendments, err := s.amendmentRepo.SumByContract(ctx, number)
	if err != nil {
		return nil, err
	}

	return &Balance{
		ContractNumber: number,
		TotalValue:     contract.TotalValue,
		AmendmentSum:   amendments,
		PaidSum:        paid,
		Remaining:      contract.CommittedValue(amendments) - paid,
	}, nil
}
