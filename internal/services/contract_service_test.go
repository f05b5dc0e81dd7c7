package services

import (
	"context"
	"testing"

	"github.com/rvmoura/pagamentos-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContractCreate_Validations(t *testing.T) {
	db := newTestDB(t)
	doc := seedCreditor(t, db)
	_, _, contractSvc := newTestServices(t, db)
	ctx := context.Background()

	base := func() *models.Contract {
		return &models.Contract{
			Number:      "CT-1",
			CreditorDoc: doc,
			StartDate:   date(2025, 1, 1),
			EndDate:     date(2025, 12, 31),
			TotalValue:  10_000,
		}
	}

	// Inverted dates
	c := base()
	c.EndDate = date(2024, 1, 1)
	assert.ErrorIs(t, contractSvc.Create(ctx, c), ErrInvalidDateRange)

	// Non-positive value
	c = base()
	c.TotalValue = 0
	assert.ErrorIs(t, contractSvc.Create(ctx, c), ErrInvalidValue)

	// Unknown creditor
	c = base()
	c.CreditorDoc = "99999999999999"
	assert.ErrorIs(t, contractSvc.Create(ctx, c), ErrCreditorNotFound)

	// Valid contract lands
	require.NoError(t, contractSvc.Create(ctx, base()))

	// Same number again is a duplicate
	assert.ErrorIs(t, contractSvc.Create(ctx, base()), ErrDuplicateKey)
}

func TestContractGetBalance(t *testing.T) {
	db := newTestDB(t)
	doc := seedCreditor(t, db)
	contract := seedContract(t, db, doc, date(2025, 1, 1), date(2025, 12, 31), 100_000)
	_, paymentSvc, contractSvc := newTestServices(t, db)
	ctx := context.Background()

	require.NoError(t, db.Create(&models.Amendment{
		ContractNumber: contract.Number,
		CreditorDoc:    doc,
		Value:          20_000,
	}).Error)

	_, err := paymentSvc.RecordPayment(ctx, PaymentDraft{
		Date:           date(2025, 3, 1),
		Period:         "2025-03",
		Value:          30_000,
		CreditorDoc:    doc,
		ContractNumber: &contract.Number,
	})
	require.NoError(t, err)

	balance, err := contractSvc.GetBalance(ctx, contract.Number)
	require.NoError(t, err)
	assert.EqualValues(t, 100_000, balance.TotalValue)
	assert.EqualValues(t, 20_000, balance.AmendmentSum)
	assert.EqualValues(t, 30_000, balance.PaidSum)
	assert.EqualValues(t, 90_000, balance.Remaining)

	_, err = contractSvc.GetBalance(ctx, "CT-NOPE")
	assert.ErrorIs(t, err, ErrContractNotFound)
}

func TestAddAmendment(t *testing.T) {
	db := newTestDB(t)
	doc := seedCreditor(t, db)
	contract := seedContract(t, db, doc, date(2025, 1, 1), date(2025, 12, 31), 100_000)
	_, _, contractSvc := newTestServices(t, db)
	ctx := context.Background()

	// Unknown contract
	err := contractSvc.AddAmendment(ctx, &models.Amendment{ContractNumber: "CT-NOPE", CreditorDoc: doc})
	assert.ErrorIs(t, err, ErrContractNotFound)

	// Inverted amendment window
	start := date(2025, 6, 1)
	end := date(2025, 5, 1)
	err = contractSvc.AddAmendment(ctx, &models.Amendment{
		ContractNumber: contract.Number,
		CreditorDoc:    doc,
		StartDate:      &start,
		EndDate:        &end,
	})
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	// Value-only amendment is fine
	require.NoError(t, contractSvc.AddAmendment(ctx, &models.Amendment{
		ContractNumber: contract.Number,
		CreditorDoc:    doc,
		Value:          5_000,
	}))
}
