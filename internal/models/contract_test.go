package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestContractCoversDate(t *testing.T) {
	contract := &Contract{
		StartDate: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 11, 30, 0, 0, 0, 0, time.UTC),
	}

	assert.True(t, contract.CoversDate(time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, contract.CoversDate(time.Date(2025, 11, 30, 0, 0, 0, 0, time.UTC)))
	assert.True(t, contract.CoversDate(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)))
	assert.False(t, contract.CoversDate(time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)))
	assert.False(t, contract.CoversDate(time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)))

	// Time of day never matters, only the calendar day
	assert.True(t, contract.CoversDate(time.Date(2025, 11, 30, 23, 59, 59, 0, time.UTC)))
}

func TestContractCommittedValue(t *testing.T) {
	contract := &Contract{TotalValue: 100_000}
	assert.EqualValues(t, 100_000, contract.CommittedValue(0))
	assert.EqualValues(t, 125_000, contract.CommittedValue(25_000))
}
