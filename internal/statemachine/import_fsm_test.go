package statemachine

import (
	"context"
	"testing"

	"github.com/rvmoura/pagamentos-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportFSM_Lifecycle(t *testing.T) {
	ctx := context.Background()
	batch := &models.ImportBatch{Status: models.ImportStatusPending}
	machine := NewImportFSM(batch)

	require.NoError(t, machine.Start(ctx))
	assert.Equal(t, models.ImportStatusProcessing, batch.Status)

	require.NoError(t, machine.Complete(ctx))
	assert.Equal(t, models.ImportStatusCompleted, batch.Status)
}

func TestImportFSM_FailFromPendingOrProcessing(t *testing.T) {
	ctx := context.Background()

	batch := &models.ImportBatch{Status: models.ImportStatusPending}
	require.NoError(t, NewImportFSM(batch).Fail(ctx))
	assert.Equal(t, models.ImportStatusFailed, batch.Status)

	batch = &models.ImportBatch{Status: models.ImportStatusProcessing}
	require.NoError(t, NewImportFSM(batch).Fail(ctx))
	assert.Equal(t, models.ImportStatusFailed, batch.Status)
}

func TestImportFSM_TerminalStatesNeverMove(t *testing.T) {
	ctx := context.Background()

	batch := &models.ImportBatch{Status: models.ImportStatusCompleted}
	machine := NewImportFSM(batch)
	assert.Error(t, machine.Start(ctx))
	assert.Error(t, machine.Fail(ctx))
	assert.Equal(t, models.ImportStatusCompleted, batch.Status)

	batch = &models.ImportBatch{Status: models.ImportStatusFailed}
	machine = NewImportFSM(batch)
	assert.Error(t, machine.Complete(ctx))
	assert.Equal(t, models.ImportStatusFailed, batch.Status)
}

func TestImportFSM_CannotCompleteWithoutStarting(t *testing.T) {
	batch := &models.ImportBatch{Status: models.ImportStatusPending}
	machine := NewImportFSM(batch)

	assert.Error(t, machine.Complete(context.Background()))
	assert.Equal(t, models.ImportStatusPending, batch.Status)
}
