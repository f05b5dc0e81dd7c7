package statemachine

import (
	"context"
	"fmt"

	"github.com/looplab/fsm"
	"github.com/rvmoura/pagamentos-api/internal/models"
)

// ImportFSM wraps an import batch with its lifecycle state machine.
// pending → processing → completed | failed. Terminal states never move.
type ImportFSM struct {
	batch *models.ImportBatch
	fsm   *fsm.FSM
}

// NewImportFSM creates a state machine positioned at the batch's current status
func NewImportFSM(batch *models.ImportBatch) *ImportFSM {
	return &ImportFSM{
		batch: batch,
		fsm: fsm.NewFSM(
			batch.Status,
			fsm.Events{
				{Name: "start", Src: []string{models.ImportStatusPending}, Dst: models.ImportStatusProcessing},
				{Name: "complete", Src: []string{models.ImportStatusProcessing}, Dst: models.ImportStatusCompleted},
				{Name: "fail", Src: []string{models.ImportStatusPending, models.ImportStatusProcessing}, Dst: models.ImportStatusFailed},
			},
			fsm.Callbacks{},
		),
	}
}

// Start transitions the batch to processing
func (i *ImportFSM) Start(ctx context.Context) error {
	if err := i.fsm.Event(ctx, "start"); err != nil {
		return fmt.Errorf("cannot start import batch: %w", err)
	}
	i.batch.Status = i.fsm.Current()
	return nil
}

// Complete transitions the batch to completed
func (i *ImportFSM) Complete(ctx context.Context) error {
	if err := i.fsm.Event(ctx, "complete"); err != nil {
		return fmt.Errorf("cannot complete import batch: %w", err)
	}
	i.batch.Status = i.fsm.Current()
	return nil
}

// Fail transitions the batch to failed
func (i *ImportFSM) Fail(ctx context.Context) error {
	if err := i.fsm.Event(ctx, "fail"); err != nil {
		return fmt.Errorf("cannot fail import batch: %w", err)
	}
	i.batch.Status = i.fsm.Current()
	return nil
}

// Current returns the current state
func (i *ImportFSM) Current() string {
	return i.fsm.Current()
}
