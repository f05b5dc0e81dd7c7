package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rvmoura/pagamentos-api/internal/jobs"
	"github.com/rvmoura/pagamentos-api/internal/models"
	"github.com/rvmoura/pagamentos-api/internal/repository"
	"github.com/rvmoura/pagamentos-api/internal/statemachine"
	"github.com/rvmoura/pagamentos-api/internal/storage"
	"github.com/rvmoura/pagamentos-api/pkg/logger"
)

// BatchFile pairs an entity kind with the stored path of its uploaded CSV.
type BatchFile struct {
	Kind string
	Path string
}

// ImportService runs CSV upload batches through the reconciler. Files in a
// batch are independent: one bad file never aborts the others, and its error
// is reported alongside the successful files' counts.
type ImportService struct {
	batchRepo repository.ImportBatchRepository
	reconcile *ReconcileService
	store     *storage.LocalStorage
	worker    *jobs.Worker
	auditSvc  *AuditService
}

// NewImportService creates a new import service
func NewImportService(
	batchRepo repository.ImportBatchRepository,
	reconcile *ReconcileService,
	store *storage.LocalStorage,
	worker *jobs.Worker,
	auditSvc *AuditService,
) *ImportService {
	return &ImportService{
		batchRepo: batchRepo,
		reconcile: reconcile,
		store:     store,
		worker:    worker,
		auditSvc:  auditSvc,
	}
}

// NewBatchGUID issues the identifier clients poll a batch under.
func NewBatchGUID() string {
	return uuid.NewString()
}

// StartBatch records the batch and hands processing to the worker pool. The
// returned batch is still pending; clients poll GetBatch for the outcome.
func (s *ImportService) StartBatch(ctx context.Context, guid string, files []BatchFile) (*models.ImportBatch, error) {
	batch := &models.ImportBatch{
		GUID:      guid,
		Status:    models.ImportStatusPending,
		FileCount: len(files),
	}
	if err := s.batchRepo.Create(ctx, batch); err != nil {
		return nil, fmt.Errorf("creating import batch: %w", err)
	}

	s.worker.Enqueue(func(jobCtx context.Context) error {
		return s.processBatch(jobCtx, guid, files)
	})

	return batch, nil
}

// GetBatch returns a batch and its per-file results.
func (s *ImportService) GetBatch(ctx context.Context, guid string) (*models.ImportBatch, []models.FileResult, error) {
	batch, err := s.batchRepo.FindByGUID(ctx, guid)
	if err != nil {
		return nil, nil, err
	}
	results, err := batch.FileResults()
	if err != nil {
		return nil, nil, err
	}
	return batch, results, nil
}

func (s *ImportService) processBatch(ctx context.Context, guid string, files []BatchFile) error {
	batch, err := s.batchRepo.FindByGUID(ctx, guid)
	if err != nil {
		return fmt.Errorf("loading batch %s: %w", guid, err)
	}

	machine := statemachine.NewImportFSM(batch)
	if err := machine.Start(ctx); err != nil {
		return err
	}
	if err := s.batchRepo.Update(ctx, batch); err != nil {
		return err
	}

	results := make([]models.FileResult, 0, len(files))
	failed := 0
	for _, file := range files {
		fr := models.FileResult{Kind: file.Kind}

		f, err := s.store.Open(file.Path)
		if err != nil {
			fr.Error = fmt.Sprintf("abrindo arquivo: %v", err)
			failed++
			results = append(results, fr)
			continue
		}

		result, err := s.ReconcileFile(ctx, file.Kind, f)
		f.Close()
		if err != nil {
			fr.Error = err.Error()
			failed++
		} else {
			fr.Inserted = result.Inserted
			fr.Skipped = result.Skipped
			fr.Warning = result.Warning
		}
		results = append(results, fr)
	}

	if err := batch.SetResults(results); err != nil {
		return err
	}

	// The batch only fails outright when nothing could be reconciled;
	// partial success is still a completed batch with per-file errors.
	if len(files) > 0 && failed == len(files) {
		if err := machine.Fail(ctx); err != nil {
			return err
		}
	} else {
		if err := machine.Complete(ctx); err != nil {
			return err
		}
	}

	now := time.Now()
	batch.FinishedAt = &now
	if err := s.batchRepo.Update(ctx, batch); err != nil {
		return err
	}

	for _, fr := range results {
		logger.Info("import file reconciled",
			"batch", guid, "kind", fr.Kind,
			"inserted", fr.Inserted, "skipped", fr.Skipped, "error", fr.Error)
	}
	s.auditSvc.Log(ctx, "IMPORT", "ImportBatch", guid,
		fmt.Sprintf("Lote com %d arquivo(s), %d com erro", len(files), failed))
	return nil
}

// ListBatches retrieves import batches, newest first.
func (s *ImportService) ListBatches(ctx context.Context, query *repository.ListQuery) ([]models.ImportBatch, int64, error) {
	return s.batchRepo.List(ctx, query)
}

// SweepStale fails processing batches untouched for longer than maxAge.
// A batch only stays in processing that long when the process died mid-run.
func (s *ImportService) SweepStale(ctx context.Context, maxAge time.Duration) error {
	n, err := s.batchRepo.MarkStaleFailed(ctx, time.Now().Add(-maxAge))
	if err != nil {
		return fmt.Errorf("sweeping stale batches: %w", err)
	}
	if n > 0 {
		logger.Warn("stale import batches failed", "count", n)
	}
	return nil
}

// ReconcileFile parses one CSV stream and reconciles it under the given
// entity kind. Also the entry point for the command-line importer.
func (s *ImportService) ReconcileFile(ctx context.Context, kind string, r io.Reader) (*ReconcileResult, error) {
	rows, err := ParseCSV(r)
	if err != nil {
		return nil, err
	}
	return s.reconcile.Reconcile(ctx, kind, rows)
}

// ParseCSV reads a legacy-format CSV export: semicolon separated, text cells
// optionally wrapped in single quotes, comma decimal separator. Cell-level
// normalization (quote stripping, decimal commas) happens during parsing of
// the individual fields, not here.
func ParseCSV(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.Comma = ';'
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("lendo cabeçalho: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows []Row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("lendo linha %d: %w", len(rows)+2, err)
		}
		row := make(Row, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
