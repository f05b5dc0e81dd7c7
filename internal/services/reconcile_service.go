package services

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rvmoura/pagamentos-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Row is one CSV record keyed by the legacy column headers, with quoting and
// decimal separators already normalized by the intake layer.
type Row map[string]string

// ReconcileResult summarizes one table's reconciliation.
type ReconcileResult struct {
	Inserted int    `json:"inserted"`
	Skipped  int    `json:"skipped"`
	Warning  string `json:"warning,omitempty"`
}

// keyColumn maps a legacy CSV header onto its database column.
type keyColumn struct {
	csv string
	db  string
}

// entitySpec describes how one entity kind reconciles: where it lives, which
// columns form its primary key, and how a CSV row becomes a model.
type entitySpec struct {
	table      string
	keyColumns []keyColumn
	build      func(Row) (any, error)
}

// ReconcileService appends externally supplied rows to the ledger without
// ever duplicating a primary key, making repeated imports of the same file a
// no-op. Entity kinds are the legacy table names the finance department's
// spreadsheets are exported under.
type ReconcileService struct {
	db        *gorm.DB
	kinds     map[string]entitySpec
	kindLocks *keyedMutex
}

// NewReconcileService creates a new reconcile service
func NewReconcileService(db *gorm.DB) *ReconcileService {
	s := &ReconcileService{
		db:        db,
		kinds:     make(map[string]entitySpec),
		kindLocks: newKeyedMutex(),
	}
	s.registerDefaults()
	return s
}

// Kinds lists the entity kinds the service knows how to reconcile.
func (s *ReconcileService) Kinds() []string {
	kinds := make([]string, 0, len(s.kinds))
	for k := range s.kinds {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// Reconcile computes the anti-join of incoming rows against the rows already
// stored for the entity kind and inserts only the missing ones. Rows whose
// key already exists count as skipped, not as errors. In-batch duplicates
// collapse silently, first occurrence wins. A row that fails to build
// rejects the whole file before anything is written. Kinds with no key
// columns are append-all; the caller gets a warning because reruns will
// duplicate.
func (s *ReconcileService) Reconcile(ctx context.Context, kind string, rows []Row) (*ReconcileResult, error) {
	spec, ok := s.kinds[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEntityKind, kind)
	}

	unlock := s.kindLocks.Lock(kind)
	defer unlock()

	result := &ReconcileResult{}

	if len(spec.keyColumns) == 0 {
		result.Warning = fmt.Sprintf("tabela %s não possui chave primária; todas as linhas serão anexadas sem deduplicação", kind)
		records := make([]any, 0, len(rows))
		for i, row := range rows {
			record, err := spec.build(row)
			if err != nil {
				return nil, fmt.Errorf("linha %d de %s: %w", i+1, kind, err)
			}
			records = append(records, record)
		}
		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			for _, record := range records {
				if err := tx.Create(record).Error; err != nil {
					return fmt.Errorf("inserting into %s: %w", kind, err)
				}
				result.Inserted++
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		return result, nil
	}

	// 1. In-batch dedupe by key tuple, first occurrence wins.
	seen := make(map[string]struct{}, len(rows))
	deduped := make([]Row, 0, len(rows))
	for _, row := range rows {
		key := rowKey(row, spec.keyColumns)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		deduped = append(deduped, row)
	}

	// 2. Fetch the key tuples already present.
	existing, err := s.existingKeys(ctx, spec)
	if err != nil {
		return nil, fmt.Errorf("loading existing keys for %s: %w", kind, err)
	}

	// 3. Anti-join, building every missing row before touching the
	// database. A malformed row aborts the whole file with nothing written.
	records := make([]any, 0, len(deduped))
	for i, row := range deduped {
		if _, present := existing[rowKey(row, spec.keyColumns)]; present {
			result.Skipped++
			continue
		}
		record, err := spec.build(row)
		if err != nil {
			return nil, fmt.Errorf("linha %d de %s: %w", i+1, kind, err)
		}
		records = append(records, record)
	}

	// 4. Insert in one transaction. ON CONFLICT DO NOTHING backstops the
	// race where another reconciliation landed the key between steps 2 and
	// 4; such late collisions count as skipped.
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, record := range records {
			res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(record)
			if res.Error != nil {
				return fmt.Errorf("inserting into %s: %w", kind, res.Error)
			}
			if res.RowsAffected == 0 {
				result.Skipped++
				continue
			}
			result.Inserted++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// existingKeys loads the set of primary-key tuples currently stored for the
// entity kind. Values are normalized to strings so they compare against CSV
// cells regardless of driver scan types.
func (s *ReconcileService) existingKeys(ctx context.Context, spec entitySpec) (map[string]struct{}, error) {
	dbCols := make([]string, len(spec.keyColumns))
	for i, kc := range spec.keyColumns {
		dbCols[i] = kc.db
	}

	var records []map[string]interface{}
	err := s.db.WithContext(ctx).
		Table(spec.table).
		Select(dbCols).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	keys := make(map[string]struct{}, len(records))
	for _, rec := range records {
		parts := make([]string, len(dbCols))
		for i, col := range dbCols {
			parts[i] = normalizeKeyPart(fmt.Sprintf("%v", rec[col]))
		}
		keys[strings.Join(parts, "\x1f")] = struct{}{}
	}
	return keys, nil
}

func rowKey(row Row, cols []keyColumn) string {
	parts := make([]string, len(cols))
	for i, kc := range cols {
		parts[i] = normalizeKeyPart(row[kc.csv])
	}
	return strings.Join(parts, "\x1f")
}

func normalizeKeyPart(v string) string {
	v = strings.TrimSpace(strings.Trim(strings.TrimSpace(v), "'"))
	if strings.EqualFold(v, "nan") || v == "<nil>" {
		return ""
	}
	return v
}

// --- field parsing helpers ---------------------------------------------

func cell(row Row, col string) string {
	return normalizeKeyPart(row[col])
}

func requireCell(row Row, col string) (string, error) {
	v := cell(row, col)
	if v == "" {
		return "", fmt.Errorf("coluna obrigatória %s vazia", col)
	}
	return v, nil
}

func parseCellDate(row Row, col string) (time.Time, error) {
	v, err := requireCell(row, col)
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, fmt.Errorf("coluna %s: data inválida %q", col, v)
	}
	return t, nil
}

func parseCellDateOptional(row Row, col string) (*time.Time, error) {
	if cell(row, col) == "" {
		return nil, nil
	}
	t, err := parseCellDate(row, col)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func parseCellCentavos(row Row, col string) (models.Centavos, error) {
	v, err := requireCell(row, col)
	if err != nil {
		return 0, err
	}
	c, err := models.ParseCentavos(v)
	if err != nil {
		return 0, fmt.Errorf("coluna %s: %w", col, err)
	}
	return c, nil
}

func parseCellCentavosOptional(row Row, col string) (models.Centavos, error) {
	if cell(row, col) == "" {
		return 0, nil
	}
	return parseCellCentavos(row, col)
}

func parseCellUint(row Row, col string) (uint, error) {
	v, err := requireCell(row, col)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseUint(v, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("coluna %s: número inválido %q", col, v)
	}
	return uint(n), nil
}

func parseCellUintOptional(row Row, col string) (*uint, error) {
	if cell(row, col) == "" {
		return nil, nil
	}
	n, err := parseCellUint(row, col)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func parseCellInt(row Row, col string) (int, error) {
	v, err := requireCell(row, col)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("coluna %s: número inválido %q", col, v)
	}
	return n, nil
}

func parseCellIntOptional(row Row, col string) (*int, error) {
	if cell(row, col) == "" {
		return nil, nil
	}
	n, err := parseCellInt(row, col)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func optionalCellString(row Row, col string) *string {
	v := cell(row, col)
	if v == "" {
		return nil
	}
	return &v
}
