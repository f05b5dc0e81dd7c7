package services

import (
	"context"
	"strings"
	"testing"

	"github.com/rvmoura/pagamentos-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func creditorRow(doc, name string) Row {
	return Row{"CREDOR_DOC": doc, "CREDOR_NOME": name}
}

func TestReconcile_UnknownKind(t *testing.T) {
	svc := NewReconcileService(newTestDB(t))

	_, err := svc.Reconcile(context.Background(), "TABELA_INEXISTENTE", nil)
	assert.ErrorIs(t, err, ErrUnknownEntityKind)
}

func TestReconcile_InsertThenIdempotentRerun(t *testing.T) {
	db := newTestDB(t)
	svc := NewReconcileService(db)

	rows := []Row{
		creditorRow("111", "Alfa"),
		creditorRow("222", "Beta"),
	}

	result, err := svc.Reconcile(context.Background(), KindCreditor, rows)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Inserted)
	assert.Equal(t, 0, result.Skipped)

	// Re-importing the identical file is a no-op
	result, err = svc.Reconcile(context.Background(), KindCreditor, rows)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Inserted)
	assert.Equal(t, 2, result.Skipped)

	var count int64
	db.Model(&models.Creditor{}).Count(&count)
	assert.EqualValues(t, 2, count)
}

func TestReconcile_AntiJoinInsertsOnlyMissing(t *testing.T) {
	db := newTestDB(t)
	svc := NewReconcileService(db)

	_, err := svc.Reconcile(context.Background(), KindCreditor, []Row{
		creditorRow("A", "Primeiro"),
		creditorRow("B", "Segundo"),
	})
	require.NoError(t, err)

	// Incoming batch: one existing key, one in-batch duplicate, two new
	result, err := svc.Reconcile(context.Background(), KindCreditor, []Row{
		creditorRow("A", "Primeiro"),
		creditorRow("C", "Terceiro"),
		creditorRow("C", "Terceiro repetido"),
		creditorRow("D", "Quarto"),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Inserted)
	assert.Equal(t, 1, result.Skipped)

	// In-batch duplicates collapse with the first occurrence winning
	var c models.Creditor
	require.NoError(t, db.First(&c, "doc = ?", "C").Error)
	assert.Equal(t, "Terceiro", c.Name)
}

func TestReconcile_ExistingRowNeverOverwritten(t *testing.T) {
	db := newTestDB(t)
	svc := NewReconcileService(db)

	require.NoError(t, db.Create(&models.Creditor{Doc: "777", Name: "Original"}).Error)

	result, err := svc.Reconcile(context.Background(), KindCreditor, []Row{
		creditorRow("777", "Tentativa de sobrescrever"),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Inserted)
	assert.Equal(t, 1, result.Skipped)

	var c models.Creditor
	require.NoError(t, db.First(&c, "doc = ?", "777").Error)
	assert.Equal(t, "Original", c.Name)
}

func TestReconcile_QuotedAndPaddedKeysMatch(t *testing.T) {
	db := newTestDB(t)
	svc := NewReconcileService(db)

	_, err := svc.Reconcile(context.Background(), KindCreditor, []Row{
		creditorRow("'555'", "Com aspas"),
	})
	require.NoError(t, err)

	// The same key re-exported without quotes and with padding still matches
	result, err := svc.Reconcile(context.Background(), KindCreditor, []Row{
		creditorRow("  555  ", "Sem aspas"),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Skipped)
}

func TestReconcile_ContractRowValidatesDates(t *testing.T) {
	db := newTestDB(t)
	svc := NewReconcileService(db)

	_, err := svc.Reconcile(context.Background(), KindContract, []Row{{
		"CONTRATO_N":        "CT-1",
		"CREDOR_DOC":        "111",
		"CONTRATO_DATA_INI": "2025-06-01",
		"CONTRATO_DATA_FIM": "2025-01-01",
		"CONTRATO_VALOR":    "1000,00",
	}})
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestReconcile_CommaDecimalValues(t *testing.T) {
	db := newTestDB(t)
	svc := NewReconcileService(db)

	result, err := svc.Reconcile(context.Background(), KindProductService, []Row{{
		"PROD_SERV_N":         "1",
		"PROD_SERV_DESCRICAO": "Manutenção predial",
		"PROD_SERV_VALOR":     "1234,56",
	}})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Inserted)

	var ps models.ProductService
	require.NoError(t, db.First(&ps, "id = ?", 1).Error)
	assert.EqualValues(t, 123456, ps.UnitValue)
}

func TestReconcile_NoKeyColumnsAppendsAllWithWarning(t *testing.T) {
	db := newTestDB(t)
	svc := NewReconcileService(db)

	// Register a keyless kind against an existing table to exercise the
	// append-all path.
	svc.kinds["SEM_CHAVE"] = entitySpec{
		table: models.Recibo{}.TableName(),
		build: func(row Row) (any, error) {
			date, err := parseCellDate(row, "RECIBO_DATA")
			if err != nil {
				return nil, err
			}
			return &models.Recibo{CreditorDoc: cell(row, "CREDOR_DOC"), Date: date}, nil
		},
	}

	rows := []Row{
		{"CREDOR_DOC": "111", "RECIBO_DATA": "2025-01-10"},
		{"CREDOR_DOC": "111", "RECIBO_DATA": "2025-01-10"},
	}

	result, err := svc.Reconcile(context.Background(), "SEM_CHAVE", rows)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Inserted)
	assert.NotEmpty(t, result.Warning)
	assert.True(t, strings.Contains(result.Warning, "SEM_CHAVE"))

	// Rerun appends again: that is what the warning is about
	result, err = svc.Reconcile(context.Background(), "SEM_CHAVE", rows)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Inserted)

	var count int64
	db.Model(&models.Recibo{}).Count(&count)
	assert.EqualValues(t, 4, count)
}

func TestReconcile_PaymentRowWithDocumentRefs(t *testing.T) {
	db := newTestDB(t)
	svc := NewReconcileService(db)

	result, err := svc.Reconcile(context.Background(), KindPayment, []Row{{
		"PAGTO_ID":      "42",
		"PAGTO_DATA":    "2025-04-15",
		"PAGTO_PERIODO": "2025-04",
		"PAGTO_VALOR":   "99,90",
		"CREDOR_DOC":    "111",
		"NF_N":          "NF-77",
	}})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Inserted)

	var p models.Payment
	require.NoError(t, db.First(&p, "id = ?", 42).Error)
	assert.EqualValues(t, 9990, p.Value)
	require.NotNil(t, p.NotaFiscalNumber)
	assert.Equal(t, "NF-77", *p.NotaFiscalNumber)
	assert.Equal(t, models.DocumentKindNotaFiscal, p.DocumentKind())
}

func TestKinds_SortedAndComplete(t *testing.T) {
	svc := NewReconcileService(newTestDB(t))

	kinds := svc.Kinds()
	assert.Equal(t, []string{
		KindAmendment, KindBoleto, KindContract, KindCreditor, KindFatura,
		KindContractItem, KindNotaFiscal, KindPayment, KindProductService,
		KindRecibo,
	}, kinds)
}

func TestReconcile_MalformedRowLeavesNothingBehind(t *testing.T) {
	db := newTestDB(t)
	svc := NewReconcileService(db)

	// The second row is missing the creditor name, so the whole file must
	// be rejected before any row is written.
	_, err := svc.Reconcile(context.Background(), KindCreditor, []Row{
		creditorRow("111", "Alfa"),
		creditorRow("222", ""),
	})
	require.Error(t, err)

	var count int64
	db.Model(&models.Creditor{}).Count(&count)
	assert.Zero(t, count, "failed file should leave no rows behind")
}

func TestReconcile_MalformedRowOnKeylessKindLeavesNothingBehind(t *testing.T) {
	db := newTestDB(t)
	svc := NewReconcileService(db)

	svc.kinds["SEM_CHAVE"] = entitySpec{
		table: models.Recibo{}.TableName(),
		build: func(row Row) (any, error) {
			date, err := parseCellDate(row, "RECIBO_DATA")
			if err != nil {
				return nil, err
			}
			return &models.Recibo{CreditorDoc: cell(row, "CREDOR_DOC"), Date: date}, nil
		},
	}

	_, err := svc.Reconcile(context.Background(), "SEM_CHAVE", []Row{
		{"CREDOR_DOC": "111", "RECIBO_DATA": "2025-01-10"},
		{"CREDOR_DOC": "111", "RECIBO_DATA": "não é data"},
	})
	require.Error(t, err)

	var count int64
	db.Model(&models.Recibo{}).Count(&count)
	assert.Zero(t, count)
}

func TestReconcile_ContractRowRejectsNonPositiveValue(t *testing.T) {
	db := newTestDB(t)
	svc := NewReconcileService(db)

	_, err := svc.Reconcile(context.Background(), KindContract, []Row{{
		"CONTRATO_N":        "CT-1",
		"CREDOR_DOC":        "111",
		"CONTRATO_DATA_INI": "2025-01-01",
		"CONTRATO_DATA_FIM": "2025-12-31",
		"CONTRATO_VALOR":    "0",
	}})
	require.ErrorIs(t, err, ErrInvalidValue)

	var count int64
	db.Model(&models.Contract{}).Count(&count)
	assert.Zero(t, count)
}

func TestReconcile_PaymentRowRejectsNonPositiveValue(t *testing.T) {
	db := newTestDB(t)
	svc := NewReconcileService(db)

	_, err := svc.Reconcile(context.Background(), KindPayment, []Row{{
		"PAGTO_ID":      "1",
		"PAGTO_DATA":    "2025-03-10",
		"PAGTO_PERIODO": "2025-03",
		"PAGTO_VALOR":   "-10,00",
		"CREDOR_DOC":    "111",
	}})
	require.ErrorIs(t, err, ErrInvalidValue)

	var count int64
	db.Model(&models.Payment{}).Count(&count)
	assert.Zero(t, count)
}
