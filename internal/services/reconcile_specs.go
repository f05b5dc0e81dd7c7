package services

import (
	"github.com/rvmoura/pagamentos-api/internal/models"
)

// Legacy spreadsheet table names accepted by the reconciler.
const (
	KindCreditor       = "CREDOR"
	KindProductService = "PRODUTOS_SERVICOS"
	KindContractItem   = "LISTA_ITENS"
	KindContract       = "CONTRATO"
	KindAmendment      = "ADITIVOS"
	KindNotaFiscal     = "NF"
	KindRecibo         = "RECIBO"
	KindFatura         = "FATURA"
	KindBoleto         = "BOLETO"
	KindPayment        = "PAGTO"
)

// registerDefaults wires every legacy table the finance department exports.
// Surrogate ids come from the spreadsheets themselves so re-imports keep
// matching the rows already stored.
func (s *ReconcileService) registerDefaults() {
	s.kinds[KindCreditor] = entitySpec{
		table:      models.Creditor{}.TableName(),
		keyColumns: []keyColumn{{csv: "CREDOR_DOC", db: "doc"}},
		build: func(row Row) (any, error) {
			doc, err := requireCell(row, "CREDOR_DOC")
			if err != nil {
				return nil, err
			}
			name, err := requireCell(row, "CREDOR_NOME")
			if err != nil {
				return nil, err
			}
			return &models.Creditor{Doc: doc, Name: name}, nil
		},
	}

	s.kinds[KindProductService] = entitySpec{
		table:      models.ProductService{}.TableName(),
		keyColumns: []keyColumn{{csv: "PROD_SERV_N", db: "id"}},
		build: func(row Row) (any, error) {
			id, err := parseCellUint(row, "PROD_SERV_N")
			if err != nil {
				return nil, err
			}
			desc, err := requireCell(row, "PROD_SERV_DESCRICAO")
			if err != nil {
				return nil, err
			}
			value, err := parseCellCentavos(row, "PROD_SERV_VALOR")
			if err != nil {
				return nil, err
			}
			return &models.ProductService{ID: id, Description: desc, UnitValue: value}, nil
		},
	}

	s.kinds[KindContractItem] = entitySpec{
		table:      models.ContractItem{}.TableName(),
		keyColumns: []keyColumn{{csv: "LISTA_ITENS_N", db: "id"}},
		build: func(row Row) (any, error) {
			id, err := parseCellUint(row, "LISTA_ITENS_N")
			if err != nil {
				return nil, err
			}
			psID, err := parseCellUint(row, "PROD_SERV_N")
			if err != nil {
				return nil, err
			}
			qty, err := parseCellInt(row, "PROD_SERV_QTD")
			if err != nil {
				return nil, err
			}
			return &models.ContractItem{ID: id, ProductServiceID: psID, Quantity: qty}, nil
		},
	}

	s.kinds[KindContract] = entitySpec{
		table:      models.Contract{}.TableName(),
		keyColumns: []keyColumn{{csv: "CONTRATO_N", db: "number"}},
		build: func(row Row) (any, error) {
			number, err := requireCell(row, "CONTRATO_N")
			if err != nil {
				return nil, err
			}
			doc, err := requireCell(row, "CREDOR_DOC")
			if err != nil {
				return nil, err
			}
			start, err := parseCellDate(row, "CONTRATO_DATA_INI")
			if err != nil {
				return nil, err
			}
			end, err := parseCellDate(row, "CONTRATO_DATA_FIM")
			if err != nil {
				return nil, err
			}
			if err := ValidateContractDates(start, end); err != nil {
				return nil, err
			}
			value, err := parseCellCentavos(row, "CONTRATO_VALOR")
			if err != nil {
				return nil, err
			}
			if value <= 0 {
				return nil, ErrInvalidValue
			}
			itemID, err := parseCellUintOptional(row, "LISTA_ITENS_N")
			if err != nil {
				return nil, err
			}
			return &models.Contract{
				Number:         number,
				CreditorDoc:    doc,
				StartDate:      start,
				EndDate:        end,
				TotalValue:     value,
				ContractItemID: itemID,
			}, nil
		},
	}

	s.kinds[KindAmendment] = entitySpec{
		table:      models.Amendment{}.TableName(),
		keyColumns: []keyColumn{{csv: "ADITIVO_N", db: "id"}},
		build: func(row Row) (any, error) {
			id, err := parseCellUint(row, "ADITIVO_N")
			if err != nil {
				return nil, err
			}
			contract, err := requireCell(row, "CONTRATO_N")
			if err != nil {
				return nil, err
			}
			doc, err := requireCell(row, "CREDOR_DOC")
			if err != nil {
				return nil, err
			}
			start, err := parseCellDateOptional(row, "ADITIVO_DATA_INI")
			if err != nil {
				return nil, err
			}
			end, err := parseCellDateOptional(row, "ADITIVO_DATA_FIM")
			if err != nil {
				return nil, err
			}
			value, err := parseCellCentavosOptional(row, "ADITIVO_VALOR")
			if err != nil {
				return nil, err
			}
			itemID, err := parseCellUintOptional(row, "LISTA_ITENS_N")
			if err != nil {
				return nil, err
			}
			return &models.Amendment{
				ID:             id,
				ContractNumber: contract,
				CreditorDoc:    doc,
				StartDate:      start,
				EndDate:        end,
				Value:          value,
				ContractItemID: itemID,
			}, nil
		},
	}

	s.kinds[KindNotaFiscal] = entitySpec{
		table:      models.NotaFiscal{}.TableName(),
		keyColumns: []keyColumn{{csv: "NF_N", db: "number"}},
		build: func(row Row) (any, error) {
			number, err := requireCell(row, "NF_N")
			if err != nil {
				return nil, err
			}
			doc, err := requireCell(row, "CREDOR_DOC")
			if err != nil {
				return nil, err
			}
			date, err := parseCellDate(row, "NF_DATA")
			if err != nil {
				return nil, err
			}
			return &models.NotaFiscal{
				Number:         number,
				CreditorDoc:    doc,
				ContractNumber: optionalCellString(row, "CONTRATO_N"),
				Date:           date,
			}, nil
		},
	}

	s.kinds[KindRecibo] = entitySpec{
		table:      models.Recibo{}.TableName(),
		keyColumns: []keyColumn{{csv: "RECIBO_N", db: "id"}},
		build: func(row Row) (any, error) {
			id, err := parseCellUint(row, "RECIBO_N")
			if err != nil {
				return nil, err
			}
			doc, err := requireCell(row, "CREDOR_DOC")
			if err != nil {
				return nil, err
			}
			date, err := parseCellDate(row, "RECIBO_DATA")
			if err != nil {
				return nil, err
			}
			return &models.Recibo{ID: id, CreditorDoc: doc, Date: date}, nil
		},
	}

	s.kinds[KindFatura] = entitySpec{
		table:      models.Fatura{}.TableName(),
		keyColumns: []keyColumn{{csv: "FATURA_N", db: "id"}},
		build: func(row Row) (any, error) {
			id, err := parseCellUint(row, "FATURA_N")
			if err != nil {
				return nil, err
			}
			contract, err := requireCell(row, "CONTRATO_N")
			if err != nil {
				return nil, err
			}
			doc, err := requireCell(row, "CREDOR_DOC")
			if err != nil {
				return nil, err
			}
			date, err := parseCellDate(row, "FATURA_DATA")
			if err != nil {
				return nil, err
			}
			return &models.Fatura{ID: id, ContractNumber: contract, CreditorDoc: doc, Date: date}, nil
		},
	}

	s.kinds[KindBoleto] = entitySpec{
		table:      models.Boleto{}.TableName(),
		keyColumns: []keyColumn{{csv: "BOLETO_N", db: "id"}},
		build: func(row Row) (any, error) {
			id, err := parseCellUint(row, "BOLETO_N")
			if err != nil {
				return nil, err
			}
			doc, err := requireCell(row, "CREDOR_DOC")
			if err != nil {
				return nil, err
			}
			date, err := parseCellDate(row, "BOLETO_DATA")
			if err != nil {
				return nil, err
			}
			return &models.Boleto{
				ID:             id,
				ContractNumber: optionalCellString(row, "CONTRATO_N"),
				CreditorDoc:    doc,
				Date:           date,
			}, nil
		},
	}

	s.kinds[KindPayment] = entitySpec{
		table:      models.Payment{}.TableName(),
		keyColumns: []keyColumn{{csv: "PAGTO_ID", db: "id"}},
		build: func(row Row) (any, error) {
			id, err := parseCellUint(row, "PAGTO_ID")
			if err != nil {
				return nil, err
			}
			date, err := parseCellDate(row, "PAGTO_DATA")
			if err != nil {
				return nil, err
			}
			period, err := requireCell(row, "PAGTO_PERIODO")
			if err != nil {
				return nil, err
			}
			value, err := parseCellCentavos(row, "PAGTO_VALOR")
			if err != nil {
				return nil, err
			}
			if value <= 0 {
				return nil, ErrInvalidValue
			}
			doc, err := requireCell(row, "CREDOR_DOC")
			if err != nil {
				return nil, err
			}
			group, err := parseCellIntOptional(row, "PAGTO_GRUPO")
			if err != nil {
				return nil, err
			}
			psID, err := parseCellUintOptional(row, "PROD_SERV_N")
			if err != nil {
				return nil, err
			}
			qty, err := parseCellIntOptional(row, "PROD_SERV_QTD")
			if err != nil {
				return nil, err
			}
			reciboID, err := parseCellUintOptional(row, "RECIBO_N")
			if err != nil {
				return nil, err
			}
			faturaID, err := parseCellUintOptional(row, "FATURA_N")
			if err != nil {
				return nil, err
			}
			boletoID, err := parseCellUintOptional(row, "BOLETO_N")
			if err != nil {
				return nil, err
			}
			return &models.Payment{
				ID:               id,
				Date:             date,
				Period:           period,
				Group:            group,
				Value:            value,
				CreditorDoc:      doc,
				ContractNumber:   optionalCellString(row, "CONTRATO_N"),
				ProductServiceID: psID,
				Quantity:         qty,
				NotaFiscalNumber: optionalCellString(row, "NF_N"),
				ReciboID:         reciboID,
				FaturaID:         faturaID,
				BoletoID:         boletoID,
			}, nil
		},
	}
}
