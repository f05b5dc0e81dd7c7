package models

import "time"

// DocumentKind identifies the supporting document attached to a payment.
// The set is closed: nota fiscal, recibo, fatura, boleto, or none.
type DocumentKind string

const (
	DocumentKindNotaFiscal DocumentKind = "nota_fiscal"
	DocumentKindRecibo     DocumentKind = "recibo"
	DocumentKindFatura     DocumentKind = "fatura"
	DocumentKindBoleto     DocumentKind = "boleto"
	DocumentKindNone       DocumentKind = ""
)

// Document field names used in validation messages and CSV headers.
const (
	DocumentFieldNumber   = "document_number"
	DocumentFieldDate     = "document_date"
	DocumentFieldContract = "contract_number"
)

// RequiredFields returns the intake fields a document kind cannot be
// created without.
func (k DocumentKind) RequiredFields() []string {
	switch k {
	case DocumentKindNotaFiscal:
		return []string{DocumentFieldNumber, DocumentFieldDate}
	case DocumentKindRecibo, DocumentKindBoleto:
		return []string{DocumentFieldDate}
	case DocumentKindFatura:
		return []string{DocumentFieldContract, DocumentFieldDate}
	default:
		return nil
	}
}

// Label is the human-readable name used on reports. Payments without a
// document reference resolve to "Outro".
func (k DocumentKind) Label() string {
	switch k {
	case DocumentKindNotaFiscal:
		return "Nota Fiscal"
	case DocumentKindRecibo:
		return "Recibo"
	case DocumentKindFatura:
		return "Fatura"
	case DocumentKindBoleto:
		return "Boleto"
	default:
		return "Outro"
	}
}

// Valid reports whether k is one of the four known kinds or none.
func (k DocumentKind) Valid() bool {
	switch k {
	case DocumentKindNotaFiscal, DocumentKindRecibo, DocumentKindFatura, DocumentKindBoleto, DocumentKindNone:
		return true
	}
	return false
}

// NotaFiscal is an invoice identified by its fiscal number.
type NotaFiscal struct {
	Number         string    `gorm:"column:number;primaryKey" json:"number"`
	CreditorDoc    string    `gorm:"not null;index" json:"creditor_doc"`
	ContractNumber *string   `json:"contract_number"`
	Date           time.Time `gorm:"type:date;not null" json:"date"`
	CreatedAt      time.Time `json:"created_at"`

	Creditor Creditor `gorm:"foreignKey:CreditorDoc;references:Doc" json:"creditor,omitempty"`
}

// TableName specifies the table name for NotaFiscal
func (NotaFiscal) TableName() string {
	return "notas_fiscais"
}

// Recibo is a simple dated receipt.
type Recibo struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CreditorDoc string    `gorm:"not null;index" json:"creditor_doc"`
	Date        time.Time `gorm:"type:date;not null" json:"date"`
	CreatedAt   time.Time `json:"created_at"`

	Creditor Creditor `gorm:"foreignKey:CreditorDoc;references:Doc" json:"creditor,omitempty"`
}

// TableName specifies the table name for Recibo
func (Recibo) TableName() string {
	return "recibos"
}

// Fatura is a billing statement; it always references a contract.
type Fatura struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	ContractNumber string    `gorm:"not null;index" json:"contract_number"`
	CreditorDoc    string    `gorm:"not null" json:"creditor_doc"`
	Date           time.Time `gorm:"type:date;not null" json:"date"`
	CreatedAt      time.Time `json:"created_at"`

	Creditor Creditor `gorm:"foreignKey:CreditorDoc;references:Doc" json:"creditor,omitempty"`
}

// TableName specifies the table name for Fatura
func (Fatura) TableName() string {
	return "faturas"
}

// Boleto is a bank payment slip; the contract reference is optional.
type Boleto struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	ContractNumber *string   `json:"contract_number"`
	CreditorDoc    string    `gorm:"not null;index" json:"creditor_doc"`
	Date           time.Time `gorm:"type:date;not null" json:"date"`
	CreatedAt      time.Time `json:"created_at"`

	Creditor Creditor `gorm:"foreignKey:CreditorDoc;references:Doc" json:"creditor,omitempty"`
}

// TableName specifies the table name for Boleto
func (Boleto) TableName() string {
	return "boletos"
}
