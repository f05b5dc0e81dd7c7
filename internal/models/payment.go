package models

import "time"

// Payment is a disbursement to a creditor, optionally tied to a contract, a
// product/service line item and at most one supporting document. Payments are
// never mutated once recorded.
type Payment struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Date             time.Time `gorm:"type:date;not null;index" json:"date"`
	Period           string    `gorm:"not null" json:"period"`
	Group            *int      `json:"group"`
	Value            Centavos  `gorm:"not null" json:"value"`
	CreditorDoc      string    `gorm:"not null;index" json:"creditor_doc"`
	ContractNumber   *string   `gorm:"index" json:"contract_number"`
	ProductServiceID *uint     `json:"product_service_id"`
	Quantity         *int      `json:"quantity"`

	// At most one supporting document reference.
	NotaFiscalNumber *string `json:"nota_fiscal_number"`
	ReciboID         *uint   `json:"recibo_id"`
	FaturaID         *uint   `json:"fatura_id"`
	BoletoID         *uint   `json:"boleto_id"`

	CreatedAt time.Time `json:"created_at"`

	// Associations
	Creditor       Creditor        `gorm:"foreignKey:CreditorDoc;references:Doc" json:"creditor,omitempty"`
	Contract       *Contract       `gorm:"foreignKey:ContractNumber;references:Number" json:"contract,omitempty"`
	ProductService *ProductService `gorm:"foreignKey:ProductServiceID" json:"product_service,omitempty"`
	NotaFiscal     *NotaFiscal     `gorm:"foreignKey:NotaFiscalNumber;references:Number" json:"nota_fiscal,omitempty"`
	Recibo         *Recibo         `gorm:"foreignKey:ReciboID" json:"recibo,omitempty"`
	Fatura         *Fatura         `gorm:"foreignKey:FaturaID" json:"fatura,omitempty"`
	Boleto         *Boleto         `gorm:"foreignKey:BoletoID" json:"boleto,omitempty"`
}

// TableName specifies the table name for Payment
func (Payment) TableName() string {
	return "payments"
}

// DocumentKind resolves which supporting document the payment carries.
func (p *Payment) DocumentKind() DocumentKind {
	switch {
	case p.NotaFiscalNumber != nil && *p.NotaFiscalNumber != "":
		return DocumentKindNotaFiscal
	case p.ReciboID != nil:
		return DocumentKindRecibo
	case p.FaturaID != nil:
		return DocumentKindFatura
	case p.BoletoID != nil:
		return DocumentKindBoleto
	default:
		return DocumentKindNone
	}
}

// PaymentResponse is the JSON response format for payments
type PaymentResponse struct {
	ID             uint      `json:"id"`
	Date           time.Time `json:"date"`
	Period         string    `json:"period"`
	Group          *int      `json:"group"`
	Value          string    `json:"value"`
	CreditorDoc    string    `json:"creditor_doc"`
	CreditorName   string    `json:"creditor_name,omitempty"`
	ContractNumber *string   `json:"contract_number"`
	Product        string    `json:"product,omitempty"`
	Quantity       *int      `json:"quantity,omitempty"`
	DocumentKind   string    `json:"document_kind"`
}

// ToResponse converts Payment to PaymentResponse
func (p *Payment) ToResponse() PaymentResponse {
	resp := PaymentResponse{
		ID:             p.ID,
		Date:           p.Date,
		Period:         p.Period,
		Group:          p.Group,
		Value:          p.Value.String(),
		CreditorDoc:    p.CreditorDoc,
		ContractNumber: p.ContractNumber,
		Quantity:       p.Quantity,
		DocumentKind:   p.DocumentKind().Label(),
	}
	if p.Creditor.Doc != "" {
		resp.CreditorName = p.Creditor.Name
	}
	if p.ProductService != nil {
		resp.Product = p.ProductService.Description
	}
	return resp
}
