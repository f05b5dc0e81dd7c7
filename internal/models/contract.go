package models

import "time"

// Contract is an agreement with a creditor bounding the total payable value
// inside a validity window. The contract number is the natural key; the base
// record is immutable after creation, except through the append-only bulk
// import path. Amendments adjust the total payable value without touching it.
type Contract struct {
	Number         string    `gorm:"column:number;primaryKey" json:"number"`
	CreditorDoc    string    `gorm:"not null;index" json:"creditor_doc"`
	StartDate      time.Time `gorm:"type:date;not null" json:"start_date"`
	EndDate        time.Time `gorm:"type:date;not null" json:"end_date"`
	TotalValue     Centavos  `gorm:"not null" json:"total_value"`
	ContractItemID *uint     `json:"contract_item_id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Associations
	Creditor     Creditor      `gorm:"foreignKey:CreditorDoc;references:Doc" json:"creditor,omitempty"`
	ContractItem *ContractItem `gorm:"foreignKey:ContractItemID" json:"contract_item,omitempty"`
	Amendments   []Amendment   `gorm:"foreignKey:ContractNumber;references:Number" json:"amendments,omitempty"`
	Payments     []Payment     `gorm:"foreignKey:ContractNumber;references:Number" json:"payments,omitempty"`
}

// TableName specifies the table name for Contract
func (Contract) TableName() string {
	return "contracts"
}

// CommittedValue is the contract ceiling including amendment adjustments.
func (c *Contract) CommittedValue(amendmentSum Centavos) Centavos {
	return c.TotalValue + amendmentSum
}

// CoversDate reports whether d falls inside the validity window, bounds
// inclusive. Only the calendar day matters.
func (c *Contract) CoversDate(d time.Time) bool {
	day := truncateToDay(d)
	return !day.Before(truncateToDay(c.StartDate)) && !day.After(truncateToDay(c.EndDate))
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Amendment (aditivo) extends or adjusts a contract. Its value, when present,
// raises the contract's payable ceiling. Append-only.
type Amendment struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	ContractNumber string     `gorm:"not null;index" json:"contract_number"`
	CreditorDoc    string     `gorm:"not null" json:"creditor_doc"`
	StartDate      *time.Time `gorm:"type:date" json:"start_date"`
	EndDate        *time.Time `gorm:"type:date" json:"end_date"`
	Value          Centavos   `json:"value"`
	ContractItemID *uint      `json:"contract_item_id"`
	CreatedAt      time.Time  `json:"created_at"`

	Contract Contract `gorm:"foreignKey:ContractNumber;references:Number" json:"contract,omitempty"`
}

// TableName specifies the table name for Amendment
func (Amendment) TableName() string {
	return "amendments"
}
