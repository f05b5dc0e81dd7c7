package models

import "time"

// Creditor is a supplier the department pays. The fiscal document number
// (CNPJ or CPF) is the natural key.
type Creditor struct {
	Doc       string    `gorm:"column:doc;primaryKey" json:"doc"`
	Name      string    `gorm:"not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for Creditor
func (Creditor) TableName() string {
	return "creditors"
}
