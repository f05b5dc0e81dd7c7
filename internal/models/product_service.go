package models

import "time"

// ProductService is a catalog entry for something the department buys,
// priced per unit.
type ProductService struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Description string    `gorm:"not null" json:"description"`
	UnitValue   Centavos  `gorm:"not null" json:"unit_value"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for ProductService
func (ProductService) TableName() string {
	return "product_services"
}

// ContractItem links a contract to a catalog entry with a quantity.
type ContractItem struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	ProductServiceID uint      `gorm:"not null" json:"product_service_id"`
	Quantity         int       `gorm:"not null" json:"quantity"`
	CreatedAt        time.Time `json:"created_at"`

	ProductService ProductService `gorm:"foreignKey:ProductServiceID" json:"product_service,omitempty"`
}

// TableName specifies the table name for ContractItem
func (ContractItem) TableName() string {
	return "contract_items"
}
