package entity

import "github.com/shopspring/decimal"

// Product represents the product table. Every product belongs to exactly one
// supplier and is deleted with it.
type Product struct {
	ProductID   uint            `gorm:"column:product_id;primaryKey;autoIncrement" json:"id"`
	Name        string          `gorm:"column:name;type:varchar(255);not null;index" json:"name"`
	Description string          `gorm:"column:description;type:text" json:"description"`
	Price       decimal.Decimal `gorm:"column:price;type:decimal(10,2);not null" json:"price"`
	SupplierID  uint            `gorm:"column:supplier_id;not null;index" json:"supplier_id"`

	Supplier  *Supplier  `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
	Inventory *Inventory `gorm:"foreignKey:ProductID" json:"-"`
}

func (Product) TableName() string {
	return "product"
}
