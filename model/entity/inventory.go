package entity

// Inventory represents the inventory table: one row per product, quantity
// never negative (validated at the API and importer boundaries).
type Inventory struct {
	InventoryID uint `gorm:"column:inventory_id;primaryKey;autoIncrement" json:"id"`
	ProductID   uint `gorm:"column:product_id;not null;uniqueIndex:uniq_inventory_product" json:"product_id"`
	Quantity    int  `gorm:"column:quantity;not null;default:0" json:"quantity"`

	Product *Product `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"product,omitempty"`
}

func (Inventory) TableName() string {
	return "inventory"
}
