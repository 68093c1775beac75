package entity

// Supplier represents the supplier table. Name is unique ignoring case,
// enforced by the repository check plus the DB unique key.
type Supplier struct {
	SupplierID  uint   `gorm:"column:supplier_id;primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"column:name;type:varchar(100);not null;uniqueIndex:uniq_supplier_name" json:"name"`
	ContactInfo string `gorm:"column:contact_info;type:text" json:"contact_info"`

	Products []Product `gorm:"foreignKey:SupplierID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Supplier) TableName() string {
	return "supplier"
}
