package inventory

import (
	"errors"

	"gorm.io/gorm"

	entity "inventory.GO/model/entity"
)

type InventoryRepository struct {
	db *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

// GetAllWithProduct returns every inventory row with product and supplier
// preloaded, ordered by product name.
func (r *InventoryRepository) GetAllWithProduct() ([]entity.Inventory, error) {
	var rows []entity.Inventory
	err := r.db.Preload("Product").Preload("Product.Supplier").
		Joins("JOIN product ON product.product_id = inventory.product_id").
		Order("product.name").Find(&rows).Error
	return rows, err
}

// GetByID returns the inventory row with product preloaded, or (nil, nil).
func (r *InventoryRepository) GetByID(id uint) (*entity.Inventory, error) {
	var inv entity.Inventory
	err := r.db.Preload("Product").Preload("Product.Supplier").
		First(&inv, "inventory_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// AddQuantity adds qty to the product's inventory inside tx, creating the row
// at zero first when absent. Cumulative on purpose: repeated imports of the
// same product stack up.
func AddQuantity(tx *gorm.DB, productID uint, qty int) error {
	var inv entity.Inventory
	err := tx.Where("product_id = ?", productID).First(&inv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		inv = entity.Inventory{ProductID: productID, Quantity: 0}
		if err := tx.Create(&inv).Error; err != nil {
			return err
		}
	} else if err != nil {
		return err
	}
	inv.Quantity += qty
	return tx.Model(&entity.Inventory{}).
		Where("inventory_id = ?", inv.InventoryID).
		Update("quantity", inv.Quantity).Error
}
