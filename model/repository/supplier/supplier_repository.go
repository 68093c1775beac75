package supplier

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	entity "inventory.GO/model/entity"
)

type SupplierRepository struct {
	db *gorm.DB
}

func NewSupplierRepository(db *gorm.DB) *SupplierRepository {
	return &SupplierRepository{db: db}
}

// GetByID returns the supplier or (nil, nil) when the id does not resolve.
func (r *SupplierRepository) GetByID(id uint) (*entity.Supplier, error) {
	var s entity.Supplier
	err := r.db.First(&s, "supplier_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetByNameInsensitive resolves a supplier name ignoring case and surrounding
// whitespace. Returns (nil, nil) when no supplier matches.
func (r *SupplierRepository) GetByNameInsensitive(name string) (*entity.Supplier, error) {
	var s entity.Supplier
	err := r.db.Where("LOWER(name) = LOWER(?)", strings.TrimSpace(name)).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// NameTaken reports whether another supplier already uses the name,
// case-insensitively. excludeID skips the supplier being updated.
func (r *SupplierRepository) NameTaken(name string, excludeID uint) (bool, error) {
	var count int64
	q := r.db.Model(&entity.Supplier{}).Where("LOWER(name) = LOWER(?)", strings.TrimSpace(name))
	if excludeID != 0 {
		q = q.Where("supplier_id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// DeleteCascade removes the supplier, its products and their inventory rows
// in one transaction. Explicit so the cascade holds on engines where the FK
// constraint is not enforced.
func (r *SupplierRepository) DeleteCascade(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var productIDs []uint
		if err := tx.Model(&entity.Product{}).Where("supplier_id = ?", id).
			Pluck("product_id", &productIDs).Error; err != nil {
			return err
		}
		if len(productIDs) > 0 {
			if err := tx.Where("product_id IN ?", productIDs).Delete(&entity.Inventory{}).Error; err != nil {
				return err
			}
			if err := tx.Where("product_id IN ?", productIDs).Delete(&entity.Product{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&entity.Supplier{}, "supplier_id = ?", id).Error
	})
}

// ProductQuantity pairs a product with its inventory quantity.
type ProductQuantity struct {
	Product  entity.Product
	Quantity int
}

// ProductsWithQuantities returns the supplier's products that carry an
// inventory row, with their quantities, ordered by name.
func (r *SupplierRepository) ProductsWithQuantities(id uint) ([]ProductQuantity, error) {
	var products []entity.Product
	if err := r.db.Preload("Inventory").Where("supplier_id = ?", id).
		Order("name").Find(&products).Error; err != nil {
		return nil, err
	}
	out := make([]ProductQuantity, 0, len(products))
	for _, p := range products {
		if p.Inventory == nil {
			continue
		}
		qty := p.Inventory.Quantity
		p.Inventory = nil
		out = append(out, ProductQuantity{Product: p, Quantity: qty})
	}
	return out, nil
}

// TotalInventoryValue sums price*quantity across the supplier's products,
// treating products without inventory as zero.
func (r *SupplierRepository) TotalInventoryValue(id uint) (decimal.Decimal, error) {
	var products []entity.Product
	if err := r.db.Preload("Inventory").Where("supplier_id = ?", id).Find(&products).Error; err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, p := range products {
		if p.Inventory == nil {
			continue
		}
		total = total.Add(p.Price.Mul(decimal.NewFromInt(int64(p.Inventory.Quantity))))
	}
	return total, nil
}

// CountProducts returns the number of products the supplier owns.
func (r *SupplierRepository) CountProducts(id uint) (int64, error) {
	var count int64
	err := r.db.Model(&entity.Product{}).Where("supplier_id = ?", id).Count(&count).Error
	return count, err
}
