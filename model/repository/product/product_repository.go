package product

import (
	"errors"

	"gorm.io/gorm"

	entity "inventory.GO/model/entity"
)

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// ListFilter narrows List by equality on name, price and supplier name.
type ListFilter struct {
	Name         string
	Price        string
	SupplierName string
}

// List returns one page of products with their supplier preloaded, ordered by
// name, plus the total row count for the filter.
func (r *ProductRepository) List(filter ListFilter, page, pageSize int) ([]entity.Product, int64, error) {
	q := r.db.Model(&entity.Product{}).
		Joins("LEFT JOIN supplier ON supplier.supplier_id = product.supplier_id")
	if filter.Name != "" {
		q = q.Where("product.name = ?", filter.Name)
	}
	if filter.Price != "" {
		q = q.Where("product.price = ?", filter.Price)
	}
	if filter.SupplierName != "" {
		q = q.Where("supplier.name = ?", filter.SupplierName)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []entity.Product
	err := q.Preload("Supplier").Order("product.name").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&products).Error
	return products, total, err
}

// GetByID returns the product with supplier preloaded, or (nil, nil).
func (r *ProductRepository) GetByID(id uint) (*entity.Product, error) {
	var p entity.Product
	err := r.db.Preload("Supplier").First(&p, "product_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetByName matches a product by exact name, or (nil, nil).
func (r *ProductRepository) GetByName(name string) (*entity.Product, error) {
	var p entity.Product
	err := r.db.Where("name = ?", name).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
