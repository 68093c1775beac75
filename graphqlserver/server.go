package graphqlserver

import (
	"errors"
	"strconv"

	gql "github.com/graph-gophers/graphql-go"
	"gorm.io/gorm"

	entity "inventory.GO/model/entity"
)

// Read-only catalog schema. Mutations go through the REST API.
const schemaString = `
schema {
	query: Query
}

type Query {
	suppliers: [Supplier!]!
	supplier(id: ID!): Supplier
	products(name: String, supplierName: String): [Product!]!
	inventoryLevels: [InventoryLevel!]!
}

type Supplier {
	id: ID!
	name: String!
	contactInfo: String!
}

type Product {
	id: ID!
	name: String!
	description: String!
	price: String!
	supplier: Supplier
}

type InventoryLevel {
	id: ID!
	quantity: Int!
	product: Product!
}
`

// NewSchema parses the schema against the root resolver.
func NewSchema(db *gorm.DB) (*gql.Schema, error) {
	return gql.ParseSchema(schemaString, &RootResolver{db: db})
}

// RootResolver implements the Query fields.
type RootResolver struct {
	db *gorm.DB
}

func (r *RootResolver) Suppliers() ([]*SupplierResolver, error) {
	var suppliers []entity.Supplier
	if err := r.db.Order("name").Find(&suppliers).Error; err != nil {
		return nil, err
	}
	out := make([]*SupplierResolver, len(suppliers))
	for i := range suppliers {
		out[i] = &SupplierResolver{s: suppliers[i]}
	}
	return out, nil
}

func (r *RootResolver) Supplier(args struct{ ID gql.ID }) (*SupplierResolver, error) {
	id, err := strconv.ParseUint(string(args.ID), 10, 64)
	if err != nil {
		return nil, nil
	}
	var s entity.Supplier
	if err := r.db.First(&s, "supplier_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &SupplierResolver{s: s}, nil
}

func (r *RootResolver) Products(args struct {
	Name         *string
	SupplierName *string
}) ([]*ProductResolver, error) {
	q := r.db.Preload("Supplier").
		Joins("LEFT JOIN supplier ON supplier.supplier_id = product.supplier_id").
		Order("product.name")
	if args.Name != nil && *args.Name != "" {
		q = q.Where("product.name = ?", *args.Name)
	}
	if args.SupplierName != nil && *args.SupplierName != "" {
		q = q.Where("supplier.name = ?", *args.SupplierName)
	}
	var products []entity.Product
	if err := q.Find(&products).Error; err != nil {
		return nil, err
	}
	out := make([]*ProductResolver, len(products))
	for i := range products {
		out[i] = &ProductResolver{p: products[i]}
	}
	return out, nil
}

func (r *RootResolver) InventoryLevels() ([]*InventoryResolver, error) {
	var rows []entity.Inventory
	if err := r.db.Preload("Product").Preload("Product.Supplier").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*InventoryResolver, len(rows))
	for i := range rows {
		out[i] = &InventoryResolver{inv: rows[i]}
	}
	return out, nil
}

// SupplierResolver wraps a supplier row.
type SupplierResolver struct {
	s entity.Supplier
}

func (r *SupplierResolver) ID() gql.ID {
	return gql.ID(strconv.FormatUint(uint64(r.s.SupplierID), 10))
}
func (r *SupplierResolver) Name() string        { return r.s.Name }
func (r *SupplierResolver) ContactInfo() string { return r.s.ContactInfo }

// ProductResolver wraps a product row with supplier preloaded.
type ProductResolver struct {
	p entity.Product
}

func (r *ProductResolver) ID() gql.ID {
	return gql.ID(strconv.FormatUint(uint64(r.p.ProductID), 10))
}
func (r *ProductResolver) Name() string        { return r.p.Name }
func (r *ProductResolver) Description() string { return r.p.Description }
func (r *ProductResolver) Price() string       { return r.p.Price.StringFixed(2) }
func (r *ProductResolver) Supplier() *SupplierResolver {
	if r.p.Supplier == nil {
		return nil
	}
	return &SupplierResolver{s: *r.p.Supplier}
}

// InventoryResolver wraps an inventory row with product preloaded.
type InventoryResolver struct {
	inv entity.Inventory
}

func (r *InventoryResolver) ID() gql.ID {
	return gql.ID(strconv.FormatUint(uint64(r.inv.InventoryID), 10))
}
func (r *InventoryResolver) Quantity() int32 { return int32(r.inv.Quantity) }
func (r *InventoryResolver) Product() *ProductResolver {
	p := entity.Product{}
	if r.inv.Product != nil {
		p = *r.inv.Product
	}
	return &ProductResolver{p: p}
}
