package apitest

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	entity "inventory.GO/model/entity"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&entity.Supplier{}, &entity.Product{}, &entity.Inventory{}, &entity.ReportJob{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedSupplier(t *testing.T, db *gorm.DB, name string) entity.Supplier {
	t.Helper()
	s := entity.Supplier{Name: name, ContactInfo: name + "@example.com"}
	if err := db.Create(&s).Error; err != nil {
		t.Fatalf("seed supplier %s: %v", name, err)
	}
	return s
}

func seedProduct(t *testing.T, db *gorm.DB, name, price string, supplierID uint) entity.Product {
	t.Helper()
	p := entity.Product{
		Name:       name,
		Price:      mustDecimal(t, price),
		SupplierID: supplierID,
	}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("seed product %s: %v", name, err)
	}
	return p
}

func seedInventory(t *testing.T, db *gorm.DB, productID uint, qty int) entity.Inventory {
	t.Helper()
	inv := entity.Inventory{ProductID: productID, Quantity: qty}
	if err := db.Create(&inv).Error; err != nil {
		t.Fatalf("seed inventory for product %d: %v", productID, err)
	}
	return inv
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("decimal %q: %v", s, err)
	}
	return d
}
