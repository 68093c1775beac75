package report

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	entity "inventory.GO/model/entity"
	inventoryRepo "inventory.GO/model/repository/inventory"
)

// LowStockThreshold flags inventory lines below this quantity.
const LowStockThreshold = 10

// InventoryLine is one row of the inventory levels table.
type InventoryLine struct {
	ProductName   string          `json:"product_name"`
	Inventory     int             `json:"inventory"`
	Price         decimal.Decimal `json:"price"`
	StockValue    decimal.Decimal `json:"stock_value"`
	LowStockAlert bool            `json:"low_stock_alert"`
}

// SupplierPerformance is one row of the supplier rollup table.
type SupplierPerformance struct {
	SupplierName          string          `json:"supplier_name"`
	TotalProductsSupplied int             `json:"total_products_supplied"`
	TotalInventory        int             `json:"total_inventory"`
	TotalStockValue       decimal.Decimal `json:"total_stock_value"`
}

// Report is the in-memory report document. Deterministic for a given store
// state; building it has no side effects.
type Report struct {
	GeneratedAt         time.Time             `json:"generated_at"`
	InventoryLevels     []InventoryLine       `json:"inventory_levels"`
	TotalStockValue     decimal.Decimal       `json:"total_stock_value"`
	SupplierPerformance []SupplierPerformance `json:"supplier_performance"`
}

// Build aggregates inventory levels and supplier rollups from the store.
func Build(db *gorm.DB) (*Report, error) {
	var (
		inventories []entity.Inventory
		suppliers   []entity.Supplier
		productCnts []supplierCount
	)

	var g errgroup.Group
	g.Go(func() error {
		var err error
		inventories, err = inventoryRepo.NewInventoryRepository(db).GetAllWithProduct()
		return err
	})
	g.Go(func() error {
		return db.Order("name").Find(&suppliers).Error
	})
	g.Go(func() error {
		return db.Model(&entity.Product{}).
			Select("supplier_id, COUNT(*) AS count").
			Group("supplier_id").Scan(&productCnts).Error
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rep := &Report{
		GeneratedAt:     time.Now(),
		InventoryLevels: []InventoryLine{},
		TotalStockValue: decimal.Zero,
	}

	type rollup struct {
		quantity int
		value    decimal.Decimal
	}
	rollups := make(map[uint]*rollup, len(suppliers))
	for _, s := range suppliers {
		rollups[s.SupplierID] = &rollup{value: decimal.Zero}
	}

	for _, inv := range inventories {
		if inv.Product == nil {
			continue
		}
		stockValue := inv.Product.Price.Mul(decimal.NewFromInt(int64(inv.Quantity)))
		rep.InventoryLevels = append(rep.InventoryLevels, InventoryLine{
			ProductName:   inv.Product.Name,
			Inventory:     inv.Quantity,
			Price:         inv.Product.Price,
			StockValue:    stockValue,
			LowStockAlert: inv.Quantity < LowStockThreshold,
		})
		rep.TotalStockValue = rep.TotalStockValue.Add(stockValue)

		if r, ok := rollups[inv.Product.SupplierID]; ok {
			r.quantity += inv.Quantity
			r.value = r.value.Add(stockValue)
		}
	}

	counts := make(map[uint]int, len(productCnts))
	for _, c := range productCnts {
		counts[c.SupplierID] = c.Count
	}

	rep.SupplierPerformance = make([]SupplierPerformance, 0, len(suppliers))
	for _, s := range suppliers {
		r := rollups[s.SupplierID]
		rep.SupplierPerformance = append(rep.SupplierPerformance, SupplierPerformance{
			SupplierName:          s.Name,
			TotalProductsSupplied: counts[s.SupplierID],
			TotalInventory:        r.quantity,
			TotalStockValue:       r.value,
		})
	}
	return rep, nil
}

type supplierCount struct {
	SupplierID uint `gorm:"column:supplier_id"`
	Count      int  `gorm:"column:count"`
}
