package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	entity "inventory.GO/model/entity"
	inventoryRepo "inventory.GO/model/repository/inventory"
	supplierRepo "inventory.GO/model/repository/supplier"
)

// RequiredColumns must all be present in the upload header.
var RequiredColumns = []string{"name", "description", "price", "supplier_name", "quantity"}

// MissingColumnsError is the structural failure for an upload whose header
// lacks required columns. The API layer maps it to a 400.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return "Missing required columns: " + strings.Join(e.Columns, ", ")
}

// RowError captures one failed row: the raw payload plus the reason.
type RowError struct {
	Row   map[string]string `json:"row"`
	Error string            `json:"error"`
}

// ImportResult summarizes an import run.
type ImportResult struct {
	Message      string     `json:"message"`
	SuccessCount int        `json:"success_count"`
	ErrorCount   int        `json:"error_count"`
	Errors       []RowError `json:"errors"`
}

// ImportProducts reads CSV rows and upserts products and inventory.
// Row-level failures are collected and never abort sibling rows; each
// successful row commits in its own transaction, so reported successes are
// durable regardless of later rows.
func ImportProducts(db *gorm.DB, r io.Reader) (*ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read CSV header: %w", err)
	}
	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
	}

	colIndex := make(map[string]int, len(headers))
	for i, h := range headers {
		colIndex[h] = i
	}
	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := colIndex[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Columns: missing}
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read CSV rows: %w", err)
	}

	suppliers := supplierRepo.NewSupplierRepository(db)
	result := &ImportResult{
		Message: "File processed successfully",
		Errors:  []RowError{},
	}

	for _, record := range rows {
		row := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(record) {
				row[h] = record[i]
			} else {
				row[h] = ""
			}
		}
		if err := importRow(db, suppliers, row); err != nil {
			result.Errors = append(result.Errors, RowError{Row: row, Error: err.Error()})
			continue
		}
		result.SuccessCount++
	}
	result.ErrorCount = len(result.Errors)
	return result, nil
}

func importRow(db *gorm.DB, suppliers *supplierRepo.SupplierRepository, row map[string]string) error {
	supplier, err := suppliers.GetByNameInsensitive(row["supplier_name"])
	if err != nil {
		return err
	}
	if supplier == nil {
		return fmt.Errorf("Supplier '%s' not found.", row["supplier_name"])
	}

	price, err := decimal.NewFromString(strings.TrimSpace(row["price"]))
	if err != nil {
		return fmt.Errorf("invalid price %q", row["price"])
	}
	quantity, err := strconv.Atoi(strings.TrimSpace(row["quantity"]))
	if err != nil {
		return fmt.Errorf("invalid quantity %q", row["quantity"])
	}
	if quantity < 0 {
		return fmt.Errorf("Quantity must be a positive integer.")
	}

	return db.Transaction(func(tx *gorm.DB) error {
		// Upsert key is the exact product name; the latest row wins on
		// description, price and supplier.
		var product entity.Product
		err := tx.Where("name = ?", row["name"]).First(&product).Error
		switch {
		case err == nil:
			product.Description = row["description"]
			product.Price = price
			product.SupplierID = supplier.SupplierID
			if err := tx.Model(&entity.Product{}).
				Where("product_id = ?", product.ProductID).
				Updates(map[string]interface{}{
					"description": product.Description,
					"price":       product.Price,
					"supplier_id": product.SupplierID,
				}).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			product = entity.Product{
				Name:        row["name"],
				Description: row["description"],
				Price:       price,
				SupplierID:  supplier.SupplierID,
			}
			if err := tx.Create(&product).Error; err != nil {
				return err
			}
		default:
			return err
		}

		return inventoryRepo.AddQuantity(tx, product.ProductID, quantity)
	})
}
