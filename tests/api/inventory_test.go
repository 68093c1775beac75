package apitest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	inventoryApi "inventory.GO/api/inventory"
	entity "inventory.GO/model/entity"
)

func inventoryServer(t *testing.T) (*echo.Echo, *gorm.DB) {
	t.Helper()
	e := echo.New()
	db := newTestDB(t)
	inventoryApi.RegisterInventoryRoutes(e.Group("/api"), db)
	return e, db
}

func TestInventoryAPI_CreateAndGet(t *testing.T) {
	e, db := inventoryServer(t)
	s := seedSupplier(t, db, "Stock Co")
	p := seedProduct(t, db, "Screw", "0.10", s.SupplierID)

	rec := doJSON(t, e, http.MethodPost, "/api/inventory", map[string]interface{}{
		"product_id": p.ProductID,
		"quantity":   100,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST status = %d, want 201: %s", rec.Code, rec.Body)
	}
	created := decodeMap(t, rec)
	id := int(created["id"].(float64))

	rec = doJSON(t, e, http.MethodGet, fmt.Sprintf("/api/inventory/%d", id), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET status = %d, want 200", rec.Code)
	}
	got := decodeMap(t, rec)
	if got["quantity"] != float64(100) {
		t.Errorf("quantity = %v, want 100", got["quantity"])
	}
}

func TestInventoryAPI_NegativeQuantityRejected(t *testing.T) {
	e, db := inventoryServer(t)
	s := seedSupplier(t, db, "Neg Co")
	p := seedProduct(t, db, "Thing", "1.00", s.SupplierID)

	rec := doJSON(t, e, http.MethodPost, "/api/inventory", map[string]interface{}{
		"product_id": p.ProductID,
		"quantity":   -1,
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("POST status = %d, want 400", rec.Code)
	}
	resp := decodeMap(t, rec)
	if resp["quantity"] != "Ensure this value is greater than or equal to 0." {
		t.Errorf("error = %v", resp["quantity"])
	}

	inv := seedInventory(t, db, p.ProductID, 5)
	rec = doJSON(t, e, http.MethodPut, fmt.Sprintf("/api/inventory/%d", inv.InventoryID), map[string]interface{}{
		"quantity": -3,
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("PUT status = %d, want 400", rec.Code)
	}
}

func TestInventoryAPI_DuplicateProductRejected(t *testing.T) {
	e, db := inventoryServer(t)
	s := seedSupplier(t, db, "Dup Co")
	p := seedProduct(t, db, "Single", "1.00", s.SupplierID)
	seedInventory(t, db, p.ProductID, 1)

	rec := doJSON(t, e, http.MethodPost, "/api/inventory", map[string]interface{}{
		"product_id": p.ProductID,
		"quantity":   2,
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("duplicate POST status = %d, want 400", rec.Code)
	}
}

func TestInventoryAPI_InvalidProduct(t *testing.T) {
	e, _ := inventoryServer(t)

	rec := doJSON(t, e, http.MethodPost, "/api/inventory", map[string]interface{}{
		"product_id": 777,
		"quantity":   1,
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	resp := decodeMap(t, rec)
	if resp["product_id"] != "Invalid product." {
		t.Errorf("error = %v", resp["product_id"])
	}
}

func TestInventoryAPI_ListIncludesProduct(t *testing.T) {
	e, db := inventoryServer(t)
	s := seedSupplier(t, db, "List Co")
	p := seedProduct(t, db, "Listed", "2.00", s.SupplierID)
	seedInventory(t, db, p.ProductID, 7)

	rec := doJSON(t, e, http.MethodGet, "/api/inventory", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var list []map[string]interface{}
	if err := json.NewDecoder(rec.Body).Decode(&list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("len = %d, want 1", len(list))
	}
	product, ok := list[0]["product"].(map[string]interface{})
	if !ok || product["name"] != "Listed" {
		t.Errorf("product = %v", list[0]["product"])
	}
}

func TestInventoryAPI_UpdateAndDelete(t *testing.T) {
	e, db := inventoryServer(t)
	s := seedSupplier(t, db, "UD Co")
	p := seedProduct(t, db, "Mutable", "2.00", s.SupplierID)
	inv := seedInventory(t, db, p.ProductID, 1)

	rec := doJSON(t, e, http.MethodPut, fmt.Sprintf("/api/inventory/%d", inv.InventoryID), map[string]interface{}{
		"quantity": 42,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("PUT status = %d, want 200: %s", rec.Code, rec.Body)
	}
	var reloaded entity.Inventory
	if err := db.First(&reloaded, "inventory_id = ?", inv.InventoryID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Quantity != 42 {
		t.Errorf("quantity = %d, want 42", reloaded.Quantity)
	}

	rec = doJSON(t, e, http.MethodDelete, fmt.Sprintf("/api/inventory/%d", inv.InventoryID), nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("DELETE status = %d, want 204", rec.Code)
	}
	rec = doJSON(t, e, http.MethodGet, fmt.Sprintf("/api/inventory/%d", inv.InventoryID), nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("GET after delete = %d, want 404", rec.Code)
	}
}
