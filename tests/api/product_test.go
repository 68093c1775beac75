package apitest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	productApi "inventory.GO/api/product"
	entity "inventory.GO/model/entity"
)

func productServer(t *testing.T) (*echo.Echo, *gorm.DB) {
	t.Helper()
	e := echo.New()
	db := newTestDB(t)
	productApi.RegisterProductRoutes(e.Group("/api"), db)
	return e, db
}

func TestProductAPI_CreateAndGet(t *testing.T) {
	e, db := productServer(t)
	s := seedSupplier(t, db, "Parts Inc")

	rec := doJSON(t, e, http.MethodPost, "/api/products", map[string]interface{}{
		"name":        "Hammer",
		"description": "Claw hammer",
		"price":       "12.50",
		"supplier_id": s.SupplierID,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST status = %d, want 201: %s", rec.Code, rec.Body)
	}
	created := decodeMap(t, rec)
	if created["name"] != "Hammer" {
		t.Errorf("name = %v", created["name"])
	}
	if created["supplier"] == nil {
		t.Error("supplier missing from create response")
	}

	id := int(created["id"].(float64))
	rec = doJSON(t, e, http.MethodGet, fmt.Sprintf("/api/products/%d", id), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET status = %d, want 200", rec.Code)
	}
	got := decodeMap(t, rec)
	if got["price"] != "12.5" && got["price"] != "12.50" {
		t.Errorf("price = %v", got["price"])
	}
}

func TestProductAPI_CreateInvalidSupplier(t *testing.T) {
	e, _ := productServer(t)

	rec := doJSON(t, e, http.MethodPost, "/api/products", map[string]interface{}{
		"name":        "Orphan",
		"price":       "1.00",
		"supplier_id": 999,
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	resp := decodeMap(t, rec)
	if resp["supplier_id"] != "Invalid supplier." {
		t.Errorf("error = %v", resp["supplier_id"])
	}
}

func TestProductAPI_ListPagination(t *testing.T) {
	e, db := productServer(t)
	s := seedSupplier(t, db, "Bulk Co")
	for i := 0; i < 15; i++ {
		seedProduct(t, db, fmt.Sprintf("Item %02d", i), "2.00", s.SupplierID)
	}

	rec := doJSON(t, e, http.MethodGet, "/api/products", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	resp := decodeMap(t, rec)
	if resp["count"] != float64(15) {
		t.Errorf("count = %v, want 15", resp["count"])
	}
	if resp["page_size"] != float64(10) {
		t.Errorf("page_size = %v, want default 10", resp["page_size"])
	}
	results := resp["results"].([]interface{})
	if len(results) != 10 {
		t.Errorf("page 1 len = %d, want 10", len(results))
	}

	rec = doJSON(t, e, http.MethodGet, "/api/products?page=2", nil)
	resp = decodeMap(t, rec)
	results = resp["results"].([]interface{})
	if len(results) != 5 {
		t.Errorf("page 2 len = %d, want 5", len(results))
	}

	// page_size is clamped to 50
	rec = doJSON(t, e, http.MethodGet, "/api/products?page_size=500", nil)
	resp = decodeMap(t, rec)
	if resp["page_size"] != float64(50) {
		t.Errorf("page_size = %v, want clamp to 50", resp["page_size"])
	}
}

func TestProductAPI_ListFilters(t *testing.T) {
	e, db := productServer(t)
	acme := seedSupplier(t, db, "Acme")
	other := seedSupplier(t, db, "Other")
	seedProduct(t, db, "Red Widget", "5.00", acme.SupplierID)
	seedProduct(t, db, "Blue Widget", "7.00", acme.SupplierID)
	seedProduct(t, db, "Gadget", "5.00", other.SupplierID)

	rec := doJSON(t, e, http.MethodGet, "/api/products?name=Red+Widget", nil)
	resp := decodeMap(t, rec)
	if resp["count"] != float64(1) {
		t.Errorf("name filter count = %v, want 1", resp["count"])
	}

	rec = doJSON(t, e, http.MethodGet, "/api/products?price=5.00", nil)
	resp = decodeMap(t, rec)
	if resp["count"] != float64(2) {
		t.Errorf("price filter count = %v, want 2", resp["count"])
	}

	rec = doJSON(t, e, http.MethodGet, "/api/products?supplier_name=Acme", nil)
	resp = decodeMap(t, rec)
	if resp["count"] != float64(2) {
		t.Errorf("supplier_name filter count = %v, want 2", resp["count"])
	}
}

func TestProductAPI_Update(t *testing.T) {
	e, db := productServer(t)
	s := seedSupplier(t, db, "Updates Inc")
	p := seedProduct(t, db, "Old Name", "1.00", s.SupplierID)

	rec := doJSON(t, e, http.MethodPut, fmt.Sprintf("/api/products/%d", p.ProductID), map[string]interface{}{
		"name":        "New Name",
		"description": "updated",
		"price":       "3.25",
		"supplier_id": s.SupplierID,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("PUT status = %d, want 200: %s", rec.Code, rec.Body)
	}

	var reloaded entity.Product
	if err := db.First(&reloaded, "product_id = ?", p.ProductID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Name != "New Name" {
		t.Errorf("name = %s", reloaded.Name)
	}
	if !reloaded.Price.Equal(mustDecimal(t, "3.25")) {
		t.Errorf("price = %s, want 3.25", reloaded.Price)
	}
}

func TestProductAPI_DeleteRemovesInventory(t *testing.T) {
	e, db := productServer(t)
	s := seedSupplier(t, db, "Del Co")
	p := seedProduct(t, db, "Ephemeral", "1.00", s.SupplierID)
	seedInventory(t, db, p.ProductID, 3)

	rec := doJSON(t, e, http.MethodDelete, fmt.Sprintf("/api/products/%d", p.ProductID), nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("DELETE status = %d, want 204", rec.Code)
	}

	var count int64
	db.Model(&entity.Inventory{}).Where("product_id = ?", p.ProductID).Count(&count)
	if count != 0 {
		t.Errorf("inventory rows = %d, want 0", count)
	}
}

func TestProductAPI_NotFound(t *testing.T) {
	e, _ := productServer(t)

	rec := doJSON(t, e, http.MethodGet, "/api/products/31337", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	var resp map[string]interface{}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["error"] != "Product not found" {
		t.Errorf("error = %v", resp["error"])
	}
}
