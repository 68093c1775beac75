package apitest

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	importApi "inventory.GO/api/importcsv"
	entity "inventory.GO/model/entity"
)

func importServer(t *testing.T) (*echo.Echo, *gorm.DB) {
	t.Helper()
	e := echo.New()
	db := newTestDB(t)
	importApi.RegisterImportRoutes(e.Group("/api"), db)
	return e, db
}

func uploadCSV(t *testing.T, e *echo.Echo, csv string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", "products.csv")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write([]byte(csv)); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	w.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/products/upload-csv", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestImportAPI_Success(t *testing.T) {
	e, db := importServer(t)
	seedSupplier(t, db, "Acme")

	csv := "name,description,price,supplier_name,quantity\n" +
		"Widget,A widget,9.99,Acme,10\n" +
		"Gadget,A gadget,19.99,Acme,3\n"
	rec := uploadCSV(t, e, csv)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body)
	}
	resp := decodeMap(t, rec)
	if resp["message"] != "File processed successfully" {
		t.Errorf("message = %v", resp["message"])
	}
	if resp["success_count"] != float64(2) {
		t.Errorf("success_count = %v, want 2", resp["success_count"])
	}
	if resp["error_count"] != float64(0) {
		t.Errorf("error_count = %v, want 0", resp["error_count"])
	}
	if rec.Header().Get("X-Request-Duration-ms") == "" {
		t.Error("X-Request-Duration-ms header missing")
	}

	var count int64
	db.Model(&entity.Product{}).Count(&count)
	if count != 2 {
		t.Errorf("products = %d, want 2", count)
	}
}

func TestImportAPI_NoFile(t *testing.T) {
	e, _ := importServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/products/upload-csv", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var resp map[string]interface{}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["error"] != "No file provided. Please upload a CSV file." {
		t.Errorf("error = %v", resp["error"])
	}
}

func TestImportAPI_MissingColumns(t *testing.T) {
	e, _ := importServer(t)

	rec := uploadCSV(t, e, "name,price,supplier_name,quantity\nWidget,9.99,Acme,10\n")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", rec.Code, rec.Body)
	}
	resp := decodeMap(t, rec)
	errMsg, _ := resp["error"].(string)
	if !strings.Contains(errMsg, "Missing required columns") || !strings.Contains(errMsg, "description") {
		t.Errorf("error = %q", errMsg)
	}
}

func TestImportAPI_RowErrorsDoNotAbortOthers(t *testing.T) {
	e, db := importServer(t)
	seedSupplier(t, db, "Acme")

	csv := "name,description,price,supplier_name,quantity\n" +
		"Good,ok,1.00,Acme,5\n" +
		"Bad,missing supplier,1.00,Nobody,5\n" +
		"Ugly,negative,1.00,Acme,-2\n"
	rec := uploadCSV(t, e, csv)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body)
	}
	resp := decodeMap(t, rec)
	if resp["success_count"] != float64(1) {
		t.Errorf("success_count = %v, want 1", resp["success_count"])
	}
	if resp["error_count"] != float64(2) {
		t.Errorf("error_count = %v, want 2", resp["error_count"])
	}
	rowErrors := resp["errors"].([]interface{})
	first := rowErrors[0].(map[string]interface{})
	if first["error"] != "Supplier 'Nobody' not found." {
		t.Errorf("row error = %v", first["error"])
	}
	second := rowErrors[1].(map[string]interface{})
	if second["error"] != "Quantity must be a positive integer." {
		t.Errorf("row error = %v", second["error"])
	}
}

func TestImportAPI_ReimportIsAdditive(t *testing.T) {
	e, db := importServer(t)
	seedSupplier(t, db, "Acme")

	head := "name,description,price,supplier_name,quantity\n"
	rec := uploadCSV(t, e, head+"Widget,old desc,9.99,Acme,10\n")
	if rec.Code != http.StatusOK {
		t.Fatalf("first import status = %d: %s", rec.Code, rec.Body)
	}
	rec = uploadCSV(t, e, head+"Widget,new desc,12.00,Acme,5\n")
	if rec.Code != http.StatusOK {
		t.Fatalf("second import status = %d: %s", rec.Code, rec.Body)
	}

	var products []entity.Product
	db.Find(&products)
	if len(products) != 1 {
		t.Fatalf("products = %d, want 1 (upsert by name)", len(products))
	}
	if products[0].Description != "new desc" {
		t.Errorf("description = %q, want latest row to win", products[0].Description)
	}
	if !products[0].Price.Equal(mustDecimal(t, "12.00")) {
		t.Errorf("price = %s, want 12.00", products[0].Price)
	}

	var inv entity.Inventory
	if err := db.First(&inv, "product_id = ?", products[0].ProductID).Error; err != nil {
		t.Fatalf("load inventory: %v", err)
	}
	if inv.Quantity != 15 {
		t.Errorf("quantity = %d, want 10+5=15", inv.Quantity)
	}
}
