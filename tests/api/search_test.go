package apitest

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	searchApi "inventory.GO/api/search"
)

func TestSearchAPI_QueryRequired(t *testing.T) {
	e := echo.New()
	db := newTestDB(t)
	searchApi.RegisterSearchRoutes(e.Group("/api"), db)

	rec := doJSON(t, e, http.MethodGet, "/api/products/search", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	resp := decodeMap(t, rec)
	if resp["error"] != "q required" {
		t.Errorf("error = %v", resp["error"])
	}
}
