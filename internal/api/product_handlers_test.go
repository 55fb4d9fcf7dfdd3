package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/dondigital/storefront/internal/models"
)

func seedProduct(t *testing.T, env *testEnv, tier string, robux int) *models.Product {
	t.Helper()
	product := &models.Product{
		Tier:        tier,
		RobuxAmount: robux,
		Price:       float64(robux),
		PriceLabel:  "₱" + tier,
		Icon:        models.DefaultProductIcon,
	}
	if err := env.productRepo.Create(product); err != nil {
		t.Fatalf("Failed to seed product: %v", err)
	}
	return product
}

func TestListProductsStockAnnotation(t *testing.T) {
	env := newTestEnv(t)
	seedProduct(t, env, "Small", 100)
	seedProduct(t, env, "Large", 1000)
	env.setBalance(t, 500)

	w := env.do(t, http.MethodGet, "/api/v1/products", nil)
	assertStatus(t, w, http.StatusOK)

	var resp struct {
		Data         []models.Product `json:"data"`
		CurrentRobux int              `json:"currentRobux"`
	}
	decodeJSON(t, w, &resp)
	if resp.CurrentRobux != 500 {
		t.Errorf("Expected currentRobux 500, got %d", resp.CurrentRobux)
	}
	if len(resp.Data) != 2 {
		t.Fatalf("Expected 2 products, got %d", len(resp.Data))
	}
	// Ordered by robux_amount ascending; in_stock iff amount <= balance.
	if resp.Data[0].Tier != "Small" || !resp.Data[0].InStock {
		t.Errorf("Expected Small first and in stock, got %+v", resp.Data[0])
	}
	if resp.Data[1].InStock {
		t.Errorf("Expected Large to be out of stock at balance 500")
	}

	// Boundary: a product costing exactly the balance is in stock.
	seedProduct(t, env, "Exact", 500)
	w = env.do(t, http.MethodGet, "/api/v1/products", nil)
	decodeJSON(t, w, &resp)
	for _, p := range resp.Data {
		if p.Tier == "Exact" && !p.InStock {
			t.Errorf("Expected product at exactly the balance to be in stock")
		}
	}
}

func TestCreateProductDefaults(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/products", map[string]any{
		"tier": "Mega", "robuxAmount": 2000, "price": 1700.0, "priceLabel": "₱1,700",
	})
	assertStatus(t, w, http.StatusCreated)

	var resp struct {
		Data models.Product `json:"data"`
	}
	decodeJSON(t, w, &resp)
	if resp.Data.Icon != models.DefaultProductIcon {
		t.Errorf("Expected default icon, got %q", resp.Data.Icon)
	}
	if resp.Data.TotalSales != 0 {
		t.Errorf("Expected total_sales default 0, got %d", resp.Data.TotalSales)
	}
}

func TestUpdateProductKeepsSalesWhenOmitted(t *testing.T) {
	env := newTestEnv(t)
	product := seedProduct(t, env, "Small", 100)
	env.db.Model(product).Update("total_sales", 7)

	w := env.do(t, http.MethodPut, "/api/v1/products", map[string]any{
		"id": product.ID, "tier": "Small+", "robuxAmount": 120, "price": 110.0,
		"priceLabel": "₱110", "icon": "★",
	})
	assertStatus(t, w, http.StatusOK)

	var resp struct {
		Data models.Product `json:"data"`
	}
	decodeJSON(t, w, &resp)
	if resp.Data.Tier != "Small+" || resp.Data.RobuxAmount != 120 {
		t.Errorf("Expected full update applied, got %+v", resp.Data)
	}
	if resp.Data.TotalSales != 7 {
		t.Errorf("Expected total_sales untouched when omitted, got %d", resp.Data.TotalSales)
	}

	sales := 42
	w = env.do(t, http.MethodPut, "/api/v1/products", map[string]any{
		"id": product.ID, "tier": "Small+", "robuxAmount": 120, "price": 110.0,
		"priceLabel": "₱110", "icon": "★", "totalSales": sales,
	})
	assertStatus(t, w, http.StatusOK)
	decodeJSON(t, w, &resp)
	if resp.Data.TotalSales != 42 {
		t.Errorf("Expected total_sales 42 when provided, got %d", resp.Data.TotalSales)
	}
}

func TestPatchProductSales(t *testing.T) {
	env := newTestEnv(t)
	product := seedProduct(t, env, "Small", 100)

	w := env.do(t, http.MethodPatch, "/api/v1/products", map[string]any{"id": product.ID})
	assertStatus(t, w, http.StatusBadRequest)

	w = env.do(t, http.MethodPatch, "/api/v1/products", map[string]any{"totalSales": 5})
	assertStatus(t, w, http.StatusBadRequest)

	w = env.do(t, http.MethodPatch, "/api/v1/products", map[string]any{"id": product.ID, "totalSales": 5})
	assertStatus(t, w, http.StatusOK)

	var resp struct {
		Data models.Product `json:"data"`
	}
	decodeJSON(t, w, &resp)
	if resp.Data.TotalSales != 5 {
		t.Errorf("Expected total_sales 5, got %d", resp.Data.TotalSales)
	}
	if resp.Data.Tier != "Small" {
		t.Errorf("PATCH must not touch other fields, got tier %q", resp.Data.Tier)
	}
}

func TestDeleteProduct(t *testing.T) {
	env := newTestEnv(t)
	product := seedProduct(t, env, "Small", 100)

	w := env.do(t, http.MethodDelete, "/api/v1/products", nil)
	assertStatus(t, w, http.StatusBadRequest)

	w = env.do(t, http.MethodDelete, "/api/v1/products?id=424242", nil)
	assertStatus(t, w, http.StatusOK)

	w = env.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/products?id=%d", product.ID), nil)
	assertStatus(t, w, http.StatusOK)

	if _, err := env.productRepo.GetByID(product.ID); err == nil {
		t.Error("Expected product to be gone after delete")
	}
}

func TestListProductsWithoutStatisticsFails(t *testing.T) {
	env := newTestEnv(t)
	seedProduct(t, env, "Small", 100)

	// Removing the singleton makes the catalog unservable: stock cannot be
	// derived without a balance.
	if err := env.db.Delete(&models.Statistics{}, models.StatisticsID).Error; err != nil {
		t.Fatalf("Failed to delete statistics row: %v", err)
	}

	w := env.do(t, http.MethodGet, "/api/v1/products", nil)
	assertStatus(t, w, http.StatusInternalServerError)
}
