package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dondigital/storefront/internal/services"
)

// CreateProductRequest is the JSON body of POST /products.
type CreateProductRequest struct {
	Tier        string  `json:"tier"`
	RobuxAmount int     `json:"robuxAmount"`
	Price       float64 `json:"price"`
	PriceLabel  string  `json:"priceLabel"`
	Icon        string  `json:"icon"`
	TotalSales  int     `json:"totalSales"`
}

// UpdateProductRequest is the JSON body of PUT /products. TotalSales is
// written only when explicitly provided.
type UpdateProductRequest struct {
	ID          uint    `json:"id"`
	Tier        string  `json:"tier"`
	RobuxAmount int     `json:"robuxAmount"`
	Price       float64 `json:"price"`
	PriceLabel  string  `json:"priceLabel"`
	Icon        string  `json:"icon"`
	TotalSales  *int    `json:"totalSales"`
}

// UpdateSalesRequest is the JSON body of PATCH /products, the narrow-purpose
// sales-counter update.
type UpdateSalesRequest struct {
	ID         uint `json:"id"`
	TotalSales *int `json:"totalSales"`
}

// ListProductsHandler serves GET /products: all tiers ordered by Robux
// amount, annotated with live stock state, plus the current balance.
func ListProductsHandler(svc *services.ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, currentRobux, err := svc.Catalog()
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success":      true,
			"data":         products,
			"currentRobux": currentRobux,
		})
	}
}

// CreateProductHandler serves POST /products. No duplicate-tier check.
func CreateProductHandler(svc *services.ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidation(c, "Invalid request body: "+err.Error())
			return
		}

		product, err := svc.CreateProduct(req.Tier, req.RobuxAmount, req.Price, req.PriceLabel, req.Icon, req.TotalSales)
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusCreated, product)
	}
}

// UpdateProductHandler serves PUT /products: the full update by id.
func UpdateProductHandler(svc *services.ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidation(c, "Invalid request body: "+err.Error())
			return
		}
		if req.ID == 0 {
			respondValidation(c, "Product ID is required")
			return
		}

		product, err := svc.UpdateProduct(req.ID, req.Tier, req.RobuxAmount, req.Price, req.PriceLabel, req.Icon, req.TotalSales)
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, product)
	}
}

// UpdateProductSalesHandler serves PATCH /products.
func UpdateProductSalesHandler(svc *services.ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateSalesRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidation(c, "Invalid request body: "+err.Error())
			return
		}
		if req.ID == 0 || req.TotalSales == nil {
			respondValidation(c, "Product ID and totalSales are required")
			return
		}

		product, err := svc.UpdateSales(req.ID, *req.TotalSales)
		if err != nil {
			respondError(c, err)
			return
		}
		respondDataMessage(c, http.StatusOK, product, "Total sales updated successfully")
	}
}

// DeleteProductHandler serves DELETE /products?id=. Unknown ids still report
// success.
func DeleteProductHandler(svc *services.ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		idParam := c.Query("id")
		if idParam == "" {
			respondValidation(c, "Product ID is required")
			return
		}
		id, err := strconv.ParseUint(idParam, 10, 64)
		if err != nil {
			respondValidation(c, "Product ID must be numeric")
			return
		}

		if err := svc.DeleteProduct(uint(id)); err != nil {
			respondError(c, err)
			return
		}
		respondMessage(c, http.StatusOK, "Product deleted successfully")
	}
}
