package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/developer-prabhu-charan/SS-Fresh-Supermarket/internal/domain"
	"github.com/developer-prabhu-charan/SS-Fresh-Supermarket/internal/service"
)

// HandleCreateProduct handles POST /api/products
func HandleCreateProduct(products *service.ProductService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.CreateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadBody(c)
			return
		}

		product, err := products.Create(c.Request.Context(), req)
		if err != nil {
			respondError(c, logger, err, "Failed to create product")
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

// HandleListProducts handles GET /api/products?search=&category=
func HandleListProducts(products *service.ProductService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := domain.ProductFilter{
			Search:   c.Query("search"),
			Category: c.Query("category"),
		}
		list, err := products.List(c.Request.Context(), filter)
		if err != nil {
			respondError(c, logger, err, "Failed to list products")
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// HandleGetProduct handles GET /api/products/:id
func HandleGetProduct(products *service.ProductService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := products.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, logger, err, "Failed to get product")
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

// HandleUpdateProduct handles PUT and PATCH /api/products/:id. Only whitelisted
// fields are applied; anything else in the body is ignored.
func HandleUpdateProduct(products *service.ProductService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var raw map[string]interface{}
		if err := c.ShouldBindJSON(&raw); err != nil {
			respondBadBody(c)
			return
		}

		product, err := products.Update(c.Request.Context(), c.Param("id"), raw)
		if err != nil {
			respondError(c, logger, err, "Failed to update product")
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

// HandleDeleteProduct handles DELETE /api/products/:id
func HandleDeleteProduct(products *service.ProductService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := products.Delete(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, logger, err, "Failed to delete product")
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

type restockRequest struct {
	Quantity int `json:"quantity"`
}

// HandleRestockProduct handles POST /api/products/:id/restock
func HandleRestockProduct(products *service.ProductService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req restockRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadBody(c)
			return
		}

		product, err := products.Restock(c.Request.Context(), c.Param("id"), req.Quantity)
		if err != nil {
			respondError(c, logger, err, "Failed to restock product")
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

// HandleDiscontinueProduct handles POST /api/products/:id/discontinue
func HandleDiscontinueProduct(products *service.ProductService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := products.Discontinue(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, logger, err, "Failed to discontinue product")
			return
		}
		c.JSON(http.StatusOK, product)
	}
}
