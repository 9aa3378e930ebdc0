// internal/api/handlers/product_handler.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/planwise/ibp-backend/internal/domain"
	"github.com/planwise/ibp-backend/internal/service"
)

type ProductHandler struct {
	service *service.ProductService
}

func NewProductHandler(service *service.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// List returns the product master ordered by code.
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products, "total": len(products)})
}

// Upsert inserts or overwrites a product keyed on its code.
func (h *ProductHandler) Upsert(c *gin.Context) {
	var input domain.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product payload"})
		return
	}

	product, err := h.service.Upsert(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

// Delete removes a product; an unknown code succeeds as a no-op.
func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("code")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": c.Param("code")})
}
