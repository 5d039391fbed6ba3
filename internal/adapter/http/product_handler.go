package http

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	domain "github.com/greenbowl/storefront-api/internal/entity"
	"github.com/greenbowl/storefront-api/internal/usecase"
)

type ProductHandler struct {
	catalog *usecase.Catalog
}

func NewProductHandler(catalog *usecase.Catalog) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

// List handles GET /api/products with optional search=, category= or tags=
// (comma-separated). Search wins over category, category over tags.
func (h *ProductHandler) List(c *gin.Context) {
	var filter usecase.ProductFilter

	if search := c.Query("search"); search != "" {
		filter.Search = search
	} else if category := c.Query("category"); category != "" {
		cat := domain.Category(category)
		if !cat.Valid() {
			respondBadRequest(c, "unknown category: "+category)
			return
		}
		filter.Category = cat
	} else if tags := c.Query("tags"); tags != "" {
		for _, t := range strings.Split(tags, ",") {
			if t = strings.TrimSpace(t); t != "" {
				filter.Tags = append(filter.Tags, t)
			}
		}
	}

	products, err := h.catalog.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, products, len(products))
}

func (h *ProductHandler) Get(c *gin.Context) {
	product, err := h.catalog.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, product)
}

// Availability handles GET /api/products/:id/availability?quantity=.
func (h *ProductHandler) Availability(c *gin.Context) {
	id := c.Param("id")
	product, err := h.catalog.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	quantity := 1
	if q := c.Query("quantity"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n <= 0 {
			respondBadRequest(c, "quantity must be a positive integer")
			return
		}
		quantity = n
	}

	available, err := h.catalog.CheckAvailability(c.Request.Context(), id, quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{
		"productId":         id,
		"available":         available,
		"inStock":           product.InStock,
		"stockQuantity":     product.StockQuantity,
		"requestedQuantity": quantity,
	})
}
