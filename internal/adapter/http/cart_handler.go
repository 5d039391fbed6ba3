package http

import (
	"github.com/gin-gonic/gin"

	"github.com/greenbowl/storefront-api/internal/usecase"
)

type CartHandler struct {
	carts *usecase.CartService
}

func NewCartHandler(carts *usecase.CartService) *CartHandler {
	return &CartHandler{carts: carts}
}

type createCartReq struct {
	UserID string `json:"userId"`
}

func (h *CartHandler) Create(c *gin.Context) {
	var req createCartReq
	_ = c.ShouldBindJSON(&req) // body optional

	cart, err := h.carts.Create(c.Request.Context(), req.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, cart)
}

// Get returns the priced snapshot, not the raw cart.
func (h *CartHandler) Get(c *gin.Context) {
	snap, err := h.carts.Snapshot(c.Request.Context(), c.Param("cartId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, snap)
}

type addItemReq struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

func (h *CartHandler) AddItem(c *gin.Context) {
	var req addItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "productId and a positive quantity are required")
		return
	}

	cartID := c.Param("cartId")
	if _, err := h.carts.AddItem(c.Request.Context(), cartID, req.ProductID, req.Quantity); err != nil {
		respondError(c, err)
		return
	}
	h.respondSnapshot(c, cartID)
}

type setQuantityReq struct {
	Quantity *int `json:"quantity" binding:"required"`
}

func (h *CartHandler) SetQuantity(c *gin.Context) {
	var req setQuantityReq
	if err := c.ShouldBindJSON(&req); err != nil || *req.Quantity < 0 {
		respondBadRequest(c, "quantity must be a non-negative integer")
		return
	}

	cartID := c.Param("cartId")
	if _, err := h.carts.SetQuantity(c.Request.Context(), cartID, c.Param("productId"), *req.Quantity); err != nil {
		respondError(c, err)
		return
	}
	h.respondSnapshot(c, cartID)
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	cartID := c.Param("cartId")
	if _, err := h.carts.RemoveItem(c.Request.Context(), cartID, c.Param("productId")); err != nil {
		respondError(c, err)
		return
	}
	h.respondSnapshot(c, cartID)
}

// Clear empties the cart; with ?purge=true the cart itself is deleted.
func (h *CartHandler) Clear(c *gin.Context) {
	cartID := c.Param("cartId")

	if c.Query("purge") == "true" {
		existed, err := h.carts.Delete(c.Request.Context(), cartID)
		if err != nil {
			respondError(c, err)
			return
		}
		if !existed {
			respondError(c, usecase.ErrNotFound)
			return
		}
		respondMessage(c, "cart deleted")
		return
	}

	if _, err := h.carts.Clear(c.Request.Context(), cartID); err != nil {
		respondError(c, err)
		return
	}
	h.respondSnapshot(c, cartID)
}

func (h *CartHandler) respondSnapshot(c *gin.Context, cartID string) {
	snap, err := h.carts.Snapshot(c.Request.Context(), cartID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, snap)
}
