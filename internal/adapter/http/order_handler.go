package http

import (
	"github.com/gin-gonic/gin"

	domain "github.com/greenbowl/storefront-api/internal/entity"
	"github.com/greenbowl/storefront-api/internal/usecase"
)

type OrderHandler struct {
	checkout *usecase.CheckoutService
}

func NewOrderHandler(checkout *usecase.CheckoutService) *OrderHandler {
	return &OrderHandler{checkout: checkout}
}

func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.checkout.GetOrder(c.Request.Context(), c.Param("orderId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, order)
}

// ListByCustomer handles GET /api/ucp/orders?customerId=; the parameter is
// required.
func (h *OrderHandler) ListByCustomer(c *gin.Context) {
	customerID := c.Query("customerId")
	if customerID == "" {
		respondBadRequest(c, "customerId query parameter is required")
		return
	}

	orders, err := h.checkout.CustomerOrders(c.Request.Context(), customerID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, orders, len(orders))
}

type updateStatusReq struct {
	Status string `json:"status" binding:"required"`
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req updateStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "status is required")
		return
	}

	order, err := h.checkout.UpdateOrderStatus(c.Request.Context(), c.Param("orderId"), domain.OrderStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, order)
}

type updatePaymentReq struct {
	PaymentStatus string `json:"paymentStatus" binding:"required"`
}

func (h *OrderHandler) UpdatePayment(c *gin.Context) {
	var req updatePaymentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "paymentStatus is required")
		return
	}

	order, err := h.checkout.UpdatePaymentStatus(c.Request.Context(), c.Param("orderId"), domain.PaymentStatus(req.PaymentStatus))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, order)
}

type updateFulfillmentReq struct {
	FulfillmentStatus string `json:"fulfillmentStatus" binding:"required"`
}

func (h *OrderHandler) UpdateFulfillment(c *gin.Context) {
	var req updateFulfillmentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "fulfillmentStatus is required")
		return
	}

	order, err := h.checkout.UpdateFulfillmentStatus(c.Request.Context(), c.Param("orderId"), domain.FulfillmentStatus(req.FulfillmentStatus))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, order)
}

func (h *OrderHandler) Cancel(c *gin.Context) {
	order, err := h.checkout.CancelOrder(c.Request.Context(), c.Param("orderId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, order)
}
