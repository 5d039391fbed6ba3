package http

import (
	"github.com/gin-gonic/gin"

	domain "github.com/greenbowl/storefront-api/internal/entity"
	"github.com/greenbowl/storefront-api/internal/usecase"
)

type CheckoutHandler struct {
	checkout *usecase.CheckoutService
}

func NewCheckoutHandler(checkout *usecase.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout}
}

type createSessionReq struct {
	CartID    string               `json:"cartId"`
	CartItems []domain.SessionItem `json:"cartItems"`
	Currency  string               `json:"currency"`
	Metadata  map[string]any       `json:"metadata"`
}

// CreateSession handles POST /api/ucp/checkout/sessions. The caller
// provides either a cartId, whose priced snapshot is frozen in, or an
// explicit cartItems list.
func (h *CheckoutHandler) CreateSession(c *gin.Context) {
	var req createSessionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	items := req.CartItems
	if req.CartID != "" {
		var err error
		items, err = h.checkout.ItemsFromCart(c.Request.Context(), req.CartID)
		if err != nil {
			respondError(c, err)
			return
		}
	} else if len(items) == 0 {
		respondBadRequest(c, "either cartId or cartItems must be provided")
		return
	}

	resp, err := h.checkout.CreateSession(c.Request.Context(), usecase.CreateSessionInput{
		Items:    items,
		Currency: req.Currency,
		Metadata: req.Metadata,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, resp)
}

func (h *CheckoutHandler) GetSession(c *gin.Context) {
	session, err := h.checkout.GetSession(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, session)
}

type completeCheckoutReq struct {
	CustomerID string `json:"customerId"`
}

func (h *CheckoutHandler) Complete(c *gin.Context) {
	var req completeCheckoutReq
	_ = c.ShouldBindJSON(&req) // body optional

	order, err := h.checkout.CompleteCheckout(c.Request.Context(), c.Param("sessionId"), req.CustomerID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, order)
}

func (h *CheckoutHandler) Cancel(c *gin.Context) {
	if err := h.checkout.CancelSession(c.Request.Context(), c.Param("sessionId")); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "checkout session cancelled")
}
