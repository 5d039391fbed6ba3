package kafka

import (
	"context"
	"errors"
	"log/slog"

	domain "github.com/greenbowl/storefront-api/internal/entity"
	"github.com/greenbowl/storefront-api/internal/usecase"
)

// PaymentStatusHandler applies provider status messages through the
// checkout service, which owns the confirm/cancel side effects and events.
type PaymentStatusHandler struct {
	Checkout *usecase.CheckoutService
	Log      *slog.Logger
}

func NewPaymentStatusHandler(checkout *usecase.CheckoutService, log *slog.Logger) *PaymentStatusHandler {
	return &PaymentStatusHandler{Checkout: checkout, Log: log}
}

func (h *PaymentStatusHandler) Handle(ctx context.Context, msg PaymentStatusChangedMsg) error {
	_, err := h.Checkout.UpdatePaymentStatus(ctx, msg.OrderID, domain.PaymentStatus(msg.PaymentStatus))
	if errors.Is(err, usecase.ErrNotFound) || errors.Is(err, usecase.ErrInvalidInput) {
		// not our order, or a status value we do not know; drop it
		h.Log.Warn("payment status message dropped", "order_id", msg.OrderID,
			"payment_status", msg.PaymentStatus, "error", err)
		return nil
	}
	return err
}
