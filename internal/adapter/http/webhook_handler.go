package http

import (
	"github.com/gin-gonic/gin"

	"github.com/greenbowl/storefront-api/internal/logging"
)

// WebhookHandler accepts inbound UCP events. They are logged and
// acknowledged; no signature verification.
type WebhookHandler struct{}

func NewWebhookHandler() *WebhookHandler {
	return &WebhookHandler{}
}

func (h *WebhookHandler) Receive(c *gin.Context) {
	var event map[string]any
	if err := c.ShouldBindJSON(&event); err != nil {
		respondBadRequest(c, "invalid webhook payload")
		return
	}

	logging.From(c).Info("inbound webhook", "event", event)
	respondMessage(c, "webhook received")
}
