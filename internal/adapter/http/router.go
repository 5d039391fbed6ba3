package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/greenbowl/storefront-api/internal/adapter/http/middleware"
	"github.com/greenbowl/storefront-api/internal/logging"
)

func NewRouter(
	ph *ProductHandler,
	ch *CartHandler,
	ckh *CheckoutHandler,
	oh *OrderHandler,
	wh *WebhookHandler,
	merchantID string,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Metrics())
	r.Use(middleware.Logging(logging.New("http")))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy", "service": "storefront-api"})
	})
	// Prometheus endpoint (scraped by Prometheus)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"name":        "storefront-api",
			"description": "UCP-compliant vegan breakfast shopping API",
			"version":     "1.0.0",
			"endpoints": gin.H{
				"health":   "/healthz",
				"products": "/api/products",
				"cart":     "/api/cart",
				"ucp":      "/api/ucp",
			},
			"ucp": gin.H{
				"version":      "1.0",
				"merchantId":   merchantID,
				"capabilities": []string{"checkout", "order_management", "webhooks"},
			},
		})
	})

	api := r.Group("/api")
	{
		products := api.Group("/products")
		{
			products.GET("", ph.List)
			products.GET("/:id", ph.Get)
			products.GET("/:id/availability", ph.Availability)
		}

		cart := api.Group("/cart")
		{
			cart.POST("", ch.Create)
			cart.GET("/:cartId", ch.Get)
			cart.POST("/:cartId/items", ch.AddItem)
			cart.PUT("/:cartId/items/:productId", ch.SetQuantity)
			cart.DELETE("/:cartId/items/:productId", ch.RemoveItem)
			cart.DELETE("/:cartId", ch.Clear)
		}

		ucp := api.Group("/ucp")
		{
			ucp.POST("/checkout/sessions", ckh.CreateSession)
			ucp.GET("/checkout/sessions/:sessionId", ckh.GetSession)
			ucp.POST("/checkout/sessions/:sessionId/complete", ckh.Complete)
			ucp.POST("/checkout/sessions/:sessionId/cancel", ckh.Cancel)

			ucp.GET("/orders", oh.ListByCustomer)
			ucp.GET("/orders/:orderId", oh.Get)
			ucp.POST("/orders/:orderId/status", oh.UpdateStatus)
			ucp.POST("/orders/:orderId/payment", oh.UpdatePayment)
			ucp.POST("/orders/:orderId/fulfillment", oh.UpdateFulfillment)
			ucp.POST("/orders/:orderId/cancel", oh.Cancel)

			ucp.POST("/webhooks", wh.Receive)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{"success": false, "error": "endpoint not found"})
	})

	return r
}
