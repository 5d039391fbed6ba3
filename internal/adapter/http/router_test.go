package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenbowl/storefront-api/internal/adapter/store"
	domain "github.com/greenbowl/storefront-api/internal/entity"
	"github.com/greenbowl/storefront-api/internal/usecase"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer() *gin.Engine {
	products := store.NewMemory[domain.Product]()
	for _, p := range []domain.Product{
		{
			ID:            "acai-bowl",
			Name:          "Acai Bowl",
			Description:   "Acai blend topped with granola",
			Category:      domain.CategorySmoothieBowl,
			Price:         decimal.RequireFromString("12.50"),
			Currency:      "USD",
			InStock:       true,
			StockQuantity: 10,
			Tags:          []string{"gluten-free"},
		},
		{
			ID:            "oat-latte",
			Name:          "Oat Milk Latte",
			Description:   "Double shot with oat milk",
			Category:      domain.CategoryBeverages,
			Price:         decimal.RequireFromString("4.50"),
			Currency:      "USD",
			InStock:       true,
			StockQuantity: 20,
		},
	} {
		_ = products.Put(context.Background(), p.ID, p)
	}

	catalog := usecase.NewCatalog(products)
	carts := usecase.NewCartService(store.NewMemory[domain.Cart](), catalog)
	checkout := usecase.NewCheckoutService(
		usecase.CheckoutConfig{
			MerchantID:   "test-shop",
			TaxRate:      decimal.RequireFromString("0.08"),
			ShippingCost: decimal.RequireFromString("5.99"),
			SessionTTL:   30 * time.Minute,
		},
		store.NewMemory[domain.CheckoutSession](),
		store.NewMemory[domain.Order](),
		catalog, carts, nil,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)

	return NewRouter(
		NewProductHandler(catalog),
		NewCartHandler(carts),
		NewCheckoutHandler(checkout),
		NewOrderHandler(checkout),
		NewWebhookHandler(),
		"test-shop",
	)
}

func do(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed), "body: %s", w.Body.String())
	return w, parsed
}

func data(t *testing.T, resp map[string]any) map[string]any {
	t.Helper()
	require.Equal(t, true, resp["success"], "response: %v", resp)
	d, ok := resp["data"].(map[string]any)
	require.True(t, ok, "data: %v", resp["data"])
	return d
}

func TestHealthz(t *testing.T) {
	r := newTestServer()
	w, resp := do(t, r, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", resp["status"])
}

func TestDescriptor(t *testing.T) {
	r := newTestServer()
	w, resp := do(t, r, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "storefront-api", resp["name"])
	ucp, ok := resp["ucp"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "test-shop", ucp["merchantId"])
}

func TestListProducts(t *testing.T) {
	r := newTestServer()

	w, resp := do(t, r, http.MethodGet, "/api/products", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, float64(2), resp["count"])

	_, resp = do(t, r, http.MethodGet, "/api/products?category=beverages", "")
	assert.Equal(t, float64(1), resp["count"])

	_, resp = do(t, r, http.MethodGet, "/api/products?search=granola", "")
	assert.Equal(t, float64(1), resp["count"])

	w, resp = do(t, r, http.MethodGet, "/api/products?category=pizza", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, resp["success"])
	assert.Contains(t, resp["error"], "unknown category")
}

func TestGetProductNotFound(t *testing.T) {
	r := newTestServer()
	w, resp := do(t, r, http.MethodGet, "/api/products/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, false, resp["success"])
}

func TestProductAvailability(t *testing.T) {
	r := newTestServer()

	w, resp := do(t, r, http.MethodGet, "/api/products/acai-bowl/availability?quantity=5", "")
	assert.Equal(t, http.StatusOK, w.Code)
	d := data(t, resp)
	assert.Equal(t, true, d["available"])
	assert.Equal(t, float64(10), d["stockQuantity"])
	assert.Equal(t, float64(5), d["requestedQuantity"])

	_, resp = do(t, r, http.MethodGet, "/api/products/acai-bowl/availability?quantity=11", "")
	assert.Equal(t, false, data(t, resp)["available"])

	w, _ = do(t, r, http.MethodGet, "/api/products/acai-bowl/availability?quantity=zero", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCartCheckoutFlow(t *testing.T) {
	r := newTestServer()

	w, resp := do(t, r, http.MethodPost, "/api/cart", `{"userId":"user-1"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	cartID, _ := data(t, resp)["id"].(string)
	require.NotEmpty(t, cartID)

	w, resp = do(t, r, http.MethodPost, "/api/cart/"+cartID+"/items",
		`{"productId":"acai-bowl","quantity":2}`)
	require.Equal(t, http.StatusOK, w.Code)
	snap := data(t, resp)
	assert.Equal(t, "25", snap["subtotal"])
	assert.Equal(t, float64(2), snap["itemCount"])

	w, resp = do(t, r, http.MethodPost, "/api/ucp/checkout/sessions",
		`{"cartId":"`+cartID+`"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	sessionID, _ := data(t, resp)["sessionId"].(string)
	require.NotEmpty(t, sessionID)

	_, resp = do(t, r, http.MethodGet, "/api/ucp/checkout/sessions/"+sessionID, "")
	session := data(t, resp)
	assert.Equal(t, "pending", session["status"])
	assert.Equal(t, "2", session["tax"])
	assert.Equal(t, "32.99", session["total"])

	w, resp = do(t, r, http.MethodPost, "/api/ucp/checkout/sessions/"+sessionID+"/complete",
		`{"customerId":"cust-1"}`)
	require.Equal(t, http.StatusOK, w.Code)
	order := data(t, resp)
	orderID, _ := order["orderId"].(string)
	require.NotEmpty(t, orderID)
	assert.Equal(t, "pending_payment", order["status"])
	assert.Equal(t, "pending", order["paymentStatus"])

	// stock consumed
	_, resp = do(t, r, http.MethodGet, "/api/products/acai-bowl", "")
	assert.Equal(t, float64(8), data(t, resp)["stockQuantity"])

	// double completion is a client error
	w, resp = do(t, r, http.MethodPost, "/api/ucp/checkout/sessions/"+sessionID+"/complete", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, resp["success"])

	_, resp = do(t, r, http.MethodGet, "/api/ucp/orders?customerId=cust-1", "")
	assert.Equal(t, float64(1), resp["count"])

	w, resp = do(t, r, http.MethodPost, "/api/ucp/orders/"+orderID+"/payment",
		`{"paymentStatus":"completed"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "confirmed", data(t, resp)["status"])
}

func TestCartValidation(t *testing.T) {
	r := newTestServer()

	w, resp := do(t, r, http.MethodPost, "/api/cart", "")
	require.Equal(t, http.StatusCreated, w.Code)
	cartID, _ := data(t, resp)["id"].(string)

	w, _ = do(t, r, http.MethodPost, "/api/cart/"+cartID+"/items", `{"productId":"acai-bowl"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = do(t, r, http.MethodPost, "/api/cart/"+cartID+"/items",
		`{"productId":"acai-bowl","quantity":-1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// cumulative stock check across adds
	w, _ = do(t, r, http.MethodPost, "/api/cart/"+cartID+"/items",
		`{"productId":"acai-bowl","quantity":8}`)
	require.Equal(t, http.StatusOK, w.Code)
	w, resp = do(t, r, http.MethodPost, "/api/cart/"+cartID+"/items",
		`{"productId":"acai-bowl","quantity":3}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, resp["success"])

	w, _ = do(t, r, http.MethodPut, "/api/cart/"+cartID+"/items/acai-bowl",
		`{"quantity":-2}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, resp = do(t, r, http.MethodPut, "/api/cart/"+cartID+"/items/acai-bowl",
		`{"quantity":0}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), data(t, resp)["itemCount"])
}

func TestCartPurge(t *testing.T) {
	r := newTestServer()

	w, resp := do(t, r, http.MethodPost, "/api/cart", "")
	require.Equal(t, http.StatusCreated, w.Code)
	cartID, _ := data(t, resp)["id"].(string)

	w, resp = do(t, r, http.MethodDelete, "/api/cart/"+cartID+"?purge=true", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "cart deleted", resp["message"])

	w, _ = do(t, r, http.MethodGet, "/api/cart/"+cartID, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = do(t, r, http.MethodDelete, "/api/cart/"+cartID+"?purge=true", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateSessionRequiresItems(t *testing.T) {
	r := newTestServer()

	w, resp := do(t, r, http.MethodPost, "/api/ucp/checkout/sessions", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, resp["error"], "cartId or cartItems")

	// explicit cartItems path
	w, resp = do(t, r, http.MethodPost, "/api/ucp/checkout/sessions",
		`{"cartItems":[{"productId":"acai-bowl","name":"Acai Bowl","quantity":1,"unitPrice":"12.50","totalPrice":"12.50"}]}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.NotEmpty(t, data(t, resp)["sessionId"])
}

func TestOrdersRequireCustomerID(t *testing.T) {
	r := newTestServer()
	w, resp := do(t, r, http.MethodGet, "/api/ucp/orders", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, resp["error"], "customerId")
}

func TestCancelSession(t *testing.T) {
	r := newTestServer()

	w, resp := do(t, r, http.MethodPost, "/api/ucp/checkout/sessions",
		`{"cartItems":[{"productId":"oat-latte","name":"Oat Milk Latte","quantity":1,"unitPrice":"4.50","totalPrice":"4.50"}]}`)
	require.Equal(t, http.StatusCreated, w.Code)
	sessionID, _ := data(t, resp)["sessionId"].(string)

	w, resp = do(t, r, http.MethodPost, "/api/ucp/checkout/sessions/"+sessionID+"/cancel", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "checkout session cancelled", resp["message"])

	w, _ = do(t, r, http.MethodPost, "/api/ucp/checkout/sessions/missing/cancel", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestWebhookReceive(t *testing.T) {
	r := newTestServer()
	w, resp := do(t, r, http.MethodPost, "/api/ucp/webhooks",
		`{"eventType":"order.created","data":{"orderId":"x"}}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["success"])
}

func TestUnknownRoute(t *testing.T) {
	r := newTestServer()
	w, resp := do(t, r, http.MethodGet, "/api/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, "endpoint not found", resp["error"])
}
