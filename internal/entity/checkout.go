package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type SessionStatus string

const (
	SessionPending SessionStatus = "pending"
	// SessionActive is reachable in the data model but no operation sets it;
	// the hosted-checkout transition that would was never built. Completion
	// accepts it.
	SessionActive    SessionStatus = "active"
	SessionCompleted SessionStatus = "completed"
	SessionCancelled SessionStatus = "cancelled"
	SessionExpired   SessionStatus = "expired"
)

// Terminal reports whether no transition may leave the status.
func (s SessionStatus) Terminal() bool {
	return s == SessionCompleted || s == SessionCancelled || s == SessionExpired
}

type OrderStatus string

const (
	OrderPendingPayment    OrderStatus = "pending_payment"
	OrderPaymentProcessing OrderStatus = "payment_processing"
	OrderConfirmed         OrderStatus = "confirmed"
	OrderProcessing        OrderStatus = "processing"
	OrderShipped           OrderStatus = "shipped"
	OrderDelivered         OrderStatus = "delivered"
	OrderCancelled         OrderStatus = "cancelled"
	OrderRefunded          OrderStatus = "refunded"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPendingPayment, OrderPaymentProcessing, OrderConfirmed, OrderProcessing,
		OrderShipped, OrderDelivered, OrderCancelled, OrderRefunded:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentPending    PaymentStatus = "pending"
	PaymentProcessing PaymentStatus = "processing"
	PaymentCompleted  PaymentStatus = "completed"
	PaymentFailed     PaymentStatus = "failed"
	PaymentRefunded   PaymentStatus = "refunded"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentProcessing, PaymentCompleted, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

type FulfillmentStatus string

const (
	FulfillmentPending    FulfillmentStatus = "pending"
	FulfillmentProcessing FulfillmentStatus = "processing"
	FulfillmentShipped    FulfillmentStatus = "shipped"
	FulfillmentDelivered  FulfillmentStatus = "delivered"
	FulfillmentCancelled  FulfillmentStatus = "cancelled"
)

func (s FulfillmentStatus) Valid() bool {
	switch s {
	case FulfillmentPending, FulfillmentProcessing, FulfillmentShipped,
		FulfillmentDelivered, FulfillmentCancelled:
		return true
	}
	return false
}

// SessionItem is a priced line frozen into a checkout session. It is a copy,
// not a live reference into any cart.
type SessionItem struct {
	ProductID   string          `json:"productId"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
	ImageURL    string          `json:"imageUrl,omitempty"`
	Metadata    map[string]any  `json:"metadata,omitempty"`
}

type CheckoutSession struct {
	SessionID  string          `json:"sessionId"`
	MerchantID string          `json:"merchantId"`
	Status     SessionStatus   `json:"status"`
	CartItems  []SessionItem   `json:"cartItems"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	Tax        decimal.Decimal `json:"tax"`
	Shipping   decimal.Decimal `json:"shipping"`
	Total      decimal.Decimal `json:"total"`
	Currency   string          `json:"currency"`
	CreatedAt  time.Time       `json:"createdAt"`
	ExpiresAt  time.Time       `json:"expiresAt"`
	Metadata   map[string]any  `json:"metadata,omitempty"`
}

// CheckoutResponse is what session creation hands back to the caller.
type CheckoutResponse struct {
	SessionID   string    `json:"sessionId"`
	CheckoutURL string    `json:"checkoutUrl"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

type Address struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2,omitempty"`
	City         string `json:"city"`
	State        string `json:"state"`
	PostalCode   string `json:"postalCode"`
	Country      string `json:"country"`
	Phone        string `json:"phone,omitempty"`
}

// Order is created exactly once, when a session completes. It owns its own
// item snapshot, copied from the session.
type Order struct {
	OrderID           string            `json:"orderId"`
	SessionID         string            `json:"sessionId"`
	MerchantID        string            `json:"merchantId"`
	CustomerID        string            `json:"customerId,omitempty"`
	Status            OrderStatus       `json:"status"`
	Items             []SessionItem     `json:"items"`
	Subtotal          decimal.Decimal   `json:"subtotal"`
	Tax               decimal.Decimal   `json:"tax"`
	Shipping          decimal.Decimal   `json:"shipping"`
	Total             decimal.Decimal   `json:"total"`
	Currency          string            `json:"currency"`
	PaymentStatus     PaymentStatus     `json:"paymentStatus"`
	FulfillmentStatus FulfillmentStatus `json:"fulfillmentStatus"`
	ShippingAddress   *Address          `json:"shippingAddress,omitempty"`
	BillingAddress    *Address          `json:"billingAddress,omitempty"`
	CreatedAt         time.Time         `json:"createdAt"`
	UpdatedAt         time.Time         `json:"updatedAt"`
	Metadata          map[string]any    `json:"metadata,omitempty"`
}

type EventType string

const (
	EventOrderCreated      EventType = "order.created"
	EventOrderConfirmed    EventType = "order.confirmed"
	EventOrderCancelled    EventType = "order.cancelled"
	EventPaymentCompleted  EventType = "payment.completed"
	EventPaymentFailed     EventType = "payment.failed"
	EventShipmentCreated   EventType = "shipment.created"
	EventShipmentInTransit EventType = "shipment.in_transit"
	EventShipmentDelivered EventType = "shipment.delivered"
	EventRefundProcessed   EventType = "refund.processed"
)

type EventData struct {
	OrderID           string            `json:"orderId"`
	Status            OrderStatus       `json:"status,omitempty"`
	PaymentStatus     PaymentStatus     `json:"paymentStatus,omitempty"`
	FulfillmentStatus FulfillmentStatus `json:"fulfillmentStatus,omitempty"`
	Metadata          map[string]any    `json:"metadata,omitempty"`
}

// WebhookEvent is fire-and-forget: not persisted, delivered best-effort to
// whatever listeners are registered at publish time.
type WebhookEvent struct {
	EventID   string    `json:"eventId"`
	EventType EventType `json:"eventType"`
	Timestamp time.Time `json:"timestamp"`
	Data      EventData `json:"data"`
}
