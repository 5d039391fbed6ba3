package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domain "github.com/greenbowl/storefront-api/internal/entity"
	"github.com/greenbowl/storefront-api/internal/observ"
)

// CheckoutConfig carries the merchant identity and the pricing/expiry knobs
// applied to every session.
type CheckoutConfig struct {
	MerchantID   string
	TaxRate      decimal.Decimal
	ShippingCost decimal.Decimal
	SessionTTL   time.Duration
}

// CheckoutService drives the session/order lifecycle:
//
//	pending --(complete, not expired)--> completed
//	pending --(cancel)-----------------> cancelled
//	pending --(TTL elapses)------------> expired
//	active  --(complete, not expired)--> completed
//
// Terminal states are never left. Tax is rounded half-up to cents at session
// creation; subtotal and total are exact sums of cent-valued inputs.
type CheckoutService struct {
	cfg      CheckoutConfig
	sessions Store[domain.CheckoutSession]
	orders   Store[domain.Order]
	catalog  *Catalog
	cart     *CartService
	events   EventSink
	log      *slog.Logger

	// mu serializes lifecycle transitions, including the expiry callback
	// racing a concurrent complete/cancel.
	mu     sync.Mutex
	timers map[string]*time.Timer
	now    func() time.Time
}

func NewCheckoutService(
	cfg CheckoutConfig,
	sessions Store[domain.CheckoutSession],
	orders Store[domain.Order],
	catalog *Catalog,
	cart *CartService,
	events EventSink,
	log *slog.Logger,
) *CheckoutService {
	return &CheckoutService{
		cfg:      cfg,
		sessions: sessions,
		orders:   orders,
		catalog:  catalog,
		cart:     cart,
		events:   events,
		log:      log,
		timers:   make(map[string]*time.Timer),
		now:      time.Now,
	}
}

type CreateSessionInput struct {
	Items    []domain.SessionItem
	Currency string
	Metadata map[string]any
}

// ItemsFromCart freezes a cart's priced snapshot into session items.
func (s *CheckoutService) ItemsFromCart(ctx context.Context, cartID string) ([]domain.SessionItem, error) {
	snap, err := s.cart.Snapshot(ctx, cartID)
	if err != nil {
		return nil, err
	}
	items := make([]domain.SessionItem, 0, len(snap.Items))
	for _, it := range snap.Items {
		items = append(items, domain.SessionItem{
			ProductID:   it.ProductID,
			Name:        it.Product.Name,
			Description: it.Product.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			TotalPrice:  it.TotalPrice,
			ImageURL:    it.Product.ImageURL,
			Metadata: map[string]any{
				"category": it.Product.Category,
				"tags":     it.Product.Tags,
			},
		})
	}
	return items, nil
}

// CreateSession opens a time-boxed checkout session over a non-empty priced
// item list and schedules its expiry check.
func (s *CheckoutService) CreateSession(ctx context.Context, in CreateSessionInput) (domain.CheckoutResponse, error) {
	if len(in.Items) == 0 {
		return domain.CheckoutResponse{}, fmt.Errorf("cart items required: %w", ErrInvalidInput)
	}
	for _, it := range in.Items {
		if it.ProductID == "" || it.Quantity <= 0 {
			return domain.CheckoutResponse{}, fmt.Errorf("bad cart item %q: %w", it.ProductID, ErrInvalidInput)
		}
	}

	currency := in.Currency
	if currency == "" {
		currency = "USD"
	}

	subtotal := decimal.Zero
	for _, it := range in.Items {
		subtotal = subtotal.Add(it.TotalPrice)
	}
	tax := subtotal.Mul(s.cfg.TaxRate).Round(2)
	total := subtotal.Add(tax).Add(s.cfg.ShippingCost)

	now := s.now()
	session := domain.CheckoutSession{
		SessionID:  uuid.NewString(),
		MerchantID: s.cfg.MerchantID,
		Status:     domain.SessionPending,
		CartItems:  append([]domain.SessionItem(nil), in.Items...),
		Subtotal:   subtotal,
		Tax:        tax,
		Shipping:   s.cfg.ShippingCost,
		Total:      total,
		Currency:   currency,
		CreatedAt:  now,
		ExpiresAt:  now.Add(s.cfg.SessionTTL),
		Metadata:   in.Metadata,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.sessions.Put(ctx, session.SessionID, session); err != nil {
		return domain.CheckoutResponse{}, err
	}
	s.timers[session.SessionID] = time.AfterFunc(s.cfg.SessionTTL, func() {
		s.expireSession(session.SessionID)
	})
	observ.SessionsCreated.Inc()

	return domain.CheckoutResponse{
		SessionID:   session.SessionID,
		CheckoutURL: "/checkout/" + session.SessionID,
		ExpiresAt:   session.ExpiresAt,
	}, nil
}

func (s *CheckoutService) GetSession(ctx context.Context, sessionID string) (domain.CheckoutSession, error) {
	session, ok, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return domain.CheckoutSession{}, err
	}
	if !ok {
		return domain.CheckoutSession{}, fmt.Errorf("checkout session %s: %w", sessionID, ErrNotFound)
	}
	return session, nil
}

// expireSession is the deferred expiry check. It re-verifies the session is
// still pending before acting: any other status means the session already
// resolved and the check is a no-op.
func (s *CheckoutService) expireSession(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.timers, sessionID)

	ctx := context.Background()
	session, ok, err := s.sessions.Get(ctx, sessionID)
	if err != nil || !ok {
		return
	}
	if session.Status != domain.SessionPending {
		return
	}
	session.Status = domain.SessionExpired
	if err := s.sessions.Put(ctx, sessionID, session); err != nil {
		s.log.Error("expire session", "session_id", sessionID, "error", err)
		return
	}
	observ.SessionsExpired.Inc()
	s.log.Info("checkout session expired", "session_id", sessionID)
}

// stopTimer is cleanup only; the status re-check in expireSession remains
// the correctness guard for a timer that already fired.
func (s *CheckoutService) stopTimer(sessionID string) {
	if t, ok := s.timers[sessionID]; ok {
		t.Stop()
		delete(s.timers, sessionID)
	}
}

// CompleteCheckout transitions a pending or active session to completed and
// creates its order: status pending_payment, payment and fulfillment both
// pending, items and totals copied from the session. Stock is decremented
// for every item and order.created is emitted. A session past its expiry is
// flipped to expired before the call fails.
func (s *CheckoutService) CompleteCheckout(ctx context.Context, sessionID, customerID string) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return domain.Order{}, err
	}
	if !ok {
		return domain.Order{}, fmt.Errorf("checkout session %s: %w", sessionID, ErrNotFound)
	}
	if session.Status != domain.SessionPending && session.Status != domain.SessionActive {
		return domain.Order{}, fmt.Errorf("cannot complete checkout in status %s: %w", session.Status, ErrInvalidState)
	}
	if s.now().After(session.ExpiresAt) {
		session.Status = domain.SessionExpired
		if err := s.sessions.Put(ctx, sessionID, session); err != nil {
			return domain.Order{}, err
		}
		s.stopTimer(sessionID)
		return domain.Order{}, fmt.Errorf("checkout session %s: %w", sessionID, ErrSessionExpired)
	}

	session.Status = domain.SessionCompleted
	if err := s.sessions.Put(ctx, sessionID, session); err != nil {
		return domain.Order{}, err
	}
	s.stopTimer(sessionID)

	now := s.now()
	order := domain.Order{
		OrderID:           uuid.NewString(),
		SessionID:         sessionID,
		MerchantID:        session.MerchantID,
		CustomerID:        customerID,
		Status:            domain.OrderPendingPayment,
		Items:             append([]domain.SessionItem(nil), session.CartItems...),
		Subtotal:          session.Subtotal,
		Tax:               session.Tax,
		Shipping:          session.Shipping,
		Total:             session.Total,
		Currency:          session.Currency,
		PaymentStatus:     domain.PaymentPending,
		FulfillmentStatus: domain.FulfillmentPending,
		CreatedAt:         now,
		UpdatedAt:         now,
		Metadata:          session.Metadata,
	}
	if err := s.orders.Put(ctx, order.OrderID, order); err != nil {
		return domain.Order{}, err
	}
	observ.OrdersCreated.Inc()

	s.emit(ctx, domain.EventOrderCreated, domain.EventData{
		OrderID: order.OrderID,
		Status:  order.Status,
	})

	// Consume stock per line; AdjustStock clamps at zero so a vanished or
	// under-stocked product cannot fail the completed order.
	for _, item := range order.Items {
		if err := s.catalog.AdjustStock(ctx, item.ProductID, item.Quantity); err != nil {
			s.log.Warn("stock decrement failed", "product_id", item.ProductID, "error", err)
		}
	}

	return order, nil
}

// CancelSession overwrites the status to cancelled whenever the session
// exists, even if it is already terminal. It only fails when the session is
// unknown; there are no stock or order side effects.
func (s *CheckoutService) CancelSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("checkout session %s: %w", sessionID, ErrNotFound)
	}
	session.Status = domain.SessionCancelled
	if err := s.sessions.Put(ctx, sessionID, session); err != nil {
		return err
	}
	s.stopTimer(sessionID)
	return nil
}

func (s *CheckoutService) GetOrder(ctx context.Context, orderID string) (domain.Order, error) {
	order, ok, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return domain.Order{}, err
	}
	if !ok {
		return domain.Order{}, fmt.Errorf("order %s: %w", orderID, ErrNotFound)
	}
	return order, nil
}

// CustomerOrders returns a customer's orders, newest first.
func (s *CheckoutService) CustomerOrders(ctx context.Context, customerID string) ([]domain.Order, error) {
	all, err := s.orders.All(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Order, 0)
	for _, o := range all {
		if o.CustomerID == customerID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// UpdateOrderStatus overwrites the order status directly, emitting
// order.confirmed when the new status is confirmed and order.created
// otherwise.
func (s *CheckoutService) UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus) (domain.Order, error) {
	if !status.Valid() {
		return domain.Order{}, fmt.Errorf("order status %q: %w", status, ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	order, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return domain.Order{}, err
	}
	order.Status = status
	order.UpdatedAt = s.now()
	if err := s.orders.Put(ctx, orderID, order); err != nil {
		return domain.Order{}, err
	}

	evType := domain.EventOrderCreated
	if status == domain.OrderConfirmed {
		evType = domain.EventOrderConfirmed
	}
	s.emit(ctx, evType, domain.EventData{OrderID: orderID, Status: status})
	return order, nil
}

// UpdatePaymentStatus records the payment state. completed confirms the
// order and emits payment.completed; failed cancels it and emits
// payment.failed. Every other value updates the field silently: no event,
// no order status change.
func (s *CheckoutService) UpdatePaymentStatus(ctx context.Context, orderID string, status domain.PaymentStatus) (domain.Order, error) {
	if !status.Valid() {
		return domain.Order{}, fmt.Errorf("payment status %q: %w", status, ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	order, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return domain.Order{}, err
	}
	order.PaymentStatus = status
	order.UpdatedAt = s.now()

	switch status {
	case domain.PaymentCompleted:
		order.Status = domain.OrderConfirmed
	case domain.PaymentFailed:
		order.Status = domain.OrderCancelled
	}
	if err := s.orders.Put(ctx, orderID, order); err != nil {
		return domain.Order{}, err
	}

	switch status {
	case domain.PaymentCompleted:
		s.emit(ctx, domain.EventPaymentCompleted, domain.EventData{OrderID: orderID, PaymentStatus: status})
	case domain.PaymentFailed:
		s.emit(ctx, domain.EventPaymentFailed, domain.EventData{OrderID: orderID, PaymentStatus: status})
	}
	return order, nil
}

// UpdateFulfillmentStatus records the fulfillment state. shipped and
// delivered move the order status along and emit shipment events; other
// values update the field only.
func (s *CheckoutService) UpdateFulfillmentStatus(ctx context.Context, orderID string, status domain.FulfillmentStatus) (domain.Order, error) {
	if !status.Valid() {
		return domain.Order{}, fmt.Errorf("fulfillment status %q: %w", status, ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	order, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return domain.Order{}, err
	}
	order.FulfillmentStatus = status
	order.UpdatedAt = s.now()

	switch status {
	case domain.FulfillmentShipped:
		order.Status = domain.OrderShipped
	case domain.FulfillmentDelivered:
		order.Status = domain.OrderDelivered
	}
	if err := s.orders.Put(ctx, orderID, order); err != nil {
		return domain.Order{}, err
	}

	switch status {
	case domain.FulfillmentShipped:
		s.emit(ctx, domain.EventShipmentCreated, domain.EventData{OrderID: orderID, FulfillmentStatus: status})
	case domain.FulfillmentDelivered:
		s.emit(ctx, domain.EventShipmentDelivered, domain.EventData{OrderID: orderID, FulfillmentStatus: status})
	}
	return order, nil
}

// CancelOrder is the only reversal. Shipped and delivered orders cannot be
// cancelled; a successful cancel restores exactly the stock consumed when
// the order was created.
func (s *CheckoutService) CancelOrder(ctx context.Context, orderID string) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return domain.Order{}, err
	}
	if order.Status == domain.OrderShipped || order.Status == domain.OrderDelivered {
		return domain.Order{}, fmt.Errorf("cannot cancel order in status %s: %w", order.Status, ErrInvalidState)
	}

	order.Status = domain.OrderCancelled
	order.UpdatedAt = s.now()
	if err := s.orders.Put(ctx, orderID, order); err != nil {
		return domain.Order{}, err
	}

	s.emit(ctx, domain.EventOrderCancelled, domain.EventData{OrderID: orderID, Status: domain.OrderCancelled})

	for _, item := range order.Items {
		if err := s.catalog.AdjustStock(ctx, item.ProductID, -item.Quantity); err != nil {
			s.log.Warn("stock restore failed", "product_id", item.ProductID, "error", err)
		}
	}
	return order, nil
}

func (s *CheckoutService) emit(ctx context.Context, evType domain.EventType, data domain.EventData) {
	if s.events == nil {
		return
	}
	s.events.Publish(ctx, domain.WebhookEvent{
		EventID:   uuid.NewString(),
		EventType: evType,
		Timestamp: s.now(),
		Data:      data,
	})
}
