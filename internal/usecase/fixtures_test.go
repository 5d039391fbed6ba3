package usecase

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/greenbowl/storefront-api/internal/adapter/store"
	domain "github.com/greenbowl/storefront-api/internal/entity"
)

// captureSink records published events for assertions.
type captureSink struct {
	events []domain.WebhookEvent
}

func (c *captureSink) Publish(_ context.Context, ev domain.WebhookEvent) {
	c.events = append(c.events, ev)
}

func (c *captureSink) ofType(t domain.EventType) []domain.WebhookEvent {
	var out []domain.WebhookEvent
	for _, ev := range c.events {
		if ev.EventType == t {
			out = append(out, ev)
		}
	}
	return out
}

type fixture struct {
	catalog  *Catalog
	carts    *CartService
	checkout *CheckoutService
	sink     *captureSink

	products *store.Memory[domain.Product]
	sessions *store.Memory[domain.CheckoutSession]
	orders   *store.Memory[domain.Order]

	now time.Time
}

func testProduct(id, name, priceStr string, stock int) domain.Product {
	return domain.Product{
		ID:            id,
		Name:          name,
		Description:   "test " + name,
		Category:      domain.CategoryBeverages,
		Price:         decimal.RequireFromString(priceStr),
		Currency:      "USD",
		InStock:       stock > 0,
		StockQuantity: stock,
		Tags:          []string{"test"},
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
}

func newFixture(products ...domain.Product) *fixture {
	f := &fixture{
		products: store.NewMemory[domain.Product](),
		sessions: store.NewMemory[domain.CheckoutSession](),
		orders:   store.NewMemory[domain.Order](),
		sink:     &captureSink{},
		now:      time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC),
	}

	ctx := context.Background()
	for _, p := range products {
		_ = f.products.Put(ctx, p.ID, p)
	}

	f.catalog = NewCatalog(f.products)
	f.catalog.now = func() time.Time { return f.now }

	f.carts = NewCartService(store.NewMemory[domain.Cart](), f.catalog)
	f.carts.now = func() time.Time { return f.now }

	f.checkout = NewCheckoutService(
		CheckoutConfig{
			MerchantID:   "test-shop",
			TaxRate:      decimal.RequireFromString("0.08"),
			ShippingCost: decimal.RequireFromString("5.99"),
			SessionTTL:   30 * time.Minute,
		},
		f.sessions, f.orders, f.catalog, f.carts, f.sink,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	f.checkout.now = func() time.Time { return f.now }

	return f
}

// advance moves the fixture clock; all three services share it.
func (f *fixture) advance(d time.Duration) {
	f.now = f.now.Add(d)
}

func (f *fixture) stockOf(id string) int {
	p, _, _ := f.products.Get(context.Background(), id)
	return p.StockQuantity
}
