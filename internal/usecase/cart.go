package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domain "github.com/greenbowl/storefront-api/internal/entity"
)

// CartService owns per-session carts. Carts hold product ids and quantities
// only; pricing happens in Snapshot by joining against the catalog.
type CartService struct {
	carts   Store[domain.Cart]
	catalog *Catalog
	now     func() time.Time
}

func NewCartService(carts Store[domain.Cart], catalog *Catalog) *CartService {
	return &CartService{carts: carts, catalog: catalog, now: time.Now}
}

func (s *CartService) Create(ctx context.Context, userID string) (domain.Cart, error) {
	now := s.now()
	cart := domain.Cart{
		ID:        uuid.NewString(),
		UserID:    userID,
		Items:     []domain.CartItem{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.carts.Put(ctx, cart.ID, cart); err != nil {
		return domain.Cart{}, err
	}
	return cart, nil
}

func (s *CartService) Get(ctx context.Context, cartID string) (domain.Cart, error) {
	cart, ok, err := s.carts.Get(ctx, cartID)
	if err != nil {
		return domain.Cart{}, err
	}
	if !ok {
		return domain.Cart{}, fmt.Errorf("cart %s: %w", cartID, ErrNotFound)
	}
	return cart, nil
}

// AddItem merges quantity into an existing line or appends a new one. The
// availability check covers the merged quantity: adding q to a line already
// holding q0 succeeds only when stock covers q0+q.
func (s *CartService) AddItem(ctx context.Context, cartID, productID string, quantity int) (domain.Cart, error) {
	if quantity <= 0 {
		return domain.Cart{}, fmt.Errorf("quantity must be positive: %w", ErrInvalidInput)
	}
	cart, err := s.Get(ctx, cartID)
	if err != nil {
		return domain.Cart{}, err
	}
	if _, err := s.catalog.Get(ctx, productID); err != nil {
		return domain.Cart{}, err
	}

	lineIdx := -1
	newQty := quantity
	for i, item := range cart.Items {
		if item.ProductID == productID {
			lineIdx = i
			newQty = item.Quantity + quantity
			break
		}
	}

	ok, err := s.catalog.CheckAvailability(ctx, productID, newQty)
	if err != nil {
		return domain.Cart{}, err
	}
	if !ok {
		return domain.Cart{}, fmt.Errorf("product %s x%d: %w", productID, newQty, ErrUnavailable)
	}

	if lineIdx >= 0 {
		cart.Items[lineIdx].Quantity = newQty
	} else {
		cart.Items = append(cart.Items, domain.CartItem{
			ProductID: productID,
			Quantity:  quantity,
			AddedAt:   s.now(),
		})
	}
	cart.UpdatedAt = s.now()
	if err := s.carts.Put(ctx, cart.ID, cart); err != nil {
		return domain.Cart{}, err
	}
	return cart, nil
}

// SetQuantity overwrites a line's quantity; zero or negative removes the line.
func (s *CartService) SetQuantity(ctx context.Context, cartID, productID string, quantity int) (domain.Cart, error) {
	if quantity <= 0 {
		return s.RemoveItem(ctx, cartID, productID)
	}
	cart, err := s.Get(ctx, cartID)
	if err != nil {
		return domain.Cart{}, err
	}

	lineIdx := -1
	for i, item := range cart.Items {
		if item.ProductID == productID {
			lineIdx = i
			break
		}
	}
	if lineIdx < 0 {
		return domain.Cart{}, fmt.Errorf("cart line %s: %w", productID, ErrNotFound)
	}

	ok, err := s.catalog.CheckAvailability(ctx, productID, quantity)
	if err != nil {
		return domain.Cart{}, err
	}
	if !ok {
		return domain.Cart{}, fmt.Errorf("product %s x%d: %w", productID, quantity, ErrUnavailable)
	}

	cart.Items[lineIdx].Quantity = quantity
	cart.UpdatedAt = s.now()
	if err := s.carts.Put(ctx, cart.ID, cart); err != nil {
		return domain.Cart{}, err
	}
	return cart, nil
}

func (s *CartService) RemoveItem(ctx context.Context, cartID, productID string) (domain.Cart, error) {
	cart, err := s.Get(ctx, cartID)
	if err != nil {
		return domain.Cart{}, err
	}

	kept := cart.Items[:0]
	for _, item := range cart.Items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	cart.Items = kept
	cart.UpdatedAt = s.now()
	if err := s.carts.Put(ctx, cart.ID, cart); err != nil {
		return domain.Cart{}, err
	}
	return cart, nil
}

func (s *CartService) Clear(ctx context.Context, cartID string) (domain.Cart, error) {
	cart, err := s.Get(ctx, cartID)
	if err != nil {
		return domain.Cart{}, err
	}
	cart.Items = []domain.CartItem{}
	cart.UpdatedAt = s.now()
	if err := s.carts.Put(ctx, cart.ID, cart); err != nil {
		return domain.Cart{}, err
	}
	return cart, nil
}

// Delete removes the cart entirely and reports whether it existed.
func (s *CartService) Delete(ctx context.Context, cartID string) (bool, error) {
	return s.carts.Delete(ctx, cartID)
}

// Snapshot joins each line against the catalog. Lines whose product has
// vanished are dropped, not errored: the snapshot reflects what is still
// sellable.
func (s *CartService) Snapshot(ctx context.Context, cartID string) (domain.CartSnapshot, error) {
	cart, err := s.Get(ctx, cartID)
	if err != nil {
		return domain.CartSnapshot{}, err
	}

	snap := domain.CartSnapshot{
		Cart:     cart,
		Items:    make([]domain.PricedItem, 0, len(cart.Items)),
		Subtotal: decimal.Zero,
	}
	for _, item := range cart.Items {
		p, ok, err := s.catalog.products.Get(ctx, item.ProductID)
		if err != nil {
			return domain.CartSnapshot{}, err
		}
		if !ok {
			continue
		}
		total := p.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		snap.Items = append(snap.Items, domain.PricedItem{
			ProductID:  item.ProductID,
			Product:    p,
			Quantity:   item.Quantity,
			UnitPrice:  p.Price,
			TotalPrice: total,
			AddedAt:    item.AddedAt,
		})
		snap.Subtotal = snap.Subtotal.Add(total)
		snap.ItemCount += item.Quantity
	}
	return snap, nil
}
