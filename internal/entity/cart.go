package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type CartItem struct {
	ProductID string    `json:"productId"`
	Quantity  int       `json:"quantity"`
	AddedAt   time.Time `json:"addedAt"`
}

// Cart holds product references only; prices are joined in at read time.
// Invariant: ProductID is unique within Items.
type Cart struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId,omitempty"`
	Items     []CartItem `json:"items"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// PricedItem is a cart line joined against the current catalog price.
type PricedItem struct {
	ProductID  string          `json:"productId"`
	Product    Product         `json:"product"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	AddedAt    time.Time       `json:"addedAt"`
}

// CartSnapshot is the derived read model; it is never stored. Lines whose
// product no longer exists in the catalog are dropped.
type CartSnapshot struct {
	Cart      Cart            `json:"cart"`
	Items     []PricedItem    `json:"items"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	ItemCount int             `json:"itemCount"`
}
