package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	domain "github.com/greenbowl/storefront-api/internal/entity"
)

// Catalog is the sole mutable owner of stock counts. Everything else only
// references product ids and caches prices at read time.
type Catalog struct {
	products Store[domain.Product]
	now      func() time.Time
}

func NewCatalog(products Store[domain.Product]) *Catalog {
	return &Catalog{products: products, now: time.Now}
}

// ProductFilter selects exactly one filter mode; Search wins over Category,
// Category over Tags. Empty filter lists everything in stock.
type ProductFilter struct {
	Category domain.Category
	Search   string
	Tags     []string
}

// List returns in-stock products, sorted by name for stable output.
func (c *Catalog) List(ctx context.Context, f ProductFilter) ([]domain.Product, error) {
	all, err := c.products.All(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Product, 0, len(all))
	for _, p := range all {
		if !p.InStock {
			continue
		}
		switch {
		case f.Search != "":
			if matchesSearch(p, f.Search) {
				out = append(out, p)
			}
		case f.Category != "":
			if p.Category == f.Category {
				out = append(out, p)
			}
		case len(f.Tags) > 0:
			if matchesTags(p, f.Tags) {
				out = append(out, p)
			}
		default:
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func matchesSearch(p domain.Product, query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Description), q) {
		return true
	}
	for _, t := range p.Tags {
		if strings.Contains(strings.ToLower(t), q) {
			return true
		}
	}
	for _, ing := range p.Ingredients {
		if strings.Contains(strings.ToLower(ing), q) {
			return true
		}
	}
	return false
}

func matchesTags(p domain.Product, tags []string) bool {
	for _, want := range tags {
		for _, have := range p.Tags {
			if have == want {
				return true
			}
		}
	}
	return false
}

func (c *Catalog) Get(ctx context.Context, id string) (domain.Product, error) {
	p, ok, err := c.products.Get(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}
	if !ok {
		return domain.Product{}, fmt.Errorf("product %s: %w", id, ErrNotFound)
	}
	return p, nil
}

// CheckAvailability reports whether the product exists, is in stock and has
// at least quantity units. A missing product is simply unavailable.
func (c *Catalog) CheckAvailability(ctx context.Context, id string, quantity int) (bool, error) {
	p, ok, err := c.products.Get(ctx, id)
	if err != nil || !ok {
		return false, err
	}
	return p.InStock && p.StockQuantity >= quantity, nil
}

// AdjustStock subtracts delta from the stock count (positive delta =
// consumption, negative = restock). The count clamps at zero and InStock is
// recomputed; a delta larger than the remaining stock does not fail.
func (c *Catalog) AdjustStock(ctx context.Context, id string, delta int) error {
	p, ok, err := c.products.Get(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("product %s: %w", id, ErrNotFound)
	}

	p.StockQuantity -= delta
	if p.StockQuantity < 0 {
		p.StockQuantity = 0
	}
	p.InStock = p.StockQuantity > 0
	p.UpdatedAt = c.now()
	return c.products.Put(ctx, id, p)
}
