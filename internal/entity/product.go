package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category string

const (
	CategorySmoothieBowl     Category = "smoothie-bowl"
	CategoryPancakesWaffles  Category = "pancakes-waffles"
	CategoryTofuScramble     Category = "tofu-scramble"
	CategoryOatmealPorridge  Category = "oatmeal-porridge"
	CategoryBreakfastBurrito Category = "breakfast-burrito"
	CategoryAvocadoToast     Category = "avocado-toast"
	CategoryChiaPudding      Category = "chia-pudding"
	CategoryGranolaMuesli    Category = "granola-muesli"
	CategoryFruitBowl        Category = "fruit-bowl"
	CategoryBeverages        Category = "beverages"
)

func (c Category) Valid() bool {
	switch c {
	case CategorySmoothieBowl, CategoryPancakesWaffles, CategoryTofuScramble,
		CategoryOatmealPorridge, CategoryBreakfastBurrito, CategoryAvocadoToast,
		CategoryChiaPudding, CategoryGranolaMuesli, CategoryFruitBowl, CategoryBeverages:
		return true
	}
	return false
}

type NutritionalInfo struct {
	ServingSize   string  `json:"servingSize"`
	Calories      int     `json:"calories"`
	Protein       float64 `json:"protein"`
	Carbohydrates float64 `json:"carbohydrates"`
	Fat           float64 `json:"fat"`
	Fiber         float64 `json:"fiber"`
	Sugar         float64 `json:"sugar"`
}

// Product is catalog inventory. Invariant: InStock == (StockQuantity > 0).
type Product struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Category        Category        `json:"category"`
	Price           decimal.Decimal `json:"price"`
	Currency        string          `json:"currency"`
	ImageURL        string          `json:"imageUrl"`
	InStock         bool            `json:"inStock"`
	StockQuantity   int             `json:"stockQuantity"`
	Ingredients     []string        `json:"ingredients"`
	Allergens       []string        `json:"allergens"`
	NutritionalInfo NutritionalInfo `json:"nutritionalInfo"`
	Tags            []string        `json:"tags"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}
