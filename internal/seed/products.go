// Package seed holds the built-in breakfast catalog loaded at boot.
package seed

import (
	"time"

	"github.com/shopspring/decimal"

	domain "github.com/greenbowl/storefront-api/internal/entity"
)

func price(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// Products returns the starting catalog. Stock counts are the opening
// inventory; the catalog service owns them from then on.
func Products() []domain.Product {
	now := time.Now()
	p := func(id, name, desc string, cat domain.Category, priceStr string, stock int,
		ingredients, allergens, tags []string, n domain.NutritionalInfo) domain.Product {
		return domain.Product{
			ID:              id,
			Name:            name,
			Description:     desc,
			Category:        cat,
			Price:           price(priceStr),
			Currency:        "USD",
			ImageURL:        "/images/" + id + ".jpg",
			InStock:         stock > 0,
			StockQuantity:   stock,
			Ingredients:     ingredients,
			Allergens:       allergens,
			NutritionalInfo: n,
			Tags:            tags,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
	}

	return []domain.Product{
		p("acai-sunrise-bowl", "Acai Sunrise Bowl",
			"Frozen acai blended with banana, topped with granola, fresh berries and coconut flakes.",
			domain.CategorySmoothieBowl, "11.50", 25,
			[]string{"acai", "banana", "granola", "blueberries", "strawberries", "coconut flakes"},
			[]string{"tree nuts"},
			[]string{"gluten-free", "raw", "antioxidant"},
			domain.NutritionalInfo{ServingSize: "400g", Calories: 420, Protein: 8, Carbohydrates: 62, Fat: 14, Fiber: 11, Sugar: 28}),

		p("fluffy-oat-pancakes", "Fluffy Oat Pancakes",
			"Stack of three oat-flour pancakes with maple syrup and caramelized banana.",
			domain.CategoryPancakesWaffles, "9.75", 30,
			[]string{"oat flour", "oat milk", "banana", "maple syrup", "baking powder"},
			[]string{"gluten"},
			[]string{"comfort-food", "kid-friendly"},
			domain.NutritionalInfo{ServingSize: "320g", Calories: 510, Protein: 12, Carbohydrates: 84, Fat: 13, Fiber: 7, Sugar: 31}),

		p("smoky-tofu-scramble", "Smoky Tofu Scramble",
			"Turmeric tofu scramble with smoked paprika, spinach and cherry tomatoes on sourdough.",
			domain.CategoryTofuScramble, "10.25", 20,
			[]string{"tofu", "turmeric", "smoked paprika", "spinach", "cherry tomatoes", "sourdough"},
			[]string{"soy", "gluten"},
			[]string{"high-protein", "savory"},
			domain.NutritionalInfo{ServingSize: "350g", Calories: 380, Protein: 24, Carbohydrates: 34, Fat: 16, Fiber: 6, Sugar: 5}),

		p("steel-cut-porridge", "Steel-Cut Maple Porridge",
			"Slow-cooked steel-cut oats with almond butter, flax and seasonal fruit.",
			domain.CategoryOatmealPorridge, "8.50", 40,
			[]string{"steel-cut oats", "almond butter", "flax seeds", "maple syrup", "apple"},
			[]string{"tree nuts", "gluten"},
			[]string{"whole-grain", "warm"},
			domain.NutritionalInfo{ServingSize: "380g", Calories: 440, Protein: 13, Carbohydrates: 66, Fat: 15, Fiber: 9, Sugar: 18}),

		p("sunrise-burrito", "Sunrise Breakfast Burrito",
			"Whole-wheat tortilla stuffed with tofu scramble, black beans, avocado and salsa roja.",
			domain.CategoryBreakfastBurrito, "11.95", 18,
			[]string{"whole-wheat tortilla", "tofu", "black beans", "avocado", "salsa", "cilantro"},
			[]string{"soy", "gluten"},
			[]string{"high-protein", "on-the-go", "savory"},
			domain.NutritionalInfo{ServingSize: "420g", Calories: 560, Protein: 22, Carbohydrates: 68, Fat: 21, Fiber: 14, Sugar: 6}),

		p("chili-avocado-toast", "Chili Lime Avocado Toast",
			"Smashed avocado on seeded rye with chili flakes, lime and pickled red onion.",
			domain.CategoryAvocadoToast, "9.25", 22,
			[]string{"avocado", "rye bread", "chili flakes", "lime", "red onion", "pumpkin seeds"},
			[]string{"gluten"},
			[]string{"savory", "instagram-favorite"},
			domain.NutritionalInfo{ServingSize: "280g", Calories: 390, Protein: 10, Carbohydrates: 40, Fat: 22, Fiber: 12, Sugar: 4}),

		p("vanilla-chia-pudding", "Vanilla Bean Chia Pudding",
			"Overnight chia pudding with coconut milk, vanilla bean and mango coulis.",
			domain.CategoryChiaPudding, "7.95", 35,
			[]string{"chia seeds", "coconut milk", "vanilla bean", "mango", "agave"},
			nil,
			[]string{"gluten-free", "make-ahead", "raw"},
			domain.NutritionalInfo{ServingSize: "250g", Calories: 320, Protein: 9, Carbohydrates: 38, Fat: 16, Fiber: 13, Sugar: 19}),

		p("toasted-maple-granola", "Toasted Maple Granola Jar",
			"House granola with toasted pecans, layered with coconut yogurt and berry compote.",
			domain.CategoryGranolaMuesli, "8.75", 28,
			[]string{"rolled oats", "pecans", "maple syrup", "coconut yogurt", "berry compote"},
			[]string{"tree nuts", "gluten"},
			[]string{"crunchy", "make-ahead"},
			domain.NutritionalInfo{ServingSize: "300g", Calories: 470, Protein: 11, Carbohydrates: 58, Fat: 23, Fiber: 8, Sugar: 24}),

		p("rainbow-fruit-bowl", "Rainbow Fruit Bowl",
			"Seasonal fruit with mint, lime zest and a scatter of hemp hearts.",
			domain.CategoryFruitBowl, "7.50", 45,
			[]string{"melon", "pineapple", "kiwi", "grapes", "mint", "hemp hearts"},
			nil,
			[]string{"gluten-free", "raw", "refreshing"},
			domain.NutritionalInfo{ServingSize: "330g", Calories: 210, Protein: 5, Carbohydrates: 48, Fat: 3, Fiber: 6, Sugar: 36}),

		p("golden-turmeric-latte", "Golden Turmeric Latte",
			"Oat-milk latte with turmeric, ginger, cinnamon and a touch of black pepper.",
			domain.CategoryBeverages, "5.25", 60,
			[]string{"oat milk", "turmeric", "ginger", "cinnamon", "black pepper", "agave"},
			[]string{"gluten"},
			[]string{"warm", "caffeine-free"},
			domain.NutritionalInfo{ServingSize: "350ml", Calories: 160, Protein: 3, Carbohydrates: 26, Fat: 5, Fiber: 2, Sugar: 14}),

		p("matcha-coconut-smoothie", "Matcha Coconut Smoothie Bowl",
			"Ceremonial matcha blended with frozen banana and coconut, topped with kiwi and cacao nibs.",
			domain.CategorySmoothieBowl, "12.25", 15,
			[]string{"matcha", "banana", "coconut milk", "kiwi", "cacao nibs"},
			nil,
			[]string{"gluten-free", "caffeinated", "antioxidant"},
			domain.NutritionalInfo{ServingSize: "380g", Calories: 400, Protein: 9, Carbohydrates: 54, Fat: 17, Fiber: 9, Sugar: 26}),

		p("belgian-waffle-berries", "Belgian Waffle with Berries",
			"Crisp Belgian-style waffle with macerated berries and whipped coconut cream.",
			domain.CategoryPancakesWaffles, "10.95", 0,
			[]string{"wheat flour", "oat milk", "strawberries", "blueberries", "coconut cream"},
			[]string{"gluten"},
			[]string{"weekend-special", "comfort-food"},
			domain.NutritionalInfo{ServingSize: "340g", Calories: 540, Protein: 10, Carbohydrates: 78, Fat: 21, Fiber: 6, Sugar: 33}),
	}
}
