package models

// Variation is a priceable configuration of a menu item: its own price, cost,
// and ordered ingredient list. A menu item always has at least one, seeded as
// "Regular".
type Variation struct {
	ID          string           `json:"id,omitempty"`
	Name        string           `json:"name"`
	Price       float64          `json:"price"`
	Cost        float64          `json:"cost"`
	Ingredients []IngredientLine `json:"ingredients"`
}

// DefaultVariationName seeds new menu items.
const DefaultVariationName = "Regular"

// NewDefaultVariation returns the canonical starting variation for a new
// menu item.
func NewDefaultVariation() Variation {
	return Variation{Name: DefaultVariationName, Ingredients: []IngredientLine{}}
}

// Clone returns a deep copy. The ingredient slice and its lines are fresh
// instances; mutating the copy never touches the source.
func (v Variation) Clone() Variation {
	out := v
	out.Ingredients = make([]IngredientLine, len(v.Ingredients))
	copy(out.Ingredients, v.Ingredients)
	return out
}

// Tracked reports whether any ingredient line deducts inventory.
func (v *Variation) Tracked() bool {
	for i := range v.Ingredients {
		if v.Ingredients[i].Track {
			return true
		}
	}
	return false
}
