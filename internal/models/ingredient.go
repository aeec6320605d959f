package models

import "errors"

// ErrNotResolved is returned when tracking is enabled on an ingredient line
// that has not been confirmed against inventory.
var ErrNotResolved = errors.New("ingredient must be checked against inventory before tracking")

// Ingredient is an inventory record: a stocked ingredient with its unit of
// measure and current quantity on hand. Threshold fields drive the low/critical
// stock summaries on the ingredient management dashboard.
type Ingredient struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Unit              string  `json:"unit"`
	Quantity          float64 `json:"quantity"`
	LowThreshold      float64 `json:"lowThreshold"`
	CriticalThreshold float64 `json:"criticalThreshold"`
}

// LineState classifies an ingredient line. The state is derived from the
// serialized fields, never stored separately.
type LineState string

const (
	// LineUnresolved means the line carries free text that has not been
	// confirmed against inventory. Tracking is not available.
	LineUnresolved LineState = "unresolved"
	// LineResolved means the line is linked to an inventory ingredient.
	LineResolved LineState = "resolved"
	// LineCustom means the line is deliberately not tied to inventory and
	// never deducts stock.
	LineCustom LineState = "custom"
)

// IngredientLine is one ingredient requirement inside a variation. A line is
// either linked to an inventory ingredient (in which case name and unit mirror
// the inventory record) or custom free text.
type IngredientLine struct {
	Name         string  `json:"name"`
	Unit         string  `json:"unit"`
	IngredientID string  `json:"ingredientId,omitempty"`
	QuantityUsed float64 `json:"quantityUsed"`
	IsCustom     bool    `json:"isCustom"`
	Track        bool    `json:"track"`
	IsChecked    bool    `json:"isChecked"`

	// InventoryQuantity is the stock level observed when the line was
	// resolved. Display reference only, never consumed from here.
	InventoryQuantity float64 `json:"inventoryQuantity,omitempty"`
}

// NewIngredientLine returns an empty, unresolved line.
func NewIngredientLine() IngredientLine {
	return IngredientLine{}
}

// State derives the line's classification from its fields.
func (l *IngredientLine) State() LineState {
	switch {
	case l.IsCustom:
		return LineCustom
	case l.IngredientID != "":
		return LineResolved
	default:
		return LineUnresolved
	}
}

// Resolve links the line to an inventory ingredient found by name search.
// Name and unit mirror the inventory record and the current stock level is
// kept as read-only reference data.
func (l *IngredientLine) Resolve(ing Ingredient) {
	l.IngredientID = ing.ID
	l.Name = ing.Name
	l.Unit = ing.Unit
	l.InventoryQuantity = ing.Quantity
	l.IsChecked = true
	l.IsCustom = false
}

// Select links the line to an explicitly chosen inventory ingredient and
// enables tracking. A nil ingredient (the "none" option) clears the line back
// to its unresolved default.
func (l *IngredientLine) Select(ing *Ingredient) {
	if ing == nil {
		l.IngredientID = ""
		l.Name = ""
		l.Unit = ""
		l.InventoryQuantity = 0
		l.IsChecked = false
		l.IsCustom = false
		l.Track = false
		return
	}
	l.Resolve(*ing)
	l.Track = true
}

// SetCustom toggles the line between custom free text and inventory-linked
// entry. Switching to custom keeps the user's text but severs the inventory
// link; switching back clears the text so a fresh inventory selection is made.
// Tracking is off in either case until an ingredient is actually selected
// (Select turns it on), since an unlinked line must never deduct stock.
func (l *IngredientLine) SetCustom(custom bool) {
	l.IngredientID = ""
	l.InventoryQuantity = 0
	l.IsChecked = false
	l.IsCustom = custom
	l.Track = false
	if !custom {
		l.Name = ""
		l.Unit = ""
	}
}

// SetTracked enables or disables inventory deduction for the line. Enabling
// requires a confirmed inventory link; otherwise the line is left unchanged.
func (l *IngredientLine) SetTracked(track bool) error {
	if track && l.IngredientID == "" {
		return ErrNotResolved
	}
	l.Track = track
	return nil
}

// SetName updates the display name. Any prior inventory confirmation no
// longer applies to the new text.
func (l *IngredientLine) SetName(name string) {
	l.Name = name
	l.IsChecked = false
}
