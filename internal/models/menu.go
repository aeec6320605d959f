package models

import "encoding/json"

// MenuItem is a sellable item on the menu together with the variations it can
// be ordered in. The item exclusively owns its variations; variations never
// share ingredient line slices.
type MenuItem struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Image       string `json:"image,omitempty"`

	Variations []Variation `json:"variations"`

	// inventoryControlled is derived from the variations and recomputed on
	// every mutation. It is deliberately unexported so nothing can set it
	// independently of that derivation.
	inventoryControlled bool
}

// NewMenuItem creates a menu item seeded with the default "Regular" variation.
func NewMenuItem(name, description, category string) *MenuItem {
	return &MenuItem{
		Name:        name,
		Description: description,
		Category:    category,
		Variations:  []Variation{NewDefaultVariation()},
	}
}

// IsInventoryControlled reports whether selling this item should touch stock:
// true iff at least one ingredient line across all variations is tracked.
func (m *MenuItem) IsInventoryControlled() bool {
	return m.inventoryControlled
}

// Recompute refreshes the derived inventory-control flag. It must be called
// after any mutation that can change track membership; the aggregate's own
// mutators do so themselves.
func (m *MenuItem) Recompute() {
	m.inventoryControlled = false
	for i := range m.Variations {
		if m.Variations[i].Tracked() {
			m.inventoryControlled = true
			return
		}
	}
}

// UpsertVariation stores a variation by exact name match: replaces in place,
// preserving position, when a sibling with the same name exists, otherwise
// appends.
func (m *MenuItem) UpsertVariation(v Variation) {
	for i := range m.Variations {
		if m.Variations[i].Name == v.Name {
			m.Variations[i] = v
			m.Recompute()
			return
		}
	}
	m.Variations = append(m.Variations, v)
	m.Recompute()
}

// RemoveVariation deletes the named variation. The caller passes the user's
// confirmation; without it the list is untouched. Returns whether a variation
// was removed.
func (m *MenuItem) RemoveVariation(name string, confirmed bool) bool {
	if !confirmed {
		return false
	}
	for i := range m.Variations {
		if m.Variations[i].Name == name {
			m.Variations = append(m.Variations[:i], m.Variations[i+1:]...)
			m.Recompute()
			return true
		}
	}
	return false
}

// VariationByID looks up a variation by identifier. Returns nil when absent.
func (m *MenuItem) VariationByID(id string) *Variation {
	for i := range m.Variations {
		if m.Variations[i].ID == id {
			return &m.Variations[i]
		}
	}
	return nil
}

// menuItemJSON is the wire shape of a menu item. The derived flag travels as
// a regular field.
type menuItemJSON struct {
	ID                    string      `json:"id,omitempty"`
	Name                  string      `json:"name"`
	Description           string      `json:"description"`
	Category              string      `json:"category"`
	Image                 string      `json:"image,omitempty"`
	IsInventoryControlled bool        `json:"isInventoryControlled"`
	Variations            []Variation `json:"variations"`
}

// MarshalJSON serializes the item with the derived inventory-control flag.
func (m *MenuItem) MarshalJSON() ([]byte, error) {
	m.Recompute()
	return json.Marshal(menuItemJSON{
		ID:                    m.ID,
		Name:                  m.Name,
		Description:           m.Description,
		Category:              m.Category,
		Image:                 m.Image,
		IsInventoryControlled: m.inventoryControlled,
		Variations:            m.Variations,
	})
}

// UnmarshalJSON decodes the wire shape and rederives the inventory-control
// flag from the variations, ignoring whatever the payload claimed.
func (m *MenuItem) UnmarshalJSON(data []byte) error {
	var raw menuItemJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	m.ID = raw.ID
	m.Name = raw.Name
	m.Description = raw.Description
	m.Category = raw.Category
	m.Image = raw.Image
	m.Variations = raw.Variations
	m.Recompute()
	return nil
}

// Category groups menu items on the ordering screen.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
