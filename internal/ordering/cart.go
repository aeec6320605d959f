package ordering

import (
	"errors"

	"chowhub/internal/models"
)

// ErrInvalidQuantity rejects cart additions with a non-positive quantity.
var ErrInvalidQuantity = errors.New("quantity must be a positive integer")

// ErrEntryIndex is returned for out-of-range cart entry indices.
var ErrEntryIndex = errors.New("cart entry index out of range")

// CartEntry is one selection: a menu item snapshot, the chosen variation, and
// how many. Entries with the same (item id, variant id) key are merged.
type CartEntry struct {
	Item      models.MenuItem `json:"item"`
	VariantID string          `json:"variantId"`
	Quantity  int             `json:"quantity"`
}

func (e CartEntry) key() [2]string {
	return [2]string{e.Item.ID, e.VariantID}
}

// Cart holds the in-progress order for a single session. Entry order is
// display order; totals do not depend on it.
type Cart struct {
	entries []CartEntry
}

// NewCart returns an empty cart.
func NewCart() *Cart {
	return &Cart{}
}

// Add appends a selection and merges duplicates. The item is captured as a
// snapshot at add time. Quantity must be positive; otherwise the cart is left
// unchanged and ErrInvalidQuantity is returned.
func (c *Cart) Add(item models.MenuItem, variantID string, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	c.entries = append(c.entries, CartEntry{Item: item, VariantID: variantID, Quantity: quantity})
	c.Merge()
	return nil
}

// Merge combines entries sharing an identity key by summing quantities. The
// combined entry keeps the position of its first occurrence. Merging an
// already-merged cart is a no-op.
func (c *Cart) Merge() {
	merged := make([]CartEntry, 0, len(c.entries))
	at := make(map[[2]string]int, len(c.entries))
	for _, entry := range c.entries {
		if i, ok := at[entry.key()]; ok {
			merged[i].Quantity += entry.Quantity
			continue
		}
		at[entry.key()] = len(merged)
		merged = append(merged, entry)
	}
	c.entries = merged
}

// Remove deletes the entry at its current display index. Removal cannot
// create duplicates, so no merge follows.
func (c *Cart) Remove(index int) error {
	if index < 0 || index >= len(c.entries) {
		return ErrEntryIndex
	}
	c.entries = append(c.entries[:index], c.entries[index+1:]...)
	return nil
}

// Entries returns a copy of the cart contents in display order.
func (c *Cart) Entries() []CartEntry {
	out := make([]CartEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Len reports the number of entries.
func (c *Cart) Len() int {
	return len(c.entries)
}

// Clear empties the cart. Called after a successful submission only.
func (c *Cart) Clear() {
	c.entries = nil
}
