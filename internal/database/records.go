package database

import (
	"time"

	"github.com/jinzhu/gorm"
)

// IngredientRecord is a stocked inventory ingredient.
type IngredientRecord struct {
	gorm.Model
	Name              string `gorm:"unique_index;not null"`
	Unit              string `gorm:"not null"`
	Quantity          float64
	LowThreshold      float64
	CriticalThreshold float64
}

// CategoryRecord groups menu items.
type CategoryRecord struct {
	gorm.Model
	Name string `gorm:"unique_index;not null"`
}

// MenuItemRecord stores a menu item. Variations, together with their
// ingredient lines, travel as one JSON-encoded unit, the same way the client
// transports them as a single form field.
type MenuItemRecord struct {
	gorm.Model
	Name                string `gorm:"not null"`
	Description         string `gorm:"type:text"`
	CategoryID          string
	Image               string
	InventoryControlled bool
	Variations          string `gorm:"type:text"`
}

// OrderRecord is an accepted order.
type OrderRecord struct {
	ID        string `gorm:"primary_key"`
	Subtotal  float64
	Tax       float64
	Total     float64
	Comment   string `gorm:"type:text"`
	PlacedBy  string
	CreatedAt time.Time
	Lines     []OrderLineRecord `gorm:"foreignkey:OrderID"`
}

// OrderLineRecord is one billable line of an accepted order.
type OrderLineRecord struct {
	gorm.Model
	OrderID       string `gorm:"index"`
	MenuItemID    string
	Name          string
	VariationName string
	Quantity      int
	Price         float64
	SubTotal      float64
}
