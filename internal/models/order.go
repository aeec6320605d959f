package models

import (
	"math"
	"strconv"
	"time"
)

// TaxRate is the fixed sales tax applied to every order.
const TaxRate = 0.13

// OrderLineItem is one billable line of a submitted order.
type OrderLineItem struct {
	MenuItemID    string  `json:"menuItemId"`
	Name          string  `json:"name"`
	VariationName string  `json:"variationName"`
	Quantity      int     `json:"quantity"`
	Price         float64 `json:"price"`
	SubTotal      float64 `json:"subTotal"`
}

// Order is the finalized, priced payload handed to order acceptance. Amounts
// are kept at full float precision; rounding to cents happens only when the
// payload is encoded for submission.
type Order struct {
	ID        string          `json:"id,omitempty"`
	LineItems []OrderLineItem `json:"lineItems"`
	Subtotal  float64         `json:"subtotal"`
	Tax       float64         `json:"tax"`
	Total     float64         `json:"total"`
	Comment   string          `json:"comment,omitempty"`
	CreatedAt time.Time       `json:"createdAt,omitempty"`
}

// RoundCents rounds half away from zero to two decimal places. Applied to
// order-level figures at the submission boundary only.
func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// FormatAmount renders a monetary figure with exactly two decimals.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(RoundCents(v), 'f', 2, 64)
}
