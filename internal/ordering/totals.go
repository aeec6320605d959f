package ordering

import (
	"context"
	"log"

	"chowhub/internal/models"
	"chowhub/internal/monitoring"
)

// Totals are the order-level figures at full float precision. Rounding to
// cents happens only when the submission payload is built.
type Totals struct {
	Subtotal float64
	Tax      float64
	Total    float64
}

// LineItems converts a cart snapshot into billable lines, one per entry. The
// cart is assumed already merged; lines are not re-merged. A variant id that
// no longer resolves within its item snapshot prices the line at zero rather
// than failing the whole order; such lines are logged and counted so a stale
// menu does not pass for a free one.
func LineItems(cart *Cart) []models.OrderLineItem {
	entries := cart.Entries()
	lines := make([]models.OrderLineItem, 0, len(entries))
	for _, entry := range entries {
		var price float64
		var variationName string
		if v := entry.Item.VariationByID(entry.VariantID); v != nil {
			price = v.Price
			variationName = v.Name
		} else {
			log.Printf("order line for %q references missing variant %s, pricing at 0", entry.Item.Name, entry.VariantID)
			monitoring.StaleVariantLines.Inc()
		}
		lines = append(lines, models.OrderLineItem{
			MenuItemID:    entry.Item.ID,
			Name:          entry.Item.Name,
			VariationName: variationName,
			Quantity:      entry.Quantity,
			Price:         price,
			SubTotal:      float64(entry.Quantity) * price,
		})
	}
	return lines
}

// ComputeTotals sums line subtotals and applies the fixed tax rate.
func ComputeTotals(lines []models.OrderLineItem) Totals {
	var subtotal float64
	for _, line := range lines {
		subtotal += line.SubTotal
	}
	tax := subtotal * models.TaxRate
	return Totals{Subtotal: subtotal, Tax: tax, Total: subtotal + tax}
}

// BuildOrder assembles the submission payload from a cart snapshot. This is
// the presentation boundary: order-level figures are rounded to cents here.
func BuildOrder(cart *Cart, comment string) models.Order {
	lines := LineItems(cart)
	totals := ComputeTotals(lines)
	return models.Order{
		LineItems: lines,
		Subtotal:  models.RoundCents(totals.Subtotal),
		Tax:       models.RoundCents(totals.Tax),
		Total:     models.RoundCents(totals.Total),
		Comment:   comment,
	}
}

// OrderAcceptor is the external collaborator that takes ownership of a
// finished order, including whatever stock deduction it implies.
type OrderAcceptor interface {
	SubmitOrder(ctx context.Context, order models.Order) (orderID string, err error)
}

// Checkout ties a session's cart to the order-acceptance collaborator.
type Checkout struct {
	Cart     *Cart
	Acceptor OrderAcceptor
}

// NewCheckout wires a fresh cart to an acceptor.
func NewCheckout(acceptor OrderAcceptor) *Checkout {
	return &Checkout{Cart: NewCart(), Acceptor: acceptor}
}

// Submit sends the current cart as an order: exactly one success or failure
// signal per call, no retries. On success the accepted payload comes back
// with its id and the cart is cleared; on failure the cart is preserved
// untouched so the user can retry.
func (c *Checkout) Submit(ctx context.Context, comment string) (models.Order, error) {
	order := BuildOrder(c.Cart, comment)
	id, err := c.Acceptor.SubmitOrder(ctx, order)
	if err != nil {
		monitoring.OrderSubmissionFailures.Inc()
		return models.Order{}, err
	}
	order.ID = id
	monitoring.OrdersSubmitted.Inc()
	monitoring.OrderTotalDollars.Observe(order.Total)
	c.Cart.Clear()
	return order, nil
}
