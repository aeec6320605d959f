package api

import (
	"errors"
	"net/http"

	"chowhub/internal/ordering"

	"github.com/gin-gonic/gin"
)

// orderRequest is the ordering screen's submission: raw selections plus an
// optional comment. Line items and totals are derived server-side.
type orderRequest struct {
	Items []struct {
		MenuItemID string `json:"menuItemId"`
		VariantID  string `json:"variantId"`
		Quantity   int    `json:"quantity"`
	} `json:"items"`
	Comment string `json:"comment"`
}

// CreateOrder runs the full pipeline for one submission: selections into a
// merged cart, cart into priced line items and totals, totals into a stored
// order. Accepted orders are announced on the live feed.
func (s *Server) CreateOrder(c *gin.Context) {
	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "order must contain at least one item"})
		return
	}

	cart := ordering.NewCart()
	for _, sel := range req.Items {
		item, err := s.catalog.GetMenuItem(c.Request.Context(), sel.MenuItemID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown menu item " + sel.MenuItemID})
			return
		}
		if err := cart.Add(*item, sel.VariantID, sel.Quantity); err != nil {
			if errors.Is(err, ordering.ErrInvalidQuantity) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must be a positive integer"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	checkout := &ordering.Checkout{Cart: cart, Acceptor: s.orders}
	accepted, err := checkout.Submit(c.Request.Context(), req.Comment)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	s.feed.Announce(accepted)
	c.JSON(http.StatusCreated, gin.H{
		"orderId":  accepted.ID,
		"subtotal": accepted.Subtotal,
		"tax":      accepted.Tax,
		"total":    accepted.Total,
	})
}

// ListOrders returns accepted orders, newest first.
func (s *Server) ListOrders(c *gin.Context) {
	ordersList, err := s.orders.ListOrders(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": ordersList})
}
