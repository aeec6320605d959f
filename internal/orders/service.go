package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"chowhub/internal/database"
	"chowhub/internal/models"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
)

// ErrEmptyOrder rejects submissions without line items.
var ErrEmptyOrder = errors.New("order must contain at least one line item")

// Service is the order-acceptance collaborator: it takes ownership of a
// finished order payload. Stock deduction, if any, belongs here and not to
// the composition/ordering core.
type Service struct {
	db *gorm.DB
}

// NewService wraps a database handle.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// SubmitOrder validates and persists an order, returning its id. Exactly one
// success or failure signal per call; callers keep their cart on failure.
func (s *Service) SubmitOrder(ctx context.Context, order models.Order) (string, error) {
	if len(order.LineItems) == 0 {
		return "", ErrEmptyOrder
	}

	rec := database.OrderRecord{
		ID:        uuid.New().String(),
		Subtotal:  models.RoundCents(order.Subtotal),
		Tax:       models.RoundCents(order.Tax),
		Total:     models.RoundCents(order.Total),
		Comment:   order.Comment,
		CreatedAt: time.Now(),
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return "", fmt.Errorf("begin order transaction: %w", tx.Error)
	}
	if err := tx.Create(&rec).Error; err != nil {
		tx.Rollback()
		return "", fmt.Errorf("store order: %w", err)
	}
	for _, line := range order.LineItems {
		lineRec := database.OrderLineRecord{
			OrderID:       rec.ID,
			MenuItemID:    line.MenuItemID,
			Name:          line.Name,
			VariationName: line.VariationName,
			Quantity:      line.Quantity,
			Price:         line.Price,
			SubTotal:      line.SubTotal,
		}
		if err := tx.Create(&lineRec).Error; err != nil {
			tx.Rollback()
			return "", fmt.Errorf("store order line: %w", err)
		}
	}
	if err := tx.Commit().Error; err != nil {
		return "", fmt.Errorf("commit order: %w", err)
	}
	return rec.ID, nil
}

// ListOrders returns accepted orders, newest first.
func (s *Service) ListOrders(ctx context.Context) ([]models.Order, error) {
	var recs []database.OrderRecord
	if err := s.db.Preload("Lines").Order("created_at desc").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	out := make([]models.Order, len(recs))
	for i, rec := range recs {
		out[i] = toOrder(rec)
	}
	return out, nil
}

func toOrder(rec database.OrderRecord) models.Order {
	order := models.Order{
		ID:        rec.ID,
		Subtotal:  rec.Subtotal,
		Tax:       rec.Tax,
		Total:     rec.Total,
		Comment:   rec.Comment,
		CreatedAt: rec.CreatedAt,
		LineItems: make([]models.OrderLineItem, len(rec.Lines)),
	}
	for i, line := range rec.Lines {
		order.LineItems[i] = models.OrderLineItem{
			MenuItemID:    line.MenuItemID,
			Name:          line.Name,
			VariationName: line.VariationName,
			Quantity:      line.Quantity,
			Price:         line.Price,
			SubTotal:      line.SubTotal,
		}
	}
	return order
}
