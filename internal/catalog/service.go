package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"chowhub/internal/database"
	"chowhub/internal/models"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
)

// ErrMenuItemNotFound is returned when a menu item id does not resolve.
var ErrMenuItemNotFound = errors.New("menu item not found")

// Service persists the menu catalog. Variations are stored as one
// JSON-encoded unit per item, mirroring how the client submits them.
type Service struct {
	db *gorm.DB
}

// NewService wraps a database handle.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// FetchMenuItems returns the whole catalog for the ordering flow.
func (s *Service) FetchMenuItems(ctx context.Context) ([]*models.MenuItem, error) {
	var recs []database.MenuItemRecord
	if err := s.db.Order("name").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("fetch menu items: %w", err)
	}
	items := make([]*models.MenuItem, len(recs))
	for i, rec := range recs {
		item, err := toMenuItem(rec)
		if err != nil {
			return nil, err
		}
		items[i] = item
	}
	return items, nil
}

// GetMenuItem loads one item by id.
func (s *Service) GetMenuItem(ctx context.Context, id string) (*models.MenuItem, error) {
	rec, err := s.find(id)
	if err != nil {
		return nil, err
	}
	return toMenuItem(*rec)
}

// CreateMenuItem stores a new item. Variations without an id receive one, and
// the derived inventory-control flag is recomputed before the write.
func (s *Service) CreateMenuItem(ctx context.Context, item *models.MenuItem) (*models.MenuItem, error) {
	ensureVariationIDs(item)
	item.Recompute()
	blob, err := json.Marshal(item.Variations)
	if err != nil {
		return nil, fmt.Errorf("encode variations: %w", err)
	}
	rec := database.MenuItemRecord{
		Name:                item.Name,
		Description:         item.Description,
		CategoryID:          item.Category,
		Image:               item.Image,
		InventoryControlled: item.IsInventoryControlled(),
		Variations:          string(blob),
	}
	if err := s.db.Create(&rec).Error; err != nil {
		return nil, fmt.Errorf("create menu item: %w", err)
	}
	return toMenuItem(rec)
}

// UpdateMenuItem replaces an existing item's fields and variation set.
func (s *Service) UpdateMenuItem(ctx context.Context, item *models.MenuItem) (*models.MenuItem, error) {
	rec, err := s.find(item.ID)
	if err != nil {
		return nil, err
	}
	ensureVariationIDs(item)
	item.Recompute()
	blob, err := json.Marshal(item.Variations)
	if err != nil {
		return nil, fmt.Errorf("encode variations: %w", err)
	}
	rec.Name = item.Name
	rec.Description = item.Description
	rec.CategoryID = item.Category
	rec.Image = item.Image
	rec.InventoryControlled = item.IsInventoryControlled()
	rec.Variations = string(blob)
	if err := s.db.Save(rec).Error; err != nil {
		return nil, fmt.Errorf("update menu item: %w", err)
	}
	return toMenuItem(*rec)
}

// DeleteMenuItem removes an item from the catalog.
func (s *Service) DeleteMenuItem(ctx context.Context, id string) error {
	rec, err := s.find(id)
	if err != nil {
		return err
	}
	if err := s.db.Delete(rec).Error; err != nil {
		return fmt.Errorf("delete menu item: %w", err)
	}
	return nil
}

func (s *Service) find(id string) (*database.MenuItemRecord, error) {
	numeric, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return nil, ErrMenuItemNotFound
	}
	var rec database.MenuItemRecord
	dbErr := s.db.First(&rec, uint(numeric)).Error
	if gorm.IsRecordNotFoundError(dbErr) {
		return nil, ErrMenuItemNotFound
	}
	if dbErr != nil {
		return nil, fmt.Errorf("load menu item: %w", dbErr)
	}
	return &rec, nil
}

func ensureVariationIDs(item *models.MenuItem) {
	for i := range item.Variations {
		if item.Variations[i].ID == "" {
			item.Variations[i].ID = uuid.New().String()
		}
	}
}

func toMenuItem(rec database.MenuItemRecord) (*models.MenuItem, error) {
	item := &models.MenuItem{
		ID:          strconv.FormatUint(uint64(rec.ID), 10),
		Name:        rec.Name,
		Description: rec.Description,
		Category:    rec.CategoryID,
		Image:       rec.Image,
	}
	if rec.Variations != "" {
		if err := json.Unmarshal([]byte(rec.Variations), &item.Variations); err != nil {
			return nil, fmt.Errorf("decode variations for menu item %d: %w", rec.ID, err)
		}
	}
	item.Recompute()
	return item, nil
}
