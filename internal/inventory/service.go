package inventory

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"chowhub/internal/database"
	"chowhub/internal/models"
	"chowhub/internal/monitoring"

	"github.com/jinzhu/gorm"
)

// Service exposes the inventory to the menu composition and ordering flows.
type Service struct {
	db *gorm.DB
}

// NewService wraps a database handle.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// ListResult is one page of ingredients plus the overall stock summary. The
// low/critical totals cover the whole inventory, not just the page.
type ListResult struct {
	Items              []models.Ingredient `json:"ingredients"`
	Total              int                 `json:"total"`
	LowStockTotal      int                 `json:"totalLowStock"`
	CriticalStockTotal int                 `json:"totalCriticalStock"`
}

// FindIngredientByName resolves a trimmed, case-insensitive name to an
// inventory ingredient. A miss is reported as models.ErrIngredientNotFound
// and counted, never treated as fatal.
func (s *Service) FindIngredientByName(ctx context.Context, name string) (*models.Ingredient, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return nil, models.ErrIngredientNotFound
	}
	var rec database.IngredientRecord
	err := s.db.Where("LOWER(name) = ?", name).First(&rec).Error
	if gorm.IsRecordNotFoundError(err) {
		monitoring.IngredientSearchMisses.Inc()
		return nil, models.ErrIngredientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find ingredient by name: %w", err)
	}
	ing := toIngredient(rec)
	return &ing, nil
}

// ListIngredients returns one page of ingredients matching the search term,
// with inventory-wide stock totals for the dashboard summary cards.
func (s *Service) ListIngredients(ctx context.Context, page, pageSize int, search string) (*ListResult, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	query := s.db.Model(&database.IngredientRecord{})
	if search = strings.TrimSpace(search); search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	var total int
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count ingredients: %w", err)
	}

	var recs []database.IngredientRecord
	if err := query.Order("name").Offset((page - 1) * pageSize).Limit(pageSize).Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}

	var low, critical int
	summary := s.db.Model(&database.IngredientRecord{})
	if err := summary.Where("quantity <= critical_threshold").Count(&critical).Error; err != nil {
		return nil, fmt.Errorf("count critical stock: %w", err)
	}
	if err := s.db.Model(&database.IngredientRecord{}).
		Where("quantity <= low_threshold AND quantity > critical_threshold").
		Count(&low).Error; err != nil {
		return nil, fmt.Errorf("count low stock: %w", err)
	}

	result := &ListResult{
		Items:              make([]models.Ingredient, len(recs)),
		Total:              total,
		LowStockTotal:      low,
		CriticalStockTotal: critical,
	}
	for i, rec := range recs {
		result.Items[i] = toIngredient(rec)
	}
	return result, nil
}

// ListCategories returns all menu categories.
func (s *Service) ListCategories(ctx context.Context) ([]models.Category, error) {
	var recs []database.CategoryRecord
	if err := s.db.Order("name").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	out := make([]models.Category, len(recs))
	for i, rec := range recs {
		out[i] = models.Category{ID: formatID(rec.ID), Name: rec.Name}
	}
	return out, nil
}

// CreateIngredient adds a stocked ingredient.
func (s *Service) CreateIngredient(ctx context.Context, ing models.Ingredient) (*models.Ingredient, error) {
	rec := database.IngredientRecord{
		Name:              ing.Name,
		Unit:              ing.Unit,
		Quantity:          ing.Quantity,
		LowThreshold:      ing.LowThreshold,
		CriticalThreshold: ing.CriticalThreshold,
	}
	if err := s.db.Create(&rec).Error; err != nil {
		return nil, fmt.Errorf("create ingredient: %w", err)
	}
	created := toIngredient(rec)
	return &created, nil
}

// CreateCategory adds a menu category.
func (s *Service) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	rec := database.CategoryRecord{Name: name}
	if err := s.db.Create(&rec).Error; err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return &models.Category{ID: formatID(rec.ID), Name: rec.Name}, nil
}

func toIngredient(rec database.IngredientRecord) models.Ingredient {
	return models.Ingredient{
		ID:                formatID(rec.ID),
		Name:              rec.Name,
		Unit:              rec.Unit,
		Quantity:          rec.Quantity,
		LowThreshold:      rec.LowThreshold,
		CriticalThreshold: rec.CriticalThreshold,
	}
}

func formatID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
