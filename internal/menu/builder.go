package menu

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"chowhub/internal/models"

	"github.com/google/uuid"
)

// ValidationError reports a save rule violation. The operation that raised it
// has no side effects; the user fixes the input and retries.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

var (
	// ErrEmptyName rejects a variation with a blank name.
	ErrEmptyName = &ValidationError{Reason: "variation name cannot be empty"}
	// ErrNoIngredients rejects a variation without ingredient lines.
	ErrNoIngredients = &ValidationError{Reason: "variation must include at least one ingredient"}
	// ErrDuplicateName rejects a name already used by a sibling variation.
	ErrDuplicateName = &ValidationError{Reason: "variation name must be unique"}
)

// ErrLineIndex is returned for out-of-range ingredient line indices.
var ErrLineIndex = errors.New("ingredient line index out of range")

// InventoryLookup is the inventory collaborator the builder resolves
// ingredient names against.
type InventoryLookup interface {
	FindIngredientByName(ctx context.Context, name string) (*models.Ingredient, error)
}

// VariationBuilder drives the editing session for a single variation: field
// edits, the ingredient line list, and the save validation contract. Each
// builder is owned by one editing session; it holds its own copy of the
// variation and never aliases caller state.
type VariationBuilder struct {
	inventory InventoryLookup
	variation models.Variation

	// originalName identifies the sibling this edit replaces, so the
	// uniqueness check does not trip over the variation itself.
	originalName string
}

// NewVariationBuilder starts from an empty template.
func NewVariationBuilder(inventory InventoryLookup) *VariationBuilder {
	return &VariationBuilder{
		inventory: inventory,
		variation: models.Variation{Ingredients: []models.IngredientLine{}},
	}
}

// EditVariation starts from a copy of an existing variation.
func EditVariation(inventory InventoryLookup, src models.Variation) *VariationBuilder {
	return &VariationBuilder{
		inventory:    inventory,
		variation:    src.Clone(),
		originalName: src.Name,
	}
}

// Variation returns a snapshot of the work in progress.
func (b *VariationBuilder) Variation() models.Variation {
	return b.variation.Clone()
}

// SetName updates the variation name.
func (b *VariationBuilder) SetName(name string) {
	b.variation.Name = name
}

// SetPrice stores the selling price. Form input arrives as text; anything that
// does not parse as a non-negative number becomes 0.
func (b *VariationBuilder) SetPrice(value string) {
	b.variation.Price = coerceAmount(value)
}

// SetCost stores the preparation cost, with the same coercion as SetPrice.
func (b *VariationBuilder) SetCost(value string) {
	b.variation.Cost = coerceAmount(value)
}

func coerceAmount(value string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || f < 0 {
		return 0
	}
	return f
}

// AddIngredientLine appends an empty line and returns its index.
func (b *VariationBuilder) AddIngredientLine() int {
	b.variation.Ingredients = append(b.variation.Ingredients, models.NewIngredientLine())
	return len(b.variation.Ingredients) - 1
}

// RemoveIngredientLine deletes the line at index; later lines shift down, so
// callers must not hold on to stale indices across a remove.
func (b *VariationBuilder) RemoveIngredientLine(index int) error {
	if index < 0 || index >= len(b.variation.Ingredients) {
		return ErrLineIndex
	}
	b.variation.Ingredients = append(b.variation.Ingredients[:index], b.variation.Ingredients[index+1:]...)
	return nil
}

// Line exposes the line at index for transition calls.
func (b *VariationBuilder) Line(index int) (*models.IngredientLine, error) {
	if index < 0 || index >= len(b.variation.Ingredients) {
		return nil, ErrLineIndex
	}
	return &b.variation.Ingredients[index], nil
}

// SetLineName updates a line's display name, dropping any stale inventory
// confirmation.
func (b *VariationBuilder) SetLineName(index int, name string) error {
	line, err := b.Line(index)
	if err != nil {
		return err
	}
	line.SetName(name)
	return nil
}

// SetLineQuantity stores the amount consumed per unit sold, coerced like
// price and cost.
func (b *VariationBuilder) SetLineQuantity(index int, value string) error {
	line, err := b.Line(index)
	if err != nil {
		return err
	}
	line.QuantityUsed = coerceAmount(value)
	return nil
}

// SetLineTracked toggles inventory deduction for a line. Fails without
// touching the line when it has no confirmed inventory link.
func (b *VariationBuilder) SetLineTracked(index int, track bool) error {
	line, err := b.Line(index)
	if err != nil {
		return err
	}
	return line.SetTracked(track)
}

// SetLineCustom toggles a line between custom text and inventory-linked entry.
func (b *VariationBuilder) SetLineCustom(index int, custom bool) error {
	line, err := b.Line(index)
	if err != nil {
		return err
	}
	line.SetCustom(custom)
	return nil
}

// SelectLineIngredient links a line to an explicitly chosen inventory
// ingredient; nil is the "none" option and resets the line.
func (b *VariationBuilder) SelectLineIngredient(index int, ing *models.Ingredient) error {
	line, err := b.Line(index)
	if err != nil {
		return err
	}
	line.Select(ing)
	return nil
}

// CheckLine resolves a line's name against inventory. On a hit the line
// mirrors the inventory record and is marked checked; on a miss it is left
// untouched and models.ErrIngredientNotFound is returned.
func (b *VariationBuilder) CheckLine(ctx context.Context, index int) error {
	line, err := b.Line(index)
	if err != nil {
		return err
	}
	name := strings.ToLower(strings.TrimSpace(line.Name))
	if name == "" {
		return &ValidationError{Reason: "enter an ingredient name first"}
	}
	ing, err := b.inventory.FindIngredientByName(ctx, name)
	if err != nil {
		return fmt.Errorf("check ingredient %q: %w", name, err)
	}
	line.Resolve(*ing)
	return nil
}

// MatchIngredients copies the base variation's ingredient list by value,
// keeping only the identity and unit linkage: confirmation, tracking, and
// quantities are reset so this variation makes its own consumption decisions.
func (b *VariationBuilder) MatchIngredients(base models.Variation) {
	matched := make([]models.IngredientLine, len(base.Ingredients))
	for i, src := range base.Ingredients {
		matched[i] = models.IngredientLine{
			Name:         src.Name,
			Unit:         src.Unit,
			IngredientID: src.IngredientID,
		}
	}
	b.variation.Ingredients = matched
}

// Save validates the variation against its prospective siblings and returns
// the value to upsert. Rules run in order and the first failure wins: name
// must be non-empty, at least one ingredient line must be present, and the
// name must be unique (case-insensitive) among siblings other than the
// variation being replaced.
func (b *VariationBuilder) Save(siblings []models.Variation) (models.Variation, error) {
	name := strings.TrimSpace(b.variation.Name)
	if name == "" {
		return models.Variation{}, ErrEmptyName
	}
	if len(b.variation.Ingredients) == 0 {
		return models.Variation{}, ErrNoIngredients
	}
	for _, sib := range siblings {
		if strings.EqualFold(sib.Name, name) && !strings.EqualFold(sib.Name, b.originalName) {
			return models.Variation{}, ErrDuplicateName
		}
	}

	out := b.variation.Clone()
	out.Name = name
	if out.ID == "" {
		out.ID = uuid.New().String()
	}
	return out, nil
}
