package menu

import (
	"context"
	"strings"
	"testing"

	"chowhub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeInventory resolves names from a fixed map, the way the real inventory
// service resolves them from the database.
type fakeInventory struct {
	byName map[string]models.Ingredient
}

func (f *fakeInventory) FindIngredientByName(_ context.Context, name string) (*models.Ingredient, error) {
	ing, ok := f.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, models.ErrIngredientNotFound
	}
	return &ing, nil
}

func testInventory() *fakeInventory {
	return &fakeInventory{byName: map[string]models.Ingredient{
		"bun":  {ID: "i1", Name: "Bun", Unit: "pcs", Quantity: 40},
		"beef": {ID: "i2", Name: "Beef", Unit: "kg", Quantity: 7.5},
	}}
}

func TestAmountCoercion(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  float64
	}{
		{"plain", "12.50", 12.50},
		{"padded", " 3 ", 3},
		{"non numeric", "abc", 0},
		{"empty", "", 0},
		{"negative", "-4", 0},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			b := NewVariationBuilder(testInventory())
			b.SetPrice(tt.input)
			b.SetCost(tt.input)
			v := b.Variation()
			assert.Equal(t, tt.want, v.Price)
			assert.Equal(t, tt.want, v.Cost)
		})
	}
}

func TestCheckLineResolvesAgainstInventory(t *testing.T) {
	b := NewVariationBuilder(testInventory())
	i := b.AddIngredientLine()
	require.NoError(t, b.SetLineName(i, "  Bun "))

	require.NoError(t, b.CheckLine(context.Background(), i))

	line, err := b.Line(i)
	require.NoError(t, err)
	assert.True(t, line.IsChecked)
	assert.Equal(t, "i1", line.IngredientID)
	assert.Equal(t, "pcs", line.Unit)
	assert.Equal(t, 40.0, line.InventoryQuantity)
}

func TestCheckLineMissLeavesLineUnresolved(t *testing.T) {
	b := NewVariationBuilder(testInventory())
	i := b.AddIngredientLine()
	require.NoError(t, b.SetLineName(i, "unicorn dust"))

	err := b.CheckLine(context.Background(), i)

	assert.ErrorIs(t, err, models.ErrIngredientNotFound)
	line, lerr := b.Line(i)
	require.NoError(t, lerr)
	assert.False(t, line.IsChecked)
	assert.Empty(t, line.IngredientID)
	assert.ErrorIs(t, b.SetLineTracked(i, true), models.ErrNotResolved)
}

func TestCheckLineRejectsBlankName(t *testing.T) {
	b := NewVariationBuilder(testInventory())
	i := b.AddIngredientLine()

	var verr *ValidationError
	assert.ErrorAs(t, b.CheckLine(context.Background(), i), &verr)
}

func TestRemoveIngredientLineShiftsIndices(t *testing.T) {
	b := NewVariationBuilder(testInventory())
	for _, name := range []string{"first", "second", "third"} {
		i := b.AddIngredientLine()
		require.NoError(t, b.SetLineName(i, name))
	}

	require.NoError(t, b.RemoveIngredientLine(1))

	v := b.Variation()
	require.Len(t, v.Ingredients, 2)
	assert.Equal(t, "first", v.Ingredients[0].Name)
	assert.Equal(t, "third", v.Ingredients[1].Name)

	assert.ErrorIs(t, b.RemoveIngredientLine(2), ErrLineIndex)
	assert.ErrorIs(t, b.RemoveIngredientLine(-1), ErrLineIndex)
}

func TestSaveValidationOrder(t *testing.T) {
	siblings := []models.Variation{{Name: "Regular"}, {Name: "Large"}}

	t.Run("empty name first", func(t *testing.T) {
		b := NewVariationBuilder(testInventory())
		b.SetName("   ")
		_, err := b.Save(siblings)
		assert.ErrorIs(t, err, ErrEmptyName)
	})

	t.Run("then missing ingredients", func(t *testing.T) {
		b := NewVariationBuilder(testInventory())
		b.SetName("Large")
		_, err := b.Save(siblings)
		assert.ErrorIs(t, err, ErrNoIngredients)
	})

	t.Run("then duplicate name, case-insensitive", func(t *testing.T) {
		b := NewVariationBuilder(testInventory())
		b.SetName("lARGE")
		b.AddIngredientLine()
		_, err := b.Save(siblings)
		assert.ErrorIs(t, err, ErrDuplicateName)
	})

	t.Run("editing a variation does not collide with itself", func(t *testing.T) {
		b := EditVariation(testInventory(), models.Variation{
			ID:          "v1",
			Name:        "Large",
			Ingredients: []models.IngredientLine{{Name: "bun"}},
		})
		saved, err := b.Save(siblings)
		require.NoError(t, err)
		assert.Equal(t, "Large", saved.Name)
		assert.Equal(t, "v1", saved.ID)
	})

	t.Run("valid save assigns an id", func(t *testing.T) {
		b := NewVariationBuilder(testInventory())
		b.SetName("Kids")
		b.SetPrice("6.50")
		b.AddIngredientLine()
		saved, err := b.Save(siblings)
		require.NoError(t, err)
		assert.NotEmpty(t, saved.ID)
		assert.Equal(t, 6.5, saved.Price)
	})
}

func TestMatchIngredientsCopiesBaseByValue(t *testing.T) {
	base := models.Variation{
		Name: "Regular",
		Ingredients: []models.IngredientLine{{
			Name:         "Bun",
			Unit:         "pcs",
			IngredientID: "i1",
			QuantityUsed: 2,
			Track:        true,
			IsChecked:    true,
		}},
	}

	b := NewVariationBuilder(testInventory())
	b.SetName("Large")
	b.MatchIngredients(base)

	v := b.Variation()
	require.Len(t, v.Ingredients, 1)
	got := v.Ingredients[0]
	assert.Equal(t, "Bun", got.Name)
	assert.Equal(t, "pcs", got.Unit)
	assert.Equal(t, "i1", got.IngredientID)
	assert.False(t, got.Track, "tracking decisions are not inherited")
	assert.False(t, got.IsChecked)
	assert.Zero(t, got.QuantityUsed, "consumption amounts are not inherited")

	// Distinct list instance: editing the copy never reaches the base.
	require.NoError(t, b.SetLineName(0, "Sesame Bun"))
	assert.Equal(t, "Bun", base.Ingredients[0].Name)
}

func TestBuilderDoesNotAliasSeedVariation(t *testing.T) {
	src := models.Variation{Name: "Large", Ingredients: []models.IngredientLine{{Name: "bun"}}}
	b := EditVariation(testInventory(), src)

	require.NoError(t, b.SetLineName(0, "brioche"))

	assert.Equal(t, "bun", src.Ingredients[0].Name)
}
