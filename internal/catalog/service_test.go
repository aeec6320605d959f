package catalog

import (
	"context"
	"testing"

	"chowhub/internal/database"
	"chowhub/internal/models"

	"github.com/jinzhu/gorm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testService(t *testing.T) *Service {
	t.Helper()
	db, err := gorm.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db))
	return NewService(db)
}

func sampleItem() *models.MenuItem {
	item := models.NewMenuItem("Burger", "house classic", "1")
	line := models.NewIngredientLine()
	line.Resolve(models.Ingredient{ID: "i1", Name: "Bun", Unit: "pcs", Quantity: 40})
	_ = line.SetTracked(true)
	item.UpsertVariation(models.Variation{
		Name:        "Regular",
		Price:       10,
		Cost:        4,
		Ingredients: []models.IngredientLine{line},
	})
	return item
}

func TestCreateAndFetchRoundTrip(t *testing.T) {
	s := testService(t)

	created, err := s.CreateMenuItem(context.Background(), sampleItem())
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.True(t, created.IsInventoryControlled())
	require.Len(t, created.Variations, 1)
	assert.NotEmpty(t, created.Variations[0].ID, "variations get ids on create")

	items, err := s.FetchMenuItems(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	got := items[0]
	assert.Equal(t, "Burger", got.Name)
	require.Len(t, got.Variations, 1)
	require.Len(t, got.Variations[0].Ingredients, 1)
	assert.Equal(t, "Bun", got.Variations[0].Ingredients[0].Name)
	assert.True(t, got.Variations[0].Ingredients[0].Track)
	assert.True(t, got.IsInventoryControlled())
}

func TestUpdateReplacesVariationSet(t *testing.T) {
	s := testService(t)
	created, err := s.CreateMenuItem(context.Background(), sampleItem())
	require.NoError(t, err)

	created.UpsertVariation(models.Variation{Name: "Large", Price: 14, Ingredients: []models.IngredientLine{{Name: "bun"}}})
	require.NoError(t, created.Variations[0].Ingredients[0].SetTracked(false))
	created.Recompute()

	updated, err := s.UpdateMenuItem(context.Background(), created)
	require.NoError(t, err)
	assert.Len(t, updated.Variations, 2)
	assert.False(t, updated.IsInventoryControlled(), "no tracked lines remain")

	reloaded, err := s.GetMenuItem(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Len(t, reloaded.Variations, 2)
}

func TestGetMenuItemNotFound(t *testing.T) {
	s := testService(t)

	_, err := s.GetMenuItem(context.Background(), "999")
	assert.ErrorIs(t, err, ErrMenuItemNotFound)

	_, err = s.GetMenuItem(context.Background(), "not-a-number")
	assert.ErrorIs(t, err, ErrMenuItemNotFound)
}

func TestDeleteMenuItem(t *testing.T) {
	s := testService(t)
	created, err := s.CreateMenuItem(context.Background(), sampleItem())
	require.NoError(t, err)

	require.NoError(t, s.DeleteMenuItem(context.Background(), created.ID))

	items, err := s.FetchMenuItems(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}
