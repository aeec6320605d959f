package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trackedLine(id string) IngredientLine {
	l := NewIngredientLine()
	l.Resolve(Ingredient{ID: id, Name: "bun", Unit: "pcs"})
	_ = l.SetTracked(true)
	return l
}

func TestNewMenuItemSeedsRegularVariation(t *testing.T) {
	item := NewMenuItem("Burger", "classic", "mains")

	require.Len(t, item.Variations, 1)
	assert.Equal(t, DefaultVariationName, item.Variations[0].Name)
	assert.False(t, item.IsInventoryControlled())
}

func TestUpsertVariationReplacesInPlace(t *testing.T) {
	item := NewMenuItem("Burger", "", "mains")
	item.UpsertVariation(Variation{Name: "Large", Price: 12})
	item.UpsertVariation(Variation{Name: "Kids", Price: 6})

	item.UpsertVariation(Variation{Name: "Large", Price: 13})

	require.Len(t, item.Variations, 3)
	assert.Equal(t, "Large", item.Variations[1].Name, "replacement keeps position")
	assert.Equal(t, 13.0, item.Variations[1].Price)
}

func TestRemoveVariationRequiresConfirmation(t *testing.T) {
	item := NewMenuItem("Burger", "", "mains")
	item.UpsertVariation(Variation{Name: "Large"})

	assert.False(t, item.RemoveVariation("Large", false))
	require.Len(t, item.Variations, 2)

	assert.True(t, item.RemoveVariation("Large", true))
	require.Len(t, item.Variations, 1)

	assert.False(t, item.RemoveVariation("Large", true), "already gone")
}

func TestInventoryControlDerivedFromTracking(t *testing.T) {
	item := NewMenuItem("Burger", "", "mains")
	assert.False(t, item.IsInventoryControlled())

	v := Variation{Name: "Large", Ingredients: []IngredientLine{trackedLine("i9")}}
	item.UpsertVariation(v)
	assert.True(t, item.IsInventoryControlled())

	// Untracking the only tracked line flips the flag back after recompute.
	require.NoError(t, item.Variations[1].Ingredients[0].SetTracked(false))
	item.Recompute()
	assert.False(t, item.IsInventoryControlled())

	item.UpsertVariation(v)
	require.True(t, item.IsInventoryControlled())
	item.RemoveVariation("Large", true)
	assert.False(t, item.IsInventoryControlled())
}

func TestMenuItemJSONCarriesDerivedFlag(t *testing.T) {
	item := NewMenuItem("Burger", "", "mains")
	item.UpsertVariation(Variation{Name: "Large", Ingredients: []IngredientLine{trackedLine("i1")}})

	data, err := json.Marshal(item)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"isInventoryControlled":true`)

	var decoded MenuItem
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, decoded.IsInventoryControlled())

	// A payload that lies about the flag is corrected on decode.
	var forged MenuItem
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Tea","category":"drinks","isInventoryControlled":true,"variations":[]}`), &forged))
	assert.False(t, forged.IsInventoryControlled())
}

func TestVariationByID(t *testing.T) {
	item := NewMenuItem("Burger", "", "mains")
	item.UpsertVariation(Variation{ID: "v2", Name: "Large"})

	require.NotNil(t, item.VariationByID("v2"))
	assert.Nil(t, item.VariationByID("v-missing"))
}

func TestVariationCloneIsIndependent(t *testing.T) {
	src := Variation{Name: "Large", Ingredients: []IngredientLine{trackedLine("i1")}}
	dst := src.Clone()

	dst.Ingredients[0].Name = "changed"

	assert.Equal(t, "bun", src.Ingredients[0].Name)
}
