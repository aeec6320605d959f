package recipes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"chowhub/internal/models"
)

// Recipe is a suggestion from the external catalog: enough to seed a new menu
// item. Ingredient triples are imported once by value; nothing stays bound to
// the catalog afterwards.
type Recipe struct {
	ID          int                `json:"id"`
	Title       string             `json:"title"`
	Image       string             `json:"image"`
	Summary     string             `json:"summary,omitempty"`
	Ingredients []RecipeIngredient `json:"ingredients,omitempty"`
}

// RecipeIngredient is one name/amount/unit triple from the catalog.
type RecipeIngredient struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

// Client talks to the external recipe catalog over its JSON API.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient requires the catalog's base URL and API key.
func NewClient(baseURL, apiKey string) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("recipe catalog base URL is required")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("recipe catalog API key is required")
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}, nil
}

type searchResponse struct {
	Results []Recipe `json:"results"`
}

type detailResponse struct {
	ID                  int    `json:"id"`
	Title               string `json:"title"`
	Image               string `json:"image"`
	Summary             string `json:"summary"`
	ExtendedIngredients []struct {
		Name   string  `json:"name"`
		Amount float64 `json:"amount"`
		Unit   string  `json:"unit"`
	} `json:"extendedIngredients"`
}

// Search queries the catalog by free text and returns up to five suggestions
// without ingredient details; use Get for the full recipe.
func (c *Client) Search(ctx context.Context, query string) ([]Recipe, error) {
	q := url.Values{"query": {query}, "number": {"5"}, "apiKey": {c.apiKey}}
	var resp searchResponse
	if err := c.getJSON(ctx, "/recipes/complexSearch?"+q.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("search recipe catalog: %w", err)
	}
	return resp.Results, nil
}

// Get fetches one recipe with its ingredient triples.
func (c *Client) Get(ctx context.Context, id int) (*Recipe, error) {
	q := url.Values{"apiKey": {c.apiKey}}
	var resp detailResponse
	if err := c.getJSON(ctx, fmt.Sprintf("/recipes/%d/information?%s", id, q.Encode()), &resp); err != nil {
		return nil, fmt.Errorf("fetch recipe %d: %w", id, err)
	}
	recipe := &Recipe{
		ID:      resp.ID,
		Title:   resp.Title,
		Image:   resp.Image,
		Summary: stripTags(resp.Summary),
	}
	for _, ing := range resp.ExtendedIngredients {
		recipe.Ingredients = append(recipe.Ingredients, RecipeIngredient{
			Name:   strings.ToLower(ing.Name),
			Amount: ing.Amount,
			Unit:   ing.Unit,
		})
	}
	return recipe, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("catalog returned %s", resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// stripTags drops HTML markup from catalog summaries.
func stripTags(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// SeedMenuItem applies a recipe to a draft menu item: name, description,
// image, and the base "Regular" variation's ingredient list. Imported lines
// start unresolved and untracked; the user checks them against inventory
// afterwards. One-time copy, never a live binding.
func SeedMenuItem(item *models.MenuItem, recipe *Recipe) {
	item.Name = recipe.Title
	item.Description = recipe.Summary
	if recipe.Image != "" {
		item.Image = recipe.Image
	}

	lines := make([]models.IngredientLine, len(recipe.Ingredients))
	for i, ing := range recipe.Ingredients {
		lines[i] = models.IngredientLine{
			Name:         ing.Name,
			Unit:         ing.Unit,
			QuantityUsed: ing.Amount,
		}
	}
	for i := range item.Variations {
		if item.Variations[i].Name == models.DefaultVariationName {
			item.Variations[i].Ingredients = lines
			break
		}
	}
	item.Recompute()
}
