package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// ApiClient handles API requests to the ChowHub back-office API
type ApiClient struct {
	httpClient *http.Client
	BaseURL    string
	Token      string
	UseMock    bool
}

// NewApiClient creates a new API client
func NewApiClient() *ApiClient {
	baseURL := os.Getenv("CHOWHUB_API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	client := &ApiClient{
		httpClient: &http.Client{
			Timeout: time.Second * 10,
		},
		BaseURL: baseURL,
		Token:   os.Getenv("CHOWHUB_API_TOKEN"),
		UseMock: false, // Default to trying the real server first
	}

	// Verify connectivity - if server is not available, use mock data
	if !client.ping() {
		fmt.Printf("Warning: API server at %s is not available. Using mock data.\n", baseURL)
		client.UseMock = true
	}

	return client
}

// ping checks if the API server is available
func (c *ApiClient) ping() bool {
	resp, err := c.httpClient.Get(c.BaseURL + "/health")
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// do issues an authenticated request and decodes the JSON response into out.
func (c *ApiClient) do(method, path string, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		raw, _ := io.ReadAll(resp.Body)
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%s %s: %s", method, path, apiErr.Error)
		}
		return fmt.Errorf("%s %s: unexpected status code %d", method, path, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// Variation is one sellable form of a menu item
type Variation struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// MenuItem represents an item on the menu
type MenuItem struct {
	ID                    string      `json:"id"`
	Name                  string      `json:"name"`
	Description           string      `json:"description"`
	Category              string      `json:"category"`
	IsInventoryControlled bool        `json:"isInventoryControlled"`
	Variations            []Variation `json:"variations"`
}

// Ingredient represents a stock item in the inventory
type Ingredient struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Unit              string  `json:"unit"`
	Quantity          float64 `json:"quantity"`
	LowThreshold      float64 `json:"lowThreshold"`
	CriticalThreshold float64 `json:"criticalThreshold"`
}

// InventoryPage is one page of ingredients plus the stock summary counts
type InventoryPage struct {
	Ingredients        []Ingredient `json:"ingredients"`
	Total              int          `json:"total"`
	TotalLowStock      int          `json:"totalLowStock"`
	TotalCriticalStock int          `json:"totalCriticalStock"`
}

// OrderLine is one priced line of a submitted order
type OrderLine struct {
	MenuItemID    string  `json:"menuItemId"`
	Name          string  `json:"name"`
	VariationName string  `json:"variationName"`
	Quantity      int     `json:"quantity"`
	Price         float64 `json:"price"`
	SubTotal      float64 `json:"subTotal"`
}

// Order represents a submitted order with its totals
type Order struct {
	ID        string      `json:"id"`
	LineItems []OrderLine `json:"lineItems"`
	Subtotal  float64     `json:"subtotal"`
	Tax       float64     `json:"tax"`
	Total     float64     `json:"total"`
	Comment   string      `json:"comment,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
}

// OrderItemRequest is one cart line sent when submitting an order
type OrderItemRequest struct {
	MenuItemID string `json:"menuItemId"`
	VariantID  string `json:"variantId"`
	Quantity   int    `json:"quantity"`
}

// OrderReceipt is the server's acknowledgement of an accepted order
type OrderReceipt struct {
	OrderID  string  `json:"orderId"`
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// GetMenuItems retrieves the full menu catalog
func (c *ApiClient) GetMenuItems() ([]MenuItem, error) {
	if c.UseMock {
		return c.getMockMenuItems(), nil
	}

	var out struct {
		MenuItems []MenuItem `json:"menuItems"`
	}
	if err := c.do("GET", "/api/v1/menu-management", nil, &out); err != nil {
		return nil, err
	}
	return out.MenuItems, nil
}

// GetInventory retrieves one page of the ingredient inventory
func (c *ApiClient) GetInventory(page int) (*InventoryPage, error) {
	if c.UseMock {
		return c.getMockInventory(), nil
	}

	var out InventoryPage
	path := fmt.Sprintf("/api/v1/ingredients?page=%d&limit=25", page)
	if err := c.do("GET", path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetOrders retrieves submitted orders, newest first
func (c *ApiClient) GetOrders() ([]Order, error) {
	if c.UseMock {
		return c.getMockOrders(), nil
	}

	var out struct {
		Orders []Order `json:"orders"`
	}
	if err := c.do("GET", "/api/v1/orders", nil, &out); err != nil {
		return nil, err
	}
	return out.Orders, nil
}

// SubmitOrder sends the cart lines for acceptance and returns the receipt
func (c *ApiClient) SubmitOrder(items []OrderItemRequest, comment string) (*OrderReceipt, error) {
	if c.UseMock {
		return c.submitMockOrder(items), nil
	}

	payload := struct {
		Items   []OrderItemRequest `json:"items"`
		Comment string             `json:"comment,omitempty"`
	}{Items: items, Comment: comment}

	var out OrderReceipt
	if err := c.do("POST", "/api/v1/orders", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Mock data generators
// getMockMenuItems generates mock menu data for offline use
func (c *ApiClient) getMockMenuItems() []MenuItem {
	return []MenuItem{
		{
			ID: "1", Name: "Pho Bo", Category: "Mains",
			Description: "Beef noodle soup",
			Variations: []Variation{
				{ID: "v-pho-r", Name: "Regular", Price: 12.5},
				{ID: "v-pho-l", Name: "Large", Price: 15},
			},
		},
		{
			ID: "2", Name: "Banh Mi", Category: "Mains",
			Description: "Baguette sandwich",
			Variations: []Variation{
				{ID: "v-bm-r", Name: "Regular", Price: 8},
			},
		},
		{
			ID: "3", Name: "Iced Coffee", Category: "Drinks",
			Description: "Vietnamese iced coffee",
			Variations: []Variation{
				{ID: "v-ic-r", Name: "Regular", Price: 4.5},
				{ID: "v-ic-l", Name: "Large", Price: 5.5},
			},
		},
	}
}

// getMockInventory generates mock inventory data
func (c *ApiClient) getMockInventory() *InventoryPage {
	return &InventoryPage{
		Ingredients: []Ingredient{
			{ID: "1", Name: "rice noodles", Unit: "kg", Quantity: 12, LowThreshold: 5, CriticalThreshold: 2},
			{ID: "2", Name: "beef brisket", Unit: "kg", Quantity: 3, LowThreshold: 4, CriticalThreshold: 1},
			{ID: "3", Name: "cilantro", Unit: "bunch", Quantity: 1, LowThreshold: 6, CriticalThreshold: 2},
		},
		Total:              3,
		TotalLowStock:      1,
		TotalCriticalStock: 1,
	}
}

// getMockOrders generates mock order data
func (c *ApiClient) getMockOrders() []Order {
	return []Order{
		{
			ID:        "order-mock-1",
			Subtotal:  29,
			Tax:       3.77,
			Total:     32.77,
			CreatedAt: time.Now().Add(-30 * time.Minute),
			LineItems: []OrderLine{
				{MenuItemID: "1", Name: "Pho Bo", VariationName: "Regular", Quantity: 2, Price: 12.5, SubTotal: 25},
				{MenuItemID: "3", Name: "Iced Coffee", VariationName: "Regular", Quantity: 1, Price: 4, SubTotal: 4},
			},
		},
		{
			ID:        "order-mock-2",
			Subtotal:  8,
			Tax:       1.04,
			Total:     9.04,
			Comment:   "no pickles",
			CreatedAt: time.Now().Add(-10 * time.Minute),
			LineItems: []OrderLine{
				{MenuItemID: "2", Name: "Banh Mi", VariationName: "Regular", Quantity: 1, Price: 8, SubTotal: 8},
			},
		},
	}
}

// submitMockOrder simulates accepting an order, including the tax math
func (c *ApiClient) submitMockOrder(items []OrderItemRequest) *OrderReceipt {
	menu := c.getMockMenuItems()
	subtotal := 0.0
	for _, req := range items {
		for _, m := range menu {
			if m.ID != req.MenuItemID {
				continue
			}
			for _, v := range m.Variations {
				if v.ID == req.VariantID {
					subtotal += v.Price * float64(req.Quantity)
				}
			}
		}
	}
	tax := subtotal * 0.13
	return &OrderReceipt{
		OrderID:  fmt.Sprintf("order-mock-%d", time.Now().Unix()%1000),
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal + tax,
	}
}
