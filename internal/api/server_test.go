package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"chowhub/internal/auth"
	"chowhub/internal/catalog"
	"chowhub/internal/database"
	"chowhub/internal/inventory"
	"chowhub/internal/models"
	"chowhub/internal/orders"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/jinzhu/gorm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	server  *Server
	catalog *catalog.Service
	manager string
	staff   string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db))

	tokens, err := auth.NewTokens("test-secret")
	require.NoError(t, err)
	managerToken, err := tokens.Issue(auth.Session{UserID: "u1", RestaurantID: "r1", Role: auth.RoleManager})
	require.NoError(t, err)
	staffToken, err := tokens.Issue(auth.Session{UserID: "u2", RestaurantID: "r1", Role: "staff"})
	require.NoError(t, err)

	inv := inventory.NewService(db)
	_, err = inv.CreateIngredient(context.Background(), models.Ingredient{Name: "Bun", Unit: "pcs", Quantity: 40, LowThreshold: 10, CriticalThreshold: 2})
	require.NoError(t, err)
	_, err = inv.CreateCategory(context.Background(), "Mains")
	require.NoError(t, err)

	cat := catalog.NewService(db)
	return &testEnv{
		server:  NewServer(inv, cat, orders.NewService(db), nil, tokens),
		catalog: cat,
		manager: managerToken,
		staff:   staffToken,
	}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.server.Router.ServeHTTP(rec, req)
	return rec
}

func seedMenuItem(t *testing.T, e *testEnv) *models.MenuItem {
	t.Helper()
	item := models.NewMenuItem("Burger", "house classic", "1")
	item.UpsertVariation(models.Variation{
		Name:        "Regular",
		Price:       10,
		Ingredients: []models.IngredientLine{{Name: "bun", Unit: "pcs", IngredientID: "1"}},
	})
	created, err := e.catalog.CreateMenuItem(context.Background(), item)
	require.NoError(t, err)
	return created
}

func TestAuthGuards(t *testing.T) {
	e := newTestEnv(t)

	assert.Equal(t, http.StatusUnauthorized, e.do(t, http.MethodGet, "/api/v1/categories", "", nil).Code)

	payload := map[string]interface{}{"name": "Tea", "category": "1", "variations": []interface{}{}}
	assert.Equal(t, http.StatusForbidden, e.do(t, http.MethodPost, "/api/v1/menu-management", e.staff, payload).Code)
	assert.Equal(t, http.StatusCreated, e.do(t, http.MethodPost, "/api/v1/menu-management", e.manager, payload).Code)
}

func TestIngredientSearchEndpoint(t *testing.T) {
	e := newTestEnv(t)

	rec := e.do(t, http.MethodGet, "/api/v1/ingredients/search?name=bun", e.staff, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"found":true`)
	assert.Contains(t, rec.Body.String(), `"Bun"`)

	rec = e.do(t, http.MethodGet, "/api/v1/ingredients/search?name=caviar", e.staff, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"found":false`)
}

func TestIngredientListEndpoint(t *testing.T) {
	e := newTestEnv(t)

	rec := e.do(t, http.MethodGet, "/api/v1/ingredients?page=1&limit=10", e.staff, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Total              int `json:"total"`
		CriticalStockTotal int `json:"totalCriticalStock"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Total)
	assert.Zero(t, body.CriticalStockTotal)
}

func TestMenuItemLifecycle(t *testing.T) {
	e := newTestEnv(t)
	created := seedMenuItem(t, e)

	rec := e.do(t, http.MethodGet, "/api/v1/menu-management", e.staff, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"Burger"`)
	assert.Contains(t, rec.Body.String(), `"isInventoryControlled":false`)

	created.Description = "updated"
	rec = e.do(t, http.MethodPut, "/api/v1/menu-management/"+created.ID, e.manager, created)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"updated"`)

	rec = e.do(t, http.MethodDelete, "/api/v1/menu-management/"+created.ID, e.manager, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = e.do(t, http.MethodGet, "/api/v1/menu-management/"+created.ID, e.staff, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateOrderEndpoint(t *testing.T) {
	e := newTestEnv(t)
	item := seedMenuItem(t, e)
	variantID := item.Variations[0].ID

	// Duplicate selections merge before pricing: 2 + 1 of the same variant.
	payload := map[string]interface{}{
		"items": []map[string]interface{}{
			{"menuItemId": item.ID, "variantId": variantID, "quantity": 2},
			{"menuItemId": item.ID, "variantId": variantID, "quantity": 1},
		},
		"comment": "table 4",
	}
	rec := e.do(t, http.MethodPost, "/api/v1/orders", e.staff, payload)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var body struct {
		OrderID  string  `json:"orderId"`
		Subtotal float64 `json:"subtotal"`
		Tax      float64 `json:"tax"`
		Total    float64 `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body.OrderID)
	assert.Equal(t, 30.0, body.Subtotal)
	assert.Equal(t, 3.9, body.Tax)
	assert.Equal(t, 33.9, body.Total)

	list := e.do(t, http.MethodGet, "/api/v1/orders", e.staff, nil)
	require.Equal(t, http.StatusOK, list.Code)
	assert.Contains(t, list.Body.String(), body.OrderID)
	assert.Contains(t, list.Body.String(), `"table 4"`)
}

func TestCreateOrderRejectsBadInput(t *testing.T) {
	e := newTestEnv(t)
	item := seedMenuItem(t, e)

	rec := e.do(t, http.MethodPost, "/api/v1/orders", e.staff, map[string]interface{}{"items": []interface{}{}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = e.do(t, http.MethodPost, "/api/v1/orders", e.staff, map[string]interface{}{
		"items": []map[string]interface{}{{"menuItemId": item.ID, "variantId": "v1", "quantity": 0}},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = e.do(t, http.MethodPost, "/api/v1/orders", e.staff, map[string]interface{}{
		"items": []map[string]interface{}{{"menuItemId": "999", "variantId": "v1", "quantity": 1}},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStaleVariantStillPrices(t *testing.T) {
	e := newTestEnv(t)
	item := seedMenuItem(t, e)

	payload := map[string]interface{}{
		"items": []map[string]interface{}{
			{"menuItemId": item.ID, "variantId": "no-such-variant", "quantity": 2},
		},
	}
	rec := e.do(t, http.MethodPost, "/api/v1/orders", e.staff, payload)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total":0`)
}

func TestOrderFeedReceivesAnnouncements(t *testing.T) {
	e := newTestEnv(t)
	item := seedMenuItem(t, e)

	srv := httptest.NewServer(e.server.Router)
	t.Cleanup(srv.Close)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/orders/feed"
	header := http.Header{"Authorization": {"Bearer " + e.staff}}
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, header)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	payload := map[string]interface{}{
		"items": []map[string]interface{}{
			{"menuItemId": item.ID, "variantId": item.Variations[0].ID, "quantity": 1},
		},
	}
	rec := e.do(t, http.MethodPost, "/api/v1/orders", e.staff, payload)
	require.Equal(t, http.StatusCreated, rec.Code)

	var event OrderEvent
	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, "order.accepted", event.Type)
	assert.NotEmpty(t, event.OrderID)
	assert.Equal(t, 1, event.Lines)
	assert.Equal(t, 11.3, event.Total)
}

func TestHealthEndpoint(t *testing.T) {
	e := newTestEnv(t)
	rec := e.do(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}
