package inventory

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aniketdange3/dental-clinic-api/internal/middleware"
	"github.com/aniketdange3/dental-clinic-api/internal/model"
	"github.com/aniketdange3/dental-clinic-api/internal/repository/memory"
	"github.com/aniketdange3/dental-clinic-api/internal/router"
	inventoryService "github.com/aniketdange3/dental-clinic-api/internal/service/inventory"
)

func newTestEngineWithOutbox(t *testing.T, outbox *memory.OutboxRepository) *gin.Engine {
	t.Helper()
	svc := inventoryService.NewService(memory.NewInventoryRepository())
	h := NewHandler(svc, outbox)

	r, err := router.New(router.Config{CORS: middleware.DefaultCORSConfig()}, h)
	require.NoError(t, err)
	return r.Engine()
}

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	return newTestEngineWithOutbox(t, memory.NewOutboxRepository())
}

func doJSON(engine *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestCreateItemAppliesDefaults(t *testing.T) {
	engine := newTestEngine(t)

	w := doJSON(engine, http.MethodPost, "/api/inventory", map[string]interface{}{
		"name":     "Gloves",
		"quantity": 100,
		"supplier": "MediSupply",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Message string              `json:"message"`
		Item    model.InventoryItem `json:"item"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Inventory item added successfully", resp.Message)
	assert.Equal(t, model.DefaultLowStockThreshold, resp.Item.LowStockThreshold)
	assert.False(t, resp.Item.PurchaseDate.IsZero())
	assert.Nil(t, resp.Item.ExpiryDate)
}

func TestCreateItemDateOnlyFields(t *testing.T) {
	engine := newTestEngine(t)

	w := doJSON(engine, http.MethodPost, "/api/inventory", map[string]interface{}{
		"name":         "Anesthetic",
		"quantity":     20,
		"purchaseDate": "2026-08-01",
		"expiryDate":   "2027-08-01",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Item model.InventoryItem `json:"item"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2026, resp.Item.PurchaseDate.Year())
	require.NotNil(t, resp.Item.ExpiryDate)
	assert.Equal(t, 2027, resp.Item.ExpiryDate.Year())
}

func TestCreateItemRejectsNegativeQuantity(t *testing.T) {
	engine := newTestEngine(t)

	w := doJSON(engine, http.MethodPost, "/api/inventory", map[string]interface{}{
		"name":     "Gloves",
		"quantity": -5,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestItemNotFound(t *testing.T) {
	engine := newTestEngine(t)

	w := doJSON(engine, http.MethodDelete, "/api/inventory/018f3c0a-1111-7000-8000-000000000000", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(engine, http.MethodGet, "/api/inventory/bogus", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestItemWritesEnqueueChangeEvents(t *testing.T) {
	outbox := memory.NewOutboxRepository()
	engine := newTestEngineWithOutbox(t, outbox)

	w := doJSON(engine, http.MethodPost, "/api/inventory", map[string]interface{}{
		"name":     "Gloves",
		"quantity": 100,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var resp struct {
		Item model.InventoryItem `json:"item"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	w = doJSON(engine, http.MethodDelete, "/api/inventory/"+resp.Item.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)

	events, err := outbox.GetPendingEvents(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, model.EventInventoryCreate, events[0].EventType)
	assert.Equal(t, model.EventInventoryDelete, events[1].EventType)

	var payload model.InventoryItem
	require.NoError(t, json.Unmarshal(events[0].Payload, &payload))
	assert.Equal(t, "Gloves", payload.Name)
}

func TestListItemsEmptyArray(t *testing.T) {
	engine := newTestEngine(t)

	w := doJSON(engine, http.MethodGet, "/api/inventory", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}
