package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/recyclelect/storefront-backend/internal/cart"
	"github.com/recyclelect/storefront-backend/internal/catalog"
	checkoutsvc "github.com/recyclelect/storefront-backend/internal/checkout"
	"github.com/recyclelect/storefront-backend/internal/favorites"
	"github.com/recyclelect/storefront-backend/internal/orders"
	"github.com/recyclelect/storefront-backend/internal/pricing"
	"github.com/recyclelect/storefront-backend/pkg/config"
	"github.com/recyclelect/storefront-backend/pkg/logger"
)

const testCatalog = `[
  {"id": "1", "name": "Dell Latitude 3150", "price": "300$", "originalPrice": 450, "condition": "good", "stock": 3, "category": "laptop", "brand": "Dell"},
  {"id": "2", "name": "Barrette RAM 8GB", "price": 70, "condition": "good", "stock": 10, "category": "part", "brand": "Kingston"}
]`

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()

	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})

	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(testCatalog), 0o600))
	loaded, err := catalog.Load(context.Background(), path, logg)
	require.NoError(t, err)

	calculator := pricing.NewCalculator(loaded, 1500)
	cartSvc := cart.NewService(cart.NewMemoryRepository(), loaded, calculator)
	favSvc := favorites.NewService(favorites.NewMemoryRepository(), loaded)

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, orders.AutoMigrate(db))
	orderSvc := orders.NewService(orders.NewRepository(db))

	checkoutSvc := checkoutsvc.NewService(checkoutsvc.NewMemoryRepository(), cartSvc, calculator, loaded, orderSvc)

	cfg := &config.Config{App: config.AppConfig{Env: "test", CORSOrigins: "*"}}
	return NewRouter(Deps{
		Config:     cfg,
		Logger:     logg,
		Catalog:    catalog.NewService(loaded),
		Calculator: calculator,
		Cart:       cartSvc,
		Favorites:  favSvc,
		Checkout:   checkoutSvc,
		Orders:     orderSvc,
	})
}

func doJSON(t *testing.T, handler http.Handler, method, target, sessionID string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if sessionID != "" {
		req.Header.Set("X-Session-Id", sessionID)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var envelope struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope.Data
}

func TestHealthLive(t *testing.T) {
	rec := doJSON(t, newTestHandler(t), http.MethodGet, "/health/live", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "test", rec.Header().Get("X-Storefront-Env"))
}

func TestProductsListAndGet(t *testing.T) {
	handler := newTestHandler(t)

	rec := doJSON(t, handler, http.MethodGet, "/api/v1/products?category=laptop", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeData(t, rec)
	require.EqualValues(t, 1, data["count"])

	rec = doJSON(t, handler, http.MethodGet, "/api/v1/products/1", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, handler, http.MethodGet, "/api/v1/products/999", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, handler, http.MethodGet, "/api/v1/products?category=appliance", "", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSessionHeaderIsMinted(t *testing.T) {
	rec := doJSON(t, newTestHandler(t), http.MethodGet, "/api/v1/cart", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, rec.Header().Get("X-Session-Id"))
}

func TestCartFlow(t *testing.T) {
	handler := newTestHandler(t)

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/cart/items", "sess", map[string]string{"product_id": "1"})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, handler, http.MethodPost, "/api/v1/cart/items", "sess", map[string]string{"product_id": "1"})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, handler, http.MethodPost, "/api/v1/cart/items", "sess", map[string]string{"product_id": "2"})
	require.Equal(t, http.StatusOK, rec.Code)

	data := decodeData(t, rec)
	require.EqualValues(t, 3, data["total_items"])
	require.EqualValues(t, 67000, data["subtotal_cents"])
	require.EqualValues(t, 30000, data["savings_cents"])

	// Another session sees an empty cart.
	rec = doJSON(t, handler, http.MethodGet, "/api/v1/cart", "other", nil)
	data = decodeData(t, rec)
	require.EqualValues(t, 0, data["total_items"])

	rec = doJSON(t, handler, http.MethodDelete, "/api/v1/cart/items/1", "sess", nil)
	data = decodeData(t, rec)
	require.EqualValues(t, 2, data["total_items"])

	rec = doJSON(t, handler, http.MethodDelete, "/api/v1/cart/lines/1", "sess", nil)
	data = decodeData(t, rec)
	require.EqualValues(t, 1, data["total_items"])

	rec = doJSON(t, handler, http.MethodPost, "/api/v1/cart/items", "sess", map[string]string{})
	require.Equal(t, http.StatusBadRequest, rec.Code, "missing product_id fails validation")
}

func TestFavoritesFlow(t *testing.T) {
	handler := newTestHandler(t)

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/favorites/toggle", "sess", map[string]string{"product_id": "2"})
	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeData(t, rec)
	require.Equal(t, true, data["favorite"])

	rec = doJSON(t, handler, http.MethodGet, "/api/v1/favorites/2", "sess", nil)
	data = decodeData(t, rec)
	require.Equal(t, true, data["favorite"])

	rec = doJSON(t, handler, http.MethodPost, "/api/v1/favorites/toggle", "sess", map[string]string{"product_id": "2"})
	data = decodeData(t, rec)
	require.Equal(t, false, data["favorite"])
}

func TestDeliveryAndUpgradeOptions(t *testing.T) {
	handler := newTestHandler(t)

	rec := doJSON(t, handler, http.MethodGet, "/api/v1/delivery-options", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeData(t, rec)
	require.Len(t, data["delivery_options"], 3)

	rec = doJSON(t, handler, http.MethodGet, "/api/v1/upgrade-options", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data = decodeData(t, rec)
	require.Len(t, data["upgrade_categories"], 2)
}

func TestCheckoutEndToEnd(t *testing.T) {
	handler := newTestHandler(t)

	// Empty cart cannot start a checkout.
	rec := doJSON(t, handler, http.MethodPost, "/api/v1/checkout", "sess", nil)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	for i := 0; i < 2; i++ {
		rec = doJSON(t, handler, http.MethodPost, "/api/v1/cart/items", "sess", map[string]string{"product_id": "1"})
		require.Equal(t, http.StatusOK, rec.Code)
	}
	rec = doJSON(t, handler, http.MethodPost, "/api/v1/cart/items", "sess", map[string]string{"product_id": "2"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, handler, http.MethodPost, "/api/v1/checkout", "sess", map[string]string{"delivery_method": "express"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, handler, http.MethodPost, "/api/v1/checkout/upgrades", "sess", map[string]string{"category": "storage", "option": "256gb"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, handler, http.MethodPost, "/api/v1/checkout/advance", "sess", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// Submitting before the form is filled reports the missing fields.
	rec = doJSON(t, handler, http.MethodPost, "/api/v1/checkout/submit", "sess", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	form := map[string]string{
		"first_name": "Marie", "last_name": "Tremblay", "email": "marie@example.com",
		"address": "123 rue Principale", "city": "Montreal", "postal_code": "H2X 1Y4",
		"card_number": "4242424242424242", "card_expiry": "12/27", "card_cvv": "123",
	}
	rec = doJSON(t, handler, http.MethodPut, "/api/v1/checkout/form", "sess", form)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, handler, http.MethodPost, "/api/v1/checkout/submit", "sess", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	data := decodeData(t, rec)
	require.EqualValues(t, 72500, data["grand_total_cents"])
	require.Equal(t, "processing", data["status"])

	// Cart is emptied and history records the order.
	rec = doJSON(t, handler, http.MethodGet, "/api/v1/cart", "sess", nil)
	require.EqualValues(t, 0, decodeData(t, rec)["total_items"])

	rec = doJSON(t, handler, http.MethodGet, "/api/v1/orders", "sess", nil)
	data = decodeData(t, rec)
	require.EqualValues(t, 1, data["count"])

	reference := data["orders"].([]any)[0].(map[string]any)["reference"].(string)
	rec = doJSON(t, handler, http.MethodGet, "/api/v1/orders/"+reference, "sess", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// Other sessions cannot read the order.
	rec = doJSON(t, handler, http.MethodGet, "/api/v1/orders/"+reference, "other", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}
