package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rl1809/ecoscene/internal/adapter/storage"
	"github.com/rl1809/ecoscene/internal/core/domain"
	"github.com/rl1809/ecoscene/internal/core/service"
)

func newTestServices(t *testing.T) (*service.CartService, *service.OrderService) {
	t.Helper()
	carts := storage.NewMemoryCartStore()
	cartSvc := service.NewCartService(storage.NewMemoryCatalog(storage.Fixtures()), carts, zerolog.Nop())
	orderSvc := service.NewOrderService(cartSvc, carts, storage.NewMemoryOrderStore(), 10, zerolog.Nop())
	t.Cleanup(orderSvc.Close)
	return cartSvc, orderSvc
}

func newTestEcho(t *testing.T) *echo.Echo {
	cartSvc, orderSvc := newTestServices(t)
	return NewEcho(NewHTTPHandler(cartSvc, orderSvc, zerolog.Nop()), zerolog.Nop(), ServerOptions{})
}

func do(t *testing.T, e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealthCheck(t *testing.T) {
	rec := do(t, newTestEcho(t), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestListProducts_FilterAndSort(t *testing.T) {
	e := newTestEcho(t)

	rec := do(t, e, http.MethodGet, "/api/products?category=Seeds+%26+Plants&sort=price-high", "")
	require.Equal(t, http.StatusOK, rec.Code)

	products := decode[[]domain.Product](t, rec)
	require.Len(t, products, 2)
	assert.Equal(t, "product-008", products[0].ID)
	assert.Equal(t, "product-001", products[1].ID)

	rec = do(t, e, http.MethodGet, "/api/products?certification=B-Corp&max_price=100", "")
	require.Equal(t, http.StatusOK, rec.Code)
	products = decode[[]domain.Product](t, rec)
	require.Len(t, products, 1)
	assert.Equal(t, "product-012", products[0].ID)
}

func TestListProducts_BadQuery(t *testing.T) {
	e := newTestEcho(t)

	assert.Equal(t, http.StatusBadRequest, do(t, e, http.MethodGet, "/api/products?sort=cheapest", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, e, http.MethodGet, "/api/products?min_price=abc", "").Code)
}

func TestGetProduct(t *testing.T) {
	e := newTestEcho(t)

	rec := do(t, e, http.MethodGet, "/api/products/product-004", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Grass-Fed Beef Share", decode[domain.Product](t, rec).Name)

	assert.Equal(t, http.StatusNotFound, do(t, e, http.MethodGet, "/api/products/product-404", "").Code)
}

func TestQuote(t *testing.T) {
	e := newTestEcho(t)

	rec := do(t, e, http.MethodPost, "/api/quote", `{"currency":"y","items":[{"product_id":"product-004","quantity":1}]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	q := decode[QuoteResponse](t, rec)
	assert.Equal(t, domain.CurrencyY, q.Currency)
	assert.InDelta(t, 141.0, q.Totals.Total, 1e-9)
	assert.Equal(t, "FREE", q.Display.Shipping)
	assert.Equal(t, "141.00 Y", q.Display.Total)
	assert.Equal(t, 3, q.Impact.Certifications)
	require.Len(t, q.Items, 1)
	assert.Equal(t, 150.0, q.Items[0].UnitPrice)
}

func TestQuote_Errors(t *testing.T) {
	e := newTestEcho(t)

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"zero quantity", `{"items":[{"product_id":"product-001","quantity":0}]}`, http.StatusBadRequest},
		{"unknown currency", `{"currency":"EUR","items":[]}`, http.StatusBadRequest},
		{"unknown product", `{"items":[{"product_id":"nope","quantity":1}]}`, http.StatusNotFound},
		{"bad body", `{"items":`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, e, http.MethodPost, "/api/quote", tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
		})
	}
}

func TestCartLifecycle(t *testing.T) {
	e := newTestEcho(t)

	rec := do(t, e, http.MethodPost, "/api/carts/user-1/items", `{"product_id":"product-001","quantity":2}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, e, http.MethodPost, "/api/carts/user-1/items?currency=V", `{"product_id":"product-002"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	q := decode[QuoteResponse](t, rec)
	require.Len(t, q.Items, 2)
	assert.Equal(t, 1, q.Items[1].Quantity)
	assert.Equal(t, domain.CurrencyV, q.Currency)

	rec = do(t, e, http.MethodPut, "/api/carts/user-1/items/product-001", `{"quantity":5}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, decode[QuoteResponse](t, rec).Items[0].Quantity)

	assert.Equal(t, http.StatusBadRequest, do(t, e, http.MethodPut, "/api/carts/user-1/items/product-001", `{"quantity":0}`).Code)
	assert.Equal(t, http.StatusNotFound, do(t, e, http.MethodPut, "/api/carts/user-1/items/product-003", `{"quantity":1}`).Code)

	rec = do(t, e, http.MethodDelete, "/api/carts/user-1/items/product-002", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[QuoteResponse](t, rec).Items, 1)

	assert.Equal(t, http.StatusNoContent, do(t, e, http.MethodDelete, "/api/carts/user-1", "").Code)

	rec = do(t, e, http.MethodGet, "/api/carts/user-1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	empty := decode[QuoteResponse](t, rec)
	assert.Empty(t, empty.Items)
	assert.Equal(t, 10.0, empty.Totals.Shipping)
}

func TestCheckout(t *testing.T) {
	e := newTestEcho(t)

	do(t, e, http.MethodPost, "/api/carts/user-1/items", `{"product_id":"product-004","quantity":1}`)

	rec := do(t, e, http.MethodPost, "/api/carts/user-1/checkout", `{"request_id":"req-1","currency":"USD"}`)
	require.Equal(t, http.StatusAccepted, rec.Code, rec.Body.String())
	resp := decode[CheckoutHTTPResponse](t, rec)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Order)
	assert.InDelta(t, 173.9, resp.Order.Totals.Total, 1e-9)

	rec = do(t, e, http.MethodPost, "/api/carts/user-1/checkout", `{"request_id":"req-1","currency":"USD"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, e, http.MethodPost, "/api/carts/user-1/checkout", `{"request_id":"req-2"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, e, http.MethodPost, "/api/carts/user-1/checkout", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCheckout_OutOfStock(t *testing.T) {
	e := newTestEcho(t)

	do(t, e, http.MethodPost, "/api/carts/user-2/items", `{"product_id":"product-009","quantity":1}`)

	rec := do(t, e, http.MethodPost, "/api/carts/user-2/checkout", `{"request_id":"req-1"}`)
	assert.Equal(t, http.StatusGone, rec.Code)
}

func TestGetOrder(t *testing.T) {
	carts := storage.NewMemoryCartStore()
	orders := storage.NewMemoryOrderStore()
	cartSvc := service.NewCartService(storage.NewMemoryCatalog(storage.Fixtures()), carts, zerolog.Nop())
	orderSvc := service.NewOrderService(cartSvc, carts, orders, 10, zerolog.Nop())
	t.Cleanup(orderSvc.Close)
	e := NewEcho(NewHTTPHandler(cartSvc, orderSvc, zerolog.Nop()), zerolog.Nop(), ServerOptions{})

	rec := do(t, e, http.MethodGet, "/api/orders/missing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	err := orders.CreateOrder(context.Background(), domain.Order{
		ID:       "order-1",
		UserID:   "user-1",
		Currency: domain.CurrencyY,
		Status:   domain.OrderStatusConfirmed,
		Lines:    []domain.OrderLine{{ProductID: "product-001", Quantity: 2, UnitPrice: 10}},
	})
	require.NoError(t, err)

	rec = do(t, e, http.MethodGet, "/api/orders/order-1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got domain.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "user-1", got.UserID)
	assert.Equal(t, domain.OrderStatusConfirmed, got.Status)
	assert.Len(t, got.Lines, 1)
}

func TestRateLimit(t *testing.T) {
	cartSvc, orderSvc := newTestServices(t)
	e := NewEcho(NewHTTPHandler(cartSvc, orderSvc, zerolog.Nop()), zerolog.Nop(), ServerOptions{RateLimit: 0.001, Burst: 1})

	assert.Equal(t, http.StatusOK, do(t, e, http.MethodGet, "/health", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, do(t, e, http.MethodGet, "/health", "").Code)
}

type failingCatalog struct{}

func (failingCatalog) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	return nil, errors.New("catalog unavailable")
}

func (failingCatalog) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return nil, errors.New("catalog unavailable")
}

func TestInternalErrorsAreLogged(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	carts := storage.NewMemoryCartStore()
	cartSvc := service.NewCartService(failingCatalog{}, carts, zerolog.Nop())
	orderSvc := service.NewOrderService(cartSvc, carts, storage.NewMemoryOrderStore(), 10, zerolog.Nop())
	t.Cleanup(orderSvc.Close)
	e := NewEcho(NewHTTPHandler(cartSvc, orderSvc, logger), zerolog.Nop(), ServerOptions{})

	rec := do(t, e, http.MethodGet, "/api/products/product-001", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "catalog unavailable")

	assert.Contains(t, buf.String(), `"message":"request failed"`)
	assert.Contains(t, buf.String(), "catalog unavailable")
	assert.Contains(t, buf.String(), `"path":"/api/products/:id"`)
}

func TestCheckout_AfterShutdown(t *testing.T) {
	cartSvc, orderSvc := newTestServices(t)
	e := NewEcho(NewHTTPHandler(cartSvc, orderSvc, zerolog.Nop()), zerolog.Nop(), ServerOptions{})

	do(t, e, http.MethodPost, "/api/carts/user-1/items", `{"product_id":"product-001","quantity":1}`)
	orderSvc.Close()

	rec := do(t, e, http.MethodPost, "/api/carts/user-1/checkout", `{"request_id":"req-1"}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = do(t, e, http.MethodGet, "/api/carts/user-1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var q QuoteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &q))
	assert.Len(t, q.Items, 1)
}
