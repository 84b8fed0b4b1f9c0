package routes

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/angelmondragon/luxe-storefront/internal/cart"
	"github.com/angelmondragon/luxe-storefront/internal/catalog"
	"github.com/angelmondragon/luxe-storefront/pkg/config"
	pkgerrors "github.com/angelmondragon/luxe-storefront/pkg/errors"
	"github.com/angelmondragon/luxe-storefront/pkg/logger"
	"github.com/angelmondragon/luxe-storefront/pkg/metrics"
	"github.com/angelmondragon/luxe-storefront/pkg/storage"
	"github.com/angelmondragon/luxe-storefront/pkg/types"
	"github.com/angelmondragon/luxe-storefront/pkg/visitor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFeed struct {
	products []catalog.Product
	err      error
}

func (f *stubFeed) Load(context.Context) ([]catalog.Product, error) {
	return f.products, f.err
}

type harness struct {
	handler http.Handler
	feed    *stubFeed
	cookie  *http.Cookie
}

func testConfig() *config.Config {
	return &config.Config{
		App:     config.AppConfig{Env: "test", CORSOrigins: []string{"http://localhost:3000"}},
		Storage: config.StorageConfig{Driver: config.StorageDriverMemory},
		Visitor: config.VisitorConfig{Secret: "router-test", Issuer: "luxe-test", TTL: time.Hour, CookieName: "luxe_visitor"},
		Catalog: config.CatalogConfig{DefaultPageSize: 9},
	}
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	cfg := testConfig()
	logg := logger.Nop()
	store := storage.NewMemoryStore()
	reg := prometheus.NewRegistry()
	recorder := metrics.NewStorefront(reg)

	products := make([]catalog.Product, 0, 20)
	for i := 1; i <= 20; i++ {
		products = append(products, catalog.Product{
			ID:       cart.ItemID(i),
			Name:     "Product " + cart.ItemID(i).String(),
			Category: "misc",
			Price:    types.MustParsePrice("10.00"),
			ImageURL: "/img.jpg",
		})
	}
	products[0].Name = "Red Shirt"
	products[1].Name = "Blue Hat"
	products[1].Price = types.MustParsePrice("5.00")
	feed := &stubFeed{products: products}

	catalogSvc, err := catalog.NewService(feed)
	require.NoError(t, err)
	cartSvc, err := cart.NewService(store, catalogSvc, recorder, logg)
	require.NoError(t, err)
	prefs, err := catalog.NewPreferences(store, cfg.Catalog.DefaultPageSize, logg)
	require.NoError(t, err)
	tokens, err := visitor.NewTokens(cfg.Visitor)
	require.NoError(t, err)

	h := &harness{
		handler: NewRouter(Deps{
			Config:   cfg,
			Logger:   logg,
			Store:    store,
			Tokens:   tokens,
			Carts:    cartSvc,
			Catalog:  catalogSvc,
			Prefs:    prefs,
			Gatherer: reg,
		}),
		feed: feed,
	}
	return h
}

func (h *harness) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	if h.cookie != nil {
		req.AddCookie(h.cookie)
	}
	w := httptest.NewRecorder()
	h.handler.ServeHTTP(w, req)
	for _, c := range w.Result().Cookies() {
		if c.Name == "luxe_visitor" {
			h.cookie = c
		}
	}
	return w
}

func formPost(path string, values url.Values, htmx bool) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	return req
}

func jsonRequest(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

type cartEnvelope struct {
	Data struct {
		Items []struct {
			ID       int64  `json:"id"`
			Quantity int    `json:"quantity"`
			Price    string `json:"price"`
		} `json:"items"`
		TotalCount int    `json:"total_count"`
		Subtotal   string `json:"subtotal"`
	} `json:"data"`
}

func decodeCart(t *testing.T, w *httptest.ResponseRecorder) cartEnvelope {
	t.Helper()
	var env cartEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func TestCatalogPageIssuesVisitorCookie(t *testing.T) {
	h := newHarness(t)
	w := h.do(t, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, h.cookie)
	assert.Contains(t, w.Body.String(), "Red Shirt")
	assert.Contains(t, w.Body.String(), "Page 1 of 3")
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
}

func TestCatalogSearchAndPagination(t *testing.T) {
	h := newHarness(t)

	w := h.do(t, httptest.NewRequest(http.MethodGet, "/products?q=shirt", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Red Shirt")
	assert.NotContains(t, w.Body.String(), "Blue Hat")

	w = h.do(t, httptest.NewRequest(http.MethodGet, "/products?page=3", nil))
	assert.Contains(t, w.Body.String(), "Page 3 of 3")
	assert.Contains(t, w.Body.String(), "Product 20")
}

func TestPerPagePreferencePersists(t *testing.T) {
	h := newHarness(t)

	w := h.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/catalog?per_page=5", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total_pages":4`)

	w = h.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/catalog", nil))
	assert.Contains(t, w.Body.String(), `"page_size":5`)

	w = h.do(t, jsonRequest(http.MethodPut, "/api/v1/preferences/page-size", `{"page_size":20}`))
	require.Equal(t, http.StatusOK, w.Code)
	w = h.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/catalog", nil))
	assert.Contains(t, w.Body.String(), `"total_pages":1`)
}

func TestCatalogAPIRejectsBadQuery(t *testing.T) {
	h := newHarness(t)
	w := h.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/catalog?page=abc", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = h.do(t, httptest.NewRequest(http.MethodGet, "/products?page=abc", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCatalogFailureRendersErrorState(t *testing.T) {
	h := newHarness(t)
	h.feed.err = pkgerrors.Wrap(pkgerrors.CodeDependency, errors.New("connection refused"), catalog.LoadFailedMessage)

	w := h.do(t, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "We could not load products right now.")
	assert.NotContains(t, w.Body.String(), "connection refused")

	w = h.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/catalog", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "DEPENDENCY_ERROR")
}

func TestHTMXAddReturnsBadgeAndEvent(t *testing.T) {
	h := newHarness(t)
	h.do(t, httptest.NewRequest(http.MethodGet, "/", nil))

	req := formPost("/cart/items", url.Values{"product_id": {"1"}}, true)
	req.Header.Set("HX-Target", "cart-count")
	w := h.do(t, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "cart:added", w.Header().Get("HX-Trigger"))
	assert.Equal(t, `<span id="cart-count" class="cart-count">1</span>`, w.Body.String())
}

func TestHTMXCartMutationsReturnPanelWithOutOfBandBadge(t *testing.T) {
	h := newHarness(t)
	h.do(t, formPost("/cart/items", url.Values{"product_id": {"1"}}, true))
	h.do(t, formPost("/cart/items", url.Values{"product_id": {"2"}}, true))

	w := h.do(t, formPost("/cart/items/1/increment", nil, true))
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, strings.HasPrefix(body, `<section id="cart-panel"`))
	assert.Contains(t, body, `hx-swap-oob="true">3</span>`)
	assert.Contains(t, body, "$25.00")
	assert.NotContains(t, body, "<html")

	w = h.do(t, formPost("/cart/items/2/decrement", nil, true))
	assert.Contains(t, w.Body.String(), `hx-swap-oob="true">2</span>`)
	assert.NotContains(t, w.Body.String(), "Blue Hat")

	w = h.do(t, formPost("/cart/empty", nil, true))
	assert.Contains(t, w.Body.String(), `id="cart-empty"`)
	assert.Contains(t, w.Body.String(), `hx-swap-oob="true">0</span>`)
}

func TestPlainFormPostRedirectsToCart(t *testing.T) {
	h := newHarness(t)
	w := h.do(t, formPost("/cart/items", url.Values{"product_id": {"2"}}, false))
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/cart", w.Header().Get("Location"))

	w = h.do(t, httptest.NewRequest(http.MethodGet, "/cart", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Blue Hat")
	assert.Contains(t, w.Body.String(), `<span id="cart-count" class="cart-count">1</span>`)
}

func TestFormAddRejectsBadProduct(t *testing.T) {
	h := newHarness(t)
	w := h.do(t, formPost("/cart/items", url.Values{"product_id": {"abc"}}, false))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = h.do(t, formPost("/cart/items", url.Values{"product_id": {"999"}}, false))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCartAPIFlow(t *testing.T) {
	h := newHarness(t)

	w := h.do(t, jsonRequest(http.MethodPost, "/api/v1/cart/items", `{"product_id":1}`))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w = h.do(t, jsonRequest(http.MethodPost, "/api/v1/cart/items", `{"product_id":"1"}`))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w = h.do(t, jsonRequest(http.MethodPost, "/api/v1/cart/items", `{"product_id":2}`))
	require.Equal(t, http.StatusCreated, w.Code)

	env := decodeCart(t, w)
	assert.Equal(t, 3, env.Data.TotalCount)
	assert.Equal(t, "25.00", env.Data.Subtotal)
	require.Len(t, env.Data.Items, 2)
	assert.Equal(t, 2, env.Data.Items[0].Quantity)

	w = h.do(t, jsonRequest(http.MethodPatch, "/api/v1/cart/items/2", `{"delta":-1}`))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeCart(t, w).Data.Items, 1)

	w = h.do(t, jsonRequest(http.MethodPatch, "/api/v1/cart/items/1", `{"delta":2}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = h.do(t, jsonRequest(http.MethodDelete, "/api/v1/cart/items/42", ""))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, decodeCart(t, w).Data.TotalCount)

	w = h.do(t, jsonRequest(http.MethodDelete, "/api/v1/cart", ""))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, decodeCart(t, w).Data.TotalCount)

	w = h.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil))
	env = decodeCart(t, w)
	assert.Empty(t, env.Data.Items)
	assert.Equal(t, "0.00", env.Data.Subtotal)
}

func TestCartAPIUnknownProduct(t *testing.T) {
	h := newHarness(t)
	w := h.do(t, jsonRequest(http.MethodPost, "/api/v1/cart/items", `{"product_id":404}`))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "NOT_FOUND")
}

func TestVisitorsDoNotShareCarts(t *testing.T) {
	first := newHarness(t)
	first.do(t, jsonRequest(http.MethodPost, "/api/v1/cart/items", `{"product_id":1}`))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	w := httptest.NewRecorder()
	first.handler.ServeHTTP(w, req)
	assert.Zero(t, decodeCart(t, w).Data.TotalCount)
}

func TestOpsRoutes(t *testing.T) {
	h := newHarness(t)

	w := h.do(t, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	w = h.do(t, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "memory")

	h.do(t, jsonRequest(http.MethodPost, "/api/v1/cart/items", `{"product_id":1}`))
	w = h.do(t, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `cart_mutations_total{op="add"} 1`)

	w = h.do(t, httptest.NewRequest(http.MethodGet, "/products.json", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	w = h.do(t, httptest.NewRequest(http.MethodGet, "/static/styles.css", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
