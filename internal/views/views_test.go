package views

import (
	"bytes"
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/angelmondragon/luxe-storefront/internal/cart"
	"github.com/angelmondragon/luxe-storefront/internal/catalog"
	"github.com/angelmondragon/luxe-storefront/pkg/types"
	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderString(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func sampleCart() *cart.Cart {
	c := &cart.Cart{}
	c.Add(cart.Product{ID: 1, Title: "Red Shirt", Price: types.MustParsePrice("10"), Image: "/img/red.jpg"})
	c.Add(cart.Product{ID: 1, Title: "Red Shirt", Price: types.MustParsePrice("10"), Image: "/img/red.jpg"})
	c.Add(cart.Product{ID: 2, Title: "Blue <Hat>", Price: types.MustParsePrice("5"), Image: "/img/blue.jpg"})
	return c
}

func TestCartPageShowsItemsAndTotals(t *testing.T) {
	html := renderString(t, CartPage(sampleCart()))

	assert.Contains(t, html, `<span id="cart-count" class="cart-count">3</span>`)
	assert.Contains(t, html, `<span id="cart-subtotal">$25.00</span>`)
	assert.Contains(t, html, `<span id="cart-total">$25.00</span>`)
	assert.Contains(t, html, `action="/cart/items/1/increment"`)
	assert.Contains(t, html, `action="/cart/items/2/remove"`)
	assert.Contains(t, html, "Blue &lt;Hat&gt;")
	assert.NotContains(t, html, "Blue <Hat>")
	assert.NotContains(t, html, "cart-empty")
	assert.Equal(t, 1, strings.Count(html, `hx-target="this"`))
}

func TestCartPanelEmptyState(t *testing.T) {
	html := renderString(t, CartPanel(&cart.Cart{}))
	assert.Contains(t, html, `id="cart-empty"`)
	assert.NotContains(t, html, `id="cart-content"`)
}

func TestCartFragmentCarriesOutOfBandBadge(t *testing.T) {
	html := renderString(t, CartFragment(sampleCart()))
	assert.True(t, strings.HasPrefix(html, `<section id="cart-panel"`))
	assert.Contains(t, html, `<span id="cart-count" class="cart-count" hx-swap-oob="true">3</span>`)
	assert.NotContains(t, html, "<html")
}

func TestCatalogPageRendersProductsAndPager(t *testing.T) {
	page := catalog.Page{
		Products: []catalog.Product{
			{ID: 4, Name: "Red Shirt", Category: "Apparel", Price: types.MustParsePrice("59"), ImageURL: "https://cdn.example.com/red.jpg"},
		},
		Page:       2,
		TotalPages: 3,
		Total:      19,
		PageSize:   9,
		Query:      "shirt & tie",
	}
	html := renderString(t, CatalogPage(page, 5))

	assert.Contains(t, html, `<h3 class="product-title">Red Shirt</h3>`)
	assert.Contains(t, html, `<p class="product-price">$59.00</p>`)
	assert.Contains(t, html, `name="product_id" value="4"`)
	assert.Contains(t, html, `hx-target="#cart-count"`)
	assert.Contains(t, html, `value="shirt &amp; tie"`)
	assert.Contains(t, html, "Page 2 of 3")
	assert.Contains(t, html, `href="/products?page=1&amp;q=shirt+%26+tie"`)
	assert.Contains(t, html, `href="/products?page=3&amp;q=shirt+%26+tie"`)
	assert.Contains(t, html, `<span id="cart-count" class="cart-count">5</span>`)
	assert.Contains(t, html, `<option value="9" selected>`)
}

func TestCatalogContentEmptyResults(t *testing.T) {
	html := renderString(t, CatalogContent(catalog.Page{Page: 1, PageSize: 9, Query: "zzz"}))
	assert.Contains(t, html, "No products match your search.")
	assert.NotContains(t, html, "pagination")
}

func TestCatalogErrorShowsMessage(t *testing.T) {
	html := renderString(t, CatalogError(catalog.LoadFailedMessage, 0))
	assert.Contains(t, html, "We could not load products right now.")
	assert.Contains(t, html, `role="alert"`)
}

func TestPageSizeChoicesIncludesCustomSize(t *testing.T) {
	assert.Equal(t, PageSizeOptions, pageSizeChoices(9))
	assert.Equal(t, []int{6, 9, 10, 12, 24, 48}, pageSizeChoices(10))
	assert.Equal(t, []int{6, 9, 12, 24, 48, 100}, pageSizeChoices(100))
}

func TestUnsafeImageURLIsSanitized(t *testing.T) {
	html := renderString(t, productCard(catalog.Product{ID: 1, Name: "x", ImageURL: "javascript:alert(1)"}))
	assert.NotContains(t, html, "javascript:")
}

func TestHTMXDetection(t *testing.T) {
	r := httptest.NewRequest("POST", "/cart/items", nil)
	assert.False(t, IsHTMXRequest(r))
	r.Header.Set(HeaderRequest, "true")
	assert.True(t, IsHTMXRequest(r))
	assert.False(t, TargetsBadge(r))
	r.Header.Set(HeaderTarget, CartBadgeID)
	assert.True(t, TargetsBadge(r))
}
