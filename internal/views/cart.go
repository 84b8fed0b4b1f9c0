package views

import (
	"context"
	"fmt"

	"github.com/angelmondragon/luxe-storefront/internal/cart"
	"github.com/angelmondragon/luxe-storefront/pkg/types"
	"github.com/a-h/templ"
)

// CartPage renders the full cart page.
func CartPage(c *cart.Cart) templ.Component {
	return Layout("Your cart", c.TotalCount(), render(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<h1>Your cart</h1>`)
		h.component(ctx, CartPanel(c))
	}))
}

// CartPanel is the swappable cart region. It declares the HTMX target once so every
// control inside only names its endpoint.
func CartPanel(c *cart.Cart) templ.Component {
	return render(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<section`)
		h.attr("id", CartPanelID)
		h.raw(` hx-target="this" hx-swap="outerHTML">`)
		if c.IsEmpty() {
			h.raw(`<div id="cart-empty" class="cart-empty"><p>Your cart is empty.</p>`)
			h.raw(`<a class="btn" href="/products">Continue shopping</a></div>`)
			h.raw(`</section>`)
			return
		}
		h.raw(`<div id="cart-content" class="cart-layout"><div class="cart-items">`)
		for _, item := range c.Items() {
			h.component(ctx, cartLine(item))
		}
		h.raw(`</div>`)
		h.component(ctx, cartSummary(c))
		h.raw(`</div></section>`)
	})
}

// CartFragment is the HTMX response for cart mutations: the panel plus the badge
// swapped out of band.
func CartFragment(c *cart.Cart) templ.Component {
	return render(func(ctx context.Context, h *htmlWriter) {
		h.component(ctx, CartPanel(c))
		h.component(ctx, CartBadge(c.TotalCount(), true))
	})
}

func cartLine(item cart.Item) templ.Component {
	return render(func(ctx context.Context, h *htmlWriter) {
		base := "/cart/items/" + item.ID.String()
		h.raw(`<div class="cart-item"`)
		h.attr("data-id", item.ID.String())
		h.raw(`><img class="cart-item-img"`)
		h.url("src", templ.URL(item.Image))
		h.attr("alt", item.Title)
		h.raw(`><div class="cart-item-details"><h3 class="cart-item-title">`)
		h.text(item.Title)
		h.raw(`</h3><p class="cart-item-price">`)
		h.text(types.FormatCurrency(item.Price.Decimal))
		h.raw(`</p></div><div class="cart-item-actions"><div class="quantity-controls">`)
		h.component(ctx, actionButton(base+"/decrement", "qty-btn minus", "Decrease quantity", "-"))
		h.raw(`<span class="qty-input">`)
		h.int(item.Quantity)
		h.raw(`</span>`)
		h.component(ctx, actionButton(base+"/increment", "qty-btn plus", "Increase quantity", "+"))
		h.raw(`</div>`)
		h.component(ctx, actionButton(base+"/remove", "remove-btn", fmt.Sprintf("Remove %s", item.Title), "Remove"))
		h.raw(`</div></div>`)
	})
}

func cartSummary(c *cart.Cart) templ.Component {
	return render(func(ctx context.Context, h *htmlWriter) {
		subtotal := types.FormatCurrency(c.Subtotal())
		h.raw(`<aside class="cart-summary"><p>Subtotal <span id="cart-subtotal">`)
		h.text(subtotal)
		h.raw(`</span></p><p>Total <span id="cart-total">`)
		h.text(subtotal)
		h.raw(`</span></p>`)
		h.component(ctx, actionButton("/cart/empty", "empty-cart-btn", "Empty cart", "Empty cart"))
		h.raw(`</aside>`)
	})
}

// actionButton posts to action as a plain form and as an HTMX request.
func actionButton(action, class, label, text string) templ.Component {
	return render(func(_ context.Context, h *htmlWriter) {
		h.raw(`<form method="post"`)
		h.attr("action", action)
		h.attr("hx-post", action)
		h.raw(`><button type="submit"`)
		h.attr("class", class)
		h.attr("aria-label", label)
		h.raw(`>`)
		h.text(text)
		h.raw(`</button></form>`)
	})
}
