package controllers

import (
	"github.com/angelmondragon/luxe-storefront/internal/cart"
	"github.com/angelmondragon/luxe-storefront/internal/catalog"
)

type cartItemResponse struct {
	ID        cart.ItemID `json:"id"`
	Title     string      `json:"title"`
	Price     string      `json:"price"`
	Image     string      `json:"image"`
	Quantity  int         `json:"quantity"`
	LineTotal string      `json:"line_total"`
}

type cartResponse struct {
	Items      []cartItemResponse `json:"items"`
	TotalCount int                `json:"total_count"`
	Subtotal   string             `json:"subtotal"`
	Total      string             `json:"total"`
}

func newCartResponse(c *cart.Cart) cartResponse {
	items := c.Items()
	out := make([]cartItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, cartItemResponse{
			ID:        item.ID,
			Title:     item.Title,
			Price:     item.Price.StringFixed(2),
			Image:     item.Image,
			Quantity:  item.Quantity,
			LineTotal: item.LineTotal().StringFixed(2),
		})
	}
	subtotal := c.Subtotal().StringFixed(2)
	return cartResponse{
		Items:      out,
		TotalCount: c.TotalCount(),
		Subtotal:   subtotal,
		Total:      subtotal,
	}
}

type pageMeta struct {
	Page       int    `json:"page"`
	TotalPages int    `json:"total_pages"`
	Total      int    `json:"total"`
	PageSize   int    `json:"page_size"`
	Query      string `json:"query,omitempty"`
}

func newPageMeta(p catalog.Page) pageMeta {
	return pageMeta{
		Page:       p.Page,
		TotalPages: p.TotalPages,
		Total:      p.Total,
		PageSize:   p.PageSize,
		Query:      p.Query,
	}
}

type addCartItemRequest struct {
	ProductID cart.ItemID `json:"product_id" validate:"required,gt=0"`
}

type updateCartItemRequest struct {
	Delta int `json:"delta" validate:"required,oneof=-1 1"`
}

type pageSizeRequest struct {
	PageSize int `json:"page_size" validate:"required,min=1,max=100"`
}
