// Package cart holds the shopping cart state machine and the service that persists it per
// visitor.
package cart

import (
	"github.com/shopspring/decimal"
)

// Cart is an ordered list of line items, unique by id. The zero value is an empty cart.
type Cart struct {
	items []Item
}

// New builds a cart from already normalized items.
func New(items []Item) *Cart {
	c := &Cart{}
	for _, item := range items {
		c.put(item)
	}
	return c
}

// put appends or merges an item, keeping ids unique.
func (c *Cart) put(item Item) {
	if idx := c.indexOf(item.ID); idx >= 0 {
		c.items[idx].Quantity += item.Quantity
		return
	}
	c.items = append(c.items, item)
}

func (c *Cart) indexOf(id ItemID) int {
	for i := range c.items {
		if c.items[i].ID == id {
			return i
		}
	}
	return -1
}

// Add puts one unit of product in the cart. An existing line gets its quantity bumped
// and keeps its original title, price and image.
func (c *Cart) Add(p Product) {
	if idx := c.indexOf(p.ID); idx >= 0 {
		c.items[idx].Quantity++
		return
	}
	c.items = append(c.items, Item{
		ID:       p.ID,
		Title:    p.Title,
		Price:    p.Price,
		Image:    p.Image,
		Quantity: 1,
	})
}

// Increment raises the quantity of id by one. Unknown ids are ignored.
func (c *Cart) Increment(id ItemID) {
	if idx := c.indexOf(id); idx >= 0 {
		c.items[idx].Quantity++
	}
}

// Decrement lowers the quantity of id by one and removes the line once it reaches zero.
func (c *Cart) Decrement(id ItemID) {
	idx := c.indexOf(id)
	if idx < 0 {
		return
	}
	c.items[idx].Quantity--
	if c.items[idx].Quantity <= 0 {
		c.Remove(id)
	}
}

// Remove deletes the line for id if present.
func (c *Cart) Remove(id ItemID) {
	idx := c.indexOf(id)
	if idx < 0 {
		return
	}
	c.items = append(c.items[:idx], c.items[idx+1:]...)
}

// Empty clears every line.
func (c *Cart) Empty() {
	c.items = nil
}

// TotalCount is the number of units across all lines.
func (c *Cart) TotalCount() int {
	total := 0
	for _, item := range c.items {
		total += item.Quantity
	}
	return total
}

// Subtotal sums price times quantity over all lines.
func (c *Cart) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, item := range c.items {
		sum = sum.Add(item.Price.Mul(decimalFromInt(item.Quantity)))
	}
	return sum
}

// Items returns a copy of the lines in insertion order.
func (c *Cart) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Len is the number of distinct lines.
func (c *Cart) Len() int {
	return len(c.items)
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

func decimalFromInt(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n))
}
