// Package catalog fetches the product feed and answers search and pagination queries
// over it.
package catalog

import (
	"encoding/json"
	"fmt"

	"github.com/angelmondragon/luxe-storefront/internal/cart"
	"github.com/angelmondragon/luxe-storefront/pkg/types"
)

// Product is a read-only catalog entry.
type Product struct {
	ID       cart.ItemID `json:"id"`
	Name     string      `json:"name"`
	Category string      `json:"category"`
	Price    types.Price `json:"price"`
	ImageURL string      `json:"image_url"`
}

// CartProduct copies the fields a cart line keeps.
func (p Product) CartProduct() cart.Product {
	return cart.Product{
		ID:    p.ID,
		Title: p.Name,
		Price: p.Price,
		Image: p.ImageURL,
	}
}

type feedEntry struct {
	ID       json.RawMessage `json:"id"`
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Price    json.RawMessage `json:"price"`
	ImageURL string          `json:"image_url"`
}

// decodeFeed parses the feed array. Entries with an unusable id or price are skipped and
// counted; a feed that is not a JSON array fails as a whole.
func decodeFeed(data []byte) ([]Product, int, error) {
	var entries []feedEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, 0, fmt.Errorf("decode product feed: %w", err)
	}
	products := make([]Product, 0, len(entries))
	skipped := 0
	for _, entry := range entries {
		var p Product
		if err := p.ID.UnmarshalJSON(entry.ID); err != nil {
			skipped++
			continue
		}
		if len(entry.Price) == 0 || string(entry.Price) == "null" {
			skipped++
			continue
		}
		if err := p.Price.UnmarshalJSON(entry.Price); err != nil || !p.Price.IsValid() {
			skipped++
			continue
		}
		p.Name = entry.Name
		p.Category = entry.Category
		p.ImageURL = entry.ImageURL
		products = append(products, p)
	}
	return products, skipped, nil
}
