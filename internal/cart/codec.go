package cart

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// storedItem mirrors Item but tolerates fields a hand-edited or older payload may carry
// in the wrong shape. Id, price and quantity stay raw so one bad value only drops its
// own line.
type storedItem struct {
	ID       json.RawMessage `json:"id"`
	Title    string          `json:"title"`
	Price    json.RawMessage `json:"price"`
	Image    string          `json:"image"`
	Quantity json.RawMessage `json:"quantity"`
}

// Encode serializes the cart as a JSON array of line items.
func Encode(c *Cart) ([]byte, error) {
	items := c.Items()
	data, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("encode cart: %w", err)
	}
	return data, nil
}

// Decode parses a stored cart. Lines with an unusable id, a non-positive quantity or a
// negative price are dropped and counted, duplicate ids are merged. Only a payload that
// is not a JSON array at all is an error.
func Decode(data []byte) (*Cart, int, error) {
	if len(data) == 0 {
		return &Cart{}, 0, nil
	}
	var raw []storedItem
	if err := json.Unmarshal(data, &raw); err != nil {
		return &Cart{}, 0, fmt.Errorf("decode cart: %w", err)
	}

	c := &Cart{}
	dropped := 0
	for _, entry := range raw {
		item, ok := normalize(entry)
		if !ok {
			dropped++
			continue
		}
		c.put(item)
	}
	return c, dropped, nil
}

func normalize(entry storedItem) (Item, bool) {
	var id ItemID
	if err := id.UnmarshalJSON(entry.ID); err != nil {
		return Item{}, false
	}
	qty, ok := parseQuantity(entry.Quantity)
	if !ok {
		return Item{}, false
	}
	if len(entry.Price) == 0 || string(entry.Price) == "null" {
		return Item{}, false
	}
	item := Item{
		ID:       id,
		Title:    entry.Title,
		Image:    entry.Image,
		Quantity: qty,
	}
	if err := item.Price.UnmarshalJSON(entry.Price); err != nil || !item.Price.IsValid() {
		return Item{}, false
	}
	return item, true
}

// parseQuantity accepts a positive whole number, bare or quoted.
func parseQuantity(raw json.RawMessage) (int, bool) {
	text := strings.Trim(strings.TrimSpace(string(raw)), `"`)
	qty, err := strconv.Atoi(text)
	if err != nil || qty <= 0 {
		return 0, false
	}
	return qty, true
}
