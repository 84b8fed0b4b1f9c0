package cart

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/angelmondragon/luxe-storefront/pkg/types"
)

// ItemID is the canonical product identifier. Stored carts and feeds written by older
// clients may carry it as a numeric string, so decoding accepts both forms.
type ItemID int64

// ParseID normalizes a form, path or query value into an ItemID.
func ParseID(raw string) (ItemID, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return 0, fmt.Errorf("product id is required")
	}
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid product id %q", raw)
	}
	if id <= 0 {
		return 0, fmt.Errorf("product id must be positive")
	}
	return ItemID(id), nil
}

func (id ItemID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

func (id *ItemID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		parsed, err := ParseID(s)
		if err != nil {
			return err
		}
		*id = parsed
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid product id %s", data)
	}
	parsed, err := ParseID(n.String())
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// Product is the subset of a catalog product the cart copies into a line item.
type Product struct {
	ID    ItemID
	Title string
	Price types.Price
	Image string
}

// Item is one cart line. Quantity is always at least 1 while the item is in a cart.
type Item struct {
	ID       ItemID      `json:"id"`
	Title    string      `json:"title"`
	Price    types.Price `json:"price"`
	Image    string      `json:"image"`
	Quantity int         `json:"quantity"`
}

// LineTotal is price times quantity.
func (i Item) LineTotal() types.Price {
	return types.NewPrice(i.Price.Mul(decimalFromInt(i.Quantity)))
}
