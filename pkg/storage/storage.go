// Package storage persists small visitor-scoped values: the serialized cart and the
// catalog page-size preference. It plays the role browser local storage plays for a
// client-side storefront, keyed by visitor instead of by browser profile.
package storage

import (
	"context"
	"errors"
)

const (
	// KeyCart holds the JSON array of cart line items.
	KeyCart = "luxeCart"
	// KeyItemsPerPage holds the catalog page size as a JSON integer.
	KeyItemsPerPage = "luxeItemsPerPage"
)

// ErrNotFound is returned by Get when no value is stored under the key.
var ErrNotFound = errors.New("storage: key not found")

// Store is the persistence surface shared by every backend. Writes are last-write-wins.
type Store interface {
	Get(ctx context.Context, visitorID, key string) ([]byte, error)
	Set(ctx context.Context, visitorID, key string, value []byte) error
	Delete(ctx context.Context, visitorID, key string) error
	Ping(ctx context.Context) error
}

func validateScope(visitorID, key string) error {
	if visitorID == "" {
		return errors.New("storage: visitor id is required")
	}
	if key == "" {
		return errors.New("storage: key is required")
	}
	return nil
}
