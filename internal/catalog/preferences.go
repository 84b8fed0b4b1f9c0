package catalog

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	pkgerrors "github.com/angelmondragon/luxe-storefront/pkg/errors"
	"github.com/angelmondragon/luxe-storefront/pkg/logger"
	"github.com/angelmondragon/luxe-storefront/pkg/pagination"
	"github.com/angelmondragon/luxe-storefront/pkg/storage"
)

// Preferences stores the visitor's chosen page size.
type Preferences struct {
	store       storage.Store
	defaultSize int
	logg        *logger.Logger
}

// NewPreferences builds a preference store. defaultSize falls back to the package default
// when out of range.
func NewPreferences(store storage.Store, defaultSize int, logg *logger.Logger) (*Preferences, error) {
	if store == nil {
		return nil, fmt.Errorf("storage required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &Preferences{
		store:       store,
		defaultSize: pagination.NormalizeLimit(defaultSize),
		logg:        logg,
	}, nil
}

// Default is the page size used when nothing valid is stored.
func (p *Preferences) Default() int {
	return p.defaultSize
}

// PageSize returns the stored page size, or the default when missing or unusable.
func (p *Preferences) PageSize(ctx context.Context, visitorID string) int {
	if visitorID == "" {
		return p.defaultSize
	}
	data, err := p.store.Get(ctx, visitorID, storage.KeyItemsPerPage)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			p.logg.WarnErr(ctx, "preferences.load_failed", err)
		}
		return p.defaultSize
	}
	size, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || size <= 0 || size > pagination.MaxLimit {
		p.logg.Warn(p.logg.WithField(ctx, "stored", string(data)), "preferences.invalid_page_size")
		return p.defaultSize
	}
	return size
}

// SetPageSize validates and persists a page size.
func (p *Preferences) SetPageSize(ctx context.Context, visitorID string, size int) (int, error) {
	if visitorID == "" {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "visitor id is required")
	}
	if size <= 0 || size > pagination.MaxLimit {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "page size out of range").
			WithDetails(map[string]any{"min": 1, "max": pagination.MaxLimit})
	}
	if err := p.store.Set(ctx, visitorID, storage.KeyItemsPerPage, []byte(strconv.Itoa(size))); err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save page size")
	}
	return size, nil
}
