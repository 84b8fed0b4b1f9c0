package catalog

import (
	"context"
	"testing"

	pkgerrors "github.com/angelmondragon/luxe-storefront/pkg/errors"
	"github.com/angelmondragon/luxe-storefront/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const visitor = "2d8c3f70-5a8e-4b1a-9b7e-3c3c7a3f9e01"

func TestPreferencesRoundTrip(t *testing.T) {
	store := storage.NewMemoryStore()
	prefs, err := NewPreferences(store, 9, nil)
	require.NoError(t, err)
	ctx := context.Background()

	assert.Equal(t, 9, prefs.PageSize(ctx, visitor))

	size, err := prefs.SetPageSize(ctx, visitor, 24)
	require.NoError(t, err)
	assert.Equal(t, 24, size)
	assert.Equal(t, 24, prefs.PageSize(ctx, visitor))

	raw, err := store.Get(ctx, visitor, storage.KeyItemsPerPage)
	require.NoError(t, err)
	assert.Equal(t, "24", string(raw))
}

func TestPreferencesFallBackOnGarbage(t *testing.T) {
	store := storage.NewMemoryStore()
	prefs, err := NewPreferences(store, 12, nil)
	require.NoError(t, err)
	ctx := context.Background()

	for _, stored := range []string{"abc", "0", "-4", "1000"} {
		require.NoError(t, store.Set(ctx, visitor, storage.KeyItemsPerPage, []byte(stored)))
		assert.Equal(t, 12, prefs.PageSize(ctx, visitor), stored)
	}
}

func TestPreferencesRejectOutOfRange(t *testing.T) {
	prefs, err := NewPreferences(storage.NewMemoryStore(), 0, nil)
	require.NoError(t, err)
	assert.Equal(t, 9, prefs.Default())

	_, err = prefs.SetPageSize(context.Background(), visitor, 0)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))
	_, err = prefs.SetPageSize(context.Background(), visitor, 101)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))
	_, err = prefs.SetPageSize(context.Background(), "", 10)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))
}
