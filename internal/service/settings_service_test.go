package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imacms/api/internal/models"
	"imacms/api/internal/store"
)

func TestSettingsGetReturnsDefaultsWithoutPersisting(t *testing.T) {
	settings := store.NewMemoryCollection[models.Settings]()
	svc := NewSettingsService(settings)
	ctx := context.Background()

	got, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "IMA", got.SiteName)
	assert.Equal(t, "#E10600", got.PrimaryColor)

	count, err := settings.Count(ctx, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)
}

func TestSettingsUpdateMaterializesThenPatches(t *testing.T) {
	settings := store.NewMemoryCollection[models.Settings]()
	svc := NewSettingsService(settings)
	ctx := context.Background()

	updated, err := svc.Update(ctx, store.Patch{"primary_color": "#000000"})
	require.NoError(t, err)
	assert.Equal(t, "#000000", updated.PrimaryColor)
	assert.Equal(t, "IMA", updated.SiteName)

	count, err := settings.Count(ctx, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	got, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "#000000", got.PrimaryColor)
	require.NotNil(t, got.FooterText)
	assert.Equal(t, "© 2025 IMA. All rights reserved.", *got.FooterText)
}

func TestSettingsUpdateEmptyPatch(t *testing.T) {
	settings := store.NewMemoryCollection[models.Settings]()
	svc := NewSettingsService(settings)

	got, err := svc.Update(context.Background(), store.Patch{})
	require.NoError(t, err)
	assert.Equal(t, "#E10600", got.PrimaryColor)
}
