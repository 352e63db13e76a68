package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/psomsri/taladsod-backend/internal/app/model"
	"github.com/psomsri/taladsod-backend/internal/app/store"
)

// stubSource serves a fixed catalog, or fails when err is set.
type stubSource struct {
	products []model.Product
	err      error
	fetches  int
}

func (s *stubSource) Fetch(ctx context.Context) ([]model.Product, error) {
	s.fetches++
	if s.err != nil {
		return nil, s.err
	}
	return s.products, nil
}

func testProducts() []model.Product {
	return []model.Product{
		{ID: 1, Name: "Jasmine Rice", Image: "rice.jpg", Options: []model.Option{
			{Label: "1 kg", Price: 100},
			{Label: "5 kg", Price: 450},
		}},
		{ID: 2, Name: "Fish Sauce", Image: "sauce.jpg", Options: []model.Option{
			{Label: "700 ml", Price: 250},
		}},
		{ID: 3, Name: "Palm Sugar", Image: "sugar.jpg", Options: []model.Option{
			{Label: "500 g", Price: 60},
			{Label: "1 kg", Price: 110},
		}},
	}
}

// newLoadedServices builds a catalog and selection service with the stub
// catalog already loaded for the given profile.
func newLoadedServices(t *testing.T, profileID string) (CatalogService, SelectionService) {
	t.Helper()

	source := &stubSource{products: testProducts()}
	selections := store.NewSelectionStore()
	catalogService := NewCatalogService(source, selections)
	selectionService := NewSelectionService(catalogService, selections)

	_, err := catalogService.Load(context.Background(), profileID)
	require.NoError(t, err)

	return catalogService, selectionService
}

func TestCatalogServiceLoad(t *testing.T) {
	t.Run("caches products and resets selection", func(t *testing.T) {
		source := &stubSource{products: testProducts()}
		selections := store.NewSelectionStore()
		svc := NewCatalogService(source, selections)

		products, err := svc.Load(context.Background(), "profile-a")
		require.NoError(t, err)
		require.Len(t, products, 3)
		require.Len(t, svc.Products(), 3)

		states := selections.Get("profile-a")
		require.Len(t, states, 3)
		for _, state := range states {
			require.False(t, state.IsSelected)
			require.Equal(t, 0, state.SelectedOptionIndex)
		}
	})

	t.Run("failed load leaves nothing cached", func(t *testing.T) {
		source := &stubSource{err: errors.New("connection refused")}
		selections := store.NewSelectionStore()
		svc := NewCatalogService(source, selections)

		_, err := svc.Load(context.Background(), "profile-a")
		require.Error(t, err)
		require.Empty(t, svc.Products())
		require.Empty(t, selections.Get("profile-a"))
	})

	t.Run("reload resets a dirty selection", func(t *testing.T) {
		source := &stubSource{products: testProducts()}
		selections := store.NewSelectionStore()
		svc := NewCatalogService(source, selections)

		_, err := svc.Load(context.Background(), "profile-a")
		require.NoError(t, err)
		selections.SetSelected("profile-a", 1, true)

		_, err = svc.Load(context.Background(), "profile-a")
		require.NoError(t, err)

		state, ok := selections.GetState("profile-a", 1)
		require.True(t, ok)
		require.False(t, state.IsSelected)
	})
}

func TestCatalogServiceRefresh(t *testing.T) {
	source := &stubSource{products: testProducts()}
	selections := store.NewSelectionStore()
	svc := NewCatalogService(source, selections)

	_, err := svc.Load(context.Background(), "profile-a")
	require.NoError(t, err)
	selections.SetSelected("profile-a", 1, true)

	// Refresh replaces the cache without touching selections.
	source.products = testProducts()[:2]
	require.NoError(t, svc.Refresh(context.Background()))
	require.Len(t, svc.Products(), 2)

	state, ok := selections.GetState("profile-a", 1)
	require.True(t, ok)
	require.True(t, state.IsSelected)
}
