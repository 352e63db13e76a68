package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psomsri/taladsod-backend/internal/app/model"
)

func testCartItems() []model.CartItem {
	return []model.CartItem{
		{ID: 1, Name: "Jasmine Rice", Pkg: "Standard", Qty: "5 kg", Price: 450, Image: "rice.jpg"},
		{ID: 2, Name: "Fish Sauce", Pkg: "Standard", Qty: "700 ml", Price: 250, Image: "sauce.jpg"},
	}
}

func TestMemoryCartRepository(t *testing.T) {
	repo := NewMemoryCartRepository()
	ctx := context.Background()

	t.Run("absent slot reads as empty cart", func(t *testing.T) {
		items, err := repo.Load(ctx, "profile-a")
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("save and load round-trip", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, "profile-a", testCartItems()))

		items, err := repo.Load(ctx, "profile-a")
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "Jasmine Rice", items[0].Name)
		assert.Equal(t, "5 kg", items[0].Qty)
		assert.Equal(t, "Standard", items[0].Pkg)
		assert.Equal(t, 450.0, items[0].Price)
	})

	t.Run("save replaces the whole slot", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, "profile-a", testCartItems()[:1]))

		items, err := repo.Load(ctx, "profile-a")
		require.NoError(t, err)
		assert.Len(t, items, 1)
	})

	t.Run("slots are keyed per profile", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, "profile-b", testCartItems()))
		require.NoError(t, repo.Clear(ctx, "profile-a"))

		items, err := repo.Load(ctx, "profile-b")
		require.NoError(t, err)
		assert.Len(t, items, 2)
	})

	t.Run("clear empties the slot", func(t *testing.T) {
		require.NoError(t, repo.Clear(ctx, "profile-b"))

		items, err := repo.Load(ctx, "profile-b")
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("clearing an absent slot is not an error", func(t *testing.T) {
		assert.NoError(t, repo.Clear(ctx, "never-seen"))
	})
}
