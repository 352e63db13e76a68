package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectionServiceListing(t *testing.T) {
	_, svc := newLoadedServices(t, "profile-a")

	listing := svc.Listing("profile-a")
	require.Len(t, listing.Products, 3)
	assert.Equal(t, 0, listing.SelectedCount)
	assert.Equal(t, 0.0, listing.Total)

	// Every row starts at the first option's price.
	assert.Equal(t, 100.0, listing.Products[0].CurrentPrice)
	assert.Equal(t, 250.0, listing.Products[1].CurrentPrice)
}

func TestSelectionServiceSetOption(t *testing.T) {
	_, svc := newLoadedServices(t, "profile-a")

	t.Run("changes the row price", func(t *testing.T) {
		listing := svc.SetOption("profile-a", 1, 1)
		assert.Equal(t, 450.0, listing.Products[0].CurrentPrice)
		assert.Equal(t, 1, listing.Products[0].SelectedOptionIndex)
	})

	t.Run("out-of-range index is ignored", func(t *testing.T) {
		listing := svc.SetOption("profile-a", 1, 5)
		assert.Equal(t, 1, listing.Products[0].SelectedOptionIndex)

		listing = svc.SetOption("profile-a", 1, -1)
		assert.Equal(t, 1, listing.Products[0].SelectedOptionIndex)
	})

	t.Run("unknown product is ignored", func(t *testing.T) {
		listing := svc.SetOption("profile-a", 99, 0)
		require.Len(t, listing.Products, 3)
	})

	t.Run("selected row total follows the option", func(t *testing.T) {
		svc.ToggleSelection("profile-a", 1, true)
		total, count := svc.ComputeTotal("profile-a")
		assert.Equal(t, 450.0, total)
		assert.Equal(t, 1, count)

		svc.SetOption("profile-a", 1, 0)
		total, count = svc.ComputeTotal("profile-a")
		assert.Equal(t, 100.0, total)
		assert.Equal(t, 1, count)
	})
}

func TestSelectionServiceComputeTotal(t *testing.T) {
	_, svc := newLoadedServices(t, "profile-a")

	svc.ToggleSelection("profile-a", 1, true)
	svc.ToggleSelection("profile-a", 2, true)

	total, count := svc.ComputeTotal("profile-a")
	assert.Equal(t, 350.0, total)
	assert.Equal(t, 2, count)

	// Reading the total does not change it.
	again, _ := svc.ComputeTotal("profile-a")
	assert.Equal(t, total, again)

	svc.ToggleSelection("profile-a", 2, false)
	total, count = svc.ComputeTotal("profile-a")
	assert.Equal(t, 100.0, total)
	assert.Equal(t, 1, count)
}

func TestSelectionServiceSelectAll(t *testing.T) {
	_, svc := newLoadedServices(t, "profile-a")

	t.Run("selects everything from a partial selection", func(t *testing.T) {
		svc.ToggleSelection("profile-a", 1, true)

		listing := svc.SelectAll("profile-a")
		assert.Equal(t, 3, listing.SelectedCount)
		assert.Equal(t, 410.0, listing.Total)
	})

	t.Run("second call deselects everything", func(t *testing.T) {
		listing := svc.SelectAll("profile-a")
		assert.Equal(t, 0, listing.SelectedCount)
		assert.Equal(t, 0.0, listing.Total)
	})

	t.Run("two calls from empty return to empty", func(t *testing.T) {
		first := svc.SelectAll("profile-a")
		assert.Equal(t, 3, first.SelectedCount)
		second := svc.SelectAll("profile-a")
		assert.Equal(t, 0, second.SelectedCount)
	})
}

func TestSelectionServiceProfilesAreIsolated(t *testing.T) {
	catalogService, svc := newLoadedServices(t, "profile-a")
	_, err := catalogService.Load(context.Background(), "profile-b")
	require.NoError(t, err)

	svc.ToggleSelection("profile-a", 1, true)

	total, count := svc.ComputeTotal("profile-b")
	assert.Equal(t, 0.0, total)
	assert.Equal(t, 0, count)
}
