package service

import (
	"context"
	"fmt"

	"github.com/psomsri/taladsod-backend/internal/app/model"
	"github.com/psomsri/taladsod-backend/internal/app/repository"
	"github.com/psomsri/taladsod-backend/pkg/logger"
)

// MinimumSelectionError is returned when a profile tries to move fewer
// items than the configured minimum into the cart.
type MinimumSelectionError struct {
	Selected int
	Required int
}

func (e *MinimumSelectionError) Error() string {
	return fmt.Sprintf("please select at least %d items to proceed. you have selected %d", e.Required, e.Selected)
}

// CartSummary is the cart page state for one profile.
type CartSummary struct {
	Items          []model.CartItem `json:"items"`
	Count          int              `json:"count"`
	Total          float64          `json:"total"`
	FormattedTotal string           `json:"formatted_total"`
}

// CartService snapshots the listing selection into the profile's persisted
// cart slot and reads it back. The slot survives restarts; an absent or
// unreadable slot reads as an empty cart.
type CartService interface {
	// AddToCart captures every selected product at its chosen option price
	// and overwrites the profile's cart slot with the snapshot. Fails with
	// MinimumSelectionError when too few items are selected; the slot is
	// left untouched in that case.
	AddToCart(ctx context.Context, profileID string) ([]model.CartItem, error)

	LoadCart(ctx context.Context, profileID string) ([]model.CartItem, error)
	Summary(ctx context.Context, profileID string) (*CartSummary, error)

	// ClearCart deletes the slot. The only caller is the checkout success
	// transition; the slot is never cleared on navigation or failure.
	ClearCart(ctx context.Context, profileID string) error
}

type cartService struct {
	catalog      CatalogService
	selections   SelectionService
	cartRepo     repository.CartRepository
	minSelection int
}

func NewCartService(catalog CatalogService, selections SelectionService, cartRepo repository.CartRepository, minSelection int) CartService {
	return &cartService{
		catalog:      catalog,
		selections:   selections,
		cartRepo:     cartRepo,
		minSelection: minSelection,
	}
}

func (s *cartService) AddToCart(ctx context.Context, profileID string) ([]model.CartItem, error) {
	listing := s.selections.Listing(profileID)

	items := make([]model.CartItem, 0, listing.SelectedCount)
	for _, view := range listing.Products {
		if !view.IsSelected {
			continue
		}
		label := ""
		if view.SelectedOptionIndex >= 0 && view.SelectedOptionIndex < len(view.Options) {
			label = view.Options[view.SelectedOptionIndex].Label
		}
		items = append(items, model.CartItem{
			ID:    view.Product.ID,
			Name:  view.Product.Name,
			Pkg:   model.PkgStandard,
			Qty:   label,
			Price: view.CurrentPrice,
			Image: view.Product.Image,
		})
	}

	if len(items) < s.minSelection {
		logger.Debug("Cart snapshot rejected below minimum", map[string]interface{}{
			"profile_id": profileID,
			"selected":   len(items),
			"required":   s.minSelection,
		})
		return nil, &MinimumSelectionError{Selected: len(items), Required: s.minSelection}
	}

	if err := s.cartRepo.Save(ctx, profileID, items); err != nil {
		logger.Error("Failed to persist cart", err, map[string]interface{}{
			"profile_id": profileID,
		})
		return nil, err
	}

	logger.Info("Cart snapshot persisted", map[string]interface{}{
		"profile_id": profileID,
		"items":      len(items),
		"total":      model.CartTotal(items),
	})
	return items, nil
}

func (s *cartService) LoadCart(ctx context.Context, profileID string) ([]model.CartItem, error) {
	return s.cartRepo.Load(ctx, profileID)
}

func (s *cartService) Summary(ctx context.Context, profileID string) (*CartSummary, error) {
	items, err := s.cartRepo.Load(ctx, profileID)
	if err != nil {
		return nil, err
	}

	total := model.CartTotal(items)
	return &CartSummary{
		Items:          items,
		Count:          len(items),
		Total:          total,
		FormattedTotal: formatAmount(total),
	}, nil
}

func (s *cartService) ClearCart(ctx context.Context, profileID string) error {
	return s.cartRepo.Clear(ctx, profileID)
}
