package service

import (
	"github.com/psomsri/taladsod-backend/internal/app/model"
	"github.com/psomsri/taladsod-backend/internal/app/store"
	"github.com/psomsri/taladsod-backend/pkg/logger"
)

// ProductView is one listing row: the product joined with the profile's
// current selection state and the price of the chosen option.
type ProductView struct {
	model.Product
	SelectedOptionIndex int     `json:"selected_option_index"`
	IsSelected          bool    `json:"is_selected"`
	CurrentPrice        float64 `json:"current_price"`
}

// ListingView is the full listing page state for one profile.
type ListingView struct {
	Products      []ProductView `json:"products"`
	SelectedCount int           `json:"selected_count"`
	Total         float64       `json:"total"`
}

// SelectionService mutates per-profile listing state. Writes that name an
// unknown product or an out-of-range option index are ignored rather than
// allowed to corrupt the stored state.
type SelectionService interface {
	Listing(profileID string) *ListingView
	SetOption(profileID string, productID uint, optionIndex int) *ListingView
	ToggleSelection(profileID string, productID uint, checked bool) (total float64, selectedCount int)
	SelectAll(profileID string) *ListingView
	ComputeTotal(profileID string) (total float64, selectedCount int)
}

type selectionService struct {
	catalog    CatalogService
	selections *store.SelectionStore
}

func NewSelectionService(catalog CatalogService, selections *store.SelectionStore) SelectionService {
	return &selectionService{
		catalog:    catalog,
		selections: selections,
	}
}

func (s *selectionService) Listing(profileID string) *ListingView {
	return s.render(profileID)
}

func (s *selectionService) SetOption(profileID string, productID uint, optionIndex int) *ListingView {
	product, ok := s.findProduct(productID)
	if !ok || optionIndex < 0 || optionIndex >= len(product.Options) {
		logger.Warn("Ignoring invalid option selection", map[string]interface{}{
			"profile_id":   profileID,
			"product_id":   productID,
			"option_index": optionIndex,
		})
		return s.render(profileID)
	}

	s.selections.SetOption(profileID, productID, optionIndex)
	return s.render(profileID)
}

func (s *selectionService) ToggleSelection(profileID string, productID uint, checked bool) (float64, int) {
	if _, ok := s.findProduct(productID); ok {
		s.selections.SetSelected(profileID, productID, checked)
	}
	return s.ComputeTotal(profileID)
}

// SelectAll sets every product's selected flag to the opposite of the
// current "all selected" condition: one call selects everything, a second
// call deselects everything.
func (s *selectionService) SelectAll(profileID string) *ListingView {
	products := s.catalog.Products()
	states := s.selections.Get(profileID)

	allSelected := len(products) > 0
	for _, p := range products {
		state, ok := states[p.ID]
		if !ok || !state.IsSelected {
			allSelected = false
			break
		}
	}

	s.selections.SetAll(profileID, !allSelected)
	return s.render(profileID)
}

// ComputeTotal sums the chosen option price of every selected product. It
// reads state without modifying it, so repeated calls return the same
// values.
func (s *selectionService) ComputeTotal(profileID string) (float64, int) {
	products := s.catalog.Products()
	states := s.selections.Get(profileID)

	var total float64
	var count int
	for _, p := range products {
		state, ok := states[p.ID]
		if !ok || !state.IsSelected {
			continue
		}
		if state.SelectedOptionIndex < 0 || state.SelectedOptionIndex >= len(p.Options) {
			continue
		}
		total += p.Options[state.SelectedOptionIndex].Price
		count++
	}
	return total, count
}

func (s *selectionService) render(profileID string) *ListingView {
	products := s.catalog.Products()
	states := s.selections.Get(profileID)

	views := make([]ProductView, 0, len(products))
	var total float64
	var count int
	for _, p := range products {
		state := states[p.ID]

		var price float64
		if state.SelectedOptionIndex >= 0 && state.SelectedOptionIndex < len(p.Options) {
			price = p.Options[state.SelectedOptionIndex].Price
		}
		if state.IsSelected {
			total += price
			count++
		}

		views = append(views, ProductView{
			Product:             p,
			SelectedOptionIndex: state.SelectedOptionIndex,
			IsSelected:          state.IsSelected,
			CurrentPrice:        price,
		})
	}

	return &ListingView{
		Products:      views,
		SelectedCount: count,
		Total:         total,
	}
}

func (s *selectionService) findProduct(productID uint) (model.Product, bool) {
	for _, p := range s.catalog.Products() {
		if p.ID == productID {
			return p, true
		}
	}
	return model.Product{}, false
}
