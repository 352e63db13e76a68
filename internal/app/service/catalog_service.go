package service

import (
	"context"
	"errors"
	"sync"

	"github.com/psomsri/taladsod-backend/internal/app/model"
	"github.com/psomsri/taladsod-backend/internal/app/store"
	"github.com/psomsri/taladsod-backend/internal/catalog"
	"github.com/psomsri/taladsod-backend/pkg/logger"
)

var (
	ErrCatalogNotLoaded = errors.New("catalog not loaded")
)

// CatalogService loads the static product catalog and initializes the
// listing-page selection state of the requesting profile.
type CatalogService interface {
	// Load performs one read of the catalog resource. On success the
	// catalog is cached and the profile's selection state is reset to the
	// defaults; on failure nothing changes and the reason is returned.
	Load(ctx context.Context, profileID string) ([]model.Product, error)

	// Products returns the cached catalog.
	Products() []model.Product

	// Refresh re-reads the catalog into the cache without touching any
	// profile's selection state.
	Refresh(ctx context.Context) error
}

type catalogService struct {
	source     catalog.Source
	selections *store.SelectionStore

	mu       sync.RWMutex
	products []model.Product
}

func NewCatalogService(source catalog.Source, selections *store.SelectionStore) CatalogService {
	return &catalogService{
		source:     source,
		selections: selections,
	}
}

func (s *catalogService) Load(ctx context.Context, profileID string) ([]model.Product, error) {
	logger.Debug("Loading product catalog", map[string]interface{}{
		"profile_id": profileID,
	})

	products, err := s.source.Fetch(ctx)
	if err != nil {
		logger.Error("Failed to load product catalog", err, map[string]interface{}{
			"profile_id": profileID,
		})
		return nil, err
	}

	s.mu.Lock()
	s.products = products
	s.mu.Unlock()

	productIDs := make([]uint, len(products))
	for i, p := range products {
		productIDs[i] = p.ID
	}
	s.selections.Init(profileID, productIDs)

	logger.Info("Product catalog loaded", map[string]interface{}{
		"profile_id": profileID,
		"count":      len(products),
	})
	return products, nil
}

func (s *catalogService) Products() []model.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	products := make([]model.Product, len(s.products))
	copy(products, s.products)
	return products
}

func (s *catalogService) Refresh(ctx context.Context) error {
	products, err := s.source.Fetch(ctx)
	if err != nil {
		logger.Error("Failed to refresh product catalog", err, nil)
		return err
	}

	s.mu.Lock()
	s.products = products
	s.mu.Unlock()

	logger.Info("Product catalog refreshed", map[string]interface{}{
		"count": len(products),
	})
	return nil
}
