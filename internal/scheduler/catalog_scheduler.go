package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/psomsri/taladsod-backend/internal/app/service"
	"github.com/psomsri/taladsod-backend/pkg/logger"
)

// CatalogScheduler refreshes the cached product catalog on a cron schedule.
// Listing loads never retry on their own; this is the only background path
// that re-reads the catalog resource.
type CatalogScheduler struct {
	cron           *cron.Cron
	catalogService service.CatalogService
	spec           string
}

func NewCatalogScheduler(catalogService service.CatalogService, spec string) *CatalogScheduler {
	return &CatalogScheduler{
		cron:           cron.New(),
		catalogService: catalogService,
		spec:           spec,
	}
}

func (s *CatalogScheduler) Start() error {
	_, err := s.cron.AddFunc(s.spec, func() {
		logger.Info("Starting scheduled catalog refresh", nil)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := s.catalogService.Refresh(ctx); err != nil {
			logger.Error("Scheduled catalog refresh failed", err)
			return
		}

		logger.Info("Scheduled catalog refresh completed", nil)
	})

	if err != nil {
		logger.Error("Failed to add cron job for catalog refresh", err)
		return err
	}

	s.cron.Start()
	logger.Info("Catalog scheduler started", map[string]interface{}{
		"spec": s.spec,
	})

	return nil
}

func (s *CatalogScheduler) Stop() {
	logger.Info("Stopping catalog scheduler...", nil)
	s.cron.Stop()
	logger.Info("Catalog scheduler stopped", nil)
}
