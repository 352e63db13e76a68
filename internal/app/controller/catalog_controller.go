package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/psomsri/taladsod-backend/internal/app/service"
	"github.com/psomsri/taladsod-backend/internal/middleware"
)

type CatalogController struct {
	catalogService   service.CatalogService
	selectionService service.SelectionService
}

func NewCatalogController(catalogService service.CatalogService, selectionService service.SelectionService) *CatalogController {
	return &CatalogController{
		catalogService:   catalogService,
		selectionService: selectionService,
	}
}

// LoadListing loads the catalog and returns the listing page with the
// profile's selection state reset to defaults
// POST /api/v1/catalog/load
func (ctrl *CatalogController) LoadListing(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	profileID := middleware.GetProfileID(c)

	if _, err := ctrl.catalogService.Load(c.Request.Context(), profileID); err != nil {
		log.Error("Failed to load catalog", err, nil)
		c.JSON(http.StatusBadGateway, gin.H{
			"error":  "Failed to load products",
			"reason": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, ctrl.selectionService.Listing(profileID))
}

// GetListing returns the listing page from the cached catalog
// GET /api/v1/catalog
func (ctrl *CatalogController) GetListing(c *gin.Context) {
	profileID := middleware.GetProfileID(c)

	listing := ctrl.selectionService.Listing(profileID)
	if len(listing.Products) == 0 {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Product catalog is not available",
		})
		return
	}

	c.JSON(http.StatusOK, listing)
}
