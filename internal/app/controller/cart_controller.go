package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/psomsri/taladsod-backend/internal/app/model"
	"github.com/psomsri/taladsod-backend/internal/app/service"
	"github.com/psomsri/taladsod-backend/internal/middleware"
)

type CartController struct {
	cartService service.CartService
}

func NewCartController(cartService service.CartService) *CartController {
	return &CartController{
		cartService: cartService,
	}
}

// AddToCart snapshots the current selection into the persisted cart
// POST /api/v1/cart
func (ctrl *CartController) AddToCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	profileID := middleware.GetProfileID(c)

	items, err := ctrl.cartService.AddToCart(c.Request.Context(), profileID)
	if err != nil {
		var minErr *service.MinimumSelectionError
		if errors.As(err, &minErr) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":          minErr.Error(),
				"selected_count": minErr.Selected,
				"required":       minErr.Required,
			})
			return
		}
		log.Error("Failed to add items to cart", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to save cart",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"count": len(items),
		"total": model.CartTotal(items),
	})
}

// GetCart returns the persisted cart
// GET /api/v1/cart
func (ctrl *CartController) GetCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	profileID := middleware.GetProfileID(c)

	items, err := ctrl.cartService.LoadCart(c.Request.Context(), profileID)
	if err != nil {
		log.Error("Failed to load cart", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load cart",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"count": len(items),
		"total": model.CartTotal(items),
	})
}

// GetSummary returns the cart page view with the locale-formatted total
// GET /api/v1/cart/summary
func (ctrl *CartController) GetSummary(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	profileID := middleware.GetProfileID(c)

	summary, err := ctrl.cartService.Summary(c.Request.Context(), profileID)
	if err != nil {
		log.Error("Failed to build cart summary", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load cart",
		})
		return
	}

	c.JSON(http.StatusOK, summary)
}
