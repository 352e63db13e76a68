package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/psomsri/taladsod-backend/internal/app/service"
	"github.com/psomsri/taladsod-backend/internal/middleware"
	"github.com/psomsri/taladsod-backend/pkg/email/emailjs"
)

type CheckoutController struct {
	checkoutService service.CheckoutService
}

func NewCheckoutController(checkoutService service.CheckoutService) *CheckoutController {
	return &CheckoutController{
		checkoutService: checkoutService,
	}
}

// Begin returns the checkout page state, or a redirect hint when the cart
// is empty
// GET /api/v1/checkout
func (ctrl *CheckoutController) Begin(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	profileID := middleware.GetProfileID(c)

	view, err := ctrl.checkoutService.Begin(c.Request.Context(), profileID)
	if err != nil {
		if errors.Is(err, service.ErrEmptyCart) {
			c.JSON(http.StatusConflict, gin.H{
				"error":    "Your cart is empty",
				"redirect": "/products",
			})
			return
		}
		log.Error("Failed to open checkout", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to open checkout",
		})
		return
	}

	c.JSON(http.StatusOK, view)
}

// Submit dispatches the order email and consumes the cart on success
// POST /api/v1/checkout
func (ctrl *CheckoutController) Submit(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	profileID := middleware.GetProfileID(c)

	var form service.OrderForm
	if err := c.ShouldBindJSON(&form); err != nil {
		log.Warn("Invalid order form", map[string]interface{}{
			"error": err.Error(),
		})
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := ctrl.checkoutService.Submit(c.Request.Context(), profileID, form)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyCart):
			c.JSON(http.StatusConflict, gin.H{
				"error":    "Your cart is empty",
				"redirect": "/products",
			})
		case errors.Is(err, service.ErrSubmissionInFlight):
			c.JSON(http.StatusConflict, gin.H{
				"error": "An order submission is already in progress",
			})
		case errors.Is(err, emailjs.ErrNotConfigured):
			log.Error("Order submission rejected, email not configured", err, nil)
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error": "Order service is not configured. Please contact the store",
			})
		case errors.Is(err, emailjs.ErrInvalidSender):
			log.Error("Order rejected by email service", err, nil)
			c.JSON(http.StatusBadGateway, gin.H{
				"error": "Order could not be sent: the sender account is invalid",
			})
		default:
			log.Error("Order submission failed", err, nil)
			c.JSON(http.StatusBadGateway, gin.H{
				"error": "Failed to send order. Please try again",
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Thank you " + result.CustomerName + "! Your order has been received",
		"order":   result,
	})
}
