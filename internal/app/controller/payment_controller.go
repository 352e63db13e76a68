package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/psomsri/taladsod-backend/internal/app/service"
	"github.com/psomsri/taladsod-backend/internal/middleware"
)

type PaymentController struct {
	paymentService service.PaymentService
}

func NewPaymentController(paymentService service.PaymentService) *PaymentController {
	return &PaymentController{
		paymentService: paymentService,
	}
}

// GetPaymentView returns the payable total and the PromptPay QR image URL
// GET /api/v1/payment
func (ctrl *PaymentController) GetPaymentView(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	profileID := middleware.GetProfileID(c)

	view, err := ctrl.paymentService.View(c.Request.Context(), profileID)
	if err != nil {
		log.Error("Failed to build payment view", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to prepare payment",
		})
		return
	}

	c.JSON(http.StatusOK, view)
}

// PayWithStripe acknowledges a card checkout request
// POST /api/v1/payment/stripe
func (ctrl *PaymentController) PayWithStripe(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": ctrl.paymentService.PayWithStripe(),
	})
}

// PayWithOmise acknowledges a wallet checkout request
// POST /api/v1/payment/omise
func (ctrl *PaymentController) PayWithOmise(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": ctrl.paymentService.PayWithOmise(),
	})
}
