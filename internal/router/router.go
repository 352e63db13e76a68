package router

import (
	"github.com/gin-gonic/gin"

	"github.com/psomsri/taladsod-backend/config"
	"github.com/psomsri/taladsod-backend/internal/app/controller"
	"github.com/psomsri/taladsod-backend/internal/middleware"
)

type Router struct {
	catalogController   *controller.CatalogController
	selectionController *controller.SelectionController
	cartController      *controller.CartController
	paymentController   *controller.PaymentController
	checkoutController  *controller.CheckoutController
	orderController     *controller.OrderController
	config              *config.Config
}

func NewRouter(
	catalogController *controller.CatalogController,
	selectionController *controller.SelectionController,
	cartController *controller.CartController,
	paymentController *controller.PaymentController,
	checkoutController *controller.CheckoutController,
	orderController *controller.OrderController,
	cfg *config.Config,
) *Router {
	return &Router{
		catalogController:   catalogController,
		selectionController: selectionController,
		cartController:      cartController,
		paymentController:   paymentController,
		checkoutController:  checkoutController,
		orderController:     orderController,
		config:              cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))
	router.Use(middleware.SessionMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "TALADSOD API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		catalog := v1.Group("/catalog")
		{
			catalog.POST("/load", r.catalogController.LoadListing)
			catalog.GET("", r.catalogController.GetListing)
		}

		selection := v1.Group("/selection")
		{
			selection.POST("/all", r.selectionController.SelectAll)
			selection.GET("/total", r.selectionController.GetTotal)
			selection.PUT("/:productId", r.selectionController.ToggleSelection)
			selection.PUT("/:productId/option", r.selectionController.SetOption)
		}

		cart := v1.Group("/cart")
		{
			cart.POST("", r.cartController.AddToCart)
			cart.GET("", r.cartController.GetCart)
			cart.GET("/summary", r.cartController.GetSummary)
		}

		payment := v1.Group("/payment")
		{
			payment.GET("", r.paymentController.GetPaymentView)
			payment.POST("/stripe", r.paymentController.PayWithStripe)
			payment.POST("/omise", r.paymentController.PayWithOmise)
		}

		checkout := v1.Group("/checkout")
		{
			checkout.GET("", r.checkoutController.Begin)
			checkout.POST("", r.checkoutController.Submit)
		}

		orders := v1.Group("/orders")
		{
			orders.GET("", r.orderController.GetOrders)
			orders.GET("/export", r.orderController.ExportOrders)
			orders.GET("/:id", r.orderController.GetOrderByID)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
