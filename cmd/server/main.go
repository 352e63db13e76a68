package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/psomsri/taladsod-backend/config"
	"github.com/psomsri/taladsod-backend/internal/app/controller"
	"github.com/psomsri/taladsod-backend/internal/app/repository"
	"github.com/psomsri/taladsod-backend/internal/app/service"
	"github.com/psomsri/taladsod-backend/internal/app/store"
	"github.com/psomsri/taladsod-backend/internal/catalog"
	"github.com/psomsri/taladsod-backend/internal/db"
	"github.com/psomsri/taladsod-backend/internal/router"
	"github.com/psomsri/taladsod-backend/internal/scheduler"
	"github.com/psomsri/taladsod-backend/pkg/email/emailjs"
	"github.com/psomsri/taladsod-backend/pkg/logger"
	"github.com/psomsri/taladsod-backend/pkg/payment/promptpay"
	"github.com/psomsri/taladsod-backend/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting TALADSOD Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database for the order archive
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Initialize cart storage. Redis keeps carts across restarts; without
	// it carts live in process memory only.
	var cartRepo repository.CartRepository
	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Warn("Redis unavailable, carts will not survive restarts", map[string]interface{}{
			"error": err.Error(),
		})
		cartRepo = repository.NewMemoryCartRepository()
	} else {
		defer redis.Close()
		cartRepo = repository.NewCartRepository(redis.GetClient(), cfg.Cart.TTL)
	}

	// Catalog source
	catalogSource, err := catalog.NewSource(&cfg.Catalog)
	if err != nil {
		logger.Fatal("Failed to configure catalog source", err)
	}

	// PromptPay builder
	promptPayBuilder, err := promptpay.NewBuilder(promptpay.Config{
		MerchantID: cfg.PromptPay.MerchantID,
		QRBaseURL:  cfg.PromptPay.QRBaseURL,
		QRSize:     cfg.PromptPay.QRSize,
	})
	if err != nil {
		logger.Fatal("Failed to configure PromptPay", err)
	}

	// Initialize repositories and stores
	selections := store.NewSelectionStore()
	orderRepo := repository.NewOrderRepository(db.GetDB())

	// Initialize services
	catalogService := service.NewCatalogService(catalogSource, selections)
	selectionService := service.NewSelectionService(catalogService, selections)
	cartService := service.NewCartService(catalogService, selectionService, cartRepo, cfg.Cart.MinSelectedItems)
	paymentService := service.NewPaymentService(cartService, promptPayBuilder)
	checkoutService := service.NewCheckoutService(cartService, emailjs.Config{
		BaseURL:    cfg.EmailJS.BaseURL,
		PublicKey:  cfg.EmailJS.PublicKey,
		ServiceID:  cfg.EmailJS.ServiceID,
		TemplateID: cfg.EmailJS.TemplateID,
	}, orderRepo)
	orderService := service.NewOrderService(orderRepo)

	// Initialize controllers
	catalogController := controller.NewCatalogController(catalogService, selectionService)
	selectionController := controller.NewSelectionController(selectionService)
	cartController := controller.NewCartController(cartService)
	paymentController := controller.NewPaymentController(paymentService)
	checkoutController := controller.NewCheckoutController(checkoutService)
	orderController := controller.NewOrderController(orderService)

	// Optional background catalog refresh
	if cfg.Catalog.RefreshCron != "" {
		catalogScheduler := scheduler.NewCatalogScheduler(catalogService, cfg.Catalog.RefreshCron)
		if err := catalogScheduler.Start(); err != nil {
			logger.Warn("Catalog scheduler disabled", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			defer catalogScheduler.Stop()
		}
	}

	// Setup router
	r := router.NewRouter(
		catalogController,
		selectionController,
		cartController,
		paymentController,
		checkoutController,
		orderController,
		cfg,
	)
	engine := r.Setup()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
