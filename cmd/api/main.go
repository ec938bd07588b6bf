package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/mcg25035/smilepay-adapter-api/internal/application/service"
	"github.com/mcg25035/smilepay-adapter-api/internal/config"
	"github.com/mcg25035/smilepay-adapter-api/internal/infrastructure/database"
	"github.com/mcg25035/smilepay-adapter-api/internal/infrastructure/repository"
	"github.com/mcg25035/smilepay-adapter-api/internal/presentation/http/handler"
	"github.com/mcg25035/smilepay-adapter-api/internal/presentation/http/routes"
	"github.com/mcg25035/smilepay-adapter-api/pkg/smilepay"
	"github.com/mcg25035/smilepay-adapter-api/pkg/webhook"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize repositories
	invoiceRepo := repository.NewInvoiceRepository(db)

	// Initialize gateway client and callback authenticator
	gatewayClient := smilepay.NewClient(smilepay.Config{
		Dcvc:        cfg.SmilePay.Dcvc,
		Rvg2c:       cfg.SmilePay.Rvg2c,
		VerifyKey:   cfg.SmilePay.VerifyKey,
		OdSobPrefix: cfg.SmilePay.OdSobPrefix,
		SelfURL:     cfg.SmilePay.SelfURL,
		APIURL:      cfg.SmilePay.APIURL,
	})
	authenticator := smilepay.NewCallbackAuthenticator(cfg.SmilePay.MerchantParam)

	// Initialize downstream notifier
	notifier := webhook.NewClient(webhook.Config{
		URL:    cfg.Webhook.URL,
		APIKey: cfg.Webhook.APIKey,
	})

	// Initialize services
	paymentService := service.NewPaymentService(invoiceRepo, gatewayClient, authenticator, notifier, cfg.Payment)

	// Initialize handlers
	handlers := &routes.Handlers{
		Payment: handler.NewPaymentHandler(paymentService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{Cfg: cfg})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
