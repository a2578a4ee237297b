package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/qistas/fatoora-api/internal/application/service"
	"github.com/qistas/fatoora-api/internal/config"
	"github.com/qistas/fatoora-api/internal/infrastructure/database"
	"github.com/qistas/fatoora-api/internal/infrastructure/repository"
	"github.com/qistas/fatoora-api/internal/presentation/http/handler"
	"github.com/qistas/fatoora-api/internal/presentation/http/routes"
	"github.com/qistas/fatoora-api/pkg/invoicepdf"
	"github.com/qistas/fatoora-api/pkg/utils"
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

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	draftRepo := repository.NewDraftRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// The PDF composer loads the Arabic font once; a missing font degrades to
	// core fonts rather than stopping the service
	composer := invoicepdf.NewComposer(invoicepdf.FontConfig{
		ArabicFontPath: cfg.Invoice.ArabicFontPath,
	})
	if composer.ArabicFontLoaded() {
		log.Printf("Arabic font loaded from %s", cfg.Invoice.ArabicFontPath)
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager)
	companyService := service.NewCompanyService(companyRepo)
	invoiceService := service.NewInvoiceService(invoiceRepo, companyRepo, composer, cfg.Invoice.QRSize)
	draftService := service.NewDraftService(draftRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:    handler.NewAuthHandler(authService),
		Company: handler.NewCompanyHandler(companyService),
		Invoice: handler.NewInvoiceHandler(invoiceService),
		Draft:   handler.NewDraftHandler(draftService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
