package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/qistas/fatoora-api/internal/config"
	domainRepo "github.com/qistas/fatoora-api/internal/domain/repository"
	"github.com/qistas/fatoora-api/internal/presentation/http/handler"
	"github.com/qistas/fatoora-api/internal/presentation/http/middleware"
	"github.com/qistas/fatoora-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth    *handler.AuthHandler
	Company *handler.CompanyHandler
	Invoice *handler.InvoiceHandler
	Draft   *handler.DraftHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/register", h.Auth.Register)
		auth.POST("/refresh", h.Auth.RefreshToken)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Auth/Profile routes
	protected.POST("/auth/logout", h.Auth.Logout)
	protected.GET("/profile", h.Auth.GetProfile)
	protected.PUT("/profile/password", h.Auth.ChangePassword)

	registerCompanyRoutes(protected, h)
	registerInvoiceRoutes(protected, h, deps)
	registerDraftRoutes(protected, h)
}

func registerCompanyRoutes(protected *gin.RouterGroup, h *Handlers) {
	companies := protected.Group("/companies")
	{
		companies.GET("", h.Company.List)
		companies.POST("", h.Company.Create)
		companies.GET("/default", h.Company.GetDefault)
		companies.GET("/:id", h.Company.Get)
		companies.PUT("/:id", h.Company.Update)
		companies.DELETE("/:id", h.Company.Delete)
	}
}

func registerInvoiceRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	invoices := protected.Group("/invoices")
	{
		invoices.GET("", h.Invoice.List)
		// Invoice generation uses idempotency middleware so a retried request
		// never produces a second invoice
		invoices.POST("", middleware.IdempotencyRequired(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Invoice.Generate)
		invoices.GET("/number/:number", h.Invoice.GetByNumber)
		invoices.GET("/:id/pdf", h.Invoice.DownloadPDF)
		invoices.DELETE("/:id", h.Invoice.Delete)
	}

	// The preview calculator is cheap but spammable; it gets its own
	// per-user rate limiter
	rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
		RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
		BurstSize:         deps.Cfg.RateLimit.Requests,
		CleanupInterval:   5 * time.Minute,
		EntryTTL:          10 * time.Minute,
	})
	preview := protected.Group("/preview")
	preview.Use(rateLimiter.Middleware())
	{
		preview.POST("/calculate", h.Invoice.Preview)
	}
}

func registerDraftRoutes(protected *gin.RouterGroup, h *Handlers) {
	drafts := protected.Group("/drafts")
	{
		drafts.GET("", h.Draft.List)
		drafts.POST("", h.Draft.Save)
		drafts.GET("/latest", h.Draft.GetLatest)
		drafts.GET("/:id", h.Draft.Get)
		drafts.DELETE("/:id", h.Draft.Delete)
	}
}
