package v1

import (
	"trucking-quote-backend/config"
	"trucking-quote-backend/internal/delivery/http/middleware"
	"trucking-quote-backend/internal/domain"
	"trucking-quote-backend/internal/usecase"
	"trucking-quote-backend/pkg/apperror"
	"trucking-quote-backend/pkg/logger"
	"trucking-quote-backend/pkg/metrics"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	QuoteUC  domain.QuoteUsecase
	HealthUC usecase.HealthUsecase
	Config   *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.AllowedOrigins(), deps.Config.IsProduction())) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(logger.Log))
	r.Use(middleware.SecurityHeadersMiddleware(deps.Config.IsProduction()))
	r.Use(middleware.ErrorHandler())

	r.NoRoute(func(c *gin.Context) {
		_ = c.Error(apperror.NotFound("Route not found"))
	})

	// Prometheus scrape endpoint
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	v1 := r.Group("/v1")

	// Health Check
	NewHealthHandler(v1, deps.HealthUC)

	// Public routes. /api/send-email keeps the path the site form already posts to.
	NewQuoteHandler(v1, r.Group("/api"), deps.QuoteUC, deps.Config.ExposeDiagnostics)

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
