package http

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/thermochef/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(requestid.New())
	router.Use(RecoveryMiddleware(logger))
	router.Use(LoggerMiddleware(logger))
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	router.GET("/health", handler.HealthCheck)

	v1 := router.Group("/api/v1")
	v1.Use(RateLimitMiddleware(cfg.RateLimit.PerIP, logger))
	v1.Use(BodySizeLimit(cfg.Server.MaxBodyBytes))
	{
		v1.GET("/devices", handler.ListDevices)

		recipes := v1.Group("/recipes")
		{
			recipes.POST("/parse", handler.ParseRecipe)
			recipes.POST("/convert", handler.ConvertRecipe)
			recipes.POST("/scale", handler.ScaleRecipe)
		}

		v1.POST("/nutrition", handler.EstimateNutrition)
		v1.POST("/shopping-list", handler.BuildShoppingList)
		v1.GET("/conversions/:id", handler.GetConversion)
	}

	return router
}
