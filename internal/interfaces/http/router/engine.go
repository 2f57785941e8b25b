package router

import (
	"github.com/gin-gonic/gin"
	"github.com/labbench/backend/internal/infrastructure/logger"
	"github.com/labbench/backend/internal/interfaces/http/handler"
	"github.com/labbench/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// EngineConfig configures the gin engine
type EngineConfig struct {
	Logger    *zap.Logger
	BodyLimit int64
	CORS      middleware.CORSConfig
}

// NewEngine builds the gin engine with the middleware chain, GET /health and the
// given API routes under /api/v1.
func NewEngine(cfg EngineConfig, health *handler.HealthHandler, registrars ...RouteRegistrar) *gin.Engine {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.BodyLimit <= 0 {
		cfg.BodyLimit = middleware.DefaultBodyLimit
	}
	middleware.SetupValidator()

	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		logger.Recovery(cfg.Logger),
		logger.GinMiddleware(cfg.Logger),
		middleware.Secure(),
		middleware.CORSWithConfig(cfg.CORS),
		middleware.BodyLimit(cfg.BodyLimit),
	)

	if health != nil {
		engine.GET("/health", health.Health)
	}

	NewRouter(engine).Register(registrars...).Setup()
	return engine
}

// BenchRoutes returns the route groups of the dilution and quantity handlers
func BenchRoutes(dilutions *handler.DilutionHandler, quantities *handler.QuantityHandler) []RouteRegistrar {
	return []RouteRegistrar{
		NewDomainGroup("dilutions", "/dilutions").
			POST("", dilutions.Run).
			GET("", dilutions.List).
			GET("/:id", dilutions.Get),
		NewDomainGroup("quantities", "/quantities").
			POST("/molarity", quantities.Molarity).
			POST("/convert", quantities.Convert).
			GET("/units", quantities.Units),
	}
}
