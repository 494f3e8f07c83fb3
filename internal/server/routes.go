package server

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/mrhapile/cf-diagnoser/internal/diagnosis"
)

// SetupRoutes registers the API. gatherer may be nil to leave metrics unexposed.
func SetupRoutes(router *gin.Engine, svc *diagnosis.Service, gatherer prometheus.Gatherer, metricsPath string) {
	router.GET("/health", HealthCheck)

	if gatherer != nil {
		router.GET(metricsPath, gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	v1 := router.Group("/v1")
	{
		v1.GET("/symptoms", ListSymptoms(svc))
		v1.POST("/infer", HandleInfer(svc))
	}
}

// NewRouter returns a gin engine with recovery and zap request logging.
func NewRouter(logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger))
	return router
}
