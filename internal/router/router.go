package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"

	"github.com/aniketdange3/dental-clinic-api/internal/handler"
	promhandler "github.com/aniketdange3/dental-clinic-api/internal/handler/prometheus"
	"github.com/aniketdange3/dental-clinic-api/internal/middleware"
	"github.com/aniketdange3/dental-clinic-api/pkg/metrics"
)

// Handler is anything that can attach routes under the /api group.
type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

type Config struct {
	RateLimit       rate.Limit
	RateBurst       int
	CORS            middleware.CORSConfig
	Metrics         *metrics.Metrics
	MetricsRegistry *prometheus.Registry
}

type Router struct {
	engine *gin.Engine
}

// New assembles the engine: request id, logging, recovery, CORS, then the
// optional rate limit and metrics layers, then the /api routes.
func New(cfg Config, handlers ...Handler) (*Router, error) {
	gin.SetMode(gin.ReleaseMode)

	if err := handler.RegisterValidators(); err != nil {
		return nil, err
	}

	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORS),
	)

	if cfg.RateLimit > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateBurst, 10*time.Minute)
		engine.Use(limiter.Handler())
	}
	if cfg.Metrics != nil {
		engine.Use(middleware.Metrics(cfg.Metrics))
	}

	api := engine.Group("/api")
	for _, h := range handlers {
		h.RegisterRoutes(api)
	}

	if cfg.MetricsRegistry != nil {
		engine.GET("/metrics", promhandler.New(cfg.MetricsRegistry).Handler())
	}

	return &Router{engine: engine}, nil
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
