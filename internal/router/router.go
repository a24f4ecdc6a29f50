package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/clinic-report-api/internal/handler/prometheus"
	"github.com/jwalitptl/clinic-report-api/internal/middleware"
)

type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

type Router struct {
	engine  *gin.Engine
	auth    *middleware.AuthMiddleware
	healthH Handler
	reportH Handler
	metrics *prometheus.Handler
}

type RouterConfig struct {
	Mode           string
	RateLimit      rate.Limit
	RateBurst      int
	RateClientTTL  time.Duration
	RateLimitOff   bool
	CORSConfig     middleware.CORSConfig
	RequestTimeout time.Duration
	Logger         *zerolog.Logger
}

// NewRouter builds the engine and its global middleware. auth may be nil,
// in which case report routes are public.
func NewRouter(
	auth *middleware.AuthMiddleware,
	healthH Handler,
	reportH Handler,
	metrics *prometheus.Handler,
	config RouterConfig,
) *Router {
	if config.Mode == "" {
		config.Mode = gin.ReleaseMode
	}
	gin.SetMode(config.Mode)

	engine := gin.New()

	r := &Router{
		engine:  engine,
		auth:    auth,
		healthH: healthH,
		reportH: reportH,
		metrics: metrics,
	}

	// Add core middlewares
	engine.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		middleware.Logger(config.Logger),
		middleware.ErrorLogger(),
		metrics.Middleware(),
		middleware.SecurityHeaders(middleware.DefaultSecurityConfig()),
		middleware.CORS(config.CORSConfig),
		middleware.Timeout(config.RequestTimeout),
	)

	if !config.RateLimitOff {
		rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
			Rate:  config.RateLimit,
			Burst: config.RateBurst,
			TTL:   config.RateClientTTL,
		})
		engine.Use(rateLimiter.RateLimit())
	}

	return r
}

func (r *Router) Setup() {
	r.engine.GET("/metrics", r.metrics.Handler())

	api := r.engine.Group("/api")
	r.healthH.RegisterRoutes(api)

	protected := api.Group("")
	protected.Use(middleware.NoStore())
	if r.auth != nil {
		protected.Use(r.auth.Authenticate(), r.auth.RequireRole())
	}
	r.reportH.RegisterRoutes(protected)
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
