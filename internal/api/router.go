package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/nekogravitycat/reservation-service/internal/booking"
	bookingHttp "github.com/nekogravitycat/reservation-service/internal/booking/http"
	healthHttp "github.com/nekogravitycat/reservation-service/internal/health/http"
)

// Config holds the dependencies required by the router.
type Config struct {
	IsProduction   bool
	ProdOrigins    []string
	RateLimitRPS   float64 // 0 disables the limiter
	RateLimitBurst int
	TrustedProxies []string // proxies whose X-Forwarded-For is believed; none by default
	Logger         *zap.Logger
	BookingService booking.Service
}

// NewRouter initializes the HTTP router engine.
// It assembles middleware (Logger, Recovery, CORS, rate limit) and registers routes for each module.
func NewRouter(cfg Config) *gin.Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()

	// ClientIP only honours forwarding headers from these peers.
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		logger.Error("invalid trusted proxies, trusting none", zap.Strings("proxies", cfg.TrustedProxies), zap.Error(err))
		_ = r.SetTrustedProxies(nil)
	}

	// Global Middleware:
	// - RequestLogger: one structured line per request, including recovered panics.
	// - Recovery: turns panics into a 500 envelope.
	r.Use(RequestLogger(logger), Recovery(logger))

	if c, ok := corsConfig(cfg.IsProduction, cfg.ProdOrigins); ok {
		r.Use(cors.New(c))
	}

	// Liveness lives at the root for the load balancer and is never rate limited.
	healthHttp.RegisterRoutes(r)

	bookingHandler := bookingHttp.NewHandler(cfg.BookingService, logger)

	apiGroup := r.Group("/api")
	if cfg.RateLimitRPS > 0 {
		limiter := NewClientLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
		apiGroup.Use(RateLimit(limiter, logger))
	}
	{
		bookingHttp.RegisterRoutes(apiGroup, bookingHandler)
	}

	return r
}

// corsConfig allows any origin outside production. In production only the listed
// origins are allowed; with none listed CORS is not enabled at all.
func corsConfig(isProduction bool, prodOrigins []string) (cors.Config, bool) {
	config := cors.DefaultConfig()
	config.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}

	if !isProduction {
		config.AllowAllOrigins = true
		return config, true
	}
	if len(prodOrigins) == 0 {
		return config, false
	}
	config.AllowOrigins = prodOrigins
	return config, true
}
