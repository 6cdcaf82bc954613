package app

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/nekogravitycat/reservation-service/internal/api"
	"github.com/nekogravitycat/reservation-service/internal/booking"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction   bool
	ProdOrigins    []string
	RateLimitRPS   float64
	RateLimitBurst int
	TrustedProxies []string
	DBPool         *pgxpool.Pool
	Publisher      booking.EventPublisher // nil disables booking events
	Logger         *zap.Logger
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router         *gin.Engine
	BookingService booking.Service
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	// Booking Module
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	bookingService := booking.NewService(bookingRepo, cfg.Publisher, cfg.Logger)

	// Router
	router := api.NewRouter(api.Config{
		IsProduction:   cfg.IsProduction,
		ProdOrigins:    cfg.ProdOrigins,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
		TrustedProxies: cfg.TrustedProxies,
		Logger:         cfg.Logger,
		BookingService: bookingService,
	})

	return &Container{
		Router:         router,
		BookingService: bookingService,
	}
}
