package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nekogravitycat/reservation-service/internal/app"
	"github.com/nekogravitycat/reservation-service/internal/booking"
	"github.com/nekogravitycat/reservation-service/internal/config"
	"github.com/nekogravitycat/reservation-service/internal/db"
	"github.com/nekogravitycat/reservation-service/internal/pkg/logger"
	"github.com/nekogravitycat/reservation-service/internal/pkg/mq"
)

func main() {
	// For receiving Ctrl+C / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zl, err := logger.New(cfg.IsProduction)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	pool, err := db.NewPool(ctx, cfg.DBDSN, cfg.DBMaxConns)
	if err != nil {
		zl.Fatal("failed to connect to db", zap.Error(err))
	}
	defer pool.Close()

	if cfg.DBMigrate {
		if err := db.Migrate(pool); err != nil {
			zl.Fatal("failed to migrate db", zap.Error(err))
		}
	}

	var publisher booking.EventPublisher
	if cfg.AMQPURL != "" {
		p, err := mq.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			zl.Fatal("failed to connect to rabbitmq", zap.Error(err))
		}
		defer p.Close()
		publisher = p
	} else {
		zl.Info("AMQP_URL not set, booking events disabled")
	}

	container := app.NewContainer(app.Config{
		IsProduction:   cfg.IsProduction,
		ProdOrigins:    cfg.ProdOrigins,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
		TrustedProxies: cfg.TrustedProxies,
		DBPool:         pool,
		Publisher:      publisher,
		Logger:         zl,
	})

	// Use http.Server for graceful shutdown
	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: container.Router,
	}

	go func() {
		zl.Info("server running", zap.String("addr", cfg.HTTPAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zl.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zl.Error("server forced to shutdown", zap.Error(err))
	}

	zl.Info("server exited gracefully")
}
