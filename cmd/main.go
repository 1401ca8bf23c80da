package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/ajserber/roadwatch/internal/api"
	"github.com/ajserber/roadwatch/internal/config"
	v1 "github.com/ajserber/roadwatch/internal/handler/http/v1"
	"github.com/ajserber/roadwatch/internal/models"
	"github.com/ajserber/roadwatch/internal/observability"
	"github.com/ajserber/roadwatch/internal/repository"
	"github.com/ajserber/roadwatch/internal/service"
	"github.com/ajserber/roadwatch/internal/transport"
	"github.com/ajserber/roadwatch/pkg/logger"
	redisclient "github.com/ajserber/roadwatch/pkg/redis"
)

// newTransport builds the push channel client selected by configuration.
func newTransport(ctx context.Context, cfg *config.Config, log *logrus.Logger) (transport.Client, error) {
	switch cfg.TransportKind {
	case config.TransportWebsocket:
		return transport.NewWSClient(cfg.WSURL, log), nil
	case config.TransportRedis:
		rdb, err := redisclient.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		return transport.NewRedisClient(rdb, cfg.RedisChannel, log), nil
	default:
		return nil, fmt.Errorf("unknown transport kind %q", cfg.TransportKind)
	}
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	log := logger.New(cfg.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tc, err := newTransport(ctx, cfg, log)
	if err != nil {
		log.Fatalf("Failed to set up transport: %v", err)
	}

	clock := clockwork.NewRealClock()
	metrics := observability.NewMetrics()

	store := repository.NewHazardStore()
	tracker := repository.NewPendingTracker(
		models.Reporter{ID: cfg.UserID, Username: cfg.Username},
		cfg.EchoWindow, cfg.EchoRadiusMeters, clock,
	)
	apiClient := api.NewClient(cfg.APIBaseURL, cfg.APIToken, cfg.APITimeout, log)

	syncService := service.NewSyncService(store, tracker, apiClient, tc, log, cfg, metrics, clock)

	handler := v1.NewHandler(syncService, log, cfg)

	router := gin.Default()
	apiGroup := router.Group("/api/v1")
	apiGroup.Use(v1.APIKeyAuthMiddleware(cfg, log))
	handler.RegisterRoutes(apiGroup)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Error starting HTTP server: %v", err)
		}
	}()
	log.Infof("HTTP server started on port %s", cfg.HTTPPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Received shutdown signal, shutting down server...")

	syncService.Deactivate()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Info("Server gracefully stopped")
}
