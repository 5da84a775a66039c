package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/atlashaul/portal/internal/infra/gateway/hub"
	infraredis "github.com/atlashaul/portal/internal/infra/redis"
	"github.com/atlashaul/portal/internal/platform/events"
	"github.com/atlashaul/portal/internal/platform/invite"
	"github.com/atlashaul/portal/internal/platform/wallet"
	"github.com/atlashaul/portal/internal/transport/httpapi"
	"github.com/atlashaul/portal/internal/transport/httpapi/handler"
	"github.com/atlashaul/portal/internal/transport/httpapi/middleware"
	"github.com/atlashaul/portal/pkg/config"
	"github.com/atlashaul/portal/pkg/logger"
)

func main() {
	// Create context that listens for termination signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.NewDefault(cfg.Env)
	log.Info("Starting Atlas Haul portal API",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	// Initialize Redis client for the events calendar cache. The cache is an
	// optimization; when Redis is unreachable the portal serves direct fetches.
	var eventsCache events.Cache
	redisClient := goredis.NewClient(&goredis.Options{
		Addr:     cfg.RedisURL,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Warn("Redis unreachable, events cache disabled", "error", err)
	} else {
		eventsCache = infraredis.NewCache(redisClient, log)
		log.Info("Redis connection established")
	}

	// Initialize the hub gateway
	hubClient := hub.NewClient(cfg.HubAPIURL, cfg.HubAPIKey, log)
	hubAdapter := hub.NewAdapter(hubClient)
	log.Info("Hub gateway initialized", "url", cfg.HubAPIURL)

	// Initialize services
	jwtSvc := middleware.NewJWTService(cfg.JWTSecret)
	walletSvc := wallet.NewService(hubAdapter, log)
	eventsSvc := events.NewService(hubAdapter, eventsCache, cfg.EventsCacheTTL, log)
	inviteSvc := invite.NewService(hubAdapter, log)

	// Initialize HTTP handlers
	walletHandler := handler.NewWalletHandler(walletSvc)
	eventsHandler := handler.NewEventsHandler(eventsSvc)
	inviteHandler := handler.NewInviteHandler(inviteSvc)

	// Create HTTP router
	routerCfg := httpapi.Config{
		Logger:         log,
		AllowedOrigins: cfg.AllowedOrigins,
		WalletHandler:  walletHandler,
		EventsHandler:  eventsHandler,
		InviteHandler:  inviteHandler,
		JWTMiddleware:  middleware.JWTMiddleware(jwtSvc),
	}
	r := httpapi.NewRouter(routerCfg)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for termination signal
	<-ctx.Done()
	log.Info("Shutdown signal received")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown failed", "error", err)
		os.Exit(1)
	}

	log.Info("Server stopped gracefully")
}
