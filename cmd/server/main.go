package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/trendboard/channel-trends-go/internal/cache"
	"github.com/trendboard/channel-trends-go/internal/config"
	"github.com/trendboard/channel-trends-go/internal/handler"
	"github.com/trendboard/channel-trends-go/internal/middleware"
	"github.com/trendboard/channel-trends-go/internal/service"
	"github.com/trendboard/channel-trends-go/internal/service/youtube"
	"github.com/trendboard/channel-trends-go/internal/validation"
	"github.com/trendboard/channel-trends-go/pkg/logger"
)

func main() {
	// Load .env if present; real deployments set variables directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.File); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	logger.Log.Info("Starting channel trends server",
		zap.Int("port", cfg.Server.Port),
		zap.Int("maxPages", cfg.Pipeline.MaxPages),
	)

	ctx := context.Background()

	// YouTube API client (optional, only if API key is provided). Without it
	// the server still starts and serves 500s on ranking requests.
	var client service.SearchClient
	if cfg.YouTube.APIKey != "" {
		ytClient, err := youtube.NewClient(ctx, cfg.YouTube.APIKey, cfg.YouTube.Timeout)
		if err != nil {
			logger.Log.Error("Failed to initialize YouTube client", zap.Error(err))
			os.Exit(1)
		}
		client = ytClient
		logger.Log.Info("YouTube API client initialized")
	} else {
		logger.Log.Warn("YOUTUBE_API_KEY not configured, ranking requests will fail")
	}

	validator := validation.New(cfg.Pipeline)
	resultCache := cache.New(nil)
	rankService := service.NewRankService(client, resultCache, validator, cfg.Cache.ResultTTL, cfg.Cache.EmptyTTL)

	router := setupRouter(rankService, cfg.YouTube.APIKey != "")

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Log.Info("Server listening", zap.String("addr", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		logger.Log.Fatal("Server error", zap.Error(err))
	case sig := <-shutdown:
		logger.Log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Log.Error("Graceful shutdown failed", zap.Error(err))
			if err := server.Close(); err != nil {
				logger.Log.Error("Failed to close server", zap.Error(err))
			}
			os.Exit(1)
		}

		logger.Log.Info("Server stopped gracefully")
	}
}

func setupRouter(rankService *service.RankService, apiKeyConfigured bool) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.Metrics())
	router.Use(cors.Default())

	rankHandler := handler.NewRankHandler(rankService)
	healthHandler := handler.NewHealthHandler(apiKeyConfigured)

	router.GET("/api/rank", rankHandler.HandleRank)
	router.GET("/health", healthHandler.LivenessProbe)
	router.GET("/health/ready", healthHandler.ReadinessProbe)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.StaticFile("/", "./static/index.html")
	router.Static("/static", "./static")

	return router
}
