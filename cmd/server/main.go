package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/yatube/yatube/internal/api"
	"github.com/yatube/yatube/internal/auth"
	"github.com/yatube/yatube/internal/blog"
	"github.com/yatube/yatube/internal/cache"
	"github.com/yatube/yatube/internal/db"
	"github.com/yatube/yatube/internal/media"
	"github.com/yatube/yatube/internal/store"
	"github.com/yatube/yatube/internal/store/memstore"
	"github.com/yatube/yatube/internal/web"
	"github.com/yatube/yatube/pkg/config"
	"github.com/yatube/yatube/pkg/logging"
	"github.com/yatube/yatube/pkg/telemetry"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logging.InitLogger(&cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logging.GetLogger().Sync()

	logger := logging.GetLogger()
	logger.Info("Starting Yatube server")

	// Initialize telemetry
	telemetryShutdown, err := telemetry.Init(&cfg.Telemetry)
	if err != nil {
		logger.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer telemetryShutdown()

	checks := map[string]api.HealthCheck{}

	st, closeStore, err := openStore(cfg, checks)
	if err != nil {
		logger.Fatal("Failed to open store", zap.Error(err))
	}
	defer closeStore()

	redisCache, err := cache.New(&cfg.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisCache.Close()
	if redisCache.Enabled() {
		checks["redis"] = redisCache.Health
	}

	images, err := media.NewDiskStorage(&cfg.Media)
	if err != nil {
		logger.Fatal("Failed to open media storage", zap.Error(err))
	}

	authSvc := auth.NewService(st.Users(), &cfg.Auth, redisCache)
	blogSvc := blog.NewService(st, images, cfg.Pagination.PageSize)

	// Create Gin router
	if strings.EqualFold(cfg.Logging.Level, "debug") {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.MaxMultipartMemory = cfg.Media.MaxUploadBytes
	router.Use(gin.Recovery())
	router.Use(web.AccessLog(logging.WithComponent("http")))
	if cfg.Telemetry.Enabled {
		router.Use(web.Telemetry())
	}

	api.NewRouter(blogSvc, images, checks).SetupRoutes(router)
	if err := web.NewHandler(blogSvc, authSvc, images, cfg.Auth.CookieSecure).SetupRoutes(router); err != nil {
		logger.Fatal("Failed to set up pages", zap.Error(err))
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	var metricsSrv *http.Server
	if cfg.Telemetry.Enabled && cfg.Telemetry.PrometheusEnabled {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		metricsSrv = &http.Server{
			Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Telemetry.PrometheusPort),
			Handler: mux,
		}
		go func() {
			logger.Info("Metrics server starting", zap.String("address", metricsSrv.Addr))
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("Metrics server failed", zap.Error(err))
			}
		}()
	}

	// Start server in goroutine
	go func() {
		logger.Info("Server starting", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if metricsSrv != nil {
		if err := metricsSrv.Shutdown(ctx); err != nil {
			logger.Error("Metrics server forced to shutdown", zap.Error(err))
		}
	}
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

// openStore opens the configured store and registers its health check
func openStore(cfg *config.Config, checks map[string]api.HealthCheck) (store.Store, func(), error) {
	if cfg.Database.Driver == config.DriverMemory {
		logging.GetLogger().Warn("Using the in-memory store; data is lost on exit")
		return memstore.New(), func() {}, nil
	}

	database, err := db.New(&cfg.Database, cfg.Logging.Level)
	if err != nil {
		return nil, nil, err
	}

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(); err != nil {
			database.Close()
			return nil, nil, err
		}
	}

	checks["database"] = database.Health
	closeFn := func() {
		if err := database.Close(); err != nil {
			logging.GetLogger().Error("Failed to close database", zap.Error(err))
		}
	}
	return db.NewRepository(database.DB), closeFn, nil
}
