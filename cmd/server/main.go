// Package main runs the ad-platform admin HTTP server with graceful shutdown.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/adstack/admin-backend/config"
	"github.com/adstack/admin-backend/internal/accounts"
	"github.com/adstack/admin-backend/internal/auth"
	"github.com/adstack/admin-backend/internal/hierarchy"
	"github.com/adstack/admin-backend/internal/middleware"
	"github.com/adstack/admin-backend/internal/models"
	"github.com/adstack/admin-backend/internal/notices"
	"github.com/adstack/admin-backend/pkg/cache"
	"github.com/adstack/admin-backend/pkg/database"
	"github.com/adstack/admin-backend/pkg/redis"
	"github.com/adstack/admin-backend/pkg/response"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx := context.Background()
	pool, err := database.NewPostgresPool(ctx, cfg.Database.DSN(), logger)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	// The view cache is optional; without Redis every read goes to Postgres.
	var views *cache.ViewCache
	if cfg.Redis.Addr != "" {
		rdb, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
		if err != nil {
			logger.Warn("view cache disabled", zap.Error(err))
		} else {
			defer rdb.Close()
			views = cache.NewViewCache(rdb.Client, time.Duration(cfg.Cache.ViewTTLSeconds)*time.Second, logger)
		}
	}

	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpireHours)

	// Auth
	authRepo := auth.NewRepository(pool)
	authHandler := auth.NewHandler(authRepo, jwtService, logger)

	// Hierarchy listings
	hierarchyRepo := hierarchy.NewRepository(pool)
	hierarchyHandler := hierarchy.NewHandler(hierarchyRepo, views, logger)

	// Account/organization mutations
	accountsRepo := accounts.NewRepository(pool)
	guard := accounts.NewGuard(accountsRepo)
	accountsHandler := accounts.NewHandler(guard, views, logger)

	// Notice board
	noticeRepo := notices.NewRepository(pool)
	noticeHandler := notices.NewHandler(noticeRepo, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.Server.CORSAllowedOrigins))
	router.Use(middleware.Logger(logger))

	// Health
	router.GET("/health", func(c *gin.Context) { response.OK(c, gin.H{"status": "ok"}) })

	// Auth (public)
	router.POST("/auth/login", authHandler.Login)

	// Protected API (JWT required)
	api := router.Group("")
	api.Use(middleware.JWT(jwtService))
	{
		// Hierarchy listings (scope computed per actor, never from client filters)
		api.GET("/masters", hierarchyHandler.ListMasters)
		api.GET("/agencies", hierarchyHandler.ListAgencies)
		api.GET("/advertisers", hierarchyHandler.ListAdvertisers)

		// Mutations (guard enforces tier rules)
		api.POST("/accounts", accountsHandler.CreateAccount)
		api.DELETE("/accounts", accountsHandler.DeleteAccounts)
		api.POST("/organizations", accountsHandler.CreateOrganization)

		// Notice board
		api.GET("/notices", middleware.RequireCapability(models.Role.CanViewNotices), noticeHandler.List)
		api.GET("/notices/:id", middleware.RequireCapability(models.Role.CanViewNotices), noticeHandler.Get)
		api.POST("/notices", middleware.RequireCapability(models.Role.CanManageNotices), noticeHandler.Create)
		api.PUT("/notices/:id", middleware.RequireCapability(models.Role.CanManageNotices), noticeHandler.Update)
		api.DELETE("/notices/:id", middleware.RequireCapability(models.Role.CanManageNotices), noticeHandler.Delete)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
