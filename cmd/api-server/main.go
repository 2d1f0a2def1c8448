package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"buildhub/database"
	"buildhub/internal/api/handler"
	"buildhub/internal/api/middleware"
	"buildhub/internal/api/models"
	"buildhub/internal/api/repository"
	"buildhub/internal/api/service"
	"buildhub/internal/config"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not load config: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer database.Close(db)

	// The API degrades to uncached reads when Redis is down.
	var cache *service.CacheService
	redisClient, err := database.ConnectRedis(cfg, logger)
	if err != nil {
		logger.Warn("redis unavailable, vote summaries uncached", "error", err)
	} else {
		cache = service.NewCacheService(redisClient, time.Duration(cfg.CacheTTL)*time.Second, logger)
		defer redisClient.Close()
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)
	carRepo := repository.NewCarRepository(db)
	partRepo := repository.NewPartRepository(db)
	buildListRepo := repository.NewBuildListRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	voteRepo := repository.NewVoteRepository(db)
	reportRepo := repository.NewReportRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)

	// Services
	lookups := service.NewLookupRegistry(carRepo, buildListRepo, partRepo)
	authService := service.NewAuthService(userRepo, refreshTokenRepo, cfg)
	voteService := service.NewVoteService(voteRepo, lookups, cache)
	moderationService := service.NewModerationService(reportRepo, voteRepo, lookups)
	carService := service.NewCarService(carRepo, categoryRepo, voteRepo)
	partService := service.NewPartService(partRepo, categoryRepo, voteRepo)
	buildListService := service.NewBuildListService(buildListRepo, carRepo, partRepo, voteRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	subscriptionService := service.NewSubscriptionService(subscriptionRepo, userRepo)

	// Rate limiter guards the whole API surface
	limiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		PerMinute:      cfg.RatePerMinute,
		PerHour:        cfg.RatePerHour,
		MaxClients:     cfg.RateMaxClients,
		TrustedProxies: cfg.TrustedProxies,
	})
	limiter.StartSweeper(5 * time.Minute)
	defer limiter.StopSweeper()

	router := setupRouter(cfg, logger, limiter,
		authService, voteService, moderationService,
		carService, partService, buildListService,
		categoryService, subscriptionService)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler: router,
	}

	go func() {
		logger.Info("server listening", "port", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", "error", err)
	}
}

func setupRouter(
	cfg *config.Config,
	logger *slog.Logger,
	limiter *middleware.RateLimiter,
	authService service.AuthService,
	voteService service.VoteService,
	moderationService service.ModerationService,
	carService service.CarService,
	partService service.PartService,
	buildListService service.BuildListService,
	categoryService service.CategoryService,
	subscriptionService service.SubscriptionService,
) *gin.Engine {
	if cfg.GoEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")

	// Registered ahead of the limiter middleware so reading your quota
	// never consumes it.
	api.GET("/ratelimit/quota", limiter.QuotaHandler())

	api.Use(limiter.Handler())

	authMW := middleware.AuthMiddleware(authService)

	authHandler := handler.NewAuthHandler(authService, cfg.AccessTokenTTL)

	voteHandler := handler.NewVoteHandler(voteService)
	reportHandler := handler.NewReportHandler(moderationService)

	// Public reads and authed writes per entity tree
	carsPublic := api.Group("/cars")
	carsAuthed := api.Group("/cars")
	carsAuthed.Use(authMW)
	handler.NewCarHandler(carService).RegisterRoutes(carsPublic, carsAuthed)
	voteHandler.RegisterRoutes(carsPublic, carsAuthed, models.EntityKindCar)
	reportHandler.RegisterRoutes(carsAuthed, models.EntityKindCar)

	listsPublic := api.Group("/build-lists")
	listsAuthed := api.Group("/build-lists")
	listsAuthed.Use(authMW)
	handler.NewBuildListHandler(buildListService, subscriptionService).RegisterRoutes(listsPublic, listsAuthed)
	voteHandler.RegisterRoutes(listsPublic, listsAuthed, models.EntityKindBuildList)
	reportHandler.RegisterRoutes(listsAuthed, models.EntityKindBuildList)

	admin := api.Group("/admin")
	admin.Use(authMW, middleware.RequireAdmin())

	partsPublic := api.Group("/parts")
	partsAuthed := api.Group("/parts")
	partsAuthed.Use(authMW)
	handler.NewPartHandler(partService).RegisterRoutes(partsPublic, admin.Group("/parts"))
	voteHandler.RegisterRoutes(partsPublic, partsAuthed, models.EntityKindPart)
	reportHandler.RegisterRoutes(partsAuthed, models.EntityKindPart)

	categoriesPublic := api.Group("/categories")
	handler.NewCategoryHandler(categoryService).RegisterRoutes(categoriesPublic, admin.Group("/categories"))

	authed := api.Group("")
	authed.Use(authMW)
	authHandler.RegisterRoutes(api, authed)
	handler.NewSubscriptionHandler(subscriptionService).RegisterRoutes(authed)

	handler.NewModerationHandler(moderationService).RegisterRoutes(admin)

	logger.Debug("routes registered")
	return router
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}
