package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"winecellar/database"
	"winecellar/internal/cache"
	"winecellar/internal/capture"
	"winecellar/internal/config"
	"winecellar/internal/httpapi/handler"
	"winecellar/internal/httpapi/middleware"
	"winecellar/internal/httpapi/repository"
	"winecellar/internal/httpapi/repository/memory"
	"winecellar/internal/httpapi/service"
)

const (
	mockLatencyMin = 200 * time.Millisecond
	mockLatencyMax = 500 * time.Millisecond
)

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

// buildRepositories picks the data backend: embedded mock data (the
// default) or Postgres via gorm, both behind the same contracts.
func buildRepositories(cfg *config.Config, logger *slog.Logger) (repository.WineRepository, repository.RatingRepository, repository.UserRepository, func(), error) {
	if cfg.DBBackend == config.BackendPostgres {
		db, err := database.ConnectDB(cfg, logger)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		cleanup := func() {
			if err := database.Close(db); err != nil {
				logger.Warn("close database", "error", err)
			}
		}
		return repository.NewWineRepository(db), repository.NewRatingRepository(db), repository.NewUserRepository(db), cleanup, nil
	}

	wines, err := memory.SeedWines()
	if err != nil {
		return nil, nil, nil, nil, err
	}
	ratings, err := memory.SeedRatings()
	if err != nil {
		return nil, nil, nil, nil, err
	}
	users, err := memory.SeedUsers()
	if err != nil {
		return nil, nil, nil, nil, err
	}

	delay := memory.NoDelay
	if cfg.MockLatency {
		delay = memory.SimulatedLatency(mockLatencyMin, mockLatencyMax)
	}
	logger.Info("using in-memory mock backend", "wines", len(wines), "ratings", len(ratings), "latency", cfg.MockLatency)
	return memory.NewWineStore(wines, delay), memory.NewRatingStore(ratings, delay), memory.NewUserStore(users, delay), func() {}, nil
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	wineRepo, ratingRepo, userRepo, cleanup, err := buildRepositories(cfg, logger)
	if err != nil {
		log.Fatalf("could not initialize data backend: %v", err)
	}
	defer cleanup()

	scanCache, err := cache.NewScanCache(cfg.RedisURL)
	if err != nil {
		logger.Warn("redis unavailable, scan cache disabled", "error", err)
		scanCache = &cache.ScanCache{}
	}
	defer scanCache.Close()

	device := capture.NewDevice(cfg.ScanDetectDelay)

	wineSvc := service.NewWineService(wineRepo, ratingRepo)
	ratingSvc := service.NewRatingService(ratingRepo, wineRepo)
	collectionSvc := service.NewCollectionService(wineRepo, ratingRepo)
	profileSvc := service.NewProfileService(userRepo, ratingRepo)
	authSvc := service.NewAuthService(userRepo, cfg)
	scanSvc := service.NewScanService(device, wineRepo, ratingSvc, scanCache, logger)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(cfg.CORSOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "backend": cfg.DBBackend, "cache": scanCache.Enabled()})
	})

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	api := r.Group("/api")
	api.Use(rateLimiter.Middleware())

	handler.NewAuthHandler(authSvc).RegisterRoutes(api)

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))
	handler.NewWineHandler(wineSvc).RegisterRoutes(protected)
	handler.NewRatingHandler(ratingSvc).RegisterRoutes(protected)
	handler.NewScanHandler(scanSvc).RegisterRoutes(protected)
	handler.NewCollectionHandler(collectionSvc).RegisterRoutes(protected)
	handler.NewProfileHandler(profileSvc).RegisterRoutes(protected)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("api-server listening", "addr", addr, "env", cfg.GoEnv)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
