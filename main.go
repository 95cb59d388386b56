package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/madr-project/madr/handlers"
	"github.com/madr-project/madr/internal/accounts"
	"github.com/madr-project/madr/internal/catalog"
	"github.com/madr-project/madr/internal/config"
	"github.com/madr-project/madr/internal/database"
	"github.com/madr-project/madr/internal/i18n"
	"github.com/madr-project/madr/internal/tokens"
	"github.com/madr-project/madr/pkg/logger"
	"github.com/madr-project/madr/pkg/metrics"
	"github.com/madr-project/madr/pkg/middleware"
)

var startTime = time.Now()

func main() {
	// initialize logging (can be controlled with LOG_LEVEL env: debug|info|warn|error|fatal)
	logger.Init(os.Getenv("LOG_LEVEL"))
	logger.Debugf("startup: LOG_LEVEL=%s", logger.LevelString())

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: redis=%v rate_limit=%v locales=%v",
		cfg.Redis.Host != "", cfg.RateLimit.Enabled, cfg.I18n.SupportedLocales)

	r := gin.New()

	// Lightweight CORS middleware for dev/test: set common headers and respond to OPTIONS.
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Accept-Language, Authorization, If-Modified-Since")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Length, Last-Modified")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}
		c.Next()
	})

	// Global middlewares: logging + recovery
	r.Use(gin.Logger(), gin.Recovery())

	ctx := context.Background()

	// Connect to Redis early so the rate-limiter can use it when configured
	var redisClient *redis.Client
	if cfg.Redis.Host != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
			redisClient = nil
		} else {
			logger.Infof("connected to Redis: %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		}
	}

	// Optional global rate limiter (per-account when authenticated, otherwise per-IP)
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && redisClient != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimit(redisClient, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimit(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	// Postgres connection + migrations. Retry/backoff tolerates startup races
	// against the database container.
	db := connectWithRetry(ctx, cfg)
	defer db.Close()
	if err := database.Migrate(ctx, db); err != nil {
		logger.Fatalf("failed to run migrations: %v", err)
	}

	// Locale catalogs for client-facing error details
	bundle, err := i18n.NewBundle(cfg.I18n.DefaultLocale, cfg.I18n.SupportedLocales)
	if err != nil {
		logger.Fatalf("failed to load locale catalogs: %v", err)
	}

	// Repositories and services
	codec := tokens.NewCodec(cfg.JWT.Secret, cfg.JWT.AccessTokenTTL)
	accSvc := accounts.NewService(accounts.NewPostgresRepository(db), codec)
	authorRepo := catalog.NewPostgresAuthorRepository(db)
	catSvc := catalog.NewService(authorRepo, catalog.NewPostgresBookRepository(db))

	// Basic health endpoint
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	// readiness endpoint — return 200 only when critical dependencies are available
	r.GET("/ready", func(c *gin.Context) {
		ready := true
		deps := map[string]bool{}

		deps["database"] = db.PingContext(c.Request.Context()) == nil
		if !deps["database"] {
			ready = false
		}

		// Redis readiness only matters when the limiter depends on it
		if cfg.RateLimit.Enabled && cfg.RateLimit.UseRedis {
			deps["redis"] = redisClient != nil && redisClient.Ping(c.Request.Context()).Err() == nil
			if !deps["redis"] {
				ready = false
			}
		} else {
			deps["redis"] = true
		}

		status := gin.H{"status": "ready", "deps": deps, "uptime": time.Since(startTime).String()}
		if !ready {
			status["status"] = "not_ready"
			c.JSON(http.StatusServiceUnavailable, status)
			return
		}
		c.JSON(http.StatusOK, status)
	})

	// HTTP surface
	auth := middleware.Auth(accSvc)
	handlers.NewAccountsHandler(accSvc, bundle).Register(r, auth)
	handlers.NewAuthorsHandler(catSvc, bundle).Register(r, auth)
	handlers.NewBooksHandler(catSvc, bundle).Register(r, auth)
	handlers.RegisterDocs(r)

	// Expose Prometheus metrics
	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("starting MADR service on %s", addr)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}

func connectWithRetry(ctx context.Context, cfg *config.Config) *sql.DB {
	const maxAttempts = 5
	backoff := time.Second
	for attempt := 1; ; attempt++ {
		db, err := database.Connect(ctx, cfg.Database.DSN, cfg.Database.Timeout)
		if err == nil {
			return db
		}
		if attempt == maxAttempts {
			logger.Fatalf("could not connect to Postgres after %d attempts: %v", maxAttempts, err)
		}
		logger.Warnf("attempt %d/%d: failed to connect to Postgres: %v", attempt, maxAttempts, err)
		time.Sleep(backoff)
		backoff *= 2
	}
}
