package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/simpleapi/simpleapi/handlers"
	"github.com/simpleapi/simpleapi/internal/config"
	"github.com/simpleapi/simpleapi/internal/database"
	"github.com/simpleapi/simpleapi/internal/identity"
	producthandler "github.com/simpleapi/simpleapi/internal/product/handler"
	productrepo "github.com/simpleapi/simpleapi/internal/product/repository"
	productsvc "github.com/simpleapi/simpleapi/internal/product/service"
	"github.com/simpleapi/simpleapi/internal/users"
	"github.com/simpleapi/simpleapi/pkg/logger"
	"github.com/simpleapi/simpleapi/pkg/metrics"
	"github.com/simpleapi/simpleapi/pkg/middleware"
)

var startTime = time.Now()

func main() {
	// logging first; controlled with LOG_LEVEL (debug|info|warn|error|fatal)
	logger.Init(os.Getenv("LOG_LEVEL"))
	logger.Debugf("startup: LOG_LEVEL=%s", logger.LevelString())

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: environment=%s mongo=%v redis=%v", cfg.Server.Environment, cfg.MongoDB.URI != "", cfg.Redis.Host != "")

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// Lightweight CORS middleware; origins come from CORS_ALLOWED_ORIGINS.
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", cfg.Cors.AllowedOrigins)
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Length, Location")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}
		c.Next()
	})
	r.Use(gin.Logger(), gin.Recovery())

	// Connect to Redis early so the rate-limiter can use it when configured
	var redisClient *redis.Client
	if cfg.Redis.Host != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.Redis.Host + ":" + cfg.Redis.Port, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
			redisClient = nil
		} else {
			logger.Infof("connected to Redis: %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		}
	}

	// Optional global rate limiter (per-user when authenticated, otherwise per-IP)
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && redisClient != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(redisClient, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	// Credential store: Mongo-backed when configured, in-memory otherwise.
	ctx := context.Background()
	var store users.Store = users.NewMemoryStore()
	var productRepo productsvc.Repository = productrepo.NewMemoryRepo()
	var mongoClient *mongo.Client
	if cfg.MongoDB.URI != "" {
		// Retry/backoff to tolerate startup races against the database container
		const maxAttempts = 5
		backoff := time.Second
		var errConn error
		for attempt := 1; attempt <= maxAttempts; attempt++ {
			mongoClient, errConn = database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
			if errConn == nil {
				break
			}
			logger.Warnf("attempt %d/%d: failed to connect to MongoDB: %v", attempt, maxAttempts, errConn)
			if attempt < maxAttempts {
				time.Sleep(backoff)
				backoff *= 2
			}
		}
		if errConn != nil {
			logger.Fatalf("could not connect to MongoDB after %d attempts: %v", maxAttempts, errConn)
		}
		defer func() { _ = mongoClient.Disconnect(ctx) }()

		db := mongoClient.Database(cfg.MongoDB.Database)
		mongoStore := users.NewMongoStore(db)
		if err := mongoStore.EnsureIndexes(ctx); err != nil {
			logger.Fatalf("failed to ensure user indexes: %v", err)
		}
		store = mongoStore
		productRepo = productrepo.NewMongoRepo(db.Collection("products"))
		logger.Infof("using MongoDB storage: %s", cfg.MongoDB.Database)
	} else {
		logger.Warnf("MONGODB_URI not set, using in-memory storage")
	}

	// Token issuance
	cred, err := identity.NewSigningCredential(cfg.JWT.SecurityKey)
	if err != nil {
		logger.Fatalf("invalid signing key: %v", err)
	}
	signer := identity.NewSigner(cred, cfg.JWT.Issuer, cfg.JWT.Audience)
	identitySvc := identity.NewService(store, signer, cfg.JWT.AccessTokenExpiration)

	// Default role and test account
	if err := identity.NewSeeder(store).Initialize(ctx); err != nil {
		logger.Fatalf("failed to seed identity data: %v", err)
	}

	// Basic health endpoint
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	// readiness endpoint: 200 only when the configured dependencies respond
	r.GET("/ready", func(c *gin.Context) {
		ready := true
		deps := map[string]bool{}

		if cfg.MongoDB.URI != "" {
			pingCtx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			deps["mongodb"] = mongoClient != nil && mongoClient.Ping(pingCtx, nil) == nil
			cancel()
			if !deps["mongodb"] {
				ready = false
			}
		} else {
			deps["mongodb"] = true
		}

		if cfg.Redis.Host != "" && cfg.RateLimit.UseRedis {
			deps["redis"] = redisClient != nil && redisClient.Ping(c.Request.Context()).Err() == nil
			if !deps["redis"] {
				ready = false
			}
		} else {
			deps["redis"] = true
		}

		status := http.StatusOK
		state := "ready"
		if !ready {
			status = http.StatusServiceUnavailable
			state = "not_ready"
		}
		c.JSON(status, gin.H{"status": state, "deps": deps, "uptime": time.Since(startTime).String()})
	})

	// API routes
	handlers.NewAuthHandler(cfg, identitySvc).RegisterRoutes(r)
	producthandler.RegisterProductRoutes(r, productsvc.New(productRepo), middleware.RequireToken(signer))
	handlers.RegisterSwagger(r)

	// Prometheus metrics
	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	srv := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	logger.Infof("listening on %s", srv.Addr)
	if err := srv.ListenAndServe(); err != nil {
		logger.Fatalf("server exited: %v", err)
	}
}
