package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coursekit/coursekit/internal/config"
	"github.com/coursekit/coursekit/internal/course/repository"
	"github.com/coursekit/coursekit/internal/server"
	"github.com/coursekit/coursekit/pkg/logger"
	"github.com/coursekit/coursekit/pkg/metrics"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
)

var startTime = time.Now()

func main() {
	// LOG_LEVEL controls logging until the config file level is known
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Init(cfg.Log.Level)
	logger.Debugf("startup: LOG_LEVEL=%s env=%s", logger.LevelString(), cfg.Server.Environment)

	server.LogConfig(cfg)

	if cfg.IsDevelopment() {
		logger.Infof("Access log enabled...")
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	var redisClient *redis.Client
	if cfg.Redis.Host != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Host + ":" + cfg.Redis.Port, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err := client.Ping(ctx).Err()
		cancel()
		if err != nil {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
			_ = client.Close()
		} else {
			logger.Infof("Connected to Redis: %s:%s", cfg.Redis.Host, cfg.Redis.Port)
			redisClient = client
			defer client.Close()
		}
	}
	if cfg.RateLimit.Enabled && cfg.RateLimit.UseRedis && redisClient == nil {
		logger.Warnf("Redis rate limiter requested but Redis is unavailable; using in-memory limiter")
	}

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)

	repo := repository.NewMemoryRepo(repository.DefaultCourses()...)
	r := server.NewRouter(cfg, server.Deps{Repo: repo, Redis: redisClient, Started: startTime})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Printf("Listening on port %s...", cfg.Server.Port)
	if err := server.Run(ctx, cfg, r); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}
