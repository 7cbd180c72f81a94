package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/coursekit/coursekit/handlers"
	"github.com/coursekit/coursekit/internal/config"
	"github.com/coursekit/coursekit/internal/course/handler"
	"github.com/coursekit/coursekit/internal/course/repository"
	"github.com/coursekit/coursekit/internal/course/service"
	"github.com/coursekit/coursekit/pkg/logger"
	"github.com/coursekit/coursekit/pkg/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

// Deps are the runtime collaborators the router is built from.
type Deps struct {
	Repo    *repository.MemoryRepo
	Redis   *redis.Client
	Started time.Time
}

// NewRouter builds the gin engine: pipeline stages first, then routes.
func NewRouter(cfg *config.Config, deps Deps) *gin.Engine {
	if deps.Repo == nil {
		deps.Repo = repository.NewMemoryRepo(repository.DefaultCourses()...)
	}
	if deps.Started.IsZero() {
		deps.Started = time.Now()
	}

	r := gin.New()
	p := Pipeline(cfg, deps.Redis)
	logger.Debugf("pipeline stages: %v", p.Names())
	r.Use(p.Handlers()...)

	checks := map[string]handlers.Check{}
	if deps.Redis != nil {
		client := deps.Redis
		checks["redis"] = func(ctx context.Context) bool {
			return client.Ping(ctx).Err() == nil
		}
	}

	handlers.RegisterHome(r)
	handlers.RegisterHealth(r, deps.Started, checks)
	handlers.RegisterSwagger(r)
	handler.RegisterCourseRoutes(r, service.NewService(deps.Repo))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

// Pipeline returns the request stages configured by cfg. The Redis limiter
// is only chosen when it is enabled and a client is available.
func Pipeline(cfg *config.Config, redisClient *redis.Client) middleware.Pipeline {
	rl := middleware.RateLimitOptions{
		Enabled: cfg.RateLimit.Enabled,
		RPS:     cfg.RateLimit.RPS,
		Burst:   cfg.RateLimit.Burst,
		Window:  time.Duration(cfg.RateLimit.WindowSeconds) * time.Second,
	}
	if cfg.RateLimit.UseRedis {
		rl.Redis = redisClient
	}
	return middleware.Build(middleware.Options{
		StaticDir: cfg.Static.Dir,
		AccessLog: cfg.IsDevelopment(),
		RateLimit: rl,
	})
}

// LogConfig prints the loaded configuration values. It ignores the log level.
func LogConfig(cfg *config.Config) {
	logger.Printf("Application Name: %s", cfg.Name)
	logger.Printf("Mail Server: %s", cfg.Mail.Host)
	logger.Printf("Mail Password: %s", cfg.Mail.Password)
}

// Run serves h on addr until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context, cfg *config.Config, h http.Handler) error {
	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler:      h,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen on %s: %w", srv.Addr, err)
		}
		return nil
	case <-ctx.Done():
		logger.Infof("shutting down HTTP server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Infof("HTTP server stopped")
	return nil
}
