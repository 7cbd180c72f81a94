package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Stage is one named step of the request pipeline. A stage either calls
// c.Next() to hand the request to the following stage, or aborts the chain
// after writing a response.
type Stage struct {
	Name    string
	Handler gin.HandlerFunc
}

// Pipeline is the ordered list of stages run before route dispatch.
type Pipeline []Stage

// Handlers returns the stage handlers in order, ready for engine.Use.
func (p Pipeline) Handlers() []gin.HandlerFunc {
	out := make([]gin.HandlerFunc, 0, len(p))
	for _, s := range p {
		out = append(out, s.Handler)
	}
	return out
}

// Names returns the stage names in order.
func (p Pipeline) Names() []string {
	out := make([]string, 0, len(p))
	for _, s := range p {
		out = append(out, s.Name)
	}
	return out
}

// RateLimitOptions configures the optional rate-limit stage.
type RateLimitOptions struct {
	Enabled bool
	RPS     float64
	Burst   int
	Window  time.Duration
	// Redis selects the fixed-window limiter when non-nil.
	Redis *redis.Client
}

// Options selects which stages Build includes.
type Options struct {
	// StaticDir is served for GET/HEAD requests that match an existing file.
	StaticDir string
	// AccessLog enables the per-request access log line (development only).
	AccessLog bool
	RateLimit RateLimitOptions
}

// Build assembles the pipeline in its fixed order.
func Build(opts Options) Pipeline {
	p := Pipeline{
		{Name: "recovery", Handler: gin.Recovery()},
	}
	if opts.StaticDir != "" {
		p = append(p, Stage{Name: "static", Handler: Static(opts.StaticDir)})
	}
	p = append(p, Stage{Name: "security-headers", Handler: SecurityHeaders()})
	if opts.AccessLog {
		p = append(p, Stage{Name: "request-log", Handler: AccessLog()})
	}
	p = append(p,
		Stage{Name: "logging", Handler: Logging()},
		Stage{Name: "authenticate", Handler: Authenticate()},
	)
	if rl := opts.RateLimit; rl.Enabled {
		if rl.Redis != nil {
			p = append(p, Stage{Name: "rate-limit", Handler: RedisRateLimitMiddleware(rl.Redis, rl.RPS, rl.Burst, rl.Window)})
		} else {
			p = append(p, Stage{Name: "rate-limit", Handler: RateLimitMiddleware(rl.RPS, rl.Burst)})
		}
	}
	return p
}
