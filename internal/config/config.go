package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	Name      string
	Server    ServerConfig
	Mail      MailConfig
	Log       LogConfig
	Static    StaticConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type MailConfig struct {
	Host     string
	Password string
}

type LogConfig struct {
	Level string
}

type StaticConfig struct {
	Dir string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type RateLimitConfig struct {
	Enabled       bool
	UseRedis      bool
	RPS           float64
	Burst         int
	WindowSeconds int
}

// IsDevelopment reports whether the service runs in the development environment.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Server.Environment, "development")
}

// LoadConfig loads configuration from config/<file>.json, a .env file and
// environment variables, in increasing order of precedence.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load(".env")

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("app.env", "development")
	v.SetDefault("config.dir", "config")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("log.level", "info")
	v.SetDefault("static.dir", "public")
	v.SetDefault("redis.port", "6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("ratelimit.enabled", false)
	v.SetDefault("ratelimit.useRedis", false)
	v.SetDefault("ratelimit.rps", 10)
	v.SetDefault("ratelimit.burst", 20)
	v.SetDefault("ratelimit.windowSeconds", 1)

	_ = v.BindEnv("port", "PORT")
	_ = v.BindEnv("mail.password", "APP_PASSWORD")
	_ = v.BindEnv("log.level", "LOG_LEVEL")
	v.SetDefault("port", "3000")

	env := v.GetString("app.env")
	if err := readConfigFiles(v, v.GetString("config.dir"), env); err != nil {
		return nil, err
	}

	cfg := &Config{
		Name: v.GetString("name"),
		Server: ServerConfig{
			Port:         v.GetString("port"),
			Host:         v.GetString("server.host"),
			Environment:  env,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Mail: MailConfig{
			Host:     v.GetString("mail.host"),
			Password: v.GetString("mail.password"),
		},
		Log:    LogConfig{Level: v.GetString("log.level")},
		Static: StaticConfig{Dir: v.GetString("static.dir")},
		Redis: RedisConfig{
			Host:     v.GetString("redis.host"),
			Port:     v.GetString("redis.port"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		RateLimit: RateLimitConfig{
			Enabled:       v.GetBool("ratelimit.enabled"),
			UseRedis:      v.GetBool("ratelimit.useRedis"),
			RPS:           v.GetFloat64("ratelimit.rps"),
			Burst:         v.GetInt("ratelimit.burst"),
			WindowSeconds: v.GetInt("ratelimit.windowSeconds"),
		},
	}
	if cfg.Server.Port == "" {
		cfg.Server.Port = "3000"
	}
	return cfg, nil
}

// readConfigFiles reads default.json and merges <env>.json on top. Both
// files are optional; a file that exists but cannot be parsed is an error.
func readConfigFiles(v *viper.Viper, dir, env string) error {
	v.SetConfigType("json")
	for _, name := range []string{"default", env} {
		path := filepath.Join(dir, name+".json")
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			continue
		}
		v.SetConfigFile(path)
		if err := v.MergeInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", path, err)
		}
	}
	return nil
}
