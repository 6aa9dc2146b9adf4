package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config 全局配置（环境变量驱动）
type Config struct {
	Env      string `mapstructure:"BLOG_ENV"`
	HTTPAddr string `mapstructure:"BLOG_HTTP_ADDR"`

	Database DBConfig    `mapstructure:",squash"`
	Cache    CacheConfig `mapstructure:",squash"`
	Auth     AuthConfig  `mapstructure:",squash"`
	Media    MediaConfig `mapstructure:",squash"`
	Obs      ObsConfig   `mapstructure:",squash"`
}

type DBConfig struct {
	Driver string `mapstructure:"BLOG_DB_DRIVER"` // postgres, sqlite
	DSN    string `mapstructure:"BLOG_DB_DSN"`
}

type CacheConfig struct {
	RedisAddr string `mapstructure:"BLOG_REDIS_ADDR"` // empty disables redis
}

type AuthConfig struct {
	JWTSecret  string        `mapstructure:"BLOG_JWT_SECRET"`
	SessionTTL time.Duration `mapstructure:"BLOG_SESSION_TTL"`
}

type MediaConfig struct {
	Root          string `mapstructure:"BLOG_MEDIA_ROOT"`
	TemplatesGlob string `mapstructure:"BLOG_TEMPLATES_GLOB"`
}

type ObsConfig struct {
	SentryDSN    string `mapstructure:"BLOG_SENTRY_DSN"`
	OTLPEndpoint string `mapstructure:"BLOG_OTLP_ENDPOINT"`
	RateLimitRPM int    `mapstructure:"BLOG_RATE_LIMIT_RPM"` // 0 disables limiting
}

func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	viper.SetDefault("BLOG_ENV", "dev")
	viper.SetDefault("BLOG_HTTP_ADDR", ":8080")
	viper.SetDefault("BLOG_DB_DRIVER", "sqlite")
	viper.SetDefault("BLOG_DB_DSN", "miniblog.db")
	viper.SetDefault("BLOG_REDIS_ADDR", "")
	viper.SetDefault("BLOG_JWT_SECRET", "dev-secret-change-me")
	viper.SetDefault("BLOG_SESSION_TTL", "720h")
	viper.SetDefault("BLOG_MEDIA_ROOT", "media")
	viper.SetDefault("BLOG_TEMPLATES_GLOB", "web/templates/*.html")
	viper.SetDefault("BLOG_SENTRY_DSN", "")
	viper.SetDefault("BLOG_OTLP_ENDPOINT", "")
	viper.SetDefault("BLOG_RATE_LIMIT_RPM", 0)

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported db driver %q", c.Database.Driver)
	}
	if c.Env == "prod" && c.Auth.JWTSecret == "dev-secret-change-me" {
		return fmt.Errorf("BLOG_JWT_SECRET must be set in prod")
	}
	if c.Auth.SessionTTL <= 0 {
		return fmt.Errorf("BLOG_SESSION_TTL must be positive")
	}
	return nil
}
