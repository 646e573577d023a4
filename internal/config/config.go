package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
	AI       AIConfig       `mapstructure:"ai" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port            int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel        string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout_seconds" validate:"gte=0"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret                   string `mapstructure:"jwt_secret" validate:"required,min=32"`
	TokenLifetimeMinutes        int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
	RefreshTokenLifetimeMinutes int    `mapstructure:"refresh_token_lifetime_minutes" validate:"required,gt=0"`
	BcryptCost                  int    `mapstructure:"bcrypt_cost" validate:"gte=0,lte=31"`
}

// AIConfig contains the settings for the external chat-completions endpoint
// and the governor that mediates access to it. The limiter and cache settings
// are fixed at process start; they are not runtime-mutable.
type AIConfig struct {
	BaseURL       string `mapstructure:"base_url" validate:"required,url"`
	APIKey        string `mapstructure:"api_key" validate:"required"`
	Model         string `mapstructure:"model" validate:"required"`
	FallbackModel string `mapstructure:"fallback_model"`

	RateLimitCeiling   int `mapstructure:"rate_limit_ceiling" validate:"required,gt=0"`
	RateWindowSeconds  int `mapstructure:"rate_window_seconds" validate:"required,gt=0"`
	CacheSweepMinutes  int `mapstructure:"cache_sweep_minutes" validate:"required,gt=0"`
	MaxAttempts        int `mapstructure:"max_attempts" validate:"required,gt=0"`
	BaseDelaySeconds   int `mapstructure:"base_delay_seconds" validate:"required,gt=0"`
	RequestTimeoutSecs int `mapstructure:"request_timeout_seconds" validate:"required,gt=0"`
}

// RateWindow returns the sliding-window length as a duration.
func (c AIConfig) RateWindow() time.Duration {
	return time.Duration(c.RateWindowSeconds) * time.Second
}

// SweepInterval returns the cache sweep interval as a duration.
func (c AIConfig) SweepInterval() time.Duration {
	return time.Duration(c.CacheSweepMinutes) * time.Minute
}

// BaseDelay returns the base backoff delay as a duration.
func (c AIConfig) BaseDelay() time.Duration {
	return time.Duration(c.BaseDelaySeconds) * time.Second
}

// RequestTimeout returns the per-request timeout as a duration.
func (c AIConfig) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSecs) * time.Second
}
