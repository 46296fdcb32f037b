package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	Server    ServerConfig
	MongoDB   MongoDBConfig
	Redis     RedisConfig
	Cors      CorsConfig
	RateLimit RateLimitConfig
	JWT       JWTConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type MongoDBConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type CorsConfig struct {
	AllowedOrigins string
}

type RateLimitConfig struct {
	Enabled       bool
	UseRedis      bool
	RPS           float64
	Burst         int
	WindowSeconds int
}

// JWTConfig is the token-issuance configuration. SecurityKey, Issuer and
// Audience are required; LoadConfig fails without them so the service never
// starts with an unsigned or unscoped token setup.
type JWTConfig struct {
	SecurityKey            string
	Issuer                 string
	Audience               string
	AccessTokenExpiration  time.Duration
	RefreshTokenExpiration time.Duration
}

// IsProduction reports whether the service runs with production error output
// (no stack traces in problem responses).
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// LoadConfig loads configuration from environment variables and .env file
func LoadConfig() (*Config, error) {
	_ = godotenv.Load(".env")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "5001")
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("SERVER_ENVIRONMENT", "development")
	viper.SetDefault("MONGODB_DATABASE", "simpleapi")
	viper.SetDefault("MONGODB_TIMEOUT", 10)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	viper.SetDefault("RATE_LIMIT_RPS", 10.0)
	viper.SetDefault("RATE_LIMIT_BURST", 20)
	viper.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 1)
	viper.SetDefault("JWT_ACCESS_TOKEN_EXPIRATION", 900)
	viper.SetDefault("JWT_REFRESH_TOKEN_EXPIRATION", 604800)

	cfg := &Config{
		Server: ServerConfig{
			Port:         viper.GetString("SERVER_PORT"),
			Host:         viper.GetString("SERVER_HOST"),
			Environment:  viper.GetString("SERVER_ENVIRONMENT"),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		MongoDB: MongoDBConfig{
			URI:      viper.GetString("MONGODB_URI"),
			Database: viper.GetString("MONGODB_DATABASE"),
			Timeout:  time.Duration(viper.GetInt("MONGODB_TIMEOUT")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       0,
		},
		Cors: CorsConfig{
			AllowedOrigins: viper.GetString("CORS_ALLOWED_ORIGINS"),
		},
		RateLimit: RateLimitConfig{
			Enabled:       viper.GetBool("RATE_LIMIT_ENABLED"),
			UseRedis:      viper.GetBool("RATE_LIMIT_USE_REDIS"),
			RPS:           viper.GetFloat64("RATE_LIMIT_RPS"),
			Burst:         viper.GetInt("RATE_LIMIT_BURST"),
			WindowSeconds: viper.GetInt("RATE_LIMIT_WINDOW_SECONDS"),
		},
		JWT: JWTConfig{
			SecurityKey:            os.Getenv("JWT_SECURITY_KEY"),
			Issuer:                 viper.GetString("JWT_ISSUER"),
			Audience:               viper.GetString("JWT_AUDIENCE"),
			AccessTokenExpiration:  time.Duration(viper.GetInt("JWT_ACCESS_TOKEN_EXPIRATION")) * time.Second,
			RefreshTokenExpiration: time.Duration(viper.GetInt("JWT_REFRESH_TOKEN_EXPIRATION")) * time.Second,
		},
	}

	// Token configuration is not recoverable at request time, so refuse to
	// start without it.
	if cfg.JWT.SecurityKey == "" {
		return nil, fmt.Errorf("configuration JWT_SECURITY_KEY needed")
	}
	if cfg.JWT.Issuer == "" {
		return nil, fmt.Errorf("configuration JWT_ISSUER needed")
	}
	if cfg.JWT.Audience == "" {
		return nil, fmt.Errorf("configuration JWT_AUDIENCE needed")
	}

	return cfg, nil
}
