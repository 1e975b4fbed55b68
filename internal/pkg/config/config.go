package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=5000"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// TrustedProxies are CIDRs allowed to set X-Forwarded-For. Empty means
	// the client IP is the socket peer.
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	Auth      AuthConfig
	Mongo     MongoConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
}

type AuthConfig struct {
	JWTSecret   string        `env:"JWT_SECRET, required"`
	TokenTTL    time.Duration `env:"TOKEN_TTL,    default=24h"`
	TokenIssuer string        `env:"TOKEN_ISSUER"`
	BcryptCost  int           `env:"BCRYPT_COST,  default=10"`
	HashWorkers int           `env:"HASH_WORKERS, default=0"`
}

type MongoConfig struct {
	URI      string        `env:"MONGO_URI,     default=mongodb://localhost:27017"`
	Database string        `env:"MONGO_DB,      default=backoffice_erp"`
	Timeout  time.Duration `env:"MONGO_TIMEOUT, default=10s"`
}

// RedisConfig leaves Addr empty by default, which disables Redis-backed features.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

type RateLimitConfig struct {
	// LoginPerMinute is the number of login attempts allowed per client IP
	// per minute. Zero disables the limiter.
	LoginPerMinute int `env:"RATE_LIMIT_LOGIN, default=10"`
}

type CORSConfig struct {
	AllowOrigins []string `env:"CORS_ORIGINS, default=*"`
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// RedisEnabled reports whether a Redis address was configured.
func (c *Config) RedisEnabled() bool {
	return c.Redis.Addr != ""
}

// Load reads an optional .env file and then the process environment.
// Variables already set in the environment win over the file.
func Load(ctx context.Context, envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: read %s: %w", f, err)
		}
	}

	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.Auth.TokenTTL <= 0 {
		return nil, errors.New("config: TOKEN_TTL must be positive")
	}
	if cfg.RateLimit.LoginPerMinute < 0 {
		return nil, errors.New("config: RATE_LIMIT_LOGIN must not be negative")
	}
	return &cfg, nil
}
