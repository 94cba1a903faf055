package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Auth  AuthConfig
	Mongo MongoConfig
	Redis RedisConfig
	OAuth OAuthConfig
}

type AuthConfig struct {
	// JWTSecret signs session tokens. Mandatory outside development.
	JWTSecret string `env:"JWT_SECRET"`
	// SessionTTL bounds token lifetime. There is no server-side revocation,
	// so this is the only lifecycle bound besides reissuing.
	SessionTTL time.Duration `env:"SESSION_TTL, default=168h"`
	BcryptCost int           `env:"BCRYPT_COST, default=10"`
	CookieName string        `env:"SESSION_COOKIE, default=studio_session"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=studio_crm"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type OAuthConfig struct {
	// IssuerURL is the OIDC provider whose discovery document we cache.
	// Empty disables discovery entirely.
	IssuerURL    string        `env:"OAUTH_ISSUER_URL"`
	DiscoveryTTL time.Duration `env:"OAUTH_DISCOVERY_TTL, default=1h"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}

// IsProduction reports whether the service runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
