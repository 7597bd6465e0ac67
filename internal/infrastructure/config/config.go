package config

import (
	"context"
	"errors"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	JWT   JWTConfig
	Mongo MongoConfig
	Seed  SeedConfig
}

// JWTConfig holds the two signing secrets and lifetimes. Secrets are
// required: a missing one fails Load at startup, never at first request.
type JWTConfig struct {
	AccessSecret      string        `env:"JWT_ACCESS_SECRET,      required"`
	AccessExpiration  time.Duration `env:"JWT_ACCESS_EXPIRATION,  default=15m"`
	RefreshSecret     string        `env:"JWT_REFRESH_SECRET,     required"`
	RefreshExpiration time.Duration `env:"JWT_REFRESH_EXPIRATION, default=168h"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=backend_gym"`
}

// SeedConfig configures the one-time admin provisioning command.
type SeedConfig struct {
	AdminEmail    string `env:"SEED_ADMIN_EMAIL,    default=admin@backendgym.com"`
	AdminPassword string `env:"SEED_ADMIN_PASSWORD, default=Admin@123"`
	AdminName     string `env:"SEED_ADMIN_NAME,     default=Admin User"`
}

// Load reads configuration from environment variables using go-envconfig and
// rejects inconsistent values.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.JWT.AccessExpiration <= 0 || c.JWT.RefreshExpiration <= 0 {
		return errors.New("config: token expirations must be positive")
	}
	if c.JWT.AccessExpiration >= c.JWT.RefreshExpiration {
		return errors.New("config: JWT_ACCESS_EXPIRATION must be shorter than JWT_REFRESH_EXPIRATION")
	}
	if c.JWT.AccessSecret == c.JWT.RefreshSecret {
		return errors.New("config: access and refresh secrets must differ")
	}
	return nil
}
