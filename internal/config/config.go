package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv      string        `env:"APP_ENV" envDefault:"dev"`
	Port        string        `env:"PORT" envDefault:"5000"`
	DatabaseURL string        `env:"DATABASE_URL" envDefault:"luxurystay.db"`
	JWTSecret   string        `env:"JWT_SECRET,required,notEmpty"`
	JWTTTL      time.Duration `env:"JWT_TTL" envDefault:"24h"`

	// Optional backends. Empty values keep the in-process defaults.
	RedisURL      string `env:"REDIS_URL"`
	MongoURI      string `env:"MONGODB_URI"`
	MongoDatabase string `env:"MONGODB_DATABASE" envDefault:"luxurystay"`

	CORSOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`

	WSSendRate  float64 `env:"WS_SEND_RATE" envDefault:"5"`
	WSSendBurst int     `env:"WS_SEND_BURST" envDefault:"10"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Load reads .env (if present) and parses the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	return Parse()
}

// Parse reads configuration from the environment only.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.AppEnv = strings.ToLower(strings.TrimSpace(cfg.AppEnv))
	if cfg.WSSendRate <= 0 {
		return nil, fmt.Errorf("WS_SEND_RATE must be positive, got %v", cfg.WSSendRate)
	}
	if cfg.WSSendBurst < 1 {
		return nil, fmt.Errorf("WS_SEND_BURST must be at least 1, got %d", cfg.WSSendBurst)
	}
	return cfg, nil
}

func (c *Config) Addr() string {
	return ":" + c.Port
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "prod" || c.AppEnv == "production"
}
