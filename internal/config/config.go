package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

const (
	StorageBackendDatabase = "database"
	StorageBackendMinio    = "minio"
)

// Config holds the environment driven configuration of the service
type Config struct {
	ServiceName     string        `env:"SERVICE_NAME" envDefault:"collection-tracker"`
	Environment     string        `env:"ENVIRONMENT" envDefault:"development"`
	ServerPort      string        `env:"SERVER_PORT" envDefault:"8080"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	DB DatabaseConfig

	// Media
	MediaMaxBytes  int64  `env:"MEDIA_MAX_BYTES" envDefault:"10485760"`
	StorageBackend string `env:"MEDIA_STORAGE_BACKEND" envDefault:"database"`

	Minio MinioConfig

	// Auth
	JWTSecret    string        `env:"JWT_SECRET" envDefault:"your-secret-key-replace-in-production"`
	AuthTokenTTL time.Duration `env:"AUTH_TOKEN_TTL" envDefault:"1h"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
}

// DatabaseConfig holds PostgreSQL connection settings
type DatabaseConfig struct {
	Host            string        `env:"DB_HOST" envDefault:"localhost"`
	Port            int           `env:"DB_PORT" envDefault:"5432"`
	User            string        `env:"DB_USER" envDefault:"postgres"`
	Password        string        `env:"DB_PASSWORD" envDefault:"postgres"`
	DBName          string        `env:"DB_NAME" envDefault:"collection_tracker"`
	SSLMode         string        `env:"DB_SSL_MODE" envDefault:"disable"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"15"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"30m"`
}

// MinioConfig holds object storage settings, used when StorageBackend is "minio"
type MinioConfig struct {
	Endpoint  string `env:"MINIO_ENDPOINT" envDefault:"localhost:9000"`
	AccessKey string `env:"MINIO_ACCESS_KEY"`
	SecretKey string `env:"MINIO_SECRET_KEY"`
	Bucket    string `env:"MINIO_BUCKET" envDefault:"collection-media"`
	UseSSL    bool   `env:"MINIO_USE_SSL" envDefault:"false"`
}

// Load parses environment variables into Config
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}

	cfg.StorageBackend = strings.ToLower(strings.TrimSpace(cfg.StorageBackend))
	if cfg.StorageBackend == "" {
		cfg.StorageBackend = StorageBackendDatabase
	}

	switch cfg.StorageBackend {
	case StorageBackendDatabase:
	case StorageBackendMinio:
		if strings.TrimSpace(cfg.Minio.AccessKey) == "" || strings.TrimSpace(cfg.Minio.SecretKey) == "" {
			return nil, fmt.Errorf("MINIO_ACCESS_KEY and MINIO_SECRET_KEY are required when MEDIA_STORAGE_BACKEND is minio")
		}
	default:
		return nil, fmt.Errorf("unknown MEDIA_STORAGE_BACKEND %q", cfg.StorageBackend)
	}

	if cfg.MediaMaxBytes <= 0 {
		cfg.MediaMaxBytes = 10 << 20
	}

	return cfg, nil
}

// LoadEnvFiles loads .env files if present. Variables already set win.
func LoadEnvFiles(paths ...string) {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
		}
	}
}

// Addr returns the HTTP listen address
func (c *Config) Addr() string {
	return ":" + c.ServerPort
}

// IsDevelopment reports whether the service runs in a development environment
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Environment, "development")
}
