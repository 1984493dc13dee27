package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration.
type Config struct {
	Env             string   `envconfig:"ENV" default:"dev"`
	Port            string   `envconfig:"PORT" default:"8080"`
	CORSAllowOrigin []string `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://127.0.0.1:3000"`

	StoreBackend string `envconfig:"STORE_BACKEND"`
	RedisURL     string `envconfig:"REDIS_URL" default:"redis://localhost:6379"`
	RedisDB      int    `envconfig:"REDIS_DB" default:"0"`
	DatabaseURL  string `envconfig:"DATABASE_URL"`

	DBMaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS"`
	DBMaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS"`
	DBConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME"`
	DBConnMaxIdleTime time.Duration `envconfig:"DB_CONN_MAX_IDLE_TIME"`
	DBPingTimeout     time.Duration `envconfig:"DB_PING_TIMEOUT"`

	SecretKey                string `envconfig:"SECRET_KEY"`
	Algorithm                string `envconfig:"ALGORITHM" default:"HS256"`
	AccessTokenExpireMinutes int    `envconfig:"ACCESS_TOKEN_EXPIRE_MINUTES" default:"30"`
	BcryptCost               int    `envconfig:"BCRYPT_COST" default:"0"`

	SeedDemoUser bool   `envconfig:"SEED_DEMO_USER" default:"true"`
	DemoEmail    string `envconfig:"DEMO_EMAIL" default:"hire-me@anshumat.org"`
	DemoPassword string `envconfig:"DEMO_PASSWORD" default:"HireMe@2025!"`

	AuthRateLimitRPS   float64 `envconfig:"RATE_LIMIT_AUTH_RPS" default:"1"`
	AuthRateLimitBurst int     `envconfig:"RATE_LIMIT_AUTH_BURST" default:"10"`

	ExportArchive string `envconfig:"EXPORT_ARCHIVE" default:"none"`
	LocalStoreDir string `envconfig:"LOCAL_STORE_DIR" default:"./data"`
	AWSRegion     string `envconfig:"AWS_REGION"`
	S3Bucket      string `envconfig:"S3_BUCKET"`
	S3Prefix      string `envconfig:"S3_PREFIX"`
	SSEKMSKeyID   string `envconfig:"SSE_KMS_KEY_ID"`
}

const devSecretKey = "dev-secret-key"

// Load reads configuration from environment variables with sensible defaults.
// A variable that does not parse into its field is an error.
func Load() (Config, error) {
	// Best-effort load of local env files for dev convenience.
	for _, path := range []string{".env", "cmd/.env"} {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err != nil {
				log.Printf("config: failed to load %s: %v", path, err)
			}
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg.normalize(), nil
}

func (c Config) normalize() Config {
	c.Env = normalizeEnv(c.Env)
	c.StoreBackend = normalizeStoreBackend(c.StoreBackend)
	c.Algorithm = strings.ToUpper(strings.TrimSpace(c.Algorithm))
	if c.Algorithm == "" {
		c.Algorithm = "HS256"
	}
	if c.AccessTokenExpireMinutes <= 0 {
		c.AccessTokenExpireMinutes = 30
	}
	c.SecretKey = strings.TrimSpace(c.SecretKey)
	if c.SecretKey == "" {
		if c.Env == "production" {
			log.Printf("SECRET_KEY is required in production")
		} else {
			c.SecretKey = devSecretKey
		}
	}
	c.ExportArchive = normalizeArchive(c.ExportArchive)
	c.CORSAllowOrigin = trimAll(c.CORSAllowOrigin)
	return c
}

// AccessTokenTTL is the lifetime of issued bearer tokens.
func (c Config) AccessTokenTTL() time.Duration {
	return time.Duration(c.AccessTokenExpireMinutes) * time.Minute
}

// IsDevLike reports whether the environment tolerates in-memory fallbacks.
func (c Config) IsDevLike() bool {
	return c.Env == "dev" || c.Env == "local"
}

func trimAll(values []string) []string {
	var out []string
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeStoreBackend(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "memory":
		return "memory"
	case "redis":
		return "redis"
	case "postgres", "pg":
		return "postgres"
	}
	return "redis"
}

func normalizeArchive(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "local":
		return "local"
	case "s3":
		return "s3"
	default:
		return "none"
	}
}
