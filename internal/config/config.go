package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"
	defaultPort       = 6000
	defaultEnv        = "development"

	defaultMongoHost = "127.0.0.1"
	defaultMongoPort = 27017
	defaultMongoDB   = "callscope"

	defaultPGHost = "127.0.0.1"
	defaultPGPort = 5432
	defaultPGUser = "postgres"
	defaultPGName = "callscope"

	defaultRedisHost = "localhost"
	defaultRedisPort = 6379
	defaultRedisDB   = 0

	defaultSessionTTL = time.Hour
)

// AppConfig holds runtime startup configuration loaded from YAML.
// It is loaded once at process start and never mutated afterwards.
type AppConfig struct {
	Port           int            `yaml:"port"`
	Env            string         `yaml:"env"` // "development" | "production"
	Mongo          MongoConfig    `yaml:"mongo"`
	Postgres       PostgresConfig `yaml:"postgres"`
	Redis          RedisConfig    `yaml:"redis"`
	JWTSecret      string         `yaml:"jwt_secret"`
	SessionTTL     time.Duration  `yaml:"session_ttl"`
	AllowedOrigins []string       `yaml:"allowed_origins"`
}

// MongoConfig describes the user store connection. URI wins over parts.
type MongoConfig struct {
	URI      string `yaml:"uri"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

// PostgresConfig describes the call-summary store connection. DSN wins over parts.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
}

// RedisConfig describes the rate-limit/idempotence backend. URL wins over parts.
type RedisConfig struct {
	URL      string `yaml:"url"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	TLS      bool   `yaml:"tls"`
}

// Load reads the YAML config at path (if present), applies environment
// overrides, and fills in defaults. A missing file is not an error: the
// server can be configured entirely from the environment.
func Load(path string) (*AppConfig, error) {
	cfg := &AppConfig{}

	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// Environment-only configuration.
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	applyEnvOverrides(cfg)
	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides maps deployment environment variables (PORT, MONGODBURI,
// PG*, JWT_SECRET, NODE_ENV) onto the config. Env wins over the YAML file.
func applyEnvOverrides(cfg *AppConfig) {
	if v := envInt("PORT"); v != 0 {
		cfg.Port = v
	}
	if v := firstEnv("ENV", "NODE_ENV"); v != "" {
		cfg.Env = v
	}
	if v := firstEnv("MONGODBURI", "MONGODB_URI"); v != "" {
		cfg.Mongo.URI = v
	}
	if v := os.Getenv("MONGODB_DATABASE"); v != "" {
		cfg.Mongo.Database = v
	}
	if v := firstEnv("DATABASE_URL", "PG_DSN"); v != "" {
		cfg.Postgres.DSN = v
	}
	if v := os.Getenv("PGHOST"); v != "" {
		cfg.Postgres.Host = v
	}
	if v := envInt("PGPORT"); v != 0 {
		cfg.Postgres.Port = v
	}
	if v := os.Getenv("PGUSER"); v != "" {
		cfg.Postgres.User = v
	}
	if v := os.Getenv("PGPASSWORD"); v != "" {
		cfg.Postgres.Password = v
	}
	if v := os.Getenv("PGDATABASE"); v != "" {
		cfg.Postgres.Name = v
	}
	if v := os.Getenv("PGSSLMODE"); v != "" {
		cfg.Postgres.SSLMode = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		cfg.Redis.URL = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWTSecret = v
	}
	if v := os.Getenv("SESSION_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.SessionTTL = d
		}
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		cfg.AllowedOrigins = splitAndTrim(v)
	}
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Port == 0 {
		cfg.Port = defaultPort
	}
	cfg.Env = strings.ToLower(strings.TrimSpace(cfg.Env))
	if cfg.Env == "" {
		cfg.Env = defaultEnv
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = defaultSessionTTL
	}
}

func (c *AppConfig) validate() error {
	if strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("jwt_secret is required (set JWT_SECRET or jwt_secret in config)")
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	return nil
}

// IsDev reports whether the server runs in development mode.
func (c *AppConfig) IsDev() bool { return c.Env != "production" }

// IsProd reports whether the server runs in production mode.
func (c *AppConfig) IsProd() bool { return c.Env == "production" }

func firstEnv(keys ...string) string {
	for _, key := range keys {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			return v
		}
	}
	return ""
}

func envInt(key string) int {
	v, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return 0
	}
	return v
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
