package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	BackendMongo    = "mongo"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

type Config struct {
	HTTPAddr             string
	CORSAllowedOrigins   []string
	CORSAllowCredentials bool

	StoreBackend  string
	DatabaseURL   string
	MongoURI      string
	MongoDatabase string

	JWTSecret string

	RedisAddr       string
	RateLimit       int
	RateLimitWindow time.Duration

	StrictJobFields bool
	LogLevel        string
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		HTTPAddr:             getenv("HTTP_ADDR", ":8080"),
		CORSAllowCredentials: getenv("CORS_ALLOW_CREDENTIALS", "false") == "true",

		StoreBackend:  strings.ToLower(getenv("STORE_BACKEND", BackendMongo)),
		DatabaseURL:   getenv("DATABASE_URL", ""),
		MongoURI:      getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: getenv("MONGO_DATABASE", "jobboard"),

		JWTSecret: getenv("JWT_SECRET", ""),

		RedisAddr: getenv("REDIS_ADDR", ""),

		StrictJobFields: getenv("STRICT_JOB_FIELDS", "false") == "true",
		LogLevel:        getenv("LOG_LEVEL", "info"),
	}

	origins := strings.Split(getenv("CORS_ALLOWED_ORIGINS", ""), ",")
	for _, o := range origins {
		o = strings.TrimSpace(o)
		if o != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
		}
	}

	limit, err := strconv.Atoi(getenv("RATE_LIMIT", "60"))
	if err != nil || limit <= 0 {
		return Config{}, fmt.Errorf("invalid RATE_LIMIT %q", os.Getenv("RATE_LIMIT"))
	}
	cfg.RateLimit = limit

	window, err := time.ParseDuration(getenv("RATE_LIMIT_WINDOW", "1m"))
	if err != nil || window <= 0 {
		return Config{}, fmt.Errorf("invalid RATE_LIMIT_WINDOW %q", os.Getenv("RATE_LIMIT_WINDOW"))
	}
	cfg.RateLimitWindow = window

	switch cfg.StoreBackend {
	case BackendPostgres:
		if cfg.DatabaseURL == "" {
			return Config{}, missing("DATABASE_URL")
		}
	case BackendMongo, BackendMemory:
	default:
		return Config{}, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}

	if cfg.JWTSecret == "" {
		return Config{}, missing("JWT_SECRET")
	}
	return cfg, nil
}

func getenv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func missing(key string) error {
	return fmt.Errorf("missing env: %s", key)
}
