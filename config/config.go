package config

import (
	"errors"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

const defaultJWTSecret = "default_secret_CHANGE_ME"

type Config struct {
	Port          string
	Env           string
	LogLevel      string
	DBUrl         string
	JWTSecret     string
	AllowedOrigin string
	// DB Config
	DBMaxConns        int32
	DBMinConns        int32
	DBMaxConnIdleTime time.Duration
	// Shipping method
	ShippingMethodID string
	ShippingCountry  string
	// Cache
	CacheCitiesTTL time.Duration
	// Rate limiting
	RateLimitRPS   float64
	RateLimitBurst int
	// R2 settings snapshots (optional)
	R2AccountID       string
	R2AccessKeyID     string
	R2AccessKeySecret string
	R2BucketName      string
	R2PublicURL       string
	R2UploadTimeout   time.Duration
	// Admin tokens
	AdminTokenExpiry time.Duration
}

// LoadConfig reads CONFIG_FILE (or .env when unset) into the environment and
// builds the Config from it.
func LoadConfig() *Config {
	if configFile := os.Getenv("CONFIG_FILE"); configFile != "" {
		if err := godotenv.Load(configFile); err != nil {
			log.Printf("Warning: Failed to load config file '%s': %v", configFile, err)
		} else {
			log.Printf("Loaded configuration from %s", configFile)
		}
	} else if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading it, relying on system env vars")
	}

	return &Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		DBUrl:         getEnv("DB_DSN", ""),
		JWTSecret:     getEnv("JWT_SECRET", defaultJWTSecret),
		AllowedOrigin: getEnv("ALLOWED_ORIGIN", "http://localhost:3000"),

		DBMaxConns:        getInt32Env("DB_MAX_CONNS", 10),
		DBMinConns:        getInt32Env("DB_MIN_CONNS", 2),
		DBMaxConnIdleTime: getDurationEnv("DB_MAX_CONN_IDLE_TIME", 15*time.Minute),

		ShippingMethodID: getEnv("SHIPPING_METHOD_ID", "paraguay_shipping"),
		ShippingCountry:  getEnv("SHIPPING_COUNTRY", "PY"),

		CacheCitiesTTL: getDurationEnv("CACHE_CITIES_TTL", time.Minute),

		RateLimitRPS:   getFloat64Env("RATE_LIMIT_RPS", 50),
		RateLimitBurst: getIntEnv("RATE_LIMIT_BURST", 100),

		R2AccountID:       getEnv("R2_ACCOUNT_ID", ""),
		R2AccessKeyID:     getEnv("R2_ACCESS_KEY_ID", ""),
		R2AccessKeySecret: getEnv("R2_ACCESS_KEY_SECRET", ""),
		R2BucketName:      getEnv("R2_BUCKET_NAME", ""),
		R2PublicURL:       getEnv("R2_PUBLIC_URL", ""),
		R2UploadTimeout:   getDurationEnv("R2_UPLOAD_TIMEOUT", 30*time.Second),

		AdminTokenExpiry: getDurationEnv("ADMIN_TOKEN_EXPIRY", 24*time.Hour),
	}
}

// Validate reports settings the API server cannot start without.
func (c *Config) Validate() error {
	if c.DBUrl == "" {
		return errors.New("DB_DSN environment variable is required")
	}
	if c.ShippingMethodID == "" {
		return errors.New("SHIPPING_METHOD_ID must not be empty")
	}
	if c.JWTSecret == defaultJWTSecret {
		log.Println("WARNING: Using default JWT secret. Set JWT_SECRET before exposing admin endpoints.")
	}
	return nil
}

// SnapshotsEnabled reports whether R2 credentials for settings snapshots are present.
func (c *Config) SnapshotsEnabled() bool {
	return c.R2AccountID != "" && c.R2AccessKeyID != "" && c.R2AccessKeySecret != "" && c.R2BucketName != ""
}
