package app

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aussiebroadwan/copilot/internal/copilot/store"
	"github.com/aussiebroadwan/copilot/internal/copilot/store/drivers"
	"github.com/aussiebroadwan/copilot/internal/copilot/store/drivers/s3"
	"github.com/aussiebroadwan/copilot/pkg/httpx"
)

type Config struct {
	Issuer       string        // Optional: issuer claim for tokens (default: copilot)
	AuthRequired bool          // Optional: require a bearer token on /clients (default: true)
	TokenTTL     time.Duration // Optional: access token lifetime (default: 1h)
	NumKeys      int           // Optional: number of ephemeral signing keys (default: 1, max: 10)

	Store drivers.Config // Document store driver and its settings

	AuthLimit    httpx.RateLimitConfig // RATELIMIT_STRICT_* overrides
	RecordLimit  httpx.RateLimitConfig // RATELIMIT_MODERATE_* overrides
	PublicLimit  httpx.RateLimitConfig // RATELIMIT_PUBLIC_* overrides
	AllowOrigins []string              // Optional: CORS origins (default: *)

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 3000)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	cfg := Config{
		Issuer:       getEnvOrDefault("AUTH_ISSUER", "copilot"),
		AuthRequired: getEnvBoolOrDefault("AUTH_REQUIRED", true),
		TokenTTL:     getEnvDurationOrDefault("TOKEN_TTL", time.Hour),
		NumKeys:      getEnvIntOrDefault("AUTH_NUM_KEYS", 1),

		Store: drivers.Config{
			Driver:      store.Driver(getEnvOrDefault("STORE_DRIVER", string(store.DriverFS))),
			DataDir:     getEnvOrDefault("DATA_DIR", "data"),
			SQLiteFile:  getEnvOrDefault("SQLITE_FILE", "copilot.db"),
			PostgresDSN: os.Getenv("POSTGRES_DSN"),
			S3: s3.Config{
				Bucket:          os.Getenv("S3_BUCKET"),
				Prefix:          os.Getenv("S3_PREFIX"),
				Region:          getEnvOrDefault("S3_REGION", "us-east-1"),
				Endpoint:        os.Getenv("S3_ENDPOINT"),
				AccessKeyID:     os.Getenv("S3_ACCESS_KEY_ID"),
				SecretAccessKey: os.Getenv("S3_SECRET_ACCESS_KEY"),
				SessionToken:    os.Getenv("S3_SESSION_TOKEN"),
				PathStyle:       getEnvBoolOrDefault("S3_PATH_STYLE", false),
			},
			S3CreateBucket: getEnvBoolOrDefault("S3_CREATE_BUCKET", false),
		},

		AuthLimit:    httpx.ParseRateLimitFromEnv("STRICT", httpx.StrictLimit),
		RecordLimit:  httpx.ParseRateLimitFromEnv("MODERATE", httpx.ModerateLimit),
		PublicLimit:  httpx.ParseRateLimitFromEnv("PUBLIC", httpx.PublicLimit),
		AllowOrigins: splitList(getEnvOrDefault("CORS_ALLOW_ORIGINS", "*")),

		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 3000),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for part := range strings.SplitSeq(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
