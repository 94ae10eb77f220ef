package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	Port            string   `validate:"required,numeric"`
	Env             string   `validate:"oneof=dev local staging production"`
	LogLevel        string   `validate:"oneof=debug info warn error"`
	CORSAllowOrigin []string `validate:"dive,required"`
	// TrustedProxies lists the proxy addresses or CIDRs allowed to set
	// X-Forwarded-For. Empty means the peer address is the client.
	TrustedProxies  []string `validate:"dive,required"`
	ObjectStoreType string   `validate:"oneof=local s3"`
	LocalStoreDir   string   `validate:"required_if=ObjectStoreType local"`
	AWSRegion       string
	S3Bucket        string `validate:"required_if=ObjectStoreType s3"`
	S3Prefix        string
	SSEKMSKeyID     string
	DatabaseURL     string `validate:"required_if=Env production"`

	MaxUploadBytes  int64         `validate:"gt=0"`
	JobFetchTimeout time.Duration `validate:"gt=0"`
	RateLimitRPS    float64       `validate:"gte=0"`
	RateLimitBurst  int           `validate:"gte=0"`
	// ExampleSeed selects keyword example sentences pseudo-randomly when
	// non-zero; zero always picks the first template.
	ExampleSeed int64
}

const (
	defaultMaxUploadBytes  = 10 << 20
	defaultJobFetchTimeout = 15 * time.Second
)

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files; existing variables win.
	for _, path := range []string{".env", "cmd/.env"} {
		_ = godotenv.Load(path)
	}

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")

	if env == "production" && dbURL == "" {
		log.Printf("DATABASE_URL is required in production")
	}

	return Config{
		Port:            getEnv("PORT", "8080"),
		Env:             env,
		LogLevel:        normalizeLevel(getEnv("LOG_LEVEL", "info")),
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		TrustedProxies:  splitAndTrim(getEnv("TRUSTED_PROXIES", "")),
		ObjectStoreType: normalizeStoreType(getEnv("OBJECT_STORE", "local")),
		LocalStoreDir:   getEnv("LOCAL_STORE_DIR", "./data"),
		AWSRegion:       getEnv("AWS_REGION", ""),
		S3Bucket:        getEnv("S3_BUCKET", ""),
		S3Prefix:        getEnv("S3_PREFIX", ""),
		SSEKMSKeyID:     getEnv("SSE_KMS_KEY_ID", ""),
		DatabaseURL:     dbURL,
		MaxUploadBytes:  getInt64("MAX_UPLOAD_BYTES", defaultMaxUploadBytes),
		JobFetchTimeout: getDuration("JOB_FETCH_TIMEOUT", defaultJobFetchTimeout),
		RateLimitRPS:    getFloat("RATE_LIMIT_RPS", 2),
		RateLimitBurst:  int(getInt64("RATE_LIMIT_BURST", 10)),
		ExampleSeed:     getInt64("EXAMPLE_SEED", 0),
	}
}

// Validate checks field constraints.
func (c Config) Validate() error {
	return validator.New().Struct(c)
}

// Env returns the environment value for key, or def when it is unset.
func Env(key, def string) string { return getEnv(key, def) }

// EnvDuration reads key as a duration, falling back to def when it is unset
// or invalid.
func EnvDuration(key string, def time.Duration) time.Duration { return getDuration(key, def) }

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getInt64(key string, def int64) int64 {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		log.Printf("invalid %s=%q, using %d", key, raw, def)
		return def
	}
	return v
}

func getFloat(key string, def float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		log.Printf("invalid %s=%q, using %v", key, raw, def)
		return def
	}
	return v
}

// getDuration accepts Go durations ("20s") or a bare number of seconds.
func getDuration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second
	}
	log.Printf("invalid %s=%q, using %s", key, raw, def)
	return def
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
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

func normalizeLevel(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return "debug"
	case "warn", "warning":
		return "warn"
	case "error":
		return "error"
	default:
		return "info"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	default:
		return "local"
	}
}
