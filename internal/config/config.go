package config // package config loads application configuration from environment variables

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration values. It is constructed once
// in main and passed by value into the components that need it; there
// is no package-level settings singleton.
type Config struct {
	Env          string // application environment (e.g. "dev", "prod")
	Port         string // HTTP port to listen on
	DBUser       string // database username
	DBPass       string // database password (optional)
	DBHost       string // database host address
	DBPort       string // database port number
	DBName       string // database name
	JWTSecret    string // secret used to sign access tokens (min 32 bytes)
	JWTAlgorithm string // signing algorithm name (HS256)
	AccessTTLMin int    // access token time-to-live in minutes, used at login
	BcryptCost   int    // bcrypt cost for password hashing
	MaxBodyBytes int64  // admission-control ceiling for request bodies
	RabbitURL    string // AMQP broker URL for audit events (empty disables)

	CORS      CORSConfig
	RateLimit RateLimitConfig
}

// CORSConfig drives the cross-origin middleware: an allow-list of
// origins plus the methods and headers advertised on preflight.
type CORSConfig struct {
	Origins []string
	Methods []string
	Headers []string
	MaxAge  int
}

// Load reads configuration from environment variables. Required
// variables are enforced by must() and missing values cause the program
// to exit with a fatal log message; everything else has a default.
func Load() Config {
	secret := must("JWT_SECRET")
	if len(secret) < 32 {
		log.Fatalf("JWT_SECRET must be at least 32 bytes, got %d", len(secret))
	}
	return Config{
		Env:          envStr("APP_ENV", "dev"),
		Port:         envStr("APP_PORT", "8000"),
		DBUser:       must("DB_USER"),
		DBPass:       os.Getenv("DB_PASS"),
		DBHost:       must("DB_HOST"),
		DBPort:       must("DB_PORT"),
		DBName:       must("DB_NAME"),
		JWTSecret:    secret,
		JWTAlgorithm: envStr("JWT_ALGORITHM", "HS256"),
		AccessTTLMin: envInt("ACCESS_TOKEN_EXPIRE_MINUTES", 30),
		BcryptCost:   envInt("BCRYPT_COST", 10),
		MaxBodyBytes: int64(envInt("MAX_BODY_BYTES", 10*1024*1024)),
		RabbitURL:    os.Getenv("RABBITMQ_URL"),
		CORS: CORSConfig{
			Origins: splitCSV(envStr("CORS_ORIGINS", "")),
			Methods: splitCSV(envStr("CORS_METHODS", "GET,POST,PUT,DELETE,OPTIONS")),
			Headers: splitCSV(envStr("CORS_HEADERS", "Authorization,Content-Type,X-Request-ID")),
			MaxAge:  envInt("CORS_MAX_AGE", 600),
		},
		RateLimit: LoadRateLimitConfig(),
	}
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and
// exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func envStr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func envBool(k string, d bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return d
}

func envInt(k string, d int) int {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return d
}

func envDur(k string, d time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if dur, err := time.ParseDuration(v); err == nil {
		return dur
	}
	return d
}
