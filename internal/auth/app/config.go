package app

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fintrack/fintrack/pkg/httpx"
	"github.com/joho/godotenv"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Issuer        string        // Optional: iss claim written to and required on tokens (default: fintrack)
	TokenTTL      time.Duration // Optional: lifetime of issued tokens (default: 24h)
	JWTSecret     string        // Base64 HS256 key, at least 32 decoded bytes
	JWTSecretFile string        // Optional: file holding the base64 key, used when JWTSecret is empty

	DatabaseDriver string // Optional: sqlite or postgres (default: sqlite)
	DatabaseFile   string // Optional: SQLite file (default: ./fintrack.db)
	DatabaseURL    string // Required for postgres: DSN
	PepperFile     string // Optional: path to file containing pepper for password hashing (default: ./pepper)

	CORSOrigins []string         // Optional: allowed browser origins (default: http://localhost:3000)
	TrustProxy  bool             // Optional: key rate limits on X-Forwarded-For (default: false)
	RateLimits  httpx.RateLimits // Optional: RATELIMIT_* overrides

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

// LoadEnvFile loads KEY=VALUE pairs from path into the process environment.
// Variables that are already set win over the file.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

func LoadConfig() Config {
	return loadConfig(os.Getenv)
}

func loadConfig(getenv func(string) string) Config {
	env := envReader(getenv)

	return Config{
		Issuer:        env.str("AUTH_ISSUER", "fintrack"),
		TokenTTL:      env.duration("AUTH_TOKEN_TTL", 24*time.Hour),
		JWTSecret:     getenv("AUTH_JWT_SECRET"),
		JWTSecretFile: getenv("AUTH_JWT_SECRET_FILE"),

		DatabaseDriver: strings.ToLower(env.str("DATABASE_DRIVER", DriverSQLite)),
		DatabaseFile:   env.str("DATABASE_FILE", "fintrack.db"),
		DatabaseURL:    getenv("DATABASE_URL"),
		PepperFile:     env.str("AUTH_PEPPER_FILE", "pepper"),

		CORSOrigins: env.list("CORS_ALLOWED_ORIGINS", httpx.DefaultCORSOrigins),
		TrustProxy:  env.boolean("TRUST_PROXY_HEADERS", false),
		RateLimits:  httpx.RateLimitsFromEnv(getenv),

		Env:                 env.str("ENV", "dev"),
		LogLevel:            env.str("LOG_LEVEL", "info"),
		LogFormat:           env.str("LOG_FORMAT", "json"),
		Port:                env.integer("PORT", 8080),
		ShutdownGracePeriod: env.duration("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

// Validate rejects combinations that cannot start.
func (c Config) Validate() error {
	switch c.DatabaseDriver {
	case DriverSQLite:
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when DATABASE_DRIVER=%s", DriverPostgres)
		}
	default:
		return fmt.Errorf("unknown DATABASE_DRIVER %q", c.DatabaseDriver)
	}

	if c.TokenTTL <= 0 {
		return fmt.Errorf("AUTH_TOKEN_TTL must be positive, got %s", c.TokenTTL)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT out of range: %d", c.Port)
	}
	return nil
}

func (c Config) IsDev() bool { return c.Env == "dev" }

// envReader reads typed values, falling back to the default when a
// variable is unset or does not parse.
type envReader func(string) string

func (e envReader) str(key, defaultValue string) string {
	if value := strings.TrimSpace(e(key)); value != "" {
		return value
	}
	return defaultValue
}

func (e envReader) integer(key string, defaultValue int) int {
	value := e(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func (e envReader) boolean(key string, defaultValue bool) bool {
	value := e(key)
	if value == "" {
		return defaultValue
	}
	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}
	return defaultValue
}

func (e envReader) duration(key string, defaultValue time.Duration) time.Duration {
	value := e(key)
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

func (e envReader) list(key string, defaultValue []string) []string {
	var out []string
	for _, v := range strings.Split(e(key), ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
