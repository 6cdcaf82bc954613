package config

import (
	"fmt"
	"log"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const PROD_STRING = "prod"

// Config holds all application configuration loaded from environment.
type Config struct {
	IsProduction    bool
	ProdOrigins     []string
	HTTPAddr        string
	DBDSN           string
	DBMigrate       bool
	DBMaxConns      int32
	AMQPURL         string
	AMQPExchange    string
	RateLimitRPS    float64
	RateLimitBurst  int
	TrustedProxies  []string
	ShutdownTimeout time.Duration
}

// Load loads configuration from .env (optional) and environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("failed to load .env file: %v", err)
	}

	cfg := &Config{}
	var err error

	// Application environment (default: dev)
	cfg.IsProduction = getEnv("APP_ENV", "dev") == PROD_STRING

	// Production origins, comma separated (default: none)
	cfg.ProdOrigins = splitList(getEnv("PROD_ORIGINS", ""))

	// HTTP listen address (default: :8080)
	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":8080")

	// Database DSN is required
	cfg.DBDSN = os.Getenv("DB_DSN")
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required")
	}

	// Apply embedded migrations on startup (default: true)
	cfg.DBMigrate, err = getEnvAsBool("DB_MIGRATE", true)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIGRATE: %w", err)
	}

	// Pool size, 0 keeps the pgxpool default
	maxConns, err := getEnvAsInt("DB_MAX_CONNS", 0)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}
	cfg.DBMaxConns = int32(maxConns)

	// Event publishing is disabled when AMQP_URL is empty
	cfg.AMQPURL = getEnv("AMQP_URL", "")
	cfg.AMQPExchange = getEnv("AMQP_EXCHANGE", "reservation.events")

	// Per client rate limit, 0 disables it
	rps := getEnv("RATE_LIMIT_RPS", "0")
	cfg.RateLimitRPS, err = strconv.ParseFloat(rps, 64)
	if err != nil || cfg.RateLimitRPS < 0 {
		return nil, fmt.Errorf("invalid RATE_LIMIT_RPS %q", rps)
	}

	cfg.RateLimitBurst, err = getEnvAsInt("RATE_LIMIT_BURST", 20)
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_BURST: %w", err)
	}

	// Proxies allowed to set X-Forwarded-For, as IPs or CIDRs (default: none)
	cfg.TrustedProxies = splitList(getEnv("TRUSTED_PROXIES", ""))
	for _, proxy := range cfg.TrustedProxies {
		if !isIPOrCIDR(proxy) {
			return nil, fmt.Errorf("invalid TRUSTED_PROXIES entry %q", proxy)
		}
	}

	// Graceful shutdown budget, parsed as time.Duration (e.g. "5s").
	timeoutStr := getEnv("SHUTDOWN_TIMEOUT", "5s")
	cfg.ShutdownTimeout, err = time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SHUTDOWN_TIMEOUT: %w", err)
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable if set,
// otherwise returns the provided default value.
func getEnv(key, defaultValue string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer.
// It returns the default value if the variable is not set.
// It returns an error if the variable is set but is not a valid integer.
func getEnvAsInt(key string, defaultValue int) (int, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := strconv.Atoi(valStr)
	if err != nil {
		return 0, fmt.Errorf("env %s value %q is not a valid integer: %w", key, valStr, err)
	}

	return val, nil
}

func getEnvAsBool(key string, defaultValue bool) (bool, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseBool(valStr)
	if err != nil {
		return false, fmt.Errorf("env %s value %q is not a valid bool: %w", key, valStr, err)
	}

	return val, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func isIPOrCIDR(s string) bool {
	if net.ParseIP(s) != nil {
		return true
	}
	_, _, err := net.ParseCIDR(s)
	return err == nil
}
