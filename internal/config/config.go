package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress         string
	DatabaseURI        string
	RedisURL           string
	LogDir             string
	SessionTTL         time.Duration
	CookieSecure       bool
	RequestTimeout     time.Duration
	ShutdownTimeout    time.Duration
	JanitorInterval    time.Duration
	CORSAllowedOrigins []string
	TrustedProxies     []string
}

const (
	defaultRunAddress      = ":8000"
	defaultLogDir          = "logs"
	defaultRequestTimeout  = 10 * time.Second
	defaultShutdownTimeout = 10 * time.Second
	defaultJanitorInterval = time.Minute
	envFile                = ".env"
)

// Load parses configuration from flags and environment variables.
// Values from a local .env file are applied first and never override the real environment.
func Load() (*Config, error) {
	_ = godotenv.Load(envFile)
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:      getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:     getString(lookup, "DATABASE_URI", ""),
		RedisURL:        getString(lookup, "REDIS_URL", ""),
		LogDir:          defaultLogDir,
		SessionTTL:      getDuration(lookup, "SESSION_TTL", 0),
		CookieSecure:    getBool(lookup, "COOKIE_SECURE", false),
		RequestTimeout:  getDuration(lookup, "REQUEST_TIMEOUT", defaultRequestTimeout),
		ShutdownTimeout: getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		JanitorInterval: getDuration(lookup, "JANITOR_INTERVAL", defaultJanitorInterval),
	}
	// An explicitly empty LOG_DIR disables log files.
	if v, ok := lookup("LOG_DIR"); ok {
		cfg.LogDir = v
	}

	fs := flag.NewFlagSet("bank", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		sessionTTLStr      = cfg.SessionTTL.String()
		requestTimeoutStr  = cfg.RequestTimeout.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
		janitorStr         = cfg.JanitorInterval.String()
		corsOrigins        = getString(lookup, "CORS_ALLOWED_ORIGINS", "")
		trustedProxies     = getString(lookup, "TRUSTED_PROXIES", "")
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.RedisURL, "redis", cfg.RedisURL, "Redis URL for shared login attempt counters")
	fs.StringVar(&cfg.LogDir, "log-dir", cfg.LogDir, "Directory for app.log and security.log")
	fs.StringVar(&sessionTTLStr, "session-ttl", sessionTTLStr, "Session lifetime, 0 disables expiry")
	fs.BoolVar(&cfg.CookieSecure, "cookie-secure", cfg.CookieSecure, "Mark session cookie as Secure")
	fs.StringVar(&requestTimeoutStr, "request-timeout", requestTimeoutStr, "Per-request timeout")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.StringVar(&janitorStr, "janitor-interval", janitorStr, "Interval between cleanup sweeps")
	fs.StringVar(&corsOrigins, "cors-origins", corsOrigins, "Comma separated list of allowed CORS origins")
	fs.StringVar(&trustedProxies, "trusted-proxies", trustedProxies, "Comma separated list of trusted proxy CIDRs")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.SessionTTL, err = time.ParseDuration(sessionTTLStr); err != nil {
		return nil, fmt.Errorf("invalid session ttl: %w", err)
	}

	if cfg.RequestTimeout, err = time.ParseDuration(requestTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid request timeout: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if cfg.JanitorInterval, err = time.ParseDuration(janitorStr); err != nil {
		return nil, fmt.Errorf("invalid janitor interval: %w", err)
	}

	cfg.CORSAllowedOrigins = splitList(corsOrigins)
	cfg.TrustedProxies = splitList(trustedProxies)

	if cfg.SessionTTL < 0 {
		cfg.SessionTTL = 0
	}

	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultRequestTimeout
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.JanitorInterval <= 0 {
		cfg.JanitorInterval = defaultJanitorInterval
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getBool(lookup envLookup, key string, def bool) bool {
	if v, ok := lookup(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
