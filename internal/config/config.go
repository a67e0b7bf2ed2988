package config

import (
	"errors"
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
	RunAddress      string
	DatabaseURI     string
	JWTSecret       string
	TokenTTL        time.Duration
	ShutdownTimeout time.Duration
	LogLevel        string
	PageLimit       int

	Media MediaConfig

	CORSAllowedOrigins []string
}

// MediaConfig selects and configures the public file disk.
type MediaConfig struct {
	Disk      string
	Root      string
	PublicURL string

	S3Bucket    string
	S3Region    string
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
}

const (
	MediaDiskLocal = "local"
	MediaDiskS3    = "s3"
)

const (
	defaultRunAddress      = ":8080"
	defaultJWTSecret       = "change-me-in-production"
	defaultTokenTTL        = 24 * time.Hour
	defaultShutdownTimeout = 10 * time.Second
	defaultLogLevel        = "info"
	defaultPageLimit       = 10
	defaultMediaRoot       = "storage/app/public"
	defaultMediaPublicURL  = "/storage"
	defaultCORSOrigins     = "*"
	defaultEnvFile         = ".env"
)

// Load reads optional .env file and parses configuration from flags and environment variables.
func Load() (*Config, error) {
	envFile := defaultEnvFile
	if v, ok := os.LookupEnv("ENV_FILE"); ok && v != "" {
		envFile = v
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load env file %s: %w", envFile, err)
	}
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:      getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:     getString(lookup, "DATABASE_URI", ""),
		JWTSecret:       getString(lookup, "JWT_SECRET", defaultJWTSecret),
		TokenTTL:        getDuration(lookup, "TOKEN_TTL", defaultTokenTTL),
		ShutdownTimeout: getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		LogLevel:        getString(lookup, "LOG_LEVEL", defaultLogLevel),
		PageLimit:       getInt(lookup, "PAGE_LIMIT", defaultPageLimit),
		Media: MediaConfig{
			Disk:        getString(lookup, "MEDIA_DISK", MediaDiskLocal),
			Root:        getString(lookup, "MEDIA_ROOT", defaultMediaRoot),
			PublicURL:   getString(lookup, "MEDIA_PUBLIC_URL", defaultMediaPublicURL),
			S3Bucket:    getString(lookup, "S3_BUCKET", ""),
			S3Region:    getString(lookup, "S3_REGION", ""),
			S3Endpoint:  getString(lookup, "S3_ENDPOINT", ""),
			S3AccessKey: getString(lookup, "S3_ACCESS_KEY", ""),
			S3SecretKey: getString(lookup, "S3_SECRET_KEY", ""),
		},
	}
	origins := getString(lookup, "CORS_ALLOWED_ORIGINS", defaultCORSOrigins)

	fs := flag.NewFlagSet("marketplace", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		tokenTTLStr        = cfg.TokenTTL.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Secret for signing auth tokens")
	fs.StringVar(&tokenTTLStr, "token-ttl", tokenTTLStr, "Lifetime of issued auth tokens")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	fs.IntVar(&cfg.PageLimit, "page-limit", cfg.PageLimit, "Default page size of listings")
	fs.StringVar(&cfg.Media.Disk, "media-disk", cfg.Media.Disk, "Public file disk: local or s3")
	fs.StringVar(&cfg.Media.Root, "media-root", cfg.Media.Root, "Root directory of the local disk")
	fs.StringVar(&cfg.Media.PublicURL, "media-url", cfg.Media.PublicURL, "Public URL prefix of stored files")
	fs.StringVar(&origins, "cors-origins", origins, "Comma separated list of allowed CORS origins")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.TokenTTL, err = time.ParseDuration(tokenTTLStr); err != nil {
		return nil, fmt.Errorf("invalid token ttl: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("JWT_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read jwt secret file: %w", err)
		}
		cfg.JWTSecret = strings.TrimSpace(string(content))
	}

	cfg.CORSAllowedOrigins = splitList(origins)

	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.PageLimit <= 0 {
		cfg.PageLimit = defaultPageLimit
	}

	cfg.Media.PublicURL = strings.TrimRight(cfg.Media.PublicURL, "/")

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	switch cfg.Media.Disk {
	case MediaDiskLocal:
	case MediaDiskS3:
		if cfg.Media.S3Bucket == "" || cfg.Media.S3Region == "" {
			return nil, fmt.Errorf("s3 media disk requires S3_BUCKET and S3_REGION")
		}
	default:
		return nil, fmt.Errorf("unsupported media disk %q", cfg.Media.Disk)
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
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
