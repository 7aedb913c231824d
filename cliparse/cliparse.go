package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// EnvProduction switches logging to JSON.
const EnvProduction = "production"

const (
	defaultPort      = 3000
	defaultSQLiteURL = "file:ecocondor.db"
	defaultTimeout   = 15 * time.Second
	defaultEnvFile   = ".env"
	defaultEnv       = "development"
	defaultLogLevel  = "info"
	databaseSQLite   = "sqlite"
	databasePostgres = "postgres"
)

type Config struct {
	Port           int
	DatabaseURL    string
	DatabaseType   string
	RequestTimeout time.Duration

	// Bearer token verification. At least one of TokenSecret (HS256) or
	// TokenPublicKeyFile (RS256 PEM) is required.
	TokenSecret        string
	TokenPublicKeyFile string
	TokenIssuer        string
	TokenAudience      string

	RewardsFile string
	EnvFile     string
	Env         string
	LogLevel    string
}

// ParseFlags validates flags and fills the rest from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var timeout string

	flags := flag.NewFlagSet("ecocondor", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	flags.IntVar(&cfg.Port, "p", 0, "Server port")
	flags.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	flags.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	flags.StringVar(&timeout, "timeout", "", "Per-request timeout, e.g. 15s")

	// Secrets (prefer env variables, but allow CLI for dev)
	flags.StringVar(&cfg.TokenSecret, "token-secret", "", "HS256 token secret (prefer env)")
	flags.StringVar(&cfg.TokenPublicKeyFile, "token-public-key", "", "RS256 public key PEM file")

	flags.StringVar(&cfg.RewardsFile, "rewards-file", "", "YAML reward catalog to seed at start-up")
	flags.StringVar(&cfg.EnvFile, "env-file", "", "Env file to load (default .env)")
	flags.StringVar(&cfg.Env, "env", "", "Environment name (development or production)")
	flags.StringVar(&cfg.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")

	if err := flags.Parse(args); err != nil {
		return Config{}, err
	}

	// Load the env file before any env fallback; the process env wins
	if cfg.EnvFile == "" {
		cfg.EnvFile = envOr("ENV_FILE", defaultEnvFile)
	}
	if err := godotenv.Load(cfg.EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("loading env file %s: %w", cfg.EnvFile, err)
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = defaultPort
		}
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("port %d out of range", cfg.Port)
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = envOr("DATABASE_TYPE", databaseSQLite)
	}
	if cfg.DatabaseType != databaseSQLite && cfg.DatabaseType != databasePostgres {
		return Config{}, fmt.Errorf("unsupported database type %q (use sqlite or postgres)", cfg.DatabaseType)
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		if cfg.DatabaseType == databasePostgres {
			return Config{}, errors.New("database URL required for postgres (use -d or DATABASE_URL env)")
		}
		cfg.DatabaseURL = defaultSQLiteURL
	}

	if timeout == "" {
		timeout = os.Getenv("REQUEST_TIMEOUT")
	}
	cfg.RequestTimeout = defaultTimeout
	if timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("invalid request timeout %q", timeout)
		}
		cfg.RequestTimeout = d
	}

	// Secrets - at least one verification key MUST be provided
	if cfg.TokenSecret == "" {
		cfg.TokenSecret = os.Getenv("AUTH_TOKEN_SECRET")
	}
	if cfg.TokenPublicKeyFile == "" {
		cfg.TokenPublicKeyFile = os.Getenv("AUTH_PUBLIC_KEY_FILE")
	}
	if cfg.TokenSecret == "" && cfg.TokenPublicKeyFile == "" {
		return Config{}, errors.New("AUTH_TOKEN_SECRET or AUTH_PUBLIC_KEY_FILE required")
	}
	cfg.TokenIssuer = os.Getenv("AUTH_TOKEN_ISSUER")
	cfg.TokenAudience = os.Getenv("AUTH_TOKEN_AUDIENCE")

	if cfg.RewardsFile == "" {
		cfg.RewardsFile = os.Getenv("REWARDS_FILE")
	}
	if cfg.Env == "" {
		cfg.Env = envOr("APP_ENV", defaultEnv)
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = envOr("LOG_LEVEL", defaultLogLevel)
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	if _, err := parseLevel(cfg.LogLevel); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Level returns the slog level named by LogLevel, info when unset.
func (c Config) Level() slog.Level {
	l, err := parseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return l
}

// Production reports whether logs should be emitted as JSON.
func (c Config) Production() bool {
	return c.Env == EnvProduction
}

func parseLevel(s string) (slog.Level, error) {
	switch s {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("invalid log level %q (use debug, info, warn or error)", s)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
