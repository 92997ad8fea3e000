package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/riskibarqy/osu-tournament/internal/platform/logging"
	"github.com/riskibarqy/osu-tournament/internal/platform/resilience"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                      string
	ServiceName                 string
	ServiceVersion              string
	HTTPAddr                    string
	ReadTimeout                 time.Duration
	WriteTimeout                time.Duration
	RequestTimeout              time.Duration
	CORSAllowedOrigins          []string
	MongoURI                    string
	MongoDatabase               string
	MongoConnectTimeout         time.Duration
	MongoServerSelectionTimeout time.Duration
	CacheEnabled                bool
	CacheTTL                    time.Duration
	IdentityBaseURL             string
	IdentityConnectionsPath     string
	IdentityTimeout             time.Duration
	IdentityCacheTTL            time.Duration
	IdentityCircuit             resilience.CircuitBreakerConfig
	PprofEnabled                bool
	PprofAddr                   string
	UptraceEnabled              bool
	UptraceDSN                  string
	UptraceLogsEnabled          bool
	PyroscopeEnabled            bool
	PyroscopeServerAddress      string
	PyroscopeAppName            string
	PyroscopeAuthToken          string
	PyroscopeBasicAuthUser      string
	PyroscopeBasicAuthPassword  string
	PyroscopeUploadRate         time.Duration
	LogLevel                    logging.Level
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first; variables already set in the environment win.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:                     appEnv,
		ServiceName:                getEnv("APP_SERVICE_NAME", "osu-tournament-api"),
		ServiceVersion:             getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                   getEnv("APP_HTTP_ADDR", ":8080"),
		CORSAllowedOrigins:         splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		MongoURI:                   strings.TrimSpace(getEnv("MONGO_URI", "")),
		MongoDatabase:              strings.TrimSpace(getEnv("MONGO_DATABASE", "osu")),
		IdentityBaseURL:            strings.TrimSpace(getEnv("IDENTITY_BASE_URL", "http://localhost:8081")),
		IdentityConnectionsPath:    strings.TrimSpace(getEnv("IDENTITY_CONNECTIONS_PATH", "/connections/me")),
		PprofAddr:                  strings.TrimSpace(getEnv("PPROF_ADDR", ":6060")),
		UptraceDSN:                 strings.TrimSpace(getEnv("UPTRACE_DSN", "")),
		PyroscopeServerAddress:     strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", "")),
		PyroscopeAuthToken:         strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:     strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword: strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		LogLevel:                   logging.ParseLevel(getEnv("APP_LOG_LEVEL", "info")),
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}
	if cfg.MongoURI != "" && cfg.MongoDatabase == "" {
		return Config{}, fmt.Errorf("MONGO_DATABASE cannot be empty when MONGO_URI is set")
	}
	if cfg.UptraceDSN == "" {
		cfg.UptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}

	durations := []struct {
		key      string
		fallback string
		dst      *time.Duration
	}{
		{key: "APP_READ_TIMEOUT", fallback: "10s", dst: &cfg.ReadTimeout},
		{key: "APP_WRITE_TIMEOUT", fallback: "15s", dst: &cfg.WriteTimeout},
		{key: "APP_REQUEST_TIMEOUT", fallback: "10s", dst: &cfg.RequestTimeout},
		{key: "MONGO_CONNECT_TIMEOUT", fallback: "10s", dst: &cfg.MongoConnectTimeout},
		{key: "MONGO_SERVER_SELECTION_TIMEOUT", fallback: "5s", dst: &cfg.MongoServerSelectionTimeout},
		{key: "CACHE_TTL", fallback: "30s", dst: &cfg.CacheTTL},
		{key: "IDENTITY_TIMEOUT", fallback: "5s", dst: &cfg.IdentityTimeout},
		{key: "IDENTITY_CACHE_TTL", fallback: "30s", dst: &cfg.IdentityCacheTTL},
		{key: "IDENTITY_CIRCUIT_OPEN_TIMEOUT", fallback: "15s", dst: &cfg.IdentityCircuit.OpenTimeout},
		{key: "PYROSCOPE_UPLOAD_RATE", fallback: "15s", dst: &cfg.PyroscopeUploadRate},
	}
	for _, d := range durations {
		v, err := time.ParseDuration(getEnv(d.key, d.fallback))
		if err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", d.key, err)
		}
		if v <= 0 {
			return Config{}, fmt.Errorf("%s must be > 0", d.key)
		}
		*d.dst = v
	}

	flags := []struct {
		key      string
		fallback string
		dst      *bool
	}{
		{key: "CACHE_ENABLED", fallback: "false", dst: &cfg.CacheEnabled},
		{key: "IDENTITY_CIRCUIT_ENABLED", fallback: "true", dst: &cfg.IdentityCircuit.Enabled},
		{key: "PPROF_ENABLED", fallback: "false", dst: &cfg.PprofEnabled},
		{key: "UPTRACE_ENABLED", fallback: "false", dst: &cfg.UptraceEnabled},
		{key: "UPTRACE_LOGS_ENABLED", fallback: "true", dst: &cfg.UptraceLogsEnabled},
		{key: "PYROSCOPE_ENABLED", fallback: "false", dst: &cfg.PyroscopeEnabled},
	}
	for _, f := range flags {
		v, err := strconv.ParseBool(getEnv(f.key, f.fallback))
		if err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", f.key, err)
		}
		*f.dst = v
	}

	cfg.IdentityCircuit.FailureThreshold, err = getEnvAsInt("IDENTITY_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse IDENTITY_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	cfg.IdentityCircuit.HalfOpenMaxReq, err = getEnvAsInt("IDENTITY_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse IDENTITY_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if err := cfg.IdentityCircuit.Validate(); err != nil {
		return Config{}, fmt.Errorf("identity circuit: %w", err)
	}

	if cfg.IdentityBaseURL == "" {
		return Config{}, fmt.Errorf("IDENTITY_BASE_URL cannot be empty")
	}
	if cfg.PprofEnabled && cfg.PprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}
	if cfg.UptraceEnabled && cfg.UptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}
	if cfg.PyroscopeEnabled && cfg.PyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))

	return cfg, nil
}


func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	return strconv.Atoi(value)
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	for _, item := range strings.Split(raw, ",") {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			return strings.Trim(strings.TrimSpace(parts[1]), "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
