package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Data      DataConfig
	Logger    LoggerConfig
	Security  SecurityConfig
	Dashboard DashboardConfig
}

type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

type DataConfig struct {
	CSVFile     string
	LoadTimeout time.Duration
}

type LoggerConfig struct {
	Level  string
	Format string
}

type SecurityConfig struct {
	EnableRateLimit bool
	RateLimitRPS    int
	RateLimitBurst  int
	AllowedOrigins  []string
	TrustedProxies  []string
}

type DashboardConfig struct {
	Profile     string
	PreviewRows int
	ViewTTL     time.Duration
}

var (
	validLogLevels  = []string{"debug", "info", "warn", "error"}
	validLogFormats = []string{"json", "text"}
	validProfiles   = []string{"analysis", "brief"}
)

// Load reads configuration from the environment. Values from a .env file in
// the working directory are applied first without overriding real
// environment variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:            getEnvString("SERVER_HOST", "localhost"),
			Port:            getEnvInt("SERVER_PORT", 8501),
			ReadTimeout:     getEnvDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
			IdleTimeout:     getEnvDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getEnvDuration("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Data: DataConfig{
			CSVFile:     getEnvString("CSV_FILE", "data.csv"),
			LoadTimeout: getEnvDuration("DATA_LOAD_TIMEOUT", 30*time.Second),
		},
		Logger: LoggerConfig{
			Level:  getEnvString("LOG_LEVEL", "info"),
			Format: getEnvString("LOG_FORMAT", "json"),
		},
		Security: SecurityConfig{
			EnableRateLimit: getEnvBool("SECURITY_RATE_LIMIT_ENABLED", true),
			RateLimitRPS:    getEnvInt("SECURITY_RATE_LIMIT_RPS", 50),
			RateLimitBurst:  getEnvInt("SECURITY_RATE_LIMIT_BURST", 20),
			AllowedOrigins:  getEnvStringSlice("SECURITY_ALLOWED_ORIGINS", []string{"http://localhost:8501"}),
			TrustedProxies:  getEnvStringSlice("SECURITY_TRUSTED_PROXIES", []string{"127.0.0.1"}),
		},
		Dashboard: DashboardConfig{
			Profile:     getEnvString("DASHBOARD_PROFILE", "analysis"),
			PreviewRows: getEnvInt("DASHBOARD_PREVIEW_ROWS", 20),
			ViewTTL:     getEnvDuration("DASHBOARD_VIEW_CACHE_TTL", 5*time.Minute),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	var errs []error

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server port must be between 1 and 65535, got %d", c.Server.Port))
	}
	if c.Server.ReadTimeout <= 0 {
		errs = append(errs, errors.New("server read timeout must be positive"))
	}
	if c.Server.WriteTimeout <= 0 {
		errs = append(errs, errors.New("server write timeout must be positive"))
	}
	if c.Data.CSVFile == "" {
		errs = append(errs, errors.New("CSV file path cannot be empty"))
	}
	if c.Data.LoadTimeout <= 0 {
		errs = append(errs, errors.New("data load timeout must be positive"))
	}
	if !slices.Contains(validLogLevels, c.Logger.Level) {
		errs = append(errs, fmt.Errorf("invalid log level %q, must be one of: %s", c.Logger.Level, strings.Join(validLogLevels, ", ")))
	}
	if !slices.Contains(validLogFormats, c.Logger.Format) {
		errs = append(errs, fmt.Errorf("invalid log format %q, must be one of: %s", c.Logger.Format, strings.Join(validLogFormats, ", ")))
	}
	if c.Security.RateLimitRPS <= 0 {
		errs = append(errs, errors.New("rate limit RPS must be positive"))
	}
	if c.Security.RateLimitBurst <= 0 {
		errs = append(errs, errors.New("rate limit burst must be positive"))
	}
	if !slices.Contains(validProfiles, c.Dashboard.Profile) {
		errs = append(errs, fmt.Errorf("invalid dashboard profile %q, must be one of: %s", c.Dashboard.Profile, strings.Join(validProfiles, ", ")))
	}
	if c.Dashboard.PreviewRows < 1 || c.Dashboard.PreviewRows > 1000 {
		errs = append(errs, fmt.Errorf("preview rows must be between 1 and 1000, got %d", c.Dashboard.PreviewRows))
	}
	if c.Dashboard.ViewTTL <= 0 {
		errs = append(errs, errors.New("view cache TTL must be positive"))
	}

	return errors.Join(errs...)
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvStringSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return defaultValue
}

func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
