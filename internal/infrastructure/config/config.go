// internal/infrastructure/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"flighthours-service/pkg/utils"

	"github.com/joho/godotenv"
)

// Roster sources and report sinks
const (
	SourceFile  = "file"
	SourceMongo = "mongo"

	SinkFile  = "file"
	SinkMongo = "mongo"
	SinkSQL   = "sql"
	SinkRedis = "redis"
)

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion       string
	LogLevel         string
	MetricsNamespace string

	// Server
	Port              string
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	ReprocessInterval time.Duration

	// Files
	InputFile       string
	OutputFile      string
	DateTimeLayouts []string
	MonthLocale     string

	// Processing
	RosterSource string
	ReportSinks  []string
	Workers      int

	// MongoDB
	MongoURI      string
	MongoDB       string
	MongoUser     string
	MongoPassword string

	// SQL report store
	SQLDriver string
	SQLDSN    string

	// Redis report cache
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	RedisKeyPrefix string
	RedisChannel   string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	config := &Config{
		AppVersion:       getEnv("APP_VERSION", "1.0.0"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		MetricsNamespace: getEnv("METRICS_NAMESPACE", "flighthours"),

		Port:              getEnv("PORT", "8080"),
		ReadTimeout:       time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout:      time.Duration(getEnvAsInt("WRITE_TIMEOUT", 30)) * time.Second,
		ReprocessInterval: time.Duration(getEnvAsInt("REPROCESS_INTERVAL", 300)) * time.Second,

		InputFile:       getEnv("INPUT_FILE", "data/InputPilotsAndFlights.json"),
		OutputFile:      getEnv("OUTPUT_FILE", "data/OutputPilotsAndFlights.json"),
		DateTimeLayouts: getEnvAsList("DATETIME_LAYOUTS", utils.DefaultDateTimeLayouts),
		MonthLocale:     strings.ToLower(getEnv("MONTH_LOCALE", utils.LocaleRU)),

		RosterSource: strings.ToLower(getEnv("ROSTER_SOURCE", SourceFile)),
		ReportSinks:  lowerAll(getEnvAsList("REPORT_SINKS", []string{SinkFile})),
		Workers:      getEnvAsInt("WORKERS", 4),

		MongoURI:      getEnv("MONGODB_DSN", "mongodb://localhost:27017"),
		MongoDB:       getEnv("MONGO_DB", "flighthours"),
		MongoUser:     getEnv("MONGO_USER", ""),
		MongoPassword: getEnv("MONGO_PASSWORD", ""),

		SQLDriver: strings.ToLower(getEnv("SQL_DRIVER", "postgres")),
		SQLDSN:    getEnv("SQL_DSN", ""),

		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		RedisDB:        getEnvAsInt("REDIS_DB", 0),
		RedisKeyPrefix: getEnv("REDIS_KEY_PREFIX", "flighthours"),
		RedisChannel:   getEnv("REDIS_CHANNEL", "flighthours:reports"),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate rejects unknown names and impossible values
func (c *Config) Validate() error {
	switch c.RosterSource {
	case SourceFile, SourceMongo:
	default:
		return fmt.Errorf("unknown ROSTER_SOURCE %q", c.RosterSource)
	}

	for _, sink := range c.ReportSinks {
		switch sink {
		case SinkFile, SinkMongo, SinkSQL, SinkRedis:
		default:
			return fmt.Errorf("unknown report sink %q in REPORT_SINKS", sink)
		}
	}

	if c.HasSink(SinkSQL) {
		if c.SQLDriver != "postgres" && c.SQLDriver != "sqlite" {
			return fmt.Errorf("unknown SQL_DRIVER %q", c.SQLDriver)
		}
		if c.SQLDSN == "" {
			return fmt.Errorf("SQL_DSN is required when the sql sink is enabled")
		}
	}

	if !utils.IsSupportedLocale(c.MonthLocale) {
		return fmt.Errorf("unsupported MONTH_LOCALE %q", c.MonthLocale)
	}
	if c.Workers < 1 {
		return fmt.Errorf("WORKERS must be at least 1, got %d", c.Workers)
	}
	if len(c.DateTimeLayouts) == 0 {
		return fmt.Errorf("DATETIME_LAYOUTS must not be empty")
	}
	return nil
}

// HasSink reports whether the named sink is enabled
func (c *Config) HasSink(name string) bool {
	for _, sink := range c.ReportSinks {
		if sink == name {
			return true
		}
	}
	return false
}

// NeedsMongo reports whether any component reads from or writes to MongoDB
func (c *Config) NeedsMongo() bool {
	return c.RosterSource == SourceMongo || c.HasSink(SinkMongo)
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	var values []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			values = append(values, part)
		}
	}
	return values
}

func lowerAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.ToLower(v)
	}
	return out
}
