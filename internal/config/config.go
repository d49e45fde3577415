package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/GregMSThompson/finan-bff/internal/models"
)

type Config struct {
	Port      string
	LogLevel  string
	LogFormat string

	// Finance API
	FinanceAPIURL     string
	FinanceAPITimeout time.Duration
	DataSource        string
	PollSchedule      string

	// Local cache
	CacheBackend string
	SQLitePath   string
	ProjectID    string

	// AMQP bridge, disabled when AMQPURL is empty
	AMQPURL      string
	AMQPExchange string

	Timezone            string
	Location            *time.Location
	Budgets             []models.Budget
	ReportTopCategories int
}

// New reads the environment, loading a local .env first when present.
// Values that fail to parse fall back to their defaults; Validate reports
// settings that cannot work.
func New() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		Port:      getEnv("PORT", "8080"),
		LogLevel:  getEnv("LOGLEVEL", "info"),
		LogFormat: getEnv("LOGFORMAT", "json"),

		FinanceAPIURL:     getEnv("FINANCE_API_URL", "http://localhost:3000"),
		FinanceAPITimeout: getEnvDuration("FINANCE_API_TIMEOUT", 10*time.Second),
		DataSource:        strings.ToLower(getEnv("DATA_SOURCE", "remote")),
		PollSchedule:      getEnv("POLL_SCHEDULE", "@every 5s"),

		CacheBackend: strings.ToLower(getEnv("CACHE_BACKEND", "sqlite")),
		SQLitePath:   getEnv("SQLITE_PATH", "./data/finan-cache.db"),
		ProjectID:    os.Getenv("PROJECTID"),

		AMQPURL:      os.Getenv("AMQP_URL"),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "finan.events"),

		Timezone:            getEnv("TIMEZONE", "Local"),
		Budgets:             parseBudgets(os.Getenv("BUDGETS")),
		ReportTopCategories: getEnvInt("REPORT_TOP_CATEGORIES", 5),
	}

	if loc, err := time.LoadLocation(cfg.Timezone); err == nil {
		cfg.Location = loc
	}
	return cfg
}

func (c *Config) Validate() error {
	if c.Location == nil {
		return fmt.Errorf("unknown TIMEZONE %q", c.Timezone)
	}
	switch c.DataSource {
	case "remote", "static":
	default:
		return fmt.Errorf("DATA_SOURCE must be remote or static, got %q", c.DataSource)
	}
	switch c.CacheBackend {
	case "sqlite":
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required for the sqlite cache")
		}
	case "firestore":
		if c.ProjectID == "" {
			return fmt.Errorf("PROJECTID is required for the firestore cache")
		}
	default:
		return fmt.Errorf("CACHE_BACKEND must be sqlite or firestore, got %q", c.CacheBackend)
	}
	if c.DataSource == "remote" && c.FinanceAPIURL == "" {
		return fmt.Errorf("FINANCE_API_URL is required when DATA_SOURCE=remote")
	}
	return nil
}

// parseBudgets reads "Category=ceiling;Category=ceiling". Malformed pairs
// are skipped; nil means use the built-in table.
func parseBudgets(s string) []models.Budget {
	var out []models.Budget
	for _, pair := range strings.Split(s, ";") {
		name, ceiling, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(ceiling), 64)
		if err != nil {
			continue
		}
		out = append(out, models.Budget{Category: name, Ceiling: v})
	}
	return out
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
