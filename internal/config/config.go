package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"
)

type Config struct {
	// Expense storage
	DataBackend string
	ExpenseFile string

	// SQLite
	SQLiteDBPath string

	// AMQP (optional; empty URL disables eventing)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Worker
	StatsInterval time.Duration
}

func Load() *Config {
	return &Config{
		DataBackend: getEnv("DATA_BACKEND", "flatfile"),
		ExpenseFile: getEnv("EXPENSE_FILE", "./data/expenses.txt"),

		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/expenselog.db"),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "expenselog"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "expense_recorded"),

		StatsInterval: getEnvDuration("STATS_INTERVAL", 30*time.Second),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	validBackends := []string{"flatfile", "sqlite", "memory"}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.DataBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	if c.DataBackend == "flatfile" && c.ExpenseFile == "" {
		errors = append(errors, "expense file path cannot be empty when using flatfile backend")
	}

	if c.DataBackend == "sqlite" && c.SQLiteDBPath == "" {
		errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}

		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if c.StatsInterval < time.Second {
		errors = append(errors, fmt.Sprintf("invalid stats interval %v: must be at least 1 second", c.StatsInterval))
	} else if c.StatsInterval > 24*time.Hour {
		errors = append(errors, fmt.Sprintf("invalid stats interval %v: must be at most 24 hours", c.StatsInterval))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
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
