package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config carries the service environment: one webhook URL per
// dashboard, the export sink, and HTTP client tuning.
type Config struct {
	WebhookURLs   map[string]string
	SinkURL       string
	SinkSecret    string
	Port          string
	LogLevel      string
	HTTPTimeout   time.Duration
	RetryAttempts int
}

var dashboards = []string{"leads", "sales", "mrr", "funnel", "landing", "campaigns"}

func Load() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		logrus.Warn("No .env file found, using environment variables")
	}

	timeout, _ := time.ParseDuration(getEnv("HTTP_TIMEOUT", "30s"))
	retryAttempts, _ := strconv.Atoi(getEnv("RETRY_ATTEMPTS", "3"))

	urls := make(map[string]string, len(dashboards))
	for _, dashboard := range dashboards {
		// LEADS_WEBHOOK_URL, SALES_WEBHOOK_URL, ...
		urls[dashboard] = getEnv(strings.ToUpper(dashboard)+"_WEBHOOK_URL", "")
	}

	return &Config{
		WebhookURLs:   urls,
		SinkURL:       getEnv("SINK_URL", ""),
		SinkSecret:    getEnv("SINK_SECRET", "painel_secret_example"),
		Port:          getEnv("PORT", "8080"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		HTTPTimeout:   timeout,
		RetryAttempts: retryAttempts,
	}
}

// Dashboards lists the configured dashboard names in a fixed order.
func (c *Config) Dashboards() []string {
	return dashboards
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
