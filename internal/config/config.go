package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string

	HTTPPort string

	LogLevel  string
	LogFormat string

	StorageBackend string
	DataDir        string
	SQLitePath     string

	StripeSecretKey     string
	StripeWebhookSecret string
}

const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// Load loads configuration from environment variables and .env file.
// The Stripe defaults are insecure placeholders and must be overridden
// in any real deployment.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		AppName:             getenv("APP_SERVICE", "seohub"),
		AppVersion:          getenv("APP_VERSION", "0.1.0"),
		Environment:         getenv("ENVIRONMENT", "development"),
		HTTPPort:            getenv("PORT", "3001"),
		LogLevel:            getenv("LOG_LEVEL", "info"),
		LogFormat:           getenv("LOG_FORMAT", "json"),
		StorageBackend:      normalizeBackend(getenv("STORAGE_BACKEND", BackendFile)),
		DataDir:             getenv("DATA_DIR", "./data"),
		SQLitePath:          getenv("SQLITE_PATH", "./data/seohub.db"),
		StripeSecretKey:     getenv("STRIPE_SECRET_KEY", "sk_test_your_test_key_here"),
		StripeWebhookSecret: getenv("STRIPE_WEBHOOK_SECRET", "whsec_test_secret"),
	}
}

func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

func normalizeBackend(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case BackendMemory:
		return BackendMemory
	case BackendSQLite:
		return BackendSQLite
	default:
		return BackendFile
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

var Module = fx.Module("config",
	fx.Provide(Load),
)
