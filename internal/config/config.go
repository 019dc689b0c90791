// File: internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	// Server Configuration
	GinMode       string        `mapstructure:"GIN_MODE"`
	ServerHost    string        `mapstructure:"SERVER_HOST"`
	ServerPort    string        `mapstructure:"SERVER_PORT"`
	ServerTimeout time.Duration `mapstructure:"SERVER_TIMEOUT_SECONDS"`

	// Database Configuration
	DBDriver          string        `mapstructure:"DB_DRIVER"`
	DBHost            string        `mapstructure:"DB_HOST"`
	DBPort            string        `mapstructure:"DB_PORT"`
	DBUser            string        `mapstructure:"DB_USER"`
	DBPassword        string        `mapstructure:"DB_PASSWORD"`
	DBName            string        `mapstructure:"DB_NAME"`
	DBSSLMode         string        `mapstructure:"DB_SSL_MODE"`
	DBTimezone        string        `mapstructure:"DB_TIMEZONE"`
	DBSQLitePath      string        `mapstructure:"DB_SQLITE_PATH"`
	DBMaxIdleConns    int           `mapstructure:"DB_MAX_IDLE_CONNS"`
	DBMaxOpenConns    int           `mapstructure:"DB_MAX_OPEN_CONNS"`
	DBConnMaxLifetime time.Duration `mapstructure:"DB_CONN_MAX_LIFETIME_MINUTES"`
	DBSource          string        `mapstructure:"DB_SOURCE"`
	SeedDataset       bool          `mapstructure:"SEED_DATASET"`

	// Logging Configuration
	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`

	// Session Store
	SessionStore        string        `mapstructure:"SESSION_STORE"` // "memory" or "redis"
	RedisAddr           string        `mapstructure:"REDIS_ADDR"`
	RedisPassword       string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB             int           `mapstructure:"REDIS_DB"`
	SessionTTL          time.Duration `mapstructure:"SESSION_TTL_DAYS"`
	SessionCookieName   string        `mapstructure:"SESSION_COOKIE_NAME"`
	SessionCookieSecure bool          `mapstructure:"SESSION_COOKIE_SECURE"`
	DemoSellerID        string        `mapstructure:"DEMO_SELLER_ID"`

	// Simulated latencies
	OfferSubmitDelay       time.Duration `mapstructure:"OFFER_SUBMIT_DELAY_MS"`
	OfferConfirmationDelay time.Duration `mapstructure:"OFFER_CONFIRMATION_DELAY_MS"`
	ChatReplyDelay         time.Duration `mapstructure:"CHAT_REPLY_DELAY_MS"`
	VerificationDelay      time.Duration `mapstructure:"VERIFICATION_SUBMIT_DELAY_MS"`
	PublishDelay           time.Duration `mapstructure:"PUBLISH_DELAY_MS"`

	// Views and Cron Jobs
	ViewIdleTimeout   time.Duration `mapstructure:"VIEW_IDLE_TIMEOUT_MINUTES"`
	ViewSweepSchedule string        `mapstructure:"VIEW_SWEEP_SCHEDULE"`

	// Draft photo previews
	ImageStoragePath   string `mapstructure:"IMAGE_STORAGE_PATH"`
	ImagePublicBaseURL string `mapstructure:"IMAGE_PUBLIC_BASE_URL"`

	// Elasticsearch Configuration
	ElasticsearchURL string `mapstructure:"ELASTICSEARCH_URL"`
}

// Load attempts to load configuration from a .env file (if present) and environment variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling configuration: %w", err)
	}

	// Durations are configured as plain integers in the unit named by the key.
	cfg.ServerTimeout = time.Duration(v.GetInt("SERVER_TIMEOUT_SECONDS")) * time.Second
	cfg.DBConnMaxLifetime = time.Duration(v.GetInt("DB_CONN_MAX_LIFETIME_MINUTES")) * time.Minute
	cfg.SessionTTL = time.Duration(v.GetInt("SESSION_TTL_DAYS")) * 24 * time.Hour
	cfg.OfferSubmitDelay = time.Duration(v.GetInt("OFFER_SUBMIT_DELAY_MS")) * time.Millisecond
	cfg.OfferConfirmationDelay = time.Duration(v.GetInt("OFFER_CONFIRMATION_DELAY_MS")) * time.Millisecond
	cfg.ChatReplyDelay = time.Duration(v.GetInt("CHAT_REPLY_DELAY_MS")) * time.Millisecond
	cfg.VerificationDelay = time.Duration(v.GetInt("VERIFICATION_SUBMIT_DELAY_MS")) * time.Millisecond
	cfg.PublishDelay = time.Duration(v.GetInt("PUBLISH_DELAY_MS")) * time.Millisecond
	cfg.ViewIdleTimeout = time.Duration(v.GetInt("VIEW_IDLE_TIMEOUT_MINUTES")) * time.Minute

	cfg.DBDriver = strings.ToLower(strings.TrimSpace(cfg.DBDriver))
	if cfg.DBDriver == "postgres" && strings.TrimSpace(cfg.DBSource) == "" {
		cfg.DBSource = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
			cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode, cfg.DBTimezone)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SERVER_TIMEOUT_SECONDS", 30)

	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "password")
	v.SetDefault("DB_NAME", "mottars_db")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_TIMEZONE", "UTC")
	v.SetDefault("DB_SQLITE_PATH", "mottars.db")
	v.SetDefault("DB_MAX_IDLE_CONNS", 10)
	v.SetDefault("DB_MAX_OPEN_CONNS", 100)
	v.SetDefault("DB_CONN_MAX_LIFETIME_MINUTES", 60)
	v.SetDefault("DB_SOURCE", "")
	v.SetDefault("SEED_DATASET", true)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")

	v.SetDefault("SESSION_STORE", "memory")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("SESSION_TTL_DAYS", 30)
	v.SetDefault("SESSION_COOKIE_NAME", "mottars_sid")
	v.SetDefault("SESSION_COOKIE_SECURE", false)
	v.SetDefault("DEMO_SELLER_ID", "s1")

	v.SetDefault("OFFER_SUBMIT_DELAY_MS", 1000)
	v.SetDefault("OFFER_CONFIRMATION_DELAY_MS", 3000)
	v.SetDefault("CHAT_REPLY_DELAY_MS", 1500)
	v.SetDefault("VERIFICATION_SUBMIT_DELAY_MS", 2000)
	v.SetDefault("PUBLISH_DELAY_MS", 2000)

	v.SetDefault("VIEW_IDLE_TIMEOUT_MINUTES", 30)
	v.SetDefault("VIEW_SWEEP_SCHEDULE", "@every 1m")

	v.SetDefault("IMAGE_STORAGE_PATH", "./previews")
	v.SetDefault("IMAGE_PUBLIC_BASE_URL", "/previews")

	// Only the sync-listings command talks to Elasticsearch.
	v.SetDefault("ELASTICSEARCH_URL", "")
}

func (c *Config) validate() error {
	switch c.DBDriver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("FATAL: DB_DRIVER must be 'postgres' or 'sqlite', got %q", c.DBDriver)
	}
	switch c.SessionStore {
	case "memory", "redis":
	default:
		return fmt.Errorf("FATAL: SESSION_STORE must be 'memory' or 'redis', got %q", c.SessionStore)
	}
	if c.SessionStore == "redis" && strings.TrimSpace(c.RedisAddr) == "" {
		return fmt.Errorf("FATAL: REDIS_ADDR is required when SESSION_STORE=redis")
	}
	if strings.TrimSpace(c.DemoSellerID) == "" {
		return fmt.Errorf("FATAL: DEMO_SELLER_ID must not be empty")
	}
	return nil
}
