package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the service
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Kafka      KafkaConfig
	Auth       AuthConfig
	Finnhub    FinnhubConfig
	Gemini     GeminiConfig
	SMTP       SMTPConfig
	Digest     DigestConfig
	Logging    LoggingConfig
	ServiceKey string
}

// ServerConfig holds server specific configuration
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DatabaseConfig holds database specific configuration
type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// RedisConfig holds Redis specific configuration. Redis backs the optional
// revalidate cache in front of the Finnhub API.
type RedisConfig struct {
	Enabled  bool
	URL      string
	Password string
	DB       int
}

// KafkaConfig holds Kafka specific configuration
type KafkaConfig struct {
	Enabled         bool
	Brokers         []string
	UserEventsTopic string
	GroupID         string
}

// AuthConfig holds authentication specific configuration
type AuthConfig struct {
	JWTSecret           string
	AccessTokenDuration time.Duration
}

// FinnhubConfig holds configuration for the market data provider.
// RevalidateTTL of zero disables response caching entirely.
type FinnhubConfig struct {
	BaseURL       string
	APIKey        string
	RevalidateTTL time.Duration
}

// GeminiConfig holds configuration for the AI summarizer
type GeminiConfig struct {
	BaseURL string
	APIKey  string
	Model   string
}

// SMTPConfig holds outbound email configuration
type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

// DigestConfig holds configuration for the daily news digest job
type DigestConfig struct {
	Hour        int
	MaxArticles int
}

// LoggingConfig holds logging specific configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// LoadConfig loads the configuration from file and environment variables
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Read config file
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Read from environment variables
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default values for configuration
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.readTimeout", "10s")
	v.SetDefault("server.writeTimeout", "10s")
	v.SetDefault("server.idleTimeout", "120s")

	// Database defaults
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.maxOpenConns", 25)
	v.SetDefault("database.maxIdleConns", 5)
	v.SetDefault("database.connMaxLifetime", "30m")

	// Auth defaults
	v.SetDefault("auth.accessTokenDuration", "24h")

	// Kafka defaults
	v.SetDefault("kafka.userEventsTopic", "user-events")
	v.SetDefault("kafka.groupID", "stock-tracker")

	// Finnhub defaults
	v.SetDefault("finnhub.baseURL", "https://finnhub.io/api/v1")
	v.SetDefault("finnhub.revalidateTTL", "0s")

	// Gemini defaults
	v.SetDefault("gemini.baseURL", "https://generativelanguage.googleapis.com/v1beta")
	v.SetDefault("gemini.model", "gemini-2.5-flash")

	// Digest defaults: daily at noon, at most 6 articles per email
	v.SetDefault("digest.hour", 12)
	v.SetDefault("digest.maxArticles", 6)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}
