package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration values. It is loaded once at process start
// and injected into handlers; nothing reads the environment afterwards.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	AI        AIConfig
	Handwrite HandwriteConfig
	Billing   BillingConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Env  string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// URL returns the database connection URL
func (c DatabaseConfig) URL() string {
	return "postgres://" + c.User + ":" + c.Password + "@" + c.Host + ":" + strconv.Itoa(c.Port) + "/" + c.DBName + "?sslmode=" + c.SSLMode + "&prepare_threshold=0"
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	URL      string
	Password string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// AIConfig holds the text-generation provider settings
type AIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// HandwriteConfig holds the mail-fulfillment provider settings
type HandwriteConfig struct {
	APIKey        string
	BaseURL       string
	HandwritingID string
	Timeout       time.Duration
}

// BillingConfig holds billing defaults and the session encryption key
type BillingConfig struct {
	DefaultMonthlyLimit   int
	DefaultCardPriceCents int64
	SessionEncryptionKey  string
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Env:  getEnv("SERVER_ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "ekoink"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", "redis://localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		JWT: JWTConfig{
			Secret:        getEnv("JWT_SECRET", "change-this-in-production"),
			AccessExpiry:  getEnvAsDuration("JWT_ACCESS_EXPIRY", 15*time.Minute),
			RefreshExpiry: getEnvAsDuration("JWT_REFRESH_EXPIRY", 7*24*time.Hour),
		},
		AI: AIConfig{
			APIKey:  getEnv("AI_API_KEY", ""),
			BaseURL: getEnv("AI_BASE_URL", "https://api.openai.com/v1"),
			Model:   getEnv("AI_MODEL", "gpt-4o-mini"),
			Timeout: getEnvAsDuration("AI_TIMEOUT", 60*time.Second),
		},
		Handwrite: HandwriteConfig{
			APIKey:        getEnv("HANDWRITE_API_KEY", ""),
			BaseURL:       getEnv("HANDWRITE_BASE_URL", "https://api.handwrite.io/v1"),
			HandwritingID: getEnv("HANDWRITE_HANDWRITING_ID", ""),
			Timeout:       getEnvAsDuration("HANDWRITE_TIMEOUT", 30*time.Second),
		},
		Billing: BillingConfig{
			DefaultMonthlyLimit:   getEnvAsInt("BILLING_DEFAULT_MONTHLY_LIMIT", 100),
			DefaultCardPriceCents: int64(getEnvAsInt("BILLING_DEFAULT_CARD_PRICE_CENTS", 325)),
			SessionEncryptionKey:  getEnv("SESSION_ENCRYPTION_KEY", "0000000000000000000000000000000000000000000000000000000000000000"), // 32-bytes hex string
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
