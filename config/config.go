package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server configuration
	Environment   string
	InstituteName string
	DefaultLocale string

	// Redis configuration
	RedisURL      string
	RedisPoolSize int

	// PubNub configuration
	PubNubPublishKey   string
	PubNubSubscribeKey string
	PubNubSecretKey    string
	PubNubUserID       string
	PubNubChannel      string

	// Messaging configuration
	DefaultCountryCode  string
	MessageFallbackName string

	// View cache
	ViewCacheTTL time.Duration

	// Auth configuration
	AuthCookieName   string
	LoginRateLimit   int
	LoginRateWindow  time.Duration
	SecureAuthCookie bool

	// Monitoring
	EnableMetrics bool
}

func LoadConfig() *Config {
	// .env is optional; variables may come from the environment directly.
	_ = godotenv.Load()

	return &Config{
		// Server
		Environment:   getEnv("ENVIRONMENT", "development"),
		InstituteName: getEnv("INSTITUTE_NAME", "Rajasthan International Centre"),
		DefaultLocale: getEnv("DEFAULT_LOCALE", "en"),

		// Redis
		RedisURL:      getEnv("REDIS_URL", "localhost:6379"),
		RedisPoolSize: getEnvAsInt("REDIS_POOL_SIZE", 20),

		// PubNub
		PubNubPublishKey:   getEnv("PUBNUB_PUBLISH_KEY", ""),
		PubNubSubscribeKey: getEnv("PUBNUB_SUBSCRIBE_KEY", ""),
		PubNubSecretKey:    getEnv("PUBNUB_SECRET_KEY", ""),
		PubNubUserID:       getEnv("PUBNUB_USER_ID", "events-portal"),
		PubNubChannel:      getEnv("PUBNUB_CHANNEL", "dashboard-updates"),

		// Messaging
		DefaultCountryCode:  getEnv("DEFAULT_COUNTRY_CODE", "91"),
		MessageFallbackName: getEnv("MESSAGE_FALLBACK_NAME", "Customer"),

		// View cache
		ViewCacheTTL: getEnvAsDuration("VIEW_CACHE_TTL", "5m"),

		// Auth
		AuthCookieName:   getEnv("AUTH_COOKIE_NAME", "portal_auth"),
		LoginRateLimit:   getEnvAsInt("LOGIN_RATE_LIMIT", 10),
		LoginRateWindow:  getEnvAsDuration("LOGIN_RATE_WINDOW", "1m"),
		SecureAuthCookie: getEnvAsBool("SECURE_AUTH_COOKIE", false),

		// Monitoring
		EnableMetrics: getEnvAsBool("ENABLE_METRICS", true),
	}
}

// PubNubEnabled reports whether enough keys are present to publish updates.
func (c *Config) PubNubEnabled() bool {
	return c.PubNubPublishKey != "" && c.PubNubSubscribeKey != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	// fall back to the default when the env value is malformed
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
