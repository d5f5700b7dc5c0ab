package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"crypto-tracker/internal/models"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	LogLevel   string
	HTTP       HTTPConfig
	Telegram   TelegramConfig
	Kafka      KafkaConfig
	Alerts     AlertsConfig
	Health     HealthConfig
	PriceAPI   string
	Chains     map[models.ChainKey]ChainConfig
	ChainOrder []models.ChainKey
}

// HTTPConfig holds HTTP client configuration
type HTTPConfig struct {
	Timeout time.Duration
}

// TelegramConfig holds the chat transport credential
type TelegramConfig struct {
	Token string
}

// KafkaConfig holds the optional tracker-event stream configuration.
// An empty broker address disables the Kafka emitter.
type KafkaConfig struct {
	BrokerAddress string
	Topic         string
}

// AlertsConfig holds the periodic price-alert trigger configuration
type AlertsConfig struct {
	Schedule string
}

// HealthConfig holds the health endpoint configuration
type HealthConfig struct {
	Port int
}

// ChainConfig holds configuration for each supported blockchain
type ChainConfig struct {
	Key             models.ChainKey
	Name            string
	Kind            models.ChainKind
	APIURL          string
	ApiKey          string
	TokenID         string
	Decimals        int32
	DisplayDecimals int32
	RateLimit       float64
}

// ErrMissingToken is returned when the mandatory chat transport
// credential is absent. The process must not start without it.
var ErrMissingToken = errors.New("TELEGRAM_BOT_TOKEN is not set")

// Load loads configuration from environment variables
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// Not fatal, as env vars might be set externally
	}

	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		return nil, ErrMissingToken
	}

	config := &Config{
		LogLevel: getEnv("LOG_LEVEL", "info"),
		HTTP: HTTPConfig{
			Timeout: time.Duration(getEnvAsInt("HTTP_TIMEOUT", 30)) * time.Second,
		},
		Telegram: TelegramConfig{
			Token: token,
		},
		Kafka: KafkaConfig{
			BrokerAddress: getEnv("KAFKA_BROKER_ADDRESS", ""),
			Topic:         getEnv("KAFKA_TOPIC", "tracker-events"),
		},
		Alerts: AlertsConfig{
			Schedule: getEnv("ALERT_SCHEDULE", "@every 1h"),
		},
		Health: HealthConfig{
			Port: getEnvAsInt("HEALTH_PORT", 8080),
		},
		PriceAPI: getEnv("COINGECKO_API_URL", "https://api.coingecko.com/api/v3"),
		Chains:   make(map[models.ChainKey]ChainConfig),
	}

	// The chain set is fixed at startup and not user-mutable. ChainOrder
	// fixes the display order in prompts and reports.
	config.addChain(ChainConfig{
		Key:             models.Ethereum,
		Name:            "Ethereum",
		Kind:            models.KindAccount,
		APIURL:          getEnv("ETHEREUM_API_URL", "https://api.etherscan.io/api"),
		ApiKey:          getEnv("ETHERSCAN_API_KEY", ""),
		TokenID:         "ethereum",
		Decimals:        18,
		DisplayDecimals: 8,
		RateLimit:       getEnvAsFloat("ETHEREUM_RATE_LIMIT", 4),
	})

	config.addChain(ChainConfig{
		Key:             models.BSC,
		Name:            "Binance Smart Chain",
		Kind:            models.KindAccount,
		APIURL:          getEnv("BSC_API_URL", "https://api.bscscan.com/api"),
		ApiKey:          getEnv("BSCSCAN_API_KEY", ""),
		TokenID:         "binancecoin",
		Decimals:        18,
		DisplayDecimals: 8,
		RateLimit:       getEnvAsFloat("BSC_RATE_LIMIT", 4),
	})

	config.addChain(ChainConfig{
		Key:             models.Polygon,
		Name:            "Polygon",
		Kind:            models.KindAccount,
		APIURL:          getEnv("POLYGON_API_URL", "https://api.polygonscan.com/api"),
		ApiKey:          getEnv("POLYGONSCAN_API_KEY", ""),
		TokenID:         "matic-network",
		Decimals:        18,
		DisplayDecimals: 8,
		RateLimit:       getEnvAsFloat("POLYGON_RATE_LIMIT", 4),
	})

	// Bitcoin's explorer requires no API key in this design.
	config.addChain(ChainConfig{
		Key:             models.Bitcoin,
		Name:            "Bitcoin",
		Kind:            models.KindNativeCoin,
		APIURL:          getEnv("BITCOIN_API_URL", "https://api.blockchair.com/bitcoin"),
		ApiKey:          getEnv("BITCOIN_API_KEY", ""),
		TokenID:         "bitcoin",
		Decimals:        8,
		DisplayDecimals: 8,
		RateLimit:       getEnvAsFloat("BITCOIN_RATE_LIMIT", 4),
	})

	return config, nil
}

func (c *Config) addChain(chain ChainConfig) {
	c.Chains[chain.Key] = chain
	c.ChainOrder = append(c.ChainOrder, chain.Key)
}

// ResolveChain matches user-supplied text against the chain table,
// case-insensitively.
func (c *Config) ResolveChain(text string) (ChainConfig, bool) {
	chain, ok := c.Chains[models.ChainKey(strings.ToLower(strings.TrimSpace(text)))]
	return chain, ok
}

// ChainList returns the chain keys joined for user prompts,
// e.g. "ethereum, bsc, polygon, bitcoin".
func (c *Config) ChainList() string {
	keys := make([]string, 0, len(c.ChainOrder))
	for _, key := range c.ChainOrder {
		keys = append(keys, key.String())
	}
	return strings.Join(keys, ", ")
}

// IsChainToken reports whether the token identifier is the price-oracle
// id of one of the configured chains.
func (c *Config) IsChainToken(tokenID string) bool {
	for _, chain := range c.Chains {
		if chain.TokenID == tokenID {
			return true
		}
	}
	return false
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as int or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsFloat gets an environment variable as float64 or returns a default value
func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
