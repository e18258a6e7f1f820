package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config is the whole-app configuration, loaded from the environment.
type Config struct {
	Port string

	JWTSecret string

	GoEnv    string // dev/prod
	LogLevel string

	// Kafka and Elasticsearch are optional; when the addresses are empty the
	// corresponding features are disabled at wiring time.
	KafkaBrokers []string
	ESURL        string
	ESUser       string
	ESPassword   string

	// On-chain payment parameters.
	ChainID          int64
	ChainName        string
	TokenSymbol      string
	TokenAddress     string
	PaymentProcessor string
}

func Load() (Config, error) {
	cfg := Config{
		Port: getenv("PORT", "8080"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		GoEnv:    getenv("GO_ENV", "dev"),
		LogLevel: getenv("LOG_LEVEL", "info"),

		ESURL:      os.Getenv("ES_URL"),
		ESUser:     os.Getenv("ES_USER"),
		ESPassword: os.Getenv("ES_PASSWORD"),

		ChainName:        getenv("CHAIN_NAME", "polygon"),
		TokenSymbol:      getenv("TOKEN_SYMBOL", "MBONE"),
		TokenAddress:     os.Getenv("MBONE_TOKEN_ADDRESS"),
		PaymentProcessor: getenv("PAYMENT_PROCESSOR_ADDRESS", "demo-contract"),
	}

	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		cfg.KafkaBrokers = strings.Split(v, ",")
	}

	chainID, err := atoiDefault("CHAIN_ID", 137)
	if err != nil {
		return Config{}, err
	}
	cfg.ChainID = chainID

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func atoiDefault(key string, def int64) (int64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	i, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	return i, nil
}
