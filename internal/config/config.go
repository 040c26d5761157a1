package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	// MongoURI is intentionally not validated at load time: the connection
	// cache reads it on first use and raises a configuration error then.
	MongoURI string

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Geolocation acquisition settings for the claim flow.
	GeoProviderURL string
	GeoTimeout     time.Duration
	GeoMaxAge      time.Duration

	// Claim-event publishing (feature-flagged via KAFKA_BROKERS / KAFKA_ENABLED).
	KafkaBrokers     []string
	KafkaClaimsTopic string
	KafkaEnabled     bool
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	geoTimeout, err := parseDuration("GEO_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	geoMaxAge, err := parseDuration("GEO_MAX_AGE", "5m")
	if err != nil {
		return nil, err
	}

	brokers := parseBrokers(os.Getenv("KAFKA_BROKERS"))
	kafkaEnabled := len(brokers) > 0
	if v := os.Getenv("KAFKA_ENABLED"); v != "" {
		kafkaEnabled = v == "true"
	}

	cfg := &Config{
		MongoURI:        os.Getenv("MONGODB_URI"),
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":3001"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		GeoProviderURL: envOrDefault("GEO_PROVIDER_URL", "http://ip-api.com/json"),
		GeoTimeout:     geoTimeout,
		GeoMaxAge:      geoMaxAge,

		KafkaBrokers:     brokers,
		KafkaClaimsTopic: envOrDefault("KAFKA_CLAIMS_TOPIC", "data-claims"),
		KafkaEnabled:     kafkaEnabled,
	}

	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is not set")
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, def))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parseBrokers(s string) []string {
	var brokers []string
	for _, b := range strings.Split(s, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
