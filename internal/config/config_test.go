package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Empty(t, cfg.MongoURI)
	assert.Equal(t, ":3001", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "http://ip-api.com/json", cfg.GeoProviderURL)
	assert.Equal(t, 10*time.Second, cfg.GeoTimeout)
	assert.Equal(t, 5*time.Minute, cfg.GeoMaxAge)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, "data-claims", cfg.KafkaClaimsTopic)
	assert.False(t, cfg.KafkaEnabled)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017/claims")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("GEO_PROVIDER_URL", "http://geo.internal/json")
	t.Setenv("GEO_TIMEOUT", "3s")
	t.Setenv("GEO_MAX_AGE", "1m")
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("KAFKA_CLAIMS_TOPIC", "custom-claims")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "mongodb://localhost:27017/claims", cfg.MongoURI)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "http://geo.internal/json", cfg.GeoProviderURL)
	assert.Equal(t, 3*time.Second, cfg.GeoTimeout)
	assert.Equal(t, 1*time.Minute, cfg.GeoMaxAge)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "custom-claims", cfg.KafkaClaimsTopic)
	assert.True(t, cfg.KafkaEnabled)
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_NegativeGeoTimeout(t *testing.T) {
	t.Setenv("GEO_TIMEOUT", "-1s")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEO_TIMEOUT")
}

func TestLoad_InvalidGeoMaxAge(t *testing.T) {
	t.Setenv("GEO_MAX_AGE", "bad")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEO_MAX_AGE")
}

func TestLoad_KafkaEnabledWithoutBrokers(t *testing.T) {
	t.Setenv("KAFKA_ENABLED", "true")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "KAFKA_BROKERS")
}

func TestLoad_KafkaBrokersImplyEnabled(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "localhost:9092")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.KafkaEnabled)
}

func TestLoad_KafkaExplicitlyDisabled(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "localhost:9092")
	t.Setenv("KAFKA_ENABLED", "false")
	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.KafkaEnabled)
}
