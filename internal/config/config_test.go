package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("KAFKA_BROKERS", "")
	t.Setenv("REDIS_ADDR", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StoreDriverMemory, cfg.Store.Driver)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "market.orders", cfg.Kafka.Topic)
	assert.False(t, cfg.Kafka.Enabled())
	assert.False(t, cfg.Redis.Enabled())
	assert.False(t, cfg.Orders.StrictTransitions)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("STORE_LATENCY", "300ms")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("ORDER_STRICT_TRANSITIONS", "true")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("ORDER_PUBLISH_TIMEOUT", "750ms")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StoreDriverPostgres, cfg.Store.Driver)
	assert.Equal(t, 300*time.Millisecond, cfg.Store.Latency)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.Orders.StrictTransitions)
	assert.Equal(t, 750*time.Millisecond, cfg.Orders.PublishTimeout)
	assert.True(t, cfg.Redis.Enabled())
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("STORE_DRIVER", "sqlite")

	_, err := Load()
	assert.Error(t, err)
}

func TestInvalidValuesFallBack(t *testing.T) {
	t.Setenv("DATABASE_MAX_OPEN_CONNS", "lots")
	t.Setenv("SERVER_READ_TIMEOUT", "soon")

	assert.Equal(t, 25, getEnvInt("DATABASE_MAX_OPEN_CONNS", 25))
	assert.Equal(t, 10*time.Second, getEnvDuration("SERVER_READ_TIMEOUT", 10*time.Second))
}
