package messaging

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromEnv_Defaults(t *testing.T) {
	t.Setenv("BROKER_DRIVER", "")
	t.Setenv("BROKER_ADDRS", "")
	t.Setenv("BROKER_CLIENT_ID", "")
	t.Setenv("BROKER_PROBE_TIMEOUT", "")
	t.Setenv("BROKER_TEST_MODE", "")

	cfg, warnings := LoadConfigFromEnv()

	assert.Empty(t, warnings)
	assert.Equal(t, "kafka", cfg.Driver)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Addrs)
	assert.Equal(t, "myapp", cfg.ClientID)
	assert.Equal(t, 1*time.Second, cfg.ProbeTimeout)
	assert.False(t, cfg.TestMode)
}

func TestLoadConfigFromEnv_CustomValues(t *testing.T) {
	t.Setenv("BROKER_DRIVER", "nats")
	t.Setenv("BROKER_ADDRS", "broker-1:4222, broker-2:4222")
	t.Setenv("BROKER_CLIENT_ID", "bookshelf-api")
	t.Setenv("BROKER_PROBE_TIMEOUT", "5s")
	t.Setenv("BROKER_TEST_MODE", "true")

	cfg, warnings := LoadConfigFromEnv()

	assert.Empty(t, warnings)
	assert.Equal(t, "nats", cfg.Driver)
	assert.Equal(t, []string{"broker-1:4222", "broker-2:4222"}, cfg.Addrs)
	assert.Equal(t, "bookshelf-api", cfg.ClientID)
	assert.Equal(t, 5*time.Second, cfg.ProbeTimeout)
	assert.True(t, cfg.TestMode)
}

func TestLoadConfigFromEnv_InvalidAddrsFallsBack(t *testing.T) {
	t.Setenv("BROKER_ADDRS", "not-an-endpoint")

	cfg, warnings := LoadConfigFromEnv()

	assert.Equal(t, []string{"localhost:9092"}, cfg.Addrs)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "BROKER_ADDRS")
}

func TestLoadConfigFromEnv_InvalidTimeoutFallsBack(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{
			name:  "not a duration",
			value: "abc",
		},
		{
			name:  "below minimum",
			value: "10ms",
		},
		{
			name:  "above maximum",
			value: "5m",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("BROKER_PROBE_TIMEOUT", tt.value)

			cfg, warnings := LoadConfigFromEnv()

			assert.Equal(t, DefaultProbeTimeout, cfg.ProbeTimeout)
			require.Len(t, warnings, 1)
			assert.Contains(t, warnings[0], "BROKER_PROBE_TIMEOUT")
		})
	}
}

func TestLoadConfigFromEnv_InvalidTestModeFallsBack(t *testing.T) {
	t.Setenv("BROKER_TEST_MODE", "maybe")

	cfg, warnings := LoadConfigFromEnv()

	assert.False(t, cfg.TestMode)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "BROKER_TEST_MODE")
}

func TestValidateAddrs(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{
			name: "single endpoint",
			raw:  "localhost:9092",
		},
		{
			name: "multiple endpoints",
			raw:  "broker-1:9092,broker-2:9092,broker-3:9092",
		},
		{
			name: "endpoints with spaces",
			raw:  "broker-1:9092, broker-2:9092",
		},
		{
			name:    "missing port",
			raw:     "localhost",
			wantErr: true,
		},
		{
			name:    "empty entry",
			raw:     "localhost:9092,,other:9092",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateAddrs(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSplitAddrs(t *testing.T) {
	assert.Equal(t, []string{"a:1", "b:2"}, splitAddrs("a:1, b:2"))
	assert.Equal(t, []string{"a:1"}, splitAddrs("a:1"))
	assert.Empty(t, splitAddrs(""))
}
