package nats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookshelf/internal/messaging/driver"
)

func TestRegistered(t *testing.T) {
	assert.Contains(t, driver.Drivers(), "nats")
}

func TestNew_NoAddresses(t *testing.T) {
	_, err := New(driver.Config{})
	require.ErrorIs(t, err, driver.ErrNoAddresses)
}

func TestNew_Unreachable(t *testing.T) {
	_, err := New(driver.Config{
		Addrs:   []string{"127.0.0.1:1"},
		Timeout: 500 * time.Millisecond,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connect to")
}

func TestServerURL(t *testing.T) {
	tests := []struct {
		addr string
		want string
	}{
		{"localhost:4222", "nats://localhost:4222"},
		{"localhost", "nats://localhost:4222"},
		{"nats://broker:4222", "nats://broker:4222"},
		{"tls://broker:4222", "tls://broker:4222"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, serverURL(tt.addr))
	}
}
