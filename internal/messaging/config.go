package messaging

import (
	"fmt"
	"net"
	"strings"
	"time"

	pkgconfig "bookshelf/internal/pkg/config"
)

// Configuration defaults. The broker address and client id defaults match
// the development docker-compose setup.
const (
	DefaultDriver       = "kafka"
	DefaultAddrs        = "localhost:9092"
	DefaultClientID     = "myapp"
	DefaultProbeTimeout = 1 * time.Second

	MinProbeTimeout = 100 * time.Millisecond
	MaxProbeTimeout = 30 * time.Second
)

// Config holds the facade construction parameters.
type Config struct {
	// Driver names the registered broker driver ("kafka", "nats", "rabbitmq").
	// An unknown name is not a configuration error: construction falls back
	// to degraded mode, same as an unreachable broker.
	Driver string

	// Addrs lists broker endpoints as host:port pairs.
	Addrs []string

	// ClientID identifies this client to the broker.
	ClientID string

	// ProbeTimeout bounds the initial connectivity probe.
	ProbeTimeout time.Duration

	// TestMode skips the broker entirely: the client starts degraded and
	// performs no network I/O at any point.
	TestMode bool
}

// LoadConfigFromEnv builds a Config from BROKER_* environment variables.
// Loading never fails: invalid values fall back to defaults and are
// reported as warnings for the caller to log.
//
//	BROKER_DRIVER        driver name (default "kafka")
//	BROKER_ADDRS         comma-separated host:port list (default "localhost:9092")
//	BROKER_CLIENT_ID     client identifier (default "myapp")
//	BROKER_PROBE_TIMEOUT probe timeout, 100ms to 30s (default "1s")
//	BROKER_TEST_MODE     "true" to start degraded without network I/O
func LoadConfigFromEnv() (Config, []string) {
	var warnings []string

	driverName := pkgconfig.LoadEnvString("BROKER_DRIVER", DefaultDriver)

	addrsResult := pkgconfig.LoadEnvWithFallback("BROKER_ADDRS", DefaultAddrs, validateAddrs)
	warnings = append(warnings, addrsResult.Warnings...)

	clientID := pkgconfig.LoadEnvString("BROKER_CLIENT_ID", DefaultClientID)

	timeoutResult := pkgconfig.LoadEnvDuration("BROKER_PROBE_TIMEOUT", DefaultProbeTimeout, func(d time.Duration) error {
		return pkgconfig.ValidateDuration(d, MinProbeTimeout, MaxProbeTimeout)
	})
	warnings = append(warnings, timeoutResult.Warnings...)

	testModeResult := pkgconfig.LoadEnvBool("BROKER_TEST_MODE", false)
	warnings = append(warnings, testModeResult.Warnings...)

	return Config{
		Driver:       driverName,
		Addrs:        splitAddrs(addrsResult.Value.(string)),
		ClientID:     clientID,
		ProbeTimeout: timeoutResult.Value.(time.Duration),
		TestMode:     testModeResult.Value.(bool),
	}, warnings
}

// validateAddrs checks that every comma-separated entry is a host:port pair.
func validateAddrs(raw string) error {
	for _, addr := range strings.Split(raw, ",") {
		addr = strings.TrimSpace(addr)
		if addr == "" {
			return fmt.Errorf("empty address in list")
		}
		if _, _, err := net.SplitHostPort(addr); err != nil {
			return fmt.Errorf("address '%s' is not host:port", addr)
		}
	}
	return nil
}

func splitAddrs(raw string) []string {
	parts := strings.Split(raw, ",")
	addrs := make([]string, 0, len(parts))
	for _, addr := range parts {
		addr = strings.TrimSpace(addr)
		if addr != "" {
			addrs = append(addrs, addr)
		}
	}
	return addrs
}
