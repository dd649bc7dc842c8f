// Package driver defines the broker driver abstraction used by the messaging
// facade and a registry of named driver factories. Concrete drivers live in
// subpackages and register themselves on import.
package driver

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"
)

// Sentinel errors for driver creation.
var (
	// ErrUnknownDriver indicates that no factory is registered under the requested name
	ErrUnknownDriver = errors.New("unknown broker driver")

	// ErrNoAddresses indicates that the configuration carries no broker endpoints
	ErrNoAddresses = errors.New("no broker addresses configured")
)

// BrokerInfo identifies a single broker node in the cluster.
type BrokerInfo struct {
	ID   int
	Host string
	Port int
}

// Metadata is a driver's current view of the broker cluster. Drivers fill
// only the fields their protocol exposes; the zero value is a valid "no
// information" result.
type Metadata struct {
	ClusterID string
	Brokers   []BrokerInfo
	Topics    []string
}

// Driver is the minimal publish-side client the facade delegates to.
// Implementations wrap one broker client library and are safe for concurrent
// use after construction.
type Driver interface {
	// Probe performs a lightweight liveness handshake against the cluster.
	// It must respect the context deadline and return promptly on failure.
	Probe(ctx context.Context) error

	// Send delivers payload to topic and blocks until the broker accepts it
	// or the context is done. The payload is passed through unmodified.
	Send(ctx context.Context, topic string, payload []byte) error

	// Metadata fetches the current cluster view.
	Metadata(ctx context.Context) (Metadata, error)

	// Close releases the underlying connection. Safe to call once.
	Close() error
}

// Config carries the connection settings shared by all drivers.
// Timeout bounds dials and handshakes performed by the driver itself.
type Config struct {
	Addrs    []string
	ClientID string
	Timeout  time.Duration
}

// Factory constructs a concrete driver from config.
type Factory func(cfg Config) (Driver, error)

var (
	mu        sync.RWMutex
	factories = make(map[string]Factory)
)

// Register makes a driver factory available under the given name.
// Drivers call Register from an init function; registering the same name
// twice replaces the earlier factory.
func Register(name string, factory Factory) {
	mu.Lock()
	defer mu.Unlock()
	factories[name] = factory
}

// Create instantiates the named driver with the given configuration.
func Create(name string, cfg Config) (Driver, error) {
	if len(cfg.Addrs) == 0 {
		return nil, ErrNoAddresses
	}

	mu.RLock()
	factory, ok := factories[name]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, name)
	}

	return factory(cfg)
}

// Drivers returns the registered driver names in sorted order.
func Drivers() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
