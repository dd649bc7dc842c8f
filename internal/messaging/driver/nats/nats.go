// Package nats implements the broker driver for NATS using nats-io/nats.go.
// It registers itself under the name "nats".
package nats

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/nats-io/nats.go"

	"bookshelf/internal/messaging/driver"
)

func init() {
	driver.Register("nats", func(cfg driver.Config) (driver.Driver, error) {
		return New(cfg)
	})
}

// Driver holds one NATS connection shared across all Send calls.
// Core NATS publishes are fire-and-forget; Send flushes the connection so
// delivery failures surface synchronously to the caller.
type Driver struct {
	conn *nats.Conn

	mu     sync.Mutex
	closed bool
}

// New connects to the configured servers. The dial is bounded by cfg.Timeout,
// so construction itself acts as the initial handshake.
func New(cfg driver.Config) (*Driver, error) {
	if len(cfg.Addrs) == 0 {
		return nil, driver.ErrNoAddresses
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 1 * time.Second
	}

	urls := make([]string, 0, len(cfg.Addrs))
	for _, addr := range cfg.Addrs {
		urls = append(urls, serverURL(addr))
	}

	conn, err := nats.Connect(
		strings.Join(urls, ","),
		nats.Name(cfg.ClientID),
		nats.Timeout(timeout),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to %q: %w", strings.Join(urls, ","), err)
	}

	return &Driver{conn: conn}, nil
}

// Probe round-trips a flush to verify the server is responsive.
func (d *Driver) Probe(ctx context.Context) error {
	if err := d.conn.FlushWithContext(ctx); err != nil {
		return fmt.Errorf("flush connection: %w", err)
	}
	return nil
}

// Send publishes the payload on the subject and flushes to confirm receipt.
func (d *Driver) Send(ctx context.Context, topic string, payload []byte) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return fmt.Errorf("nats driver is closed")
	}
	d.mu.Unlock()

	if err := d.conn.Publish(topic, payload); err != nil {
		return fmt.Errorf("publish to %q: %w", topic, err)
	}
	if err := d.conn.FlushWithContext(ctx); err != nil {
		return fmt.Errorf("flush publish to %q: %w", topic, err)
	}
	return nil
}

// Metadata reports the currently connected server.
func (d *Driver) Metadata(ctx context.Context) (driver.Metadata, error) {
	if !d.conn.IsConnected() {
		return driver.Metadata{}, fmt.Errorf("connection lost to nats server")
	}

	md := driver.Metadata{ClusterID: d.conn.ConnectedClusterName()}
	if u, err := url.Parse(d.conn.ConnectedUrl()); err == nil {
		port := 0
		if p, perr := strconv.Atoi(u.Port()); perr == nil {
			port = p
		}
		md.Brokers = append(md.Brokers, driver.BrokerInfo{Host: u.Hostname(), Port: port})
	}
	return md, nil
}

// Close drains and closes the connection.
func (d *Driver) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil
	}
	d.closed = true

	d.conn.Close()
	return nil
}

// serverURL normalizes a host:port endpoint into a nats:// URL.
func serverURL(addr string) string {
	if strings.Contains(addr, "://") {
		return addr
	}
	if _, _, err := net.SplitHostPort(addr); err != nil {
		addr = net.JoinHostPort(addr, "4222")
	}
	return "nats://" + addr
}
