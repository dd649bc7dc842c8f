// Package rabbitmq implements the broker driver for RabbitMQ using the
// amqp091-go client. It registers itself under the name "rabbitmq".
//
// Messages are published through the default exchange with the topic as the
// routing key, so each topic maps to a durable queue of the same name. The
// queue is declared lazily on first publish.
package rabbitmq

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"strings"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"bookshelf/internal/messaging/driver"
)

func init() {
	driver.Register("rabbitmq", func(cfg driver.Config) (driver.Driver, error) {
		return New(cfg)
	})
}

type Driver struct {
	conn *amqp.Connection
	ch   *amqp.Channel

	host string
	port int

	mu       sync.Mutex
	closed   bool
	declared map[string]struct{}
}

// New dials the first configured endpoint and opens the publishing channel.
// The dial is bounded by cfg.Timeout.
func New(cfg driver.Config) (*Driver, error) {
	if len(cfg.Addrs) == 0 {
		return nil, driver.ErrNoAddresses
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 1 * time.Second
	}

	uri := brokerURI(cfg.Addrs[0])
	conn, err := amqp.DialConfig(uri, amqp.Config{
		Dial:       amqp.DefaultDial(timeout),
		Properties: amqp.Table{"connection_name": cfg.ClientID},
	})
	if err != nil {
		return nil, fmt.Errorf("connect to %q: %w", uri, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	host, port := splitEndpoint(cfg.Addrs[0])
	return &Driver{
		conn:     conn,
		ch:       ch,
		host:     host,
		port:     port,
		declared: make(map[string]struct{}),
	}, nil
}

// Probe opens and closes a throwaway channel, which round-trips with the
// server without touching the publishing channel.
func (d *Driver) Probe(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	ch, err := d.conn.Channel()
	if err != nil {
		return fmt.Errorf("open probe channel: %w", err)
	}
	if err := ch.Close(); err != nil {
		return fmt.Errorf("close probe channel: %w", err)
	}
	return nil
}

// Send publishes the payload to the queue named after the topic, declaring
// the queue on first use.
func (d *Driver) Send(ctx context.Context, topic string, payload []byte) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return fmt.Errorf("rabbitmq driver is closed")
	}
	if _, ok := d.declared[topic]; !ok {
		if _, err := d.ch.QueueDeclare(topic, true, false, false, false, nil); err != nil {
			d.mu.Unlock()
			return fmt.Errorf("declare queue %q: %w", topic, err)
		}
		d.declared[topic] = struct{}{}
	}
	d.mu.Unlock()

	err := d.ch.PublishWithContext(ctx, "", topic, false, false, amqp.Publishing{
		ContentType: "application/octet-stream",
		Timestamp:   time.Now(),
		Body:        payload,
	})
	if err != nil {
		return fmt.Errorf("publish to %q: %w", topic, err)
	}
	return nil
}

// Metadata reports the cluster name advertised by the server during the
// connection handshake.
func (d *Driver) Metadata(ctx context.Context) (driver.Metadata, error) {
	if d.conn.IsClosed() {
		return driver.Metadata{}, fmt.Errorf("connection lost to rabbitmq server")
	}

	md := driver.Metadata{
		Brokers: []driver.BrokerInfo{{Host: d.host, Port: d.port}},
	}
	if name, ok := d.conn.Properties["cluster_name"].(string); ok {
		md.ClusterID = name
	}
	return md, nil
}

// Close shuts down the channel and the connection.
func (d *Driver) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil
	}
	d.closed = true

	if err := d.ch.Close(); err != nil {
		d.conn.Close()
		return fmt.Errorf("close channel: %w", err)
	}
	if err := d.conn.Close(); err != nil {
		return fmt.Errorf("close connection: %w", err)
	}
	return nil
}

// brokerURI normalizes a host:port endpoint into an amqp:// URI.
func brokerURI(addr string) string {
	if strings.Contains(addr, "://") {
		return addr
	}
	if _, _, err := net.SplitHostPort(addr); err != nil {
		addr = net.JoinHostPort(addr, "5672")
	}
	return "amqp://" + addr
}

func splitEndpoint(addr string) (string, int) {
	addr = strings.TrimPrefix(addr, "amqp://")
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return addr, 5672
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return host, 5672
	}
	return host, port
}
