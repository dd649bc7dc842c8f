// Package kafka implements the broker driver for Apache Kafka using
// segmentio/kafka-go. It registers itself under the name "kafka".
package kafka

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"

	"bookshelf/internal/messaging/driver"
)

func init() {
	driver.Register("kafka", func(cfg driver.Config) (driver.Driver, error) {
		return New(cfg)
	})
}

// Driver wraps one kafka.Writer shared across all Send calls (the writer is
// thread-safe) plus a kafka.Client for metadata requests. The writer dials
// lazily, so construction performs no network I/O; the first Probe does.
type Driver struct {
	writer *kafka.Writer
	client *kafka.Client

	mu     sync.Mutex
	closed bool
}

// New creates a Kafka driver for the configured brokers.
func New(cfg driver.Config) (*Driver, error) {
	if len(cfg.Addrs) == 0 {
		return nil, driver.ErrNoAddresses
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 1 * time.Second
	}

	transport := &kafka.Transport{
		ClientID:    cfg.ClientID,
		DialTimeout: timeout,
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Addrs...),
		Balancer:               &kafka.LeastBytes{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
		Transport:              transport,
	}

	client := &kafka.Client{
		Addr:      kafka.TCP(cfg.Addrs...),
		Timeout:   timeout,
		Transport: transport,
	}

	return &Driver{writer: writer, client: client}, nil
}

// Probe fetches cluster metadata as a liveness handshake.
func (d *Driver) Probe(ctx context.Context) error {
	if _, err := d.client.Metadata(ctx, &kafka.MetadataRequest{}); err != nil {
		return fmt.Errorf("fetch cluster metadata: %w", err)
	}
	return nil
}

// Send writes one message to the topic and waits for broker acknowledgment.
func (d *Driver) Send(ctx context.Context, topic string, payload []byte) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return fmt.Errorf("kafka driver is closed")
	}
	d.mu.Unlock()

	msg := kafka.Message{Topic: topic, Value: payload}
	if err := d.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish to %q: %w", topic, err)
	}
	return nil
}

// Metadata returns the cluster view reported by the brokers.
func (d *Driver) Metadata(ctx context.Context) (driver.Metadata, error) {
	resp, err := d.client.Metadata(ctx, &kafka.MetadataRequest{})
	if err != nil {
		return driver.Metadata{}, fmt.Errorf("fetch cluster metadata: %w", err)
	}

	md := driver.Metadata{ClusterID: resp.ClusterID}
	for _, b := range resp.Brokers {
		md.Brokers = append(md.Brokers, driver.BrokerInfo{ID: b.ID, Host: b.Host, Port: b.Port})
	}
	for _, t := range resp.Topics {
		if t.Internal {
			continue
		}
		md.Topics = append(md.Topics, t.Name)
	}
	return md, nil
}

// Close flushes and closes the writer.
func (d *Driver) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil
	}
	d.closed = true

	if err := d.writer.Close(); err != nil {
		return fmt.Errorf("close writer: %w", err)
	}
	return nil
}
