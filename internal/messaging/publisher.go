// Package messaging provides the broker client facade used by the rest of
// the application to publish domain events.
//
// The facade wraps a concrete broker driver (Kafka, NATS or RabbitMQ) and
// absorbs broker unavailability at construction time: when the broker cannot
// be reached the client comes up in degraded mode and every publish becomes a
// logged no-op instead of an error. Callers never need to care whether a real
// broker is behind the interface.
package messaging

import "context"

// ClientState describes the lifecycle state of a messaging client.
//
// State is decided once during construction and never changes afterwards,
// so it can be read without synchronization.
type ClientState int

const (
	// StateUninitialized is the zero value, before construction completes.
	StateUninitialized ClientState = iota
	// StateConnected means the broker handshake succeeded and publishes are
	// delivered to the real broker.
	StateConnected
	// StateDegraded means the broker was unreachable (or test mode is on)
	// and publishes are logged no-ops.
	StateDegraded
)

func (s ClientState) String() string {
	switch s {
	case StateConnected:
		return "connected"
	case StateDegraded:
		return "degraded"
	default:
		return "uninitialized"
	}
}

// MessagePublisher is the interface consumed by application code that emits
// events. Both the real Facade and the test Recorder implement it.
type MessagePublisher interface {
	// Publish sends the payload to the topic. In degraded mode it logs and
	// returns nil. An empty topic is rejected before any network activity.
	Publish(ctx context.Context, topic string, payload []byte) error

	// CheckHealth reports broker metadata when connected. In degraded mode
	// it returns an empty HealthInfo and no error without touching the
	// network.
	CheckHealth(ctx context.Context) (HealthInfo, error)

	// State reports the state decided at construction time.
	State() ClientState

	// Close releases the underlying broker connection, if any.
	Close() error
}
