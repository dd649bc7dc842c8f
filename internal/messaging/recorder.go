package messaging

import (
	"context"
	"sync"
)

// Recorder is a test double for MessagePublisher. It reports itself
// connected, delegates nothing, and records every publish so tests can
// assert on delivered topics and payloads.
type Recorder struct {
	mu        sync.Mutex
	published []PublishedMessage
	closed    bool

	// PublishErr, when set, is returned by every Publish call.
	PublishErr error
	// Health is returned by CheckHealth.
	Health HealthInfo
}

// PublishedMessage records a message sent through Publish.
type PublishedMessage struct {
	Topic   string
	Payload []byte
}

var _ MessagePublisher = (*Recorder)(nil)

func NewRecorder() *Recorder {
	return &Recorder{}
}

// Publish records the message. The empty-topic check matches the Facade so
// tests exercise the same contract.
func (r *Recorder) Publish(_ context.Context, topic string, payload []byte) error {
	if topic == "" {
		return ErrEmptyTopic
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.PublishErr != nil {
		return r.PublishErr
	}

	buf := make([]byte, len(payload))
	copy(buf, payload)
	r.published = append(r.published, PublishedMessage{Topic: topic, Payload: buf})
	return nil
}

func (r *Recorder) CheckHealth(_ context.Context) (HealthInfo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.Health, nil
}

func (r *Recorder) State() ClientState {
	return StateConnected
}

func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}

// Published returns a copy of all recorded messages.
func (r *Recorder) Published() []PublishedMessage {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]PublishedMessage, len(r.published))
	copy(out, r.published)
	return out
}

// Closed reports whether Close has been called.
func (r *Recorder) Closed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}
