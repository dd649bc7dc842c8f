package messaging

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"bookshelf/internal/messaging/driver"
	"bookshelf/internal/observability/metrics"
)

// HealthInfo describes the broker as reported by its metadata endpoint.
type HealthInfo = driver.Metadata

// Facade is the broker client handed to application code. It decides once,
// at construction, whether it talks to a real broker (connected) or swallows
// publishes as logged no-ops (degraded), and never changes its mind.
//
// The state field is written before the facade is shared and only read
// afterwards, so no locking is needed.
type Facade struct {
	cfg    Config
	logger *slog.Logger
	state  ClientState
	drv    driver.Driver
}

var _ MessagePublisher = (*Facade)(nil)

// New builds a facade and probes the broker. It never returns an error:
// every construction failure, from an unknown driver name to an unreachable
// broker, is absorbed into degraded mode with a single warning. In test mode
// the probe is skipped entirely and the facade starts degraded without any
// network I/O.
func New(cfg Config, logger *slog.Logger) *Facade {
	if logger == nil {
		logger = slog.Default()
	}
	f := &Facade{cfg: cfg, logger: logger}

	if cfg.TestMode {
		f.state = StateDegraded
		metrics.SetMessagingDegraded(true)
		logger.Info("messaging client in test mode, running degraded",
			slog.String("driver", cfg.Driver),
		)
		return f
	}

	timeout := cfg.ProbeTimeout
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}

	drv, err := driver.Create(cfg.Driver, driver.Config{
		Addrs:    cfg.Addrs,
		ClientID: cfg.ClientID,
		Timeout:  timeout,
	})
	if err == nil {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		err = drv.Probe(ctx)
		cancel()
		if err != nil {
			drv.Close()
		}
	}

	if err != nil {
		f.state = StateDegraded
		metrics.SetMessagingDegraded(true)
		logger.Warn("message broker unavailable, falling back to degraded mode",
			slog.String("driver", cfg.Driver),
			slog.String("addrs", strings.Join(cfg.Addrs, ",")),
			slog.Any("error", err),
		)
		return f
	}

	f.drv = drv
	f.state = StateConnected
	metrics.SetMessagingDegraded(false)
	logger.Info("message broker connected",
		slog.String("driver", cfg.Driver),
		slog.String("addrs", strings.Join(cfg.Addrs, ",")),
	)
	return f
}

// Publish sends the payload to the topic. An empty topic is rejected before
// any logging or network activity. In degraded mode the message is dropped:
// one debug line records the topic and payload, and the call reports success
// so callers behave identically with or without a broker. When connected,
// broker errors are returned to the caller.
func (f *Facade) Publish(ctx context.Context, topic string, payload []byte) error {
	if topic == "" {
		return ErrEmptyTopic
	}

	if f.state != StateConnected {
		metrics.RecordMessageDropped(topic)
		f.logger.Debug("degraded mode, message dropped",
			slog.String("topic", topic),
			slog.String("payload", string(payload)),
		)
		return nil
	}

	start := time.Now()
	if err := f.drv.Send(ctx, topic, payload); err != nil {
		metrics.RecordMessagePublishFailure(f.cfg.Driver, topic)
		f.logger.Warn("message publish failed",
			slog.String("topic", topic),
			slog.Any("error", err),
		)
		return fmt.Errorf("publish to %q: %w", topic, err)
	}

	metrics.RecordMessagePublished(f.cfg.Driver, topic, time.Since(start))
	f.logger.Info("message published",
		slog.String("topic", topic),
		slog.Int("bytes", len(payload)),
	)
	return nil
}

// CheckHealth fetches broker metadata when connected. In degraded mode it
// reports an empty HealthInfo with no error and performs no network I/O.
func (f *Facade) CheckHealth(ctx context.Context) (HealthInfo, error) {
	if f.state != StateConnected {
		return HealthInfo{}, nil
	}

	info, err := f.drv.Metadata(ctx)
	if err != nil {
		return HealthInfo{}, fmt.Errorf("fetch broker metadata: %w", err)
	}
	return info, nil
}

// State reports the state decided at construction time.
func (f *Facade) State() ClientState {
	return f.state
}

// Close releases the broker connection. In degraded mode there is nothing
// to release.
func (f *Facade) Close() error {
	if f.drv == nil {
		return nil
	}
	return f.drv.Close()
}
