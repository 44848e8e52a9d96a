// Package sink provides the optional external destinations for analytics
// data: a Kafka event publisher and a Postgres snapshot store.
package sink

import (
	"context"
	"log/slog"

	"github.com/Damatnic/astral-turf-helpcenter/internal/analytics"
	"github.com/Damatnic/astral-turf-helpcenter/pkg/kafka"
	"github.com/Damatnic/astral-turf-helpcenter/pkg/logger"
	"github.com/Damatnic/astral-turf-helpcenter/pkg/resilience"
)

// KafkaPublisher forwards analytics events to a Kafka topic through a
// buffered channel so Track never blocks on the broker. Events are dropped
// with a warning when the buffer is full.
type KafkaPublisher struct {
	producer *kafka.Producer
	eventCh  chan analytics.Event
	retry    resilience.RetryConfig
	logger   *slog.Logger
	done     chan struct{}
}

// NewKafkaPublisher creates a publisher with the given buffer size.
func NewKafkaPublisher(producer *kafka.Producer, bufferSize int, maxAttempts int) *KafkaPublisher {
	if bufferSize <= 0 {
		bufferSize = 10000
	}
	return &KafkaPublisher{
		producer: producer,
		eventCh:  make(chan analytics.Event, bufferSize),
		retry:    resilience.RetryConfig{MaxAttempts: maxAttempts},
		logger:   logger.WithComponent("analytics-publisher"),
		done:     make(chan struct{}),
	}
}

// Start launches the background publish loop. It drains remaining buffered
// events when ctx is cancelled.
func (p *KafkaPublisher) Start(ctx context.Context) {
	go func() {
		defer close(p.done)
		for {
			select {
			case event, ok := <-p.eventCh:
				if !ok {
					return
				}
				p.publish(ctx, event)
			case <-ctx.Done():
				p.drainRemaining()
				return
			}
		}
	}()
	p.logger.Info("analytics publisher started", "buffer_size", cap(p.eventCh))
}

// Publish enqueues an event for background delivery. Never blocks.
func (p *KafkaPublisher) Publish(event analytics.Event) {
	select {
	case p.eventCh <- event:
	default:
		p.logger.Warn("analytics event dropped (buffer full)")
	}
}

// Close stops accepting events and waits for the publish loop to finish.
func (p *KafkaPublisher) Close() {
	close(p.eventCh)
	<-p.done
}

func (p *KafkaPublisher) publish(ctx context.Context, event analytics.Event) {
	err := resilience.Retry(ctx, "analytics-publish", p.retry, func() error {
		return p.producer.Publish(ctx, kafka.Event{
			Key:   string(event.Kind),
			Value: event,
		})
	})
	if err != nil {
		p.logger.Error("failed to publish analytics event", "kind", event.Kind, "error", err)
	}
}

func (p *KafkaPublisher) drainRemaining() {
	for {
		select {
		case event, ok := <-p.eventCh:
			if !ok {
				return
			}
			p.publish(context.Background(), event)
		default:
			return
		}
	}
}
