package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	pubsub "cloud.google.com/go/pubsub/v2"

	"github.com/whatscart/whatscart-backend/pkg/logger"
)

// Event types emitted on the cart events topic.
const (
	TypeCartShared      = "cart.shared"
	TypeOrderDispatched = "order.dispatched"
)

// Event is the envelope published for downstream consumers.
type Event struct {
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload"`
}

// Publisher emits domain events. Implementations must be safe for concurrent use.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// PubSubPublisher publishes events to a Cloud Pub/Sub topic.
type PubSubPublisher struct {
	publisher *pubsub.Publisher
	logg      *logger.Logger
}

// NewPubSubPublisher wraps a topic publisher handle. A nil handle is rejected;
// callers who run without Pub/Sub should pass a nil Publisher to services
// instead, which treats publishing as a no-op.
func NewPubSubPublisher(publisher *pubsub.Publisher, logg *logger.Logger) (*PubSubPublisher, error) {
	if publisher == nil {
		return nil, fmt.Errorf("pubsub publisher handle required")
	}
	return &PubSubPublisher{publisher: publisher, logg: logg}, nil
}

// Publish marshals the event and waits for the broker acknowledgment.
func (p *PubSubPublisher) Publish(ctx context.Context, event Event) error {
	if event.Type == "" {
		return fmt.Errorf("event type is required")
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	result := p.publisher.Publish(ctx, &pubsub.Message{
		Data: data,
		Attributes: map[string]string{
			"event_type": event.Type,
		},
	})
	if _, err := result.Get(ctx); err != nil {
		return fmt.Errorf("publish %s: %w", event.Type, err)
	}

	if p.logg != nil {
		p.logg.Info(p.logg.WithField(ctx, "event_type", event.Type), "event published")
	}
	return nil
}

// PublishBestEffort logs instead of failing when the broker rejects the event.
// Cart flows treat events as advisory.
func PublishBestEffort(ctx context.Context, pub Publisher, logg *logger.Logger, event Event) {
	if pub == nil {
		return
	}
	if err := pub.Publish(ctx, event); err != nil && logg != nil {
		logg.Warn(logg.WithField(ctx, "event_type", event.Type), "event publish failed")
	}
}
