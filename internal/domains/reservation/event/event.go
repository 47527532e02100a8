package event

//go:generate go run go.uber.org/mock/mockgen -source=./event.go -destination=../mocks/event_mock.go -package=mocks

import (
	"context"
	"fmt"
	"rental/config"
	"rental/infras/kafka"
	"rental/infras/otel"
	"rental/internal/domains/reservation/model"
	"rental/shared/constant"
	"time"

	"github.com/rs/zerolog/log"
)

type Type string

const (
	BookingCreated     Type = "booking.created"
	BookingUpdated     Type = "booking.updated"
	BookingCanceled    Type = "booking.canceled"
	BookingReactivated Type = "booking.reactivated"
	BookingDeleted     Type = "booking.deleted"
	BlockCreated       Type = "block.created"
	BlockUpdated       Type = "block.updated"
	BlockDeleted       Type = "block.deleted"

	headerEventType = "event-type"

	defaultPublishTimeout = 500 * time.Millisecond
)

// Event is the record published after a reservation change commits.
type Event struct {
	Type       Type      `json:"type"`
	EntryID    string    `json:"entry_id"`
	PropertyID string    `json:"property_id"`
	Kind       string    `json:"kind"`
	Status     string    `json:"status"`
	StartDate  string    `json:"start_date"`
	EndDate    string    `json:"end_date"`
	Days       int       `json:"days"`
	Version    int64     `json:"version"`
	ActorID    string    `json:"actor_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

func New(eventType Type, entry model.Entry, actorID string, at time.Time) Event {
	return Event{
		Type:       eventType,
		EntryID:    entry.ID,
		PropertyID: entry.PropertyID,
		Kind:       string(entry.Kind),
		Status:     string(entry.Status),
		StartDate:  entry.StartDate.Format(constant.CalendarFormat),
		EndDate:    entry.EndDate.Format(constant.CalendarFormat),
		Days:       entry.Interval().Days(),
		Version:    entry.Version,
		ActorID:    actorID,
		OccurredAt: at,
	}
}

type Publisher interface {
	Publish(ctx context.Context, events ...Event) error
}

type kafkaPublisher struct {
	client  kafka.Client
	topic   string
	timeout time.Duration
	otel    otel.Otel
}

// NewPublisher publishes to Kafka when it is enabled and discards events otherwise.
func NewPublisher(cfg *config.Config, client kafka.Client, otel otel.Otel) Publisher {
	if !cfg.Kafka.Enable {
		log.Warn().Msg("Kafka disabled, reservation events will not be published")

		return noopPublisher{}
	}

	timeout := time.Duration(cfg.Kafka.PublishTimeoutMillis) * time.Millisecond
	if timeout <= 0 {
		timeout = defaultPublishTimeout
	}

	return &kafkaPublisher{
		client:  client,
		topic:   cfg.Kafka.Topic,
		timeout: timeout,
		otel:    otel,
	}
}

// Publish keys every message by property so consumers see one calendar in order.
// The write is already committed, so a slow broker only costs the publish timeout.
func (p *kafkaPublisher) Publish(ctx context.Context, events ...Event) (err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".Publish")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	messages := make([]kafka.Message, 0, len(events))
	for _, evt := range events {
		messages = append(messages, kafka.Message{
			Key:     evt.PropertyID,
			Value:   evt,
			Headers: map[string]string{headerEventType: string(evt.Type)},
		})
	}

	if err = p.client.SendMessages(ctx, p.topic, messages...); err != nil {
		return fmt.Errorf("failed to publish reservation events: %w", err)
	}

	return nil
}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, ...Event) error {
	return nil
}
