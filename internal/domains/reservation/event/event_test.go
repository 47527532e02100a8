package event_test

import (
	"context"
	"rental/config"
	"rental/infras/kafka"
	kafkaMocks "rental/infras/kafka/mocks"
	otelMocks "rental/infras/otel/mocks"
	"rental/internal/domains/reservation/event"
	"rental/internal/domains/reservation/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newEntry(t *testing.T) model.Entry {
	t.Helper()

	interval, err := model.ParseInterval("2025-06-01", "2025-06-10")
	require.NoError(t, err)

	return model.NewBooking("p1", "g1", interval, model.GuestInfo{}, "g1", time.Now())
}

func TestNew(t *testing.T) {
	entry := newEntry(t)
	at := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	evt := event.New(event.BookingCreated, entry, "g1", at)

	assert.Equal(t, event.BookingCreated, evt.Type)
	assert.Equal(t, entry.ID, evt.EntryID)
	assert.Equal(t, "BOOKING", evt.Kind)
	assert.Equal(t, "ACTIVE", evt.Status)
	assert.Equal(t, "2025-06-01", evt.StartDate)
	assert.Equal(t, "2025-06-10", evt.EndDate)
	assert.Equal(t, 10, evt.Days)
	assert.Equal(t, at, evt.OccurredAt)
}

func TestPublisher_Kafka(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := kafkaMocks.NewMockClient(ctrl)

	cfg := &config.Config{}
	cfg.Kafka.Enable = true
	cfg.Kafka.Topic = "reservation-events"

	evt := event.New(event.BlockCreated, newEntry(t), "owner", time.Now())

	client.EXPECT().
		SendMessages(gomock.Any(), "reservation-events", kafka.Message{
			Key:     "p1",
			Value:   evt,
			Headers: map[string]string{"event-type": "block.created"},
		}).
		Return(nil)

	publisher := event.NewPublisher(cfg, client, otelMocks.NewOtel())

	require.NoError(t, publisher.Publish(context.Background(), evt))
}

func TestPublisher_KafkaError(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := kafkaMocks.NewMockClient(ctrl)

	cfg := &config.Config{}
	cfg.Kafka.Enable = true

	client.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(assert.AnError)

	publisher := event.NewPublisher(cfg, client, otelMocks.NewOtel())

	err := publisher.Publish(context.Background(), event.New(event.BookingDeleted, newEntry(t), "g1", time.Now()))
	assert.ErrorIs(t, err, assert.AnError)
}

func TestPublisher_Disabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := kafkaMocks.NewMockClient(ctrl)

	publisher := event.NewPublisher(&config.Config{}, client, otelMocks.NewOtel())

	assert.NoError(t, publisher.Publish(context.Background(), event.New(event.BookingCreated, newEntry(t), "g1", time.Now())))
}

func TestPublisher_BoundsSlowBroker(t *testing.T) {
	tests := []struct {
		name          string
		timeoutMillis int
		wantTimeout   time.Duration
	}{
		{name: "default timeout", wantTimeout: 500 * time.Millisecond},
		{name: "configured timeout", timeoutMillis: 20, wantTimeout: 20 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			client := kafkaMocks.NewMockClient(ctrl)

			cfg := &config.Config{}
			cfg.Kafka.Enable = true
			cfg.Kafka.PublishTimeoutMillis = tt.timeoutMillis

			client.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(ctx context.Context, _ string, _ ...kafka.Message) error {
					deadline, ok := ctx.Deadline()
					require.True(t, ok)
					assert.LessOrEqual(t, time.Until(deadline), tt.wantTimeout)

					// a broker that never answers
					<-ctx.Done()

					return ctx.Err()
				})

			publisher := event.NewPublisher(cfg, client, otelMocks.NewOtel())

			started := time.Now()
			err := publisher.Publish(context.Background(), event.New(event.BookingCanceled, newEntry(t), "g1", time.Now()))

			require.ErrorIs(t, err, context.DeadlineExceeded)
			assert.Less(t, time.Since(started), tt.wantTimeout+time.Second)
		})
	}
}
