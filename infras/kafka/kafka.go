package kafka

//go:generate go run go.uber.org/mock/mockgen -source=./kafka.go -destination=./mocks/kafka_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"rental/config"
	"time"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
)

const (
	writeTimeout        = 10 * time.Second
	defaultBatchTimeout = 10 * time.Millisecond
)

type Message struct {
	Key     string
	Value   any
	Headers map[string]string
}

func (m *Message) ToKafkaMessage() (kafkaGo.Message, error) {
	jsonValue, err := json.Marshal(m.Value)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal message value to JSON")

		return kafkaGo.Message{}, fmt.Errorf("failed to marshal message value to JSON: %w", err)
	}

	headers := make([]kafkaGo.Header, 0, len(m.Headers))
	for key, value := range m.Headers {
		headers = append(headers, kafkaGo.Header{Key: key, Value: []byte(value)})
	}

	return kafkaGo.Message{
		Key:     []byte(m.Key),
		Value:   jsonValue,
		Headers: headers,
	}, nil
}

type Client interface {
	SendMessages(ctx context.Context, topic string, messages ...Message) (err error)
	Close() error
}

type kafkaClientImpl struct {
	writer *kafkaGo.Writer
}

// New builds a writer shared by every topic. Messages with the same key land
// on the same partition, so events of one property stay ordered.
func New(config *config.Config) Client {
	log.Info().Strs("brokers", config.Kafka.Brokers).Bool("async", config.Kafka.Async).Msg("Kafka client initialized")

	return &kafkaClientImpl{
		writer: newWriter(config),
	}
}

// newWriter flushes partial batches after BatchTimeout, so a synchronous write
// returns as soon as the broker acknowledges it.
func newWriter(config *config.Config) *kafkaGo.Writer {
	transport := &kafkaGo.Transport{}
	if config.Kafka.SASL.Username != "" {
		transport.SASL = plain.Mechanism{
			Username: config.Kafka.SASL.Username,
			Password: config.Kafka.SASL.Password,
		}
	}

	batchTimeout := time.Duration(config.Kafka.BatchTimeoutMillis) * time.Millisecond
	if batchTimeout <= 0 {
		batchTimeout = defaultBatchTimeout
	}

	writer := &kafkaGo.Writer{
		Addr:                   kafkaGo.TCP(config.Kafka.Brokers...),
		Balancer:               &kafkaGo.Hash{},
		Transport:              transport,
		RequiredAcks:           kafkaGo.RequireOne,
		AllowAutoTopicCreation: true,
		WriteTimeout:           writeTimeout,
		BatchTimeout:           batchTimeout,
		Async:                  config.Kafka.Async,
	}

	if writer.Async {
		writer.Completion = logCompletion
	}

	return writer
}

func logCompletion(messages []kafkaGo.Message, err error) {
	if err != nil {
		log.Error().Err(err).Int("count", len(messages)).Msg("Failed to deliver messages to Kafka.")
	}
}

func (k *kafkaClientImpl) SendMessages(ctx context.Context, topic string, messages ...Message) (err error) {
	msgs := make([]kafkaGo.Message, 0, len(messages))

	for _, message := range messages {
		msg, err := message.ToKafkaMessage()
		if err != nil {
			log.Error().Err(err).Str("topic", topic).Msg("Failed to convert message to Kafka message.")

			return fmt.Errorf("failed to convert message to Kafka message: %w", err)
		}

		msg.Topic = topic
		msgs = append(msgs, msg)
	}

	err = k.writer.WriteMessages(ctx, msgs...)
	if err != nil {
		log.Error().Err(err).Str("topic", topic).Msg("Failed to send message to Kafka.")

		return fmt.Errorf("failed to send message to Kafka: %w", err)
	}

	log.Debug().Str("topic", topic).Int("count", len(msgs)).Msg("Sent message successfully.")

	return nil
}

func (k *kafkaClientImpl) Close() error {
	if err := k.writer.Close(); err != nil {
		return fmt.Errorf("failed to close Kafka writer: %w", err)
	}

	return nil
}
