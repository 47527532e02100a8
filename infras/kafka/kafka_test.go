package kafka_test

import (
	"rental/infras/kafka"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Type    string `json:"type"`
	EntryID string `json:"entry_id"`
}

func TestMessage_ToKafkaMessage(t *testing.T) {
	msg := kafka.Message{
		Key:     "property-1",
		Value:   payload{Type: "booking.created", EntryID: "e1"},
		Headers: map[string]string{"event-type": "booking.created"},
	}

	kafkaMsg, err := msg.ToKafkaMessage()
	require.NoError(t, err)

	assert.Equal(t, []byte("property-1"), kafkaMsg.Key)
	assert.JSONEq(t, `{"type":"booking.created","entry_id":"e1"}`, string(kafkaMsg.Value))
	require.Len(t, kafkaMsg.Headers, 1)
	assert.Equal(t, "event-type", kafkaMsg.Headers[0].Key)
	assert.Equal(t, []byte("booking.created"), kafkaMsg.Headers[0].Value)
}

func TestMessage_ToKafkaMessage_Unmarshalable(t *testing.T) {
	msg := kafka.Message{Key: "k", Value: make(chan int)}

	_, err := msg.ToKafkaMessage()
	assert.Error(t, err)
}
