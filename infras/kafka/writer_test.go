package kafka

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"rental/config"
)

func TestNewWriter(t *testing.T) {
	tests := []struct {
		name             string
		batchMillis      int
		async            bool
		wantBatchTimeout time.Duration
	}{
		{name: "unset batch timeout falls back", wantBatchTimeout: defaultBatchTimeout},
		{name: "configured batch timeout", batchMillis: 25, wantBatchTimeout: 25 * time.Millisecond},
		{name: "async writer", batchMillis: 5, async: true, wantBatchTimeout: 5 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{}
			cfg.Kafka.Brokers = []string{"localhost:9092"}
			cfg.Kafka.BatchTimeoutMillis = tt.batchMillis
			cfg.Kafka.Async = tt.async

			writer := newWriter(cfg)

			// kafka-go would otherwise hold every synchronous write for a full second
			assert.Equal(t, tt.wantBatchTimeout, writer.BatchTimeout)
			assert.Less(t, writer.BatchTimeout, time.Second)
			assert.Equal(t, tt.async, writer.Async)
			assert.Equal(t, tt.async, writer.Completion != nil)
		})
	}
}
