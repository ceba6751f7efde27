package kafka

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"

	"github.com/jammyops/parceltrack/internal/broker/messages"
)

type fakeWriter struct {
	last []kafka.Message
	err  error
}

func (w *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	w.last = append([]kafka.Message{}, msgs...)
	return w.err
}

func TestProducer_Publish(t *testing.T) {
	fw := &fakeWriter{}
	p := newProducerWithWriter(fw)

	evt := messages.ShipmentStatusUpdated{
		ShipmentID: "DN-1001",
		Carrier:    "UPS",
		Status:     "In Transit",
		StatusCode: "5",
	}
	payload, err := json.Marshal(evt)
	require.NoError(t, err)

	require.NoError(t, p.Publish(context.Background(), messages.TopicShipmentStatusUpdated, []byte(evt.ShipmentID), payload))
	require.Len(t, fw.last, 1)
	require.Equal(t, messages.TopicShipmentStatusUpdated, fw.last[0].Topic)
	require.Equal(t, []byte("DN-1001"), fw.last[0].Key)

	var got messages.ShipmentStatusUpdated
	require.NoError(t, json.Unmarshal(fw.last[0].Value, &got))
	require.Equal(t, evt, got)
}

func TestNewProducer(t *testing.T) {
	p := NewProducer([]string{"localhost:0"})
	require.NotNil(t, p)
}
