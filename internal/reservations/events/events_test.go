package events

import (
	"context"
	"testing"
	"time"

	"mizdooni/pkg/kafka"
	"mizdooni/pkg/logger"
	"mizdooni/pkg/middleware"
	"mizdooni/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingProducer struct {
	messages []kafka.Message
	closed   bool
}

func (p *recordingProducer) Publish(ctx context.Context, msg kafka.Message) error {
	p.messages = append(p.messages, msg)
	return nil
}

func (p *recordingProducer) Close() error {
	p.closed = true
	return nil
}

func TestKafkaPublisher_ReservationCreated(t *testing.T) {
	producer := &recordingProducer{}
	publisher := NewKafkaPublisher(producer, logger.Discard())

	start := time.Date(2030, 5, 1, 19, 0, 0, 0, time.UTC)
	r := model.Reservation{
		Number:       12,
		UserID:       "ali",
		RestaurantID: 3,
		TableNumber:  2,
		People:       4,
		Start:        start,
		End:          start.Add(2 * time.Hour),
		Status:       model.StatusConfirmed,
	}

	ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "req-9")

	require.NoError(t, publisher.ReservationCreated(ctx, r))
	require.Len(t, producer.messages, 1)

	msg := producer.messages[0]
	assert.Equal(t, "3", msg.Key)
	assert.Equal(t, TypeReservationCreated, msg.GetEventType())
	assert.Equal(t, "req-9", msg.GetCorrelationID())
	assert.NotEmpty(t, msg.GetEventID())

	var event ReservationEvent
	require.NoError(t, msg.DecodeValue(&event))
	assert.Equal(t, int64(12), event.ReservationNumber)
	assert.Equal(t, 2, event.TableNumber)
	assert.True(t, event.Start.Equal(start))
}

func TestKafkaPublisher_ReservationCancelled(t *testing.T) {
	producer := &recordingProducer{}
	publisher := NewKafkaPublisher(producer, logger.Discard())

	cancelledAt := time.Date(2030, 5, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, publisher.ReservationCancelled(context.Background(), model.Reservation{
		Number:       5,
		RestaurantID: 1,
		Status:       model.StatusCancelled,
		CancelledAt:  &cancelledAt,
	}))

	require.Len(t, producer.messages, 1)
	assert.Equal(t, TypeReservationCancelled, producer.messages[0].GetEventType())

	var event ReservationEvent
	require.NoError(t, producer.messages[0].DecodeValue(&event))
	require.NotNil(t, event.CancelledAt)
	assert.True(t, event.CancelledAt.Equal(cancelledAt))

	require.NoError(t, publisher.Close())
	assert.True(t, producer.closed)
}
