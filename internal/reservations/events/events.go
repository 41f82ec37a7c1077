// Package events announces reservation changes to other services.
package events

import (
	"context"
	"strconv"
	"time"

	"mizdooni/pkg/kafka"
	"mizdooni/pkg/logger"
	"mizdooni/pkg/middleware"
	"mizdooni/pkg/model"
)

const (
	TypeReservationCreated   = "reservation.created"
	TypeReservationCancelled = "reservation.cancelled"

	SchemaVersion = "1"
	Source        = "mizdooni"
)

type Publisher interface {
	ReservationCreated(ctx context.Context, r model.Reservation) error
	ReservationCancelled(ctx context.Context, r model.Reservation) error
	Close() error
}

type ReservationEvent struct {
	Type              string     `json:"type"`
	ReservationNumber int64      `json:"reservation_number"`
	UserID            string     `json:"user_id"`
	RestaurantID      int64      `json:"restaurant_id"`
	TableNumber       int        `json:"table_number"`
	People            int        `json:"people"`
	Start             time.Time  `json:"start"`
	End               time.Time  `json:"end"`
	CancelledAt       *time.Time `json:"cancelled_at,omitempty"`
}

// MessagePublisher is the part of the kafka producer the publisher needs.
type MessagePublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
	Close() error
}

type kafkaPublisher struct {
	producer MessagePublisher
	log      *logger.Logger
}

func NewKafkaPublisher(producer MessagePublisher, log *logger.Logger) Publisher {
	return &kafkaPublisher{
		producer: producer,
		log:      log,
	}
}

func (p *kafkaPublisher) ReservationCreated(ctx context.Context, r model.Reservation) error {
	return p.publish(ctx, TypeReservationCreated, r)
}

func (p *kafkaPublisher) ReservationCancelled(ctx context.Context, r model.Reservation) error {
	return p.publish(ctx, TypeReservationCancelled, r)
}

func (p *kafkaPublisher) publish(ctx context.Context, eventType string, r model.Reservation) error {
	msg, err := kafka.NewMessage().
		WithKey(strconv.FormatInt(r.RestaurantID, 10)).
		WithEventType(eventType).
		WithSchemaVersion(SchemaVersion).
		WithSource(Source).
		WithCorrelationID(middleware.RequestID(ctx)).
		WithValue(ReservationEvent{
			Type:              eventType,
			ReservationNumber: r.Number,
			UserID:            r.UserID,
			RestaurantID:      r.RestaurantID,
			TableNumber:       r.TableNumber,
			People:            r.People,
			Start:             r.Start,
			End:               r.End,
			CancelledAt:       r.CancelledAt,
		}).
		Build()
	if err != nil {
		p.log.Error("Failed to build reservation event",
			"event_type", eventType,
			"reservation_number", r.Number,
			"error", err,
		)
		return err
	}

	return p.producer.Publish(ctx, msg)
}

func (p *kafkaPublisher) Close() error {
	return p.producer.Close()
}

type nopPublisher struct{}

// NewNopPublisher returns a Publisher that drops every event, used when events are disabled.
func NewNopPublisher() Publisher {
	return nopPublisher{}
}

func (nopPublisher) ReservationCreated(context.Context, model.Reservation) error   { return nil }
func (nopPublisher) ReservationCancelled(context.Context, model.Reservation) error { return nil }
func (nopPublisher) Close() error                                                  { return nil }
