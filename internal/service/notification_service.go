package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

// Domain event types published for the notification consumers.
const (
	EventAppointmentCreated   = "appointment.created"
	EventAppointmentCancelled = "appointment.cancelled"
	EventAppointmentCompleted = "appointment.completed"
	EventReferralCreated      = "referral.created"
	EventReferralDecided      = "referral.decided"
)

// Event is the payload published to the notification exchange.
type Event struct {
	Type           string     `json:"type"`
	AppointmentID  *uuid.UUID `json:"appointment_id,omitempty"`
	ReferralID     *uuid.UUID `json:"referral_id,omitempty"`
	PatientID      uuid.UUID  `json:"patient_id"`
	PractitionerID uuid.UUID  `json:"practitioner_id"`
	OccurredAt     time.Time  `json:"occurred_at"`
}

// NotificationDispatcher delivers domain events to interested consumers.
// Delivery is best-effort: failures are logged and never surfaced to the
// caller, because the state change that produced the event has already
// committed.
type NotificationDispatcher interface {
	Notify(ctx context.Context, event Event)
}

type rabbitMQDispatcher struct {
	channel  *amqp091.Channel
	exchange string
	log      *logrus.Logger
}

// NewRabbitMQDispatcher declares the topic exchange and returns a
// dispatcher publishing to it with the event type as routing key.
func NewRabbitMQDispatcher(conn *amqp091.Connection, exchange string, log *logrus.Logger) (NotificationDispatcher, error) {
	channel, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	if err := channel.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		return nil, err
	}

	return &rabbitMQDispatcher{
		channel:  channel,
		exchange: exchange,
		log:      log,
	}, nil
}

func (d *rabbitMQDispatcher) Notify(ctx context.Context, event Event) {
	body, err := json.Marshal(event)
	if err != nil {
		d.log.Warnf("Failed to marshal event %s: %+v", event.Type, err)
		return
	}

	publishCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = d.channel.PublishWithContext(publishCtx, d.exchange, event.Type, false, false, amqp091.Publishing{
		ContentType: "application/json",
		Timestamp:   time.Now(),
		Body:        body,
	})
	if err != nil {
		// Best-effort only. The booking already committed.
		d.log.Warnf("Failed to publish event %s (non-fatal): %+v", event.Type, err)
		return
	}

	d.log.Infof("Published event %s", event.Type)
}

type noopDispatcher struct{}

// NewNoopDispatcher returns a dispatcher that drops all events. Used when
// RabbitMQ is not configured and in tests.
func NewNoopDispatcher() NotificationDispatcher {
	return &noopDispatcher{}
}

func (d *noopDispatcher) Notify(ctx context.Context, event Event) {}
