package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Domain events published for downstream consumers (analytics, audit).
const (
	EventCandidateCreated     = "candidate.created"
	EventCandidateMatched     = "candidate.matched"
	EventInterviewScheduled   = "interview.scheduled"
	EventInterviewRescheduled = "interview.rescheduled"
)

// Event is the wire shape on the queue.
type Event struct {
	Name       string      `json:"name"`
	OccurredAt time.Time   `json:"occurredAt"`
	Payload    interface{} `json:"payload"`
}

// EventPublisher pushes domain events onto a durable RabbitMQ queue. It is
// best-effort: handlers log publish failures and carry on.
type EventPublisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   amqp.Queue
}

func NewEventPublisher(url string) (*EventPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	q, err := ch.QueueDeclare(
		"recruitment_events", // queue name
		true,                 // durable
		false,                // delete when unused
		false,                // exclusive
		false,                // no-wait
		nil,                  // args
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	fmt.Println("✅ Connected to RabbitMQ and declared queue")

	return &EventPublisher{conn: conn, channel: ch, queue: q}, nil
}

// Publish sends one event. Safe on a nil publisher (broker not configured).
func (p *EventPublisher) Publish(name string, payload interface{}) error {
	if p == nil {
		return nil
	}

	body, err := json.Marshal(Event{Name: name, OccurredAt: time.Now(), Payload: payload})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return p.channel.PublishWithContext(
		ctx,
		"",           // exchange
		p.queue.Name, // routing key
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}

func (p *EventPublisher) Close() {
	if p == nil {
		return
	}
	p.channel.Close()
	p.conn.Close()
}
