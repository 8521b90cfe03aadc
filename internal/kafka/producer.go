package kafka

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/helpdesk-portal/helpdesk-service/internal/model"
	"github.com/segmentio/kafka-go"
)

// TicketEventProducer publishes ticket lifecycle events (for substitution
// with a mock in tests).
type TicketEventProducer interface {
	ProduceTicketEvent(ctx context.Context, event string, t *model.Ticket)
}

// Producer writes ticket events to a Kafka topic, best-effort: publishing
// never blocks or fails an API call.
type Producer struct {
	writer *kafka.Writer
	topic  string
}

// NewProducer creates the producer. With no brokers or an empty topic all
// methods are no-ops.
func NewProducer(brokers []string, topic string) *Producer {
	if len(brokers) == 0 || topic == "" {
		return &Producer{}
	}
	return &Producer{
		topic: topic,
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: 10 * time.Millisecond,
		},
	}
}

type ticketEvent struct {
	Event        string `json:"event"`
	TicketID     int64  `json:"ticket_id"`
	Title        string `json:"title"`
	Status       string `json:"status"`
	Priority     string `json:"priority"`
	CategoryID   int64  `json:"category_id"`
	CreatedByID  int64  `json:"created_by_id"`
	AssignedToID *int64 `json:"assigned_to_id,omitempty"`
}

// ProduceTicketEvent publishes one event ("ticket.created", "ticket.updated",
// "ticket.deleted", "comment.added") for the ticket.
func (p *Producer) ProduceTicketEvent(ctx context.Context, event string, t *model.Ticket) {
	if p.writer == nil || t == nil {
		return
	}
	body, err := json.Marshal(ticketEvent{
		Event:        event,
		TicketID:     t.ID,
		Title:        t.Title,
		Status:       string(t.Status),
		Priority:     string(t.Priority),
		CategoryID:   t.CategoryID,
		CreatedByID:  t.CreatedByID,
		AssignedToID: t.AssignedToID,
	})
	if err != nil {
		log.Printf("kafka: marshal ticket event: %v", err)
		return
	}
	if err := p.writer.WriteMessages(ctx, kafka.Message{Value: body}); err != nil {
		log.Printf("kafka: write ticket event: %v", err)
	}
}

// Close closes the underlying writer.
func (p *Producer) Close() error {
	if p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
