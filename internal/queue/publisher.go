package queue

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "sync"
    "time"

    "github.com/google/uuid"
    "github.com/hashicorp/go-hclog"
    amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher sends ticket events to RabbitMQ.  The connection is opened
// lazily and reopened after the broker drops it, so a broker outage never
// blocks booking; callers log the returned error and move on.
type Publisher struct {
    url string
    log hclog.Logger

    mu   sync.Mutex
    conn *amqp.Connection
    ch   *amqp.Channel
}

// NewPublisher returns a Publisher for the broker at url.
func NewPublisher(url string, log hclog.Logger) *Publisher {
    if log == nil {
        log = hclog.NewNullLogger()
    }
    return &Publisher{url: url, log: log}
}

// channel returns an open channel with the ticket queue declared; callers
// hold mu.
func (p *Publisher) channel() (*amqp.Channel, error) {
    if p.ch != nil && !p.ch.IsClosed() {
        return p.ch, nil
    }
    p.closeLocked()
    conn, err := amqp.Dial(p.url)
    if err != nil {
        return nil, fmt.Errorf("dial broker: %w", err)
    }
    ch, err := conn.Channel()
    if err != nil {
        _ = conn.Close()
        return nil, fmt.Errorf("open channel: %w", err)
    }
    // Durable so messages survive broker restarts.
    if _, err := ch.QueueDeclare(TicketBookedQueue, true, false, false, false, nil); err != nil {
        _ = ch.Close()
        _ = conn.Close()
        return nil, fmt.Errorf("declare queue: %w", err)
    }
    p.conn, p.ch = conn, ch
    p.log.Debug("connected to broker", "queue", TicketBookedQueue)
    return ch, nil
}

// PublishTicketBooked publishes ev as a persistent JSON message on the
// ticket.booked queue.
func (p *Publisher) PublishTicketBooked(ctx context.Context, ev TicketBookedEvent) error {
    body, err := json.Marshal(ev)
    if err != nil {
        return fmt.Errorf("marshal event: %w", err)
    }
    p.mu.Lock()
    defer p.mu.Unlock()
    ch, err := p.channel()
    if err != nil {
        p.log.Warn("broker unavailable", "error", err)
        return err
    }
    msg := amqp.Publishing{
        ContentType:  "application/json",
        DeliveryMode: amqp.Persistent,
        MessageId:    uuid.NewString(),
        Timestamp:    time.Now().UTC(),
        Type:         TicketBookedQueue,
        Body:         body,
    }
    if err := ch.PublishWithContext(ctx, "", TicketBookedQueue, false, false, msg); err != nil {
        p.closeLocked()
        return fmt.Errorf("publish: %w", err)
    }
    p.log.Debug("ticket event published", "ticket_id", ev.TicketID, "message_id", msg.MessageId)
    return nil
}

// Close releases the broker connection.
func (p *Publisher) Close() error {
    p.mu.Lock()
    defer p.mu.Unlock()
    return p.closeLocked()
}

func (p *Publisher) closeLocked() error {
    var errs []error
    if p.ch != nil {
        if err := p.ch.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
            errs = append(errs, err)
        }
        p.ch = nil
    }
    if p.conn != nil {
        if err := p.conn.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
            errs = append(errs, err)
        }
        p.conn = nil
    }
    return errors.Join(errs...)
}
