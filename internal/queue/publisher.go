package queue

import (
    "context"
    "encoding/json"
    "log"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher sends seating.changed events to RabbitMQ.  Each publish
// opens its own connection; mutations are infrequent and this keeps the
// server free of long-lived broker state.
type Publisher struct {
    url string
}

// NewPublisher returns a publisher for the broker at url.
func NewPublisher(url string) *Publisher {
    return &Publisher{url: url}
}

// PublishSeatingChanged publishes ev as a persistent message.  Errors are
// logged and returned so the caller can choose to ignore them.
func (p *Publisher) PublishSeatingChanged(ctx context.Context, ev SeatingChangedEvent) error {
    conn, err := amqp.Dial(p.url)
    if err != nil {
        log.Printf("queue: dial failed: %v", err)
        return err
    }
    defer func() { _ = conn.Close() }()

    ch, err := conn.Channel()
    if err != nil {
        log.Printf("queue: channel open failed: %v", err)
        return err
    }
    defer func() { _ = ch.Close() }()

    if err := declare(ch); err != nil {
        log.Printf("queue: queue declare failed: %v", err)
        return err
    }

    body, err := json.Marshal(ev)
    if err != nil {
        log.Printf("queue: marshal event failed: %v", err)
        return err
    }

    pub := amqp.Publishing{
        ContentType:  "application/json",
        DeliveryMode: amqp.Persistent,
        MessageId:    ev.EventID,
        Timestamp:    time.Now().UTC(),
        Body:         body,
    }
    if err := ch.PublishWithContext(ctx,
        "",                  // default exchange
        SeatingChangedQueue, // routing key = queue name
        false,               // mandatory
        false,               // immediate
        pub,
    ); err != nil {
        log.Printf("queue: publish failed: %v", err)
        return err
    }
    return nil
}

// declare makes sure the durable queue exists.  Idempotent.
func declare(ch *amqp.Channel) error {
    _, err := ch.QueueDeclare(
        SeatingChangedQueue, // name
        true,                // durable
        false,               // autoDelete
        false,               // exclusive
        false,               // noWait
        nil,                 // args
    )
    return err
}
