package events

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

// Bridge fans bus events out through a RabbitMQ fanout exchange so every
// instance of the service invalidates together. Each instance consumes
// from its own exclusive queue.
type Bridge struct {
	conn     *amqp091.Connection
	channel  *amqp091.Channel
	exchange string
	queue    string
	bus      *Bus
	log      *slog.Logger
}

func NewBridge(url, exchange string, bus *Bus, log *slog.Logger) (*Bridge, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	b := &Bridge{
		conn:     conn,
		channel:  channel,
		exchange: exchange,
		bus:      bus,
		log:      log,
	}
	if err := b.setup(); err != nil {
		b.Close()
		return nil, fmt.Errorf("setup exchange and queue: %w", err)
	}
	return b, nil
}

func (b *Bridge) setup() error {
	err := b.channel.ExchangeDeclare(
		b.exchange, // name
		"fanout",   // type
		true,       // durable
		false,      // auto-deleted
		false,      // internal
		false,      // no-wait
		nil,        // arguments
	)
	if err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	q, err := b.channel.QueueDeclare(
		"",    // server-named
		false, // durable
		true,  // delete when unused
		true,  // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}
	b.queue = q.Name

	if err := b.channel.QueueBind(b.queue, "", b.exchange, false, nil); err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}
	return nil
}

// Forward implements Forwarder.
func (b *Bridge) Forward(ctx context.Context, e Event) error {
	body, err := e.Marshal()
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = b.channel.PublishWithContext(
		ctx,
		b.exchange, // exchange
		"",         // routing key, ignored by fanout
		false,      // mandatory
		false,      // immediate
		amqp091.Publishing{
			ContentType: "application/json",
			Timestamp:   e.At,
			Type:        string(e.Topic),
			Body:        body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish event: %w", err)
	}
	return nil
}

// Run consumes until ctx is cancelled or the channel closes.
func (b *Bridge) Run(ctx context.Context) error {
	msgs, err := b.channel.Consume(
		b.queue, // queue
		"",      // consumer
		false,   // auto-ack
		true,    // exclusive
		false,   // no-local
		false,   // no-wait
		nil,     // args
	)
	if err != nil {
		return fmt.Errorf("start consuming: %w", err)
	}

	b.log.Info("event bridge consuming", "exchange", b.exchange, "queue", b.queue)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case delivery, ok := <-msgs:
			if !ok {
				return fmt.Errorf("message channel closed")
			}
			if err := b.handle(ctx, delivery.Body); err != nil {
				b.log.Error("dropping malformed event", "error", err)
				delivery.Nack(false, false)
				continue
			}
			delivery.Ack(false)
		}
	}
}

// handle delivers a remote event locally. Events this instance published
// were already delivered by Publish and are skipped.
func (b *Bridge) handle(ctx context.Context, body []byte) error {
	e, err := UnmarshalEvent(body)
	if err != nil {
		return err
	}
	if e.Origin == b.bus.Instance() {
		return nil
	}
	b.bus.Deliver(ctx, e)
	return nil
}

func (b *Bridge) Close() error {
	if b.channel != nil {
		b.channel.Close()
	}
	if b.conn != nil {
		return b.conn.Close()
	}
	return nil
}
