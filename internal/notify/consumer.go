package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

type ConsumerConfig struct {
	URL   string
	Queue string
}

// Consumer feeds tour status-change events from a RabbitMQ queue into a
// Notifier. Events that fail schema validation are rejected without requeue;
// handling errors (under PolicyRequeue) nack with requeue.
type Consumer struct {
	cfg      ConsumerConfig
	notifier *Notifier
	log      *slog.Logger
	conn     *amqp.Connection
	ch       *amqp.Channel
}

func NewConsumer(cfg ConsumerConfig, notifier *Notifier, log *slog.Logger) (*Consumer, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("amqp dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("amqp channel: %w", err)
	}
	if _, err := ch.QueueDeclare(cfg.Queue, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare queue %s: %w", cfg.Queue, err)
	}
	return &Consumer{cfg: cfg, notifier: notifier, log: log, conn: conn, ch: ch}, nil
}

func (c *Consumer) Run(ctx context.Context) error {
	tag := "notifier-" + uuid.NewString()
	deliveries, err := c.ch.Consume(c.cfg.Queue, tag, false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", c.cfg.Queue, err)
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-deliveries:
			if !ok {
				return errors.New("delivery channel closed")
			}
			c.handle(ctx, d)
		}
	}
}

func (c *Consumer) handle(ctx context.Context, d amqp.Delivery) {
	evt, err := ParseEvent(d.Body)
	if err != nil {
		c.log.Warn("dropping malformed event", "error", err)
		_ = d.Reject(false)
		return
	}

	hctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := c.notifier.HandleChange(hctx, evt); err != nil {
		c.log.Warn("event handling failed, requeueing", "tour_id", evt.ID, "error", err)
		_ = d.Nack(false, true)
		return
	}
	_ = d.Ack(false)
}

func (c *Consumer) Close() error {
	if err := c.ch.Close(); err != nil {
		c.conn.Close()
		return err
	}
	return c.conn.Close()
}
