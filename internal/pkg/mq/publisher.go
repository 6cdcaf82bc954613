package mq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

var ErrPublisherClosed = errors.New("publisher closed")

// Publisher sends JSON messages to a durable topic exchange.
// A connection or channel closed by the broker is reopened on the next publish.
type Publisher struct {
	mu       sync.Mutex
	url      string
	exchange string
	conn     *amqp.Connection
	ch       *amqp.Channel
	closed   bool
}

func NewPublisher(url, exchange string) (*Publisher, error) {
	p := &Publisher{url: url, exchange: exchange}
	if err := p.connect(); err != nil {
		if p.conn != nil {
			_ = p.conn.Close()
		}
		return nil, err
	}
	return p, nil
}

// connect reopens whatever the broker has closed. Callers hold p.mu, except NewPublisher.
func (p *Publisher) connect() error {
	if p.conn == nil || p.conn.IsClosed() {
		conn, err := amqp.Dial(p.url)
		if err != nil {
			return fmt.Errorf("dial rabbitmq: %w", err)
		}
		p.conn = conn
		p.ch = nil
	}

	if p.ch == nil || p.ch.IsClosed() {
		ch, err := p.conn.Channel()
		if err != nil {
			return fmt.Errorf("open channel: %w", err)
		}
		if err := ch.ExchangeDeclare(p.exchange, "topic", true, false, false, false, nil); err != nil {
			_ = ch.Close()
			return fmt.Errorf("declare exchange %s: %w", p.exchange, err)
		}
		p.ch = ch
	}

	return nil
}

// PublishJSON marshals v and publishes it as a persistent message under key.
func (p *Publisher) PublishJSON(ctx context.Context, key string, v any) error {
	b, err := Encode(v)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrPublisherClosed
	}
	if err := p.connect(); err != nil {
		return fmt.Errorf("reconnect rabbitmq: %w", err)
	}

	err = p.publish(ctx, key, b)
	if errors.Is(err, amqp.ErrClosed) {
		// The channel died between the check and the publish.
		if err := p.connect(); err != nil {
			return fmt.Errorf("reconnect rabbitmq: %w", err)
		}
		err = p.publish(ctx, key, b)
	}
	return err
}

func (p *Publisher) publish(ctx context.Context, key string, body []byte) error {
	return p.ch.PublishWithContext(ctx, p.exchange, key, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.closed = true
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// Encode is the body encoding used by PublishJSON.
func Encode(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode message: %w", err)
	}
	return b, nil
}
