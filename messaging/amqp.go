package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"product-extractor/internal/types"
)

// Channel is the part of *amqp.Channel the RPC server uses
type Channel interface {
	Qos(prefetchCount, prefetchSize int, global bool) error
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

var _ Channel = (*amqp.Channel)(nil)

// AMQPClient owns one broker connection and its channel
type AMQPClient struct {
	conn    *amqp.Connection
	Channel *amqp.Channel
}

func DialAMQP(url string) (*AMQPClient, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}

	return &AMQPClient{conn: conn, Channel: ch}, nil
}

func (c *AMQPClient) Close() error {
	if err := c.Channel.Close(); err != nil {
		return err
	}
	return c.conn.Close()
}

// AMQPServer consumes requests from a queue and publishes each response to
// the request's ReplyTo queue, correlated by request id.
type AMQPServer struct {
	ch         Channel
	dispatcher *Dispatcher
	logger     types.Logger
	queueName  string
	workers    int
}

func NewAMQPServer(ch Channel, d *Dispatcher, logger types.Logger, queueName string, workers int) *AMQPServer {
	if workers <= 0 {
		workers = 1
	}
	return &AMQPServer{
		ch:         ch,
		dispatcher: d,
		logger:     logger,
		queueName:  queueName,
		workers:    workers,
	}
}

// Serve consumes until ctx is cancelled or the broker closes the delivery
// channel. In-flight requests finish before it returns.
func (s *AMQPServer) Serve(ctx context.Context) error {
	const op = "messaging.amqp.Serve"

	if _, err := s.ch.QueueDeclare(s.queueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("%s: declare queue: %w", op, err)
	}
	if err := s.ch.Qos(s.workers, 0, false); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	msgs, err := s.ch.Consume(s.queueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.logger.Infof("Consuming commands from queue %s with %d workers", s.queueName, s.workers)

	var wg sync.WaitGroup
	defer wg.Wait()
	semaphore := make(chan struct{}, s.workers)

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return fmt.Errorf("%s: delivery channel closed", op)
			}

			wg.Add(1)
			semaphore <- struct{}{}

			go func(m amqp.Delivery) {
				defer wg.Done()
				defer func() { <-semaphore }()
				s.handle(ctx, m)
			}(msg)
		}
	}
}

func (s *AMQPServer) handle(ctx context.Context, m amqp.Delivery) {
	var req Request
	if err := json.Unmarshal(m.Body, &req); err != nil {
		s.logger.Errorf("Dropping undecodable message %s: %v", m.MessageId, err)
		if err := s.reply(ctx, m, Response{RequestID: m.CorrelationId, Error: "Failed to decode request"}); err != nil {
			s.logger.Errorf("Failed to publish response: %v", err)
		}
		if err := m.Reject(false); err != nil {
			s.logger.Errorf("reject failed: %v", err)
		}
		return
	}
	if req.RequestID == "" {
		req.RequestID = m.CorrelationId
	}

	resp, err := s.dispatcher.Handle(ctx, req)
	if errors.Is(err, context.Canceled) {
		// shutting down; let the broker redeliver
		if err := m.Nack(false, true); err != nil {
			s.logger.Errorf("nack failed: %v", err)
		}
		return
	}

	if err := s.reply(ctx, m, resp); err != nil {
		s.logger.Errorf("Failed to publish response %s: %v", resp.RequestID, err)
		if err := m.Nack(false, true); err != nil {
			s.logger.Errorf("nack failed: %v", err)
		}
		return
	}

	if err := m.Ack(false); err != nil {
		s.logger.Errorf("ack failed: %v", err)
	}
}

// reply is a no-op for fire-and-forget messages without ReplyTo
func (s *AMQPServer) reply(ctx context.Context, m amqp.Delivery, resp Response) error {
	if m.ReplyTo == "" {
		return nil
	}

	body, err := json.Marshal(resp)
	if err != nil {
		return err
	}

	return s.ch.PublishWithContext(
		context.WithoutCancel(ctx),
		"",
		m.ReplyTo,
		false,
		false,
		amqp.Publishing{
			ContentType:   "application/json",
			CorrelationId: resp.RequestID,
			Body:          body,
		},
	)
}
