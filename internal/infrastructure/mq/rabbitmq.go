package mq

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"time"

	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"fitback-api/config"
	"fitback-api/internal/domain/logentry"
)

// "Rely on metrics, not guesses."
const bufferSize = 128

// drainTimeout bounds publishing of buffered events after shutdown starts.
const drainTimeout = 5 * time.Second

var ErrNotConnected = errors.New("mq: publish channel is not open")

// CaptureRoutingKeys are the severities bound to the capture queue.
var CaptureRoutingKeys = []string{
	string(logentry.SeverityError),
	string(logentry.SeverityWarning),
}

type (
	InputCh = chan Event
	// channel is the part of *amqp091.Channel the publisher uses.
	channel interface {
		ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp091.Table) error
		QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp091.Table) (amqp091.Queue, error)
		QueueBind(name, key, exchange string, noWait bool, args amqp091.Table) error
		PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
		Close() error
	}
	RabbitMQ struct {
		cfg   config.MQ
		log   *zap.Logger
		conn  *amqp091.Connection
		pubCh channel
		in    InputCh
	}
	// Event is one captured client error on the wire.
	Event struct {
		Id       uuid.UUID         `json:"event_id"`
		TS       time.Time         `json:"time_stamp"`
		Severity logentry.Severity `json:"severity"`
		Message  string            `json:"message"`
		Context  map[string]any    `json:"context,omitempty"`
	}
)

func New(cfg config.MQ, logger *zap.Logger) *RabbitMQ {
	return &RabbitMQ{
		cfg: cfg,
		log: logger,
		in:  make(chan Event, bufferSize),
	}
}

func (r *RabbitMQ) Connect(ctx context.Context, dsn string) error {
	dialer := &net.Dialer{Timeout: 10 * time.Second}

	amqpCfg := amqp091.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Properties: amqp091.Table{
			"connection_name": "fitback-api",
		},
		Dial: func(network, addr string) (net.Conn, error) {
			return dialer.DialContext(ctx, network, addr)
		},
	}

	var err error
	r.conn, err = amqp091.DialConfig(dsn, amqpCfg)
	if err != nil {
		return err
	}
	ch, err := r.conn.Channel()
	if err != nil {
		_ = r.conn.Close()
		return err
	}
	r.pubCh = ch

	r.log.Info("rabbitmq connected successfully")

	return nil
}

// Init declares the topology. The publish channel is closed on any failure.
func (r *RabbitMQ) Init() (err error) {
	defer func() {
		if err != nil {
			_ = r.pubCh.Close()
			r.pubCh = nil
		}
	}()

	if err = r.pubCh.ExchangeDeclare(
		r.cfg.Exchange,
		r.cfg.ExchangeType,
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		return err
	}
	q, err := r.pubCh.QueueDeclare(
		r.cfg.QueueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return err
	}

	for _, rk := range CaptureRoutingKeys {
		if err = r.pubCh.QueueBind(q.Name, rk, r.cfg.Exchange, false, nil); err != nil {
			return err
		}
	}

	return nil
}

// CaptureError queues a captured client error for publishing. It blocks only while
// the buffer is full and gives up when ctx is done.
func (r *RabbitMQ) CaptureError(
	ctx context.Context,
	message string,
	fields map[string]any,
	severity logentry.Severity,
) error {
	e := Event{
		Id:       uuid.New(),
		TS:       time.Now().UTC(),
		Severity: severity,
		Message:  message,
		Context:  fields,
	}

	select {
	case r.in <- e:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *RabbitMQ) PublisherWorker(ctx context.Context) {
	r.log.Info("starting publisher worker")

	defer func() {
		r.log.Info("publisher worker gracefully stopped")
	}()

	for {
		select {
		case e := <-r.in:
			if err := r.publish(ctx, e); err != nil {
				// alert
				r.log.Error("mq publish error", zap.Error(err), zap.Stringer("event_id", e.Id))
			}
		case <-ctx.Done():
			r.drain()
			if r.pubCh != nil {
				_ = r.pubCh.Close()
			}
			return
		}
	}
}

// drain publishes what is still buffered once ctx is cancelled.
func (r *RabbitMQ) drain() {
	ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()

	for {
		select {
		case e := <-r.in:
			if err := r.publish(ctx, e); err != nil {
				r.log.Error("mq publish error", zap.Error(err), zap.Stringer("event_id", e.Id))
			}
		default:
			return
		}
	}
}

func (r *RabbitMQ) publish(ctx context.Context, e Event) error {
	if r.pubCh == nil {
		return ErrNotConnected
	}
	b, err := json.Marshal(e)
	if err != nil {
		return err
	}

	pub := amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		MessageId:    e.Id.String(),
		Timestamp:    e.TS,
		Type:         string(e.Severity),
		Body:         b,
	}

	return r.pubCh.PublishWithContext(
		ctx,
		r.cfg.Exchange,
		string(e.Severity),
		true,
		false,
		pub,
	)
}

func (r *RabbitMQ) GetConn() *amqp091.Connection { return r.conn }
