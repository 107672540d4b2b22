package ports

import (
	"context"

	"github.com/rabbitmq/amqp091-go"
)

type RabbitMQ interface {
	ErrorCapture
	Connect(ctx context.Context, dsn string) error
	Init() error
	PublisherWorker(ctx context.Context)
	GetConn() *amqp091.Connection
}
