package ports

import "context"

// RMQConsumer drains captured errors from the capture queue.
type RMQConsumer interface {
	Connect(dsn string) error
	Init() error
	DeliveryWorker(ctx context.Context)
}
