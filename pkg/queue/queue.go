package queue

import (
	"context"
	"time"
)

// QueueService publishes typed payloads for out-of-process consumers.
type QueueService interface {
	PublishMessage(ctx context.Context, msgType string, payload interface{}) error
}

// Message is the wire envelope pushed onto the queue.
type Message struct {
	ID        string
	Type      string
	Payload   interface{}
	Timestamp time.Time
}
