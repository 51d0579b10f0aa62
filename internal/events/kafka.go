package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"storefront/internal/domain"
	applog "storefront/internal/log"
)

// messageWriter is the part of *kafka.Writer the publisher needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	w       messageWriter
	timeout time.Duration
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 10 * time.Millisecond,
		MaxAttempts:  3,
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...interface{}) {
			applog.Logger().Error().Str("action", "kafka.writer").Msg(fmt.Sprintf(msg, args...))
		}),
	}
	return &KafkaPublisher{w: w, timeout: 5 * time.Second}
}

// PublishOrderPlaced writes one message keyed by order id so all events of an
// order land on the same partition.
func (p *KafkaPublisher) PublishOrderPlaced(ctx context.Context, o domain.Order) error {
	body, err := json.Marshal(NewOrderPlaced(o))
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	return p.w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(o.ID),
		Value: body,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte("order.placed")},
		},
		Time: o.CreatedAt,
	})
}

func (p *KafkaPublisher) Close() error { return p.w.Close() }
