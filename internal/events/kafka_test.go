package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("no deadline")
	}
	f.msgs = append(f.msgs, msgs...)
	return f.err
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func sampleOrder() domain.Order {
	lines := []domain.CartLine{{ProductID: 1, Quantity: 3, UnitPrice: decimal.NewFromInt(10), Price: decimal.NewFromInt(30)}}
	return domain.NewOrder(1, lines, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC))
}

func TestKafkaPublisherWritesKeyedMessage(t *testing.T) {
	w := &fakeWriter{}
	p := &KafkaPublisher{w: w, timeout: time.Second}
	o := sampleOrder()

	require.NoError(t, p.PublishOrderPlaced(context.Background(), o))
	require.Len(t, w.msgs, 1)
	msg := w.msgs[0]
	assert.Equal(t, o.ID, string(msg.Key))
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, "order.placed", string(msg.Headers[0].Value))

	var ev OrderPlaced
	require.NoError(t, json.Unmarshal(msg.Value, &ev))
	assert.Equal(t, o.ID, ev.OrderID)
	assert.Equal(t, int64(1), ev.UserID)
	assert.True(t, ev.TotalAmount.Equal(decimal.NewFromInt(30)))
	require.Len(t, ev.Items, 1)
	assert.Equal(t, 3, ev.Items[0].Quantity)

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestKafkaPublisherPropagatesWriteError(t *testing.T) {
	w := &fakeWriter{err: errors.New("leader not available")}
	p := &KafkaPublisher{w: w, timeout: time.Second}
	assert.Error(t, p.PublishOrderPlaced(context.Background(), sampleOrder()))
}

func TestNewPicksPublisher(t *testing.T) {
	assert.IsType(t, NopPublisher{}, New(nil, "orders.placed"))

	pub := New([]string{"localhost:9092"}, "orders.placed")
	kp, ok := pub.(*KafkaPublisher)
	require.True(t, ok)
	assert.NoError(t, kp.Close())
}
