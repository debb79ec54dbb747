package rabbitmq

import (
	"errors"
	"testing"

	amqp "github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
)

type fakeAck struct {
	acked, nacked, requeued bool
}

func (f *fakeAck) Ack(bool) error {
	f.acked = true
	return nil
}

func (f *fakeAck) Nack(_, requeue bool) error {
	f.nacked = true
	f.requeued = requeue
	return nil
}

func TestSettle_AcksOnSuccess(t *testing.T) {
	ack := &fakeAck{}
	settle(ack, "order.created", 1, func() error { return nil })
	assert.True(t, ack.acked)
	assert.False(t, ack.nacked)
}

func TestSettle_NacksWithoutRequeueOnError(t *testing.T) {
	ack := &fakeAck{}
	settle(ack, "order.paid", 2, func() error { return errors.New("boom") })
	assert.False(t, ack.acked)
	assert.True(t, ack.nacked)
	assert.False(t, ack.requeued)
}

func TestLogOrderEvent(t *testing.T) {
	assert.NoError(t, LogOrderEvent(amqp.Delivery{RoutingKey: "order.created", Body: []byte(`{"order_id":1}`)}))
	assert.Error(t, LogOrderEvent(amqp.Delivery{RoutingKey: "order.created"}))
}

func TestClient_RequiresChannel(t *testing.T) {
	c := &Client{}
	assert.Error(t, c.Publish("order.created", []byte("{}")))
	assert.Error(t, c.ConsumeOrderEvents(LogOrderEvent))
	assert.NoError(t, c.Close())
}
