package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/distributed_lab/logan/v3"
)

func TestBusDeliversInOrder(t *testing.T) {
	bus := NewBus(logan.New())
	sub := bus.Subscribe()

	bus.Publish(OrderCreated, 1)
	bus.Publish(BidPlaced, 2)
	bus.Publish(AuctionClosed, 3)

	assert.Equal(t, Event{Type: OrderCreated, Data: 1}, <-sub.C)
	assert.Equal(t, Event{Type: BidPlaced, Data: 2}, <-sub.C)
	assert.Equal(t, Event{Type: AuctionClosed, Data: 3}, <-sub.C)
}

func TestBusNoReplay(t *testing.T) {
	bus := NewBus(logan.New())
	bus.Publish(OrderCreated, "before")

	sub := bus.Subscribe()
	bus.Publish(BidPlaced, "after")

	evt := <-sub.C
	assert.Equal(t, BidPlaced, evt.Type)
	assert.Empty(t, sub.C)
}

func TestBusFanout(t *testing.T) {
	bus := NewBus(logan.New())
	first := bus.Subscribe()
	second := bus.Subscribe()

	bus.Publish(SecretRevealed, "s")

	assert.Equal(t, SecretRevealed, (<-first.C).Type)
	assert.Equal(t, SecretRevealed, (<-second.C).Type)
}

func TestBusUnsubscribe(t *testing.T) {
	bus := NewBus(logan.New())
	sub := bus.Subscribe()

	bus.Unsubscribe(sub)
	_, open := <-sub.C
	require.False(t, open, "channel must close on unsubscribe")

	// double unsubscribe must not panic on the closed channel
	bus.Unsubscribe(sub)
	bus.Publish(OrderCreated, nil)
}

func TestBusDropsWhenSubscriberStalls(t *testing.T) {
	bus := NewBus(logan.New())
	sub := bus.Subscribe()

	for i := 0; i < subscriberBuffer+10; i++ {
		bus.Publish(BidPlaced, i)
	}

	// the buffer kept the oldest events, the overflow was dropped
	assert.Len(t, sub.C, subscriberBuffer)
	assert.Equal(t, 0, (<-sub.C).Data)
}
