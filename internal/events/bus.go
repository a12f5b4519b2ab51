package events

import (
	"sync"

	"github.com/google/uuid"
	"gitlab.com/distributed_lab/logan/v3"
)

type Kind string

const (
	// OpenOrders is the point-in-time snapshot sent to a fresh subscriber,
	// never published through the bus itself
	OpenOrders Kind = "open_orders"

	OrderCreated   Kind = "ORDER_CREATED"
	BidPlaced      Kind = "BID_PLACED"
	AuctionClosed  Kind = "AUCTION_CLOSED"
	SecretRevealed Kind = "SECRET_REVEALED"
)

type Event struct {
	Type Kind        `json:"type"`
	Data interface{} `json:"data"`
}

type Subscription struct {
	id uuid.UUID
	C  chan Event
}

// Bus fans lifecycle events out to connected resolvers. Delivery preserves
// emission order per subscriber within this process; there is no replay and
// no cross-process ordering guarantee. Slow subscribers lose events rather
// than blocking publishers.
type Bus struct {
	log *logan.Entry

	mu   sync.Mutex
	subs map[uuid.UUID]*Subscription
}

const subscriberBuffer = 64

func NewBus(log *logan.Entry) *Bus {
	return &Bus{
		log:  log.WithField("component", "events"),
		subs: make(map[uuid.UUID]*Subscription),
	}
}

func (b *Bus) Subscribe() *Subscription {
	sub := &Subscription{
		id: uuid.New(),
		C:  make(chan Event, subscriberBuffer),
	}

	b.mu.Lock()
	b.subs[sub.id] = sub
	b.mu.Unlock()

	return sub
}

func (b *Bus) Unsubscribe(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.subs[sub.id]; !ok {
		return
	}
	delete(b.subs, sub.id)
	close(sub.C)
}

func (b *Bus) Publish(kind Kind, payload interface{}) {
	evt := Event{Type: kind, Data: payload}

	b.mu.Lock()
	defer b.mu.Unlock()

	for _, sub := range b.subs {
		select {
		case sub.C <- evt:
		default:
			b.log.WithField("subscriber", sub.id.String()).
				WithField("event", string(kind)).
				Warn("subscriber buffer full, event dropped")
		}
	}
}
