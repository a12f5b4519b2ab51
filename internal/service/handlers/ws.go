package handlers

import (
	"net/http"

	"github.com/auralshin/crosschain-evm-aptos-swap/internal/data"
	"github.com/auralshin/crosschain-evm-aptos-swap/internal/events"
	"github.com/gorilla/websocket"
	"gitlab.com/distributed_lab/ape"
	"gitlab.com/distributed_lab/ape/problems"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// OrdersWebsocket streams auction lifecycle events. A fresh connection gets
// an open_orders snapshot first, then live events in emission order; there is
// no replay of anything published before the subscription.
func OrdersWebsocket(w http.ResponseWriter, r *http.Request) {
	orders, err := Store(r).Orders().SelectByStatus(data.OrderAuctionOpen)
	if err != nil {
		Log(r).WithError(err).Error("failed to select open orders")
		ape.RenderErr(w, problems.InternalError())
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		Log(r).WithError(err).Warn("failed to upgrade connection")
		return
	}

	sub := Bus(r).Subscribe()
	defer func() {
		Bus(r).Unsubscribe(sub)
		_ = conn.Close()
	}()

	if err = conn.WriteJSON(events.Event{Type: events.OpenOrders, Data: orders}); err != nil {
		Log(r).WithError(err).Debug("failed to write snapshot")
		return
	}

	// drain the client side solely to observe disconnects
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			return
		case event, ok := <-sub.C:
			if !ok {
				return
			}
			if err = conn.WriteJSON(event); err != nil {
				Log(r).WithError(err).Debug("failed to write event")
				return
			}
		}
	}
}
