package handlers

import (
	"net/http"

	"github.com/auralshin/crosschain-evm-aptos-swap/internal/data"
	"gitlab.com/distributed_lab/ape"
	"gitlab.com/distributed_lab/ape/problems"
)

// ListOrders returns orders still accepting bids, the same snapshot a fresh
// websocket subscriber receives.
func ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := Store(r).Orders().SelectByStatus(data.OrderAuctionOpen)
	if err != nil {
		Log(r).WithError(err).Error("failed to select open orders")
		ape.RenderErr(w, problems.InternalError())
		return
	}

	ape.Render(w, orders)
}
