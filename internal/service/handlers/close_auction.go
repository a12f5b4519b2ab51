package handlers

import (
	"net/http"

	"github.com/auralshin/crosschain-evm-aptos-swap/internal/auction"
	"github.com/auralshin/crosschain-evm-aptos-swap/internal/service/requests"
	"gitlab.com/distributed_lab/ape"
	"gitlab.com/distributed_lab/ape/problems"
	"gitlab.com/distributed_lab/logan/v3/errors"
)

// CloseAuction settles the order immediately, regardless of how much of the
// auction window is left. The scheduler timer becomes a no-op afterwards.
func CloseAuction(w http.ResponseWriter, r *http.Request) {
	id, err := requests.OrderID(r)
	if err != nil {
		ape.RenderErr(w, problems.BadRequest(err)...)
		return
	}

	result, err := Engine(r).CloseOrder(id)
	switch errors.Cause(err) {
	case nil:
	case auction.ErrOrderNotFound:
		ape.RenderErr(w, problems.NotFound())
		return
	case auction.ErrAuctionNotOpen:
		ape.RenderErr(w, problems.Conflict())
		return
	default:
		Log(r).WithError(err).Error("failed to close auction")
		ape.RenderErr(w, problems.InternalError())
		return
	}

	Scheduler(r).Cancel(id)
	ape.Render(w, result)
}
