package handlers

import (
	"net/http"

	"github.com/auralshin/crosschain-evm-aptos-swap/internal/auction"
	"github.com/auralshin/crosschain-evm-aptos-swap/internal/service/requests"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gitlab.com/distributed_lab/ape"
	"gitlab.com/distributed_lab/ape/problems"
	"gitlab.com/distributed_lab/logan/v3/errors"
)

func PlaceBid(w http.ResponseWriter, r *http.Request) {
	req, err := requests.NewPlaceBid(r)
	if err != nil {
		ape.RenderErr(w, problems.BadRequest(err)...)
		return
	}

	bid, err := Engine(r).PlaceBid(req.OrderID, auction.PlaceBidParams{
		Resolver:  req.ResolverAddress,
		BidAmount: req.BidAmount,
		Expiry:    req.Expiry,
	})
	switch errors.Cause(err) {
	case nil:
	case auction.ErrOrderNotFound:
		ape.RenderErr(w, problems.NotFound())
		return
	case auction.ErrAuctionNotOpen, auction.ErrAuctionEnded:
		ape.RenderErr(w, problems.Conflict())
		return
	case auction.ErrBidExpired:
		ape.RenderErr(w, problems.BadRequest(validation.Errors{"expiry": err})...)
		return
	case auction.ErrBidTooLow, auction.ErrBadAmount:
		ape.RenderErr(w, problems.BadRequest(validation.Errors{"bidAmount": err})...)
		return
	default:
		Log(r).WithError(err).Error("failed to place bid")
		ape.RenderErr(w, problems.InternalError())
		return
	}

	w.WriteHeader(http.StatusCreated)
	ape.Render(w, bid)
}
