package handlers

import (
	"net/http"
	"time"

	"github.com/auralshin/crosschain-evm-aptos-swap/internal/auction"
	"github.com/auralshin/crosschain-evm-aptos-swap/internal/data"
	"github.com/auralshin/crosschain-evm-aptos-swap/internal/events"
	"github.com/auralshin/crosschain-evm-aptos-swap/internal/service/requests"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/holiman/uint256"
	"gitlab.com/distributed_lab/ape"
	"gitlab.com/distributed_lab/ape/problems"
	"gitlab.com/distributed_lab/logan/v3/errors"
)

func CreateOrder(w http.ResponseWriter, r *http.Request) {
	req, err := requests.NewCreateOrder(r)
	if err != nil {
		ape.RenderErr(w, problems.BadRequest(err)...)
		return
	}

	src, err := Chains(r).For(req.SourceChain)
	if err != nil {
		ape.RenderErr(w, problems.BadRequest(validation.Errors{"sourceChain": err})...)
		return
	}
	dst, err := Chains(r).For(req.DestinationChain)
	if err != nil {
		ape.RenderErr(w, problems.BadRequest(validation.Errors{"destinationChain": err})...)
		return
	}

	addrErrs := validation.Errors{}
	if !src.ValidateAddress(req.SourceUserAddress) {
		addrErrs["sourceUserAddress"] = errors.New("invalid address for the source chain")
	}
	if !src.ValidateAddress(req.SourceTokenAddress) {
		addrErrs["sourceTokenAddress"] = errors.New("invalid address for the source chain")
	}
	if !dst.ValidateAddress(req.DestinationUserAddress) {
		addrErrs["destinationUserAddress"] = errors.New("invalid address for the destination chain")
	}
	if !dst.ValidateAddress(req.DestinationTokenAddress) {
		addrErrs["destinationTokenAddress"] = errors.New("invalid address for the destination chain")
	}
	if err = addrErrs.Filter(); err != nil {
		ape.RenderErr(w, problems.BadRequest(err)...)
		return
	}

	if _, err = uint256.FromDecimal(req.SourceTokenAmount); err != nil {
		ape.RenderErr(w, problems.BadRequest(validation.Errors{"sourceTokenAmount": err})...)
		return
	}
	destAmount, err := uint256.FromDecimal(req.DestinationTokenAmount)
	if err != nil {
		ape.RenderErr(w, problems.BadRequest(validation.Errors{"destinationTokenAmount": err})...)
		return
	}

	start := time.Now().UTC()
	if req.AuctionStartTime != nil {
		start = req.AuctionStartTime.UTC()
	}

	order, err := Store(r).Orders().Insert(data.Order{
		SourceChain:             req.SourceChain,
		DestinationChain:        req.DestinationChain,
		SourceUserAddress:       req.SourceUserAddress,
		DestinationUserAddress:  req.DestinationUserAddress,
		SourceTokenAddress:      req.SourceTokenAddress,
		DestinationTokenAddress: req.DestinationTokenAddress,
		SourceTokenAmount:       req.SourceTokenAmount,
		DestinationTokenAmount:  req.DestinationTokenAmount,
		AuctionStartTime:        start,
		AuctionDuration:         req.AuctionDuration,
		Status:                  data.OrderAuctionOpen,
	})
	if err != nil {
		Log(r).WithError(err).Error("failed to insert order")
		ape.RenderErr(w, problems.InternalError())
		return
	}

	Bus(r).Publish(events.OrderCreated, order)
	Scheduler(r).Schedule(order.ID, order.AuctionStartTime, order.AuctionDuration, auction.DefaultCurve(destAmount))

	w.WriteHeader(http.StatusCreated)
	ape.Render(w, order)
}
