package handlers

import (
	"net/http"

	"github.com/auralshin/crosschain-evm-aptos-swap/internal/data"
	"github.com/auralshin/crosschain-evm-aptos-swap/internal/service/requests"
	"gitlab.com/distributed_lab/ape"
	"gitlab.com/distributed_lab/ape/problems"
)

type orderDetails struct {
	data.Order
	Bids    []data.Bid    `json:"bids"`
	Escrows []data.Escrow `json:"escrows"`
	Secret  *data.Secret  `json:"secret,omitempty"`
}

func GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := requests.OrderID(r)
	if err != nil {
		ape.RenderErr(w, problems.BadRequest(err)...)
		return
	}

	order, err := Store(r).Orders().Get(id)
	if err != nil {
		Log(r).WithError(err).Error("failed to get order")
		ape.RenderErr(w, problems.InternalError())
		return
	}
	if order == nil {
		ape.RenderErr(w, problems.NotFound())
		return
	}

	bids, err := Store(r).Bids().SelectByOrder(id)
	if err != nil {
		Log(r).WithError(err).Error("failed to select bids")
		ape.RenderErr(w, problems.InternalError())
		return
	}
	escrows, err := Store(r).Escrows().SelectByOrder(id)
	if err != nil {
		Log(r).WithError(err).Error("failed to select escrows")
		ape.RenderErr(w, problems.InternalError())
		return
	}
	secret, err := Store(r).Secrets().GetByOrder(id)
	if err != nil {
		Log(r).WithError(err).Error("failed to get secret")
		ape.RenderErr(w, problems.InternalError())
		return
	}

	ape.Render(w, orderDetails{
		Order:   *order,
		Bids:    bids,
		Escrows: escrows,
		Secret:  secret,
	})
}
