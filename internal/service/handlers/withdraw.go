package handlers

import (
	"net/http"

	"github.com/auralshin/crosschain-evm-aptos-swap/internal/escrow"
	"github.com/auralshin/crosschain-evm-aptos-swap/internal/service/requests"
	"gitlab.com/distributed_lab/ape"
	"gitlab.com/distributed_lab/ape/problems"
	"gitlab.com/distributed_lab/logan/v3/errors"
)

func Withdraw(w http.ResponseWriter, r *http.Request) {
	req, err := requests.NewWithdraw(r)
	if err != nil {
		ape.RenderErr(w, problems.BadRequest(err)...)
		return
	}

	result, err := Coordinator(r).Withdraw(r.Context(), req.OrderID, req.Side, escrow.WithdrawParams{
		Resolver:   req.ResolverAddress,
		Secret:     req.Secret,
		SecretHash: req.SecretHash,
	})
	switch errors.Cause(err) {
	case nil:
	case escrow.ErrOrderNotFound, escrow.ErrEscrowNotFound:
		ape.RenderErr(w, problems.NotFound())
		return
	case escrow.ErrNotWinner:
		ape.RenderErr(w, problems.Forbidden())
		return
	case escrow.ErrSecretOrHash, escrow.ErrHashlockMismatch:
		ape.RenderErr(w, problems.BadRequest(err)...)
		return
	default:
		Log(r).WithError(err).Error("failed to withdraw from escrow")
		ape.RenderErr(w, problems.InternalError())
		return
	}

	ape.Render(w, result)
}
