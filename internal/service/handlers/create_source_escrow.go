package handlers

import (
	"net/http"

	"github.com/auralshin/crosschain-evm-aptos-swap/internal/escrow"
	"github.com/auralshin/crosschain-evm-aptos-swap/internal/service/requests"
	"github.com/ethereum/go-ethereum/common"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/holiman/uint256"
	"gitlab.com/distributed_lab/ape"
	"gitlab.com/distributed_lab/ape/problems"
	"gitlab.com/distributed_lab/logan/v3/errors"
)

func CreateSourceEscrow(w http.ResponseWriter, r *http.Request) {
	req, err := requests.NewCreateSourceEscrow(r)
	if err != nil {
		ape.RenderErr(w, problems.BadRequest(err)...)
		return
	}

	deposit, err := uint256.FromDecimal(req.SafetyDeposit)
	if err != nil {
		ape.RenderErr(w, problems.BadRequest(validation.Errors{"safetyDeposit": err})...)
		return
	}

	esc, err := Coordinator(r).CreateSourceEscrow(r.Context(), req.OrderID, escrow.SourceParams{
		Resolver:      req.ResolverAddress,
		OrderHash:     common.HexToHash(req.OrderHash),
		Hashlock:      common.HexToHash(req.Hashlock),
		SafetyDeposit: deposit,
	})
	switch errors.Cause(err) {
	case nil:
	case escrow.ErrOrderNotFound:
		ape.RenderErr(w, problems.NotFound())
		return
	case escrow.ErrOrderNotCleared, escrow.ErrEscrowExists:
		ape.RenderErr(w, problems.Conflict())
		return
	case escrow.ErrNotWinner:
		ape.RenderErr(w, problems.Forbidden())
		return
	default:
		Log(r).WithError(err).Error("failed to create source escrow")
		ape.RenderErr(w, problems.InternalError())
		return
	}

	w.WriteHeader(http.StatusCreated)
	ape.Render(w, esc)
}
