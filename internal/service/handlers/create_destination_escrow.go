package handlers

import (
	"net/http"

	"github.com/auralshin/crosschain-evm-aptos-swap/internal/escrow"
	"github.com/auralshin/crosschain-evm-aptos-swap/internal/service/requests"
	"github.com/auralshin/crosschain-evm-aptos-swap/internal/swap"
	"github.com/ethereum/go-ethereum/common"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/holiman/uint256"
	"gitlab.com/distributed_lab/ape"
	"gitlab.com/distributed_lab/ape/problems"
	"gitlab.com/distributed_lab/logan/v3/errors"
)

func CreateDestinationEscrow(w http.ResponseWriter, r *http.Request) {
	req, err := requests.NewCreateDestinationEscrow(r)
	if err != nil {
		ape.RenderErr(w, problems.BadRequest(err)...)
		return
	}

	deposit, err := uint256.FromDecimal(req.SafetyDeposit)
	if err != nil {
		ape.RenderErr(w, problems.BadRequest(validation.Errors{"safetyDeposit": err})...)
		return
	}
	protocolFee, err := feeAmount(req.ProtocolFeeAmount)
	if err != nil {
		ape.RenderErr(w, problems.BadRequest(validation.Errors{"protocolFeeAmount": err})...)
		return
	}
	integratorFee, err := feeAmount(req.IntegratorFeeAmount)
	if err != nil {
		ape.RenderErr(w, problems.BadRequest(validation.Errors{"integratorFeeAmount": err})...)
		return
	}

	esc, err := Coordinator(r).CreateDestinationEscrow(r.Context(), req.OrderID, escrow.DestinationParams{
		Resolver:      req.ResolverAddress,
		SafetyDeposit: deposit,
		Fees: swap.FeeParams{
			ProtocolFeeAmount:      protocolFee,
			IntegratorFeeAmount:    integratorFee,
			ProtocolFeeRecipient:   common.HexToAddress(req.ProtocolFeeRecipient),
			IntegratorFeeRecipient: common.HexToAddress(req.IntegratorFeeRecipient),
		},
	})
	switch errors.Cause(err) {
	case nil:
	case escrow.ErrOrderNotFound:
		ape.RenderErr(w, problems.NotFound())
		return
	case escrow.ErrNoSourceEscrow, escrow.ErrEscrowExists:
		ape.RenderErr(w, problems.Conflict())
		return
	case escrow.ErrNotWinner:
		ape.RenderErr(w, problems.Forbidden())
		return
	default:
		Log(r).WithError(err).Error("failed to create destination escrow")
		ape.RenderErr(w, problems.InternalError())
		return
	}

	w.WriteHeader(http.StatusCreated)
	ape.Render(w, esc)
}

func feeAmount(raw string) (*uint256.Int, error) {
	if raw == "" {
		return uint256.NewInt(0), nil
	}
	return uint256.FromDecimal(raw)
}
