package handlers

import (
	"net/http"

	"github.com/auralshin/crosschain-evm-aptos-swap/internal/escrow"
	"github.com/auralshin/crosschain-evm-aptos-swap/internal/service/requests"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gitlab.com/distributed_lab/ape"
	"gitlab.com/distributed_lab/ape/problems"
	"gitlab.com/distributed_lab/logan/v3/errors"
)

// RevealSecret accepts the maker's preimage once the destination escrow is
// funded, verifying it against the hashlock both legs committed to.
func RevealSecret(w http.ResponseWriter, r *http.Request) {
	req, err := requests.NewRevealSecret(r)
	if err != nil {
		ape.RenderErr(w, problems.BadRequest(err)...)
		return
	}

	secret, err := Coordinator(r).RevealSecret(req.OrderID, req.Secret)
	switch errors.Cause(err) {
	case nil:
	case escrow.ErrNoDstEscrow, escrow.ErrAlreadyRevealed:
		ape.RenderErr(w, problems.Conflict())
		return
	case escrow.ErrHashlockMismatch:
		ape.RenderErr(w, problems.BadRequest(validation.Errors{"secret": err})...)
		return
	default:
		Log(r).WithError(err).Error("failed to reveal secret")
		ape.RenderErr(w, problems.InternalError())
		return
	}

	w.WriteHeader(http.StatusCreated)
	ape.Render(w, secret)
}
