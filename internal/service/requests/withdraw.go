package requests

import (
	"encoding/json"
	"net/http"

	"github.com/auralshin/crosschain-evm-aptos-swap/internal/data"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gitlab.com/distributed_lab/logan/v3/errors"
)

type Withdraw struct {
	OrderID int64 `json:"-"`

	ResolverAddress string          `json:"resolverAddress"`
	Side            data.EscrowSide `json:"side"`
	// Secret claims the escrow, SecretHash refunds it; exactly one is required
	Secret     string `json:"secret"`
	SecretHash string `json:"secretHash"`
}

func NewWithdraw(r *http.Request) (Withdraw, error) {
	var req Withdraw
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, errors.Wrap(err, "failed to decode request body")
	}

	var err error
	if req.OrderID, err = OrderID(r); err != nil {
		return req, validation.Errors{"id": err}
	}

	return req, validation.Errors{
		"resolverAddress": validation.Validate(req.ResolverAddress, validation.Required),
		"side":            validation.Validate(req.Side, validation.Required, validation.In(data.EscrowSideSrc, data.EscrowSideDst)),
	}.Filter()
}

type RevealSecret struct {
	OrderID int64 `json:"-"`

	Secret string `json:"secret"`
}

func NewRevealSecret(r *http.Request) (RevealSecret, error) {
	var req RevealSecret
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, errors.Wrap(err, "failed to decode request body")
	}

	var err error
	if req.OrderID, err = OrderID(r); err != nil {
		return req, validation.Errors{"id": err}
	}

	return req, validation.Errors{
		"secret": validation.Validate(req.Secret, validation.Required),
	}.Filter()
}
