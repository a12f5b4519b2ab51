package requests

import (
	"encoding/json"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"gitlab.com/distributed_lab/logan/v3/errors"
)

type CreateSourceEscrow struct {
	OrderID int64 `json:"-"`

	ResolverAddress string `json:"resolverAddress"`
	OrderHash       string `json:"orderHash"`
	Hashlock        string `json:"hashlock"`
	SafetyDeposit   string `json:"safetyDeposit"`
}

func NewCreateSourceEscrow(r *http.Request) (CreateSourceEscrow, error) {
	var req CreateSourceEscrow
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, errors.Wrap(err, "failed to decode request body")
	}

	var err error
	if req.OrderID, err = OrderID(r); err != nil {
		return req, validation.Errors{"id": err}
	}

	return req, validation.Errors{
		"resolverAddress": validation.Validate(req.ResolverAddress, validation.Required),
		"orderHash":       validation.Validate(req.OrderHash, validation.Required),
		"hashlock":        validation.Validate(req.Hashlock, validation.Required),
		"safetyDeposit":   validation.Validate(req.SafetyDeposit, validation.Required, is.Digit),
	}.Filter()
}

type CreateDestinationEscrow struct {
	OrderID int64 `json:"-"`

	ResolverAddress string `json:"resolverAddress"`
	SafetyDeposit   string `json:"safetyDeposit"`

	ProtocolFeeAmount      string `json:"protocolFeeAmount"`
	IntegratorFeeAmount    string `json:"integratorFeeAmount"`
	ProtocolFeeRecipient   string `json:"protocolFeeRecipient"`
	IntegratorFeeRecipient string `json:"integratorFeeRecipient"`
}

func NewCreateDestinationEscrow(r *http.Request) (CreateDestinationEscrow, error) {
	var req CreateDestinationEscrow
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, errors.Wrap(err, "failed to decode request body")
	}

	var err error
	if req.OrderID, err = OrderID(r); err != nil {
		return req, validation.Errors{"id": err}
	}

	return req, validation.Errors{
		"resolverAddress":     validation.Validate(req.ResolverAddress, validation.Required),
		"safetyDeposit":       validation.Validate(req.SafetyDeposit, validation.Required, is.Digit),
		"protocolFeeAmount":   validation.Validate(req.ProtocolFeeAmount, is.Digit),
		"integratorFeeAmount": validation.Validate(req.IntegratorFeeAmount, is.Digit),
	}.Filter()
}
