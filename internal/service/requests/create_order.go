package requests

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/auralshin/crosschain-evm-aptos-swap/internal/data"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gitlab.com/distributed_lab/logan/v3/errors"
)

type CreateOrder struct {
	SourceChain      data.Chain `json:"sourceChain"`
	DestinationChain data.Chain `json:"destinationChain"`

	SourceUserAddress       string `json:"sourceUserAddress"`
	DestinationUserAddress  string `json:"destinationUserAddress"`
	SourceTokenAddress      string `json:"sourceTokenAddress"`
	DestinationTokenAddress string `json:"destinationTokenAddress"`

	SourceTokenAmount      string `json:"sourceTokenAmount"`
	DestinationTokenAmount string `json:"destinationTokenAmount"`

	// AuctionDuration is in seconds
	AuctionDuration int64 `json:"auctionDuration"`
	// AuctionStartTime defaults to now when omitted
	AuctionStartTime *time.Time `json:"auctionStartTime"`
}

var chainRule = validation.In(data.ChainEVM, data.ChainAptos)

func NewCreateOrder(r *http.Request) (CreateOrder, error) {
	var req CreateOrder
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, errors.Wrap(err, "failed to decode request body")
	}

	return req, validation.Errors{
		"sourceChain":             validation.Validate(req.SourceChain, validation.Required, chainRule),
		"destinationChain":        validation.Validate(req.DestinationChain, validation.Required, chainRule),
		"sourceUserAddress":       validation.Validate(req.SourceUserAddress, validation.Required),
		"destinationUserAddress":  validation.Validate(req.DestinationUserAddress, validation.Required),
		"sourceTokenAddress":      validation.Validate(req.SourceTokenAddress, validation.Required),
		"destinationTokenAddress": validation.Validate(req.DestinationTokenAddress, validation.Required),
		"sourceTokenAmount":       validation.Validate(req.SourceTokenAmount, validation.Required),
		"destinationTokenAmount":  validation.Validate(req.DestinationTokenAmount, validation.Required),
		"auctionDuration":         validation.Validate(req.AuctionDuration, validation.Required, validation.Min(int64(1))),
	}.Filter()
}
