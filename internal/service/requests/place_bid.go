package requests

import (
	"encoding/json"
	"net/http"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gitlab.com/distributed_lab/logan/v3/errors"
)

type PlaceBid struct {
	OrderID int64 `json:"-"`

	ResolverAddress string    `json:"resolverAddress"`
	BidAmount       string    `json:"bidAmount"`
	Expiry          time.Time `json:"expiry"`
}

func NewPlaceBid(r *http.Request) (PlaceBid, error) {
	var req PlaceBid
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, errors.Wrap(err, "failed to decode request body")
	}

	var err error
	if req.OrderID, err = OrderID(r); err != nil {
		return req, validation.Errors{"id": err}
	}

	return req, validation.Errors{
		"resolverAddress": validation.Validate(req.ResolverAddress, validation.Required),
		"bidAmount":       validation.Validate(req.BidAmount, validation.Required),
		"expiry":          validation.Validate(req.Expiry, validation.Required),
	}.Filter()
}
