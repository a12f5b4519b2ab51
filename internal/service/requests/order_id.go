package requests

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"gitlab.com/distributed_lab/logan/v3/errors"
)

// OrderID parses the {id} URL parameter shared by all per-order endpoints.
func OrderID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, errors.Wrap(err, "order id must be an integer")
	}
	if id <= 0 {
		return 0, errors.New("order id must be positive")
	}
	return id, nil
}
