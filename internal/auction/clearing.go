package auction

import (
	"sort"
	"time"

	"github.com/auralshin/crosschain-evm-aptos-swap/internal/data"
	"github.com/auralshin/crosschain-evm-aptos-swap/internal/events"
	"github.com/holiman/uint256"
	"gitlab.com/distributed_lab/logan/v3"
	"gitlab.com/distributed_lab/logan/v3/errors"
)

type Winner struct {
	BidID        int64  `json:"bidId"`
	Resolver     string `json:"resolver"`
	FilledAmount string `json:"filledAmount"`
}

type CloseResult struct {
	ClearingPrice string     `json:"clearingPrice"`
	Winners       []Winner   `json:"winners"`
	Order         data.Order `json:"order"`
}

// CloseAuction computes the clearing price, allocates winners greedily from
// the lowest qualifying bid up and sweeps every remaining PLACED bid to LOST.
// All writes run in one transaction; closing a closed auction fails.
func (e *Engine) CloseAuction(orderID int64, start time.Time, duration int64, curve Curve) (*CloseResult, error) {
	lock := e.orderLock(orderID)
	lock.Lock()
	defer lock.Unlock()

	now := e.now()
	clearingPrice := PriceAt(start, duration, curve, now)

	var result CloseResult
	txErr := e.store.Transaction(func(s data.Store) error {
		order, err := s.Orders().Get(orderID)
		if err != nil {
			return errors.Wrap(err, "failed to get order")
		}
		if order == nil {
			return ErrOrderNotFound
		}
		if order.Status != data.OrderAuctionOpen {
			return ErrAuctionNotOpen
		}

		orderBids, err := s.Bids().SelectByOrder(orderID)
		if err != nil {
			return errors.Wrap(err, "failed to select bids")
		}

		valid := make([]data.Bid, 0, len(orderBids))
		amounts := make(map[int64]*uint256.Int, len(orderBids))
		for _, b := range orderBids {
			if b.Status != data.BidPlaced || !b.Expiry.After(now) {
				continue
			}
			amount, err := uint256.FromDecimal(b.BidAmount)
			if err != nil {
				return errors.Wrap(err, "failed to parse bid amount")
			}
			if amount.Lt(clearingPrice) {
				continue
			}
			valid = append(valid, b)
			amounts[b.ID] = amount
		}

		// lowest qualifying bid first: fill the resolver closest to the decayed price
		sort.SliceStable(valid, func(i, j int) bool {
			return amounts[valid[i].ID].Lt(amounts[valid[j].ID])
		})

		remaining, err := uint256.FromDecimal(order.DestinationTokenAmount)
		if err != nil {
			return errors.Wrap(err, "failed to parse destination amount")
		}

		winners := make([]Winner, 0, len(valid))
		winnerIDs := make([]int64, 0, len(valid))
		for _, b := range valid {
			if remaining.IsZero() {
				break
			}

			fill := amounts[b.ID]
			if remaining.Lt(fill) {
				fill = remaining
			}
			remaining = new(uint256.Int).Sub(remaining, fill)

			if err = s.Bids().MarkWon(b.ID, fill.Dec()); err != nil {
				return errors.Wrap(err, "failed to mark winning bid")
			}
			winners = append(winners, Winner{BidID: b.ID, Resolver: b.Resolver, FilledAmount: fill.Dec()})
			winnerIDs = append(winnerIDs, b.ID)
		}

		// sweep runs even with zero winners, stale PLACED bids must not survive a close
		if err = s.Bids().MarkLost(orderID, winnerIDs); err != nil {
			return errors.Wrap(err, "failed to mark losing bids")
		}

		if err = s.Orders().UpdateStatus(orderID, data.OrderAuctionClosed); err != nil {
			return errors.Wrap(err, "failed to update order status")
		}
		order.Status = data.OrderAuctionClosed

		result = CloseResult{
			ClearingPrice: clearingPrice.Dec(),
			Winners:       winners,
			Order:         *order,
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	e.bus.Publish(events.AuctionClosed, result)
	e.log.WithFields(logan.F{
		"order_id":       orderID,
		"clearing_price": result.ClearingPrice,
		"winners":        len(result.Winners),
	}).Info("auction closed")

	return &result, nil
}

// CloseOrder closes the auction using the order's stored schedule and the
// curve seeded from its destination amount. Entry point for the manual
// close-auction call, the scheduler passes its own parameters.
func (e *Engine) CloseOrder(orderID int64) (*CloseResult, error) {
	order, err := e.store.Orders().Get(orderID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get order")
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	seed, err := uint256.FromDecimal(order.DestinationTokenAmount)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse destination amount")
	}

	return e.CloseAuction(orderID, order.AuctionStartTime, order.AuctionDuration, DefaultCurve(seed))
}
