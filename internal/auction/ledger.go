package auction

import (
	"time"

	"github.com/auralshin/crosschain-evm-aptos-swap/internal/data"
	"github.com/auralshin/crosschain-evm-aptos-swap/internal/events"
	"github.com/holiman/uint256"
	"gitlab.com/distributed_lab/logan/v3/errors"
)

type PlaceBidParams struct {
	Resolver  string
	BidAmount string
	Expiry    time.Time
	// Curve overrides the seeded decay curve when the maker supplied one
	Curve Curve
}

// PlaceBid validates a resolver bid against the live curve and records it.
// Bids at exactly the current price are accepted, anything below is rejected.
func (e *Engine) PlaceBid(orderID int64, params PlaceBidParams) (data.Bid, error) {
	lock := e.orderLock(orderID)
	lock.Lock()
	defer lock.Unlock()

	order, err := e.store.Orders().Get(orderID)
	if err != nil {
		return data.Bid{}, errors.Wrap(err, "failed to get order")
	}
	if order == nil {
		return data.Bid{}, ErrOrderNotFound
	}
	if order.Status != data.OrderAuctionOpen {
		return data.Bid{}, ErrAuctionNotOpen
	}

	now := e.now()
	end := order.AuctionStartTime.Add(time.Duration(order.AuctionDuration) * time.Second)
	if !now.Before(end) {
		return data.Bid{}, ErrAuctionEnded
	}
	if !params.Expiry.After(now) {
		return data.Bid{}, ErrBidExpired
	}

	bidAmount, err := uint256.FromDecimal(params.BidAmount)
	if err != nil {
		return data.Bid{}, ErrBadAmount
	}

	curve := params.Curve
	if len(curve) == 0 {
		seed, err := uint256.FromDecimal(order.DestinationTokenAmount)
		if err != nil {
			return data.Bid{}, errors.Wrap(err, "failed to parse destination amount")
		}
		curve = DefaultCurve(seed)
	}

	currentPrice := PriceAt(order.AuctionStartTime, order.AuctionDuration, curve, now)
	if bidAmount.Lt(currentPrice) {
		return data.Bid{}, ErrBidTooLow
	}

	bid, err := e.store.Bids().Insert(data.Bid{
		OrderID:      orderID,
		Resolver:     params.Resolver,
		BidAmount:    bidAmount.Dec(),
		Expiry:       params.Expiry,
		Status:       data.BidPlaced,
		FilledAmount: "0",
	})
	if err != nil {
		return data.Bid{}, errors.Wrap(err, "failed to insert bid")
	}

	e.bus.Publish(events.BidPlaced, bid)
	e.log.WithField("order_id", orderID).WithField("bid_id", bid.ID).Debug("bid placed")

	return bid, nil
}
