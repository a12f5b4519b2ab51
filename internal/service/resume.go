package service

import (
	"context"
	"time"

	"github.com/auralshin/crosschain-evm-aptos-swap/internal/auction"
	"github.com/auralshin/crosschain-evm-aptos-swap/internal/data"
	"github.com/holiman/uint256"
	"gitlab.com/distributed_lab/logan/v3/errors"
	"gitlab.com/distributed_lab/running"
)

// resumeAuctions re-arms a close timer for every order still in
// AUCTION_OPEN after a restart. Overdue auctions close immediately through
// the scheduler's synchronous path.
func (s *service) resumeAuctions(ctx context.Context) {
	running.UntilSuccess(ctx, s.log, "auctions-resume", func(ctx context.Context) (bool, error) {
		orders, err := s.store.Orders().SelectByStatus(data.OrderAuctionOpen)
		if err != nil {
			return false, errors.Wrap(err, "failed to select open orders")
		}

		for _, order := range orders {
			seed, err := uint256.FromDecimal(order.DestinationTokenAmount)
			if err != nil {
				s.log.WithError(err).WithField("order_id", order.ID).
					Error("failed to parse destination amount, skipping order")
				continue
			}
			s.scheduler.Schedule(order.ID, order.AuctionStartTime, order.AuctionDuration, auction.DefaultCurve(seed))
		}

		s.log.WithField("orders", len(orders)).Info("rescheduled open auctions")
		return true, nil
	}, time.Second, time.Minute)
}
