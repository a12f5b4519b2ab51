package auction

import (
	"testing"
	"time"

	"github.com/auralshin/crosschain-evm-aptos-swap/internal/data"
	"github.com/auralshin/crosschain-evm-aptos-swap/internal/data/mem"
	"github.com/auralshin/crosschain-evm-aptos-swap/internal/events"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/distributed_lab/logan/v3"
)

func newTestEngine(t *testing.T) (*Engine, *mem.Store) {
	t.Helper()
	log := logan.New()
	store := mem.NewStore()
	return NewEngine(log, store, events.NewBus(log)), store
}

func openOrder(t *testing.T, store *mem.Store, start time.Time, duration int64, destAmount string) data.Order {
	t.Helper()
	order, err := store.Orders().Insert(data.Order{
		SourceChain:            data.ChainEVM,
		DestinationChain:       data.ChainAptos,
		SourceTokenAmount:      "1",
		DestinationTokenAmount: destAmount,
		AuctionStartTime:       start,
		AuctionDuration:        duration,
		Status:                 data.OrderAuctionOpen,
	})
	require.NoError(t, err)
	return order
}

func TestPlaceBid(t *testing.T) {
	engine, store := newTestEngine(t)
	now := time.Unix(1_700_000_000, 0)
	engine.now = func() time.Time { return now }

	order := openOrder(t, store, now, 500, "1000")
	expiry := now.Add(time.Hour)

	// at t=0 the default curve price is the full destination amount
	bid, err := engine.PlaceBid(order.ID, PlaceBidParams{Resolver: "r1", BidAmount: "1000", Expiry: expiry})
	require.NoError(t, err)
	assert.Equal(t, data.BidPlaced, bid.Status)
	assert.Equal(t, "1000", bid.BidAmount)
	assert.Equal(t, "0", bid.FilledAmount)

	_, err = engine.PlaceBid(order.ID, PlaceBidParams{Resolver: "r2", BidAmount: "999", Expiry: expiry})
	assert.ErrorIs(t, err, ErrBidTooLow)

	// decayed price at the last segment is 40% of the amount, boundary inclusive
	now = now.Add(450 * time.Second)
	bid, err = engine.PlaceBid(order.ID, PlaceBidParams{Resolver: "r2", BidAmount: "400", Expiry: expiry})
	require.NoError(t, err)
	assert.Equal(t, "400", bid.BidAmount)

	_, err = engine.PlaceBid(order.ID, PlaceBidParams{Resolver: "r3", BidAmount: "399", Expiry: expiry})
	assert.ErrorIs(t, err, ErrBidTooLow)
}

func TestPlaceBidRejections(t *testing.T) {
	engine, store := newTestEngine(t)
	now := time.Unix(1_700_000_000, 0)
	engine.now = func() time.Time { return now }

	order := openOrder(t, store, now, 500, "1000")

	_, err := engine.PlaceBid(order.ID+42, PlaceBidParams{Resolver: "r", BidAmount: "1000", Expiry: now.Add(time.Hour)})
	assert.ErrorIs(t, err, ErrOrderNotFound)

	_, err = engine.PlaceBid(order.ID, PlaceBidParams{Resolver: "r", BidAmount: "1000", Expiry: now})
	assert.ErrorIs(t, err, ErrBidExpired)

	_, err = engine.PlaceBid(order.ID, PlaceBidParams{Resolver: "r", BidAmount: "not-a-number", Expiry: now.Add(time.Hour)})
	assert.ErrorIs(t, err, ErrBadAmount)

	// window elapsed
	now = now.Add(500 * time.Second)
	_, err = engine.PlaceBid(order.ID, PlaceBidParams{Resolver: "r", BidAmount: "1000", Expiry: now.Add(time.Hour)})
	assert.ErrorIs(t, err, ErrAuctionEnded)

	// closed order
	require.NoError(t, store.Orders().UpdateStatus(order.ID, data.OrderAuctionClosed))
	now = order.AuctionStartTime
	_, err = engine.PlaceBid(order.ID, PlaceBidParams{Resolver: "r", BidAmount: "1000", Expiry: now.Add(time.Hour)})
	assert.ErrorIs(t, err, ErrAuctionNotOpen)
}

func TestCloseAuctionAllocation(t *testing.T) {
	engine, store := newTestEngine(t)
	start := time.Unix(1_700_000_000, 0)
	now := start
	engine.now = func() time.Time { return now }

	order := openOrder(t, store, start, 500, "1000")
	expiry := start.Add(time.Hour)

	b1, err := engine.PlaceBid(order.ID, PlaceBidParams{Resolver: "r1", BidAmount: "900", Expiry: expiry,
		Curve: Curve{{Price: uint256.NewInt(800), Weight: 100}}})
	require.NoError(t, err)
	b2, err := engine.PlaceBid(order.ID, PlaceBidParams{Resolver: "r2", BidAmount: "950", Expiry: expiry,
		Curve: Curve{{Price: uint256.NewInt(800), Weight: 100}}})
	require.NoError(t, err)

	result, err := engine.CloseAuction(order.ID, start, 500, Curve{{Price: uint256.NewInt(800), Weight: 100}})
	require.NoError(t, err)

	assert.Equal(t, "800", result.ClearingPrice)
	require.Len(t, result.Winners, 2)
	// the lower bid fills first, the higher one takes the remainder
	assert.Equal(t, b1.ID, result.Winners[0].BidID)
	assert.Equal(t, "900", result.Winners[0].FilledAmount)
	assert.Equal(t, b2.ID, result.Winners[1].BidID)
	assert.Equal(t, "100", result.Winners[1].FilledAmount)
	assert.Equal(t, data.OrderAuctionClosed, result.Order.Status)

	bids, err := store.Bids().SelectByOrder(order.ID)
	require.NoError(t, err)
	for _, b := range bids {
		assert.Equal(t, data.BidWon, b.Status)
	}
}

func TestCloseAuctionSweepsLosers(t *testing.T) {
	engine, store := newTestEngine(t)
	start := time.Unix(1_700_000_000, 0)
	now := start
	engine.now = func() time.Time { return now }

	order := openOrder(t, store, start, 500, "1000")
	curve := Curve{{Price: uint256.NewInt(800), Weight: 100}}

	low, err := engine.PlaceBid(order.ID, PlaceBidParams{Resolver: "r1", BidAmount: "810",
		Expiry: start.Add(time.Minute), Curve: curve})
	require.NoError(t, err)

	// expires before the close below, so it cannot win
	now = start.Add(2 * time.Minute)

	result, err := engine.CloseAuction(order.ID, start, 500, curve)
	require.NoError(t, err)
	assert.Empty(t, result.Winners)

	bids, err := store.Bids().SelectByOrder(order.ID)
	require.NoError(t, err)
	require.Len(t, bids, 1)
	assert.Equal(t, low.ID, bids[0].ID)
	assert.Equal(t, data.BidLost, bids[0].Status)
}

func TestCloseAuctionTwice(t *testing.T) {
	engine, store := newTestEngine(t)
	start := time.Unix(1_700_000_000, 0)
	engine.now = func() time.Time { return start }

	order := openOrder(t, store, start, 500, "1000")
	curve := DefaultCurve(uint256.NewInt(1000))

	_, err := engine.CloseAuction(order.ID, start, 500, curve)
	require.NoError(t, err)

	_, err = engine.CloseAuction(order.ID, start, 500, curve)
	assert.ErrorIs(t, err, ErrAuctionNotOpen)
}

func TestCloseOrderUsesStoredSchedule(t *testing.T) {
	engine, store := newTestEngine(t)
	start := time.Unix(1_700_000_000, 0)
	engine.now = func() time.Time { return start.Add(500 * time.Second) }

	order := openOrder(t, store, start, 500, "1000")

	result, err := engine.CloseOrder(order.ID)
	require.NoError(t, err)
	// fully decayed default curve bottoms out at 40% of the amount
	assert.Equal(t, "400", result.ClearingPrice)

	_, err = engine.CloseOrder(order.ID + 42)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}
