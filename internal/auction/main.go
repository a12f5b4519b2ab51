package auction

import (
	"sync"
	"time"

	"github.com/auralshin/crosschain-evm-aptos-swap/internal/data"
	"github.com/auralshin/crosschain-evm-aptos-swap/internal/events"
	"gitlab.com/distributed_lab/logan/v3"
	"gitlab.com/distributed_lab/logan/v3/errors"
)

var (
	ErrOrderNotFound  = errors.New("order not found")
	ErrAuctionNotOpen = errors.New("auction is not open")
	ErrAuctionEnded   = errors.New("auction has already ended")
	ErrBidExpired     = errors.New("bid expiry must be in the future")
	ErrBidTooLow      = errors.New("bid is below the current auction price")
	ErrBadAmount      = errors.New("amount is not a valid decimal integer")
)

// Engine owns bid placement and auction clearing. Both operations take the
// same per-order lock, so a close and a concurrent bid against one order
// never interleave; operations on distinct orders stay independent.
type Engine struct {
	log   *logan.Entry
	store data.Store
	bus   *events.Bus

	mu    sync.Mutex
	locks map[int64]*sync.Mutex

	now func() time.Time
}

func NewEngine(log *logan.Entry, store data.Store, bus *events.Bus) *Engine {
	return &Engine{
		log:   log.WithField("component", "auction"),
		store: store,
		bus:   bus,
		locks: make(map[int64]*sync.Mutex),
		now:   time.Now,
	}
}

func (e *Engine) orderLock(orderID int64) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()
	l, ok := e.locks[orderID]
	if !ok {
		l = new(sync.Mutex)
		e.locks[orderID] = l
	}
	return l
}
