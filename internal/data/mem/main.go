// Package mem is an in-memory data.Store used by package tests. Writes are
// applied eagerly, so a failed Transaction is not rolled back; tests that
// care about atomicity assert on the error paths before the first write.
package mem

import (
	"sync"

	"github.com/auralshin/crosschain-evm-aptos-swap/internal/data"
)

type Store struct {
	mu sync.Mutex

	orders  map[int64]data.Order
	bids    map[int64]data.Bid
	escrows map[int64]data.Escrow
	secrets map[int64]data.Secret

	nextID int64
}

func NewStore() *Store {
	return &Store{
		orders:  make(map[int64]data.Order),
		bids:    make(map[int64]data.Bid),
		escrows: make(map[int64]data.Escrow),
		secrets: make(map[int64]data.Secret),
	}
}

func (s *Store) Orders() data.Orders   { return (*orders)(s) }
func (s *Store) Bids() data.Bids       { return (*bids)(s) }
func (s *Store) Escrows() data.Escrows { return (*escrows)(s) }
func (s *Store) Secrets() data.Secrets { return (*secrets)(s) }

func (s *Store) Transaction(fn func(data.Store) error) error {
	return fn(s)
}

func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

type orders Store

func (s *orders) Insert(o data.Order) (data.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o.ID = (*Store)(s).id()
	s.orders[o.ID] = o
	return o, nil
}

func (s *orders) Get(id int64) (*data.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (s *orders) SelectByStatus(statuses ...data.OrderStatus) ([]data.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []data.Order
	for _, o := range s.orders {
		for _, st := range statuses {
			if o.Status == st {
				out = append(out, o)
				break
			}
		}
	}
	return out, nil
}

func (s *orders) UpdateStatus(id int64, status data.OrderStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o := s.orders[id]
	o.Status = status
	s.orders[id] = o
	return nil
}

type bids Store

func (s *bids) Insert(b data.Bid) (data.Bid, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b.ID = (*Store)(s).id()
	s.bids[b.ID] = b
	return b, nil
}

func (s *bids) SelectByOrder(orderID int64) ([]data.Bid, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []data.Bid
	for _, b := range s.bids {
		if b.OrderID == orderID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *bids) MarkWon(id int64, filledAmount string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.bids[id]
	b.Status = data.BidWon
	b.FilledAmount = filledAmount
	s.bids[id] = b
	return nil
}

func (s *bids) MarkLost(orderID int64, exceptIDs []int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	skip := make(map[int64]struct{}, len(exceptIDs))
	for _, id := range exceptIDs {
		skip[id] = struct{}{}
	}
	for id, b := range s.bids {
		if b.OrderID != orderID || b.Status != data.BidPlaced {
			continue
		}
		if _, ok := skip[id]; ok {
			continue
		}
		b.Status = data.BidLost
		s.bids[id] = b
	}
	return nil
}

type escrows Store

func (s *escrows) Insert(e data.Escrow) (data.Escrow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = (*Store)(s).id()
	s.escrows[e.ID] = e
	return e, nil
}

func (s *escrows) GetBySide(orderID int64, side data.EscrowSide) (*data.Escrow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.escrows {
		if e.OrderID == orderID && e.Side == side {
			e := e
			return &e, nil
		}
	}
	return nil, nil
}

func (s *escrows) SelectByOrder(orderID int64) ([]data.Escrow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []data.Escrow
	for _, e := range s.escrows {
		if e.OrderID == orderID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *escrows) UpdateStatus(id int64, status data.EscrowStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.escrows[id]
	e.Status = status
	s.escrows[id] = e
	return nil
}

type secrets Store

func (s *secrets) Insert(sec data.Secret) (data.Secret, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sec.ID = (*Store)(s).id()
	s.secrets[sec.ID] = sec
	return sec, nil
}

func (s *secrets) GetByOrder(orderID int64) (*data.Secret, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sec := range s.secrets {
		if sec.OrderID == orderID {
			sec := sec
			return &sec, nil
		}
	}
	return nil, nil
}
