package postgres

import (
	"github.com/auralshin/crosschain-evm-aptos-swap/internal/data"
	"gitlab.com/distributed_lab/kit/pgdb"
)

type store struct {
	db *pgdb.DB
}

func NewStore(db *pgdb.DB) data.Store {
	return &store{db: db}
}

func (s *store) Orders() data.Orders   { return orders{db: s.db} }
func (s *store) Bids() data.Bids       { return bids{db: s.db} }
func (s *store) Escrows() data.Escrows { return escrows{db: s.db} }
func (s *store) Secrets() data.Secrets { return secrets{db: s.db} }

func (s *store) Transaction(fn func(data.Store) error) error {
	db := s.db.Clone()
	return db.Transaction(func() error {
		return fn(&store{db: db})
	})
}
