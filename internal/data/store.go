package data

// Chain tags the ledger an address or escrow lives on.
type Chain string

const (
	ChainEVM   Chain = "EVM"
	ChainAptos Chain = "APTOS"
)

type Store interface {
	Orders() Orders
	Bids() Bids
	Escrows() Escrows
	Secrets() Secrets

	// Transaction runs fn against a store bound to a single DB transaction.
	// Every multi-write sequence (clearing, escrow transitions) must go through it.
	Transaction(fn func(Store) error) error
}
