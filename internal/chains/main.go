package chains

import (
	"context"

	"github.com/auralshin/crosschain-evm-aptos-swap/internal/data"
	"github.com/auralshin/crosschain-evm-aptos-swap/internal/swap"
	"gitlab.com/distributed_lab/logan/v3/errors"
)

type CreateResult struct {
	// Address of the escrow on chain
	Address string
	// TxRef is the creation transaction reference
	TxRef string
	// DeployedAt is the on-chain deployment timestamp, unix seconds
	DeployedAt uint64
}

type WithdrawResult struct {
	TxRef string
}

// WithdrawParams carries exactly one of Secret (claim path) or SecretHash
// (refund path); the coordinator enforces the exclusivity.
type WithdrawParams struct {
	Secret     []byte
	SecretHash []byte
}

// Adapter is the uniform per-chain capability the escrow coordinator drives.
// Implementations own all RPC plumbing for their ledger.
type Adapter interface {
	CreateEscrow(ctx context.Context, side data.EscrowSide, imm swap.Immutables) (CreateResult, error)
	Withdraw(ctx context.Context, side data.EscrowSide, params WithdrawParams, imm swap.Immutables) (WithdrawResult, error)
	ValidateAddress(address string) bool
}

// Set dispatches chain-tagged calls through a lookup table, no branching
// duplication per chain.
type Set map[data.Chain]Adapter

func (s Set) For(chain data.Chain) (Adapter, error) {
	a, ok := s[chain]
	if !ok {
		return nil, errors.Errorf("unsupported chain: %s", chain)
	}
	return a, nil
}
