package escrow

import (
	"context"
	"encoding/hex"
	"strings"
	"time"

	"github.com/auralshin/crosschain-evm-aptos-swap/internal/chains"
	"github.com/auralshin/crosschain-evm-aptos-swap/internal/data"
	"github.com/auralshin/crosschain-evm-aptos-swap/internal/events"
	"github.com/auralshin/crosschain-evm-aptos-swap/internal/swap"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"gitlab.com/distributed_lab/logan/v3"
	"gitlab.com/distributed_lab/logan/v3/errors"
)

var (
	ErrOrderNotFound    = errors.New("order not found")
	ErrOrderNotCleared  = errors.New("order auction is not closed yet")
	ErrNoSourceEscrow   = errors.New("source escrow does not exist")
	ErrNoDstEscrow      = errors.New("destination escrow does not exist")
	ErrEscrowExists     = errors.New("escrow already exists for this side")
	ErrEscrowNotFound   = errors.New("escrow not found")
	ErrNotWinner        = errors.New("resolver did not win this auction")
	ErrSecretOrHash     = errors.New("exactly one of secret and secretHash must be provided")
	ErrHashlockMismatch = errors.New("secret does not match the escrow hashlock")
	ErrAlreadyRevealed  = errors.New("secret already revealed for this order")
)

// Coordinator drives escrow creation and secret reveal on both legs and owns
// the order status machine past AUCTION_CLOSED.
type Coordinator struct {
	log       *logan.Entry
	store     data.Store
	bus       *events.Bus
	chains    chains.Set
	timelocks swap.Timelocks

	now func() time.Time
}

func NewCoordinator(log *logan.Entry, store data.Store, bus *events.Bus, set chains.Set, timelocks swap.Timelocks) *Coordinator {
	return &Coordinator{
		log:       log.WithField("component", "escrow"),
		store:     store,
		bus:       bus,
		chains:    set,
		timelocks: timelocks,
		now:       time.Now,
	}
}

// SourceParams come from the winning resolver driving the source leg.
type SourceParams struct {
	Resolver      string
	OrderHash     common.Hash
	Hashlock      common.Hash
	SafetyDeposit *uint256.Int
}

// DestinationParams mirror SourceParams for the destination leg, plus the
// fee split baked into the escrow parameters.
type DestinationParams struct {
	Resolver      string
	SafetyDeposit *uint256.Int
	Fees          swap.FeeParams
}

// WithdrawParams select the claim path (Secret) or the refund path
// (SecretHash); exactly one must be set.
type WithdrawParams struct {
	Resolver   string
	Secret     string
	SecretHash string
}

// wonBy reports whether the resolver holds a winning bid on the order.
func (c *Coordinator) wonBy(orderID int64, resolver string) (bool, error) {
	orderBids, err := c.store.Bids().SelectByOrder(orderID)
	if err != nil {
		return false, errors.Wrap(err, "failed to select bids")
	}
	for _, b := range orderBids {
		if b.Status == data.BidWon && strings.EqualFold(b.Resolver, resolver) {
			return true, nil
		}
	}
	return false, nil
}

func (c *Coordinator) winningResolver(orderID int64) (string, error) {
	orderBids, err := c.store.Bids().SelectByOrder(orderID)
	if err != nil {
		return "", errors.Wrap(err, "failed to select bids")
	}
	for _, b := range orderBids {
		if b.Status == data.BidWon {
			return b.Resolver, nil
		}
	}
	return "", ErrNotWinner
}

// CreateSourceEscrow locks the maker's funds on the source chain and
// advances the order to SRC_ESCROW_CREATED. Only a winning resolver may
// drive it.
func (c *Coordinator) CreateSourceEscrow(ctx context.Context, orderID int64, params SourceParams) (data.Escrow, error) {
	order, err := c.store.Orders().Get(orderID)
	if err != nil {
		return data.Escrow{}, errors.Wrap(err, "failed to get order")
	}
	if order == nil {
		return data.Escrow{}, ErrOrderNotFound
	}

	// a repeat call must surface the duplicate, not the already-advanced status
	existing, err := c.store.Escrows().GetBySide(orderID, data.EscrowSideSrc)
	if err != nil {
		return data.Escrow{}, errors.Wrap(err, "failed to check existing escrow")
	}
	if existing != nil {
		return data.Escrow{}, ErrEscrowExists
	}

	if order.Status != data.OrderAuctionClosed {
		return data.Escrow{}, ErrOrderNotCleared
	}

	won, err := c.wonBy(orderID, params.Resolver)
	if err != nil {
		return data.Escrow{}, err
	}
	if !won {
		return data.Escrow{}, ErrNotWinner
	}

	amount, err := uint256.FromDecimal(order.SourceTokenAmount)
	if err != nil {
		return data.Escrow{}, errors.Wrap(err, "failed to parse source amount")
	}

	packed := c.timelocks.Pack(uint64(c.now().Unix()))
	imm := swap.Immutables{
		OrderHash:     params.OrderHash,
		Hashlock:      params.Hashlock,
		Maker:         order.SourceUserAddress,
		Taker:         params.Resolver,
		Token:         order.SourceTokenAddress,
		Amount:        amount,
		SafetyDeposit: params.SafetyDeposit,
		Timelocks:     packed,
	}

	adapter, err := c.chains.For(order.SourceChain)
	if err != nil {
		return data.Escrow{}, err
	}

	created, err := adapter.CreateEscrow(ctx, data.EscrowSideSrc, imm)
	if err != nil {
		return data.Escrow{}, errors.Wrap(err, "failed to create source escrow on chain")
	}

	row := data.Escrow{
		OrderID:       orderID,
		Side:          data.EscrowSideSrc,
		Chain:         order.SourceChain,
		EscrowAddress: created.Address,
		EscrowTxHash:  created.TxRef,
		Hashlock:      params.Hashlock.Hex(),
		OrderHash:     params.OrderHash.Hex(),
		Timelocks:     swap.WithDeployedAt(packed, created.DeployedAt).Dec(),
		DeployedAt:    created.DeployedAt,
		Status:        data.EscrowCreated,
	}

	var escrow data.Escrow
	txErr := c.store.Transaction(func(s data.Store) error {
		escrow, err = s.Escrows().Insert(row)
		if err != nil {
			return errors.Wrap(err, "failed to insert escrow")
		}
		err = s.Orders().UpdateStatus(orderID, data.OrderSrcEscrowCreated)
		return errors.Wrap(err, "failed to update order status")
	})
	if txErr != nil {
		return data.Escrow{}, txErr
	}

	c.log.WithFields(logan.F{"order_id": orderID, "escrow": escrow.EscrowAddress}).Info("source escrow created")
	return escrow, nil
}

// CreateDestinationEscrow locks the resolver's funds on the destination
// chain with the same hashlock as the source leg and advances the order to
// DST_ESCROW_CREATED.
func (c *Coordinator) CreateDestinationEscrow(ctx context.Context, orderID int64, params DestinationParams) (data.Escrow, error) {
	order, err := c.store.Orders().Get(orderID)
	if err != nil {
		return data.Escrow{}, errors.Wrap(err, "failed to get order")
	}
	if order == nil {
		return data.Escrow{}, ErrOrderNotFound
	}

	existing, err := c.store.Escrows().GetBySide(orderID, data.EscrowSideDst)
	if err != nil {
		return data.Escrow{}, errors.Wrap(err, "failed to check existing escrow")
	}
	if existing != nil {
		return data.Escrow{}, ErrEscrowExists
	}

	if order.Status != data.OrderSrcEscrowCreated {
		return data.Escrow{}, ErrNoSourceEscrow
	}

	won, err := c.wonBy(orderID, params.Resolver)
	if err != nil {
		return data.Escrow{}, err
	}
	if !won {
		return data.Escrow{}, ErrNotWinner
	}

	src, err := c.store.Escrows().GetBySide(orderID, data.EscrowSideSrc)
	if err != nil {
		return data.Escrow{}, errors.Wrap(err, "failed to get source escrow")
	}
	if src == nil {
		return data.Escrow{}, ErrNoSourceEscrow
	}

	amount, err := uint256.FromDecimal(order.DestinationTokenAmount)
	if err != nil {
		return data.Escrow{}, errors.Wrap(err, "failed to parse destination amount")
	}

	parameters, err := params.Fees.Encode()
	if err != nil {
		return data.Escrow{}, err
	}

	// both legs must commit to one secret
	hashlock := common.HexToHash(src.Hashlock)
	orderHash := common.HexToHash(src.OrderHash)

	packed := c.timelocks.DstOnly().Pack(uint64(c.now().Unix()))
	imm := swap.Immutables{
		OrderHash:     orderHash,
		Hashlock:      hashlock,
		Maker:         order.DestinationUserAddress,
		Taker:         params.Resolver,
		Token:         order.DestinationTokenAddress,
		Amount:        amount,
		SafetyDeposit: params.SafetyDeposit,
		Timelocks:     packed,
		Parameters:    parameters,
	}

	adapter, err := c.chains.For(order.DestinationChain)
	if err != nil {
		return data.Escrow{}, err
	}

	created, err := adapter.CreateEscrow(ctx, data.EscrowSideDst, imm)
	if err != nil {
		return data.Escrow{}, errors.Wrap(err, "failed to create destination escrow on chain")
	}

	row := data.Escrow{
		OrderID:       orderID,
		Side:          data.EscrowSideDst,
		Chain:         order.DestinationChain,
		EscrowAddress: created.Address,
		EscrowTxHash:  created.TxRef,
		Hashlock:      hashlock.Hex(),
		OrderHash:     orderHash.Hex(),
		Timelocks:     swap.WithDeployedAt(packed, created.DeployedAt).Dec(),
		DeployedAt:    created.DeployedAt,
		Status:        data.EscrowCreated,
	}

	var escrow data.Escrow
	txErr := c.store.Transaction(func(s data.Store) error {
		escrow, err = s.Escrows().Insert(row)
		if err != nil {
			return errors.Wrap(err, "failed to insert escrow")
		}
		err = s.Orders().UpdateStatus(orderID, data.OrderDstEscrowCreated)
		return errors.Wrap(err, "failed to update order status")
	})
	if txErr != nil {
		return data.Escrow{}, txErr
	}

	c.log.WithFields(logan.F{"order_id": orderID, "escrow": escrow.EscrowAddress}).Info("destination escrow created")
	return escrow, nil
}

// Withdraw settles one escrow leg: the claim path re-derives the hashlock
// from the secret and unlocks the funds, the refund path hits the
// cancellation entry point after timeout.
func (c *Coordinator) Withdraw(ctx context.Context, orderID int64, side data.EscrowSide, params WithdrawParams) (chains.WithdrawResult, error) {
	if (params.Secret == "") == (params.SecretHash == "") {
		return chains.WithdrawResult{}, ErrSecretOrHash
	}

	won, err := c.wonBy(orderID, params.Resolver)
	if err != nil {
		return chains.WithdrawResult{}, err
	}
	if !won {
		return chains.WithdrawResult{}, ErrNotWinner
	}

	order, err := c.store.Orders().Get(orderID)
	if err != nil {
		return chains.WithdrawResult{}, errors.Wrap(err, "failed to get order")
	}
	if order == nil {
		return chains.WithdrawResult{}, ErrOrderNotFound
	}

	escrow, err := c.store.Escrows().GetBySide(orderID, side)
	if err != nil {
		return chains.WithdrawResult{}, errors.Wrap(err, "failed to get escrow")
	}
	if escrow == nil {
		return chains.WithdrawResult{}, ErrEscrowNotFound
	}

	packed, err := uint256.FromDecimal(escrow.Timelocks)
	if err != nil {
		return chains.WithdrawResult{}, errors.Wrap(err, "failed to parse stored timelocks")
	}
	// effective deadlines derive from the actual deployment time
	packed = swap.WithDeployedAt(packed, escrow.DeployedAt)

	var withdraw chains.WithdrawParams
	if params.Secret != "" {
		secret := secretBytes(params.Secret)
		if swap.Hashlock(secret) != common.HexToHash(escrow.Hashlock) {
			return chains.WithdrawResult{}, ErrHashlockMismatch
		}
		withdraw.Secret = secret
	} else {
		hash, err := hex.DecodeString(strings.TrimPrefix(params.SecretHash, "0x"))
		if err != nil {
			return chains.WithdrawResult{}, errors.Wrap(err, "failed to decode secret hash")
		}
		withdraw.SecretHash = hash
	}

	amountStr := order.SourceTokenAmount
	maker := order.SourceUserAddress
	token := order.SourceTokenAddress
	if side == data.EscrowSideDst {
		amountStr = order.DestinationTokenAmount
		maker = order.DestinationUserAddress
		token = order.DestinationTokenAddress
	}
	amount, err := uint256.FromDecimal(amountStr)
	if err != nil {
		return chains.WithdrawResult{}, errors.Wrap(err, "failed to parse escrow amount")
	}

	imm := swap.Immutables{
		OrderHash:     common.HexToHash(escrow.OrderHash),
		Hashlock:      common.HexToHash(escrow.Hashlock),
		Maker:         maker,
		Taker:         params.Resolver,
		Token:         token,
		Amount:        amount,
		SafetyDeposit: uint256.NewInt(0),
		Timelocks:     packed,
	}

	adapter, err := c.chains.For(escrow.Chain)
	if err != nil {
		return chains.WithdrawResult{}, err
	}

	result, err := adapter.Withdraw(ctx, side, withdraw, imm)
	return result, errors.Wrap(err, "failed to withdraw from escrow")
}

// RevealSecret is the atomic-swap commit point: the maker discloses the
// preimage, the destination escrow records it and the same secret becomes
// usable on the mirrored leg.
func (c *Coordinator) RevealSecret(orderID int64, secret string) (data.Secret, error) {
	dst, err := c.store.Escrows().GetBySide(orderID, data.EscrowSideDst)
	if err != nil {
		return data.Secret{}, errors.Wrap(err, "failed to get destination escrow")
	}
	if dst == nil {
		return data.Secret{}, ErrNoDstEscrow
	}
	if dst.Status == data.EscrowSecretReceived {
		return data.Secret{}, ErrAlreadyRevealed
	}

	if swap.Hashlock(secretBytes(secret)) != common.HexToHash(dst.Hashlock) {
		return data.Secret{}, ErrHashlockMismatch
	}

	var row data.Secret
	txErr := c.store.Transaction(func(s data.Store) error {
		row, err = s.Secrets().Insert(data.Secret{
			OrderID:  orderID,
			EscrowID: dst.ID,
			Secret:   secret,
		})
		if err != nil {
			return errors.Wrap(err, "failed to insert secret")
		}
		if err = s.Escrows().UpdateStatus(dst.ID, data.EscrowSecretReceived); err != nil {
			return errors.Wrap(err, "failed to update escrow status")
		}
		err = s.Orders().UpdateStatus(orderID, data.OrderSecretRevealed)
		return errors.Wrap(err, "failed to update order status")
	})
	if txErr != nil {
		return data.Secret{}, txErr
	}

	c.bus.Publish(events.SecretRevealed, row)
	c.log.WithField("order_id", orderID).Info("secret revealed")

	return row, nil
}

// secretBytes decodes a 0x-prefixed hex secret, any other secret is taken
// as raw bytes. The hashlock is always keccak256 over the result.
func secretBytes(secret string) []byte {
	if strings.HasPrefix(secret, "0x") {
		if b, err := hex.DecodeString(secret[2:]); err == nil {
			return b
		}
	}
	return []byte(secret)
}
