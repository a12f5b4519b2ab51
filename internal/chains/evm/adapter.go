package evm

import (
	"context"
	"crypto/ecdsa"
	"math"
	"math/big"
	"strings"

	"github.com/auralshin/crosschain-evm-aptos-swap/internal/chains"
	"github.com/auralshin/crosschain-evm-aptos-swap/internal/data"
	"github.com/auralshin/crosschain-evm-aptos-swap/internal/swap"
	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"gitlab.com/distributed_lab/logan/v3"
	"gitlab.com/distributed_lab/logan/v3/errors"
)

// resolverABI is the slice of the escrow resolver contract the relayer
// drives: source/destination deployment plus forwarded escrow calls.
const resolverABI = `[
	{"type":"function","name":"deploySrc","stateMutability":"payable","inputs":[
		{"name":"immutables","type":"tuple","components":[
			{"name":"orderHash","type":"bytes32"},{"name":"hashlock","type":"bytes32"},
			{"name":"maker","type":"address"},{"name":"taker","type":"address"},
			{"name":"token","type":"address"},{"name":"amount","type":"uint256"},
			{"name":"safetyDeposit","type":"uint256"},{"name":"timelocks","type":"uint256"},
			{"name":"parameters","type":"bytes"}]},
		{"name":"r","type":"bytes32"},{"name":"vs","type":"bytes32"}],"outputs":[]},
	{"type":"function","name":"deployDst","stateMutability":"payable","inputs":[
		{"name":"immutables","type":"tuple","components":[
			{"name":"orderHash","type":"bytes32"},{"name":"hashlock","type":"bytes32"},
			{"name":"maker","type":"address"},{"name":"taker","type":"address"},
			{"name":"token","type":"address"},{"name":"amount","type":"uint256"},
			{"name":"safetyDeposit","type":"uint256"},{"name":"timelocks","type":"uint256"},
			{"name":"parameters","type":"bytes"}]},
		{"name":"srcCancellationTimestamp","type":"uint32"}],"outputs":[]},
	{"type":"function","name":"arbitraryCalls","stateMutability":"nonpayable","inputs":[
		{"name":"targets","type":"address[]"},{"name":"arguments","type":"bytes[]"}],"outputs":[]}
]`

// factoryABI resolves deterministic escrow addresses from immutables.
const factoryABI = `[
	{"type":"function","name":"addressOfEscrowSrc","stateMutability":"view","inputs":[
		{"name":"immutables","type":"tuple","components":[
			{"name":"orderHash","type":"bytes32"},{"name":"hashlock","type":"bytes32"},
			{"name":"maker","type":"address"},{"name":"taker","type":"address"},
			{"name":"token","type":"address"},{"name":"amount","type":"uint256"},
			{"name":"safetyDeposit","type":"uint256"},{"name":"timelocks","type":"uint256"},
			{"name":"parameters","type":"bytes"}]}],
		"outputs":[{"name":"","type":"address"}]},
	{"type":"function","name":"addressOfEscrowDst","stateMutability":"view","inputs":[
		{"name":"immutables","type":"tuple","components":[
			{"name":"orderHash","type":"bytes32"},{"name":"hashlock","type":"bytes32"},
			{"name":"maker","type":"address"},{"name":"taker","type":"address"},
			{"name":"token","type":"address"},{"name":"amount","type":"uint256"},
			{"name":"safetyDeposit","type":"uint256"},{"name":"timelocks","type":"uint256"},
			{"name":"parameters","type":"bytes"}]}],
		"outputs":[{"name":"","type":"address"}]}
]`

// escrowABI is the escrow proxy surface reached through arbitraryCalls.
const escrowABI = `[
	{"type":"function","name":"withdraw","stateMutability":"nonpayable","inputs":[
		{"name":"secret","type":"bytes32"},
		{"name":"immutables","type":"tuple","components":[
			{"name":"orderHash","type":"bytes32"},{"name":"hashlock","type":"bytes32"},
			{"name":"maker","type":"address"},{"name":"taker","type":"address"},
			{"name":"token","type":"address"},{"name":"amount","type":"uint256"},
			{"name":"safetyDeposit","type":"uint256"},{"name":"timelocks","type":"uint256"},
			{"name":"parameters","type":"bytes"}]}],"outputs":[]},
	{"type":"function","name":"cancel","stateMutability":"nonpayable","inputs":[
		{"name":"immutables","type":"tuple","components":[
			{"name":"orderHash","type":"bytes32"},{"name":"hashlock","type":"bytes32"},
			{"name":"maker","type":"address"},{"name":"taker","type":"address"},
			{"name":"token","type":"address"},{"name":"amount","type":"uint256"},
			{"name":"safetyDeposit","type":"uint256"},{"name":"timelocks","type":"uint256"},
			{"name":"parameters","type":"bytes"}]}],"outputs":[]}
]`

type immutablesTuple struct {
	OrderHash     [32]byte
	Hashlock      [32]byte
	Maker         common.Address
	Taker         common.Address
	Token         common.Address
	Amount        *big.Int
	SafetyDeposit *big.Int
	Timelocks     *big.Int
	Parameters    []byte
}

type Adapter struct {
	log     *logan.Entry
	client  *ethclient.Client
	chainID *big.Int
	key     *ecdsa.PrivateKey

	resolver  *bind.BoundContract
	factory   *bind.BoundContract
	escrowAbi abi.ABI
}

func New(log *logan.Entry, client *ethclient.Client, chainID *big.Int,
	resolver, factory common.Address, key *ecdsa.PrivateKey) (*Adapter, error) {

	resolverParsed, err := abi.JSON(strings.NewReader(resolverABI))
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse resolver ABI")
	}
	factoryParsed, err := abi.JSON(strings.NewReader(factoryABI))
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse factory ABI")
	}
	escrowParsed, err := abi.JSON(strings.NewReader(escrowABI))
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse escrow ABI")
	}

	return &Adapter{
		log:       log.WithField("chain", "evm"),
		client:    client,
		chainID:   chainID,
		key:       key,
		resolver:  bind.NewBoundContract(resolver, resolverParsed, client, client, client),
		factory:   bind.NewBoundContract(factory, factoryParsed, client, client, client),
		escrowAbi: escrowParsed,
	}, nil
}

func toTuple(imm swap.Immutables) immutablesTuple {
	params := imm.Parameters
	if params == nil {
		params = []byte{}
	}
	return immutablesTuple{
		OrderHash:     imm.OrderHash,
		Hashlock:      imm.Hashlock,
		Maker:         common.HexToAddress(imm.Maker),
		Taker:         common.HexToAddress(imm.Taker),
		Token:         common.HexToAddress(imm.Token),
		Amount:        imm.Amount.ToBig(),
		SafetyDeposit: imm.SafetyDeposit.ToBig(),
		Timelocks:     imm.Timelocks.ToBig(),
		Parameters:    params,
	}
}

func (a *Adapter) transactOpts(ctx context.Context, value *big.Int) (*bind.TransactOpts, error) {
	opts, err := bind.NewKeyedTransactorWithChainID(a.key, a.chainID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create transactor")
	}
	opts.Context = ctx
	opts.Value = value
	return opts, nil
}

// signOrderHash produces the EIP-191 signature over the order hash, split
// into the compact r/vs form deploySrc expects.
func (a *Adapter) signOrderHash(orderHash [32]byte) (r, vs [32]byte, err error) {
	sig, err := crypto.Sign(accounts.TextHash(orderHash[:]), a.key)
	if err != nil {
		return r, vs, errors.Wrap(err, "failed to sign order hash")
	}

	copy(r[:], sig[:32])
	copy(vs[:], sig[32:64])
	if sig[64] == 1 {
		vs[0] |= 0x80
	}
	return r, vs, nil
}

func (a *Adapter) escrowAddress(ctx context.Context, side data.EscrowSide, tuple immutablesTuple) (common.Address, error) {
	method := "addressOfEscrowSrc"
	if side == data.EscrowSideDst {
		method = "addressOfEscrowDst"
	}

	var out []interface{}
	err := a.factory.Call(&bind.CallOpts{Context: ctx}, &out, method, tuple)
	if err != nil {
		return common.Address{}, errors.Wrap(err, "failed to compute escrow address")
	}
	return *abi.ConvertType(out[0], new(common.Address)).(*common.Address), nil
}

func (a *Adapter) CreateEscrow(ctx context.Context, side data.EscrowSide, imm swap.Immutables) (chains.CreateResult, error) {
	tuple := toTuple(imm)

	var tx *types.Transaction
	switch side {
	case data.EscrowSideSrc:
		r, vs, err := a.signOrderHash(tuple.OrderHash)
		if err != nil {
			return chains.CreateResult{}, err
		}
		opts, err := a.transactOpts(ctx, nil)
		if err != nil {
			return chains.CreateResult{}, err
		}
		tx, err = a.resolver.Transact(opts, "deploySrc", tuple, r, vs)
		if err != nil {
			return chains.CreateResult{}, errors.Wrap(err, "failed to send deploySrc")
		}
	case data.EscrowSideDst:
		value := new(big.Int).Add(tuple.Amount, tuple.SafetyDeposit)
		opts, err := a.transactOpts(ctx, value)
		if err != nil {
			return chains.CreateResult{}, err
		}
		tx, err = a.resolver.Transact(opts, "deployDst", tuple, uint32(math.MaxUint32))
		if err != nil {
			return chains.CreateResult{}, errors.Wrap(err, "failed to send deployDst")
		}
	default:
		return chains.CreateResult{}, errors.Errorf("unknown escrow side: %s", side)
	}

	receipt, err := bind.WaitMined(ctx, a.client, tx)
	if err != nil {
		return chains.CreateResult{}, errors.Wrap(err, "failed to wait for escrow deployment")
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return chains.CreateResult{}, errors.Errorf("escrow deployment reverted: %s", tx.Hash())
	}

	header, err := a.client.HeaderByHash(ctx, receipt.BlockHash)
	if err != nil {
		return chains.CreateResult{}, errors.Wrap(err, "failed to get deployment block header")
	}

	address, err := a.escrowAddress(ctx, side, tuple)
	if err != nil {
		return chains.CreateResult{}, err
	}

	a.log.WithFields(logan.F{"escrow": address.Hex(), "tx": tx.Hash().Hex()}).Debug("escrow deployed")

	return chains.CreateResult{
		Address:    address.Hex(),
		TxRef:      tx.Hash().Hex(),
		DeployedAt: header.Time,
	}, nil
}

func (a *Adapter) Withdraw(ctx context.Context, side data.EscrowSide, params chains.WithdrawParams, imm swap.Immutables) (chains.WithdrawResult, error) {
	tuple := toTuple(imm)

	var calldata []byte
	var err error
	if len(params.Secret) > 0 {
		if len(params.Secret) > 32 {
			return chains.WithdrawResult{}, errors.Errorf("secret longer than 32 bytes: %d", len(params.Secret))
		}
		var secret [32]byte
		copy(secret[32-len(params.Secret):], params.Secret)
		calldata, err = a.escrowAbi.Pack("withdraw", secret, tuple)
	} else {
		// refund path goes through the cancellation entry point
		calldata, err = a.escrowAbi.Pack("cancel", tuple)
	}
	if err != nil {
		return chains.WithdrawResult{}, errors.Wrap(err, "failed to pack escrow calldata")
	}

	address, err := a.escrowAddress(ctx, side, tuple)
	if err != nil {
		return chains.WithdrawResult{}, err
	}

	opts, err := a.transactOpts(ctx, nil)
	if err != nil {
		return chains.WithdrawResult{}, err
	}

	tx, err := a.resolver.Transact(opts, "arbitraryCalls", []common.Address{address}, [][]byte{calldata})
	if err != nil {
		return chains.WithdrawResult{}, errors.Wrap(err, "failed to send escrow call")
	}

	return chains.WithdrawResult{TxRef: tx.Hash().Hex()}, nil
}

func (a *Adapter) ValidateAddress(address string) bool {
	return common.IsHexAddress(address)
}
