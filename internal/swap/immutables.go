package swap

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
	"gitlab.com/distributed_lab/logan/v3/errors"
)

// Hashlock derives the commitment gating both escrow legs from the revealed
// plaintext secret.
func Hashlock(secret []byte) common.Hash {
	return crypto.Keccak256Hash(secret)
}

// Immutables is the escrow parameter set shared by both chains. Both legs of
// one order carry the identical hashlock.
type Immutables struct {
	OrderHash     common.Hash
	Hashlock      common.Hash
	Maker         string
	Taker         string
	Token         string
	Amount        *uint256.Int
	SafetyDeposit *uint256.Int
	Timelocks     *uint256.Int
	// Parameters is the ABI-encoded fee split, empty on the source leg
	Parameters []byte
}

// FeeParams is the destination-leg fee split baked into Immutables.Parameters.
type FeeParams struct {
	ProtocolFeeAmount      *uint256.Int
	IntegratorFeeAmount    *uint256.Int
	ProtocolFeeRecipient   common.Address
	IntegratorFeeRecipient common.Address
}

var feeArgs = abi.Arguments{
	{Type: mustType("uint256")},
	{Type: mustType("uint256")},
	{Type: mustType("address")},
	{Type: mustType("address")},
}

func mustType(t string) abi.Type {
	typ, err := abi.NewType(t, "", nil)
	if err != nil {
		panic(errors.Wrap(err, "failed to create abi type"))
	}
	return typ
}

// Encode packs the fee split exactly as the destination escrow contract
// decodes it: (uint256, uint256, address, address).
func (f FeeParams) Encode() ([]byte, error) {
	protocol := new(big.Int)
	integrator := new(big.Int)
	if f.ProtocolFeeAmount != nil {
		protocol = f.ProtocolFeeAmount.ToBig()
	}
	if f.IntegratorFeeAmount != nil {
		integrator = f.IntegratorFeeAmount.ToBig()
	}

	packed, err := feeArgs.Pack(protocol, integrator, f.ProtocolFeeRecipient, f.IntegratorFeeRecipient)
	return packed, errors.Wrap(err, "failed to pack fee parameters")
}
