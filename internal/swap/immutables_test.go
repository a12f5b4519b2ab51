package swap

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashlock(t *testing.T) {
	// keccak256("") and keccak256("abc") are fixed vectors
	assert.Equal(t,
		common.HexToHash("0xc5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470"),
		Hashlock(nil),
	)
	assert.Equal(t,
		common.HexToHash("0x4e03657aea45a94fc7d47ba826c8d667c0d1e6e33a64a036ec44f58fa12d6c45"),
		Hashlock([]byte("abc")),
	)
}

func TestFeeParamsEncode(t *testing.T) {
	fees := FeeParams{
		ProtocolFeeAmount:      uint256.NewInt(7),
		IntegratorFeeAmount:    uint256.NewInt(11),
		ProtocolFeeRecipient:   common.HexToAddress("0x1111111111111111111111111111111111111111"),
		IntegratorFeeRecipient: common.HexToAddress("0x2222222222222222222222222222222222222222"),
	}

	packed, err := fees.Encode()
	require.NoError(t, err)
	require.Len(t, packed, 4*32)

	unpacked, err := feeArgs.Unpack(packed)
	require.NoError(t, err)
	assert.Zero(t, unpacked[0].(*big.Int).Cmp(big.NewInt(7)))
	assert.Zero(t, unpacked[1].(*big.Int).Cmp(big.NewInt(11)))
	assert.Equal(t, fees.ProtocolFeeRecipient, unpacked[2].(common.Address))
	assert.Equal(t, fees.IntegratorFeeRecipient, unpacked[3].(common.Address))
}

func TestFeeParamsEncodeNilAmounts(t *testing.T) {
	packed, err := FeeParams{}.Encode()
	require.NoError(t, err)
	require.Len(t, packed, 4*32)
}
