package evm

import (
	"testing"

	"github.com/auralshin/crosschain-evm-aptos-swap/internal/swap"
	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignOrderHash(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	a := &Adapter{key: key}

	var orderHash [32]byte
	copy(orderHash[:], crypto.Keccak256([]byte("order")))

	r, vs, err := a.signOrderHash(orderHash)
	require.NoError(t, err)

	// reassemble the 65-byte signature from the compact form and recover
	sig := make([]byte, 65)
	copy(sig[:32], r[:])
	copy(sig[32:64], vs[:])
	sig[32] &= 0x7F
	if vs[0]&0x80 != 0 {
		sig[64] = 1
	}

	pub, err := crypto.SigToPub(accounts.TextHash(orderHash[:]), sig)
	require.NoError(t, err)
	assert.Equal(t, crypto.PubkeyToAddress(key.PublicKey), crypto.PubkeyToAddress(*pub))
}

func TestToTuple(t *testing.T) {
	imm := swap.Immutables{
		OrderHash:     swap.Hashlock([]byte("order")),
		Hashlock:      swap.Hashlock([]byte("secret")),
		Maker:         "0x1111111111111111111111111111111111111111",
		Taker:         "0x2222222222222222222222222222222222222222",
		Token:         "0x3333333333333333333333333333333333333333",
		Amount:        uint256.NewInt(500),
		SafetyDeposit: uint256.NewInt(10),
		Timelocks:     uint256.NewInt(77),
	}

	tuple := toTuple(imm)

	assert.Equal(t, imm.Maker, tuple.Maker.Hex())
	assert.EqualValues(t, 500, tuple.Amount.Int64())
	assert.EqualValues(t, 10, tuple.SafetyDeposit.Int64())
	assert.EqualValues(t, 77, tuple.Timelocks.Int64())
	// abi packing requires a non-nil byte slice
	assert.NotNil(t, tuple.Parameters)
	assert.Empty(t, tuple.Parameters)
}

func TestValidateAddress(t *testing.T) {
	a := &Adapter{}

	assert.True(t, a.ValidateAddress("0x1111111111111111111111111111111111111111"))
	assert.False(t, a.ValidateAddress("0x11"))
	assert.False(t, a.ValidateAddress("not-an-address"))
	assert.False(t, a.ValidateAddress(""))
}
