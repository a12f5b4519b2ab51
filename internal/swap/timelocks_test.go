package swap

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testOffsets = Timelocks{
	SrcWithdrawal:       300,
	SrcPublicWithdrawal: 600,
	SrcCancellation:     900,
	SrcPublicCancel:     1200,
	DstWithdrawal:       300,
	DstPublicWithdrawal: 600,
	DstCancellation:     900,
}

func TestTimelocksPack(t *testing.T) {
	const deployedAt = 1_700_000_000

	packed := testOffsets.Pack(deployedAt)

	slot := func(position uint) uint64 {
		z := new(uint256.Int).Rsh(packed, 32*position)
		return z.And(z, uint256.NewInt(0xFFFFFFFF)).Uint64()
	}

	assert.EqualValues(t, 300, slot(0))
	assert.EqualValues(t, 600, slot(1))
	assert.EqualValues(t, 900, slot(2))
	assert.EqualValues(t, 1200, slot(3))
	assert.EqualValues(t, 300, slot(4))
	assert.EqualValues(t, 600, slot(5))
	assert.EqualValues(t, 900, slot(6))
	// bit 224 up belongs to the timestamp alone
	assert.EqualValues(t, deployedAt, slot(7))

	assert.EqualValues(t, deployedAt, DeployedAt(packed))
	assert.EqualValues(t, 900, DstCancellation(packed))
}

func TestTimelocksDstOnly(t *testing.T) {
	packed := testOffsets.DstOnly().Pack(42)

	slot := func(position uint) uint64 {
		z := new(uint256.Int).Rsh(packed, 32*position)
		return z.And(z, uint256.NewInt(0xFFFFFFFF)).Uint64()
	}

	for position := uint(0); position <= 3; position++ {
		assert.Zero(t, slot(position), "src slot %d must be zeroed", position)
	}
	assert.EqualValues(t, 300, slot(4))
	assert.EqualValues(t, 600, slot(5))
	assert.EqualValues(t, 900, DstCancellation(packed))
	assert.EqualValues(t, 42, DeployedAt(packed))
}

func TestWithDeployedAt(t *testing.T) {
	packed := testOffsets.Pack(1_700_000_000)

	updated := WithDeployedAt(packed, 1_800_000_000)
	assert.EqualValues(t, 1_800_000_000, DeployedAt(updated))
	// stage slots survive the swap untouched
	assert.EqualValues(t, 900, DstCancellation(updated))

	withoutTs := func(z *uint256.Int) *uint256.Int {
		mask := new(uint256.Int).Lsh(uint256.NewInt(1), 224)
		mask.SubUint64(mask, 1)
		return new(uint256.Int).And(z, mask)
	}
	require.Equal(t, withoutTs(packed), withoutTs(updated))
}
