package swap

import (
	"github.com/holiman/uint256"
)

// Stage slot positions inside the packed 256-bit timelock word. Each stage
// occupies a 32-bit slot at bit 32*position; the deployment timestamp sits
// in the top 32 bits. This layout is what the escrow contracts unpack and
// must be reproduced bit-for-bit.
const (
	stageSrcWithdrawal       = 0
	stageSrcPublicWithdrawal = 1
	stageSrcCancellation     = 2
	stageSrcPublicCancel     = 3
	stageDstWithdrawal       = 4
	stageDstPublicWithdrawal = 5
	stageDstCancellation     = 6

	deployedAtShift = 224
)

// Timelocks holds the seven stage deadline offsets, in seconds relative to
// escrow deployment.
type Timelocks struct {
	SrcWithdrawal       uint32
	SrcPublicWithdrawal uint32
	SrcCancellation     uint32
	SrcPublicCancel     uint32
	DstWithdrawal       uint32
	DstPublicWithdrawal uint32
	DstCancellation     uint32
}

func stageSlot(offset uint32, position uint) *uint256.Int {
	s := uint256.NewInt(uint64(offset))
	return s.Lsh(s, 32*position)
}

// Pack wraps the stage offsets and deployment timestamp into the canonical
// 256-bit word.
func (t Timelocks) Pack(deployedAt uint64) *uint256.Int {
	z := uint256.NewInt(deployedAt)
	z.Lsh(z, deployedAtShift)
	z.Or(z, stageSlot(t.SrcWithdrawal, stageSrcWithdrawal))
	z.Or(z, stageSlot(t.SrcPublicWithdrawal, stageSrcPublicWithdrawal))
	z.Or(z, stageSlot(t.SrcCancellation, stageSrcCancellation))
	z.Or(z, stageSlot(t.SrcPublicCancel, stageSrcPublicCancel))
	z.Or(z, stageSlot(t.DstWithdrawal, stageDstWithdrawal))
	z.Or(z, stageSlot(t.DstPublicWithdrawal, stageDstPublicWithdrawal))
	z.Or(z, stageSlot(t.DstCancellation, stageDstCancellation))
	return z
}

// DstOnly zeroes the source-side stages, matching the word the destination
// escrow expects.
func (t Timelocks) DstOnly() Timelocks {
	return Timelocks{
		DstWithdrawal:       t.DstWithdrawal,
		DstPublicWithdrawal: t.DstPublicWithdrawal,
		DstCancellation:     t.DstCancellation,
	}
}

// WithDeployedAt re-injects the actual on-chain deployment timestamp into
// the top 32 bits of an already packed word. Used on withdrawal, where the
// effective deadlines derive from when the escrow really landed.
func WithDeployedAt(packed *uint256.Int, deployedAt uint64) *uint256.Int {
	mask := new(uint256.Int).Lsh(uint256.NewInt(1), deployedAtShift)
	mask.SubUint64(mask, 1)

	z := new(uint256.Int).And(packed, mask)
	ts := uint256.NewInt(deployedAt)
	return z.Or(z, ts.Lsh(ts, deployedAtShift))
}

// DeployedAt extracts the deployment timestamp from a packed word.
func DeployedAt(packed *uint256.Int) uint64 {
	return new(uint256.Int).Rsh(packed, deployedAtShift).Uint64()
}

// DstCancellation extracts the destination cancellation offset from a packed
// word. The Aptos leg derives its swap expiration from it.
func DstCancellation(packed *uint256.Int) uint64 {
	z := new(uint256.Int).Rsh(packed, 32*stageDstCancellation)
	return z.And(z, uint256.NewInt(0xFFFFFFFF)).Uint64()
}
